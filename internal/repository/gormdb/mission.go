package gormdb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sakif/reconnect/internal/apperror"
	"github.com/sakif/reconnect/internal/model"
	"github.com/sakif/reconnect/internal/repository"
)

// MissionDB implements repository.MissionRepository. Every statement is
// scoped to the owning user.
type MissionDB struct {
	conn *gorm.DB
}

var _ repository.MissionRepository = (*MissionDB)(nil)

func (m *MissionDB) Create(ctx context.Context, mission *model.Mission) error {
	if err := m.conn.WithContext(ctx).Create(mission).Error; err != nil {
		return fmt.Errorf("gormdb: creating mission: %w", err)
	}
	return nil
}

func (m *MissionDB) GetByID(ctx context.Context, userID, id uint) (*model.Mission, error) {
	var mission model.Mission
	err := m.conn.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&mission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("mission", id)
		}
		return nil, fmt.Errorf("gormdb: getting mission %d: %w", id, err)
	}
	return &mission, nil
}

func (m *MissionDB) List(ctx context.Context, userID uint, opts repository.ListOptions) ([]model.Mission, error) {
	missions := []model.Mission{}
	err := m.conn.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Offset(opts.Offset).
		Limit(limitOf(opts)).
		Find(&missions).Error
	if err != nil {
		return nil, fmt.Errorf("gormdb: listing missions: %w", err)
	}
	return missions, nil
}

func (m *MissionDB) Update(ctx context.Context, mission *model.Mission) error {
	res := m.conn.WithContext(ctx).
		Model(mission).
		Where("user_id = ?", mission.UserID).
		Select("title", "description", "is_completed").
		Updates(mission)
	if res.Error != nil {
		return fmt.Errorf("gormdb: updating mission %d: %w", mission.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("mission", mission.ID)
	}
	return nil
}

func (m *MissionDB) Delete(ctx context.Context, userID, id uint) error {
	res := m.conn.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Mission{})
	if res.Error != nil {
		return fmt.Errorf("gormdb: deleting mission %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("mission", id)
	}
	return nil
}
