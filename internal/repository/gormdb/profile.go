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

// ProfileDB implements repository.ProfileRepository.
type ProfileDB struct {
	conn *gorm.DB
}

var _ repository.ProfileRepository = (*ProfileDB)(nil)

func (p *ProfileDB) Create(ctx context.Context, profile *model.UserProfile) error {
	if err := p.conn.WithContext(ctx).Create(profile).Error; err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("user_id", "Profile already exists")
		}
		return fmt.Errorf("gormdb: creating profile: %w", err)
	}
	return nil
}

func (p *ProfileDB) GetByUserID(ctx context.Context, userID uint) (*model.UserProfile, error) {
	var profile model.UserProfile
	if err := p.conn.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundMessage("Profile not found")
		}
		return nil, fmt.Errorf("gormdb: getting profile for user %d: %w", userID, err)
	}
	return &profile, nil
}

func (p *ProfileDB) Update(ctx context.Context, profile *model.UserProfile) error {
	res := p.conn.WithContext(ctx).
		Model(profile).
		Where("user_id = ?", profile.UserID).
		Select("bio", "interests", "preferences", "goals", "onboarding_completed").
		Updates(profile)
	if res.Error != nil {
		return fmt.Errorf("gormdb: updating profile %d: %w", profile.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFoundMessage("Profile not found")
	}
	return nil
}
