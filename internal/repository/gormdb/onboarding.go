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

// OnboardingDB implements repository.OnboardingRepository.
type OnboardingDB struct {
	conn *gorm.DB
}

var _ repository.OnboardingRepository = (*OnboardingDB)(nil)

func (o *OnboardingDB) GetByUserID(ctx context.Context, userID uint) (*model.Onboarding, error) {
	var ob model.Onboarding
	if err := o.conn.WithContext(ctx).Where("user_id = ?", userID).First(&ob).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundMessage("Onboarding data not found")
		}
		return nil, fmt.Errorf("gormdb: getting onboarding for user %d: %w", userID, err)
	}
	return &ob, nil
}

func (o *OnboardingDB) Save(ctx context.Context, ob *model.Onboarding) error {
	if ob.ID == 0 {
		if err := o.conn.WithContext(ctx).Create(ob).Error; err != nil {
			if isUniqueViolation(err) {
				return apperror.Conflict("user_id", "Onboarding already started")
			}
			return fmt.Errorf("gormdb: creating onboarding: %w", err)
		}
		return nil
	}

	res := o.conn.WithContext(ctx).
		Model(ob).
		Where("user_id = ?", ob.UserID).
		Select("breakup_date", "relationship_years", "relationship_months",
			"my_tendency", "partner_tendency", "breakup_reason", "strategy_type").
		Updates(ob)
	if res.Error != nil {
		return fmt.Errorf("gormdb: updating onboarding %d: %w", ob.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFoundMessage("Onboarding data not found")
	}
	return nil
}
