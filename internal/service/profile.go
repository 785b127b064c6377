package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"

	"github.com/sakif/reconnect/internal/apperror"
	"github.com/sakif/reconnect/internal/model"
	"github.com/sakif/reconnect/internal/repository"
)

// ProfileService manages the free-form profile kept next to onboarding.
type ProfileService struct {
	store  repository.Store
	logger *slog.Logger
}

func NewProfileService(store repository.Store, logger *slog.Logger) *ProfileService {
	return &ProfileService{store: store, logger: logger}
}

// ProfileInput is both the create body and the patch body. On create an
// absent field is stored empty; on update it is left unchanged.
type ProfileInput struct {
	Bio         Optional[*string]        `json:"bio"`
	Interests   Optional[[]string]       `json:"interests"`
	Preferences Optional[map[string]any] `json:"preferences"`
	Goals       Optional[[]string]       `json:"goals"`
}

func (s *ProfileService) Create(ctx context.Context, userID uint, in ProfileInput) (*model.UserProfile, error) {
	profile := &model.UserProfile{
		UserID:      userID,
		Interests:   datatypes.JSON("[]"),
		Preferences: datatypes.JSON("{}"),
		Goals:       datatypes.JSON("[]"),
	}
	if err := applyProfile(profile, in); err != nil {
		return nil, err
	}

	if err := s.store.Profiles().Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("service/profile: creating for user %d: %w", userID, err)
	}

	s.logger.Info("profile created", slog.Uint64("userID", uint64(userID)))
	return profile, nil
}

func (s *ProfileService) Get(ctx context.Context, userID uint) (*model.UserProfile, error) {
	profile, err := s.store.Profiles().GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/profile: getting user %d: %w", userID, err)
	}
	return profile, nil
}

// Update merges the fields present in in.
func (s *ProfileService) Update(ctx context.Context, userID uint, in ProfileInput) (*model.UserProfile, error) {
	return s.modify(ctx, userID, func(p *model.UserProfile) error {
		return applyProfile(p, in)
	})
}

// SetStep moves the progress marker to step, which must be 1..5.
func (s *ProfileService) SetStep(ctx context.Context, userID uint, step model.ProfileStep) (*model.UserProfile, error) {
	if !step.Valid() {
		return nil, apperror.ValidationFailed("step",
			fmt.Sprintf("step must be between %d and %d", model.StepProfile, model.StepCompleted))
	}
	return s.modify(ctx, userID, func(p *model.UserProfile) error {
		p.OnboardingCompleted = step
		return nil
	})
}

func (s *ProfileService) modify(ctx context.Context, userID uint, apply func(*model.UserProfile) error) (*model.UserProfile, error) {
	var saved *model.UserProfile
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		profile, err := tx.Profiles().GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if err := apply(profile); err != nil {
			return err
		}
		if err := tx.Profiles().Update(ctx, profile); err != nil {
			return err
		}
		saved = profile
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("service/profile: updating user %d: %w", userID, err)
	}
	return saved, nil
}

func applyProfile(p *model.UserProfile, in ProfileInput) error {
	if in.Bio.Set {
		p.Bio = in.Bio.Value
	}
	if in.Interests.Set {
		raw, err := jsonColumn("interests", in.Interests.Value, "[]")
		if err != nil {
			return err
		}
		p.Interests = raw
	}
	if in.Preferences.Set {
		raw, err := jsonColumn("preferences", in.Preferences.Value, "{}")
		if err != nil {
			return err
		}
		p.Preferences = raw
	}
	if in.Goals.Set {
		raw, err := jsonColumn("goals", in.Goals.Value, "[]")
		if err != nil {
			return err
		}
		p.Goals = raw
	}
	return nil
}

// jsonColumn encodes v, storing empty for a nil slice or map.
func jsonColumn[T any](field string, v T, empty string) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, apperror.ValidationFailed(field, field+" cannot be stored as JSON")
	}
	if string(b) == "null" {
		return datatypes.JSON(empty), nil
	}
	return datatypes.JSON(b), nil
}
