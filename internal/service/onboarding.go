package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/reconnect/internal/apperror"
	"github.com/sakif/reconnect/internal/model"
	"github.com/sakif/reconnect/internal/repository"
)

// MsgStep1Required is returned by steps 2 and 3 when step 1 has not run.
const MsgStep1Required = "Onboarding step 1 must be completed first"

// OnboardingService walks a user through the three questionnaire steps.
// Step 1 creates the record; steps 2 and 3 may follow in any order and be
// repeated.
type OnboardingService struct {
	store  repository.Store
	logger *slog.Logger
}

func NewOnboardingService(store repository.Store, logger *slog.Logger) *OnboardingService {
	return &OnboardingService{store: store, logger: logger}
}

// Step1Input holds the relationship basics.
type Step1Input struct {
	BreakupDate        model.Date
	RelationshipYears  int
	RelationshipMonths int
	MyTendency         model.Tendency
	PartnerTendency    model.Tendency
}

func (in Step1Input) validate() error {
	if in.BreakupDate.Time().IsZero() {
		return apperror.ValidationFailed("breakup_date", "breakup_date is required")
	}
	if in.RelationshipYears < 0 {
		return apperror.ValidationFailed("relationship_years", "relationship_years must not be negative")
	}
	if in.RelationshipMonths < 0 {
		return apperror.ValidationFailed("relationship_months", "relationship_months must not be negative")
	}
	if !in.MyTendency.Valid() {
		return apperror.ValidationFailed("my_tendency", "my_tendency must be analytical or emotional")
	}
	if !in.PartnerTendency.Valid() {
		return apperror.ValidationFailed("partner_tendency", "partner_tendency must be analytical or emotional")
	}
	return nil
}

// Step1 creates the user's onboarding record, or overwrites the step 1
// fields of an existing one. A breakup reason or strategy set by a later
// step is kept.
func (s *OnboardingService) Step1(ctx context.Context, userID uint, in Step1Input) (*model.Onboarding, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var saved *model.Onboarding
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		ob, err := tx.Onboardings().GetByUserID(ctx, userID)
		if err != nil {
			if !errors.Is(err, apperror.ErrNotFound) {
				return err
			}
			ob = &model.Onboarding{UserID: userID}
		}
		ob.BreakupDate = in.BreakupDate
		ob.RelationshipYears = in.RelationshipYears
		ob.RelationshipMonths = in.RelationshipMonths
		ob.MyTendency = in.MyTendency
		ob.PartnerTendency = in.PartnerTendency
		if err := tx.Onboardings().Save(ctx, ob); err != nil {
			return err
		}
		saved = ob
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("service/onboarding: step 1 for user %d: %w", userID, err)
	}

	s.logger.Info("onboarding step completed",
		slog.Uint64("userID", uint64(userID)),
		slog.Int("step", 1),
	)
	return saved, nil
}

// Step2 records why the relationship ended.
func (s *OnboardingService) Step2(ctx context.Context, userID uint, reason model.BreakupReason) (*model.Onboarding, error) {
	if !reason.Valid() {
		return nil, apperror.ValidationFailed("breakup_reason", "breakup_reason is not one of the offered choices")
	}
	return s.amend(ctx, userID, 2, func(ob *model.Onboarding) {
		ob.BreakupReason = &reason
	})
}

// Step3 records the approach the user wants to take.
func (s *OnboardingService) Step3(ctx context.Context, userID uint, strategy model.StrategyType) (*model.Onboarding, error) {
	if !strategy.Valid() {
		return nil, apperror.ValidationFailed("strategy_type", "strategy_type must be analytical, balanced or emotional")
	}
	return s.amend(ctx, userID, 3, func(ob *model.Onboarding) {
		ob.StrategyType = &strategy
	})
}

// Get returns the user's onboarding record.
func (s *OnboardingService) Get(ctx context.Context, userID uint) (*model.Onboarding, error) {
	ob, err := s.store.Onboardings().GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/onboarding: getting user %d: %w", userID, err)
	}
	return ob, nil
}

func (s *OnboardingService) amend(ctx context.Context, userID uint, step int, apply func(*model.Onboarding)) (*model.Onboarding, error) {
	var saved *model.Onboarding
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		ob, err := tx.Onboardings().GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				return apperror.PreconditionFailed(MsgStep1Required)
			}
			return err
		}
		apply(ob)
		if err := tx.Onboardings().Save(ctx, ob); err != nil {
			return err
		}
		saved = ob
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("service/onboarding: step %d for user %d: %w", step, userID, err)
	}

	s.logger.Info("onboarding step completed",
		slog.Uint64("userID", uint64(userID)),
		slog.Int("step", step),
	)
	return saved, nil
}
