package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/sakif/reconnect/internal/apperror"
	"github.com/sakif/reconnect/internal/coach"
	"github.com/sakif/reconnect/internal/model"
	"github.com/sakif/reconnect/internal/repository"
)

const (
	MaxPurposeLength = 300
	MaxToneLength    = 50
)

// GenerationObserver is told about every stored message. The metrics
// package provides the production implementation.
type GenerationObserver interface {
	MessageGenerated(tone string, warned bool)
}

type nopObserver struct{}

func (nopObserver) MessageGenerated(string, bool) {}

// MessageService recommends goals and generates, stores and lists
// outreach messages.
type MessageService struct {
	store    repository.Store
	engine   *coach.Engine
	observer GenerationObserver
	logger   *slog.Logger
}

// NewMessageService wires the engine. observer may be nil.
func NewMessageService(store repository.Store, engine *coach.Engine, observer GenerationObserver, logger *slog.Logger) *MessageService {
	if observer == nil {
		observer = nopObserver{}
	}
	return &MessageService{
		store:    store,
		engine:   engine,
		observer: observer,
		logger:   logger,
	}
}

// Generated is the client view of a new message.
type Generated struct {
	Message          string  `json:"message"`
	PositiveReaction int     `json:"positive_reaction"`
	Warning          *string `json:"warning"`
}

// RecommendedGoals returns up to three goals based on the user's onboarding
// answers, or a random handful when there are none.
func (s *MessageService) RecommendedGoals(ctx context.Context, userID uint) ([]coach.Goal, error) {
	ob, err := s.onboarding(ctx, s.store, userID)
	if err != nil {
		return nil, fmt.Errorf("service/message: recommending for user %d: %w", userID, err)
	}
	return s.engine.RecommendGoals(ob), nil
}

// Generate drafts a message about purpose in toneStyle and stores it.
func (s *MessageService) Generate(ctx context.Context, userID uint, purpose, toneStyle string) (*Generated, error) {
	if strings.TrimSpace(purpose) == "" {
		return nil, apperror.ValidationFailed("purpose", "purpose is required")
	}
	if utf8.RuneCountInString(purpose) > MaxPurposeLength {
		return nil, apperror.ValidationFailed("purpose",
			fmt.Sprintf("purpose must be %d characters or fewer", MaxPurposeLength))
	}
	if toneStyle == "" {
		return nil, apperror.ValidationFailed("tone_style", "tone_style is required")
	}
	if utf8.RuneCountInString(toneStyle) > MaxToneLength {
		return nil, apperror.ValidationFailed("tone_style",
			fmt.Sprintf("tone_style must be %d characters or fewer", MaxToneLength))
	}

	var draft coach.Draft
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		ob, err := s.onboarding(ctx, tx, userID)
		if err != nil {
			return err
		}
		draft = s.engine.Compose(purpose, toneStyle, ob)
		return tx.Messages().Create(ctx, &model.Message{
			UserID:           userID,
			Purpose:          purpose,
			ToneStyle:        toneStyle,
			Content:          draft.Content,
			PositiveReaction: draft.Score,
			Warning:          draft.Warning,
		})
	})
	if err != nil {
		s.logger.Error("message generation failed",
			slog.Uint64("userID", uint64(userID)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("service/message: generating for user %d: %w", userID, err)
	}

	s.observer.MessageGenerated(draft.Tone.Label(), draft.Warning != nil)
	s.logger.Info("message generated",
		slog.Uint64("userID", uint64(userID)),
		slog.String("tone", draft.Tone.Label()),
		slog.Bool("warning", draft.Warning != nil),
	)
	return &Generated{
		Message:          draft.Content,
		PositiveReaction: draft.PositiveReaction(),
		Warning:          draft.Warning,
	}, nil
}

// List returns the user's messages, newest first.
func (s *MessageService) List(ctx context.Context, userID uint, opts repository.ListOptions) ([]model.Message, error) {
	opts, err := Page(opts)
	if err != nil {
		return nil, err
	}
	msgs, err := s.store.Messages().List(ctx, userID, opts)
	if err != nil {
		return nil, fmt.Errorf("service/message: listing: %w", err)
	}
	return msgs, nil
}

func (s *MessageService) Get(ctx context.Context, userID, id uint) (*model.Message, error) {
	msg, err := s.store.Messages().GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("service/message: getting %d: %w", id, err)
	}
	return msg, nil
}

// onboarding returns nil without error when the user has no record.
func (s *MessageService) onboarding(ctx context.Context, store repository.Store, userID uint) (*model.Onboarding, error) {
	ob, err := store.Onboardings().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ob, nil
}
