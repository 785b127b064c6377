package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/reconnect/internal/apperror"
	"github.com/sakif/reconnect/internal/model"
	"github.com/sakif/reconnect/internal/repository"
)

// MsgMissionNotFound is the client message for a missing or foreign mission.
const MsgMissionNotFound = "미션을 찾을 수 없습니다"

const (
	MaxTitleLength = 255
	MaxListLimit   = 100
)

// MissionService is per-user mission CRUD. A mission owned by someone else
// is reported exactly like one that does not exist.
type MissionService struct {
	store  repository.Store
	logger *slog.Logger
}

func NewMissionService(store repository.Store, logger *slog.Logger) *MissionService {
	return &MissionService{store: store, logger: logger}
}

// MissionInput is the create body.
type MissionInput struct {
	Title       string
	Description *string
}

// MissionUpdate is the patch body; only present fields are applied.
type MissionUpdate struct {
	Title       Optional[*string] `json:"title"`
	Description Optional[*string] `json:"description"`
	IsCompleted Optional[*bool]   `json:"is_completed"`
}

func (s *MissionService) Create(ctx context.Context, userID uint, in MissionInput) (*model.Mission, error) {
	title, err := validTitle(in.Title)
	if err != nil {
		return nil, err
	}

	mission := &model.Mission{
		UserID:      userID,
		Title:       title,
		Description: in.Description,
	}
	if err := s.store.Missions().Create(ctx, mission); err != nil {
		return nil, fmt.Errorf("service/mission: creating: %w", err)
	}

	s.logger.Info("mission created",
		slog.Uint64("userID", uint64(userID)),
		slog.Uint64("missionID", uint64(mission.ID)),
	)
	return mission, nil
}

// List returns the user's missions in creation order.
func (s *MissionService) List(ctx context.Context, userID uint, opts repository.ListOptions) ([]model.Mission, error) {
	opts, err := Page(opts)
	if err != nil {
		return nil, err
	}
	missions, err := s.store.Missions().List(ctx, userID, opts)
	if err != nil {
		return nil, fmt.Errorf("service/mission: listing: %w", err)
	}
	return missions, nil
}

func (s *MissionService) Get(ctx context.Context, userID, id uint) (*model.Mission, error) {
	mission, err := s.store.Missions().GetByID(ctx, userID, id)
	if err != nil {
		return nil, missionErr("getting", id, err)
	}
	return mission, nil
}

// Update applies the present fields of in. A present title must be a
// non-empty string; a null description clears it.
func (s *MissionService) Update(ctx context.Context, userID, id uint, in MissionUpdate) (*model.Mission, error) {
	var title string
	if in.Title.Set {
		if in.Title.Value == nil {
			return nil, apperror.ValidationFailed("title", "title must not be null")
		}
		t, err := validTitle(*in.Title.Value)
		if err != nil {
			return nil, err
		}
		title = t
	}
	if in.IsCompleted.Set && in.IsCompleted.Value == nil {
		return nil, apperror.ValidationFailed("is_completed", "is_completed must not be null")
	}

	var saved *model.Mission
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		mission, err := tx.Missions().GetByID(ctx, userID, id)
		if err != nil {
			return err
		}
		if in.Title.Set {
			mission.Title = title
		}
		if in.Description.Set {
			mission.Description = in.Description.Value
		}
		if in.IsCompleted.Set {
			mission.IsCompleted = *in.IsCompleted.Value
		}
		if err := tx.Missions().Update(ctx, mission); err != nil {
			return err
		}
		saved = mission
		return nil
	})
	if err != nil {
		return nil, missionErr("updating", id, err)
	}

	s.logger.Info("mission updated",
		slog.Uint64("userID", uint64(userID)),
		slog.Uint64("missionID", uint64(id)),
	)
	return saved, nil
}

func (s *MissionService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.store.Missions().Delete(ctx, userID, id); err != nil {
		return missionErr("deleting", id, err)
	}
	s.logger.Info("mission deleted",
		slog.Uint64("userID", uint64(userID)),
		slog.Uint64("missionID", uint64(id)),
	)
	return nil
}

// Page checks skip/limit values taken from a query string and fills in the
// default limit.
func Page(opts repository.ListOptions) (repository.ListOptions, error) {
	if opts.Offset < 0 {
		return opts, apperror.ValidationFailed("skip", "skip must not be negative")
	}
	if opts.Limit < 0 {
		return opts, apperror.ValidationFailed("limit", "limit must not be negative")
	}
	if opts.Limit > MaxListLimit {
		return opts, apperror.ValidationFailed("limit", fmt.Sprintf("limit must be at most %d", MaxListLimit))
	}
	if opts.Limit == 0 {
		opts.Limit = repository.DefaultListLimit
	}
	return opts, nil
}

func validTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", apperror.ValidationFailed("title", "title is required")
	}
	if len([]rune(title)) > MaxTitleLength {
		return "", apperror.ValidationFailed("title",
			fmt.Sprintf("title must be %d characters or fewer", MaxTitleLength))
	}
	return title, nil
}

func missionErr(op string, id uint, err error) error {
	if errors.Is(err, apperror.ErrNotFound) {
		return apperror.NotFoundMessage(MsgMissionNotFound)
	}
	return fmt.Errorf("service/mission: %s %d: %w", op, id, err)
}
