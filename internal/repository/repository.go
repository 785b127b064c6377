// Package repository declares the persistence contracts the services depend
// on. Implementations live in subpackages (gormdb).
//
// Every method that touches a user-owned table takes the owner's id and
// filters on it, so a row belonging to someone else is indistinguishable
// from a missing row: both return an error wrapping apperror.ErrNotFound.
package repository

import (
	"context"

	"github.com/sakif/reconnect/internal/model"
)

// DefaultListLimit is used when a caller passes a zero limit.
const DefaultListLimit = 100

type ListOptions struct {
	Limit  int
	Offset int
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// EmailTaken and UsernameTaken ignore the row with id exceptID, so a user
	// keeping their own email is not a conflict. Pass 0 to check everyone.
	EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error)
	UsernameTaken(ctx context.Context, username string, exceptID uint) (bool, error)
	Update(ctx context.Context, user *model.User) error
}

type OnboardingRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*model.Onboarding, error)
	// Save inserts the row when it has no id yet and overwrites it otherwise.
	Save(ctx context.Context, ob *model.Onboarding) error
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *model.UserProfile) error
	GetByUserID(ctx context.Context, userID uint) (*model.UserProfile, error)
	Update(ctx context.Context, profile *model.UserProfile) error
}

type MissionRepository interface {
	Create(ctx context.Context, mission *model.Mission) error
	GetByID(ctx context.Context, userID, id uint) (*model.Mission, error)
	List(ctx context.Context, userID uint, opts ListOptions) ([]model.Mission, error)
	// Update writes every column of mission, scoped to mission.UserID.
	Update(ctx context.Context, mission *model.Mission) error
	Delete(ctx context.Context, userID, id uint) error
}

type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	GetByID(ctx context.Context, userID, id uint) (*model.Message, error)
	// List returns newest first.
	List(ctx context.Context, userID uint, opts ListOptions) ([]model.Message, error)
}

// Store bundles the repositories bound to one database handle.
type Store interface {
	Users() UserRepository
	Onboardings() OnboardingRepository
	Profiles() ProfileRepository
	Missions() MissionRepository
	Messages() MessageRepository

	// WithinTx runs fn with a Store bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}
