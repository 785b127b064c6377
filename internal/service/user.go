package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/reconnect/internal/apperror"
	"github.com/sakif/reconnect/internal/auth"
	"github.com/sakif/reconnect/internal/model"
	"github.com/sakif/reconnect/internal/repository"
)

// UserService reads and edits the caller's own account.
type UserService struct {
	store     repository.Store
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewUserService(store repository.Store, passwords *auth.PasswordService, logger *slog.Logger) *UserService {
	return &UserService{store: store, passwords: passwords, logger: logger}
}

// UserUpdate carries the fields a client sent. Nil means "leave unchanged".
type UserUpdate struct {
	Email    *string
	Username *string
	Password *string
	FullName *string
}

// Me returns the caller's account. Deactivated accounts get a precondition
// error rather than an authentication failure: the token itself was fine.
func (s *UserService) Me(_ context.Context, user *model.User) (*model.User, error) {
	if !user.IsActive {
		return nil, apperror.PreconditionFailed(MsgInactiveUser)
	}
	return user, nil
}

// Update applies the sent fields to the caller's account. A new email or
// username must not belong to another account; a new password is re-hashed.
func (s *UserService) Update(ctx context.Context, user *model.User, in UserUpdate) (*model.User, error) {
	if !user.IsActive {
		return nil, apperror.PreconditionFailed(MsgInactiveUser)
	}

	updated := *user
	var newEmail, newUsername string
	if in.Email != nil {
		updated.Email = strings.TrimSpace(*in.Email)
		if err := validateEmail(updated.Email); err != nil {
			return nil, err
		}
		if updated.Email != user.Email {
			newEmail = updated.Email
		}
	}
	if in.Username != nil {
		updated.Username = strings.TrimSpace(*in.Username)
		if err := validateUsername(updated.Username); err != nil {
			return nil, err
		}
		if updated.Username != user.Username {
			newUsername = updated.Username
		}
	}
	if in.FullName != nil {
		name := *in.FullName
		updated.FullName = &name
	}
	if in.Password != nil {
		if err := validatePassword(*in.Password); err != nil {
			return nil, err
		}
		hash, err := s.passwords.Hash(*in.Password)
		if err != nil {
			return nil, apperror.ValidationFailed("password", err.Error())
		}
		updated.HashedPassword = hash
	}

	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		if err := ensureAvailable(ctx, tx.Users(), newEmail, newUsername, user.ID); err != nil {
			return err
		}
		return tx.Users().Update(ctx, &updated)
	})
	if err != nil {
		return nil, fmt.Errorf("service/user: updating user %d: %w", user.ID, err)
	}

	s.logger.Info("user updated", slog.Uint64("userID", uint64(user.ID)))
	return &updated, nil
}
