package gormdb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/sakif/reconnect/internal/apperror"
	"github.com/sakif/reconnect/internal/model"
	"github.com/sakif/reconnect/internal/repository"
)

// UserDB implements repository.UserRepository.
type UserDB struct {
	conn *gorm.DB
}

var _ repository.UserRepository = (*UserDB)(nil)

func (u *UserDB) Create(ctx context.Context, user *model.User) error {
	if err := u.conn.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return userConflict(err)
		}
		return fmt.Errorf("gormdb: creating user: %w", err)
	}
	return nil
}

func (u *UserDB) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := u.conn.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("gormdb: getting user %d: %w", id, err)
	}
	return &user, nil
}

func (u *UserDB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := u.conn.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user", email)
		}
		return nil, fmt.Errorf("gormdb: getting user by email: %w", err)
	}
	return &user, nil
}

func (u *UserDB) EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	return u.taken(ctx, "email", email, exceptID)
}

func (u *UserDB) UsernameTaken(ctx context.Context, username string, exceptID uint) (bool, error) {
	return u.taken(ctx, "username", username, exceptID)
}

func (u *UserDB) taken(ctx context.Context, column, value string, exceptID uint) (bool, error) {
	var n int64
	err := u.conn.WithContext(ctx).
		Model(&model.User{}).
		Where(column+" = ? AND id <> ?", value, exceptID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("gormdb: checking %s: %w", column, err)
	}
	return n > 0, nil
}

// Update writes the mutable account columns of user.
func (u *UserDB) Update(ctx context.Context, user *model.User) error {
	res := u.conn.WithContext(ctx).
		Model(user).
		Select("email", "username", "hashed_password", "full_name", "is_active").
		Updates(user)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return userConflict(res.Error)
		}
		return fmt.Errorf("gormdb: updating user %d: %w", user.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("user", user.ID)
	}
	return nil
}

// userConflict names the column behind a unique-index failure. Both SQLite
// and Postgres mention the index or column in the message.
func userConflict(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "email"):
		return apperror.Conflict("email", "Email already registered")
	case strings.Contains(msg, "username"):
		return apperror.Conflict("username", "Username already taken")
	}
	return apperror.Conflict("", "User already exists")
}
