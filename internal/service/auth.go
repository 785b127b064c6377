// Package service holds the business rules. Services take the caller's
// context and, for user-owned data, the authenticated user's id as explicit
// parameters; they never read identity from ambient state.
//
//	handler (HTTP) → service (rules, transactions) → repository.Store (gorm)
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/reconnect/internal/apperror"
	"github.com/sakif/reconnect/internal/auth"
	"github.com/sakif/reconnect/internal/model"
	"github.com/sakif/reconnect/internal/repository"
)

// Messages returned to clients for account errors.
const (
	MsgEmailRegistered = "Email already registered"
	MsgUsernameTaken   = "Username already taken"
	MsgBadCredentials  = "Incorrect email or password"
	MsgInactiveUser    = "Inactive user"
)

const (
	TokenTypeBearer   = "bearer"
	MinPasswordLength = 8
	MaxUsernameLength = 100
)

// AuthService registers accounts and exchanges credentials for tokens.
type AuthService struct {
	store     repository.Store
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	store repository.Store,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		store:     store,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// SignupInput is the data needed to open an account.
type SignupInput struct {
	Email    string
	Username string
	Password string
	FullName *string
}

// TokenResult is an issued access token.
type TokenResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Signup creates an active account. The email is checked before the
// username, so a request clashing on both reports the email.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*model.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	if err := validateCredentials(in.Email, in.Username, in.Password); err != nil {
		return nil, err
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, apperror.ValidationFailed("password", err.Error())
	}

	user := &model.User{
		Email:          in.Email,
		Username:       in.Username,
		HashedPassword: hash,
		FullName:       in.FullName,
		IsActive:       true,
	}

	err = s.store.WithinTx(ctx, func(tx repository.Store) error {
		if err := ensureAvailable(ctx, tx.Users(), in.Email, in.Username, 0); err != nil {
			return err
		}
		return tx.Users().Create(ctx, user)
	})
	if err != nil {
		return nil, fmt.Errorf("service/auth: signing up %s: %w", in.Email, err)
	}

	s.logger.Info("user registered",
		slog.Uint64("userID", uint64(user.ID)),
		slog.String("username", user.Username),
	)
	return user, nil
}

// Login verifies an email and password and issues a token. Unknown email,
// wrong password and inactive account all fail with the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenResult, error) {
	user, err := s.store.Users().GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized(MsgBadCredentials)
		}
		return nil, fmt.Errorf("service/auth: looking up %s: %w", email, err)
	}

	if err := s.passwords.Verify(user.HashedPassword, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, apperror.Unauthorized(MsgBadCredentials)
		}
		return nil, fmt.Errorf("service/auth: verifying password: %w", err)
	}
	if !user.IsActive {
		return nil, apperror.Unauthorized(MsgBadCredentials)
	}

	token, err := s.tokens.Generate(user.Email)
	if err != nil {
		return nil, fmt.Errorf("service/auth: issuing token for user %d: %w", user.ID, err)
	}

	s.logger.Info("user logged in", slog.Uint64("userID", uint64(user.ID)))
	return &TokenResult{
		AccessToken: token,
		TokenType:   TokenTypeBearer,
		ExpiresIn:   int(s.tokens.TTL().Seconds()),
	}, nil
}

// ensureAvailable reports the first of email or username already used by
// an account other than exceptID. Empty values are skipped.
func ensureAvailable(ctx context.Context, users repository.UserRepository, email, username string, exceptID uint) error {
	if email != "" {
		taken, err := users.EmailTaken(ctx, email, exceptID)
		if err != nil {
			return err
		}
		if taken {
			return apperror.Conflict("email", MsgEmailRegistered)
		}
	}
	if username != "" {
		taken, err := users.UsernameTaken(ctx, username, exceptID)
		if err != nil {
			return err
		}
		if taken {
			return apperror.Conflict("username", MsgUsernameTaken)
		}
	}
	return nil
}

func validateCredentials(email, username, password string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := validateUsername(username); err != nil {
		return err
	}
	return validatePassword(password)
}

func validateEmail(email string) error {
	if !strings.Contains(email, "@") {
		return apperror.ValidationFailed("email", "email must be a valid address")
	}
	return nil
}

func validateUsername(username string) error {
	if username == "" {
		return apperror.ValidationFailed("username", "username is required")
	}
	if len([]rune(username)) > MaxUsernameLength {
		return apperror.ValidationFailed("username",
			fmt.Sprintf("username must be %d characters or fewer", MaxUsernameLength))
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return apperror.ValidationFailed("password",
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	return nil
}
