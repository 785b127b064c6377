package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/reconnect/internal/apperror"
	"github.com/sakif/reconnect/internal/auth"
)

func newTestUserService(t *testing.T) (*UserService, *memStore) {
	t.Helper()
	store := newMemStore()
	return NewUserService(store, auth.NewPasswordServiceForTest(), testLogger()), store
}

func TestMe(t *testing.T) {
	svc, store := newTestUserService(t)
	user := seedUser(t, store, "a@example.com", "a")

	got, err := svc.Me(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	user.IsActive = false
	_, err = svc.Me(context.Background(), user)
	require.ErrorIs(t, err, apperror.ErrPrecondition)
	assert.Equal(t, MsgInactiveUser, err.Error())
}

func TestUpdate_AppliesOnlySentFields(t *testing.T) {
	svc, store := newTestUserService(t)
	user := seedUser(t, store, "a@example.com", "a")

	got, err := svc.Update(context.Background(), user, UserUpdate{FullName: strPtr("Lee Minho")})
	require.NoError(t, err)

	assert.Equal(t, "a@example.com", got.Email)
	assert.Equal(t, "a", got.Username)
	require.NotNil(t, got.FullName)
	assert.Equal(t, "Lee Minho", *got.FullName)
	assert.Equal(t, "Lee Minho", *store.users[user.ID].FullName)
}

func TestUpdate_RehashesPassword(t *testing.T) {
	svc, store := newTestUserService(t)
	user := seedUser(t, store, "a@example.com", "a")

	_, err := svc.Update(context.Background(), user, UserUpdate{Password: strPtr("new-password")})
	require.NoError(t, err)

	stored := store.users[user.ID]
	assert.NotEqual(t, "x", stored.HashedPassword)
	assert.NoError(t, auth.NewPasswordServiceForTest().Verify(stored.HashedPassword, "new-password"))
}

func TestUpdate_KeepingOwnEmailIsNotAConflict(t *testing.T) {
	svc, store := newTestUserService(t)
	user := seedUser(t, store, "a@example.com", "a")

	_, err := svc.Update(context.Background(), user, UserUpdate{
		Email:    strPtr("a@example.com"),
		Username: strPtr("a"),
	})
	require.NoError(t, err)
}

func TestUpdate_ConflictWithAnotherUser(t *testing.T) {
	svc, store := newTestUserService(t)
	user := seedUser(t, store, "a@example.com", "a")
	seedUser(t, store, "b@example.com", "b")

	tests := []struct {
		name      string
		in        UserUpdate
		wantField string
	}{
		{"email", UserUpdate{Email: strPtr("b@example.com")}, "email"},
		{"username", UserUpdate{Username: strPtr("b")}, "username"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), user, tt.in)

			require.ErrorIs(t, err, apperror.ErrConflict)
			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.wantField, appErr.Field)
			assert.Equal(t, "a@example.com", store.users[user.ID].Email)
		})
	}
}

func TestUpdate_RejectsInvalidValues(t *testing.T) {
	svc, store := newTestUserService(t)
	user := seedUser(t, store, "a@example.com", "a")

	_, err := svc.Update(context.Background(), user, UserUpdate{Email: strPtr("not-an-email")})
	require.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.Update(context.Background(), user, UserUpdate{Password: strPtr("short")})
	require.ErrorIs(t, err, apperror.ErrValidation)
}
