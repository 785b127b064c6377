package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/reconnect/internal/apperror"
	"github.com/sakif/reconnect/internal/repository"
)

func newTestMissionService(t *testing.T) (*MissionService, *memStore) {
	t.Helper()
	store := newMemStore()
	return NewMissionService(store, testLogger()), store
}

func decodeMissionUpdate(t *testing.T, body string) MissionUpdate {
	t.Helper()
	var in MissionUpdate
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	return in
}

// =========================================================================
// CREATE / LIST
// =========================================================================

func TestMissionCreate(t *testing.T) {
	svc, _ := newTestMissionService(t)

	m, err := svc.Create(context.Background(), 1, MissionInput{Title: "  Write a letter ", Description: strPtr("to myself")})
	require.NoError(t, err)

	assert.NotZero(t, m.ID)
	assert.Equal(t, uint(1), m.UserID)
	assert.Equal(t, "Write a letter", m.Title)
	assert.False(t, m.IsCompleted)
}

func TestMissionCreate_EmptyTitle(t *testing.T) {
	svc, store := newTestMissionService(t)

	_, err := svc.Create(context.Background(), 1, MissionInput{Title: " "})
	require.ErrorIs(t, err, apperror.ErrValidation)
	assert.Empty(t, store.missions)
}

func TestMissionList_OnlyOwnInOrder(t *testing.T) {
	svc, _ := newTestMissionService(t)
	ctx := context.Background()
	for _, title := range []string{"a", "b", "c"} {
		_, err := svc.Create(ctx, 1, MissionInput{Title: title})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, 2, MissionInput{Title: "someone else"})
	require.NoError(t, err)

	list, err := svc.List(ctx, 1, repository.ListOptions{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "a", list[0].Title)
	assert.Equal(t, "c", list[2].Title)

	page, err := svc.List(ctx, 1, repository.ListOptions{Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b", page[0].Title)
}

func TestPage(t *testing.T) {
	tests := []struct {
		name      string
		in        repository.ListOptions
		want      repository.ListOptions
		wantField string
	}{
		{"defaults", repository.ListOptions{}, repository.ListOptions{Limit: 100}, ""},
		{"explicit", repository.ListOptions{Offset: 5, Limit: 10}, repository.ListOptions{Offset: 5, Limit: 10}, ""},
		{"max", repository.ListOptions{Limit: 100}, repository.ListOptions{Limit: 100}, ""},
		{"over max", repository.ListOptions{Limit: 101}, repository.ListOptions{}, "limit"},
		{"negative skip", repository.ListOptions{Offset: -1}, repository.ListOptions{}, "skip"},
		{"negative limit", repository.ListOptions{Limit: -1}, repository.ListOptions{}, "limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Page(tt.in)
			if tt.wantField != "" {
				require.ErrorIs(t, err, apperror.ErrValidation)
				assert.Equal(t, tt.wantField, err.(*apperror.AppError).Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// =========================================================================
// GET / UPDATE / DELETE
// =========================================================================

func TestMission_ForeignAndMissingLookTheSame(t *testing.T) {
	svc, store := newTestMissionService(t)
	ctx := context.Background()
	m, err := svc.Create(ctx, 1, MissionInput{Title: "mine"})
	require.NoError(t, err)

	for _, id := range []uint{m.ID, 999} {
		_, err := svc.Get(ctx, 2, id)
		require.ErrorIs(t, err, apperror.ErrNotFound)
		assert.Equal(t, MsgMissionNotFound, err.Error())

		_, err = svc.Update(ctx, 2, id, decodeMissionUpdate(t, `{"title":"stolen"}`))
		require.ErrorIs(t, err, apperror.ErrNotFound)
		assert.Equal(t, MsgMissionNotFound, err.Error())

		err = svc.Delete(ctx, 2, id)
		require.ErrorIs(t, err, apperror.ErrNotFound)
		assert.Equal(t, MsgMissionNotFound, err.Error())
	}

	assert.Equal(t, "mine", store.missions[m.ID].Title)
}

func TestMissionUpdate_MergesPresentFields(t *testing.T) {
	svc, _ := newTestMissionService(t)
	ctx := context.Background()
	m, err := svc.Create(ctx, 1, MissionInput{Title: "walk", Description: strPtr("30 minutes")})
	require.NoError(t, err)

	got, err := svc.Update(ctx, 1, m.ID, decodeMissionUpdate(t, `{"is_completed":true}`))
	require.NoError(t, err)
	assert.True(t, got.IsCompleted)
	assert.Equal(t, "walk", got.Title)
	assert.Equal(t, "30 minutes", *got.Description)

	got, err = svc.Update(ctx, 1, m.ID, decodeMissionUpdate(t, `{"title":"run","description":null}`))
	require.NoError(t, err)
	assert.Equal(t, "run", got.Title)
	assert.Nil(t, got.Description)
	assert.True(t, got.IsCompleted)
}

func TestMissionUpdate_Validation(t *testing.T) {
	svc, _ := newTestMissionService(t)
	ctx := context.Background()
	m, err := svc.Create(ctx, 1, MissionInput{Title: "walk"})
	require.NoError(t, err)

	for _, body := range []string{`{"title":null}`, `{"title":""}`, `{"is_completed":null}`} {
		_, err := svc.Update(ctx, 1, m.ID, decodeMissionUpdate(t, body))
		require.ErrorIs(t, err, apperror.ErrValidation, body)
	}
}

func TestMissionDelete(t *testing.T) {
	svc, store := newTestMissionService(t)
	ctx := context.Background()
	m, err := svc.Create(ctx, 1, MissionInput{Title: "walk"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 1, m.ID))
	assert.Empty(t, store.missions)

	err = svc.Delete(ctx, 1, m.ID)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestMission_StoreFailureIsNotNotFound(t *testing.T) {
	svc, store := newTestMissionService(t)
	store.fail = errDriver

	_, err := svc.Get(context.Background(), 1, 1)
	require.ErrorIs(t, err, errDriver)
	assert.NotErrorIs(t, err, apperror.ErrNotFound)
}
