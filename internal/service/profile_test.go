package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/reconnect/internal/apperror"
	"github.com/sakif/reconnect/internal/model"
)

func newTestProfileService(t *testing.T) (*ProfileService, *memStore) {
	t.Helper()
	store := newMemStore()
	return NewProfileService(store, testLogger()), store
}

func decodeProfileInput(t *testing.T, body string) ProfileInput {
	t.Helper()
	var in ProfileInput
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	return in
}

func TestProfileCreate(t *testing.T) {
	svc, _ := newTestProfileService(t)

	p, err := svc.Create(context.Background(), 3, decodeProfileInput(t,
		`{"bio":"hi","interests":["hiking","film"],"preferences":{"contact":"text"}}`))
	require.NoError(t, err)

	assert.Equal(t, "hi", *p.Bio)
	assert.JSONEq(t, `["hiking","film"]`, string(p.Interests))
	assert.JSONEq(t, `{"contact":"text"}`, string(p.Preferences))
	assert.JSONEq(t, `[]`, string(p.Goals))
	assert.Equal(t, model.ProfileStep(0), p.OnboardingCompleted)
}

func TestProfileCreate_Twice(t *testing.T) {
	svc, _ := newTestProfileService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, 3, ProfileInput{})
	require.NoError(t, err)

	_, err = svc.Create(ctx, 3, ProfileInput{})
	require.ErrorIs(t, err, apperror.ErrConflict)
}

func TestProfileUpdate_MergesPresentFields(t *testing.T) {
	svc, _ := newTestProfileService(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, 3, decodeProfileInput(t, `{"bio":"hi","goals":["sleep well"]}`))
	require.NoError(t, err)

	p, err := svc.Update(ctx, 3, decodeProfileInput(t, `{"bio":null,"interests":["music"]}`))
	require.NoError(t, err)

	assert.Nil(t, p.Bio)
	assert.JSONEq(t, `["music"]`, string(p.Interests))
	assert.JSONEq(t, `["sleep well"]`, string(p.Goals))
}

func TestProfileUpdate_Missing(t *testing.T) {
	svc, _ := newTestProfileService(t)

	_, err := svc.Update(context.Background(), 3, ProfileInput{Bio: Some(strPtr("x"))})
	require.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Contains(t, err.Error(), "Profile not found")

	_, err = svc.Get(context.Background(), 3)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestProfileSetStep(t *testing.T) {
	svc, _ := newTestProfileService(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, 3, ProfileInput{})
	require.NoError(t, err)

	for _, step := range []model.ProfileStep{0, 6, -1} {
		_, err := svc.SetStep(ctx, 3, step)
		require.ErrorIs(t, err, apperror.ErrValidation, "step %d", step)
	}

	p, err := svc.SetStep(ctx, 3, model.StepGoals)
	require.NoError(t, err)
	assert.Equal(t, model.StepGoals, p.OnboardingCompleted)

	got, err := svc.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, model.StepGoals, got.OnboardingCompleted)
}

func TestProfileSetStep_NoProfile(t *testing.T) {
	svc, _ := newTestProfileService(t)

	_, err := svc.SetStep(context.Background(), 3, model.StepProfile)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}
