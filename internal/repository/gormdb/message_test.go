package gormdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/reconnect/internal/apperror"
	"github.com/sakif/reconnect/internal/model"
	"github.com/sakif/reconnect/internal/repository"
)

func TestMessageCreateAndList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "ada@example.com", "ada")

	warning := "감정적 자극이 있을 수 있습니다."
	first := &model.Message{UserID: user.ID, Purpose: "안부", ToneStyle: "curious", Content: "안부에 대해...", PositiveReaction: 71.4}
	second := &model.Message{UserID: user.ID, Purpose: "사과", ToneStyle: "gentle", Content: "사과를...", PositiveReaction: 55.0, Warning: &warning}
	require.NoError(t, db.Messages().Create(ctx, first))
	require.NoError(t, db.Messages().Create(ctx, second))

	list, err := db.Messages().List(ctx, user.ID, repository.ListOptions{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")
	assert.Equal(t, "gentle", list[0].ToneStyle)
	require.NotNil(t, list[0].Warning)
	assert.Equal(t, warning, *list[0].Warning)
	assert.InDelta(t, 71.4, list[1].PositiveReaction, 1e-9)
}

func TestMessage_ForeignOwnerIsNotFound(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	ada := createTestUser(t, db, "ada@example.com", "ada")
	grace := createTestUser(t, db, "grace@example.com", "grace")

	msg := &model.Message{UserID: ada.ID, Purpose: "p", ToneStyle: "logical", Content: "c", PositiveReaction: 60}
	require.NoError(t, db.Messages().Create(ctx, msg))

	_, err := db.Messages().GetByID(ctx, grace.ID, msg.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	list, err := db.Messages().List(ctx, grace.ID, repository.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := db.Messages().GetByID(ctx, ada.ID, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "c", got.Content)
}
