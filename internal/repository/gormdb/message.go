package gormdb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sakif/reconnect/internal/apperror"
	"github.com/sakif/reconnect/internal/model"
	"github.com/sakif/reconnect/internal/repository"
)

// MessageDB implements repository.MessageRepository. Messages are
// insert-only.
type MessageDB struct {
	conn *gorm.DB
}

var _ repository.MessageRepository = (*MessageDB)(nil)

func (m *MessageDB) Create(ctx context.Context, msg *model.Message) error {
	if err := m.conn.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("gormdb: creating message: %w", err)
	}
	return nil
}

func (m *MessageDB) GetByID(ctx context.Context, userID, id uint) (*model.Message, error) {
	var msg model.Message
	err := m.conn.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("message", id)
		}
		return nil, fmt.Errorf("gormdb: getting message %d: %w", id, err)
	}
	return &msg, nil
}

func (m *MessageDB) List(ctx context.Context, userID uint, opts repository.ListOptions) ([]model.Message, error) {
	messages := []model.Message{}
	err := m.conn.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(opts.Offset).
		Limit(limitOf(opts)).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("gormdb: listing messages: %w", err)
	}
	return messages, nil
}
