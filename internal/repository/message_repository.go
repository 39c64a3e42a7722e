package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/dazzlr/internal/model"
	"github.com/d60-Lab/dazzlr/pkg/apperr"
)

type MessageRepository interface {
	Create(ctx context.Context, m *model.Message) error
	// ListByConversation 按发送时间升序
	ListByConversation(ctx context.Context, conversationID string) ([]*model.Message, error)
	Last(ctx context.Context, conversationID string) (*model.Message, error)
}

type messageRepository struct{ db *gorm.DB }

func NewMessageRepository(db *gorm.DB) MessageRepository { return &messageRepository{db: db} }

func (r *messageRepository) Create(ctx context.Context, m *model.Message) error {
	return conn(ctx, r.db).Create(m).Error
}

func (r *messageRepository) ListByConversation(ctx context.Context, conversationID string) ([]*model.Message, error) {
	var res []*model.Message
	err := conn(ctx, r.db).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&res).Error
	return res, err
}

func (r *messageRepository) Last(ctx context.Context, conversationID string) (*model.Message, error) {
	var m model.Message
	err := conn(ctx, r.db).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "no messages in conversation")
		}
		return nil, err
	}
	return &m, nil
}
