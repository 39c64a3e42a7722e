package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/dazzlr/internal/model"
	"github.com/d60-Lab/dazzlr/pkg/apperr"
)

type ConversationRepository interface {
	// CreateIfAbsent 按 pair_key 幂等插入，随后读回唯一的那一条
	CreateIfAbsent(ctx context.Context, userA, userB string) (*model.Conversation, error)
	GetByID(ctx context.Context, id string) (*model.Conversation, error)
	// ListWithMessages 用户参与且至少有一条消息的会话，按 updated_at 倒序
	ListWithMessages(ctx context.Context, userID string) ([]*model.Conversation, error)
	UpdateSnapshot(ctx context.Context, id, latest string, at time.Time) error
}

type conversationRepository struct{ db *gorm.DB }

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) CreateIfAbsent(ctx context.Context, userA, userB string) (*model.Conversation, error) {
	low, high, key := model.PairKey(userA, userB)
	c := &model.Conversation{ID: model.NewID(), UserA: low, UserB: high, PairKey: key}
	if err := conn(ctx, r.db).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "pair_key"}}, DoNothing: true}).
		Create(c).Error; err != nil {
		return nil, err
	}

	var out model.Conversation
	if err := conn(ctx, r.db).Where("pair_key = ?", key).First(&out).Error; err != nil {
		return nil, err
	}
	out.Fill()
	return &out, nil
}

func (r *conversationRepository) GetByID(ctx context.Context, id string) (*model.Conversation, error) {
	var c model.Conversation
	if err := conn(ctx, r.db).Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "conversation not found")
		}
		return nil, err
	}
	c.Fill()
	return &c, nil
}

func (r *conversationRepository) ListWithMessages(ctx context.Context, userID string) ([]*model.Conversation, error) {
	var res []*model.Conversation
	err := conn(ctx, r.db).
		Where("(user_a = ? OR user_b = ?)", userID, userID).
		Where("EXISTS (SELECT 1 FROM messages WHERE messages.conversation_id = conversations.id)").
		Order("updated_at DESC, id DESC").
		Find(&res).Error
	if err != nil {
		return nil, err
	}
	for _, c := range res {
		c.Fill()
	}
	return res, nil
}

func (r *conversationRepository) UpdateSnapshot(ctx context.Context, id, latest string, at time.Time) error {
	return conn(ctx, r.db).Model(&model.Conversation{}).
		Where("id = ?", id).
		Updates(map[string]any{"latest_message": latest, "updated_at": at}).Error
}
