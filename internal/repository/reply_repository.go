package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/dazzlr/internal/model"
	"github.com/d60-Lab/dazzlr/pkg/apperr"
)

type ReplyRepository interface {
	Create(ctx context.Context, r *model.Reply) error
	GetByID(ctx context.Context, id string) (*model.Reply, error)
	ListByPost(ctx context.Context, postID string) ([]*model.Reply, error)
}

type replyRepository struct{ db *gorm.DB }

func NewReplyRepository(db *gorm.DB) ReplyRepository { return &replyRepository{db: db} }

func (r *replyRepository) Create(ctx context.Context, reply *model.Reply) error {
	return conn(ctx, r.db).Create(reply).Error
}

func (r *replyRepository) GetByID(ctx context.Context, id string) (*model.Reply, error) {
	var reply model.Reply
	if err := conn(ctx, r.db).Where("id = ?", id).First(&reply).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "reply not found")
		}
		return nil, err
	}
	return &reply, nil
}

func (r *replyRepository) ListByPost(ctx context.Context, postID string) ([]*model.Reply, error) {
	var res []*model.Reply
	err := conn(ctx, r.db).
		Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Find(&res).Error
	return res, err
}
