package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/dazzlr/internal/model"
	"github.com/d60-Lab/dazzlr/pkg/apperr"
)

type PostRepository interface {
	Create(ctx context.Context, p *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	// ListTopLevelByAuthor 作者的顶层帖，最新在前
	ListTopLevelByAuthor(ctx context.Context, authorID string) ([]*model.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*model.Post, error)
	// ListReplies in_reply_to 为 postID 的帖子，最新在前
	ListReplies(ctx context.Context, postID string) ([]*model.Post, error)

	AddLike(ctx context.Context, postID, userID string) (bool, error)
	RemoveLike(ctx context.Context, postID, userID string) (bool, error)
	IsLiked(ctx context.Context, postID, userID string) (bool, error)
	// LikesOf 批量加载点赞集合，key 为 postID
	LikesOf(ctx context.Context, postIDs []string) (map[string][]string, error)
}

type postRepository struct{ db *gorm.DB }

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, p *model.Post) error {
	return conn(ctx, r.db).Create(p).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var p model.Post
	if err := conn(ctx, r.db).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "post not found")
		}
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) ListTopLevelByAuthor(ctx context.Context, authorID string) ([]*model.Post, error) {
	var res []*model.Post
	err := conn(ctx, r.db).
		Where("author_id = ? AND in_reply_to IS NULL", authorID).
		Order("created_at DESC, id DESC").
		Find(&res).Error
	return res, err
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID string) ([]*model.Post, error) {
	var res []*model.Post
	err := conn(ctx, r.db).
		Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Find(&res).Error
	return res, err
}

func (r *postRepository) ListReplies(ctx context.Context, postID string) ([]*model.Post, error) {
	var res []*model.Post
	err := conn(ctx, r.db).
		Where("in_reply_to = ?", postID).
		Order("created_at DESC, id DESC").
		Find(&res).Error
	return res, err
}

func (r *postRepository) AddLike(ctx context.Context, postID, userID string) (bool, error) {
	res := conn(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.PostLike{PostID: postID, UserID: userID})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *postRepository) RemoveLike(ctx context.Context, postID, userID string) (bool, error) {
	res := conn(ctx, r.db).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&model.PostLike{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *postRepository) IsLiked(ctx context.Context, postID, userID string) (bool, error) {
	var cnt int64
	err := conn(ctx, r.db).Model(&model.PostLike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *postRepository) LikesOf(ctx context.Context, postIDs []string) (map[string][]string, error) {
	out := make(map[string][]string, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}
	var likes []model.PostLike
	if err := conn(ctx, r.db).
		Where("post_id IN ?", postIDs).
		Order("created_at ASC").
		Find(&likes).Error; err != nil {
		return nil, err
	}
	for _, l := range likes {
		out[l.PostID] = append(out[l.PostID], l.UserID)
	}
	return out, nil
}
