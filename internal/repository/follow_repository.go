package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/dazzlr/internal/model"
)

type FollowRepository interface {
	// Create 返回是否新写入；已存在时为 false
	Create(ctx context.Context, followerID, followeeID string) (bool, error)
	// Delete 返回是否删除了记录
	Delete(ctx context.Context, followerID, followeeID string) (bool, error)
	Exists(ctx context.Context, followerID, followeeID string) (bool, error)
	ListFollowings(ctx context.Context, followerID string, offset, limit int) ([]*model.Follow, error)
	// FolloweeIDs 全部关注对象，按关注时间升序
	FolloweeIDs(ctx context.Context, followerID string) ([]string, error)
	Count(ctx context.Context, followerID string) (int64, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository { return &followRepository{db: db} }

func (r *followRepository) Create(ctx context.Context, followerID, followeeID string) (bool, error) {
	f := &model.Follow{ID: model.NewID(), FollowerID: followerID, FolloweeID: followeeID}
	// 并发重复关注落在唯一索引上，不报错但 RowsAffected 为 0
	res := conn(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(f)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followeeID string) (bool, error) {
	res := conn(ctx, r.db).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&model.Follow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followeeID string) (bool, error) {
	var cnt int64
	if err := conn(ctx, r.db).
		Model(&model.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *followRepository) ListFollowings(ctx context.Context, followerID string, offset, limit int) ([]*model.Follow, error) {
	var res []*model.Follow
	err := conn(ctx, r.db).
		Where("follower_id = ?", followerID).
		Order("created_at ASC, id ASC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (r *followRepository) FolloweeIDs(ctx context.Context, followerID string) ([]string, error) {
	var ids []string
	err := conn(ctx, r.db).
		Model(&model.Follow{}).
		Where("follower_id = ?", followerID).
		Order("created_at ASC, id ASC").
		Pluck("followee_id", &ids).Error
	return ids, err
}

func (r *followRepository) Count(ctx context.Context, followerID string) (int64, error) {
	var cnt int64
	err := conn(ctx, r.db).Model(&model.Follow{}).Where("follower_id = ?", followerID).Count(&cnt).Error
	return cnt, err
}
