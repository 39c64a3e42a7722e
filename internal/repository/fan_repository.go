package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/dazzlr/internal/model"
)

type FanRepository interface {
	Create(ctx context.Context, userID, fanID string) (bool, error)
	Delete(ctx context.Context, userID, fanID string) (bool, error)
	ListFans(ctx context.Context, userID string, offset, limit int) ([]*model.Fan, error)
	FanIDs(ctx context.Context, userID string) ([]string, error)
	Count(ctx context.Context, userID string) (int64, error)
}

type fanRepository struct{ db *gorm.DB }

func NewFanRepository(db *gorm.DB) FanRepository { return &fanRepository{db: db} }

func (r *fanRepository) Create(ctx context.Context, userID, fanID string) (bool, error) {
	f := &model.Fan{ID: model.NewID(), UserID: userID, FanID: fanID}
	res := conn(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(f)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *fanRepository) Delete(ctx context.Context, userID, fanID string) (bool, error) {
	res := conn(ctx, r.db).Where("user_id = ? AND fan_id = ?", userID, fanID).Delete(&model.Fan{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *fanRepository) ListFans(ctx context.Context, userID string, offset, limit int) ([]*model.Fan, error) {
	var res []*model.Fan
	err := conn(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (r *fanRepository) FanIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := conn(ctx, r.db).
		Model(&model.Fan{}).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Pluck("fan_id", &ids).Error
	return ids, err
}

func (r *fanRepository) Count(ctx context.Context, userID string) (int64, error) {
	var cnt int64
	err := conn(ctx, r.db).Model(&model.Fan{}).Where("user_id = ?", userID).Count(&cnt).Error
	return cnt, err
}
