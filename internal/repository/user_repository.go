package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/dazzlr/internal/model"
	"github.com/d60-Lab/dazzlr/pkg/apperr"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByHandle(ctx context.Context, handle string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	HandleExists(ctx context.Context, handle string) (bool, error)
	Exists(ctx context.Context, id string) (bool, error)
	ListByIDs(ctx context.Context, ids []string) ([]*model.User, error)
	List(ctx context.Context, offset, limit int) ([]*model.User, error)
	// Update 只更新 columns 指定的列（允许零值）
	Update(ctx context.Context, u *model.User, columns ...string) error
	AddPoints(ctx context.Context, id string, delta int64) error
}

type userRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	err := conn(ctx, r.db).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Wrap(apperr.AlreadyExists, "user already exists", err)
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepository) GetByHandle(ctx context.Context, handle string) (*model.User, error) {
	return r.first(ctx, "handle = ?", handle)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *userRepository) first(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	if err := conn(ctx, r.db).Where(query, arg).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) HandleExists(ctx context.Context, handle string) (bool, error) {
	var cnt int64
	err := conn(ctx, r.db).Model(&model.User{}).Where("handle = ?", handle).Count(&cnt).Error
	return cnt > 0, err
}

func (r *userRepository) Exists(ctx context.Context, id string) (bool, error) {
	var cnt int64
	err := conn(ctx, r.db).Model(&model.User{}).Where("id = ?", id).Count(&cnt).Error
	return cnt > 0, err
}

func (r *userRepository) ListByIDs(ctx context.Context, ids []string) ([]*model.User, error) {
	if len(ids) == 0 {
		return []*model.User{}, nil
	}
	var res []*model.User
	err := conn(ctx, r.db).Where("id IN ?", ids).Find(&res).Error
	return res, err
}

func (r *userRepository) List(ctx context.Context, offset, limit int) ([]*model.User, error) {
	var res []*model.User
	err := conn(ctx, r.db).Order("joined_at DESC, id DESC").Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (r *userRepository) Update(ctx context.Context, u *model.User, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	res := conn(ctx, r.db).Model(u).Select(columns).Updates(u)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "user not found")
	}
	return nil
}

func (r *userRepository) AddPoints(ctx context.Context, id string, delta int64) error {
	res := conn(ctx, r.db).Model(&model.User{}).
		Where("id = ?", id).
		UpdateColumn("points", gorm.Expr("points + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "user not found")
	}
	return nil
}
