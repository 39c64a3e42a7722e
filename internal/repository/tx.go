package repository

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// Transactor 在一个数据库事务内执行 fn，fn 内经 ctx 调用的仓储方法共享该事务
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type transactor struct{ db *gorm.DB }

func NewTransactor(db *gorm.DB) Transactor { return &transactor{db: db} }

func (t *transactor) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn 优先使用 ctx 中的事务
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
