package service

import (
	"context"
	"time"

	"github.com/d60-Lab/dazzlr/internal/model"
	"github.com/d60-Lab/dazzlr/pkg/apperr"
)

const defaultStorageTimeout = 5 * time.Second

// storageCall 给单次存储调用加超时，并把底层错误归类
func storageCall[T any](ctx context.Context, timeout time.Duration, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	if timeout <= 0 {
		timeout = defaultStorageTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	v, err := fn(ctx)
	if err != nil {
		var zero T
		return zero, apperr.FromStorage(op, err)
	}
	return v, nil
}

func storageExec(ctx context.Context, timeout time.Duration, op string, fn func(ctx context.Context) error) error {
	_, err := storageCall(ctx, timeout, op, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// SnapshotReader 用户摘要读取（Redis 缓存或直接回源）
type SnapshotReader interface {
	Get(ctx context.Context, ids []string) (map[string]model.UserSummary, error)
}

// SnapshotInvalidator 用户资料变化后失效缓存
type SnapshotInvalidator interface {
	Invalidate(ctx context.Context, ids ...string)
}
