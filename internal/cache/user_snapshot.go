package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/dazzlr/internal/model"
	"github.com/d60-Lab/dazzlr/pkg/logger"
)

// UserLoader 批量加载用户，缓存未命中时回源
type UserLoader interface {
	ListByIDs(ctx context.Context, ids []string) ([]*model.User, error)
}

// UserSnapshots 用户摘要缓存：Redis MGET 批量读取，未命中回源并回填。
// client 为 nil 时直接回源。
type UserSnapshots struct {
	loader UserLoader
	client *redis.Client
	ttl    time.Duration

	sourceLoads atomic.Int64
}

func NewUserSnapshots(loader UserLoader, client *redis.Client, ttl time.Duration) *UserSnapshots {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &UserSnapshots{loader: loader, client: client, ttl: ttl}
}

func snapshotKey(id string) string { return fmt.Sprintf("user:snapshot:%s", id) }

// Get 返回 ids 对应的摘要，不存在的用户不出现在结果中
func (s *UserSnapshots) Get(ctx context.Context, ids []string) (map[string]model.UserSummary, error) {
	ids = dedupe(ids)
	out := make(map[string]model.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	if s.client != nil {
		keys := make([]string, len(ids))
		for i, id := range ids {
			keys[i] = snapshotKey(id)
		}
		vals, err := s.client.MGet(ctx, keys...).Result()
		if err != nil {
			logger.Warn("snapshot cache read failed", zap.Error(err))
		}
		for i, v := range vals {
			str, ok := v.(string)
			if !ok {
				continue
			}
			var snap model.UserSummary
			if uErr := json.Unmarshal([]byte(str), &snap); uErr == nil {
				out[ids[i]] = snap
			}
		}
	}

	missing := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := out[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	s.sourceLoads.Add(1)
	users, err := s.loader.ListByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}

	var pipe redis.Pipeliner
	if s.client != nil {
		pipe = s.client.Pipeline()
	}
	for _, u := range users {
		snap := u.Summary()
		out[u.ID] = snap
		if pipe == nil {
			continue
		}
		if payload, err := json.Marshal(snap); err == nil {
			pipe.Set(ctx, snapshotKey(u.ID), payload, s.ttl)
		}
	}
	if pipe != nil && len(users) > 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			logger.Warn("snapshot cache fill failed", zap.Error(err))
		}
	}
	return out, nil
}

// Invalidate 资料变更或积分变化后删除缓存
func (s *UserSnapshots) Invalidate(ctx context.Context, ids ...string) {
	if s.client == nil || len(ids) == 0 {
		return
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = snapshotKey(id)
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		logger.Warn("snapshot cache invalidate failed", zap.Strings("users", ids), zap.Error(err))
	}
}

// SourceLoads 回源次数
func (s *UserSnapshots) SourceLoads() int64 { return s.sourceLoads.Load() }

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
