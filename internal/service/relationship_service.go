package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/dazzlr/internal/repository"
	"github.com/d60-Lab/dazzlr/pkg/apperr"
	"github.com/d60-Lab/dazzlr/pkg/logger"
	"github.com/d60-Lab/dazzlr/pkg/metrics"
)

// RelationshipService 关系链服务：关注边与粉丝边在同一事务内成对维护
type RelationshipService interface {
	Follow(ctx context.Context, actorID, targetID string) error
	Unfollow(ctx context.Context, actorID, targetID string) error
	IsFollowing(ctx context.Context, actorID, targetID string) (bool, error)
	ListFollowing(ctx context.Context, userID string, page, pageSize int) ([]string, error)
	ListFans(ctx context.Context, userID string, page, pageSize int) ([]string, error)
	FollowingIDs(ctx context.Context, userID string) ([]string, error)
	FollowerIDs(ctx context.Context, userID string) ([]string, error)
}

type relationshipService struct {
	tx         repository.Transactor
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	fanRepo    repository.FanRepository
	timeout    time.Duration
}

func NewRelationshipService(
	tx repository.Transactor,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	fanRepo repository.FanRepository,
	timeout time.Duration,
) RelationshipService {
	return &relationshipService{tx: tx, userRepo: userRepo, followRepo: followRepo, fanRepo: fanRepo, timeout: timeout}
}

func (s *relationshipService) Follow(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return apperr.New(apperr.InvalidOperation, "you cannot follow yourself")
	}
	if err := s.ensureUsers(ctx, actorID, targetID); err != nil {
		return err
	}

	err := storageExec(ctx, s.timeout, "follow", func(ctx context.Context) error {
		return s.tx.InTx(ctx, func(ctx context.Context) error {
			created, err := s.followRepo.Create(ctx, actorID, targetID)
			if err != nil {
				return err
			}
			if !created {
				return apperr.New(apperr.AlreadyExists, "you are already following this user")
			}
			if _, err := s.fanRepo.Create(ctx, targetID, actorID); err != nil {
				return apperr.Wrap(apperr.Inconsistent, "write follower edge", err)
			}
			return nil
		})
	})
	s.observe("follow", err)
	return err
}

func (s *relationshipService) Unfollow(ctx context.Context, actorID, targetID string) error {
	if err := s.ensureUsers(ctx, actorID, targetID); err != nil {
		return err
	}

	err := storageExec(ctx, s.timeout, "unfollow", func(ctx context.Context) error {
		return s.tx.InTx(ctx, func(ctx context.Context) error {
			deleted, err := s.followRepo.Delete(ctx, actorID, targetID)
			if err != nil {
				return err
			}
			if !deleted {
				return apperr.New(apperr.InvalidState, "you are not following this user")
			}
			removed, err := s.fanRepo.Delete(ctx, targetID, actorID)
			if err != nil {
				return apperr.Wrap(apperr.Inconsistent, "delete follower edge", err)
			}
			if !removed {
				logger.Warn("follower edge was already missing",
					zap.String("follower", actorID), zap.String("followee", targetID))
			}
			return nil
		})
	})
	s.observe("unfollow", err)
	return err
}

func (s *relationshipService) IsFollowing(ctx context.Context, actorID, targetID string) (bool, error) {
	return storageCall(ctx, s.timeout, "check follow", func(ctx context.Context) (bool, error) {
		return s.followRepo.Exists(ctx, actorID, targetID)
	})
}

func (s *relationshipService) ListFollowing(ctx context.Context, userID string, page, pageSize int) ([]string, error) {
	offset, limit := pageBounds(page, pageSize)
	items, err := storageCall(ctx, s.timeout, "list following", func(ctx context.Context) ([]string, error) {
		rows, err := s.followRepo.ListFollowings(ctx, userID, offset, limit)
		if err != nil {
			return nil, err
		}
		ids := make([]string, len(rows))
		for i, it := range rows {
			ids[i] = it.FolloweeID
		}
		return ids, nil
	})
	return items, err
}

func (s *relationshipService) ListFans(ctx context.Context, userID string, page, pageSize int) ([]string, error) {
	offset, limit := pageBounds(page, pageSize)
	return storageCall(ctx, s.timeout, "list followers", func(ctx context.Context) ([]string, error) {
		rows, err := s.fanRepo.ListFans(ctx, userID, offset, limit)
		if err != nil {
			return nil, err
		}
		ids := make([]string, len(rows))
		for i, it := range rows {
			ids[i] = it.FanID
		}
		return ids, nil
	})
}

func (s *relationshipService) FollowingIDs(ctx context.Context, userID string) ([]string, error) {
	return storageCall(ctx, s.timeout, "load following", func(ctx context.Context) ([]string, error) {
		return s.followRepo.FolloweeIDs(ctx, userID)
	})
}

func (s *relationshipService) FollowerIDs(ctx context.Context, userID string) ([]string, error) {
	return storageCall(ctx, s.timeout, "load followers", func(ctx context.Context) ([]string, error) {
		return s.fanRepo.FanIDs(ctx, userID)
	})
}

func (s *relationshipService) ensureUsers(ctx context.Context, ids ...string) error {
	for _, id := range ids {
		ok, err := storageCall(ctx, s.timeout, "load user", func(ctx context.Context) (bool, error) {
			return s.userRepo.Exists(ctx, id)
		})
		if err != nil {
			return err
		}
		if !ok {
			return apperr.New(apperr.NotFound, "user not found")
		}
	}
	return nil
}

func (s *relationshipService) observe(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = string(apperr.KindOf(err))
		if outcome == "" {
			outcome = "error"
		}
	}
	metrics.GraphMutations.WithLabelValues(op, outcome).Inc()
	if apperr.KindOf(err) == apperr.Inconsistent {
		logger.Error("follow graph inconsistency", zap.String("op", op), zap.Error(err))
	}
}

func pageBounds(page, pageSize int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return (page - 1) * pageSize, pageSize
}
