package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/dazzlr/internal/model"
	"github.com/d60-Lab/dazzlr/internal/repository"
	"github.com/d60-Lab/dazzlr/pkg/logger"
)

// postDecorator 为帖子补齐点赞集合与作者摘要
type postDecorator struct {
	postRepo  repository.PostRepository
	snapshots SnapshotReader
	timeout   time.Duration
}

func (d *postDecorator) decorate(ctx context.Context, posts ...*model.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]string, len(posts))
	authors := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
		authors[i] = p.AuthorID
	}

	likes, err := storageCall(ctx, d.timeout, "load likes", func(ctx context.Context) (map[string][]string, error) {
		return d.postRepo.LikesOf(ctx, ids)
	})
	if err != nil {
		return err
	}
	for _, p := range posts {
		p.Likes = likes[p.ID]
		if p.Likes == nil {
			p.Likes = []string{}
		}
		if p.Hashtags == nil {
			p.Hashtags = []string{}
		}
		if p.Photos == nil {
			p.Photos = []model.Media{}
		}
	}

	if d.snapshots == nil {
		return nil
	}
	snaps, err := d.snapshots.Get(ctx, authors)
	if err != nil {
		// 作者摘要缺失不影响帖子本身
		logger.Warn("load author snapshots failed", zap.Error(err))
		return nil
	}
	for _, p := range posts {
		if s, ok := snaps[p.AuthorID]; ok {
			s := s
			p.Author = &s
		}
	}
	return nil
}
