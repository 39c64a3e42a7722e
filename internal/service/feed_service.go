package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/d60-Lab/dazzlr/internal/model"
	"github.com/d60-Lab/dazzlr/internal/repository"
	"github.com/d60-Lab/dazzlr/pkg/apperr"
	"github.com/d60-Lab/dazzlr/pkg/metrics"
)

// FeedService 读时扩散的信息流与帖子线程
type FeedService interface {
	// GetFeed 关注对象的顶层帖，按创建时间倒序；不落库、不缓存
	GetFeed(ctx context.Context, userID string) ([]*model.Post, error)
	GetPostReplies(ctx context.Context, postID string) ([]*model.Post, error)
	// GetReplyAncestors 从根帖到直接父帖的祖先链
	GetReplyAncestors(ctx context.Context, postID string) ([]*model.Post, error)
	ToggleLike(ctx context.Context, postID, userID string) (*model.Post, error)
	IsLiked(ctx context.Context, postID, userID string) (*model.Post, bool, error)
}

type FeedOptions struct {
	StorageTimeout   time.Duration
	MaxAncestorDepth int
	MaxConcurrency   int
}

type feedService struct {
	tx         repository.Transactor
	followRepo repository.FollowRepository
	postRepo   repository.PostRepository
	deco       *postDecorator
	opts       FeedOptions
}

func NewFeedService(
	tx repository.Transactor,
	followRepo repository.FollowRepository,
	postRepo repository.PostRepository,
	snapshots SnapshotReader,
	opts FeedOptions,
) FeedService {
	if opts.MaxAncestorDepth <= 0 {
		opts.MaxAncestorDepth = 64
	}
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = 16
	}
	return &feedService{
		tx:         tx,
		followRepo: followRepo,
		postRepo:   postRepo,
		deco:       &postDecorator{postRepo: postRepo, snapshots: snapshots, timeout: opts.StorageTimeout},
		opts:       opts,
	}
}

func (s *feedService) GetFeed(ctx context.Context, userID string) ([]*model.Post, error) {
	start := time.Now()
	defer func() { metrics.FeedDuration.Observe(time.Since(start).Seconds()) }()

	following, err := storageCall(ctx, s.opts.StorageTimeout, "load following", func(ctx context.Context) ([]string, error) {
		return s.followRepo.FolloweeIDs(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	metrics.FeedFanout.Observe(float64(len(following)))
	if len(following) == 0 {
		return []*model.Post{}, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// 每个关注对象一次查询，并发执行；结果按关注顺序拼接
	var wg sync.WaitGroup
	sem := make(chan struct{}, s.opts.MaxConcurrency)
	results := make([][]*model.Post, len(following))
	errChan := make(chan error, len(following))

	for i, authorID := range following {
		wg.Add(1)
		go func(i int, authorID string) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
			defer func() { <-sem }()

			posts, err := storageCall(ctx, s.opts.StorageTimeout, "load posts", func(ctx context.Context) ([]*model.Post, error) {
				return s.postRepo.ListTopLevelByAuthor(ctx, authorID)
			})
			if err != nil {
				errChan <- err
				cancel()
				return
			}
			results[i] = posts
		}(i, authorID)
	}

	wg.Wait()
	close(errChan)
	if err := firstError(errChan); err != nil {
		return nil, err
	}

	var feed []*model.Post
	for _, posts := range results {
		feed = append(feed, posts...)
	}
	sortNewestFirst(feed)

	if err := s.deco.decorate(ctx, feed...); err != nil {
		return nil, err
	}
	if feed == nil {
		feed = []*model.Post{}
	}
	return feed, nil
}

// firstError 优先返回真实失败，其次才是兄弟协程被取消产生的错误
func firstError(errChan <-chan error) error {
	var canceled error
	for err := range errChan {
		if errors.Is(err, context.Canceled) {
			if canceled == nil {
				canceled = err
			}
			continue
		}
		return err
	}
	return canceled
}

func sortNewestFirst(posts []*model.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
}

func (s *feedService) getPost(ctx context.Context, postID string) (*model.Post, error) {
	return storageCall(ctx, s.opts.StorageTimeout, "load post", func(ctx context.Context) (*model.Post, error) {
		return s.postRepo.GetByID(ctx, postID)
	})
}

func (s *feedService) GetPostReplies(ctx context.Context, postID string) ([]*model.Post, error) {
	if _, err := s.getPost(ctx, postID); err != nil {
		return nil, err
	}
	replies, err := storageCall(ctx, s.opts.StorageTimeout, "load replies", func(ctx context.Context) ([]*model.Post, error) {
		return s.postRepo.ListReplies(ctx, postID)
	})
	if err != nil {
		return nil, err
	}
	if err := s.deco.decorate(ctx, replies...); err != nil {
		return nil, err
	}
	return replies, nil
}

func (s *feedService) GetReplyAncestors(ctx context.Context, postID string) ([]*model.Post, error) {
	cur, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	visited := map[string]struct{}{cur.ID: {}}
	chain := make([]*model.Post, 0, 4)
	for depth := 0; !cur.IsTopLevel() && depth < s.opts.MaxAncestorDepth; depth++ {
		parentID := *cur.InReplyTo
		if _, seen := visited[parentID]; seen {
			break
		}
		parent, err := s.getPost(ctx, parentID)
		if err != nil {
			if errors.Is(err, apperr.NotFound) {
				// 父帖已不存在，链在此终止
				break
			}
			return nil, err
		}
		visited[parentID] = struct{}{}
		chain = append(chain, parent)
		cur = parent
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	if err := s.deco.decorate(ctx, chain...); err != nil {
		return nil, err
	}
	return chain, nil
}

func (s *feedService) ToggleLike(ctx context.Context, postID, userID string) (*model.Post, error) {
	post, err := storageCall(ctx, s.opts.StorageTimeout, "toggle like", func(ctx context.Context) (*model.Post, error) {
		var post *model.Post
		err := s.tx.InTx(ctx, func(ctx context.Context) error {
			p, err := s.postRepo.GetByID(ctx, postID)
			if err != nil {
				return err
			}
			removed, err := s.postRepo.RemoveLike(ctx, postID, userID)
			if err != nil {
				return err
			}
			if !removed {
				if _, err := s.postRepo.AddLike(ctx, postID, userID); err != nil {
					return err
				}
			}
			post = p
			return nil
		})
		return post, err
	})
	if err != nil {
		return nil, err
	}
	if err := s.deco.decorate(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *feedService) IsLiked(ctx context.Context, postID, userID string) (*model.Post, bool, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, false, err
	}
	if err := s.deco.decorate(ctx, post); err != nil {
		return nil, false, err
	}
	for _, id := range post.Likes {
		if id == userID {
			return post, true, nil
		}
	}
	return post, false, nil
}
