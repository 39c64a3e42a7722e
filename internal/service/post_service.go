package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/d60-Lab/dazzlr/internal/model"
	"github.com/d60-Lab/dazzlr/internal/repository"
	"github.com/d60-Lab/dazzlr/pkg/apperr"
)

const (
	PostPoints       = 5
	MinContentLength = 3
	MaxContentLength = 200
	maxHashtags      = 10
	maxPhotos        = 4
)

type CreatePostInput struct {
	AuthorID  string
	Content   string
	Hashtags  []string
	Photos    []model.Media
	InReplyTo string
}

// PostService 发帖与按作者查询
type PostService interface {
	Create(ctx context.Context, in CreatePostInput) (*model.Post, error)
	Get(ctx context.Context, id string) (*model.Post, error)
	// ListByHandle 该用户的顶层帖
	ListByHandle(ctx context.Context, handle string) ([]*model.Post, error)
	// ListByAuthor 该用户的全部帖子（含回复）
	ListByAuthor(ctx context.Context, authorID string) ([]*model.Post, error)
}

type postService struct {
	tx          repository.Transactor
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	deco        *postDecorator
	invalidator SnapshotInvalidator
	timeout     time.Duration
}

func NewPostService(
	tx repository.Transactor,
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	snapshots SnapshotReader,
	invalidator SnapshotInvalidator,
	timeout time.Duration,
) PostService {
	return &postService{
		tx:          tx,
		userRepo:    userRepo,
		postRepo:    postRepo,
		deco:        &postDecorator{postRepo: postRepo, snapshots: snapshots, timeout: timeout},
		invalidator: invalidator,
		timeout:     timeout,
	}
}

func (s *postService) Create(ctx context.Context, in CreatePostInput) (*model.Post, error) {
	content := strings.TrimSpace(in.Content)
	if n := utf8.RuneCountInString(content); n < MinContentLength || n > MaxContentLength {
		return nil, apperr.Field("content", "content must be between 3 and 200 characters")
	}
	if len(in.Photos) > maxPhotos {
		return nil, apperr.Field("photos", "at most 4 photos per post")
	}
	hashtags := normalizeHashtags(in.Hashtags)
	if len(hashtags) > maxHashtags {
		return nil, apperr.Field("hashtags", "at most 10 hashtags per post")
	}

	post := &model.Post{
		ID:       model.NewID(),
		AuthorID: in.AuthorID,
		Content:  content,
		Hashtags: hashtags,
		Photos:   in.Photos,
	}
	if parent := strings.TrimSpace(in.InReplyTo); parent != "" {
		post.InReplyTo = &parent
	}

	err := storageExec(ctx, s.timeout, "create post", func(ctx context.Context) error {
		return s.tx.InTx(ctx, func(ctx context.Context) error {
			if post.InReplyTo != nil {
				if _, err := s.postRepo.GetByID(ctx, *post.InReplyTo); err != nil {
					if errors.Is(err, apperr.NotFound) {
						return apperr.New(apperr.NotFound, "the post you are replying to does not exist")
					}
					return err
				}
			}
			if err := s.postRepo.Create(ctx, post); err != nil {
				return err
			}
			return s.userRepo.AddPoints(ctx, in.AuthorID, PostPoints)
		})
	})
	if err != nil {
		return nil, err
	}
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, in.AuthorID)
	}
	if err := s.deco.decorate(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Get(ctx context.Context, id string) (*model.Post, error) {
	post, err := storageCall(ctx, s.timeout, "load post", func(ctx context.Context) (*model.Post, error) {
		return s.postRepo.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if err := s.deco.decorate(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) ListByHandle(ctx context.Context, handle string) ([]*model.Post, error) {
	user, err := storageCall(ctx, s.timeout, "load user", func(ctx context.Context) (*model.User, error) {
		return s.userRepo.GetByHandle(ctx, normalizeHandle(handle))
	})
	if err != nil {
		return nil, err
	}
	posts, err := storageCall(ctx, s.timeout, "load posts", func(ctx context.Context) ([]*model.Post, error) {
		return s.postRepo.ListTopLevelByAuthor(ctx, user.ID)
	})
	if err != nil {
		return nil, err
	}
	if err := s.deco.decorate(ctx, posts...); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *postService) ListByAuthor(ctx context.Context, authorID string) ([]*model.Post, error) {
	posts, err := storageCall(ctx, s.timeout, "load posts", func(ctx context.Context) ([]*model.Post, error) {
		return s.postRepo.ListByAuthor(ctx, authorID)
	})
	if err != nil {
		return nil, err
	}
	if err := s.deco.decorate(ctx, posts...); err != nil {
		return nil, err
	}
	return posts, nil
}

func normalizeHashtags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimLeft(strings.TrimSpace(t), "#"))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// normalizeHandle 路径中的 handle 可省略 @
func normalizeHandle(handle string) string {
	handle = strings.TrimSpace(handle)
	if handle != "" && !strings.HasPrefix(handle, "@") {
		handle = "@" + handle
	}
	return strings.ToLower(handle)
}
