package service

import (
	"context"
	"strings"
	"time"

	"github.com/d60-Lab/dazzlr/internal/model"
	"github.com/d60-Lab/dazzlr/internal/repository"
	"github.com/d60-Lab/dazzlr/pkg/apperr"
)

const maxReplyLength = 500

// ReplyService 帖子评论
type ReplyService interface {
	Create(ctx context.Context, authorID, postID, text, parentReplyID string) (*model.Reply, error)
	ListByPost(ctx context.Context, postID string) ([]*model.Reply, error)
}

type replyService struct {
	tx          repository.Transactor
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	replyRepo   repository.ReplyRepository
	snapshots   SnapshotReader
	invalidator SnapshotInvalidator
	timeout     time.Duration
}

func NewReplyService(
	tx repository.Transactor,
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	replyRepo repository.ReplyRepository,
	snapshots SnapshotReader,
	invalidator SnapshotInvalidator,
	timeout time.Duration,
) ReplyService {
	return &replyService{
		tx: tx, userRepo: userRepo, postRepo: postRepo, replyRepo: replyRepo,
		snapshots: snapshots, invalidator: invalidator, timeout: timeout,
	}
}

func (s *replyService) Create(ctx context.Context, authorID, postID, text, parentReplyID string) (*model.Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Field("reply", "reply cannot be empty")
	}
	if len([]rune(text)) > maxReplyLength {
		return nil, apperr.Field("reply", "reply is too long")
	}

	reply := &model.Reply{ID: model.NewID(), AuthorID: authorID, PostID: postID, Text: text}
	if parentReplyID = strings.TrimSpace(parentReplyID); parentReplyID != "" {
		reply.ParentReplyID = &parentReplyID
	}

	err := storageExec(ctx, s.timeout, "create reply", func(ctx context.Context) error {
		return s.tx.InTx(ctx, func(ctx context.Context) error {
			if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
				return err
			}
			if reply.ParentReplyID != nil {
				parent, err := s.replyRepo.GetByID(ctx, *reply.ParentReplyID)
				if err != nil {
					return err
				}
				if parent.PostID != postID {
					return apperr.New(apperr.InvalidOperation, "parent reply belongs to another post")
				}
			}
			if err := s.replyRepo.Create(ctx, reply); err != nil {
				return err
			}
			return s.userRepo.AddPoints(ctx, authorID, PostPoints)
		})
	})
	if err != nil {
		return nil, err
	}
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, authorID)
	}
	s.attachAuthors(ctx, reply)
	return reply, nil
}

func (s *replyService) ListByPost(ctx context.Context, postID string) ([]*model.Reply, error) {
	if _, err := storageCall(ctx, s.timeout, "load post", func(ctx context.Context) (*model.Post, error) {
		return s.postRepo.GetByID(ctx, postID)
	}); err != nil {
		return nil, err
	}
	replies, err := storageCall(ctx, s.timeout, "load replies", func(ctx context.Context) ([]*model.Reply, error) {
		return s.replyRepo.ListByPost(ctx, postID)
	})
	if err != nil {
		return nil, err
	}
	s.attachAuthors(ctx, replies...)
	return replies, nil
}

func (s *replyService) attachAuthors(ctx context.Context, replies ...*model.Reply) {
	if s.snapshots == nil || len(replies) == 0 {
		return
	}
	ids := make([]string, len(replies))
	for i, r := range replies {
		ids[i] = r.AuthorID
	}
	snaps, err := s.snapshots.Get(ctx, ids)
	if err != nil {
		return
	}
	for _, r := range replies {
		if snap, ok := snaps[r.AuthorID]; ok {
			snap := snap
			r.Author = &snap
		}
	}
}
