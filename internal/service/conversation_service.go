package service

import (
	"context"
	"time"

	"github.com/d60-Lab/dazzlr/internal/model"
	"github.com/d60-Lab/dazzlr/internal/repository"
	"github.com/d60-Lab/dazzlr/pkg/apperr"
)

// ConversationService 两人会话
type ConversationService interface {
	// FindOrCreate 同一对用户只会得到同一个会话
	FindOrCreate(ctx context.Context, userID, peerID string) (*model.Conversation, error)
	Get(ctx context.Context, userID, conversationID string) (*model.Conversation, error)
	// List 用户参与且已有消息的会话，最近更新在前
	List(ctx context.Context, userID string) ([]*model.Conversation, error)
}

type conversationService struct {
	userRepo  repository.UserRepository
	convoRepo repository.ConversationRepository
	timeout   time.Duration
}

func NewConversationService(userRepo repository.UserRepository, convoRepo repository.ConversationRepository, timeout time.Duration) ConversationService {
	return &conversationService{userRepo: userRepo, convoRepo: convoRepo, timeout: timeout}
}

func (s *conversationService) FindOrCreate(ctx context.Context, userID, peerID string) (*model.Conversation, error) {
	if userID == peerID {
		return nil, apperr.New(apperr.InvalidOperation, "a conversation needs two different participants")
	}
	ok, err := storageCall(ctx, s.timeout, "load user", func(ctx context.Context) (bool, error) {
		return s.userRepo.Exists(ctx, peerID)
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	return storageCall(ctx, s.timeout, "find or create conversation", func(ctx context.Context) (*model.Conversation, error) {
		return s.convoRepo.CreateIfAbsent(ctx, userID, peerID)
	})
}

func (s *conversationService) Get(ctx context.Context, userID, conversationID string) (*model.Conversation, error) {
	c, err := storageCall(ctx, s.timeout, "load conversation", func(ctx context.Context) (*model.Conversation, error) {
		return s.convoRepo.GetByID(ctx, conversationID)
	})
	if err != nil {
		return nil, err
	}
	if !c.HasParticipant(userID) {
		return nil, apperr.New(apperr.NotFound, "conversation not found")
	}
	return c, nil
}

func (s *conversationService) List(ctx context.Context, userID string) ([]*model.Conversation, error) {
	return storageCall(ctx, s.timeout, "list conversations", func(ctx context.Context) ([]*model.Conversation, error) {
		return s.convoRepo.ListWithMessages(ctx, userID)
	})
}
