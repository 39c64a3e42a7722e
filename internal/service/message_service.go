package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/dazzlr/internal/model"
	"github.com/d60-Lab/dazzlr/internal/repository"
	"github.com/d60-Lab/dazzlr/pkg/apperr"
	"github.com/d60-Lab/dazzlr/pkg/logger"
)

const maxMessageLength = 2000

// MessageNotifier 消息落库后的实时推送
type MessageNotifier interface {
	DeliverMessage(senderID, receiverID string, msg *model.Message, convo *model.Conversation)
}

// MessageService 会话消息
type MessageService interface {
	Post(ctx context.Context, conversationID, senderID, receiverID, text string) (*model.Message, error)
	List(ctx context.Context, userID, conversationID string) ([]*model.Message, error)
	Last(ctx context.Context, userID, conversationID string) (*model.Message, error)
}

type messageService struct {
	convos    ConversationService
	convoRepo repository.ConversationRepository
	msgRepo   repository.MessageRepository
	notifier  MessageNotifier
	timeout   time.Duration
}

func NewMessageService(
	convos ConversationService,
	convoRepo repository.ConversationRepository,
	msgRepo repository.MessageRepository,
	notifier MessageNotifier,
	timeout time.Duration,
) MessageService {
	return &messageService{convos: convos, convoRepo: convoRepo, msgRepo: msgRepo, notifier: notifier, timeout: timeout}
}

func (s *messageService) Post(ctx context.Context, conversationID, senderID, receiverID, text string) (*model.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Field("message", "message cannot be empty")
	}
	if len([]rune(text)) > maxMessageLength {
		return nil, apperr.Field("message", "message is too long")
	}

	convo, err := storageCall(ctx, s.timeout, "load conversation", func(ctx context.Context) (*model.Conversation, error) {
		return s.convoRepo.GetByID(ctx, conversationID)
	})
	if err != nil {
		return nil, err
	}
	if !convo.HasParticipant(senderID) {
		return nil, apperr.New(apperr.InvalidOperation, "sender is not a participant of this conversation")
	}
	peer := convo.Peer(senderID)
	if receiverID == "" {
		receiverID = peer
	}
	if receiverID != peer {
		return nil, apperr.Field("receiver_id", "receiver is not the other participant")
	}

	msg := &model.Message{
		ID:             model.NewID(),
		ConversationID: convo.ID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Text:           text,
		CreatedAt:      time.Now(),
	}
	if err := storageExec(ctx, s.timeout, "create message", func(ctx context.Context) error {
		return s.msgRepo.Create(ctx, msg)
	}); err != nil {
		return nil, err
	}

	// 会话快照尽力更新，失败只记录
	if err := storageExec(ctx, s.timeout, "update conversation snapshot", func(ctx context.Context) error {
		return s.convoRepo.UpdateSnapshot(ctx, convo.ID, msg.Text, msg.CreatedAt)
	}); err != nil {
		logger.Warn("conversation snapshot update failed",
			zap.String("conversation", convo.ID), zap.String("message", msg.ID), zap.Error(err))
	} else {
		latest := msg.Text
		convo.LatestMessage = &latest
		convo.UpdatedAt = msg.CreatedAt
	}

	if s.notifier != nil {
		s.notifier.DeliverMessage(senderID, receiverID, msg, convo)
	}
	return msg, nil
}

func (s *messageService) List(ctx context.Context, userID, conversationID string) ([]*model.Message, error) {
	if _, err := s.convos.Get(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	return storageCall(ctx, s.timeout, "list messages", func(ctx context.Context) ([]*model.Message, error) {
		return s.msgRepo.ListByConversation(ctx, conversationID)
	})
}

func (s *messageService) Last(ctx context.Context, userID, conversationID string) (*model.Message, error) {
	if _, err := s.convos.Get(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	return storageCall(ctx, s.timeout, "load last message", func(ctx context.Context) (*model.Message, error) {
		return s.msgRepo.Last(ctx, conversationID)
	})
}
