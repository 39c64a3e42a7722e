package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/d60-Lab/dazzlr/config"
	"github.com/d60-Lab/dazzlr/internal/api"
	"github.com/d60-Lab/dazzlr/internal/api/handler"
	"github.com/d60-Lab/dazzlr/internal/cache"
	"github.com/d60-Lab/dazzlr/internal/realtime"
	"github.com/d60-Lab/dazzlr/internal/repository"
	"github.com/d60-Lab/dazzlr/internal/service"
	"github.com/d60-Lab/dazzlr/internal/storage"
	"github.com/d60-Lab/dazzlr/pkg/auth"
)

// App 组装好的服务与路由
type App struct {
	Router      *gin.Engine
	Coordinator *realtime.Coordinator
	Tokens      *auth.TokenManager
	Snapshots   *cache.UserSnapshots
}

// New 依赖注入；rdb、media 可为 nil
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, media storage.MediaStore) *App {
	timeout := cfg.Storage.Timeout

	tx := repository.NewTransactor(db)
	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	fanRepo := repository.NewFanRepository(db)
	postRepo := repository.NewPostRepository(db)
	replyRepo := repository.NewReplyRepository(db)
	convoRepo := repository.NewConversationRepository(db)
	msgRepo := repository.NewMessageRepository(db)

	snaps := cache.NewUserSnapshots(userRepo, rdb, cfg.Redis.TTL)
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)
	coord := realtime.NewCoordinator(nil)

	rel := service.NewRelationshipService(tx, userRepo, followRepo, fanRepo, timeout)
	feed := service.NewFeedService(tx, followRepo, postRepo, snaps, service.FeedOptions{
		StorageTimeout:   timeout,
		MaxAncestorDepth: cfg.Feed.MaxAncestorDepth,
		MaxConcurrency:   cfg.Feed.MaxConcurrency,
	})
	convos := service.NewConversationService(userRepo, convoRepo, timeout)
	msgs := service.NewMessageService(convos, convoRepo, msgRepo, coord, timeout)

	h := handler.NewHandler(handler.Services{
		Auth:          service.NewAuthService(userRepo, tokens, timeout),
		Users:         service.NewUserService(userRepo, rel, snaps, snaps, timeout),
		Relationships: rel,
		Feed:          feed,
		Posts:         service.NewPostService(tx, userRepo, postRepo, snaps, snaps, timeout),
		Replies:       service.NewReplyService(tx, userRepo, postRepo, replyRepo, snaps, snaps, timeout),
		Conversations: convos,
		Messages:      msgs,
		Media:         media,
	})

	ws := realtime.NewHandler(coord, msgs, tokens, realtime.TransportOptions{
		MaxFramesPerSecond: cfg.Realtime.MaxFramesPerSecond,
		MaxPayloadBytes:    cfg.Realtime.MaxPayloadBytes,
	})

	router := api.SetupRouter(api.RouterOptions{
		Handler:     h,
		Tokens:      tokens,
		Realtime:    ws,
		RateLimit:   cfg.RateLimit,
		ServiceName: cfg.Tracing.ServiceName,
		Tracing:     cfg.Tracing.Enabled,
	})

	return &App{Router: router, Coordinator: coord, Tokens: tokens, Snapshots: snaps}
}

// StartRealtime 启动异步推送，返回停止函数
func (a *App) StartRealtime(workers, queueSize int) func(context.Context) error {
	return a.Coordinator.StartAsync(workers, queueSize)
}
