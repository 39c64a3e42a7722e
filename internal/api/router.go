package api

import (
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/dazzlr/config"
	_ "github.com/d60-Lab/dazzlr/docs"
	"github.com/d60-Lab/dazzlr/internal/api/handler"
	"github.com/d60-Lab/dazzlr/internal/api/middleware"
	"github.com/d60-Lab/dazzlr/pkg/metrics"
)

// RouterOptions Realtime 为空时不挂载 /ws
type RouterOptions struct {
	Handler     *handler.Handler
	Tokens      middleware.TokenVerifier
	Realtime    http.Handler
	RateLimit   config.RateLimitConfig
	ServiceName string
	Tracing     bool
}

// SetupRouter 注册全部路由
// @title dazzlr API
// @version 1.0
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func SetupRouter(opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	r.Use(middleware.RequestID(), middleware.Logger())
	if opts.Tracing {
		r.Use(otelgin.Middleware(opts.ServiceName))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/ws", "/metrics"})))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if opts.Realtime != nil {
		r.GET("/ws", gin.WrapH(opts.Realtime))
	}

	h := opts.Handler
	v1 := r.Group("/api/v1")
	if opts.RateLimit.Enabled {
		v1.Use(middleware.RateLimit(middleware.NewIPRateLimiter(opts.RateLimit.RPS, opts.RateLimit.Burst)))
	}

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	secured := v1.Group("")
	secured.Use(middleware.Auth(opts.Tokens))
	{
		secured.GET("/me", h.Me)
		secured.PUT("/me", h.UpdateMe)

		secured.GET("/users", h.ListUsers)
		secured.GET("/users/:id", h.GetProfile)
		secured.GET("/users/:id/followers", h.ListFans)
		secured.GET("/users/:id/following", h.ListFollowing)

		secured.POST("/follow/:targetId", h.Follow)
		secured.POST("/unfollow/:targetId", h.Unfollow)
		secured.GET("/is-followed/:targetId", h.IsFollowed)

		secured.GET("/feed", h.Feed)
		secured.POST("/posts", h.CreatePost)
		secured.GET("/posts/:handle", h.PostsByHandle)
		secured.GET("/my-posts", h.MyPosts)
		secured.GET("/post/:id", h.GetPost)
		secured.GET("/post/:id/replies", h.PostReplies)
		secured.GET("/post/:id/ancestors", h.PostAncestors)
		secured.POST("/post/:id/like", h.ToggleLike)
		secured.GET("/post/:id/liked", h.IsLiked)

		secured.POST("/replies/:postId", h.CreateReply)
		secured.GET("/replies/:postId", h.ListReplies)

		secured.POST("/conversations", h.OpenConversation)
		secured.GET("/conversations", h.ListConversations)
		secured.GET("/conversations/:id", h.GetConversation)

		secured.POST("/messages", h.SendMessage)
		secured.GET("/messages/:conversationId", h.ListMessages)
		secured.GET("/messages/:conversationId/last", h.LastMessage)

		secured.POST("/media", h.UploadMedia)
	}
	return r
}
