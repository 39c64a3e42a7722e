package handler

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/d60-Lab/dazzlr/internal/api/middleware"
	"github.com/d60-Lab/dazzlr/internal/service"
	"github.com/d60-Lab/dazzlr/internal/storage"
	"github.com/d60-Lab/dazzlr/pkg/apperr"
)

// Services handler 依赖的业务服务；Media 可为空（未启用对象存储）
type Services struct {
	Auth          service.AuthService
	Users         service.UserService
	Relationships service.RelationshipService
	Feed          service.FeedService
	Posts         service.PostService
	Replies       service.ReplyService
	Conversations service.ConversationService
	Messages      service.MessageService
	Media         storage.MediaStore
}

type Handler struct {
	authService  service.AuthService
	userService  service.UserService
	relService   service.RelationshipService
	feedService  service.FeedService
	postService  service.PostService
	replyService service.ReplyService
	convoService service.ConversationService
	msgService   service.MessageService
	media        storage.MediaStore
}

func NewHandler(s Services) *Handler {
	return &Handler{
		authService:  s.Auth,
		userService:  s.Users,
		relService:   s.Relationships,
		feedService:  s.Feed,
		postService:  s.Posts,
		replyService: s.Replies,
		convoService: s.Conversations,
		msgService:   s.Messages,
		media:        s.Media,
	}
}

// currentUser 鉴权中间件写入的用户 ID
func currentUser(c *gin.Context) string {
	return middleware.CurrentUserID(c)
}

// bindJSON 绑定失败时转换为带字段名（json tag）的校验错误
func bindJSON(c *gin.Context, req any) error {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := jsonName(req, fe.StructField())
		return apperr.Field(field, validationMessage(field, fe))
	}
	return apperr.Wrap(apperr.ValidationFailed, "invalid request body", err)
}

func jsonName(req any, structField string) string {
	t := reflect.TypeOf(req)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return structField
	}
	f, ok := t.FieldByName(structField)
	if !ok {
		return structField
	}
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return structField
	}
	return name
}

func validationMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return field + " must be at least " + fe.Param() + " characters"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	case "oneof":
		return field + " must be one of: " + fe.Param()
	case "url":
		return field + " must be a valid url"
	default:
		return field + " is invalid"
	}
}

// pageQuery page 从 1 开始，page_size 默认 10
func pageQuery(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if err != nil || pageSize < 1 {
		pageSize = 10
	}
	return page, pageSize
}
