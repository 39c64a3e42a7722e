package response

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/dazzlr/pkg/apperr"
	"github.com/d60-Lab/dazzlr/pkg/logger"
)

// Response 统一响应结构（仅用于文档），成功时业务字段与 success 平铺
type Response struct {
	Success bool   `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
	Field   string `json:"field,omitempty"`
}

// Success 返回 {"success": true, ...payload}
func Success(c *gin.Context, payload gin.H) {
	write(c, http.StatusOK, payload)
}

// Created 与 Success 相同，状态码 201
func Created(c *gin.Context, payload gin.H) {
	write(c, http.StatusCreated, payload)
}

func write(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// BadRequest 参数错误
func BadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}

// Unauthorized 未认证
func Unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

// InternalError 记录并上报内部错误，对外只返回通用消息
func InternalError(c *gin.Context, err error) {
	logger.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	} else {
		sentry.CaptureException(err)
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// Error 按错误类别输出状态码与消息
func Error(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status >= http.StatusInternalServerError {
		InternalError(c, err)
		return
	}
	body := gin.H{"error": apperr.PublicMessage(err)}
	if field := apperr.FieldOf(err); field != "" {
		body["field"] = field
	}
	c.AbortWithStatusJSON(status, body)
}
