package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/dazzlr/pkg/response"
)

const userIDKey = "userID"

// TokenVerifier 把 bearer 令牌解析为用户 ID
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Auth 校验 Authorization: Bearer <token>，成功后把用户 ID 写入上下文
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			response.Unauthorized(c, "authentication required")
			return
		}
		userID, err := verifier.Verify(strings.TrimSpace(token))
		if err != nil || userID == "" {
			response.Unauthorized(c, "invalid or expired token")
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func CurrentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
