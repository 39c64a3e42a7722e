package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/dazzlr/internal/service"
	"github.com/d60-Lab/dazzlr/pkg/response"
)

type registerRequest struct {
	Fullname    string `json:"fullname" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	AccountType string `json:"account_type" binding:"omitempty,oneof=personal business"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register 注册并签发令牌
// @Summary 注册
// @Tags 账号
// @Accept json
// @Produce json
// @Param request body registerRequest true "注册信息"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	sess, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Fullname:    req.Fullname,
		Email:       req.Email,
		Password:    req.Password,
		AccountType: req.AccountType,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"user": sess.User, "token": sess.Token, "expires_at": sess.ExpiresAt})
}

// Login 邮箱密码登录
// @Summary 登录
// @Tags 账号
// @Accept json
// @Produce json
// @Param request body loginRequest true "登录信息"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	sess, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"user": sess.User, "token": sess.Token, "expires_at": sess.ExpiresAt})
}
