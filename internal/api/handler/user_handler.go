package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/dazzlr/internal/model"
	"github.com/d60-Lab/dazzlr/internal/service"
	"github.com/d60-Lab/dazzlr/pkg/response"
)

type updateProfileRequest struct {
	Fullname *string         `json:"fullname"`
	Bio      *string         `json:"bio"`
	Location *model.Location `json:"location"`
	Website  *string         `json:"website"`
	Avatar   *model.Media    `json:"avatar"`
	Cover    *model.Media    `json:"cover"`
}

// Me 当前登录用户
// @Summary 当前用户
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/v1/me [get]
func (h *Handler) Me(c *gin.Context) {
	u, err := h.userService.Get(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"user": u})
}

// UpdateMe 更新资料，未提供的字段保持不变
// @Summary 更新资料
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body updateProfileRequest true "资料"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/me [put]
func (h *Handler) UpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	u, err := h.userService.UpdateProfile(c.Request.Context(), currentUser(c), service.UpdateProfileInput{
		Fullname: req.Fullname,
		Bio:      req.Bio,
		Location: req.Location,
		Website:  req.Website,
		Avatar:   req.Avatar,
		Cover:    req.Cover,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"user": u})
}

// ListUsers 用户列表
// @Summary 用户列表
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response
// @Router /api/v1/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	page, pageSize := pageQuery(c)
	users, err := h.userService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "users": users})
}

// GetProfile 按 handle 查询资料，附带关注者与关注对象摘要；
// 路径参数与 /users/:id/followers 共用名字
// @Summary 用户主页
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Param id path string true "用户 handle"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{id} [get]
func (h *Handler) GetProfile(c *gin.Context) {
	p, err := h.userService.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"user": p.User, "followers": p.Followers, "following": p.Following})
}
