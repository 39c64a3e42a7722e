package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/dazzlr/pkg/response"
)

// Follow 关注用户（关注表与粉丝表同事务写入）
// @Summary 关注用户
// @Tags 关系链
// @Produce json
// @Security BearerAuth
// @Param targetId path string true "被关注用户ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/follow/{targetId} [post]
func (h *Handler) Follow(c *gin.Context) {
	if err := h.relService.Follow(c.Request.Context(), currentUser(c), c.Param("targetId")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "User has been followed"})
}

// Unfollow 取消关注
// @Summary 取消关注
// @Tags 关系链
// @Produce json
// @Security BearerAuth
// @Param targetId path string true "被关注用户ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/unfollow/{targetId} [post]
func (h *Handler) Unfollow(c *gin.Context) {
	if err := h.relService.Unfollow(c.Request.Context(), currentUser(c), c.Param("targetId")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "User has been unfollowed"})
}

// IsFollowed 当前用户是否已关注目标
// @Summary 是否已关注
// @Tags 关系链
// @Produce json
// @Security BearerAuth
// @Param targetId path string true "目标用户ID"
// @Success 200 {object} response.Response
// @Router /api/v1/is-followed/{targetId} [get]
func (h *Handler) IsFollowed(c *gin.Context) {
	ok, err := h.relService.IsFollowing(c.Request.Context(), currentUser(c), c.Param("targetId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"followed": ok})
}

// ListFollowing 查询某用户关注的人
// @Summary 查询关注列表
// @Tags 关系链
// @Security BearerAuth
// @Param id path string true "用户ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response
// @Router /api/v1/users/{id}/following [get]
func (h *Handler) ListFollowing(c *gin.Context) {
	page, pageSize := pageQuery(c)
	list, err := h.relService.ListFollowing(c.Request.Context(), c.Param("id"), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}

// ListFans 查询某用户的粉丝
// @Summary 查询粉丝列表（来自粉丝表）
// @Tags 关系链
// @Security BearerAuth
// @Param id path string true "用户ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response
// @Router /api/v1/users/{id}/followers [get]
func (h *Handler) ListFans(c *gin.Context) {
	page, pageSize := pageQuery(c)
	list, err := h.relService.ListFans(c.Request.Context(), c.Param("id"), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}
