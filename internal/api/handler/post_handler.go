package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/dazzlr/internal/model"
	"github.com/d60-Lab/dazzlr/internal/service"
	"github.com/d60-Lab/dazzlr/pkg/response"
)

type createPostRequest struct {
	Content   string        `json:"content" binding:"required"`
	Hashtags  []string      `json:"hashtags"`
	Photos    []model.Media `json:"photos"`
	InReplyTo string        `json:"in_reply_to"`
}

// Feed 关注对象的顶层帖，读时合并
// @Summary 信息流
// @Tags 帖子
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/feed [get]
func (h *Handler) Feed(c *gin.Context) {
	posts, err := h.feedService.GetFeed(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"posts": posts})
}

// CreatePost 发帖或回复帖子（in_reply_to）
// @Summary 发帖
// @Tags 帖子
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createPostRequest true "帖子内容"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	post, err := h.postService.Create(c.Request.Context(), service.CreatePostInput{
		AuthorID:  currentUser(c),
		Content:   req.Content,
		Hashtags:  req.Hashtags,
		Photos:    req.Photos,
		InReplyTo: req.InReplyTo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"message": "Post successfully created", "post": post})
}

// PostsByHandle 某用户的顶层帖
// @Summary 用户帖子
// @Tags 帖子
// @Produce json
// @Security BearerAuth
// @Param handle path string true "用户 handle"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{handle} [get]
func (h *Handler) PostsByHandle(c *gin.Context) {
	posts, err := h.postService.ListByHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"posts": posts})
}

// MyPosts 当前用户的全部帖子
// @Summary 我的帖子
// @Tags 帖子
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/v1/my-posts [get]
func (h *Handler) MyPosts(c *gin.Context) {
	posts, err := h.postService.ListByAuthor(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"posts": posts})
}

// GetPost 帖子详情
// @Summary 帖子详情
// @Tags 帖子
// @Produce json
// @Security BearerAuth
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/post/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	post, err := h.postService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"post": post})
}

// PostReplies 直接回复，最新在前
// @Summary 帖子回复
// @Tags 帖子
// @Produce json
// @Security BearerAuth
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/post/{id}/replies [get]
func (h *Handler) PostReplies(c *gin.Context) {
	replies, err := h.feedService.GetPostReplies(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"replies": replies})
}

// PostAncestors 根帖到直接父帖的祖先链
// @Summary 回复的祖先链
// @Tags 帖子
// @Produce json
// @Security BearerAuth
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/post/{id}/ancestors [get]
func (h *Handler) PostAncestors(c *gin.Context) {
	posts, err := h.feedService.GetReplyAncestors(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"parent_posts": posts})
}

// ToggleLike 点赞 / 取消点赞
// @Summary 点赞切换
// @Tags 帖子
// @Produce json
// @Security BearerAuth
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/post/{id}/like [post]
func (h *Handler) ToggleLike(c *gin.Context) {
	post, err := h.feedService.ToggleLike(c.Request.Context(), c.Param("id"), currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"post": post})
}

// IsLiked 当前用户是否点赞
// @Summary 是否已点赞
// @Tags 帖子
// @Produce json
// @Security BearerAuth
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/post/{id}/liked [get]
func (h *Handler) IsLiked(c *gin.Context) {
	post, liked, err := h.feedService.IsLiked(c.Request.Context(), c.Param("id"), currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"post": post, "is_liked": liked})
}
