package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/dazzlr/pkg/response"
)

type createReplyRequest struct {
	Reply         string `json:"reply" binding:"required"`
	ParentReplyID string `json:"parent_reply_id"`
}

// CreateReply 评论帖子
// @Summary 发表评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postId path string true "帖子ID"
// @Param request body createReplyRequest true "评论内容"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/replies/{postId} [post]
func (h *Handler) CreateReply(c *gin.Context) {
	var req createReplyRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	reply, err := h.replyService.Create(c.Request.Context(), currentUser(c), c.Param("postId"), req.Reply, req.ParentReplyID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"message": "Reply successfully created", "reply": reply})
}

// ListReplies 帖子下的评论
// @Summary 评论列表
// @Tags 评论
// @Produce json
// @Security BearerAuth
// @Param postId path string true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/replies/{postId} [get]
func (h *Handler) ListReplies(c *gin.Context) {
	replies, err := h.replyService.ListByPost(c.Request.Context(), c.Param("postId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"replies": replies})
}
