package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/dazzlr/pkg/response"
)

type openConversationRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

type sendMessageRequest struct {
	ConversationID string `json:"conversation_id" binding:"required"`
	ReceiverID     string `json:"receiver_id"`
	Text           string `json:"text" binding:"required"`
}

// OpenConversation 与对方的会话，不存在则创建
// @Summary 打开会话
// @Tags 私信
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body openConversationRequest true "对方用户"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/conversations [post]
func (h *Handler) OpenConversation(c *gin.Context) {
	var req openConversationRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	convo, err := h.convoService.FindOrCreate(c.Request.Context(), currentUser(c), req.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"convo": convo})
}

// ListConversations 有消息的会话，最近更新在前
// @Summary 会话列表
// @Tags 私信
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/v1/conversations [get]
func (h *Handler) ListConversations(c *gin.Context) {
	convos, err := h.convoService.List(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"convos": convos})
}

// GetConversation 会话详情，仅参与者可见
// @Summary 会话详情
// @Tags 私信
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/conversations/{id} [get]
func (h *Handler) GetConversation(c *gin.Context) {
	convo, err := h.convoService.Get(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"convo": convo})
}

// SendMessage 发送消息，落库后推送给在线的接收方
// @Summary 发送消息
// @Tags 私信
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body sendMessageRequest true "消息"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/messages [post]
func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	msg, err := h.msgService.Post(c.Request.Context(), req.ConversationID, currentUser(c), req.ReceiverID, req.Text)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"message": msg})
}

// ListMessages 会话消息，最早在前
// @Summary 消息列表
// @Tags 私信
// @Produce json
// @Security BearerAuth
// @Param conversationId path string true "会话ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/messages/{conversationId} [get]
func (h *Handler) ListMessages(c *gin.Context) {
	msgs, err := h.msgService.List(c.Request.Context(), currentUser(c), c.Param("conversationId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"messages": msgs})
}

// LastMessage 会话最后一条消息
// @Summary 最后一条消息
// @Tags 私信
// @Produce json
// @Security BearerAuth
// @Param conversationId path string true "会话ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/messages/{conversationId}/last [get]
func (h *Handler) LastMessage(c *gin.Context) {
	msg, err := h.msgService.Last(c.Request.Context(), currentUser(c), c.Param("conversationId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"last_message": msg})
}
