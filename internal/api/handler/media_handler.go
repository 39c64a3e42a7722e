package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/dazzlr/pkg/apperr"
	"github.com/d60-Lab/dazzlr/pkg/response"
)

const maxUploadBytes = 5 << 20

// UploadMedia 上传图片到对象存储，返回 {url, asset_id}，可用于头像、封面与帖子图片
// @Summary 上传图片
// @Tags 媒体
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "图片"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /api/v1/media [post]
func (h *Handler) UploadMedia(c *gin.Context) {
	if h.media == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "media storage is not configured"})
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, apperr.Field("file", "file is required"))
		return
	}
	if fh.Size > maxUploadBytes {
		response.Error(c, apperr.Field("file", "file is too large"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, apperr.Field("file", "file cannot be read"))
		return
	}
	defer f.Close()

	media, err := h.media.Upload(c.Request.Context(), currentUser(c), fh.Filename, f, fh.Size)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, gin.H{"media": media})
}
