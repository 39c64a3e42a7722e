package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/dazzlr/pkg/apperr"
)

func bindContext(body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestBindJSONReportsJSONFieldName(t *testing.T) {
	var req registerRequest
	err := bindJSON(bindContext(`{"fullname":"A","email":"not-an-email","password":"secret1"}`), &req)
	require.Error(t, err)
	assert.Equal(t, apperr.ValidationFailed, apperr.KindOf(err))
	assert.Equal(t, "email", apperr.FieldOf(err))

	err = bindJSON(bindContext(`{"conversation_id":"c1"}`), &sendMessageRequest{})
	require.Error(t, err)
	assert.Equal(t, "text", apperr.FieldOf(err))
	assert.Equal(t, "text is required", apperr.PublicMessage(err))
}

func TestBindJSONMalformedBody(t *testing.T) {
	err := bindJSON(bindContext(`{"fullname":`), &registerRequest{})
	require.Error(t, err)
	assert.Equal(t, apperr.ValidationFailed, apperr.KindOf(err))
	assert.Empty(t, apperr.FieldOf(err))
}

func TestPageQueryDefaults(t *testing.T) {
	c := bindContext("")
	c.Request = httptest.NewRequest(http.MethodGet, "/?page=0&page_size=x", nil)
	page, size := pageQuery(c)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)

	c = bindContext("")
	c.Request =httptest.NewRequest(http.MethodGet, "/?page=3&page_size=25", nil)
	page, size = pageQuery(c)
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, size)
}
