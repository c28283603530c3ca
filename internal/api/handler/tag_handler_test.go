package handler

import (
	"Moments/internal/api/dto"
	"Moments/internal/service"
	"bytes"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTagRouter(tagSvc service.TagService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTagHandler(tagSvc)

	r := gin.New()
	r.GET("/tags", h.ListTags)
	r.POST("/tags", h.CreateTag)
	return r
}

func TestListTags(t *testing.T) {
	tagSvc := &stubTagService{tags: []*dto.TagDTO{
		{ID: 1, Name: "music"},
		{ID: 2, Name: "live"},
	}}
	r := newTagRouter(tagSvc)

	rec, resp := doRequest(t, r, http.MethodGet, "/tags", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	list, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, list, 2)
}

func TestCreateTagHandler(t *testing.T) {
	tagSvc := &stubTagService{tag: &dto.TagDTO{ID: 1, Name: "music"}}
	r := newTagRouter(tagSvc)

	body := bytes.NewBufferString(`{"name":"music"}`)
	rec, resp := doRequest(t, r, http.MethodPost, "/tags", body, "application/json")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 200, resp.Code)
	assert.Equal(t, "music", tagSvc.lastName)
}

func TestCreateTagMissingName(t *testing.T) {
	r := newTagRouter(&stubTagService{})

	body := bytes.NewBufferString(`{}`)
	rec, resp := doRequest(t, r, http.MethodPost, "/tags", body, "application/json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.ErrParamInvalid.Error(), resp.Message)
}
