package handler

import (
	"Moments/internal/api/dto"
	"Moments/internal/pkg/util"
	"Moments/internal/service"
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPostService struct {
	post *dto.PostDTO
	page *dto.PostPageDTO
	err  error

	lastUserID    uint64
	lastPostID    uint64
	lastCreateReq *dto.PostCreateDTO
	lastUpdateReq *dto.PostUpdateDTO
	lastQuery     *dto.PostListDTO
}

func (s *stubPostService) ListPosts(_ context.Context, userID uint64, query *dto.PostListDTO) (*dto.PostPageDTO, error) {
	s.lastUserID = userID
	s.lastQuery = query
	return s.page, s.err
}

func (s *stubPostService) CreatePost(_ context.Context, userID uint64, req *dto.PostCreateDTO) (*dto.PostDTO, error) {
	s.lastUserID = userID
	s.lastCreateReq = req
	return s.post, s.err
}

func (s *stubPostService) GetPost(_ context.Context, userID uint64, postID uint64) (*dto.PostDTO, error) {
	s.lastUserID = userID
	s.lastPostID = postID
	return s.post, s.err
}

func (s *stubPostService) UpdatePost(_ context.Context, userID uint64, postID uint64, req *dto.PostUpdateDTO) (*dto.PostDTO, error) {
	s.lastUserID = userID
	s.lastPostID = postID
	s.lastUpdateReq = req
	return s.post, s.err
}

func (s *stubPostService) DeletePost(_ context.Context, userID uint64, postID uint64) error {
	s.lastUserID = userID
	s.lastPostID = postID
	return s.err
}

type stubTagService struct {
	tags      []*dto.TagDTO
	tag       *dto.TagDTO
	ids       []uint64
	err       error
	lastNames []string
	lastName  string
}

func (s *stubTagService) ListTags(_ context.Context) ([]*dto.TagDTO, error) {
	return s.tags, s.err
}

func (s *stubTagService) CreateTag(_ context.Context, name string) (*dto.TagDTO, error) {
	s.lastName = name
	return s.tag, s.err
}

func (s *stubTagService) ResolveTags(_ context.Context, names []string) ([]uint64, error) {
	s.lastNames = names
	return s.ids, s.err
}

func newPostRouter(postSvc service.PostService, tagSvc service.TagService, userID uint64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPostHandler(postSvc, tagSvc)

	r := gin.New()
	auth := func(c *gin.Context) {
		if userID > 0 {
			c.Set("user_id", userID)
		}
	}
	r.GET("/posts", auth, h.ListPosts)
	r.POST("/posts", auth, h.CreatePost)
	r.GET("/posts/:post_id", auth, h.GetPost)
	r.PUT("/posts/:post_id", auth, h.UpdatePost)
	r.DELETE("/posts/:post_id", auth, h.DeletePost)
	return r
}

func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, w.WriteField(key, value))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func doRequest(t *testing.T, r *gin.Engine, method, target string, body *bytes.Buffer, contentType string) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()

	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestCreatePostResolvesTagNames(t *testing.T) {
	postSvc := &stubPostService{post: &dto.PostDTO{ID: 1, Title: "hello"}}
	tagSvc := &stubTagService{ids: []uint64{1, 2}}
	r := newPostRouter(postSvc, tagSvc, 7)

	body, contentType := multipartBody(t, map[string]string{
		"title": "hello",
		"tags":  "music, live",
	})
	rec, resp := doRequest(t, r, http.MethodPost, "/posts", body, contentType)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 200, resp.Code)
	assert.Equal(t, []string{"music", "live"}, tagSvc.lastNames)
	require.NotNil(t, postSvc.lastCreateReq)
	assert.Equal(t, []uint64{1, 2}, postSvc.lastCreateReq.TagIDs)
	assert.Equal(t, uint64(7), postSvc.lastUserID)
}

func TestCreatePostFieldError(t *testing.T) {
	postSvc := &stubPostService{err: util.NewFieldError("mp3", util.MsgAudioBadExtension)}
	r := newPostRouter(postSvc, &stubTagService{}, 7)

	body, contentType := multipartBody(t, map[string]string{"title": "hello"})
	rec, resp := doRequest(t, r, http.MethodPost, "/posts", body, contentType)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, util.MsgAudioBadExtension, resp.Message)
	assert.Equal(t, "mp3", resp.Field)
}

func TestCreatePostValidationError(t *testing.T) {
	bad := validator.New().Struct(struct {
		Title string `validate:"max=2"`
	}{Title: "too long"})
	require.Error(t, bad)

	r := newPostRouter(&stubPostService{err: bad}, &stubTagService{}, 7)

	body, contentType := multipartBody(t, map[string]string{"title": "hello"})
	rec, resp := doRequest(t, r, http.MethodPost, "/posts", body, contentType)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 400, resp.Code)
}

func TestGetPostBadID(t *testing.T) {
	r := newPostRouter(&stubPostService{}, &stubTagService{}, 0)

	rec, resp := doRequest(t, r, http.MethodGet, "/posts/abc", nil, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.ErrParamInvalid.Error(), resp.Message)
}

func TestGetPostNotFound(t *testing.T) {
	r := newPostRouter(&stubPostService{err: service.ErrPostNotFound}, &stubTagService{}, 0)

	rec, resp := doRequest(t, r, http.MethodGet, "/posts/404", nil, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, service.ErrPostNotFound.Error(), resp.Message)
}

func TestUpdatePostFieldPresence(t *testing.T) {
	postSvc := &stubPostService{post: &dto.PostDTO{ID: 10}}
	r := newPostRouter(postSvc, &stubTagService{}, 7)

	body, contentType := multipartBody(t, map[string]string{"title": "updated"})
	rec, _ := doRequest(t, r, http.MethodPut, "/posts/10", body, contentType)

	assert.Equal(t, http.StatusOK, rec.Code)
	req := postSvc.lastUpdateReq
	require.NotNil(t, req)
	require.NotNil(t, req.Title)
	assert.Equal(t, "updated", *req.Title)
	assert.Nil(t, req.Content)
	assert.Nil(t, req.ImageFilter)
	assert.False(t, req.TagsProvided)
	assert.Equal(t, uint64(10), postSvc.lastPostID)
}

func TestUpdatePostClearsTags(t *testing.T) {
	postSvc := &stubPostService{post: &dto.PostDTO{ID: 10}}
	tagSvc := &stubTagService{}
	r := newPostRouter(postSvc, tagSvc, 7)

	// 显式提交空 tags 字段表示清空标签
	body, contentType := multipartBody(t, map[string]string{"tags": ""})
	rec, _ := doRequest(t, r, http.MethodPut, "/posts/10", body, contentType)

	assert.Equal(t, http.StatusOK, rec.Code)
	req := postSvc.lastUpdateReq
	require.NotNil(t, req)
	assert.True(t, req.TagsProvided)
	assert.Empty(t, req.TagIDs)
}

func TestDeletePostForbidden(t *testing.T) {
	r := newPostRouter(&stubPostService{err: service.ErrNotOwner}, &stubTagService{}, 8)

	rec, resp := doRequest(t, r, http.MethodDelete, "/posts/10", nil, "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, service.ErrNotOwner.Error(), resp.Message)
}

func TestListPostsBindsQuery(t *testing.T) {
	postSvc := &stubPostService{page: &dto.PostPageDTO{List: []*dto.PostDTO{}}}
	r := newPostRouter(postSvc, &stubTagService{}, 0)

	rec, _ := doRequest(t, r, http.MethodGet,
		"/posts?search=alice&ordering=-likes_count&owner=3&page=2&page_size=5", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	q := postSvc.lastQuery
	require.NotNil(t, q)
	assert.Equal(t, "alice", q.Search)
	assert.Equal(t, "-likes_count", q.Ordering)
	assert.Equal(t, uint64(3), q.Owner)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 5, q.PageSize)
	assert.Equal(t, uint64(0), postSvc.lastUserID)
}
