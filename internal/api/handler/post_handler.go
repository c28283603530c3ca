package handler

import (
	"Moments/internal/api/dto"
	"Moments/internal/pkg/response"
	"Moments/internal/pkg/util"
	"Moments/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
	tagSvc  service.TagService
}

func NewPostHandler(postSvc service.PostService, tagSvc service.TagService) *PostHandler {
	return &PostHandler{
		postSvc: postSvc,
		tagSvc:  tagSvc,
	}
}

func (s *PostHandler) ListPosts(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var query dto.PostListDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	posts, err := s.postSvc.ListPosts(c.Request.Context(), userID, &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.PostCreateDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	// 原始标签入参先解析成 ID，服务层只见到归一化后的载荷
	names := util.ParseTagNames(c.PostFormArray("tags"))
	tagIDs, err := s.tagSvc.ResolveTags(c.Request.Context(), names)
	if err != nil {
		response.Error(c, err)
		return
	}
	req.TagIDs = tagIDs

	post, err := s.postSvc.CreatePost(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, post)
}

func (s *PostHandler) GetPost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postIDStr := c.Param("post_id")
	postID, err := strconv.ParseUint(postIDStr, 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	post, err := s.postSvc.GetPost(c.Request.Context(), userID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, post)
}

// UpdatePost 无论请求动词如何都按部分更新处理，缺失字段保留原值
func (s *PostHandler) UpdatePost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postIDStr := c.Param("post_id")

	postID, err := strconv.ParseUint(postIDStr, 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.PostUpdateDTO
	if v, ok := c.GetPostForm("title"); ok {
		req.Title = &v
	}
	if v, ok := c.GetPostForm("content"); ok {
		req.Content = &v
	}
	if v, ok := c.GetPostForm("image_filter"); ok {
		req.ImageFilter = &v
	}
	if fh, err := c.FormFile("image"); err == nil {
		req.Image = fh
	}
	if fh, err := c.FormFile("video"); err == nil {
		req.Video = fh
	}
	if fh, err := c.FormFile("mp3"); err == nil {
		req.Mp3 = fh
	}

	if values, ok := c.GetPostFormArray("tags"); ok {
		names := util.ParseTagNames(values)
		tagIDs, err := s.tagSvc.ResolveTags(c.Request.Context(), names)
		if err != nil {
			response.Error(c, err)
			return
		}
		req.TagIDs = tagIDs
		req.TagsProvided = true
	}

	post, err := s.postSvc.UpdatePost(c.Request.Context(), userID, postID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, post)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postIDStr := c.Param("post_id")

	postID, err := strconv.ParseUint(postIDStr, 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.postSvc.DeletePost(c.Request.Context(), userID, postID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
