package service

import (
	"Moments/internal/api/dto"
	"Moments/internal/model"
	"Moments/internal/pkg/consts"
	"Moments/internal/pkg/minio"
	"Moments/internal/pkg/util"
	"Moments/internal/repository"
	"context"
	log "log/slog"
	"mime/multipart"
	"time"

	"github.com/jinzhu/copier"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

type PostService interface {
	ListPosts(ctx context.Context, userID uint64, query *dto.PostListDTO) (*dto.PostPageDTO, error)
	CreatePost(ctx context.Context, userID uint64, req *dto.PostCreateDTO) (*dto.PostDTO, error)
	GetPost(ctx context.Context, userID uint64, postID uint64) (*dto.PostDTO, error)
	UpdatePost(ctx context.Context, userID uint64, postID uint64, req *dto.PostUpdateDTO) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, userID uint64, postID uint64) error
}

type postServiceImpl struct {
	postRepo repository.PostRepo
	likeRepo repository.LikeRepo
}

func NewPostService(postRepo repository.PostRepo, likeRepo repository.LikeRepo) PostService {
	return &postServiceImpl{
		postRepo: postRepo,
		likeRepo: likeRepo,
	}
}

// ListPosts 帖子列表，支持社交关系过滤、搜索与排序
func (s *postServiceImpl) ListPosts(ctx context.Context, userID uint64, query *dto.PostListDTO) (*dto.PostPageDTO, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	filter := repository.PostFilter{
		Search:     query.Search,
		Owner:      query.Owner,
		LikedBy:    query.LikedBy,
		FollowedBy: query.FollowedBy,
		Ordering:   query.Ordering,
	}

	posts, err := s.postRepo.ListPosts(ctx, filter, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	hasMore := false
	if len(posts) > pageSize {
		hasMore = true
		posts = posts[:pageSize]
	}

	items := make([]*dto.PostDTO, len(posts))
	for i, post := range posts {
		item, err := s.toPostDTO(ctx, post, userID)
		if err != nil {
			return nil, err
		}
		items[i] = item
	}

	return &dto.PostPageDTO{
		List:    items,
		HasMore: hasMore,
	}, nil
}

// CreatePost 创建帖子：校验媒体 -> 上传对象 -> 落库 -> 回读聚合后序列化
func (s *postServiceImpl) CreatePost(ctx context.Context, userID uint64, req *dto.PostCreateDTO) (*dto.PostDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, err
	}

	imageFilter := req.ImageFilter
	if imageFilter == "" {
		imageFilter = consts.DefaultImageFilter
	}
	if !consts.IsValidImageFilter(imageFilter) {
		return nil, ErrImageFilterInvalid
	}

	if req.Mp3 != nil {
		if err := util.ValidateAudio(req.Mp3.Filename, req.Mp3.Size); err != nil {
			return nil, err
		}
	}
	if req.Video != nil {
		if err := util.ValidateVideo(req.Video.Filename, req.Video.Size); err != nil {
			return nil, err
		}
	}
	if req.Image != nil {
		if err := util.ValidateImage(req.Image); err != nil {
			return nil, err
		}
	}

	imageKey := consts.DefaultPostImage
	if req.Image != nil {
		key, err := storeMedia(ctx, consts.ImagePrefix, req.Image)
		if err != nil {
			return nil, err
		}
		imageKey = key
	}

	var videoKey, mp3Key *string
	if req.Video != nil {
		key, err := storeMedia(ctx, consts.VideoPrefix, req.Video)
		if err != nil {
			return nil, err
		}
		videoKey = &key
	}
	if req.Mp3 != nil {
		key, err := storeMedia(ctx, consts.AudioPrefix, req.Mp3)
		if err != nil {
			return nil, err
		}
		mp3Key = &key
	}

	post := &model.Post{
		UserID:      userID,
		Title:       req.Title,
		Content:     req.Content,
		Image:       imageKey,
		ImageFilter: imageFilter,
		Video:       videoKey,
		Mp3:         mp3Key,
	}

	if err := s.postRepo.CreatePost(ctx, post, req.TagIDs); err != nil {
		return nil, err
	}

	created, err := s.postRepo.GetPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, UnExpectedError
	}
	return s.toPostDTO(ctx, created, userID)
}

// GetPost 获取单个帖子
func (s *postServiceImpl) GetPost(ctx context.Context, userID uint64, postID uint64) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return s.toPostDTO(ctx, post, userID)
}

// UpdatePost 部分更新：nil 字段保留原值，未提交的媒体不重新校验
func (s *postServiceImpl) UpdatePost(ctx context.Context, userID uint64, postID uint64, req *dto.PostUpdateDTO) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.UserID != userID {
		return nil, ErrNotOwner
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, ErrParamInvalid
		}
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.ImageFilter != nil {
		if !consts.IsValidImageFilter(*req.ImageFilter) {
			return nil, ErrImageFilterInvalid
		}
		post.ImageFilter = *req.ImageFilter
	}

	// 新提交的媒体先全部过校验，避免部分落库
	if req.Mp3 != nil {
		if err = util.ValidateAudio(req.Mp3.Filename, req.Mp3.Size); err != nil {
			return nil, err
		}
	}
	if req.Video != nil {
		if err = util.ValidateVideo(req.Video.Filename, req.Video.Size); err != nil {
			return nil, err
		}
	}
	if req.Image != nil {
		if err = util.ValidateImage(req.Image); err != nil {
			return nil, err
		}
	}

	var staleKeys []string
	if req.Image != nil {
		key, err := storeMedia(ctx, consts.ImagePrefix, req.Image)
		if err != nil {
			return nil, err
		}
		if post.Image != consts.DefaultPostImage {
			staleKeys = append(staleKeys, post.Image)
		}
		post.Image = key
	}
	if req.Video != nil {
		key, err := storeMedia(ctx, consts.VideoPrefix, req.Video)
		if err != nil {
			return nil, err
		}
		if post.Video != nil {
			staleKeys = append(staleKeys, *post.Video)
		}
		post.Video = &key
	}
	if req.Mp3 != nil {
		key, err := storeMedia(ctx, consts.AudioPrefix, req.Mp3)
		if err != nil {
			return nil, err
		}
		if post.Mp3 != nil {
			staleKeys = append(staleKeys, *post.Mp3)
		}
		post.Mp3 = &key
	}

	if err = s.postRepo.UpdatePost(ctx, post, req.TagIDs, req.TagsProvided); err != nil {
		return nil, err
	}

	deleteMediaAsync(staleKeys)

	updated, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrPostNotFound
	}
	return s.toPostDTO(ctx, updated, userID)
}

// DeletePost 删除帖子及标签关联，标签本身保留
func (s *postServiceImpl) DeletePost(ctx context.Context, userID uint64, postID uint64) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.UserID != userID {
		return ErrNotOwner
	}

	if err = s.postRepo.DeletePost(ctx, postID); err != nil {
		return err
	}

	var staleKeys []string
	if post.Image != consts.DefaultPostImage {
		staleKeys = append(staleKeys, post.Image)
	}
	if post.Video != nil {
		staleKeys = append(staleKeys, *post.Video)
	}
	if post.Mp3 != nil {
		staleKeys = append(staleKeys, *post.Mp3)
	}
	deleteMediaAsync(staleKeys)

	return nil
}

// toPostDTO 将 Model 转换为返回给前端的 DTO，注入请求级派生字段
func (s *postServiceImpl) toPostDTO(ctx context.Context, post *model.Post, userID uint64) (*dto.PostDTO, error) {
	out := &dto.PostDTO{}
	if err := copier.Copy(out, post); err != nil {
		return nil, err
	}

	out.CreatedAt = post.CreatedAt.Format(time.RFC3339)
	out.UpdatedAt = post.UpdatedAt.Format(time.RFC3339)

	out.Owner = post.User.Username
	out.IsOwner = userID > 0 && userID == post.UserID
	out.ProfileID = post.User.Profile.ID
	out.ProfileImage = minio.GetPublicURL(post.User.Profile.ImageURL)

	out.Image = minio.GetPublicURL(post.Image)
	if post.Video != nil {
		url := minio.GetPublicURL(*post.Video)
		out.Video = &url
	}
	if post.Mp3 != nil {
		url := minio.GetPublicURL(*post.Mp3)
		out.Mp3 = &url
	}

	out.Tags = make([]uint64, len(post.Tags))
	for i, tag := range post.Tags {
		out.Tags[i] = tag.ID
	}

	if userID > 0 {
		likeID, err := s.likeRepo.GetLikeID(ctx, userID, post.ID)
		if err != nil {
			return nil, err
		}
		out.LikeID = likeID
	}

	return out, nil
}

func storeMedia(ctx context.Context, prefix string, fh *multipart.FileHeader) (string, error) {
	reader, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = reader.Close() }()

	objectName := util.BuildObjectName(prefix, fh.Filename)
	contentType := fh.Header.Get("Content-Type")

	return minio.UploadFile(ctx, objectName, reader, fh.Size, contentType)
}

func deleteMediaAsync(keys []string) {
	if len(keys) == 0 {
		return
	}
	go func(keys []string) {
		ctx := context.Background()
		for _, key := range keys {
			if err := minio.DeleteFile(ctx, key); err != nil {
				log.Warn("failed to delete media object", "key", key, "err", err)
			}
		}
	}(keys)
}
