package dto

import "mime/multipart"

// PostDTO 帖子出参，含请求级派生字段
type PostDTO struct {
	ID            uint64   `json:"id"`
	Owner         string   `json:"owner"`
	IsOwner       bool     `json:"is_owner"`
	ProfileID     uint64   `json:"profile_id"`
	ProfileImage  string   `json:"profile_image"`
	Tags          []uint64 `json:"tags"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Image         string   `json:"image"`
	ImageFilter   string   `json:"image_filter"`
	LikeID        *uint64  `json:"like_id"`
	LikesCount    int64    `json:"likes_count"`
	CommentsCount int64    `json:"comments_count"`
	Video         *string  `json:"video"`
	Mp3           *string  `json:"mp3"`
}

// PostPageDTO 帖子分页出参
type PostPageDTO struct {
	List    []*PostDTO `json:"list"`
	HasMore bool       `json:"has_more"`
}

// PostCreateDTO 帖子新增入参（multipart），TagIDs 由 Handler 解析标签名后注入
type PostCreateDTO struct {
	Title       string                `form:"title" binding:"required" validate:"min=1,max=255"`
	Content     string                `form:"content" validate:"max=10000"`
	ImageFilter string                `form:"image_filter" validate:"max=32"`
	Image       *multipart.FileHeader `form:"image"`
	Video       *multipart.FileHeader `form:"video"`
	Mp3         *multipart.FileHeader `form:"mp3"`
	TagIDs      []uint64              `form:"-"`
}

// PostUpdateDTO 帖子部分更新入参，nil 字段表示保留原值
type PostUpdateDTO struct {
	Title        *string
	Content      *string
	ImageFilter  *string
	Image        *multipart.FileHeader
	Video        *multipart.FileHeader
	Mp3          *multipart.FileHeader
	TagIDs       []uint64
	TagsProvided bool
}

// PostListDTO 帖子列表查询入参
type PostListDTO struct {
	Search     string `form:"search"`
	Ordering   string `form:"ordering"`
	Owner      uint64 `form:"owner"`
	LikedBy    uint64 `form:"liked_by"`
	FollowedBy uint64 `form:"followed_by"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}
