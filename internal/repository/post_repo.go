package repository

import (
	"Moments/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// PostFilter 列表过滤条件，ID 均为 Profile 维度
type PostFilter struct {
	Search     string
	Owner      uint64
	LikedBy    uint64
	FollowedBy uint64
	Ordering   string
}

type PostRepo interface {
	ListPosts(ctx context.Context, filter PostFilter, limit, offset int) ([]*model.Post, error)
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	CreatePost(ctx context.Context, post *model.Post, tagIDs []uint64) error
	UpdatePost(ctx context.Context, post *model.Post, tagIDs []uint64, replaceTags bool) error
	DeletePost(ctx context.Context, id uint64) error
	ListReferencedMediaKeys(ctx context.Context) ([]string, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

// annotated 在查询上注入点赞/评论聚合计数
func (s PostRepoImpl) annotated(ctx context.Context) *gorm.DB {
	likesSub := s.db.Model(&model.Like{}).
		Select("COUNT(DISTINCT likes.id)").
		Where("likes.post_id = posts.id")
	commentsSub := s.db.Model(&model.Comment{}).
		Select("COUNT(DISTINCT comments.id)").
		Where("comments.post_id = posts.id")

	return s.db.WithContext(ctx).Model(&model.Post{}).
		Select("posts.*, (?) AS likes_count, (?) AS comments_count", likesSub, commentsSub).
		Preload("Tags").
		Preload("User").
		Preload("User.Profile")
}

func (s PostRepoImpl) ListPosts(ctx context.Context, filter PostFilter, limit, offset int) ([]*model.Post, error) {
	q := s.annotated(ctx)

	if filter.Owner > 0 {
		q = q.Joins("JOIN profiles owner_profile ON owner_profile.user_id = posts.user_id").
			Where("owner_profile.id = ?", filter.Owner)
	}
	if filter.LikedBy > 0 {
		q = q.Joins("JOIN likes liker ON liker.post_id = posts.id").
			Joins("JOIN profiles liker_profile ON liker_profile.user_id = liker.user_id").
			Where("liker_profile.id = ?", filter.LikedBy).
			Group("posts.id")
	}
	if filter.FollowedBy > 0 {
		q = q.Joins("JOIN user_follows uf ON uf.following_id = posts.user_id").
			Joins("JOIN profiles follower_profile ON follower_profile.user_id = uf.follower_id").
			Where("follower_profile.id = ?", filter.FollowedBy)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Joins("JOIN users owner ON owner.id = posts.user_id").
			Where("owner.username LIKE ? OR posts.title LIKE ?", pattern, pattern)
	}

	var posts []*model.Post
	err := q.Order(orderClause(filter.Ordering)).
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// orderClause 排序白名单，未知值回退为按创建时间倒序
func orderClause(ordering string) string {
	switch ordering {
	case "likes_count":
		return "likes_count ASC"
	case "-likes_count":
		return "likes_count DESC"
	case "comments_count":
		return "comments_count ASC"
	case "-comments_count":
		return "comments_count DESC"
	case "latest_like":
		return "(SELECT MAX(l.created_at) FROM likes l WHERE l.post_id = posts.id) ASC"
	case "-latest_like":
		return "(SELECT MAX(l.created_at) FROM likes l WHERE l.post_id = posts.id) DESC"
	case "created_at":
		return "posts.created_at ASC"
	default:
		return "posts.created_at DESC"
	}
}

func (s PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := s.annotated(ctx).Where("posts.id = ?", id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (s PostRepoImpl) CreatePost(ctx context.Context, post *model.Post, tagIDs []uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "User").Create(post).Error; err != nil {
			return err
		}
		return createPostTags(tx, post.ID, tagIDs)
	})
}

func (s PostRepoImpl) UpdatePost(ctx context.Context, post *model.Post, tagIDs []uint64, replaceTags bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Post{}).Where("id = ?", post.ID).
			Select("Title", "Content", "Image", "ImageFilter", "Video", "Mp3").
			Updates(post).Error
		if err != nil {
			return err
		}
		if !replaceTags {
			return nil
		}
		if err = tx.Delete(&model.PostTag{}, "post_id = ?", post.ID).Error; err != nil {
			return err
		}
		return createPostTags(tx, post.ID, tagIDs)
	})
}

func (s PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.PostTag{}, "post_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, "id = ?", id).Error
	})
}

// ListReferencedMediaKeys 汇总帖子与头像仍引用的对象 Key，供清理任务比对
func (s PostRepoImpl) ListReferencedMediaKeys(ctx context.Context) ([]string, error) {
	var keys []string

	var imageKeys []string
	err := s.db.WithContext(ctx).Model(&model.Post{}).
		Distinct().Pluck("image", &imageKeys).Error
	if err != nil {
		return nil, err
	}
	keys = append(keys, imageKeys...)

	for _, column := range []string{"video", "mp3"} {
		var mediaKeys []string
		err = s.db.WithContext(ctx).Model(&model.Post{}).
			Where(column+" IS NOT NULL").
			Distinct().Pluck(column, &mediaKeys).Error
		if err != nil {
			return nil, err
		}
		keys = append(keys, mediaKeys...)
	}

	var profileKeys []string
	err = s.db.WithContext(ctx).Model(&model.Profile{}).
		Distinct().Pluck("image_url", &profileKeys).Error
	if err != nil {
		return nil, err
	}
	keys = append(keys, profileKeys...)

	return keys, nil
}

func createPostTags(tx *gorm.DB, postID uint64, tagIDs []uint64) error {
	if len(tagIDs) == 0 {
		return nil
	}
	postTags := make([]*model.PostTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		postTags = append(postTags, &model.PostTag{PostID: postID, TagID: tagID})
	}
	return tx.Create(postTags).Error
}
