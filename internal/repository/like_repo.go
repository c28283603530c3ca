package repository

import (
	"Moments/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type LikeRepo interface {
	GetLikeID(ctx context.Context, userID uint64, postID uint64) (*uint64, error)
}

type likeRepoImpl struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepo {
	return &likeRepoImpl{
		db: db,
	}
}

// GetLikeID 返回用户在该帖子上的点赞记录 ID，无记录时为 nil。
// (user_id, post_id) 有唯一索引，按主键取首条保证确定性。
func (s *likeRepoImpl) GetLikeID(ctx context.Context, userID uint64, postID uint64) (*uint64, error) {
	var like model.Like
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Order("id ASC").
		First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &like.ID, nil
}
