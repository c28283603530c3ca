package repository

import (
	"Moments/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepo interface {
	ListTags(ctx context.Context) ([]*model.Tag, error)
	GetOrCreateTag(ctx context.Context, tagName string) (*model.Tag, error)
	GetOrCreateTags(ctx context.Context, tagNames []string) ([]*model.Tag, error)
}

type tagRepoImpl struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepo {
	return &tagRepoImpl{
		db: db,
	}
}

func (s *tagRepoImpl) ListTags(ctx context.Context) ([]*model.Tag, error) {
	var tags []*model.Tag
	err := s.db.WithContext(ctx).Order("id ASC").Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// GetOrCreateTag 借助唯一索引做插入即取，避免先查后插的竞争窗口
func (s *tagRepoImpl) GetOrCreateTag(ctx context.Context, tagName string) (*model.Tag, error) {
	tag := model.Tag{
		Name:      tagName,
		CreatedAt: time.Now(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&tag).Error
	if err != nil {
		return nil, err
	}
	// 如果记录已存在，查询获取完整数据
	var existingTag model.Tag
	err = s.db.WithContext(ctx).Where("name = ?", tagName).First(&existingTag).Error
	if err != nil {
		return nil, err
	}
	return &existingTag, nil
}

func (s *tagRepoImpl) GetOrCreateTags(ctx context.Context, tagNames []string) ([]*model.Tag, error) {
	if len(tagNames) == 0 {
		return nil, nil
	}

	// 全量 OnConflict DoNothing 插入，已有同名标签时不产生重复行
	for _, tagName := range tagNames {
		tag := model.Tag{
			Name:      tagName,
			CreatedAt: time.Now(),
		}
		err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&tag).Error
		if err != nil {
			return nil, err
		}
	}

	var tags []*model.Tag
	err := s.db.WithContext(ctx).Where("name IN ?", tagNames).Find(&tags).Error
	if err != nil {
		return nil, err
	}

	return tags, nil
}
