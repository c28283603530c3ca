package service

import (
	"Moments/internal/api/dto"
	"Moments/internal/repository"
	"context"
	"strings"
)

type TagService interface {
	ListTags(ctx context.Context) ([]*dto.TagDTO, error)
	CreateTag(ctx context.Context, name string) (*dto.TagDTO, error)
	ResolveTags(ctx context.Context, names []string) ([]uint64, error)
}

type tagServiceImpl struct {
	tagRepo repository.TagRepo
}

func NewTagService(tagRepo repository.TagRepo) TagService {
	return &tagServiceImpl{
		tagRepo: tagRepo,
	}
}

func (s *tagServiceImpl) ListTags(ctx context.Context) ([]*dto.TagDTO, error) {
	tags, err := s.tagRepo.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.TagDTO, len(tags))
	for i, tag := range tags {
		out[i] = &dto.TagDTO{ID: tag.ID, Name: tag.Name}
	}
	return out, nil
}

// CreateTag 按名取或建，重名请求返回已有标签而非报错
func (s *tagServiceImpl) CreateTag(ctx context.Context, name string) (*dto.TagDTO, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTagNameEmpty
	}

	tag, err := s.tagRepo.GetOrCreateTag(ctx, name)
	if err != nil {
		return nil, err
	}
	return &dto.TagDTO{ID: tag.ID, Name: tag.Name}, nil
}

// ResolveTags 标签名批量解析为 ID，保持入参顺序
func (s *tagServiceImpl) ResolveTags(ctx context.Context, names []string) ([]uint64, error) {
	if len(names) == 0 {
		return nil, nil
	}

	tags, err := s.tagRepo.GetOrCreateTags(ctx, names)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]uint64, len(tags))
	for _, tag := range tags {
		byName[tag.Name] = tag.ID
	}

	ids := make([]uint64, 0, len(names))
	for _, name := range names {
		if id, ok := byName[name]; ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
