// Package postgres 提供 PostgreSQL 数据库访问层实现
package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storyverse-api/internal/domain/entity"
	apperrors "storyverse-api/pkg/errors"
)

// StoryRepository 故事仓储实现
type StoryRepository struct {
	client *Client
}

// NewStoryRepository 创建故事仓储
func NewStoryRepository(client *Client) *StoryRepository {
	return &StoryRepository{client: client}
}

// Create 创建故事
func (r *StoryRepository) Create(ctx context.Context, story *entity.Story) error {
	ctx, span := tracer.Start(ctx, "postgres.StoryRepository.Create")
	defer span.End()

	if err := getDB(ctx, r.client).Create(story).Error; err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create story")
	}
	return nil
}

// GetByID 根据 ID 获取故事
func (r *StoryRepository) GetByID(ctx context.Context, id string) (*entity.Story, error) {
	ctx, span := tracer.Start(ctx, "postgres.StoryRepository.GetByID")
	defer span.End()

	var story entity.Story
	err := getDB(ctx, r.client).Where("id = ?", id).First(&story).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeStoryNotFound, fmt.Sprintf("story %s not found", id))
		}
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to get story")
	}
	return &story, nil
}

// UpdateSynopsis 更新故事梗概
func (r *StoryRepository) UpdateSynopsis(ctx context.Context, id, synopsis string) error {
	ctx, span := tracer.Start(ctx, "postgres.StoryRepository.UpdateSynopsis")
	defer span.End()

	err := getDB(ctx, r.client).Model(&entity.Story{}).
		Where("id = ?", id).
		Update("synopsis", synopsis).Error
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to update synopsis")
	}
	return nil
}
