// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"storyverse-api/internal/domain/entity"
)

// StoryRepository 故事仓储接口
type StoryRepository interface {
	// Create 创建故事
	Create(ctx context.Context, story *entity.Story) error

	// GetByID 根据 ID 获取故事
	GetByID(ctx context.Context, id string) (*entity.Story, error)

	// UpdateSynopsis 更新故事梗概
	UpdateSynopsis(ctx context.Context, id, synopsis string) error
}
