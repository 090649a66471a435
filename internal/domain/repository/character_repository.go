// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"storyverse-api/internal/domain/entity"
)

// CharacterFilter 角色过滤条件
type CharacterFilter struct {
	Role entity.CharacterRole
	Name string
}

// CharacterRepository 角色仓储接口
type CharacterRepository interface {
	// Create 创建角色
	Create(ctx context.Context, character *entity.Character) error

	// GetByID 根据 ID 获取角色
	GetByID(ctx context.Context, id string) (*entity.Character, error)

	// ListByStory 获取故事的角色列表
	ListByStory(ctx context.Context, storyID string, filter *CharacterFilter, pagination Pagination) (*PagedResult[*entity.Character], error)

	// ExistsByName 判断故事世界中是否已有同名角色（大小写不敏感）。
	// storyWorldID 为空时在全库范围内查找。
	ExistsByName(ctx context.Context, storyWorldID, name string) (bool, error)

	// UpdateVectorID 更新向量 ID
	UpdateVectorID(ctx context.Context, id, vectorID string) error
}
