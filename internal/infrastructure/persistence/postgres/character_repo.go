// Package postgres 提供 PostgreSQL 数据库访问层实现
package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storyverse-api/internal/domain/entity"
	"storyverse-api/internal/domain/repository"
	apperrors "storyverse-api/pkg/errors"
)

// CharacterRepository 角色仓储实现
type CharacterRepository struct {
	client *Client
}

// NewCharacterRepository 创建角色仓储
func NewCharacterRepository(client *Client) *CharacterRepository {
	return &CharacterRepository{client: client}
}

// Create 创建角色
func (r *CharacterRepository) Create(ctx context.Context, character *entity.Character) error {
	ctx, span := tracer.Start(ctx, "postgres.CharacterRepository.Create")
	defer span.End()

	if err := getDB(ctx, r.client).Create(character).Error; err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create character")
	}
	return nil
}

// GetByID 根据 ID 获取角色
func (r *CharacterRepository) GetByID(ctx context.Context, id string) (*entity.Character, error) {
	ctx, span := tracer.Start(ctx, "postgres.CharacterRepository.GetByID")
	defer span.End()

	var character entity.Character
	err := getDB(ctx, r.client).Where("id = ?", id).First(&character).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeCharacterNotFound, fmt.Sprintf("character %s not found", id))
		}
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to get character")
	}
	return &character, nil
}

// ListByStory 获取故事的角色列表
func (r *CharacterRepository) ListByStory(ctx context.Context, storyID string, filter *repository.CharacterFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Character], error) {
	ctx, span := tracer.Start(ctx, "postgres.CharacterRepository.ListByStory")
	defer span.End()

	query := getDB(ctx, r.client).Model(&entity.Character{}).Where("story_id = ?", storyID)
	if filter != nil {
		if filter.Role != "" {
			query = query.Where("role = ?", filter.Role)
		}
		if filter.Name != "" {
			query = query.Where("name ILIKE ?", "%"+filter.Name+"%")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to count characters")
	}

	var characters []*entity.Character
	err := query.Order("appearances DESC, name ASC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&characters).Error
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list characters")
	}
	return repository.NewPagedResult(characters, total, pagination), nil
}

// ExistsByName 判断故事世界中是否已有同名角色（大小写不敏感）
func (r *CharacterRepository) ExistsByName(ctx context.Context, storyWorldID, name string) (bool, error) {
	ctx, span := tracer.Start(ctx, "postgres.CharacterRepository.ExistsByName")
	defer span.End()

	query := getDB(ctx, r.client).Model(&entity.Character{}).Where("LOWER(name) = LOWER(?)", name)
	if storyWorldID != "" {
		query = query.Where("story_world_id = ?", storyWorldID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to check character name")
	}
	return count > 0, nil
}

// UpdateVectorID 更新向量 ID
func (r *CharacterRepository) UpdateVectorID(ctx context.Context, id, vectorID string) error {
	ctx, span := tracer.Start(ctx, "postgres.CharacterRepository.UpdateVectorID")
	defer span.End()

	err := getDB(ctx, r.client).Model(&entity.Character{}).
		Where("id = ?", id).
		Update("vector_id", vectorID).Error
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to update vector id")
	}
	return nil
}
