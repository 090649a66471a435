// Package postgres 提供 PostgreSQL 数据库访问层实现
package postgres

import (
	"context"

	"storyverse-api/internal/domain/entity"
	apperrors "storyverse-api/pkg/errors"
)

// 叙事支撑实体的仓储都只有创建与按故事列出两个操作，集中放在一个文件里。

// LocationRepository 地点仓储实现
type LocationRepository struct {
	client *Client
}

// NewLocationRepository 创建地点仓储
func NewLocationRepository(client *Client) *LocationRepository {
	return &LocationRepository{client: client}
}

// Create 创建地点
func (r *LocationRepository) Create(ctx context.Context, location *entity.Location) error {
	ctx, span := tracer.Start(ctx, "postgres.LocationRepository.Create")
	defer span.End()

	if err := getDB(ctx, r.client).Create(location).Error; err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create location")
	}
	return nil
}

// ListByStory 获取故事的地点列表
func (r *LocationRepository) ListByStory(ctx context.Context, storyID string) ([]*entity.Location, error) {
	ctx, span := tracer.Start(ctx, "postgres.LocationRepository.ListByStory")
	defer span.End()

	var locations []*entity.Location
	if err := getDB(ctx, r.client).Where("story_id = ?", storyID).Order("name ASC").Find(&locations).Error; err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list locations")
	}
	return locations, nil
}

// ItemRepository 物品仓储实现
type ItemRepository struct {
	client *Client
}

// NewItemRepository 创建物品仓储
func NewItemRepository(client *Client) *ItemRepository {
	return &ItemRepository{client: client}
}

// Create 创建物品
func (r *ItemRepository) Create(ctx context.Context, item *entity.Item) error {
	ctx, span := tracer.Start(ctx, "postgres.ItemRepository.Create")
	defer span.End()

	if err := getDB(ctx, r.client).Create(item).Error; err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create item")
	}
	return nil
}

// ListByStory 获取故事的物品列表
func (r *ItemRepository) ListByStory(ctx context.Context, storyID string) ([]*entity.Item, error) {
	ctx, span := tracer.Start(ctx, "postgres.ItemRepository.ListByStory")
	defer span.End()

	var items []*entity.Item
	if err := getDB(ctx, r.client).Where("story_id = ?", storyID).Order("name ASC").Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list items")
	}
	return items, nil
}

// EventRepository 事件仓储实现
type EventRepository struct {
	client *Client
}

// NewEventRepository 创建事件仓储
func NewEventRepository(client *Client) *EventRepository {
	return &EventRepository{client: client}
}

// Create 创建事件
func (r *EventRepository) Create(ctx context.Context, event *entity.Event) error {
	ctx, span := tracer.Start(ctx, "postgres.EventRepository.Create")
	defer span.End()

	if err := getDB(ctx, r.client).Create(event).Error; err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create event")
	}
	return nil
}

// ListByStory 按序号升序获取故事事件
func (r *EventRepository) ListByStory(ctx context.Context, storyID string) ([]*entity.Event, error) {
	ctx, span := tracer.Start(ctx, "postgres.EventRepository.ListByStory")
	defer span.End()

	var events []*entity.Event
	if err := getDB(ctx, r.client).Where("story_id = ?", storyID).Order("sequence_number ASC").Find(&events).Error; err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list events")
	}
	return events, nil
}

// SceneRepository 场景仓储实现
type SceneRepository struct {
	client *Client
}

// NewSceneRepository 创建场景仓储
func NewSceneRepository(client *Client) *SceneRepository {
	return &SceneRepository{client: client}
}

// Create 创建场景
func (r *SceneRepository) Create(ctx context.Context, scene *entity.Scene) error {
	ctx, span := tracer.Start(ctx, "postgres.SceneRepository.Create")
	defer span.End()

	if err := getDB(ctx, r.client).Create(scene).Error; err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create scene")
	}
	return nil
}

// ListByStory 按序号升序获取故事场景
func (r *SceneRepository) ListByStory(ctx context.Context, storyID string) ([]*entity.Scene, error) {
	ctx, span := tracer.Start(ctx, "postgres.SceneRepository.ListByStory")
	defer span.End()

	var scenes []*entity.Scene
	if err := getDB(ctx, r.client).Where("story_id = ?", storyID).Order("sequence_number ASC").Find(&scenes).Error; err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list scenes")
	}
	return scenes, nil
}

// PlotlineRepository 情节线仓储实现
type PlotlineRepository struct {
	client *Client
}

// NewPlotlineRepository 创建情节线仓储
func NewPlotlineRepository(client *Client) *PlotlineRepository {
	return &PlotlineRepository{client: client}
}

// Create 创建情节线
func (r *PlotlineRepository) Create(ctx context.Context, plotline *entity.Plotline) error {
	ctx, span := tracer.Start(ctx, "postgres.PlotlineRepository.Create")
	defer span.End()

	if err := getDB(ctx, r.client).Create(plotline).Error; err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create plotline")
	}
	return nil
}

// ListByStory 获取故事的情节线列表
func (r *PlotlineRepository) ListByStory(ctx context.Context, storyID string) ([]*entity.Plotline, error) {
	ctx, span := tracer.Start(ctx, "postgres.PlotlineRepository.ListByStory")
	defer span.End()

	var plotlines []*entity.Plotline
	if err := getDB(ctx, r.client).Where("story_id = ?", storyID).Find(&plotlines).Error; err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list plotlines")
	}
	return plotlines, nil
}

// RelationshipRepository 角色关系仓储实现
type RelationshipRepository struct {
	client *Client
}

// NewRelationshipRepository 创建关系仓储
func NewRelationshipRepository(client *Client) *RelationshipRepository {
	return &RelationshipRepository{client: client}
}

// Create 创建关系
func (r *RelationshipRepository) Create(ctx context.Context, rel *entity.CharacterRelationship) error {
	ctx, span := tracer.Start(ctx, "postgres.RelationshipRepository.Create")
	defer span.End()

	if err := getDB(ctx, r.client).Create(rel).Error; err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create relationship")
	}
	return nil
}

// ListByStory 获取故事的关系列表
func (r *RelationshipRepository) ListByStory(ctx context.Context, storyID string) ([]*entity.CharacterRelationship, error) {
	ctx, span := tracer.Start(ctx, "postgres.RelationshipRepository.ListByStory")
	defer span.End()

	var rels []*entity.CharacterRelationship
	if err := getDB(ctx, r.client).Where("story_id = ?", storyID).Find(&rels).Error; err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list relationships")
	}
	return rels, nil
}

// DependencyRepository 事件依赖仓储实现
type DependencyRepository struct {
	client *Client
}

// NewDependencyRepository 创建依赖仓储
func NewDependencyRepository(client *Client) *DependencyRepository {
	return &DependencyRepository{client: client}
}

// Create 创建依赖
func (r *DependencyRepository) Create(ctx context.Context, dep *entity.EventDependency) error {
	ctx, span := tracer.Start(ctx, "postgres.DependencyRepository.Create")
	defer span.End()

	if err := getDB(ctx, r.client).Create(dep).Error; err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create dependency")
	}
	return nil
}

// ListByStory 获取故事的依赖列表
func (r *DependencyRepository) ListByStory(ctx context.Context, storyID string) ([]*entity.EventDependency, error) {
	ctx, span := tracer.Start(ctx, "postgres.DependencyRepository.ListByStory")
	defer span.End()

	var deps []*entity.EventDependency
	if err := getDB(ctx, r.client).Where("story_id = ?", storyID).Order("predecessor_sequence ASC").Find(&deps).Error; err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list dependencies")
	}
	return deps, nil
}

// ArcRepository 角色弧线仓储实现
type ArcRepository struct {
	client *Client
}

// NewArcRepository 创建弧线仓储
func NewArcRepository(client *Client) *ArcRepository {
	return &ArcRepository{client: client}
}

// Create 创建弧线
func (r *ArcRepository) Create(ctx context.Context, arc *entity.CharacterArc) error {
	ctx, span := tracer.Start(ctx, "postgres.ArcRepository.Create")
	defer span.End()

	if err := getDB(ctx, r.client).Create(arc).Error; err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create arc")
	}
	return nil
}

// ListByStory 获取故事的弧线列表
func (r *ArcRepository) ListByStory(ctx context.Context, storyID string) ([]*entity.CharacterArc, error) {
	ctx, span := tracer.Start(ctx, "postgres.ArcRepository.ListByStory")
	defer span.End()

	var arcs []*entity.CharacterArc
	if err := getDB(ctx, r.client).Where("story_id = ?", storyID).Find(&arcs).Error; err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list arcs")
	}
	return arcs, nil
}
