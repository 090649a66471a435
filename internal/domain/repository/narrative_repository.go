// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"storyverse-api/internal/domain/entity"
)

// LocationRepository 地点仓储接口
type LocationRepository interface {
	// Create 创建地点
	Create(ctx context.Context, location *entity.Location) error

	// ListByStory 获取故事的地点列表
	ListByStory(ctx context.Context, storyID string) ([]*entity.Location, error)
}

// ItemRepository 物品仓储接口
type ItemRepository interface {
	// Create 创建物品
	Create(ctx context.Context, item *entity.Item) error

	// ListByStory 获取故事的物品列表
	ListByStory(ctx context.Context, storyID string) ([]*entity.Item, error)
}

// EventRepository 事件仓储接口
type EventRepository interface {
	// Create 创建事件
	Create(ctx context.Context, event *entity.Event) error

	// ListByStory 按序号升序获取故事事件
	ListByStory(ctx context.Context, storyID string) ([]*entity.Event, error)
}

// SceneRepository 场景仓储接口
type SceneRepository interface {
	// Create 创建场景
	Create(ctx context.Context, scene *entity.Scene) error

	// ListByStory 按序号升序获取故事场景
	ListByStory(ctx context.Context, storyID string) ([]*entity.Scene, error)
}

// PlotlineRepository 情节线仓储接口
type PlotlineRepository interface {
	// Create 创建情节线
	Create(ctx context.Context, plotline *entity.Plotline) error

	// ListByStory 获取故事的情节线列表
	ListByStory(ctx context.Context, storyID string) ([]*entity.Plotline, error)
}

// RelationshipRepository 角色关系仓储接口
type RelationshipRepository interface {
	// Create 创建关系
	Create(ctx context.Context, rel *entity.CharacterRelationship) error

	// ListByStory 获取故事的关系列表
	ListByStory(ctx context.Context, storyID string) ([]*entity.CharacterRelationship, error)
}

// DependencyRepository 事件依赖仓储接口
type DependencyRepository interface {
	// Create 创建依赖
	Create(ctx context.Context, dep *entity.EventDependency) error

	// ListByStory 获取故事的依赖列表
	ListByStory(ctx context.Context, storyID string) ([]*entity.EventDependency, error)
}

// ArcRepository 角色弧线仓储接口
type ArcRepository interface {
	// Create 创建弧线
	Create(ctx context.Context, arc *entity.CharacterArc) error

	// ListByStory 获取故事的弧线列表
	ListByStory(ctx context.Context, storyID string) ([]*entity.CharacterArc, error)
}
