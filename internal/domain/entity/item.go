// Package entity 定义领域实体
package entity

import (
	"time"
)

// ItemType 物品类型
type ItemType string

const (
	ItemWeapon     ItemType = "weapon"
	ItemTool       ItemType = "tool"
	ItemClothing   ItemType = "clothing"
	ItemMagical    ItemType = "magical"
	ItemTechnology ItemType = "technology"
	ItemDocument   ItemType = "document"
	ItemOther      ItemType = "other"
)

// Item 从文本中抽取的物品候选
type Item struct {
	ID           string    `json:"id,omitempty" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoryID      string    `json:"story_id,omitempty" gorm:"type:uuid;index"`
	StoryWorldID string    `json:"story_world_id,omitempty" gorm:"type:uuid;index"`
	Name         string    `json:"name" gorm:"type:varchar(255);not null"`
	ItemType     ItemType  `json:"item_type" gorm:"type:varchar(50);default:'other'"`
	Description  string    `json:"description,omitempty" gorm:"type:text"`
	Confidence   float64   `json:"confidence" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (Item) TableName() string {
	return "items"
}

// NewItem 创建物品候选
func NewItem(name string, itemType ItemType, confidence float64) *Item {
	return &Item{
		Name:       name,
		ItemType:   itemType,
		Confidence: ClampConfidence(confidence),
	}
}
