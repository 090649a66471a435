// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Story 导入目标故事（聚合根）
type Story struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey"`
	StoryWorldID string    `json:"story_world_id,omitempty" gorm:"type:uuid;index"`
	Title        string    `json:"title" gorm:"type:varchar(512);not null"`
	Synopsis     string    `json:"synopsis,omitempty" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Story) TableName() string {
	return "stories"
}

// NewStory 创建故事
func NewStory(title, storyWorldID string) *Story {
	return &Story{
		ID:           uuid.New().String(),
		StoryWorldID: storyWorldID,
		Title:        title,
	}
}
