// Package entity 定义领域实体
package entity

import (
	"time"
)

// SceneType 场景分段类型
type SceneType string

const (
	SceneTypeScene   SceneType = "scene"
	SceneTypeChapter SceneType = "chapter"
)

// Scene 文本分段出的场景或章节
type Scene struct {
	ID             string    `json:"id,omitempty" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoryID        string    `json:"story_id,omitempty" gorm:"type:uuid;index"`
	Title          string    `json:"title" gorm:"type:varchar(512);not null"`
	Content        string    `json:"content" gorm:"type:text"`
	Type           SceneType `json:"type" gorm:"type:varchar(50);default:'scene'"`
	SequenceNumber int       `json:"sequence_number" gorm:"index"`
	// ParentSequenceNumber 子场景所属章节的序号，0 表示顶层
	ParentSequenceNumber int       `json:"parent_sequence_number,omitempty"`
	CreatedAt            time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (Scene) TableName() string {
	return "scenes"
}

// NewScene 创建场景分段
func NewScene(title, content string, sceneType SceneType, sequenceNumber int) *Scene {
	return &Scene{
		Title:          title,
		Content:        content,
		Type:           sceneType,
		SequenceNumber: sequenceNumber,
	}
}
