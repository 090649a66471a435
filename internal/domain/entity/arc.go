// Package entity 定义领域实体
package entity

import (
	"time"
)

// CharacterArc 主要角色的成长弧线（仅对出现在 ≥3 个事件中的角色生成）
type CharacterArc struct {
	ID            string      `json:"id,omitempty" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoryID       string      `json:"story_id,omitempty" gorm:"type:uuid;index"`
	CharacterName string      `json:"character_name" gorm:"type:varchar(255);not null"`
	CharacterID   string      `json:"character_id,omitempty" gorm:"type:uuid"`
	Title         string      `json:"title" gorm:"type:varchar(512);not null"`
	Description   string      `json:"description,omitempty" gorm:"type:text"`
	StartingState string      `json:"starting_state,omitempty" gorm:"type:text"`
	EndingState   string      `json:"ending_state,omitempty" gorm:"type:text"`
	EventTitles   StringSlice `json:"event_titles,omitempty" gorm:"type:jsonb"`
	CreatedAt     time.Time   `json:"created_at,omitempty" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (CharacterArc) TableName() string {
	return "character_arcs"
}

// NewCharacterArc 创建角色弧线
func NewCharacterArc(characterName, title string) *CharacterArc {
	return &CharacterArc{
		CharacterName: characterName,
		Title:         title,
		EventTitles:   StringSlice{},
	}
}
