// Package entity 定义领域实体
package entity

import (
	"time"
)

// CharacterRole 角色定位
type CharacterRole string

const (
	RoleProtagonist CharacterRole = "protagonist"
	RoleAntagonist  CharacterRole = "antagonist"
	RoleSupporting  CharacterRole = "supporting"
	RoleBackground  CharacterRole = "background"
	RoleOther       CharacterRole = "other"
)

// Character 从文本中抽取的角色候选
type Character struct {
	ID           string        `json:"id,omitempty" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoryID      string        `json:"story_id,omitempty" gorm:"type:uuid;index"`
	StoryWorldID string        `json:"story_world_id,omitempty" gorm:"type:uuid;index"`
	Name         string        `json:"name" gorm:"type:varchar(255);not null;index"`
	Role         CharacterRole `json:"role" gorm:"type:varchar(50);default:'other'"`
	Description  string        `json:"description,omitempty" gorm:"type:text"`
	Logline      string        `json:"logline,omitempty" gorm:"type:text"`
	Confidence   float64       `json:"confidence" gorm:"default:0"`
	Appearances  int           `json:"appearances" gorm:"default:0"`
	// IsNew 目标故事世界中无同名角色时为 true；仅抽取期使用，不落库
	IsNew     bool      `json:"is_new" gorm:"-"`
	VectorID  string    `json:"vector_id,omitempty" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (Character) TableName() string {
	return "characters"
}

// NewCharacter 创建角色候选
func NewCharacter(name string, role CharacterRole, confidence float64) *Character {
	return &Character{
		Name:       name,
		Role:       role,
		Confidence: ClampConfidence(confidence),
		IsNew:      true,
	}
}

// IsMajor 是否为主要角色（主角或出场超过 10 次）
func (c *Character) IsMajor() bool {
	return c.Role == RoleProtagonist || c.Appearances > 10
}
