// Package entity 定义领域实体
package entity

import (
	"time"
)

// RelationshipType 角色关系类型
type RelationshipType string

const (
	RelationshipFamily       RelationshipType = "family"
	RelationshipFriend       RelationshipType = "friend"
	RelationshipEnemy        RelationshipType = "enemy"
	RelationshipRomantic     RelationshipType = "romantic"
	RelationshipProfessional RelationshipType = "professional"
	RelationshipOther        RelationshipType = "other"
)

// CharacterRelationship 推断出的角色间关系（无序对，不重复反向对）
type CharacterRelationship struct {
	ID           string           `json:"id,omitempty" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoryID      string           `json:"story_id,omitempty" gorm:"type:uuid;index"`
	Character1   string           `json:"character1" gorm:"type:varchar(255);not null"`
	Character2   string           `json:"character2" gorm:"type:varchar(255);not null"`
	Character1ID string           `json:"character1_id,omitempty" gorm:"type:uuid"`
	Character2ID string           `json:"character2_id,omitempty" gorm:"type:uuid"`
	Type         RelationshipType `json:"relationship_type" gorm:"column:relationship_type;type:varchar(50);default:'other'"`
	Description  string           `json:"description,omitempty" gorm:"type:text"`
	// Intensity 共现频次推出的强度，1-10
	Intensity int       `json:"intensity" gorm:"default:1"`
	CreatedAt time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (CharacterRelationship) TableName() string {
	return "character_relationships"
}

// NewCharacterRelationship 创建关系，约束强度到 [1,10]
func NewCharacterRelationship(char1, char2 string, relType RelationshipType, intensity int) *CharacterRelationship {
	if intensity < 1 {
		intensity = 1
	} else if intensity > 10 {
		intensity = 10
	}
	return &CharacterRelationship{
		Character1: char1,
		Character2: char2,
		Type:       relType,
		Intensity:  intensity,
	}
}

// Involves 判断角色是否属于该关系对
func (r *CharacterRelationship) Involves(name string) bool {
	return r.Character1 == name || r.Character2 == name
}
