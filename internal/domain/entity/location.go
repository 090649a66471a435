// Package entity 定义领域实体
package entity

import (
	"time"
)

// LocationType 地点类型
type LocationType string

const (
	LocationCity     LocationType = "city"
	LocationBuilding LocationType = "building"
	LocationNatural  LocationType = "natural"
	LocationCountry  LocationType = "country"
	LocationRealm    LocationType = "realm"
	LocationPlanet   LocationType = "planet"
	LocationOther    LocationType = "other"
)

// Location 从文本中抽取的地点候选
type Location struct {
	ID           string       `json:"id,omitempty" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoryID      string       `json:"story_id,omitempty" gorm:"type:uuid;index"`
	StoryWorldID string       `json:"story_world_id,omitempty" gorm:"type:uuid;index"`
	Name         string       `json:"name" gorm:"type:varchar(255);not null"`
	LocationType LocationType `json:"location_type" gorm:"type:varchar(50);default:'other'"`
	Description  string       `json:"description,omitempty" gorm:"type:text"`
	Confidence   float64      `json:"confidence" gorm:"default:0"`
	CreatedAt    time.Time    `json:"created_at,omitempty" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (Location) TableName() string {
	return "locations"
}

// NewLocation 创建地点候选
func NewLocation(name string, locType LocationType, confidence float64) *Location {
	return &Location{
		Name:         name,
		LocationType: locType,
		Confidence:   ClampConfidence(confidence),
	}
}
