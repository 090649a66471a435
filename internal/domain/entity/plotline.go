// Package entity 定义领域实体
package entity

import (
	"time"
)

// PlotlineType 情节线类型
type PlotlineType string

const (
	PlotlineMain      PlotlineType = "main"
	PlotlineSubplot   PlotlineType = "subplot"
	PlotlineCharacter PlotlineType = "character"
	PlotlineThematic  PlotlineType = "thematic"
	PlotlineOther     PlotlineType = "other"
)

// Plotline 从文本中抽取或推断的情节线
type Plotline struct {
	ID             string       `json:"id,omitempty" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoryID        string       `json:"story_id,omitempty" gorm:"type:uuid;index"`
	Title          string       `json:"title" gorm:"type:varchar(512);not null"`
	Description    string       `json:"description,omitempty" gorm:"type:text"`
	PlotlineType   PlotlineType `json:"plotline_type" gorm:"type:varchar(50);default:'other'"`
	Confidence     float64      `json:"confidence" gorm:"default:0"`
	CharacterNames StringSlice  `json:"character_names,omitempty" gorm:"type:jsonb"`
	EventTitles    StringSlice  `json:"event_titles,omitempty" gorm:"type:jsonb"`
	CreatedAt      time.Time    `json:"created_at,omitempty" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (Plotline) TableName() string {
	return "plotlines"
}

// NewPlotline 创建情节线
func NewPlotline(title string, plotType PlotlineType, confidence float64) *Plotline {
	return &Plotline{
		Title:          title,
		PlotlineType:   plotType,
		Confidence:     ClampConfidence(confidence),
		CharacterNames: StringSlice{},
		EventTitles:    StringSlice{},
	}
}
