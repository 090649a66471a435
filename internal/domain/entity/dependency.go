// Package entity 定义领域实体
package entity

import (
	"time"
)

// DependencyType 事件依赖类型，目前只有时间先后
type DependencyType string

const (
	DependencyChronological DependencyType = "chronological"
)

// EventDependency 相邻事件间的时间先后依赖
type EventDependency struct {
	ID                  string         `json:"id,omitempty" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoryID             string         `json:"story_id,omitempty" gorm:"type:uuid;index"`
	PredecessorSequence int            `json:"predecessor_sequence"`
	SuccessorSequence   int            `json:"successor_sequence"`
	PredecessorID       string         `json:"predecessor_id,omitempty" gorm:"type:uuid"`
	SuccessorID         string         `json:"successor_id,omitempty" gorm:"type:uuid"`
	DependencyType      DependencyType `json:"dependency_type" gorm:"type:varchar(50);default:'chronological'"`
	Strength            int            `json:"strength" gorm:"default:5"`
	Description         string         `json:"description,omitempty" gorm:"type:text"`
	CreatedAt           time.Time      `json:"created_at,omitempty" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (EventDependency) TableName() string {
	return "event_dependencies"
}

// NewEventDependency 创建时间先后依赖，强度固定为 5
func NewEventDependency(predecessorSeq, successorSeq int, description string) *EventDependency {
	return &EventDependency{
		PredecessorSequence: predecessorSeq,
		SuccessorSequence:   successorSeq,
		DependencyType:      DependencyChronological,
		Strength:            5,
		Description:         description,
	}
}
