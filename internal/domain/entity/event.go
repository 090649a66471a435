// Package entity 定义领域实体
package entity

import (
	"time"
)

// EventParticipant 事件参与角色，重要性 1-10
type EventParticipant struct {
	CharacterName string `json:"character_name"`
	CharacterID   string `json:"character_id,omitempty"`
	Importance    int    `json:"importance"`
}

// EventParticipants jsonb 存储的参与者列表
type EventParticipants []EventParticipant

// Event 从文本中抽取的事件候选
type Event struct {
	ID             string            `json:"id,omitempty" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoryID        string            `json:"story_id,omitempty" gorm:"type:uuid;index"`
	Title          string            `json:"title" gorm:"type:varchar(512);not null"`
	Description    string            `json:"description,omitempty" gorm:"type:text"`
	SequenceNumber int               `json:"sequence_number" gorm:"index"`
	Confidence     float64           `json:"confidence" gorm:"default:0"`
	Participants   EventParticipants `json:"participants,omitempty" gorm:"type:jsonb;serializer:json"`
	LocationNames  StringSlice       `json:"location_names,omitempty" gorm:"type:jsonb"`
	CreatedAt      time.Time         `json:"created_at,omitempty" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (Event) TableName() string {
	return "events"
}

// NewEvent 创建事件候选
func NewEvent(title string, sequenceNumber int, confidence float64) *Event {
	return &Event{
		Title:          title,
		SequenceNumber: sequenceNumber,
		Confidence:     ClampConfidence(confidence),
		Participants:   EventParticipants{},
		LocationNames:  StringSlice{},
	}
}

// AddParticipant 添加参与角色，重复添加只保留首次
func (e *Event) AddParticipant(name string, importance int) {
	for _, p := range e.Participants {
		if p.CharacterName == name {
			return
		}
	}
	if importance < 1 {
		importance = 1
	} else if importance > 10 {
		importance = 10
	}
	e.Participants = append(e.Participants, EventParticipant{
		CharacterName: name,
		Importance:    importance,
	})
}

// InvolvesCharacter 判断角色是否参与该事件
func (e *Event) InvolvesCharacter(name string) bool {
	for _, p := range e.Participants {
		if p.CharacterName == name {
			return true
		}
	}
	return false
}
