// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"storyverse-api/internal/domain/entity"
)

// CreateStoryRequest 创建故事请求
type CreateStoryRequest struct {
	Title        string `json:"title" binding:"required"`
	StoryWorldID string `json:"story_world_id,omitempty"`
}

// StoryResponse 故事响应
type StoryResponse struct {
	ID           string `json:"id"`
	StoryWorldID string `json:"story_world_id,omitempty"`
	Title        string `json:"title"`
	Synopsis     string `json:"synopsis,omitempty"`
}

// ToStoryResponse 实体转响应
func ToStoryResponse(s *entity.Story) *StoryResponse {
	return &StoryResponse{
		ID:           s.ID,
		StoryWorldID: s.StoryWorldID,
		Title:        s.Title,
		Synopsis:     s.Synopsis,
	}
}
