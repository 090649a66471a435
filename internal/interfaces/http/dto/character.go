// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"storyverse-api/internal/domain/entity"
)

// CharacterResponse 角色响应
type CharacterResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	Description string  `json:"description,omitempty"`
	Logline     string  `json:"logline,omitempty"`
	Confidence  float64 `json:"confidence"`
	Appearances int     `json:"appearances"`
	VectorID    string  `json:"vector_id,omitempty"`
}

// CharacterListResponse 角色列表响应
type CharacterListResponse struct {
	Characters []*CharacterResponse `json:"characters"`
}

// ToCharacterResponse 实体转响应
func ToCharacterResponse(c *entity.Character) *CharacterResponse {
	return &CharacterResponse{
		ID:          c.ID,
		Name:        c.Name,
		Role:        string(c.Role),
		Description: c.Description,
		Logline:     c.Logline,
		Confidence:  c.Confidence,
		Appearances: c.Appearances,
		VectorID:    c.VectorID,
	}
}

// ToCharacterListResponse 实体列表转响应
func ToCharacterListResponse(items []*entity.Character) *CharacterListResponse {
	out := make([]*CharacterResponse, 0, len(items))
	for _, c := range items {
		out = append(out, ToCharacterResponse(c))
	}
	return &CharacterListResponse{Characters: out}
}

// SimilarCharactersRequest 相似角色检索请求
type SimilarCharactersRequest struct {
	Query        string `json:"query" binding:"required"`
	StoryWorldID string `json:"story_world_id" binding:"required"`
	TopK         int    `json:"top_k,omitempty"`
}

// SimilarCharacterResponse 相似角色检索结果
type SimilarCharacterResponse struct {
	CharacterID string  `json:"character_id"`
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	Description string  `json:"description,omitempty"`
	Score       float32 `json:"score"`
}

// SimilarCharactersResponse 相似角色检索响应
type SimilarCharactersResponse struct {
	Characters []*SimilarCharacterResponse `json:"characters"`
}
