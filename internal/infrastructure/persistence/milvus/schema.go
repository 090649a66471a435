// Package milvus 提供 Milvus 向量数据库访问层实现
package milvus

import (
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
)

const (
	// CollectionCharacterProfiles 角色档案集合
	CollectionCharacterProfiles = "character_profiles"

	// VectorDimension 向量维度
	VectorDimension = 1024
)

// CharacterProfilesSchema 角色档案 Collection Schema。
// 向量由 "名称 - 描述" 文本编码而来，用于相似角色检索。
func CharacterProfilesSchema() *entity.Schema {
	return &entity.Schema{
		CollectionName: CollectionCharacterProfiles,
		Description:    "Character profiles for similarity search",
		Fields: []*entity.Field{
			{
				Name:       "id",
				DataType:   entity.FieldTypeVarChar,
				PrimaryKey: true,
				AutoID:     false,
				TypeParams: map[string]string{
					"max_length": "64",
				},
			},
			{
				Name:     "vector",
				DataType: entity.FieldTypeFloatVector,
				TypeParams: map[string]string{
					"dim": "1024",
				},
			},
			{
				Name:     "story_world_id",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "64",
				},
			},
			{
				Name:     "character_id",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "64",
				},
			},
			{
				Name:     "name",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "256",
				},
			},
			{
				Name:     "role",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "32",
				},
			},
			{
				Name:     "description",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "65535",
				},
			},
		},
	}
}

// CharacterProfile 角色档案数据结构
type CharacterProfile struct {
	ID           string    `json:"id"`
	Vector       []float32 `json:"vector"`
	StoryWorldID string    `json:"story_world_id"`
	CharacterID  string    `json:"character_id"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Description  string    `json:"description"`
}

// PartitionName 按故事世界生成分区名称
func PartitionName(storyWorldID string) string {
	return "world_" + storyWorldID
}
