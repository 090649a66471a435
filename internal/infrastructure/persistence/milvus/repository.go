// Package milvus 提供 Milvus 向量数据库访问层实现
package milvus

import (
	"context"
	"fmt"
	"time"

	"github.com/milvus-io/milvus-sdk-go/v2/entity"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"storyverse-api/pkg/metrics"
)

// Repository 角色档案向量仓储
type Repository struct {
	client *Client
}

// NewRepository 创建向量仓储
func NewRepository(client *Client) *Repository {
	return &Repository{client: client}
}

// SimilarCharacter 相似角色检索结果
type SimilarCharacter struct {
	CharacterID string
	Name        string
	Role        string
	Description string
	Score       float32
}

// CreateCollection 创建集合
func (r *Repository) CreateCollection(ctx context.Context, schema *entity.Schema) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.CreateCollection",
		trace.WithAttributes(attribute.String("collection", schema.CollectionName)))
	defer span.End()

	schema.CollectionName = r.client.CollectionName(schema.CollectionName)

	if err := r.client.milvus.CreateCollection(ctx, schema, entity.DefaultShardNumber); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create collection: %w", err)
	}
	return nil
}

// CreateIndex 创建 HNSW 索引
func (r *Repository) CreateIndex(ctx context.Context, collection string) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.CreateIndex",
		trace.WithAttributes(attribute.String("collection", collection)))
	defer span.End()

	idx, err := entity.NewIndexHNSW(
		entity.COSINE,
		r.client.config.HNSWM,
		r.client.config.HNSWEfConstruction,
	)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create index: %w", err)
	}

	if err := r.client.milvus.CreateIndex(ctx, r.client.CollectionName(collection), "vector", idx, false); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create index: %w", err)
	}
	return nil
}

// CreatePartition 创建故事世界分区
func (r *Repository) CreatePartition(ctx context.Context, collection, storyWorldID string) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.CreatePartition",
		trace.WithAttributes(
			attribute.String("collection", collection),
			attribute.String("partition", PartitionName(storyWorldID)),
		))
	defer span.End()

	return r.client.milvus.CreatePartition(ctx, r.client.CollectionName(collection), PartitionName(storyWorldID))
}

// InsertProfiles 插入角色档案
func (r *Repository) InsertProfiles(ctx context.Context, storyWorldID string, profiles []*CharacterProfile) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.InsertProfiles",
		trace.WithAttributes(
			attribute.String("story_world_id", storyWorldID),
			attribute.Int("count", len(profiles)),
		))
	defer span.End()

	if len(profiles) == 0 {
		return nil
	}

	collName := r.client.CollectionName(CollectionCharacterProfiles)
	partitionName := PartitionName(storyWorldID)

	// 确保分区存在
	has, _ := r.client.milvus.HasPartition(ctx, collName, partitionName)
	if !has {
		if err := r.CreatePartition(ctx, CollectionCharacterProfiles, storyWorldID); err != nil {
			return err
		}
	}

	ids := make([]string, len(profiles))
	vectors := make([][]float32, len(profiles))
	worldIDs := make([]string, len(profiles))
	characterIDs := make([]string, len(profiles))
	names := make([]string, len(profiles))
	roles := make([]string, len(profiles))
	descriptions := make([]string, len(profiles))

	for i, p := range profiles {
		ids[i] = p.ID
		vectors[i] = p.Vector
		worldIDs[i] = p.StoryWorldID
		characterIDs[i] = p.CharacterID
		names[i] = p.Name
		roles[i] = p.Role
		descriptions[i] = p.Description
	}

	_, err := r.client.milvus.Insert(ctx, collName, partitionName,
		entity.NewColumnVarChar("id", ids),
		entity.NewColumnFloatVector("vector", VectorDimension, vectors),
		entity.NewColumnVarChar("story_world_id", worldIDs),
		entity.NewColumnVarChar("character_id", characterIDs),
		entity.NewColumnVarChar("name", names),
		entity.NewColumnVarChar("role", roles),
		entity.NewColumnVarChar("description", descriptions),
	)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to insert profiles: %w", err)
	}
	return nil
}

// SearchSimilar 按查询向量检索相似角色
func (r *Repository) SearchSimilar(ctx context.Context, storyWorldID string, queryVector []float32, topK int) ([]*SimilarCharacter, error) {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return nil, fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.SearchSimilar",
		trace.WithAttributes(
			attribute.String("story_world_id", storyWorldID),
			attribute.Int("top_k", topK),
		))
	defer span.End()

	start := time.Now()
	status := "success"
	defer func() {
		metrics.MilvusSearchDuration.WithLabelValues(CollectionCharacterProfiles).Observe(time.Since(start).Seconds())
		metrics.MilvusSearchTotal.WithLabelValues(CollectionCharacterProfiles, status).Inc()
	}()

	collName := r.client.CollectionName(CollectionCharacterProfiles)
	partitionName := PartitionName(storyWorldID)

	// 分区尚未创建（例如新故事世界）时直接返回空结果
	if has, err := r.client.milvus.HasPartition(ctx, collName, partitionName); err != nil {
		status = "error"
		span.RecordError(err)
		return nil, fmt.Errorf("failed to check partition: %w", err)
	} else if !has {
		return []*SimilarCharacter{}, nil
	}

	filter := fmt.Sprintf(`story_world_id == "%s"`, storyWorldID)

	sp, err := entity.NewIndexHNSWSearchParam(128)
	if err != nil {
		status = "error"
		span.RecordError(err)
		return nil, fmt.Errorf("failed to create search param: %w", err)
	}

	results, err := r.client.milvus.Search(ctx,
		collName,
		[]string{partitionName},
		filter,
		[]string{"character_id", "name", "role", "description"},
		[]entity.Vector{entity.FloatVector(queryVector)},
		"vector",
		entity.COSINE,
		topK,
		sp,
	)
	if err != nil {
		status = "error"
		span.RecordError(err)
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var similar []*SimilarCharacter
	for _, result := range results {
		for i := 0; i < result.ResultCount; i++ {
			sc := &SimilarCharacter{Score: result.Scores[i]}
			if col, ok := result.Fields.GetColumn("character_id").(*entity.ColumnVarChar); ok {
				sc.CharacterID = col.Data()[i]
			}
			if col, ok := result.Fields.GetColumn("name").(*entity.ColumnVarChar); ok {
				sc.Name = col.Data()[i]
			}
			if col, ok := result.Fields.GetColumn("role").(*entity.ColumnVarChar); ok {
				sc.Role = col.Data()[i]
			}
			if col, ok := result.Fields.GetColumn("description").(*entity.ColumnVarChar); ok {
				sc.Description = col.Data()[i]
			}
			similar = append(similar, sc)
		}
	}

	span.SetAttributes(attribute.Int("result_count", len(similar)))
	return similar, nil
}

// EnsureCharacterProfilesCollection 确保角色档案集合与索引可用（不存在则创建）。
// 约束：不会做 drop/rebuild 等破坏性操作。
func (r *Repository) EnsureCharacterProfilesCollection(ctx context.Context) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}

	exists, err := r.client.HasCollection(ctx, CollectionCharacterProfiles)
	if err != nil {
		return err
	}
	if !exists {
		if err := r.CreateCollection(ctx, CharacterProfilesSchema()); err != nil {
			return err
		}
		// 新建集合时创建索引；若失败，允许后续由运维介入。
		_ = r.CreateIndex(ctx, CollectionCharacterProfiles)
	}

	return r.client.LoadCollection(ctx, CollectionCharacterProfiles)
}
