// Package importer 将抽取结果持久化为故事的叙事实体
package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"storyverse-api/internal/domain/entity"
	"storyverse-api/internal/domain/repository"
	apperrors "storyverse-api/pkg/errors"
	"storyverse-api/pkg/logger"
	"storyverse-api/pkg/metrics"
)

var tracer = otel.Tracer("importer")

// Embedder 文本向量化接口
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// VectorIndexer 角色档案向量索引接口
type VectorIndexer interface {
	InsertCharacterProfiles(ctx context.Context, storyWorldID string, profiles []*CharacterProfile) error
}

// CharacterProfile 待索引的角色档案
type CharacterProfile struct {
	CharacterID string
	Name        string
	Role        string
	Description string
	Vector      []float32
}

// Repositories 导入所需的全部仓储
type Repositories struct {
	Story        repository.StoryRepository
	Character    repository.CharacterRepository
	Location     repository.LocationRepository
	Item         repository.ItemRepository
	Event        repository.EventRepository
	Scene        repository.SceneRepository
	Plotline     repository.PlotlineRepository
	Relationship repository.RelationshipRepository
	Dependency   repository.DependencyRepository
	Arc          repository.ArcRepository
}

// Service 抽取结果导入服务。
// 单个实体写入失败不会中断导入，失败的实体只记录并跳过。
type Service struct {
	repos   Repositories
	embed   Embedder
	indexer VectorIndexer
}

// NewService 创建导入服务。embed 与 indexer 可以为 nil，此时跳过向量索引。
func NewService(repos Repositories, embed Embedder, indexer VectorIndexer) *Service {
	return &Service{
		repos:   repos,
		embed:   embed,
		indexer: indexer,
	}
}

// TypeCount 单类实体的导入统计
type TypeCount struct {
	Imported int `json:"imported"`
	Failed   int `json:"failed"`
}

// Result 一次导入的统计汇总
type Result struct {
	StoryID         string               `json:"story_id"`
	Counts          map[string]TypeCount `json:"counts"`
	SynopsisUpdated bool                 `json:"synopsis_updated"`
	VectorsIndexed  int                  `json:"vectors_indexed"`
}

func newResult(storyID string) *Result {
	return &Result{
		StoryID: storyID,
		Counts:  map[string]TypeCount{},
	}
}

func (r *Result) record(entityType string, err error) {
	c := r.Counts[entityType]
	if err != nil {
		c.Failed++
		metrics.ImportTotal.WithLabelValues(entityType, "error").Inc()
	} else {
		c.Imported++
		metrics.ImportTotal.WithLabelValues(entityType, "success").Inc()
	}
	r.Counts[entityType] = c
}

// TotalFailed 返回失败实体总数
func (r *Result) TotalFailed() int {
	total := 0
	for _, c := range r.Counts {
		total += c.Failed
	}
	return total
}

// Import 将抽取结果写入故事。目标故事必须已存在。
// 角色先写入并建立名称到 ID 的映射，随后的事件、关系、依赖和弧线
// 引用该映射补全外键。任何单条写入失败都只记录并继续。
func (s *Service) Import(ctx context.Context, storyID string, result *entity.ExtractionResult) (*Result, error) {
	ctx, span := tracer.Start(ctx, "importer.Service.Import",
		trace.WithAttributes(attribute.String("story.id", storyID)))
	defer span.End()

	start := time.Now()
	defer func() {
		metrics.ImportDuration.WithLabelValues(storyID).Observe(time.Since(start).Seconds())
	}()

	if result == nil {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "extraction result is required")
	}

	story, err := s.repos.Story.GetByID(ctx, storyID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	summary := newResult(storyID)

	characterIDs := s.importCharacters(ctx, story, result.Characters, summary)
	s.importLocations(ctx, storyID, result.Locations, summary)
	s.importItems(ctx, storyID, result.Items, summary)
	eventIDs := s.importEvents(ctx, storyID, result.Events, characterIDs, summary)
	s.importScenes(ctx, storyID, result.Scenes, summary)
	s.importPlotlines(ctx, storyID, result.Plotlines, summary)
	s.importRelationships(ctx, storyID, result.CharacterRelationships, characterIDs, summary)
	s.importDependencies(ctx, storyID, result.EventDependencies, eventIDs, summary)
	s.importArcs(ctx, storyID, result.CharacterArcs, characterIDs, summary)

	if result.Synopsis != "" {
		if err := s.repos.Story.UpdateSynopsis(ctx, storyID, result.Synopsis); err != nil {
			logger.Warn(ctx, "梗概更新失败", "story_id", storyID, "error", err)
		} else {
			summary.SynopsisUpdated = true
		}
	}

	summary.VectorsIndexed = s.indexCharacterProfiles(ctx, story.StoryWorldID, result.Characters, characterIDs)

	logger.Info(ctx, "导入完成",
		"story_id", storyID,
		"failed", summary.TotalFailed(),
		"vectors_indexed", summary.VectorsIndexed,
	)
	return summary, nil
}

// importCharacters 写入角色并返回名称到 ID 的映射
func (s *Service) importCharacters(ctx context.Context, story *entity.Story, characters []*entity.Character, summary *Result) map[string]string {
	ids := make(map[string]string, len(characters))
	for _, c := range characters {
		record := *c
		record.ID = uuid.New().String()
		record.StoryID = story.ID
		record.StoryWorldID = story.StoryWorldID
		err := s.repos.Character.Create(ctx, &record)
		summary.record("character", err)
		if err != nil {
			logger.Warn(ctx, "角色写入失败", "story_id", story.ID, "name", c.Name, "error", err)
			continue
		}
		ids[c.Name] = record.ID
	}
	return ids
}

func (s *Service) importLocations(ctx context.Context, storyID string, locations []*entity.Location, summary *Result) {
	for _, l := range locations {
		record := *l
		record.ID = uuid.New().String()
		record.StoryID = storyID
		err := s.repos.Location.Create(ctx, &record)
		summary.record("location", err)
		if err != nil {
			logger.Warn(ctx, "地点写入失败", "story_id", storyID, "name", l.Name, "error", err)
		}
	}
}

func (s *Service) importItems(ctx context.Context, storyID string, items []*entity.Item, summary *Result) {
	for _, i := range items {
		record := *i
		record.ID = uuid.New().String()
		record.StoryID = storyID
		err := s.repos.Item.Create(ctx, &record)
		summary.record("item", err)
		if err != nil {
			logger.Warn(ctx, "物品写入失败", "story_id", storyID, "name", i.Name, "error", err)
		}
	}
}

// importEvents 写入事件并返回序号到 ID 的映射，同时用角色映射补全参与者 ID
func (s *Service) importEvents(ctx context.Context, storyID string, events []*entity.Event, characterIDs map[string]string, summary *Result) map[int]string {
	ids := make(map[int]string, len(events))
	for _, e := range events {
		record := *e
		record.ID = uuid.New().String()
		record.StoryID = storyID
		record.Participants = make(entity.EventParticipants, len(e.Participants))
		copy(record.Participants, e.Participants)
		for i := range record.Participants {
			record.Participants[i].CharacterID = characterIDs[record.Participants[i].CharacterName]
		}
		err := s.repos.Event.Create(ctx, &record)
		summary.record("event", err)
		if err != nil {
			logger.Warn(ctx, "事件写入失败", "story_id", storyID, "title", e.Title, "error", err)
			continue
		}
		ids[e.SequenceNumber] = record.ID
	}
	return ids
}

func (s *Service) importScenes(ctx context.Context, storyID string, scenes []*entity.Scene, summary *Result) {
	for _, sc := range scenes {
		record := *sc
		record.ID = uuid.New().String()
		record.StoryID = storyID
		err := s.repos.Scene.Create(ctx, &record)
		summary.record("scene", err)
		if err != nil {
			logger.Warn(ctx, "场景写入失败", "story_id", storyID, "title", sc.Title, "error", err)
		}
	}
}

func (s *Service) importPlotlines(ctx context.Context, storyID string, plotlines []*entity.Plotline, summary *Result) {
	for _, p := range plotlines {
		record := *p
		record.ID = uuid.New().String()
		record.StoryID = storyID
		err := s.repos.Plotline.Create(ctx, &record)
		summary.record("plotline", err)
		if err != nil {
			logger.Warn(ctx, "情节线写入失败", "story_id", storyID, "title", p.Title, "error", err)
		}
	}
}

func (s *Service) importRelationships(ctx context.Context, storyID string, rels []*entity.CharacterRelationship, characterIDs map[string]string, summary *Result) {
	for _, rel := range rels {
		record := *rel
		record.ID = uuid.New().String()
		record.StoryID = storyID
		record.Character1ID = characterIDs[rel.Character1]
		record.Character2ID = characterIDs[rel.Character2]
		err := s.repos.Relationship.Create(ctx, &record)
		summary.record("relationship", err)
		if err != nil {
			logger.Warn(ctx, "关系写入失败", "story_id", storyID,
				"character1", rel.Character1, "character2", rel.Character2, "error", err)
		}
	}
}

func (s *Service) importDependencies(ctx context.Context, storyID string, deps []*entity.EventDependency, eventIDs map[int]string, summary *Result) {
	for _, d := range deps {
		record := *d
		record.ID = uuid.New().String()
		record.StoryID = storyID
		record.PredecessorID = eventIDs[d.PredecessorSequence]
		record.SuccessorID = eventIDs[d.SuccessorSequence]
		err := s.repos.Dependency.Create(ctx, &record)
		summary.record("dependency", err)
		if err != nil {
			logger.Warn(ctx, "依赖写入失败", "story_id", storyID,
				"predecessor", d.PredecessorSequence, "successor", d.SuccessorSequence, "error", err)
		}
	}
}

func (s *Service) importArcs(ctx context.Context, storyID string, arcs []*entity.CharacterArc, characterIDs map[string]string, summary *Result) {
	for _, a := range arcs {
		record := *a
		record.ID = uuid.New().String()
		record.StoryID = storyID
		record.CharacterID = characterIDs[a.CharacterName]
		err := s.repos.Arc.Create(ctx, &record)
		summary.record("arc", err)
		if err != nil {
			logger.Warn(ctx, "弧线写入失败", "story_id", storyID, "character", a.CharacterName, "error", err)
		}
	}
}

// indexCharacterProfiles 为已写入的角色构建向量索引。
// 向量化或索引失败不影响导入结果，只记录日志。
func (s *Service) indexCharacterProfiles(ctx context.Context, storyWorldID string, characters []*entity.Character, characterIDs map[string]string) int {
	if s.embed == nil || s.indexer == nil || len(characterIDs) == 0 {
		return 0
	}

	var stored []*entity.Character
	texts := make([]string, 0, len(characterIDs))
	for _, c := range characters {
		if _, ok := characterIDs[c.Name]; !ok {
			continue
		}
		stored = append(stored, c)
		texts = append(texts, fmt.Sprintf("%s - %s", c.Name, c.Description))
	}
	if len(stored) == 0 {
		return 0
	}

	vectors, err := s.embed.Embed(ctx, texts)
	if err != nil {
		logger.Warn(ctx, "角色向量化失败", "story_world_id", storyWorldID, "error", err)
		return 0
	}
	if len(vectors) != len(stored) {
		logger.Warn(ctx, "向量数量与角色数量不符",
			"vectors", len(vectors), "characters", len(stored))
		return 0
	}

	profiles := make([]*CharacterProfile, 0, len(stored))
	for i, c := range stored {
		profiles = append(profiles, &CharacterProfile{
			CharacterID: characterIDs[c.Name],
			Name:        c.Name,
			Role:        string(c.Role),
			Description: c.Description,
			Vector:      vectors[i],
		})
	}

	if err := s.indexer.InsertCharacterProfiles(ctx, storyWorldID, profiles); err != nil {
		logger.Warn(ctx, "角色向量索引失败", "story_world_id", storyWorldID, "error", err)
		return 0
	}

	for _, p := range profiles {
		if err := s.repos.Character.UpdateVectorID(ctx, p.CharacterID, p.CharacterID); err != nil {
			logger.Warn(ctx, "向量 ID 回写失败", "character_id", p.CharacterID, "error", err)
		}
	}
	return len(profiles)
}
