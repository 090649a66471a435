package extraction

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"storyverse-api/internal/domain/entity"
	"storyverse-api/pkg/errors"
	"storyverse-api/pkg/logger"
	"storyverse-api/pkg/metrics"
)

var tracer = otel.Tracer("extraction")

// Input 一次抽取的输入
type Input struct {
	StoryText    string
	StoryTitle   string
	StoryWorldID string
}

// CharacterLookup 角色查重协作方：
// 判断目标故事世界中是否已存在同名角色（大小写不敏感）
type CharacterLookup interface {
	ExistsByName(ctx context.Context, storyWorldID, name string) (bool, error)
}

// Pipeline 叙事元素抽取流水线。
// 单次调用内同步执行，无跨调用共享可变状态；
// 唯一的并发点是按角色候选独立发出的查重调用。
type Pipeline struct {
	profile   Profile
	overrides map[string]CharacterOverride
	lookup    CharacterLookup
}

// NewPipeline 创建流水线。lookup 可为 nil，此时所有候选视为新角色。
func NewPipeline(profile Profile, overrides map[string]CharacterOverride, lookup CharacterLookup) *Pipeline {
	if overrides == nil {
		overrides = map[string]CharacterOverride{}
	}
	return &Pipeline{profile: profile, overrides: overrides, lookup: lookup}
}

// Extract 运行抽取。空文本立即拒绝；阶段按开关裁剪；
// 关系/依赖/弧线/梗概等推断阶段依赖角色与事件阶段的产出。
func (p *Pipeline) Extract(ctx context.Context, in Input, opts Options) (*entity.ExtractionResult, error) {
	if strings.TrimSpace(in.StoryText) == "" {
		return nil, errors.ErrEmptyStoryText
	}

	format := DetectFormat(in.StoryText)
	ctx, span := tracer.Start(ctx, "extraction.Pipeline.Extract")
	span.SetAttributes(
		attribute.String("extraction.format", string(format)),
		attribute.Int("extraction.text_length", len(in.StoryText)),
	)
	defer span.End()

	start := time.Now()
	metrics.ExtractionTextLength.WithLabelValues(string(format)).Observe(float64(len(in.StoryText)))

	// 场景切分在原始文本上做，保留段落与行边界；
	// 事件与情节线抽取按行首标记匹配，使用保留换行的规整文本；
	// 其余阶段使用全局折叠空白的文本
	normalized := Preprocess(in.StoryText, format)
	lineText := normalizeLines(in.StoryText)
	result := entity.NewExtractionResult(string(format))

	if opts.ExtractCharacters {
		result.Characters = extractCharacters(normalized, format, p.profile, opts.floor(p.profile), p.overrides)
		p.markDuplicates(ctx, in.StoryWorldID, result.Characters)
	}
	if opts.ExtractLocations {
		result.Locations = extractLocations(normalized, p.profile)
	}
	if opts.ExtractItems {
		result.Items = extractItems(normalized, p.profile)
	}
	if opts.ExtractEvents {
		result.Events = extractEvents(lineText, p.profile)
		assignEventParticipants(result.Events, result.Characters, result.Locations)
	}
	if opts.ExtractScenes {
		result.Scenes = segmentScenes(in.StoryText, format)
	}
	if opts.ExtractPlotlines {
		result.Plotlines = extractPlotlines(lineText, p.profile)
		result.Plotlines = append(result.Plotlines,
			inferPlotlines(result.Characters, result.Events, len(result.Plotlines), p.profile)...)
	}
	if opts.ExtractRelationships {
		result.CharacterRelationships = inferRelationships(normalized, result.Characters)
	}
	if opts.ExtractDependencies {
		result.EventDependencies = inferDependencies(result.Events)
	}
	if opts.ExtractArcs {
		result.CharacterArcs = inferArcs(result.Characters, result.Events)
	}
	result.Synopsis = generateSynopsis(result.Characters, result.Plotlines, result.Events)

	p.recordMetrics(format, result, time.Since(start))
	logger.Info(ctx, "抽取完成",
		"format", format,
		"characters", len(result.Characters),
		"locations", len(result.Locations),
		"events", len(result.Events),
		"scenes", len(result.Scenes),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

// markDuplicates 并发查重。单个候选查重失败只记日志并按已存在
// 处理，绝不中断整批。
func (p *Pipeline) markDuplicates(ctx context.Context, storyWorldID string, characters []*entity.Character) {
	if p.lookup == nil {
		for _, c := range characters {
			c.IsNew = true
		}
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range characters {
		c := c
		g.Go(func() error {
			exists, err := p.lookup.ExistsByName(gctx, storyWorldID, c.Name)
			if err != nil {
				logger.Warn(gctx, "角色查重失败，按已存在处理", "name", c.Name, "error", err)
				c.IsNew = false
				return nil
			}
			c.IsNew = !exists
			return nil
		})
	}
	_ = g.Wait()
}

func (p *Pipeline) recordMetrics(format Format, result *entity.ExtractionResult, elapsed time.Duration) {
	metrics.ExtractionTotal.WithLabelValues(string(format), "success").Inc()
	metrics.ExtractionDuration.WithLabelValues(string(format)).Observe(elapsed.Seconds())
	counts := map[string]int{
		"character":    len(result.Characters),
		"location":     len(result.Locations),
		"item":         len(result.Items),
		"event":        len(result.Events),
		"scene":        len(result.Scenes),
		"plotline":     len(result.Plotlines),
		"relationship": len(result.CharacterRelationships),
		"dependency":   len(result.EventDependencies),
		"arc":          len(result.CharacterArcs),
	}
	for entityType, n := range counts {
		if n > 0 {
			metrics.EntitiesExtracted.WithLabelValues(entityType).Add(float64(n))
		}
	}
}
