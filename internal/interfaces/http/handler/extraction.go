// Package handler 提供 HTTP 请求处理器
package handler

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"storyverse-api/internal/application/extraction"
	"storyverse-api/internal/config"
	"storyverse-api/internal/domain/entity"
	"storyverse-api/internal/infrastructure/persistence/redis"
	"storyverse-api/internal/interfaces/http/dto"
	"storyverse-api/pkg/logger"
	"storyverse-api/pkg/metrics"
)

// ExtractionHandler 抽取处理器
type ExtractionHandler struct {
	// pipelines 按档位名索引的流水线
	pipelines      map[string]*extraction.Pipeline
	defaultProfile string
	cache          *redis.Cache
	cfg            *config.ExtractionConfig
}

// NewExtractionHandler 创建抽取处理器。cache 为 nil 时不走缓存。
func NewExtractionHandler(pipelines map[string]*extraction.Pipeline, defaultProfile string, cache *redis.Cache, cfg *config.ExtractionConfig) *ExtractionHandler {
	return &ExtractionHandler{
		pipelines:      pipelines,
		defaultProfile: defaultProfile,
		cache:          cache,
		cfg:            cfg,
	}
}

// resolvePipeline 按请求档位选择流水线，未知档位回退到默认档位
func (h *ExtractionHandler) resolvePipeline(name string) (*extraction.Pipeline, string) {
	if name == "" {
		name = h.defaultProfile
	}
	if p, ok := h.pipelines[name]; ok {
		return p, name
	}
	return h.pipelines[h.defaultProfile], h.defaultProfile
}

// Extract 运行抽取流水线
func (h *ExtractionHandler) Extract(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if h.cfg.MaxTextLength > 0 && len(req.StoryText) > h.cfg.MaxTextLength {
		dto.BadRequest(c, "story_text exceeds maximum length")
		return
	}

	opts := req.ToOptions()
	pipeline, profileName := h.resolvePipeline(req.ProfileName())
	in := extraction.Input{
		StoryText:    req.StoryText,
		StoryTitle:   req.StoryTitle,
		StoryWorldID: req.StoryWorldID,
	}

	if h.cache == nil || h.cfg.CacheTTL <= 0 {
		result, err := pipeline.Extract(ctx, in, opts)
		if err != nil {
			dto.RespondAppError(c, err)
			return
		}
		dto.Success(c, dto.ExtractionResponse{Result: result})
		return
	}

	// 档位参与缓存 Key，不同档位的结果互不串用
	fingerprint := profileName + "|" + dto.OptionsFingerprint(opts)
	key := redis.BuildExtractionKey(req.StoryWorldID, req.StoryText, fingerprint)

	if cached, err := h.cache.Get(ctx, key); err == nil && cached != nil {
		var result entity.ExtractionResult
		decodeErr := json.Unmarshal(cached, &result)
		if decodeErr == nil {
			metrics.ExtractionCacheHits.WithLabelValues("hit").Inc()
			dto.Success(c, dto.ExtractionResponse{Result: &result})
			return
		}
		logger.Warn(ctx, "缓存结果解析失败", "key", key, "error", decodeErr)
	}
	metrics.ExtractionCacheHits.WithLabelValues("miss").Inc()

	payload, err := h.cache.GetOrLoadSafe(ctx, key, h.cacheTTL(), func() (interface{}, error) {
		return pipeline.Extract(ctx, in, opts)
	})
	if err != nil {
		dto.RespondAppError(c, err)
		return
	}

	var result entity.ExtractionResult
	if err := json.Unmarshal(payload, &result); err != nil {
		dto.InternalError(c, "failed to decode extraction result")
		return
	}
	dto.Success(c, dto.ExtractionResponse{Result: &result})
}

func (h *ExtractionHandler) cacheTTL() time.Duration {
	if h.cfg.CacheTTL > 0 {
		return h.cfg.CacheTTL
	}
	return 10 * time.Minute
}
