// Package handler 提供 HTTP 请求处理器
package handler

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"storyverse-api/internal/application/extraction"
	"storyverse-api/internal/application/importer"
	"storyverse-api/internal/domain/entity"
	"storyverse-api/internal/domain/repository"
	"storyverse-api/internal/infrastructure/persistence/redis"
	"storyverse-api/internal/interfaces/http/dto"
	"storyverse-api/pkg/logger"
)

const storyCacheTTL = 5 * time.Minute

// StoryHandler 故事处理器
type StoryHandler struct {
	storyRepo repository.StoryRepository
	pipeline  *extraction.Pipeline
	importSvc *importer.Service
	cache     *redis.Cache
}

// NewStoryHandler 创建故事处理器。cache 为 nil 时查询不走缓存。
func NewStoryHandler(storyRepo repository.StoryRepository, pipeline *extraction.Pipeline, importSvc *importer.Service, cache *redis.Cache) *StoryHandler {
	return &StoryHandler{
		storyRepo: storyRepo,
		pipeline:  pipeline,
		importSvc: importSvc,
		cache:     cache,
	}
}

// Create 创建故事
func (h *StoryHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	story := entity.NewStory(req.Title, req.StoryWorldID)
	if err := h.storyRepo.Create(ctx, story); err != nil {
		logger.Error(ctx, "故事创建失败", err, "title", req.Title)
		dto.RespondAppError(c, err)
		return
	}
	dto.Created(c, dto.ToStoryResponse(story))
}

// Get 获取故事
func (h *StoryHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	storyID := c.Param("sid")

	if h.cache != nil {
		key := redis.BuildStoryKey(storyID, "detail")
		if cached, err := h.cache.Get(ctx, key); err == nil {
			var resp dto.StoryResponse
			if decodeErr := json.Unmarshal(cached, &resp); decodeErr == nil {
				dto.Success(c, &resp)
				return
			}
		}
	}

	story, err := h.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		dto.RespondAppError(c, err)
		return
	}

	resp := dto.ToStoryResponse(story)
	if h.cache != nil {
		// 缓存写入失败不影响响应
		_ = h.cache.Set(ctx, redis.BuildStoryKey(storyID, "detail"), resp, storyCacheTTL)
	}
	dto.Success(c, resp)
}

// Import 将抽取结果导入故事。
// 请求可直接携带结果，或携带 story_text 由服务端先抽取再导入。
func (h *StoryHandler) Import(c *gin.Context) {
	ctx := c.Request.Context()
	storyID := c.Param("sid")

	var req dto.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	result := req.Result
	if result == nil {
		story, err := h.storyRepo.GetByID(ctx, storyID)
		if err != nil {
			dto.RespondAppError(c, err)
			return
		}

		extReq := dto.ExtractionRequest{
			StoryText: req.StoryText,
			Options:   req.Options,
		}
		result, err = h.pipeline.Extract(ctx, extraction.Input{
			StoryText:    req.StoryText,
			StoryTitle:   story.Title,
			StoryWorldID: story.StoryWorldID,
		}, extReq.ToOptions())
		if err != nil {
			dto.RespondAppError(c, err)
			return
		}
	}

	summary, err := h.importSvc.Import(ctx, storyID, result)
	if err != nil {
		dto.RespondAppError(c, err)
		return
	}

	// 导入会更新梗概，故事相关缓存一并失效
	if h.cache != nil {
		if err := h.cache.InvalidateStory(ctx, storyID); err != nil {
			logger.Warn(ctx, "故事缓存失效失败", "story_id", storyID, "error", err)
		}
	}
	dto.Success(c, summary)
}
