// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"storyverse-api/internal/domain/entity"
	"storyverse-api/internal/domain/repository"
	"storyverse-api/internal/infrastructure/persistence/milvus"
	"storyverse-api/internal/interfaces/http/dto"
	"storyverse-api/pkg/logger"
)

// Embedder 文本向量化接口
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// CharacterHandler 角色处理器
type CharacterHandler struct {
	characterRepo repository.CharacterRepository
	embed         Embedder
	vectorRepo    *milvus.Repository
}

// NewCharacterHandler 创建角色处理器。embed 和 vectorRepo 为 nil 时相似检索不可用。
func NewCharacterHandler(characterRepo repository.CharacterRepository, embed Embedder, vectorRepo *milvus.Repository) *CharacterHandler {
	return &CharacterHandler{
		characterRepo: characterRepo,
		embed:         embed,
		vectorRepo:    vectorRepo,
	}
}

// List 获取故事的角色列表
func (h *CharacterHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	storyID := c.Param("sid")
	pageReq := dto.BindPage(c)

	var filter *repository.CharacterFilter
	role := c.Query("role")
	name := c.Query("name")
	if role != "" || name != "" {
		filter = &repository.CharacterFilter{
			Role: entity.CharacterRole(role),
			Name: name,
		}
	}

	result, err := h.characterRepo.ListByStory(ctx, storyID, filter, repository.NewPagination(pageReq.Page, pageReq.PageSize))
	if err != nil {
		logger.Error(ctx, "角色列表查询失败", err, "story_id", storyID)
		dto.RespondAppError(c, err)
		return
	}

	resp := dto.ToCharacterListResponse(result.Items)
	meta := dto.NewPageMeta(pageReq.Page, pageReq.PageSize, int(result.Total))
	dto.SuccessWithPage(c, resp, meta)
}

// Similar 按描述文本做相似角色检索
func (h *CharacterHandler) Similar(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SimilarCharactersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if h.embed == nil || h.vectorRepo == nil {
		dto.ServiceUnavailable(c, "similarity search is not enabled")
		return
	}

	topK := req.TopK
	if topK <= 0 {
		topK = 10
	}

	vectors, err := h.embed.Embed(ctx, []string{req.Query})
	if err != nil {
		logger.Error(ctx, "查询向量化失败", err)
		dto.RespondAppError(c, err)
		return
	}
	if len(vectors) == 0 {
		dto.InternalError(c, "embedding service returned no vectors")
		return
	}

	similar, err := h.vectorRepo.SearchSimilar(ctx, req.StoryWorldID, vectors[0], topK)
	if err != nil {
		logger.Error(ctx, "相似角色检索失败", err, "story_world_id", req.StoryWorldID)
		dto.RespondAppError(c, err)
		return
	}

	resp := &dto.SimilarCharactersResponse{
		Characters: make([]*dto.SimilarCharacterResponse, 0, len(similar)),
	}
	for _, s := range similar {
		resp.Characters = append(resp.Characters, &dto.SimilarCharacterResponse{
			CharacterID: s.CharacterID,
			Name:        s.Name,
			Role:        s.Role,
			Description: s.Description,
			Score:       s.Score,
		})
	}
	dto.Success(c, resp)
}
