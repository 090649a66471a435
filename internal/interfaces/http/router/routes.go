// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"

	"storyverse-api/internal/interfaces/http/handler"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(
	v1 *gin.RouterGroup,
	extractionHandler *handler.ExtractionHandler,
	storyHandler *handler.StoryHandler,
	characterHandler *handler.CharacterHandler,
) {
	// 叙事抽取
	extractions := v1.Group("/extractions")
	{
		extractions.POST("", extractionHandler.Extract)
	}

	// 故事管理
	stories := v1.Group("/stories")
	{
		stories.POST("", storyHandler.Create)
		stories.GET("/:sid", storyHandler.Get)
		stories.POST("/:sid/import", storyHandler.Import)
		stories.GET("/:sid/characters", characterHandler.List)
	}

	// 角色检索
	characters := v1.Group("/characters")
	{
		characters.POST("/similar", characterHandler.Similar)
	}
}
