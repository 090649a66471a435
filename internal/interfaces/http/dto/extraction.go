// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"storyverse-api/internal/application/extraction"
	"storyverse-api/internal/domain/entity"
)

// ExtractionOptions 各抽取阶段开关，缺省为全开
type ExtractionOptions struct {
	ExtractCharacters    *bool `json:"extract_characters,omitempty"`
	ExtractLocations     *bool `json:"extract_locations,omitempty"`
	ExtractItems         *bool `json:"extract_items,omitempty"`
	ExtractEvents        *bool `json:"extract_events,omitempty"`
	ExtractScenes        *bool `json:"extract_scenes,omitempty"`
	ExtractPlotlines     *bool `json:"extract_plotlines,omitempty"`
	ExtractRelationships *bool `json:"extract_relationships,omitempty"`
	ExtractDependencies  *bool `json:"extract_dependencies,omitempty"`
	ExtractArcs          *bool `json:"extract_arcs,omitempty"`

	// Profile 置信度档位（server 或 client），缺省用服务端配置
	Profile string `json:"profile,omitempty"`

	ConfidenceThreshold float64 `json:"confidence_threshold,omitempty"`
}

// ProfileName 请求指定的档位名，空串表示使用默认档位
func (r *ExtractionRequest) ProfileName() string {
	if r.Options == nil {
		return ""
	}
	return r.Options.Profile
}

// ExtractionRequest 抽取请求
type ExtractionRequest struct {
	StoryText    string             `json:"story_text" binding:"required"`
	StoryTitle   string             `json:"story_title,omitempty"`
	StoryWorldID string             `json:"story_world_id,omitempty"`
	Options      *ExtractionOptions `json:"options,omitempty"`
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// ToOptions 将请求开关映射为流水线选项
func (r *ExtractionRequest) ToOptions() extraction.Options {
	opts := extraction.DefaultOptions()
	if r.Options == nil {
		return opts
	}
	o := r.Options
	opts.ExtractCharacters = boolOrDefault(o.ExtractCharacters, true)
	opts.ExtractLocations = boolOrDefault(o.ExtractLocations, true)
	opts.ExtractItems = boolOrDefault(o.ExtractItems, true)
	opts.ExtractEvents = boolOrDefault(o.ExtractEvents, true)
	opts.ExtractScenes = boolOrDefault(o.ExtractScenes, true)
	opts.ExtractPlotlines = boolOrDefault(o.ExtractPlotlines, true)
	opts.ExtractRelationships = boolOrDefault(o.ExtractRelationships, true)
	opts.ExtractDependencies = boolOrDefault(o.ExtractDependencies, true)
	opts.ExtractArcs = boolOrDefault(o.ExtractArcs, true)
	opts.ConfidenceThreshold = o.ConfidenceThreshold
	return opts
}

// OptionsFingerprint 生成选项指纹，用于缓存 Key。
// 相同的选项组合必须产生相同的指纹。
func OptionsFingerprint(opts extraction.Options) string {
	flags := []bool{
		opts.ExtractCharacters,
		opts.ExtractLocations,
		opts.ExtractItems,
		opts.ExtractEvents,
		opts.ExtractScenes,
		opts.ExtractPlotlines,
		opts.ExtractRelationships,
		opts.ExtractDependencies,
		opts.ExtractArcs,
	}
	fp := make([]byte, 0, len(flags)+16)
	for _, f := range flags {
		if f {
			fp = append(fp, '1')
		} else {
			fp = append(fp, '0')
		}
	}
	fp = append(fp, '|')
	fp = strconv.AppendFloat(fp, opts.ConfidenceThreshold, 'f', -1, 64)
	return string(fp)
}

// ExtractionResponse 抽取响应
type ExtractionResponse struct {
	Result *entity.ExtractionResult `json:"result"`
}

// ImportRequest 导入请求。
// 二选一：直接提交抽取结果，或提交 story_text 由服务端先抽取再导入。
type ImportRequest struct {
	Result    *entity.ExtractionResult `json:"result,omitempty"`
	StoryText string                   `json:"story_text,omitempty"`
	Options   *ExtractionOptions       `json:"options,omitempty"`
}

// Validate 校验导入请求
func (r *ImportRequest) Validate() error {
	if r.Result == nil && r.StoryText == "" {
		return fmt.Errorf("either result or story_text is required")
	}
	if r.Result != nil && r.StoryText != "" {
		return fmt.Errorf("result and story_text are mutually exclusive")
	}
	return nil
}

// PageRequest 分页请求参数
type PageRequest struct {
	Page     int
	PageSize int
}

// BindPage 从查询参数绑定分页
func BindPage(c *gin.Context) PageRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return PageRequest{Page: page, PageSize: pageSize}
}
