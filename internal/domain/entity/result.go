// Package entity 定义领域实体
package entity

// ExtractionResult 单次抽取运行产出的实体集合。
// 所有成员都是临时候选，由调用方决定是否持久化。
type ExtractionResult struct {
	Format                 string                   `json:"format"`
	Characters             []*Character             `json:"characters"`
	Locations              []*Location              `json:"locations"`
	Items                  []*Item                  `json:"items"`
	Events                 []*Event                 `json:"events"`
	Scenes                 []*Scene                 `json:"scenes"`
	Plotlines              []*Plotline              `json:"plotlines"`
	CharacterRelationships []*CharacterRelationship `json:"character_relationships"`
	EventDependencies      []*EventDependency       `json:"event_dependencies"`
	CharacterArcs          []*CharacterArc          `json:"character_arcs"`
	Synopsis               string                   `json:"synopsis"`
}

// NewExtractionResult 创建空结果集
func NewExtractionResult(format string) *ExtractionResult {
	return &ExtractionResult{
		Format:                 format,
		Characters:             []*Character{},
		Locations:              []*Location{},
		Items:                  []*Item{},
		Events:                 []*Event{},
		Scenes:                 []*Scene{},
		Plotlines:              []*Plotline{},
		CharacterRelationships: []*CharacterRelationship{},
		EventDependencies:      []*EventDependency{},
		CharacterArcs:          []*CharacterArc{},
	}
}

// FindCharacter 按名称查找角色候选
func (r *ExtractionResult) FindCharacter(name string) *Character {
	for _, c := range r.Characters {
		if c.Name == name {
			return c
		}
	}
	return nil
}
