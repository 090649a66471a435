package extraction

import (
	"fmt"
	"strings"

	"storyverse-api/internal/domain/entity"
)

// generateSynopsis 模板化梗概：
// 列出至多 3 个主要角色，接主线情节描述；事件超过 3 个时
// 追加首/中/末事件标题构成的走向句。无角色或无事件时返回空串。
func generateSynopsis(characters []*entity.Character, plotlines []*entity.Plotline, events []*entity.Event) string {
	if len(characters) == 0 || len(events) == 0 {
		return ""
	}

	mains := []string{}
	for _, c := range characters {
		if c.IsMajor() {
			mains = append(mains, c.Name)
		}
		if len(mains) == 3 {
			break
		}
	}
	if len(mains) == 0 {
		mains = append(mains, characters[0].Name)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("A story featuring %s.", joinNames(mains)))

	for _, pl := range plotlines {
		if pl.PlotlineType == entity.PlotlineMain && pl.Description != "" {
			b.WriteString(" " + pl.Description)
			break
		}
	}

	if len(events) > 3 {
		first := strings.ToLower(events[0].Title)
		middle := strings.ToLower(events[len(events)/2].Title)
		last := strings.ToLower(events[len(events)-1].Title)
		b.WriteString(fmt.Sprintf(" The story moves from %s, through %s, to %s.", first, middle, last))
	}
	return b.String()
}

func joinNames(names []string) string {
	switch len(names) {
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}
