package extraction

import (
	"fmt"

	"storyverse-api/internal/domain/entity"
)

// inferPlotlines 从角色定位推断情节线：
// 有主角则生成一条 "<主角>'s Journey" 主线；每个反派一条副线
// （存在主线时为 subplot，否则升为 main）；若合并既有情节线后
// 仍为空且存在事件，补一条通用 "Main Story"。
func inferPlotlines(characters []*entity.Character, events []*entity.Event, existingCount int, p Profile) []*entity.Plotline {
	plotlines := []*entity.Plotline{}

	var protagonist *entity.Character
	for _, c := range characters {
		if c.Role == entity.RoleProtagonist {
			protagonist = c
			break
		}
	}

	if protagonist != nil {
		main := entity.NewPlotline(protagonist.Name+"'s Journey", entity.PlotlineMain, p.PlotlineConfidence)
		main.Description = fmt.Sprintf("The central storyline following %s through the events of the story.", protagonist.Name)
		main.CharacterNames = append(main.CharacterNames, protagonist.Name)
		for _, ev := range events {
			if ev.InvolvesCharacter(protagonist.Name) {
				main.EventTitles = append(main.EventTitles, ev.Title)
			}
		}
		plotlines = append(plotlines, main)
	}

	for _, c := range characters {
		if c.Role != entity.RoleAntagonist {
			continue
		}
		plType := entity.PlotlineSubplot
		if protagonist == nil {
			plType = entity.PlotlineMain
		}
		sub := entity.NewPlotline("Conflict with "+c.Name, plType, p.PlotlineConfidence)
		sub.Description = fmt.Sprintf("The opposition driven by %s.", c.Name)
		sub.CharacterNames = append(sub.CharacterNames, c.Name)
		for _, ev := range events {
			if ev.InvolvesCharacter(c.Name) {
				sub.EventTitles = append(sub.EventTitles, ev.Title)
			}
		}
		plotlines = append(plotlines, sub)
	}

	if len(plotlines) == 0 && existingCount == 0 && len(events) > 0 {
		fallback := entity.NewPlotline("Main Story", entity.PlotlineMain, p.PlotlineConfidence)
		fallback.Description = "The overall storyline of the text."
		plotlines = append(plotlines, fallback)
	}
	return plotlines
}

// inferDependencies 纯时序依赖：相邻事件两两成链，M 个事件恰好
// M-1 条，强度固定。不做因果推断。
func inferDependencies(events []*entity.Event) []*entity.EventDependency {
	if len(events) < 2 {
		return []*entity.EventDependency{}
	}
	deps := make([]*entity.EventDependency, 0, len(events)-1)
	for i := 1; i < len(events); i++ {
		prev, next := events[i-1], events[i]
		dep := entity.NewEventDependency(prev.SequenceNumber, next.SequenceNumber,
			fmt.Sprintf("%q happens before %q.", prev.Title, next.Title))
		deps = append(deps, dep)
	}
	return deps
}

// inferArcs 角色弧线：只为主角/反派或出场 >10 次的角色生成，
// 且要求至少参与 3 个事件。描述与起止状态为模板文案。
func inferArcs(characters []*entity.Character, events []*entity.Event) []*entity.CharacterArc {
	arcs := []*entity.CharacterArc{}
	for _, c := range characters {
		if !c.IsMajor() && c.Role != entity.RoleAntagonist {
			continue
		}
		involved := []string{}
		for _, ev := range events {
			if ev.InvolvesCharacter(c.Name) {
				involved = append(involved, ev.Title)
			}
		}
		if len(involved) < 3 {
			continue
		}

		arc := entity.NewCharacterArc(c.Name, c.Name+"'s Arc")
		arc.Description = fmt.Sprintf("%s develops across %d key events of the story.", c.Name, len(involved))
		arc.StartingState = fmt.Sprintf("%s at the outset of the story.", c.Name)
		arc.EndingState = fmt.Sprintf("%s transformed by the story's events.", c.Name)
		arc.EventTitles = append(arc.EventTitles, involved...)
		arcs = append(arcs, arc)
	}
	return arcs
}
