package extraction

import (
	"regexp"
	"strings"

	"storyverse-api/internal/domain/entity"
)

var (
	structureHeaderRe = regexp.MustCompile(`(?mi)^\s*((?:CHAPTER|ACT|PART|BOOK)\s+(?:[0-9]+|[IVXLC]+|ONE|TWO|THREE|FOUR|FIVE|SIX|SEVEN|EIGHT|NINE|TEN)[^\n]*)$`)
	subplotMarkerRe   = regexp.MustCompile(`(?m)^(?:SUBPLOT|ARC):\s*(.+)$`)
	titleLikeLineRe   = regexp.MustCompile(`(?m)^\s*([A-Z][A-Za-z' ]{2,60})\s*$`)
)

// extractPlotlines 情节线模式抽取：
// 章节/幕结构标题、显式 SUBPLOT:/ARC: 标记；
// 全部落空时从首个标题样行或首个全大写词合成一条 "Main Plot"。
func extractPlotlines(text string, p Profile) []*entity.Plotline {
	names := newOrderedSet()
	types := map[string]entity.PlotlineType{}

	for _, m := range structureHeaderRe.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		names.add(name)
		types[strings.ToUpper(name)] = entity.PlotlineOther
	}
	for _, m := range subplotMarkerRe.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		names.add(name)
		types[strings.ToUpper(name)] = entity.PlotlineSubplot
	}

	if names.len() == 0 {
		if title := firstTitleCandidate(text); title != "" {
			pl := entity.NewPlotline("Main Plot", entity.PlotlineMain, p.PlotlineConfidence)
			pl.Description = "Primary storyline derived from: " + title
			return []*entity.Plotline{pl}
		}
		return []*entity.Plotline{}
	}

	plotlines := make([]*entity.Plotline, 0, names.len())
	for _, name := range names.values() {
		plType := types[strings.ToUpper(name)]
		if plType == "" {
			plType = entity.PlotlineOther
		}
		plotlines = append(plotlines, entity.NewPlotline(name, plType, p.PlotlineConfidence))
	}
	return plotlines
}

// firstTitleCandidate 首个标题样行，退而求其次取首个全大写词
func firstTitleCandidate(text string) string {
	if m := titleLikeLineRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if token := allCapsTokenRe.FindString(text); token != "" {
		return token
	}
	return ""
}
