package extraction

import (
	"regexp"
	"strings"

	"storyverse-api/internal/domain/entity"
)

var (
	sluglineLocationRe = regexp.MustCompile(`(?m)^(?:INT|EXT|INT/EXT|I/E)\.\s+([^-\n]+?)(?:\s*-\s*.*)?$`)
	prefixPhraseRe     = regexp.MustCompile(`\b(?:in|at|to|from|inside|near|outside)\s+the\s+([A-Z][a-z]+(?:\s[A-Z][a-z]+){0,2})`)
	indicatorPhraseRe  = regexp.MustCompile(`\b(?:the|a)\s+((?:[a-z]+\s)?(?:room|kitchen|house|castle|forest|city|town|village|street|office|tower|cave|mountain|valley|garden|bridge|station|harbor))\b`)
)

// extractLocations 三路模式抽取地点：
// 场景标题行、介词短语、地点指示词短语，结果去重
func extractLocations(text string, p Profile) []*entity.Location {
	names := newOrderedSet()

	for _, m := range sluglineLocationRe.FindAllStringSubmatch(text, -1) {
		names.add(strings.TrimSpace(m[1]))
	}
	for _, m := range prefixPhraseRe.FindAllStringSubmatch(text, -1) {
		names.add(strings.TrimSpace(m[1]))
	}
	for _, m := range indicatorPhraseRe.FindAllStringSubmatch(text, -1) {
		names.add(strings.TrimSpace(m[1]))
	}

	locations := make([]*entity.Location, 0, names.len())
	for _, name := range names.values() {
		if name == "" || len(name) > 60 {
			continue
		}
		locType := classifyByKeywords(name, locationTypeKeywords, entity.LocationOther)
		locations = append(locations, entity.NewLocation(name, locType, p.LocationConfidence))
	}
	return locations
}
