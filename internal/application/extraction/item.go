package extraction

import (
	"regexp"
	"strings"

	"storyverse-api/internal/domain/entity"
)

var (
	itemVerbPhraseRe = regexp.MustCompile(
		`\b(?:holds|held|carries|carried|picks up|picked up|grabs|grabbed|wields|wielded|draws|drew|clutches|clutched)\s+` +
			`(?:the|a|an|his|her|their)?\s*([a-z]+(?:\s[a-z]+)?)\b`)
	itemNounRe = regexp.MustCompile(`\b(?:the|a|an)\s+([a-z]+)\b`)
)

// extractItems 两路模式抽取物品：
// 动词指示短语抓宾语，固定名词表直接匹配
func extractItems(text string, p Profile) []*entity.Item {
	names := newOrderedSet()

	for _, m := range itemVerbPhraseRe.FindAllStringSubmatch(text, -1) {
		// 宾语短语里取命中物品表的那个词
		if noun := firstObjectWord(m[1]); noun != "" {
			names.add(noun)
		}
	}
	for _, m := range itemNounRe.FindAllStringSubmatch(text, -1) {
		if noun := firstObjectWord(m[1]); noun != "" {
			names.add(noun)
		}
	}

	items := make([]*entity.Item, 0, names.len())
	for _, name := range names.values() {
		itemType := classifyByKeywords(name, itemTypeKeywords, entity.ItemOther)
		items = append(items, entity.NewItem(name, itemType, p.ItemConfidence))
	}
	return items
}

func firstObjectWord(phrase string) string {
	for _, word := range strings.Fields(phrase) {
		if objectWords[strings.ToUpper(word)] {
			return word
		}
	}
	return ""
}
