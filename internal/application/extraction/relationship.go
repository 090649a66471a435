package extraction

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"storyverse-api/internal/domain/entity"
)

// inferRelationships 在置信度 ≥0.7 的角色两两组合间推断关系。
// 以同句共现为依据：零共现跳过；按关键词类别计数取严格多数，
// 并列或全零归为 other；强度 = min(10, max(1, ceil(共现数/2)))。
// 无序对只产出一次，不产出自配对。
func inferRelationships(text string, characters []*entity.Character) []*entity.CharacterRelationship {
	eligible := []*entity.Character{}
	for _, c := range characters {
		if c.Confidence >= 0.7 {
			eligible = append(eligible, c)
		}
	}

	relationships := []*entity.CharacterRelationship{}
	for i := 0; i < len(eligible); i++ {
		for j := i + 1; j < len(eligible); j++ {
			rel := inferPairRelationship(text, eligible[i].Name, eligible[j].Name)
			if rel != nil {
				relationships = append(relationships, rel)
			}
		}
	}
	return relationships
}

func inferPairRelationship(text, name1, name2 string) *entity.CharacterRelationship {
	sentences := coMentionSentences(text, name1, name2)
	if len(sentences) == 0 {
		return nil
	}

	relType := classifyByKeywords(strings.Join(sentences, " "), relationshipIndicators, entity.RelationshipOther)
	intensity := int(math.Min(10, math.Max(1, math.Ceil(float64(len(sentences))/2))))

	rel := entity.NewCharacterRelationship(name1, name2, relType, intensity)
	longest := ""
	for _, s := range sentences {
		if len(s) > len(longest) {
			longest = s
		}
	}
	rel.Description = fmt.Sprintf("%s and %s share a %s relationship. Example: %q",
		name1, name2, relType, strings.TrimSpace(longest))
	return rel
}

// coMentionSentences 找出同时提到两个名字的句子，双向各查一次
func coMentionSentences(text, name1, name2 string) []string {
	found := newOrderedSet()
	for _, pair := range [][2]string{{name1, name2}, {name2, name1}} {
		re, err := regexp.Compile(
			`(?i)[^.!?]*\b` + regexp.QuoteMeta(pair[0]) + `\b[^.!?]*\b` +
				regexp.QuoteMeta(pair[1]) + `\b[^.!?]*[.!?]`)
		if err != nil {
			continue
		}
		for _, s := range re.FindAllString(text, -1) {
			found.add(strings.TrimSpace(s))
		}
	}
	return found.values()
}
