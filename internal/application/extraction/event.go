package extraction

import (
	"regexp"
	"strings"

	"storyverse-api/internal/domain/entity"
)

var eventMarkerRe = regexp.MustCompile(`(?m)^EVENT:\s*(.+)$`)

// extractEvents 按文本顺序抽取事件线索：
// EVENT: 标记、时间提示短语、强动作动词句、场景切换短语、情绪爆发句。
// 序号按档位步进递增。
func extractEvents(text string, p Profile) []*entity.Event {
	titles := newOrderedSet()
	descriptions := map[string]string{}

	record := func(title, description string) {
		title = truncateTitle(title)
		if title == "" {
			return
		}
		before := titles.len()
		titles.add(title)
		if titles.len() > before {
			descriptions[strings.ToUpper(title)] = strings.TrimSpace(description)
		}
	}

	for _, m := range eventMarkerRe.FindAllStringSubmatch(text, -1) {
		record(m[1], m[1])
	}

	for _, sentence := range sentenceRe.FindAllString(text, -1) {
		lower := strings.ToLower(sentence)
		matched := false
		for _, marker := range timeMarkers {
			if strings.Contains(lower, marker) {
				matched = true
				break
			}
		}
		if !matched {
			for _, verb := range strongActionVerbs {
				if strings.Contains(lower, " "+verb) ||
					strings.Contains(sentence, " "+strings.ToUpper(verb)) {
					matched = true
					break
				}
			}
		}
		if !matched {
			for _, verb := range emotionalOutburstVerbs {
				if strings.Contains(lower, " "+verb) {
					matched = true
					break
				}
			}
		}
		if matched {
			record(sentence, sentence)
		}
	}

	for _, phrase := range sceneTransitionPhrases {
		if strings.Contains(strings.ToLower(text), phrase) {
			record("Transition: "+phrase, phrase)
		}
	}

	events := make([]*entity.Event, 0, titles.len())
	seq := p.EventSequenceStep
	for _, title := range titles.values() {
		ev := entity.NewEvent(title, seq, p.EventConfidence)
		ev.Description = descriptions[strings.ToUpper(title)]
		events = append(events, ev)
		seq += p.EventSequenceStep
	}
	return events
}

// assignEventParticipants 把已识别的角色与地点挂到事件上。
// 重要度按角色定位给定：主角 8、反派 7、配角 5、其余 3。
func assignEventParticipants(events []*entity.Event, characters []*entity.Character, locations []*entity.Location) {
	for _, ev := range events {
		haystack := ev.Title + " " + ev.Description
		for _, ch := range characters {
			if !containsName(haystack, ch.Name) {
				continue
			}
			importance := 3
			switch ch.Role {
			case entity.RoleProtagonist:
				importance = 8
			case entity.RoleAntagonist:
				importance = 7
			case entity.RoleSupporting:
				importance = 5
			}
			ev.AddParticipant(ch.Name, importance)
		}
		for _, loc := range locations {
			if containsName(haystack, loc.Name) {
				ev.LocationNames = append(ev.LocationNames, loc.Name)
			}
		}
	}
}

// truncateTitle 事件标题折叠空白后取句子前 80 字符，去尾部空白与标点
func truncateTitle(s string) string {
	s = strings.TrimSpace(anySpaceRe.ReplaceAllString(s, " "))
	if len(s) > 80 {
		s = s[:80]
		if idx := strings.LastIndex(s, " "); idx > 20 {
			s = s[:idx]
		}
	}
	return strings.TrimRight(s, " .,:;")
}
