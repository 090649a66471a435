package extraction

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"storyverse-api/internal/domain/entity"
)

var (
	cueRe = regexp.MustCompile(`^[A-Z][A-Z\s',.]+(\([A-Z.]+\))?$`)
	// 对话归属：支持直引号与弯引号、单双引号
	dialogueAttrRe = regexp.MustCompile(
		`["'\x{201C}\x{2018}][^"'\x{201C}\x{201D}\x{2018}\x{2019}]+["'\x{201D}\x{2019}]\s*,?\s*` +
			`(said|asked|replied|whispered|shouted|muttered|answered|cried|exclaimed)\s+` +
			`([A-Z][A-Za-z]+(?:\s[A-Z][A-Za-z]+)?)`)
	capitalizedTokenRe = regexp.MustCompile(`\b[A-Z][a-z]+\b`)
	allCapsTokenRe     = regexp.MustCompile(`\b[A-Z][A-Z']{1,19}\b`)
	allCapsPhraseRe    = regexp.MustCompile(`\b[A-Z][A-Z']+(?:\s+[A-Z][A-Z']+){1,2}\b`)
	titleLineRe        = regexp.MustCompile(`(?m)^([A-Z][A-Z\s]{1,30}):\s+\S`)
	sentenceRe         = regexp.MustCompile(`[^.!?]+[.!?]`)
)

// candidate 角色候选的中间态
type candidate struct {
	name       string
	confidence float64
}

// extractCharacters 按格式选择策略抽取角色候选。
// 全大写启发式对所有格式生效，剧本提示行与对话归属按格式附加。
func extractCharacters(text string, format Format, p Profile, floor float64, overrides map[string]CharacterOverride) []*entity.Character {
	candidates := map[string]*candidate{}

	merge := func(found map[string]*candidate) {
		for key, c := range found {
			if prev, ok := candidates[key]; !ok || c.confidence > prev.confidence {
				candidates[key] = c
			}
		}
	}

	merge(allCapsCandidates(text, p))
	switch format {
	case FormatScreenplay, FormatFountain:
		merge(screenplayCueCandidates(text, p))
	default:
		merge(novelCandidates(text, p))
	}

	characters := make([]*entity.Character, 0, len(candidates))
	for _, c := range candidates {
		if !isLikelyCharacterName(c.name) {
			continue
		}
		conf := entity.ClampConfidence(c.confidence)
		if conf < floor {
			continue
		}
		name := titleCaseName(c.name)
		mentions := countMentions(text, c.name)
		role := identifyCharacterRole(name, text, mentions, overrides)
		ch := entity.NewCharacter(name, role, conf)
		ch.Appearances = mentions
		ch.Description = generateDescription(name, text, role, overrides)
		ch.Logline = generateLogline(name, role, overrides)
		characters = append(characters, ch)
	}

	sortCharacters(characters)
	return characters
}

// screenplayCueCandidates 剧本提示行策略：
// 全大写短行且下一非空行是台词（非场景标题、非另一行提示）
func screenplayCueCandidates(text string, p Profile) map[string]*candidate {
	found := map[string]*candidate{}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || len(trimmed) >= 50 || !cueRe.MatchString(trimmed) {
			continue
		}
		if sceneHeadingRe.MatchString(trimmed) || transitionRe.MatchString(trimmed) {
			continue
		}
		ok := false
		for j := i + 1; j < len(lines); j++ {
			next := strings.TrimSpace(lines[j])
			if next == "" {
				continue
			}
			ok = !sceneHeadingRe.MatchString(next) && !cueRe.MatchString(next)
			break
		}
		if !ok {
			continue
		}
		name := strings.TrimSpace(stripParenthetical(trimmed))
		if name == "" {
			continue
		}
		bump(found, name, p.CueBase, p.CueStep, p.CueCap)
	}
	return found
}

// novelCandidates 散文策略：对话归属 + 专有名词频次
func novelCandidates(text string, p Profile) map[string]*candidate {
	found := map[string]*candidate{}

	for _, m := range dialogueAttrRe.FindAllStringSubmatch(text, -1) {
		bump(found, m[2], p.DialogueBase, p.DialogueStep, p.DialogueCap)
	}

	freq := map[string]int{}
	for _, token := range capitalizedTokenRe.FindAllString(text, -1) {
		if properNounStoplist[token] {
			continue
		}
		freq[token]++
	}
	for token, n := range freq {
		if n < 3 {
			continue
		}
		key := strings.ToUpper(token)
		if _, ok := found[key]; !ok {
			found[key] = &candidate{name: token, confidence: p.FrequencyConfidence}
		}
	}
	return found
}

// allCapsCandidates 全大写启发式，对所有格式生效。
// 先收多词短语，再收单词，被短语吸收的单词去重。
func allCapsCandidates(text string, p Profile) map[string]*candidate {
	found := map[string]*candidate{}
	absorbed := map[string]bool{}

	for _, phrase := range allCapsPhraseRe.FindAllString(text, -1) {
		phrase = strings.TrimSpace(phrase)
		if len(strings.Fields(phrase)) > 3 || !isLikelyCharacterName(phrase) {
			continue
		}
		if _, ok := found[phrase]; !ok {
			found[phrase] = &candidate{name: phrase, confidence: p.FrequencyConfidence}
		}
		for _, word := range strings.Fields(phrase) {
			absorbed[word] = true
		}
	}

	for _, token := range allCapsTokenRe.FindAllString(text, -1) {
		if absorbed[token] || nonCharacterWords[token] {
			continue
		}
		if _, ok := found[token]; !ok {
			found[token] = &candidate{name: token, confidence: p.FrequencyConfidence}
		}
	}

	// 标题行模式 NAME: ...
	for _, m := range titleLineRe.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		if _, ok := found[name]; !ok {
			found[name] = &candidate{name: name, confidence: p.FrequencyConfidence}
		}
	}
	return found
}

// isLikelyCharacterName 名称合理性检查。
// 称谓前缀直接通过；否则要求不含地点/物品/非角色/场景词，
// 且不是已知的动作描写短语。
func isLikelyCharacterName(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	if hasHonorificPrefix(name) {
		return true
	}
	upper := strings.ToUpper(name)
	if actionDescriptionPhrases[upper] {
		return false
	}
	if containsStopWord(name, nonCharacterWords) ||
		containsStopWord(name, locationWords) ||
		containsStopWord(name, objectWords) {
		return false
	}
	return true
}

// identifyCharacterRole 角色定位。
// 覆盖表优先；开场 200 字符内出现且提及 >15 次为主角；
// 名称邻域含负面情感词为反派；提及 >5 次为配角；其余为背景角色。
func identifyCharacterRole(name, text string, mentions int, overrides map[string]CharacterOverride) entity.CharacterRole {
	if ov, ok := overrides[name]; ok && ov.Role != "" {
		return entity.CharacterRole(ov.Role)
	}

	head := text
	if len(head) > 200 {
		head = head[:200]
	}
	if containsName(head, name) && mentions > 15 {
		return entity.RoleProtagonist
	}
	if hasNegativeSentimentNearby(text, name) {
		return entity.RoleAntagonist
	}
	if mentions > 5 {
		return entity.RoleSupporting
	}
	return entity.RoleBackground
}

// hasNegativeSentimentNearby 名称任一出现位置前后 60 字符内是否有负面情感词
func hasNegativeSentimentNearby(text, name string) bool {
	lower := strings.ToLower(text)
	target := strings.ToLower(name)
	offset := 0
	for {
		idx := strings.Index(lower[offset:], target)
		if idx < 0 {
			return false
		}
		idx += offset
		start := idx - 60
		if start < 0 {
			start = 0
		}
		end := idx + len(target) + 60
		if end > len(lower) {
			end = len(lower)
		}
		window := lower[start:end]
		for _, word := range negativeSentimentWords {
			if strings.Contains(window, word) {
				return true
			}
		}
		offset = idx + len(target)
	}
}

// generateDescription 在正文里找含名称与描写/动作动词的句子，
// 找不到则退回按定位生成的模板描述
func generateDescription(name, text string, role entity.CharacterRole, overrides map[string]CharacterOverride) string {
	if ov, ok := overrides[name]; ok && ov.Description != "" {
		return ov.Description
	}
	for _, sentence := range sentenceRe.FindAllString(text, -1) {
		if !containsName(sentence, name) {
			continue
		}
		lower := strings.ToLower(sentence)
		for _, verb := range append(append([]string{}, descriptiveVerbs...), characterActionVerbs...) {
			if strings.Contains(lower, " "+verb+" ") {
				return strings.TrimSpace(sentence)
			}
		}
	}
	switch role {
	case entity.RoleProtagonist:
		return fmt.Sprintf("%s is the central character driving the story forward.", name)
	case entity.RoleAntagonist:
		return fmt.Sprintf("%s opposes the main characters and creates conflict.", name)
	case entity.RoleSupporting:
		return fmt.Sprintf("%s plays a recurring supporting part in the story.", name)
	default:
		return fmt.Sprintf("%s appears briefly in the story.", name)
	}
}

// generateLogline 角色一句话概括，覆盖表优先
func generateLogline(name string, role entity.CharacterRole, overrides map[string]CharacterOverride) string {
	if ov, ok := overrides[name]; ok && ov.Logline != "" {
		return ov.Logline
	}
	switch role {
	case entity.RoleProtagonist:
		return fmt.Sprintf("%s, the protagonist of this story.", name)
	case entity.RoleAntagonist:
		return fmt.Sprintf("%s, the story's antagonist.", name)
	case entity.RoleSupporting:
		return fmt.Sprintf("%s, a supporting character.", name)
	default:
		return fmt.Sprintf("%s, a background character.", name)
	}
}

// bump 首次按基础值登记，重复出现按步进抬升到上限
func bump(found map[string]*candidate, name string, base, step, limit float64) {
	key := strings.ToUpper(strings.TrimSpace(name))
	if c, ok := found[key]; ok {
		c.confidence += step
		if c.confidence > limit {
			c.confidence = limit
		}
		return
	}
	found[key] = &candidate{name: strings.TrimSpace(name), confidence: base}
}

// countMentions 大小写不敏感的整词出现次数
func countMentions(text, name string) int {
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
	if err != nil {
		return 0
	}
	return len(re.FindAllString(text, -1))
}

// containsName 大小写不敏感的整词匹配
func containsName(text, name string) bool {
	return countMentions(text, name) > 0
}

// titleCaseName 把名称规整为 Title Case，用于存储与查重
func titleCaseName(name string) string {
	words := strings.Fields(strings.TrimSpace(name))
	for i, word := range words {
		if len(word) == 1 {
			words[i] = strings.ToUpper(word)
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}

// stripParenthetical 去掉提示行尾部的括号扩展
func stripParenthetical(line string) string {
	if idx := strings.Index(line, "("); idx >= 0 {
		return line[:idx]
	}
	return line
}

// sortCharacters 按提及次数降序、名称升序排序，保证输出稳定
func sortCharacters(characters []*entity.Character) {
	sort.Slice(characters, func(i, j int) bool {
		if characters[i].Appearances != characters[j].Appearances {
			return characters[i].Appearances > characters[j].Appearances
		}
		return characters[i].Name < characters[j].Name
	})
}
