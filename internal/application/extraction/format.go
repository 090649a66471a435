package extraction

import (
	"regexp"
	"strings"
)

// Format 输入文本的叙事格式
type Format string

const (
	FormatScreenplay Format = "screenplay"
	FormatFountain   Format = "fountain"
	FormatNovel      Format = "novel"
	FormatGeneral    Format = "general"
)

var (
	sceneHeadingRe = regexp.MustCompile(`(?m)^\s*(INT|EXT|INT/EXT|I/E)\.\s+`)
	intHeadingRe   = regexp.MustCompile(`(?m)^\s*(INT|INT/EXT|I/E)\.\s+`)
	extHeadingRe   = regexp.MustCompile(`(?m)^\s*(EXT|INT/EXT)\.\s+`)
	fountainMetaRe = regexp.MustCompile(`(?m)^(Title|Author|Credit|Source|Draft date|Contact):\s*\S`)
	transitionRe   = regexp.MustCompile(`(?m)^\s*(CUT TO|FADE IN|FADE OUT|DISSOLVE TO|SMASH CUT TO):?\s*$`)
	// 每个转场标记是独立的计分模式
	transitionRes = []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*FADE IN:?\s*$`),
		regexp.MustCompile(`(?m)^\s*FADE OUT:?\s*$`),
		regexp.MustCompile(`(?m)^\s*CUT TO:?\s*$`),
		regexp.MustCompile(`(?m)^\s*DISSOLVE TO:?\s*$`),
		regexp.MustCompile(`(?m)^\s*SMASH CUT TO:?\s*$`),
	}
	// 说话人提示行：全大写、不太长、可带扩展括号
	cueLineRe        = regexp.MustCompile(`(?m)^[A-Z][A-Z\s'.,-]{1,40}(\([A-Z.' ]+\))?$`)
	parentheticalRe  = regexp.MustCompile(`(?m)^\s*\([a-z][^)]*\)\s*$`)
	chapterHeadingRe = regexp.MustCompile(`(?mi)^\s*(chapter|part|book)\s+([0-9]+|[IVXLC]+|one|two|three|four|five|six|seven|eight|nine|ten)\b`)
	attributionRe    = regexp.MustCompile(`"[^"]+"\s*,?\s*(said|asked|replied|whispered|shouted|muttered|answered|cried|exclaimed)\b`)
)

// DetectFormat 判定输入文本的格式。
// 先查 Fountain 元数据，再按剧本信号计分，最后按散文信号计分，
// 都不命中则归为 general。同一输入恒返回同一结果。
func DetectFormat(text string) Format {
	if fountainMetaRe.MatchString(text) && sceneHeadingRe.MatchString(text) {
		return FormatFountain
	}

	// 剧本指示模式逐一计分，INT. 与 EXT. 各算一个模式，
	// 每种转场标记同样各算一个模式
	screenplayScore := 0
	if intHeadingRe.MatchString(text) {
		screenplayScore++
	}
	if extHeadingRe.MatchString(text) {
		screenplayScore++
	}
	for _, re := range transitionRes {
		if re.MatchString(text) {
			screenplayScore++
		}
	}
	if parentheticalRe.MatchString(text) {
		screenplayScore++
	}
	if countCueLines(text) >= 3 {
		screenplayScore++
	}
	if screenplayScore >= 3 {
		return FormatScreenplay
	}

	novelScore := 0
	if n := len(chapterHeadingRe.FindAllString(text, -1)); n > 0 {
		novelScore++
		if n > 10 {
			novelScore++
		}
	}
	if n := len(attributionRe.FindAllString(text, -1)); n > 0 {
		novelScore++
		if n > 10 {
			novelScore++
		}
	}
	if hasLongParagraphs(text) {
		novelScore++
	}
	if novelScore > 0 {
		return FormatNovel
	}

	return FormatGeneral
}

// countCueLines 统计疑似说话人提示行：全大写短行，且其后紧跟台词行
func countCueLines(text string) int {
	lines := strings.Split(text, "\n")
	count := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || !cueLineRe.MatchString(trimmed) {
			continue
		}
		if sceneHeadingRe.MatchString(trimmed) || transitionRe.MatchString(trimmed) {
			continue
		}
		// 下一个非空行必须是台词（非全大写）才计数
		for j := i + 1; j < len(lines); j++ {
			next := strings.TrimSpace(lines[j])
			if next == "" {
				continue
			}
			if next != strings.ToUpper(next) {
				count++
			}
			break
		}
	}
	return count
}

// hasLongParagraphs 判断是否存在散文式长段落
func hasLongParagraphs(text string) bool {
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if len(para) > 300 && strings.Count(para, ". ") >= 2 {
			return true
		}
	}
	return false
}
