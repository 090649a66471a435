package extraction

import (
	"fmt"
	"regexp"
	"strings"

	"storyverse-api/internal/domain/entity"
)

var (
	sceneHeadingLineRe = regexp.MustCompile(`^(INT\.|EXT\.|INT/EXT\.|I/E\.)`)
	chapterMarkerRe    = regexp.MustCompile(`(?i)^\s*chapter\s+([0-9]+|[IVXLC]+|one|two|three|four|five|six|seven|eight|nine|ten)\b.*$`)
	starBreakRe        = regexp.MustCompile(`^\s*\*\s*\*\s*\*\s*$`)
)

// segmentScenes 场景切分。
// 剧本按场景标题行切；散文先按章切，章内再按段落启发式切；
// 无章节标记时对全文做段落切分。序号按产出顺序递增，
// 子场景记录所属章的序号。
func segmentScenes(text string, format Format) []*entity.Scene {
	if format == FormatScreenplay || format == FormatFountain {
		return segmentScreenplayScenes(text)
	}
	return segmentProseScenes(text)
}

func segmentScreenplayScenes(text string) []*entity.Scene {
	scenes := []*entity.Scene{}
	var current *entity.Scene
	var content []string
	seq := 0

	flush := func() {
		if current != nil {
			current.Content = strings.TrimSpace(strings.Join(content, "\n"))
			scenes = append(scenes, current)
		}
		content = nil
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if sceneHeadingLineRe.MatchString(trimmed) {
			flush()
			seq++
			current = entity.NewScene(trimmed, "", entity.SceneTypeScene, seq)
			continue
		}
		if current != nil {
			content = append(content, line)
		}
	}
	flush()
	return scenes
}

func segmentProseScenes(text string) []*entity.Scene {
	lines := strings.Split(text, "\n")

	type chapter struct {
		title string
		body  []string
	}
	var chapters []chapter
	var current *chapter
	var preamble []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if chapterMarkerRe.MatchString(trimmed) || starBreakRe.MatchString(trimmed) {
			title := trimmed
			if starBreakRe.MatchString(trimmed) {
				// 星号分隔节先留空，序言节并入后统一编号
				title = ""
			}
			chapters = append(chapters, chapter{title: title})
			current = &chapters[len(chapters)-1]
			continue
		}
		if current != nil {
			current.body = append(current.body, line)
		} else {
			preamble = append(preamble, line)
		}
	}

	// 首个章节标记之前的正文单独成节，不丢弃
	if len(chapters) > 0 && strings.TrimSpace(strings.Join(preamble, "\n")) != "" {
		chapters = append([]chapter{{body: preamble}}, chapters...)
	}
	for i := range chapters {
		if chapters[i].title == "" {
			chapters[i].title = fmt.Sprintf("Section %d", i+1)
		}
	}

	scenes := []*entity.Scene{}
	seq := 0

	if len(chapters) == 0 {
		for _, part := range splitParagraphScenes(text) {
			seq++
			scenes = append(scenes, entity.NewScene(
				fmt.Sprintf("Scene %d", seq), part, entity.SceneTypeScene, seq))
		}
		return scenes
	}

	for _, ch := range chapters {
		seq++
		chapterSeq := seq
		body := strings.Join(ch.body, "\n")
		chapterScene := entity.NewScene(ch.title, strings.TrimSpace(body), entity.SceneTypeChapter, chapterSeq)
		scenes = append(scenes, chapterScene)

		parts := splitParagraphScenes(body)
		if len(parts) <= 1 {
			continue
		}
		for i, part := range parts {
			seq++
			sub := entity.NewScene(
				fmt.Sprintf("%s - Scene %d", ch.title, i+1), part, entity.SceneTypeScene, seq)
			sub.ParentSequenceNumber = chapterSeq
			scenes = append(scenes, sub)
		}
	}
	return scenes
}

// splitParagraphScenes 段落级场景切分：
// 含时间提示词的段落，或含地点变化介词短语的短段落，开启新场景
func splitParagraphScenes(text string) []string {
	paragraphs := []string{}
	for _, para := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(para) != "" {
			paragraphs = append(paragraphs, strings.TrimSpace(para))
		}
	}
	if len(paragraphs) == 0 {
		return nil
	}

	parts := []string{}
	var buf []string
	for i, para := range paragraphs {
		if i > 0 && startsNewScene(para) {
			parts = append(parts, strings.Join(buf, "\n\n"))
			buf = nil
		}
		buf = append(buf, para)
	}
	parts = append(parts, strings.Join(buf, "\n\n"))
	return parts
}

func startsNewScene(paragraph string) bool {
	lower := strings.ToLower(paragraph)
	head := lower
	if len(head) > 80 {
		head = head[:80]
	}
	for _, marker := range timeMarkers {
		if strings.Contains(head, marker) {
			return true
		}
	}
	if len(paragraph) < 200 {
		for _, phrase := range locationChangePrepositions {
			if strings.Contains(lower, phrase) {
				return true
			}
		}
	}
	return false
}
