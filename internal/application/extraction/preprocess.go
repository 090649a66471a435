package extraction

import (
	"regexp"
	"strings"
)

var (
	spaceRunRe = regexp.MustCompile(`[ \t]+`)
	anySpaceRe = regexp.MustCompile(`\s+`)
)

// Preprocess 规整空白。
// 剧本类格式逐行处理以保留场景标题的行边界，
// 散文类格式全局折叠空白。纯函数，无失败路径。
func Preprocess(text string, format Format) string {
	if format == FormatScreenplay || format == FormatFountain {
		return normalizeLines(text)
	}
	return strings.TrimSpace(anySpaceRe.ReplaceAllString(text, " "))
}

// normalizeLines 逐行折叠行内空白，保留行边界。
// 行锚定的抽取阶段用它替代全局折叠版本。
func normalizeLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRunRe.ReplaceAllString(line, " "))
	}
	return strings.Join(lines, "\n")
}
