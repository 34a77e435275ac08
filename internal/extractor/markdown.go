package extractor

import (
	"regexp"
	"strings"
)

var (
	pageMarkerPattern  = regexp.MustCompile(`Page\s+(\d+)`)
	bulletPrefixChars  = []string{"•", "-", "*"}
	numberedLinePrefix = regexp.MustCompile(`^\d+\.`)
	bulletStripPattern = regexp.MustCompile(`^[•\-*\d.\s]+`)
	excessBlankLines   = regexp.MustCompile(`\n{3,}`)
)

// ConvertTextToMarkdown 将解码出的纯文本逐行归一化为markdown：
// 页标记行转二级标题，识别出的章节标题转三级标题，
// 项目符号行统一为短横线列表，其余行原样保留
func ConvertTextToMarkdown(text string) string {
	if text == "" {
		return ""
	}

	lines := strings.Split(text, "\n")
	mdLines := make([]string, 0, len(lines))

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			mdLines = append(mdLines, "")
			continue
		}

		// 页标记行，例如 "--- Page 2 ---"
		if strings.HasPrefix(line, "--- Page") && strings.HasSuffix(line, "---") {
			if m := pageMarkerPattern.FindStringSubmatch(line); m != nil {
				mdLines = append(mdLines, "\n## Page "+m[1]+"\n")
			}
			continue
		}

		if DetectHeading(line) {
			mdLines = append(mdLines, "### "+line+"\n")
			continue
		}

		if isBulletLine(line) {
			clean := strings.TrimSpace(bulletStripPattern.ReplaceAllString(line, ""))
			mdLines = append(mdLines, "- "+clean)
			continue
		}

		mdLines = append(mdLines, line)
	}

	md := strings.Join(mdLines, "\n")
	// 连续3个以上换行压缩为一个空行
	md = excessBlankLines.ReplaceAllString(md, "\n\n")
	return strings.TrimSpace(md)
}

func isBulletLine(line string) bool {
	for _, prefix := range bulletPrefixChars {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return numberedLinePrefix.MatchString(line)
}
