package extractor

import (
	"regexp"
	"strings"

	"resume-agent-go/internal/types"
)

const monthAlt = `(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?`

// 任职时间段，例如 "2020 - 2022"、"Jun 2021 – present"
var dateRangePattern = regexp.MustCompile(
	`(?i)\b(` + monthAlt + `\s*\d{4}|\d{4})\s*(?:[-–—~]|to)\s*(` + monthAlt + `\s*\d{4}|\d{4}|present|current)`)

// "City, ST" 或 "City, Region" 形式的地点
var locationPattern = regexp.MustCompile(
	`\b[A-Z][a-zA-Z]+(?:\s[A-Z][a-zA-Z]+)*,\s*(?:[A-Z]{2}\b|[A-Z][a-zA-Z]+)`)

var descriptionSplitPattern = regexp.MustCompile(`\n|•|●|▪`)

// ParseUnstructuredExperience 解析无结构的经历文本块
// 首行在第一个 " at "（否则 " - "）处切分为职位和公司；
// 全部行中扫描任职时间段，首个匹配确定起止日期；
// 首行之后的行进入描述列表，时间段行本身除外
func ParseUnstructuredExperience(text string) *types.ExperienceItem {
	item := types.NewExperienceItem()

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			lines = append(lines, s)
		}
	}
	if len(lines) == 0 {
		return item
	}

	first := lines[0]
	if idx := strings.Index(first, " at "); idx >= 0 {
		item.Title = strings.TrimSpace(first[:idx])
		item.Company = strings.TrimSpace(first[idx+len(" at "):])
	} else if idx := strings.Index(first, " - "); idx >= 0 {
		item.Title = strings.TrimSpace(first[:idx])
		item.Company = strings.TrimSpace(first[idx+len(" - "):])
	} else {
		item.Title = first
	}

	for _, line := range lines {
		if m := dateRangePattern.FindStringSubmatch(line); m != nil {
			item.StartDate = strings.TrimSpace(m[1])
			item.EndDate = strings.TrimSpace(m[2])
			break
		}
	}

	for _, line := range lines[1:] {
		if dateRangePattern.MatchString(line) {
			continue
		}
		item.Description = append(item.Description, line)
	}

	return item
}

// parseExperienceDetail 为结构化条目补齐日期/地点/描述
// 职位和公司已从命令参数直接取得，正文只用来找其余字段
func parseExperienceDetail(item *types.ExperienceItem, body string) {
	if m := dateRangePattern.FindStringSubmatch(body); m != nil {
		item.StartDate = strings.TrimSpace(m[1])
		item.EndDate = strings.TrimSpace(m[2])
	}
	if loc := locationPattern.FindString(body); loc != "" {
		item.Location = loc
	}
	for _, part := range descriptionSplitPattern.Split(body, -1) {
		line := strings.TrimSpace(part)
		if line == "" || dateRangePattern.MatchString(line) {
			continue
		}
		item.Description = append(item.Description, line)
	}
}

// ExtractExperience 自由文本模式的工作经历提取
// 经历章节正文按空行分隔成块，每块作为一条无结构经历解析；
// 职位和公司都为空的块丢弃
func ExtractExperience(markdown string) []*types.ExperienceItem {
	items := []*types.ExperienceItem{}

	body := FindSectionBody(markdown, experienceSectionNames)
	if body == "" {
		return items
	}

	for _, block := range strings.Split(body, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		item := ParseUnstructuredExperience(block)
		if item.Title == "" && item.Company == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}
