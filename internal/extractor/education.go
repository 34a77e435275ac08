package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"resume-agent-go/internal/types"
)

// 学位模式按优先级排列：缩写形式优先于完整拼写，
// 同一行同时出现 "B.Tech" 和 "Bachelor of Technology" 时取前者
var degreePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(B\.E\.|B\.Tech|B\.Sc|B\.A\.|B\.Com|BBA|BCA)`),
	regexp.MustCompile(`(?i)(M\.E\.|M\.Tech|M\.Sc|M\.A\.|M\.Com|MBA|MCA)`),
	regexp.MustCompile(`(?i)(Ph\.D|PhD|Doctorate)`),
	regexp.MustCompile(`(?i)(Bachelor(?:'s)?(?:\s+of)?(?:\s+\w+)*)`),
	regexp.MustCompile(`(?i)(Master(?:'s)?(?:\s+of)?(?:\s+\w+)*)`),
	regexp.MustCompile(`(?i)(Associate(?:'s)?(?:\s+of)?(?:\s+\w+)*)`),
}

// 行首尾的月份区间/年份区间token，提取学位前先剥掉
var eduDateRangePattern = regexp.MustCompile(
	`\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s*\d{4}\s*[-–—]\s*(?:(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s*)?\d{4}|\d{4}\s*[-–—]\s*\d{4}`)

// ExtractEducation 自由文本模式的教育经历提取
// 定位教育章节，逐行剥离日期token后按学位模式匹配；
// 学位前的文本作为院校名，为空时回退到上一非空行；
// 院校和学位同时非空才产出条目
func ExtractEducation(markdown string) []*types.EducationItem {
	items := []*types.EducationItem{}

	body := FindSectionBody(markdown, educationSectionNames)
	if body == "" {
		return items
	}

	var lines []string
	for _, line := range strings.Split(body, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			lines = append(lines, s)
		}
	}

	for i, line := range lines {
		cleaned := strings.Trim(eduDateRangePattern.ReplaceAllString(line, ""), " -–—")

		for _, pattern := range degreePatterns {
			m := pattern.FindStringSubmatch(cleaned)
			if m == nil {
				continue
			}
			degree := strings.TrimSpace(m[1])

			before := cleaned[:strings.Index(cleaned, m[1])]
			college := strings.Trim(before, " -–—,")
			if college == "" && i > 0 {
				college = lines[i-1]
			}

			if college != "" && degree != "" {
				item := types.NewEducationItem()
				item.Degree = degree
				item.Institution = college
				items = append(items, item)
			}
			break
		}
	}
	return items
}

// CGPA模式按优先级排列：带分母的标注值、裸标注值、无标注的"x/10或4"形式
var cgpaPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:GPA|CGPA)[:\s]*([0-9]\.?[0-9]{0,2}\s*/\s*(?:10|4)\.?0?0?)`),
	regexp.MustCompile(`(?i)(?:GPA|CGPA)[:\s]*([0-9]\.?[0-9]{0,2})`),
	regexp.MustCompile(`([0-9]\.?[0-9]{0,2})\s*/\s*(?:10|4)\.?0?0?`),
}

// ExtractCGPA 提取GPA/CGPA字符串
// 取第一个分子部分能解析为[0,10]内浮点数的匹配，否则返回空串
func ExtractCGPA(text string) string {
	for _, pattern := range cgpaPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		cgpa := strings.TrimSpace(m[1])
		numeric := strings.TrimSpace(strings.SplitN(cgpa, "/", 2)[0])
		v, err := strconv.ParseFloat(numeric, 64)
		if err != nil {
			continue
		}
		if v >= 0 && v <= 10 {
			return cgpa
		}
	}
	return ""
}
