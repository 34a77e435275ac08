package extractor

import (
	"regexp"
	"strings"
	"unicode"
)

// 标题行的模式识别：章节编号、"1. Introduction" 式编号、罗马数字编号
var headingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(Chapter|Section|Part|Article)\s+\d+`),
	regexp.MustCompile(`^\d+\.\s+[A-Z][a-zA-Z\s]+$`),
	regexp.MustCompile(`^[IVX]+\.\s+[A-Z]`),
}

// DetectHeading 判断一行文本是否像章节标题
// 依次检查：全大写且长度合理、命中章节词表、命中标题行模式
func DetectHeading(line string) bool {
	line = strings.TrimSpace(line)
	if len(line) < 2 {
		return false
	}

	if isAllUpper(line) && len(line) >= 3 && len(line) <= 50 {
		return true
	}

	if _, ok := sectionHeaderVocab[strings.ToUpper(line)]; ok {
		return true
	}

	for _, p := range headingPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// isAllUpper 判断是否为全大写行（必须至少包含一个字母）
func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

// sectionBodyPatterns 章节名 -> 正文定位正则，包初始化时编译一次
// 匹配 "### 名称" 或裸标题行，正文一直取到下一个三级标题或文末
var sectionBodyPatterns = map[string]*regexp.Regexp{}

func init() {
	for _, group := range [][]string{
		experienceSectionNames, educationSectionNames, projectSectionNames,
		skillSectionNames, certificationSectionNames, awardSectionNames,
		publicationSectionNames, languageSectionNames,
	} {
		for _, name := range group {
			if _, ok := sectionBodyPatterns[name]; !ok {
				sectionBodyPatterns[name] = compileSectionBodyPattern(name)
			}
		}
	}
}

func compileSectionBodyPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?is)(?:###\s*)?` + regexp.QuoteMeta(name) + `\s*\n(.*?)(?:\n###|$)`)
}

func sectionBodyPattern(name string) *regexp.Regexp {
	if p, ok := sectionBodyPatterns[name]; ok {
		return p
	}
	return compileSectionBodyPattern(name)
}

// FindSectionBody 在markdown正文中查找章节正文
// 按同义词顺序逐个尝试，第一个命中者生效；都未命中时返回空串
func FindSectionBody(markdown string, names []string) string {
	for _, name := range names {
		if m := sectionBodyPattern(name).FindStringSubmatch(markdown); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// FindSectionBodies 与FindSectionBody类似，但合并所有同义章节的正文
// 用于证书/获奖等可能分散在多个章节下的平铺列表
func FindSectionBodies(markdown string, names []string) []string {
	var bodies []string
	for _, name := range names {
		if m := sectionBodyPattern(name).FindStringSubmatch(markdown); m != nil {
			body := strings.TrimSpace(m[1])
			if body != "" {
				bodies = append(bodies, body)
			}
		}
	}
	return bodies
}

var mdHeadingPattern = regexp.MustCompile(`(?m)^###\s*(.+)$`)

// CollectSections 从markdown正文收集 原始章节名 -> 原始章节正文 的映射
// 章节名保留提取到的原始大小写
func CollectSections(markdown string) map[string]string {
	sections := make(map[string]string)
	locs := mdHeadingPattern.FindAllStringSubmatchIndex(markdown, -1)
	for i, loc := range locs {
		title := strings.TrimSpace(markdown[loc[2]:loc[3]])
		start := loc[1]
		end := len(markdown)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		body := strings.TrimSpace(markdown[start:end])
		if _, exists := sections[title]; !exists {
			sections[title] = body
		}
	}
	return sections
}
