package extractor

import (
	"regexp"
	"strings"
)

// 分类技能行：加粗或"类别:"形式的标签 + 冒号 + 技能列表
var skillCategoryPattern = regexp.MustCompile(`(?m)^\s*(?:[-•]\s*)?(?:\\textbf\{([^}]+)\}|([A-Za-z][A-Za-z /&+]{1,40}))\s*[:：]\s*(.+)$`)

var skillItemSplitPattern = regexp.MustCompile(`\s*(?:[,;•●]|\n)\s*`)

// DefaultSkillCategory 无分类标签时技能归入的类别名
const DefaultSkillCategory = "Technical Skills"

// ExtractSkills 从技能章节提取按类别分组的技能表
// 优先识别"类别: 项, 项"的行；一条分类行都没有时
// 整个章节按分隔符切成平铺列表放入默认类别
func ExtractSkills(text string) map[string][]string {
	body := FindSectionBody(text, skillSectionNames)
	if body == "" {
		return map[string][]string{}
	}

	skills := map[string][]string{}
	matches := skillCategoryPattern.FindAllStringSubmatch(body, -1)
	for _, m := range matches {
		category := strings.TrimSpace(m[1])
		if category == "" {
			category = strings.TrimSpace(m[2])
		}
		items := splitSkillItems(m[3])
		if category == "" || len(items) == 0 {
			continue
		}
		skills[category] = append(skills[category], items...)
	}
	if len(skills) > 0 {
		return skills
	}

	flat := []string{}
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(bulletStripPattern.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		flat = append(flat, splitSkillItems(line)...)
	}
	if len(flat) > 0 {
		skills[DefaultSkillCategory] = flat
	}
	return skills
}

func splitSkillItems(raw string) []string {
	items := []string{}
	for _, item := range skillItemSplitPattern.Split(raw, -1) {
		item = strings.Trim(strings.TrimSpace(cleanLatexNoise(item)), ".")
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// ExtractListSection 按同义词组定位章节正文并拆成条目列表
// 命中的同义章节取并集；按换行和项目符号切分，
// 额外分隔符（如语言章节的逗号）由调用方传入
func ExtractListSection(text string, sectionNames []string, extraSeparators ...string) []string {
	bodies := FindSectionBodies(text, sectionNames)
	if len(bodies) == 0 {
		return []string{}
	}
	body := strings.Join(bodies, "\n")

	for _, sep := range extraSeparators {
		body = strings.ReplaceAll(body, sep, "\n")
	}

	items := []string{}
	seen := map[string]struct{}{}
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(bulletStripPattern.ReplaceAllString(cleanLatexNoise(line), ""))
		line = strings.Trim(line, ".")
		if line == "" || len(line) > 200 {
			continue
		}
		key := strings.ToLower(line)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		items = append(items, line)
	}
	return items
}

// ExtractCertifications 证书列表
func ExtractCertifications(text string) []string {
	return ExtractListSection(text, certificationSectionNames)
}

// ExtractAwards 获奖列表
func ExtractAwards(text string) []string {
	return ExtractListSection(text, awardSectionNames)
}

// ExtractPublications 论文/出版物列表
func ExtractPublications(text string) []string {
	return ExtractListSection(text, publicationSectionNames)
}

// ExtractLanguages 语言能力列表，逗号和分号也视为条目分隔
func ExtractLanguages(text string) []string {
	return ExtractListSection(text, languageSectionNames, ",", ";")
}
