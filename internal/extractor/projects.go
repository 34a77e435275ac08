package extractor

import (
	"regexp"
	"strings"
	"unicode"
)

// 技术提示词短语：提示词后面直到句号/换行的片段视为技术列表
var techCuePattern = regexp.MustCompile(
	`(?i)(?:built with|developed using|implemented in|written in|tech stack:|technologies:|frameworks:|libraries:|languages:|stack:|tools:|using|with)\s+([^.\n]+)`)

var techTokenSplitPattern = regexp.MustCompile(`(?i)\s*(?:,|;|&|\band\b|\bor\b)\s*`)

// 兜底的技术名形态：X.js后缀、2个以上字母的全大写缩写、SQL/DB后缀
var (
	techShapeJS      = regexp.MustCompile(`(?i)\b[a-z][a-z0-9]*\.js\b`)
	techShapeAcronym = regexp.MustCompile(`\b[A-Z]{2,}\b`)
	techShapeSQL     = regexp.MustCompile(`(?i)\b\w*(?:sql|db)\b`)
	pureNumberToken  = regexp.MustCompile(`^\d+(?:\.\d+)*$`)
)

// ExtractTechnologies 从项目描述文本推导技术名列表
// 先找提示词短语并按分隔符切分；一个提示词都没有时
// 退回到按已知技术名形态扫描。结果经清洗、规范化、按首次出现去重
func ExtractTechnologies(text string) []string {
	techs := []string{}
	seen := map[string]struct{}{}

	add := func(token string) {
		cleaned := cleanTechToken(token)
		if cleaned == "" {
			return
		}
		if _, dup := seen[cleaned]; dup {
			return
		}
		seen[cleaned] = struct{}{}
		techs = append(techs, cleaned)
	}

	cueMatches := techCuePattern.FindAllStringSubmatch(text, -1)
	if len(cueMatches) > 0 {
		for _, m := range cueMatches {
			for _, token := range techTokenSplitPattern.Split(m[1], -1) {
				add(token)
			}
		}
		return techs
	}

	// 无提示词时按形态兜底识别
	for _, p := range []*regexp.Regexp{techShapeJS, techShapeAcronym, techShapeSQL} {
		for _, token := range p.FindAllString(text, -1) {
			add(token)
		}
	}
	for _, word := range strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == ';' || r == '(' || r == ')'
	}) {
		if isKnownTechName(strings.Trim(word, ".")) {
			add(strings.Trim(word, "."))
		}
	}
	return techs
}

// cleanTechToken 清洗单个技术名候选token
// 去首尾噪声、拒绝停用词/纯数字/过短过长/版本类噪声词，
// 其余token标题化后过规范化表
func cleanTechToken(token string) string {
	token = strings.Trim(strings.TrimSpace(token), `"'()[]{}.:`)
	if token == "" {
		return ""
	}
	if isStopWord(token) || isNoiseWord(token) {
		return ""
	}
	if pureNumberToken.MatchString(token) {
		return ""
	}
	if len(token) < 2 || len(token) > 30 {
		return ""
	}

	normalized := titleCaseTech(token)
	if canonical, ok := techCanonicalTable[normalized]; ok {
		return canonical
	}
	return normalized
}

// titleCaseTech 技术名标题化：全大写缩写保留原样，
// 其余按词首字母大写、其余小写处理
func titleCaseTech(token string) string {
	if token == strings.ToUpper(token) && len(token) <= 10 {
		return token
	}
	words := strings.Fields(strings.ToLower(token))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

var (
	projectURLPattern     = regexp.MustCompile(`(?i)https?://[^\s{}\\]+|(?:github|gitlab)\.com/[A-Za-z0-9_.\-/]+`)
	projectBareYear       = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	projectMonthYear      = regexp.MustCompile(`(?i)\b` + monthAlt + `\s+\d{4}\b`)
	projectYearRange      = regexp.MustCompile(`\b\d{4}\s*[-–—]\s*\d{4}\b`)
	projectMonthYearRange = regexp.MustCompile(`(?i)\b` + monthAlt + `\s+\d{4}\s*[-–—]\s*` + monthAlt + `\s+\d{4}\b`)
)

// ExtractProjectURL 取项目正文中第一个URL或代码仓库路径
func ExtractProjectURL(text string) string {
	return strings.TrimRight(projectURLPattern.FindString(text), ".,;")
}

// ExtractProjectDate 按优先级提取项目日期token：
// 裸年份、"Month Year"、年份区间、完整月份区间
func ExtractProjectDate(text string) string {
	for _, p := range []*regexp.Regexp{
		projectBareYear, projectMonthYear, projectYearRange, projectMonthYearRange,
	} {
		if m := p.FindString(text); m != "" {
			return m
		}
	}
	return ""
}
