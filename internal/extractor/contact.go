package extractor

import (
	"regexp"
	"strings"
	"unicode"
)

var emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,7}\b`)

// ExtractEmail 返回文本中第一个同时含 "@" 和 "." 的邮箱，未找到时返回空串
func ExtractEmail(text string) string {
	for _, email := range emailPattern.FindAllString(text, -1) {
		if strings.Contains(email, "@") && strings.Contains(email, ".") {
			return email
		}
	}
	return ""
}

// 电话模式按优先级排列：美式格式、通用国际格式、裸10位数字
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+?1?[-.\s]?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})`),
	regexp.MustCompile(`\+?(\d{1,4})?[-.\s]?\(?(\d{3,4})\)?[-.\s]?(\d{3,4})[-.\s]?(\d{3,4})`),
	regexp.MustCompile(`(\d{10})`),
}

var nonDigitPattern = regexp.MustCompile(`\D`)

// ExtractPhone 依次尝试各电话模式，取第一个模式的首个匹配，
// 拼接捕获组并只统计数字位数，位数在[10,15]内才接受；
// 当前模式验证不通过时继续尝试下一个模式
func ExtractPhone(text string) string {
	for _, pattern := range phonePatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		var joined strings.Builder
		for _, group := range m[1:] {
			joined.WriteString(group)
		}
		digits := nonDigitPattern.ReplaceAllString(joined.String(), "")
		if len(digits) >= 10 && len(digits) <= 15 {
			return joined.String()
		}
	}
	return ""
}

// profileURLPatterns 个人主页链接的级联模式：完整URL、裸域名、"标签: 用户名"
type profileURLPatterns struct {
	full    *regexp.Regexp
	bare    *regexp.Regexp
	labeled *regexp.Regexp
	// 合成URL时使用的规范前缀，例如 "https://linkedin.com/in/"
	canonicalPrefix string
}

var linkedinPatterns = profileURLPatterns{
	full:            regexp.MustCompile(`(?i)https?://(?:www\.)?linkedin\.com/in/[a-zA-Z0-9\-_]+/?`),
	bare:            regexp.MustCompile(`(?i)linkedin\.com/in/[a-zA-Z0-9\-_]+`),
	labeled:         regexp.MustCompile(`(?i)LinkedIn[:\s\-]+([a-zA-Z0-9\-_]{3,})`),
	canonicalPrefix: "https://linkedin.com/in/",
}

var githubPatterns = profileURLPatterns{
	full:            regexp.MustCompile(`(?i)https?://(?:www\.)?github\.com/[a-zA-Z0-9\-_]+/?`),
	bare:            regexp.MustCompile(`(?i)github\.com/[a-zA-Z0-9\-_]+`),
	labeled:         regexp.MustCompile(`(?i)GitHub[:\s\-]+([a-zA-Z0-9\-_]{3,})`),
	canonicalPrefix: "https://github.com/",
}

func (p profileURLPatterns) extract(text string) string {
	if m := p.full.FindString(text); m != "" {
		return m
	}
	if m := p.bare.FindString(text); m != "" {
		return "https://" + strings.Trim(m, "/")
	}
	if m := p.labeled.FindStringSubmatch(text); m != nil {
		return p.canonicalPrefix + strings.Trim(m[1], "/")
	}
	return ""
}

// ExtractLinkedIn 提取LinkedIn主页链接，必要时从用户名合成完整URL
func ExtractLinkedIn(text string) string {
	return linkedinPatterns.extract(text)
}

// ExtractGitHub 提取GitHub主页链接
func ExtractGitHub(text string) string {
	return githubPatterns.extract(text)
}

var websitePattern = regexp.MustCompile(`(?i)https?://[a-zA-Z0-9\-._~:/?#\[\]@!$&'()*+,;=%]+`)

// ExtractWebsite 提取第一个既不是LinkedIn也不是GitHub的个人网站链接
func ExtractWebsite(text string) string {
	for _, u := range websitePattern.FindAllString(text, -1) {
		lower := strings.ToLower(u)
		if strings.Contains(lower, "linkedin.com") || strings.Contains(lower, "github.com") {
			continue
		}
		return strings.TrimRight(u, ".,;")
	}
	return ""
}

var nameRejectWords = []string{"resume", "cv", "curriculum"}

// ExtractName 从简历文本提取候选人姓名
// 只分析前5行：先用词性标注找2-4个连续专有名词的序列，
// 接受第一个至少两个词且不含resume/cv/curriculum的序列；
// 标注器缺失或无结果时降级到标题大小写启发式
func ExtractName(text string, tagger NameTagger) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	head := strings.Join(lines, "\n")

	if tagger != nil {
		sequences, err := tagger.ProperNounSequences(head)
		if err == nil {
			for _, seq := range sequences {
				name := strings.TrimSpace(strings.Join(seq, " "))
				if len(strings.Fields(name)) >= 2 && !containsRejectWord(name) {
					return name
				}
			}
		}
	}

	return extractNameFallback(text)
}

func containsRejectWord(name string) bool {
	lower := strings.ToLower(name)
	for _, w := range nameRejectWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// extractNameFallback 无词性标注时的启发式：
// 检查前3行，取第一个前至多3个词均为纯字母且标题大小写的行
func extractNameFallback(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 3 {
		lines = lines[:3]
	}

	for _, line := range lines {
		words := strings.Fields(strings.TrimSpace(line))
		if len(words) < 2 {
			continue
		}
		n := len(words)
		if n > 3 {
			n = 3
		}
		ok := true
		for _, w := range words[:n] {
			if !isAlphaTitleCase(w) {
				ok = false
				break
			}
		}
		if ok {
			return strings.Join(words[:n], " ")
		}
	}
	return ""
}

func isAlphaTitleCase(w string) bool {
	if w == "" {
		return false
	}
	for i, r := range w {
		if !unicode.IsLetter(r) {
			return false
		}
		if i == 0 && !unicode.IsUpper(r) {
			return false
		}
		if i > 0 && !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

var streetAddressPattern = regexp.MustCompile(`\d+\s+[A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)*\s+(?:Street|St|Avenue|Ave|Road|Rd|Drive|Dr|Lane|Ln|Boulevard|Blvd)\.?`)

// ExtractAddress 提取街道地址，未找到时返回空串
func ExtractAddress(text string) string {
	return streetAddressPattern.FindString(text)
}
