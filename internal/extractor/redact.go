package extractor

import (
	"regexp"
	"strings"

	"resume-agent-go/internal/types"
)

var repeatedSpacePattern = regexp.MustCompile(` {2,}`)

// RedactEntities 从转换后的正文中删除已提取的实体值
// 姓名/学位/院校/GPA按大小写不敏感删除，email精确删除，
// 电话删除原串和纯数字两种形式，linkedin/github删除完整URL、
// 去协议和裸路径三种形式。纯字符串删除，不做二次解析，
// 实体串在文档其他位置复现时可能误删或漏删
func RedactEntities(body string, record *types.ResumeRecord) string {
	for _, v := range collectInsensitiveValues(record) {
		body = deleteInsensitive(body, v)
	}
	for _, v := range collectExactValues(record) {
		body = strings.ReplaceAll(body, v, "")
	}

	body = excessBlankLines.ReplaceAllString(body, "\n\n")
	body = repeatedSpacePattern.ReplaceAllString(body, " ")
	return strings.TrimSpace(body)
}

func collectInsensitiveValues(record *types.ResumeRecord) []string {
	values := []string{record.ContactInfo.Name}
	for _, edu := range record.Education {
		values = append(values, edu.Degree, edu.Institution, edu.GPA)
	}
	out := values[:0]
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func collectExactValues(record *types.ResumeRecord) []string {
	values := []string{}
	contact := record.ContactInfo

	if contact.Email != "" {
		values = append(values, contact.Email)
	}
	if contact.Phone != "" {
		values = append(values, contact.Phone)
		if digits := nonDigitPattern.ReplaceAllString(contact.Phone, ""); digits != contact.Phone {
			values = append(values, digits)
		}
	}
	values = append(values, profileURLVariants(contact.LinkedIn)...)
	values = append(values, profileURLVariants(contact.GitHub)...)
	return values
}

// profileURLVariants 生成档案URL的删除变体：
// 完整URL、去协议形式、去域名的裸路径
func profileURLVariants(url string) []string {
	if url == "" {
		return nil
	}
	variants := []string{url}

	stripped := strings.TrimPrefix(strings.TrimPrefix(url, "https://"), "http://")
	if stripped != url {
		variants = append(variants, stripped)
	}
	if idx := strings.Index(stripped, "/"); idx > 0 && idx+1 < len(stripped) {
		variants = append(variants, stripped[idx+1:])
	}
	return variants
}

func deleteInsensitive(body, value string) string {
	p, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(value))
	if err != nil {
		return strings.ReplaceAll(body, value, "")
	}
	return p.ReplaceAllString(body, "")
}
