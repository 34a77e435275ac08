package extractor

import (
	"regexp"
	"strings"

	"resume-agent-go/internal/types"
)

// 未转义的%起至行尾为注释，\%保留
var latexCommentPattern = regexp.MustCompile(`(?m)(^|[^\\])%.*$`)

// StripLatexComments 删除LaTeX源码中的行尾注释
func StripLatexComments(src string) string {
	return latexCommentPattern.ReplaceAllString(src, "$1")
}

var latexSectionPattern = regexp.MustCompile(`(?i)\\section\*?\{([^}]*)\}`)

// ExtractLatexSections 按\section命令切分文档
// 返回按出现顺序排列的章节标题，以及标题到正文的映射；
// 正文为命令之后直到下一个\section或文档结尾的原始片段，
// 重名章节的正文拼接在首个标题名下
func ExtractLatexSections(src string) ([]string, map[string]string) {
	titles := []string{}
	sections := map[string]string{}

	matches := latexSectionPattern.FindAllStringSubmatchIndex(src, -1)
	for i, m := range matches {
		title := strings.TrimSpace(src[m[2]:m[3]])
		if title == "" {
			continue
		}
		end := len(src)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		body := strings.TrimSpace(src[m[1]:end])

		if _, dup := sections[title]; dup {
			sections[title] = sections[title] + "\n" + body
			continue
		}
		titles = append(titles, title)
		sections[title] = body
	}
	return titles, sections
}

// FindLatexSectionBody 在章节映射中按同义词组查找首个命中的正文
func FindLatexSectionBody(sections map[string]string, names []string) string {
	for _, name := range names {
		for title, body := range sections {
			if strings.EqualFold(strings.TrimSpace(title), name) {
				return body
			}
		}
	}
	return ""
}

// FindLatexSectionBodies 取同义词组命中的全部章节正文（并集）
func FindLatexSectionBodies(sections map[string]string, names []string) []string {
	bodies := []string{}
	matched := map[string]struct{}{}
	for _, name := range names {
		for title, body := range sections {
			if _, dup := matched[title]; dup {
				continue
			}
			if strings.EqualFold(strings.TrimSpace(title), name) {
				matched[title] = struct{}{}
				bodies = append(bodies, body)
			}
		}
	}
	return bodies
}

var (
	latexStylePattern   = regexp.MustCompile(`\\(?:textbf|textit|texttt|underline|emph|mbox)\{([^}]*)\}`)
	latexHrefPattern    = regexp.MustCompile(`\\href\{[^}]*\}\{([^}]*)\}`)
	latexCommandPattern = regexp.MustCompile(`\\[a-zA-Z]+\*?(?:\[[^\]]*\])?`)
	latexLineBreak      = regexp.MustCompile(`\\\\(?:\[[^\]]*\])?`)
	multiSpacePattern   = regexp.MustCompile(`[ \t]{2,}`)
)

// cleanLatexNoise 去掉片段中的排版噪声：
// 样式命令保留其参数文本，\href保留链接文字，
// 换行命令转为真实换行，其余反斜杠命令和花括号整体剔除
func cleanLatexNoise(text string) string {
	text = latexHrefPattern.ReplaceAllString(text, "$1")
	text = latexStylePattern.ReplaceAllString(text, "$1")
	text = latexLineBreak.ReplaceAllString(text, "\n")
	text = latexCommandPattern.ReplaceAllString(text, "")
	text = strings.NewReplacer("{", "", "}", "", "~", " ", `\&`, "&", `\%`, "%", `\$`, "$").Replace(text)
	text = multiSpacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

var (
	latexItemPattern     = regexp.MustCompile(`(?i)\\item\b`)
	latexPositionPattern = regexp.MustCompile(`(?i)\\position\{([^}]*)\}\{([^}]*)\}`)
	latexJobPattern      = regexp.MustCompile(`(?i)\\job\{([^}]*)\}\{([^}]*)\}`)
)

// ExtractLatexExperience 标记模式的工作经历提取
// 依次尝试\item通用条目、\position{}{}、\job{}{}三种条目形态，
// 首个命中的形态生效；条目正文取到下一个同类标记为止。
// 职位和公司都为空的条目丢弃
func ExtractLatexExperience(sections map[string]string) []*types.ExperienceItem {
	items := []*types.ExperienceItem{}

	body := FindLatexSectionBody(sections, experienceSectionNames)
	if body == "" {
		return items
	}

	if marks := latexItemPattern.FindAllStringIndex(body, -1); len(marks) > 0 {
		for i, m := range marks {
			end := len(body)
			if i+1 < len(marks) {
				end = marks[i+1][0]
			}
			item := ParseUnstructuredExperience(cleanLatexNoise(body[m[1]:end]))
			if item.Title == "" && item.Company == "" {
				continue
			}
			items = append(items, item)
		}
		return items
	}

	for _, p := range []*regexp.Regexp{latexPositionPattern, latexJobPattern} {
		marks := p.FindAllStringSubmatchIndex(body, -1)
		if len(marks) == 0 {
			continue
		}
		for i, m := range marks {
			item := types.NewExperienceItem()
			item.Title = strings.TrimSpace(cleanLatexNoise(body[m[2]:m[3]]))
			item.Company = strings.TrimSpace(cleanLatexNoise(body[m[4]:m[5]]))
			end := len(body)
			if i+1 < len(marks) {
				end = marks[i+1][0]
			}
			parseExperienceDetail(item, cleanLatexNoise(body[m[1]:end]))
			if item.Title == "" && item.Company == "" {
				continue
			}
			items = append(items, item)
		}
		return items
	}
	return items
}

var (
	latexEducationPattern = regexp.MustCompile(`(?i)\\education\{([^}]*)\}\{([^}]*)\}`)
	// 裸学位关键词起至换行命令的片段作为兜底
	latexDegreeSpanPattern = regexp.MustCompile(
		`(?i)(?:B\.?\s?(?:E|Tech|Sc|A|S|C\.?A)|M\.?\s?(?:E|Tech|Sc|A|S|B\.?A|C\.?A)|Ph\.?D|Bachelor|Master|Associate|Doctorate)[^\\]*`)
	latexGPAPattern       = regexp.MustCompile(`(?i)\b(?:C?GPA)\s*[:：]?\s*(\d+(?:\.\d+)?(?:\s*/\s*\d+(?:\.\d+)?)?)`)
	latexGradDatePattern  = regexp.MustCompile(`(?i)\b(?:` + monthAlt + `\s+)?(?:19|20)\d{2}\b`)
)

// ExtractLatexEducation 标记模式的教育经历提取
// 先尝试\education{学位}{院校}结构化命令；一个都没有时
// 退回到扫描裸学位关键词片段：学位按关键词表取，
// GPA按"GPA: 数值"取，毕业日期取片段中最后出现的日期token
func ExtractLatexEducation(sections map[string]string, doc string) []*types.EducationItem {
	items := []*types.EducationItem{}

	structured := latexEducationPattern.FindAllStringSubmatch(doc, -1)
	if len(structured) > 0 {
		for _, m := range structured {
			item := types.NewEducationItem()
			item.Degree = strings.TrimSpace(cleanLatexNoise(m[1]))
			item.Institution = strings.TrimSpace(cleanLatexNoise(m[2]))
			if item.Degree == "" && item.Institution == "" {
				continue
			}
			items = append(items, item)
		}
		return items
	}

	scope := FindLatexSectionBody(sections, educationSectionNames)
	if scope == "" {
		scope = doc
	}
	for _, span := range latexDegreeSpanPattern.FindAllString(scope, -1) {
		span = cleanLatexNoise(span)
		item := types.NewEducationItem()
		for _, p := range degreePatterns {
			if m := p.FindString(span); m != "" {
				item.Degree = strings.TrimSpace(m)
				break
			}
		}
		if item.Degree == "" {
			continue
		}
		if m := latexGPAPattern.FindStringSubmatch(span); m != nil {
			item.GPA = strings.TrimSpace(m[1])
		}
		// 学位行通常先写入学日期后写毕业日期，取最后一个
		if dates := latexGradDatePattern.FindAllString(span, -1); len(dates) > 0 {
			item.GraduationDate = dates[len(dates)-1]
		}
		items = append(items, item)
	}
	return items
}

var (
	latexProjectPattern    = regexp.MustCompile(`(?i)\\project\{([^}]*)\}`)
	latexItemBoldPattern   = regexp.MustCompile(`(?i)\\item\s*\\textbf\{([^}]*)\}`)
	latexSubsectionPattern = regexp.MustCompile(`(?i)\\subsection\*?\{([^}]*)\}`)
	latexBoldTitlePattern  = regexp.MustCompile(`(?i)\\textbf\{([^}]*)\}`)
)

// ExtractLatexProjects 标记模式的项目提取
// 依次尝试\project{}、\item \textbf{}、\subsection{}、裸\textbf{}
// 四种标题形态，首个命中的形态生效；正文取到下一个同类标记，
// 技术栈、URL和日期从清洗后的正文推导
func ExtractLatexProjects(sections map[string]string) []*types.ProjectItem {
	items := []*types.ProjectItem{}

	body := FindLatexSectionBody(sections, projectSectionNames)
	if body == "" {
		return items
	}

	for _, p := range []*regexp.Regexp{
		latexProjectPattern, latexItemBoldPattern, latexSubsectionPattern, latexBoldTitlePattern,
	} {
		marks := p.FindAllStringSubmatchIndex(body, -1)
		if len(marks) == 0 {
			continue
		}
		for i, m := range marks {
			item := types.NewProjectItem()
			item.Name = strings.TrimSpace(cleanLatexNoise(body[m[2]:m[3]]))
			if item.Name == "" {
				continue
			}
			end := len(body)
			if i+1 < len(marks) {
				end = marks[i+1][0]
			}
			raw := body[m[1]:end]
			item.Description = cleanLatexNoise(raw)
			item.Technologies = ExtractTechnologies(raw)
			item.URL = ExtractProjectURL(raw)
			item.Date = ExtractProjectDate(raw)
			items = append(items, item)
		}
		return items
	}
	return items
}

var (
	latexNamePattern    = regexp.MustCompile(`(?i)\\(?:name|author)\{([^}]*)\}`)
	latexAddressPattern = regexp.MustCompile(`(?i)\\(?:address|location)\{([^}]*)\}`)
	genericURLPattern   = regexp.MustCompile(`(?i)https?://[^\s{}\\]+`)
)

// ExtractLatexContact 标记模式的联系方式提取
// 姓名取\name或\author命令参数；email/电话沿用全局正则；
// URL按域名子串区分linkedin/github/个人网站；
// 地址优先取\address或\location命令，否则退回街道地址正则
func ExtractLatexContact(doc string) types.ContactInfo {
	contact := types.ContactInfo{}

	if m := latexNamePattern.FindStringSubmatch(doc); m != nil {
		contact.Name = strings.TrimSpace(cleanLatexNoise(m[1]))
	}
	contact.Email = ExtractEmail(doc)
	contact.Phone = ExtractPhone(doc)

	for _, url := range genericURLPattern.FindAllString(doc, -1) {
		url = strings.TrimRight(url, ".,;}")
		switch {
		case strings.Contains(url, "linkedin.com") && contact.LinkedIn == "":
			contact.LinkedIn = url
		case strings.Contains(url, "github.com") && contact.GitHub == "":
			contact.GitHub = url
		case contact.Website == "":
			contact.Website = url
		}
	}

	if m := latexAddressPattern.FindStringSubmatch(doc); m != nil {
		contact.Address = strings.TrimSpace(cleanLatexNoise(m[1]))
	} else {
		contact.Address = ExtractAddress(doc)
	}
	return contact
}

var (
	latexDocClassPattern = regexp.MustCompile(`(?i)\\documentclass(?:\[[^\]]*\])?\{([^}]*)\}`)
	latexPackagePattern  = regexp.MustCompile(`(?i)\\usepackage(?:\[[^\]]*\])?\{([^}]*)\}`)
)

// ExtractLatexMetadata 文档元信息：文档类、引用宏包集合、章节数
func ExtractLatexMetadata(doc string, sectionCount int) map[string]interface{} {
	meta := map[string]interface{}{}

	if m := latexDocClassPattern.FindStringSubmatch(doc); m != nil {
		meta[types.MetaDocumentClass] = strings.TrimSpace(m[1])
	}

	packages := []string{}
	seen := map[string]struct{}{}
	for _, m := range latexPackagePattern.FindAllStringSubmatch(doc, -1) {
		for _, name := range strings.Split(m[1], ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			packages = append(packages, name)
		}
	}
	if len(packages) > 0 {
		meta[types.MetaPackages] = packages
	}
	meta[types.MetaSectionCount] = sectionCount
	return meta
}
