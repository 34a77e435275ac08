package extractor

import (
	"strings"
	"time"

	"resume-agent-go/internal/types"
)

// Engine 简历结构化提取引擎
// 两条流水线共用一套纯函数提取器：自由文本模式走
// markdown转换+标题锚点，标记模式走\section切分。
// 除姓名标注器外引擎不持有任何状态，可跨文档并发调用
type Engine struct {
	tagger NameTagger
}

// NewEngine 构造提取引擎，tagger可为nil（姓名提取降级到启发式）
func NewEngine(tagger NameTagger) *Engine {
	return &Engine{tagger: tagger}
}

// ParseFreeText 自由文本模式流水线：
// 文本转markdown -> 章节切分 -> 各字段独立提取 ->
// 组装记录 -> 从正文删除已提取实体得到干净视图。
// 单字段提取失败只产生空值，永不中断整个文档
func (e *Engine) ParseFreeText(text string) *types.ParseResult {
	markdown := ConvertTextToMarkdown(text)
	sections := CollectSections(markdown)

	record := types.NewResumeRecord()
	record.Sections = sections

	record.ContactInfo = types.ContactInfo{
		Name:     ExtractName(text, e.tagger),
		Email:    ExtractEmail(text),
		Phone:    ExtractPhone(text),
		Address:  ExtractAddress(text),
		LinkedIn: ExtractLinkedIn(text),
		GitHub:   ExtractGitHub(text),
		Website:  ExtractWebsite(text),
	}

	record.Experience = ExtractExperience(markdown)
	record.Education = ExtractEducation(markdown)
	if cgpa := ExtractCGPA(text); cgpa != "" && len(record.Education) > 0 && record.Education[0].GPA == "" {
		record.Education[0].GPA = cgpa
	}
	record.Projects = extractFreeTextProjects(markdown)
	record.Skills = ExtractSkills(markdown)
	record.Certifications = ExtractCertifications(markdown)
	record.Awards = ExtractAwards(markdown)
	record.Publications = ExtractPublications(markdown)
	record.Languages = ExtractLanguages(markdown)

	record.Metadata[types.MetaSectionCount] = len(sections)
	record.StampExtractedAt(time.Now())

	return &types.ParseResult{
		Record:        record,
		CleanMarkdown: RedactEntities(markdown, record),
		RawText:       text,
	}
}

// extractFreeTextProjects 自由文本模式的项目提取
// 项目章节按空行分块，块首行为项目名，其余为描述，
// 技术栈/URL/日期从整块推导
func extractFreeTextProjects(markdown string) []*types.ProjectItem {
	items := []*types.ProjectItem{}

	body := FindSectionBody(markdown, projectSectionNames)
	if body == "" {
		return items
	}

	for _, block := range strings.Split(body, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		lines := strings.SplitN(block, "\n", 2)

		item := types.NewProjectItem()
		item.Name = strings.TrimSpace(bulletStripPattern.ReplaceAllString(lines[0], ""))
		if item.Name == "" {
			continue
		}
		if len(lines) > 1 {
			item.Description = strings.TrimSpace(lines[1])
		}
		item.Technologies = ExtractTechnologies(block)
		item.URL = ExtractProjectURL(block)
		item.Date = ExtractProjectDate(block)
		items = append(items, item)
	}
	return items
}

// ParseLaTeX 标记模式流水线：
// 去注释 -> \section切分 -> 结构化命令优先、
// 无结构文本兜底的各字段提取 -> 组装记录。
// 技能和平铺列表类提取器复用自由文本实现，
// 章节正文清洗后拼成带###锚点的伪markdown喂给它们
func (e *Engine) ParseLaTeX(src string) *types.ResumeRecord {
	doc := StripLatexComments(src)
	titles, sections := ExtractLatexSections(doc)

	record := types.NewResumeRecord()
	record.Sections = sections

	record.ContactInfo = ExtractLatexContact(doc)
	record.Experience = ExtractLatexExperience(sections)
	record.Education = ExtractLatexEducation(sections, doc)
	record.Projects = ExtractLatexProjects(sections)

	var pseudo strings.Builder
	for _, title := range titles {
		pseudo.WriteString("### " + title + "\n")
		pseudo.WriteString(cleanLatexNoise(sections[title]))
		pseudo.WriteString("\n\n")
	}
	anchored := pseudo.String()

	record.Skills = ExtractSkills(anchored)
	record.Certifications = ExtractCertifications(anchored)
	record.Awards = ExtractAwards(anchored)
	record.Publications = ExtractPublications(anchored)
	record.Languages = ExtractLanguages(anchored)

	record.Metadata = ExtractLatexMetadata(doc, len(titles))
	record.StampExtractedAt(time.Now())
	return record
}
