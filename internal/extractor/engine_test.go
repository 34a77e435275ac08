package extractor

import (
	"testing"

	"resume-agent-go/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const freeTextResume = `John Smith
john.smith@example.com | (555) 123-4567 | linkedin.com/in/johnsmith

EXPERIENCE
Software Engineer at Acme Corp
Jun 2021 - Present
• Built data pipelines in Go

EDUCATION
Stanford University
B.Sc in Computer Science, 2017 - 2021
GPA: 3.8/4

SKILLS
Languages: Go, Python`

func TestEngineParseFreeText(t *testing.T) {
	engine := NewEngine(nil)

	result := engine.ParseFreeText(freeTextResume)
	require.NotNil(t, result)
	record := result.Record
	require.NotNil(t, record)

	// 联系方式
	assert.Equal(t, "John Smith", record.ContactInfo.Name, "应该从首行提取姓名")
	assert.Equal(t, "john.smith@example.com", record.ContactInfo.Email)
	assert.Equal(t, "5551234567", record.ContactInfo.Phone)
	assert.Equal(t, "https://linkedin.com/in/johnsmith", record.ContactInfo.LinkedIn)

	// 工作经历
	require.Len(t, record.Experience, 1, "应该提取出一条工作经历")
	exp := record.Experience[0]
	assert.Equal(t, "Software Engineer", exp.Title)
	assert.Equal(t, "Acme Corp", exp.Company)
	assert.Equal(t, "Jun 2021", exp.StartDate)
	assert.Equal(t, "Present", exp.EndDate)
	require.NotEmpty(t, exp.Description)
	assert.Contains(t, exp.Description[0], "Built data pipelines in Go")

	// 教育经历，章节内无GPA标注时从全文回填
	require.Len(t, record.Education, 1)
	assert.Equal(t, "B.Sc", record.Education[0].Degree)
	assert.Equal(t, "Stanford University", record.Education[0].Institution)
	assert.Equal(t, "3.8/4", record.Education[0].GPA)

	// 技能
	assert.Equal(t, []string{"Go", "Python"}, record.Skills["Languages"])

	// 章节映射与元数据
	require.Len(t, record.Sections, 3, "三个大写标题应该各成一个章节")
	assert.Contains(t, record.Sections, "EXPERIENCE")
	assert.Equal(t, 3, record.Metadata[types.MetaSectionCount])
	assert.NotEmpty(t, record.Metadata[types.MetaExtractedAt], "应该盖上提取时间戳")

	// 干净视图：已提取实体不应该残留
	assert.NotContains(t, result.CleanMarkdown, "John Smith")
	assert.NotContains(t, result.CleanMarkdown, "john.smith@example.com")
	assert.NotContains(t, result.CleanMarkdown, "linkedin.com/in/johnsmith")
	assert.NotContains(t, result.CleanMarkdown, "Stanford University")
	assert.Contains(t, result.CleanMarkdown, "data pipelines", "未提取的描述内容应该保留")
	assert.Equal(t, freeTextResume, result.RawText, "原始文本应该原样带回")
}

const latexResume = `\documentclass{article}
\usepackage{geometry, hyperref}
\name{Jane Doe}
% 个人简历
\begin{document}
\section{Experience}
\item Software Engineer at InnoTech
Jan 2020 - Dec 2022
Shipped the billing platform
\section{Projects}
\item \textbf{Tracker} Built a habit tracker using Go, Redis and Docker. See https://github.com/janedoe/tracker 2023
\section{Skills}
Languages: Go, Python
\end{document}`

func TestEngineParseLaTeX(t *testing.T) {
	engine := NewEngine(nil)

	record := engine.ParseLaTeX(latexResume)
	require.NotNil(t, record)

	assert.Equal(t, "Jane Doe", record.ContactInfo.Name, "姓名应该取name命令参数")
	assert.Equal(t, "https://github.com/janedoe/tracker", record.ContactInfo.GitHub)

	require.Len(t, record.Experience, 1)
	assert.Equal(t, "Software Engineer", record.Experience[0].Title)
	assert.Equal(t, "InnoTech", record.Experience[0].Company)
	assert.Equal(t, "Jan 2020", record.Experience[0].StartDate)
	assert.Equal(t, "Dec 2022", record.Experience[0].EndDate)

	require.Len(t, record.Projects, 1)
	project := record.Projects[0]
	assert.Equal(t, "Tracker", project.Name)
	assert.Equal(t, []string{"Go", "Redis", "Docker"}, project.Technologies)
	assert.Equal(t, "https://github.com/janedoe/tracker", project.URL)
	assert.Equal(t, "2023", project.Date)

	assert.Equal(t, []string{"Go", "Python"}, record.Skills["Languages"], "技能提取应该在伪markdown锚点上工作")
	assert.Empty(t, record.Education, "无教育信息时不应该凭空产出条目")

	assert.Equal(t, "article", record.Metadata[types.MetaDocumentClass])
	assert.Equal(t, []string{"geometry", "hyperref"}, record.Metadata[types.MetaPackages])
	assert.Equal(t, 3, record.Metadata[types.MetaSectionCount])

	require.Len(t, record.Sections, 3, "三个section命令应该各成一个章节")
	assert.Contains(t, record.Sections, "Experience")
	assert.Contains(t, record.Sections, "Projects")
	assert.Contains(t, record.Sections, "Skills")
}

func TestEngineParseFreeTextPartialFailure(t *testing.T) {
	engine := NewEngine(nil)

	// 只有技能章节，其余字段提取不到任何内容
	result := engine.ParseFreeText("SKILLS\nGo, Docker")
	require.NotNil(t, result)
	record := result.Record

	assert.Empty(t, record.ContactInfo.Email, "提取不到的字段应该是空值而不是报错")
	assert.Empty(t, record.Experience)
	assert.Empty(t, record.Education)
	assert.NotEmpty(t, record.Skills, "能提取到的字段应该正常产出")
}
