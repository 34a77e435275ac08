package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripLatexComments(t *testing.T) {
	src := "第一行 % 注释\n\\documentclass{article} % 另一条注释\ntax rate 5\\% applies"
	out := StripLatexComments(src)
	assert.NotContains(t, out, "注释", "行尾注释应该被删除")
	assert.Contains(t, out, "5\\%", "转义的百分号应该保留")
	assert.Contains(t, out, "\\documentclass{article}", "注释前的内容应该保留")
}

func TestExtractLatexSections(t *testing.T) {
	src := `\section{Experience}
条目一
\section*{Skills}
Go
\section{Experience}
条目二`

	titles, sections := ExtractLatexSections(src)
	require.Equal(t, []string{"Experience", "Skills"}, titles, "标题应该按出现顺序排列且重名只出现一次")
	assert.Contains(t, sections["Experience"], "条目一", "重名章节的正文应该合并")
	assert.Contains(t, sections["Experience"], "条目二", "重名章节的正文应该合并")
	assert.Equal(t, "Go", sections["Skills"], "带星号的section命令也应该被识别")
}

func TestFindLatexSectionBody(t *testing.T) {
	sections := map[string]string{"WORK EXPERIENCE": "正文A", "Education": "正文B"}

	assert.Equal(t, "正文A", FindLatexSectionBody(sections, experienceSectionNames),
		"章节名匹配应该忽略大小写")
	assert.Equal(t, "正文B", FindLatexSectionBody(sections, educationSectionNames))
	assert.Empty(t, FindLatexSectionBody(sections, projectSectionNames), "未命中时应该返回空串")
}

func TestCleanLatexNoise(t *testing.T) {
	assert.Equal(t, "Go & more\nrest", cleanLatexNoise(`\textbf{Go} \& more\\[2pt]rest`),
		"样式命令应该保留参数文本，换行命令应该转为换行")
	assert.Equal(t, "点此访问", cleanLatexNoise(`\href{https://example.com}{点此访问}`),
		"href应该保留链接文字")
	assert.Equal(t, "100% 完成", cleanLatexNoise(`100\% 完成`), "转义字符应该还原")
}

func TestExtractLatexExperienceItems(t *testing.T) {
	sections := map[string]string{
		"Experience": `\item Software Engineer at InnoTech
Jan 2020 - Dec 2022
Shipped the billing platform
\item Intern at StartupX
2019 - 2020`,
	}

	items := ExtractLatexExperience(sections)
	require.Len(t, items, 2, "每个item标记应该产出一条经历")
	assert.Equal(t, "Software Engineer", items[0].Title)
	assert.Equal(t, "InnoTech", items[0].Company)
	assert.Equal(t, "Jan 2020", items[0].StartDate)
	assert.Equal(t, "Dec 2022", items[0].EndDate)
	assert.Equal(t, []string{"Shipped the billing platform"}, items[0].Description)
	assert.Equal(t, "StartupX", items[1].Company)
}

func TestExtractLatexExperiencePositionCommand(t *testing.T) {
	sections := map[string]string{
		"Experience": `\position{Backend Engineer}{CloudWorks}
2021 - 2023, Remote, Canada
Maintained the payment gateway`,
	}

	items := ExtractLatexExperience(sections)
	require.Len(t, items, 1, "position命令应该产出一条经历")
	assert.Equal(t, "Backend Engineer", items[0].Title)
	assert.Equal(t, "CloudWorks", items[0].Company)
	assert.Equal(t, "2021", items[0].StartDate)
	assert.Equal(t, "2023", items[0].EndDate)
	assert.Equal(t, "Remote, Canada", items[0].Location, "正文中的地点形式应该被识别")
}

func TestExtractLatexEducationStructured(t *testing.T) {
	doc := `\education{B.Tech in CS}{Stanford University}
\education{M.Sc in AI}{MIT}`

	items := ExtractLatexEducation(map[string]string{}, doc)
	require.Len(t, items, 2, "每个education命令应该产出一条经历")
	assert.Equal(t, "B.Tech in CS", items[0].Degree)
	assert.Equal(t, "Stanford University", items[0].Institution)
	assert.Equal(t, "MIT", items[1].Institution)
}

func TestExtractLatexEducationFallback(t *testing.T) {
	sections := map[string]string{
		"Education": `B.Tech in Computer Science, GPA: 9.1/10, 2018 2022`,
	}

	items := ExtractLatexEducation(sections, "")
	require.Len(t, items, 1, "无结构化命令时应该按学位关键词兜底")
	assert.Equal(t, "B.Tech", items[0].Degree)
	assert.Equal(t, "9.1/10", items[0].GPA)
	assert.Equal(t, "2022", items[0].GraduationDate, "毕业日期应该取片段中最后一个日期token")
}

func TestExtractLatexProjects(t *testing.T) {
	sections := map[string]string{
		"Projects": `\item \textbf{Tracker} Built a habit tracker using Go, Redis and Docker. See https://github.com/janedoe/tracker 2023`,
	}

	items := ExtractLatexProjects(sections)
	require.Len(t, items, 1)
	assert.Equal(t, "Tracker", items[0].Name, "加粗条目标题应该作为项目名")
	assert.Equal(t, []string{"Go", "Redis", "Docker"}, items[0].Technologies)
	assert.Equal(t, "https://github.com/janedoe/tracker", items[0].URL)
	assert.Equal(t, "2023", items[0].Date)
}

func TestExtractLatexContact(t *testing.T) {
	doc := `\name{Jane Doe}
\address{42 Oak Avenue}
jane@example.com
https://linkedin.com/in/janedoe
https://github.com/janedoe
https://janedoe.dev`

	contact := ExtractLatexContact(doc)
	assert.Equal(t, "Jane Doe", contact.Name, "姓名应该取name命令参数")
	assert.Equal(t, "42 Oak Avenue", contact.Address, "地址应该优先取address命令参数")
	assert.Equal(t, "jane@example.com", contact.Email)
	assert.Equal(t, "https://linkedin.com/in/janedoe", contact.LinkedIn)
	assert.Equal(t, "https://github.com/janedoe", contact.GitHub)
	assert.Equal(t, "https://janedoe.dev", contact.Website, "非档案链接应该归入个人网站")
}

func TestExtractLatexMetadata(t *testing.T) {
	doc := `\documentclass[11pt]{article}
\usepackage{geometry, hyperref}
\usepackage{hyperref}`

	meta := ExtractLatexMetadata(doc, 3)
	assert.Equal(t, "article", meta["document_class"])
	assert.Equal(t, []string{"geometry", "hyperref"}, meta["packages"], "宏包应该按首次出现去重")
	assert.Equal(t, 3, meta["section_count"])
}
