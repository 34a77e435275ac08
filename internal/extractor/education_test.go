package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEducation(t *testing.T) {
	markdown := "### Education\nStanford University\nB.Tech in Computer Science, 2018 - 2022\n\n### Skills\nGo"

	items := ExtractEducation(markdown)
	require.Len(t, items, 1, "应该提取出一条教育经历")
	assert.Equal(t, "B.Tech", items[0].Degree, "缩写学位应该优先于完整拼写被匹配")
	assert.Equal(t, "Stanford University", items[0].Institution, "学位前无文本时院校应该回退到上一行")
}

func TestExtractEducationInline(t *testing.T) {
	markdown := "### Education\nMIT - Bachelor of Science in Physics"

	items := ExtractEducation(markdown)
	require.Len(t, items, 1)
	assert.Equal(t, "Bachelor of Science in Physics", items[0].Degree, "完整拼写学位应该整体捕获")
	assert.Equal(t, "MIT", items[0].Institution, "学位前的文本应该作为院校名")
}

func TestExtractEducationNoSection(t *testing.T) {
	items := ExtractEducation("### Experience\nEngineer at Acme")
	assert.Empty(t, items, "无教育章节时应该返回空列表")
}

func TestExtractCGPA(t *testing.T) {
	assert.Equal(t, "9.2/10", ExtractCGPA("CGPA: 9.2/10"), "带分母的标注值应该完整返回")
	assert.Equal(t, "3.8", ExtractCGPA("GPA: 3.8"), "裸标注值应该被接受")
	assert.Equal(t, "8.5", ExtractCGPA("成绩 8.5/10 排名前十"), "无标注的x/10形式应该返回分子部分")
	assert.Empty(t, ExtractCGPA("得分 11/10 属于异常输入"), "分子超出10的值应该被拒绝")
	assert.Empty(t, ExtractCGPA("这里没有成绩信息"), "无GPA时应该返回空串")
}
