package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnstructuredExperience(t *testing.T) {
	text := "Software Engineer at Google\nJun 2021 - Present\nBuilt scalable services\nLed a team of 5"

	item := ParseUnstructuredExperience(text)
	assert.Equal(t, "Software Engineer", item.Title, "首行at之前应该是职位")
	assert.Equal(t, "Google", item.Company, "首行at之后应该是公司")
	assert.Equal(t, "Jun 2021", item.StartDate, "应该从时间段行取开始日期")
	assert.Equal(t, "Present", item.EndDate, "结束token应该保留原文写法")
	assert.Equal(t, []string{"Built scalable services", "Led a team of 5"}, item.Description,
		"描述应该包含除时间段行外的后续各行")
}

func TestParseUnstructuredExperienceDashForm(t *testing.T) {
	item := ParseUnstructuredExperience("Data Analyst - Acme Corp\n2019 - 2021")
	assert.Equal(t, "Data Analyst", item.Title, "无at时应该按短横线切分")
	assert.Equal(t, "Acme Corp", item.Company)
	assert.Equal(t, "2019", item.StartDate)
	assert.Equal(t, "2021", item.EndDate)
	assert.Empty(t, item.Description, "时间段行不应该进入描述")
}

func TestParseUnstructuredExperienceTitleOnly(t *testing.T) {
	item := ParseUnstructuredExperience("Freelancer")
	assert.Equal(t, "Freelancer", item.Title, "无法切分时整行应该作为职位")
	assert.Empty(t, item.Company)
	require.NotNil(t, item.Description, "描述列表应该初始化为空切片而不是nil")
}

func TestExtractExperience(t *testing.T) {
	markdown := "### Experience\nSoftware Engineer at Google\nJun 2021 - Dec 2022\ndid things\n\nIntern at StartupX\n2020 - 2021\n\n### Education\nMIT"

	items := ExtractExperience(markdown)
	require.Len(t, items, 2, "空行分隔的两个块应该各产出一条经历")
	assert.Equal(t, "Google", items[0].Company)
	assert.Equal(t, "StartupX", items[1].Company)
	assert.Equal(t, "2020", items[1].StartDate)
}

func TestExtractExperienceNoSection(t *testing.T) {
	assert.Empty(t, ExtractExperience("### Skills\nGo"), "无经历章节时应该返回空列表")
}
