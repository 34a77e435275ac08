package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTechnologiesWithCue(t *testing.T) {
	techs := ExtractTechnologies("Built with React, Node and MongoDB")
	assert.Equal(t, []string{"React", "Node.js", "MongoDB"}, techs,
		"提示词后的列表应该被切分并规范化")
}

func TestExtractTechnologiesShapeFallback(t *testing.T) {
	techs := ExtractTechnologies("Real-time dashboard telemetry. Python, PostgreSQL, AWS.")
	assert.Equal(t, []string{"AWS", "PostgreSQL", "Python"}, techs,
		"无提示词时应该按形态和已知技术名兜底识别")
}

func TestExtractTechnologiesDedup(t *testing.T) {
	techs := ExtractTechnologies("built with Go, golang and Redis")
	assert.Equal(t, []string{"Go", "Redis"}, techs, "规范化后相同的技术名应该按首次出现去重")
}

func TestCleanTechToken(t *testing.T) {
	assert.Empty(t, cleanTechToken("using"), "停用词应该被拒绝")
	assert.Empty(t, cleanTechToken("latest"), "噪声词应该被拒绝")
	assert.Empty(t, cleanTechToken("3.14"), "纯数字token应该被拒绝")
	assert.Empty(t, cleanTechToken("x"), "单字符token应该被拒绝")
	assert.Equal(t, "Kubernetes", cleanTechToken("k8s"), "常见别名应该映射到规范名")
	assert.Equal(t, "CI/CD", cleanTechToken("ci/cd"), "组合缩写应该映射到规范写法")
	assert.Equal(t, "GRPC", cleanTechToken("GRPC"), "全大写短缩写应该保留原样")
}

func TestExtractProjectURL(t *testing.T) {
	assert.Equal(t, "https://github.com/user/repo",
		ExtractProjectURL("源码见 https://github.com/user/repo."), "URL尾部标点应该被去掉")
	assert.Equal(t, "github.com/user/proj",
		ExtractProjectURL("托管在 github.com/user/proj 上"), "无协议的仓库路径应该被接受")
	assert.Empty(t, ExtractProjectURL("没有链接的描述"))
}

func TestExtractProjectDate(t *testing.T) {
	assert.Equal(t, "2021", ExtractProjectDate("完成于 Jun 2021"), "裸年份优先于月份形式")
	assert.Equal(t, "2019", ExtractProjectDate("2019-2021 期间开发"))
	assert.Empty(t, ExtractProjectDate("长期维护中"))
}
