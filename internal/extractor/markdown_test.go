package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertTextToMarkdown(t *testing.T) {
	input := "--- Page 1 ---\nEXPERIENCE\n• Did stuff\n1. built the api\nplain line"
	expected := "## Page 1\n\n### EXPERIENCE\n\n- Did stuff\n- built the api\nplain line"
	assert.Equal(t, expected, ConvertTextToMarkdown(input),
		"页标记、标题和项目符号行应该分别转成对应的markdown形式")
}

func TestConvertTextToMarkdownBlankCompression(t *testing.T) {
	assert.Equal(t, "第一段\n\n第二段", ConvertTextToMarkdown("第一段\n\n\n\n\n第二段"),
		"连续空行应该压缩为一个空行")
}

func TestConvertTextToMarkdownEmpty(t *testing.T) {
	assert.Empty(t, ConvertTextToMarkdown(""), "空输入应该得到空输出")
}

func TestConvertTextToMarkdownBulletVariants(t *testing.T) {
	md := ConvertTextToMarkdown("- first item\n* second item\n• third item")
	assert.Equal(t, "- first item\n- second item\n- third item", md,
		"三种项目符号应该统一为短横线列表")
}
