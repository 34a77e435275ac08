package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEmail(t *testing.T) {
	text := "联系方式\nJohn Smith\njohn.smith@example.com | 其他信息"
	assert.Equal(t, "john.smith@example.com", ExtractEmail(text), "应该提取出第一个合法邮箱")

	assert.Equal(t, "a.b@sub.domain.org", ExtractEmail("备用邮箱 a.b@sub.domain.org 在此"), "带子域名的邮箱应该完整提取")
	assert.Empty(t, ExtractEmail("这段文本里没有任何邮箱地址"), "无邮箱时应该返回空串")
}

func TestExtractPhone(t *testing.T) {
	phone := ExtractPhone("Phone: (555) 123-4567")
	assert.Equal(t, "5551234567", phone, "美式格式电话应该返回拼接后的捕获组数字")

	assert.Equal(t, "9876543210", ExtractPhone("手机 9876543210"), "裸10位数字应该被接受")
	assert.Empty(t, ExtractPhone("分机号 12345"), "数字位数不足10位时应该拒绝")
	assert.Empty(t, ExtractPhone("纯文字内容"), "无电话时应该返回空串")
}

func TestExtractLinkedIn(t *testing.T) {
	assert.Equal(t, "https://www.linkedin.com/in/john-smith/",
		ExtractLinkedIn("主页 https://www.linkedin.com/in/john-smith/ 见上"),
		"完整URL应该原样返回")

	assert.Equal(t, "https://linkedin.com/in/johnsmith",
		ExtractLinkedIn("LinkedIn: linkedin.com/in/johnsmith"),
		"裸域名形式应该补全https前缀")

	assert.Equal(t, "https://linkedin.com/in/jsmith88",
		ExtractLinkedIn("LinkedIn: jsmith88"),
		"标签加用户名形式应该合成规范URL")

	assert.Empty(t, ExtractLinkedIn("LinkedIn: ab"), "用户名不足3个字符时不应该合成URL")
}

func TestExtractGitHub(t *testing.T) {
	assert.Equal(t, "https://github.com/johnsmith",
		ExtractGitHub("代码仓库 github.com/johnsmith"),
		"裸域名形式应该补全https前缀")

	assert.Equal(t, "https://github.com/jsmith88",
		ExtractGitHub("GitHub - jsmith88"),
		"标签加用户名形式应该合成规范URL")
}

func TestExtractWebsite(t *testing.T) {
	text := "https://linkedin.com/in/johnsmith https://github.com/johnsmith https://johnsmith.dev/blog."
	assert.Equal(t, "https://johnsmith.dev/blog", ExtractWebsite(text),
		"应该跳过LinkedIn和GitHub链接并去掉尾部标点")

	assert.Empty(t, ExtractWebsite("只有 github.com/johnsmith 没有别的链接"), "只有档案链接时应该返回空串")
}

// fixedTagger 返回预设专有名词序列的标注器替身
type fixedTagger struct {
	sequences [][]string
	err       error
}

func (f *fixedTagger) ProperNounSequences(text string) ([][]string, error) {
	return f.sequences, f.err
}

func TestExtractNameWithTagger(t *testing.T) {
	text := "John Smith\nSoftware Engineer\njohn@example.com"

	tagger := &fixedTagger{sequences: [][]string{{"John", "Smith"}}}
	assert.Equal(t, "John Smith", ExtractName(text, tagger), "应该接受标注器给出的双词专有名词序列")

	rejectTagger := &fixedTagger{sequences: [][]string{{"Curriculum", "Vitae"}, {"Jane", "Doe"}}}
	assert.Equal(t, "Jane Doe", ExtractName(text, rejectTagger), "含curriculum的序列应该被跳过")

	singleTagger := &fixedTagger{sequences: [][]string{{"Smith"}}}
	assert.Equal(t, "John Smith", ExtractName(text, singleTagger), "单词序列不足以成为姓名，应该降级到启发式")
}

func TestExtractNameFallback(t *testing.T) {
	assert.Equal(t, "John Smith", ExtractName("John Smith\n一些内容", nil),
		"无标注器时应该用标题大小写启发式取首行")

	assert.Equal(t, "Mary Jane Watson", ExtractName("Mary Jane Watson Parker\n内容", nil),
		"启发式最多取前3个词")

	assert.Empty(t, ExtractName("RESUME\n2023\n第1页", nil), "前3行都不像姓名时应该返回空串")
}

func TestExtractAddress(t *testing.T) {
	addr := ExtractAddress("住址 123 Main Street, Springfield")
	require.NotEmpty(t, addr, "应该识别出街道地址")
	assert.Equal(t, "123 Main Street", addr, "地址应该截止到街道类型词")

	assert.Empty(t, ExtractAddress("没有门牌号的普通文本"), "无街道地址时应该返回空串")
}
