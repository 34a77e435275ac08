package extractor

import (
	"testing"

	"resume-agent-go/internal/types"

	"github.com/stretchr/testify/assert"
)

func buildRedactionRecord() *types.ResumeRecord {
	record := types.NewResumeRecord()
	record.ContactInfo = types.ContactInfo{
		Name:     "John Smith",
		Email:    "john.smith@example.com",
		Phone:    "5551234567",
		LinkedIn: "https://linkedin.com/in/johnsmith",
		GitHub:   "https://github.com/johnsmith",
	}
	edu := types.NewEducationItem()
	edu.Degree = "B.Tech"
	edu.Institution = "Stanford University"
	edu.GPA = "9.1/10"
	record.Education = append(record.Education, edu)
	return record
}

func TestRedactEntities(t *testing.T) {
	body := "JOHN SMITH\njohn.smith@example.com | 5551234567\nlinkedin.com/in/johnsmith | github.com/johnsmith\nstanford university - b.tech, GPA 9.1/10\n其余正文保留"

	clean := RedactEntities(body, buildRedactionRecord())

	assert.NotContains(t, clean, "JOHN SMITH", "姓名应该按大小写不敏感删除")
	assert.NotContains(t, clean, "john.smith@example.com", "邮箱应该被精确删除")
	assert.NotContains(t, clean, "5551234567", "电话数字串应该被删除")
	assert.NotContains(t, clean, "linkedin.com/in/johnsmith", "去协议的档案链接变体应该被删除")
	assert.NotContains(t, clean, "github.com/johnsmith")
	assert.NotContains(t, clean, "stanford university", "院校应该按大小写不敏感删除")
	assert.NotContains(t, clean, "b.tech", "学位应该按大小写不敏感删除")
	assert.NotContains(t, clean, "9.1/10", "GPA应该被删除")
	assert.Contains(t, clean, "其余正文保留", "未提取的内容应该原样保留")
}

func TestRedactEntitiesIdempotent(t *testing.T) {
	record := buildRedactionRecord()
	body := "John Smith\njohn.smith@example.com\n正文内容"

	once := RedactEntities(body, record)
	twice := RedactEntities(once, record)
	assert.Equal(t, once, twice, "重复删除应该得到相同结果")
}

func TestRedactEntitiesEmptyRecord(t *testing.T) {
	body := "完整保留的正文\n\n第二段"
	clean := RedactEntities(body, types.NewResumeRecord())
	assert.Equal(t, body, clean, "空记录不应该改动正文")
}
