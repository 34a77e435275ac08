package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedChatModel 按脚本依次返回预设响应的模型替身
type scriptedChatModel struct {
	responses []*schema.Message
	errs      []error
	calls     int
	lastInput []*schema.Message
}

func (s *scriptedChatModel) Generate(ctx context.Context, messages []*schema.Message, options ...model.Option) (*schema.Message, error) {
	idx := s.calls
	s.calls++
	s.lastInput = messages
	var err error
	if idx < len(s.errs) {
		err = s.errs[idx]
	}
	if err != nil {
		return nil, err
	}
	if idx < len(s.responses) {
		return s.responses[idx], nil
	}
	return nil, errors.New("脚本已耗尽")
}

func (s *scriptedChatModel) Stream(ctx context.Context, messages []*schema.Message, options ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("未实现")
}

func (s *scriptedChatModel) BindTools(tools []*schema.ToolInfo) error {
	return nil
}

func assistantMessage(content string) *schema.Message {
	return &schema.Message{Role: schema.Assistant, Content: content}
}

func TestNewResumeOptimizer(t *testing.T) {
	_, err := NewResumeOptimizer(nil)
	require.Error(t, err, "模型为空时应该拒绝创建")

	optimizer, err := NewResumeOptimizer(&scriptedChatModel{})
	require.NoError(t, err)
	require.NotNil(t, optimizer)
	assert.Equal(t, 2, optimizer.maxRetries, "默认重试次数应为2")
	assert.Equal(t, 2*time.Second, optimizer.retryWait, "默认重试间隔应为2秒")
}

func TestOptimizeSuccess(t *testing.T) {
	chat := &scriptedChatModel{responses: []*schema.Message{assistantMessage("# 优化后的简历\n更有力的描述")}}
	optimizer, err := NewResumeOptimizer(chat)
	require.NoError(t, err)

	out, err := optimizer.Optimize(context.Background(), "# 原始简历", "后端工程师")
	require.NoError(t, err)
	assert.Equal(t, "# 优化后的简历\n更有力的描述", out)

	require.Len(t, chat.lastInput, 2, "应该发送system和user两条消息")
	assert.Equal(t, schema.System, chat.lastInput[0].Role)
	assert.Contains(t, chat.lastInput[1].Content, "后端工程师", "用户消息应该包含目标岗位")
	assert.Contains(t, chat.lastInput[1].Content, "# 原始简历", "用户消息应该包含简历内容")
}

func TestOptimizeEmptyMarkdown(t *testing.T) {
	optimizer, err := NewResumeOptimizer(&scriptedChatModel{})
	require.NoError(t, err)

	_, err = optimizer.Optimize(context.Background(), "   ", "")
	require.Error(t, err, "空简历内容应该直接报错而不调用模型")
}

func TestOptimizeDefaultRole(t *testing.T) {
	chat := &scriptedChatModel{responses: []*schema.Message{assistantMessage("结果")}}
	optimizer, err := NewResumeOptimizer(chat)
	require.NoError(t, err)

	_, err = optimizer.Optimize(context.Background(), "# 简历", "")
	require.NoError(t, err)
	assert.Contains(t, chat.lastInput[1].Content, "不限岗位", "未指定岗位时应该使用通用岗位占位")
}

func TestOptimizeStripsMarkdownFence(t *testing.T) {
	chat := &scriptedChatModel{responses: []*schema.Message{assistantMessage("```markdown\n# 简历\n内容\n```")}}
	optimizer, err := NewResumeOptimizer(chat)
	require.NoError(t, err)

	out, err := optimizer.Optimize(context.Background(), "# 原文", "")
	require.NoError(t, err)
	assert.Equal(t, "# 简历\n内容", out, "模型回复外层的代码围栏应该被剥掉")
}

func TestOptimizeRetriesOnFailure(t *testing.T) {
	chat := &scriptedChatModel{
		errs:      []error{errors.New("超时"), nil},
		responses: []*schema.Message{nil, assistantMessage("第二次成功")},
	}
	optimizer, err := NewResumeOptimizer(chat, WithRetry(2, time.Millisecond))
	require.NoError(t, err)

	out, err := optimizer.Optimize(context.Background(), "# 简历", "")
	require.NoError(t, err, "重试后成功不应该返回错误")
	assert.Equal(t, "第二次成功", out)
	assert.Equal(t, 2, chat.calls, "应该恰好调用两次模型")
}

func TestOptimizeExhaustsRetries(t *testing.T) {
	chat := &scriptedChatModel{
		errs: []error{errors.New("失败1"), errors.New("失败2"), errors.New("失败3")},
	}
	optimizer, err := NewResumeOptimizer(chat, WithRetry(2, time.Millisecond))
	require.NoError(t, err)

	_, err = optimizer.Optimize(context.Background(), "# 简历", "")
	require.Error(t, err, "重试耗尽后应该返回最后一次错误")
	assert.Contains(t, err.Error(), "失败3")
	assert.Equal(t, 3, chat.calls, "初次调用加两次重试共三次")
}

func TestOptimizeEmptyResponse(t *testing.T) {
	chat := &scriptedChatModel{
		responses: []*schema.Message{assistantMessage("   "), assistantMessage("有效内容")},
	}
	optimizer, err := NewResumeOptimizer(chat, WithRetry(1, time.Millisecond))
	require.NoError(t, err)

	out, err := optimizer.Optimize(context.Background(), "# 简历", "")
	require.NoError(t, err)
	assert.Equal(t, "有效内容", out, "空白响应应该触发重试")
}

func TestStripMarkdownFence(t *testing.T) {
	assert.Equal(t, "普通文本", stripMarkdownFence("普通文本"), "无围栏时应该原样返回")
	assert.Equal(t, "内容", stripMarkdownFence("```\n内容\n```"))
	assert.Equal(t, "内容", stripMarkdownFence("```markdown\n内容\n```"))
	assert.Equal(t, "```", stripMarkdownFence("```"), "孤立围栏行应该原样返回")
}
