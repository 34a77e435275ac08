package llm

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	einoschema "github.com/cloudwego/eino/schema"
)

const defaultOptimizePromptTemplate = `请优化下面这份以Markdown呈现的简历内容。目标岗位：%s。

要求：
1. 保留所有事实信息，不得虚构经历、技能或数据。
2. 用更有力的动词和量化表述改写工作与项目描述。
3. 调整内容顺序，使与目标岗位最相关的经历靠前。
4. 保持Markdown结构（标题、列表）不变，直接输出优化后的完整简历，不要附加解释。

简历内容：
%s`

// ResumeOptimizer 调用大模型改写简历的Markdown文本。
type ResumeOptimizer struct {
	llmModel       model.ChatModel
	logger         *log.Logger
	promptTemplate string
	maxRetries     int
	retryWait      time.Duration
}

// OptimizerOption 配置 ResumeOptimizer。
type OptimizerOption func(*ResumeOptimizer)

// WithOptimizerLogger 设置优化器使用的日志记录器。
func WithOptimizerLogger(logger *log.Logger) OptimizerOption {
	return func(o *ResumeOptimizer) {
		o.logger = logger
	}
}

// WithPromptTemplate 覆盖默认的优化提示词模板。
// 模板需包含两个%s占位符：目标岗位、简历内容。
func WithPromptTemplate(tpl string) OptimizerOption {
	return func(o *ResumeOptimizer) {
		o.promptTemplate = tpl
	}
}

// WithRetry 设置失败重试次数和重试间隔。
func WithRetry(maxRetries int, wait time.Duration) OptimizerOption {
	return func(o *ResumeOptimizer) {
		o.maxRetries = maxRetries
		o.retryWait = wait
	}
}

// NewResumeOptimizer 创建一个新的 ResumeOptimizer。
func NewResumeOptimizer(llmModel model.ChatModel, opts ...OptimizerOption) (*ResumeOptimizer, error) {
	if llmModel == nil {
		return nil, fmt.Errorf("LLM模型不能为空")
	}

	o := &ResumeOptimizer{
		llmModel:       llmModel,
		logger:         log.New(io.Discard, "", 0),
		promptTemplate: defaultOptimizePromptTemplate,
		maxRetries:     2,
		retryWait:      2 * time.Second,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Optimize 将简历的Markdown文本改写为面向目标岗位的版本。
// targetRole 为空时按通用优化处理。
func (o *ResumeOptimizer) Optimize(ctx context.Context, markdown string, targetRole string) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", fmt.Errorf("简历内容不能为空")
	}

	role := strings.TrimSpace(targetRole)
	if role == "" {
		role = "不限岗位"
	}

	systemMsg := einoschema.SystemMessage("你是一位资深的简历优化顾问，擅长在不改变事实的前提下提升简历的表达质量。")
	userMsg := einoschema.UserMessage(fmt.Sprintf(o.promptTemplate, role, markdown))
	messages := []*einoschema.Message{systemMsg, userMsg}

	var lastErr error
	for attempt := 0; attempt <= o.maxRetries; attempt++ {
		if attempt > 0 {
			o.logger.Printf("[简历优化] 第%d次重试，上次错误: %v", attempt, lastErr)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(o.retryWait):
			}
		}

		response, err := o.llmModel.Generate(ctx, messages)
		if err != nil {
			lastErr = fmt.Errorf("LLM调用失败: %w", err)
			continue
		}
		if response == nil || strings.TrimSpace(response.Content) == "" {
			lastErr = fmt.Errorf("LLM返回空响应")
			continue
		}

		content := strings.TrimPrefix(response.Content, "\uFEFF")
		return stripMarkdownFence(content), nil
	}

	return "", lastErr
}

// stripMarkdownFence 去掉模型回复外层包裹的```代码围栏。
func stripMarkdownFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return trimmed
	}

	// 第一行是```或```markdown之类的围栏声明
	if strings.HasPrefix(strings.TrimSpace(lines[0]), "```") {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}
