package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

const (
	// OpenAI-compatible API endpoint for DashScope
	defaultChatCompletionsURL = "https://dashscope.aliyuncs.com/compatible-mode/v1/chat/completions"
	defaultChatModelName      = "qwen-turbo"
)

// --- OpenAI Compatible Request/Response Structures ---

type openAIChatCompletionRequest struct {
	Model       string            `json:"model"`
	Messages    []*schema.Message `json:"messages"` // Eino schema.Message is compatible enough for role/content
	Temperature float32           `json:"temperature,omitempty"`
	MaxTokens   int               `json:"max_tokens,omitempty"`
}

type openAIMessage struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
}

type openAIChatChoice struct {
	Index        int           `json:"index"`
	Message      openAIMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type openAICompletionResponse struct {
	Id      string             `json:"id"`
	Object  string             `json:"object"`
	Created int64              `json:"created"`
	Model   string             `json:"model"`
	Choices []openAIChatChoice `json:"choices"`
}

// OpenAICompatChatModel 实现了 model.ChatModel 接口，
// 通过 OpenAI 兼容的 chat/completions 端点与大模型交互。
type OpenAICompatChatModel struct {
	apiKey      string
	modelName   string
	apiURL      string
	temperature float32
	maxTokens   int
	httpClient  *http.Client
}

// ModelOption 配置 OpenAICompatChatModel。
type ModelOption func(*OpenAICompatChatModel)

// WithTemperature 设置采样温度。
func WithTemperature(t float32) ModelOption {
	return func(m *OpenAICompatChatModel) {
		m.temperature = t
	}
}

// WithMaxTokens 设置回复的最大token数。
func WithMaxTokens(n int) ModelOption {
	return func(m *OpenAICompatChatModel) {
		m.maxTokens = n
	}
}

// WithRequestTimeout 设置单次请求超时。
func WithRequestTimeout(d time.Duration) ModelOption {
	return func(m *OpenAICompatChatModel) {
		m.httpClient.Timeout = d
	}
}

// NewOpenAICompatChatModel 创建一个新的 OpenAICompatChatModel 实例。
func NewOpenAICompatChatModel(apiKey string, modelName string, apiURL string, opts ...ModelOption) (*OpenAICompatChatModel, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("API 密钥不能为空")
	}

	mn := modelName
	if strings.TrimSpace(mn) == "" {
		mn = defaultChatModelName
	}

	url := apiURL
	if strings.TrimSpace(url) == "" {
		url = defaultChatCompletionsURL
	}

	m := &OpenAICompatChatModel{
		apiKey:     apiKey,
		modelName:  mn,
		apiURL:     url,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(m)
	}

	log.Printf("使用 OpenAI 兼容 LLM 客户端，API URL: %s, 模型: %s", url, mn)
	return m, nil
}

// Generate 实现 model.ChatModel 接口
func (m *OpenAICompatChatModel) Generate(ctx context.Context, messages []*schema.Message, options ...model.Option) (*schema.Message, error) {
	for _, opt := range options {
		_ = opt // 通用选项暂不处理，配置通过构造函数完成
	}

	reqPayload := openAIChatCompletionRequest{
		Model:       m.modelName,
		Messages:    messages,
		Temperature: m.temperature,
		MaxTokens:   m.maxTokens,
	}

	jsonData, err := json.Marshal(reqPayload)
	if err != nil {
		return nil, fmt.Errorf("序列化请求体失败: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建 HTTP 请求失败: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+m.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := m.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("发送 HTTP 请求失败: %w", err)
	}
	defer httpResp.Body.Close()

	bodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应体失败: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API 请求失败，状态 %s: %s", httpResp.Status, string(bodyBytes))
	}

	var openAIResp openAICompletionResponse
	if err := json.Unmarshal(bodyBytes, &openAIResp); err != nil {
		return nil, fmt.Errorf("反序列化 API 响应失败: %w。响应体: %s", err, string(bodyBytes))
	}

	if len(openAIResp.Choices) == 0 {
		return nil, fmt.Errorf("从 API 收到空选项: %s", string(bodyBytes))
	}

	apiMessage := openAIResp.Choices[0].Message
	responseContent := ""
	if apiMessage.Content != nil {
		responseContent = *apiMessage.Content
	}

	resultMessage := &schema.Message{
		Role:    schema.RoleType(apiMessage.Role),
		Content: responseContent,
	}
	if resultMessage.Role == "" {
		resultMessage.Role = schema.Assistant
	}

	return resultMessage, nil
}

// Stream 实现 model.ChatModel 接口 (placeholder)
func (m *OpenAICompatChatModel) Stream(ctx context.Context, messages []*schema.Message, options ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, fmt.Errorf("OpenAICompatChatModel 的 Stream 方法未实现")
}

// BindTools 实现 model.ChatModel 接口。简历优化不使用工具调用。
func (m *OpenAICompatChatModel) BindTools(tools []*schema.ToolInfo) error {
	if len(tools) > 0 {
		return fmt.Errorf("OpenAICompatChatModel 不支持工具调用")
	}
	return nil
}

var _ model.ChatModel = (*OpenAICompatChatModel)(nil)
