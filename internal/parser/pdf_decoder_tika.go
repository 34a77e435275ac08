package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

// TikaPDFDecoder 是基于Apache Tika的备用PDF解码器
type TikaPDFDecoder struct {
	// Tika服务器地址，例如 http://localhost:9998
	ServerURL string
	// HTTP客户端，可配置超时等参数
	Client *http.Client
	// 是否提取链接注释文本
	extractAnnotations bool
	// 日志记录
	logger *log.Logger
}

// TikaOption 定义配置选项函数
type TikaOption func(*TikaPDFDecoder)

// WithAnnotations 配置是否提取PDF链接注释文本
func WithAnnotations(extract bool) TikaOption {
	return func(e *TikaPDFDecoder) {
		e.extractAnnotations = extract
	}
}

// WithTikaLogger 配置自定义日志记录器
func WithTikaLogger(logger *log.Logger) TikaOption {
	return func(e *TikaPDFDecoder) {
		e.logger = logger
	}
}

// WithTimeout 配置HTTP客户端超时时间
func WithTimeout(timeout time.Duration) TikaOption {
	return func(e *TikaPDFDecoder) {
		e.Client.Timeout = timeout
	}
}

var _ TextDecoder = (*TikaPDFDecoder)(nil)

// NewTikaPDFDecoder 创建一个新的Tika PDF解码器
func NewTikaPDFDecoder(serverURL string, options ...TikaOption) *TikaPDFDecoder {
	client := &http.Client{
		Timeout: 60 * time.Second,
	}

	decoder := &TikaPDFDecoder{
		ServerURL:          serverURL,
		Client:             client,
		extractAnnotations: true,
		logger:             log.New(os.Stderr, "[TikaPDF] ", log.LstdFlags),
	}

	for _, option := range options {
		option(decoder)
	}

	return decoder
}

// DecodeFromReader 从io.Reader解码文本内容
func (e *TikaPDFDecoder) DecodeFromReader(ctx context.Context, reader io.Reader, uri string) (string, map[string]interface{}, error) {
	startTime := time.Now()
	e.logger.Printf("开始从Reader解码PDF文本 (URI: %s)", uri)

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", nil, fmt.Errorf("读取PDF内容失败: %w", err)
	}

	text, metadata, err := e.DecodeFromBytes(ctx, data, uri)

	duration := time.Since(startTime)
	if err != nil {
		e.logger.Printf("从Reader解码PDF失败: %s (用时 %.2f秒)", err, duration.Seconds())
		return "", nil, err
	}

	e.logger.Printf("PDF文本解码完成: 提取了 %d 个字符 (用时 %.2f秒)", len(text), duration.Seconds())
	return text, metadata, nil
}

// DecodeFromBytes 从字节数组解码文本内容
// 以纯文本模式PUT到Tika的/tika端点
func (e *TikaPDFDecoder) DecodeFromBytes(ctx context.Context, data []byte, uri string) (string, map[string]interface{}, error) {
	startTime := time.Now()

	baseMetadata := map[string]interface{}{
		"extraction_time":  time.Now().Format(time.RFC3339),
		"source_file_path": uri,
	}

	url := fmt.Sprintf("%s/tika", e.ServerURL)

	req, err := http.NewRequestWithContext(ctx, "PUT", url, bytes.NewReader(data))
	if err != nil {
		return "", baseMetadata, fmt.Errorf("创建HTTP请求失败: %w", err)
	}

	req.Header.Set("Content-Type", "application/pdf")
	req.Header.Set("Accept", "text/plain")
	if uri != "" {
		req.Header.Set("X-Tika-Resource-Name", uri)
	}
	if !e.extractAnnotations {
		req.Header.Set("X-Tika-PDFExtractAnnotationText", "false")
	}

	resp, err := e.Client.Do(req)
	if err != nil {
		return "", baseMetadata, fmt.Errorf("发送请求到Tika服务器失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", baseMetadata, fmt.Errorf("tika服务器返回错误状态码: %d", resp.StatusCode)
	}

	textBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", baseMetadata, fmt.Errorf("读取Tika响应失败: %w", err)
	}

	text := string(textBytes)
	baseMetadata["text_length"] = len(text)
	baseMetadata["processing_duration_ms"] = time.Since(startTime).Milliseconds()

	return text, baseMetadata, nil
}
