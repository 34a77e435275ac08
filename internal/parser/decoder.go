package parser

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"strings"
)

// ErrNoTextExtracted 主备解码器都没有产出任何非空白文本
// 这是文档级的终态错误，调用方应将其作为独立的业务结果上报，
// 而不是当成普通解析异常
var ErrNoTextExtracted = errors.New("no text content found in document")

// TextDecoder 文档文本解码器接口
type TextDecoder interface {
	// DecodeFromReader 从io.Reader解码文本和元数据
	DecodeFromReader(ctx context.Context, reader io.Reader, uri string) (string, map[string]interface{}, error)

	// DecodeFromBytes 从字节数组解码文本和元数据
	DecodeFromBytes(ctx context.Context, data []byte, uri string) (string, map[string]interface{}, error)
}

// TextAcquirer 文本获取编排器：主解码器优先，
// 主解码器出错或只产出空白时切到备用解码器，
// 两边都拿不到非空白文本时返回ErrNoTextExtracted
type TextAcquirer struct {
	primary  TextDecoder
	fallback TextDecoder
	logger   *log.Logger
}

// AcquirerOption 获取编排器的配置选项
type AcquirerOption func(*TextAcquirer)

// WithAcquirerLogger 配置自定义日志记录器
func WithAcquirerLogger(logger *log.Logger) AcquirerOption {
	return func(a *TextAcquirer) {
		a.logger = logger
	}
}

// NewTextAcquirer 创建文本获取编排器，fallback可为nil
func NewTextAcquirer(primary, fallback TextDecoder, options ...AcquirerOption) *TextAcquirer {
	acquirer := &TextAcquirer{
		primary:  primary,
		fallback: fallback,
		logger:   log.New(os.Stderr, "[文本获取] ", log.LstdFlags),
	}
	for _, option := range options {
		option(acquirer)
	}
	return acquirer
}

// AcquireText 从字节数组获取文档文本
// 返回: 文本内容 (string), 解码器元数据 (map[string]interface{}), 错误 (error)
func (a *TextAcquirer) AcquireText(ctx context.Context, data []byte, uri string) (string, map[string]interface{}, error) {
	text, metadata, err := a.primary.DecodeFromBytes(ctx, data, uri)
	if err == nil && strings.TrimSpace(text) != "" {
		return text, metadata, nil
	}

	if err != nil {
		a.logger.Printf("主解码器失败，切换到备用解码器 (URI: %s): %v", uri, err)
	} else {
		a.logger.Printf("主解码器只产出空白文本，切换到备用解码器 (URI: %s)", uri)
	}

	if a.fallback == nil {
		return "", nil, ErrNoTextExtracted
	}

	text, metadata, err = a.fallback.DecodeFromBytes(ctx, data, uri)
	if err != nil {
		a.logger.Printf("备用解码器也失败了 (URI: %s): %v", uri, err)
		return "", nil, ErrNoTextExtracted
	}
	if strings.TrimSpace(text) == "" {
		return "", nil, ErrNoTextExtracted
	}
	return text, metadata, nil
}
