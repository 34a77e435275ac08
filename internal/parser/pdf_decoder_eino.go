package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"
)

// EinoPDFDecoder 使用 Eino PDF Parser 按页解码文本
type EinoPDFDecoder struct {
	parser *pdf.PDFParser
	logger *log.Logger
}

// EinoPDFOption PDF解码器的配置选项
type EinoPDFOption func(*EinoPDFDecoder)

// WithEinoLogger 配置自定义日志记录器
func WithEinoLogger(logger *log.Logger) EinoPDFOption {
	return func(e *EinoPDFDecoder) {
		e.logger = logger
	}
}

// NewEinoPDFDecoder 初始化 Eino PDF 文本解码器
// 配置为按页分割，页与页之间插入页标记行，
// 供下游的markdown转换识别分页
func NewEinoPDFDecoder(ctx context.Context, options ...EinoPDFOption) (*EinoPDFDecoder, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{
		ToPages: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Eino PDF parser: %w", err)
	}

	decoder := &EinoPDFDecoder{
		parser: p,
		logger: log.New(os.Stderr, "[PDF解码器] ", log.LstdFlags),
	}

	for _, option := range options {
		option(decoder)
	}

	return decoder, nil
}

var _ TextDecoder = (*EinoPDFDecoder)(nil)

// DecodeFromReader 从 io.Reader 按页解码文本
// 全空白的页跳过；非空白的页按页序拼接，
// 第二页起在页前插入 "--- Page N ---" 标记
func (e *EinoPDFDecoder) DecodeFromReader(ctx context.Context, reader io.Reader, uri string) (string, map[string]interface{}, error) {
	startTime := time.Now()
	e.logger.Printf("开始从Reader解码PDF文本 (URI: %s)", uri)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	docs, err := e.parser.Parse(ctx, reader, einoParser.WithURI(uri))

	duration := time.Since(startTime)
	if err != nil {
		e.logger.Printf("从Reader解码PDF失败: %s (用时 %.2f秒)", err, duration.Seconds())
		return "", nil, fmt.Errorf("eino PDF parser failed for URI %s: %w", uri, err)
	}

	if len(docs) == 0 {
		e.logger.Printf("PDF解析无结果 (用时 %.2f秒)", duration.Seconds())
		return "", nil, fmt.Errorf("eino PDF parser returned no documents for URI %s", uri)
	}

	var builder strings.Builder
	pageCount := 0
	for i, doc := range docs {
		if strings.TrimSpace(doc.Content) == "" {
			continue
		}
		if pageCount > 0 {
			builder.WriteString(fmt.Sprintf("\n\n--- Page %d ---\n\n", i+1))
		}
		builder.WriteString(doc.Content)
		pageCount++
	}
	fullContent := builder.String()

	metadata := map[string]interface{}{
		"source_file_path":       uri,
		"extraction_time":        time.Now().Format(time.RFC3339),
		"document_count":         len(docs),
		"non_empty_page_count":   pageCount,
		"text_length":            len(fullContent),
		"processing_duration_ms": duration.Milliseconds(),
	}
	if len(docs) > 0 && docs[0].MetaData != nil {
		for k, v := range docs[0].MetaData {
			metadata[k] = v
		}
	}

	e.logger.Printf("PDF解码完成: %d 页中 %d 页有文本，共 %d 个字符 (用时 %.2f秒)",
		len(docs), pageCount, len(fullContent), duration.Seconds())
	return fullContent, metadata, nil
}

// DecodeFromBytes 从字节数组解码文本内容
func (e *EinoPDFDecoder) DecodeFromBytes(ctx context.Context, data []byte, uri string) (string, map[string]interface{}, error) {
	return e.DecodeFromReader(ctx, bytes.NewReader(data), uri)
}
