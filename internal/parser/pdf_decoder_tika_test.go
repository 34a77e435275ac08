package parser

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTikaPDFDecoder(t *testing.T) {
	decoder := NewTikaPDFDecoder("http://localhost:9998")
	require.NotNil(t, decoder, "创建的Tika解码器不应为nil")
	assert.Equal(t, "http://localhost:9998", decoder.ServerURL, "ServerURL应该被正确设置")
	require.NotNil(t, decoder.Client, "HTTP客户端不应为nil")
	assert.Equal(t, 60*time.Second, decoder.Client.Timeout, "HTTP客户端超时默认应为60秒")
	assert.True(t, decoder.extractAnnotations, "默认应该提取链接注释文本")

	customLogger := log.New(io.Discard, "", 0)
	custom := NewTikaPDFDecoder(
		"http://localhost:9998",
		WithAnnotations(false),
		WithTikaLogger(customLogger),
		WithTimeout(30*time.Second),
	)
	assert.False(t, custom.extractAnnotations, "应该设置为不提取注释文本")
	assert.Equal(t, customLogger, custom.logger, "应该使用提供的自定义logger")
	assert.Equal(t, 30*time.Second, custom.Client.Timeout, "应该使用自定义超时")
}

// createMockTikaServer 创建模拟的Tika服务器并记录收到的请求头
func createMockTikaServer(t *testing.T, captured *http.Header) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tika" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		assert.Equal(t, http.MethodPut, r.Method, "应该以PUT方法提交文档")
		if captured != nil {
			*captured = r.Header.Clone()
		}
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("这是从PDF中提取的测试文本内容。"))
	}))
}

func TestTikaDecodeFromBytes(t *testing.T) {
	var headers http.Header
	server := createMockTikaServer(t, &headers)
	defer server.Close()

	decoder := NewTikaPDFDecoder(server.URL, WithTikaLogger(log.New(io.Discard, "", 0)))

	text, metadata, err := decoder.DecodeFromBytes(context.Background(), []byte("%PDF-1.4 测试内容"), "resume.pdf")
	require.NoError(t, err, "解码不应该返回错误")
	assert.Equal(t, "这是从PDF中提取的测试文本内容。", text, "应该返回Tika提取的文本")

	assert.Equal(t, "application/pdf", headers.Get("Content-Type"), "应该声明PDF内容类型")
	assert.Equal(t, "text/plain", headers.Get("Accept"), "应该请求纯文本输出")
	assert.Equal(t, "resume.pdf", headers.Get("X-Tika-Resource-Name"), "应该带上资源名请求头")
	assert.Empty(t, headers.Get("X-Tika-PDFExtractAnnotationText"), "默认不应该设置注释提取请求头")

	require.NotNil(t, metadata)
	assert.Contains(t, metadata, "text_length", "元数据应该包含文本长度")
	assert.Equal(t, "resume.pdf", metadata["source_file_path"])
}

func TestTikaDecodeFromBytesNoAnnotations(t *testing.T) {
	var headers http.Header
	server := createMockTikaServer(t, &headers)
	defer server.Close()

	decoder := NewTikaPDFDecoder(server.URL,
		WithAnnotations(false),
		WithTikaLogger(log.New(io.Discard, "", 0)))

	_, _, err := decoder.DecodeFromBytes(context.Background(), []byte("%PDF"), "a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "false", headers.Get("X-Tika-PDFExtractAnnotationText"), "关闭注释提取时应该下发对应请求头")
}

func TestTikaDecodeFromReader(t *testing.T) {
	server := createMockTikaServer(t, nil)
	defer server.Close()

	decoder := NewTikaPDFDecoder(server.URL, WithTikaLogger(log.New(io.Discard, "", 0)))

	text, _, err := decoder.DecodeFromReader(context.Background(), bytes.NewReader([]byte("%PDF")), "b.pdf")
	require.NoError(t, err)
	assert.NotEmpty(t, text)
}

func TestTikaDecodeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	decoder := NewTikaPDFDecoder(server.URL, WithTikaLogger(log.New(io.Discard, "", 0)))

	_, _, err := decoder.DecodeFromBytes(context.Background(), []byte("%PDF"), "a.pdf")
	require.Error(t, err, "服务端错误状态码应该作为错误返回")
	assert.Contains(t, err.Error(), "500", "错误信息应该包含状态码")
}
