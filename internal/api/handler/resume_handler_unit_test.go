package handler

import (
	"context"
	"errors"
	"testing"

	"resume-agent-go/internal/config"
	"resume-agent-go/internal/extractor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 不依赖外部存储的处理器单元测试。
// 完整上传/解析链路的集成测试需要MinIO、MySQL、Redis与RabbitMQ环境。

func newBareHandler(t *testing.T) *ResumeHandler {
	t.Helper()
	cfg := config.DefaultConfig()
	return NewResumeHandler(cfg, nil, nil, extractor.NewEngine(nil), nil)
}

func TestHandleParseLaTeX(t *testing.T) {
	h := newBareHandler(t)

	t.Run("空源码返回错误", func(t *testing.T) {
		_, err := h.HandleParseLaTeX(context.Background(), "   \n\t")
		require.Error(t, err, "空白LaTeX源码应当被拒绝")
	})

	t.Run("解析最小文档", func(t *testing.T) {
		source := `\documentclass{article}
\begin{document}
\name{Wei Chen}
\section{Skills}
\textbf{Languages}: Go, Python
\end{document}`

		record, err := h.HandleParseLaTeX(context.Background(), source)
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, "Wei Chen", record.ContactInfo.Name, "应当从\\name命令提取姓名")
		assert.Contains(t, record.Skills["Languages"], "Go", "应当提取技能分类")
	})
}

func TestParsePipelineError(t *testing.T) {
	err := NewDownloadError("doc-123", "connection refused")

	assert.True(t, errors.Is(err, ErrFileDownloadFailed), "应当匹配基础错误类型")
	assert.Contains(t, err.Error(), "doc-123", "错误信息应当包含文档UUID")
	assert.Contains(t, err.Error(), "connection refused", "错误信息应当包含详情")

	var pipeErr *ParsePipelineError
	require.True(t, errors.As(err, &pipeErr))
	assert.Equal(t, "download", pipeErr.Op)

	bare := NewSaveError("doc-456", "")
	assert.Contains(t, bare.Error(), "doc-456")
	assert.False(t, errors.Is(bare, ErrFileDownloadFailed), "不同阶段的错误不应互相匹配")
}

func TestHandleOptimizeGuards(t *testing.T) {
	h := newBareHandler(t)

	t.Run("未配置优化器时返回错误", func(t *testing.T) {
		_, err := h.HandleOptimize(context.Background(), "user-1", "", "# 简历内容", "后端工程师")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "未启用", "错误信息应当提示功能未启用")
	})
}
