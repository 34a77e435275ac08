package parser

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDecoder 返回预设结果的解码器替身
type stubDecoder struct {
	text     string
	metadata map[string]interface{}
	err      error
	calls    int
}

func (s *stubDecoder) DecodeFromReader(ctx context.Context, reader io.Reader, uri string) (string, map[string]interface{}, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", nil, err
	}
	return s.DecodeFromBytes(ctx, data, uri)
}

func (s *stubDecoder) DecodeFromBytes(ctx context.Context, data []byte, uri string) (string, map[string]interface{}, error) {
	s.calls++
	return s.text, s.metadata, s.err
}

func quietAcquirer(primary, fallback TextDecoder) *TextAcquirer {
	return NewTextAcquirer(primary, fallback, WithAcquirerLogger(log.New(io.Discard, "", 0)))
}

func TestAcquireTextPrimarySuccess(t *testing.T) {
	primary := &stubDecoder{text: "主解码器的文本", metadata: map[string]interface{}{"decoder": "primary"}}
	fallback := &stubDecoder{text: "备用解码器的文本"}

	text, metadata, err := quietAcquirer(primary, fallback).AcquireText(context.Background(), []byte("pdf"), "a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "主解码器的文本", text, "主解码器成功时应该直接返回其结果")
	assert.Equal(t, "primary", metadata["decoder"])
	assert.Zero(t, fallback.calls, "主解码器成功时不应该调用备用解码器")
}

func TestAcquireTextFallbackOnError(t *testing.T) {
	primary := &stubDecoder{err: errors.New("解码失败")}
	fallback := &stubDecoder{text: "备用解码器的文本"}

	text, _, err := quietAcquirer(primary, fallback).AcquireText(context.Background(), []byte("pdf"), "a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "备用解码器的文本", text, "主解码器出错时应该切换到备用解码器")
	assert.Equal(t, 1, fallback.calls)
}

func TestAcquireTextFallbackOnWhitespace(t *testing.T) {
	primary := &stubDecoder{text: "   \n\t  "}
	fallback := &stubDecoder{text: "备用解码器的文本"}

	text, _, err := quietAcquirer(primary, fallback).AcquireText(context.Background(), []byte("pdf"), "a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "备用解码器的文本", text, "主解码器只产出空白时应该切换到备用解码器")
}

func TestAcquireTextNoTextExtracted(t *testing.T) {
	primary := &stubDecoder{text: ""}
	fallback := &stubDecoder{text: "  \n "}

	_, _, err := quietAcquirer(primary, fallback).AcquireText(context.Background(), []byte("pdf"), "a.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoTextExtracted, "两边都没有文本时应该返回哨兵错误")
}

func TestAcquireTextNilFallback(t *testing.T) {
	primary := &stubDecoder{err: errors.New("解码失败")}

	_, _, err := quietAcquirer(primary, nil).AcquireText(context.Background(), []byte("pdf"), "a.pdf")
	assert.ErrorIs(t, err, ErrNoTextExtracted, "无备用解码器时主解码器失败应该直接返回哨兵错误")
}

func TestAcquireTextFallbackError(t *testing.T) {
	primary := &stubDecoder{text: ""}
	fallback := &stubDecoder{err: errors.New("备用也失败")}

	_, _, err := quietAcquirer(primary, fallback).AcquireText(context.Background(), []byte("pdf"), "a.pdf")
	assert.ErrorIs(t, err, ErrNoTextExtracted, "备用解码器失败时应该返回哨兵错误而不是原始错误")
}
