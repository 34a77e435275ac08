package handler

import (
	"errors"
	"fmt"
)

// 解析流水线各阶段的基础错误类型
var (
	ErrFileDownloadFailed   = errors.New("从MinIO获取简历文件失败")
	ErrTextExtractFailed    = errors.New("提取简历文本失败")
	ErrMarkdownStoreFailed  = errors.New("上传解析文本失败")
	ErrExtractionSaveFailed = errors.New("保存提取结果失败")
)

// ParsePipelineError 携带文档上下文的解析错误
type ParsePipelineError struct {
	DocumentUUID string
	Op           string
	BaseErr      error
	Detail       string
}

func (e *ParsePipelineError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s, UUID:%s): %s", e.BaseErr, e.Op, e.DocumentUUID, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s, UUID:%s)", e.BaseErr, e.Op, e.DocumentUUID)
}

func (e *ParsePipelineError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *ParsePipelineError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func NewDownloadError(uuid, detail string) error {
	return &ParsePipelineError{
		DocumentUUID: uuid,
		Op:           "download",
		BaseErr:      ErrFileDownloadFailed,
		Detail:       detail,
	}
}

func NewExtractError(uuid, detail string) error {
	return &ParsePipelineError{
		DocumentUUID: uuid,
		Op:           "extract",
		BaseErr:      ErrTextExtractFailed,
		Detail:       detail,
	}
}

func NewStoreError(uuid, detail string) error {
	return &ParsePipelineError{
		DocumentUUID: uuid,
		Op:           "store",
		BaseErr:      ErrMarkdownStoreFailed,
		Detail:       detail,
	}
}

func NewSaveError(uuid, detail string) error {
	return &ParsePipelineError{
		DocumentUUID: uuid,
		Op:           "save",
		BaseErr:      ErrExtractionSaveFailed,
		Detail:       detail,
	}
}
