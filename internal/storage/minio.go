package storage

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"
	"github.com/rs/zerolog"

	"resume-agent-go/internal/config"
	"resume-agent-go/internal/logger"
)

// ObjectStorage 对象存储接口
type ObjectStorage interface {
	// UploadOriginalFile 流式上传原始简历文件并顺带计算MD5
	// 返回: 对象键 (string), 文件MD5 (string), 错误 (error)
	UploadOriginalFile(ctx context.Context, documentUUID, fileExt string, reader io.Reader, fileSize int64) (string, string, error)

	// UploadParsedMarkdown 上传解析产出的markdown文本
	UploadParsedMarkdown(ctx context.Context, documentUUID string, markdown string) (string, error)

	// GetOriginalFile 下载原始简历文件
	GetOriginalFile(ctx context.Context, objectKey string) ([]byte, error)

	// GetParsedMarkdown 下载解析产出的markdown文本
	GetParsedMarkdown(ctx context.Context, objectKey string) (string, error)

	// GetPresignedURL 获取原始文件的预签名下载URL
	GetPresignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error)

	// DeleteDocumentObjects 删除一个文档关联的全部对象
	DeleteDocumentObjects(ctx context.Context, originalKey, parsedKey string) error
}

// 确保MinIO实现了ObjectStorage接口
var _ ObjectStorage = (*MinIO)(nil)

// MinIO 提供对象存储功能
type MinIO struct {
	client         *minio.Client
	cfg            *config.MinIOConfig
	originalBucket string
	parsedBucket   string
	logger         zerolog.Logger
}

// NewMinIO 创建MinIO客户端并确保存储桶就绪
func NewMinIO(cfg *config.MinIOConfig) (*MinIO, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MinIO配置不能为空")
	}

	log := logger.Component("minio")
	log.Info().
		Str("endpoint", cfg.Endpoint).
		Str("originals_bucket", cfg.OriginalsBucket).
		Str("parsed_bucket", cfg.ParsedTextBucket).
		Msg("初始化MinIO客户端")

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}

	m := &MinIO{
		client:         client,
		cfg:            cfg,
		originalBucket: cfg.OriginalsBucket,
		parsedBucket:   cfg.ParsedTextBucket,
		logger:         log,
	}

	if err := m.ensureBucketExists(m.originalBucket, cfg.Location); err != nil {
		return nil, fmt.Errorf("确保原始简历存储桶 %s 存在失败: %w", m.originalBucket, err)
	}
	if err := m.ensureBucketExists(m.parsedBucket, cfg.Location); err != nil {
		return nil, fmt.Errorf("确保解析文本存储桶 %s 存在失败: %w", m.parsedBucket, err)
	}

	if cfg.OriginalFileExpireDays > 0 || cfg.ParsedTextExpireDays > 0 {
		if err := m.setupLifecycleRules(context.Background()); err != nil {
			log.Warn().Err(err).Msg("设置对象生命周期规则失败")
		}
	}

	return m, nil
}

// ensureBucketExists 确保存储桶存在
func (m *MinIO) ensureBucketExists(bucketName, location string) error {
	exists, err := m.client.BucketExists(context.Background(), bucketName)
	if err != nil {
		return fmt.Errorf("检查存储桶 %s 是否存在时出错: %w", bucketName, err)
	}
	if !exists {
		m.logger.Info().Str("bucket", bucketName).Msg("存储桶不存在，开始创建")
		if err := m.client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{Region: location}); err != nil {
			return fmt.Errorf("创建存储桶 %s 失败: %w", bucketName, err)
		}
	}
	return nil
}

// setupLifecycleRules 设置对象生命周期规则
func (m *MinIO) setupLifecycleRules(ctx context.Context) error {
	if m.cfg.OriginalFileExpireDays > 0 {
		if err := m.setupBucketLifecycle(ctx, m.originalBucket, "expire-originals", m.cfg.OriginalFileExpireDays); err != nil {
			return fmt.Errorf("为原始文件存储桶 %s 设置生命周期失败: %w", m.originalBucket, err)
		}
	}
	if m.cfg.ParsedTextExpireDays > 0 {
		if err := m.setupBucketLifecycle(ctx, m.parsedBucket, "expire-parsed-text", m.cfg.ParsedTextExpireDays); err != nil {
			return fmt.Errorf("为解析文本存储桶 %s 设置生命周期失败: %w", m.parsedBucket, err)
		}
	}
	return nil
}

// setupBucketLifecycle 为指定存储桶设置过期规则
func (m *MinIO) setupBucketLifecycle(ctx context.Context, bucketName, ruleID string, expiryDays int) error {
	lc := lifecycle.NewConfiguration()
	lc.Rules = []lifecycle.Rule{
		{
			ID:     ruleID,
			Status: "Enabled",
			Expiration: lifecycle.Expiration{
				Days: lifecycle.ExpirationDays(expiryDays),
			},
		},
	}
	return m.client.SetBucketLifecycle(ctx, bucketName, lc)
}

// UploadOriginalFile 流式上传原始简历文件
// 通过TeeReader在上传过程中同步计算MD5，避免把文件整体读入内存
func (m *MinIO) UploadOriginalFile(ctx context.Context, documentUUID, fileExt string, reader io.Reader, fileSize int64) (string, string, error) {
	objectName := fmt.Sprintf("resume/%s/original%s", documentUUID, fileExt)
	contentType := getContentType(fileExt)

	md5Hash := md5.New()
	teeReader := io.TeeReader(reader, md5Hash)

	info, err := m.client.PutObject(ctx, m.originalBucket, objectName, teeReader,
		fileSize, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", "", fmt.Errorf("流式上传文件到MinIO失败: %w", err)
	}

	md5Hex := hex.EncodeToString(md5Hash.Sum(nil))
	m.logger.Debug().
		Str("object", objectName).
		Str("etag", info.ETag).
		Int64("size", info.Size).
		Str("md5", md5Hex).
		Msg("原始文件上传完成")
	return objectName, md5Hex, nil
}

// UploadParsedMarkdown 上传解析产出的markdown文本
func (m *MinIO) UploadParsedMarkdown(ctx context.Context, documentUUID string, markdown string) (string, error) {
	objectName := fmt.Sprintf("resume/%s/parsed.md", documentUUID)

	_, err := m.client.PutObject(ctx, m.parsedBucket, objectName, strings.NewReader(markdown),
		int64(len(markdown)), minio.PutObjectOptions{ContentType: "text/markdown"})
	if err != nil {
		return "", fmt.Errorf("上传解析文本 %s 到存储桶 %s 失败: %w", objectName, m.parsedBucket, err)
	}
	return objectName, nil
}

// downloadObject 从指定存储桶下载对象
func (m *MinIO) downloadObject(ctx context.Context, bucketName, objectKey string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, bucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("获取对象 %s/%s 失败: %w", bucketName, objectKey, err)
	}
	defer obj.Close()

	// Stat能区分对象不存在和读取失败
	if _, err := obj.Stat(); err != nil {
		return nil, fmt.Errorf("获取对象 %s/%s 状态失败: %w", bucketName, objectKey, err)
	}

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("读取对象 %s/%s 数据失败: %w", bucketName, objectKey, err)
	}
	return data, nil
}

// GetOriginalFile 下载原始简历文件
func (m *MinIO) GetOriginalFile(ctx context.Context, objectKey string) ([]byte, error) {
	return m.downloadObject(ctx, m.originalBucket, objectKey)
}

// GetParsedMarkdown 下载解析产出的markdown文本
func (m *MinIO) GetParsedMarkdown(ctx context.Context, objectKey string) (string, error) {
	data, err := m.downloadObject(ctx, m.parsedBucket, objectKey)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GetPresignedURL 获取原始文件的预签名下载URL
func (m *MinIO) GetPresignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	url, err := m.client.PresignedGetObject(ctx, m.originalBucket, objectKey, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("生成预签名URL失败: %w", err)
	}
	return url.String(), nil
}

// DeleteDocumentObjects 删除一个文档关联的全部对象
// 任意一个对象删除失败即返回错误，已删除的不回滚
func (m *MinIO) DeleteDocumentObjects(ctx context.Context, originalKey, parsedKey string) error {
	if originalKey != "" {
		if err := m.client.RemoveObject(ctx, m.originalBucket, originalKey, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("删除原始文件 %s 失败: %w", originalKey, err)
		}
	}
	if parsedKey != "" {
		if err := m.client.RemoveObject(ctx, m.parsedBucket, parsedKey, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("删除解析文本 %s 失败: %w", parsedKey, err)
		}
	}
	return nil
}

// getContentType 根据扩展名推断Content-Type
func getContentType(ext string) string {
	switch strings.ToLower(ext) {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".tex":
		return "application/x-tex"
	case ".txt":
		return "text/plain"
	case ".md":
		return "text/markdown"
	default:
		return "application/octet-stream"
	}
}
