package handler

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"resume-agent-go/internal/config"
	"resume-agent-go/internal/constants"
	"resume-agent-go/internal/extractor"
	"resume-agent-go/internal/llm"
	"resume-agent-go/internal/logger"
	"resume-agent-go/internal/parser"
	storage2 "resume-agent-go/internal/storage"
	"resume-agent-go/internal/storage/models"
	"resume-agent-go/internal/tracing"
	"resume-agent-go/internal/types"

	"github.com/gofrs/uuid/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// 处理器层的哨兵错误，路由层据此映射HTTP状态码
var (
	ErrDocumentNotFound = errors.New("文档不存在")
	ErrNotOwner         = errors.New("无权访问该文档")
	ErrNotParsed        = errors.New("文档尚未解析")
)

// ResumeHandler 简历处理器，负责协调上传、解析、优化的完整流程
type ResumeHandler struct {
	cfg       *config.Config
	storage   *storage2.Storage
	acquirer  *parser.TextAcquirer
	engine    *extractor.Engine
	optimizer *llm.ResumeOptimizer // 可为nil，未配置LLM时优化接口不可用
}

// NewResumeHandler 创建一个新的简历处理器
func NewResumeHandler(
	cfg *config.Config,
	storage *storage2.Storage,
	acquirer *parser.TextAcquirer,
	engine *extractor.Engine,
	optimizer *llm.ResumeOptimizer,
) *ResumeHandler {
	return &ResumeHandler{
		cfg:       cfg,
		storage:   storage,
		acquirer:  acquirer,
		engine:    engine,
		optimizer: optimizer,
	}
}

// ResumeUploadResponse 简历上传响应
type ResumeUploadResponse struct {
	DocumentUUID string `json:"document_uuid"`
	Status       string `json:"status"`
}

// DocumentInfo 文档列表项
type DocumentInfo struct {
	DocumentUUID     string    `json:"document_uuid"`
	OriginalFilename string    `json:"original_filename"`
	ContentType      string    `json:"content_type"`
	FileSizeBytes    int64     `json:"file_size_bytes"`
	ProcessingStatus string    `json:"processing_status"`
	UploadedAt       time.Time `json:"uploaded_at"`
}

// DocumentListResponse 文档分页列表响应
type DocumentListResponse struct {
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
	Items []DocumentInfo `json:"items"`
}

// ResumeParseResponse 简历解析响应
type ResumeParseResponse struct {
	DocumentUUID  string              `json:"document_uuid"`
	Status        string              `json:"status"`
	Record        *types.ResumeRecord `json:"record"`
	CleanMarkdown string              `json:"clean_markdown"`
}

// HandleResumeUpload 处理简历上传请求
func (h *ResumeHandler) HandleResumeUpload(ctx context.Context, reader io.Reader, fileSize int64,
	filename string, contentType string, ownerUserID string) (*ResumeUploadResponse, error) {

	// 读取文件内容并计算MD5 (需要在上传MinIO前，且reader只能读一次)
	fileBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("读取上传文件内容失败: %w", err)
	}
	sum := md5.Sum(fileBytes)
	fileMD5Hex := hex.EncodeToString(sum[:])

	// Lua脚本原子地完成"查重+登记"，并发上传同一文件时只有一个会走完整流程
	exists, err := h.storage.Redis.CheckAndAddRawFileMD5(ctx, fileMD5Hex)
	if err != nil {
		logger.Error().
			Err(err).
			Str("md5", fileMD5Hex).
			Msg("查询Redis文件MD5 Set失败")
		return nil, fmt.Errorf("检查文件MD5重复性时Redis查询失败: %w", err)
	}

	if exists {
		existingUUID, lookupErr := h.storage.Redis.GetMD5ToDocumentUUID(ctx, fileMD5Hex)
		if lookupErr != nil && !errors.Is(lookupErr, storage2.ErrNotFound) {
			logger.Warn().Err(lookupErr).Str("md5", fileMD5Hex).Msg("查询MD5到文档UUID映射失败")
		}
		logger.Info().
			Str("md5", fileMD5Hex).
			Str("filename", filename).
			Str("existing_uuid", existingUUID).
			Msg("检测到重复的文件MD5，跳过处理")
		return &ResumeUploadResponse{
			DocumentUUID: existingUUID,
			Status:       "DUPLICATE_FILE_SKIPPED",
		}, nil
	}

	uuidV7, err := uuid.NewV7()
	if err != nil {
		h.rollbackFileMD5(ctx, fileMD5Hex)
		return nil, fmt.Errorf("生成UUIDv7失败: %w", err)
	}
	documentUUID := uuidV7.String()

	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".pdf" // 默认为PDF
	}

	originalObjectKey, _, err := h.storage.MinIO.UploadOriginalFile(ctx, documentUUID, ext, bytes.NewReader(fileBytes), int64(len(fileBytes)))
	if err != nil {
		h.rollbackFileMD5(ctx, fileMD5Hex)
		return nil, fmt.Errorf("上传简历到MinIO失败: %w", err)
	}

	if err := h.storage.Redis.SetMD5ToDocumentUUID(ctx, fileMD5Hex, documentUUID); err != nil {
		// 映射失败只影响重复上传时的UUID提示，不阻塞主流程
		logger.Warn().
			Err(err).
			Str("md5", fileMD5Hex).
			Str("document_uuid", documentUUID).
			Msg("写入MD5到文档UUID映射失败")
	}

	now := time.Now()
	doc := &models.ResumeDocument{
		DocumentUUID:        documentUUID,
		OwnerUserID:         ownerUserID,
		OriginalFilename:    filename,
		ContentType:         contentType,
		FileSizeBytes:       int64(len(fileBytes)),
		RawFileMD5:          fileMD5Hex,
		OriginalFilePathOSS: originalObjectKey,
		ProcessingStatus:    models.StatusUploaded,
		UploadedAt:          now,
	}

	event := storage2.ResumeUploadedEvent{
		DocumentUUID:        documentUUID,
		OwnerUserID:         ownerUserID,
		OriginalFilename:    filename,
		ContentType:         contentType,
		FileSizeBytes:       int64(len(fileBytes)),
		OriginalFilePathOSS: originalObjectKey,
		RawFileMD5:          fileMD5Hex,
		UploadedAt:          now,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		h.rollbackFileMD5(ctx, fileMD5Hex)
		return nil, fmt.Errorf("序列化上传事件失败: %w", err)
	}

	outbox := &models.OutboxMessage{
		AggregateID:      documentUUID,
		EventType:        "resume.uploaded",
		Payload:          string(payload),
		TargetExchange:   h.cfg.RabbitMQ.ResumeEventsExchange,
		TargetRoutingKey: h.cfg.RabbitMQ.UploadedRoutingKey,
		Status:           "PENDING",
	}

	if err := h.storage.MySQL.CreateDocumentWithOutbox(ctx, doc, outbox); err != nil {
		h.rollbackFileMD5(ctx, fileMD5Hex)
		return nil, fmt.Errorf("写入文档记录失败: %w", err)
	}

	return &ResumeUploadResponse{
		DocumentUUID: documentUUID,
		Status:       "SUBMITTED_FOR_PROCESSING",
	}, nil
}

// rollbackFileMD5 上传失败时撤销已登记的MD5，让同一文件可以重新提交
func (h *ResumeHandler) rollbackFileMD5(ctx context.Context, md5Hex string) {
	if err := h.storage.Redis.RemoveRawFileMD5(ctx, md5Hex); err != nil {
		logger.Warn().Err(err).Str("md5", md5Hex).Msg("回滚文件MD5记录失败")
	}
}

// HandleListDocuments 分页列出当前用户的简历文档
func (h *ResumeHandler) HandleListDocuments(ctx context.Context, ownerUserID string, page, pageSize int) (*DocumentListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	docs, total, err := h.storage.MySQL.ListResumeDocumentsByOwner(ctx, ownerUserID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, fmt.Errorf("查询文档列表失败: %w", err)
	}

	items := make([]DocumentInfo, 0, len(docs))
	for _, doc := range docs {
		items = append(items, DocumentInfo{
			DocumentUUID:     doc.DocumentUUID,
			OriginalFilename: doc.OriginalFilename,
			ContentType:      doc.ContentType,
			FileSizeBytes:    doc.FileSizeBytes,
			ProcessingStatus: doc.ProcessingStatus,
			UploadedAt:       doc.UploadedAt,
		})
	}

	return &DocumentListResponse{
		Total: total,
		Page:  page,
		Size:  pageSize,
		Items: items,
	}, nil
}

// getOwnedDocument 查询文档并校验归属
func (h *ResumeHandler) getOwnedDocument(ctx context.Context, ownerUserID, documentUUID string) (*models.ResumeDocument, error) {
	doc, err := h.storage.MySQL.GetResumeDocumentByUUID(ctx, documentUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("查询文档记录失败: %w", err)
	}
	if doc.OwnerUserID != ownerUserID {
		return nil, ErrNotOwner
	}
	return doc, nil
}

// HandleGetDownloadURL 生成原始文件的预签名下载链接
func (h *ResumeHandler) HandleGetDownloadURL(ctx context.Context, ownerUserID, documentUUID string) (string, error) {
	doc, err := h.getOwnedDocument(ctx, ownerUserID, documentUUID)
	if err != nil {
		return "", err
	}

	url, err := h.storage.MinIO.GetPresignedURL(ctx, doc.OriginalFilePathOSS, 15*time.Minute)
	if err != nil {
		return "", fmt.Errorf("生成预签名URL失败: %w", err)
	}
	return url, nil
}

// HandleDeleteDocument 删除文档及其所有派生数据
func (h *ResumeHandler) HandleDeleteDocument(ctx context.Context, ownerUserID, documentUUID string) error {
	doc, err := h.getOwnedDocument(ctx, ownerUserID, documentUUID)
	if err != nil {
		return err
	}

	if err := h.storage.MinIO.DeleteDocumentObjects(ctx, doc.OriginalFilePathOSS, doc.ParsedTextPathOSS); err != nil {
		// 对象删除失败不阻塞数据库清理，生命周期规则最终会回收
		logger.Warn().
			Err(err).
			Str("document_uuid", documentUUID).
			Msg("删除MinIO对象失败")
	}

	if err := h.storage.MySQL.DeleteResumeDocument(ctx, documentUUID); err != nil {
		return fmt.Errorf("删除文档记录失败: %w", err)
	}

	if doc.RawFileMD5 != "" {
		if err := h.storage.Redis.RemoveRawFileMD5(ctx, doc.RawFileMD5); err != nil {
			logger.Warn().Err(err).Str("md5", doc.RawFileMD5).Msg("清理文件MD5记录失败")
		}
	}
	if err := h.storage.Redis.InvalidateResumeRecord(ctx, documentUUID); err != nil {
		logger.Warn().Err(err).Str("document_uuid", documentUUID).Msg("清理解析结果缓存失败")
	}

	return nil
}

// HandleParseResume 对已上传的文档执行自由文本抽取流水线。
// force为false时优先返回已有的解析结果。
func (h *ResumeHandler) HandleParseResume(ctx context.Context, ownerUserID, documentUUID string, force bool) (*ResumeParseResponse, error) {
	doc, err := h.getOwnedDocument(ctx, ownerUserID, documentUUID)
	if err != nil {
		return nil, err
	}

	if !force {
		if resp, ok := h.loadStoredExtraction(ctx, doc); ok {
			return resp, nil
		}
	}

	if err := h.storage.MySQL.UpdateDocumentProcessingStatus(ctx, documentUUID, models.StatusParsing); err != nil {
		logger.Warn().Err(err).Str("document_uuid", documentUUID).Msg("更新状态为PARSING失败")
	}

	fileBytes, err := h.storage.MinIO.GetOriginalFile(ctx, doc.OriginalFilePathOSS)
	if err != nil {
		h.markParseFailed(ctx, documentUUID, models.StatusFailed, err)
		return nil, NewDownloadError(documentUUID, err.Error())
	}

	text, _, err := h.acquirer.AcquireText(ctx, fileBytes, doc.OriginalFilePathOSS)
	if err != nil {
		if errors.Is(err, parser.ErrNoTextExtracted) {
			h.markParseFailed(ctx, documentUUID, models.StatusNoTextContent, err)
			return nil, fmt.Errorf("文档中未提取到文本内容: %w", err)
		}
		h.markParseFailed(ctx, documentUUID, models.StatusFailed, err)
		return nil, NewExtractError(documentUUID, err.Error())
	}

	result := h.engine.ParseFreeText(text)
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.Int("resume.section_count", len(result.Record.Sections)),
		attribute.String("resume.clean_markdown.preview", tracing.SafeResumeContent(result.CleanMarkdown)),
	)

	parsedObjectKey, err := h.storage.MinIO.UploadParsedMarkdown(ctx, documentUUID, result.CleanMarkdown)
	if err != nil {
		h.markParseFailed(ctx, documentUUID, models.StatusFailed, err)
		return nil, NewStoreError(documentUUID, err.Error())
	}

	recordJSON, err := models.StructToJSON(result.Record)
	if err != nil {
		h.markParseFailed(ctx, documentUUID, models.StatusFailed, err)
		return nil, NewSaveError(documentUUID, err.Error())
	}

	now := time.Now()
	extraction := &models.ResumeExtraction{
		DocumentUUID:  documentUUID,
		SourceMode:    models.SourceModeFreeText,
		RecordJSON:    recordJSON,
		CleanMarkdown: result.CleanMarkdown,
		ExtractorVer:  constants.ExtractorVer,
		ExtractedAt:   now,
	}

	event := storage2.ResumeParsedEvent{
		DocumentUUID:      documentUUID,
		SourceMode:        models.SourceModeFreeText,
		ParsedTextPathOSS: parsedObjectKey,
		SectionCount:      len(result.Record.Sections),
		ProcessingStatus:  models.StatusParsed,
		ParsedAt:          now.Unix(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		h.markParseFailed(ctx, documentUUID, models.StatusFailed, err)
		return nil, NewSaveError(documentUUID, err.Error())
	}

	outbox := &models.OutboxMessage{
		AggregateID:      documentUUID,
		EventType:        "resume.parsed",
		Payload:          string(payload),
		TargetExchange:   h.cfg.RabbitMQ.ResumeEventsExchange,
		TargetRoutingKey: h.cfg.RabbitMQ.ParsedRoutingKey,
		Status:           "PENDING",
	}

	docUpdates := map[string]interface{}{
		"processing_status":    models.StatusParsed,
		"parsed_text_path_oss": parsedObjectKey,
	}

	if err := h.storage.MySQL.CompleteExtractionWithOutbox(ctx, extraction, docUpdates, outbox); err != nil {
		h.markParseFailed(ctx, documentUUID, models.StatusFailed, err)
		return nil, NewSaveError(documentUUID, err.Error())
	}

	if err := h.storage.Redis.CacheResumeRecord(ctx, documentUUID, result.Record); err != nil {
		logger.Warn().Err(err).Str("document_uuid", documentUUID).Msg("缓存解析结果失败")
	}

	return &ResumeParseResponse{
		DocumentUUID:  documentUUID,
		Status:        models.StatusParsed,
		Record:        result.Record,
		CleanMarkdown: result.CleanMarkdown,
	}, nil
}

// loadStoredExtraction 尝试复用缓存或数据库中的既有解析结果
func (h *ResumeHandler) loadStoredExtraction(ctx context.Context, doc *models.ResumeDocument) (*ResumeParseResponse, bool) {
	if doc.ProcessingStatus != models.StatusParsed {
		return nil, false
	}

	extraction, err := h.storage.MySQL.GetExtractionByDocumentUUID(ctx, doc.DocumentUUID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn().Err(err).Str("document_uuid", doc.DocumentUUID).Msg("查询既有提取结果失败")
		}
		return nil, false
	}

	record, err := h.storage.Redis.GetCachedResumeRecord(ctx, doc.DocumentUUID)
	if err != nil {
		if !errors.Is(err, storage2.ErrNotFound) {
			logger.Warn().Err(err).Str("document_uuid", doc.DocumentUUID).Msg("读取解析结果缓存失败")
		}
		record = types.NewResumeRecord()
		if err := json.Unmarshal(extraction.RecordJSON, record); err != nil {
			logger.Warn().Err(err).Str("document_uuid", doc.DocumentUUID).Msg("反序列化既有提取结果失败")
			return nil, false
		}
		// 缓存未命中时回填
		if err := h.storage.Redis.CacheResumeRecord(ctx, doc.DocumentUUID, record); err != nil {
			logger.Warn().Err(err).Str("document_uuid", doc.DocumentUUID).Msg("回填解析结果缓存失败")
		}
	}

	return &ResumeParseResponse{
		DocumentUUID:  doc.DocumentUUID,
		Status:        doc.ProcessingStatus,
		Record:        record,
		CleanMarkdown: extraction.CleanMarkdown,
	}, true
}

// markParseFailed 统一处理解析失败时的状态落库
func (h *ResumeHandler) markParseFailed(ctx context.Context, documentUUID, status string, cause error) {
	logger.Error().
		Err(cause).
		Str("document_uuid", documentUUID).
		Str("status", status).
		Msg("简历解析失败")
	if err := h.storage.MySQL.UpdateDocumentProcessingStatus(ctx, documentUUID, status); err != nil {
		logger.Error().Err(err).Str("document_uuid", documentUUID).Str("status", status).Msg("更新失败状态失败")
	}
}

// HandleParseLaTeX 解析LaTeX源码，不落库，直接返回结构化记录
func (h *ResumeHandler) HandleParseLaTeX(ctx context.Context, source string) (*types.ResumeRecord, error) {
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("LaTeX源码不能为空")
	}
	return h.engine.ParseLaTeX(source), nil
}

// HandleOptimize 调用LLM优化简历内容。
// markdown为空时改用documentUUID对应文档已解析的干净Markdown。
func (h *ResumeHandler) HandleOptimize(ctx context.Context, ownerUserID, documentUUID, markdown, targetRole string) (string, error) {
	if h.optimizer == nil {
		return "", fmt.Errorf("简历优化功能未启用，请配置LLM API密钥")
	}

	content := markdown
	if strings.TrimSpace(content) == "" {
		if documentUUID == "" {
			return "", fmt.Errorf("需要提供markdown内容或document_uuid")
		}
		doc, err := h.getOwnedDocument(ctx, ownerUserID, documentUUID)
		if err != nil {
			return "", err
		}
		extraction, err := h.storage.MySQL.GetExtractionByDocumentUUID(ctx, doc.DocumentUUID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", ErrNotParsed
			}
			return "", fmt.Errorf("查询提取结果失败: %w", err)
		}
		content = extraction.CleanMarkdown
	}

	optimized, err := h.optimizer.Optimize(ctx, content, targetRole)
	if err != nil {
		return "", fmt.Errorf("简历优化失败: %w", err)
	}
	return optimized, nil
}
