package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"resume-agent-go/internal/config"
	"resume-agent-go/internal/storage/models"
	"resume-agent-go/internal/tracing"
)

var mysqlTracer = otel.Tracer("resume-agent-go/storage/mysql")

// GormTracingPlugin 是一个GORM插件，用于向OpenTelemetry中添加数据库操作的追踪点
type GormTracingPlugin struct {
	tracer         trace.Tracer
	dbName         string
	disableErrSkip bool
}

// Name 返回插件名称
func (p *GormTracingPlugin) Name() string {
	return "GormOpenTelemetryPlugin"
}

// Initialize 注册GORM回调以启用追踪
func (p *GormTracingPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()

	if err := cb.Create().Before("gorm:create").Register("otel:before_create", p.before("CREATE")); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("otel:after_create", p.after()); err != nil {
		return err
	}

	if err := cb.Query().Before("gorm:query").Register("otel:before_query", p.before("SELECT")); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("otel:after_query", p.after()); err != nil {
		return err
	}

	if err := cb.Update().Before("gorm:update").Register("otel:before_update", p.before("UPDATE")); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("otel:after_update", p.after()); err != nil {
		return err
	}

	if err := cb.Delete().Before("gorm:delete").Register("otel:before_delete", p.before("DELETE")); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("otel:after_delete", p.after()); err != nil {
		return err
	}

	if err := cb.Row().Before("gorm:row").Register("otel:before_row", p.before("ROW")); err != nil {
		return err
	}
	if err := cb.Row().After("gorm:row").Register("otel:after_row", p.after()); err != nil {
		return err
	}

	if err := cb.Raw().Before("gorm:raw").Register("otel:before_raw", p.before("RAW")); err != nil {
		return err
	}
	if err := cb.Raw().After("gorm:raw").Register("otel:after_raw", p.after()); err != nil {
		return err
	}

	return nil
}

// before 返回在GORM操作之前执行的回调函数
func (p *GormTracingPlugin) before(operation string) func(db *gorm.DB) {
	return func(db *gorm.DB) {
		if p.disableErrSkip && db.Statement.SkipHooks {
			return
		}

		ctx := db.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}

		tableName := db.Statement.Table
		if tableName == "" {
			tableName = "unknown"
		}

		spanName := fmt.Sprintf("%s %s", operation, tableName)
		opts := []trace.SpanStartOption{
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				semconv.DBSystemMySQL,
				attribute.String("db.name", p.dbName),
				attribute.String("db.operation", operation),
				attribute.String("db.sql.table", tableName),
			),
		}

		sqlStatement := db.Statement.SQL.String()
		if sqlStatement != "" {
			opts = append(opts, trace.WithAttributes(
				attribute.String("db.statement", tracing.SafeSQL(sqlStatement)),
			))
		}

		newCtx, span := p.tracer.Start(ctx, spanName, opts...)

		// 把span塞进语句上下文，after回调里取出来收尾
		db.Statement.Context = context.WithValue(newCtx, "otel-span", span)
	}
}

// after 返回在GORM操作之后执行的回调函数
func (p *GormTracingPlugin) after() func(db *gorm.DB) {
	return func(db *gorm.DB) {
		span, ok := db.Statement.Context.Value("otel-span").(trace.Span)
		if !ok {
			return
		}
		defer span.End()

		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))

		// ErrRecordNotFound是业务正常分支，不按错误上报
		if db.Error != nil {
			if db.Error == gorm.ErrRecordNotFound {
				span.SetAttributes(attribute.String("error.type", "record_not_found"))
				span.SetStatus(codes.Ok, "record not found")
			} else {
				span.SetAttributes(attribute.String("error.type", "database_error"))
				span.SetAttributes(attribute.String("error.message", db.Error.Error()))
				span.RecordError(db.Error)
				span.SetStatus(codes.Error, db.Error.Error())
			}
		} else {
			span.SetStatus(codes.Ok, "")
		}
	}
}

// NewGormTracingPlugin 创建一个新的GORM追踪插件
func NewGormTracingPlugin(dbName string) *GormTracingPlugin {
	return &GormTracingPlugin{
		tracer:         mysqlTracer,
		dbName:         dbName,
		disableErrSkip: true,
	}
}

// Database 关系数据库接口
type Database interface {
	// DB 返回GORM数据库连接实例
	DB() *gorm.DB

	// Close 关闭数据库连接
	Close() error
}

// 确保MySQL实现了Database接口
var _ Database = (*MySQL)(nil)

// MySQL 提供关系数据库功能
type MySQL struct {
	db  *gorm.DB
	cfg *config.MySQLConfig
}

// NewMySQL 创建MySQL客户端并自动迁移表结构
func NewMySQL(cfg *config.MySQLConfig) (*MySQL, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MySQL配置不能为空")
	}

	var logLevel logger.LogLevel
	switch cfg.LogLevel {
	case 1:
		logLevel = logger.Silent
	case 2:
		logLevel = logger.Error
	case 3:
		logLevel = logger.Warn
	case 4:
		logLevel = logger.Info
	default:
		logLevel = logger.Warn
	}

	gormConfig := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logLevel),
		PrepareStmt:                              true,
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	}

	db, err := gorm.Open(mysql.Open(cfg.MySQLDSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("连接MySQL失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	m := &MySQL{
		db:  db,
		cfg: cfg,
	}

	if err := db.Use(NewGormTracingPlugin(cfg.Database)); err != nil {
		return nil, fmt.Errorf("注册追踪插件失败: %w", err)
	}

	if err := m.autoMigrateSchema(); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
		return nil, fmt.Errorf("自动迁移数据库结构失败: %w", err)
	}

	return m, nil
}

// autoMigrateSchema 使用GORM自动迁移数据库表结构
func (m *MySQL) autoMigrateSchema() error {
	currentLogger := m.db.Logger

	// 迁移期间关闭SQL日志，避免刷屏
	silentLogger := logger.New(
		log.New(log.Writer(), "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	silentDB := m.db.Session(&gorm.Session{Logger: silentLogger})

	err := silentDB.AutoMigrate(
		&models.ResumeDocument{},
		&models.ResumeExtraction{},
		&models.OutboxMessage{},
	)

	m.db = m.db.Session(&gorm.Session{Logger: currentLogger})

	if err != nil {
		return fmt.Errorf("GORM自动迁移失败: %w", err)
	}
	return nil
}

// DB 返回GORM数据库连接实例
func (m *MySQL) DB() *gorm.DB {
	return m.db
}

// Close 关闭数据库连接
func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	return sqlDB.Close()
}

// CreateDocumentWithOutbox 在同一事务中落库文档记录和发件箱消息
// 保证"文档已入库"与"上传事件待投递"要么都发生要么都不发生
func (m *MySQL) CreateDocumentWithOutbox(ctx context.Context, doc *models.ResumeDocument, outbox *models.OutboxMessage) error {
	ctx, span := mysqlTracer.Start(ctx, "MySQL.CreateDocumentWithOutbox",
		trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		semconv.DBSystemMySQL,
		attribute.String("db.name", m.cfg.Database),
		attribute.String("document.uuid", doc.DocumentUUID),
		attribute.String("document.filename",
			tracing.SafeAttributeValue("filename", doc.OriginalFilename, tracing.DefaultMaxLength)),
	)

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(doc).Error; err != nil {
			return fmt.Errorf("插入文档记录失败: %w", err)
		}
		if outbox != nil {
			if err := tx.Create(outbox).Error; err != nil {
				return fmt.Errorf("插入发件箱消息失败: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// GetResumeDocumentByUUID 按UUID查询文档记录
func (m *MySQL) GetResumeDocumentByUUID(ctx context.Context, documentUUID string) (*models.ResumeDocument, error) {
	var doc models.ResumeDocument
	err := m.db.WithContext(ctx).Where("document_uuid = ?", documentUUID).First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListResumeDocumentsByOwner 分页查询某用户的文档记录，按上传时间倒序
func (m *MySQL) ListResumeDocumentsByOwner(ctx context.Context, ownerUserID string, offset, limit int) ([]models.ResumeDocument, int64, error) {
	var docs []models.ResumeDocument
	var total int64

	query := m.db.WithContext(ctx).Model(&models.ResumeDocument{}).Where("owner_user_id = ?", ownerUserID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("uploaded_at DESC").Offset(offset).Limit(limit).Find(&docs).Error
	if err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

// UpdateDocumentProcessingStatus 更新文档处理状态
func (m *MySQL) UpdateDocumentProcessingStatus(ctx context.Context, documentUUID string, status string) error {
	return m.db.WithContext(ctx).Model(&models.ResumeDocument{}).
		Where("document_uuid = ?", documentUUID).
		Update("processing_status", status).Error
}

// UpdateDocumentFields 按需更新文档记录的任意字段
func (m *MySQL) UpdateDocumentFields(ctx context.Context, documentUUID string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return m.db.WithContext(ctx).Model(&models.ResumeDocument{}).
		Where("document_uuid = ?", documentUUID).
		Updates(updates).Error
}

// DeleteResumeDocument 删除文档记录及其提取结果
func (m *MySQL) DeleteResumeDocument(ctx context.Context, documentUUID string) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_uuid = ?", documentUUID).Delete(&models.ResumeExtraction{}).Error; err != nil {
			return err
		}
		return tx.Where("document_uuid = ?", documentUUID).Delete(&models.ResumeDocument{}).Error
	})
}

// SaveExtraction 保存结构化提取结果，同一文档重复提取时覆盖旧结果
func (m *MySQL) SaveExtraction(ctx context.Context, extraction *models.ResumeExtraction) error {
	return m.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "document_uuid"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"source_mode", "record_json", "clean_markdown", "extractor_ver", "extracted_at",
			}),
		}).Create(extraction).Error
}

// CompleteExtractionWithOutbox 在同一事务中保存提取结果、更新文档状态并记录解析完成事件
func (m *MySQL) CompleteExtractionWithOutbox(ctx context.Context, extraction *models.ResumeExtraction, docUpdates map[string]interface{}, outbox *models.OutboxMessage) error {
	ctx, span := mysqlTracer.Start(ctx, "MySQL.CompleteExtractionWithOutbox",
		trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		semconv.DBSystemMySQL,
		attribute.String("db.name", m.cfg.Database),
		attribute.String("document.uuid", extraction.DocumentUUID),
	)

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "document_uuid"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"source_mode", "record_json", "clean_markdown", "extractor_ver", "extracted_at",
				}),
			}).Create(extraction).Error; err != nil {
			return fmt.Errorf("保存提取结果失败: %w", err)
		}
		if len(docUpdates) > 0 {
			if err := tx.Model(&models.ResumeDocument{}).
				Where("document_uuid = ?", extraction.DocumentUUID).
				Updates(docUpdates).Error; err != nil {
				return fmt.Errorf("更新文档状态失败: %w", err)
			}
		}
		if outbox != nil {
			if err := tx.Create(outbox).Error; err != nil {
				return fmt.Errorf("插入发件箱消息失败: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// GetExtractionByDocumentUUID 查询文档的结构化提取结果
func (m *MySQL) GetExtractionByDocumentUUID(ctx context.Context, documentUUID string) (*models.ResumeExtraction, error) {
	var extraction models.ResumeExtraction
	err := m.db.WithContext(ctx).Where("document_uuid = ?", documentUUID).First(&extraction).Error
	if err != nil {
		return nil, err
	}
	return &extraction, nil
}
