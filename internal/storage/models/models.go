package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// 文档处理状态
const (
	StatusUploaded      = "UPLOADED"
	StatusParsing       = "PARSING"
	StatusParsed        = "PARSED"
	StatusNoTextContent = "NO_TEXT_CONTENT"
	StatusFailed        = "FAILED"
)

// 提取来源模式
const (
	SourceModeFreeText = "free_text"
	SourceModeLaTeX    = "latex"
)

// ResumeDocument 简历文档主表，一行对应一次上传
type ResumeDocument struct {
	DocumentUUID        string    `gorm:"type:char(36);primaryKey"`
	OwnerUserID         string    `gorm:"type:char(36);not null;index:idx_rd_owner_user_id"`
	OriginalFilename    string    `gorm:"type:varchar(255)"`
	ContentType         string    `gorm:"type:varchar(100)"`
	FileSizeBytes       int64     `gorm:"type:bigint"`
	RawFileMD5          string    `gorm:"type:char(32);index:idx_rd_raw_file_md5"`
	OriginalFilePathOSS string    `gorm:"type:varchar(1024)"`
	ParsedTextPathOSS   string    `gorm:"type:varchar(1024)"`
	ProcessingStatus    string    `gorm:"type:varchar(50);default:'UPLOADED';index:idx_rd_processing_status"`
	UploadedAt          time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);index:idx_rd_uploaded_at"`
	UpdatedAt           time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`
}

func (ResumeDocument) TableName() string {
	return "resume_documents"
}

// ResumeExtraction 结构化提取结果表，一行对应一次成功提取
type ResumeExtraction struct {
	ExtractionID  uint64         `gorm:"primaryKey;autoIncrement"`
	DocumentUUID  string         `gorm:"type:char(36);not null;uniqueIndex:uq_re_document_uuid"`
	SourceMode    string         `gorm:"type:varchar(20);not null"` // free_text 或 latex
	RecordJSON    datatypes.JSON `gorm:"type:json;not null"`        // 序列化后的ResumeRecord
	CleanMarkdown string         `gorm:"type:mediumtext"`           // 实体删除后的markdown视图
	ExtractorVer  string         `gorm:"type:varchar(50)"`
	ExtractedAt   time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	CreatedAt     time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt     time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`

	Document *ResumeDocument `gorm:"foreignKey:DocumentUUID;references:DocumentUUID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (ResumeExtraction) TableName() string {
	return "resume_extractions"
}

// MapToJSON 将map转换为datatypes.JSON
func MapToJSON(m map[string]interface{}) (datatypes.JSON, error) {
	bytes, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return bytes, nil
}

// StructToJSON 将任意可序列化结构转换为datatypes.JSON
func StructToJSON(v interface{}) (datatypes.JSON, error) {
	bytes, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bytes, nil
}
