package storage

import "time"

// ResumeUploadedEvent 简历上传事件
// 文档入库并完成MD5查重后，通过outbox发布到resume.uploaded路由键。
type ResumeUploadedEvent struct {
	DocumentUUID        string    `json:"document_uuid"`            // 文档UUID，主键
	OwnerUserID         string    `json:"owner_user_id"`            // 上传者ID
	OriginalFilename    string    `json:"original_filename"`        // 原始文件名
	ContentType         string    `json:"content_type,omitempty"`   // MIME类型
	FileSizeBytes       int64     `json:"file_size_bytes"`          // 文件大小
	OriginalFilePathOSS string    `json:"original_file_path_oss"`   // MinIO中的对象路径
	RawFileMD5          string    `json:"raw_file_md5,omitempty"`   // 原始文件的MD5，用于失败时回滚
	UploadedAt          time.Time `json:"uploaded_at"`              // 上传时间
}

// ResumeParsedEvent 简历解析完成事件
// 抽取流水线结束后发布到resume.parsed路由键，下游按状态决定后续处理。
type ResumeParsedEvent struct {
	DocumentUUID      string `json:"document_uuid"`                  // 文档UUID
	SourceMode        string `json:"source_mode"`                    // free_text 或 latex
	ParsedTextPathOSS string `json:"parsed_text_path_oss,omitempty"` // 解析文本在MinIO中的路径
	SectionCount      int    `json:"section_count,omitempty"`        // 识别出的段落数
	ProcessingStatus  string `json:"processing_status"`              // 处理状态
	ParsedAt          int64  `json:"parsed_at,omitempty"`            // 解析完成Unix时间戳
	Error             string `json:"error,omitempty"`                // 错误信息
}
