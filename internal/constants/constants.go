package constants

import "time"

const (
	// ExtractorVer 提取引擎版本，写入提取记录用于追溯
	ExtractorVer = "1.0"

	// RecordCacheDuration 结构化记录缓存时长
	RecordCacheDuration = 24 * time.Hour
)

// Redis Key 前缀和格式常量
// 使用统一的命名规范: app:{module}:{entity}:{unique_id}
const (
	// AppPrefix 是所有Redis Key的统一应用前缀
	AppPrefix = "app"

	// ResumeModulePrefix 简历模块
	ResumeModulePrefix = "resume"
	// FileModulePrefix 文件模块
	FileModulePrefix = "file"

	// EntityRecord 结构化提取记录实体
	EntityRecord = "record"
	// EntityDedupSet 去重集合实体
	EntityDedupSet = "dedup_set"
	// EntityMD5ToUUID MD5到UUID的映射实体
	EntityMD5ToUUID = "md5_to_uuid"

	// KeyResumeRecord 结构化提取结果缓存 (STRING, JSON)
	// 格式: app:resume:record:{documentUUID}
	KeyResumeRecord = AppPrefix + ":" + ResumeModulePrefix + ":" + EntityRecord + ":%s"

	// KeyFileMD5Set 文件MD5集合，用于上传快速去重 (SET)
	// 格式: app:file:dedup_set
	KeyFileMD5Set = AppPrefix + ":" + FileModulePrefix + ":" + EntityDedupSet

	// KeyFileMD5ToDocumentUUID MD5到DocumentUUID的映射 (STRING)
	// 格式: app:file:md5_to_uuid:{md5}
	KeyFileMD5ToDocumentUUID = AppPrefix + ":" + FileModulePrefix + ":" + EntityMD5ToUUID + ":%s"
)
