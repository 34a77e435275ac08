package types

import "time"

// SectionType 表示简历章节类型
type SectionType string

const (
	// SectionContact 联系方式章节
	SectionContact SectionType = "CONTACT"
	// SectionEducation 教育经历章节
	SectionEducation SectionType = "EDUCATION"
	// SectionExperience 工作经历章节
	SectionExperience SectionType = "EXPERIENCE"
	// SectionSkills 技能章节
	SectionSkills SectionType = "SKILLS"
	// SectionProjects 项目经历章节
	SectionProjects SectionType = "PROJECTS"
	// SectionCertifications 证书章节
	SectionCertifications SectionType = "CERTIFICATIONS"
	// SectionAwards 获奖经历章节
	SectionAwards SectionType = "AWARDS"
	// SectionPublications 出版物章节
	SectionPublications SectionType = "PUBLICATIONS"
	// SectionLanguages 语言能力章节
	SectionLanguages SectionType = "LANGUAGES"
	// SectionSummary 个人简介章节
	SectionSummary SectionType = "SUMMARY"
	// SectionUnknown 未分类内容章节
	SectionUnknown SectionType = "UNKNOWN"
)

// ContactInfo 联系人信息
// 所有字段都是可选的，空字符串表示未提取到对应信息
type ContactInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

// ExperienceItem 单条工作经历
// 日期字段保留原文token（例如 "Jun 2021"、"present"），不做日期归一化
type ExperienceItem struct {
	Title       string   `json:"title,omitempty"`
	Company     string   `json:"company,omitempty"`
	Location    string   `json:"location,omitempty"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
	Description []string `json:"description"`
}

// NewExperienceItem 创建工作经历条目，描述列表独立分配，保证不为nil
func NewExperienceItem() *ExperienceItem {
	return &ExperienceItem{Description: []string{}}
}

// EducationItem 单条教育经历
type EducationItem struct {
	Degree         string   `json:"degree,omitempty"`
	Institution    string   `json:"institution,omitempty"`
	Location       string   `json:"location,omitempty"`
	GraduationDate string   `json:"graduation_date,omitempty"`
	GPA            string   `json:"gpa,omitempty"`
	Coursework     []string `json:"relevant_coursework"`
}

// NewEducationItem 创建教育经历条目
func NewEducationItem() *EducationItem {
	return &EducationItem{Coursework: []string{}}
}

// ProjectItem 单条项目经历
type ProjectItem struct {
	Name         string   `json:"name,omitempty"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url,omitempty"`
	Date         string   `json:"date,omitempty"`
}

// NewProjectItem 创建项目经历条目
func NewProjectItem() *ProjectItem {
	return &ProjectItem{Technologies: []string{}}
}

// ResumeRecord 聚合的简历结构化记录
// 一次提取请求构造一个实例，组装完成后视为只读；
// 所有列表/映射字段默认为空容器，而不是nil
type ResumeRecord struct {
	ContactInfo    ContactInfo            `json:"contact_info"`
	Sections       map[string]string      `json:"sections"`
	Experience     []*ExperienceItem      `json:"experience"`
	Education      []*EducationItem       `json:"education"`
	Projects       []*ProjectItem         `json:"projects"`
	Skills         map[string][]string    `json:"skills"`
	Certifications []string               `json:"certifications"`
	Awards         []string               `json:"awards"`
	Publications   []string               `json:"publications"`
	Languages      []string               `json:"languages"`
	Metadata       map[string]interface{} `json:"metadata"`
}

// NewResumeRecord 创建一个所有容器字段均已初始化的空记录
// 每个实例独立分配自己的容器，不共享
func NewResumeRecord() *ResumeRecord {
	return &ResumeRecord{
		Sections:       make(map[string]string),
		Experience:     []*ExperienceItem{},
		Education:      []*EducationItem{},
		Projects:       []*ProjectItem{},
		Skills:         make(map[string][]string),
		Certifications: []string{},
		Awards:         []string{},
		Publications:   []string{},
		Languages:      []string{},
		Metadata:       make(map[string]interface{}),
	}
}

// 文档元数据的公共键
const (
	MetaDocumentClass = "document_class"
	MetaPackages      = "packages"
	MetaSectionCount  = "section_count"
	MetaExtractedAt   = "extracted_at"
)

// StampExtractedAt 写入提取时间戳元数据
func (r *ResumeRecord) StampExtractedAt(t time.Time) {
	r.Metadata[MetaExtractedAt] = t.Format(time.RFC3339)
}

// ParseResult 自由文本管线的完整输出：结构化记录加上
// 已删除提取实体的干净markdown正文
type ParseResult struct {
	Record        *ResumeRecord `json:"record"`
	CleanMarkdown string        `json:"clean_markdown"`
	RawText       string        `json:"-"`
}
