package extractor

import "strings"

// 本文件集中维护提取器使用的静态词表。
// 全部在包初始化时构建一次，运行期间只读。

// sectionHeaderVocab 常见简历章节标题词表，用于标题行识别
var sectionHeaderVocab = map[string]struct{}{}

func init() {
	for _, h := range []string{
		"EXPERIENCE", "WORK EXPERIENCE", "EMPLOYMENT", "CAREER",
		"EDUCATION", "ACADEMIC BACKGROUND", "QUALIFICATIONS",
		"SKILLS", "TECHNICAL SKILLS", "CORE COMPETENCIES",
		"SUMMARY", "PROFILE", "OBJECTIVE", "ABOUT",
		"PROJECTS", "KEY PROJECTS", "ACHIEVEMENTS",
		"CERTIFICATIONS", "CERTIFICATES", "LICENSES",
		"CONTACT", "CONTACT INFORMATION", "PERSONAL DETAILS",
		"PUBLICATIONS", "AWARDS", "HONORS", "LANGUAGES",
	} {
		sectionHeaderVocab[h] = struct{}{}
	}
}

// 各字段类别接受的章节标题同义词，按优先级排列，
// 匹配不区分大小写，第一个命中的章节正文生效
var (
	experienceSectionNames = []string{
		"Experience", "Work Experience", "Employment", "Career",
		"Professional Experience", "Work History",
	}
	educationSectionNames = []string{
		"Education", "Academic Background", "Qualifications", "Academics",
	}
	projectSectionNames = []string{
		"Projects", "Key Projects", "Personal Projects", "Academic Projects",
	}
	skillSectionNames = []string{
		"Skills", "Technical Skills", "Core Competencies", "Technologies",
	}
	certificationSectionNames = []string{
		"Certifications", "Certificates", "Licenses",
	}
	awardSectionNames = []string{
		"Awards", "Honors", "Achievements", "Honors and Awards",
	}
	publicationSectionNames = []string{
		"Publications", "Research", "Papers",
	}
	languageSectionNames = []string{
		"Languages",
	}
)

// techStopWords 技术名候选token的停用词
var techStopWords = map[string]struct{}{}

// techNoiseWords 非停用词但同样无信息量的噪声token
var techNoiseWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "a", "an", "and", "or", "of", "in", "on", "for", "to",
		"with", "using", "by", "at", "as", "is", "are", "was", "were",
		"this", "that", "it", "其他", "other", "others", "etc", "various",
	} {
		techStopWords[w] = struct{}{}
	}
	for _, w := range []string{
		"version", "versions", "latest", "new", "old", "custom", "basic",
	} {
		techNoiseWords[w] = struct{}{}
	}
}

// techCanonicalTable 技术名称规范化表：修正大小写和常见拼法
// 键为清洗后（首字母大写化）的token
var techCanonicalTable = map[string]string{
	"Javascript":    "JavaScript",
	"Typescript":    "TypeScript",
	"Nodejs":        "Node.js",
	"Node":          "Node.js",
	"Reactjs":       "React",
	"React.js":      "React",
	"Vuejs":         "Vue.js",
	"Vue":           "Vue.js",
	"Nextjs":        "Next.js",
	"Mongodb":       "MongoDB",
	"Postgresql":    "PostgreSQL",
	"Postgres":      "PostgreSQL",
	"Mysql":         "MySQL",
	"Sqlite":        "SQLite",
	"Redis":         "Redis",
	"Graphql":       "GraphQL",
	"Restapi":       "REST API",
	"Rest Api":      "REST API",
	"Html":          "HTML",
	"Css":           "CSS",
	"Php":           "PHP",
	"Golang":        "Go",
	"Dotnet":        ".NET",
	".net":          ".NET",
	"Aws":           "AWS",
	"Gcp":           "GCP",
	"Kubernetes":    "Kubernetes",
	"K8s":           "Kubernetes",
	"Tensorflow":    "TensorFlow",
	"Pytorch":       "PyTorch",
	"Scikit-learn":  "scikit-learn",
	"Opencv":        "OpenCV",
	"Numpy":         "NumPy",
	"Pandas":        "pandas",
	"Fastapi":       "FastAPI",
	"Django":        "Django",
	"Flask":         "Flask",
	"Springboot":    "Spring Boot",
	"Spring Boot":   "Spring Boot",
	"Elasticsearch": "Elasticsearch",
	"Rabbitmq":      "RabbitMQ",
	"Kafka":         "Kafka",
	"Grpc":          "gRPC",
	"Ci/cd":         "CI/CD",
}

// knownTechNames 没有提示词时兜底识别用的常见语言/框架/平台名
var knownTechNames = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"python", "java", "javascript", "typescript", "go", "golang",
		"c", "c++", "c#", "rust", "ruby", "php", "swift", "kotlin",
		"scala", "r", "matlab", "perl", "html", "css", "sql",
		"react", "angular", "vue", "svelte", "django", "flask",
		"fastapi", "spring", "express", "rails", "laravel",
		"docker", "kubernetes", "terraform", "ansible", "jenkins",
		"aws", "azure", "gcp", "heroku", "linux", "git",
		"tensorflow", "pytorch", "keras", "numpy", "pandas",
		"spark", "hadoop", "kafka", "redis", "elasticsearch",
		"mongodb", "postgresql", "mysql", "sqlite", "oracle",
		"graphql", "grpc", "rest",
	} {
		knownTechNames[w] = struct{}{}
	}
}

// techCueWords 项目描述中引出技术列表的提示词，按出现优先级排列
var techCueWords = []string{
	"built with", "developed using", "implemented in", "written in",
	"tech stack:", "technologies:", "frameworks:", "libraries:",
	"languages:", "stack:", "tools:", "using", "with",
}

// isStopWord 判断token是否为停用词（大小写不敏感）
func isStopWord(token string) bool {
	_, ok := techStopWords[strings.ToLower(token)]
	return ok
}

// isNoiseWord 判断token是否为噪声词
func isNoiseWord(token string) bool {
	_, ok := techNoiseWords[strings.ToLower(token)]
	return ok
}

// isKnownTechName 判断token是否命中常见技术名词表
func isKnownTechName(token string) bool {
	_, ok := knownTechNames[strings.ToLower(token)]
	return ok
}
