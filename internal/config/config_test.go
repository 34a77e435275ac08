package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, ":8080", cfg.Server.Address, "默认监听地址应为:8080")
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "http://localhost:9998", cfg.Tika.ServerURL)
	assert.Equal(t, "qwen-turbo", cfg.LLM.Model)
	assert.Equal(t, "resume.events.exchange", cfg.RabbitMQ.ResumeEventsExchange)
	assert.Equal(t, "resume.uploaded", cfg.RabbitMQ.UploadedRoutingKey)
	assert.Equal(t, "resume.parsed", cfg.RabbitMQ.ParsedRoutingKey)
	assert.Equal(t, "q.raw_resume_uploaded", cfg.RabbitMQ.RawResumeQueue)
	assert.Equal(t, "q.resume_parsed", cfg.RabbitMQ.ParsedResumeQueue)
	assert.Equal(t, 3306, cfg.MySQL.Port)
	assert.Equal(t, 30, cfg.Redis.MD5RecordExpireDays, "MD5去重记录默认保留30天")
	assert.Equal(t, 60*24, cfg.Auth.TokenExpireMinutes)
	assert.Equal(t, 1.0, cfg.Tracing.SampleRatio)
}

func TestLoadConfig(t *testing.T) {
	content := `server:
  address: ":9090"
tika:
  server_url: "http://tika:9998"
rabbitmq:
  url: "amqp://user:pass@mq:5672/"
mysql:
  host: "db"
  port: 3307
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err, "应该能够加载合法的配置文件")

	assert.Equal(t, ":9090", cfg.Server.Address, "文件中的值应该覆盖默认值")
	assert.Equal(t, "http://tika:9998", cfg.Tika.ServerURL)
	assert.Equal(t, "amqp://user:pass@mq:5672/", cfg.RabbitMQ.URL)
	assert.Equal(t, 3307, cfg.MySQL.Port)
	assert.Equal(t, "info", cfg.Logger.Level, "未配置的项应该使用默认值")
	assert.Equal(t, "resume.uploaded", cfg.RabbitMQ.UploadedRoutingKey)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "不存在.yaml"))
	require.Error(t, err, "配置文件不存在时应该返回错误")
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm:\n  api_key: \"file-key\"\n"), 0o644))

	t.Setenv("LLM_API_KEY", "env-key")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.LLM.APIKey, "环境变量应该覆盖文件中的API Key")
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret, "环境变量应该覆盖JWT密钥")
}

func TestMySQLDSN(t *testing.T) {
	c := &MySQLConfig{
		Username: "root",
		Password: "secret",
		Host:     "db",
		Port:     3306,
		Database: "resume",
	}
	dsn := c.MySQLDSN()
	assert.Contains(t, dsn, "root:secret@tcp(db:3306)/resume", "DSN应该包含完整的连接信息")
	assert.Contains(t, dsn, "parseTime=True", "gorm需要parseTime参数")
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 90*time.Second, GetDuration("90s", time.Minute), "合法时长字符串应该被解析")
	assert.Equal(t, time.Minute, GetDuration("", time.Minute), "空字符串应该返回默认值")
	assert.Equal(t, time.Minute, GetDuration("乱写的", time.Minute), "非法字符串应该返回默认值")
}
