package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resume-agent-go/internal/api/handler"
	"resume-agent-go/internal/api/router"
	"resume-agent-go/internal/config"
	"resume-agent-go/internal/extractor"
	"resume-agent-go/internal/llm"
	appCoreLogger "resume-agent-go/internal/logger"
	"resume-agent-go/internal/outbox"
	"resume-agent-go/internal/parser"
	"resume-agent-go/internal/storage"
	"resume-agent-go/internal/tracing"

	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/spf13/pflag"
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "Path to config file")
	pflag.Parse()

	// 1. 加载配置文件
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("加载配置文件失败: %v", err)
	}

	// 2. 初始化日志系统
	initLogger(cfg)

	// 3. 初始化链路追踪
	ctx := context.Background()
	shutdownTracing, err := tracing.Init(ctx, tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Tracing.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		appCoreLogger.Fatal().Err(err).Msg("初始化链路追踪失败")
	}

	// 4. 初始化存储管理器
	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		appCoreLogger.Fatal().Err(err).Msg("初始化存储管理器失败")
	}
	defer storageManager.Close()

	// 5. 初始化业务处理器
	resumeHandler, err := initializeHandler(ctx, cfg, storageManager)
	if err != nil {
		appCoreLogger.Fatal().Err(err).Msg("初始化简历处理器失败")
	}
	appCoreLogger.Info().Msg("简历处理器初始化成功")

	// 6. 启动发件箱中继
	var messageRelay *outbox.MessageRelay
	if storageManager.MySQL != nil && storageManager.RabbitMQ != nil {
		relayLogger := log.New(os.Stderr, "[OutboxRelay] ", log.LstdFlags)
		messageRelay = outbox.NewMessageRelay(storageManager.MySQL.DB(), storageManager.RabbitMQ, relayLogger)
		messageRelay.Start()
		appCoreLogger.Info().Msg("发件箱消息中继已启动")
	} else {
		appCoreLogger.Warn().Msg("MySQL或RabbitMQ不可用，发件箱中继未启动")
	}

	// 7. 创建HTTP服务器
	tracer, tracerCfg := hertztracing.NewServerTracer()
	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
		tracer,
	)
	h.Use(hertztracing.ServerMiddleware(tracerCfg))

	// 8. 注册路由
	router.RegisterRoutes(h, cfg, resumeHandler)
	appCoreLogger.Info().Str("address", cfg.Server.Address).Msg("HTTP路由注册成功，服务器启动中")

	go func() {
		if err := h.Run(); err != nil {
			appCoreLogger.Fatal().Err(err).Msg("启动HTTP服务器失败")
		}
	}()

	// 9. 等待终止信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appCoreLogger.Info().Msg("接收到终止信号，正在优雅退出...")

	if messageRelay != nil {
		messageRelay.Stop()
		appCoreLogger.Info().Msg("消息中继服务已停止")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		appCoreLogger.Error().Err(err).Msg("服务器关闭失败")
	}
	if shutdownTracing != nil {
		if err := shutdownTracing(shutdownCtx); err != nil {
			appCoreLogger.Error().Err(err).Msg("链路追踪关闭失败")
		}
	}
	appCoreLogger.Info().Msg("优雅退出完成")
}

// 初始化日志系统
func initLogger(cfg *config.Config) {
	logConfig := appCoreLogger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	}
	if logConfig.Level == "" {
		logConfig.Level = "info"
	}
	if logConfig.TimeFormat == "" {
		logConfig.TimeFormat = time.RFC3339
	}

	appCoreLogger.Init(logConfig)

	appCoreLogger.Logger = appCoreLogger.Logger.With().
		Str("app", "resume-agent-go").
		Str("version", "1.0.0").
		Logger()

	// 让hertz框架日志走同一个zerolog实例
	hertzCompatibleLogger := hertzadapter.From(appCoreLogger.Logger)
	glog.SetLogger(hertzCompatibleLogger)
}

func initializeHandler(ctx context.Context, cfg *config.Config, storageManager *storage.Storage) (*handler.ResumeHandler, error) {
	if storageManager == nil {
		return nil, fmt.Errorf("存储管理器未初始化")
	}
	if storageManager.MinIO == nil {
		return nil, fmt.Errorf("MinIO实例未初始化")
	}
	if storageManager.MySQL == nil {
		return nil, fmt.Errorf("MySQL实例未初始化")
	}
	if storageManager.Redis == nil {
		return nil, fmt.Errorf("Redis实例未初始化")
	}

	// 文本获取链：eino主解码器 + Tika备用解码器
	primaryDecoder, err := parser.NewEinoPDFDecoder(ctx)
	if err != nil {
		return nil, fmt.Errorf("初始化PDF解码器失败: %w", err)
	}

	var fallbackDecoder parser.TextDecoder
	if cfg.Tika.ServerURL != "" {
		fallbackDecoder = parser.NewTikaPDFDecoder(cfg.Tika.ServerURL)
		appCoreLogger.Info().Str("server_url", cfg.Tika.ServerURL).Msg("Tika备用解码器已启用")
	}
	acquirer := parser.NewTextAcquirer(primaryDecoder, fallbackDecoder)

	// 抽取引擎
	engine := extractor.NewEngine(extractor.NewProseTagger())

	// LLM简历优化器（可选）
	var optimizer *llm.ResumeOptimizer
	if cfg.LLM.APIKey != "" {
		chatModel, err := llm.NewOpenAICompatChatModel(
			cfg.LLM.APIKey,
			cfg.LLM.Model,
			cfg.LLM.APIURL,
			llm.WithTemperature(float32(cfg.LLM.Temperature)),
			llm.WithMaxTokens(cfg.LLM.MaxTokens),
			llm.WithRequestTimeout(config.GetDuration(cfg.LLM.RequestTimeout, 60*time.Second)),
		)
		if err != nil {
			appCoreLogger.Warn().Err(err).Msg("初始化LLM模型失败，优化功能不可用")
		} else {
			optimizer, err = llm.NewResumeOptimizer(chatModel,
				llm.WithRetry(cfg.LLM.MaxRetries, time.Duration(cfg.LLM.RetryWaitSeconds)*time.Second),
			)
			if err != nil {
				appCoreLogger.Warn().Err(err).Msg("初始化简历优化器失败")
			}
		}
	} else {
		appCoreLogger.Info().Msg("未配置LLM API密钥，简历优化接口将不可用")
	}

	return handler.NewResumeHandler(cfg, storageManager, acquirer, engine, optimizer), nil
}
