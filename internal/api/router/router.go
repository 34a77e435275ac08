package router

import (
	"context"
	"errors"
	"strconv"

	"resume-agent-go/internal/api/handler"
	"resume-agent-go/internal/api/middleware"
	"resume-agent-go/internal/config"
	"resume-agent-go/internal/tracing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"go.opentelemetry.io/otel/trace"
)

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, cfg *config.Config, resumeHandler *handler.ResumeHandler) {
	api := h.Group("/api/v1")

	// 健康检查不需要认证
	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})

	authed := api.Group("/", middleware.JWTAuth(cfg.Auth.JWTSecret))

	authed.POST("/files/upload", func(c context.Context, ctx *app.RequestContext) {
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
			return
		}
		defer file.Close()

		contentType := fileHeader.Header.Get("Content-Type")

		resp, err := resumeHandler.HandleResumeUpload(
			c,
			file,
			fileHeader.Size,
			fileHeader.Filename,
			contentType,
			middleware.CurrentUserID(ctx),
		)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}

		ctx.JSON(consts.StatusOK, resp)
	})

	authed.GET("/files", func(c context.Context, ctx *app.RequestContext) {
		page := ctx.DefaultQuery("page", "1")
		size := ctx.DefaultQuery("size", "20")

		resp, err := resumeHandler.HandleListDocuments(
			c,
			middleware.CurrentUserID(ctx),
			parseIntOr(page, 1),
			parseIntOr(size, 20),
		)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	authed.GET("/files/:uuid/download", func(c context.Context, ctx *app.RequestContext) {
		url, err := resumeHandler.HandleGetDownloadURL(c, middleware.CurrentUserID(ctx), ctx.Param("uuid"))
		if err != nil {
			writeHandlerError(c, ctx, err)
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{"download_url": url})
	})

	authed.DELETE("/files/:uuid", func(c context.Context, ctx *app.RequestContext) {
		if err := resumeHandler.HandleDeleteDocument(c, middleware.CurrentUserID(ctx), ctx.Param("uuid")); err != nil {
			writeHandlerError(c, ctx, err)
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{"status": "deleted"})
	})

	authed.POST("/resume/parse", func(c context.Context, ctx *app.RequestContext) {
		var req struct {
			DocumentUUID string `json:"document_uuid"`
			Force        bool   `json:"force"`
		}
		if err := ctx.BindJSON(&req); err != nil || req.DocumentUUID == "" {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "缺少document_uuid"})
			return
		}

		resp, err := resumeHandler.HandleParseResume(c, middleware.CurrentUserID(ctx), req.DocumentUUID, req.Force)
		if err != nil {
			writeHandlerError(c, ctx, err)
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	authed.POST("/resume/latex", func(c context.Context, ctx *app.RequestContext) {
		var req struct {
			Source string `json:"source"`
		}
		if err := ctx.BindJSON(&req); err != nil || req.Source == "" {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "缺少LaTeX源码"})
			return
		}

		record, err := resumeHandler.HandleParseLaTeX(c, req.Source)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{"record": record})
	})

	authed.POST("/resume/optimize", func(c context.Context, ctx *app.RequestContext) {
		var req struct {
			DocumentUUID string `json:"document_uuid"`
			Markdown     string `json:"markdown"`
			TargetRole   string `json:"target_role"`
		}
		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体格式错误"})
			return
		}

		optimized, err := resumeHandler.HandleOptimize(c, middleware.CurrentUserID(ctx), req.DocumentUUID, req.Markdown, req.TargetRole)
		if err != nil {
			writeHandlerError(c, ctx, err)
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{"optimized_markdown": optimized})
	})
}

// writeHandlerError 将处理器层错误映射为HTTP状态码，并记录到当前span
func writeHandlerError(c context.Context, ctx *app.RequestContext, err error) {
	var status int
	switch {
	case errors.Is(err, handler.ErrDocumentNotFound):
		status = consts.StatusNotFound
	case errors.Is(err, handler.ErrNotOwner):
		status = consts.StatusForbidden
	case errors.Is(err, handler.ErrNotParsed):
		status = consts.StatusConflict
	default:
		status = consts.StatusInternalServerError
	}
	tracing.RecordHTTPError(trace.SpanFromContext(c), err, status)
	ctx.JSON(status, utils.H{"error": err.Error()})
}

func parseIntOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
