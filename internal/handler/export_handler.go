package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hitoshi/resumake/internal/export"
	"github.com/hitoshi/resumake/internal/metrics"
	"github.com/hitoshi/resumake/internal/middleware"
	"github.com/hitoshi/resumake/internal/model"
	"github.com/hitoshi/resumake/internal/resume"
	"github.com/hitoshi/resumake/internal/template"
)

// UserFinder はユーザーの表示情報取得に必要なインターフェース。
// repository.UserRepositoryの部分集合として定義する。
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// ExportHandler はプレビュー・PDF/DOCXエクスポートのHTTPハンドラー。
type ExportHandler struct {
	resumeService resume.Service
	exportService export.Service
	registry      *template.Registry
	users         UserFinder
	collector     metrics.MetricsCollector
}

// NewExportHandler はExportHandlerを生成する。
func NewExportHandler(
	resumeService resume.Service,
	exportService export.Service,
	registry *template.Registry,
	users UserFinder,
	collector metrics.MetricsCollector,
) *ExportHandler {
	return &ExportHandler{
		resumeService: resumeService,
		exportService: exportService,
		registry:      registry,
		users:         users,
		collector:     collector,
	}
}

// loadResumeAndIdentity は認証済みユーザーの集約と表示情報を取得する。
func (h *ExportHandler) loadResumeAndIdentity(r *http.Request) (*model.ResumeData, model.UserIdentity, error) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		return nil, model.UserIdentity{}, model.NewUnauthorizedError()
	}

	data, err := h.resumeService.LoadResume(r.Context(), userID)
	if err != nil {
		return nil, model.UserIdentity{}, err
	}

	user, err := h.users.FindByID(r.Context(), userID)
	if err != nil {
		return nil, model.UserIdentity{}, fmt.Errorf("ユーザー情報の取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.UserIdentity{}, model.NewUserNotFoundError()
	}

	return data, user.UserIdentity(), nil
}

// Preview は指定テンプレートで描画したHTMLフラグメントを返す。
// 未知のテンプレートIDは既定テンプレートへフォールバックする。
// GET /api/resume/preview?template=modern
func (h *ExportHandler) Preview(w http.ResponseWriter, r *http.Request) {
	data, identity, err := h.loadResumeAndIdentity(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	tmpl := h.registry.ByID(r.URL.Query().Get("template"))
	fragment, err := tmpl.Renderer().Render(data, identity)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.collector != nil {
		h.collector.RecordRender(tmpl.ID)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(fragment)
}

// ExportPDF は指定テンプレートでレジュメをPDFへ書き出す。
// POST /api/resume/export/pdf?template=modern
func (h *ExportHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	data, identity, err := h.loadResumeAndIdentity(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	templateID := r.URL.Query().Get("template")

	start := time.Now()
	pdf, err := h.exportService.ExportPDF(r.Context(), data, identity, templateID)
	h.recordExport("pdf", err == nil, time.Since(start))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", attachmentDisposition(model.DisplayNameFor(data, identity), "pdf"))
	w.Write(pdf)
}

// ExportDOCX はレジュメをWord文書へ書き出す。
// POST /api/resume/export/docx
func (h *ExportHandler) ExportDOCX(w http.ResponseWriter, r *http.Request) {
	data, identity, err := h.loadResumeAndIdentity(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	start := time.Now()
	doc, err := h.exportService.ExportDOCX(r.Context(), data, identity)
	h.recordExport("docx", err == nil, time.Since(start))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", attachmentDisposition(model.DisplayNameFor(data, identity), "docx"))
	w.Write(doc)
}

func (h *ExportHandler) recordExport(format string, success bool, elapsed time.Duration) {
	if h.collector == nil {
		return
	}
	h.collector.RecordExport(format, success)
	h.collector.RecordExportLatency(format, elapsed)
}

// attachmentDisposition はダウンロードファイル名を組み立てる。
// 名前が空の場合は "resume" を使う。
func attachmentDisposition(name, ext string) string {
	if name == "" {
		name = "resume"
	}
	return fmt.Sprintf("attachment; filename=%q", name+"."+ext)
}
