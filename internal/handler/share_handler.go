package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/resumake/internal/metrics"
	"github.com/hitoshi/resumake/internal/middleware"
	"github.com/hitoshi/resumake/internal/model"
	"github.com/hitoshi/resumake/internal/share"
	"github.com/hitoshi/resumake/internal/template"
)

// ShareHandler は共有リンク発行と公開レジュメページのHTTPハンドラー。
type ShareHandler struct {
	service   share.Service
	registry  *template.Registry
	users     UserFinder
	collector metrics.MetricsCollector
}

// NewShareHandler はShareHandlerを生成する。
func NewShareHandler(
	service share.Service,
	registry *template.Registry,
	users UserFinder,
	collector metrics.MetricsCollector,
) *ShareHandler {
	return &ShareHandler{
		service:   service,
		registry:  registry,
		users:     users,
		collector: collector,
	}
}

// createShareRequest は共有リンク発行リクエストのボディ。
type createShareRequest struct {
	TemplateID string `json:"template_id"`
}

// CreateShare は現在のレジュメから公開スナップショットを作成し、
// 公開IDと完全なURLを返す。
// POST /api/resume/share
func (h *ShareHandler) CreateShare(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var req createShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewValidationFailedError("リクエストボディの解析に失敗しました"))
		return
	}

	user, err := h.users.FindByID(r.Context(), userID)
	if err != nil {
		handleServiceError(w, fmt.Errorf("ユーザー情報の取得に失敗しました: %w", err))
		return
	}
	if user == nil {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewUserNotFoundError())
		return
	}

	result, err := h.service.CreateSnapshot(r.Context(), userID, req.TemplateID, user.UserIdentity())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.collector != nil {
		h.collector.RecordShareCreated()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result)
}

// PublicResume は公開IDで共有されたレジュメをHTMLページとして返す。
// 認証不要。スナップショットに記録されたテンプレートで描画する。
// GET /resume/{publicId}
func (h *ShareHandler) PublicResume(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "publicId")

	snapshot, err := h.service.ResolvePublic(r.Context(), publicID)
	if err != nil {
		h.recordPublicView(false)

		var apiErr *model.APIError
		if errors.As(err, &apiErr) && apiErr.Code == model.ErrCodeResumeNotFound {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(notFoundPage()))
			return
		}
		handleServiceError(w, err)
		return
	}

	tmpl := h.registry.ByID(snapshot.TemplateID)
	fragment, err := tmpl.Renderer().Render(snapshot.ResumeData(), snapshot.Identity())
	if err != nil {
		h.recordPublicView(false)
		handleServiceError(w, err)
		return
	}

	h.recordPublicView(true)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(publicPage(snapshot.PersonalInfo.Name, tmpl.Name, fragment)))
}

func (h *ShareHandler) recordPublicView(found bool) {
	if h.collector != nil {
		h.collector.RecordPublicView(found)
	}
}

// publicPage はレンダラーのフラグメントを公開閲覧用の完全なHTML文書に包む。
// ヘッダーバナーに使用テンプレート名を表示する。
func publicPage(ownerName, templateName string, fragment []byte) string {
	title := ownerName
	if title == "" {
		title = "Resume"
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="robots" content="noindex">
<title>%s</title>
<style>%s
  .public-banner { background: #f5f7fa; border-bottom: 1px solid #cbd2d9; padding: 8px 24px;
    font-size: 12px; color: #52606d; }
</style>
</head>
<body>
<div class="public-banner">Shared resume &middot; %s template</div>
%s
</body>
</html>`, html.EscapeString(title), template.BaseCSS, html.EscapeString(templateName), fragment)
}

// notFoundPage は存在しない公開IDに対する案内ページ。
func notFoundPage() string {
	return `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Resume not found</title>
</head>
<body>
<h1>Resume not found</h1>
<p>この共有リンクは存在しないか、すでに無効になっています。リンクが正しいか確認してください。</p>
</body>
</html>`
}
