package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hitoshi/resumake/internal/template"
)

// TemplateHandler はテンプレートカタログのHTTPハンドラー。
type TemplateHandler struct {
	registry *template.Registry
}

// NewTemplateHandler はTemplateHandlerを生成する。
func NewTemplateHandler(registry *template.Registry) *TemplateHandler {
	return &TemplateHandler{registry: registry}
}

// ListTemplates は選択可能なテンプレートの一覧を固定順で返す。
// GET /api/templates
func (h *TemplateHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"templates": h.registry.List(),
		"default":   template.DefaultTemplateID,
	})
}
