package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/resumake/internal/metrics"
	"github.com/hitoshi/resumake/internal/middleware"
	"github.com/hitoshi/resumake/internal/model"
	"github.com/hitoshi/resumake/internal/resume"
)

// ResumeHandler はレジュメの読み込み・セクション保存のHTTPハンドラー。
type ResumeHandler struct {
	service   resume.Service
	collector metrics.MetricsCollector
}

// NewResumeHandler はResumeHandlerを生成する。
func NewResumeHandler(service resume.Service, collector metrics.MetricsCollector) *ResumeHandler {
	return &ResumeHandler{
		service:   service,
		collector: collector,
	}
}

// GetResume は全セクションの集約を返す。
// 未作成のセクションは空デフォルトで補完されるため、新規ユーザーでも200を返す。
// GET /api/resume
func (h *ResumeHandler) GetResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	data, err := h.service.LoadResume(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

// SaveSection は指定セクションのみを保存する。
// ボディの型はセクションごとに異なり、他のセクションには影響しない。
// PUT /api/resume/sections/{section}
func (h *ResumeHandler) SaveSection(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	section := chi.URLParam(r, "section")

	if err := h.decodeAndSave(r, userID, model.Section(section)); err != nil {
		handleServiceError(w, err)
		return
	}

	if h.collector != nil {
		h.collector.RecordSectionSave(section)
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeAndSave はセクション種別に応じた型でボディをデコードし保存する。
func (h *ResumeHandler) decodeAndSave(r *http.Request, userID string, section model.Section) error {
	dec := json.NewDecoder(r.Body)

	switch section {
	case model.SectionPersonalInfo:
		var info model.PersonalInfo
		if err := dec.Decode(&info); err != nil {
			return model.NewValidationFailedError("リクエストボディの解析に失敗しました")
		}
		return h.service.SavePersonalInfo(r.Context(), userID, info)

	case model.SectionEducation:
		var entries []model.EducationEntry
		if err := dec.Decode(&entries); err != nil {
			return model.NewValidationFailedError("リクエストボディの解析に失敗しました")
		}
		return h.service.SaveEducation(r.Context(), userID, entries)

	case model.SectionExperience:
		var entries []model.ExperienceEntry
		if err := dec.Decode(&entries); err != nil {
			return model.NewValidationFailedError("リクエストボディの解析に失敗しました")
		}
		return h.service.SaveExperience(r.Context(), userID, entries)

	case model.SectionSkills:
		var entries []model.SkillEntry
		if err := dec.Decode(&entries); err != nil {
			return model.NewValidationFailedError("リクエストボディの解析に失敗しました")
		}
		return h.service.SaveSkills(r.Context(), userID, entries)

	case model.SectionCertifications:
		var entries []model.CertificationEntry
		if err := dec.Decode(&entries); err != nil {
			return model.NewValidationFailedError("リクエストボディの解析に失敗しました")
		}
		return h.service.SaveCertifications(r.Context(), userID, entries)

	case model.SectionLanguages:
		var entries []model.LanguageEntry
		if err := dec.Decode(&entries); err != nil {
			return model.NewValidationFailedError("リクエストボディの解析に失敗しました")
		}
		return h.service.SaveLanguages(r.Context(), userID, entries)

	case model.SectionAchievements:
		var entries []model.AchievementEntry
		if err := dec.Decode(&entries); err != nil {
			return model.NewValidationFailedError("リクエストボディの解析に失敗しました")
		}
		return h.service.SaveAchievements(r.Context(), userID, entries)

	default:
		return model.NewInvalidSectionError(string(section))
	}
}

// --- ヘルパー関数 ---

// apiErrorResponse は統一エラーフォーマットのレスポンス。
type apiErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(apiErrorResponse{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeAPIErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	})
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeInvalidSection, model.ErrCodeValidationFailed:
		return http.StatusBadRequest
	case model.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case model.ErrCodeResumeNotFound, model.ErrCodeUserNotFound:
		return http.StatusNotFound
	case model.ErrCodeSaveFailed, model.ErrCodeExportFailed, model.ErrCodeShareFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
