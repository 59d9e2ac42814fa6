package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/resumake/internal/middleware"
	"github.com/hitoshi/resumake/internal/model"
)

// --- モック定義 ---

type mockResumeService struct {
	loadResumeFn          func(ctx context.Context, userID string) (*model.ResumeData, error)
	savePersonalInfoFn    func(ctx context.Context, userID string, info model.PersonalInfo) error
	saveEducationFn       func(ctx context.Context, userID string, entries []model.EducationEntry) error
	saveExperienceFn      func(ctx context.Context, userID string, entries []model.ExperienceEntry) error
	saveSkillsFn          func(ctx context.Context, userID string, entries []model.SkillEntry) error
	saveCertificationsFn  func(ctx context.Context, userID string, entries []model.CertificationEntry) error
	saveLanguagesFn       func(ctx context.Context, userID string, entries []model.LanguageEntry) error
	saveAchievementsFn    func(ctx context.Context, userID string, entries []model.AchievementEntry) error
}

func (m *mockResumeService) LoadResume(ctx context.Context, userID string) (*model.ResumeData, error) {
	if m.loadResumeFn != nil {
		return m.loadResumeFn(ctx, userID)
	}
	return &model.ResumeData{}, nil
}

func (m *mockResumeService) SavePersonalInfo(ctx context.Context, userID string, info model.PersonalInfo) error {
	if m.savePersonalInfoFn != nil {
		return m.savePersonalInfoFn(ctx, userID, info)
	}
	return nil
}

func (m *mockResumeService) SaveEducation(ctx context.Context, userID string, entries []model.EducationEntry) error {
	if m.saveEducationFn != nil {
		return m.saveEducationFn(ctx, userID, entries)
	}
	return nil
}

func (m *mockResumeService) SaveExperience(ctx context.Context, userID string, entries []model.ExperienceEntry) error {
	if m.saveExperienceFn != nil {
		return m.saveExperienceFn(ctx, userID, entries)
	}
	return nil
}

func (m *mockResumeService) SaveSkills(ctx context.Context, userID string, entries []model.SkillEntry) error {
	if m.saveSkillsFn != nil {
		return m.saveSkillsFn(ctx, userID, entries)
	}
	return nil
}

func (m *mockResumeService) SaveCertifications(ctx context.Context, userID string, entries []model.CertificationEntry) error {
	if m.saveCertificationsFn != nil {
		return m.saveCertificationsFn(ctx, userID, entries)
	}
	return nil
}

func (m *mockResumeService) SaveLanguages(ctx context.Context, userID string, entries []model.LanguageEntry) error {
	if m.saveLanguagesFn != nil {
		return m.saveLanguagesFn(ctx, userID, entries)
	}
	return nil
}

func (m *mockResumeService) SaveAchievements(ctx context.Context, userID string, entries []model.AchievementEntry) error {
	if m.saveAchievementsFn != nil {
		return m.saveAchievementsFn(ctx, userID, entries)
	}
	return nil
}

// recordingCollector はメトリクス記録の呼び出しを記録するスタブ。
type recordingCollector struct {
	mu            sync.Mutex
	sectionSaves  []string
	renders       []string
	exports       []string
	sharesCreated int
	publicViews   []bool
	statuses      []int
}

func (c *recordingCollector) RecordSectionSave(section string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sectionSaves = append(c.sectionSaves, section)
}

func (c *recordingCollector) RecordRender(templateID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renders = append(c.renders, templateID)
}

func (c *recordingCollector) RecordExport(format string, success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exports = append(c.exports, format)
}

func (c *recordingCollector) RecordShareCreated() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sharesCreated++
}

func (c *recordingCollector) RecordPublicView(found bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.publicViews = append(c.publicViews, found)
}

func (c *recordingCollector) RecordHTTPStatus(statusCode int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statuses = append(c.statuses, statusCode)
}

func (c *recordingCollector) RecordExportLatency(format string, _ time.Duration) {}

// --- テスト用ルーティングヘルパー ---

// newSectionRouter はSaveSectionをchiのURLパラメータ付きで呼ぶためのルーターを組む。
func newSectionRouter(h *ResumeHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/resume", h.GetResume)
	r.Put("/api/resume/sections/{section}", h.SaveSection)
	return r
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(middleware.ContextWithUserID(req.Context(), "user-1"))
}

// --- テスト ---

func TestResumeHandler_GetResume_ReturnsAggregate(t *testing.T) {
	svc := &mockResumeService{
		loadResumeFn: func(ctx context.Context, userID string) (*model.ResumeData, error) {
			if userID != "user-1" {
				t.Errorf("userID = %q, want %q", userID, "user-1")
			}
			return &model.ResumeData{
				PersonalInfo: model.PersonalInfo{FullName: "Taro Yamada"},
				Skills:       []model.SkillEntry{{Name: "Go", Rating: 5}},
			}, nil
		},
	}
	h := NewResumeHandler(svc, nil)
	router := newSectionRouter(h)

	req := authedRequest(http.MethodGet, "/api/resume", "")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var data model.ResumeData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if data.PersonalInfo.FullName != "Taro Yamada" {
		t.Errorf("fullName = %q, want %q", data.PersonalInfo.FullName, "Taro Yamada")
	}
	if len(data.Skills) != 1 || data.Skills[0].Name != "Go" {
		t.Errorf("skills = %+v, want one Go entry", data.Skills)
	}
}

func TestResumeHandler_GetResume_NoUserID_Returns401(t *testing.T) {
	h := NewResumeHandler(&mockResumeService{}, nil)
	router := newSectionRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/resume", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusUnauthorized)
	}
}

func TestResumeHandler_SaveSection_Skills_Returns204(t *testing.T) {
	var savedEntries []model.SkillEntry
	svc := &mockResumeService{
		saveSkillsFn: func(ctx context.Context, userID string, entries []model.SkillEntry) error {
			savedEntries = entries
			return nil
		},
	}
	collector := &recordingCollector{}
	h := NewResumeHandler(svc, collector)
	router := newSectionRouter(h)

	body := `[{"name":"Go","rating":5,"yearsOfExperience":4},{"name":"SQL","rating":4,"yearsOfExperience":8.5}]`
	req := authedRequest(http.MethodPut, "/api/resume/sections/skills", body)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusNoContent)
	}
	if len(savedEntries) != 2 || savedEntries[0].Name != "Go" {
		t.Errorf("saved entries = %+v, want 2 entries starting with Go", savedEntries)
	}
	if len(collector.sectionSaves) != 1 || collector.sectionSaves[0] != "skills" {
		t.Errorf("recorded section saves = %v, want [skills]", collector.sectionSaves)
	}
}

func TestResumeHandler_SaveSection_PersonalInfo_Returns204(t *testing.T) {
	var savedInfo model.PersonalInfo
	svc := &mockResumeService{
		savePersonalInfoFn: func(ctx context.Context, userID string, info model.PersonalInfo) error {
			savedInfo = info
			return nil
		},
	}
	h := NewResumeHandler(svc, nil)
	router := newSectionRouter(h)

	body := `{"fullName":"Taro Yamada","phone":"090-0000-0000"}`
	req := authedRequest(http.MethodPut, "/api/resume/sections/personalInfo", body)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusNoContent)
	}
	if savedInfo.FullName != "Taro Yamada" {
		t.Errorf("fullName = %q, want %q", savedInfo.FullName, "Taro Yamada")
	}
}

func TestResumeHandler_SaveSection_UnknownSection_Returns400(t *testing.T) {
	h := NewResumeHandler(&mockResumeService{}, nil)
	router := newSectionRouter(h)

	req := authedRequest(http.MethodPut, "/api/resume/sections/hobbies", `[]`)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}

	var body apiErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Code != model.ErrCodeInvalidSection {
		t.Errorf("code = %q, want %q", body.Code, model.ErrCodeInvalidSection)
	}
}

func TestResumeHandler_SaveSection_MalformedBody_Returns400(t *testing.T) {
	h := NewResumeHandler(&mockResumeService{}, nil)
	router := newSectionRouter(h)

	req := authedRequest(http.MethodPut, "/api/resume/sections/skills", `{not json`)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}

	var body apiErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Code != model.ErrCodeValidationFailed {
		t.Errorf("code = %q, want %q", body.Code, model.ErrCodeValidationFailed)
	}
}

func TestResumeHandler_SaveSection_ValidationError_Returns400(t *testing.T) {
	svc := &mockResumeService{
		saveSkillsFn: func(ctx context.Context, userID string, entries []model.SkillEntry) error {
			return model.NewValidationFailedError("rating: Must be greater than or equal to 1")
		},
	}
	h := NewResumeHandler(svc, nil)
	router := newSectionRouter(h)

	req := authedRequest(http.MethodPut, "/api/resume/sections/skills", `[{"name":"Go","rating":0}]`)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusBadRequest)
	}
}

func TestResumeHandler_SaveSection_SaveFailed_Returns500(t *testing.T) {
	svc := &mockResumeService{
		saveLanguagesFn: func(ctx context.Context, userID string, entries []model.LanguageEntry) error {
			return model.NewSaveFailedError()
		},
	}
	collector := &recordingCollector{}
	h := NewResumeHandler(svc, collector)
	router := newSectionRouter(h)

	req := authedRequest(http.MethodPut, "/api/resume/sections/languages", `[{"name":"Japanese","proficiency":"Native/Bilingual"}]`)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusInternalServerError)
	}

	var body apiErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Code != model.ErrCodeSaveFailed {
		t.Errorf("code = %q, want %q", body.Code, model.ErrCodeSaveFailed)
	}

	// 失敗した保存はメトリクスに記録されない
	if len(collector.sectionSaves) != 0 {
		t.Errorf("recorded section saves = %v, want none", collector.sectionSaves)
	}
}
