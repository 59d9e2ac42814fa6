// Package resume はレジュメの保存・読み込みのドメインロジックを提供する。
//
// 各セクションは独立して保存され、読み込み時に1つの集約へ合成される。
// 保存フロー: サニタイズ → スキーマ検証 → (ユーザー, カテゴリ)単位の直列化 → マージ書き込み
package resume

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hitoshi/resumake/internal/model"
	"github.com/hitoshi/resumake/internal/repository"
	"github.com/hitoshi/resumake/internal/security"
)

// Service はレジュメ操作のインターフェース。
type Service interface {
	// LoadResume はユーザーの全セクションを読み込み集約を返す。
	// ドキュメント未作成・カテゴリ欠損は空デフォルトで補完され、エラーにはならない。
	LoadResume(ctx context.Context, userID string) (*model.ResumeData, error)

	// 各Save系操作は対象セクションのみを書き込み、兄弟セクションには触れない。
	// 同一内容の再保存は冪等で、再送信による回復が可能。
	SavePersonalInfo(ctx context.Context, userID string, info model.PersonalInfo) error
	SaveEducation(ctx context.Context, userID string, entries []model.EducationEntry) error
	SaveExperience(ctx context.Context, userID string, entries []model.ExperienceEntry) error
	SaveSkills(ctx context.Context, userID string, entries []model.SkillEntry) error
	SaveCertifications(ctx context.Context, userID string, entries []model.CertificationEntry) error
	SaveLanguages(ctx context.Context, userID string, entries []model.LanguageEntry) error
	SaveAchievements(ctx context.Context, userID string, entries []model.AchievementEntry) error
}

// keyedMutex は文字列キー単位の排他制御を提供する。
// 同一(ユーザー, カテゴリ)への書き込みを直列化し、別キーの書き込みは並行に進む。
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// lock はキーに対応するミューテックスを取得し、解放関数を返す。
func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// ResumeService はServiceの実装。
// Emailはモデル上フィールドを持たないため、保存経路に乗ることは構造的にない。
type ResumeService struct {
	repo       repository.ResumeDocumentRepository
	sanitizer  security.ContentSanitizerService
	validator  *Validator
	writeLocks *keyedMutex
}

// NewResumeService はResumeServiceの新しいインスタンスを生成する。
func NewResumeService(repo repository.ResumeDocumentRepository, sanitizer security.ContentSanitizerService) *ResumeService {
	return &ResumeService{
		repo:       repo,
		sanitizer:  sanitizer,
		validator:  NewValidator(),
		writeLocks: newKeyedMutex(),
	}
}

// LoadResume はユーザーの全セクションを読み込み集約を返す。
// 個別カテゴリのデコード失敗は警告ログを残して空デフォルトにフォールバックし、
// 残りのセクションの読み込みを妨げない。
func (s *ResumeService) LoadResume(ctx context.Context, userID string) (*model.ResumeData, error) {
	doc, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("レジュメの読み込みに失敗しました: %w", err)
	}

	data := &model.ResumeData{}
	if doc == nil {
		// 新規ユーザー。全セクション空デフォルト。
		return data, nil
	}

	decodeCategory(userID, model.SectionPersonalInfo, doc.PersonalInfo, &data.PersonalInfo)
	decodeCategory(userID, model.SectionEducation, doc.Education, &data.Education)
	decodeCategory(userID, model.SectionExperience, doc.Experience, &data.Experience)
	decodeCategory(userID, model.SectionSkills, doc.Skills, &data.Skills)
	decodeCategory(userID, model.SectionCertifications, doc.Certifications, &data.Certifications)
	decodeCategory(userID, model.SectionLanguages, doc.Languages, &data.Languages)
	decodeCategory(userID, model.SectionAchievements, doc.Achievements, &data.Achievements)

	return data, nil
}

// decodeCategory はカテゴリの生JSONをデコードする。
// 欠損（nil）は正常。破損データは警告を残してデコード先をゼロ値のまま残す。
func decodeCategory(userID string, section model.Section, raw json.RawMessage, dst any) {
	if len(raw) == 0 {
		return
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		slog.Warn("カテゴリのデコードに失敗、空デフォルトで継続",
			"userID", userID, "section", section, "error", err)
	}
}

func (s *ResumeService) SavePersonalInfo(ctx context.Context, userID string, info model.PersonalInfo) error {
	return s.saveCategory(ctx, userID, model.SectionPersonalInfo, sanitizePersonalInfo(s.sanitizer, info))
}

func (s *ResumeService) SaveEducation(ctx context.Context, userID string, entries []model.EducationEntry) error {
	return s.saveCategory(ctx, userID, model.SectionEducation, sanitizeEducation(s.sanitizer, entries))
}

func (s *ResumeService) SaveExperience(ctx context.Context, userID string, entries []model.ExperienceEntry) error {
	return s.saveCategory(ctx, userID, model.SectionExperience, sanitizeExperience(s.sanitizer, entries))
}

func (s *ResumeService) SaveSkills(ctx context.Context, userID string, entries []model.SkillEntry) error {
	return s.saveCategory(ctx, userID, model.SectionSkills, sanitizeSkills(s.sanitizer, entries))
}

func (s *ResumeService) SaveCertifications(ctx context.Context, userID string, entries []model.CertificationEntry) error {
	return s.saveCategory(ctx, userID, model.SectionCertifications, sanitizeCertifications(s.sanitizer, entries))
}

func (s *ResumeService) SaveLanguages(ctx context.Context, userID string, entries []model.LanguageEntry) error {
	return s.saveCategory(ctx, userID, model.SectionLanguages, sanitizeLanguages(s.sanitizer, entries))
}

func (s *ResumeService) SaveAchievements(ctx context.Context, userID string, entries []model.AchievementEntry) error {
	return s.saveCategory(ctx, userID, model.SectionAchievements, sanitizeAchievements(s.sanitizer, entries))
}

// saveCategory は全Save系操作で共有する保存フロー。
// 検証はサニタイズ後の値に対して行い、書き込みは(ユーザー, カテゴリ)単位で直列化する。
func (s *ResumeService) saveCategory(ctx context.Context, userID string, section model.Section, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("セクションのエンコードに失敗しました: %w", err)
	}

	if err := s.validator.Validate(section, payload); err != nil {
		return err
	}

	unlock := s.writeLocks.lock(userID + ":" + string(section))
	defer unlock()

	if err := s.repo.SaveCategory(ctx, userID, section, payload); err != nil {
		slog.Error("セクションの保存に失敗", "userID", userID, "section", section, "error", err)
		return model.NewSaveFailedError()
	}

	return nil
}

// compile-time interface check
var _ Service = (*ResumeService)(nil)
