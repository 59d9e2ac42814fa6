// Package model はドメインモデルを定義する。
package model

import "time"

// SnapshotPersonalInfo は公開スナップショットに埋め込む最小限の個人情報。
// 公開閲覧者は未認証のため、描画に必要な表示フィールドをここから復元する。
type SnapshotPersonalInfo struct {
	Name                string `json:"name"`
	Email               string `json:"email"`
	PhotoURL            string `json:"photoURL,omitempty"`
	Phone               string `json:"phone"`
	Location            string `json:"location"`
	ProfessionalSummary string `json:"professionalSummary"`
	GithubURL           string `json:"githubUrl"`
	WebsiteURL          string `json:"websiteUrl"`
}

// PublicResumeSnapshot は共有時点のレジュメの不変コピーを表す。
// 共有操作のたびに新しいIDで新しいスナップショットが作成され、
// 既存のスナップショットが更新されることはない。
// ライブデータへの逆参照を持たないため、以後の編集の影響を受けない。
type PublicResumeSnapshot struct {
	PublicID       string               `json:"-"`
	UserID         string               `json:"userId"`
	TemplateID     string               `json:"templateId"`
	PersonalInfo   SnapshotPersonalInfo `json:"personalInfo"`
	Education      []EducationEntry     `json:"education"`
	Experience     []ExperienceEntry    `json:"experience"`
	Skills         []SkillEntry         `json:"skills"`
	Certifications []CertificationEntry `json:"certifications"`
	Languages      []LanguageEntry      `json:"languages"`
	Achievements   []AchievementEntry   `json:"achievements"`
	CreatedAt      time.Time            `json:"createdAt"`
}

// ResumeData はスナップショットから描画用の集約を復元する。
func (s *PublicResumeSnapshot) ResumeData() *ResumeData {
	return &ResumeData{
		PersonalInfo: PersonalInfo{
			FullName:            s.PersonalInfo.Name,
			Phone:               s.PersonalInfo.Phone,
			Address:             s.PersonalInfo.Location,
			ProfessionalSummary: s.PersonalInfo.ProfessionalSummary,
			GithubURL:           s.PersonalInfo.GithubURL,
			WebsiteURL:          s.PersonalInfo.WebsiteURL,
		},
		Education:      s.Education,
		Experience:     s.Experience,
		Skills:         s.Skills,
		Certifications: s.Certifications,
		Languages:      s.Languages,
		Achievements:   s.Achievements,
	}
}

// Identity はスナップショットに埋め込まれた表示情報からIdentityを復元する。
// ライブの認証セッションには一切依存しない。
func (s *PublicResumeSnapshot) Identity() UserIdentity {
	return UserIdentity{
		DisplayName: s.PersonalInfo.Name,
		Email:       s.PersonalInfo.Email,
		PhotoURL:    s.PersonalInfo.PhotoURL,
	}
}
