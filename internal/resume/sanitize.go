package resume

import (
	"github.com/hitoshi/resumake/internal/model"
	"github.com/hitoshi/resumake/internal/security"
)

// サニタイズは保存経路の最初の段階として全テキストフィールドへ適用する。
// 各ヘルパーは値を受け取りサニタイズ済みのコピーを返す。
// リスト型はnilでも空スライスとして返し、保存ペイロードを常にJSON配列にする。

func sanitizePersonalInfo(s security.ContentSanitizerService, info model.PersonalInfo) model.PersonalInfo {
	return model.PersonalInfo{
		FullName:            s.Sanitize(info.FullName),
		DateOfBirth:         s.Sanitize(info.DateOfBirth),
		Phone:               s.Sanitize(info.Phone),
		Address:             s.Sanitize(info.Address),
		ProfessionalSummary: s.Sanitize(info.ProfessionalSummary),
		GithubURL:           s.Sanitize(info.GithubURL),
		WebsiteURL:          s.Sanitize(info.WebsiteURL),
	}
}

func sanitizeStrings(s security.ContentSanitizerService, in []string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = s.Sanitize(v)
	}
	return out
}

func sanitizeEducation(s security.ContentSanitizerService, in []model.EducationEntry) []model.EducationEntry {
	out := make([]model.EducationEntry, len(in))
	for i, e := range in {
		out[i] = model.EducationEntry{
			InstituteName: s.Sanitize(e.InstituteName),
			Location:      s.Sanitize(e.Location),
			FromDate:      s.Sanitize(e.FromDate),
			ToDate:        s.Sanitize(e.ToDate),
			Grade:         s.Sanitize(e.Grade),
			Degree:        s.Sanitize(e.Degree),
			FieldOfStudy:  s.Sanitize(e.FieldOfStudy),
			Description:   s.Sanitize(e.Description),
			Activities:    s.Sanitize(e.Activities),
		}
	}
	return out
}

func sanitizeExperience(s security.ContentSanitizerService, in []model.ExperienceEntry) []model.ExperienceEntry {
	out := make([]model.ExperienceEntry, len(in))
	for i, e := range in {
		out[i] = model.ExperienceEntry{
			Company:        s.Sanitize(e.Company),
			Position:       s.Sanitize(e.Position),
			EmploymentType: e.EmploymentType,
			StartDate:      s.Sanitize(e.StartDate),
			EndDate:        s.Sanitize(e.EndDate),
			Location:       s.Sanitize(e.Location),
			LocationType:   e.LocationType,
			Skills:         sanitizeStrings(s, e.Skills),
			Role:           s.Sanitize(e.Role),
			Description:    s.Sanitize(e.Description),
		}
	}
	return out
}

func sanitizeSkills(s security.ContentSanitizerService, in []model.SkillEntry) []model.SkillEntry {
	out := make([]model.SkillEntry, len(in))
	for i, e := range in {
		out[i] = model.SkillEntry{
			Name:              s.Sanitize(e.Name),
			Rating:            e.Rating,
			YearsOfExperience: e.YearsOfExperience,
		}
	}
	return out
}

func sanitizeCertifications(s security.ContentSanitizerService, in []model.CertificationEntry) []model.CertificationEntry {
	out := make([]model.CertificationEntry, len(in))
	for i, e := range in {
		out[i] = model.CertificationEntry{
			Name:          s.Sanitize(e.Name),
			Organization:  s.Sanitize(e.Organization),
			IssueDate:     s.Sanitize(e.IssueDate),
			ExpiryDate:    s.Sanitize(e.ExpiryDate),
			CredentialID:  s.Sanitize(e.CredentialID),
			CredentialURL: s.Sanitize(e.CredentialURL),
			Skills:        sanitizeStrings(s, e.Skills),
		}
	}
	return out
}

func sanitizeLanguages(s security.ContentSanitizerService, in []model.LanguageEntry) []model.LanguageEntry {
	out := make([]model.LanguageEntry, len(in))
	for i, e := range in {
		out[i] = model.LanguageEntry{
			Name:        s.Sanitize(e.Name),
			Proficiency: e.Proficiency,
		}
	}
	return out
}

func sanitizeAchievements(s security.ContentSanitizerService, in []model.AchievementEntry) []model.AchievementEntry {
	out := make([]model.AchievementEntry, len(in))
	for i, e := range in {
		out[i] = model.AchievementEntry{
			Title:       s.Sanitize(e.Title),
			Date:        s.Sanitize(e.Date),
			Description: s.Sanitize(e.Description),
		}
	}
	return out
}
