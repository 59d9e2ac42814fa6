package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"github.com/hitoshi/resumake/internal/model"
)

// DOCXExporter はプレースホルダー置換方式のWord文書エクスポーター。
// テンプレート.docx内の {{PLACEHOLDER}} をレジュメの内容で置き換える。
type DOCXExporter struct {
	templatePath string
}

// NewDOCXExporter はDOCXExporterの新しいインスタンスを生成する。
func NewDOCXExporter(templatePath string) *DOCXExporter {
	return &DOCXExporter{templatePath: templatePath}
}

// Export はレジュメをWord文書として書き出す。
// 空のセクションは空文字列として置換され、テンプレート側の見出しは残る。
func (e *DOCXExporter) Export(data *model.ResumeData, identity model.UserIdentity) ([]byte, error) {
	reader, err := docx.ReadDocxFile(e.templatePath)
	if err != nil {
		return nil, fmt.Errorf("DOCXテンプレートの読み込みに失敗しました: %w", err)
	}
	defer reader.Close()

	doc := reader.Editable()

	if data == nil {
		data = &model.ResumeData{}
	}

	replacements := map[string]string{
		"{{FULL_NAME}}":      model.DisplayNameFor(data, identity),
		"{{EMAIL}}":          identity.Email,
		"{{PHONE}}":          data.PersonalInfo.Phone,
		"{{ADDRESS}}":        data.PersonalInfo.Address,
		"{{SUMMARY}}":        data.PersonalInfo.ProfessionalSummary,
		"{{GITHUB_URL}}":     data.PersonalInfo.GithubURL,
		"{{WEBSITE_URL}}":    data.PersonalInfo.WebsiteURL,
		"{{EXPERIENCE}}":     formatExperience(data.Experience),
		"{{EDUCATION}}":      formatEducation(data.Education),
		"{{SKILLS}}":         formatSkills(data.Skills),
		"{{CERTIFICATIONS}}": formatCertifications(data.Certifications),
		"{{LANGUAGES}}":      formatLanguages(data.Languages),
		"{{ACHIEVEMENTS}}":   formatAchievements(data.Achievements),
	}

	for placeholder, value := range replacements {
		if err := doc.Replace(placeholder, value, -1); err != nil {
			return nil, fmt.Errorf("プレースホルダー %s の置換に失敗しました: %w", placeholder, err)
		}
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, fmt.Errorf("DOCXの書き出しに失敗しました: %w", err)
	}

	return buf.Bytes(), nil
}

// 各セクションはWordの1段落テキストへ畳み込む。
// docxのプレースホルダー置換は段落をまたげないため、エントリ区切りは改行文字で表す。

func formatExperience(entries []model.ExperienceEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		period := e.StartDate + " - "
		if e.EndDate == "" {
			period += "Present"
		} else {
			period += e.EndDate
		}
		line := fmt.Sprintf("%s, %s (%s)", e.Position, e.Company, period)
		if e.Description != "" {
			line += ": " + e.Description
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\r\n")
}

func formatEducation(entries []model.EducationEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		period := e.FromDate + " - "
		if e.ToDate == "" {
			period += "Present"
		} else {
			period += e.ToDate
		}
		lines = append(lines, fmt.Sprintf("%s, %s, %s (%s)", e.Degree, e.FieldOfStudy, e.InstituteName, period))
	}
	return strings.Join(lines, "\r\n")
}

func formatSkills(entries []model.SkillEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.Name)
	}
	return strings.Join(parts, ", ")
}

func formatCertifications(entries []model.CertificationEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s, %s (%s)", e.Name, e.Organization, e.IssueDate))
	}
	return strings.Join(lines, "\r\n")
}

func formatLanguages(entries []model.LanguageEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("%s (%s)", e.Name, e.Proficiency))
	}
	return strings.Join(parts, ", ")
}

func formatAchievements(entries []model.AchievementEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		line := fmt.Sprintf("%s (%s)", e.Title, e.Date)
		if e.Description != "" {
			line += ": " + e.Description
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\r\n")
}
