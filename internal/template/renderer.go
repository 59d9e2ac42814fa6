// Package template はレジュメの視覚テンプレートのカタログと描画を提供する。
//
// 4種類のテンプレートは同一のRenderer契約を共有し、
// レジストリ経由のストラテジーパターンで切り替えられる。
package template

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"

	"github.com/hitoshi/resumake/internal/model"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// Renderer はレジュメ描画の契約。全テンプレートバリアントが実装する。
//
// 描画は入力に対して純粋であり、副作用を持たない。画面外での
// エクスポート用描画を含め、同一入力に対して何度でも安全に呼び出せる。
// データが空の場合は空の出力を返し、エラーにはしない。
// ローディング状態やガードは呼び出し側の責務。
type Renderer interface {
	Render(data *model.ResumeData, identity model.UserIdentity) ([]byte, error)
}

// renderView はテンプレートへ渡す描画用ビュー。
// セクションのソートと表示名の解決を済ませた状態で構築される。
type renderView struct {
	DisplayName string
	Email       string
	PhotoURL    string

	DateOfBirth         string
	Phone               string
	Address             string
	ProfessionalSummary string
	GithubURL           string
	WebsiteURL          string

	// ContactParts はヘッダーに並べる連絡先（email・GitHub・Webサイト）の
	// 非空要素のみのリスト。
	ContactParts []string

	Education      []model.EducationEntry
	Experience     []model.ExperienceEntry
	Skills         []model.SkillEntry
	Certifications []model.CertificationEntry
	Languages      []model.LanguageEntry
	Achievements   []model.AchievementEntry
}

// newRenderView は集約と表示情報から描画用ビューを構築する。
func newRenderView(data *model.ResumeData, identity model.UserIdentity, skillSort SkillSort) renderView {
	view := renderView{
		DisplayName:         model.DisplayNameFor(data, identity),
		Email:               identity.Email,
		PhotoURL:            identity.PhotoURL,
		DateOfBirth:         data.PersonalInfo.DateOfBirth,
		Phone:               data.PersonalInfo.Phone,
		Address:             data.PersonalInfo.Address,
		ProfessionalSummary: data.PersonalInfo.ProfessionalSummary,
		GithubURL:           data.PersonalInfo.GithubURL,
		WebsiteURL:          data.PersonalInfo.WebsiteURL,
		Education:           sortedEducation(data.Education),
		Experience:          sortedExperience(data.Experience),
		Skills:              sortedSkills(data.Skills, skillSort),
		Certifications:      data.Certifications,
		Languages:           data.Languages,
		Achievements:        sortedAchievements(data.Achievements),
	}

	for _, part := range []string{identity.Email, data.PersonalInfo.GithubURL, data.PersonalInfo.WebsiteURL} {
		if part != "" {
			view.ContactParts = append(view.ContactParts, part)
		}
	}

	return view
}

// proficiencyWidths は言語習熟度をスキルバーの幅に変換するマッピング。
var proficiencyWidths = map[model.LanguageProficiency]int{
	model.ProficiencyNative:       100,
	model.ProficiencyFluent:       90,
	model.ProficiencyProfessional: 75,
	model.ProficiencyIntermediate: 60,
	model.ProficiencyBasic:        40,
	model.ProficiencyBeginner:     25,
}

// funcMap は全テンプレートで共有するヘルパー関数。
var funcMap = htmltemplate.FuncMap{
	// orPresent は終了日が空の日付範囲を "Present" として表示する。
	"orPresent": func(s string) string {
		if s == "" {
			return "Present"
		}
		return s
	},
	"join": strings.Join,
	// ratingPercent は1〜5の習熟度をバー幅（%）に変換する。
	"ratingPercent": func(rating int) int {
		if rating < 0 {
			return 0
		}
		if rating > 5 {
			return 100
		}
		return rating * 20
	},
	// proficiencyPercent は言語習熟度をバー幅（%）に変換する。未知の値は50。
	"proficiencyPercent": func(p model.LanguageProficiency) int {
		if w, ok := proficiencyWidths[p]; ok {
			return w
		}
		return 50
	},
}

// htmlRenderer は埋め込みgohtmlファイルによるRenderer実装。
// パース済みテンプレートのみを保持し、状態を持たない。
type htmlRenderer struct {
	tmpl      *htmltemplate.Template
	skillSort SkillSort
}

// newHTMLRenderer は埋め込みテンプレートをパースしてレンダラーを生成する。
// テンプレートはプロセス起動時に1回だけパースされる。
func newHTMLRenderer(name string, skillSort SkillSort) *htmlRenderer {
	tmpl := htmltemplate.Must(
		htmltemplate.New(name + ".gohtml").Funcs(funcMap).ParseFS(templateFS, "templates/"+name+".gohtml"),
	)
	return &htmlRenderer{tmpl: tmpl, skillSort: skillSort}
}

// Render はレジュメをHTMLフラグメントとして描画する。
// データが空（nilを含む）の場合は空の出力を返す。
func (r *htmlRenderer) Render(data *model.ResumeData, identity model.UserIdentity) ([]byte, error) {
	if data.IsEmpty() {
		return nil, nil
	}

	view := newRenderView(data, identity, r.skillSort)

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to render template: %w", err)
	}

	return buf.Bytes(), nil
}

// compile-time interface check
var _ Renderer = (*htmlRenderer)(nil)
