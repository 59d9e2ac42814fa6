package template

import (
	"strings"
	"testing"

	"github.com/hitoshi/resumake/internal/model"
)

func sampleResume() *model.ResumeData {
	return &model.ResumeData{
		PersonalInfo: model.PersonalInfo{
			FullName:            "Taro Yamada",
			Phone:               "090-0000-0000",
			Address:             "Tokyo, Japan",
			ProfessionalSummary: "Backend engineer with a focus on reliability.",
			GithubURL:           "https://github.com/taro",
		},
		Experience: []model.ExperienceEntry{
			{Company: "Acme", Position: "Engineer", StartDate: "2020-05", EndDate: ""},
			{Company: "Beta", Position: "Developer", StartDate: "2023-01", EndDate: "2024-01"},
		},
		Education: []model.EducationEntry{
			{InstituteName: "Tokyo University", Degree: "B.S.", FieldOfStudy: "CS", FromDate: "2012-04", ToDate: "2016-03"},
		},
		Skills: []model.SkillEntry{
			{Name: "Go", Rating: 5, YearsOfExperience: 4},
			{Name: "SQL", Rating: 3, YearsOfExperience: 6},
		},
		Languages: []model.LanguageEntry{
			{Name: "Japanese", Proficiency: model.ProficiencyNative},
			{Name: "English", Proficiency: model.ProficiencyProfessional},
		},
		Achievements: []model.AchievementEntry{
			{Title: "Best Paper Award", Date: "2023-09", Description: "Distributed systems research."},
		},
	}
}

// 全テンプレートがnilデータに対して空出力・エラーなしで応答することを検証
func TestRender_NilDataReturnsEmpty(t *testing.T) {
	for _, tmpl := range NewRegistry().List() {
		out, err := tmpl.Renderer().Render(nil, model.UserIdentity{DisplayName: "User"})
		if err != nil {
			t.Errorf("template %q: Render(nil) error = %v", tmpl.ID, err)
		}
		if len(out) != 0 {
			t.Errorf("template %q: Render(nil) = %q, want empty", tmpl.ID, out)
		}
	}
}

// 全セクションが空のデータに対して空出力になることを検証
func TestRender_EmptyDataReturnsEmpty(t *testing.T) {
	for _, tmpl := range NewRegistry().List() {
		out, err := tmpl.Renderer().Render(&model.ResumeData{}, model.UserIdentity{})
		if err != nil {
			t.Errorf("template %q: error = %v", tmpl.ID, err)
		}
		if len(out) != 0 {
			t.Errorf("template %q: got %q, want empty", tmpl.ID, out)
		}
	}
}

// 全テンプレートが同一の集約を描画でき、主要コンテンツを含むことを検証
func TestRender_AllTemplatesRenderSameData(t *testing.T) {
	data := sampleResume()
	identity := model.UserIdentity{DisplayName: "Google Name", Email: "taro@example.com"}

	for _, tmpl := range NewRegistry().List() {
		out, err := tmpl.Renderer().Render(data, identity)
		if err != nil {
			t.Fatalf("template %q: Render error = %v", tmpl.ID, err)
		}
		html := string(out)

		for _, want := range []string{"Taro Yamada", "taro@example.com", "Acme", "Tokyo University", "Go"} {
			if !strings.Contains(html, want) {
				t.Errorf("template %q: output missing %q", tmpl.ID, want)
			}
		}
	}
}

// 保存されたフルネームが認証済み表示名より優先されることを検証
func TestRender_StoredNameTakesPrecedence(t *testing.T) {
	data := sampleResume()
	identity := model.UserIdentity{DisplayName: "Google Name", Email: "taro@example.com"}

	out, err := NewRegistry().ByID("default").Renderer().Render(data, identity)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "Taro Yamada") {
		t.Error("output missing stored full name")
	}
	if strings.Contains(string(out), "Google Name") {
		t.Error("output contains identity display name despite stored full name")
	}
}

// フルネームが未保存の場合は認証済み表示名を使うことを検証
func TestRender_FallsBackToIdentityName(t *testing.T) {
	data := sampleResume()
	data.PersonalInfo.FullName = ""
	identity := model.UserIdentity{DisplayName: "Google Name"}

	out, err := NewRegistry().ByID("default").Renderer().Render(data, identity)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "Google Name") {
		t.Error("output missing identity display name fallback")
	}
}

// 空のセクションは見出しごと省略されることを検証
func TestRender_OmitsEmptySections(t *testing.T) {
	data := &model.ResumeData{
		PersonalInfo: model.PersonalInfo{FullName: "Solo Section"},
		Skills:       []model.SkillEntry{{Name: "Go", Rating: 5}},
	}

	out, err := NewRegistry().ByID("default").Renderer().Render(data, model.UserIdentity{})
	if err != nil {
		t.Fatal(err)
	}
	html := string(out)

	if !strings.Contains(html, "Skills") {
		t.Error("output missing non-empty Skills section")
	}
	for _, absent := range []string{"Work Experience", "Education", "Certifications", "Languages", "Achievements"} {
		if strings.Contains(html, absent) {
			t.Errorf("output contains heading %q for empty section", absent)
		}
	}
}

// 終了日が空の職歴はPresentと表示されることを検証
func TestRender_OpenEndedShowsPresent(t *testing.T) {
	out, err := NewRegistry().ByID("default").Renderer().Render(sampleResume(), model.UserIdentity{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "Present") {
		t.Error("output missing Present marker for open-ended experience")
	}
}

// 描画順が保存順ではなくソート規則に従うことを検証。
// 在職中のAcme（2020開始）が終了済みのBeta（2023開始）より先に現れる。
func TestRender_ExperienceOrderedOpenEndedFirst(t *testing.T) {
	out, err := NewRegistry().ByID("default").Renderer().Render(sampleResume(), model.UserIdentity{})
	if err != nil {
		t.Fatal(err)
	}
	html := string(out)

	acme := strings.Index(html, "Acme")
	beta := strings.Index(html, "Beta")
	if acme < 0 || beta < 0 {
		t.Fatal("output missing experience entries")
	}
	if acme > beta {
		t.Error("open-ended entry rendered after closed entry")
	}
}

// creativeテンプレートはスキルを経験年数の降順で描画することを検証
func TestRender_CreativeOrdersSkillsByYears(t *testing.T) {
	out, err := NewRegistry().ByID("creative").Renderer().Render(sampleResume(), model.UserIdentity{})
	if err != nil {
		t.Fatal(err)
	}
	html := string(out)

	sql := strings.Index(html, "SQL")
	golang := strings.Index(html, "Go")
	if sql < 0 || golang < 0 {
		t.Fatal("output missing skill entries")
	}
	if sql > golang {
		t.Error("skill with more years rendered after skill with fewer years")
	}
}

// 同一入力での再描画が同一出力を生むことを検証（描画の純粋性）
func TestRender_Deterministic(t *testing.T) {
	data := sampleResume()
	identity := model.UserIdentity{DisplayName: "User", Email: "u@example.com"}
	renderer := NewRegistry().ByID("modern").Renderer()

	first, err := renderer.Render(data, identity)
	if err != nil {
		t.Fatal(err)
	}
	second, err := renderer.Render(data, identity)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Error("repeated render produced different output")
	}
}

// ユーザー入力のHTMLがエスケープされることを検証
func TestRender_EscapesUserContent(t *testing.T) {
	data := sampleResume()
	data.PersonalInfo.ProfessionalSummary = `<script>alert("x")</script>`

	out, err := NewRegistry().ByID("default").Renderer().Render(data, model.UserIdentity{})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "<script>") {
		t.Error("output contains unescaped script tag")
	}
}

// ratingPercentが1〜5の習熟度を0〜100%に射影することを検証
func TestRatingPercent(t *testing.T) {
	fn := funcMap["ratingPercent"].(func(int) int)

	tests := []struct {
		rating int
		want   int
	}{
		{0, 0}, {1, 20}, {3, 60}, {5, 100}, {-1, 0}, {7, 100},
	}
	for _, tt := range tests {
		if got := fn(tt.rating); got != tt.want {
			t.Errorf("ratingPercent(%d) = %d, want %d", tt.rating, got, tt.want)
		}
	}
}

// proficiencyPercentの各レベルと未知値のバー幅を検証
func TestProficiencyPercent(t *testing.T) {
	fn := funcMap["proficiencyPercent"].(func(model.LanguageProficiency) int)

	tests := []struct {
		p    model.LanguageProficiency
		want int
	}{
		{model.ProficiencyNative, 100},
		{model.ProficiencyFluent, 90},
		{model.ProficiencyProfessional, 75},
		{model.ProficiencyIntermediate, 60},
		{model.ProficiencyBasic, 40},
		{model.ProficiencyBeginner, 25},
		{model.LanguageProficiency("Conversational"), 50},
	}
	for _, tt := range tests {
		if got := fn(tt.p); got != tt.want {
			t.Errorf("proficiencyPercent(%q) = %d, want %d", tt.p, got, tt.want)
		}
	}
}
