package template

// Template はテンプレートの識別子・表示メタデータ・レンダラーの組。
// プロセス起動時に定義され、以後変更されない。
type Template struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Features       []string `json:"features"`
	RecommendedFor []string `json:"recommendedFor"`

	renderer Renderer
}

// Renderer はこのテンプレートのレンダラーを返す。
func (t Template) Renderer() Renderer {
	return t.renderer
}

// DefaultTemplateID はフォールバック先となる既定テンプレートのID。
const DefaultTemplateID = "default"

// Registry はテンプレートの固定カタログ。
// プロセス全体で共有するイミュータブルな状態として起動時に1回構築する。
type Registry struct {
	templates []Template
	byID      map[string]Template
}

// NewRegistry は固定カタログを構築する。
// カタログの順序は安定しており、再起動しても変わらない。
func NewRegistry() *Registry {
	templates := []Template{
		{
			ID:          DefaultTemplateID,
			Name:        "Professional Classic",
			Description: "Traditional ATS-friendly layout with clear section hierarchy and professional formatting. Perfect for corporate applications.",
			Features:    []string{"ATS Optimized", "Clean Typography", "Section Headers", "Skill Ratings"},
			RecommendedFor: []string{
				"Corporate Jobs", "Traditional Industries", "Executive Positions",
			},
			renderer: newHTMLRenderer("default", SkillSortByRating),
		},
		{
			ID:          "modern",
			Name:        "Modern Sidebar",
			Description: "Contemporary design with a stylish sidebar for skills and contact info. Features gradient accents and modern typography.",
			Features:    []string{"Sidebar Layout", "Skill Visualizations", "Modern Typography", "Color Accents"},
			RecommendedFor: []string{
				"Tech Industry", "Creative Roles", "Digital Portfolios",
			},
			renderer: newHTMLRenderer("modern", SkillSortByRating),
		},
		{
			ID:          "minimal",
			Name:        "Minimal Essential",
			Description: "Clean, distraction-free design that lets your content shine. Perfect for academic and research positions.",
			Features:    []string{"Minimalist Design", "Content Focused", "Elegant Spacing", "Simple Typography"},
			RecommendedFor: []string{
				"Academic Positions", "Research Roles", "Conservative Industries",
			},
			renderer: newHTMLRenderer("minimal", SkillSortByRating),
		},
		{
			ID:          "creative",
			Name:        "Creative Professional",
			Description: "Bold two-tone design with accent colors and experience-first skill ordering. Stands out while staying readable.",
			Features:    []string{"Accent Colors", "Experience-Based Skills", "Bold Headings", "Compact Sections"},
			RecommendedFor: []string{
				"Design Roles", "Marketing", "Startups",
			},
			renderer: newHTMLRenderer("creative", SkillSortByYears),
		},
	}

	byID := make(map[string]Template, len(templates))
	for _, t := range templates {
		byID[t.ID] = t
	}

	return &Registry{templates: templates, byID: byID}
}

// List はテンプレートを固定順で返す。返り値のスライスは呼び出しごとのコピー。
func (r *Registry) List() []Template {
	out := make([]Template, len(r.templates))
	copy(out, r.templates)
	return out
}

// ByID は指定IDのテンプレートを返す。
//
// 未知または空のIDには既定テンプレートを返し、エラーにはしない。
// テンプレート廃止前に作成された古い公開スナップショットのIDでも
// レジュメの描画自体は必ず成立させるという方針のため、解決は全域的。
func (r *Registry) ByID(id string) Template {
	if t, ok := r.byID[id]; ok {
		return t
	}
	return r.byID[DefaultTemplateID]
}
