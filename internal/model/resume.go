// Package model はドメインモデルを定義する。
package model

// PersonalInfo は基本情報セクションを表す。
// Emailは認証済みアイデンティティから取得するため保存しない。
// FullNameは明示的な上書き値。空の場合は認証済みアイデンティティの表示名を使う。
type PersonalInfo struct {
	FullName            string `json:"fullName"`
	DateOfBirth         string `json:"dateOfBirth"`
	Phone               string `json:"phone"`
	Address             string `json:"address"`
	ProfessionalSummary string `json:"professionalSummary"`
	GithubURL           string `json:"githubUrl"`
	WebsiteURL          string `json:"websiteUrl"`
}

// IsZero はすべてのフィールドが空かどうかを返す。
func (p PersonalInfo) IsZero() bool {
	return p == PersonalInfo{}
}

// EducationEntry は学歴セクションの1エントリを表す。
// ToDateが空の場合は在学中（現在まで継続）を意味する。
type EducationEntry struct {
	InstituteName string `json:"instituteName"`
	Location      string `json:"location"`
	FromDate      string `json:"fromDate"`
	ToDate        string `json:"toDate,omitempty"`
	Grade         string `json:"grade"`
	Degree        string `json:"degree"`
	FieldOfStudy  string `json:"fieldOfStudy"`
	Description   string `json:"description,omitempty"`
	Activities    string `json:"activities,omitempty"`
}

// EmploymentType は雇用形態を表す。
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "Full-time"
	EmploymentPartTime   EmploymentType = "Part-time"
	EmploymentContract   EmploymentType = "Contract"
	EmploymentInternship EmploymentType = "Internship"
	EmploymentFreelance  EmploymentType = "Freelance"
)

// LocationType は勤務形態を表す。
type LocationType string

const (
	LocationOnsite LocationType = "onsite"
	LocationRemote LocationType = "remote"
	LocationHybrid LocationType = "hybrid"
)

// ExperienceEntry は職歴セクションの1エントリを表す。
// EndDateが空の場合は在職中（現在まで継続）を意味する。
// Skillsはエントリ内で一意なスキルタグの集合。
type ExperienceEntry struct {
	Company        string         `json:"company"`
	Position       string         `json:"position"`
	EmploymentType EmploymentType `json:"employmentType"`
	StartDate      string         `json:"startDate"`
	EndDate        string         `json:"endDate,omitempty"`
	Location       string         `json:"location"`
	LocationType   LocationType   `json:"locationType"`
	Skills         []string       `json:"skills"`
	Role           string         `json:"role,omitempty"`
	Description    string         `json:"description"`
}

// SkillEntry はスキルセクションの1エントリを表す。
// Ratingは1〜5の習熟度。
type SkillEntry struct {
	Name              string  `json:"name"`
	Rating            int     `json:"rating"`
	YearsOfExperience float64 `json:"yearsOfExperience"`
}

// CertificationEntry は資格セクションの1エントリを表す。
// ExpiryDateが空の場合は有効期限なしを意味する。
type CertificationEntry struct {
	Name          string   `json:"name"`
	Organization  string   `json:"organization"`
	IssueDate     string   `json:"issueDate"`
	ExpiryDate    string   `json:"expiryDate,omitempty"`
	CredentialID  string   `json:"credentialId"`
	CredentialURL string   `json:"credentialUrl,omitempty"`
	Skills        []string `json:"skills,omitempty"`
}

// LanguageProficiency は言語の習熟度レベルを表す。
type LanguageProficiency string

const (
	ProficiencyNative       LanguageProficiency = "Native/Bilingual"
	ProficiencyFluent       LanguageProficiency = "Fluent"
	ProficiencyProfessional LanguageProficiency = "Professional"
	ProficiencyIntermediate LanguageProficiency = "Intermediate"
	ProficiencyBasic        LanguageProficiency = "Basic"
	ProficiencyBeginner     LanguageProficiency = "Beginner"
)

// LanguageEntry は言語セクションの1エントリを表す。
type LanguageEntry struct {
	Name        string              `json:"name"`
	Proficiency LanguageProficiency `json:"proficiency"`
}

// AchievementEntry は実績セクションの1エントリを表す。
type AchievementEntry struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// Section はレジュメのセクション種別を表す。
// ドキュメントストア上のカテゴリキーと一致する。
type Section string

const (
	SectionPersonalInfo   Section = "personalInfo"
	SectionEducation      Section = "education"
	SectionExperience     Section = "experience"
	SectionSkills         Section = "skills"
	SectionCertifications Section = "certifications"
	SectionLanguages      Section = "languages"
	SectionAchievements   Section = "achievements"
)

// ListSections はリスト型セクションを保存順の固定順序で返す。
// personalInfoは単一レコードのため含まない。
func ListSections() []Section {
	return []Section{
		SectionEducation,
		SectionExperience,
		SectionSkills,
		SectionCertifications,
		SectionLanguages,
		SectionAchievements,
	}
}

// ResumeData はユーザーのドキュメントから組み立てた集約を表す。
// 独立して保存されたセクションをロード時に合成するものであり、
// この形では永続化しない。
// 各リストは保存時の順序を保持する。ソートは描画側の責務。
type ResumeData struct {
	PersonalInfo   PersonalInfo         `json:"personalInfo"`
	Education      []EducationEntry     `json:"education"`
	Experience     []ExperienceEntry    `json:"experience"`
	Skills         []SkillEntry         `json:"skills"`
	Certifications []CertificationEntry `json:"certifications"`
	Languages      []LanguageEntry      `json:"languages"`
	Achievements   []AchievementEntry   `json:"achievements"`
}

// IsEmpty は描画対象のデータが何も存在しないかどうかを返す。
func (d *ResumeData) IsEmpty() bool {
	if d == nil {
		return true
	}
	return d.PersonalInfo.IsZero() &&
		len(d.Education) == 0 &&
		len(d.Experience) == 0 &&
		len(d.Skills) == 0 &&
		len(d.Certifications) == 0 &&
		len(d.Languages) == 0 &&
		len(d.Achievements) == 0
}

// UserIdentity は描画時に参照する認証済みユーザーの表示情報を表す。
// ライブプレビューでは認証セッションから、公開レジュメでは
// スナップショットに埋め込まれたフィールドから構築される。
type UserIdentity struct {
	DisplayName string
	Email       string
	PhotoURL    string
}

// DisplayNameFor は表示名の解決規則を適用する。
// 保存されたフルネームが非空ならそれを優先し、次に認証済みの表示名、
// どちらも空なら空文字列を返す。
func DisplayNameFor(data *ResumeData, identity UserIdentity) string {
	if data != nil && data.PersonalInfo.FullName != "" {
		return data.PersonalInfo.FullName
	}
	return identity.DisplayName
}
