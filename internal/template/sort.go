package template

import (
	"sort"

	"github.com/hitoshi/resumake/internal/model"
)

// ソートは描画時の関心事であり、保存順は変更しない。
// そのため各関数は入力スライスをコピーしてからソートする。
// 日付はエディタ側で正規化済みの不透明な文字列として扱い、
// 辞書順比較で新しい順を判定する。同値キーは挿入順を維持する（安定ソート）。

// sortedExperience は職歴を開始日の降順で返す。
// 終了日が空（在職中）のエントリは最も新しいものとして先頭側に並ぶ。
func sortedExperience(in []model.ExperienceEntry) []model.ExperienceEntry {
	out := make([]model.ExperienceEntry, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		oi, oj := out[i].EndDate == "", out[j].EndDate == ""
		if oi != oj {
			return oi
		}
		return out[i].StartDate > out[j].StartDate
	})
	return out
}

// sortedEducation は学歴を開始日の降順で返す。
// 終了日が空（在学中）のエントリは最も新しいものとして先頭側に並ぶ。
func sortedEducation(in []model.EducationEntry) []model.EducationEntry {
	out := make([]model.EducationEntry, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		oi, oj := out[i].ToDate == "", out[j].ToDate == ""
		if oi != oj {
			return oi
		}
		return out[i].FromDate > out[j].FromDate
	})
	return out
}

// sortedAchievements は実績を日付の降順で返す。
func sortedAchievements(in []model.AchievementEntry) []model.AchievementEntry {
	out := make([]model.AchievementEntry, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

// SkillSort はスキルのソートキーを表す。テンプレートごとに異なる。
type SkillSort int

const (
	// SkillSortByRating は習熟度の降順。
	SkillSortByRating SkillSort = iota
	// SkillSortByYears は経験年数の降順。
	SkillSortByYears
)

// sortedSkills はスキルを指定キーの降順で返す。
func sortedSkills(in []model.SkillEntry, key SkillSort) []model.SkillEntry {
	out := make([]model.SkillEntry, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		if key == SkillSortByYears {
			return out[i].YearsOfExperience > out[j].YearsOfExperience
		}
		return out[i].Rating > out[j].Rating
	})
	return out
}
