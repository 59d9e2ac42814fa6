// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"encoding/json"

	"github.com/hitoshi/resumake/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// CreateWithIdentity はユーザーとidentityを同一トランザクションで作成する。
	CreateWithIdentity(ctx context.Context, user *model.User, identity *model.Identity) error

	// UpdateProfile はIdPから取得した表示名・写真URLを同期する。
	// ログインのたびに呼ばれ、プロフィール変更を反映する。
	UpdateProfile(ctx context.Context, id, name, photoURL string) error
}

// IdentityRepository は外部IdP紐付け情報の永続化インターフェース。
type IdentityRepository interface {
	// FindByProviderAndProviderUserID はproviderとprovider_user_idでidentityを検索する。
	// 見つからない場合はnilを返す。
	FindByProviderAndProviderUserID(ctx context.Context, provider, providerUserID string) (*model.Identity, error)
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error
	// DeleteByUserID は指定ユーザーの全セッションを削除する。
	DeleteByUserID(ctx context.Context, userID string) error
}

// ResumeDocument はユーザーのドキュメントをカテゴリ単位の生JSONとして表す。
// 欠損カテゴリはnilとなる。デコードと空デフォルトの適用はローダーの責務。
type ResumeDocument struct {
	UserID         string
	PersonalInfo   json.RawMessage
	Education      json.RawMessage
	Experience     json.RawMessage
	Skills         json.RawMessage
	Certifications json.RawMessage
	Languages      json.RawMessage
	Achievements   json.RawMessage
}

// Category はセクションに対応する生JSONを返す。
func (d *ResumeDocument) Category(section model.Section) json.RawMessage {
	switch section {
	case model.SectionPersonalInfo:
		return d.PersonalInfo
	case model.SectionEducation:
		return d.Education
	case model.SectionExperience:
		return d.Experience
	case model.SectionSkills:
		return d.Skills
	case model.SectionCertifications:
		return d.Certifications
	case model.SectionLanguages:
		return d.Languages
	case model.SectionAchievements:
		return d.Achievements
	}
	return nil
}

// ResumeDocumentRepository はレジュメドキュメントの永続化インターフェース。
//
// 書き込みは必ずカテゴリ単位のマージとする。あるカテゴリの保存が
// 兄弟カテゴリを消してはならないという正当性不変条件を、
// 単一カラムのみを更新するSQLで実装側が保証する。
type ResumeDocumentRepository interface {
	// FindByUserID はユーザーのドキュメントを取得する。
	// ドキュメントが存在しない場合はnilを返す（新規ユーザーの通常状態）。
	FindByUserID(ctx context.Context, userID string) (*ResumeDocument, error)

	// SaveCategory は指定カテゴリのみをドキュメントへマージ書き込みする。
	// ドキュメント未作成の場合は新規作成する。他カテゴリには触れない。
	SaveCategory(ctx context.Context, userID string, section model.Section, payload json.RawMessage) error
}

// SnapshotRepository は公開スナップショットの永続化インターフェース。
// スナップショットは挿入のみで、更新操作を持たない。
type SnapshotRepository interface {
	// Create はスナップショットを新規保存する。
	Create(ctx context.Context, snapshot *model.PublicResumeSnapshot) error

	// FindByPublicID は公開IDでスナップショットを取得する。
	// 見つからない場合はnilを返す。
	FindByPublicID(ctx context.Context, publicID string) (*model.PublicResumeSnapshot, error)
}
