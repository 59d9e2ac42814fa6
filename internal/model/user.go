// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// NameとEmailとPhotoURLはIdPのプロフィールから同期される。
type User struct {
	ID        string
	Email     string
	Name      string
	PhotoURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserIdentity はUserから描画用の表示情報を構築する。
func (u *User) UserIdentity() UserIdentity {
	return UserIdentity{
		DisplayName: u.Name,
		Email:       u.Email,
		PhotoURL:    u.PhotoURL,
	}
}

// Identity は外部IdPとの紐付け情報を表す。
// 将来的に複数のIdP（Google, GitHub等）に対応可能な構造。
type Identity struct {
	ID             string
	UserID         string
	Provider       string
	ProviderUserID string
	CreatedAt      time.Time
}

// Session はユーザーのログインセッションを表す。
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
