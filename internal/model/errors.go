// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, resume, export, share, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidSection   = "INVALID_SECTION"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeSaveFailed       = "SAVE_FAILED"
	ErrCodeExportFailed     = "EXPORT_FAILED"
	ErrCodeShareFailed      = "SHARE_FAILED"
	ErrCodeResumeNotFound   = "RESUME_NOT_FOUND"
	ErrCodeUserNotFound     = "USER_NOT_FOUND"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
)

// NewInvalidSectionError は未知のセクション指定エラーを生成する。
func NewInvalidSectionError(section string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidSection,
		Message:  fmt.Sprintf("無効なセクションです: %s", section),
		Category: "validation",
		Action:   "セクション名を確認してください。",
	}
}

// NewValidationFailedError は必須フィールド検証エラーを生成する。
// detailにはスキーマ検証の失敗内容を格納する。
func NewValidationFailedError(detail string) *APIError {
	return &APIError{
		Code:     ErrCodeValidationFailed,
		Message:  fmt.Sprintf("入力内容の検証に失敗しました: %s", detail),
		Category: "validation",
		Action:   "必須項目が入力されているか確認してください。",
	}
}

// NewSaveFailedError は保存失敗エラーを生成する。
// 保存は冪等なため、再送信で回復できる。
func NewSaveFailedError() *APIError {
	return &APIError{
		Code:     ErrCodeSaveFailed,
		Message:  "レジュメの保存に失敗しました。",
		Category: "resume",
		Action:   "しばらく待ってから再度保存してください。",
	}
}

// NewExportFailedError はエクスポート失敗エラーを生成する。
// エクスポートはベストエフォートであり、同じ操作の再実行でリトライできる。
func NewExportFailedError(format string) *APIError {
	return &APIError{
		Code:     ErrCodeExportFailed,
		Message:  fmt.Sprintf("%sのエクスポートに失敗しました。", format),
		Category: "export",
		Action:   "再度エクスポートをお試しください。",
	}
}

// NewShareFailedError は共有失敗エラーを生成する。
func NewShareFailedError() *APIError {
	return &APIError{
		Code:     ErrCodeShareFailed,
		Message:  "レジュメの共有に失敗しました。",
		Category: "share",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// NewResumeNotFoundError は公開レジュメ未検出エラーを生成する。
// 期限切れ・誤記の共有リンクは想定内の状態であり、
// ネットワーク障害などの一般エラーとは区別される終端状態として扱う。
func NewResumeNotFoundError(publicID string) *APIError {
	return &APIError{
		Code:     ErrCodeResumeNotFound,
		Message:  fmt.Sprintf("指定された公開レジュメが見つかりません: %s", publicID),
		Category: "share",
		Action:   "共有リンクが正しいか確認してください。",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "ユーザーが見つかりません。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}

// NewUnauthorizedError は未認証エラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証が必要です。",
		Category: "auth",
		Action:   "ログインしてください。",
	}
}
