// Package security はアプリケーションのセキュリティ機能を提供する。
//
// ContentSanitizerService はレジュメの各フィールドに入力されたテキストを
// サニタイズし、XSS攻撃などのセキュリティリスクからユーザーを保護する。
// レジュメのフィールドはすべてプレーンテキストであり、HTMLマークアップを
// 持ち込む正当な理由がないため、bluemondayのStrictPolicyで全タグを除去する。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizerService はテキストフィールドのサニタイズ機能のインターフェースを定義する。
// セクション保存時、バリデーションおよび永続化の前に適用される。
type ContentSanitizerService interface {
	// Sanitize は入力テキストから全HTMLタグを除去したプレーンテキストを返す。
	// script, img, svg等のタグおよびon*イベント属性はタグごと除去される。
	// タグ除去後のエンティティはデコードされ、保存値は素のテキストになる。
	// 描画時のエスケープはテンプレート側の責務。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// contentSanitizer はContentSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type contentSanitizer struct {
	policy *bluemonday.Policy
}

// NewContentSanitizer はContentSanitizerServiceの新しいインスタンスを生成する。
// StrictPolicyは許可タグを一切持たず、全要素を除去する。
func NewContentSanitizer() *contentSanitizer {
	return &contentSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は入力テキストから全HTMLタグを除去したプレーンテキストを返す。
// StrictPolicyの出力はエンティティエンコード済みのため、デコードして
// プレーンテキストに戻したうえで前後の空白を落とす。
func (s *contentSanitizer) Sanitize(raw string) string {
	stripped := s.policy.Sanitize(raw)
	return strings.TrimSpace(html.UnescapeString(stripped))
}
