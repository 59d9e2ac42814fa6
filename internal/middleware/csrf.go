package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/hitoshi/resumake/internal/model"
)

const (
	csrfCookieName = "csrf_token"
	csrfHeaderName = "X-CSRF-Token"
	csrfTokenBytes = 32
)

// CSRFConfig はCSRF保護ミドルウェアの設定。
type CSRFConfig struct {
	CookieSecure bool
	CookieDomain string
}

// NewCSRFMiddleware はDouble Submit Cookie方式のCSRF保護ミドルウェアを返す。
// 安全なメソッド(GET/HEAD/OPTIONS)ではトークンCookieの発行のみ行い、
// 状態変更メソッドではCookieとヘッダーの一致を検証する。
func NewCSRFMiddleware(cfg CSRFConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isSafeMethod(r.Method) {
				ensureCSRFCookie(w, r, cfg)
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(csrfCookieName)
			if err != nil || cookie.Value == "" {
				WriteErrorResponse(w, http.StatusForbidden, newCSRFError())
				return
			}
			header := r.Header.Get(csrfHeaderName)
			if header == "" || subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(header)) != 1 {
				WriteErrorResponse(w, http.StatusForbidden, newCSRFError())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// NewCSRFTokenHandler はフロントエンドにCSRFトークンを払い出すハンドラーを返す。
// Cookieが未発行の場合は新規発行し、トークン値をJSONで返す。
func NewCSRFTokenHandler(cfg CSRFConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := ensureCSRFCookie(w, r, cfg)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"csrf_token":"` + token + `"}`))
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// ensureCSRFCookie は既存のトークンCookieを返すか、なければ新規発行する。
func ensureCSRFCookie(w http.ResponseWriter, r *http.Request, cfg CSRFConfig) string {
	if cookie, err := r.Cookie(csrfCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	token := generateCSRFToken()
	http.SetCookie(w, &http.Cookie{
		Name:   csrfCookieName,
		Value:  token,
		Path:   "/",
		Domain: cfg.CookieDomain,
		Secure: cfg.CookieSecure,
		// JavaScriptからヘッダーに載せ替えるためHttpOnlyにしない
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})
	return token
}

func generateCSRFToken() string {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		panic("csrf: failed to generate random token: " + err.Error())
	}
	return hex.EncodeToString(b)
}

func newCSRFError() *model.APIError {
	return &model.APIError{
		Code:     "CSRF_TOKEN_INVALID",
		Message:  "CSRFトークンが無効です。",
		Category: "auth",
		Action:   "ページを再読み込みしてから再度お試しください。",
	}
}
