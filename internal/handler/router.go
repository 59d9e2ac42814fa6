package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/resumake/internal/export"
	"github.com/hitoshi/resumake/internal/metrics"
	"github.com/hitoshi/resumake/internal/middleware"
	"github.com/hitoshi/resumake/internal/resume"
	"github.com/hitoshi/resumake/internal/share"
	"github.com/hitoshi/resumake/internal/template"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	SessionFinder     middleware.SessionFinder
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	CSRFConfig        middleware.CSRFConfig

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// レジュメ
	ResumeService resume.Service

	// テンプレート・プレビュー・エクスポート
	Registry      *template.Registry
	ExportService export.Service

	// 共有
	ShareService share.Service

	// ユーザー表示情報
	Users UserFinder

	// 観測
	Collector      metrics.MetricsCollector
	MetricsHandler http.Handler
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → Logging → CORS →
//	（認証ルートのみ）Session → CSRF → RateLimit(General)
//
// 公開レジュメページ（/resume/{publicId}）と認証フロー（/auth/*）は
// 認証チェーンの外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Collector))
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig)
	resumeHandler := NewResumeHandler(deps.ResumeService, deps.Collector)
	templateHandler := NewTemplateHandler(deps.Registry)
	exportHandler := NewExportHandler(deps.ResumeService, deps.ExportService, deps.Registry, deps.Users, deps.Collector)
	shareHandler := NewShareHandler(deps.ShareService, deps.Registry, deps.Users, deps.Collector)

	// --- 認証不要のルート ---

	// 認証ルート（OAuthフロー）
	r.Route("/auth", func(r chi.Router) {
		r.Get("/google/login", authHandler.Login)
		r.Get("/google/callback", authHandler.Callback)
		r.Post("/logout", authHandler.Logout)
	})

	// 公開レジュメページ（未認証の閲覧者向け）
	r.Get("/resume/{publicId}", shareHandler.PublicResume)

	// CSRFトークン払い出し
	r.Get("/api/csrf-token", middleware.NewCSRFTokenHandler(deps.CSRFConfig))

	// ヘルスチェック
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Prometheusメトリクス
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Session → CSRF → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.SessionFinder))
		r.Use(middleware.NewCSRFMiddleware(deps.CSRFConfig))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// ログインユーザー情報
		r.Get("/api/me", authHandler.Me)

		// レジュメ集約とセクション保存
		r.Route("/api/resume", func(r chi.Router) {
			r.Get("/", resumeHandler.GetResume)
			r.Put("/sections/{section}", resumeHandler.SaveSection)

			// プレビューとエクスポート
			r.Get("/preview", exportHandler.Preview)
			r.Post("/export/pdf", exportHandler.ExportPDF)
			r.Post("/export/docx", exportHandler.ExportDOCX)

			// 共有リンク発行（発行専用レート制限を追加）
			r.With(deps.RateLimiter.ShareMiddleware()).Post("/share", shareHandler.CreateShare)
		})

		// テンプレートカタログ
		r.Get("/api/templates", templateHandler.ListTemplates)
	})

	return r
}
