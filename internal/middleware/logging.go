package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/resumake/internal/metrics"
)

// statusRecorder はレスポンスのステータスコードを記録するラッパー。
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// NewLoggingMiddleware はリクエストごとに構造化ログを出力し、
// ステータスコードをメトリクスに記録するミドルウェアを返す。
// 5xxはError、4xxはWarn、それ以外はInfoレベルで記録する。
func NewLoggingMiddleware(collector metrics.MetricsCollector) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(recorder, r)

			duration := time.Since(start)
			if collector != nil {
				collector.RecordHTTPStatus(recorder.statusCode)
			}

			attrs := []any{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", recorder.statusCode),
				slog.Duration("duration", duration),
				slog.String("remote_addr", r.RemoteAddr),
			}

			switch {
			case recorder.statusCode >= 500:
				slog.Error("request completed", attrs...)
			case recorder.statusCode >= 400:
				slog.Warn("request completed", attrs...)
			default:
				slog.Info("request completed", attrs...)
			}
		})
	}
}
