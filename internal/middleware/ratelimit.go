package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/hitoshi/resumake/internal/model"
)

// RateLimiterConfig はレート制限の設定。
type RateLimiterConfig struct {
	// GeneralRate は一般APIの1秒あたりのリクエスト許容量。
	GeneralRate rate.Limit
	// GeneralBurst は一般APIのバースト許容量。
	GeneralBurst int
	// ShareRate は共有リンク発行の1秒あたりのリクエスト許容量。
	ShareRate rate.Limit
	// ShareBurst は共有リンク発行のバースト許容量。
	ShareBurst int
	// CleanupInterval は未使用リミッターの掃除間隔。
	CleanupInterval time.Duration
}

// DefaultRateLimiterConfig はデフォルトのレート制限設定を返す。
// 一般API: 120回/分、共有リンク発行: 10回/分。
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		GeneralRate:     rate.Limit(120.0 / 60.0),
		GeneralBurst:    120,
		ShareRate:       rate.Limit(10.0 / 60.0),
		ShareBurst:      10,
		CleanupInterval: 5 * time.Minute,
	}
}

// limiterEntry はユーザーごとのリミッターと最終アクセス時刻を保持する。
type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter はユーザー単位のトークンバケット方式レート制限を提供する。
// 一般APIと共有リンク発行で独立したバケットを持つ。
type RateLimiter struct {
	config RateLimiterConfig

	mu            sync.Mutex
	generalLimits map[string]*limiterEntry
	shareLimits   map[string]*limiterEntry

	stopCleanup chan struct{}
}

// NewRateLimiter はレート制限ミドルウェアの本体を生成し、
// バックグラウンドの掃除ループを開始する。
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	rl := &RateLimiter{
		config:        config,
		generalLimits: make(map[string]*limiterEntry),
		shareLimits:   make(map[string]*limiterEntry),
		stopCleanup:   make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Stop は掃除ループを停止する。
func (rl *RateLimiter) Stop() {
	close(rl.stopCleanup)
}

// GeneralMiddleware は認証済みAPI全体に適用する一般レート制限ミドルウェアを返す。
func (rl *RateLimiter) GeneralMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := UserIDFromContext(r.Context())
			if err != nil {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			limiter := rl.getOrCreateLimiter(rl.generalLimits, userID, rl.config.GeneralRate, rl.config.GeneralBurst)
			if !limiter.Allow() {
				slog.Warn("rate limit exceeded",
					slog.String("user_id", userID),
					slog.String("limit_type", "general"),
					slog.String("path", r.URL.Path),
				)
				writeRateLimitResponse(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ShareMiddleware は共有リンク発行エンドポイントに適用する厳格なレート制限ミドルウェアを返す。
func (rl *RateLimiter) ShareMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := UserIDFromContext(r.Context())
			if err != nil {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			limiter := rl.getOrCreateLimiter(rl.shareLimits, userID, rl.config.ShareRate, rl.config.ShareBurst)
			if !limiter.Allow() {
				slog.Warn("rate limit exceeded",
					slog.String("user_id", userID),
					slog.String("limit_type", "share"),
					slog.String("path", r.URL.Path),
				)
				writeRateLimitResponse(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getOrCreateLimiter はユーザーのリミッターを取得または生成する。
func (rl *RateLimiter) getOrCreateLimiter(limits map[string]*limiterEntry, userID string, r rate.Limit, burst int) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := limits[userID]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(r, burst)}
		limits[userID] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

// cleanupLoop は一定期間アクセスのないユーザーのリミッターを破棄する。
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	ttl := 2 * rl.config.CleanupInterval
	cutoff := time.Now().Add(-ttl)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for userID, entry := range rl.generalLimits {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.generalLimits, userID)
		}
	}
	for userID, entry := range rl.shareLimits {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.shareLimits, userID)
		}
	}
}

// GeneralLimiterCount は一般リミッターの登録数を返す。テスト用。
func (rl *RateLimiter) GeneralLimiterCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.generalLimits)
}

// ShareLimiterCount は共有リミッターの登録数を返す。テスト用。
func (rl *RateLimiter) ShareLimiterCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.shareLimits)
}

// writeRateLimitResponse は429レスポンスを書き込む。
func writeRateLimitResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", strconv.Itoa(60))
	w.WriteHeader(http.StatusTooManyRequests)
	json.NewEncoder(w).Encode(map[string]string{
		"code":     "rate_limit_exceeded",
		"message":  "リクエストが多すぎます。しばらく待ってから再度お試しください。",
		"category": "rate_limit",
		"action":   "1分ほど待ってから再度お試しください。",
	})
}
