package http

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/makhmudjon-inadullaev/quote-service/internal/handler/http/requestid"
	"github.com/makhmudjon-inadullaev/quote-service/internal/handler/http/respond"
	"github.com/makhmudjon-inadullaev/quote-service/internal/handler/http/responsewriter"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// Logging returns middleware that logs HTTP requests with structured logging.
// It captures request details, response status, size, and processing duration.
// The middleware also extracts and logs the trace ID from the OpenTelemetry span context
// to enable correlation between logs and distributed traces.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Wrap ResponseWriter to record status code and size
			wrapped := responsewriter.Wrap(w)

			// Process request
			next.ServeHTTP(wrapped, r)

			// Extract request ID
			reqID := requestid.FromContext(r.Context())

			// Extract trace ID from OpenTelemetry span context
			span := trace.SpanFromContext(r.Context())
			traceID := span.SpanContext().TraceID().String()

			// Calculate processing duration
			duration := time.Since(start)

			// Log request completion with structured fields
			logger.Info("request completed",
				slog.String("request_id", reqID),
				slog.String("trace_id", traceID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("query", r.URL.RawQuery),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("user_agent", r.Header.Get("User-Agent")),
				slog.Int("status", wrapped.StatusCode()),
				slog.Int("bytes", wrapped.BytesWritten()),
				slog.Duration("duration", duration),
				slog.String("duration_ms", fmt.Sprintf("%.2f", duration.Seconds()*1000)),
			)
		})
	}
}

// Recover returns middleware that catches panics and logs them with structured logging.
// It prevents the server from crashing and returns a 500 Internal Server Error response.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					// リクエストID を取得
					reqID := requestid.FromContext(r.Context())

					// スタックトレースを取得
					stack := string(debug.Stack())

					// エラーレスポンスを返す
					respond.SafeError(
						w,
						http.StatusInternalServerError,
						fmt.Errorf("internal error"),
					)

					// 構造化ログで記録
					logger.Error("panic recovered",
						slog.String("request_id", reqID),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.Any("panic", rec),
						slog.String("stack", stack),
					)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// LimitRequestBody returns middleware that limits the size of request bodies to prevent DoS attacks.
func LimitRequestBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// clientLimiter pairs a token bucket with its last access time so idle
// clients can be evicted.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
	mu       sync.Mutex
}

// RateLimiter implements IP address-based rate limiting middleware using
// golang.org/x/time token buckets, one bucket per client IP.
type RateLimiter struct {
	limiters  sync.Map // map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	window    time.Duration
	cleanMu   sync.Mutex
	lastClean time.Time
}

// NewRateLimiter creates a new rate limiting middleware.
// limit: maximum number of requests allowed within the time window.
// window: time window duration (e.g., for 5 requests per minute: limit=5, window=1*time.Minute).
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     rate.Limit(float64(limit) / window.Seconds()),
		burst:     limit,
		window:    window,
		lastClean: time.Now(),
	}
}

// Limit applies rate limiting to incoming requests based on client IP address.
// Returns 429 Too Many Requests if the rate limit is exceeded.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := extractIP(r)

		// 定期的に古いレコードをクリーンアップ（メモリリーク防止）
		rl.periodicCleanup()

		// リクエストが許可されるか確認
		if !rl.allow(ip) {
			respond.SafeError(w, http.StatusTooManyRequests, fmt.Errorf("rate limit exceeded"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allow determines if a request is permitted under the client's token bucket.
func (rl *RateLimiter) allow(ip string) bool {
	val, _ := rl.limiters.LoadOrStore(ip, &clientLimiter{
		limiter: rate.NewLimiter(rl.limit, rl.burst),
	})
	client := val.(*clientLimiter)

	client.mu.Lock()
	client.lastSeen = time.Now()
	client.mu.Unlock()

	return client.limiter.Allow()
}

// periodicCleanup periodically removes idle limiters to prevent memory leaks.
func (rl *RateLimiter) periodicCleanup() {
	rl.cleanMu.Lock()
	defer rl.cleanMu.Unlock()

	// 10分に1回クリーンアップ
	if time.Since(rl.lastClean) < 10*time.Minute {
		return
	}

	rl.lastClean = time.Now()
	cutoff := time.Now().Add(-rl.window * 2) // 時間窓の2倍以上アイドルなクライアントを削除

	rl.limiters.Range(func(key, value interface{}) bool {
		client := value.(*clientLimiter)
		client.mu.Lock()
		idle := client.lastSeen.Before(cutoff)
		client.mu.Unlock()
		if idle {
			rl.limiters.Delete(key)
		}
		return true
	})
}

// extractIP extracts the client IP address from the HTTP request.
// It checks X-Forwarded-For and X-Real-IP headers before falling back to RemoteAddr.
func extractIP(r *http.Request) string {
	// X-Forwarded-For ヘッダーを優先（リバースプロキシ経由の場合）
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// 最初のIPアドレスを使用（クライアントのIP）
		if ip := parseFirstIP(xff); ip != "" {
			return ip
		}
	}

	// X-Real-IP ヘッダーを確認
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if ip := net.ParseIP(xri); ip != nil {
			return ip.String()
		}
	}

	// RemoteAddr から取得（最後の手段）
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// parseFirstIP parses the first IP address from a comma-separated list.
func parseFirstIP(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			ip := net.ParseIP(s[:i])
			if ip != nil {
				return ip.String()
			}
			return ""
		}
	}
	// カンマがない場合は全体をパース
	if ip := net.ParseIP(s); ip != nil {
		return ip.String()
	}
	return ""
}
