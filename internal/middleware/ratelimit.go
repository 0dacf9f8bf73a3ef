package middleware

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"adlaunch/internal/config"
	"adlaunch/internal/metrics"
	"adlaunch/internal/models"
)

// RateLimitMiddleware throttles the launch endpoints with a single token
// bucket. Every launch fans out into several Graph API calls, so the limit
// protects the upstream app quota, not this process.
type RateLimitMiddleware struct {
	cfg     config.RateLimitConfig
	logger  *zap.Logger
	metrics *metrics.Metrics
	limiter *rate.Limiter
}

func NewRateLimitMiddleware(cfg config.RateLimitConfig, logger *zap.Logger, m *metrics.Metrics) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
	}
}

func (rl *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.cfg.Enabled || !isLaunchPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}
		if !rl.limiter.Allow() {
			rl.logger.Warn("rate limit exceeded",
				zap.String("path", r.URL.Path),
				zap.String("remote", r.RemoteAddr),
			)
			rl.metrics.RecordRateLimitHit(r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(models.ErrorResponse{Detail: "rate limit exceeded, try again shortly"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isLaunchPath(path string) bool {
	return path == "/api/v1/campaigns/launch" || path == "/create_campaign"
}
