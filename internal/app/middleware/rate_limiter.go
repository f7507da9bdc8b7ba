package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Miguel-Alz/trascontrol/internal/error/code"
	"github.com/Miguel-Alz/trascontrol/internal/error/response"
)

// TokenBucket es un limitador de cubeta de tokens
type TokenBucket struct {
	rate       float64 // tokens por segundo
	capacity   int
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

// NewTokenBucket crea un limitador nuevo
func NewTokenBucket(rate float64, capacity int) *TokenBucket {
	return &TokenBucket{
		rate:       rate,
		capacity:   capacity,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// Allow intenta consumir un token
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.lastRefill = now

	tb.tokens += elapsed * tb.rate
	if tb.tokens > float64(tb.capacity) {
		tb.tokens = float64(tb.capacity)
	}

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

var (
	ipLimiters   = make(map[string]*TokenBucket)
	ipLimitersMu sync.RWMutex
)

// RateLimiterConfig configura el limitador
type RateLimiterConfig struct {
	Rate  float64 // peticiones por segundo
	Burst int     // ráfaga permitida
}

func getIPLimiter(key string, cfg RateLimiterConfig) *TokenBucket {
	ipLimitersMu.RLock()
	limiter, exists := ipLimiters[key]
	ipLimitersMu.RUnlock()

	if !exists {
		limiter = NewTokenBucket(cfg.Rate, cfg.Burst)
		ipLimitersMu.Lock()
		ipLimiters[key] = limiter
		ipLimitersMu.Unlock()
	}
	return limiter
}

// ResetLimiters descarta todos los limitadores acumulados
func ResetLimiters() {
	ipLimitersMu.Lock()
	ipLimiters = make(map[string]*TokenBucket)
	ipLimitersMu.Unlock()
}

// IPRateLimiter limita las peticiones por IP de origen
func IPRateLimiter(rate float64, burst int) gin.HandlerFunc {
	cfg := RateLimiterConfig{Rate: rate, Burst: burst}
	return func(c *gin.Context) {
		limiter := getIPLimiter(c.ClientIP(), cfg)
		if !limiter.Allow() {
			response.Fail(c, code.ErrTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}

// PathRateLimiter limita las peticiones por IP y ruta
func PathRateLimiter(rate float64, burst int) gin.HandlerFunc {
	cfg := RateLimiterConfig{Rate: rate, Burst: burst}
	return func(c *gin.Context) {
		key := c.ClientIP() + ":" + c.Request.URL.Path
		limiter := getIPLimiter(key, cfg)
		if !limiter.Allow() {
			response.Fail(c, code.ErrTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}
