package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/dinepoll/server/internal/respond"
	"github.com/dinepoll/server/pkg/errors"
	"github.com/gin-gonic/gin"
)

// RateLimiter implements a fixed-window in-memory rate limiter, keyed by
// authenticated user id and by client IP.
type RateLimiter struct {
	userLimits map[uint]*windowCounter
	ipLimits   map[string]*windowCounter
	mu         sync.Mutex

	userMaxRequests int
	ipMaxRequests   int
	window          time.Duration

	stop chan struct{}
}

type windowCounter struct {
	requests  int
	resetTime time.Time
}

func NewRateLimiter(userMaxRequests, ipMaxRequests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		userLimits:      make(map[uint]*windowCounter),
		ipLimits:        make(map[string]*windowCounter),
		userMaxRequests: userMaxRequests,
		ipMaxRequests:   ipMaxRequests,
		window:          window,
		stop:            make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// CheckUserLimit reports whether the user is within its window budget.
func (rl *RateLimiter) CheckUserLimit(userID uint) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	limit, exists := rl.userLimits[userID]
	if !exists || now.After(limit.resetTime) {
		rl.userLimits[userID] = &windowCounter{requests: 1, resetTime: now.Add(rl.window)}
		return true
	}

	if limit.requests >= rl.userMaxRequests {
		return false
	}

	limit.requests++
	return true
}

// CheckIPLimit reports whether the IP is within its window budget.
func (rl *RateLimiter) CheckIPLimit(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	limit, exists := rl.ipLimits[ip]
	if !exists || now.After(limit.resetTime) {
		rl.ipLimits[ip] = &windowCounter{requests: 1, resetTime: now.Add(rl.window)}
		return true
	}

	if limit.requests >= rl.ipMaxRequests {
		return false
	}

	limit.requests++
	return true
}

// Middleware enforces the IP limit. It runs on every request, ahead of
// authentication.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.CheckIPLimit(c.ClientIP()) {
			respond.Fail(c, http.StatusTooManyRequests, errors.ErrCodeContentLimit, "requests")
			return
		}

		c.Next()
	}
}

// UserMiddleware enforces the per-user limit. It must run after Authenticate,
// which attaches the identity the budget is keyed on.
func (rl *RateLimiter) UserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity, ok := GetIdentity(c); ok {
			if !rl.CheckUserLimit(identity.ID) {
				respond.Fail(c, http.StatusTooManyRequests, errors.ErrCodeContentLimit, "requests")
				return
			}
		}

		c.Next()
	}
}

// Stop terminates the cleanup loop.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			now := time.Now()
			rl.mu.Lock()
			for id, limit := range rl.userLimits {
				if now.After(limit.resetTime) {
					delete(rl.userLimits, id)
				}
			}
			for ip, limit := range rl.ipLimits {
				if now.After(limit.resetTime) {
					delete(rl.ipLimits, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}
