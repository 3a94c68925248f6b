package middleware

import (
	"net/http"
	"sync"
	"time"

	"marketmate-be/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Tier is a token-bucket policy. Each identity gets one bucket per tier.
type Tier struct {
	Name  string
	Limit rate.Limit
	Burst int
}

var (
	// TierStrict guards credential endpoints.
	TierStrict = Tier{Name: "strict", Limit: rate.Limit(2), Burst: 5}
	// TierGeneral is the default for everything else.
	TierGeneral = Tier{Name: "general", Limit: rate.Limit(10), Burst: 20}
)

const (
	visitorIdleTTL = 3 * time.Minute
	sweepInterval  = time.Minute
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps per-identity buckets. Idle buckets are swept while serving
// requests, so no background goroutine is needed.
type Limiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
	now       func() time.Time
}

func NewLimiter() *Limiter {
	return &Limiter{
		visitors:  make(map[string]*visitor),
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *Limiter) get(key string, t Tier) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= sweepInterval {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > visitorIdleTTL {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(t.Limit, t.Burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter
}

func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// identity prefers the authenticated account and falls back to the client IP.
func identity(c *gin.Context) string {
	if id := c.GetString(logger.ContextAccountIDKey); id != "" {
		return "account:" + id
	}
	return "ip:" + c.ClientIP()
}

// Middleware rejects requests over the tier's budget with 429.
func (l *Limiter) Middleware(t Tier) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := identity(c) + ":" + t.Name
		if !l.get(key, t).Allow() {
			logger.FromCtx(c.Request.Context()).Warn("rate limited",
				zap.String("key", key),
				zap.String("path", c.Request.URL.Path),
			)
			abortMessage(c, http.StatusTooManyRequests, MsgTooManyRequests)
			return
		}
		c.Next()
	}
}
