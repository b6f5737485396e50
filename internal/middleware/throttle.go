package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Throttle 按客户端 IP 做令牌桶限流，搜索接口用（匿名 5 次/分钟）
type Throttle struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    float64 // tokens per second
	burst   int
}

type bucket struct {
	tokens float64
	last   time.Time
}

// NewThrottle creates a throttle with the given rate (req/s) and burst size.
func NewThrottle(rate float64, burst int) *Throttle {
	return &Throttle{
		buckets: make(map[string]*bucket),
		rate:    rate,
		burst:   burst,
	}
}

func (t *Throttle) allow(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	b, ok := t.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(t.burst), last: now}
		t.buckets[key] = b
	}

	elapsed := now.Sub(b.last).Seconds()
	b.tokens += elapsed * t.rate
	if b.tokens > float64(t.burst) {
		b.tokens = float64(t.burst)
	}
	b.last = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Handler 返回按 IP 限流的 gin 中间件
func (t *Throttle) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !t.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"detail": "Request was throttled.",
			})
			return
		}
		c.Next()
	}
}
