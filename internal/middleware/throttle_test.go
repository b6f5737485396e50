package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func throttledRouter(t *Throttle) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/search", t.Handler(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestThrottleAllowsWithinBurst(t *testing.T) {
	r := throttledRouter(NewThrottle(5.0/60.0, 5))

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/search?text=go", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}
}

func TestThrottleRejectsBeyondBurst(t *testing.T) {
	r := throttledRouter(NewThrottle(5.0/60.0, 5))

	var last int
	for i := 0; i < 6; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/search?text=go", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		r.ServeHTTP(w, req)
		last = w.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on sixth request, got %d", last)
	}
}

func TestThrottleIsPerIP(t *testing.T) {
	r := throttledRouter(NewThrottle(5.0/60.0, 1))

	first := httptest.NewRecorder()
	req1 := httptest.NewRequest(http.MethodGet, "/search?text=go", nil)
	req1.RemoteAddr = "10.0.0.3:1234"
	r.ServeHTTP(first, req1)

	blocked := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/search?text=go", nil)
	req2.RemoteAddr = "10.0.0.3:1234"
	r.ServeHTTP(blocked, req2)

	other := httptest.NewRecorder()
	req3 := httptest.NewRequest(http.MethodGet, "/search?text=go", nil)
	req3.RemoteAddr = "10.0.0.4:1234"
	r.ServeHTTP(other, req3)

	if first.Code != http.StatusOK || other.Code != http.StatusOK {
		t.Fatalf("independent IPs should both pass: %d, %d", first.Code, other.Code)
	}
	if blocked.Code != http.StatusTooManyRequests {
		t.Fatalf("second request from same IP should be throttled, got %d", blocked.Code)
	}
}
