package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestResponseCache(t *testing.T) {
	rc := NewResponseCache(time.Minute)
	hits := 0

	r := gin.New()
	r.Use(rc.Handler())
	r.GET("/items", func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"hits": hits})
	})
	r.GET("/missing", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	})
	r.POST("/items", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"message": "created"})
	})
	r.POST("/invalid", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad"})
	})

	do := func(method, path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(method, path, nil)
		r.ServeHTTP(w, req)
		return w
	}

	first := do(http.MethodGet, "/items")
	assert.JSONEq(t, `{"hits":1}`, first.Body.String())
	assert.Empty(t, first.Header().Get("X-Cache"))

	second := do(http.MethodGet, "/items")
	assert.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, `{"hits":1}`, second.Body.String())
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))

	do(http.MethodGet, "/missing")
	assert.Equal(t, 1, rc.Len(), "error responses are not cached")

	do(http.MethodPost, "/invalid")
	assert.Equal(t, 1, rc.Len(), "failed mutations keep the cache")

	do(http.MethodPost, "/items")
	assert.Equal(t, 0, rc.Len(), "successful mutations flush the cache")

	third := do(http.MethodGet, "/items")
	assert.JSONEq(t, `{"hits":2}`, third.Body.String())
}

func TestResponseCache_WriteDuringRead(t *testing.T) {
	rc := NewResponseCache(time.Minute)
	version := 1
	writeDuringRead := true

	r := gin.New()
	r.Use(rc.Handler())
	r.POST("/items", func(c *gin.Context) {
		version++
		c.JSON(http.StatusCreated, gin.H{"message": "created"})
	})
	r.GET("/items", func(c *gin.Context) {
		seen := version
		if writeDuringRead {
			// A write commits and flushes while this read is still running.
			writeDuringRead = false
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/items", nil)
			r.ServeHTTP(w, req)
		}
		c.JSON(http.StatusOK, gin.H{"version": seen})
	})

	do := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/items", nil)
		r.ServeHTTP(w, req)
		return w
	}

	stale := do()
	assert.JSONEq(t, `{"version":1}`, stale.Body.String())
	assert.Equal(t, 0, rc.Len(), "a response older than the last flush is not cached")

	fresh := do()
	assert.Empty(t, fresh.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"version":2}`, fresh.Body.String())
	assert.Equal(t, 1, rc.Len())

	assert.Equal(t, "HIT", do().Header().Get("X-Cache"))
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.Use(RateLimiter(rate.Limit(1), 2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// Another client has its own bucket.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIPRateLimiter_ReusesLimiter(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(5), 1)
	assert.Same(t, l.GetLimiter("1.2.3.4"), l.GetLimiter("1.2.3.4"))
	assert.NotSame(t, l.GetLimiter("1.2.3.4"), l.GetLimiter("5.6.7.8"))
}
