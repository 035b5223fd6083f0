package limiter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitorsAllow(t *testing.T) {
	v := NewVisitors(1, 2, time.Minute)

	assert.True(t, v.Allow("10.0.0.1"))
	assert.True(t, v.Allow("10.0.0.1"))
	assert.False(t, v.Allow("10.0.0.1"))

	// buckets are per key
	assert.True(t, v.Allow("10.0.0.2"))
}

func TestVisitorsCleanup(t *testing.T) {
	v := NewVisitors(1, 1, time.Minute)
	v.Allow("10.0.0.1")

	v.Cleanup(time.Now())
	assert.Len(t, v.visitors, 1)

	v.Cleanup(time.Now().Add(2 * time.Minute))
	assert.Empty(t, v.visitors)
	assert.True(t, v.Allow("10.0.0.1"))
}

func TestLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	router := gin.New()
	router.Use(Limit(ctx, 1, 1, time.Minute))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func() int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusTooManyRequests, do())
}
