package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func whoami() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Identity(testSecret))
	r.GET("/whoami", func(c *gin.Context) { c.String(http.StatusOK, UserID(c)) })
	return r
}

func sign(t *testing.T, secret, sub string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestIdentity(t *testing.T) {
	r := whoami()
	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"anonymous", "", ""},
		{"valid", "Bearer " + sign(t, testSecret, "u-42", time.Now().Add(time.Hour)), "u-42"},
		{"expired", "Bearer " + sign(t, testSecret, "u-42", time.Now().Add(-time.Hour)), ""},
		{"wrong secret", "Bearer " + sign(t, "other", "u-42", time.Now().Add(time.Hour)), ""},
		{"not bearer", "Basic abc", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tc.want, w.Body.String())
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(2))
	r.POST("/cart/items", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cart/items", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestLimiterSet_EvictsIdleVisitors(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	set := newLimiterSet(1, time.Minute, func() time.Time { return now })

	assert.True(t, set.allow("10.0.0.1"))
	assert.False(t, set.allow("10.0.0.1"))
	assert.True(t, set.allow("10.0.0.2"))
	assert.Len(t, set.visitors, 2)

	now = now.Add(30 * time.Second)
	assert.True(t, set.allow("10.0.0.3"))
	assert.Len(t, set.visitors, 3)

	// the first two have been idle for a full minute, the third has not
	now = now.Add(45 * time.Second)
	assert.True(t, set.allow("10.0.0.4"))
	assert.Len(t, set.visitors, 2)
	assert.Contains(t, set.visitors, "10.0.0.3")
	assert.Contains(t, set.visitors, "10.0.0.4")
}
