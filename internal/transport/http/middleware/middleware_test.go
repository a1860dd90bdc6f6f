package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/time/rate"

	"go-gin-addressbook/internal/core/auth"
	resp "go-gin-addressbook/internal/transport/http/response"
)

func init() { gin.SetMode(gin.TestMode) }

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func envelope(t *testing.T, w *httptest.ResponseRecorder) resp.Resp {
	t.Helper()
	var out resp.Resp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(KeyRequestID)) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	minted := w.Header().Get(KeyRequestID)
	assert.NotEmpty(t, minted)
	assert.Equal(t, minted, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(KeyRequestID, "abc-123")
	w = serve(r, req)
	assert.Equal(t, "abc-123", w.Header().Get(KeyRequestID))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(KeyRequestID, strings.Repeat("x", 200))
	w = serve(r, req)
	assert.Len(t, w.Header().Get(KeyRequestID), 36)
}

func TestAuthJWT(t *testing.T) {
	j := auth.NewJWTer("mw-secret", "addressbook", 1)
	user, _, err := j.Issue("u-1", "ada", "ada@example.com", []string{"User"})
	require.NoError(t, err)
	admin, _, err := j.Issue("u-2", "root", "root@example.com", []string{"User", "Admin"})
	require.NoError(t, err)

	newEngine := func(role string) *gin.Engine {
		r := gin.New()
		r.Use(AuthJWT(j, role))
		r.GET("/", func(c *gin.Context) {
			claims, ok := ClaimsFrom(c)
			require.True(t, ok)
			c.String(http.StatusOK, claims.UID+"|"+c.GetString(KeyUserID))
		})
		return r
	}
	get := func(r *gin.Engine, header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		return serve(r, req)
	}

	open := newEngine("")
	assert.Equal(t, http.StatusUnauthorized, get(open, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(open, "Token "+user).Code)
	assert.Equal(t, http.StatusUnauthorized, get(open, "Bearer nope").Code)

	w := get(open, "Bearer "+user)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-1|u-1", w.Body.String())

	adminOnly := newEngine("Admin")
	w = get(adminOnly, "Bearer "+user)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, envelope(t, w).Success)
	assert.Equal(t, http.StatusOK, get(adminOnly, "Bearer "+admin).Code)
}

func TestRateLimitPerIP(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitPerIP(rate.Limit(1), 2, time.Minute))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	from := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		return serve(r, req).Code
	}
	assert.Equal(t, http.StatusOK, from("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, from("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, from("10.0.0.1:1002"))
	// separate bucket
	assert.Equal(t, http.StatusOK, from("10.0.0.2:1000"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1003"
	w := serve(r, req)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestMaxBodyBytes(t *testing.T) {
	r := gin.New()
	r.Use(MaxBodyBytes(8))
	r.POST("/", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	w := serve(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small")))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("much too large")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "Request body too large", envelope(t, w).Message)

	// unknown length still gets cut off while reading
	req := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(bytes.NewReader([]byte("much too large"))))
	req.ContentLength = -1
	assert.Equal(t, http.StatusRequestEntityTooLarge, serve(r, req).Code)
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	r := gin.New()
	r.Use(RequestID(), Recovery(zap.New(core)))
	r.GET("/", func(c *gin.Context) { panic("boom") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "An unexpected error occurred.", envelope(t, w).Message)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "panic recovered", entry.Message)
	assert.Equal(t, w.Header().Get(KeyRequestID), entry.ContextMap()["rid"])
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(20 * time.Millisecond))
	r.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})
	r.GET("/fast", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		assert.True(t, ok)
		c.Status(http.StatusOK)
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/fast", nil)).Code)
}

func TestConcurrencyLimit(t *testing.T) {
	r := gin.New()
	r.Use(ConcurrencyLimit(1))
	entered := make(chan struct{})
	release := make(chan struct{})
	r.GET("/hold", func(c *gin.Context) {
		close(entered)
		<-release
		c.Status(http.StatusOK)
	})
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	done := make(chan int)
	go func() { done <- serve(r, httptest.NewRequest(http.MethodGet, "/hold", nil)).Code }()
	<-entered

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	close(release)
	assert.Equal(t, http.StatusOK, <-done)
	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(RequestID(), AccessLog(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/err", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	serve(r, httptest.NewRequest(http.MethodGet, "/ok?password=hunter2&q=x", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/bad", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/err", nil))

	all := logs.All()
	require.Len(t, all, 3)
	assert.Equal(t, zapcore.InfoLevel, all[0].Level)
	assert.Equal(t, zapcore.WarnLevel, all[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, all[2].Level)

	q, ok := all[0].ContextMap()["query"].(map[string][]string)
	require.True(t, ok)
	assert.Equal(t, []string{"****"}, q["password"])
	assert.Equal(t, []string{"x"}, q["q"])
}

func TestMetrics_UnmatchedLabel(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/known", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, httptest.NewRequest(http.MethodGet, "/known", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	count := func(path, status string) float64 {
		var m dto.Metric
		require.NoError(t, httpReqTotal.WithLabelValues(path, http.MethodGet, status).Write(&m))
		return m.GetCounter().GetValue()
	}
	assert.GreaterOrEqual(t, count("unmatched", "404"), 1.0)
	assert.GreaterOrEqual(t, count("/known", "200"), 1.0)
	assert.Zero(t, count("/nowhere", "404"))
}
