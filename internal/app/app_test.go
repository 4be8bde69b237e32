package app

import (
	"bytes"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"

	"practice_backend/internal/config"
	"practice_backend/internal/llm"
	"practice_backend/internal/util"
	"practice_backend/pkg/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, maxRequests int) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Database:  config.DatabaseConfig{Driver: "sqlite", URL: "file::memory:"},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"*"}},
		RateLimit: config.RateLimitConfig{MaxRequests: maxRequests, WindowSeconds: 60, GlobalPerMinute: 1000},
	}
	db, err := database.InitDB(&cfg.Database)
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return build(cfg, db, rdb, llm.Offline{}, rand.New(rand.NewPCG(3, 4)))
}

func generate(a *App) *httptest.ResponseRecorder {
	body := []byte(`{"dimensions":[101,103],"difficulty":1,"question_type":1}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/practice/generate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "192.168.1.20:40000"
	a.Router.ServeHTTP(w, req)
	return w
}

func TestApp_GenerateCarriesRequestHeaders(t *testing.T) {
	a := newTestApp(t, 10)

	w := generate(a)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, w.Header().Get(util.HeaderRequestID), 12)
	assert.NotEmpty(t, w.Header().Get(util.HeaderResponseTime))
}

func TestApp_RateLimitedAfterMax(t *testing.T) {
	a := newTestApp(t, 2)

	assert.Equal(t, http.StatusOK, generate(a).Code)
	assert.Equal(t, http.StatusOK, generate(a).Code)

	w := generate(a)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get(util.HeaderRequestID))
}

func TestApp_SystemRoutes(t *testing.T) {
	a := newTestApp(t, 10)

	for _, path := range []string{"/", "/api/health", "/metrics", "/swagger/index.html"} {
		w := httptest.NewRecorder()
		a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestNewCompleter(t *testing.T) {
	_, ok := newCompleter(&config.LLMConfig{Mock: true}).(llm.Offline)
	assert.True(t, ok)

	_, ok = newCompleter(&config.LLMConfig{BaseURL: " ", Model: "qwen3"}).(llm.Offline)
	assert.True(t, ok)

	_, ok = newCompleter(&config.LLMConfig{BaseURL: "localhost:9997/v1", Model: "qwen3"}).(*llm.Gateway)
	assert.True(t, ok)
}
