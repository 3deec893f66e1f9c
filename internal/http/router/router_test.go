package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apphttp "users_manager_backend/internal/http"
	"users_manager_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type routerConfig struct {
	secret string
}

func (c routerConfig) GetHTTPAddr() string      { return ":0" }
func (c routerConfig) GetCORSAllowAll() bool    { return false }
func (c routerConfig) GetCORSOrigins() []string { return []string{"http://localhost:3000"} }
func (c routerConfig) GetAPIJWTSecret() string  { return c.secret }
func (c routerConfig) IsAPIAuthEnabled() bool   { return c.secret != "" }
func (c routerConfig) GetRateLimitRPS() float64 { return 100 }
func (c routerConfig) GetRateLimitBurst() int   { return 100 }

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type pingModule struct{}

func (pingModule) Name() string { return "ping" }
func (pingModule) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.API.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
}

func newEngine(cfg routerConfig, health apphttp.HealthChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return New(&apphttp.App{
		Config:  cfg,
		Logger:  logger.Discard(),
		Health:  health,
		Modules: []apphttp.Module{pingModule{}},
	})
}

func get(engine *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(newEngine(routerConfig{}, pinger{}), "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = get(newEngine(routerConfig{}, pinger{err: errors.New("down")}), "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestModulesAreMountedWithRequestID(t *testing.T) {
	rec := get(newEngine(routerConfig{}, pinger{}), "/ping", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestAuthIsEnforcedWhenConfigured(t *testing.T) {
	cfg := routerConfig{secret: "s3cret"}
	engine := newEngine(cfg, pinger{})

	assert.Equal(t, http.StatusUnauthorized, get(engine, "/ping", "").Code)
	assert.Equal(t, http.StatusOK, get(engine, "/health", "").Code)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "ops",
		"exp": time.Now().Add(time.Minute).Unix(),
	}).SignedString([]byte(cfg.secret))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, get(engine, "/ping", token).Code)
}
