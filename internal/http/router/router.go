package router

import (
	"net/http"

	apphttp "users_manager_backend/internal/http"
	"users_manager_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// New builds the gin engine: global middleware, the health check and every module's routes.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	if app.Config.GetCORSAllowAll() || len(app.Config.GetCORSOrigins()) > 0 {
		engine.Use(cors.New(corsConfig(app.Config)))
	}

	engine.GET("/health", func(c *gin.Context) {
		if app.Health != nil {
			if err := app.Health.Ping(c.Request.Context()); err != nil {
				app.Logger.WithContext(c.Request.Context()).DatabaseError("health_ping", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	limiter := httpkit.NewIPRateLimiterFromConfig(app.Config, app.Logger)
	api := engine.Group("")
	api.Use(limiter.RateLimit())
	if app.Config.IsAPIAuthEnabled() {
		api.Use(httpkit.AuthRequired(app.Config))
	}

	ctx := &apphttp.RouterContext{
		Engine: engine,
		API:    api,
	}
	for _, module := range app.Modules {
		module.RegisterRoutes(ctx)
		app.Logger.Debug("module routes registered", "module", module.Name())
	}

	return engine
}

func corsConfig(cfg apphttp.RouterConfig) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", httpkit.HeaderRequestID},
		ExposeHeaders: []string{httpkit.HeaderRequestID},
	}
	if cfg.GetCORSAllowAll() {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.GetCORSOrigins()
	}
	return corsCfg
}
