package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/timmy/haikuforge/internal/api/handler"
	"github.com/timmy/haikuforge/internal/api/middleware"
	"github.com/timmy/haikuforge/internal/config"
	"github.com/timmy/haikuforge/internal/logger"
	"github.com/timmy/haikuforge/internal/service"
	"github.com/timmy/haikuforge/internal/web"
)

// SetupRouter configures the Gin router with all routes.
// Parameters:
//   - forge: workflow service shared by every request.
//   - cfg: server configuration (mode, theme, CORS).
//   - log: base logger injected into each request.
//
// Returns:
//   - *gin.Engine: configured router.
//   - error: non-nil if the theme or templates cannot be loaded.
func SetupRouter(forge *service.ForgeService, cfg *config.ServerConfig, log *logger.Logger) (*gin.Engine, error) {
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	theme, err := web.LookupTheme(cfg.Theme)
	if err != nil {
		return nil, err
	}
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)

	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.CORS.AllowAllOrigins,
	}))

	healthHandler := handler.NewHealthHandler(forge.Provider(), forge.Backend())
	haikuHandler := handler.NewHaikuHandler(forge, theme)

	r.GET("/health", healthHandler.Health)
	r.StaticFS("/static", web.Static())

	// Page
	r.GET("/", haikuHandler.Page)
	r.POST("/", haikuHandler.Submit)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/haikus", haikuHandler.List)
		v1.POST("/haikus", haikuHandler.Create)
	}

	return r, nil
}
