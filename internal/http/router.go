// README: HTTP router registration.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"ecoroute/internal/http/handlers"
	"ecoroute/internal/http/middleware"
)

func (s *Server) Routes() *gin.Engine {
	d := s.deps
	if !d.Config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.Logging(d.Logger))
	r.Use(cors.New(corsConfig(d.Config.HTTP.CORSOrigins)))

	r.GET("/healthz", s.healthz)

	limiter := middleware.NewRateLimiter(d.Redis, d.Config.RateLimit.Limit, d.Config.RateLimit.Window, d.Logger)
	api := r.Group("/api", middleware.RateLimit(limiter), middleware.Auth(d.Verifier))

	routeHandler := handlers.NewRouteHandler(d.Planner)
	api.POST("/route", routeHandler.Plan)

	historyHandler := handlers.NewHistoryHandler(d.Trips)
	api.GET("/history", historyHandler.List)
	api.POST("/history", historyHandler.Save)
	api.DELETE("/history", historyHandler.Clear)
	api.GET("/stats", historyHandler.Stats)
	api.GET("/stats/weights", historyHandler.Weights)

	preferenceHandler := handlers.NewPreferenceHandler(d.Preferences)
	api.GET("/preferences", preferenceHandler.Get)
	api.POST("/preferences", preferenceHandler.Update)

	if d.Weather != nil {
		api.GET("/weather", handlers.NewWeatherHandler(d.Weather).Current)
	} else {
		api.GET("/weather", handlers.Unavailable("weather"))
	}
	if d.Geocoder != nil {
		api.GET("/geocode", handlers.NewGeocodeHandler(d.Geocoder).Search)
	} else {
		api.GET("/geocode", handlers.Unavailable("geocoding"))
	}
	if d.Coach != nil {
		api.POST("/coach/tip", handlers.NewCoachHandler(d.Coach).Tip)
	} else {
		api.POST("/coach/tip", handlers.Unavailable("coach"))
	}

	return r
}

// corsConfig allows credentials only for an explicit origin list; an empty
// list or "*" allows any origin without credentials.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID, handlers.HeaderRouteFailures, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || lo.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func (s *Server) healthz(c *gin.Context) {
	if s.deps.Health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.deps.Health(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
