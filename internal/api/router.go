package api

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"expo-registry-backend/config"
	"expo-registry-backend/internal/mw"
	"expo-registry-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, cfg config.ServerConfig, logger *log.Logger) (*gin.Engine, error) {
	r := gin.Default()
	// Forwarding headers are only honoured from the listed proxies; with none
	// listed, ClientIP is the connection's peer address.
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	if cfg.TrustedPlatform != "" {
		// X-Forwarded-For is client-appendable and must go through SetTrustedProxies.
		if http.CanonicalHeaderKey(strings.TrimSpace(cfg.TrustedPlatform)) == "X-Forwarded-For" {
			return nil, fmt.Errorf("trusted platform header %q is client-controlled; list the proxy in trusted_proxies instead", cfg.TrustedPlatform)
		}
		r.TrustedPlatform = cfg.TrustedPlatform
	}

	handler := NewHandler(s, logger)

	r.GET("/healthz", handler.Health)

	api := r.Group("/")
	api.Use(mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst))
	if cfg.CacheTTLSeconds > 0 {
		responseCache := mw.NewResponseCache(time.Duration(cfg.CacheTTLSeconds) * time.Second)
		api.Use(responseCache.Handler())
	}

	exhibitors := api.Group("/expositores")
	{
		exhibitors.POST("", handler.CreateExhibitor)
		exhibitors.GET("", handler.ListExhibitors)
		exhibitors.GET("/:id", handler.GetExhibitor)
		exhibitors.PUT("/:id", handler.UpdateExhibitor)
		exhibitors.DELETE("/:id", handler.DeleteExhibitor)
		exhibitors.GET("/:id/prototipos", handler.ListExhibitorPrototypes)
	}

	prototypes := api.Group("/prototipos")
	{
		prototypes.POST("", handler.CreatePrototype)
		prototypes.GET("", handler.ListPrototypes)
		prototypes.GET("/:id", handler.GetPrototype)
		prototypes.PUT("/:id", handler.UpdatePrototype)
		prototypes.DELETE("/:id", handler.DeletePrototype)
	}

	return r, nil
}
