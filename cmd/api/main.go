package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ZecaRomero/beef-sync-2-sub006/internal/adapters/auth/portal"
	"github.com/ZecaRomero/beef-sync-2-sub006/internal/adapters/capabilities/planes"
	"github.com/ZecaRomero/beef-sync-2-sub006/internal/platform/logger"
	"github.com/ZecaRomero/beef-sync-2-sub006/internal/ports/auth"
	"github.com/ZecaRomero/beef-sync-2-sub006/internal/ports/capabilities"
	"github.com/ZecaRomero/beef-sync-2-sub006/internal/router"

	"github.com/joho/godotenv"
)

// @title Beef Sync API
// @version 1.0
// @description Gestión de rebaño de ganado de corte: fichas, eventos manuales y calendario reproductivo consolidado.
// @BasePath /
func main() {
	// .env es opcional; en prod las vars vienen del entorno.
	_ = godotenv.Load()

	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	var verifier auth.AuthVerifier
	if baseURL := strings.TrimSpace(os.Getenv("PORTAL_BASE_URL")); baseURL != "" {
		client, err := portal.NewClient(portal.Config{
			BaseURL: baseURL,
			APIKey:  os.Getenv("PORTAL_API_KEY"),
		})
		if err != nil {
			log.Error("portal client init failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		verifier = portal.NewVerifier(client)
		log.Info("portal auth enabled", map[string]any{"base_url": baseURL})
	} else {
		log.Warn("portal auth disabled, dev mode headers only", nil)
	}

	var caps capabilities.CapabilitiesResolver
	if baseURL := strings.TrimSpace(os.Getenv("PLANES_BASE_URL")); baseURL != "" {
		client, err := planes.NewClient(planes.Config{
			BaseURL: baseURL,
			APIKey:  os.Getenv("PLANES_API_KEY"),
		})
		if err != nil {
			log.Error("planes client init failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		caps = planes.NewResolver(client)
		log.Info("plan capabilities enabled", map[string]any{"base_url": baseURL})
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Capabilities: caps,
		Log:          log,
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}
