package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/TwisterMc/JobTwister/config"
	"github.com/TwisterMc/JobTwister/internal/api/handlers"
	"github.com/TwisterMc/JobTwister/internal/api/middleware"
	"github.com/TwisterMc/JobTwister/internal/api/routes"
	"github.com/TwisterMc/JobTwister/internal/events"
	"github.com/TwisterMc/JobTwister/internal/logger"
	"github.com/TwisterMc/JobTwister/internal/repositories/store"
	"github.com/TwisterMc/JobTwister/internal/services"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	l := logger.New()

	db, err := config.OpenDatabase(cfg)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}
	l.WithField("sqlite", cfg.DatabaseURL == "").Info("database ready")

	hub := events.NewHub()

	jobRepo := store.NewJobRepo(db)
	settingsRepo := store.NewSettingsRepo(db)

	jobSvc := services.NewJobService(jobRepo, hub)
	csvSvc := services.NewCSVService(jobRepo, hub)
	settingsSvc := services.NewSettingsService(settingsRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(l))

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
	r.Use(cors.New(corsCfg))

	routes.RegisterRoutes(r, routes.Deps{
		Jobs:     handlers.NewJobHandler(jobSvc),
		CSV:      handlers.NewCSVHandler(csvSvc),
		Settings: handlers.NewSettingsHandler(settingsSvc),
		Events:   handlers.NewEventsHandler(hub),
	})

	l.WithField("addr", cfg.Addr).Info("starting server")
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
