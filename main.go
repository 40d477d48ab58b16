package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"linkme/internal/config"
	"linkme/internal/database"
	"linkme/internal/handlers"
	"linkme/internal/logging"
	"linkme/internal/middleware"
	"linkme/internal/pricing"
	"linkme/internal/store"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	logging.Setup(config.AppEnv.LogLevel)

	if config.AppEnv.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is not set")
	}

	engine, err := pricing.NewEngine(config.AppEnv.Pricing)
	if err != nil {
		log.Fatal().Err(err).Msg("pricing engine")
	}

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	db := client.Database(config.AppEnv.DBName)
	log.Info().Str("db", db.Name()).Msg("MongoDB connected")

	if err := database.EnsureSelectionItemIndexes(db); err != nil {
		log.Warn().Err(err).Msg("selection item index warning")
	}
	if err := database.EnsureCatalogIndexes(db); err != nil {
		log.Warn().Err(err).Msg("catalog index warning")
	}
	if err := database.EnsureStaffIndexes(db); err != nil {
		log.Warn().Err(err).Msg("staff index warning")
	}

	if err := handlers.RegisterValidators(); err != nil {
		log.Fatal().Err(err).Msg("validator registration failed")
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())
	handlers.RegisterRoutes(r, handlers.Deps{
		Store:          store.NewMongo(db),
		Engine:         engine,
		JWTSecret:      config.AppEnv.JWTSecret,
		AccessTokenTTL: config.AppEnv.AccessTokenTTL,
	})

	cfg := engine.Config()
	log.Info().
		Str("port", config.AppEnv.Port).
		Float64("defaultBufferRate", cfg.DefaultBufferRate).
		Float64("greenZoneShare", cfg.GreenZoneShare).
		Float64("orangeZoneShare", cfg.OrangeZoneShare).
		Msg("linkme pricing service listening")

	if err := r.Run(":" + config.AppEnv.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
