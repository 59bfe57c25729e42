package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/showbill/showbill/internal/config"
	"github.com/showbill/showbill/internal/database"
	"github.com/showbill/showbill/internal/handler"
	"github.com/showbill/showbill/internal/middleware"
	"github.com/showbill/showbill/internal/queue"
	"github.com/showbill/showbill/internal/repository"
	"github.com/showbill/showbill/internal/router"
	"github.com/showbill/showbill/internal/service"
)

func main() {
	// A .env file is a convenience for local runs; absence is fine.
	_ = godotenv.Load()

	cfg := config.Load()
	log := newLogger(cfg.Env)

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}
	defer db.Close()

	// Optional collaborators: the service runs without Redis (no cache,
	// no rate limit) and without RabbitMQ (no booking events).
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unreachable, cache and rate limiting disabled")
	}
	var events service.EventPublisher
	if cfg.AMQPURL != "" {
		events = queue.NewPublisher(cfg.AMQPURL)
		go queue.StartConsumer(cfg.AMQPURL, log)
	}

	venueRepo := repository.NewVenueRepo(db)
	artistRepo := repository.NewArtistRepo(db)
	showRepo := repository.NewShowRepo(db)

	venues := service.NewVenueService(venueRepo, showRepo, events, log, cfg.StoreTimeout)
	artists := service.NewArtistService(artistRepo, showRepo, events, log, cfg.StoreTimeout)
	shows := service.NewShowService(showRepo, venueRepo, artistRepo, events, log, cfg.StoreTimeout)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewRequestLog(log))
	e.Use(middleware.NewRateLimit(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e,
		&handler.VenueHandler{Venues: venues},
		&handler.ArtistHandler{Artists: artists},
		&handler.ShowHandler{Shows: shows},
		middleware.NewListingCache(config.LoadCacheConfig(), rdb),
	)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// newLogger builds the process logger: human-readable console output in
// dev, JSON elsewhere.
func newLogger(env string) zerolog.Logger {
	if env == "dev" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
