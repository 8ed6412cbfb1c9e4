package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/concert-ticket-reservation/internal/config"
	"github.com/iliyamo/concert-ticket-reservation/internal/database"
	"github.com/iliyamo/concert-ticket-reservation/internal/handler"
	"github.com/iliyamo/concert-ticket-reservation/internal/middleware"
	"github.com/iliyamo/concert-ticket-reservation/internal/queue"
	"github.com/iliyamo/concert-ticket-reservation/internal/repository"
	"github.com/iliyamo/concert-ticket-reservation/internal/router"
	"github.com/iliyamo/concert-ticket-reservation/internal/service"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	// Repositories
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	concertRepo := repository.NewConcertRepo(db)
	reservationRepo := repository.NewReservationRepo(db)

	// The ledger is the only writer of seat counts.
	ledger := service.NewReservationLedger(concertRepo, reservationRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	concertHandler := handler.NewConcertHandler(concertRepo)
	reservationHandler := handler.NewReservationHandler(ledger, reservationRepo)

	e := echo.New()

	// Redis backs rate limiting and the list-endpoint response cache.
	// A nil client degrades both to pass-through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and caching disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	listCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterConcerts(e, concertHandler, cfg.JWTSecret, listCache)
	router.RegisterReservations(e, reservationHandler, cfg.JWTSecret)

	// Background consumer appends committed reservation events to the
	// reservation log; it reconnects on broker failures on its own.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
