package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/seatkit/layout-designer/internal/config"
	"github.com/seatkit/layout-designer/internal/database"
	"github.com/seatkit/layout-designer/internal/handler"
	"github.com/seatkit/layout-designer/internal/layout"
	"github.com/seatkit/layout-designer/internal/middleware"
	"github.com/seatkit/layout-designer/internal/queue"
	"github.com/seatkit/layout-designer/internal/repository"
	"github.com/seatkit/layout-designer/internal/router"
	"github.com/seatkit/layout-designer/internal/session"
)

func main() {
	// Best effort: local development reads .env, deployments use real env vars.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	cats := layout.DefaultRegistry()
	layouts := repository.NewLayoutRepo(db, cats)
	users := repository.NewUserRepo(db)

	sessions := session.NewManager(layouts, cats, cfg.GridSize, cfg.SeatSize,
		time.Duration(cfg.SessionIdleMin)*time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sessions.StartJanitor(ctx, time.Minute)

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()
	rateCfg := config.LoadRateLimitConfig()

	// The layout.saved consumer keeps its own reconnect loop.
	go func() {
		if err := queue.StartLayoutConsumer(); err != nil {
			log.Printf("layout consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users), cfg.JWTSecret)
	router.RegisterEditor(e,
		handler.NewEditorHandler(cfg, sessions, layouts, rdb, cacheCfg),
		cfg.JWTSecret,
		middleware.NewTokenBucket(rateCfg, rdb))
	router.RegisterLayouts(e,
		handler.NewLayoutHandler(layouts),
		middleware.NewRedisCache(cacheCfg, rdb))

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
