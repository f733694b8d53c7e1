package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Ryan-Badaloo/Inventory-Back-End/internal/config"
	"github.com/Ryan-Badaloo/Inventory-Back-End/internal/database"
	"github.com/Ryan-Badaloo/Inventory-Back-End/internal/handler"
	"github.com/Ryan-Badaloo/Inventory-Back-End/internal/middleware"
	"github.com/Ryan-Badaloo/Inventory-Back-End/internal/queue"
	"github.com/Ryan-Badaloo/Inventory-Back-End/internal/repository"
	"github.com/Ryan-Badaloo/Inventory-Back-End/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	cancel()

	users := repository.NewUserRepo(db)
	clients := repository.NewClientRepo(db)
	devices := repository.NewDeviceRepo(db)
	lookups := repository.NewLookupRepo(db)
	comments := repository.NewCommentRepo(db)
	reports := repository.NewReportRepo(db)

	// Seed the bootstrap admin so a fresh install can log in.
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	users.EnsureDefaultUser(seedCtx, cfg.BcryptCost)
	seedCancel()

	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	// Drain inventory events into the audit log in the background.
	go queue.StartInventoryConsumer()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{cfg.CORSOrigin},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
	}))
	e.Use(middleware.RateLimit(rlCfg, rdb))

	h := router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, users),
		Users:    handler.NewUserHandler(cfg, users),
		Clients:  handler.NewClientHandler(clients),
		Devices:  handler.NewDeviceHandler(devices),
		Queries:  handler.NewQueryHandler(devices, reports),
		Lookups:  handler.NewLookupHandler(lookups),
		Comments: handler.NewCommentHandler(comments),
	}

	router.RegisterRoutes(e, h)
	router.RegisterProtected(e, h, cfg.JWTSecret, users, cacheCfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
