package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/marslanding/backend/internal/auth"
	"github.com/marslanding/backend/internal/config"
	"github.com/marslanding/backend/internal/database"
	"github.com/marslanding/backend/internal/handler"
	"github.com/marslanding/backend/internal/queue"
	"github.com/marslanding/backend/internal/repository"
	"github.com/marslanding/backend/internal/router"
	"github.com/marslanding/backend/internal/service"
	"github.com/marslanding/backend/internal/store"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	client, err := database.Open(cfg.MongoURI, cfg.MongoMaxPool)
	if err != nil {
		log.Fatalf("mongodb connect failed: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(cfg.MongoDB)
	if err := database.EnsureUserIndexes(context.Background(), db); err != nil {
		log.Fatalf("ensure indexes failed: %v", err)
	}

	users := repository.NewUserRepo(store.NewMongoCollection(db.Collection("users")))
	hasher := auth.NewHasher(cfg.BcryptCost)

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)
	if err != nil {
		log.Fatalf("token service init failed: %v", err)
	}
	guard := auth.NewGuard(tokens, users)

	userService, err := service.NewUserService(users, hasher)
	if err != nil {
		log.Fatalf("user service init failed: %v", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting disabled")
	}

	// Drain user.registered events in the background (welcome emails).
	go func() {
		if err := queue.StartRegistrationConsumer(); err != nil {
			log.Printf("registration consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.Register(e,
		cfg,
		handler.NewAuthHandler(userService, tokens),
		handler.NewUserHandler(userService, guard),
		handler.NewHealthHandler(client, cfg.Env),
		guard,
		rdb,
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
