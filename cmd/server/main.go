package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/RodrigoAlexander7/linespace/internal/config"
	"github.com/RodrigoAlexander7/linespace/internal/database"
	"github.com/RodrigoAlexander7/linespace/internal/handler"
	"github.com/RodrigoAlexander7/linespace/internal/queue"
	"github.com/RodrigoAlexander7/linespace/internal/repository"
	"github.com/RodrigoAlexander7/linespace/internal/router"
	"github.com/RodrigoAlexander7/linespace/internal/validation"
)

func main() {
	// .env is optional; real deployments set env vars directly.
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

	// Redis is optional: middleware degrades to pass-through without it.
	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	groups := repository.NewGroupRepo(db)
	categories := repository.NewCategoryRepo(db)
	notes := repository.NewNoteRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	groupH := handler.NewGroupHandler(groups)
	categoryH := handler.NewCategoryHandler(categories)
	noteH := handler.NewNoteHandler(notes, groups, categories)

	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterNotes(e, cfg.JWTSecret, rdb, groupH, categoryH, noteH)

	// The consumer runs its own reconnect loop for the lifetime of the
	// process and only logs broker trouble.
	go func() {
		if err := queue.StartNoteActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
