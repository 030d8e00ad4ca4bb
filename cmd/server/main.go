package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/comedyuo/shows-backend/internal/config"
	"github.com/comedyuo/shows-backend/internal/database"
	"github.com/comedyuo/shows-backend/internal/email"
	"github.com/comedyuo/shows-backend/internal/handler"
	"github.com/comedyuo/shows-backend/internal/middleware"
	"github.com/comedyuo/shows-backend/internal/repository"
	"github.com/comedyuo/shows-backend/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	store := repository.NewShowStore(db, cfg.ShowTable)

	audit := email.NewAuditLog(cfg.EmailLogPath)
	var mailer email.Mailer
	if cfg.SMTPHost != "" {
		mailer = email.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
		if cfg.MailFrom != config.DefaultMailFrom {
			log.Printf("warning: sending as %q; make sure this domain is verified with the relay, or leave MAIL_FROM unset to use the sandbox sender", cfg.MailFrom)
		}
	} else {
		log.Printf("SMTP not configured; emails will be written to %s instead of sent", cfg.EmailLogPath)
	}
	dispatcher := email.NewDispatcher(store, mailer, audit, cfg.MailFrom, cfg.AdminEmail)

	e := echo.New()
	e.HideBanner = true

	var rate echo.MiddlewareFunc
	if rdb := config.NewRedisClient(); rdb != nil {
		rate = middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	} else {
		log.Printf("redis unavailable; rate limiting disabled")
	}

	router.RegisterRoutes(e, handler.NewShowHandler(store), handler.NewEmailHandler(dispatcher), rate)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
