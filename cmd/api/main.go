package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fluxt/fluxt-api/internal/api"
	"github.com/fluxt/fluxt-api/internal/infrastructure/config"
	mongodb "github.com/fluxt/fluxt-api/internal/infrastructure/db/mongo"
	redisdb "github.com/fluxt/fluxt-api/internal/infrastructure/db/redis"
	"github.com/fluxt/fluxt-api/internal/infrastructure/mail"
	"github.com/fluxt/fluxt-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logg := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		logg.Fatal().Err(err).Msg("creating user indexes failed")
	}
	if err := mongodb.NewFileRepository(db).EnsureIndexes(ctx); err != nil {
		logg.Fatal().Err(err).Msg("creating file indexes failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("redis connect failed")
	}
	defer rdb.Close()

	mailer := mail.NewDispatcher(mail.NewSMTPSender(cfg.SMTP, cfg.PublicURL), logg)
	mailer.Start(ctx)

	router, err := api.NewRouter(cfg, db, rdb, mailer, logg)
	if err != nil {
		logg.Fatal().Err(err).Msg("building router failed")
	}

	go func() {
		logg.Info().Str("port", cfg.Port).Msg("api server listening")
		if err := router.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal().Err(err).Msg("server run failed")
		}
	}()

	<-ctx.Done()
	logg.Info().Msg("shutting down api server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := router.Shutdown(shutdownCtx); err != nil {
		logg.Error().Err(err).Msg("http shutdown failed")
	}
}
