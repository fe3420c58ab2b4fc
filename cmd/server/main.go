package main

import (
	"context"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hopepulse/hopepulse-api/internal/config"
	api "github.com/hopepulse/hopepulse-api/internal/http"
	"github.com/hopepulse/hopepulse-api/internal/log"
	"github.com/hopepulse/hopepulse-api/internal/metrics"
	"github.com/hopepulse/hopepulse-api/internal/payments"
	"github.com/hopepulse/hopepulse-api/internal/queue"
	"github.com/hopepulse/hopepulse-api/internal/repo"
)

func main() {
	cfg := config.Load()

	if _, err := log.Init(os.Getenv("APP_ENV") == "production"); err != nil {
		stdlog.Fatalf("log init: %v", err)
	}
	metrics.MustRegister()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := repo.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		stdlog.Fatalf("mongo connect: %v", err)
	}
	defer store.Close(context.Background())

	if err := store.EnsureIndexes(ctx); err != nil {
		stdlog.Fatalf("ensure indexes: %v", err)
	}

	var pub queue.Publisher = queue.NewNoop()
	if cfg.RabbitURL != "" {
		rp, err := queue.NewPublisher(cfg.RabbitURL)
		if err != nil {
			stdlog.Fatalf("rabbit connect: %v", err)
		}
		pub = rp
	}
	defer pub.Close()

	h := api.NewHandler(store, store, store, store,
		payments.NewStripeBridge(cfg.StripeSecret), pub, cfg.JWTSecret)
	h.DB = store

	if cfg.RedisAddr != "" {
		rds := repo.NewRedis(cfg.RedisAddr)
		if err := rds.Ping(ctx); err != nil {
			stdlog.Fatalf("redis connect: %v", err)
		}
		defer rds.Close()
		h.Redis = rds
		h.RateLimitPerMin = cfg.RateLimitPerMin
	}

	r := api.NewRouter(h)

	srvErr := make(chan error, 1)
	go func() { srvErr <- r.Run(":" + cfg.Port) }()

	log.Infof("hopepulse-api listening on :%s", cfg.Port)

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Infof("signal: %s, shutting down", s)
	case err := <-srvErr:
		log.Errorf("server error: %v", err)
	}
}
