package main

import (
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/joho/godotenv"

	"github.com/hindsight-hq/past-news/internal/cache"
	"github.com/hindsight-hq/past-news/internal/config"
	"github.com/hindsight-hq/past-news/internal/logger"
	"github.com/hindsight-hq/past-news/internal/news"
	"github.com/hindsight-hq/past-news/internal/server"
	"github.com/hindsight-hq/past-news/pkg/guardian"
)

func main() {
	// Missing .env is fine; config falls back to real env vars.
	_ = godotenv.Load()

	cfgPath := flag.String("config", "", "path to config file (default: ./config.yaml if present)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	lg, err := logger.New(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	loc, err := time.LoadLocation(cfg.News.Timezone)
	if err != nil {
		log.Fatalf("load timezone %q: %v", cfg.News.Timezone, err)
	}

	client := guardian.New(guardian.Config{
		APIKey:         cfg.Guardian.APIKey,
		BaseURL:        cfg.Guardian.BaseURL,
		PageSize:       cfg.Guardian.PageSize,
		Timeout:        time.Duration(cfg.Guardian.TimeoutSec) * time.Second,
		RequestsPerDay: cfg.Guardian.RequestsPerDay,
	}, nil, lg)

	now := func() time.Time { return time.Now().In(loc) }
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	svc := news.New(client, cache.NewDaily(), cfg.News.Keyword, now, rng, lg)
	srv := server.New(svc, lg)

	shutdown := time.Duration(cfg.Server.ShutdownTimeoutSec) * time.Second
	if err := srv.ListenAndServe(cfg.Server.Addr, shutdown); err != nil {
		log.Fatalf("server: %v", err)
	}
}
