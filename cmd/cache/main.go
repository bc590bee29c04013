package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/pos-analytics/internal/analytics"
	"github.com/angelmondragon/pos-analytics/pkg/config"
	"github.com/angelmondragon/pos-analytics/pkg/logger"
	"github.com/angelmondragon/pos-analytics/pkg/redis"
)

func main() {
	ctx := context.Background()
	// bootstrap logger early (then re-init after config load)
	logg := logger.New(logger.Options{ServiceName: "cache"})

	_ = godotenv.Load()

	cmd := flag.String("cmd", "stats", "cache command: bump|stats")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "cache",
		Env:         cfg.App.Env,
		Version:     cfg.App.Version,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx = logg.WithFields(ctx, map[string]any{
		"env": cfg.App.Env,
		"cmd": *cmd,
	})

	if !cfg.Cache.Enabled {
		fmt.Fprintln(os.Stderr, "cache disabled, nothing to do")
		os.Exit(1)
	}

	client, err := redis.New(ctx, cfg.Redis, logg)
	requireResource(ctx, logg, "redis", err)
	defer client.Close()

	cache := analytics.NewCache(client, cfg.Cache, nil, logg)

	switch *cmd {
	case "bump":
		version, err := cache.Bump(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cache bump failed: %v\n", err)
			os.Exit(1)
		}
		logg.Info(logg.WithField(ctx, "version", version), "cache invalidated")
		fmt.Println("cache version:", version)

	case "stats":
		stats, err := cache.Stats(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cache stats failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("version: %d\nentries: %d (max %d)\nttl: %s\n", stats.Version, stats.Entries, cfg.Cache.MaxEntries, cfg.Cache.TTL)

	default:
		fmt.Fprintln(os.Stderr, "unknown -cmd value:", *cmd)
		os.Exit(1)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
