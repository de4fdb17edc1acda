package app

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/phamm25/ai-chatbot/internal/dataset/cache"
)

func (a *App) initResources() {
	layers := []cache.Layer{cache.NewMemory()}

	if a.config.GetBool("cache.redis.enabled") {
		client := redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs:    a.config.GetArray("cache.redis.addr"),
			Password: a.config.GetString("cache.redis.password"),
			DB:       int(a.config.GetInt("cache.redis.db")),
		})

		ctx, cancel := context.WithTimeout(a.ctx, 3*time.Second)
		if err := client.Ping(ctx).Err(); err != nil {
			// cache failures are non-fatal
			slog.Warn("redis is unreachable, continuing", "error", err)
		}
		cancel()

		layers = append(layers, cache.NewRedis(client))
		a.addCloser("Redis", func(context.Context) error { return client.Close() })
	}

	if a.config.GetBool("cache.sqlite.enabled") {
		path := a.config.GetString("cache.sqlite.path")
		if path == "" {
			path = filepath.Join(a.config.GetString("storage.dir"), "cache.db")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			slog.Error("failed to create sqlite cache directory", "path", path, "error", err)
			os.Exit(1)
		}

		db, err := cache.OpenSQLite(path)
		if err != nil {
			slog.Error("failed to open sqlite cache", "path", path, "error", err)
			os.Exit(1)
		}

		layers = append(layers, db)
		a.addCloser("SQLite", func(context.Context) error { return db.Close() })
	}

	a.cache = cache.NewLayered(a.config.GetDuration("cache.ttl"), layers...)
	a.startCacheSweeper()
}

// startCacheSweeper drops expired entries from layers without native expiry.
func (a *App) startCacheSweeper() {
	a.goroutine.Every(a.ctx, "cache-sweeper", a.config.GetDuration("cache.sweep_interval"), func(ctx context.Context, now time.Time) error {
		if n := a.cache.Prune(ctx, now); n > 0 {
			slog.InfoContext(ctx, "pruned expired cache entries", "count", n)
		}
		return nil
	})
}
