package memcache_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"hibiscus/internal/config"
	mem "hibiscus/pkg/memcache"
)

var Module = fx.Options(
	fx.Provide(provideImageEntries, provideImageCache),
	fx.Invoke(scheduleCachePrune),
)

func provideImageEntries(cfg *config.AppConfig) *mem.ImageEntries {
	return mem.NewImageEntries(cfg.Images.CacheMaxBytes)
}

func provideImageCache(entries *mem.ImageEntries) mem.ImageCache {
	return entries
}

func scheduleCachePrune(lc fx.Lifecycle, entries *mem.ImageEntries, cfg *config.AppConfig, logger *zap.Logger) {
	if cfg.Images.CachePrune == "" {
		return
	}
	janitor := mem.NewJanitor(entries, logger)
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return janitor.Start(cfg.Images.CachePrune)
		},
		OnStop: func(_ context.Context) error {
			janitor.Stop()
			return nil
		},
	})
}
