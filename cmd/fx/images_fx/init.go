package images_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"hibiscus/internal/config"
	"hibiscus/internal/repositories"
	"hibiscus/internal/services"
	mem "hibiscus/pkg/memcache"
	"hibiscus/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(provideImageService, provideImageSweeper),
	fx.Invoke(scheduleImageSweeper),
)

func provideImageService(
	imageRepo repositories.ImageRepository,
	cache mem.ImageCache,
	cfg *config.AppConfig,
	clock *utils.MillisClock,
	logger *zap.Logger,
) services.ImageServiceInterface {
	return services.NewImageService(imageRepo, cache, cfg.Images.CacheTTL, clock, logger)
}

func provideImageSweeper(
	imageRepo repositories.ImageRepository,
	tourRepo repositories.TourRepository,
	cache mem.ImageCache,
	cfg *config.AppConfig,
	logger *zap.Logger,
) *services.ImageSweeper {
	return services.NewImageSweeper(imageRepo, tourRepo, cache, cfg.Images.GCGrace, logger)
}

func scheduleImageSweeper(lc fx.Lifecycle, sweeper *services.ImageSweeper, cfg *config.AppConfig, logger *zap.Logger) {
	if cfg.Images.GCSchedule == "" {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("image sweeper scheduled", zap.String("schedule", cfg.Images.GCSchedule))
			return sweeper.Start(cfg.Images.GCSchedule)
		},
		OnStop: func(_ context.Context) error {
			sweeper.Stop()
			return nil
		},
	})
}
