package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"hibiscus/internal/repositories"
	mem "hibiscus/pkg/memcache"
)

// ImageSweeper removes uploaded images that no tour references once they are
// older than the grace period.
type ImageSweeper struct {
	imageRepo repositories.ImageRepository
	tourRepo  repositories.TourRepository
	cache     mem.ImageCache
	grace     time.Duration
	logger    *zap.Logger
	now       func() time.Time
	cron      *cron.Cron
}

func NewImageSweeper(
	imageRepo repositories.ImageRepository,
	tourRepo repositories.TourRepository,
	cache mem.ImageCache,
	grace time.Duration,
	logger *zap.Logger,
) *ImageSweeper {
	return &ImageSweeper{
		imageRepo: imageRepo,
		tourRepo:  tourRepo,
		cache:     cache,
		grace:     grace,
		logger:    logger.Named("image_sweeper"),
		now:       time.Now,
	}
}

// Sweep deletes orphaned images and reports how many were removed.
func (s *ImageSweeper) Sweep(ctx context.Context) (int, error) {
	candidates, err := s.imageRepo.FindUploadedBefore(ctx, s.now().Add(-s.grace))
	if err != nil {
		return 0, err
	}
	if len(candidates) == 0 {
		return 0, nil
	}

	// An unreadable catalog must not look like an empty one.
	tours, err := s.tourRepo.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	referenced := make(map[string]struct{}, len(tours))
	for _, t := range tours {
		if id, ok := imageIDFromPath(t.Image); ok {
			referenced[id] = struct{}{}
		}
	}

	removed := 0
	for _, image := range candidates {
		if _, ok := referenced[image.NativeID]; ok {
			continue
		}
		deleted, err := s.imageRepo.Delete(ctx, image.NativeID)
		if err != nil {
			s.logger.Warn("delete orphaned image", zap.String("id", image.NativeID), zap.Error(err))
			continue
		}
		if deleted {
			s.cache.Delete(image.NativeID)
			removed++
		}
	}
	return removed, nil
}

// Start schedules Sweep with a standard five field cron spec.
func (s *ImageSweeper) Start(schedule string) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		removed, err := s.Sweep(ctx)
		if err != nil {
			s.logger.Error("image sweep failed", zap.Error(err))
			return
		}
		s.logger.Info("image sweep finished", zap.Int("removed", removed))
	})
	if err != nil {
		return err
	}
	s.cron = c
	c.Start()
	return nil
}

func (s *ImageSweeper) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}
