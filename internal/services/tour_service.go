package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"hibiscus/internal/catalog"
	"hibiscus/internal/models/db_models"
	"hibiscus/internal/repositories"
	"hibiscus/pkg/utils"
)

type TourServiceInterface interface {
	// ListTours never fails: store trouble degrades to the default catalog.
	ListTours(ctx context.Context) []db_models.Tour
	GetTour(ctx context.Context, key string) (*db_models.Tour, error)
	CreateTour(ctx context.Context, draft db_models.Tour) (*db_models.Tour, error)
	UpdateTour(ctx context.Context, key string, patch db_models.TourPatch) error
	DeleteTour(ctx context.Context, key string) error
}

type TourService struct {
	tourRepo repositories.TourRepository
	clock    *utils.MillisClock
	logger   *zap.Logger
	now      func() time.Time
}

func NewTourService(tourRepo repositories.TourRepository, clock *utils.MillisClock, logger *zap.Logger) TourServiceInterface {
	return &TourService{
		tourRepo: tourRepo,
		clock:    clock,
		logger:   logger.Named("tours"),
		now:      time.Now,
	}
}

// tourKeyOrder is the lookup order for a caller supplied key.
var tourKeyOrder = []repositories.KeyKind{repositories.ByCustomID, repositories.ByNativeID}

// resolveTourKey runs attempt once per key kind until one reports a match.
// A key that is malformed for a kind counts as a miss for that kind.
func resolveTourKey(
	ctx context.Context,
	key string,
	attempt func(ctx context.Context, kind repositories.KeyKind, key string) (bool, error),
) (bool, error) {
	for _, kind := range tourKeyOrder {
		found, err := attempt(ctx, kind, key)
		if errors.Is(err, repositories.ErrMalformedID) {
			continue
		}
		if err != nil {
			return false, err
		}
		if found {
			return true, nil
		}
	}
	return false, nil
}

func (s *TourService) ListTours(ctx context.Context) []db_models.Tour {
	tours, err := s.tourRepo.FindAll(ctx)
	if err != nil {
		s.logger.Warn("listing tours failed, serving default catalog", zap.Error(err))
		return catalog.DefaultTours()
	}
	if len(tours) > 0 {
		return tours
	}

	seed := catalog.DefaultTours()
	now := s.now()
	for i := range seed {
		seed[i].CreatedAt = now
	}
	if err := s.tourRepo.InsertMany(ctx, seed); err != nil {
		s.logger.Warn("seeding default catalog failed", zap.Error(err))
	} else {
		s.logger.Info("seeded default catalog", zap.Int("count", len(seed)))
	}

	tours, err = s.tourRepo.FindAll(ctx)
	if err != nil || len(tours) == 0 {
		return catalog.DefaultTours()
	}
	return tours
}

func (s *TourService) GetTour(ctx context.Context, key string) (*db_models.Tour, error) {
	var tour *db_models.Tour
	found, err := resolveTourKey(ctx, key, func(ctx context.Context, kind repositories.KeyKind, key string) (bool, error) {
		t, err := s.tourRepo.FindOne(ctx, kind, key)
		if err != nil || t == nil {
			return false, err
		}
		tour = t
		return true, nil
	})
	if err != nil {
		s.logger.Error("get tour", zap.String("key", key), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if !found {
		return nil, utils.ErrTourNotFound
	}
	return tour, nil
}

func (s *TourService) CreateTour(ctx context.Context, draft db_models.Tour) (*db_models.Tour, error) {
	tour := draft.Clone()
	if tour.CustomID == "" {
		tour.CustomID = s.clock.NewTourID()
	}
	tour.NativeID = ""
	tour.CreatedAt = s.now()
	tour.UpdatedAt = time.Time{}

	if err := s.tourRepo.Insert(ctx, &tour); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, utils.ErrDuplicateTourID
		}
		s.logger.Error("create tour", zap.String("id", tour.CustomID), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return &tour, nil
}

func (s *TourService) UpdateTour(ctx context.Context, key string, patch db_models.TourPatch) error {
	patch.UpdatedAt = s.now()
	found, err := resolveTourKey(ctx, key, func(ctx context.Context, kind repositories.KeyKind, key string) (bool, error) {
		return s.tourRepo.Update(ctx, kind, key, patch)
	})
	if err != nil {
		s.logger.Error("update tour", zap.String("key", key), zap.Error(err))
		return utils.ErrDatabaseError
	}
	if !found {
		return utils.ErrTourNotFound
	}
	return nil
}

func (s *TourService) DeleteTour(ctx context.Context, key string) error {
	found, err := resolveTourKey(ctx, key, s.tourRepo.Delete)
	if err != nil {
		s.logger.Error("delete tour", zap.String("key", key), zap.Error(err))
		return utils.ErrDatabaseError
	}
	if !found {
		return utils.ErrTourNotFound
	}
	return nil
}
