package db_fx

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hibiscus/internal/config"
	"hibiscus/internal/infra"
	"hibiscus/internal/repositories"
	"hibiscus/pkg/utils"
)

var Module = fx.Provide(
	provideStore,
	provideTourRepo,
	provideInquiryRepo,
	provideAdminRepo,
	provideImageRepo,
	provideRedis,
	provideInquiryLimiter,
)

func provideStore(lc fx.Lifecycle, cfg *config.AppConfig, logger *zap.Logger) (*repositories.Store, error) {
	var store *repositories.Store

	switch cfg.Store.Driver {
	case config.StoreMongo:
		db, err := infra.ConnectMongoDB(cfg, logger)
		if err != nil {
			return nil, err
		}
		store = mongoStore(db, logger)
	case config.StorePostgres:
		db, err := infra.InitPostgresql(cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := repositories.MigratePostgres(db); err != nil {
			infra.ClosePostgresql(db, logger)
			return nil, err
		}
		store = postgresStore(db, logger)
	case config.StoreMemory:
		logger.Warn("using in-memory store, data will not survive a restart")
		store = repositories.NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}

	lc.Append(fx.Hook{
		OnStop: store.Close,
	})
	return store, nil
}

func mongoStore(db *mongo.Database, logger *zap.Logger) *repositories.Store {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repositories.EnsureTourIndexes(ctx, db); err != nil {
		// Existing duplicate ids block the index; the service still works.
		logger.Warn("tour id index not created", zap.Error(err))
	}

	return &repositories.Store{
		Tours:     repositories.NewMongoTourRepository(db),
		Inquiries: repositories.NewMongoInquiryRepository(db),
		Admin:     repositories.NewMongoAdminRepository(db),
		Images:    repositories.NewMongoImageRepository(db),
		Close: func(context.Context) error {
			infra.CloseMongoDB(db, logger)
			return nil
		},
	}
}

func postgresStore(db *gorm.DB, logger *zap.Logger) *repositories.Store {
	return &repositories.Store{
		Tours:     repositories.NewPostgresTourRepository(db),
		Inquiries: repositories.NewPostgresInquiryRepository(db),
		Admin:     repositories.NewPostgresAdminRepository(db),
		Images:    repositories.NewPostgresImageRepository(db),
		Close: func(context.Context) error {
			infra.ClosePostgresql(db, logger)
			return nil
		},
	}
}

func provideTourRepo(store *repositories.Store) repositories.TourRepository {
	return store.Tours
}

func provideInquiryRepo(store *repositories.Store) repositories.InquiryRepository {
	return store.Inquiries
}

func provideAdminRepo(store *repositories.Store) repositories.AdminRepository {
	return store.Admin
}

func provideImageRepo(store *repositories.Store) repositories.ImageRepository {
	return store.Images
}

func provideRedis(lc fx.Lifecycle, cfg *config.AppConfig, logger *zap.Logger) (*redis.Client, error) {
	rdb, err := infra.ConnectRedis(cfg, logger)
	if err != nil || rdb == nil {
		return nil, err
	}
	lc.Append(fx.StopHook(rdb.Close))
	return rdb, nil
}

func provideInquiryLimiter(cfg *config.AppConfig, rdb *redis.Client, logger *zap.Logger) utils.InquiryLimiter {
	if rdb == nil {
		logger.Info("REDIS_URL not set, inquiry rate limiting disabled")
		return utils.NewNoopLimiter()
	}
	return utils.NewRedisInquiryLimiter(rdb, cfg.Redis.InquiryHourlyLimit, 30*time.Second)
}
