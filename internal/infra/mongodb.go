package infra

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"hibiscus/internal/config"
)

func ConnectMongoDB(cfg *config.AppConfig, logger *zap.Logger) (*mongo.Database, error) {
	if cfg.Store.MongoURI == "" {
		return nil, errors.New("MONGODB_URI env not set")
	}

	serverAPIOptions := options.ServerAPI(options.ServerAPIVersion1)
	clientOptions := options.Client().
		ApplyURI(cfg.Store.MongoURI).
		SetServerAPIOptions(serverAPIOptions)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, errors.Wrap(err, "connect mongodb")
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "ping mongodb")
	}

	logger.Info("mongodb connected", zap.String("database", cfg.Store.MongoDatabase))
	return client.Database(cfg.Store.MongoDatabase), nil
}

func CloseMongoDB(db *mongo.Database, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Client().Disconnect(ctx); err != nil {
		logger.Error("failed to disconnect mongodb client", zap.Error(err))
		return
	}
	logger.Info("mongodb connection closed")
}
