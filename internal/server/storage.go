package server

import (
	"context"
	"fmt"
	"time"

	"e-shopping/internal/config"
	"e-shopping/internal/database"
	"e-shopping/internal/repository"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// storage is the slot backend chosen by STORAGE_DRIVER, plus the clients
// that must be closed with it
type storage struct {
	repo  repository.SlotRepository
	db    *database.Service
	redis *redis.Client
}

func openStorage(cfg *config.Config, logger *zap.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory, "":
		logger.Warn("Using in-memory state slots, state is lost on restart")
		return &storage{repo: repository.NewMemorySlotRepository()}, nil

	case config.StorageRedis:
		client, err := openRedis(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return &storage{
			repo:  repository.NewRedisSlotRepository(client, cfg.Redis.KeyPrefix),
			redis: client,
		}, nil

	case config.StoragePostgres:
		db, err := database.New(cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := database.RunMigrations(db.DB(), logger); err != nil {
			db.Close()
			return nil, err
		}
		return &storage{
			repo: repository.NewSlotRepository(db.DB()),
			db:   db,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func openRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr(), err)
	}
	return client, nil
}

// health reports the backend state for /health
func (s *storage) health(ctx context.Context) map[string]string {
	switch {
	case s.db != nil:
		return s.db.Health()
	case s.redis != nil:
		if err := s.redis.Ping(ctx).Err(); err != nil {
			return map[string]string{"status": "down", "error": err.Error()}
		}
		return map[string]string{"status": "up"}
	default:
		return map[string]string{"status": "up", "driver": config.StorageMemory}
	}
}

func (s *storage) close(logger *zap.Logger) {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}
}
