package database

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/siseg/payment-service/internal/adapter/repository"
	"github.com/siseg/payment-service/internal/config"
	domainRepo "github.com/siseg/payment-service/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	Payment domainRepo.PaymentRepository
	// Cache is nil when Redis is not configured.
	Cache domainRepo.CacheRepository
}

// NewRepositories creates repository instances over the database connection
// and, when configured, the Redis read cache.
func NewRepositories(db *gorm.DB, redisCfg *config.RedisConfig, logger *zap.Logger) *Repositories {
	repos := &Repositories{
		Payment: repository.NewPaymentRepository(db, logger),
	}

	if redisCfg.Addr != "" {
		client, err := newRedisClient(redisCfg)
		if err != nil {
			logger.Warn("Redis unavailable, running without payment cache", zap.Error(err))
		} else {
			repos.Cache = repository.NewPaymentCache(client, redisCfg.TTL, logger)
			logger.Info("Payment read cache enabled", zap.String("addr", redisCfg.Addr))
		}
	}

	return repos
}

func newRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}
