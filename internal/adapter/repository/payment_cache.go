package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/siseg/payment-service/internal/domain/model"
	domainRepo "github.com/siseg/payment-service/internal/domain/repository"
)

const defaultCacheTTL = 5 * time.Minute

type paymentCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewPaymentCache creates a Redis-backed payment read cache.
func NewPaymentCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) domainRepo.CacheRepository {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &paymentCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func cacheKey(orderID int64) string {
	return fmt.Sprintf("payment:order:%d", orderID)
}

func (c *paymentCache) GetByOrderID(ctx context.Context, orderID int64) (*model.Payment, error) {
	data, err := c.client.Get(ctx, cacheKey(orderID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache read failed: %w", err)
	}

	var payment model.Payment
	if err := json.Unmarshal(data, &payment); err != nil {
		// A corrupt entry is dropped rather than returned.
		c.logger.Warn("dropping undecodable cache entry", zap.Int64("order_id", orderID), zap.Error(err))
		c.client.Del(ctx, cacheKey(orderID))
		return nil, nil
	}

	return &payment, nil
}

func (c *paymentCache) Set(ctx context.Context, payment *model.Payment) error {
	data, err := json.Marshal(payment)
	if err != nil {
		return fmt.Errorf("cache encode failed: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(payment.OrderID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache write failed: %w", err)
	}
	return nil
}

func (c *paymentCache) Invalidate(ctx context.Context, orderID int64) error {
	if err := c.client.Del(ctx, cacheKey(orderID)).Err(); err != nil {
		return fmt.Errorf("cache delete failed: %w", err)
	}
	return nil
}
