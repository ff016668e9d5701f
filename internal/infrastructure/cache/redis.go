package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"globalpartner_checkout/internal/config"
	"globalpartner_checkout/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

const recipientTTL = 30 * 24 * time.Hour

// RecipientCache remembers the Wise recipient id created for the platform
// account so checkouts do not create a new recipient each time.
type RecipientCache struct {
	client      *redis.Client
	serviceName string
	ttl         time.Duration
}

var _ interfaces.IRecipientCache = (*RecipientCache)(nil)

// NewRecipientCache returns nil when no Redis address is configured.
func NewRecipientCache(cfg config.RedisConfig, serviceName string) *RecipientCache {
	if cfg.Addr == "" {
		log.Printf("[cache][redis] REDIS_ADDR not set, recipient cache disabled")
		return nil
	}
	return &RecipientCache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		serviceName: serviceName,
		ttl:         recipientTTL,
	}
}

func (r *RecipientCache) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, r.GenerateKey("wise-recipient", key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (r *RecipientCache) Set(ctx context.Context, key, recipientID string) error {
	return r.client.Set(ctx, r.GenerateKey("wise-recipient", key), recipientID, r.ttl).Err()
}

func (r *RecipientCache) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.GenerateKey("wise-recipient", key)).Err()
}

func (r *RecipientCache) GenerateKey(operation, key string) string {
	return fmt.Sprintf("%s:%s:%s", r.serviceName, operation, key)
}

func (r *RecipientCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RecipientCache) Close() error {
	return r.client.Close()
}
