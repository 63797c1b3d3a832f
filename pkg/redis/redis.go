package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/ebuka-odih/mini-ecommerce-backend/config"
	"github.com/ebuka-odih/mini-ecommerce-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

const homepageCacheKey = "homepage:resolved"

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// CacheHomepage stores the resolved homepage JSON. The storefront reads the
// homepage far more often than admins edit it, so a short TTL plus
// invalidation on write keeps it fresh without hitting the database.
func CacheHomepage(ctx context.Context, payload []byte, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	if err := client.Set(ctx, homepageCacheKey, payload, ttl).Err(); err != nil {
		logger.Error("Failed to cache homepage", err, nil)
		return err
	}
	return nil
}

// GetCachedHomepage returns the cached homepage JSON, or (nil, nil) on a miss.
func GetCachedHomepage(ctx context.Context) ([]byte, error) {
	if client == nil {
		return nil, nil
	}
	payload, err := client.Get(ctx, homepageCacheKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to read homepage cache", err, nil)
		return nil, err
	}
	return payload, nil
}

// InvalidateHomepage drops the cached homepage after a layout write.
func InvalidateHomepage(ctx context.Context) error {
	if client == nil {
		return nil
	}
	if err := client.Del(ctx, homepageCacheKey).Err(); err != nil {
		logger.Error("Failed to invalidate homepage cache", err, nil)
		return err
	}
	return nil
}
