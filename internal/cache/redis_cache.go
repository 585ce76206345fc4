package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/fight-odds-engine/internal/models"
)

// RedisCache caches feature vectors and arbitrage opportunities in Redis
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// RedisCacheConfig holds Redis cache configuration
type RedisCacheConfig struct {
	Addr     string // e.g., "localhost:6379"
	Password string
	DB       int
	TTL      time.Duration // e.g., 15 * time.Minute
}

// NewRedisCache creates a new Redis cache
func NewRedisCache(config RedisCacheConfig, logger zerolog.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	return &RedisCache{
		client: client,
		ttl:    config.TTL,
		logger: logger.With().Str("component", "redis_cache").Logger(),
	}
}

func featuresKey(fightID string) string {
	return fmt.Sprintf("features:%s", fightID)
}

func opportunitiesKey(fightID string) string {
	return fmt.Sprintf("arbs:%s", fightID)
}

// SetFeatures caches a feature vector
func (c *RedisCache) SetFeatures(ctx context.Context, vector *models.OddsFeatureVector) error {
	key := featuresKey(vector.FightID)

	data, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("failed to marshal feature vector: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in Redis: %w", err)
	}

	c.logger.Debug().
		Str("key", key).
		Dur("ttl", c.ttl).
		Msg("cached feature vector")

	return nil
}

// GetFeatures retrieves a cached feature vector
func (c *RedisCache) GetFeatures(ctx context.Context, fightID string) (*models.OddsFeatureVector, error) {
	key := featuresKey(fightID)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("feature vector not found in cache")
	} else if err != nil {
		return nil, fmt.Errorf("failed to get from Redis: %w", err)
	}

	var vector models.OddsFeatureVector
	if err := json.Unmarshal(data, &vector); err != nil {
		return nil, fmt.Errorf("failed to unmarshal feature vector: %w", err)
	}

	return &vector, nil
}

// SetFeaturesBatch caches multiple feature vectors
func (c *RedisCache) SetFeaturesBatch(ctx context.Context, vectors []*models.OddsFeatureVector) error {
	if len(vectors) == 0 {
		return nil
	}

	// Use pipeline for batch operations
	pipe := c.client.Pipeline()

	for _, vector := range vectors {
		data, err := json.Marshal(vector)
		if err != nil {
			c.logger.Error().Err(err).Msg("failed to marshal feature vector")
			continue
		}
		pipe.Set(ctx, featuresKey(vector.FightID), data, c.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to execute pipeline: %w", err)
	}

	c.logger.Info().
		Int("count", len(vectors)).
		Msg("cached batch of feature vectors")

	return nil
}

// SetOpportunities caches the arbitrage opportunity list for a fight.
// An empty list is cached too, so readers can tell "none detected" from
// "never computed".
func (c *RedisCache) SetOpportunities(ctx context.Context, fightID string, opportunities []models.ArbitrageOpportunity) error {
	key := opportunitiesKey(fightID)

	if opportunities == nil {
		opportunities = []models.ArbitrageOpportunity{}
	}

	data, err := json.Marshal(opportunities)
	if err != nil {
		return fmt.Errorf("failed to marshal opportunities: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in Redis: %w", err)
	}

	c.logger.Debug().
		Str("key", key).
		Int("count", len(opportunities)).
		Msg("cached arbitrage opportunities")

	return nil
}

// GetOpportunities retrieves cached arbitrage opportunities for a fight
func (c *RedisCache) GetOpportunities(ctx context.Context, fightID string) ([]models.ArbitrageOpportunity, error) {
	key := opportunitiesKey(fightID)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("opportunities not found in cache")
	} else if err != nil {
		return nil, fmt.Errorf("failed to get from Redis: %w", err)
	}

	var opportunities []models.ArbitrageOpportunity
	if err := json.Unmarshal(data, &opportunities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal opportunities: %w", err)
	}

	return opportunities, nil
}

// Ping checks Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
