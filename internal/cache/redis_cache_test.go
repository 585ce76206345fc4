package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/fight-odds-engine/internal/models"
)

// testRedisCacheSetup is a helper struct to hold test dependencies
type testRedisCacheSetup struct {
	cache     *RedisCache
	miniRedis *miniredis.Miniredis
	ctx       context.Context
}

// setupTestRedisCache creates a test cache with miniredis
func setupTestRedisCache(t *testing.T) *testRedisCacheSetup {
	// Create miniredis server
	mr, err := miniredis.Run()
	require.NoError(t, err)

	logger := zerolog.Nop()

	config := RedisCacheConfig{
		Addr:     mr.Addr(),
		Password: "",
		DB:       0,
		TTL:      15 * time.Minute,
	}

	cache := NewRedisCache(config, logger)
	ctx := context.Background()

	return &testRedisCacheSetup{
		cache:     cache,
		miniRedis: mr,
		ctx:       ctx,
	}
}

// cleanup cleans up test resources
func (s *testRedisCacheSetup) cleanup() {
	s.cache.Close()
	s.miniRedis.Close()
}

func testFeatureVector(fightID string) *models.OddsFeatureVector {
	return &models.OddsFeatureVector{
		FightID:                    fightID,
		OpeningImpliedProbFighter1: 0.58,
		OpeningImpliedProbFighter2: 0.42,
		CurrentImpliedProbFighter1: 0.62,
		CurrentImpliedProbFighter2: 0.38,
		MarketConsensusStrength:    0.91,
		SteamMoveCount:             2,
		LiquidityScore:             0.75,
		ExtractedAt:                time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}
}

func testOpportunity(fightID string) models.ArbitrageOpportunity {
	return models.ArbitrageOpportunity{
		ID:            uuid.New(),
		FightID:       fightID,
		Sportsbooks:   []string{"BookOne", "BookTwo"},
		ProfitPercent: 3.21,
		Stakes: map[string]decimal.Decimal{
			"BookOne": decimal.NewFromFloat(0.528),
			"BookTwo": decimal.NewFromFloat(0.472),
		},
		DetectedAt: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		ExpiresAt:  time.Date(2026, 3, 14, 12, 5, 0, 0, time.UTC),
	}
}

// TestNewRedisCache tests cache creation
func TestNewRedisCache(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	assert.NotNil(t, setup.cache)
	assert.NotNil(t, setup.cache.client)
	assert.Equal(t, 15*time.Minute, setup.cache.ttl)
}

// TestSetFeatures_Success tests successful feature vector caching
func TestSetFeatures_Success(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	err := setup.cache.SetFeatures(setup.ctx, testFeatureVector("fight-001"))

	assert.NoError(t, err)
	assert.True(t, setup.miniRedis.Exists("features:fight-001"))
}

// TestSetFeatures_ContextCanceled tests set operation with canceled context
func TestSetFeatures_ContextCanceled(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := setup.cache.SetFeatures(ctx, testFeatureVector("fight-001"))

	assert.Error(t, err)
}

// TestGetFeatures_Success tests successful feature vector retrieval
func TestGetFeatures_Success(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	original := testFeatureVector("fight-001")
	err := setup.cache.SetFeatures(setup.ctx, original)
	require.NoError(t, err)

	retrieved, err := setup.cache.GetFeatures(setup.ctx, "fight-001")

	assert.NoError(t, err)
	assert.NotNil(t, retrieved)
	assert.Equal(t, original.FightID, retrieved.FightID)
	assert.Equal(t, original.CurrentImpliedProbFighter1, retrieved.CurrentImpliedProbFighter1)
	assert.Equal(t, original.SteamMoveCount, retrieved.SteamMoveCount)
	assert.True(t, original.ExtractedAt.Equal(retrieved.ExtractedAt))
}

// TestGetFeatures_NotFound tests retrieval when no vector exists
func TestGetFeatures_NotFound(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	retrieved, err := setup.cache.GetFeatures(setup.ctx, "nonexistent")

	assert.Error(t, err)
	assert.Nil(t, retrieved)
	assert.Contains(t, err.Error(), "not found in cache")
}

// TestGetFeatures_ExpiredKey tests retrieval of expired key
func TestGetFeatures_ExpiredKey(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	err := setup.cache.SetFeatures(setup.ctx, testFeatureVector("fight-001"))
	require.NoError(t, err)

	// Fast forward time to expire the key
	setup.miniRedis.FastForward(20 * time.Minute)

	retrieved, err := setup.cache.GetFeatures(setup.ctx, "fight-001")

	assert.Error(t, err)
	assert.Nil(t, retrieved)
}

// TestSetFeaturesBatch_Success tests successful batch caching
func TestSetFeaturesBatch_Success(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	vectors := []*models.OddsFeatureVector{
		testFeatureVector("fight-001"),
		testFeatureVector("fight-002"),
		testFeatureVector("fight-003"),
	}

	err := setup.cache.SetFeaturesBatch(setup.ctx, vectors)

	assert.NoError(t, err)
	assert.True(t, setup.miniRedis.Exists("features:fight-001"))
	assert.True(t, setup.miniRedis.Exists("features:fight-002"))
	assert.True(t, setup.miniRedis.Exists("features:fight-003"))
}

// TestSetFeaturesBatch_EmptyList tests batch caching with empty list
func TestSetFeaturesBatch_EmptyList(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	err := setup.cache.SetFeaturesBatch(setup.ctx, []*models.OddsFeatureVector{})

	assert.NoError(t, err)
}

// TestSetFeaturesBatch_NilList tests batch caching with nil list
func TestSetFeaturesBatch_NilList(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	err := setup.cache.SetFeaturesBatch(setup.ctx, nil)

	assert.NoError(t, err)
}

// TestSetOpportunities_Success tests caching an opportunity list
func TestSetOpportunities_Success(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	opportunities := []models.ArbitrageOpportunity{testOpportunity("fight-001")}

	err := setup.cache.SetOpportunities(setup.ctx, "fight-001", opportunities)

	assert.NoError(t, err)
	assert.True(t, setup.miniRedis.Exists("arbs:fight-001"))
}

// TestGetOpportunities_RoundTrip tests retrieval of cached opportunities
func TestGetOpportunities_RoundTrip(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	original := testOpportunity("fight-001")
	err := setup.cache.SetOpportunities(setup.ctx, "fight-001", []models.ArbitrageOpportunity{original})
	require.NoError(t, err)

	retrieved, err := setup.cache.GetOpportunities(setup.ctx, "fight-001")

	assert.NoError(t, err)
	require.Len(t, retrieved, 1)
	assert.Equal(t, original.ID, retrieved[0].ID)
	assert.Equal(t, original.Sportsbooks, retrieved[0].Sportsbooks)
	assert.Equal(t, original.ProfitPercent, retrieved[0].ProfitPercent)
	assert.True(t, original.Stakes["BookOne"].Equal(retrieved[0].Stakes["BookOne"]))
	assert.True(t, original.Stakes["BookTwo"].Equal(retrieved[0].Stakes["BookTwo"]))
}

// TestSetOpportunities_EmptyList tests that a fight with no detected
// opportunities is still cached as an empty list
func TestSetOpportunities_EmptyList(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	err := setup.cache.SetOpportunities(setup.ctx, "fight-001", nil)
	require.NoError(t, err)

	retrieved, err := setup.cache.GetOpportunities(setup.ctx, "fight-001")

	assert.NoError(t, err)
	assert.NotNil(t, retrieved)
	assert.Equal(t, 0, len(retrieved))
}

// TestGetOpportunities_NotFound tests retrieval when nothing was computed
func TestGetOpportunities_NotFound(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	retrieved, err := setup.cache.GetOpportunities(setup.ctx, "nonexistent")

	assert.Error(t, err)
	assert.Nil(t, retrieved)
	assert.Contains(t, err.Error(), "not found in cache")
}

// TestPing_Success tests successful Redis ping
func TestPing_Success(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	err := setup.cache.Ping(setup.ctx)

	assert.NoError(t, err)
}

// TestPing_RedisDown tests ping when Redis is down
func TestPing_RedisDown(t *testing.T) {
	setup := setupTestRedisCache(t)

	// Close Redis before ping
	setup.miniRedis.Close()

	err := setup.cache.Ping(setup.ctx)

	assert.Error(t, err)

	// Don't call cleanup() since we already closed Redis
	setup.cache.Close()
}

// TestClose tests cache closing
func TestClose(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.miniRedis.Close()

	err := setup.cache.Close()

	assert.NoError(t, err)
}

// TestCache_ConcurrentAccess tests thread safety
func TestCache_ConcurrentAccess(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	vector := testFeatureVector("fight-001")
	err := setup.cache.SetFeatures(setup.ctx, vector)
	require.NoError(t, err)

	// Run concurrent reads and writes
	done := make(chan bool)

	// Writers
	for i := 0; i < 5; i++ {
		go func() {
			err := setup.cache.SetFeatures(setup.ctx, vector)
			assert.NoError(t, err)
			done <- true
		}()
	}

	// Readers
	for i := 0; i < 5; i++ {
		go func() {
			retrieved, err := setup.cache.GetFeatures(setup.ctx, "fight-001")
			assert.NoError(t, err)
			assert.NotNil(t, retrieved)
			done <- true
		}()
	}

	// Wait for all goroutines
	for i := 0; i < 10; i++ {
		<-done
	}
}

// TestCache_TTLRespected tests that TTL is properly set
func TestCache_TTLRespected(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	err := setup.cache.SetFeatures(setup.ctx, testFeatureVector("fight-001"))
	require.NoError(t, err)

	ttl := setup.miniRedis.TTL("features:fight-001")
	assert.True(t, ttl > 0)
	assert.True(t, ttl <= 15*time.Minute)
}

// TestNewRedisCache_Configuration tests cache creation with different configurations
func TestNewRedisCache_Configuration(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	logger := zerolog.Nop()

	configs := []RedisCacheConfig{
		{
			Addr:     mr.Addr(),
			Password: "",
			DB:       0,
			TTL:      5 * time.Minute,
		},
		{
			Addr:     mr.Addr(),
			Password: "",
			DB:       1,
			TTL:      30 * time.Minute,
		},
		{
			Addr:     mr.Addr(),
			Password: "test-password",
			DB:       0,
			TTL:      1 * time.Hour,
		},
	}

	for _, config := range configs {
		cache := NewRedisCache(config, logger)
		assert.NotNil(t, cache)
		assert.Equal(t, config.TTL, cache.ttl)
		cache.Close()
	}
}
