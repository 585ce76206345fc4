package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/fight-odds-engine/internal/models"
)

// EngineService orchestrates feature extraction with caching
type EngineService struct {
	extractor Extractor
	cache     Cache
	logger    zerolog.Logger
}

// NewEngineService creates a new engine service
func NewEngineService(
	extractor Extractor,
	cache Cache,
	logger zerolog.Logger,
) *EngineService {
	return &EngineService{
		extractor: extractor,
		cache:     cache,
		logger:    logger.With().Str("component", "engine_service").Logger(),
	}
}

// ComputeFeatures extracts the feature vector for a fight, detects arbitrage
// opportunities over the same snapshots, and caches both results
func (s *EngineService) ComputeFeatures(ctx context.Context, data *models.OddsMovementData, filterCfg *models.SportsbookFilterConfig, cfg *models.FeatureConfig) (*models.OddsFeatureVector, error) {
	vector, err := s.extractor.Extract(data, filterCfg, cfg)
	if err != nil {
		return nil, fmt.Errorf("feature extraction failed: %w", err)
	}

	if err := s.cache.SetFeatures(ctx, vector); err != nil {
		s.logger.Warn().
			Err(err).
			Str("fight_id", vector.FightID).
			Msg("failed to cache feature vector")
		// Don't fail the request on cache errors
	}

	opportunities := s.extractor.DetectArbitrage(data.Snapshots, cfg)
	if err := s.cache.SetOpportunities(ctx, vector.FightID, opportunities); err != nil {
		s.logger.Warn().
			Err(err).
			Str("fight_id", vector.FightID).
			Msg("failed to cache arbitrage opportunities")
	}

	s.logger.Info().
		Str("fight_id", vector.FightID).
		Int("snapshot_count", len(data.Snapshots)).
		Int("arbitrage_count", len(opportunities)).
		Float64("liquidity_score", vector.LiquidityScore).
		Msg("computed and cached fight features")

	return vector, nil
}

// ComputeFeaturesBatch computes and caches feature vectors for several fights.
// A fight that fails extraction is skipped rather than failing the batch.
func (s *EngineService) ComputeFeaturesBatch(ctx context.Context, batch []*models.OddsMovementData, filterCfg *models.SportsbookFilterConfig, cfg *models.FeatureConfig) ([]*models.OddsFeatureVector, error) {
	if len(batch) == 0 {
		return nil, nil
	}

	vectors := make([]*models.OddsFeatureVector, 0, len(batch))
	for _, data := range batch {
		vector, err := s.extractor.Extract(data, filterCfg, cfg)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("fight_id", data.FightID).
				Msg("skipping fight in batch")
			continue
		}
		vectors = append(vectors, vector)
	}

	if err := s.cache.SetFeaturesBatch(ctx, vectors); err != nil {
		s.logger.Warn().
			Err(err).
			Int("count", len(vectors)).
			Msg("failed to cache batch of feature vectors")
	}

	s.logger.Info().
		Int("input_count", len(batch)).
		Int("output_count", len(vectors)).
		Msg("computed and cached batch")

	return vectors, nil
}

// GetFeatures retrieves a cached feature vector for a fight
func (s *EngineService) GetFeatures(ctx context.Context, fightID string) (*models.OddsFeatureVector, error) {
	cached, err := s.cache.GetFeatures(ctx, fightID)
	if err == nil && cached != nil {
		s.logger.Debug().
			Str("fight_id", fightID).
			Msg("cache hit for feature vector")
		return cached, nil
	}

	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("fight_id", fightID).
			Msg("cache error, feature vector unavailable")
	}

	return nil, fmt.Errorf("features not found in cache for fight=%s", fightID)
}

// GetOpportunities retrieves cached arbitrage opportunities for a fight
func (s *EngineService) GetOpportunities(ctx context.Context, fightID string) ([]models.ArbitrageOpportunity, error) {
	opportunities, err := s.cache.GetOpportunities(ctx, fightID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve opportunities for fight: %w", err)
	}

	s.logger.Debug().
		Str("fight_id", fightID).
		Int("count", len(opportunities)).
		Msg("retrieved arbitrage opportunities")

	return opportunities, nil
}
