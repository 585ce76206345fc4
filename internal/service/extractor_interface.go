package service

import (
	"github.com/cypherlabdev/fight-odds-engine/internal/models"
)

// Extractor is an interface that abstracts feature extraction operations
// This allows for easier testing and mocking
type Extractor interface {
	Extract(data *models.OddsMovementData, filterCfg *models.SportsbookFilterConfig, cfg *models.FeatureConfig) (*models.OddsFeatureVector, error)
	DetectArbitrage(quotes []models.OddsSnapshot, cfg *models.FeatureConfig) []models.ArbitrageOpportunity
}
