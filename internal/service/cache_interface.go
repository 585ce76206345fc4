package service

import (
	"context"

	"github.com/cypherlabdev/fight-odds-engine/internal/models"
)

// Cache is an interface that abstracts cache operations
// This allows for easier testing and mocking
type Cache interface {
	SetFeatures(ctx context.Context, vector *models.OddsFeatureVector) error
	GetFeatures(ctx context.Context, fightID string) (*models.OddsFeatureVector, error)
	SetFeaturesBatch(ctx context.Context, vectors []*models.OddsFeatureVector) error
	SetOpportunities(ctx context.Context, fightID string, opportunities []models.ArbitrageOpportunity) error
	GetOpportunities(ctx context.Context, fightID string) ([]models.ArbitrageOpportunity, error)
	Ping(ctx context.Context) error
	Close() error
}
