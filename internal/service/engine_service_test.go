package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cypherlabdev/fight-odds-engine/internal/mocks"
	"github.com/cypherlabdev/fight-odds-engine/internal/models"
)

// testEngineServiceSetup is a helper struct to hold test dependencies
type testEngineServiceSetup struct {
	service       *EngineService
	mockExtractor *mocks.MockExtractor
	mockCache     *mocks.MockCache
	ctrl          *gomock.Controller
}

// setupTestEngineService creates a service with mocked dependencies
func setupTestEngineService(t *testing.T) *testEngineServiceSetup {
	ctrl := gomock.NewController(t)

	mockExtractor := mocks.NewMockExtractor(ctrl)
	mockCache := mocks.NewMockCache(ctrl)
	svc := NewEngineService(mockExtractor, mockCache, zerolog.Nop())

	return &testEngineServiceSetup{
		service:       svc,
		mockExtractor: mockExtractor,
		mockCache:     mockCache,
		ctrl:          ctrl,
	}
}

// cleanup cleans up test resources
func (s *testEngineServiceSetup) cleanup() {
	s.ctrl.Finish()
}

func testMovementData() *models.OddsMovementData {
	return &models.OddsMovementData{
		FightID: "fight-001",
		Snapshots: []models.OddsSnapshot{
			{
				FightID:    "fight-001",
				Sportsbook: "DraftKings",
				Timestamp:  time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
				Moneyline:  models.MoneylineOdds{Fighter1: -150, Fighter2: 130},
			},
		},
	}
}

// TestComputeFeatures_Success tests the extract-and-cache path
func TestComputeFeatures_Success(t *testing.T) {
	setup := setupTestEngineService(t)
	defer setup.cleanup()

	data := testMovementData()
	vector := &models.OddsFeatureVector{FightID: "fight-001", LiquidityScore: 0.42}
	opportunities := []models.ArbitrageOpportunity{{FightID: "fight-001", ProfitPercent: 2.5}}

	setup.mockExtractor.EXPECT().Extract(data, nil, nil).Return(vector, nil)
	setup.mockCache.EXPECT().SetFeatures(gomock.Any(), vector).Return(nil)
	setup.mockExtractor.EXPECT().DetectArbitrage(data.Snapshots, nil).Return(opportunities)
	setup.mockCache.EXPECT().SetOpportunities(gomock.Any(), "fight-001", opportunities).Return(nil)

	result, err := setup.service.ComputeFeatures(context.Background(), data, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, vector, result)
}

// TestComputeFeatures_ExtractionFailure tests that extraction errors propagate
func TestComputeFeatures_ExtractionFailure(t *testing.T) {
	setup := setupTestEngineService(t)
	defer setup.cleanup()

	data := testMovementData()
	extractErr := errors.New("insufficient data: no snapshots for fight")

	setup.mockExtractor.EXPECT().Extract(data, nil, nil).Return(nil, extractErr)

	result, err := setup.service.ComputeFeatures(context.Background(), data, nil, nil)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, extractErr)
}

// TestComputeFeatures_CacheFailureDoesNotFail tests that cache errors are
// logged and swallowed
func TestComputeFeatures_CacheFailureDoesNotFail(t *testing.T) {
	setup := setupTestEngineService(t)
	defer setup.cleanup()

	data := testMovementData()
	vector := &models.OddsFeatureVector{FightID: "fight-001"}

	setup.mockExtractor.EXPECT().Extract(data, nil, nil).Return(vector, nil)
	setup.mockCache.EXPECT().SetFeatures(gomock.Any(), vector).Return(errors.New("redis down"))
	setup.mockExtractor.EXPECT().DetectArbitrage(data.Snapshots, nil).Return(nil)
	setup.mockCache.EXPECT().SetOpportunities(gomock.Any(), "fight-001", nil).Return(errors.New("redis down"))

	result, err := setup.service.ComputeFeatures(context.Background(), data, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, vector, result)
}

// TestComputeFeaturesBatch tests partial failure isolation in the batch path
func TestComputeFeaturesBatch(t *testing.T) {
	setup := setupTestEngineService(t)
	defer setup.cleanup()

	good := testMovementData()
	bad := &models.OddsMovementData{FightID: "fight-002"}
	vector := &models.OddsFeatureVector{FightID: "fight-001"}

	setup.mockExtractor.EXPECT().Extract(good, nil, nil).Return(vector, nil)
	setup.mockExtractor.EXPECT().Extract(bad, nil, nil).Return(nil, errors.New("insufficient data"))
	setup.mockCache.EXPECT().SetFeaturesBatch(gomock.Any(), []*models.OddsFeatureVector{vector}).Return(nil)

	vectors, err := setup.service.ComputeFeaturesBatch(context.Background(), []*models.OddsMovementData{good, bad}, nil, nil)

	require.NoError(t, err)
	require.Len(t, vectors, 1)
	assert.Equal(t, "fight-001", vectors[0].FightID)
}

// TestComputeFeaturesBatch_Empty tests the empty batch edge case
func TestComputeFeaturesBatch_Empty(t *testing.T) {
	setup := setupTestEngineService(t)
	defer setup.cleanup()

	vectors, err := setup.service.ComputeFeaturesBatch(context.Background(), nil, nil, nil)

	assert.NoError(t, err)
	assert.Nil(t, vectors)
}

// TestGetFeatures_CacheHit tests the cache-first read path
func TestGetFeatures_CacheHit(t *testing.T) {
	setup := setupTestEngineService(t)
	defer setup.cleanup()

	vector := &models.OddsFeatureVector{FightID: "fight-001"}
	setup.mockCache.EXPECT().GetFeatures(gomock.Any(), "fight-001").Return(vector, nil)

	result, err := setup.service.GetFeatures(context.Background(), "fight-001")

	require.NoError(t, err)
	assert.Equal(t, vector, result)
}

// TestGetFeatures_CacheMiss tests the not-found error
func TestGetFeatures_CacheMiss(t *testing.T) {
	setup := setupTestEngineService(t)
	defer setup.cleanup()

	setup.mockCache.EXPECT().GetFeatures(gomock.Any(), "fight-404").Return(nil, nil)

	result, err := setup.service.GetFeatures(context.Background(), "fight-404")

	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fight-404")
}

// TestGetOpportunities tests the opportunity read path
func TestGetOpportunities(t *testing.T) {
	setup := setupTestEngineService(t)
	defer setup.cleanup()

	opportunities := []models.ArbitrageOpportunity{
		{FightID: "fight-001", ProfitPercent: 3.2},
		{FightID: "fight-001", ProfitPercent: 1.1},
	}
	setup.mockCache.EXPECT().GetOpportunities(gomock.Any(), "fight-001").Return(opportunities, nil)

	result, err := setup.service.GetOpportunities(context.Background(), "fight-001")

	require.NoError(t, err)
	assert.Equal(t, opportunities, result)
}

// TestGetOpportunities_CacheError tests cache errors propagate on reads
func TestGetOpportunities_CacheError(t *testing.T) {
	setup := setupTestEngineService(t)
	defer setup.cleanup()

	setup.mockCache.EXPECT().GetOpportunities(gomock.Any(), "fight-001").Return(nil, errors.New("redis down"))

	result, err := setup.service.GetOpportunities(context.Background(), "fight-001")

	assert.Nil(t, result)
	assert.Error(t, err)
}
