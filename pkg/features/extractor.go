// Package features composes the aggregation, movement, and arbitrage
// components into one fixed feature vector per fight. The extractor is a
// pure, synchronous computation over an immutable snapshot collection: it is
// safe to call concurrently for different fights, and identical input yields
// bit-identical output.
package features

import (
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/fight-odds-engine/internal/aggregator"
	"github.com/cypherlabdev/fight-odds-engine/internal/arbitrage"
	"github.com/cypherlabdev/fight-odds-engine/internal/filter"
	"github.com/cypherlabdev/fight-odds-engine/internal/models"
	"github.com/cypherlabdev/fight-odds-engine/internal/movement"
	"github.com/cypherlabdev/fight-odds-engine/pkg/oddsmath"
)

// ErrInsufficientData is returned when feature extraction is asked to run on
// an empty snapshot list. The extractor never returns a partial vector: it
// either completes fully or fails with this error.
var ErrInsufficientData = errors.New("insufficient data: no snapshots for fight")

// Liquidity score composition: average volume saturates at this level and
// contributes 70%; book count saturates at 5 books and contributes 30%.
const (
	liquidityVolumeCeiling = 50000.0
	liquidityBookCeiling   = 5.0
)

// Extractor turns per-fight snapshot histories into feature vectors.
type Extractor struct {
	filter    *filter.Filter
	agg       *aggregator.Aggregator
	movement  *movement.Analyzer
	arbitrage *arbitrage.Detector
	logger    zerolog.Logger
}

// NewExtractor creates a feature extractor.
func NewExtractor(logger zerolog.Logger) *Extractor {
	return &Extractor{
		filter:    filter.NewFilter(logger),
		agg:       aggregator.NewAggregator(logger),
		movement:  movement.NewAnalyzer(logger),
		arbitrage: arbitrage.NewDetector(logger),
		logger:    logger.With().Str("component", "feature_extractor").Logger(),
	}
}

// Extract computes the full feature vector for one fight. filterCfg and cfg
// are optional; nil means no filtering and engine defaults respectively.
// A single snapshot is valid input: every movement-dependent field is zero.
// An empty snapshot list fails with ErrInsufficientData.
func (e *Extractor) Extract(data *models.OddsMovementData, filterCfg *models.SportsbookFilterConfig, cfg *models.FeatureConfig) (*models.OddsFeatureVector, error) {
	if data == nil || len(data.Snapshots) == 0 {
		return nil, ErrInsufficientData
	}

	conf := models.DefaultFeatureConfig()
	if cfg != nil {
		conf = *cfg
	}

	snapshots := e.filter.Apply(data.Snapshots, filterCfg)
	if len(snapshots) == 0 {
		return nil, ErrInsufficientData
	}

	view, err := e.agg.Aggregate(snapshots)
	if err != nil {
		return nil, ErrInsufficientData
	}

	vector := &models.OddsFeatureVector{FightID: data.FightID}

	e.fillPriceLevels(vector, snapshots)
	e.fillAgreement(vector, view)
	e.fillMovement(vector, data.FightID, snapshots, conf)
	e.fillArbitrage(vector, snapshots, conf)
	e.fillSharpPublic(vector, view, conf)
	e.fillVolume(vector, snapshots, view)
	e.fillSecondaryMarkets(vector, snapshots)

	// Stamp with the newest snapshot time, not the wall clock, so repeated
	// extraction over identical input is bit-identical.
	vector.ExtractedAt = newestTimestamp(snapshots)

	e.logger.Debug().
		Str("fight_id", data.FightID).
		Int("snapshot_count", len(snapshots)).
		Int("book_count", len(view.Books)).
		Int("arbitrage_count", vector.ArbitrageOpportunityCount).
		Msg("extracted feature vector")

	return vector, nil
}

// DetectArbitrage exposes standalone arbitrage detection over concurrent
// quotes for one fight, with optional config.
func (e *Extractor) DetectArbitrage(quotes []models.OddsSnapshot, cfg *models.FeatureConfig) []models.ArbitrageOpportunity {
	conf := models.DefaultFeatureConfig()
	if cfg != nil {
		conf = *cfg
	}
	return e.arbitrage.Detect(quotes, conf)
}

// AnalyzeMovements exposes the derived movement list for one fight, in
// per-book time order.
func (e *Extractor) AnalyzeMovements(fightID string, quotes []models.OddsSnapshot, cfg *models.FeatureConfig) []models.OddsMovement {
	conf := models.DefaultFeatureConfig()
	if cfg != nil {
		conf = *cfg
	}
	return e.movement.AnalyzeFight(fightID, quotes, conf).Movements
}

func (e *Extractor) fillPriceLevels(v *models.OddsFeatureVector, snapshots []models.OddsSnapshot) {
	ordered := sortedByTime(snapshots)

	if p1, p2, ok := fairProbs(firstValid(ordered)); ok {
		v.OpeningImpliedProbFighter1 = p1
		v.OpeningImpliedProbFighter2 = p2
	}
	if p1, p2, ok := fairProbs(lastValid(ordered)); ok {
		v.ClosingImpliedProbFighter1 = p1
		v.ClosingImpliedProbFighter2 = p2
		v.CurrentImpliedProbFighter1 = p1
		v.CurrentImpliedProbFighter2 = p2
	}
}

func (e *Extractor) fillAgreement(v *models.OddsFeatureVector, view *aggregator.MarketView) {
	probs := make([]float64, len(view.Books))
	for i, b := range view.Books {
		probs[i] = b.FairProbFighter1
	}

	v.MarketConsensusStrength = view.Consensus.Confidence
	v.BookmakerAgreement = oddsmath.Clamp01(1 - oddsmath.StdDev(probs))
	v.ImpliedProbabilityVariance = oddsmath.Variance(probs)
}

func (e *Extractor) fillMovement(v *models.OddsFeatureVector, fightID string, snapshots []models.OddsSnapshot, cfg models.FeatureConfig) {
	fm := e.movement.AnalyzeFight(fightID, snapshots, cfg)

	v.TotalLineMovement = fm.AvgTotalLineMovement
	v.LineMovementVelocity = fm.AvgVelocity
	v.LineReversalCount = fm.ReversalCount
	v.SteamMoveCount = fm.SteamMoveCount
	v.ClosingLineValue = fm.AvgClosingLineValue
}

func (e *Extractor) fillArbitrage(v *models.OddsFeatureVector, snapshots []models.OddsSnapshot, cfg models.FeatureConfig) {
	opportunities := e.arbitrage.Detect(snapshots, cfg)

	v.ArbitrageOpportunityCount = len(opportunities)
	if len(opportunities) > 0 {
		v.MaxArbitrageProfit = opportunities[0].ProfitPercent
	}
}

func (e *Extractor) fillSharpPublic(v *models.OddsFeatureVector, view *aggregator.MarketView, cfg models.FeatureConfig) {
	v.SharpMoneyPercentage = groupMeanProb(view.Books, cfg.SharpBookmakers)
	v.PublicMoneyPercentage = groupMeanProb(view.Books, cfg.PublicBookmakers)
	v.SharpPublicDivergence = abs(v.SharpMoneyPercentage - v.PublicMoneyPercentage)
}

func (e *Extractor) fillVolume(v *models.OddsFeatureVector, snapshots []models.OddsSnapshot, view *aggregator.MarketView) {
	var volumes []float64
	for _, s := range snapshots {
		if s.Volume > 0 {
			volumes = append(volumes, s.Volume)
		}
	}

	v.AverageVolume = oddsmath.Mean(volumes)
	v.VolumeSpike = volumeSpike(volumes)

	volumeScore := oddsmath.Clamp01(v.AverageVolume / liquidityVolumeCeiling)
	bookScore := oddsmath.Clamp01(float64(len(view.Books)) / liquidityBookCeiling)
	v.LiquidityScore = 0.7*volumeScore + 0.3*bookScore
}

func (e *Extractor) fillSecondaryMarkets(v *models.OddsFeatureVector, snapshots []models.OddsSnapshot) {
	latest := lastValid(sortedByTime(snapshots))
	if latest == nil {
		return
	}

	methodOdds := []int{latest.Method.KO, latest.Method.Submission, latest.Method.Decision}
	v.MethodBettingVariance, v.FavoriteMethodOdds = marketVarianceAndFavorite(methodOdds)

	roundOdds := []int{
		latest.Rounds.Round1, latest.Rounds.Round2, latest.Rounds.Round3,
		latest.Rounds.Round4, latest.Rounds.Round5,
	}
	v.RoundBettingVariance, v.FavoriteRoundOdds = marketVarianceAndFavorite(roundOdds)
}

// marketVarianceAndFavorite computes the variance of implied probabilities
// across the quoted outcomes of a secondary market and the odds of the
// outcome with the highest implied probability. Zero placeholders (absent
// markets) are skipped; a market with no quoted outcome yields zeros.
func marketVarianceAndFavorite(odds []int) (float64, int) {
	var probs []float64
	favoriteOdds := 0
	bestProb := 0.0

	for _, o := range odds {
		p, err := oddsmath.ImpliedProbability(o)
		if err != nil {
			continue
		}
		probs = append(probs, p)
		if p > bestProb {
			bestProb = p
			favoriteOdds = o
		}
	}

	return oddsmath.Variance(probs), favoriteOdds
}

// volumeSpike is the largest single-snapshot volume divided by the mean of
// the remaining volumes, 0 when fewer than two volume-bearing snapshots.
func volumeSpike(volumes []float64) float64 {
	if len(volumes) < 2 {
		return 0
	}

	maxIdx := 0
	for i, v := range volumes {
		if v > volumes[maxIdx] {
			maxIdx = i
		}
	}

	rest := 0.0
	for i, v := range volumes {
		if i != maxIdx {
			rest += v
		}
	}
	restMean := rest / float64(len(volumes)-1)
	if restMean <= 0 {
		return 0
	}

	return volumes[maxIdx] / restMean
}

// groupMeanProb is the mean fair fighter1 probability across books in the
// given group, defaulting to 0.5 when no group member carries a quote.
func groupMeanProb(books []aggregator.BookOdds, group []string) float64 {
	member := make(map[string]bool, len(group))
	for _, name := range group {
		member[name] = true
	}

	var probs []float64
	for _, b := range books {
		if member[b.Sportsbook] {
			probs = append(probs, b.FairProbFighter1)
		}
	}
	if len(probs) == 0 {
		return 0.5
	}

	return oddsmath.Mean(probs)
}

func fairProbs(s *models.OddsSnapshot) (float64, float64, bool) {
	if s == nil {
		return 0, 0, false
	}
	p1, err1 := oddsmath.ImpliedProbability(s.Moneyline.Fighter1)
	p2, err2 := oddsmath.ImpliedProbability(s.Moneyline.Fighter2)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	fair1, fair2 := oddsmath.NormalizeTwoWay(p1, p2)
	return fair1, fair2, true
}

func sortedByTime(snapshots []models.OddsSnapshot) []models.OddsSnapshot {
	ordered := make([]models.OddsSnapshot, len(snapshots))
	copy(ordered, snapshots)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})
	return ordered
}

// firstValid returns the earliest snapshot with a usable moneyline.
func firstValid(ordered []models.OddsSnapshot) *models.OddsSnapshot {
	for i := range ordered {
		if ordered[i].Moneyline.Fighter1 != 0 && ordered[i].Moneyline.Fighter2 != 0 {
			return &ordered[i]
		}
	}
	return nil
}

// lastValid returns the latest snapshot with a usable moneyline.
func lastValid(ordered []models.OddsSnapshot) *models.OddsSnapshot {
	for i := len(ordered) - 1; i >= 0; i-- {
		if ordered[i].Moneyline.Fighter1 != 0 && ordered[i].Moneyline.Fighter2 != 0 {
			return &ordered[i]
		}
	}
	return nil
}

func newestTimestamp(snapshots []models.OddsSnapshot) time.Time {
	var newest time.Time
	for _, s := range snapshots {
		if s.Timestamp.After(newest) {
			newest = s.Timestamp
		}
	}
	return newest
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
