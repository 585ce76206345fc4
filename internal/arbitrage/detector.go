// Package arbitrage finds two-leg stake splits across sportsbooks that
// guarantee profit regardless of outcome. It is a detection engine only:
// nothing here guarantees an opportunity remains executable.
package arbitrage

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/fight-odds-engine/internal/aggregator"
	"github.com/cypherlabdev/fight-odds-engine/internal/models"
	"github.com/cypherlabdev/fight-odds-engine/pkg/oddsmath"
)

// Risk factor annotations attached to detected opportunities.
const (
	RiskSameSportsbook = "both legs at the same sportsbook"
	RiskStaleQuote     = "leg quote older than freshness window"
	RiskThinMargin     = "profit below thin-margin watch threshold"
)

// Detector searches concurrent per-fight quotes for risk-free stake splits.
type Detector struct {
	logger zerolog.Logger
}

// NewDetector creates an arbitrage detector.
func NewDetector(logger zerolog.Logger) *Detector {
	return &Detector{
		logger: logger.With().Str("component", "arbitrage_detector").Logger(),
	}
}

// leg is one side of a candidate split.
type leg struct {
	snapshot models.OddsSnapshot
	prob     float64 // raw implied probability of the backed outcome
}

// Detect finds guaranteed-profit stake splits among the given quotes for one
// fight. Only each book's most recent snapshot participates. For every
// unordered book pair (including a book against itself, which is risk
// flagged) both leg orientations are tried and only the maximum-profit
// orientation is reported, so there are no duplicate or symmetric reports.
// Results are ordered by profit descending. Staleness is judged against the
// newest quote in the set rather than the wall clock, keeping detection
// deterministic for identical input.
func (d *Detector) Detect(quotes []models.OddsSnapshot, cfg models.FeatureConfig) []models.ArbitrageOpportunity {
	latest := aggregator.LatestPerBook(quotes)
	if len(latest) == 0 {
		return nil
	}

	var newest time.Time
	for _, q := range latest {
		if q.Timestamp.After(newest) {
			newest = q.Timestamp
		}
	}

	maxCombined := 1.0 - cfg.ArbitrageMinProfitPct/100.0

	var opportunities []models.ArbitrageOpportunity
	for i := 0; i < len(latest); i++ {
		for j := i; j < len(latest); j++ {
			best, ok := bestOrientation(latest[i], latest[j], maxCombined)
			if !ok {
				continue
			}

			opp := d.buildOpportunity(best[0], best[1], newest, cfg)
			opportunities = append(opportunities, opp)
		}
	}

	sort.SliceStable(opportunities, func(a, b int) bool {
		return opportunities[a].ProfitPercent > opportunities[b].ProfitPercent
	})

	if len(opportunities) > 0 {
		d.logger.Debug().
			Str("fight_id", latest[0].FightID).
			Int("count", len(opportunities)).
			Float64("max_profit_pct", opportunities[0].ProfitPercent).
			Msg("arbitrage opportunities detected")
	}

	return opportunities
}

// bestOrientation checks both leg assignments for a book pair (a backs
// fighter1 / b backs fighter2, and the reverse) and keeps the lower combined
// probability, i.e. the higher profit, when it clears the threshold.
func bestOrientation(a, b models.OddsSnapshot, maxCombined float64) ([2]leg, bool) {
	found := false
	var best [2]leg
	bestCombined := maxCombined

	try := func(one, two models.OddsSnapshot) {
		p1, err1 := oddsmath.ImpliedProbability(one.Moneyline.Fighter1)
		p2, err2 := oddsmath.ImpliedProbability(two.Moneyline.Fighter2)
		if err1 != nil || err2 != nil {
			return
		}
		if combined := p1 + p2; combined < bestCombined {
			bestCombined = combined
			best = [2]leg{{snapshot: one, prob: p1}, {snapshot: two, prob: p2}}
			found = true
		}
	}

	try(a, b)
	if a.Sportsbook != b.Sportsbook {
		try(b, a)
	}

	return best, found
}

func (d *Detector) buildOpportunity(leg1, leg2 leg, newest time.Time, cfg models.FeatureConfig) models.ArbitrageOpportunity {
	combined := leg1.prob + leg2.prob
	profitPct := (1/combined - 1) * 100

	// stake_i = p_i / combined sums to 1 and pays the same on either leg.
	// Keys carry the backed outcome only when both legs sit at one book.
	key1, key2 := leg1.snapshot.Sportsbook, leg2.snapshot.Sportsbook
	sameBook := key1 == key2
	if sameBook {
		key1 += ":fighter1"
		key2 += ":fighter2"
	}
	stakes := map[string]decimal.Decimal{
		key1: decimal.NewFromFloat(leg1.prob / combined),
		key2: decimal.NewFromFloat(leg2.prob / combined),
	}

	var risks []string
	if sameBook {
		risks = append(risks, RiskSameSportsbook)
	}
	freshCutoff := newest.Add(-cfg.QuoteFreshnessWindow)
	if leg1.snapshot.Timestamp.Before(freshCutoff) || leg2.snapshot.Timestamp.Before(freshCutoff) {
		risks = append(risks, RiskStaleQuote)
	}
	if profitPct < cfg.ThinMarginPct {
		risks = append(risks, RiskThinMargin)
	}

	newerLeg := leg1.snapshot.Timestamp
	if leg2.snapshot.Timestamp.After(newerLeg) {
		newerLeg = leg2.snapshot.Timestamp
	}

	return models.ArbitrageOpportunity{
		ID:            uuid.New(),
		FightID:       leg1.snapshot.FightID,
		Sportsbooks:   []string{leg1.snapshot.Sportsbook, leg2.snapshot.Sportsbook},
		ProfitPercent: profitPct,
		Stakes:        stakes,
		ExpiresAt:     newerLeg.Add(cfg.ArbitrageExpiryWindow),
		RiskFactors:   risks,
		DetectedAt:    newest,
	}
}
