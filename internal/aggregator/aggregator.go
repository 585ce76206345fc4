// Package aggregator combines canonical snapshots for one fight into a
// best-odds view and a vig-free, cross-book consensus view.
package aggregator

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/fight-odds-engine/internal/models"
	"github.com/cypherlabdev/fight-odds-engine/pkg/oddsmath"
)

// ErrNoQuotes is returned when no valid quote survives aggregation.
var ErrNoQuotes = errors.New("no valid quotes to aggregate")

// BookOdds is one sportsbook's moneyline with its raw and vig-free implied
// probabilities.
type BookOdds struct {
	Sportsbook       string               `json:"sportsbook"`
	Moneyline        models.MoneylineOdds `json:"moneyline"`
	ImpliedFighter1  float64              `json:"implied_fighter1"`
	ImpliedFighter2  float64              `json:"implied_fighter2"`
	FairProbFighter1 float64              `json:"fair_prob_fighter1"`
	FairProbFighter2 float64              `json:"fair_prob_fighter2"`
}

// BestQuote is the most favorable price a bettor backing one outcome could
// take across all books.
type BestQuote struct {
	Sportsbook  string  `json:"sportsbook"`
	Odds        int     `json:"odds"`
	DecimalOdds float64 `json:"decimal_odds"`
}

// Consensus is the unweighted cross-book mean of vig-free probabilities.
// Confidence is 1 minus the normalized variance of per-book probabilities,
// clamped to [0,1]: higher agreement means higher confidence.
type Consensus struct {
	ProbFighter1 float64 `json:"prob_fighter1"`
	ProbFighter2 float64 `json:"prob_fighter2"`
	Confidence   float64 `json:"confidence"`
}

// MarketView is the aggregated multi-book view for one fight.
type MarketView struct {
	FightID      string     `json:"fight_id"`
	Books        []BookOdds `json:"books"`
	BestFighter1 BestQuote  `json:"best_fighter1"`
	BestFighter2 BestQuote  `json:"best_fighter2"`
	Consensus    Consensus  `json:"consensus"`
}

// Aggregator builds multi-book market views.
type Aggregator struct {
	logger zerolog.Logger
}

// NewAggregator creates a multi-book aggregator.
func NewAggregator(logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		logger: logger.With().Str("component", "aggregator").Logger(),
	}
}

// Aggregate combines the given quotes for one fight. Only the most recent
// snapshot per sportsbook participates. Snapshots with a zero moneyline are
// skipped, not fatal. Ties on best odds break toward the quote seen first,
// so caller-supplied ordering (e.g. filter priority) decides.
func (a *Aggregator) Aggregate(quotes []models.OddsSnapshot) (*MarketView, error) {
	latest := LatestPerBook(quotes)
	if len(latest) == 0 {
		return nil, ErrNoQuotes
	}

	view := &MarketView{FightID: latest[0].FightID}
	var fair1Probs, fair2Probs []float64

	for _, q := range latest {
		p1, err := oddsmath.ImpliedProbability(q.Moneyline.Fighter1)
		if err != nil {
			a.logger.Warn().
				Err(err).
				Str("sportsbook", q.Sportsbook).
				Msg("skipping quote with invalid fighter1 odds")
			continue
		}
		p2, err := oddsmath.ImpliedProbability(q.Moneyline.Fighter2)
		if err != nil {
			a.logger.Warn().
				Err(err).
				Str("sportsbook", q.Sportsbook).
				Msg("skipping quote with invalid fighter2 odds")
			continue
		}

		fair1, fair2 := oddsmath.NormalizeTwoWay(p1, p2)
		view.Books = append(view.Books, BookOdds{
			Sportsbook:       q.Sportsbook,
			Moneyline:        q.Moneyline,
			ImpliedFighter1:  p1,
			ImpliedFighter2:  p2,
			FairProbFighter1: fair1,
			FairProbFighter2: fair2,
		})
		fair1Probs = append(fair1Probs, fair1)
		fair2Probs = append(fair2Probs, fair2)

		dec1, _ := oddsmath.ToDecimal(q.Moneyline.Fighter1)
		if dec1 > view.BestFighter1.DecimalOdds {
			view.BestFighter1 = BestQuote{Sportsbook: q.Sportsbook, Odds: q.Moneyline.Fighter1, DecimalOdds: dec1}
		}
		dec2, _ := oddsmath.ToDecimal(q.Moneyline.Fighter2)
		if dec2 > view.BestFighter2.DecimalOdds {
			view.BestFighter2 = BestQuote{Sportsbook: q.Sportsbook, Odds: q.Moneyline.Fighter2, DecimalOdds: dec2}
		}
	}

	if len(view.Books) == 0 {
		return nil, ErrNoQuotes
	}

	view.Consensus = Consensus{
		ProbFighter1: oddsmath.Mean(fair1Probs),
		ProbFighter2: oddsmath.Mean(fair2Probs),
		// Variance of values in [0,1] is at most 0.25; scale so total
		// disagreement maps to zero confidence.
		Confidence: oddsmath.Clamp01(1 - oddsmath.Variance(fair1Probs)/0.25),
	}

	return view, nil
}

// LatestPerBook reduces a snapshot list to the most recent snapshot per
// sportsbook, preserving the first-seen book order.
func LatestPerBook(quotes []models.OddsSnapshot) []models.OddsSnapshot {
	index := make(map[string]int, len(quotes))
	latest := make([]models.OddsSnapshot, 0, len(quotes))

	for _, q := range quotes {
		if i, ok := index[q.Sportsbook]; ok {
			if q.Timestamp.After(latest[i].Timestamp) {
				latest[i] = q
			}
			continue
		}
		index[q.Sportsbook] = len(latest)
		latest = append(latest, q)
	}

	return latest
}
