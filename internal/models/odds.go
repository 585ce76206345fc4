package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MoneylineOdds holds the two-way moneyline for a fight as American odds.
// Zero is never a valid quote; a zero value means the side is unquoted.
type MoneylineOdds struct {
	Fighter1 int `json:"fighter1"`
	Fighter2 int `json:"fighter2"`
}

// MethodOdds holds method-of-victory odds as American odds. Absent markets
// are represented by all-zero placeholders so every snapshot has a uniform
// shape downstream.
type MethodOdds struct {
	KO         int `json:"ko"`
	Submission int `json:"submission"`
	Decision   int `json:"decision"`
}

// RoundOdds holds round-of-finish odds as American odds, with the same
// zero-placeholder convention as MethodOdds.
type RoundOdds struct {
	Round1 int `json:"round1"`
	Round2 int `json:"round2"`
	Round3 int `json:"round3"`
	Round4 int `json:"round4"`
	Round5 int `json:"round5"`
}

// OddsSnapshot is one sportsbook's quote for one fight at one instant.
// Snapshots are created once at ingestion and never mutated; the engine only
// ever reads them.
type OddsSnapshot struct {
	FightID    string        `json:"fight_id"`
	Sportsbook string        `json:"sportsbook"` // canonical display name
	Timestamp  time.Time     `json:"timestamp"`
	Moneyline  MoneylineOdds `json:"moneyline"`
	Method     MethodOdds    `json:"method"`
	Rounds     RoundOdds     `json:"rounds"`
	Volume     float64       `json:"volume,omitempty"`
}

// OddsMovementData is the per-fight input contract from the ingestion
// collaborator. Snapshots arrive in append order, not guaranteed time order;
// the engine sorts. Movements and ArbitrageOpportunities are derived fresh on
// every extraction call, never incrementally maintained.
type OddsMovementData struct {
	FightID                string                 `json:"fight_id"`
	Snapshots              []OddsSnapshot         `json:"snapshots"`
	Movements              []OddsMovement         `json:"movements,omitempty"`
	ArbitrageOpportunities []ArbitrageOpportunity `json:"arbitrage_opportunities,omitempty"`
}

// MovementDirection classifies which fighter a price move favors.
type MovementDirection string

const (
	TowardFighter1 MovementDirection = "toward_fighter1"
	TowardFighter2 MovementDirection = "toward_fighter2"
)

// OddsMovement is one consecutive-pair price change within a single
// sportsbook's own history. PercentageChange is measured on the vig-free
// fighter1 probability.
type OddsMovement struct {
	FightID          string            `json:"fight_id"`
	Sportsbook       string            `json:"sportsbook"`
	Timestamp        time.Time         `json:"timestamp"`
	FromOdds         int               `json:"from_odds"`
	ToOdds           int               `json:"to_odds"`
	PercentageChange float64           `json:"percentage_change"`
	Direction        MovementDirection `json:"direction"`
}

// ArbitrageOpportunity is a two-leg stake split across sportsbooks that
// guarantees profit regardless of outcome. Stakes are fractions of total
// outlay and sum to 1. ExpiresAt is a heuristic validity window, not a
// guarantee derived from market data.
type ArbitrageOpportunity struct {
	ID            uuid.UUID                  `json:"id"`
	FightID       string                     `json:"fight_id"`
	Sportsbooks   []string                   `json:"sportsbooks"`
	ProfitPercent float64                    `json:"profit_percent"`
	Stakes        map[string]decimal.Decimal `json:"stakes"`
	ExpiresAt     time.Time                  `json:"expires_at"`
	RiskFactors   []string                   `json:"risk_factors,omitempty"`
	DetectedAt    time.Time                  `json:"detected_at"`
}

// SportsbookFilterConfig selects and orders the sportsbooks considered for a
// fight. Include wins over Exclude when both are set. Books listed in
// Priority appear first, in the given order; the rest keep their original
// relative order.
type SportsbookFilterConfig struct {
	Include  []string `json:"include,omitempty"`
	Exclude  []string `json:"exclude,omitempty"`
	Priority []string `json:"priority,omitempty"`
}

// FeatureConfig holds every tunable threshold of the engine. Values are
// passed explicitly into each call; the engine holds no mutable state across
// invocations. The time windows are fixed heuristics about market latency,
// named here so callers can override them.
type FeatureConfig struct {
	SteamMoveThresholdPct       float64       `json:"steam_move_threshold_pct"`
	SignificantMoveThresholdPct float64       `json:"significant_move_threshold_pct"`
	SharpBookmakers             []string      `json:"sharp_bookmakers"`
	PublicBookmakers            []string      `json:"public_bookmakers"`
	VolumeSpikeFactor           float64       `json:"volume_spike_factor"`
	ArbitrageMinProfitPct       float64       `json:"arbitrage_min_profit_pct"`
	SteamMoveWindow             time.Duration `json:"steam_move_window"`
	ArbitrageExpiryWindow       time.Duration `json:"arbitrage_expiry_window"`
	QuoteFreshnessWindow        time.Duration `json:"quote_freshness_window"`
	ThinMarginPct               float64       `json:"thin_margin_pct"`
}

// DefaultFeatureConfig returns the engine defaults.
func DefaultFeatureConfig() FeatureConfig {
	return FeatureConfig{
		SteamMoveThresholdPct:       5.0,
		SignificantMoveThresholdPct: 2.0,
		SharpBookmakers:             []string{"Pinnacle", "Circa Sports", "BetOnline"},
		PublicBookmakers:            []string{"DraftKings", "FanDuel", "BetMGM", "Caesars"},
		VolumeSpikeFactor:           2.0,
		ArbitrageMinProfitPct:       1.0,
		SteamMoveWindow:             30 * time.Minute,
		ArbitrageExpiryWindow:       5 * time.Minute,
		QuoteFreshnessWindow:        10 * time.Minute,
		ThinMarginPct:               2.0,
	}
}

// OddsFeatureVector is the fixed-shape market-signal output per fight,
// consumed by downstream prediction and strategy services. Probabilities are
// vig-free unless noted.
type OddsFeatureVector struct {
	FightID string `json:"fight_id"`

	// Price levels
	OpeningImpliedProbFighter1 float64 `json:"opening_implied_prob_fighter1"`
	OpeningImpliedProbFighter2 float64 `json:"opening_implied_prob_fighter2"`
	ClosingImpliedProbFighter1 float64 `json:"closing_implied_prob_fighter1"`
	ClosingImpliedProbFighter2 float64 `json:"closing_implied_prob_fighter2"`
	CurrentImpliedProbFighter1 float64 `json:"current_implied_prob_fighter1"`
	CurrentImpliedProbFighter2 float64 `json:"current_implied_prob_fighter2"`

	// Cross-book agreement
	MarketConsensusStrength    float64 `json:"market_consensus_strength"`
	BookmakerAgreement         float64 `json:"bookmaker_agreement"`
	ImpliedProbabilityVariance float64 `json:"implied_probability_variance"`

	// Movement signals
	TotalLineMovement    float64 `json:"total_line_movement"`
	LineMovementVelocity float64 `json:"line_movement_velocity"`
	LineReversalCount    int     `json:"line_reversal_count"`
	SteamMoveCount       int     `json:"steam_move_count"`
	ClosingLineValue     float64 `json:"closing_line_value"`

	// Arbitrage
	ArbitrageOpportunityCount int     `json:"arbitrage_opportunity_count"`
	MaxArbitrageProfit        float64 `json:"max_arbitrage_profit"`

	// Sharp vs public
	SharpMoneyPercentage  float64 `json:"sharp_money_percentage"`
	PublicMoneyPercentage float64 `json:"public_money_percentage"`
	SharpPublicDivergence float64 `json:"sharp_public_divergence"`

	// Volume and liquidity
	AverageVolume  float64 `json:"average_volume"`
	VolumeSpike    float64 `json:"volume_spike"`
	LiquidityScore float64 `json:"liquidity_score"`

	// Secondary markets
	MethodBettingVariance float64 `json:"method_betting_variance"`
	RoundBettingVariance  float64 `json:"round_betting_variance"`
	FavoriteMethodOdds    int     `json:"favorite_method_odds"`
	FavoriteRoundOdds     int     `json:"favorite_round_odds"`

	ExtractedAt time.Time `json:"extracted_at"`
}

// KafkaSnapshotBatchMessage is the message shape delivered by the ingestion
// collaborator on the snapshot topic: one batch of canonicalized snapshots
// for one fight.
type KafkaSnapshotBatchMessage struct {
	FightID   string         `json:"fight_id"`
	Snapshots []OddsSnapshot `json:"snapshots"`
	Timestamp time.Time      `json:"timestamp"`
	BatchID   string         `json:"batch_id"`
}
