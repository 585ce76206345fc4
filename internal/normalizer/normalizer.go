// Package normalizer turns heterogeneous raw per-source quotes into the
// canonical OddsSnapshot shape the rest of the engine expects.
package normalizer

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/fight-odds-engine/internal/models"
	"github.com/cypherlabdev/fight-odds-engine/pkg/oddsmath"
)

// canonicalNames maps lowercase source identifiers to canonical display
// names. Unknown keys pass through unchanged.
var canonicalNames = map[string]string{
	"draftkings":   "DraftKings",
	"fanduel":      "FanDuel",
	"betmgm":       "BetMGM",
	"caesars":      "Caesars",
	"williamhill":  "Caesars",
	"pinnacle":     "Pinnacle",
	"bovada":       "Bovada",
	"betonline":    "BetOnline",
	"betonlineag":  "BetOnline",
	"circa":        "Circa Sports",
	"circasports":  "Circa Sports",
	"pointsbet":    "PointsBet",
	"unibet":       "Unibet",
	"bet365":       "Bet365",
	"betrivers":    "BetRivers",
	"espnbet":      "ESPN BET",
	"superbook":    "SuperBook",
	"betway":       "Betway",
	"fightodds":    "FightOdds",
	"sportsbet_io": "Sportsbet.io",
}

// CanonicalName maps a raw sportsbook key to its canonical display name.
// Unknown keys are returned as-is so new books degrade gracefully.
func CanonicalName(rawKey string) string {
	if name, ok := canonicalNames[strings.ToLower(strings.TrimSpace(rawKey))]; ok {
		return name
	}
	return rawKey
}

// RawMarketData is the loosely-shaped per-source payload handed over by the
// ingestion collaborator. Method and Rounds are optional; Moneyline is not.
type RawMarketData struct {
	FightID    string             `json:"fight_id"`
	Sportsbook string             `json:"sportsbook"` // raw source key
	Timestamp  time.Time          `json:"timestamp"`
	Fighter1ML int                `json:"fighter1_ml"`
	Fighter2ML int                `json:"fighter2_ml"`
	Method     *models.MethodOdds `json:"method,omitempty"`
	Rounds     *models.RoundOdds  `json:"rounds,omitempty"`
	Volume     float64            `json:"volume,omitempty"`
}

// Normalizer builds canonical snapshots from raw market payloads.
type Normalizer struct {
	logger zerolog.Logger
}

// NewNormalizer creates a snapshot normalizer.
func NewNormalizer(logger zerolog.Logger) *Normalizer {
	return &Normalizer{
		logger: logger.With().Str("component", "normalizer").Logger(),
	}
}

// BuildSnapshot converts raw market data into a canonical OddsSnapshot.
// Absent method/round markets are filled with all-zero placeholders so every
// snapshot downstream has a uniform shape. A zero moneyline on either side
// rejects the snapshot.
func (n *Normalizer) BuildSnapshot(raw RawMarketData) (*models.OddsSnapshot, error) {
	if raw.Fighter1ML == 0 || raw.Fighter2ML == 0 {
		return nil, fmt.Errorf("moneyline for %s/%s: %w",
			raw.FightID, raw.Sportsbook, oddsmath.ErrInvalidOdds)
	}

	snapshot := &models.OddsSnapshot{
		FightID:    raw.FightID,
		Sportsbook: CanonicalName(raw.Sportsbook),
		Timestamp:  raw.Timestamp,
		Moneyline: models.MoneylineOdds{
			Fighter1: raw.Fighter1ML,
			Fighter2: raw.Fighter2ML,
		},
		Volume: raw.Volume,
	}

	if raw.Method != nil {
		snapshot.Method = *raw.Method
	}
	if raw.Rounds != nil {
		snapshot.Rounds = *raw.Rounds
	}

	return snapshot, nil
}

// BuildBatch converts a batch of raw payloads, skipping invalid entries with
// a warning rather than failing the batch.
func (n *Normalizer) BuildBatch(raws []RawMarketData) []models.OddsSnapshot {
	snapshots := make([]models.OddsSnapshot, 0, len(raws))

	for _, raw := range raws {
		snapshot, err := n.BuildSnapshot(raw)
		if err != nil {
			n.logger.Warn().
				Err(err).
				Str("fight_id", raw.FightID).
				Str("sportsbook", raw.Sportsbook).
				Msg("skipping invalid raw quote")
			continue
		}
		snapshots = append(snapshots, *snapshot)
	}

	return snapshots
}
