// Package movement computes time-ordered line-movement signals per
// (fight, sportsbook) pair and rolls them up to fight level. Direction,
// steam, and reversal are only meaningful within one book's own price
// history, so the transform is an explicit group-by-sportsbook followed by a
// per-book reduce and a fight-level rollup.
package movement

import (
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/fight-odds-engine/internal/models"
	"github.com/cypherlabdev/fight-odds-engine/pkg/oddsmath"
)

// BookMovement is the reduced movement view of one sportsbook's snapshot
// history for one fight.
type BookMovement struct {
	Sportsbook           string                `json:"sportsbook"`
	Movements            []models.OddsMovement `json:"movements"`
	TotalLineMovement    float64               `json:"total_line_movement"`
	LineMovementVelocity float64               `json:"line_movement_velocity"`
	SteamMoveCount       int                   `json:"steam_move_count"`
	ReversalCount        int                   `json:"reversal_count"`
	ClosingLineValue     float64               `json:"closing_line_value"`
	SnapshotCount        int                   `json:"snapshot_count"`
}

// FightMovement is the fight-level rollup across books: movement and
// velocity are unweighted means, steam and reversal counts are sums.
type FightMovement struct {
	FightID              string                `json:"fight_id"`
	Books                []BookMovement        `json:"books"`
	Movements            []models.OddsMovement `json:"movements"`
	AvgTotalLineMovement float64               `json:"avg_total_line_movement"`
	AvgVelocity          float64               `json:"avg_velocity"`
	SteamMoveCount       int                   `json:"steam_move_count"`
	ReversalCount        int                   `json:"reversal_count"`
	AvgClosingLineValue  float64               `json:"avg_closing_line_value"`
}

// Analyzer computes movement signals from snapshot sequences.
type Analyzer struct {
	logger zerolog.Logger
}

// NewAnalyzer creates a movement analyzer.
func NewAnalyzer(logger zerolog.Logger) *Analyzer {
	return &Analyzer{
		logger: logger.With().Str("component", "movement_analyzer").Logger(),
	}
}

// AnalyzeFight groups snapshots by sportsbook, reduces each book's history,
// and rolls the per-book metrics up to fight level. Snapshots with invalid
// odds are skipped per book, never fatal.
func (a *Analyzer) AnalyzeFight(fightID string, snapshots []models.OddsSnapshot, cfg models.FeatureConfig) FightMovement {
	result := FightMovement{FightID: fightID}

	var order []string
	grouped := make(map[string][]models.OddsSnapshot)
	for _, s := range snapshots {
		if _, seen := grouped[s.Sportsbook]; !seen {
			order = append(order, s.Sportsbook)
		}
		grouped[s.Sportsbook] = append(grouped[s.Sportsbook], s)
	}

	var movements, velocities, clvs []float64
	for _, book := range order {
		bm := a.analyzeBook(fightID, book, grouped[book], cfg)
		if bm.SnapshotCount == 0 {
			continue
		}

		result.Books = append(result.Books, bm)
		result.Movements = append(result.Movements, bm.Movements...)
		result.SteamMoveCount += bm.SteamMoveCount
		result.ReversalCount += bm.ReversalCount
		movements = append(movements, bm.TotalLineMovement)
		velocities = append(velocities, bm.LineMovementVelocity)
		clvs = append(clvs, bm.ClosingLineValue)
	}

	result.AvgTotalLineMovement = oddsmath.Mean(movements)
	result.AvgVelocity = oddsmath.Mean(velocities)
	result.AvgClosingLineValue = oddsmath.Mean(clvs)

	return result
}

// analyzeBook reduces one sportsbook's snapshot history, sorted by timestamp
// ascending. Fewer than two valid snapshots yields zero movement metrics, not
// an error.
func (a *Analyzer) analyzeBook(fightID, book string, snapshots []models.OddsSnapshot, cfg models.FeatureConfig) BookMovement {
	bm := BookMovement{Sportsbook: book}

	type point struct {
		snapshot models.OddsSnapshot
		fairProb float64
	}
	points := make([]point, 0, len(snapshots))
	for _, s := range snapshots {
		p1, err1 := oddsmath.ImpliedProbability(s.Moneyline.Fighter1)
		p2, err2 := oddsmath.ImpliedProbability(s.Moneyline.Fighter2)
		if err1 != nil || err2 != nil {
			a.logger.Warn().
				Str("fight_id", fightID).
				Str("sportsbook", book).
				Time("timestamp", s.Timestamp).
				Msg("skipping snapshot with invalid moneyline")
			continue
		}
		fair1, _ := oddsmath.NormalizeTwoWay(p1, p2)
		points = append(points, point{snapshot: s, fairProb: fair1})
	}

	bm.SnapshotCount = len(points)
	if len(points) == 0 {
		return bm
	}

	// Arrival order is not time order; the engine sorts.
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].snapshot.Timestamp.Before(points[j].snapshot.Timestamp)
	})

	first, last := points[0], points[len(points)-1]
	bm.ClosingLineValue = closingLineValue(
		first.snapshot.Moneyline.Fighter1, last.snapshot.Moneyline.Fighter1)

	if len(points) < 2 {
		return bm
	}

	bm.TotalLineMovement = math.Abs(last.fairProb-first.fairProb) * 100

	elapsed := last.snapshot.Timestamp.Sub(first.snapshot.Timestamp).Hours()
	if elapsed > 0 {
		bm.LineMovementVelocity = bm.TotalLineMovement / elapsed
	}

	var prevSignedPct float64
	havePrev := false
	for i := 1; i < len(points); i++ {
		from, to := points[i-1], points[i]
		if from.fairProb <= 0 {
			continue
		}

		pct := (to.fairProb - from.fairProb) / from.fairProb * 100
		if math.Abs(pct) <= oddsmath.ProbEpsilon {
			continue
		}

		direction := models.TowardFighter1
		if pct < 0 {
			direction = models.TowardFighter2
		}
		bm.Movements = append(bm.Movements, models.OddsMovement{
			FightID:          fightID,
			Sportsbook:       book,
			Timestamp:        to.snapshot.Timestamp,
			FromOdds:         from.snapshot.Moneyline.Fighter1,
			ToOdds:           to.snapshot.Moneyline.Fighter1,
			PercentageChange: pct,
			Direction:        direction,
		})

		gap := to.snapshot.Timestamp.Sub(from.snapshot.Timestamp)
		if math.Abs(pct) >= cfg.SteamMoveThresholdPct && gap <= cfg.SteamMoveWindow {
			bm.SteamMoveCount++
		}

		if havePrev && prevSignedPct*pct < 0 {
			bm.ReversalCount++
		}
		prevSignedPct = pct
		havePrev = true
	}

	return bm
}

// closingLineValue compares the implied cost of backing fighter1 at the
// opening quote against the book's final quote:
// (1/dec(open) - 1/dec(close)) x 100.
func closingLineValue(openingOdds, closingOdds int) float64 {
	openDec, err1 := oddsmath.ToDecimal(openingOdds)
	closeDec, err2 := oddsmath.ToDecimal(closingOdds)
	if err1 != nil || err2 != nil {
		return 0
	}

	return (1/openDec - 1/closeDec) * 100
}
