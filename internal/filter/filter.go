// Package filter applies include/exclude/priority rules to per-fight quote
// sets. Ordering matters for display and for first-match tie-breaks
// downstream.
package filter

import (
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/fight-odds-engine/internal/models"
)

// Filter applies sportsbook selection rules to quote sets.
type Filter struct {
	logger zerolog.Logger
}

// NewFilter creates a sportsbook filter.
func NewFilter(logger zerolog.Logger) *Filter {
	return &Filter{
		logger: logger.With().Str("component", "sportsbook_filter").Logger(),
	}
}

// Apply returns the ordered subset of quotes selected by cfg. Include wins
// over Exclude when both are set. Books named in Priority appear first in
// the given order; the remaining quotes keep their original relative order.
// A nil config returns the input unchanged. A rule naming a sportsbook
// absent from the data is a logged no-op, never an error.
func (f *Filter) Apply(quotes []models.OddsSnapshot, cfg *models.SportsbookFilterConfig) []models.OddsSnapshot {
	if cfg == nil {
		return quotes
	}

	present := make(map[string]bool, len(quotes))
	for _, q := range quotes {
		present[q.Sportsbook] = true
	}
	f.logMissing(cfg, present)

	selected := quotes
	switch {
	case len(cfg.Include) > 0:
		include := toSet(cfg.Include)
		selected = keep(quotes, func(q models.OddsSnapshot) bool {
			return include[q.Sportsbook]
		})
	case len(cfg.Exclude) > 0:
		exclude := toSet(cfg.Exclude)
		selected = keep(quotes, func(q models.OddsSnapshot) bool {
			return !exclude[q.Sportsbook]
		})
	}

	if len(cfg.Priority) == 0 {
		return selected
	}

	return reorder(selected, cfg.Priority)
}

// reorder moves prioritized sportsbooks to the front in the configured
// order; the rest follow in their original relative order. A prioritized
// book carrying several quotes keeps them contiguous.
func reorder(quotes []models.OddsSnapshot, priority []string) []models.OddsSnapshot {
	ordered := make([]models.OddsSnapshot, 0, len(quotes))
	taken := make([]bool, len(quotes))

	for _, book := range priority {
		for i, q := range quotes {
			if !taken[i] && q.Sportsbook == book {
				ordered = append(ordered, q)
				taken[i] = true
			}
		}
	}

	for i, q := range quotes {
		if !taken[i] {
			ordered = append(ordered, q)
		}
	}

	return ordered
}

func (f *Filter) logMissing(cfg *models.SportsbookFilterConfig, present map[string]bool) {
	for _, lists := range [][]string{cfg.Include, cfg.Exclude, cfg.Priority} {
		for _, book := range lists {
			if !present[book] {
				f.logger.Debug().
					Str("sportsbook", book).
					Msg("filter references sportsbook absent from data")
			}
		}
	}
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

func keep(quotes []models.OddsSnapshot, pred func(models.OddsSnapshot) bool) []models.OddsSnapshot {
	out := make([]models.OddsSnapshot, 0, len(quotes))
	for _, q := range quotes {
		if pred(q) {
			out = append(out, q)
		}
	}
	return out
}
