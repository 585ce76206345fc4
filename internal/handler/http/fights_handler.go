package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/fight-odds-engine/internal/service"
)

// FightsHandler handles HTTP requests for fight features and arbitrage
type FightsHandler struct {
	service *service.EngineService
	logger  zerolog.Logger
}

// NewFightsHandler creates a new fights HTTP handler
func NewFightsHandler(service *service.EngineService, logger zerolog.Logger) *FightsHandler {
	return &FightsHandler{
		service: service,
		logger:  logger.With().Str("component", "fights_handler").Logger(),
	}
}

// RegisterRoutes registers HTTP routes with the provided mux
func (h *FightsHandler) RegisterRoutes(mux *http.ServeMux) {
	// GET /api/v1/fights/:fight_id/features - Get the cached feature vector
	// GET /api/v1/fights/:fight_id/arbitrage - Get cached arbitrage opportunities
	mux.HandleFunc("/api/v1/fights/", h.handleFight)
}

// handleFight dispatches /api/v1/fights/:fight_id/{features|arbitrage}
func (h *FightsHandler) handleFight(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	// Parse path: /api/v1/fights/:fight_id/:resource
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/fights/")
	parts := strings.Split(path, "/")

	if len(parts) != 2 {
		h.errorResponse(w, http.StatusBadRequest, "invalid path: expected /api/v1/fights/:fight_id/features or /api/v1/fights/:fight_id/arbitrage")
		return
	}

	fightID := parts[0]
	if fightID == "" {
		h.errorResponse(w, http.StatusBadRequest, "fight_id is required")
		return
	}

	switch parts[1] {
	case "features":
		h.getFeatures(w, r, fightID)
	case "arbitrage":
		h.getArbitrage(w, r, fightID)
	default:
		h.errorResponse(w, http.StatusBadRequest, "unknown resource: expected features or arbitrage")
	}
}

// getFeatures handles GET /api/v1/fights/:fight_id/features
func (h *FightsHandler) getFeatures(w http.ResponseWriter, r *http.Request, fightID string) {
	vector, err := h.service.GetFeatures(r.Context(), fightID)
	if err != nil {
		h.logger.Debug().
			Err(err).
			Str("fight_id", fightID).
			Msg("features not found")
		h.errorResponse(w, http.StatusNotFound, "features not found")
		return
	}

	h.jsonResponse(w, http.StatusOK, vector)
}

// getArbitrage handles GET /api/v1/fights/:fight_id/arbitrage
func (h *FightsHandler) getArbitrage(w http.ResponseWriter, r *http.Request, fightID string) {
	opportunities, err := h.service.GetOpportunities(r.Context(), fightID)
	if err != nil {
		h.logger.Debug().
			Err(err).
			Str("fight_id", fightID).
			Msg("opportunities not found")
		h.errorResponse(w, http.StatusNotFound, "opportunities not found")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"fight_id":      fightID,
		"count":         len(opportunities),
		"opportunities": opportunities,
	})
}

// jsonResponse writes a JSON response
func (h *FightsHandler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes a JSON error response
func (h *FightsHandler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{
		"error": message,
	})
}
