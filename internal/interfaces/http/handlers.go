package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/equityscan/equityscan/internal/screener"
)

// Handlers serves the screen API over a fixed symbol universe.
type Handlers struct {
	screener *screener.Screener
	universe []string
	log      zerolog.Logger
	started  time.Time
}

// NewHandlers builds the handler set.
func NewHandlers(s *screener.Screener, universe []string, log zerolog.Logger) *Handlers {
	return &Handlers{
		screener: s,
		universe: universe,
		log:      log.With().Str("component", "handlers").Logger(),
		started:  time.Now(),
	}
}

type healthResponse struct {
	Status       string `json:"status"`
	UptimeSec    int64  `json:"uptime_sec"`
	UniverseSize int    `json:"universe_size"`
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:       "ok",
		UptimeSec:    int64(time.Since(h.started).Seconds()),
		UniverseSize: len(h.universe),
	})
}

// Presets lists the available preset screens.
func (h *Handlers) Presets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"presets": screener.Presets})
}

type screenResponse struct {
	Count   int               `json:"count"`
	Results []screener.Result `json:"results"`
}

// PresetScreen runs a named preset: GET /screens/{preset}?sector=...
func (h *Handlers) PresetScreen(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["preset"]
	preset, err := screener.ParsePreset(name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	results, err := h.screener.RunPreset(r.Context(), h.universe, preset, r.URL.Query().Get("sector"))
	if err != nil {
		h.writeScreenError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, screenResponse{Count: len(results), Results: emptyIfNil(results)})
}

type screenRequest struct {
	Fundamental screener.FundamentalCriteria `json:"fundamental"`
	Technical   screener.TechnicalCriteria   `json:"technical"`
	Weights     screener.Weights             `json:"weights"`
	Limit       int                          `json:"limit"`
}

// defaultTopN caps a criteria-less screen, which would otherwise return
// the whole universe ranked by financial score.
const defaultTopN = 20

// CustomScreen runs caller-supplied criteria: POST /screens. With both
// criteria sets active it runs a combined screen; with one, that screen
// alone; with neither, the top stocks by financial score.
func (h *Handlers) CustomScreen(w http.ResponseWriter, r *http.Request) {
	var req screenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("malformed request body"))
		return
	}
	if req.Limit < 0 {
		writeError(w, http.StatusBadRequest, errors.New("limit must be non-negative"))
		return
	}

	var (
		results []screener.Result
		err     error
	)
	ctx := r.Context()
	switch {
	case req.Fundamental.Active() && req.Technical.Active():
		results, err = h.screener.RunCombined(ctx, h.universe, req.Fundamental, req.Technical, req.Weights)
	case req.Fundamental.Active():
		results, err = h.screener.RunFundamental(ctx, h.universe, req.Fundamental)
	case req.Technical.Active():
		results, err = h.screener.RunTechnical(ctx, h.universe, req.Technical)
	default:
		results, err = h.screener.RunFundamental(ctx, h.universe, screener.FundamentalCriteria{})
		if err == nil && len(results) > defaultTopN {
			results = results[:defaultTopN]
		}
	}
	if err != nil {
		h.writeScreenError(w, err)
		return
	}

	if req.Limit > 0 && len(results) > req.Limit {
		results = results[:req.Limit]
	}
	writeJSON(w, http.StatusOK, screenResponse{Count: len(results), Results: emptyIfNil(results)})
}

// NotFound answers unknown routes in the API's error shape.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeError(w, http.StatusNotFound, errors.New("not found"))
}

func (h *Handlers) writeScreenError(w http.ResponseWriter, err error) {
	var invalid *screener.InvalidCriteriaError
	if errors.As(err, &invalid) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	h.log.Error().Err(err).Msg("screen failed")
	writeError(w, http.StatusInternalServerError, errors.New("screen failed"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func emptyIfNil(results []screener.Result) []screener.Result {
	if results == nil {
		return []screener.Result{}
	}
	return results
}
