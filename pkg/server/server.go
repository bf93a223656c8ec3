package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/richard-senior/podds/internal/logger"
	"github.com/richard-senior/podds/pkg/podds"
)

// DataProvider resolves the fully-assembled engine input for a fixture.
// Satisfied by *store.Store.
type DataProvider interface {
	BuildPredictionInput(leagueID int, season, homeID, awayID string, formMatches int) (*podds.PredictionInput, error)
}

// APIHandler handles HTTP requests for predictions
type APIHandler struct {
	provider    DataProvider
	pin         string
	formMatches int
}

// NewAPIHandler creates a new API handler. An empty pin disables the
// shared-secret check.
func NewAPIHandler(provider DataProvider, pin string, formMatches int) *APIHandler {
	return &APIHandler{
		provider:    provider,
		pin:         pin,
		formMatches: formMatches,
	}
}

// SetupRoutes configures the HTTP routes
func (h *APIHandler) SetupRoutes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/health", h.handleHealth).Methods("GET")
	r.Handle("/api/predict", h.requirePin(http.HandlerFunc(h.handlePredict))).Methods("GET")

	return r
}

// requirePin checks the shared-secret header on protected routes
func (h *APIHandler) requirePin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.pin != "" && r.Header.Get("X-Podds-Pin") != h.pin {
			http.Error(w, "invalid pin", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *APIHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// handlePredict resolves the fixture named by the query parameters, runs
// the prediction pipeline and returns the full structured result. Optional
// parameters rho, line, btts and lambda3 override the model defaults.
func (h *APIHandler) handlePredict(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	leagueID, err := strconv.Atoi(query.Get("league"))
	if err != nil {
		http.Error(w, "invalid or missing league id", http.StatusBadRequest)
		return
	}
	season := query.Get("season")
	homeID := query.Get("home")
	awayID := query.Get("away")
	if season == "" || homeID == "" || awayID == "" {
		http.Error(w, "season, home and away are required", http.StatusBadRequest)
		return
	}

	input, err := h.provider.BuildPredictionInput(leagueID, season, homeID, awayID, h.formMatches)
	if err != nil {
		logger.Warn("Could not assemble prediction input", err)
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	params := podds.DefaultParams()
	if v, ok := floatParam(query.Get("rho")); ok {
		params.Rho = v
	}
	if v, ok := floatParam(query.Get("line")); ok {
		params.GoalLine = v
	}
	if v, ok := floatParam(query.Get("btts")); ok {
		params.BTTSOdds = v
	}
	if v, ok := floatParam(query.Get("lambda3")); ok {
		params.Lambda3 = &v
	}
	input.Params = params

	writeJSON(w, podds.Predict(input))
}

func floatParam(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", err)
	}
}
