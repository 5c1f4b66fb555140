package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"

	"github.com/greenside/wager-services/internal/statsvc/store"
)

type Handler struct {
	resultStore *store.ResultStore
}

func NewHandler(resultStore *store.ResultStore) *Handler {
	return &Handler{resultStore: resultStore}
}

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	response := Response{
		Status:  "success",
		Message: "stats service is healthy",
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetPlayerStatsHandler returns a golfer's career totals across archived
// game results.
func (h *Handler) GetPlayerStatsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	stats, err := h.resultStore.GetPlayerStats(r.Context(), userID)
	if err != nil {
		log.Errorf("Error [GetPlayerStats] user %d: %s", userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	response := Response{
		Status:  "success",
		Message: "player stats",
		Data:    stats,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
