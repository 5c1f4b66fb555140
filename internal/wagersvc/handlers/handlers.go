package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"

	"github.com/greenside/wager-services/internal/wagersvc/service"
	"github.com/greenside/wager-services/internal/wagersvc/store"
)

type Handler struct {
	tokenAuth         *jwtauth.JWTAuth
	finalizeService   *service.FinalizeService
	roundService      *service.RoundService
	settlementService *service.SettlementService
}

func NewHandler(finalize *service.FinalizeService, rounds *service.RoundService,
	settlements *service.SettlementService) *Handler {
	return &Handler{
		finalizeService:   finalize,
		roundService:      rounds,
		settlementService: settlements,
	}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	json.NewEncoder(w).Encode(rsp)
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "wager service is running",
		Code:    200,
	}
	json.NewEncoder(w).Encode(rsp)
}

// FinalizeRoundHandler settles every game of a round exactly once. A lost
// race is reported as success: the round is settled either way.
func (h *Handler) FinalizeRoundHandler(w http.ResponseWriter, r *http.Request) {
	roundID, err := strconv.ParseInt(chi.URLParam(r, "roundID"), 10, 64)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid round id"})
		return
	}

	summary, err := h.finalizeService.FinalizeRound(r.Context(), roundID)
	switch {
	case err == nil:
		h.CreateResponse(w, Response{Code: http.StatusOK, Message: "round finalized", Data: summary})
	case service.IsAlreadyFinalized(err):
		h.CreateResponse(w, Response{Code: http.StatusOK, Message: "round already finalized"})
	case errors.Is(err, store.ErrRoundNotFound):
		h.CreateResponse(w, Response{Code: http.StatusNotFound, Error: "round not found"})
	case errors.Is(err, service.ErrSettlementCapExceeded) || errors.Is(err, service.ErrAggregateCapExceeded):
		h.CreateResponse(w, Response{Code: http.StatusUnprocessableEntity, Error: err.Error()})
	default:
		log.Errorf("Error [FinalizeService.FinalizeRound] %s", err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "failed to finalize round"})
	}
}

// GetRoundHandler returns the round with its holes, players and games, the
// same graph finalization computes on.
func (h *Handler) GetRoundHandler(w http.ResponseWriter, r *http.Request) {
	roundID, err := strconv.ParseInt(chi.URLParam(r, "roundID"), 10, 64)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid round id"})
		return
	}

	round, err := h.roundService.LoadRoundGraph(r.Context(), roundID)
	if err != nil {
		log.Errorf("Error [RoundService.LoadRoundGraph] %s", err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "failed to load round"})
		return
	}
	if round == nil {
		h.CreateResponse(w, Response{Code: http.StatusNotFound, Error: "round not found"})
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: round})
}

// GetGameResultHandler returns the persisted per-player nets for one game.
// Empty until the round has been finalized.
func (h *Handler) GetGameResultHandler(w http.ResponseWriter, r *http.Request) {
	gameID, err := strconv.ParseInt(chi.URLParam(r, "gameID"), 10, 64)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid game id"})
		return
	}

	results, err := h.roundService.GetGameResults(r.Context(), gameID)
	if err != nil {
		log.Errorf("Error [RoundService.GetGameResults] %s", err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "failed to load game results"})
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: results})
}

func (h *Handler) GetSettlementsHandler(w http.ResponseWriter, r *http.Request) {
	roundID, err := strconv.ParseInt(chi.URLParam(r, "roundID"), 10, 64)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid round id"})
		return
	}

	settlements, err := h.settlementService.GetRoundSettlements(r.Context(), roundID)
	if err != nil {
		log.Errorf("Error [SettlementService.GetRoundSettlements] %s", err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "failed to load settlements"})
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: settlements})
}

// GetNetPositionHandler reports what a golfer is owed minus what they owe
// across everything not yet settled.
func (h *Handler) GetNetPositionHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid user id"})
		return
	}

	net, err := h.settlementService.GetNetPosition(r.Context(), userID)
	if err != nil {
		log.Errorf("Error [SettlementService.GetNetPosition] %s", err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "failed to load net position"})
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: map[string]interface{}{
		"user_id":      userID,
		"net_position": net,
	}})
}

// MarkPaidHandler is the payer half of settlement confirmation.
func (h *Handler) MarkPaidHandler(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.settlementService.MarkPaid)
}

// MarkSettledHandler is the payee half of settlement confirmation.
func (h *Handler) MarkSettledHandler(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.settlementService.MarkSettled)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request,
	fn func(ctx context.Context, settlementID, userID int64) error) {

	settlementID, err := strconv.ParseInt(chi.URLParam(r, "settlementID"), 10, 64)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid settlement id"})
		return
	}

	var body struct {
		UserID int64 `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.UserID == 0 {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "user_id required"})
		return
	}

	if err := fn(r.Context(), settlementID, body.UserID); err != nil {
		if errors.Is(err, store.ErrInvalidTransition) {
			h.CreateResponse(w, Response{Code: http.StatusConflict, Error: "settlement not in a state this user can move"})
			return
		}
		log.Errorf("Error updating settlement %d: %s", settlementID, err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "failed to update settlement"})
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Message: "settlement updated"})
}
