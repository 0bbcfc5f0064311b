package handler

import (
	"net/http"
	"time"

	"github.com/nekosui/petbot/internal/logger"
	"github.com/nekosui/petbot/internal/petgame"
)

// UserRequest is the shared body of commands that only need an identity.
type UserRequest struct {
	UserID string `json:"user_id" validate:"required,max=100"`
}

// DropRequest is the body of a direct collectible drop attempt.
type DropRequest struct {
	UserID      string `json:"user_id" validate:"required,max=100"`
	Interactive bool   `json:"interactive"`
}

// PetHandler serves the economy command endpoints.
type PetHandler struct {
	svc petgame.Service
}

// NewPetHandler creates a handler over the command service.
func NewPetHandler(svc petgame.Service) *PetHandler {
	return &PetHandler{svc: svc}
}

// CheckIn handles the daily check-in endpoint.
func (h *PetHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Check-in"); err != nil {
		return
	}

	res, err := h.svc.CheckIn(r.Context(), req.UserID, time.Now())
	if err != nil {
		h.fail(w, r, "Check-in", err, ErrMsgCheckInFailed)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// Feed handles the feeding endpoint.
func (h *PetHandler) Feed(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Feed"); err != nil {
		return
	}

	res, err := h.svc.Feed(r.Context(), req.UserID, time.Now())
	if err != nil {
		h.fail(w, r, "Feed", err, ErrMsgFeedFailed)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// Divine handles the daily divination endpoint.
func (h *PetHandler) Divine(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Divine"); err != nil {
		return
	}

	res, err := h.svc.Divine(r.Context(), req.UserID, time.Now())
	if err != nil {
		h.fail(w, r, "Divine", err, ErrMsgDivineFailed)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// Fortune handles the fortune endpoint.
func (h *PetHandler) Fortune(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Fortune"); err != nil {
		return
	}

	res, err := h.svc.Fortune(r.Context(), req.UserID)
	if err != nil {
		h.fail(w, r, "Fortune", err, ErrMsgFortuneFailed)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// ExtraCheckIn handles the rated extra check-in endpoint.
func (h *PetHandler) ExtraCheckIn(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Extra check-in"); err != nil {
		return
	}

	res, err := h.svc.ExtraCheckIn(r.Context(), req.UserID, time.Now())
	if err != nil {
		h.fail(w, r, "Extra check-in", err, ErrMsgCheckInFailed)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// Drop handles the direct collectible drop endpoint.
func (h *PetHandler) Drop(w http.ResponseWriter, r *http.Request) {
	var req DropRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Drop"); err != nil {
		return
	}

	res, err := h.svc.AttemptCollectibleDrop(r.Context(), req.UserID, req.Interactive)
	if err != nil {
		h.fail(w, r, "Drop", err, ErrMsgDropFailed)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// Balance handles the read-only balance query.
func (h *PetHandler) Balance(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	res, err := h.svc.GetBalance(r.Context(), userID)
	if err != nil {
		h.fail(w, r, "Balance", err, ErrMsgBalanceFailed)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// Progress handles the read-only collection progress query.
func (h *PetHandler) Progress(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	res, err := h.svc.GetCollectionProgress(r.Context(), userID)
	if err != nil {
		h.fail(w, r, "Progress", err, ErrMsgProgressFailed)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *PetHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error, fallback string) {
	logger.FromContext(r.Context()).Error(op+" failed", "error", err)
	status, msg := mapServiceErrorToUserMessage(err)
	if msg == ErrMsgUnknownError {
		msg = fallback
	}
	respondError(w, status, msg)
}
