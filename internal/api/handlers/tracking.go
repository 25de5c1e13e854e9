package handlers

import (
	"context"
	"courier-tracking-service/internal/api/dto"
	"courier-tracking-service/internal/domain"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// Tracker is the facade served over HTTP.
type Tracker interface {
	Login(ctx context.Context, email, password string) (domain.Session, error)
	SystemState(ctx context.Context) (domain.GlobalState, bool, error)
	StateAt(ctx context.Context, tick int) domain.GlobalState
	Configuration(ctx context.Context) (domain.Configuration, bool, error)
	Paths(ctx context.Context) ([]domain.DeliveryPath, bool, error)
}

type TrackingHandler struct {
	Svc Tracker
}

func (h *TrackingHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.Svc.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, domain.ErrWrongCredentials) {
		writeError(w, r, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		h.fail(w, r, "login", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.LoginResponse{Token: session.Token, Role: string(session.Role)})
}

func (h *TrackingHandler) State(w http.ResponseWriter, r *http.Request) {
	state, ok, err := h.Svc.SystemState(r.Context())
	if err != nil {
		h.fail(w, r, "system state", err)
		return
	}
	if !ok {
		writeNoData(w, r)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromState(state))
}

// StateAt reconstructs the world at the tick given in the path.
func (h *TrackingHandler) StateAt(w http.ResponseWriter, r *http.Request) {
	tick, err := strconv.Atoi(chi.URLParam(r, "tick"))
	if err != nil || tick < 0 {
		writeError(w, r, http.StatusBadRequest, "tick must be a non-negative integer")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromState(h.Svc.StateAt(r.Context(), tick)))
}

func (h *TrackingHandler) Configuration(w http.ResponseWriter, r *http.Request) {
	cfg, ok, err := h.Svc.Configuration(r.Context())
	if err != nil {
		h.fail(w, r, "configuration", err)
		return
	}
	if !ok {
		writeNoData(w, r)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromConfiguration(cfg))
}

func (h *TrackingHandler) Paths(w http.ResponseWriter, r *http.Request) {
	paths, ok, err := h.Svc.Paths(r.Context())
	if err != nil {
		h.fail(w, r, "paths", err)
		return
	}
	if !ok {
		writeNoData(w, r)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromPaths(paths))
}

func (h *TrackingHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, context.Canceled) {
		// client went away; nothing useful to send
		return
	}
	log.Printf("%s failed: %v", op, err)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

func writeNoData(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Retry-After", "1")
	writeError(w, r, http.StatusServiceUnavailable, "no data")
}
