package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/staybook/cancellation-risk/internal/application/dto"
	"github.com/staybook/cancellation-risk/internal/application/usecase"
	"github.com/staybook/cancellation-risk/internal/domain/model"
)

const maxRequestBody = 64 << 10

// BookingAssessor runs the AssessBooking use case.
type BookingAssessor interface {
	Execute(ctx context.Context, req dto.AssessBookingRequest) (dto.AssessmentResponse, error)
}

// WatchlistLister runs the ListWatchlist use case.
type WatchlistLister interface {
	Execute(ctx context.Context, limit, offset int) (dto.ListWatchlistResponse, error)
}

// AssessmentHandler serves the assessment and watchlist endpoints.
type AssessmentHandler struct {
	assessBooking BookingAssessor
	listWatchlist WatchlistLister
	logger        *slog.Logger
}

// NewAssessmentHandler creates a new REST handler.
func NewAssessmentHandler(assessBooking BookingAssessor, listWatchlist WatchlistLister, logger *slog.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		assessBooking: assessBooking,
		listWatchlist: listWatchlist,
		logger:        logger,
	}
}

// RegisterRoutes registers the API endpoints on the provided ServeMux.
func (h *AssessmentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/assessments", h.Assess)
	mux.HandleFunc("GET /v1/watchlist", h.ListWatchlist)
}

// ErrorResponse is the JSON body of every error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Assess handles POST /v1/assessments.
func (h *AssessmentHandler) Assess(w http.ResponseWriter, r *http.Request) {
	var req dto.AssessBookingRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.assessBooking.Execute(r.Context(), req)
	if err != nil {
		var pe *model.PredictionError
		switch {
		case errors.Is(err, model.ErrInvalidBooking):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.As(err, &pe):
			writeError(w, http.StatusInternalServerError, pe.Error())
		default:
			h.logger.Error("assessment failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListWatchlist handles GET /v1/watchlist?limit=&offset=.
func (h *AssessmentHandler) ListWatchlist(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid offset")
		return
	}

	resp, err := h.listWatchlist.Execute(r.Context(), limit, offset)
	if err != nil {
		if errors.Is(err, usecase.ErrWatchlistDisabled) {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		h.logger.Error("failed to list watchlist", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func queryInt(r *http.Request, key string) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg})
}
