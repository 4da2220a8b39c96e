package booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/smilecare/booking-api/internal/cliniccards"
	"github.com/smilecare/booking-api/internal/schedule"
	"github.com/smilecare/booking-api/pkg/logging"
)

// CRMProxy is the slice of the ClinicCards client used by the raw
// pass-through endpoints.
type CRMProxy interface {
	Cabinets(ctx context.Context) (json.RawMessage, error)
	Staff(ctx context.Context) (json.RawMessage, error)
	Patient(ctx context.Context, id string) (json.RawMessage, error)
	ScheduleSpacesRaw(ctx context.Context, from, to string) (json.RawMessage, error)
	VisitsRaw(ctx context.Context, from, to string) (json.RawMessage, error)
	Connected() bool
}

// Handler handles HTTP requests for availability and booking.
type Handler struct {
	service *Service
	proxy   CRMProxy
	logger  *logging.Logger
}

// NewHandler creates a new booking handler.
func NewHandler(service *Service, proxy CRMProxy, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service: service,
		proxy:   proxy,
		logger:  logger,
	}
}

// GetAvailableTimes handles GET /api/available-times/{date}.
func (h *Handler) GetAvailableTimes(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	result, err := h.service.Availability(r.Context(), date)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// BookAppointment handles POST /api/book-appointment.
func (h *Handler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode booking request", "error", err)
		writeJSON(w, http.StatusBadRequest, errorBody("Invalid request body"))
		return
	}

	conf, err := h.service.Book(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Appointment booked successfully",
		"data":    conf,
	})
}

// Health handles GET /api/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "OK",
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"crmConnected": h.proxy != nil && h.proxy.Connected(),
	})
}

// Cabinets handles GET /api/cabinets.
func (h *Handler) Cabinets(w http.ResponseWriter, r *http.Request) {
	h.passthrough(w, func(ctx context.Context) (json.RawMessage, error) {
		return h.proxy.Cabinets(ctx)
	}, r)
}

// Staff handles GET /api/staff.
func (h *Handler) Staff(w http.ResponseWriter, r *http.Request) {
	h.passthrough(w, func(ctx context.Context) (json.RawMessage, error) {
		return h.proxy.Staff(ctx)
	}, r)
}

// Patient handles GET /api/patients/{id}.
func (h *Handler) Patient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.passthrough(w, func(ctx context.Context) (json.RawMessage, error) {
		return h.proxy.Patient(ctx, id)
	}, r)
}

// ScheduleSpaces handles GET /api/schedule-spaces?from&to.
func (h *Handler) ScheduleSpaces(w http.ResponseWriter, r *http.Request) {
	from, to, ok := rangeParams(w, r)
	if !ok {
		return
	}
	h.passthrough(w, func(ctx context.Context) (json.RawMessage, error) {
		return h.proxy.ScheduleSpacesRaw(ctx, from, to)
	}, r)
}

// Visits handles GET /api/visits?from&to.
func (h *Handler) Visits(w http.ResponseWriter, r *http.Request) {
	from, to, ok := rangeParams(w, r)
	if !ok {
		return
	}
	h.passthrough(w, func(ctx context.Context) (json.RawMessage, error) {
		return h.proxy.VisitsRaw(ctx, from, to)
	}, r)
}

func (h *Handler) passthrough(w http.ResponseWriter, call func(context.Context) (json.RawMessage, error), r *http.Request) {
	raw, err := call(r.Context())
	if err != nil {
		h.logger.Error("CRM pass-through failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusBadGateway, errorBody("CRM request failed"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var upstreamErr *UpstreamError
	switch {
	case errors.Is(err, ErrInvalidDate), errors.Is(err, ErrInvalidTime), errors.Is(err, ErrMissingFields):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, schedule.ErrNoFreePair):
		writeJSON(w, http.StatusConflict, errorBody("Selected time slot is no longer available"))
	case errors.Is(err, cliniccards.ErrUnexpectedShape):
		h.logger.Error("unexpected CRM response shape", "error", err)
		writeJSON(w, http.StatusBadGateway, errorBody("Unexpected CRM response"))
	case errors.As(err, &upstreamErr):
		h.logger.Error("upstream CRM call failed", "op", upstreamErr.Op, "error", upstreamErr.Err)
		writeJSON(w, http.StatusBadGateway, errorBody("CRM request failed"))
	default:
		h.logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("Internal server error"))
	}
}

func rangeParams(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("from and to are required (YYYY-MM-DD)"))
		return "", "", false
	}
	return from, to, true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}
