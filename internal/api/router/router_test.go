package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smilecare/booking-api/internal/booking"
	"github.com/smilecare/booking-api/internal/cliniccards"
	"github.com/smilecare/booking-api/internal/schedule"
	"github.com/smilecare/booking-api/pkg/logging"
)

type stubCRM struct{}

func (stubCRM) ScheduleSpaces(ctx context.Context, from, to string) ([]cliniccards.ScheduleSpace, error) {
	return nil, nil
}

func (stubCRM) Visits(ctx context.Context, from, to string) ([]cliniccards.Visit, error) {
	return nil, nil
}

func (stubCRM) CreatePatient(ctx context.Context, p cliniccards.NewPatient) (string, error) {
	return "patient-1", nil
}

func (stubCRM) CreateVisit(ctx context.Context, v cliniccards.NewVisit) (string, error) {
	return "visit-1", nil
}

type stubProxy struct{}

func (stubProxy) Cabinets(ctx context.Context) (json.RawMessage, error) {
	return json.RawMessage(`{"data":[]}`), nil
}
func (stubProxy) Staff(ctx context.Context) (json.RawMessage, error) {
	return json.RawMessage(`{"data":[]}`), nil
}
func (stubProxy) Patient(ctx context.Context, id string) (json.RawMessage, error) {
	return json.RawMessage(`{"data":{}}`), nil
}
func (stubProxy) ScheduleSpacesRaw(ctx context.Context, from, to string) (json.RawMessage, error) {
	return json.RawMessage(`{"data":[]}`), nil
}
func (stubProxy) VisitsRaw(ctx context.Context, from, to string) (json.RawMessage, error) {
	return json.RawMessage(`{"data":[]}`), nil
}
func (stubProxy) Connected() bool { return true }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.Default()
	service := booking.NewService(stubCRM{}, schedule.Params{
		Room1ID:       "cab1",
		Room2ID:       "cab2",
		ProviderIDs:   []string{"doc1"},
		WorkStartHour: 9,
		WorkEndHour:   19,
		SlotMinutes:   30,
	}, logger, nil)

	reg := prometheus.NewRegistry()
	cfg := &Config{
		Logger:             logger,
		BookingHandler:     booking.NewHandler(service, stubProxy{}, logger),
		MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: []string{"*"},
	}
	return New(cfg)
}

func TestRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if resp["status"] != "OK" {
		t.Errorf("expected status 'OK', got %q", resp["status"])
	}
}

func TestRouterAvailableTimes(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/available-times/2025-10-17", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "availableSlots") {
		t.Errorf("expected availability payload, got %s", rr.Body.String())
	}
}

func TestRouterBookAppointment(t *testing.T) {
	router := newTestRouter(t)

	body := `{"firstName":"Olena","lastName":"K","phone":"380671234567","appointmentDate":"2025-10-17","appointmentTime":"10:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/book-appointment", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
}
