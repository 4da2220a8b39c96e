// Package booking orchestrates the availability engine against the
// ClinicCards CRM: it fetches schedule and visit snapshots, runs the
// pure computation, and performs the two-step patient/visit creation on
// booking.
package booking

import (
	"context"
	"regexp"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/smilecare/booking-api/internal/cliniccards"
	"github.com/smilecare/booking-api/internal/observability/metrics"
	"github.com/smilecare/booking-api/internal/schedule"
	"github.com/smilecare/booking-api/pkg/logging"
)

var bookingTracer = otel.Tracer("clinic.internal.booking")

var nonDigits = regexp.MustCompile(`\D`)

// CRM is the slice of the ClinicCards client the service needs.
type CRM interface {
	ScheduleSpaces(ctx context.Context, from, to string) ([]cliniccards.ScheduleSpace, error)
	Visits(ctx context.Context, from, to string) ([]cliniccards.Visit, error)
	CreatePatient(ctx context.Context, p cliniccards.NewPatient) (string, error)
	CreateVisit(ctx context.Context, v cliniccards.NewVisit) (string, error)
}

// Service computes availability and books appointments. It holds no
// state between requests; every call re-fetches its inputs from the CRM.
type Service struct {
	crm     CRM
	params  schedule.Params
	logger  *logging.Logger
	metrics *metrics.BookingMetrics
	now     func() time.Time
}

// NewService constructs a booking service.
func NewService(crm CRM, params schedule.Params, logger *logging.Logger, m *metrics.BookingMetrics) *Service {
	if crm == nil {
		panic("booking: CRM client required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		crm:     crm,
		params:  params,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

// Availability computes the bookable slots and free room/provider pairs
// for one day. The two CRM reads are independent and read-only but are
// issued sequentially; there is nothing to parallelize at this scale.
func (s *Service) Availability(ctx context.Context, date string) (*schedule.Availability, error) {
	ctx, span := bookingTracer.Start(ctx, "booking.availability")
	defer span.End()
	span.SetAttributes(attribute.String("clinic.date", date))

	if !ValidDate(date) {
		s.metrics.ObserveAvailability("invalid")
		return nil, ErrInvalidDate
	}

	spaces, err := s.crm.ScheduleSpaces(ctx, date, date)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveAvailability("upstream_error")
		return nil, upstream("schedule-spaces", err)
	}
	visits, err := s.crm.Visits(ctx, date, date)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveAvailability("upstream_error")
		return nil, upstream("visits", err)
	}

	result := schedule.ComputeAvailability(
		s.params,
		date,
		cliniccards.ScheduleEntries(spaces, date),
		cliniccards.VisitEntries(visits),
	)

	s.metrics.ObserveAvailability("ok")
	s.logger.Info("availability computed", "date", date, "total_slots", result.TotalSlots)
	return &result, nil
}

// Request is an inbound booking request.
type Request struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Phone           string `json:"phone"`
	Email           string `json:"email,omitempty"`
	Gender          string `json:"gender,omitempty"`
	Address         string `json:"address,omitempty"`
	Note            string `json:"note,omitempty"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
}

// Confirmation is the outcome of a successful booking.
type Confirmation struct {
	PatientID       string `json:"patientId"`
	VisitID         string `json:"visitId,omitempty"`
	RoomID          string `json:"roomId"`
	ProviderID      string `json:"providerId"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
	EndTime         string `json:"endTime"`
}

// Book creates the patient record, allocates a free room/provider pair
// against a fresh visit snapshot, and creates the visit.
//
// Patient creation deliberately precedes allocation, mirroring the CRM's
// required call order. When allocation fails the patient record stays
// behind in the CRM; callers see schedule.ErrNoFreePair and can decide
// whether to compensate. The free-pair check and the visit creation are
// not atomic either, so a concurrent booking can still win the slot.
func (s *Service) Book(ctx context.Context, req Request) (*Confirmation, error) {
	ctx, span := bookingTracer.Start(ctx, "booking.book")
	defer span.End()
	span.SetAttributes(
		attribute.String("clinic.date", req.AppointmentDate),
		attribute.String("clinic.slot", req.AppointmentTime),
	)

	if req.FirstName == "" || req.LastName == "" || req.Phone == "" ||
		req.AppointmentDate == "" || req.AppointmentTime == "" {
		s.metrics.ObserveBooking("invalid")
		return nil, ErrMissingFields
	}
	if !ValidDate(req.AppointmentDate) {
		s.metrics.ObserveBooking("invalid")
		return nil, ErrInvalidDate
	}
	slotStart, err := schedule.ParseClock(req.AppointmentTime)
	if err != nil {
		s.metrics.ObserveBooking("invalid")
		return nil, ErrInvalidTime
	}

	note := req.Note
	if note == "" {
		note = "Booked via website " + s.now().Format("2006-01-02 15:04")
	}
	patientID, err := s.crm.CreatePatient(ctx, cliniccards.NewPatient{
		Firstname:        req.FirstName,
		Lastname:         req.LastName,
		Phone:            nonDigits.ReplaceAllString(req.Phone, ""),
		Email:            req.Email,
		Gender:           req.Gender,
		Address:          req.Address,
		Note:             note,
		DateCreated:      s.now().Format("2006-01-02"),
		PreferredContact: "PHONE",
	})
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveBooking("upstream_error")
		return nil, upstream("create patient", err)
	}

	visits, err := s.crm.Visits(ctx, req.AppointmentDate, req.AppointmentDate)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveBooking("upstream_error")
		return nil, upstream("visits", err)
	}

	pair, err := schedule.Allocate(s.params, req.AppointmentTime, cliniccards.VisitEntries(visits))
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveBooking("slot_taken")
		s.metrics.ObserveAllocationFailure()
		s.logger.Warn("allocation failed, patient record left in CRM",
			"patient_id", patientID,
			"date", req.AppointmentDate,
			"slot", req.AppointmentTime,
		)
		return nil, err
	}

	endTime := schedule.FormatClock(slotStart + s.params.SlotMinutes)
	visitID, err := s.crm.CreateVisit(ctx, cliniccards.NewVisit{
		Status:    "PLANNED",
		PatientID: patientID,
		CabinetID: pair.RoomID,
		DoctorID:  pair.ProviderID,
		Note:      "Website booking. Patient: " + req.FirstName + " " + req.LastName + ", phone: " + req.Phone + ", email: " + req.Email,
		Date:      req.AppointmentDate,
		TimeStart: req.AppointmentTime,
		TimeEnd:   endTime,
	})
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveBooking("upstream_error")
		return nil, upstream("create visit", err)
	}

	s.metrics.ObserveBooking("ok")
	s.logger.Info("appointment booked",
		"patient_id", patientID,
		"visit_id", visitID,
		"room_id", pair.RoomID,
		"provider_id", pair.ProviderID,
		"date", req.AppointmentDate,
		"slot", req.AppointmentTime,
	)
	return &Confirmation{
		PatientID:       patientID,
		VisitID:         visitID,
		RoomID:          pair.RoomID,
		ProviderID:      pair.ProviderID,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		EndTime:         endTime,
	}, nil
}

// ValidDate reports whether the value strictly matches YYYY-MM-DD.
func ValidDate(date string) bool {
	t, err := time.Parse("2006-01-02", date)
	return err == nil && t.Format("2006-01-02") == date
}
