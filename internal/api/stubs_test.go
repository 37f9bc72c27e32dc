package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/glowdesk/salon-backend/internal/salon"
)

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

// withURLParams attaches chi route parameters to a test request.
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func doRequest(h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

// stubCustomers implements CustomerAPI through optional function fields.
type stubCustomers struct {
	create       func(context.Context, salon.CustomerCreate) (*salon.Customer, error)
	getByID      func(context.Context, uuid.UUID) (*salon.Customer, error)
	getByEmail   func(context.Context, string) (*salon.Customer, error)
	list         func(context.Context, int) ([]salon.Customer, error)
	update       func(context.Context, uuid.UUID, salon.CustomerUpdate) (*salon.Customer, error)
	delete       func(context.Context, uuid.UUID) error
	searchByName func(context.Context, string, int) ([]salon.Customer, error)
	count        func(context.Context) (int, error)
}

func (s *stubCustomers) Create(ctx context.Context, in salon.CustomerCreate) (*salon.Customer, error) {
	return s.create(ctx, in)
}

func (s *stubCustomers) GetByID(ctx context.Context, id uuid.UUID) (*salon.Customer, error) {
	return s.getByID(ctx, id)
}

func (s *stubCustomers) GetByEmail(ctx context.Context, email string) (*salon.Customer, error) {
	return s.getByEmail(ctx, email)
}

func (s *stubCustomers) List(ctx context.Context, limit int) ([]salon.Customer, error) {
	return s.list(ctx, limit)
}

func (s *stubCustomers) Update(ctx context.Context, id uuid.UUID, in salon.CustomerUpdate) (*salon.Customer, error) {
	return s.update(ctx, id, in)
}

func (s *stubCustomers) Delete(ctx context.Context, id uuid.UUID) error {
	return s.delete(ctx, id)
}

func (s *stubCustomers) SearchByName(ctx context.Context, term string, limit int) ([]salon.Customer, error) {
	return s.searchByName(ctx, term, limit)
}

func (s *stubCustomers) Count(ctx context.Context) (int, error) {
	return s.count(ctx)
}

// stubAppointments implements AppointmentAPI through optional function fields.
type stubAppointments struct {
	create         func(context.Context, salon.AppointmentCreate) (*salon.Appointment, error)
	getByID        func(context.Context, uuid.UUID) (*salon.Appointment, error)
	update         func(context.Context, uuid.UUID, salon.AppointmentUpdate) (*salon.Appointment, error)
	updateStatus   func(context.Context, uuid.UUID, salon.AppointmentStatus) (*salon.Appointment, error)
	delete         func(context.Context, uuid.UUID) error
	list           func(context.Context, int) ([]salon.Appointment, error)
	byCustomer     func(context.Context, uuid.UUID, int) ([]salon.Appointment, error)
	byStaff        func(context.Context, uuid.UUID, int) ([]salon.Appointment, error)
	byService      func(context.Context, uuid.UUID, int) ([]salon.Appointment, error)
	byDate         func(context.Context, time.Time, int) ([]salon.Appointment, error)
	byDateAndStaff func(context.Context, time.Time, uuid.UUID, int) ([]salon.Appointment, error)
	byStatus       func(context.Context, salon.AppointmentStatus, int) ([]salon.Appointment, error)
	upcoming       func(context.Context, int) ([]salon.Appointment, error)
	today          func(context.Context, int) ([]salon.Appointment, error)
	count          func(context.Context) (int, error)
	countByStatus  func(context.Context, salon.AppointmentStatus) (int, error)
}

func (s *stubAppointments) Create(ctx context.Context, in salon.AppointmentCreate) (*salon.Appointment, error) {
	return s.create(ctx, in)
}

func (s *stubAppointments) GetByID(ctx context.Context, id uuid.UUID) (*salon.Appointment, error) {
	return s.getByID(ctx, id)
}

func (s *stubAppointments) Update(ctx context.Context, id uuid.UUID, in salon.AppointmentUpdate) (*salon.Appointment, error) {
	return s.update(ctx, id, in)
}

func (s *stubAppointments) UpdateStatus(ctx context.Context, id uuid.UUID, status salon.AppointmentStatus) (*salon.Appointment, error) {
	return s.updateStatus(ctx, id, status)
}

func (s *stubAppointments) Delete(ctx context.Context, id uuid.UUID) error {
	return s.delete(ctx, id)
}

func (s *stubAppointments) List(ctx context.Context, limit int) ([]salon.Appointment, error) {
	return s.list(ctx, limit)
}

func (s *stubAppointments) ByCustomer(ctx context.Context, id uuid.UUID, limit int) ([]salon.Appointment, error) {
	return s.byCustomer(ctx, id, limit)
}

func (s *stubAppointments) ByStaff(ctx context.Context, id uuid.UUID, limit int) ([]salon.Appointment, error) {
	return s.byStaff(ctx, id, limit)
}

func (s *stubAppointments) ByService(ctx context.Context, id uuid.UUID, limit int) ([]salon.Appointment, error) {
	return s.byService(ctx, id, limit)
}

func (s *stubAppointments) ByDate(ctx context.Context, date time.Time, limit int) ([]salon.Appointment, error) {
	return s.byDate(ctx, date, limit)
}

func (s *stubAppointments) ByDateAndStaff(ctx context.Context, date time.Time, id uuid.UUID, limit int) ([]salon.Appointment, error) {
	return s.byDateAndStaff(ctx, date, id, limit)
}

func (s *stubAppointments) ByStatus(ctx context.Context, status salon.AppointmentStatus, limit int) ([]salon.Appointment, error) {
	return s.byStatus(ctx, status, limit)
}

func (s *stubAppointments) Upcoming(ctx context.Context, limit int) ([]salon.Appointment, error) {
	return s.upcoming(ctx, limit)
}

func (s *stubAppointments) Today(ctx context.Context, limit int) ([]salon.Appointment, error) {
	return s.today(ctx, limit)
}

func (s *stubAppointments) Count(ctx context.Context) (int, error) {
	return s.count(ctx)
}

func (s *stubAppointments) CountByStatus(ctx context.Context, status salon.AppointmentStatus) (int, error) {
	return s.countByStatus(ctx, status)
}
