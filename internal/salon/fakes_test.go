package salon

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	redisclient "github.com/glowdesk/salon-backend/internal/redis"
)

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func strPtr(s string) *string { return &s }

// fakeLocker runs the critical section inline and counts acquisitions. With
// contended set it refuses the lock, simulating a concurrent booking in
// flight.
type fakeLocker struct {
	mu        sync.Mutex
	acquired  int
	contended bool
	lastStaff uuid.UUID
	lastDay   time.Time
}

func (l *fakeLocker) WithBookingLock(ctx context.Context, staffID uuid.UUID, day time.Time, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	l.acquired++
	l.lastStaff = staffID
	l.lastDay = day
	contended := l.contended
	l.mu.Unlock()

	if contended {
		return redisclient.ErrLockNotAcquired
	}
	return fn(ctx)
}

type fakeCustomerRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{items: make(map[uuid.UUID]Customer)}
}

func (r *fakeCustomerRepo) Insert(_ context.Context, c *Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[c.ID] = *c
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return nil, ErrCustomerNotFound
	}
	return &c, nil
}

func (r *fakeCustomerRepo) GetByEmail(_ context.Context, email string) (*Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.items {
		if strings.EqualFold(c.Email, email) {
			out := c
			return &out, nil
		}
	}
	return nil, ErrCustomerNotFound
}

func (r *fakeCustomerRepo) List(_ context.Context, limit int) ([]Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Customer, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeCustomerRepo) SearchByName(_ context.Context, term string, limit int) ([]Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Customer, 0)
	for _, c := range r.items {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(term)) {
			out = append(out, c)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, c *Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID]; !ok {
		return ErrCustomerNotFound
	}
	r.items[c.ID] = *c
	return nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeCustomerRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items), nil
}

type fakeStaffRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]Staff
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{items: make(map[uuid.UUID]Staff)}
}

func (r *fakeStaffRepo) Insert(_ context.Context, s *Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[s.ID] = *s
	return nil
}

func (r *fakeStaffRepo) GetByID(_ context.Context, id uuid.UUID) (*Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[id]
	if !ok {
		return nil, ErrStaffNotFound
	}
	return &s, nil
}

func (r *fakeStaffRepo) GetByEmail(_ context.Context, email string) (*Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.items {
		if strings.EqualFold(s.Email, email) {
			out := s
			return &out, nil
		}
	}
	return nil, ErrStaffNotFound
}

func (r *fakeStaffRepo) all() []Staff {
	out := make([]Staff, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *fakeStaffRepo) List(_ context.Context, limit int) ([]Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.all()
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeStaffRepo) ListActive(_ context.Context, limit int) ([]Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Staff, 0)
	for _, s := range r.all() {
		if s.IsActive {
			out = append(out, s)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeStaffRepo) ListByRole(_ context.Context, role string, activeOnly bool, limit int) ([]Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Staff, 0)
	for _, s := range r.all() {
		if !strings.EqualFold(s.Role, role) {
			continue
		}
		if activeOnly && !s.IsActive {
			continue
		}
		out = append(out, s)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeStaffRepo) ListBySpecialty(_ context.Context, specialty string, limit int) ([]Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Staff, 0)
	for _, s := range r.all() {
		for _, sp := range s.Specialties {
			if strings.EqualFold(sp, specialty) {
				out = append(out, s)
				break
			}
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeStaffRepo) SearchByName(_ context.Context, term string, limit int) ([]Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Staff, 0)
	for _, s := range r.all() {
		if strings.Contains(strings.ToLower(s.Name), strings.ToLower(term)) {
			out = append(out, s)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeStaffRepo) Roles(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]struct{})
	roles := make([]string, 0)
	for _, s := range r.all() {
		key := strings.ToLower(s.Role)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		roles = append(roles, s.Role)
	}
	sort.Strings(roles)
	return roles, nil
}

func (r *fakeStaffRepo) Update(_ context.Context, s *Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[s.ID]; !ok {
		return ErrStaffNotFound
	}
	r.items[s.ID] = *s
	return nil
}

func (r *fakeStaffRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeStaffRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items), nil
}

func (r *fakeStaffRepo) CountActive(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.items {
		if s.IsActive {
			n++
		}
	}
	return n, nil
}

type fakeServiceRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]Service
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{items: make(map[uuid.UUID]Service)}
}

func (r *fakeServiceRepo) Insert(_ context.Context, s *Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[s.ID] = *s
	return nil
}

func (r *fakeServiceRepo) GetByID(_ context.Context, id uuid.UUID) (*Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	return &s, nil
}

func (r *fakeServiceRepo) all() []Service {
	out := make([]Service, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *fakeServiceRepo) List(_ context.Context, limit int) ([]Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.all()
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeServiceRepo) ListActive(_ context.Context, limit int) ([]Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Service, 0)
	for _, s := range r.all() {
		if s.IsActive {
			out = append(out, s)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeServiceRepo) ListByCategory(_ context.Context, category string, activeOnly bool, limit int) ([]Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Service, 0)
	for _, s := range r.all() {
		if !strings.EqualFold(s.Category, category) {
			continue
		}
		if activeOnly && !s.IsActive {
			continue
		}
		out = append(out, s)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeServiceRepo) SearchByName(_ context.Context, term string, limit int) ([]Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Service, 0)
	for _, s := range r.all() {
		if strings.Contains(strings.ToLower(s.Name), strings.ToLower(term)) {
			out = append(out, s)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeServiceRepo) Categories(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, s := range r.all() {
		key := strings.ToLower(s.Category)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		categories = append(categories, s.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

func (r *fakeServiceRepo) Update(_ context.Context, s *Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[s.ID]; !ok {
		return ErrServiceNotFound
	}
	r.items[s.ID] = *s
	return nil
}

func (r *fakeServiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeServiceRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items), nil
}

func (r *fakeServiceRepo) CountActive(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.items {
		if s.IsActive {
			n++
		}
	}
	return n, nil
}

type fakeAppointmentRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{items: make(map[uuid.UUID]Appointment)}
}

func (r *fakeAppointmentRepo) Insert(_ context.Context, a *Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[a.ID] = *a
	return nil
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	return &a, nil
}

func (r *fakeAppointmentRepo) all() []Appointment {
	out := make([]Appointment, 0, len(r.items))
	for _, a := range r.items {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Time < out[j].Time
	})
	return out
}

func (r *fakeAppointmentRepo) filter(limit int, keep func(*Appointment) bool) []Appointment {
	out := make([]Appointment, 0)
	for _, a := range r.all() {
		a := a
		if keep(&a) {
			out = append(out, a)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (r *fakeAppointmentRepo) List(_ context.Context, limit int) ([]Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter(limit, func(*Appointment) bool { return true }), nil
}

func (r *fakeAppointmentRepo) ByCustomer(_ context.Context, customerID uuid.UUID, limit int) ([]Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter(limit, func(a *Appointment) bool { return a.CustomerID == customerID }), nil
}

func (r *fakeAppointmentRepo) ByStaff(_ context.Context, staffID uuid.UUID, limit int) ([]Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter(limit, func(a *Appointment) bool { return a.StaffID == staffID }), nil
}

func (r *fakeAppointmentRepo) ByService(_ context.Context, serviceID uuid.UUID, limit int) ([]Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter(limit, func(a *Appointment) bool { return a.ServiceID == serviceID }), nil
}

func (r *fakeAppointmentRepo) ByDate(_ context.Context, date time.Time, limit int) ([]Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter(limit, func(a *Appointment) bool { return a.Date.Equal(date) }), nil
}

func (r *fakeAppointmentRepo) ByDateAndStaff(_ context.Context, date time.Time, staffID uuid.UUID, limit int) ([]Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter(limit, func(a *Appointment) bool {
		return a.Date.Equal(date) && a.StaffID == staffID
	}), nil
}

func (r *fakeAppointmentRepo) ByStatus(_ context.Context, status AppointmentStatus, limit int) ([]Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter(limit, func(a *Appointment) bool { return a.Status == status }), nil
}

func (r *fakeAppointmentRepo) Upcoming(_ context.Context, limit int) ([]Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	today := Today()
	return r.filter(limit, func(a *Appointment) bool {
		return !a.Date.Before(today) && (a.Status == StatusScheduled || a.Status == StatusConfirmed)
	}), nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, a *Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[a.ID]; !ok {
		return ErrAppointmentNotFound
	}
	r.items[a.ID] = *a
	return nil
}

func (r *fakeAppointmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeAppointmentRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items), nil
}

func (r *fakeAppointmentRepo) CountByStatus(_ context.Context, status AppointmentStatus) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, a := range r.items {
		if a.Status == status {
			n++
		}
	}
	return n, nil
}
