package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowdesk/salon-backend/internal/salon"
)

type fakeAppointments struct {
	appts []salon.Appointment
	err   error

	gotDate time.Time
}

func (f *fakeAppointments) ByDate(_ context.Context, date time.Time, _ int) ([]salon.Appointment, error) {
	f.gotDate = date
	return f.appts, f.err
}

type fakeCustomers struct {
	byID map[uuid.UUID]*salon.Customer
}

func (f *fakeCustomers) GetByID(_ context.Context, id uuid.UUID) (*salon.Customer, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, salon.ErrCustomerNotFound
}

type fakeServices struct {
	byID map[uuid.UUID]*salon.Service
}

func (f *fakeServices) GetByID(_ context.Context, id uuid.UUID) (*salon.Service, error) {
	if s, ok := f.byID[id]; ok {
		return s, nil
	}
	return nil, salon.ErrServiceNotFound
}

type capturedNotification struct {
	phone string
	body  string
}

type fakeNotifier struct {
	sent    []capturedNotification
	failFor string
}

func (f *fakeNotifier) Notify(_ context.Context, phone, body string) error {
	if phone == f.failFor {
		return errors.New("delivery failed")
	}
	f.sent = append(f.sent, capturedNotification{phone: phone, body: body})
	return nil
}

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func strPtr(s string) *string { return &s }

func makeAppointment(customerID, serviceID uuid.UUID, status salon.AppointmentStatus) salon.Appointment {
	return salon.Appointment{
		ID:         uuid.New(),
		CustomerID: customerID,
		StaffID:    uuid.New(),
		ServiceID:  serviceID,
		Date:       salon.Today().AddDate(0, 0, 1),
		Time:       10 * time.Hour,
		Status:     status,
	}
}

func TestRunSendsForScheduledAndConfirmedOnly(t *testing.T) {
	customerID := uuid.New()
	serviceID := uuid.New()

	appts := &fakeAppointments{appts: []salon.Appointment{
		makeAppointment(customerID, serviceID, salon.StatusScheduled),
		makeAppointment(customerID, serviceID, salon.StatusConfirmed),
		makeAppointment(customerID, serviceID, salon.StatusCancelled),
		makeAppointment(customerID, serviceID, salon.StatusCompleted),
	}}
	customers := &fakeCustomers{byID: map[uuid.UUID]*salon.Customer{
		customerID: {ID: customerID, Name: "Dana", Phone: strPtr("5551234567")},
	}}
	services := &fakeServices{byID: map[uuid.UUID]*salon.Service{
		serviceID: {ID: serviceID, Name: "Haircut"},
	}}
	notifier := &fakeNotifier{}

	svc := NewService(appts, customers, services, notifier, 1, testLogger())
	require.NoError(t, svc.Run(context.Background()))

	assert.Len(t, notifier.sent, 2)
	for _, n := range notifier.sent {
		assert.Equal(t, "5551234567", n.phone)
		assert.Contains(t, n.body, "Dana")
		assert.Contains(t, n.body, "Haircut")
		assert.Contains(t, n.body, "10:00")
	}
}

func TestRunTargetsLeadDay(t *testing.T) {
	appts := &fakeAppointments{}
	svc := NewService(appts, &fakeCustomers{}, &fakeServices{}, &fakeNotifier{}, 3, testLogger())

	require.NoError(t, svc.Run(context.Background()))
	assert.Equal(t, salon.Today().AddDate(0, 0, 3), appts.gotDate)
}

func TestRunSkipsCustomersWithoutPhone(t *testing.T) {
	customerID := uuid.New()
	serviceID := uuid.New()

	appts := &fakeAppointments{appts: []salon.Appointment{
		makeAppointment(customerID, serviceID, salon.StatusScheduled),
	}}
	customers := &fakeCustomers{byID: map[uuid.UUID]*salon.Customer{
		customerID: {ID: customerID, Name: "Quiet"},
	}}
	notifier := &fakeNotifier{}

	svc := NewService(appts, customers, &fakeServices{}, notifier, 1, testLogger())
	require.NoError(t, svc.Run(context.Background()))
	assert.Empty(t, notifier.sent)
}

func TestRunContinuesAfterDeliveryFailure(t *testing.T) {
	failingCustomer := uuid.New()
	okCustomer := uuid.New()
	serviceID := uuid.New()

	appts := &fakeAppointments{appts: []salon.Appointment{
		makeAppointment(failingCustomer, serviceID, salon.StatusScheduled),
		makeAppointment(okCustomer, serviceID, salon.StatusScheduled),
	}}
	customers := &fakeCustomers{byID: map[uuid.UUID]*salon.Customer{
		failingCustomer: {ID: failingCustomer, Name: "A", Phone: strPtr("5550000001")},
		okCustomer:      {ID: okCustomer, Name: "B", Phone: strPtr("5550000002")},
	}}
	notifier := &fakeNotifier{failFor: "5550000001"}

	svc := NewService(appts, customers, &fakeServices{}, notifier, 1, testLogger())
	require.NoError(t, svc.Run(context.Background()))

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "5550000002", notifier.sent[0].phone)
}

func TestRunPropagatesStoreError(t *testing.T) {
	appts := &fakeAppointments{err: errors.New("cassandra down")}
	svc := NewService(appts, &fakeCustomers{}, &fakeServices{}, &fakeNotifier{}, 1, testLogger())

	err := svc.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cassandra down")
}
