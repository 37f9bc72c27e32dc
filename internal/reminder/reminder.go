// Package reminder sends appointment reminders to customers ahead of their
// visit. It walks the schedule for a target day and notifies every customer
// holding an appointment that still blocks a slot.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/glowdesk/salon-backend/internal/salon"
)

// scanLimit bounds how many appointments a single reminder run considers.
const scanLimit = 1000

type AppointmentSource interface {
	ByDate(ctx context.Context, date time.Time, limit int) ([]salon.Appointment, error)
}

type CustomerSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*salon.Customer, error)
}

type ServiceSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*salon.Service, error)
}

// Notifier delivers a single reminder message.
type Notifier interface {
	Notify(ctx context.Context, phone, body string) error
}

type Service struct {
	appointments AppointmentSource
	customers    CustomerSource
	services     ServiceSource
	notifier     Notifier
	leadDays     int
	log          logrus.FieldLogger
}

func NewService(appointments AppointmentSource, customers CustomerSource, services ServiceSource, notifier Notifier, leadDays int, log logrus.FieldLogger) *Service {
	if leadDays < 0 {
		leadDays = 1
	}
	return &Service{
		appointments: appointments,
		customers:    customers,
		services:     services,
		notifier:     notifier,
		leadDays:     leadDays,
		log:          log,
	}
}

// Run sends reminders for every scheduled or confirmed appointment leadDays
// from now. Failures on individual reminders are logged and do not stop the
// run.
func (s *Service) Run(ctx context.Context) error {
	target := salon.Today().AddDate(0, 0, s.leadDays)

	appts, err := s.appointments.ByDate(ctx, target, scanLimit)
	if err != nil {
		return fmt.Errorf("load appointments for %s: %w", target.Format("2006-01-02"), err)
	}

	sent, skipped, failed := 0, 0, 0
	for i := range appts {
		appt := &appts[i]
		if appt.Status != salon.StatusScheduled && appt.Status != salon.StatusConfirmed {
			skipped++
			continue
		}

		if err := s.remind(ctx, appt); err != nil {
			failed++
			s.log.WithError(err).WithField("appointment_id", appt.ID).Warn("reminder not delivered")
			continue
		}
		sent++
	}

	s.log.WithFields(logrus.Fields{
		"date":    target.Format("2006-01-02"),
		"sent":    sent,
		"skipped": skipped,
		"failed":  failed,
	}).Info("reminder run finished")

	return nil
}

func (s *Service) remind(ctx context.Context, appt *salon.Appointment) error {
	customer, err := s.customers.GetByID(ctx, appt.CustomerID)
	if err != nil {
		return fmt.Errorf("load customer: %w", err)
	}
	if customer.Phone == nil || *customer.Phone == "" {
		return fmt.Errorf("customer %s has no phone on file", customer.ID)
	}

	serviceName := "your appointment"
	if service, err := s.services.GetByID(ctx, appt.ServiceID); err == nil {
		serviceName = service.Name
	}

	body := fmt.Sprintf("Hi %s, this is a reminder for %s on %s at %s. Reply to reschedule.",
		customer.Name, serviceName, appt.Date.Format("Monday, Jan 2"), salon.FormatClock(appt.Time))

	return s.notifier.Notify(ctx, *customer.Phone, body)
}
