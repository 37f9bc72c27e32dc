package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/glowdesk/salon-backend/internal/config"
	"github.com/glowdesk/salon-backend/internal/db"
	"github.com/glowdesk/salon-backend/internal/salon"
)

var categories = []string{"Hair", "Nails", "Skin", "Massage", "Makeup"}

var roles = []string{"stylist", "colorist", "esthetician", "nail technician", "massage therapist"}

var specialtyPool = []string{
	"haircut", "coloring", "balayage", "perm", "manicure", "pedicure",
	"facial", "deep tissue", "hot stone", "bridal makeup",
}

func main() {
	customers := flag.Int("customers", 50, "number of customers to create")
	staff := flag.Int("staff", 10, "number of staff members to create")
	services := flag.Int("services", 20, "number of services to create")
	appointments := flag.Int("appointments", 100, "number of appointments to create")
	flag.Parse()

	log := logrus.New()
	log.Info("seed starting")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("config load error")
	}

	session, err := db.ConnectCassandra(cfg, cfg.CassandraKeyspace)
	if err != nil {
		log.WithError(err).Fatal("cassandra connection error")
	}
	defer session.Close()

	gofakeit.Seed(time.Now().UnixNano())
	ctx := context.Background()

	customerRepo := salon.NewCassCustomerRepository(session, log)
	staffRepo := salon.NewCassStaffRepository(session, log)
	serviceRepo := salon.NewCassServiceRepository(session, log)
	appointmentRepo := salon.NewCassAppointmentRepository(session, log)

	customerIDs, err := seedCustomers(ctx, customerRepo, *customers)
	if err != nil {
		log.WithError(err).Fatal("seed customers")
	}
	log.WithField("count", len(customerIDs)).Info("customers seeded")

	staffIDs, err := seedStaff(ctx, staffRepo, *staff)
	if err != nil {
		log.WithError(err).Fatal("seed staff")
	}
	log.WithField("count", len(staffIDs)).Info("staff seeded")

	serviceIDs, err := seedServices(ctx, serviceRepo, *services)
	if err != nil {
		log.WithError(err).Fatal("seed services")
	}
	log.WithField("count", len(serviceIDs)).Info("services seeded")

	booked, err := seedAppointments(ctx, appointmentRepo, customerIDs, staffIDs, serviceIDs, *appointments)
	if err != nil {
		log.WithError(err).Fatal("seed appointments")
	}
	log.WithField("count", booked).Info("appointments seeded")

	log.Info("seed complete")
}

func fakePhone() string {
	digits := make([]byte, 10)
	for i := range digits {
		digits[i] = byte('0' + gofakeit.Number(0, 9))
	}
	digits[0] = byte('2' + gofakeit.Number(0, 7))
	return string(digits)
}

func seedCustomers(ctx context.Context, repo *salon.CassCustomerRepository, count int) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, count)
	now := time.Now().UTC()

	for i := 0; i < count; i++ {
		phone := fakePhone()
		address := gofakeit.Address().Address
		customer := &salon.Customer{
			ID:        uuid.New(),
			Name:      gofakeit.Name(),
			Email:     fmt.Sprintf("customer%d.%s", i, gofakeit.Email()),
			Phone:     &phone,
			Address:   &address,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := repo.Insert(ctx, customer); err != nil {
			return nil, err
		}
		ids = append(ids, customer.ID)
	}
	return ids, nil
}

func seedStaff(ctx context.Context, repo *salon.CassStaffRepository, count int) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, count)
	now := time.Now().UTC()

	for i := 0; i < count; i++ {
		phone := fakePhone()
		hired := now.AddDate(0, -gofakeit.Number(1, 60), 0)
		specialties := []string{
			specialtyPool[gofakeit.Number(0, len(specialtyPool)-1)],
			specialtyPool[gofakeit.Number(0, len(specialtyPool)-1)],
		}
		member := &salon.Staff{
			ID:          uuid.New(),
			Name:        gofakeit.Name(),
			Email:       fmt.Sprintf("staff%d.%s", i, gofakeit.Email()),
			Phone:       &phone,
			Role:        roles[gofakeit.Number(0, len(roles)-1)],
			Specialties: dedupe(specialties),
			IsActive:    true,
			HireDate:    &hired,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := repo.Insert(ctx, member); err != nil {
			return nil, err
		}
		ids = append(ids, member.ID)
	}
	return ids, nil
}

func seedServices(ctx context.Context, repo *salon.CassServiceRepository, count int) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, count)
	now := time.Now().UTC()

	for i := 0; i < count; i++ {
		category := categories[gofakeit.Number(0, len(categories)-1)]
		description := gofakeit.Sentence(8)
		price := decimal.NewFromInt(int64(gofakeit.Number(20, 200))).Add(decimal.NewFromFloat(0.99))
		service := &salon.Service{
			ID:          uuid.New(),
			Name:        fmt.Sprintf("%s %s %d", category, gofakeit.Adjective(), i),
			Description: &description,
			Duration:    15 * gofakeit.Number(1, 8),
			Price:       price,
			Category:    category,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := repo.Insert(ctx, service); err != nil {
			return nil, err
		}
		ids = append(ids, service.ID)
	}
	return ids, nil
}

// seedAppointments books unique staff/date/time slots so the seeded data
// never violates the conflict rule.
func seedAppointments(ctx context.Context, repo *salon.CassAppointmentRepository, customers, staff, services []uuid.UUID, count int) (int, error) {
	if len(customers) == 0 || len(staff) == 0 || len(services) == 0 {
		return 0, fmt.Errorf("customers, staff and services must be seeded first")
	}

	now := time.Now().UTC()
	taken := make(map[string]bool, count)
	booked := 0

	for booked < count {
		staffID := staff[gofakeit.Number(0, len(staff)-1)]
		date := salon.Today().AddDate(0, 0, gofakeit.Number(0, 30))
		clock := time.Duration(gofakeit.Number(9, 18)) * time.Hour

		key := fmt.Sprintf("%s/%s/%s", staffID, date.Format("2006-01-02"), clock)
		if taken[key] {
			continue
		}
		taken[key] = true

		notes := gofakeit.Sentence(6)
		appt := &salon.Appointment{
			ID:         uuid.New(),
			CustomerID: customers[gofakeit.Number(0, len(customers)-1)],
			StaffID:    staffID,
			ServiceID:  services[gofakeit.Number(0, len(services)-1)],
			Date:       date,
			Time:       clock,
			Status:     salon.StatusScheduled,
			Notes:      &notes,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := repo.Insert(ctx, appt); err != nil {
			return booked, err
		}
		booked++
	}
	return booked, nil
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
