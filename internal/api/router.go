package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gocql/gocql"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type RouterConfig struct {
	Customers    CustomerAPI
	Staff        StaffAPI
	Services     ServiceAPI
	Appointments AppointmentAPI

	Session     *gocql.Session
	Redis       *redis.Client
	Log         logrus.FieldLogger
	Env         string
	Version     string
	CORSOrigins []string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Log))
	r.Use(CORSMiddleware(cfg.CORSOrigins))

	health := NewHealthHandler(cfg.Session, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health", health.Health)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	log := cfg.Log

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/customers", func(r chi.Router) {
			r.Post("/", createCustomerHandler(cfg.Customers, log))
			r.Get("/", listCustomersHandler(cfg.Customers, log))
			r.Get("/{id}", getCustomerHandler(cfg.Customers, log))
			r.Put("/{id}", updateCustomerHandler(cfg.Customers, log))
			r.Delete("/{id}", deleteCustomerHandler(cfg.Customers, log))
			r.Get("/email/{email}", getCustomerByEmailHandler(cfg.Customers, log))
			r.Get("/search/name", searchCustomersHandler(cfg.Customers, log))
			r.Get("/count/total", countCustomersHandler(cfg.Customers, log))
		})

		r.Route("/staff", func(r chi.Router) {
			r.Post("/", createStaffHandler(cfg.Staff, log))
			r.Get("/", listStaffHandler(cfg.Staff, log))
			r.Get("/active", listActiveStaffHandler(cfg.Staff, log))
			r.Get("/{id}", getStaffHandler(cfg.Staff, log))
			r.Put("/{id}", updateStaffHandler(cfg.Staff, log))
			r.Delete("/{id}", deleteStaffHandler(cfg.Staff, log))
			r.Get("/email/{email}", getStaffByEmailHandler(cfg.Staff, log))
			r.Get("/role/{role}", listStaffByRoleHandler(cfg.Staff, false, log))
			r.Get("/role/{role}/active", listStaffByRoleHandler(cfg.Staff, true, log))
			r.Get("/specialty/{specialty}", listStaffBySpecialtyHandler(cfg.Staff, log))
			r.Get("/search/name", searchStaffHandler(cfg.Staff, log))
			r.Get("/roles/list", listStaffRolesHandler(cfg.Staff, log))
			r.Get("/count/total", countStaffHandler(cfg.Staff, log))
			r.Get("/count/active", countActiveStaffHandler(cfg.Staff, log))
		})

		r.Route("/services", func(r chi.Router) {
			r.Post("/", createServiceHandler(cfg.Services, log))
			r.Get("/", listServicesHandler(cfg.Services, log))
			r.Get("/active", listActiveServicesHandler(cfg.Services, log))
			r.Get("/{id}", getServiceHandler(cfg.Services, log))
			r.Put("/{id}", updateServiceHandler(cfg.Services, log))
			r.Delete("/{id}", deleteServiceHandler(cfg.Services, log))
			r.Get("/category/{category}", listServicesByCategoryHandler(cfg.Services, false, log))
			r.Get("/category/{category}/active", listServicesByCategoryHandler(cfg.Services, true, log))
			r.Get("/search/name", searchServicesHandler(cfg.Services, log))
			r.Get("/categories/list", listServiceCategoriesHandler(cfg.Services, log))
			r.Get("/count/total", countServicesHandler(cfg.Services, log))
			r.Get("/count/active", countActiveServicesHandler(cfg.Services, log))
		})

		r.Route("/appointments", func(r chi.Router) {
			r.Post("/", createAppointmentHandler(cfg.Appointments, log))
			r.Get("/", listAppointmentsHandler(cfg.Appointments, log))
			r.Get("/{id}", getAppointmentHandler(cfg.Appointments, log))
			r.Put("/{id}", updateAppointmentHandler(cfg.Appointments, log))
			r.Patch("/{id}/status", updateAppointmentStatusHandler(cfg.Appointments, log))
			r.Delete("/{id}", deleteAppointmentHandler(cfg.Appointments, log))
			r.Get("/customer/{id}", listAppointmentsByCustomerHandler(cfg.Appointments, log))
			r.Get("/staff/{id}", listAppointmentsByStaffHandler(cfg.Appointments, log))
			r.Get("/service/{id}", listAppointmentsByServiceHandler(cfg.Appointments, log))
			r.Get("/date/{date}", listAppointmentsByDateHandler(cfg.Appointments, log))
			r.Get("/date/{date}/staff/{id}", listAppointmentsByDateAndStaffHandler(cfg.Appointments, log))
			r.Get("/status/{status}", listAppointmentsByStatusHandler(cfg.Appointments, log))
			r.Get("/upcoming/list", listUpcomingAppointmentsHandler(cfg.Appointments, log))
			r.Get("/today/list", listTodayAppointmentsHandler(cfg.Appointments, log))
			r.Get("/count/total", countAppointmentsHandler(cfg.Appointments, log))
			r.Get("/count/status/{status}", countAppointmentsByStatusHandler(cfg.Appointments, log))
		})
	})

	return r
}
