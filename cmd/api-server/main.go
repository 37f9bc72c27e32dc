package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/glowdesk/salon-backend/internal/api"
	"github.com/glowdesk/salon-backend/internal/config"
	"github.com/glowdesk/salon-backend/internal/db"
	redisclient "github.com/glowdesk/salon-backend/internal/redis"
	"github.com/glowdesk/salon-backend/internal/salon"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.Info("api-server starting up")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("config load error")
	}
	if cfg.Env == "dev" {
		log.SetLevel(logrus.DebugLevel)
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	log.WithFields(logrus.Fields{"env": cfg.Env, "http_port": cfg.HTTPPort}).Info("configuration loaded")

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session, err := db.ConnectCassandra(cfg, cfg.CassandraKeyspace)
	if err != nil {
		log.WithError(err).Fatal("cassandra connection error")
	}
	defer session.Close()
	log.Info("connected to Cassandra")

	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		log.WithError(err).Fatal("redis connection error")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.WithError(err).Warn("error closing redis")
		}
	}()
	log.Info("connected to Redis")

	customerRepo := salon.NewCassCustomerRepository(session, log)
	staffRepo := salon.NewCassStaffRepository(session, log)
	serviceRepo := salon.NewCassServiceRepository(session, log)
	appointmentRepo := salon.NewCassAppointmentRepository(session, log)

	locker := redisclient.NewRedisBookingLocker(rdb, cfg.LockTTL)

	customerSvc := salon.NewCustomerService(customerRepo, log)
	staffSvc := salon.NewStaffService(staffRepo, log)
	serviceSvc := salon.NewServiceCatalogService(serviceRepo, log)
	appointmentSvc := salon.NewAppointmentService(appointmentRepo, customerSvc, staffSvc, serviceSvc, locker, log)

	router := api.NewRouter(api.RouterConfig{
		Customers:    customerSvc,
		Staff:        staffSvc,
		Services:     serviceSvc,
		Appointments: appointmentSvc,
		Session:      session,
		Redis:        rdb,
		Log:          log,
		Env:          cfg.Env,
		Version:      cfg.Version,
		CORSOrigins:  cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.WithField("addr", server.Addr).Info("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server error")
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}

	log.Info("api-server stopped")
}
