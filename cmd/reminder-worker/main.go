package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/glowdesk/salon-backend/internal/config"
	"github.com/glowdesk/salon-backend/internal/db"
	"github.com/glowdesk/salon-backend/internal/reminder"
	"github.com/glowdesk/salon-backend/internal/salon"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.Info("reminder-worker starting up")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("config load error")
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session, err := db.ConnectCassandra(cfg, cfg.CassandraKeyspace)
	if err != nil {
		log.WithError(err).Fatal("cassandra connection error")
	}
	defer session.Close()
	log.Info("connected to Cassandra")

	appointmentRepo := salon.NewCassAppointmentRepository(session, log)
	customerRepo := salon.NewCassCustomerRepository(session, log)
	serviceRepo := salon.NewCassServiceRepository(session, log)

	var notifier reminder.Notifier
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" && cfg.TwilioFromNumber != "" {
		notifier = reminder.NewTwilioNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, log)
		log.Info("twilio notifier configured")
	} else {
		notifier = reminder.NewLogNotifier(log)
		log.Warn("twilio credentials missing, reminders will only be logged")
	}

	svc := reminder.NewService(appointmentRepo, customerRepo, serviceRepo, notifier, cfg.ReminderLeadDays, log)

	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.ReminderCron, func() {
		runCtx, cancel := context.WithTimeout(rootCtx, 5*time.Minute)
		defer cancel()
		if err := svc.Run(runCtx); err != nil {
			log.WithError(err).Error("reminder run failed")
		}
	})
	if err != nil {
		log.WithError(err).Fatal("invalid reminder cron expression")
	}

	scheduler.Start()
	log.WithField("cron", cfg.ReminderCron).Info("reminder scheduler started")

	<-rootCtx.Done()
	log.Info("shutdown signal received, stopping reminder worker")

	stopCtx := scheduler.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(30 * time.Second):
		log.Warn("timed out waiting for in-flight reminder run")
	}

	log.Info("reminder-worker stopped")
}
