package main

import (
	"flag"

	"github.com/sirupsen/logrus"

	"github.com/glowdesk/salon-backend/internal/config"
	"github.com/glowdesk/salon-backend/internal/db"
)

func main() {
	replication := flag.Int("replication", 1, "keyspace replication factor")
	flag.Parse()

	log := logrus.New()
	log.Info("migrate starting")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("config load error")
	}

	// Keyspace creation needs a session without a keyspace bound.
	sysSession, err := db.ConnectCassandra(cfg, "")
	if err != nil {
		log.WithError(err).Fatal("cassandra connection error")
	}
	if err := db.CreateKeyspace(sysSession, cfg.CassandraKeyspace, *replication); err != nil {
		sysSession.Close()
		log.WithError(err).Fatal("create keyspace")
	}
	sysSession.Close()
	log.WithField("keyspace", cfg.CassandraKeyspace).Info("keyspace ready")

	session, err := db.ConnectCassandra(cfg, cfg.CassandraKeyspace)
	if err != nil {
		log.WithError(err).Fatal("cassandra connection error")
	}
	defer session.Close()

	if err := db.CreateTables(session); err != nil {
		log.WithError(err).Fatal("create tables")
	}
	log.Info("tables ready")

	if errs := db.CreateIndexes(session); len(errs) > 0 {
		for _, err := range errs {
			log.WithError(err).Warn("create index")
		}
		log.Fatal("index creation failed")
	}
	log.Info("indexes ready")

	log.Info("migrate complete")
}
