package db

import (
	"context"
	"fmt"
	"time"

	"github.com/gocql/gocql"

	"github.com/glowdesk/salon-backend/internal/config"
)

// ConnectCassandra opens a session against the cluster. An empty keyspace is
// allowed so that the migrate tool can create it first.
func ConnectCassandra(cfg config.Config, keyspace string) (*gocql.Session, error) {
	cluster := gocql.NewCluster(cfg.CassandraHosts...)
	cluster.Keyspace = keyspace
	cluster.Consistency = gocql.Quorum
	cluster.Timeout = 10 * time.Second
	cluster.ConnectTimeout = 10 * time.Second
	cluster.RetryPolicy = &gocql.SimpleRetryPolicy{NumRetries: 3}

	if cfg.CassandraUsername != "" && cfg.CassandraPassword != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: cfg.CassandraUsername,
			Password: cfg.CassandraPassword,
		}
	}

	if cfg.CassandraDatacenter != "" {
		cluster.PoolConfig.HostSelectionPolicy = gocql.DCAwareRoundRobinPolicy(cfg.CassandraDatacenter)
	}

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("connect cassandra: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Ping(pingCtx, session); err != nil {
		session.Close()
		return nil, fmt.Errorf("ping cassandra: %w", err)
	}

	return session, nil
}

// Ping runs a trivial query to verify the cluster is reachable.
func Ping(ctx context.Context, session *gocql.Session) error {
	return session.Query("SELECT now() FROM system.local").WithContext(ctx).Exec()
}
