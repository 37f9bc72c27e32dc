package db

import (
	"fmt"

	"github.com/gocql/gocql"
)

// CreateKeyspace creates the application keyspace if it does not exist.
// The session must have been opened without a default keyspace.
func CreateKeyspace(session *gocql.Session, keyspace string, replicationFactor int) error {
	if replicationFactor < 1 {
		replicationFactor = 1
	}
	query := fmt.Sprintf(`
		CREATE KEYSPACE IF NOT EXISTS %s
		WITH REPLICATION = {
			'class': 'SimpleStrategy',
			'replication_factor': %d
		}`, keyspace, replicationFactor)
	return session.Query(query).Exec()
}

// CreateTables creates all entity tables.
func CreateTables(session *gocql.Session) error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS customers (
			id UUID PRIMARY KEY,
			name TEXT,
			email TEXT,
			phone TEXT,
			address TEXT,
			created_at TIMESTAMP,
			updated_at TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS services (
			id UUID PRIMARY KEY,
			name TEXT,
			description TEXT,
			duration INT,
			price DECIMAL,
			category TEXT,
			is_active BOOLEAN,
			created_at TIMESTAMP,
			updated_at TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS staff (
			id UUID PRIMARY KEY,
			name TEXT,
			email TEXT,
			phone TEXT,
			role TEXT,
			specialties LIST<TEXT>,
			is_active BOOLEAN,
			hire_date TIMESTAMP,
			created_at TIMESTAMP,
			updated_at TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS appointments (
			id UUID PRIMARY KEY,
			customer_id UUID,
			staff_id UUID,
			service_id UUID,
			appointment_date DATE,
			appointment_time TIME,
			status TEXT,
			notes TEXT,
			price DECIMAL,
			created_at TIMESTAMP,
			updated_at TIMESTAMP
		)`,
	}

	for _, table := range tables {
		if err := session.Query(table).Exec(); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// CreateIndexes creates the secondary indexes the scanned queries rely on.
// Staff and date carry indexes so the conflict-check predicate
// (staff_id, appointment_date) does not degrade into a full-table scan.
func CreateIndexes(session *gocql.Session) []error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS ON customers (email)",
		"CREATE INDEX IF NOT EXISTS ON staff (email)",
		"CREATE INDEX IF NOT EXISTS ON services (category)",
		"CREATE INDEX IF NOT EXISTS ON appointments (customer_id)",
		"CREATE INDEX IF NOT EXISTS ON appointments (staff_id)",
		"CREATE INDEX IF NOT EXISTS ON appointments (service_id)",
		"CREATE INDEX IF NOT EXISTS ON appointments (appointment_date)",
		"CREATE INDEX IF NOT EXISTS ON appointments (status)",
	}

	var errs []error
	for _, index := range indexes {
		if err := session.Query(index).Exec(); err != nil {
			errs = append(errs, fmt.Errorf("create index %q: %w", index, err))
		}
	}
	return errs
}
