package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

const driverName = "sqlite"

// connection pragmas applied to every pooled connection
var defaultPragmas = []string{
	"_pragma=foreign_keys(1)",
	"_pragma=busy_timeout(5000)",
	"_pragma=journal_mode(WAL)",
	"_txlock=immediate",
}

// ConnectDB opens the sqlite database file at path and verifies the connection.
// A DSN that already starts with "file:" is used as is.
func ConnectDB(path string) (*sqlx.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite database path is required")
	}

	db, err := sqlx.Open(driverName, BuildDSN(path))
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping sqlite database")
	}
	return db, nil
}

// BuildDSN turns a plain file path into a modernc sqlite DSN with the connection pragmas.
func BuildDSN(path string) string {
	path = strings.TrimSpace(path)
	if strings.HasPrefix(path, "file:") {
		return path
	}
	return "file:" + path + "?" + strings.Join(defaultPragmas, "&")
}

// DisconnectDB closes the connection pool.
func DisconnectDB(db *sqlx.DB) error {
	return db.Close()
}
