package sqlite

import (
	"database/sql"

	"alcyxob/coaching-app/internal/repository"

	"github.com/cockroachdb/errors"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func sqliteCode(err error) int {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code()
	}
	return 0
}

func isUniqueViolation(err error) bool {
	switch sqliteCode(err) {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	return sqliteCode(err) == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
}

// translate maps driver errors onto repository errors and wraps everything else.
func translate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case isNotFound(err):
		return repository.ErrNotFound
	case isUniqueViolation(err):
		return errors.WithSecondaryError(errors.Wrap(repository.ErrConflict, op), err)
	case isForeignKeyViolation(err):
		return errors.WithSecondaryError(errors.Wrap(repository.ErrNotFound, op), err)
	}
	return errors.Wrap(err, op)
}
