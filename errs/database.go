package errs

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
	ErrMigrationFailed    = errors.New("migration failed")
)

// postgres SQLSTATE codes that select a more specific sentinel
const (
	uniqueViolation      = "23505"
	foreignKeyViolation  = "23503"
	exclusionViolation   = "23P01"
	cannotConnectNow     = "57P03"
	connectionExceptions = "08"
)

// NewDatabaseError wraps a storage failure. Every storage failure is a
// 500 with a generic body; the SQLSTATE only picks the sentinel, so logs
// tell constraint violations apart from an unreachable database.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        databaseSentinel(entity, cause),
		Details:    fmt.Sprintf("Failed to %s %s", operation, entity),
		Cause:      cause,
	}
}

func databaseSentinel(entity string, cause error) error {
	var pgErr *pgconn.PgError
	var connectErr *pgconn.ConnectError
	switch {
	case errors.As(cause, &pgErr) && pgErr.Code == uniqueViolation:
		return fmt.Errorf("%s %w", entity, ErrAlreadyExists)
	case errors.As(cause, &pgErr) && (pgErr.Code == foreignKeyViolation || pgErr.Code == exclusionViolation):
		return ErrConflict
	case errors.As(cause, &pgErr) && (pgErr.Code == cannotConnectNow || strings.HasPrefix(pgErr.Code, connectionExceptions)),
		errors.As(cause, &connectErr),
		errors.Is(cause, driver.ErrBadConn),
		errors.Is(cause, context.DeadlineExceeded):
		return ErrDatabaseConnection
	}
	return ErrDatabaseQuery
}

func NewMigrationError(step string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrMigrationFailed,
		Details:    fmt.Sprintf("Migration step %q failed", step),
		Cause:      cause,
	}
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}
