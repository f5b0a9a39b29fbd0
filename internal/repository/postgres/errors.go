package postgres

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/Kerhoff/NutriboT/internal/repository"
)

// classify tags driver errors with the repository sentinel they map to.
// SQLite errors are recognised too so the same repositories run against the
// embedded development database.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "23": // integrity_constraint_violation
			return fmt.Errorf("%w: %w", repository.ErrConstraintViolation, err)
		case "08": // connection_exception
			return fmt.Errorf("%w: %w", repository.ErrStorageUnavailable, err)
		}
		return err
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code {
		case sqlite3.ErrConstraint:
			return fmt.Errorf("%w: %w", repository.ErrConstraintViolation, err)
		case sqlite3.ErrCantOpen, sqlite3.ErrIoErr, sqlite3.ErrNotADB:
			return fmt.Errorf("%w: %w", repository.ErrStorageUnavailable, err)
		}
		return err
	}

	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", repository.ErrStorageUnavailable, err)
	}
	if err.Error() == "sql: database is closed" {
		return fmt.Errorf("%w: %w", repository.ErrStorageUnavailable, err)
	}

	return err
}
