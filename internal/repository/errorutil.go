package repository

import (
	"database/sql"
	"errors"

	"github.com/cleanarch/webapp/internal/domain"
)

// notFoundUser builds the domain error every user lookup miss maps to.
func notFoundUser() *domain.Error {
	return domain.NewNotFoundError("USER_NOT_FOUND", "User not found")
}

// isNoRows checks if an error represents a "no rows" condition from the
// database driver.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// wrapQuery converts a driver-level failure into an infrastructure domain
// error, keeping the original error as cause for logging.
func wrapQuery(err error) *domain.Error {
	return domain.NewInfrastructureError("DATABASE_ERROR", "Database operation failed", err)
}
