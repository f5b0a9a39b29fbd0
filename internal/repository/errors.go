package repository

import (
	"errors"

	"github.com/Kerhoff/NutriboT/internal/models"
)

var (
	// ErrConstraintViolation is returned for duplicate keys and references
	// to foods or recipes that do not exist.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrStorageUnavailable is returned when the database connection is unusable.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrInvalidInput is returned before any statement is issued.
	ErrInvalidInput = models.ErrInvalidInput
)
