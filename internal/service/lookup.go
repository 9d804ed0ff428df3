package service

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	appErrors "github.com/noah-isme/course-enrollment-api/pkg/errors"
)

// ensureEntityID reports ids that cannot exist in storage as not found before any lookup.
func ensureEntityID(entity, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return appErrors.EntityNotFound(entity, id)
	}
	return nil
}

// lookupError maps an absent row to the not-found kind and returns other errors unchanged.
func lookupError(entity, id string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.EntityNotFound(entity, id)
	}
	return err
}
