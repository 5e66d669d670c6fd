package persistent

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

// validID reports whether id can name a stored row. Primary keys are UUIDs,
// and Postgres rejects anything else with a syntax error instead of an empty
// result.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
