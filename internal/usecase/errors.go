package usecase

import (
	"errors"
	"fmt"

	"photo-share/internal/repo/persistent"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// lookupError turns a repository miss into ErrNotFound for the named
// resource and passes any other failure through.
func lookupError(resource string, err error) error {
	if errors.Is(err, persistent.ErrNotFound) {
		return fmt.Errorf("%s %w", resource, ErrNotFound)
	}
	return err
}

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
