package errs

import (
	"errors"
)

var (
	ErrDuplicateReservation = errors.New("You have reserved the restaurant at the same time. Please choose another time or restaurant.") //nolint:stylecheck
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrRestaurantNotFound   = errors.New("restaurant not found")
	ErrCatalogUnavailable   = errors.New("restaurant catalog unavailable")
	ErrStorageUnavailable   = errors.New("reservation storage unavailable")
	ErrInvalidTransition    = errors.New("action not allowed in current state")
	ErrSessionNotFound      = errors.New("session not found")
	ErrInvalidReservation   = errors.New("invalid reservation details")
)
