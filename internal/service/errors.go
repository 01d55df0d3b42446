package service

import (
	"errors"
	"time"
)

// ErrNotFound and ErrInvalid classify service errors for the HTTP edge.
// Use errors.Is against them; the concrete messages name the entity.
var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid input")
)

type notFoundError struct{ what string }

func (e notFoundError) Error() string        { return e.what + " not found" }
func (e notFoundError) Is(target error) bool { return target == ErrNotFound }

type invalidError struct{ msg string }

func (e invalidError) Error() string        { return e.msg }
func (e invalidError) Is(target error) bool { return target == ErrInvalid }

var (
	ErrMenuItemNotFound     error = notFoundError{"menu item"}
	ErrDiscountNotFound     error = notFoundError{"discount rule"}
	ErrOrderNotFound        error = notFoundError{"order"}
	ErrSummaryNotFound      error = notFoundError{"daily summary"}
	ErrCartLineNotFound     error = notFoundError{"cart line"}
	ErrItemUnavailable      error = invalidError{"menu item is not available"}
	ErrInvalidQuantity      error = invalidError{"quantity must not be negative"}
	ErrInvalidPrice         error = invalidError{"price must not be negative"}
	ErrInvalidDiscountValue error = invalidError{"percentage value must be in (0, 100]; amount value must not be negative"}
	ErrInvalidDiscountType  error = invalidError{"discount type must be percentage or amount"}
	ErrInvalidDineInMode    error = invalidError{"dine-in mode must be prePay or postPay"}
	ErrBlankField           error = invalidError{"required field is blank"}
	ErrInvalidCredentials         = errors.New("invalid username or password")
)

// Clock returns the current time in the business time zone.
type Clock func() time.Time

// SystemClock reads the wall clock in loc.
func SystemClock(loc *time.Location) Clock {
	return func() time.Time { return time.Now().In(loc) }
}
