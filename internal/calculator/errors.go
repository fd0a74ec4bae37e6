package calculator

import "errors"

var (
	// ErrInvalidAmount is returned when a monetary input is negative.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidRate is returned when a tax rate is outside [0, MaxTaxRate].
	ErrInvalidRate = errors.New("invalid tax rate")
)
