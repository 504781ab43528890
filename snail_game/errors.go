package snail_game

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidTimestamps  = errors.New("invalid timestamps")
	ErrInvalidCurveFactor = errors.New("invalid curve factor")
	ErrNotConfigured      = errors.New("not configured")
	ErrAlreadyConfigured  = errors.New("already configured")
	ErrAlreadyFrozen      = errors.New("already frozen")
	ErrInvalidReserves    = errors.New("invalid reserves")

	// ErrMarketCapTooHigh is the expected "not yet" outcome of TouchSnail:
	// the market is still above the curve and the caller may try again
	// later. It is distinct from every validation and authorization error.
	ErrMarketCapTooHigh = errors.New("market cap too high")
)
