package snail_launch

import "errors"

var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrAlreadyInitialized   = errors.New("already initialized")
	ErrNotInitialized       = errors.New("not initialized")
	ErrAdminAlreadyClaimed  = errors.New("admin already claimed")
	ErrMathOverflow         = errors.New("math overflow")
	ErrSaleNotActive        = errors.New("sale not active")
	ErrSaleNotEnded         = errors.New("sale not ended")
	ErrClaimNotAvailable    = errors.New("claim not available yet")
	ErrInvalidMintAuthority = errors.New("invalid mint authority")
	ErrInvalidMint          = errors.New("invalid mint")
	ErrNoContribution       = errors.New("no contribution")
	ErrAlreadyClaimed       = errors.New("already claimed")
	ErrInvalidTimestamps    = errors.New("invalid timestamps")
	ErrInvalidClaimStamp    = errors.New("invalid claim stamp")
)
