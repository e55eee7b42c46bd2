package mathutil

import "errors"

var (
	// ErrTooManyDecimals ...
	ErrTooManyDecimals = errors.New("amount carries more decimals than the asset precision")
	// ErrNegativeAmount ...
	ErrNegativeAmount = errors.New("amount must not be negative")
	// ErrAmountOutOfRange ...
	ErrAmountOutOfRange = errors.New("amount does not fit in 64 bits")
)
