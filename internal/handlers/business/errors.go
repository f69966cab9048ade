package business

import (
	"errors"
	"fmt"
)

// Hard-abort sentinels. Anything wrapping one of these rolls back the whole
// unit of work with no partial state.
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAccessDenied      = errors.New("access denied")
	ErrOverflow          = errors.New("arithmetic overflow")
)

// ValidationError rejects a request before any funds move.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

func validationf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Liquidity failure reasons. A LiquidityFailure is a value carried back to
// the purchase engine, never an error that aborts the purchase.
const (
	LiquidityReasonSlippage    = "slippage"
	LiquidityReasonDeadline    = "deadline_expired"
	LiquidityReasonNoLiquidity = "insufficient_counter_liquidity"
)

// LiquidityFailure describes why a liquidity add was refused.
type LiquidityFailure struct {
	Reason string `json:"reason"`
	Detail string `json:"detail"`
}
