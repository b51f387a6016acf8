package ledger

import (
	"errors"
	"fmt"
)

// ErrNegativeAmount is returned when a posting amount is negative. The
// sign-to-side convention is resolved by the caller before posting, so
// the core only ever accepts magnitudes.
var ErrNegativeAmount = errors.New("posting amount must not be negative")

// UnknownAccountError reports a posting against an account code that is
// not in the chart of accounts. No lines are inserted when it is returned.
type UnknownAccountError struct {
	Code int
}

func (e *UnknownAccountError) Error() string {
	return fmt.Sprintf("unknown account %d", e.Code)
}
