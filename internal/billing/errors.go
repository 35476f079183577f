package billing

import "errors"

// ValidationError: a draft or commit precondition failed. Nothing is
// mutated when one of these is returned.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

var ErrIndexOutOfRange = errors.New("line item index out of range")
