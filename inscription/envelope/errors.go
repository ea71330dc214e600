package envelope

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedEnvelope reports truncated pushes and invalid required utf-8.
	ErrMalformedEnvelope = errors.New("malformed envelope")
	// ErrUnknownFieldCode reports a header tag that is not a recognized field code.
	ErrUnknownFieldCode = errors.New("unknown field code")
	// ErrIncompleteParse reports input that ended inside an inscription.
	ErrIncompleteParse = errors.New("incomplete parse")
)

// DecodeError scopes a decode failure to one transaction.
type DecodeError struct {
	Txid   string
	Offset int
	State  State
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode inscriptions of %s: offset %d, state %s: %v", e.Txid, e.Offset, e.State, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
