package checker

import (
	"errors"
	"fmt"
)

// InfoError is a non-fatal condition the caller should present without
// alarming the user: token too new for data, outside the supported age
// window, bonding curve unresolvable. Distinguished at every interface
// boundary from hard upstream/config failures.
type InfoError struct {
	Msg string
}

func (e *InfoError) Error() string { return e.Msg }

func infof(format string, args ...any) error {
	return &InfoError{Msg: fmt.Sprintf(format, args...)}
}

// IsInfo reports whether err is informational rather than a failure.
func IsInfo(err error) bool {
	var ie *InfoError
	return errors.As(err, &ie)
}

// InvalidInputError rejects malformed requests before any network call.
type InvalidInputError struct {
	Msg string
}

func (e *InvalidInputError) Error() string { return e.Msg }

// IsInvalidInput reports whether err was a malformed request.
func IsInvalidInput(err error) bool {
	var ie *InvalidInputError
	return errors.As(err, &ie)
}
