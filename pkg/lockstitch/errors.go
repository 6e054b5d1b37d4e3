package lockstitch

import (
	"errors"
	"fmt"

	"github.com/saylorsolutions/lockstitch/pkg/container"
)

var (
	ErrIOFailure      = errors.New("file I/O failure")
	ErrMalformedInput = errors.New("invalid input")
	ErrTooShort       = fmt.Errorf("%w: the string is too short", ErrMalformedInput)

	ErrAuthentication     = container.ErrAuthentication
	ErrMalformedContainer = container.ErrMalformed
	ErrConsistency        = container.ErrInconsistent
)

// Kind classifies errors returned by an Engine.
type Kind int

const (
	KindUnknown Kind = iota
	KindIOFailure
	KindAuthentication
	KindMalformedInput
	KindMalformedContainer
	KindConsistency
)

func (k Kind) String() string {
	switch k {
	case KindIOFailure:
		return "io-failure"
	case KindAuthentication:
		return "authentication"
	case KindMalformedInput:
		return "malformed-input"
	case KindMalformedContainer:
		return "malformed-container"
	case KindConsistency:
		return "consistency"
	default:
		return "unknown"
	}
}

// KindOf returns the Kind of err, or KindUnknown if err didn't come from this package.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrAuthentication):
		return KindAuthentication
	case errors.Is(err, ErrConsistency):
		return KindConsistency
	case errors.Is(err, ErrMalformedContainer):
		return KindMalformedContainer
	case errors.Is(err, ErrMalformedInput):
		return KindMalformedInput
	case errors.Is(err, ErrIOFailure):
		return KindIOFailure
	default:
		return KindUnknown
	}
}
