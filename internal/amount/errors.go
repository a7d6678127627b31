package amount

import (
	"errors"
	"fmt"
)

var (
	ErrEmpty                = errors.New("amount is empty")
	ErrInvalidFormat        = errors.New("invalid amount format")
	ErrFormatterUnavailable = errors.New("decimal formatter unavailable")
	ErrNormalizationFailed  = errors.New("failed to normalize amount")
)

// InvalidFormatError carries the trimmed input that no decimal could be extracted from.
type InvalidFormatError struct {
	Input string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid amount format: %q", e.Input)
}

func (e *InvalidFormatError) Unwrap() error {
	return ErrInvalidFormat
}

// ErrorKind classifies parse failures for callers that map them to user-facing messages.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindEmpty
	KindInvalidFormat
	KindFormatterUnavailable
	KindNormalizationFailed
)

func (k ErrorKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindInvalidFormat:
		return "invalid_format"
	case KindFormatterUnavailable:
		return "formatter_unavailable"
	case KindNormalizationFailed:
		return "normalization_failed"
	}

	return "unknown"
}

// Kind returns the kind of err, or KindUnknown for errors that did not come from this package.
func Kind(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrEmpty):
		return KindEmpty
	case errors.Is(err, ErrInvalidFormat):
		return KindInvalidFormat
	case errors.Is(err, ErrFormatterUnavailable):
		return KindFormatterUnavailable
	case errors.Is(err, ErrNormalizationFailed):
		return KindNormalizationFailed
	}

	return KindUnknown
}
