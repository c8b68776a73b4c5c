package buffer

import (
	"errors"
	"fmt"
)

var (
	// ErrIteratorDone is returned when iteration is complete.
	ErrIteratorDone = errors.New("iterator done")

	// ErrEmpty is returned by Front, Back, PopFront and PopBack on an empty
	// ring.
	ErrEmpty = errors.New("empty collection")

	// ErrIndexOutOfRange is returned when a position or range falls outside
	// the valid bounds of a ring or of a destination slice.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidArgument is returned for negative capacity requests.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInsufficientData is returned when a decode needs more bytes than the
	// ring holds.
	ErrInsufficientData = errors.New("insufficient data")
)

func indexError(op string, i, n int) error {
	return fmt.Errorf("buffer: %s %d (len %d): %w", op, i, n, ErrIndexOutOfRange)
}

func rangeError(op string, start, end, n int) error {
	return fmt.Errorf("buffer: %s [%d:%d] (len %d): %w", op, start, end, n, ErrIndexOutOfRange)
}
