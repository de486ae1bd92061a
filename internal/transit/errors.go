package transit

import (
	"errors"
	"fmt"
)

// ErrNoIntervals is returned when fewer than two departures exist, so no
// gap between consecutive departures can be computed.
var ErrNoIntervals = errors.New("not enough departures to compute intervals")

// ErrNoDepartures is returned when a line resolution needs at least one
// upcoming train and the board is empty.
var ErrNoDepartures = errors.New("no upcoming departures")

// MalformedTimestampError means an upstream pass record carried a timestamp
// we could not parse. The record is surfaced, never skipped: dropping a
// train would corrupt interval statistics.
type MalformedTimestampError struct {
	Field string
	Value string
	Err   error
}

func (e *MalformedTimestampError) Error() string {
	return fmt.Sprintf("malformed %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *MalformedTimestampError) Unwrap() error { return e.Err }

// UnknownDestinationError means a destination is missing from the
// configured destination table. The table is known-incomplete and
// maintained by hand, so this must stay observable.
type UnknownDestinationError struct {
	Destination string
}

func (e *UnknownDestinationError) Error() string {
	return fmt.Sprintf("destination %q has no configured direction", e.Destination)
}

// UnknownTimingPointError means a timing-point code does not belong to the
// requested stop area.
type UnknownTimingPointError struct {
	StopAreaCode    string
	TimingPointCode string
}

func (e *UnknownTimingPointError) Error() string {
	return fmt.Sprintf("timing point %q is not part of stop area %q", e.TimingPointCode, e.StopAreaCode)
}

// LineNotFoundError means no line with the requested name and direction
// serves the stop area right now.
type LineNotFoundError struct {
	StopAreaCode string
	Line         string
	Direction    string
}

func (e *LineNotFoundError) Error() string {
	return fmt.Sprintf("no line %q heading %s at stop area %q", e.Line, e.Direction, e.StopAreaCode)
}
