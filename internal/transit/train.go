package transit

import (
	"time"

	"github.com/ovcommute/ovcommute_core/internal/ovapi"
)

// OVapi timestamps are local time without a zone offset.
const timestampLayout = "2006-01-02T15:04:05"

// Train is one departure, parsed from an upstream pass record. Both
// timestamps are mandatory; a record missing either is an upstream data
// error, not an optional field. Immutable after construction.
type Train struct {
	id          string
	line        string
	destination string
	expected    time.Time
	target      time.Time
}

// NewTrain parses one pass record. Unparseable timestamps fail with
// *MalformedTimestampError.
func NewTrain(id string, pass ovapi.Pass) (Train, error) {
	expected, err := parseTimestamp("ExpectedArrivalTime", pass.ExpectedArrivalTime)
	if err != nil {
		return Train{}, err
	}
	target, err := parseTimestamp("TargetArrivalTime", pass.TargetArrivalTime)
	if err != nil {
		return Train{}, err
	}
	return Train{
		id:          id,
		line:        pass.LinePublicNumber,
		destination: pass.DestinationName50,
		expected:    expected,
		target:      target,
	}, nil
}

func parseTimestamp(field, value string) (time.Time, error) {
	t, err := time.ParseInLocation(timestampLayout, value, time.Local)
	if err != nil {
		return time.Time{}, &MalformedTimestampError{Field: field, Value: value, Err: err}
	}
	return t, nil
}

// ID returns the upstream pass identifier.
func (t Train) ID() string { return t.id }

// Line returns the public line number, e.g. "E".
func (t Train) Line() string { return t.line }

// Destination returns the destination name.
func (t Train) Destination() string { return t.destination }

// ArrivalTime is the real-time expected arrival.
func (t Train) ArrivalTime() time.Time { return t.expected }

// TargetArrivalTime is the timetabled arrival.
func (t Train) TargetArrivalTime() time.Time { return t.target }

// DelayMinutes is expected minus target in whole minutes.
// Positive means late, negative means early.
func (t Train) DelayMinutes() int {
	return minutesIn(t.expected.Sub(t.target))
}

// MinutesUntil is the whole minutes from now until the expected arrival.
// The caller supplies now, so this is a live countdown: the same train
// answers differently as time passes.
func (t Train) MinutesUntil(now time.Time) int {
	return minutesIn(t.expected.Sub(now))
}
