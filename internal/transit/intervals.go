package transit

import (
	"fmt"
	"strconv"
	"time"
)

// minutesIn truncates a signed duration to whole minutes toward zero.
// Overdue trains yield negative minutes, never a panic.
func minutesIn(d time.Duration) int {
	return int(d / time.Minute)
}

// Intervals summarizes the gaps, in whole minutes, between consecutive
// scheduled departures of one line.
type Intervals struct {
	Gaps []int `json:"gaps"`
	Min  int   `json:"min"`
	Max  int   `json:"max"`
}

// NewIntervals computes the min/max summary over gaps.
// An empty sequence has no min/max and fails with ErrNoIntervals.
func NewIntervals(gaps []int) (Intervals, error) {
	if len(gaps) == 0 {
		return Intervals{}, ErrNoIntervals
	}
	min, max := gaps[0], gaps[0]
	for _, g := range gaps[1:] {
		if g < min {
			min = g
		}
		if g > max {
			max = g
		}
	}
	return Intervals{Gaps: gaps, Min: min, Max: max}, nil
}

// String renders the summary as "min-max", or the single value when they
// coincide.
func (iv Intervals) String() string {
	if iv.Min == iv.Max {
		return strconv.Itoa(iv.Min)
	}
	return fmt.Sprintf("%d-%d", iv.Min, iv.Max)
}
