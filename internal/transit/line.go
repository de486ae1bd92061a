package transit

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Line is one transit line as observed at one timing point: line "E" at
// Beurs northbound platform is a different Line than "E" at the southbound
// one.
type Line struct {
	name  string
	point *TimingPoint
	table DirectionTable
}

// NewLine binds a line number to the timing point it was observed at.
func NewLine(name string, point *TimingPoint, table DirectionTable) *Line {
	return &Line{name: name, point: point, table: table}
}

// Name returns the public line number.
func (l *Line) Name() string { return l.name }

// TimingPoint returns the timing point this projection is bound to.
func (l *Line) TimingPoint() *TimingPoint { return l.point }

// Trains returns the timing point's current trains filtered to this line,
// keeping the expected-arrival sort order.
func (l *Line) Trains(ctx context.Context) ([]Train, error) {
	all, err := l.point.Trains(ctx)
	if err != nil {
		return nil, err
	}
	trains := make([]Train, 0, len(all))
	for _, train := range all {
		if train.line == l.name {
			trains = append(trains, train)
		}
	}
	return trains, nil
}

// Destinations returns the distinct destinations served, sorted by name.
func (l *Line) Destinations(ctx context.Context) ([]string, error) {
	trains, err := l.Trains(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	destinations := make([]string, 0)
	for _, train := range trains {
		if _, ok := seen[train.destination]; ok {
			continue
		}
		seen[train.destination] = struct{}{}
		destinations = append(destinations, train.destination)
	}
	sort.Strings(destinations)
	return destinations, nil
}

// Direction classifies the line via the first destination in sorted order.
// Sorting makes the pick deterministic; when a line serves destinations
// with conflicting directions the first by name still wins, matching the
// one-destination-per-platform reality of the metro network.
func (l *Line) Direction(ctx context.Context) (string, error) {
	destinations, err := l.Destinations(ctx)
	if err != nil {
		return "", err
	}
	if len(destinations) == 0 {
		return "", ErrNoDepartures
	}
	return l.table.Direction(destinations[0])
}

// NextDepartures returns the minutes until the next n departures, earliest
// first. Fewer than n trains yields a shorter slice, no padding.
func (l *Line) NextDepartures(ctx context.Context, n int, now time.Time) ([]int, error) {
	trains, err := l.Trains(ctx)
	if err != nil {
		return nil, err
	}
	if n > len(trains) {
		n = len(trains)
	}
	minutes := make([]int, 0, n)
	for _, train := range trains[:n] {
		minutes = append(minutes, train.MinutesUntil(now))
	}
	return minutes, nil
}

// Intervals summarizes the gaps between consecutive scheduled departures.
// Trains are re-sorted by target time: headway is a property of the
// timetable, not of real-time delay. Fewer than two trains fails with
// ErrNoIntervals.
func (l *Line) Intervals(ctx context.Context) (Intervals, error) {
	trains, err := l.Trains(ctx)
	if err != nil {
		return Intervals{}, err
	}
	sort.Slice(trains, func(i, j int) bool {
		if !trains[i].target.Equal(trains[j].target) {
			return trains[i].target.Before(trains[j].target)
		}
		return trains[i].id < trains[j].id
	})
	gaps := make([]int, 0)
	for i := 0; i+1 < len(trains); i++ {
		gaps = append(gaps, minutesIn(trains[i+1].target.Sub(trains[i].target)))
	}
	return NewIntervals(gaps)
}

// Summary is the read-only presentation view of one line in one direction.
type Summary struct {
	Line         string   `json:"line"`
	Direction    string   `json:"direction"`
	Destinations []string `json:"destinations"`
	Next         []int    `json:"next_departures_min"`
	Intervals    string   `json:"interval_min"`
}

// Summary gathers destinations, direction, the next three departures and
// the interval summary.
func (l *Line) Summary(ctx context.Context, now time.Time) (Summary, error) {
	destinations, err := l.Destinations(ctx)
	if err != nil {
		return Summary{}, err
	}
	direction, err := l.Direction(ctx)
	if err != nil {
		return Summary{}, err
	}
	next, err := l.NextDepartures(ctx, 3, now)
	if err != nil {
		return Summary{}, err
	}
	intervals, err := l.Intervals(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Line:         l.name,
		Direction:    direction,
		Destinations: destinations,
		Next:         next,
		Intervals:    intervals.String(),
	}, nil
}

// Human renders the summary as a sentence.
func (s Summary) Human() string {
	next := make([]string, 0, len(s.Next))
	for _, m := range s.Next {
		next = append(next, fmt.Sprintf("%d", m))
	}
	return fmt.Sprintf("Line %s %s: next in %s min, every %s min.",
		s.Line, s.Direction, strings.Join(next, ", "), s.Intervals)
}
