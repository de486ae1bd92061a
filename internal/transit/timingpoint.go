package transit

import (
	"context"
	"sort"
)

// TimingPoint is one platform within a stop area, identified by an opaque
// code, with its own departure board.
//
// Caching policy, per field: StopName and Lines are computed once and kept
// for the lifetime of the instance; Trains refetches the board on every
// call. An instance lives for one request cycle, so "once" means "once per
// request".
type TimingPoint struct {
	code   string
	source Source
	table  DirectionTable

	stopName  string
	haveName  bool
	lineNames []string
	haveLines bool
}

// NewTimingPoint binds a timing-point code to its data source.
func NewTimingPoint(code string, source Source, table DirectionTable) *TimingPoint {
	return &TimingPoint{code: code, source: source, table: table}
}

// Code returns the opaque timing-point code.
func (tp *TimingPoint) Code() string { return tp.code }

// StopName resolves the human-readable stop name. Computed once; later
// calls return the first-observed value even if upstream changed.
func (tp *TimingPoint) StopName(ctx context.Context) (string, error) {
	if tp.haveName {
		return tp.stopName, nil
	}
	doc, err := tp.source.TimingPointDepartures(ctx, tp.code)
	if err != nil {
		return "", err
	}
	tp.stopName = doc.Stop.TimingPointName
	tp.haveName = true
	return tp.stopName, nil
}

// Trains builds one Train per pass on the current board, sorted ascending
// by expected arrival time (pass id breaks ties). Refetched every call.
func (tp *TimingPoint) Trains(ctx context.Context) ([]Train, error) {
	doc, err := tp.source.TimingPointDepartures(ctx, tp.code)
	if err != nil {
		return nil, err
	}
	trains := make([]Train, 0, len(doc.Passes))
	for id, pass := range doc.Passes {
		train, err := NewTrain(id, pass)
		if err != nil {
			return nil, err
		}
		trains = append(trains, train)
	}
	sort.Slice(trains, func(i, j int) bool {
		if !trains[i].expected.Equal(trains[j].expected) {
			return trains[i].expected.Before(trains[j].expected)
		}
		return trains[i].id < trains[j].id
	})
	return trains, nil
}

// Lines returns the distinct line numbers on the board, sorted. Computed
// once per instance; a later refetch of Trains does not refresh it.
func (tp *TimingPoint) Lines(ctx context.Context) ([]string, error) {
	if tp.haveLines {
		return tp.lineNames, nil
	}
	trains, err := tp.Trains(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, train := range trains {
		if _, ok := seen[train.line]; ok {
			continue
		}
		seen[train.line] = struct{}{}
		names = append(names, train.line)
	}
	sort.Strings(names)
	tp.lineNames = names
	tp.haveLines = true
	return names, nil
}

// LinesWithDirection returns one Line projection per distinct line number,
// each bound back to this timing point.
func (tp *TimingPoint) LinesWithDirection(ctx context.Context) ([]*Line, error) {
	names, err := tp.Lines(ctx)
	if err != nil {
		return nil, err
	}
	lines := make([]*Line, 0, len(names))
	for _, name := range names {
		lines = append(lines, NewLine(name, tp, tp.table))
	}
	return lines, nil
}
