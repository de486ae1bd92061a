package transit

import (
	"context"
	"sort"
)

// Station is a stop area: one or more timing points grouped under one
// code. Nothing is cached at this level; every view fetches fresh.
type Station struct {
	code   string
	source Source
	table  DirectionTable
}

// NewStation binds a stop-area code to its data source.
func NewStation(code string, source Source, table DirectionTable) *Station {
	return &Station{code: code, source: source, table: table}
}

// Code returns the stop-area code.
func (s *Station) Code() string { return s.code }

// Directions returns one TimingPoint per timing point reported for this
// stop area, sorted by code for a stable traversal order.
func (s *Station) Directions(ctx context.Context) ([]*TimingPoint, error) {
	docs, err := s.source.StopAreaDepartures(ctx, s.code)
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(docs))
	for code := range docs {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	points := make([]*TimingPoint, 0, len(codes))
	for _, code := range codes {
		points = append(points, NewTimingPoint(code, s.source, s.table))
	}
	return points, nil
}

// TimingPoint returns the timing point with the given code, verifying it
// actually belongs to this stop area. Feeding another station's code into
// a summary silently produced nonsense once; now it is a typed error.
func (s *Station) TimingPoint(ctx context.Context, code string) (*TimingPoint, error) {
	docs, err := s.source.StopAreaDepartures(ctx, s.code)
	if err != nil {
		return nil, err
	}
	if _, ok := docs[code]; !ok {
		return nil, &UnknownTimingPointError{StopAreaCode: s.code, TimingPointCode: code}
	}
	return NewTimingPoint(code, s.source, s.table), nil
}

// Name returns the stop name of the first timing point, or the stop-area
// code when the area reports no timing points.
func (s *Station) Name(ctx context.Context) (string, error) {
	points, err := s.Directions(ctx)
	if err != nil {
		return "", err
	}
	if len(points) == 0 {
		return s.code, nil
	}
	return points[0].StopName(ctx)
}

// LinesByDirection groups every line observed at any timing point by
// (line name, resolved direction). On a collision the later timing point
// wins; with one platform per direction collisions do not happen in
// practice.
func (s *Station) LinesByDirection(ctx context.Context) (map[string]map[string]*Line, error) {
	points, err := s.Directions(ctx)
	if err != nil {
		return nil, err
	}
	byDirection := make(map[string]map[string]*Line)
	for _, point := range points {
		lines, err := point.LinesWithDirection(ctx)
		if err != nil {
			return nil, err
		}
		for _, line := range lines {
			direction, err := line.Direction(ctx)
			if err != nil {
				return nil, err
			}
			if byDirection[line.name] == nil {
				byDirection[line.name] = make(map[string]*Line)
			}
			byDirection[line.name][direction] = line
		}
	}
	return byDirection, nil
}

// Departures returns every upcoming train across all timing points, in
// timing-point traversal order (not globally time-sorted). The slice is
// finite and safe to re-iterate.
func (s *Station) Departures(ctx context.Context) ([]Train, error) {
	points, err := s.Directions(ctx)
	if err != nil {
		return nil, err
	}
	var all []Train
	for _, point := range points {
		trains, err := point.Trains(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, trains...)
	}
	return all, nil
}
