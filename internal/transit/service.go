package transit

import (
	"context"
	"time"
)

// Service is the entry point the presentation layer talks to.
type Service struct {
	source Source
	table  DirectionTable
}

// NewService wires a data source and a direction table.
func NewService(source Source, table DirectionTable) *Service {
	return &Service{source: source, table: table}
}

// Station returns the station view for a stop-area code.
func (s *Service) Station(code string) *Station {
	return NewStation(code, s.source, s.table)
}

// StationSummary is the commute use case: one line, one direction, at one
// station. A (line, direction) pairing the station does not currently
// serve fails with *LineNotFoundError.
func (s *Service) StationSummary(ctx context.Context, stopCode, lineName, direction string, now time.Time) (Summary, error) {
	byDirection, err := s.Station(stopCode).LinesByDirection(ctx)
	if err != nil {
		return Summary{}, err
	}
	line, ok := byDirection[lineName][direction]
	if !ok {
		return Summary{}, &LineNotFoundError{StopAreaCode: stopCode, Line: lineName, Direction: direction}
	}
	return line.Summary(ctx, now)
}
