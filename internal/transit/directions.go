package transit

import (
	"context"

	"github.com/ovcommute/ovcommute_core/internal/ovapi"
)

// Source supplies parsed upstream departure documents. The production
// implementation is *ovapi.Client; tests substitute a fixture-backed one.
type Source interface {
	StopAreaDepartures(ctx context.Context, stopAreaCode string) (map[string]ovapi.TimingPointDocument, error)
	TimingPointDepartures(ctx context.Context, timingPointCode string) (ovapi.TimingPointDocument, error)
}

// DirectionTable maps destination names to a compass direction
// ("Northbound", "Southbound", ...). It is built once from configuration
// and read-only afterwards; components that resolve directions receive it
// explicitly.
type DirectionTable map[string]string

// NewDirectionTable inverts a direction -> destinations mapping.
func NewDirectionTable(directions map[string][]string) DirectionTable {
	table := make(DirectionTable)
	for direction, destinations := range directions {
		for _, destination := range destinations {
			table[destination] = direction
		}
	}
	return table
}

// Direction resolves a destination. The table is maintained by hand
// ("De Akkers" famously had to be added), so a miss is a typed error
// rather than a silent default.
func (t DirectionTable) Direction(destination string) (string, error) {
	direction, ok := t[destination]
	if !ok {
		return "", &UnknownDestinationError{Destination: destination}
	}
	return direction, nil
}
