package transit

import (
	"context"
	"fmt"
	"time"

	"github.com/ovcommute/ovcommute_core/internal/ovapi"
)

// fakeSource serves canned departure documents and lets tests mutate them
// between calls.
type fakeSource struct {
	stopAreas map[string]map[string]ovapi.TimingPointDocument
	points    map[string]ovapi.TimingPointDocument
	err       error
}

func (f *fakeSource) StopAreaDepartures(_ context.Context, stopAreaCode string) (map[string]ovapi.TimingPointDocument, error) {
	if f.err != nil {
		return nil, f.err
	}
	docs, ok := f.stopAreas[stopAreaCode]
	if !ok {
		return nil, &ovapi.ParseError{
			Endpoint: "stopareacode/" + stopAreaCode + "/departures",
			Err:      fmt.Errorf("stop area %q missing from response", stopAreaCode),
		}
	}
	return docs, nil
}

func (f *fakeSource) TimingPointDepartures(_ context.Context, timingPointCode string) (ovapi.TimingPointDocument, error) {
	if f.err != nil {
		return ovapi.TimingPointDocument{}, f.err
	}
	doc, ok := f.points[timingPointCode]
	if !ok {
		return ovapi.TimingPointDocument{}, &ovapi.ParseError{
			Endpoint: "tpc/" + timingPointCode + "/departures",
			Err:      fmt.Errorf("timing point %q missing from response", timingPointCode),
		}
	}
	return doc, nil
}

// baseTime anchors fixture timestamps on a fixed morning.
var baseTime = time.Date(2024, time.March, 11, 8, 0, 0, 0, time.Local)

// stamp renders an offset from baseTime in the upstream timestamp format.
func stamp(offset time.Duration) string {
	return baseTime.Add(offset).Format(timestampLayout)
}

// pass builds an upstream departure record with expected == target + delay.
func pass(line, destination string, target time.Duration, delay time.Duration) ovapi.Pass {
	return ovapi.Pass{
		LinePublicNumber:    line,
		DestinationName50:   destination,
		ExpectedArrivalTime: stamp(target + delay),
		TargetArrivalTime:   stamp(target),
	}
}

func board(stopName string, passes map[string]ovapi.Pass) ovapi.TimingPointDocument {
	return ovapi.TimingPointDocument{
		Stop:   ovapi.Stop{TimingPointName: stopName},
		Passes: passes,
	}
}

func testTable() DirectionTable {
	return NewDirectionTable(map[string][]string{
		"Northbound": {"Rotterdam Centraal", "Den Haag Centraal"},
		"Southbound": {"De Akkers", "Slinge"},
		"Eastbound":  {"Nesselande"},
		"Westbound":  {"Schiedam Centrum"},
	})
}
