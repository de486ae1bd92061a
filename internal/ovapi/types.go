package ovapi

// Wire types for the v0.ovapi.nl departure feeds. Field names match the
// upstream JSON exactly and must not be renamed.

// Stop carries the human-readable name of a timing point.
type Stop struct {
	TimingPointName string `json:"TimingPointName"`
}

// Pass is one scheduled/real-time departure at a timing point.
// Both timestamps are local-time ISO-8601 strings without a zone offset.
type Pass struct {
	LinePublicNumber    string `json:"LinePublicNumber"`
	DestinationName50   string `json:"DestinationName50"`
	ExpectedArrivalTime string `json:"ExpectedArrivalTime"`
	TargetArrivalTime   string `json:"TargetArrivalTime"`
}

// TimingPointDocument is the departure board of one timing point.
type TimingPointDocument struct {
	Stop   Stop            `json:"Stop"`
	Passes map[string]Pass `json:"Passes"`
}
