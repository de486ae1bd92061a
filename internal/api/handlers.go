package api

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ovcommute/ovcommute_core/internal/config"
	"github.com/ovcommute/ovcommute_core/internal/ovapi"
	"github.com/ovcommute/ovcommute_core/internal/transit"
)

// --- Response types ---

// TimingPointInfo represents one platform within a station
type TimingPointInfo struct {
	Code     string `json:"code"`
	StopName string `json:"stop_name"`
}

// LineView represents one line in one direction, with its summary
type LineView struct {
	transit.Summary
	Human string `json:"human"`
}

// StationResponse is the response for the station overview endpoint
type StationResponse struct {
	Code         string                         `json:"code"`
	Name         string                         `json:"name"`
	TimingPoints []TimingPointInfo              `json:"timing_points"`
	Lines        map[string]map[string]LineView `json:"lines"`
}

// DepartureInfo represents a single upcoming departure
type DepartureInfo struct {
	Line            string `json:"line"`
	Destination     string `json:"destination"`
	ExpectedArrival string `json:"expected_arrival"`
	TargetArrival   string `json:"target_arrival"`
	DelayMin        int    `json:"delay_min"`
	MinutesUntil    int    `json:"minutes_until"`
}

// DeparturesResponse is the response for the departures endpoint
type DeparturesResponse struct {
	Code        string          `json:"code"`
	Departures  []DepartureInfo `json:"departures"`
	Total       int             `json:"total"`
	CurrentTime string          `json:"current_time"`
}

// CommuteResponse is the response for a named commute
type CommuteResponse struct {
	Name    string          `json:"name"`
	Stop    string          `json:"stop"`
	Summary transit.Summary `json:"summary"`
	Human   string          `json:"human"`
}

// --- Handlers ---

// Handler serves the commute endpoints on top of the transit service.
type Handler struct {
	svc      *transit.Service
	commutes map[string]config.Commute
}

// NewHandler creates a Handler.
func NewHandler(svc *transit.Service, commutes map[string]config.Commute) *Handler {
	return &Handler{svc: svc, commutes: commutes}
}

// Register mounts all routes on the app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/health", h.Health)
	app.Get("/v1/commutes/:name", h.Commute)
	app.Get("/v1/stations/:code", h.Station)
	app.Get("/v1/stations/:code/summary", h.StationSummary)
	app.Get("/v1/stations/:code/departures", h.Departures)
}

// Health handles the /health endpoint
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Commute handles /v1/commutes/:name, e.g. /v1/commutes/morning
func (h *Handler) Commute(c *fiber.Ctx) error {
	name := c.Params("name")
	commute, ok := h.commutes[name]
	if !ok {
		return c.Status(404).JSON(fiber.Map{
			"error": "unknown commute: " + name,
		})
	}

	summary, err := h.svc.StationSummary(c.Context(), commute.Stop, commute.Line, commute.Direction, time.Now())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(CommuteResponse{
		Name:    name,
		Stop:    commute.Stop,
		Summary: summary,
		Human:   summary.Human(),
	})
}

// Station handles /v1/stations/:code
func (h *Handler) Station(c *fiber.Ctx) error {
	code := c.Params("code")
	ctx := c.Context()
	now := time.Now()

	station := h.svc.Station(code)
	name, err := station.Name(ctx)
	if err != nil {
		return errorResponse(c, err)
	}

	points, err := station.Directions(ctx)
	if err != nil {
		return errorResponse(c, err)
	}
	pointInfos := make([]TimingPointInfo, 0, len(points))
	for _, point := range points {
		stopName, err := point.StopName(ctx)
		if err != nil {
			return errorResponse(c, err)
		}
		pointInfos = append(pointInfos, TimingPointInfo{Code: point.Code(), StopName: stopName})
	}

	byDirection, err := station.LinesByDirection(ctx)
	if err != nil {
		return errorResponse(c, err)
	}
	lines := make(map[string]map[string]LineView, len(byDirection))
	for lineName, directions := range byDirection {
		lines[lineName] = make(map[string]LineView, len(directions))
		for direction, line := range directions {
			summary, err := line.Summary(ctx, now)
			if err != nil {
				return errorResponse(c, err)
			}
			lines[lineName][direction] = LineView{Summary: summary, Human: summary.Human()}
		}
	}

	return c.JSON(StationResponse{
		Code:         code,
		Name:         name,
		TimingPoints: pointInfos,
		Lines:        lines,
	})
}

// StationSummary handles /v1/stations/:code/summary?line=E&direction=Northbound
func (h *Handler) StationSummary(c *fiber.Ctx) error {
	code := c.Params("code")
	line := c.Query("line")
	direction := c.Query("direction")

	if line == "" || direction == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": "missing required parameters: line and direction",
		})
	}

	summary, err := h.svc.StationSummary(c.Context(), code, line, direction, time.Now())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"summary": summary,
		"human":   summary.Human(),
	})
}

// Departures handles /v1/stations/:code/departures
func (h *Handler) Departures(c *fiber.Ctx) error {
	code := c.Params("code")
	now := time.Now()

	trains, err := h.svc.Station(code).Departures(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}

	departures := make([]DepartureInfo, 0, len(trains))
	for _, train := range trains {
		departures = append(departures, DepartureInfo{
			Line:            train.Line(),
			Destination:     train.Destination(),
			ExpectedArrival: train.ArrivalTime().Format(time.RFC3339),
			TargetArrival:   train.TargetArrivalTime().Format(time.RFC3339),
			DelayMin:        train.DelayMinutes(),
			MinutesUntil:    train.MinutesUntil(now),
		})
	}

	return c.JSON(DeparturesResponse{
		Code:        code,
		Departures:  departures,
		Total:       len(departures),
		CurrentTime: now.Format(time.RFC3339),
	})
}

// errorResponse maps typed domain and upstream errors to HTTP statuses.
// Nothing is replaced with a default value: partial data is an error the
// caller gets to see.
func errorResponse(c *fiber.Ctx, err error) error {
	var (
		lineNotFound  *transit.LineNotFoundError
		unknownPoint  *transit.UnknownTimingPointError
		unknownDest   *transit.UnknownDestinationError
		malformedTime *transit.MalformedTimestampError
		fetchErr      *ovapi.FetchError
		httpErr       *ovapi.HTTPError
		parseErr      *ovapi.ParseError
	)
	switch {
	case errors.As(err, &lineNotFound), errors.As(err, &unknownPoint):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &unknownDest),
		errors.Is(err, transit.ErrNoIntervals),
		errors.Is(err, transit.ErrNoDepartures):
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &fetchErr), errors.As(err, &httpErr),
		errors.As(err, &parseErr), errors.As(err, &malformedTime):
		log.Printf("upstream error: %v", err)
		return c.Status(502).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Printf("Error: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
}
