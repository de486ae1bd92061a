package ovapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/ovcommute/ovcommute_core/internal/cache"
)

// Config holds upstream client configuration
type Config struct {
	BaseURL       string
	UserAgent     string
	Timeout       time.Duration
	RetryAttempts int
	RetryBackoff  time.Duration
	CacheTTL      time.Duration
}

// Client fetches departure documents from the OVapi feed. A response cache
// sits in front of the raw fetch, a circuit breaker behind it; network
// failures are retried with exponential backoff, HTTP and parse failures
// are not.
type Client struct {
	cfg     Config
	http    *http.Client
	store   cache.Store
	breaker *gobreaker.CircuitBreaker
}

// NewClient creates a Client using store as its response cache.
func NewClient(cfg Config, store cache.Store) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://v0.ovapi.nl/"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "github.com/ovcommute/ovcommute_core"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 60 * time.Second
	}

	settings := gobreaker.Settings{
		Name:    "OVAPIClient",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Printf("Circuit breaker %s changed state from %s to %s", name, from.String(), to.String())
		},
	}

	return &Client{
		cfg:     cfg,
		http:    &http.Client{},
		store:   store,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// StopAreaDepartures returns the departure board of every timing point in a
// stop area, keyed by timing-point code.
func (c *Client) StopAreaDepartures(ctx context.Context, stopAreaCode string) (map[string]TimingPointDocument, error) {
	endpoint := fmt.Sprintf("stopareacode/%s/departures", stopAreaCode)
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	var doc map[string]map[string]TimingPointDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &ParseError{Endpoint: endpoint, Err: err}
	}
	points, ok := doc[stopAreaCode]
	if !ok {
		return nil, &ParseError{Endpoint: endpoint, Err: fmt.Errorf("stop area %q missing from response", stopAreaCode)}
	}
	return points, nil
}

// TimingPointDepartures returns the departure board of one timing point.
func (c *Client) TimingPointDepartures(ctx context.Context, timingPointCode string) (TimingPointDocument, error) {
	endpoint := fmt.Sprintf("tpc/%s/departures", timingPointCode)
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return TimingPointDocument{}, err
	}
	var doc map[string]TimingPointDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return TimingPointDocument{}, &ParseError{Endpoint: endpoint, Err: err}
	}
	point, ok := doc[timingPointCode]
	if !ok {
		return TimingPointDocument{}, &ParseError{Endpoint: endpoint, Err: fmt.Errorf("timing point %q missing from response", timingPointCode)}
	}
	return point, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	if body, ok := c.store.Get(ctx, endpoint); ok {
		return body, nil
	}

	var body []byte
	var err error
	for attempt := 0; ; attempt++ {
		body, err = c.fetchOnce(ctx, endpoint)
		if err == nil {
			break
		}
		var fe *FetchError
		if !errors.As(err, &fe) || attempt >= c.cfg.RetryAttempts {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, &FetchError{Endpoint: endpoint, Err: ctx.Err()}
		case <-time.After(exponentialBackoff(attempt, c.cfg.RetryBackoff)):
		}
	}

	c.store.Set(ctx, endpoint, body, c.cfg.CacheTTL)
	return body, nil
}

func (c *Client) fetchOnce(ctx context.Context, endpoint string) ([]byte, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		reqCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.cfg.BaseURL+endpoint, nil)
		if err != nil {
			return nil, &FetchError{Endpoint: endpoint, Err: err}
		}
		req.Header.Set("User-Agent", c.cfg.UserAgent)

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, &FetchError{Endpoint: endpoint, Err: err}
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			io.Copy(io.Discard, resp.Body)
			return nil, &HTTPError{Endpoint: endpoint, StatusCode: resp.StatusCode}
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &FetchError{Endpoint: endpoint, Err: err}
		}
		return body, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &FetchError{Endpoint: endpoint, Err: err}
		}
		return nil, err
	}
	return result.([]byte), nil
}

func exponentialBackoff(attempt int, base time.Duration) time.Duration {
	if base == 0 {
		base = 500 * time.Millisecond
	}
	return base * (1 << attempt)
}
