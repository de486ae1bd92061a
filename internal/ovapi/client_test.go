package ovapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovcommute/ovcommute_core/internal/cache"
)

const beursPayload = `{
	"Bdp": {
		"31008703": {
			"Stop": {"TimingPointName": "Beurs"},
			"Passes": {
				"p1": {
					"LinePublicNumber": "E",
					"DestinationName50": "De Akkers",
					"ExpectedArrivalTime": "2024-03-11T08:05:00",
					"TargetArrivalTime": "2024-03-11T08:05:00"
				}
			}
		}
	}
}`

func newTestClient(t *testing.T, baseURL string, retries int) *Client {
	t.Helper()
	return NewClient(Config{
		BaseURL:       baseURL,
		Timeout:       2 * time.Second,
		RetryAttempts: retries,
		RetryBackoff:  time.Millisecond,
		CacheTTL:      time.Minute,
	}, cache.NewMemoryStore(time.Minute))
}

func TestClientStopAreaDepartures(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "/stopareacode/Bdp/departures", r.URL.Path)
		w.Write([]byte(beursPayload))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL+"/", 0)

	points, err := client.StopAreaDepartures(context.Background(), "Bdp")
	require.NoError(t, err)
	require.Contains(t, points, "31008703")
	assert.Equal(t, "Beurs", points["31008703"].Stop.TimingPointName)
	assert.Equal(t, "E", points["31008703"].Passes["p1"].LinePublicNumber)

	// Second call within the TTL is served from the cache.
	_, err = client.StopAreaDepartures(context.Background(), "Bdp")
	require.NoError(t, err)
	assert.Equal(t, int32(1), requests.Load())
}

func TestClientTimingPointDepartures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tpc/31008703/departures", r.URL.Path)
		w.Write([]byte(`{"31008703": {"Stop": {"TimingPointName": "Beurs"}, "Passes": {}}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL+"/", 0)

	doc, err := client.TimingPointDepartures(context.Background(), "31008703")
	require.NoError(t, err)
	assert.Equal(t, "Beurs", doc.Stop.TimingPointName)
}

func TestClientHTTPErrorNotRetried(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL+"/", 3)

	_, err := client.StopAreaDepartures(context.Background(), "Bdp")
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, int32(1), requests.Load(), "non-2xx responses must not be retried")
}

func TestClientParseError(t *testing.T) {
	t.Run("malformed JSON", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{not json`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL+"/", 0)
		_, err := client.StopAreaDepartures(context.Background(), "Bdp")
		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr)
	})

	t.Run("stop area missing from response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"SomethingElse": {}}`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL+"/", 0)
		_, err := client.StopAreaDepartures(context.Background(), "Bdp")
		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr)
	})
}

func TestClientFetchErrorRetried(t *testing.T) {
	// A server that is already closed yields connection errors.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(t, server.URL+"/", 2)

	start := time.Now()
	_, err := client.StopAreaDepartures(context.Background(), "Bdp")
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	// Two retries with 1ms base backoff: the call must have waited at least
	// base + 2*base.
	assert.GreaterOrEqual(t, time.Since(start), 3*time.Millisecond)
}

func TestClientContextCancelledDuringBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(Config{
		BaseURL:       server.URL + "/",
		Timeout:       time.Second,
		RetryAttempts: 5,
		RetryBackoff:  time.Hour,
	}, cache.NewMemoryStore(time.Minute))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.StopAreaDepartures(ctx, "Bdp")
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExponentialBackoff(t *testing.T) {
	base := 500 * time.Millisecond
	assert.Equal(t, 500*time.Millisecond, exponentialBackoff(0, base))
	assert.Equal(t, time.Second, exponentialBackoff(1, base))
	assert.Equal(t, 2*time.Second, exponentialBackoff(2, base))
}
