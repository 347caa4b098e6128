package geocoder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gasp-api/internal/models"
	"gasp-api/internal/observability"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKey           = "test-key"
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func amphitheatreResult() geocodeResult {
	return geocodeResult{
		FormattedAddress: "1600 Amphitheatre Parkway, Mountain View, CA",
		Geometry: geometry{
			Location:     latLng{Lat: 37.4224, Lng: -122.0842},
			LocationType: "ROOFTOP",
			Viewport: &bounds{
				Northeast: latLng{Lat: 37.4237, Lng: -122.0828},
				Southwest: latLng{Lat: 37.4210, Lng: -122.0855},
			},
		},
		AddressComponents: []addressComponent{
			{LongName: "1600", ShortName: "1600", Types: []string{"street_number"}},
			{LongName: "Amphitheatre Parkway", ShortName: "Amphitheatre Pkwy", Types: []string{"route"}},
			{LongName: "Mountain View", ShortName: "Mountain View", Types: []string{"locality", "political"}},
		},
		PlaceID: "ChIJ2eUgeAK6j4ARbn5u_wAGqWA",
		Types:   []string{"street_address"},
	}
}

func providerServer(t *testing.T, resp geocodeResponse) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Resolve_SingleMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1600 Amphitheatre Parkway", r.URL.Query().Get("address"))
		assert.Equal(t, "en", r.URL.Query().Get("language"))
		assert.Equal(t, testKey, r.URL.Query().Get("key"))

		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(geocodeResponse{
			Status:  StatusOK,
			Results: []geocodeResult{amphitheatreResult()},
		}))
	}))
	defer srv.Close()

	c := NewClient(testKey, WithBaseURL(srv.URL))
	outcome, err := c.Resolve(context.Background(), "1600 Amphitheatre Parkway")
	require.NoError(t, err)

	require.Equal(t, KindOK, outcome.Kind)
	require.Len(t, outcome.Results, 1)

	got := outcome.Results[0]
	assert.Equal(t, "1600 Amphitheatre Parkway, Mountain View, CA", got.FormattedAddress)
	assert.Equal(t, models.Location{Lat: 37.4224, Lng: -122.0842}, got.Geometry.Location)
	assert.Equal(t, "ROOFTOP", got.Geometry.LocationType)
	require.NotNil(t, got.Geometry.Viewport)
	assert.Equal(t, 37.4237, got.Geometry.Viewport.Northeast.Lat)
	assert.Nil(t, got.Geometry.Bounds)
	require.Len(t, got.AddressComponents, 3)
	assert.Equal(t, "Amphitheatre Pkwy", got.AddressComponents[1].ShortName)
	assert.Equal(t, []string{"route"}, got.AddressComponents[1].Types)
	assert.Equal(t, "ChIJ2eUgeAK6j4ARbn5u_wAGqWA", got.PlaceID)
	assert.Empty(t, outcome.Reason)
}

func TestClient_Resolve_CustomLanguage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "de", r.URL.Query().Get("language"))
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(geocodeResponse{Status: StatusZeroResults}))
	}))
	defer srv.Close()

	c := NewClient(testKey, WithBaseURL(srv.URL), WithLanguage("de"))
	_, err := c.Resolve(context.Background(), "Unter den Linden")
	require.NoError(t, err)
}

func TestClient_Resolve_ManyMatchesAreStillOK(t *testing.T) {
	results := make([]geocodeResult, 15)
	for i := range results {
		results[i] = geocodeResult{
			FormattedAddress: fmt.Sprintf("Springfield %d, USA", i),
			Geometry:         geometry{Location: latLng{Lat: 39.78 + float64(i), Lng: -89.65}},
		}
	}
	srv := providerServer(t, geocodeResponse{Status: StatusOK, Results: results})

	c := NewClient(testKey, WithBaseURL(srv.URL))
	outcome, err := c.Resolve(context.Background(), "Springfield")
	require.NoError(t, err)

	assert.Equal(t, KindOK, outcome.Kind)
	assert.Len(t, outcome.Results, 15)
}

func TestClient_Resolve_ZeroResults(t *testing.T) {
	tests := []struct {
		name string
		resp geocodeResponse
	}{
		{name: "zero results status", resp: geocodeResponse{Status: StatusZeroResults}},
		{name: "ok status without results", resp: geocodeResponse{Status: StatusOK, Results: []geocodeResult{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := providerServer(t, tt.resp)

			c := NewClient(testKey, WithBaseURL(srv.URL))
			outcome, err := c.Resolve(context.Background(), "xyzzy nowhere")
			require.NoError(t, err)

			assert.Equal(t, KindZeroResults, outcome.Kind)
			assert.Empty(t, outcome.Results)
		})
	}
}

func TestClient_Resolve_ProviderStatuses(t *testing.T) {
	statuses := []Status{
		StatusInvalidRequest,
		StatusOverQueryLimit,
		StatusOverDailyLimit,
		StatusRequestDenied,
		StatusUnknownError,
		Status("ERROR"),
		Status("SOMETHING_NEW"),
	}

	for _, status := range statuses {
		t.Run(string(status), func(t *testing.T) {
			srv := providerServer(t, geocodeResponse{Status: status, ErrorMessage: "nope"})

			c := NewClient(testKey, WithBaseURL(srv.URL))
			outcome, err := c.Resolve(context.Background(), "1600 Amphitheatre Parkway")
			require.NoError(t, err)

			assert.Equal(t, KindProviderError, outcome.Kind)
			assert.Equal(t, status, outcome.Reason)
			assert.Empty(t, outcome.Results)
		})
	}
}

func TestClient_Resolve_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	c := NewClient(testKey, WithBaseURL(srv.URL))
	_, err := c.Resolve(context.Background(), "1600 Amphitheatre Parkway")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_Resolve_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{"status": "OK", "results": [`))
	}))
	defer srv.Close()

	c := NewClient(testKey, WithBaseURL(srv.URL))
	_, err := c.Resolve(context.Background(), "1600 Amphitheatre Parkway")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_Resolve_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(testKey, WithBaseURL(srv.URL), WithTimeout(50*time.Millisecond))
	_, err := c.Resolve(context.Background(), "1600 Amphitheatre Parkway")
	require.Error(t, err)
}

func TestClient_Resolve_LogsComponentsOnlyAtDebug(t *testing.T) {
	tests := []struct {
		name           string
		level          zerolog.Level
		wantComponents bool
	}{
		{name: "info", level: zerolog.InfoLevel, wantComponents: false},
		{name: "debug", level: zerolog.DebugLevel, wantComponents: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := providerServer(t, geocodeResponse{Status: StatusOK, Results: []geocodeResult{amphitheatreResult()}})

			var buf bytes.Buffer
			logger := zerolog.New(&buf).Level(tt.level)
			ctx := logger.WithContext(context.Background())

			c := NewClient(testKey, WithBaseURL(srv.URL))
			_, err := c.Resolve(ctx, "1600 Amphitheatre Parkway")
			require.NoError(t, err)

			assert.Contains(t, buf.String(), "match found for address")
			assert.Contains(t, buf.String(), "1600 Amphitheatre Parkway, Mountain View, CA")
			if tt.wantComponents {
				assert.Contains(t, buf.String(), `"component":"route"`)
				assert.Contains(t, buf.String(), `"short_name":"Amphitheatre Pkwy"`)
			} else {
				assert.NotContains(t, buf.String(), "address component")
			}
		})
	}
}

func TestClient_Resolve_ObservesProviderDuration(t *testing.T) {
	clock := clockwork.NewFakeClock()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		clock.Advance(300 * time.Millisecond)
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(geocodeResponse{Status: StatusZeroResults}))
	}))
	defer srv.Close()

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	c := NewClient(testKey, WithBaseURL(srv.URL), WithClock(clock), WithMetrics(metrics))

	_, err := c.Resolve(context.Background(), "nowhere")
	require.NoError(t, err)

	assert.Equal(t, 1, testutil.CollectAndCount(metrics.ProviderDuration, "gasp_provider_duration_seconds"))
}

func TestOutcomeFor(t *testing.T) {
	one := []models.GeocodeResult{{FormattedAddress: "a"}}

	assert.Equal(t, OK(one), outcomeFor(StatusOK, one))
	assert.Equal(t, ZeroResults(), outcomeFor(StatusOK, nil))
	assert.Equal(t, ZeroResults(), outcomeFor(StatusZeroResults, one))
	assert.Equal(t, ProviderFailure(StatusRequestDenied), outcomeFor(StatusRequestDenied, nil))
}

func TestProviderError(t *testing.T) {
	err := &ProviderError{Status: StatusOverQueryLimit}
	assert.Equal(t, "geocoder: provider returned OVER_QUERY_LIMIT", err.Error())
	assert.Equal(t, "provider_error", KindProviderError.String())
}
