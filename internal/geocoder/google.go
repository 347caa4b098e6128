package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"gasp-api/internal/models"
	"gasp-api/internal/observability"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

const (
	// geocodeAPIURL is the Google Geocoding API JSON endpoint.
	geocodeAPIURL = "https://maps.googleapis.com/maps/api/geocode/json"

	defaultLanguage = "en"
	defaultTimeout  = 10 * time.Second
)

// Client resolves addresses with the Google Geocoding API.
// It issues exactly one request per Resolve call and never retries or caches.
type Client struct {
	apiKey     string
	language   string
	baseURL    string
	httpClient *http.Client
	clock      clockwork.Clock
	metrics    *observability.Metrics
}

// Option configures a Client.
type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

func WithLanguage(lang string) Option {
	return func(c *Client) {
		if lang != "" {
			c.language = lang
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func WithMetrics(m *observability.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func WithClock(clock clockwork.Clock) Option {
	return func(c *Client) { c.clock = clock }
}

// NewClient creates a geocoding client for the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		language:   defaultLanguage,
		baseURL:    geocodeAPIURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		clock:      clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve geocodes address and normalizes the provider status into an Outcome.
// Transport failures, non-200 responses and undecodable bodies are returned as errors.
func (c *Client) Resolve(ctx context.Context, address string) (Outcome, error) {
	params := url.Values{
		"address":  {address},
		"language": {c.language},
		"key":      {c.apiKey},
	}

	start := c.clock.Now()
	resp, err := c.doRequest(ctx, c.baseURL+"?"+params.Encode())
	if err != nil {
		c.metrics.ObserveProvider("transport_error", c.clock.Since(start))
		return Outcome{}, err
	}
	c.metrics.ObserveProvider(string(resp.Status), c.clock.Since(start))

	results := make([]models.GeocodeResult, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, r.toModel())
	}

	outcome := outcomeFor(resp.Status, results)
	logger := zerolog.Ctx(ctx)
	switch outcome.Kind {
	case KindOK:
		logMatches(logger, address, outcome.Results)
	case KindProviderError:
		logger.Warn().
			Str("address", address).
			Str("status", string(resp.Status)).
			Str("error_message", resp.ErrorMessage).
			Msg("geocoding provider returned an error status")
	}
	return outcome, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (geocodeResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return geocodeResponse{}, fmt.Errorf("geocoder: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return geocodeResponse{}, fmt.Errorf("geocoder: http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return geocodeResponse{}, fmt.Errorf("geocoder: status %d: %s", resp.StatusCode, body)
	}

	var out geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return geocodeResponse{}, fmt.Errorf("geocoder: decode response: %w", err)
	}
	return out, nil
}

func logMatches(logger *zerolog.Logger, address string, results []models.GeocodeResult) {
	verbose := logger.GetLevel() <= zerolog.DebugLevel && zerolog.GlobalLevel() <= zerolog.DebugLevel
	for _, r := range results {
		logger.Info().
			Str("address", address).
			Str("formatted_address", r.FormattedAddress).
			Float64("lat", r.Geometry.Location.Lat).
			Float64("lng", r.Geometry.Location.Lng).
			Int("candidates", len(results)).
			Msg("match found for address")

		if !verbose {
			continue
		}
		for _, comp := range r.AddressComponents {
			kind := ""
			if len(comp.Types) > 0 {
				kind = comp.Types[0]
			}
			logger.Debug().
				Str("formatted_address", r.FormattedAddress).
				Str("component", kind).
				Str("short_name", comp.ShortName).
				Msg("address component")
		}
	}
}

// Google Geocoding API response types.

type geocodeResponse struct {
	Status       Status          `json:"status"`
	ErrorMessage string          `json:"error_message"`
	Results      []geocodeResult `json:"results"`
}

type geocodeResult struct {
	AddressComponents []addressComponent `json:"address_components"`
	FormattedAddress  string             `json:"formatted_address"`
	Geometry          geometry           `json:"geometry"`
	PlaceID           string             `json:"place_id"`
	Types             []string           `json:"types"`
	PartialMatch      bool               `json:"partial_match"`
}

type addressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

type geometry struct {
	Location     latLng  `json:"location"`
	LocationType string  `json:"location_type"`
	Viewport     *bounds `json:"viewport"`
	Bounds       *bounds `json:"bounds"`
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type bounds struct {
	Northeast latLng `json:"northeast"`
	Southwest latLng `json:"southwest"`
}

func (r geocodeResult) toModel() models.GeocodeResult {
	components := make([]models.AddressComponent, 0, len(r.AddressComponents))
	for _, c := range r.AddressComponents {
		components = append(components, models.AddressComponent{
			LongName:  c.LongName,
			ShortName: c.ShortName,
			Types:     c.Types,
		})
	}

	return models.GeocodeResult{
		Types:             r.Types,
		FormattedAddress:  r.FormattedAddress,
		AddressComponents: components,
		Geometry: models.Geometry{
			Location:     r.Geometry.Location.toModel(),
			LocationType: r.Geometry.LocationType,
			Viewport:     r.Geometry.Viewport.toModel(),
			Bounds:       r.Geometry.Bounds.toModel(),
		},
		PlaceID:      r.PlaceID,
		PartialMatch: r.PartialMatch,
	}
}

func (l latLng) toModel() models.Location {
	return models.Location{Lat: l.Lat, Lng: l.Lng}
}

func (b *bounds) toModel() *models.Bounds {
	if b == nil {
		return nil
	}
	return &models.Bounds{
		Southwest: b.Southwest.toModel(),
		Northeast: b.Northeast.toModel(),
	}
}
