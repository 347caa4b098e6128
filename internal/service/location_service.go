package service

import (
	"context"
	"fmt"

	"gasp-api/internal/geocoder"
	"gasp-api/internal/models"
	"gasp-api/internal/observability"
	"gasp-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	opAdd    = "add"
	opCheck  = "check"
	opLatLng = "latlng"
)

// Verdict classifies a resolution that did not fail.
// It is only meaningful when the accompanying error is nil.
type Verdict int

const (
	Matched Verdict = iota + 1
	NoMatch
	Ambiguous
)

func (v Verdict) String() string {
	switch v {
	case Matched:
		return "matched"
	case NoMatch:
		return "no_match"
	case Ambiguous:
		return "ambiguous"
	default:
		return "unknown"
	}
}

// Geocoder interface for dependency injection
type Geocoder interface {
	Resolve(ctx context.Context, address string) (geocoder.Outcome, error)
}

// LocationStore interface for dependency injection
type LocationStore interface {
	Connect(ctx context.Context) (repository.Conn, error)
}

// LocationService applies the single-match policy to provider results and
// persists accepted locations.
type LocationService struct {
	geocoder Geocoder
	store    LocationStore
	metrics  *observability.Metrics
	newID    func() string
}

// NewLocationService creates a new location service. metrics may be nil.
func NewLocationService(geo Geocoder, store LocationStore, metrics *observability.Metrics) *LocationService {
	return &LocationService{
		geocoder: geo,
		store:    store,
		metrics:  metrics,
		newID:    uuid.NewString,
	}
}

// AddLocation resolves q.AddressString and, on a single match, stores it under q.Name.
func (s *LocationService) AddLocation(ctx context.Context, q models.LocationQuery) (loc *models.GaspLocation, verdict Verdict, err error) {
	defer func() { s.record(opAdd, verdict, err) }()

	result, verdict, err := s.resolveSingle(ctx, q.AddressString)
	if err != nil || verdict != Matched {
		return nil, verdict, err
	}

	gasp := toGaspLocation(s.newID(), q.Name, *result)
	if err := s.persist(ctx, gasp); err != nil {
		return nil, 0, err
	}

	zerolog.Ctx(ctx).Info().
		Str("id", gasp.ID).
		Str("name", gasp.Name).
		Str("formatted_address", gasp.FormattedAddress).
		Msg("location stored")

	return &gasp, Matched, nil
}

// CheckLocation resolves q.AddressString and returns the provider's result on a single match.
func (s *LocationService) CheckLocation(ctx context.Context, q models.LocationQuery) (result *models.GeocodeResult, verdict Verdict, err error) {
	defer func() { s.record(opCheck, verdict, err) }()

	return s.resolveSingle(ctx, q.AddressString)
}

// LatLng resolves q.AddressString and returns only the coordinates on a single match.
func (s *LocationService) LatLng(ctx context.Context, q models.LocationQuery) (loc *models.Location, verdict Verdict, err error) {
	defer func() { s.record(opLatLng, verdict, err) }()

	result, verdict, err := s.resolveSingle(ctx, q.AddressString)
	if err != nil || verdict != Matched {
		return nil, verdict, err
	}

	resolved := toResolvedLocation(*result)
	return &resolved, Matched, nil
}

// resolveSingle calls the provider once and accepts the result only if exactly one came back.
func (s *LocationService) resolveSingle(ctx context.Context, address string) (*models.GeocodeResult, Verdict, error) {
	logger := zerolog.Ctx(ctx)

	outcome, err := s.geocoder.Resolve(ctx, address)
	if err != nil {
		return nil, 0, fmt.Errorf("service: resolve address: %w", err)
	}

	switch outcome.Kind {
	case geocoder.KindZeroResults:
		logger.Debug().Str("address", address).Msg("no match for address")
		return nil, NoMatch, nil

	case geocoder.KindProviderError:
		logger.Warn().Str("address", address).Str("reason", string(outcome.Reason)).Msg("provider rejected address")
		return nil, 0, &geocoder.ProviderError{Status: outcome.Reason}

	case geocoder.KindOK:
		if len(outcome.Results) != 1 {
			logger.Debug().Str("address", address).Int("results", len(outcome.Results)).Msg("ambiguous match for address")
			return nil, Ambiguous, nil
		}
		result := outcome.Results[0]
		return &result, Matched, nil

	default:
		return nil, 0, fmt.Errorf("service: unexpected outcome kind %s", outcome.Kind)
	}
}

// persist leases a store connection for this call only and always releases it.
func (s *LocationService) persist(ctx context.Context, loc models.GaspLocation) error {
	conn, err := s.store.Connect(ctx)
	if err != nil {
		return fmt.Errorf("service: lease store connection: %w", err)
	}
	defer conn.Close()

	if err := conn.InsertLocation(ctx, loc); err != nil {
		return fmt.Errorf("service: store location: %w", err)
	}

	s.metrics.CountStored()
	return nil
}

func (s *LocationService) record(op string, verdict Verdict, err error) {
	if err != nil {
		s.metrics.CountRequest(op, "error")
		return
	}
	s.metrics.CountRequest(op, verdict.String())
}
