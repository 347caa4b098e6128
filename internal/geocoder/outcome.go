package geocoder

import (
	"fmt"

	"gasp-api/internal/models"
)

// Status is the status string reported by the Google Geocoding API.
type Status string

const (
	StatusOK             Status = "OK"
	StatusZeroResults    Status = "ZERO_RESULTS"
	StatusOverDailyLimit Status = "OVER_DAILY_LIMIT"
	StatusOverQueryLimit Status = "OVER_QUERY_LIMIT"
	StatusRequestDenied  Status = "REQUEST_DENIED"
	StatusInvalidRequest Status = "INVALID_REQUEST"
	StatusUnknownError   Status = "UNKNOWN_ERROR"
)

// Kind tags the variant carried by an Outcome.
type Kind int

const (
	KindOK Kind = iota + 1
	KindZeroResults
	KindProviderError
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindZeroResults:
		return "zero_results"
	case KindProviderError:
		return "provider_error"
	default:
		return "unknown"
	}
}

// Outcome is the normalized result of one resolution attempt.
// KindOK always carries at least one result; Reason is set only for KindProviderError.
type Outcome struct {
	Kind    Kind
	Results []models.GeocodeResult
	Reason  Status
}

func OK(results []models.GeocodeResult) Outcome {
	return Outcome{Kind: KindOK, Results: results}
}

func ZeroResults() Outcome {
	return Outcome{Kind: KindZeroResults}
}

func ProviderFailure(reason Status) Outcome {
	return Outcome{Kind: KindProviderError, Reason: reason}
}

// ProviderError is returned to callers when the provider answered with a failure status.
type ProviderError struct {
	Status Status
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("geocoder: provider returned %s", e.Status)
}

// outcomeFor maps a provider status and its results onto an Outcome.
// Result count is not judged here beyond keeping KindOK non-empty.
func outcomeFor(status Status, results []models.GeocodeResult) Outcome {
	switch status {
	case StatusOK:
		if len(results) == 0 {
			return ZeroResults()
		}
		return OK(results)
	case StatusZeroResults:
		return ZeroResults()
	default:
		return ProviderFailure(status)
	}
}
