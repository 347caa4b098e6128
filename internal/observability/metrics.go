package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for location requests and provider calls.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	GeocodeRequests  *prometheus.CounterVec   // labels: operation={add,check,latlng}, outcome={matched,no_match,ambiguous,error}
	ProviderDuration *prometheus.HistogramVec // labels: status
	LocationsStored  prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gasp",
			Name:      "geocode_requests_total",
			Help:      "Location requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gasp",
			Name:      "provider_duration_seconds",
			Help:      "Geocoding provider request duration in seconds, by provider status.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"status"}),
		LocationsStored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gasp",
			Name:      "locations_stored_total",
			Help:      "Canonical location records written to the store.",
		}),
	}

	reg.MustRegister(m.GeocodeRequests, m.ProviderDuration, m.LocationsStored)
	return m
}

func (m *Metrics) CountRequest(operation, outcome string) {
	if m == nil {
		return
	}
	m.GeocodeRequests.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) ObserveProvider(status string, d time.Duration) {
	if m == nil {
		return
	}
	m.ProviderDuration.WithLabelValues(status).Observe(d.Seconds())
}

func (m *Metrics) CountStored() {
	if m == nil {
		return
	}
	m.LocationsStored.Inc()
}
