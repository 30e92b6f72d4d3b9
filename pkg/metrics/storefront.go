package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StorefrontMetrics records cart, wishlist and catalog activity.
type StorefrontMetrics struct {
	mutations     *prometheus.CounterVec
	stateErrors   *prometheus.CounterVec
	stateDuration *prometheus.HistogramVec
	filterResults prometheus.Histogram
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_mutations_total",
		Help: "Cart and wishlist mutations applied, by store and operation.",
	}, []string{"store", "op"})
	stateErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_state_errors_total",
		Help: "Failures loading or saving session state.",
	}, []string{"store", "stage"})
	stateDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_state_duration_seconds",
		Help:    "Time spent in a load-mutate-save cycle for session state.",
		Buckets: prometheus.DefBuckets,
	}, []string{"store"})
	filterResults := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_filter_results",
		Help:    "Number of products left after applying catalog filters.",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
	})
	reg.MustRegister(mutations, stateErrors, stateDuration, filterResults)
	return &StorefrontMetrics{
		mutations:     mutations,
		stateErrors:   stateErrors,
		stateDuration: stateDuration,
		filterResults: filterResults,
	}
}

// IncMutation counts an applied store operation.
func (m *StorefrontMetrics) IncMutation(store, op string) {
	if m == nil || m.mutations == nil {
		return
	}
	m.mutations.WithLabelValues(normalizeLabel(store), normalizeLabel(op)).Inc()
}

// IncStateError counts a failed state load or save.
func (m *StorefrontMetrics) IncStateError(store, stage string) {
	if m == nil || m.stateErrors == nil {
		return
	}
	m.stateErrors.WithLabelValues(normalizeLabel(store), normalizeLabel(stage)).Inc()
}

// ObserveStateDuration records how long a state round trip took.
func (m *StorefrontMetrics) ObserveStateDuration(store string, d time.Duration) {
	if m == nil || m.stateDuration == nil {
		return
	}
	m.stateDuration.WithLabelValues(normalizeLabel(store)).Observe(d.Seconds())
}

// ObserveFilterResults records the size of a filtered catalog listing.
func (m *StorefrontMetrics) ObserveFilterResults(n int) {
	if m == nil || m.filterResults == nil {
		return
	}
	m.filterResults.Observe(float64(n))
}

// Handler exposes the gatherer in the prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
