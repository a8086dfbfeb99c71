// Package metrics bundles the Prometheus collectors for opskrifter.
// Every method is nil-safe so components can run without metrics wired.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles Prometheus collectors on a dedicated registry.
type Metrics struct {
	Registry          *prometheus.Registry
	CatalogFetches    *prometheus.CounterVec
	CatalogDuration   prometheus.Histogram
	CatalogRecipes    prometheus.Gauge
	SavedMutations    *prometheus.CounterVec
	SavedItems        prometheus.Gauge
	SavedReadFailures prometheus.Counter
	Dispatches        *prometheus.CounterVec
}

// New constructs and registers all collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	fetches := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opskrifter_catalog_fetches_total",
			Help: "Catalog fetches by result.",
		},
		[]string{"result"},
	)
	duration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "opskrifter_catalog_fetch_duration_seconds",
			Help:    "Catalog fetch and decode latency.",
			Buckets: prometheus.DefBuckets,
		},
	)
	recipes := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "opskrifter_catalog_recipes",
			Help: "Recipes in the most recently loaded catalog.",
		},
	)
	mutations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opskrifter_saved_mutations_total",
			Help: "Saved-list mutations by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)
	savedItems := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "opskrifter_saved_items",
			Help: "Entries in the saved list after the last write.",
		},
	)
	readFailures := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "opskrifter_saved_read_failures_total",
			Help: "Saved-list reads that fell back to an empty list.",
		},
	)
	dispatches := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opskrifter_dispatch_total",
			Help: "UI events routed by the dispatcher, by route.",
		},
		[]string{"route"},
	)

	registry.MustRegister(fetches, duration, recipes, mutations, savedItems, readFailures, dispatches)

	return &Metrics{
		Registry:          registry,
		CatalogFetches:    fetches,
		CatalogDuration:   duration,
		CatalogRecipes:    recipes,
		SavedMutations:    mutations,
		SavedItems:        savedItems,
		SavedReadFailures: readFailures,
		Dispatches:        dispatches,
	}
}

// ObserveFetch records one catalog fetch.
func (m *Metrics) ObserveFetch(result string, d time.Duration, recipes int) {
	if m == nil {
		return
	}
	m.CatalogFetches.WithLabelValues(result).Inc()
	m.CatalogDuration.Observe(d.Seconds())
	m.CatalogRecipes.Set(float64(recipes))
}

// IncMutation counts a saved-list mutation. outcome is "applied" or "noop".
func (m *Metrics) IncMutation(op, outcome string) {
	if m == nil {
		return
	}
	m.SavedMutations.WithLabelValues(op, outcome).Inc()
}

// SetSavedItems records the saved-list length.
func (m *Metrics) SetSavedItems(n int) {
	if m == nil {
		return
	}
	m.SavedItems.Set(float64(n))
}

// IncReadFailure counts a saved-list read that failed soft.
func (m *Metrics) IncReadFailure() {
	if m == nil {
		return
	}
	m.SavedReadFailures.Inc()
}

// IncDispatch counts a routed UI event.
func (m *Metrics) IncDispatch(route string) {
	if m == nil {
		return
	}
	m.Dispatches.WithLabelValues(route).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Serve runs a /metrics listener on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
