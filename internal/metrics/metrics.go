// Package metrics exports dashboard activity as Prometheus metrics on a
// private registry.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tommylowry/patriot-center/internal/options"
)

const namespace = "patriot"

// Metrics records location sync, option lookups and player loads.
type Metrics struct {
	registry *prometheus.Registry

	historyPushes     prometheus.Counter
	publishSuppressed *prometheus.CounterVec
	locationsApplied  prometheus.Counter
	optionsResolved   *prometheus.CounterVec
	optionsLatency    prometheus.Histogram
	busyRequests      prometheus.Gauge
	playerLoads       *prometheus.CounterVec
}

// New registers every metric on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		historyPushes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "history_pushes_total",
			Help:      "History entries pushed by filter changes.",
		}),
		publishSuppressed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "publish_suppressed_total",
			Help:      "Filter publishes that did not push a history entry, by reason.",
		}, []string{"reason"}),
		locationsApplied: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "locations_applied_total",
			Help:      "Locations decoded into filter state.",
		}),
		optionsResolved: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "options",
			Name:      "responses_total",
			Help:      "Valid-options responses, by outcome.",
		}, []string{"outcome"}),
		optionsLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "options",
			Name:      "request_duration_seconds",
			Help:      "Valid-options request latency.",
			Buckets:   prometheus.DefBuckets,
		}),
		busyRequests: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "requests_in_flight",
			Help:      "Outstanding remote requests sharing the loading indicator.",
		}),
		playerLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "players",
			Name:      "loads_total",
			Help:      "Aggregated-player loads, by result.",
		}, []string{"result"}),
	}
}

// Registry exposes the private registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// HistoryPushed counts a user edit that added a history entry.
func (m *Metrics) HistoryPushed() { m.historyPushes.Inc() }

// PublishSuppressed counts a publish step skipped for reason.
func (m *Metrics) PublishSuppressed(reason string) {
	m.publishSuppressed.WithLabelValues(reason).Inc()
}

// LocationApplied counts a location decoded into the filter state.
func (m *Metrics) LocationApplied() { m.locationsApplied.Inc() }

// OptionsResolved counts a resolver outcome. Latency is observed only for
// responses that were not superseded.
func (m *Metrics) OptionsResolved(outcome options.Outcome, elapsed time.Duration) {
	m.optionsResolved.WithLabelValues(outcome.String()).Inc()
	if outcome != options.OutcomeStale {
		m.optionsLatency.Observe(elapsed.Seconds())
	}
}

// BusyChanged matches the fetch.Busy observer signature.
func (m *Metrics) BusyChanged(count int) { m.busyRequests.Set(float64(count)) }

// PlayersLoaded counts one aggregated-player load.
func (m *Metrics) PlayersLoaded(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.playerLoads.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		glog.Infof("metrics listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown metrics server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	}
}
