// Package metrics exposes Prometheus instruments for the playback core.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for the resource manager
// and slot pool. Each instance carries a private registry so tests can
// construct as many as they need.
type Metrics struct {
	registry              *prometheus.Registry
	slotsInUse            prometheus.Gauge
	playing               prometheus.Gauge
	evictionsTotal        prometheus.Counter
	warmupsTotal          prometheus.Counter
	warmupFailuresTotal   *prometheus.CounterVec
	preloadsDeferredTotal prometheus.Counter
	staleCompletionsTotal prometheus.Counter
	notifyDropsTotal      prometheus.Counter
}

// New creates and registers the playback core metrics.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	slotsInUse := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "playback_slots_in_use",
		Help: "Number of decoder slots currently bound to a video",
	})
	playing := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "playback_playing",
		Help: "1 while a video is in the Playing state, 0 otherwise",
	})
	evictionsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "playback_evictions_total",
		Help: "Total number of slot evictions",
	})
	warmupsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "playback_warmups_total",
		Help: "Total number of warm-up tasks started",
	})
	warmupFailuresTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "playback_warmup_failures_total",
		Help: "Total number of warm-up failures by reason",
	}, []string{"reason"})
	preloadsDeferredTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "playback_preloads_deferred_total",
		Help: "Total number of preload requests deferred because no slot was evictable",
	})
	staleCompletionsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "playback_stale_completions_total",
		Help: "Total number of warm-up completions discarded after eviction",
	})
	notifyDropsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "playback_notification_drops_total",
		Help: "Total number of state-change batches dropped by slow subscribers",
	})

	registry.MustRegister(
		slotsInUse,
		playing,
		evictionsTotal,
		warmupsTotal,
		warmupFailuresTotal,
		preloadsDeferredTotal,
		staleCompletionsTotal,
		notifyDropsTotal,
	)

	return &Metrics{
		registry:              registry,
		slotsInUse:            slotsInUse,
		playing:               playing,
		evictionsTotal:        evictionsTotal,
		warmupsTotal:          warmupsTotal,
		warmupFailuresTotal:   warmupFailuresTotal,
		preloadsDeferredTotal: preloadsDeferredTotal,
		staleCompletionsTotal: staleCompletionsTotal,
		notifyDropsTotal:      notifyDropsTotal,
	}
}

// SetSlotsInUse sets the bound-slot gauge.
func (m *Metrics) SetSlotsInUse(n int) {
	m.slotsInUse.Set(float64(n))
}

// SetPlaying sets the active-player gauge.
func (m *Metrics) SetPlaying(active bool) {
	if active {
		m.playing.Set(1)
	} else {
		m.playing.Set(0)
	}
}

// IncEvictions increments the eviction counter.
func (m *Metrics) IncEvictions() {
	m.evictionsTotal.Inc()
}

// IncWarmups increments the started warm-up counter.
func (m *Metrics) IncWarmups() {
	m.warmupsTotal.Inc()
}

// IncWarmupFailures increments the failure counter for a reason label
// ("source_unavailable", "decode_failure", "timeout").
func (m *Metrics) IncWarmupFailures(reason string) {
	m.warmupFailuresTotal.WithLabelValues(reason).Inc()
}

// IncPreloadsDeferred increments the deferred-preload counter.
func (m *Metrics) IncPreloadsDeferred() {
	m.preloadsDeferredTotal.Inc()
}

// IncStaleCompletions increments the discarded-completion counter.
func (m *Metrics) IncStaleCompletions() {
	m.staleCompletionsTotal.Inc()
}

// IncNotifyDrops increments the dropped-notification counter.
func (m *Metrics) IncNotifyDrops() {
	m.notifyDropsTotal.Inc()
}

// Handler returns an http.Handler that serves the metrics.
// updateGauges is called before each scrape to refresh gauge values.
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}
