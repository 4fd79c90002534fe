// Package metrics exports toast lifecycle metrics to Prometheus and serves
// them, together with pprof, from a small debug HTTP server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/colonyops/flare/internal/core/eventbus"
	"github.com/colonyops/flare/internal/core/toast"
)

// Option configures a Recorder.
type Option func(*config)

type config struct {
	namespace string
	registry  prometheus.Registerer
	now       func() time.Time
}

// WithNamespace sets the metric namespace. Default: "flare".
func WithNamespace(namespace string) Option {
	return func(c *config) {
		c.namespace = namespace
	}
}

// WithRegistry registers metrics on r instead of prometheus.DefaultRegisterer.
func WithRegistry(r prometheus.Registerer) Option {
	return func(c *config) {
		c.registry = r
	}
}

// WithClock sets the time source used to measure how long toasts stay on
// screen. Pass the scheduler's Now so virtual clocks are honored.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

// Recorder counts toasts as they move through their lifecycle.
type Recorder struct {
	now func() time.Time

	shown     *prometheus.CounterVec
	dismissed *prometheus.CounterVec
	removed   prometheus.Counter
	active    prometheus.Gauge
	onScreen  prometheus.Histogram
	busDrops  *prometheus.CounterVec
}

// New creates a Recorder and registers its collectors.
func New(opts ...Option) *Recorder {
	cfg := config{
		namespace: "flare",
		registry:  prometheus.DefaultRegisterer,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(cfg.registry)

	return &Recorder{
		now: cfg.now,
		shown: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "toasts_shown_total",
			Help:      "Toasts shown, by variant.",
		}, []string{"variant"}),
		dismissed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "toasts_dismissed_total",
			Help:      "Toasts dismissed, by reason.",
		}, []string{"reason"}),
		removed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "toasts_removed_total",
			Help:      "Toasts removed from the collection after their exit animation.",
		}),
		active: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.namespace,
			Name:      "toasts_active",
			Help:      "Toasts currently in the collection.",
		}),
		onScreen: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.namespace,
			Name:      "toast_on_screen_seconds",
			Help:      "Time between a toast being shown and removed.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 300},
		}),
		busDrops: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "bus_events_dropped_total",
			Help:      "Events that never reached a subscriber, by reason (full, cancelled).",
		}, []string{"event", "reason"}),
	}
}

// Lifecycle returns hooks feeding the recorder from a toast manager.
func (r *Recorder) Lifecycle() toast.Lifecycle {
	return toast.Lifecycle{
		OnShow: func(t toast.Toast) {
			r.shown.WithLabelValues(variantLabel(t.Variant)).Inc()
			r.active.Inc()
		},
		OnDismiss: func(_ toast.Toast, reason toast.DismissReason) {
			r.dismissed.WithLabelValues(string(reason)).Inc()
		},
		OnRemove: func(t toast.Toast) {
			r.removed.Inc()
			r.active.Dec()
			r.onScreen.Observe(r.now().Sub(t.CreatedAt).Seconds())
		},
	}
}

// ObserveBus counts dropped bus events.
func (r *Recorder) ObserveBus(bus *eventbus.EventBus) {
	bus.OnDrop(func(event eventbus.Event, _ any, reason eventbus.DropReason) {
		r.busDrops.WithLabelValues(string(event), string(reason)).Inc()
	})
}

func variantLabel(v toast.Variant) string {
	if v == toast.VariantNone {
		return "none"
	}
	return string(v)
}
