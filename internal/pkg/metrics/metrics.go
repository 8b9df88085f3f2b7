package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wallet_tracker"

// Metrics groups the collectors of the portfolio refresh loop.
type Metrics struct {
	registry *prometheus.Registry

	RefreshTotal       prometheus.Counter
	RefreshFailures    prometheus.Counter
	WalletFetchErrors  *prometheus.CounterVec
	Holdings           prometheus.Gauge
	TrackedWallets     prometheus.Gauge
	RefreshDuration    prometheus.Histogram
	LastRefreshSeconds prometheus.Gauge
}

// New registers all collectors, plus the Go and process collectors, on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		RefreshTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "portfolio_refresh_total",
			Help:      "Number of portfolio refreshes started.",
		}),
		RefreshFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "portfolio_refresh_failures_total",
			Help:      "Refreshes that could not load the wallet list.",
		}),
		WalletFetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallet_fetch_errors_total",
			Help:      "Failed holdings fetches, by reason.",
		}, []string{"reason"}),
		Holdings: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "holdings",
			Help:      "Token holdings in the current snapshot.",
		}),
		TrackedWallets: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tracked_wallets",
			Help:      "Wallets covered by the last refresh.",
		}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "portfolio_refresh_duration_seconds",
			Help:      "Wall time of a full portfolio refresh.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		LastRefreshSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "portfolio_last_refresh_timestamp_seconds",
			Help:      "Unix time of the last completed refresh.",
		}),
	}
	reg.MustRegister(
		m.RefreshTotal,
		m.RefreshFailures,
		m.WalletFetchErrors,
		m.Holdings,
		m.TrackedWallets,
		m.RefreshDuration,
		m.LastRefreshSeconds,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRefresh records a completed refresh.
func (m *Metrics) ObserveRefresh(started time.Time, wallets, holdings int) {
	m.RefreshDuration.Observe(time.Since(started).Seconds())
	m.TrackedWallets.Set(float64(wallets))
	m.Holdings.Set(float64(holdings))
	m.LastRefreshSeconds.Set(float64(time.Now().Unix()))
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
