// Package metrics exposes betting and polling counters to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/alejandrodnm/soloqbet/internal/domain"
	"github.com/alejandrodnm/soloqbet/internal/ports"
)

// Prometheus implements ports.Metrics on its own registry.
type Prometheus struct {
	reg *prometheus.Registry

	betsPlaced     *prometheus.CounterVec
	stakes         *prometheus.CounterVec
	betsRejected   *prometheus.CounterVec
	marketsOpened  prometheus.Counter
	marketsSettled *prometheus.CounterVec
	distributed    prometheus.Counter
	activeMarkets  prometheus.Gauge
	pollDuration   prometheus.Histogram
	pollErrors     prometheus.Counter
	providerCalls  *prometheus.CounterVec
}

var _ ports.Metrics = (*Prometheus)(nil)

// NewPrometheus registers every collector on a fresh registry, together
// with the Go runtime and process collectors.
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		reg: prometheus.NewRegistry(),
		betsPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "soloqbet_bets_placed_total", Help: "wagers accepted, by side",
		}, []string{"side"}),
		stakes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "soloqbet_stakes_tokens_total", Help: "tokens staked, by side",
		}, []string{"side"}),
		betsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "soloqbet_bets_rejected_total", Help: "wagers rejected, by error code",
		}, []string{"code"}),
		marketsOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "soloqbet_markets_opened_total", Help: "markets opened",
		}),
		marketsSettled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "soloqbet_markets_settled_total", Help: "markets resolved or cancelled",
		}, []string{"status"}),
		distributed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "soloqbet_payouts_tokens_total", Help: "tokens paid to winners",
		}),
		activeMarkets: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "soloqbet_active_markets", Help: "markets open or awaiting a result",
		}),
		pollDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "soloqbet_poll_cycle_seconds",
			Help:    "duration of a watcher poll cycle",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
		}),
		pollErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "soloqbet_poll_cycle_errors_total", Help: "poll cycles that ended in error",
		}),
		providerCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "soloqbet_provider_calls_total", Help: "match-data provider calls, by operation and result",
		}, []string{"op", "result"}),
	}

	p.reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		p.betsPlaced, p.stakes, p.betsRejected,
		p.marketsOpened, p.marketsSettled, p.distributed, p.activeMarkets,
		p.pollDuration, p.pollErrors, p.providerCalls,
	)
	return p
}

// Registry returns the registry to serve.
func (p *Prometheus) Registry() *prometheus.Registry { return p.reg }

func (p *Prometheus) BetPlaced(side domain.Side, stake int64) {
	p.betsPlaced.WithLabelValues(string(side)).Inc()
	p.stakes.WithLabelValues(string(side)).Add(float64(stake))
}

func (p *Prometheus) BetRejected(code string) {
	if code == "" {
		code = "unknown"
	}
	p.betsRejected.WithLabelValues(code).Inc()
}

func (p *Prometheus) MarketOpened() { p.marketsOpened.Inc() }

func (p *Prometheus) MarketSettled(status domain.MarketStatus, distributed int64) {
	p.marketsSettled.WithLabelValues(string(status)).Inc()
	p.distributed.Add(float64(distributed))
}

func (p *Prometheus) ActiveMarkets(n int) { p.activeMarkets.Set(float64(n)) }

func (p *Prometheus) PollCycle(d time.Duration, err error) {
	p.pollDuration.Observe(d.Seconds())
	if err != nil {
		p.pollErrors.Inc()
	}
}

func (p *Prometheus) ProviderCall(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	p.providerCalls.WithLabelValues(op, result).Inc()
}
