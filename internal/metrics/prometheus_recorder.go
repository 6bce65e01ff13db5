package metrics

import (
	"net/http"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once          sync.Once
	buildDuration prom.Histogram
	resourceCount prom.Histogram
	buildOutcome  *prom.CounterVec
	changeResults *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics
// (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "packforge",
			Name:      "build_duration_seconds",
			Help:      "Total pack build duration",
			Buckets:   prom.DefBuckets,
		})
		pr.resourceCount = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "packforge",
			Name:      "build_resources",
			Help:      "Resources produced per build",
			Buckets:   prom.ExponentialBuckets(1, 4, 8),
		})
		pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "packforge",
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"})
		pr.changeResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "packforge",
			Name:      "build_change_results_total",
			Help:      "Builds by change detection outcome",
		}, []string{"result"})
		reg.MustRegister(pr.buildDuration, pr.resourceCount, pr.buildOutcome, pr.changeResults)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveResourceCount(n int) {
	if p == nil || p.resourceCount == nil {
		return
	}
	p.resourceCount.Observe(float64(n))
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) IncChangeResult(changed bool) {
	if p == nil || p.changeResults == nil {
		return
	}
	result := "unchanged"
	if changed {
		result = "changed"
	}
	p.changeResults.WithLabelValues(result).Inc()
}

// HTTPHandler returns an http.Handler serving Prometheus metrics for the
// provided registry.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
