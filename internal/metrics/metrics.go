package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/conn-castle/dep-autosync/internal/autosync"
	"github.com/conn-castle/dep-autosync/internal/risk"
)

const namespace = "autosync"

// Recorder tracks auto-sync run outcomes.
type Recorder struct {
	runs        *prometheus.CounterVec
	exceedances *prometheus.CounterVec
	candidates  *prometheus.GaugeVec
	applied     prometheus.Counter
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Auto-sync runs by outcome.",
		}, []string{"outcome"}),
		exceedances: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exceedances_total",
			Help:      "Threshold exceedances by tier.",
		}, []string{"tier"}),
		candidates: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "candidates",
			Help:      "Upgrade candidates seen in the latest assessment by tier.",
		}, []string{"tier"}),
		applied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "packages_applied_total",
			Help:      "Packages handed to the upgrade executor.",
		}),
	}
	for _, c := range []prometheus.Collector{r.runs, r.exceedances, r.candidates, r.applied} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Observe records one Execute result.
func (r *Recorder) Observe(result autosync.Result, err error) {
	outcome := autosync.OutcomeOf(result, err)
	r.runs.WithLabelValues(string(outcome)).Inc()
	if outcome == autosync.OutcomeError || outcome == autosync.OutcomeTimeout {
		return
	}

	for _, tier := range risk.Levels {
		r.candidates.WithLabelValues(tier.String()).Set(float64(result.Assessment.Counts.Get(tier)))
	}
	r.candidates.WithLabelValues(risk.Unclassified.String()).Set(float64(len(result.Assessment.Unclassified)))
	for _, tier := range result.AutoApply.Exceedances {
		r.exceedances.WithLabelValues(tier.String()).Inc()
	}
	if result.AutoApply.Applied {
		r.applied.Add(float64(len(result.AutoApply.Flatten())))
	}
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
