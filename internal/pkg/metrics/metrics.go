package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	reg *prometheus.Registry
	re  sync.Once

	runsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "partrotate_runs_total",
		Help: "Number of maintenance runs started.",
	})

	outcomesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "partrotate_outcomes_total",
		Help: "Per-triple outcomes recorded across runs, by kind.",
	}, []string{"kind"})
)

func Reg() *prometheus.Registry {
	re.Do(func() {
		reg = prometheus.NewPedanticRegistry()
		reg.MustRegister(runsTotal, outcomesTotal)
	})

	return reg
}

func RecordRun() {
	runsTotal.Inc()
}

func RecordOutcome(kind string) {
	outcomesTotal.WithLabelValues(kind).Inc()
}
