// Package observability exposes the process metrics.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "swipecount"

var (
	intentsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "intents_total",
		Help:      "Gesture intents produced by the classifier, labeled by kind.",
	}, []string{"kind"})

	intentsAppliedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "intents_applied_total",
		Help:      "Gesture intents that changed counter state, labeled by kind.",
	}, []string{"kind"})

	snapshotWritesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_writes_total",
		Help:      "Counter collection snapshot writes, labeled by result.",
	}, []string{"result"})

	activityWritesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_writes_total",
		Help:      "Activity log appends, labeled by result.",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(intentsTotal, intentsAppliedTotal, snapshotWritesTotal, activityWritesTotal)
}

// ObserveIntent records a classified intent and whether it was applied.
func ObserveIntent(kind string, applied bool) {
	intentsTotal.WithLabelValues(kind).Inc()
	if applied {
		intentsAppliedTotal.WithLabelValues(kind).Inc()
	}
}

// ObserveSnapshotWrite records the outcome of one snapshot write.
func ObserveSnapshotWrite(err error) {
	snapshotWritesTotal.WithLabelValues(result(err)).Inc()
}

// ObserveActivityWrite records the outcome of one activity append.
func ObserveActivityWrite(err error) {
	activityWritesTotal.WithLabelValues(result(err)).Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
