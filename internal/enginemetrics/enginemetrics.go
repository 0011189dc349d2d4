// Package enginemetrics exposes Prometheus counters and gauges for a
// running simulation and provides small wrappers that drive them
// without requiring any change to desengine itself.
package enginemetrics

import (
	"net/http"

	"github.com/aosanya/smartfactory-des/desengine"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	DispatchedEventsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "desengine_dispatched_events_total",
			Help: "Total number of events dispatched to agent handlers across all runs",
		},
	)

	YieldsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "desengine_yields_total",
			Help: "Total number of yield boundaries crossed across all runs",
		},
	)

	QueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "desengine_queue_depth",
			Help: "Approximate number of events produced by the most recent dispatch, as a proxy for queue growth",
		},
	)

	RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "desengine_runs_total",
			Help: "Total number of completed runs, by terminal outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(DispatchedEventsTotal)
	prometheus.MustRegister(YieldsTotal)
	prometheus.MustRegister(QueueDepth)
	prometheus.MustRegister(RunsTotal)
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// InstrumentAgents wraps every agent in the registry so that each
// dispatch increments DispatchedEventsTotal and updates QueueDepth with
// the number of follow-on events that dispatch produced.
func InstrumentAgents(agents map[uuid.UUID]desengine.Agent) map[uuid.UUID]desengine.Agent {
	wrapped := make(map[uuid.UUID]desengine.Agent, len(agents))
	for id, a := range agents {
		wrapped[id] = &instrumentedAgent{inner: a}
	}
	return wrapped
}

type instrumentedAgent struct {
	inner desengine.Agent
}

func (a *instrumentedAgent) ID() uuid.UUID { return a.inner.ID() }

func (a *instrumentedAgent) Handle(time uint64, arg any) []desengine.ScheduledEvent {
	DispatchedEventsTotal.Inc()
	out := a.inner.Handle(time, arg)
	QueueDepth.Set(float64(len(out)))
	return out
}

// ObserveReports consumes reports from in and re-emits them unchanged on
// the returned channel, incrementing YieldsTotal for every Iter report
// it sees along the way. The returned channel closes once in closes.
func ObserveReports(in <-chan desengine.ReportMessage) <-chan desengine.ReportMessage {
	out := make(chan desengine.ReportMessage, cap(in))
	go func() {
		defer close(out)
		for report := range in {
			if report.Kind == desengine.ReportIter {
				YieldsTotal.Inc()
			}
			out <- report
		}
	}()
	return out
}

// RecordRunOutcome increments RunsTotal for the given outcome label
// ("ok", "error").
func RecordRunOutcome(outcome string) {
	RunsTotal.WithLabelValues(outcome).Inc()
}
