package enginemetrics

import (
	"testing"

	"github.com/aosanya/smartfactory-des/desengine"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAgent struct {
	id      uuid.UUID
	returns []desengine.ScheduledEvent
}

func (a *stubAgent) ID() uuid.UUID { return a.id }
func (a *stubAgent) Handle(uint64, any) []desengine.ScheduledEvent {
	return a.returns
}

func TestInstrumentAgents_CountsDispatchesAndTracksQueueDepth(t *testing.T) {
	before := testutil.ToFloat64(DispatchedEventsTotal)

	target := uuid.New()
	agent := &stubAgent{id: uuid.New(), returns: []desengine.ScheduledEvent{
		{Event: desengine.NewEvent(target), Time: 1},
		{Event: desengine.NewEvent(target), Time: 2},
	}}

	wrapped := InstrumentAgents(map[uuid.UUID]desengine.Agent{agent.ID(): agent})
	require.Len(t, wrapped, 1)

	out := wrapped[agent.ID()].Handle(0, nil)
	assert.Len(t, out, 2)
	assert.Equal(t, before+1, testutil.ToFloat64(DispatchedEventsTotal))
	assert.Equal(t, float64(2), testutil.ToFloat64(QueueDepth))
	assert.Equal(t, agent.ID(), wrapped[agent.ID()].ID())
}

func TestObserveReports_ForwardsAndCountsYields(t *testing.T) {
	before := testutil.ToFloat64(YieldsTotal)

	in := make(chan desengine.ReportMessage, 4)
	in <- desengine.ReportMessage{Kind: desengine.ReportStarted}
	in <- desengine.ReportMessage{Kind: desengine.ReportIter, Iter: 5}
	in <- desengine.ReportMessage{Kind: desengine.ReportIter, Iter: 10}
	close(in)

	out := ObserveReports(in)

	var forwarded []desengine.ReportMessage
	for r := range out {
		forwarded = append(forwarded, r)
	}

	require.Len(t, forwarded, 3)
	assert.Equal(t, desengine.ReportStarted, forwarded[0].Kind)
	assert.Equal(t, uint64(10), forwarded[2].Iter)
	assert.Equal(t, before+2, testutil.ToFloat64(YieldsTotal))
}

func TestRecordRunOutcome_IncrementsLabeledCounter(t *testing.T) {
	before := testutil.ToFloat64(RunsTotal.WithLabelValues("ok"))
	RecordRunOutcome("ok")
	assert.Equal(t, before+1, testutil.ToFloat64(RunsTotal.WithLabelValues("ok")))
}
