package trace

import (
	"testing"

	"github.com/rtsim/rtsim/sim"
	"github.com/stretchr/testify/assert"
)

type recordingDoer struct {
	*sim.Event
}

func newRecordingDoer(s *sim.Simulation) *recordingDoer {
	d := &recordingDoer{}
	d.Event = sim.NewEvent(s, d, sim.DefaultPriority)
	return d
}

func (d *recordingDoer) Doit() error { return nil }

func TestRecordingSink_CollectsRecordsInFiringOrder(t *testing.T) {
	s := sim.NewSimulation(1)
	sink := NewRecordingSink(func(e *sim.Event) Record {
		return Record{Subject: "ev", Tick: e.LastTime(), Reason: "fired"}
	})

	a := newRecordingDoer(s)
	b := newRecordingDoer(s)
	a.AddTrace(sink)
	b.AddTrace(sink)
	requireNoError(t, a.Post(5, false))
	requireNoError(t, b.Post(5, false))

	_, err := s.RunTo(100)
	assert.NoError(t, err)

	records := sink.Records()
	assert.Len(t, records, 2)
	assert.Equal(t, sim.Tick(5), records[0].Tick)
	assert.Equal(t, "fired", records[1].Reason)
}

func TestRecordingSink_RecordsSliceIsACopy(t *testing.T) {
	s := sim.NewSimulation(1)
	sink := NewRecordingSink(func(e *sim.Event) Record {
		return Record{Subject: "x", Tick: e.LastTime()}
	})
	a := newRecordingDoer(s)
	a.AddTrace(sink)
	requireNoError(t, a.Post(1, false))
	_, err := s.RunTo(10)
	assert.NoError(t, err)

	got := sink.Records()
	got[0].Subject = "mutated"
	assert.Equal(t, "x", sink.Records()[0].Subject)
}

func requireNoError(t *testing.T, err error) {
	t.Helper()
	assert.NoError(t, err)
}
