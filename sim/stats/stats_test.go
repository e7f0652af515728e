package stats

import (
	"testing"

	"github.com/rtsim/rtsim/sim"
	"github.com/stretchr/testify/assert"
)

type recordingDoer struct {
	*sim.Event
	onFire func(e *sim.Event)
}

func newRecordingDoer(s *sim.Simulation) *recordingDoer {
	d := &recordingDoer{}
	d.Event = sim.NewEvent(s, d, sim.DefaultPriority)
	return d
}

func (d *recordingDoer) Doit() error {
	if d.onFire != nil {
		d.onFire(d.Event)
	}
	return nil
}

func TestCount_TalliesEveryNotification(t *testing.T) {
	s := sim.NewSimulation(1)
	c := &Count{}
	for i := 0; i < 3; i++ {
		d := newRecordingDoer(s)
		d.AddStat(c)
		requireNoError(t, d.Post(sim.Tick(i), false))
	}
	_, err := s.RunTo(10)
	assert.NoError(t, err)
	assert.Equal(t, 3, c.N)
}

func TestSample_RecordsLastTimeFrozenAtOriginalFiring(t *testing.T) {
	s := sim.NewSimulation(1)
	sample := NewSample(nil)
	d := newRecordingDoer(s)
	d.onFire = func(e *sim.Event) {
		if e.Time() == 10 {
			requireNoError(t, e.Post(20, false))
		}
	}
	d.AddStat(sample)
	requireNoError(t, d.Post(10, false))

	_, err := s.RunTo(100)
	assert.NoError(t, err)
	assert.Equal(t, []sim.Tick{10, 20}, sample.Times)
	assert.Equal(t, []float64{10, 20}, sample.Values)
}

func TestSample_UsesValueFnWhenProvided(t *testing.T) {
	s := sim.NewSimulation(1)
	sample := NewSample(func(e *sim.Event) float64 { return 42 })
	d := newRecordingDoer(s)
	d.AddStat(sample)
	requireNoError(t, d.Post(5, false))

	_, err := s.RunTo(10)
	assert.NoError(t, err)
	assert.Equal(t, []float64{42}, sample.Values)
}

func TestSample_MeanAndVariance(t *testing.T) {
	sample := NewSample(func(e *sim.Event) float64 { return 0 })
	sample.Values = []float64{2, 4, 6}
	assert.Equal(t, 4.0, sample.Mean())
	assert.Equal(t, 4.0, sample.Variance())
}

func TestSample_MeanAndVarianceOnEmptySample(t *testing.T) {
	sample := NewSample(nil)
	assert.Equal(t, 0.0, sample.Mean())
	assert.Equal(t, 0.0, sample.Variance())
}

func TestSummary_FinalizeAcrossReplicas(t *testing.T) {
	summary := &Summary{}
	summary.Add(10)
	summary.Add(20)
	summary.Add(30)

	mean, variance := summary.Finalize()
	assert.Equal(t, 20.0, mean)
	assert.Equal(t, 100.0, variance)
}

func TestSummary_FinalizeWithNoReplicasIsZero(t *testing.T) {
	summary := &Summary{}
	mean, variance := summary.Finalize()
	assert.Equal(t, 0.0, mean)
	assert.Equal(t, 0.0, variance)
}

func TestSummary_FinalizeWithOneReplicaHasZeroVariance(t *testing.T) {
	summary := &Summary{}
	summary.Add(5)
	mean, variance := summary.Finalize()
	assert.Equal(t, 5.0, mean)
	assert.Equal(t, 0.0, variance)
}

func requireNoError(t *testing.T, err error) {
	t.Helper()
	assert.NoError(t, err)
}
