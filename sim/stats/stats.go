// Package stats provides statistics probes attachable to events via
// Event.AddStat, plus a cross-replica summary finalized with
// gonum.org/v1/gonum/stat. This is the one place the kernel specification
// treats as external "statistics post-processing" (the raw per-event
// sampling contract lives entirely in sim), so it is also where the
// teacher's otherwise-unwired gonum dependency is exercised.
package stats

import (
	"gonum.org/v1/gonum/stat"

	"github.com/rtsim/rtsim/sim"
)

// Count tallies the number of times it was notified. It implements
// sim.StatProbe (and, interchangeably, sim.Particle/sim.TraceProbe, since
// the three share a Notify(*sim.Event) shape).
type Count struct {
	N int
}

// Notify implements sim.StatProbe.
func (c *Count) Notify(_ *sim.Event) { c.N++ }

// Sample records one sample per notification, keyed to the event's
// LastTime — the cornerstone guarantee (Testable Property 4) is that this
// value is frozen at the tick the handler actually ran, even if the
// handler re-posted itself to a later tick before the probe fires.
type Sample struct {
	Times   []sim.Tick
	Values  []float64
	valueFn func(e *sim.Event) float64
}

// NewSample returns a Sample recording LastTime and, for each firing,
// valueFn(e) (or just LastTime as a float64 if valueFn is nil).
func NewSample(valueFn func(e *sim.Event) float64) *Sample {
	return &Sample{valueFn: valueFn}
}

// Notify implements sim.StatProbe.
func (s *Sample) Notify(e *sim.Event) {
	s.Times = append(s.Times, e.LastTime())
	if s.valueFn != nil {
		s.Values = append(s.Values, s.valueFn(e))
	} else {
		s.Values = append(s.Values, float64(e.LastTime()))
	}
}

// Mean returns the sample mean of Values, or 0 for an empty Sample.
func (s *Sample) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return stat.Mean(s.Values, nil)
}

// Variance returns the sample variance of Values, or 0 when fewer than two
// values have been recorded.
func (s *Sample) Variance() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	return stat.Variance(s.Values, nil)
}

// Summary accumulates one scalar per replica and finalizes a cross-replica
// mean/variance at endSim, matching the teacher's Metrics aggregation
// shape (sim/metrics.go's Metrics.Print).
type Summary struct {
	PerReplica []float64
}

// Add records one replica's aggregate value.
func (s *Summary) Add(v float64) { s.PerReplica = append(s.PerReplica, v) }

// Finalize returns the cross-replica mean and variance; variance is 0 with
// fewer than two replicas.
func (s *Summary) Finalize() (mean, variance float64) {
	if len(s.PerReplica) == 0 {
		return 0, 0
	}
	mean = stat.Mean(s.PerReplica, nil)
	if len(s.PerReplica) > 1 {
		variance = stat.Variance(s.PerReplica, nil)
	}
	return mean, variance
}
