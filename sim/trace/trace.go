// Package trace provides decision/event trace recording. It depends only
// on the sim package's exported Event/Tick types, never the reverse,
// mirroring the teacher's sim/trace package ("has no dependencies on
// sim/ or sim/cluster/ — it stores pure data types").
package trace

import (
	"github.com/sirupsen/logrus"

	"github.com/rtsim/rtsim/sim"
)

// Record captures a single event firing for later inspection, grounded on
// the teacher's AdmissionRecord/RoutingRecord shape (sim/trace/record.go):
// a subject identifier, the tick it fired at, and a free-form reason.
type Record struct {
	Subject string
	Tick    sim.Tick
	Reason  string
}

// BuildFunc renders a fired Event into a Record.
type BuildFunc func(e *sim.Event) Record

// RecordingSink appends a Record for every event it is attached to via
// Event.AddTrace, in firing order. It implements sim.TraceProbe.
type RecordingSink struct {
	build   BuildFunc
	records []Record
}

// NewRecordingSink returns a RecordingSink using build to render each
// firing into a Record.
func NewRecordingSink(build BuildFunc) *RecordingSink {
	return &RecordingSink{build: build}
}

// Notify implements sim.TraceProbe.
func (s *RecordingSink) Notify(e *sim.Event) {
	s.records = append(s.records, s.build(e))
}

// Records returns every record collected so far, in firing order.
func (s *RecordingSink) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// ConsoleSink logs one line per firing via logrus, for interactive
// debugging runs; it implements sim.TraceProbe.
type ConsoleSink struct {
	build BuildFunc
}

// NewConsoleSink returns a ConsoleSink using build to render each firing.
func NewConsoleSink(build BuildFunc) *ConsoleSink {
	return &ConsoleSink{build: build}
}

// Notify implements sim.TraceProbe.
func (s *ConsoleSink) Notify(e *sim.Event) {
	r := s.build(e)
	logrus.WithField("subject", r.Subject).WithField("t", r.Tick).Info(r.Reason)
}
