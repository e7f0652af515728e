package task

import "github.com/rtsim/rtsim/sim"

// instrBase is the shared infrastructure behind every Instr: the
// instruction's own end event, and the task/simulation it is bound to. It
// is the generic "event-bound-to-entity" adaptor the kernel's design notes
// call for, replacing a templated per-instruction event subclass with one
// struct plus whatever Doer the concrete instruction supplies.
type instrBase struct {
	task *Task
	s    *sim.Simulation

	endEvt *sim.Event
}

func newInstrBase(s *sim.Simulation, t *Task, owner sim.Doer) *instrBase {
	return &instrBase{
		task:   t,
		s:      s,
		endEvt: sim.NewEvent(s, owner, sim.DefaultPriority),
	}
}

// Deschedule drops the instruction's pending end event, the shared half of
// every Instr's Deschedule implementation.
func (b *instrBase) Deschedule() {
	b.endEvt.Drop()
}

// EndEvent exposes the instruction's own end event so callers (stats
// aggregation, trace sinks) can attach observers without every Instr
// implementation hand-rolling its own accessor.
func (b *instrBase) EndEvent() *sim.Event {
	return b.endEvt
}

// Instrumented is implemented by every concrete Instr built on instrBase
// (ComputeInstr, SchedInstr), via the embedded EndEvent method. Callers
// that only hold an Instr (e.g. the CLI wiring stats/trace probes onto a
// built scenario) recover the end event through this interface instead of
// depending on a concrete instruction type.
type Instrumented interface {
	EndEvent() *sim.Event
}

// noopDoer implements sim.Doer with a no-op doit(); it backs auxiliary
// signalling events (e.g. SchedInstr's threshold event) whose only purpose
// is to be processed so probes attached to them observe the tick, not to
// run any handler logic of their own.
type noopDoer struct{}

func (noopDoer) Doit() error { return nil }
