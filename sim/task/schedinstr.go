package task

import "github.com/rtsim/rtsim/sim"

// SchedInstr is the exemplar instruction demonstrating the interaction
// between a task, its kernel and the event queue: on completion it lowers
// the task's preemption threshold and triggers re-dispatch before letting
// any observers of its threshold event see the result.
type SchedInstr struct {
	*instrBase
	Duration sim.Tick

	// threEvt signals "threshold lowering" to observers attached via
	// Event.AddStat/AddTrace/AddParticle. It carries no payload of its
	// own; its only role is to fire, at the current tick, after dispatch
	// has already run.
	threEvt *sim.Event
}

// NewSchedInstr builds a SchedInstr with the given duration, bound to task
// t.
func NewSchedInstr(s *sim.Simulation, t *Task, duration sim.Tick) *SchedInstr {
	si := &SchedInstr{Duration: duration}
	si.instrBase = newInstrBase(s, t, si)
	si.threEvt = sim.NewEvent(s, noopDoer{}, sim.DefaultPriority)
	return si
}

// ThresholdEvent exposes the threshold-lowering signal event so callers
// can attach stats/traces/particles to observe it.
func (si *SchedInstr) ThresholdEvent() *sim.Event { return si.threEvt }

// Schedule implements Instr: posts the end event at now+Duration.
func (si *SchedInstr) Schedule(now sim.Tick) {
	_ = si.endEvt.Post(now+si.Duration, false)
}

// Deschedule drops both the end event and the threshold event, since a
// preempted SchedInstr must not fire either after the task moves on.
func (si *SchedInstr) Deschedule() {
	si.instrBase.Deschedule()
	si.threEvt.Drop()
}

// Doit implements the end event's onEnd contract. The ordering is
// load-bearing: dispatch must run before the threshold event fires, so
// that any probe attached to ThresholdEvent() observes the post-dispatch
// task set, not the pre-dispatch one.
//
//  1. advance the task's instruction pointer
//  2. look up the task's kernel and narrow it to RTKernel
//  3. lower the threshold, then dispatch
//  4. fire the threshold event at the current tick with IMMEDIATE priority
func (si *SchedInstr) Doit() error {
	now := si.s.GetTime()

	si.task.OnInstrEnd(now) // (1)

	kernel, ok := si.task.Kernel().(RTKernel) // (2)
	if !ok {
		return &sim.KernelMismatchError{TaskName: si.task.Name(), Want: "task.RTKernel"}
	}

	kernel.DisableThreshold() // (3)
	kernel.Dispatch()

	return si.threEvt.Process(false) // (4)
}

func init() {
	RegisterInstrFactory("SchedInstr", func(s *sim.Simulation, t *Task, params []string) (Instr, error) {
		if len(params) != 1 {
			return nil, sim.NewWrongArityParseExc("SchedInstr")
		}
		d, err := sim.ParseTick(params[0])
		if err != nil {
			return nil, &sim.ParseExc{ClassName: "SchedInstr", Reason: err.Error()}
		}
		return NewSchedInstr(s, t, d), nil
	})
}
