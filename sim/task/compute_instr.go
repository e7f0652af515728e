package task

import "github.com/rtsim/rtsim/sim"

// ComputeInstr models pure compute: it posts its end event Duration ticks
// after it starts running, and on completion simply tells its task to
// advance. It has no kernel/threshold interaction, unlike SchedInstr.
type ComputeInstr struct {
	*instrBase
	Duration sim.Tick
}

// NewComputeInstr builds a ComputeInstr with the given duration, bound to
// task t.
func NewComputeInstr(s *sim.Simulation, t *Task, duration sim.Tick) *ComputeInstr {
	c := &ComputeInstr{Duration: duration}
	c.instrBase = newInstrBase(s, t, c)
	return c
}

// Schedule implements Instr: posts the end event at now+Duration.
func (c *ComputeInstr) Schedule(now sim.Tick) {
	_ = c.endEvt.Post(now+c.Duration, false)
}

// Doit implements sim.Doer for the instruction's end event: it simply
// advances the owning task to its next instruction.
func (c *ComputeInstr) Doit() error {
	c.task.OnInstrEnd(c.s.GetTime())
	return nil
}

func init() {
	RegisterInstrFactory("ComputeInstr", func(s *sim.Simulation, t *Task, params []string) (Instr, error) {
		if len(params) != 1 {
			return nil, sim.NewWrongArityParseExc("ComputeInstr")
		}
		d, err := sim.ParseTick(params[0])
		if err != nil {
			return nil, &sim.ParseExc{ClassName: "ComputeInstr", Reason: err.Error()}
		}
		return NewComputeInstr(s, t, d), nil
	})
}
