package task

import "github.com/rtsim/rtsim/sim"

// Instr is the interface every instruction in a Task's program implements.
// Schedule is called when the task starts executing the instruction;
// Deschedule is called on preemption, and must drop the instruction's own
// pending end event so it does not fire after the task has moved on.
type Instr interface {
	Schedule(now sim.Tick)
	Deschedule()
}

// Task is an entity that owns an ordered sequence of Instr and drives them
// one at a time: onInstrEnd, called by the current instruction's own end
// handler, advances to the next instruction and schedules it.
type Task struct {
	*sim.Entity

	s      *sim.Simulation
	instrs []Instr
	pc     int

	kernel any
}

// NewTask registers a new Task entity named name with the given
// instruction program. The program can be extended after construction via
// AddInstr, e.g. to build it incrementally from a scripted scenario.
func NewTask(s *sim.Simulation, name string, instrs []Instr) *Task {
	t := &Task{s: s, instrs: append([]Instr(nil), instrs...), pc: -1}
	t.Entity = s.Registry().Register(name, t)
	return t
}

// AddInstr appends instr to the task's program.
func (t *Task) AddInstr(instr Instr) { t.instrs = append(t.instrs, instr) }

// Instrs returns the task's instruction program, in execution order. The
// returned slice is a copy; callers must not rely on it reflecting later
// AddInstr calls.
func (t *Task) Instrs() []Instr {
	out := make([]Instr, len(t.instrs))
	copy(out, t.instrs)
	return out
}

// SetKernel attaches the scheduler kernel this task runs under. Kernel is
// stored as `any` because a kernel implements possibly many capability
// interfaces beyond RTKernel; SchedInstr.onEnd queries it narrowly via a
// type assertion rather than requiring Task to commit to one kernel type.
func (t *Task) SetKernel(k any) { t.kernel = k }

// Kernel returns the task's attached kernel, or nil if none was set.
func (t *Task) Kernel() any { return t.kernel }

// NewRun resets the task's program counter to "not started" at the
// beginning of every replica.
func (t *Task) NewRun() { t.pc = -1 }

// EndRun deschedules whatever instruction was running when the replica
// ended, so its end event does not leak into the next replica.
func (t *Task) EndRun() {
	if instr := t.Current(); instr != nil {
		instr.Deschedule()
	}
}

// Start begins executing the task's first instruction at tick now.
func (t *Task) Start(now sim.Tick) {
	t.pc = 0
	if instr := t.Current(); instr != nil {
		instr.Schedule(now)
	}
}

// OnInstrEnd advances the program counter and schedules the next
// instruction, if any remain.
func (t *Task) OnInstrEnd(now sim.Tick) {
	t.pc++
	if instr := t.Current(); instr != nil {
		instr.Schedule(now)
	}
}

// Current returns the instruction currently executing, or nil if the task
// has not started or has finished its program.
func (t *Task) Current() Instr {
	if t.pc < 0 || t.pc >= len(t.instrs) {
		return nil
	}
	return t.instrs[t.pc]
}

// Done reports whether the task has run past the end of its program.
func (t *Task) Done() bool { return t.pc >= len(t.instrs) }
