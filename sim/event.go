package sim

// PriorityImmediate is the priority forced by process(), guaranteeing the
// event fires before any other event enqueued at the same tick with a
// default (non-immediate) priority.
const PriorityImmediate = 0

// DefaultPriority is the priority new events are constructed with unless
// the caller specifies otherwise.
const DefaultPriority = 10

// Doer is the handler a concrete event type implements. doit() may post
// other events, re-post itself at a later time, or simply observe and
// complete; it runs to completion with no suspension points. An error
// returned here propagates through Action, sim_step, run_to and run to
// whichever caller invoked run/sim_step, per the kernel's error handling
// design: the engine never silently swallows a handler error.
type Doer interface {
	Doit() error
}

// Disposer is an optional hook a disposable event's owner may implement to
// release resources once the engine has finished firing it.
type Disposer interface {
	Dispose()
}

// StatProbe, Particle and TraceProbe are the three ordered, non-owning
// observer sequences notified after doit() returns. They share a shape
// because the engine treats them identically — three separate slices exist
// only so callers can reason about "statistics" vs. "particles" vs.
// "traces" as distinct concerns, mirroring the teacher's SimulationTrace
// keeping separate Admissions/Routings slices rather than one mixed one.
type StatProbe interface {
	Notify(e *Event)
}

type Particle interface {
	Notify(e *Event)
}

type TraceProbe interface {
	Notify(e *Event)
}

// Event is a handle onto a future callback. Only one instance may sit in
// the queue at a time; re-posting without drop() is a fault (see
// QueueDuplicateError). Event is the generic "event-bound-to-entity"
// adaptor described by the kernel's design notes: concrete event kinds
// embed *Event and supply doit() via the owner Doer, replacing the
// templated/virtual event hierarchy of the original design.
type Event struct {
	sim   *Simulation
	owner Doer

	time        Tick
	lastTime    Tick
	priority    int
	stdPriority int
	order       uint64
	inQueue     bool
	disposable  bool
	heapIndex   int

	stats     []StatProbe
	particles []Particle
	traces    []TraceProbe
}

// NewEvent constructs an Event core bound to owner, which must be the
// concrete event value embedding this *Event (self-reference), so that
// Action can dispatch to the right doit() override.
func NewEvent(s *Simulation, owner Doer, priority int) *Event {
	return &Event{
		sim:         s,
		owner:       owner,
		priority:    priority,
		stdPriority: priority,
		heapIndex:   -1,
	}
}

// Time returns the tick at which the event is scheduled to fire; it is
// meaningful only while InQueue() is true.
func (e *Event) Time() Tick { return e.time }

// LastTime returns the tick at which the event most recently fired. It is
// frozen at the start of Action() and is never overwritten by a re-post
// performed from within that same firing's doit().
func (e *Event) LastTime() Tick { return e.lastTime }

// InQueue reports whether the event currently sits in the queue.
func (e *Event) InQueue() bool { return e.inQueue }

// Disposable reports whether the engine owns this event and will destroy
// it once Action() completes.
func (e *Event) Disposable() bool { return e.disposable }

// Priority returns the event's current priority (may be temporarily
// PriorityImmediate between Process and the event firing).
func (e *Event) Priority() int { return e.priority }

// RestorePriority re-establishes the constructor-assigned priority,
// undoing any temporary override left by Process.
func (e *Event) RestorePriority() { e.priority = e.stdPriority }

// AddStat, AddParticle and AddTrace attach non-owning observers notified,
// in insertion order within their own slice, after doit() returns.
func (e *Event) AddStat(p StatProbe)         { e.stats = append(e.stats, p) }
func (e *Event) AddParticle(p Particle)      { e.particles = append(e.particles, p) }
func (e *Event) AddTrace(p TraceProbe)       { e.traces = append(e.traces, p) }

// Post enqueues the event at tick at. It fails with PostInPastError if at
// precedes the simulation's global time, and with QueueDuplicateError if
// the event is already enqueued.
func (e *Event) Post(at Tick, disposable bool) error {
	if e.inQueue {
		return &QueueDuplicateError{Event: e.owner}
	}
	if at < e.sim.globalTime {
		return &PostInPastError{At: at, Now: e.sim.globalTime}
	}
	e.time = at
	e.disposable = disposable
	e.order = e.sim.nextOrder()
	e.inQueue = true
	e.sim.queue.push(e)
	return nil
}

// Drop extracts the event from the queue if present; a no-op otherwise. It
// does not destroy the event.
func (e *Event) Drop() {
	if !e.inQueue {
		return
	}
	e.sim.queue.remove(e)
	e.inQueue = false
}

// Process posts the event at the simulation's current global time with its
// priority temporarily forced to PriorityImmediate, so it fires before any
// other event already queued for the same tick at a lower-urgency
// priority. The priority reverts to its constructor value once the event
// actually fires (see Action).
func (e *Event) Process(disposable bool) error {
	saved := e.priority
	e.priority = PriorityImmediate
	if err := e.Post(e.sim.globalTime, disposable); err != nil {
		e.priority = saved
		return err
	}
	return nil
}

// Action is the engine-only entry point: it freezes lastTime, clears
// inQueue, restores any Process-forced priority, invokes the owner's
// doit(), and, only on success, fans out to stats, particles and traces in
// that order. User code must never call Action directly.
func (e *Event) Action() error {
	e.lastTime = e.time
	e.inQueue = false
	e.RestorePriority()
	if err := e.owner.Doit(); err != nil {
		return err
	}
	for _, p := range e.stats {
		p.Notify(e)
	}
	for _, p := range e.particles {
		p.Notify(e)
	}
	for _, p := range e.traces {
		p.Notify(e)
	}
	return nil
}
