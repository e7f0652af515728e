package sim

import "fmt"

// RunHooks is implemented by every long-lived simulation object. newRun is
// called once before each replica, endRun once after.
type RunHooks interface {
	NewRun()
	EndRun()
}

// Entity is a named, numbered long-lived simulation object's handle into
// the registry that created it. Concrete entity types (Task, a client's
// CPU scheduler, ...) typically embed *Entity for Name()/ID(), and
// separately implement RunHooks.
type Entity struct {
	registry *Registry
	id       int
	name     string
}

// ID returns the monotonically increasing id assigned at registration.
func (e *Entity) ID() int { return e.id }

// Name returns the entity's registration name, or "" if it was registered
// anonymously.
func (e *Entity) Name() string { return e.name }

// Deregister removes the entity from its registry. Safe to call more than
// once.
func (e *Entity) Deregister() {
	if e.registry != nil {
		e.registry.deregister(e)
		e.registry = nil
	}
}

type regEntry struct {
	entity *Entity
	hooks  RunHooks
}

// Registry is a Simulation's single-threaded collection of live entities,
// grounded on the dual slice+map bookkeeping the teacher uses to
// track cluster instances by both id and registration order
// (sim/cluster/cluster.go's instances slice + instanceMap).
type Registry struct {
	byName map[string]*regEntry
	order  []*regEntry
	nextID int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*regEntry)}
}

// Register allocates a new Entity for hooks under name (which may be
// empty, in which case it receives no lookup binding) and appends it to
// registration order. It panics if name is non-empty and already taken —
// this is a programmer error, not a runtime fault the spec asks callers to
// recover from.
func (r *Registry) Register(name string, hooks RunHooks) *Entity {
	ent := &Entity{registry: r, id: r.nextID, name: name}
	r.nextID++
	re := &regEntry{entity: ent, hooks: hooks}
	if name != "" {
		if _, exists := r.byName[name]; exists {
			panic(fmt.Sprintf("sim: entity name %q already registered", name))
		}
		r.byName[name] = re
	}
	r.order = append(r.order, re)
	return ent
}

// Find looks up an entity's hooks by name.
func (r *Registry) Find(name string) (RunHooks, error) {
	re, ok := r.byName[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return re.hooks, nil
}

// Len returns the number of currently registered entities.
func (r *Registry) Len() int { return len(r.order) }

// Entities returns every live entity's hooks in registration order.
func (r *Registry) Entities() []RunHooks {
	out := make([]RunHooks, len(r.order))
	for i, re := range r.order {
		out[i] = re.hooks
	}
	return out
}

// CallNewRun invokes NewRun() on every live entity, once, in registration
// order.
func (r *Registry) CallNewRun() {
	for _, re := range r.order {
		re.hooks.NewRun()
	}
}

// CallEndRun invokes EndRun() on every live entity, once, in registration
// order.
func (r *Registry) CallEndRun() {
	for _, re := range r.order {
		re.hooks.EndRun()
	}
}

// Reset drops every registered entity without invoking EndRun on any of
// them, returning the registry to the empty state NewRegistry produces.
// Used only by tests that need an isolated registry mid-suite, without
// constructing a whole new Simulation; production code reaches for a
// fresh Simulation per replica instead (see initRuns/initSingleRun), which
// never needs this.
func (r *Registry) Reset() {
	r.byName = make(map[string]*regEntry)
	r.order = nil
	r.nextID = 0
}

func (r *Registry) deregister(e *Entity) {
	if e.name != "" {
		delete(r.byName, e.name)
	}
	for i, re := range r.order {
		if re.entity == e {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}
