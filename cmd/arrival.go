package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/rtsim/rtsim/sim"
)

// ArrivalConfig names one inter-arrival event generator in a scenario file:
// Distribution/Params feed sim.CreateRandomVar's factory lookup exactly as
// InstrConfig feeds task.CreateInstr.
type ArrivalConfig struct {
	Name         string   `yaml:"name"`
	Distribution string   `yaml:"distribution"`
	Params       []string `yaml:"params"`
}

// arrivalEvent is a pure inter-arrival generator: on every firing it logs
// the arrival and reposts itself gen.Get() ticks later (truncated to a whole
// tick, and never less than one tick), forever. It carries
// no task or instruction semantics, demonstrating the event engine's
// post/repost protocol on its own.
type arrivalEvent struct {
	*sim.Event
	name  string
	gen   sim.RandomVar
	count int
}

func newArrivalEvent(s *sim.Simulation, name string, gen sim.RandomVar) *arrivalEvent {
	a := &arrivalEvent{name: name, gen: gen}
	a.Event = sim.NewEvent(s, a, sim.DefaultPriority)
	return a
}

// Doit implements sim.Doer.
func (a *arrivalEvent) Doit() error {
	a.count++
	logrus.WithField("arrival", a.name).WithField("t", a.LastTime()).WithField("n", a.count).
		Info("rtsim: arrival")

	delay := sim.TickFromDuration(a.gen.Get())
	if delay < 1 {
		delay = 1
	}
	return a.Event.Post(a.LastTime()+delay, false)
}

// BuildArrivals constructs one arrivalEvent per entry in arrivals. It does
// not post any of them; callers drive that separately (mirroring
// BuildTasks not calling Start), e.g. by looping a.Post(0, false).
func BuildArrivals(s *sim.Simulation, arrivals []ArrivalConfig) ([]*arrivalEvent, error) {
	out := make([]*arrivalEvent, 0, len(arrivals))
	for _, ac := range arrivals {
		gen, err := sim.CreateRandomVar(s, ac.Distribution, ac.Params)
		if err != nil {
			return nil, fmt.Errorf("arrival %q: %w", ac.Name, err)
		}
		out = append(out, newArrivalEvent(s, ac.Name, gen))
	}
	return out, nil
}
