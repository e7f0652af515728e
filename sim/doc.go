// Package sim provides the core discrete-event simulation engine for rtsim.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - tick.go: virtual time, the Tick type and its arithmetic
//   - event.go: the Event post/drop/process/action protocol
//   - queue.go: the (time, priority, order) priority queue
//   - entity.go: the process-wide entity registry and newRun/endRun contract
//   - simulation.go: the driver loop (initRuns, sim_step, run_to, run)
//
// # Architecture
//
// The sim package defines the event engine, entity registry, and simulation
// driver described by the kernel specification. Client code (real-time
// tasks, CPU schedulers, example programs) builds on top of the interfaces
// exported here; none of it lives in this package. The one exception is
// sim/task, which implements the thin task/instruction fabric described
// alongside the kernel.
//
// # Key Interfaces
//
// The extension points are small, single-purpose interfaces:
//   - Doer: the event handler a concrete event type implements (doit())
//   - StatProbe, TraceProbe, Particle: post-action observers attached to events
//   - RandomVar: a sampling distribution, built from its Simulation's
//     default generator unless one is supplied explicitly
package sim
