// Package task implements the thin real-time task/instruction fabric built
// on top of the sim event engine: a Task is an entity owning an ordered
// list of Instr; SchedInstr is the exemplar instruction whose completion
// lowers the task's preemption threshold and triggers kernel dispatch.
package task

// Dispatcher is the capability a scheduler kernel must offer to decide
// which task runs next.
type Dispatcher interface {
	Dispatch()
}

// ThresholdLowerer is the capability a scheduler kernel must offer to
// re-enable preemption by lowering a task's preemption-suppression
// ceiling.
type ThresholdLowerer interface {
	DisableThreshold()
}

// RTKernel is the capability set SchedInstr.onEnd requires of a task's
// kernel. It replaces a dynamic_cast against a polymorphic kernel base
// with an explicit, narrow capability query: a kernel either satisfies
// both Dispatcher and ThresholdLowerer, or the query fails with
// KernelMismatchError — it is never partially accepted.
type RTKernel interface {
	Dispatcher
	ThresholdLowerer
}
