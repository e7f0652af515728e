package sim

import "fmt"

// QueueDuplicateError is returned when post is called on an event already
// sitting in the queue.
type QueueDuplicateError struct {
	Event any
}

func (e *QueueDuplicateError) Error() string {
	return fmt.Sprintf("sim: post: event %v is already enqueued; drop() first", e.Event)
}

// PostInPastError is returned when post(at) names a tick earlier than the
// simulation's current global time.
type PostInPastError struct {
	At  Tick
	Now Tick
}

func (e *PostInPastError) Error() string {
	return fmt.Sprintf("sim: post: at=%s is before globalTime=%s", e.At, e.Now)
}

// NoMoreEventsError signals an empty queue on sim_step; it is a normal
// termination condition, not a fault, and is handled by run_to/run.
type NoMoreEventsError struct{}

func (e *NoMoreEventsError) Error() string { return "sim: no more events in queue" }

// NotFoundError is returned by Registry.Find for an unregistered name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("sim: entity %q not found", e.Name)
}

// ParseExc is raised by a createInstance factory invoked with the wrong
// number or shape of string parameters.
type ParseExc struct {
	ClassName string
	Reason    string
}

func (e *ParseExc) Error() string {
	return fmt.Sprintf("sim: %s: %s", e.ClassName, e.Reason)
}

// NewWrongArityParseExc builds the canonical "Wrong number of parameters"
// ParseExc used by every createInstance factory in the catalog.
func NewWrongArityParseExc(className string) *ParseExc {
	return &ParseExc{ClassName: className, Reason: "Wrong number of parameters"}
}

// KernelMismatchError is returned when a task's kernel is missing, or does
// not satisfy the capability interface an instruction requires.
type KernelMismatchError struct {
	TaskName string
	Want     string
}

func (e *KernelMismatchError) Error() string {
	return fmt.Sprintf("sim: task %q: kernel does not implement %s", e.TaskName, e.Want)
}

// IoExc wraps a file-related failure, e.g. DetVar's file open/parse errors.
type IoExc struct {
	Path string
	Err  error
}

func (e *IoExc) Error() string {
	return fmt.Sprintf("sim: io: %s: %v", e.Path, e.Err)
}

func (e *IoExc) Unwrap() error { return e.Err }
