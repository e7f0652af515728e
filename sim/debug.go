package sim

import "github.com/sirupsen/logrus"

// DebugStream is a named-level debug sink backed by logrus, matching the
// teacher's convention of funnelling every engine diagnostic through
// logrus (sim/simulator.go, cmd/root.go). Enter logs a handler-entry line
// of the form "t = [<globalTime>] --> <function>"; Enter and Writef do
// nothing for a level that has not been turned on with Enable.
type DebugStream struct {
	logger  *logrus.Logger
	enabled map[string]bool
	stack   []string
}

// NewDebugStream returns a DebugStream with all levels disabled.
func NewDebugStream() *DebugStream {
	return &DebugStream{
		logger:  logrus.New(),
		enabled: make(map[string]bool),
	}
}

// Enable turns a named debug level on.
func (d *DebugStream) Enable(level string) { d.enabled[level] = true }

// Disable turns a named debug level off.
func (d *DebugStream) Disable(level string) { delete(d.enabled, level) }

// Enabled reports whether level is currently enabled.
func (d *DebugStream) Enabled(level string) bool { return d.enabled[level] }

// SetLevel maps the stream's underlying logrus verbosity, independent of
// which named levels are enabled (e.g. wiring --log from the CLI).
func (d *DebugStream) SetLevel(l logrus.Level) { d.logger.SetLevel(l) }

// Enter logs a handler-entry line at the given tick and pushes header onto
// the debug call stack; it is a no-op if level is not enabled.
func (d *DebugStream) Enter(level string, now Tick, header string) {
	if !d.enabled[level] {
		return
	}
	d.stack = append(d.stack, header)
	d.logger.WithField("dbg", level).Debugf("t = [%s] --> %s", now, header)
}

// Exit pops the most recently entered header off the debug call stack.
func (d *DebugStream) Exit() {
	if len(d.stack) == 0 {
		return
	}
	d.stack = d.stack[:len(d.stack)-1]
}

// Writef writes a formatted message at level, if enabled.
func (d *DebugStream) Writef(level string, format string, args ...any) {
	if !d.enabled[level] {
		return
	}
	d.logger.WithField("dbg", level).Debugf(format, args...)
}
