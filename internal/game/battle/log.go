package battle

import (
	"fmt"
	"log/slog"
	"sync/atomic"
)

// debugLoggingEnabled guards per-tick debug logs of the battle engine.
// Set via EnableDebugLogging() from main after the config is parsed.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables per-tick debug logging.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if per-tick debug logging is enabled.
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}

// Notifier receives presentation updates from the machine. Both methods are
// called synchronously from Tick and must not call back into the machine.
type Notifier interface {
	// OnLog is called for every battle log line as it is written.
	OnLog(line string)
	// OnSnapshot is called once at the end of every tick.
	OnSnapshot(s Snapshot)
}

type nopNotifier struct{}

func (nopNotifier) OnLog(string)        {}
func (nopNotifier) OnSnapshot(Snapshot) {}

// NotifierFuncs adapts plain functions to Notifier. Nil fields are skipped.
type NotifierFuncs struct {
	Log      func(line string)
	Snapshot func(s Snapshot)
}

func (n NotifierFuncs) OnLog(line string) {
	if n.Log != nil {
		n.Log(line)
	}
}

func (n NotifierFuncs) OnSnapshot(s Snapshot) {
	if n.Snapshot != nil {
		n.Snapshot(s)
	}
}

// battleLog is the human-readable log of the current battle.
type battleLog struct {
	lines []string
}

func (l *battleLog) reset() { l.lines = l.lines[:0] }

func (l *battleLog) lastN(n int) []string {
	if n <= 0 || n > len(l.lines) {
		n = len(l.lines)
	}
	out := make([]string, n)
	copy(out, l.lines[len(l.lines)-n:])
	return out
}

// logf appends a line to the battle log and forwards it to the notifier.
func (m *Machine) logf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	m.log.lines = append(m.log.lines, line)
	if IsDebugEnabled() {
		slog.Debug("battle log", "battle", m.battle, "line", line)
	}
	m.notifier.OnLog(line)
}
