package battle

import "log/slog"

// transition collects the phase changes asked for during one tick.
// A requested change is the normal flow of a turn; a forced one ends the
// battle and always wins.
type transition struct {
	requested    Phase
	hasRequested bool

	forced    Phase
	hasForced bool
}

// forcePriority ranks terminal phases when more than one is forced in the same tick.
func forcePriority(p Phase) int {
	switch p {
	case PhaseGameOver:
		return 3
	case PhaseSelectReward:
		return 2
	case PhaseVictory:
		return 1
	default:
		return 0
	}
}

// request queues the normal next phase. The first request of a tick wins.
func (t *transition) request(current, next Phase) bool {
	if t.hasRequested {
		slog.Debug("phase already queued, ignoring request",
			"current", current,
			"queued", t.requested,
			"ignored", next)
		return false
	}
	t.requested = next
	t.hasRequested = true
	return true
}

// force queues a battle-ending phase. A higher ranked forced phase is never replaced.
func (t *transition) force(current, next Phase) bool {
	if t.hasForced && forcePriority(t.forced) >= forcePriority(next) {
		slog.Debug("phase already forced, ignoring",
			"current", current,
			"forced", t.forced,
			"ignored", next)
		return false
	}
	t.forced = next
	t.hasForced = true
	return true
}

// resolve returns the phase to enter at the end of the tick.
// ok is false when nothing was queued.
func (t *transition) resolve() (next Phase, forced bool, ok bool) {
	switch {
	case t.hasForced:
		return t.forced, true, true
	case t.hasRequested:
		return t.requested, false, true
	default:
		return 0, false, false
	}
}

func (t *transition) reset() {
	*t = transition{}
}
