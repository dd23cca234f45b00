package battle

import "errors"

var (
	// ErrEmptyRoster is returned when a battle would start without combatants.
	ErrEmptyRoster = errors.New("roster is empty")

	// ErrIllegalTransition is returned when a phase requests an edge the phase graph does not have.
	ErrIllegalTransition = errors.New("illegal phase transition")

	// ErrUnknownPhase means the machine holds a phase value it has no handler for.
	ErrUnknownPhase = errors.New("unknown phase")

	// ErrMissingActor means the turn context points at a combatant that is not in the roster.
	ErrMissingActor = errors.New("actor not in roster")

	ErrNotAwaitingInput   = errors.New("battle is not awaiting input")
	ErrOptionUnavailable  = errors.New("option unavailable")
	ErrNotSelectingReward = errors.New("battle is not selecting a reward")
	ErrRewardUnavailable  = errors.New("reward gene not offered")
)
