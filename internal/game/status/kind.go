// Package status defines the status effects a combatant can carry during battle
// and the static rules deciding when each of them fires.
package status

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned for a status kind the engine does not implement.
// It signals a spec/engine version mismatch and is never recovered from.
var ErrUnknownKind = errors.New("unknown status kind")

// Kind identifies a status effect.
type Kind uint8

const (
	Poison Kind = iota
	Weak
	Constricted
	RepeatGene
	RunningAway

	kindCount
)

// Timing is the phase of a turn in which a status fires.
type Timing uint8

const (
	TimingNotApplicable Timing = iota
	TimingStartOfTurn
	TimingEndOfTurn
)

// Applicability restricts which turns a status resolves on, relative to its owner.
type Applicability uint8

const (
	EveryTurn Applicability = iota
	OwnTurn
	OtherTurns
)

type rule struct {
	name          string
	key           string
	timing        Timing
	applicability Applicability
	clears        bool
}

var rules = [kindCount]rule{
	Poison:      {name: "Poison", key: "poison", timing: TimingEndOfTurn, applicability: EveryTurn},
	Weak:        {name: "Weak", key: "weak", timing: TimingEndOfTurn, applicability: EveryTurn},
	Constricted: {name: "Constricted", key: "constricted", timing: TimingNotApplicable, applicability: EveryTurn},
	RepeatGene:  {name: "Repeat Gene", key: "repeat_gene", timing: TimingStartOfTurn, applicability: OwnTurn, clears: true},
	RunningAway: {name: "Running Away", key: "running_away", timing: TimingEndOfTurn, applicability: OwnTurn},
}

// Valid reports whether k is a kind the engine implements.
func (k Kind) Valid() bool {
	return k < kindCount
}

// Timing returns when the status fires.
func (k Kind) Timing() Timing {
	if !k.Valid() {
		return TimingNotApplicable
	}
	return rules[k].timing
}

// Applicability returns which turns the status resolves on.
func (k Kind) Applicability() Applicability {
	if !k.Valid() {
		return EveryTurn
	}
	return rules[k].applicability
}

// ClearsOnHandover reports whether the stacks are wiped when the owner's turn
// is handed over to the next actor.
func (k Kind) ClearsOnHandover() bool {
	if !k.Valid() {
		return false
	}
	return rules[k].clears
}

// AppliesOn reports whether a status owned by a combatant resolves during the turn
// of actor. ownTurn is true when the owner is the acting combatant.
func (k Kind) AppliesOn(ownTurn bool) bool {
	switch k.Applicability() {
	case OwnTurn:
		return ownTurn
	case OtherTurns:
		return !ownTurn
	default:
		return true
	}
}

// Key returns the identifier used in spec files.
func (k Kind) Key() string {
	if !k.Valid() {
		return ""
	}
	return rules[k].key
}

// String returns human-readable status name.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return rules[k].name
}

// Kinds returns every implemented kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := range kindCount {
		kinds = append(kinds, k)
	}
	return kinds
}

// Parse resolves a spec-file identifier ("poison", "repeat_gene", "Running Away")
// to a Kind.
func Parse(s string) (Kind, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, " ", "_")
	norm = strings.ReplaceAll(norm, "-", "_")
	for k := range kindCount {
		if rules[k].key == norm {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// String returns human-readable timing name.
func (t Timing) String() string {
	switch t {
	case TimingStartOfTurn:
		return "START_OF_TURN"
	case TimingEndOfTurn:
		return "END_OF_TURN"
	default:
		return "NOT_APPLICABLE"
	}
}
