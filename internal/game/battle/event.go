package battle

import (
	"fmt"

	"github.com/udisondev/nucleotide/internal/game/status"
)

// Event is a combat event targeting one combatant. Events are emitted during a
// tick and resolved at the end of it, in emission order.
type Event interface {
	Target() uint32
	String() string
	accept(v eventVisitor)
}

// eventVisitor has one method per event type, so adding an event is a
// compile error until every resolver handles it.
type eventVisitor interface {
	damage(e DamageEvent)
	block(e BlockEvent)
	heal(e HealEvent)
	status(e StatusEvent)
	reverse(e ReverseEvent)
	jump(e JumpEvent)
	energy(e EnergyEvent)
	flee(e FleeEvent)
}

type DamageEvent struct {
	TargetID uint32
	Amount   uint8
	Source   string
}

type BlockEvent struct {
	TargetID uint32
	Amount   uint8
}

type HealEvent struct {
	TargetID uint32
	Amount   uint8
}

type StatusEvent struct {
	TargetID uint32
	Kind     status.Kind
	Stacks   uint8
}

type ReverseEvent struct {
	TargetID uint32
}

type JumpEvent struct {
	TargetID uint32
	N        uint8
}

type EnergyEvent struct {
	TargetID uint32
	Amount   uint8
}

// FleeEvent removes its target from the battle.
type FleeEvent struct {
	TargetID uint32
}

func (e DamageEvent) Target() uint32  { return e.TargetID }
func (e BlockEvent) Target() uint32   { return e.TargetID }
func (e HealEvent) Target() uint32    { return e.TargetID }
func (e StatusEvent) Target() uint32  { return e.TargetID }
func (e ReverseEvent) Target() uint32 { return e.TargetID }
func (e JumpEvent) Target() uint32    { return e.TargetID }
func (e EnergyEvent) Target() uint32  { return e.TargetID }
func (e FleeEvent) Target() uint32    { return e.TargetID }

func (e DamageEvent) accept(v eventVisitor)  { v.damage(e) }
func (e BlockEvent) accept(v eventVisitor)   { v.block(e) }
func (e HealEvent) accept(v eventVisitor)    { v.heal(e) }
func (e StatusEvent) accept(v eventVisitor)  { v.status(e) }
func (e ReverseEvent) accept(v eventVisitor) { v.reverse(e) }
func (e JumpEvent) accept(v eventVisitor)    { v.jump(e) }
func (e EnergyEvent) accept(v eventVisitor)  { v.energy(e) }
func (e FleeEvent) accept(v eventVisitor)    { v.flee(e) }

func (e DamageEvent) String() string  { return fmt.Sprintf("Damage(%d -> %d)", e.Amount, e.TargetID) }
func (e BlockEvent) String() string   { return fmt.Sprintf("Block(%d -> %d)", e.Amount, e.TargetID) }
func (e HealEvent) String() string    { return fmt.Sprintf("Heal(%d -> %d)", e.Amount, e.TargetID) }
func (e StatusEvent) String() string  { return fmt.Sprintf("Status(%s x%d -> %d)", e.Kind, e.Stacks, e.TargetID) }
func (e ReverseEvent) String() string { return fmt.Sprintf("Reverse(%d)", e.TargetID) }
func (e JumpEvent) String() string    { return fmt.Sprintf("Jump(%d -> %d)", e.N, e.TargetID) }
func (e EnergyEvent) String() string  { return fmt.Sprintf("Energy(%d -> %d)", e.Amount, e.TargetID) }
func (e FleeEvent) String() string    { return fmt.Sprintf("Flee(%d)", e.TargetID) }
