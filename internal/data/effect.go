package data

import (
	"fmt"

	"github.com/udisondev/nucleotide/internal/game/status"
)

// Effect is one authored step of a gene. The set of effects is closed:
// every consumer implements EffectVisitor, so a new effect type does not
// compile until every phase handles it.
type Effect interface {
	Accept(v EffectVisitor)
	String() string
}

// EffectVisitor dispatches on the concrete effect type.
type EffectVisitor interface {
	VisitDamage(Damage)
	VisitBlock(Block)
	VisitHeal(Heal)
	VisitApplyStatus(ApplyStatus)
	VisitReverseProcessing(ReverseProcessing)
	VisitJumpForward(JumpForward)
	VisitGainEnergy(GainEnergy)
}

// Damage deals Amount damage to the target, reduced by block.
type Damage struct{ Amount uint8 }

// Block adds Amount block to the target.
type Block struct{ Amount uint8 }

// Heal restores Amount health to the target.
type Heal struct{ Amount uint8 }

// ApplyStatus adds Stacks of Kind to the target.
type ApplyStatus struct {
	Kind   status.Kind
	Stacks uint8
}

// ReverseProcessing flips the target genome's processing direction.
type ReverseProcessing struct{}

// JumpForward moves the target genome pointer N genes in its processing direction.
type JumpForward struct{ N uint8 }

// GainEnergy gives the target Amount extra energy this turn.
type GainEnergy struct{ Amount uint8 }

func (e Damage) Accept(v EffectVisitor)            { v.VisitDamage(e) }
func (e Block) Accept(v EffectVisitor)             { v.VisitBlock(e) }
func (e Heal) Accept(v EffectVisitor)              { v.VisitHeal(e) }
func (e ApplyStatus) Accept(v EffectVisitor)       { v.VisitApplyStatus(e) }
func (e ReverseProcessing) Accept(v EffectVisitor) { v.VisitReverseProcessing(e) }
func (e JumpForward) Accept(v EffectVisitor)       { v.VisitJumpForward(e) }
func (e GainEnergy) Accept(v EffectVisitor)        { v.VisitGainEnergy(e) }

func (e Damage) String() string            { return fmt.Sprintf("Damage(%d)", e.Amount) }
func (e Block) String() string             { return fmt.Sprintf("Block(%d)", e.Amount) }
func (e Heal) String() string              { return fmt.Sprintf("Heal(%d)", e.Amount) }
func (e ApplyStatus) String() string       { return fmt.Sprintf("Status(%s, %d)", e.Kind, e.Stacks) }
func (e ReverseProcessing) String() string { return "ReverseGeneProcessing" }
func (e JumpForward) String() string       { return fmt.Sprintf("JumpForward(%d)", e.N) }
func (e GainEnergy) String() string        { return fmt.Sprintf("GainEnergy(%d)", e.Amount) }

// IsDamage reports whether e is a damage-type effect (suppressed by Constricted).
func IsDamage(e Effect) bool {
	_, ok := e.(Damage)
	return ok
}
