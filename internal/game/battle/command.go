package battle

import (
	"github.com/udisondev/nucleotide/internal/data"
)

// geneCommand is one effect of the active gene aimed at one target.
type geneCommand struct {
	effect data.Effect
	target uint32
}

// eventFor translates a queued command into the event it produces.
func eventFor(cmd geneCommand) Event {
	t := commandTranslator{target: cmd.target}
	cmd.effect.Accept(&t)
	return t.event
}

// commandTranslator maps every effect variant onto its event.
type commandTranslator struct {
	target uint32
	event  Event
}

func (t *commandTranslator) VisitDamage(e data.Damage) {
	t.event = DamageEvent{TargetID: t.target, Amount: e.Amount}
}

func (t *commandTranslator) VisitBlock(e data.Block) {
	t.event = BlockEvent{TargetID: t.target, Amount: e.Amount}
}

func (t *commandTranslator) VisitHeal(e data.Heal) {
	t.event = HealEvent{TargetID: t.target, Amount: e.Amount}
}

func (t *commandTranslator) VisitApplyStatus(e data.ApplyStatus) {
	t.event = StatusEvent{TargetID: t.target, Kind: e.Kind, Stacks: e.Stacks}
}

func (t *commandTranslator) VisitReverseProcessing(data.ReverseProcessing) {
	t.event = ReverseEvent{TargetID: t.target}
}

func (t *commandTranslator) VisitJumpForward(e data.JumpForward) {
	t.event = JumpEvent{TargetID: t.target, N: e.N}
}

func (t *commandTranslator) VisitGainEnergy(e data.GainEnergy) {
	t.event = EnergyEvent{TargetID: t.target, Amount: e.Amount}
}
