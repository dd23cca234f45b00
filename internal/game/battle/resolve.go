package battle

import (
	"log/slog"

	"github.com/udisondev/nucleotide/internal/model"
)

// resolveEvents applies the events emitted during this tick, in emission order.
func (m *Machine) resolveEvents() {
	if m.ctx == nil {
		return
	}
	r := resolver{m: m}
	for i := 0; i < len(m.ctx.events); i++ {
		m.ctx.events[i].accept(r)
	}
	m.ctx.events = m.ctx.events[:0]
}

// resolver applies events to the roster of the battle in progress.
type resolver struct {
	m *Machine
}

// target returns the living combatant an event is aimed at. Missing or
// defeated targets are expected (killed earlier in the tick) and skipped.
func (r resolver) target(e Event) *model.Combatant {
	c := r.m.ctx.roster.Get(e.Target())
	if c == nil || c.IsDefeated() {
		if IsDebugEnabled() {
			slog.Debug("event target gone, skipping", "event", e)
		}
		return nil
	}
	return c
}

func (r resolver) damage(e DamageEvent) {
	c := r.target(e)
	if c == nil {
		return
	}
	dealt := c.TakeDamage(e.Amount)
	if e.Source != "" {
		r.m.logf("%s takes %d %s damage.", c.Name(), dealt, e.Source)
	} else {
		r.m.logf("%d damage dealt to %s.", dealt, c.Name())
	}
	if c.IsDead() {
		r.m.defeat(c)
	}
}

func (r resolver) block(e BlockEvent) {
	if c := r.target(e); c != nil {
		c.AddBlock(e.Amount)
		r.m.logf("%s gains %d block.", c.Name(), e.Amount)
	}
}

func (r resolver) heal(e HealEvent) {
	if c := r.target(e); c != nil {
		healed := c.Heal(e.Amount)
		r.m.logf("%s heals %d.", c.Name(), healed)
	}
}

func (r resolver) status(e StatusEvent) {
	if c := r.target(e); c != nil {
		c.Statuses().Add(e.Kind, e.Stacks)
		r.m.logf("%s gains %d %s.", c.Name(), e.Stacks, e.Kind)
	}
}

func (r resolver) reverse(e ReverseEvent) {
	if c := r.target(e); c != nil {
		c.Genome().ReverseProcessingOrder()
		r.m.logf("%s's genome now runs %s.", c.Name(), c.Genome().Direction())
	}
}

func (r resolver) jump(e JumpEvent) {
	if c := r.target(e); c != nil {
		c.Genome().Jump(int(e.N))
		r.m.logf("%s skips ahead %d genes.", c.Name(), e.N)
	}
}

func (r resolver) energy(e EnergyEvent) {
	if c := r.target(e); c != nil {
		c.GainEnergy(e.Amount)
		r.m.logf("%s gains %d energy.", c.Name(), e.Amount)
	}
}

func (r resolver) flee(e FleeEvent) {
	c := r.target(e)
	if c == nil {
		return
	}
	m := r.m
	c.MarkDefeated()

	if c.Role().IsPlayer() {
		m.logf("%s ran away.", c.Name())
		m.reward = &Reward{Kind: RewardRanAway}
		m.force(PhaseSelectReward)
		return
	}

	m.logf("%s fled.", c.Name())
	if m.ctx.roster.enemiesRemaining() == 0 {
		m.settleReward()
	}
}

// defeat removes a combatant whose health reached zero.
func (m *Machine) defeat(c *model.Combatant) {
	c.MarkDefeated()
	m.logf("%s is defeated.", c.Name())

	if c.Role().IsPlayer() {
		m.force(PhaseGameOver)
		return
	}
	if m.ctx.roster.enemiesRemaining() == 0 {
		m.settleReward()
	}
}

// settleReward ends the battle once no enemy remains. A player who ran away
// earlier in the same tick keeps the ran-away reward.
func (m *Machine) settleReward() {
	if m.reward == nil || m.reward.Kind != RewardRanAway {
		m.reward = m.victoryReward()
	}
	m.force(PhaseSelectReward)
}

// victoryReward offers the distinct genes of every killed enemy. When every
// enemy fled instead, nothing is offered.
func (m *Machine) victoryReward() *Reward {
	reward := &Reward{Kind: RewardDefeated}
	seen := make(map[string]struct{})
	for _, e := range m.ctx.roster.Enemies() {
		if !e.IsDead() {
			continue
		}
		reward.Enemies = append(reward.Enemies, e.Name())
		for _, gene := range e.Genome().Genes() {
			if _, dup := seen[gene]; dup {
				continue
			}
			seen[gene] = struct{}{}
			reward.GeneOptions = append(reward.GeneOptions, gene)
		}
	}
	if len(reward.Enemies) == 0 {
		reward.Kind = RewardEnemiesFled
	}
	return reward
}
