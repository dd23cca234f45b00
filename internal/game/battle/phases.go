package battle

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/nucleotide/internal/data"
	"github.com/udisondev/nucleotide/internal/game/status"
	"github.com/udisondev/nucleotide/internal/model"
)

// initializeBattle pops the next encounter and instantiates its combatants.
// With no encounter left the run is won.
func (m *Machine) initializeBattle() error {
	enc, ok := m.enemies.Pop()
	if !ok {
		m.logf("No enemies remain.")
		m.force(PhaseVictory)
		return nil
	}

	roster, err := m.instantiate(enc)
	if err != nil {
		return err
	}

	m.battle++
	m.ctx = &battleContext{roster: roster, actor: roster.Player().ID()}
	m.reward = nil
	m.choice = nil
	m.cleanedUp = false
	m.encounter = append(m.encounter[:0], enc.Enemies...)
	m.log.reset()

	slog.Info("battle started", "battle", m.battle, "enemies", enc.Enemies)
	m.logf("Battle %d begins.", m.battle)
	m.request(PhaseCharacterActing)
	return nil
}

// instantiate builds a fresh roster, player first, from the player template and enemy specs.
func (m *Machine) instantiate(enc model.Encounter) (*Roster, error) {
	if err := m.registry.ValidateGenome(m.player.Genome); err != nil {
		return nil, fmt.Errorf("player genome: %w", err)
	}
	genome, err := model.NewGenome(m.player.Genome)
	if err != nil {
		return nil, fmt.Errorf("player genome: %w", err)
	}
	members := []*model.Combatant{
		model.NewCombatant(m.nextHandle(), m.player.Name, model.PlayerRole(), m.player.Health, m.player.Energy, genome),
	}

	for _, name := range enc.Enemies {
		spec, ok := m.registry.Enemy(name)
		if !ok {
			return nil, fmt.Errorf("%w %q", data.ErrUnknownEnemy, name)
		}
		g, err := model.NewGenome(spec.Genome)
		if err != nil {
			return nil, fmt.Errorf("enemy %q: %w", name, err)
		}
		members = append(members, model.NewCombatant(m.nextHandle(), spec.Name, model.EnemyRole(spec.Name), spec.Health, spec.Energy, g))
	}

	return NewRoster(members...)
}

// actor returns the current actor or an invariant error.
func (m *Machine) actor() (*model.Combatant, error) {
	a := m.Actor()
	if a == nil {
		return nil, fmt.Errorf("%w: handle %d", ErrMissingActor, m.ctx.actor)
	}
	return a, nil
}

// characterActing spends one energy of the actor, or hands the turn over to the
// next living combatant once the actor has none left.
func (m *Machine) characterActing() error {
	actor, err := m.actor()
	if err != nil {
		return err
	}

	if actor.Energy() == 0 || actor.IsDefeated() {
		if !actor.IsDefeated() {
			actor.RefillEnergy()
			if cleared := actor.Statuses().ClearOnHandover(); len(cleared) > 0 && IsDebugEnabled() {
				slog.Debug("statuses cleared on handover", "combatant", actor.Name(), "kinds", cleared)
			}
		}

		next := m.ctx.roster.Next(actor.ID())
		if next == nil {
			return fmt.Errorf("%w: nobody left to act after %s", ErrMissingActor, actor.Name())
		}
		next.ClearBlock()
		m.ctx.actor = next.ID()
		actor = next
		m.logf("%s's turn.", actor.Name())
	} else {
		actor.SpendEnergy()
	}

	if actor.Role().IsPlayer() {
		m.request(PhaseAwaitingInput)
	} else {
		m.request(PhaseStartOfTurn)
	}
	return nil
}

// awaitingInput holds the turn until the player has chosen an action.
func (m *Machine) awaitingInput() error {
	if m.choice == nil {
		return nil
	}
	choice := *m.choice
	m.choice = nil

	if choice == ActionRunAway {
		actor, err := m.actor()
		if err != nil {
			return err
		}
		m.logf("%s tries to run away.", actor.Name())
		m.emit(StatusEvent{TargetID: actor.ID(), Kind: status.RunningAway, Stacks: m.cfg.RunAwayTurns})
	}

	m.request(PhaseStartOfTurn)
	return nil
}

func (m *Machine) startOfTurn() error {
	if err := m.resolveStatuses(status.TimingStartOfTurn); err != nil {
		return err
	}
	m.request(PhaseGeneLoading)
	return nil
}

// geneLoading queues one command per (effect, target) of the actor's active gene,
// effect-major. A fleeing actor expresses nothing.
func (m *Machine) geneLoading() error {
	actor, err := m.actor()
	if err != nil {
		return err
	}
	defer m.request(PhaseGeneCommandHandling)

	if actor.Statuses().Contains(status.RunningAway) {
		m.logf("%s is running away.", actor.Name())
		return nil
	}

	name, err := actor.Genome().ActiveGene()
	if err != nil {
		return fmt.Errorf("%s: %w", actor.Name(), err)
	}
	gene, ok := m.registry.Gene(name)
	if !ok {
		return fmt.Errorf("%s: %w %q", actor.Name(), data.ErrUnknownGene, name)
	}

	targets := m.targets(actor, gene.Target)
	constricted := actor.Statuses().Contains(status.Constricted)

	m.logf("%s expresses %s.", actor.Name(), gene.Name)
	for _, effect := range gene.Effects {
		if constricted && data.IsDamage(effect) {
			m.logf("%s is constricted and cannot attack.", actor.Name())
			continue
		}
		for _, target := range targets {
			m.ctx.queue = append(m.ctx.queue, geneCommand{effect: effect, target: target.ID()})
		}
	}
	return nil
}

// targets applies a gene's target rule. Random and all-opponent targeting both
// resolve to the next living opponent in roster order.
func (m *Machine) targets(actor *model.Combatant, rule data.TargetRule) []*model.Combatant {
	switch rule {
	case data.TargetSelf:
		return []*model.Combatant{actor}
	case data.TargetRandomOpponent, data.TargetAllOpponents:
		if opp := m.ctx.roster.NextOpponent(actor.ID()); opp != nil {
			return []*model.Combatant{opp}
		}
		return nil
	case data.TargetEveryone:
		return m.ctx.roster.Living()
	default:
		slog.Warn("unknown target rule, gene has no targets", "rule", rule, "actor", actor.Name())
		return nil
	}
}

// geneCommandHandling drains the command queue into events.
func (m *Machine) geneCommandHandling() error {
	for _, cmd := range m.ctx.queue {
		m.emit(eventFor(cmd))
	}
	m.ctx.queue = m.ctx.queue[:0]
	m.request(PhaseEndOfTurn)
	return nil
}

func (m *Machine) endOfTurn() error {
	actor, err := m.actor()
	if err != nil {
		return err
	}
	// Read before resolution: the last RunningAway stack is gone once the flee fires.
	fleeing := actor.Statuses().Contains(status.RunningAway)

	if err := m.resolveStatuses(status.TimingEndOfTurn); err != nil {
		return err
	}

	if !fleeing {
		actor.Genome().AdvancePointer()
	}

	m.request(PhaseGeneAnimating)
	return nil
}

// geneAnimating is a presentation beat with no logic.
func (m *Machine) geneAnimating() error {
	m.request(PhaseCharacterActing)
	return nil
}

// resolveStatuses fires every status with the given timing on every living
// combatant whose applicability admits the current actor.
func (m *Machine) resolveStatuses(timing status.Timing) error {
	for _, c := range m.ctx.roster.Living() {
		ownTurn := c.ID() == m.ctx.actor
		var err error

		c.Statuses().Retain(func(e *status.Entry) bool {
			if err != nil {
				return true
			}
			if !e.Kind.Valid() {
				err = fmt.Errorf("%s: %w: %v", c.Name(), status.ErrUnknownKind, e.Kind)
				return true
			}
			if e.Kind.Timing() != timing || !e.Kind.AppliesOn(ownTurn) {
				return true
			}

			switch e.Kind {
			case status.Poison:
				m.emit(DamageEvent{TargetID: c.ID(), Amount: e.Count, Source: e.Kind.String()})
			case status.RepeatGene:
				c.Genome().IncrementRepeat()
				m.logf("%s will repeat %s.", c.Name(), activeGeneName(c))
			case status.RunningAway:
				if e.Count == 1 {
					m.emit(FleeEvent{TargetID: c.ID()})
				}
			case status.Weak, status.Constricted:
			default:
				err = fmt.Errorf("%s: %w: %v", c.Name(), status.ErrUnknownKind, e.Kind)
				return true
			}
			e.Count--
			return true
		})

		if err != nil {
			return err
		}
	}
	return nil
}

func activeGeneName(c *model.Combatant) string {
	name, err := c.Genome().ActiveGene()
	if err != nil {
		return "?"
	}
	return name
}
