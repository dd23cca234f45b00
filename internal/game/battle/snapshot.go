package battle

import (
	"github.com/udisondev/nucleotide/internal/game/status"
	"github.com/udisondev/nucleotide/internal/model"
)

// Snapshot is a read-only copy of the machine state, published once per tick.
type Snapshot struct {
	Tick       int
	Battle     int
	Phase      Phase
	Paused     bool
	Actor      uint32
	Combatants []CombatantView
	Options    []Action
	Reward     *Reward
}

// CombatantView is the presentation state of one combatant.
type CombatantView struct {
	ID             uint32
	Name           string
	Role           model.Role
	Health         uint8
	MaxHealth      uint8
	Block          uint8
	Energy         uint8
	StartingEnergy uint8
	Defeated       bool
	Statuses       []status.Entry
	Genome         GenomeView
}

// GenomeView lists a genome's genes with the active one flagged.
type GenomeView struct {
	Genes     []GeneView
	Pointer   int
	Direction model.Direction
	Repeat    uint8
}

type GeneView struct {
	Name   string
	Symbol rune
	Text   string
	Active bool
}

// Snapshot copies the current state. Combatants is empty outside a battle.
func (m *Machine) Snapshot() Snapshot {
	s := Snapshot{
		Tick:    m.ticks,
		Battle:  m.battle,
		Phase:   m.phase,
		Paused:  m.paused,
		Options: m.Options(),
		Reward:  m.Reward(),
	}
	if m.ctx == nil {
		return s
	}

	s.Actor = m.ctx.actor
	for _, c := range m.ctx.roster.All() {
		s.Combatants = append(s.Combatants, m.viewOf(c))
	}
	return s
}

func (m *Machine) viewOf(c *model.Combatant) CombatantView {
	g := c.Genome()
	genes := g.Genes()
	gv := GenomeView{
		Genes:     make([]GeneView, len(genes)),
		Pointer:   g.Pointer(),
		Direction: g.Direction(),
		Repeat:    g.Repeat(),
	}
	for i, name := range genes {
		view := GeneView{Name: name, Symbol: '?', Active: i == g.Pointer()}
		if sym, ok := m.registry.Symbol(name); ok {
			view.Symbol = sym
		}
		if spec, ok := m.registry.Gene(name); ok {
			view.Text = spec.Text
		}
		gv.Genes[i] = view
	}

	return CombatantView{
		ID:             c.ID(),
		Name:           c.Name(),
		Role:           c.Role(),
		Health:         c.Health(),
		MaxHealth:      c.MaxHealth(),
		Block:          c.Block(),
		Energy:         c.Energy(),
		StartingEnergy: c.StartingEnergy(),
		Defeated:       c.IsDefeated(),
		Statuses:       c.Statuses().Entries(),
		Genome:         gv,
	}
}

// Player returns the player's view, false when no battle is in progress.
func (s Snapshot) Player() (CombatantView, bool) {
	for _, c := range s.Combatants {
		if c.Role.IsPlayer() {
			return c, true
		}
	}
	return CombatantView{}, false
}
