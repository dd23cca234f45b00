package model

import "github.com/udisondev/nucleotide/internal/game/status"

// RoleKind distinguishes the human-controlled player from enemies.
type RoleKind uint8

const (
	RolePlayer RoleKind = iota
	RoleEnemy
)

// Role is a combatant's side in battle. Enemies carry their spec name.
type Role struct {
	Kind RoleKind
	Name string
}

// PlayerRole returns the role of the human-controlled combatant.
func PlayerRole() Role { return Role{Kind: RolePlayer, Name: "Player"} }

// EnemyRole returns the role of the named enemy.
func EnemyRole(name string) Role { return Role{Kind: RoleEnemy, Name: name} }

func (r Role) IsPlayer() bool { return r.Kind == RolePlayer }
func (r Role) IsEnemy() bool  { return r.Kind == RoleEnemy }

// Opposes reports whether two roles are on different sides.
func (r Role) Opposes(other Role) bool { return r.Kind != other.Kind }

func (r Role) String() string {
	if r.Kind == RolePlayer {
		return "Player"
	}
	return "Enemy(" + r.Name + ")"
}

// Combatant is the mutable per-battle state of one actor. Health, block and
// energy use saturating arithmetic and never wrap.
type Combatant struct {
	id   uint32
	name string
	role Role

	health    uint8
	maxHealth uint8
	block     uint8

	energy         uint8
	startingEnergy uint8

	statuses status.Stacks
	genome   *Genome

	defeated bool
}

// NewCombatant creates a combatant at full health and energy with no block or statuses.
func NewCombatant(id uint32, name string, role Role, health, energy uint8, genome *Genome) *Combatant {
	return &Combatant{
		id:             id,
		name:           name,
		role:           role,
		health:         health,
		maxHealth:      health,
		energy:         energy,
		startingEnergy: energy,
		genome:         genome,
	}
}

func (c *Combatant) ID() uint32               { return c.id }
func (c *Combatant) Name() string             { return c.name }
func (c *Combatant) Role() Role               { return c.role }
func (c *Combatant) Health() uint8            { return c.health }
func (c *Combatant) MaxHealth() uint8         { return c.maxHealth }
func (c *Combatant) Block() uint8             { return c.block }
func (c *Combatant) Energy() uint8            { return c.energy }
func (c *Combatant) StartingEnergy() uint8    { return c.startingEnergy }
func (c *Combatant) Genome() *Genome          { return c.genome }
func (c *Combatant) Statuses() *status.Stacks { return &c.statuses }

// IsDefeated reports whether the combatant has left the battle (killed or fled).
func (c *Combatant) IsDefeated() bool { return c.defeated }

// MarkDefeated removes the combatant from rotation and targeting.
func (c *Combatant) MarkDefeated() { c.defeated = true }

// TakeDamage applies amount against block first, then health.
// Returns the damage that reached health.
func (c *Combatant) TakeDamage(amount uint8) uint8 {
	effective := SubSat(amount, c.block)
	c.block = SubSat(c.block, amount)
	c.health = SubSat(c.health, effective)
	return effective
}

// Heal restores health up to max health. Returns the amount restored.
func (c *Combatant) Heal(amount uint8) uint8 {
	before := c.health
	c.health = min(AddSat(c.health, amount), c.maxHealth)
	return c.health - before
}

func (c *Combatant) AddBlock(amount uint8)   { c.block = AddSat(c.block, amount) }
func (c *Combatant) ClearBlock()             { c.block = 0 }
func (c *Combatant) GainEnergy(amount uint8) { c.energy = AddSat(c.energy, amount) }

// SpendEnergy consumes one energy. Returns false if none was left.
func (c *Combatant) SpendEnergy() bool {
	if c.energy == 0 {
		return false
	}
	c.energy--
	return true
}

// RefillEnergy restores energy to its starting value.
func (c *Combatant) RefillEnergy() { c.energy = c.startingEnergy }

// SetHealth overrides current health (clamped to max). Used by tests and scenario setup.
func (c *Combatant) SetHealth(h uint8) { c.health = min(h, c.maxHealth) }

// SetEnergy overrides remaining energy.
func (c *Combatant) SetEnergy(e uint8) { c.energy = e }

// IsDead reports whether health reached zero.
func (c *Combatant) IsDead() bool { return c.health == 0 }

// AddSat returns a+b clamped to 255.
func AddSat(a, b uint8) uint8 {
	if c := a + b; c >= a {
		return c
	}
	return 255
}

// SubSat returns a-b clamped to 0.
func SubSat(a, b uint8) uint8 {
	if a < b {
		return 0
	}
	return a - b
}
