package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCombatant(t *testing.T, health, energy uint8) *Combatant {
	t.Helper()
	g, err := NewGenome([]string{"Sting"})
	require.NoError(t, err)
	return NewCombatant(1, "Test", PlayerRole(), health, energy, g)
}

func TestCombatant_TakeDamage(t *testing.T) {
	tests := []struct {
		name       string
		health     uint8
		block      uint8
		amount     uint8
		wantHealth uint8
		wantBlock  uint8
		wantDealt  uint8
	}{
		{"no block", 10, 0, 4, 6, 0, 4},
		{"block absorbs all", 10, 5, 3, 10, 2, 0},
		{"block absorbs part", 10, 3, 5, 8, 0, 2},
		{"overkill saturates", 5, 3, 10, 0, 0, 7},
		{"zero damage", 5, 2, 0, 5, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCombatant(t, tt.health, 3)
			c.AddBlock(tt.block)

			dealt := c.TakeDamage(tt.amount)

			assert.Equal(t, tt.wantHealth, c.Health())
			assert.Equal(t, tt.wantBlock, c.Block())
			assert.Equal(t, tt.wantDealt, dealt)
		})
	}
}

func TestCombatant_HealCapsAtMax(t *testing.T) {
	c := newTestCombatant(t, 20, 3)
	c.TakeDamage(5)

	healed := c.Heal(10)

	assert.Equal(t, uint8(5), healed)
	assert.Equal(t, uint8(20), c.Health())
}

func TestCombatant_BlockSaturates(t *testing.T) {
	c := newTestCombatant(t, 10, 3)
	c.AddBlock(200)
	c.AddBlock(200)

	assert.Equal(t, uint8(255), c.Block())

	c.ClearBlock()
	assert.Equal(t, uint8(0), c.Block())
}

func TestCombatant_Energy(t *testing.T) {
	c := newTestCombatant(t, 10, 2)

	assert.True(t, c.SpendEnergy())
	assert.True(t, c.SpendEnergy())
	assert.False(t, c.SpendEnergy())
	assert.Equal(t, uint8(0), c.Energy())

	c.RefillEnergy()
	assert.Equal(t, uint8(2), c.Energy())

	c.GainEnergy(254)
	assert.Equal(t, uint8(255), c.Energy())
}

func TestSaturatingHelpers(t *testing.T) {
	assert.Equal(t, uint8(255), AddSat(200, 100))
	assert.Equal(t, uint8(7), AddSat(3, 4))
	assert.Equal(t, uint8(0), SubSat(3, 4))
	assert.Equal(t, uint8(1), SubSat(5, 4))
}

func TestRole(t *testing.T) {
	p := PlayerRole()
	e := EnemyRole("Slime")

	assert.True(t, p.IsPlayer())
	assert.True(t, e.IsEnemy())
	assert.True(t, p.Opposes(e))
	assert.False(t, e.Opposes(EnemyRole("Bat")))
	assert.Equal(t, "Enemy(Slime)", e.String())
}

func TestEnemyQueue(t *testing.T) {
	q := NewEnemyQueue(
		Encounter{Enemies: []string{"Slime"}},
		Encounter{},
		Encounter{Enemies: []string{"Bat", "Bat"}},
	)

	require.Equal(t, 2, q.Len())

	e, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, []string{"Slime"}, e.Enemies)

	e, ok = q.Pop()
	require.True(t, ok)
	assert.Equal(t, []string{"Bat", "Bat"}, e.Enemies)

	_, ok = q.Pop()
	assert.False(t, ok)
}

func TestPlayer_AddGene(t *testing.T) {
	genome := []string{"Sting"}
	p := NewPlayer("Player", 100, 3, genome)
	p.AddGene("Block")

	assert.Equal(t, []string{"Sting", "Block"}, p.Genome)
	assert.Equal(t, []string{"Sting"}, genome, "template must not alias caller slice")
}
