package testutil

import (
	"testing"

	"github.com/udisondev/nucleotide/internal/data"
	"github.com/udisondev/nucleotide/internal/game/status"
	"github.com/udisondev/nucleotide/internal/model"
)

// FixtureGenes содержит тестовый набор генов, покрывающий все виды эффектов.
var FixtureGenes = []data.GeneSpec{
	{Name: "Repeat Codon", Text: "Repeat the next gene.", Target: data.TargetSelf,
		Effects: []data.Effect{data.ApplyStatus{Kind: status.RepeatGene, Stacks: 1}}},
	{Name: "Sting", Text: "Deal 2 damage and inflict 1 Poison.", Target: data.TargetRandomOpponent,
		Effects: []data.Effect{data.Damage{Amount: 2}, data.ApplyStatus{Kind: status.Poison, Stacks: 1}}},
	{Name: "Block", Text: "Gain 5 block.", Target: data.TargetSelf,
		Effects: []data.Effect{data.Block{Amount: 5}}},
	{Name: "Reverse Codon", Text: "Reverse processing order.", Target: data.TargetSelf,
		Effects: []data.Effect{data.ReverseProcessing{}}},
	{Name: "Stomp", Text: "Deal 6 damage.", Target: data.TargetRandomOpponent,
		Effects: []data.Effect{data.Damage{Amount: 6}}},
	{Name: "Bite", Text: "Deal 3 damage.", Target: data.TargetRandomOpponent,
		Effects: []data.Effect{data.Damage{Amount: 3}}},
	{Name: "Constrict", Text: "Constrict the target.", Target: data.TargetRandomOpponent,
		Effects: []data.Effect{data.ApplyStatus{Kind: status.Constricted, Stacks: 1}}},
	{Name: "Recoil", Text: "Take 10 damage and gain 5 block.", Target: data.TargetSelf,
		Effects: []data.Effect{data.Damage{Amount: 10}, data.Block{Amount: 5}}},
	{Name: "Mend", Text: "Heal 4 and gain 1 energy.", Target: data.TargetSelf,
		Effects: []data.Effect{data.Heal{Amount: 4}, data.GainEnergy{Amount: 1}}},
	{Name: "Skip", Text: "Skip the next gene.", Target: data.TargetSelf,
		Effects: []data.Effect{data.JumpForward{N: 1}}},
	{Name: "Shockwave", Text: "Deal 1 damage to everyone.", Target: data.TargetEveryone,
		Effects: []data.Effect{data.Damage{Amount: 1}}},
	{Name: "Idle", Text: "Do nothing.", Target: data.TargetSelf},
}

// FixtureEnemies содержит тестовых врагов. Геномы ссылаются только на FixtureGenes.
var FixtureEnemies = []data.EnemySpec{
	{Name: "Slime", Health: 20, Energy: 2, Genome: []string{"Bite", "Block"}},
	{Name: "Viper", Health: 15, Energy: 3, Genome: []string{"Sting", "Constrict", "Bite"}},
	{Name: "Bat", Health: 8, Energy: 1, Genome: []string{"Bite"}},
	{Name: "Dummy", Health: 50, Energy: 1, Genome: []string{"Idle"}},
}

// DefaultGenome это стартовый геном игрока.
var DefaultGenome = []string{"Repeat Codon", "Sting", "Block", "Reverse Codon", "Stomp"}

// NewRegistry собирает реестр из FixtureGenes и FixtureEnemies.
func NewRegistry(tb testing.TB) *data.Registry {
	tb.Helper()

	reg, err := data.NewRegistry(FixtureGenes, FixtureEnemies)
	if err != nil {
		tb.Fatalf("building fixture registry: %v", err)
	}
	return reg
}

// NewPlayer возвращает шаблон игрока со стартовыми параметрами (100 HP, 3 energy).
func NewPlayer() *model.Player {
	return model.NewPlayer("Player", 100, 3, DefaultGenome)
}
