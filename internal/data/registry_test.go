package data

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/nucleotide/internal/game/status"
)

const stingYAML = `
name: Sting
text: Deal 2 damage and inflict Poison.
target: random_opponent
effects:
  - damage: 2
  - status: poison
    stacks: 2
`

const multiGeneYAML = `
name: Block
text: Gain 5 block.
target: self
effects:
  - block: 5
---
name: Reverse Codon
text: Reverse your genome.
target: us
effects:
  - reverse_processing
---
name: Adrenaline
text: Heal, gain energy and skip a gene.
target: self
effects:
  - heal: 3
  - gain_energy: 1
  - jump_forward: 1
`

const slimeYAML = `
name: Slime
health: 20
energy: 2
genome: [Sting, Block, Sting]
`

func TestParseGenes(t *testing.T) {
	specs, err := ParseGenes(strings.NewReader(stingYAML + "---" + multiGeneYAML))
	require.NoError(t, err)
	require.Len(t, specs, 4)

	sting := specs[0]
	assert.Equal(t, "Sting", sting.Name)
	assert.Equal(t, TargetRandomOpponent, sting.Target)
	assert.Equal(t, []Effect{Damage{Amount: 2}, ApplyStatus{Kind: status.Poison, Stacks: 2}}, sting.Effects)

	assert.Equal(t, TargetSelf, specs[2].Target, "us is an alias of self")
	assert.Equal(t, []Effect{ReverseProcessing{}}, specs[2].Effects)
	assert.Equal(t, []Effect{Heal{Amount: 3}, GainEnergy{Amount: 1}, JumpForward{N: 1}}, specs[3].Effects)
}

func TestParseGenes_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "unknown status",
			yaml: "name: X\ntarget: self\neffects:\n  - status: burning\n",
			want: "unknown status kind",
		},
		{
			name: "two effects in one entry",
			yaml: "name: X\ntarget: self\neffects:\n  - damage: 1\n    block: 1\n",
			want: "exactly one effect",
		},
		{
			name: "unknown target",
			yaml: "name: X\ntarget: nobody\neffects:\n  - damage: 1\n",
			want: "unknown target rule",
		},
		{
			name: "overflowing amount",
			yaml: "name: X\ntarget: self\neffects:\n  - damage: 300\n",
			want: "cannot unmarshal",
		},
		{
			name: "unknown field",
			yaml: "name: X\ntarget: self\ncolour: red\n",
			want: "colour",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGenes(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseEnemies(t *testing.T) {
	specs, err := ParseEnemies(strings.NewReader(slimeYAML))
	require.NoError(t, err)
	require.Len(t, specs, 1)

	assert.Equal(t, EnemySpec{Name: "Slime", Health: 20, Energy: 2, Genome: []string{"Sting", "Block", "Sting"}}, specs[0])
}

func TestNewRegistry_UnknownGeneInEnemy(t *testing.T) {
	genes := []GeneSpec{{Name: "Sting", Target: TargetRandomOpponent, Effects: []Effect{Damage{Amount: 1}}}}
	enemies := []EnemySpec{{Name: "Slime", Health: 5, Energy: 1, Genome: []string{"Sting", "Bite"}}}

	_, err := NewRegistry(genes, enemies)

	assert.True(t, errors.Is(err, ErrUnknownGene), "got %v", err)
}

func TestNewRegistry_Duplicate(t *testing.T) {
	genes := []GeneSpec{{Name: "Sting"}, {Name: "Sting"}}

	_, err := NewRegistry(genes, nil)

	assert.True(t, errors.Is(err, ErrDuplicateSpec))
}

func TestNewRegistry_InvalidEnemy(t *testing.T) {
	genes := []GeneSpec{{Name: "Sting"}}

	_, err := NewRegistry(genes, []EnemySpec{{Name: "Ghost", Health: 5, Energy: 1}})
	assert.True(t, errors.Is(err, ErrInvalidSpec), "empty genome")

	_, err = NewRegistry(genes, []EnemySpec{{Name: "Ghost", Energy: 1, Genome: []string{"Sting"}}})
	assert.True(t, errors.Is(err, ErrInvalidSpec), "zero health")
}

func TestRegistry_Symbols(t *testing.T) {
	reg, err := NewRegistry([]GeneSpec{{Name: "Stomp"}, {Name: "Block"}, {Name: "Sting"}}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Block", "Sting", "Stomp"}, reg.GeneNames())

	for name, want := range map[string]rune{"Block": 'α', "Sting": 'β', "Stomp": 'γ'} {
		got, ok := reg.Symbol(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	_, ok := reg.Symbol("Missing")
	assert.False(t, ok)
}

func TestRegistry_TooManyGenes(t *testing.T) {
	genes := make([]GeneSpec, len(greekAlphabet)+1)
	for i := range genes {
		genes[i] = GeneSpec{Name: string(rune('A'+i/26)) + string(rune('a'+i%26))}
	}

	_, err := NewRegistry(genes, nil)

	assert.True(t, errors.Is(err, ErrTooManyGenes))
}

func TestRegistry_Fingerprint(t *testing.T) {
	genes := []GeneSpec{{Name: "Sting", Target: TargetRandomOpponent, Effects: []Effect{Damage{Amount: 2}}}}

	a, err := NewRegistry(genes, nil)
	require.NoError(t, err)
	b, err := NewRegistry(genes, nil)
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Len(t, a.Fingerprint(), 64)

	genes[0].Effects = []Effect{Damage{Amount: 3}}
	c, err := NewRegistry(genes, nil)
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestRegistry_ValidateGenome(t *testing.T) {
	reg, err := NewRegistry([]GeneSpec{{Name: "Sting"}}, nil)
	require.NoError(t, err)

	assert.NoError(t, reg.ValidateGenome([]string{"Sting", "Sting"}))
	assert.True(t, errors.Is(reg.ValidateGenome([]string{"Bite"}), ErrUnknownGene))
}

func TestLoadRegistry(t *testing.T) {
	root := t.TempDir()
	geneDir := filepath.Join(root, "genes")
	enemyDir := filepath.Join(root, "enemies")
	require.NoError(t, os.MkdirAll(geneDir, 0o755))
	require.NoError(t, os.MkdirAll(enemyDir, 0o755))

	writeFile(t, filepath.Join(geneDir, "sting.yaml"), stingYAML)
	writeFile(t, filepath.Join(geneDir, "misc.yml"), multiGeneYAML)
	writeFile(t, filepath.Join(geneDir, "README.md"), "not a spec")
	writeFile(t, filepath.Join(enemyDir, "slime.yaml"), slimeYAML)

	reg, err := LoadRegistry(geneDir, enemyDir)
	require.NoError(t, err)

	assert.Equal(t, []string{"Adrenaline", "Block", "Reverse Codon", "Sting"}, reg.GeneNames())
	assert.Equal(t, []string{"Slime"}, reg.EnemyNames())

	slime, ok := reg.Enemy("Slime")
	require.True(t, ok)
	assert.Equal(t, uint8(20), slime.Health)

	_, ok = reg.Gene("Sting")
	assert.True(t, ok)
}

func TestLoadRegistry_MissingDir(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading gene specs")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadRegistry_ShippedAssets(t *testing.T) {
	reg, err := LoadRegistry("../../assets/specs/genes", "../../assets/specs/enemies")
	require.NoError(t, err)

	require.NoError(t, reg.ValidateGenome([]string{"Repeat Codon", "Sting", "Block", "Reverse Codon", "Stomp"}),
		"default player genome must resolve")
	assert.NotEmpty(t, reg.EnemyNames())
}
