package status

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindRules(t *testing.T) {
	tests := []struct {
		kind   Kind
		timing Timing
		appl   Applicability
		clears bool
	}{
		{Poison, TimingEndOfTurn, EveryTurn, false},
		{Weak, TimingEndOfTurn, EveryTurn, false},
		{Constricted, TimingNotApplicable, EveryTurn, false},
		{RepeatGene, TimingStartOfTurn, OwnTurn, true},
		{RunningAway, TimingEndOfTurn, OwnTurn, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.timing, tt.kind.Timing())
			assert.Equal(t, tt.appl, tt.kind.Applicability())
			assert.Equal(t, tt.clears, tt.kind.ClearsOnHandover())
		})
	}
}

func TestKind_AppliesOn(t *testing.T) {
	assert.True(t, Poison.AppliesOn(true))
	assert.True(t, Poison.AppliesOn(false))
	assert.True(t, RunningAway.AppliesOn(true))
	assert.False(t, RunningAway.AppliesOn(false))
}

func TestKind_Invalid(t *testing.T) {
	k := Kind(42)

	assert.False(t, k.Valid())
	assert.Equal(t, TimingNotApplicable, k.Timing())
	assert.Equal(t, "Kind(42)", k.String())
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"poison", Poison},
		{"Weak", Weak},
		{"constricted", Constricted},
		{"repeat_gene", RepeatGene},
		{"Repeat Gene", RepeatGene},
		{"running-away", RunningAway},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Parse("burning")
	assert.True(t, errors.Is(err, ErrUnknownKind), "got %v", err)
}

func TestStacks_AddMerges(t *testing.T) {
	var s Stacks
	s.Add(Poison, 2)
	s.Add(Poison, 3)

	require.Equal(t, 1, s.Len())
	assert.Equal(t, uint8(5), s.Count(Poison))
}

func TestStacks_AddKeepsInsertionOrder(t *testing.T) {
	var s Stacks
	s.Add(Weak, 1)
	s.Add(Poison, 1)
	s.Add(Weak, 4)

	assert.Equal(t, []Entry{{Weak, 5}, {Poison, 1}}, s.Entries())
}

func TestStacks_AddSaturates(t *testing.T) {
	var s Stacks
	s.Add(Poison, 250)
	s.Add(Poison, 10)

	assert.Equal(t, uint8(255), s.Count(Poison))
}

func TestStacks_AddZeroIgnored(t *testing.T) {
	var s Stacks
	s.Add(Poison, 0)

	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Contains(Poison))
}

func TestStacks_RetainDoesNotSkip(t *testing.T) {
	var s Stacks
	s.Add(Poison, 1)
	s.Add(Weak, 1)
	s.Add(RunningAway, 2)

	var visited []Kind
	s.Retain(func(e *Entry) bool {
		visited = append(visited, e.Kind)
		e.Count--
		return true
	})

	assert.Equal(t, []Kind{Poison, Weak, RunningAway}, visited)
	assert.Equal(t, []Entry{{RunningAway, 1}}, s.Entries())
}

func TestStacks_ClearOnHandover(t *testing.T) {
	var s Stacks
	s.Add(RepeatGene, 2)
	s.Add(Poison, 1)
	s.Add(Constricted, 1)

	removed := s.ClearOnHandover()

	assert.Equal(t, []Kind{RepeatGene}, removed)
	assert.Equal(t, []Entry{{Poison, 1}, {Constricted, 1}}, s.Entries())
}
