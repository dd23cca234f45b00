package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenome(t *testing.T, genes ...string) *Genome {
	t.Helper()
	g, err := NewGenome(genes)
	require.NoError(t, err)
	return g
}

func TestNewGenome_Empty(t *testing.T) {
	_, err := NewGenome(nil)
	assert.True(t, errors.Is(err, ErrEmptyGenome))
}

func TestNewGenome_CopiesInput(t *testing.T) {
	genes := []string{"Sting", "Block"}
	g := newTestGenome(t, genes...)
	genes[0] = "Stomp"

	active, err := g.ActiveGene()
	require.NoError(t, err)
	assert.Equal(t, "Sting", active)
}

func TestGenome_AdvancePointer_Wraparound(t *testing.T) {
	for n := 1; n <= 6; n++ {
		genes := make([]string, n)
		for i := range genes {
			genes[i] = "Gene"
		}
		g := newTestGenome(t, genes...)
		g.Jump(n / 2) // arbitrary start
		start := g.Pointer()

		for range n {
			g.AdvancePointer()
			assert.GreaterOrEqual(t, g.Pointer(), 0)
			assert.Less(t, g.Pointer(), n)
		}

		assert.Equal(t, start, g.Pointer(), "len=%d", n)
	}
}

func TestGenome_AdvancePointer_Forward(t *testing.T) {
	g := newTestGenome(t, "A", "B", "C")

	g.AdvancePointer()
	active, _ := g.ActiveGene()
	assert.Equal(t, "B", active)

	g.AdvancePointer()
	g.AdvancePointer()
	active, _ = g.ActiveGene()
	assert.Equal(t, "A", active)
}

func TestGenome_AdvancePointer_Reverse(t *testing.T) {
	g := newTestGenome(t, "A", "B", "C")
	g.ReverseProcessingOrder()

	g.AdvancePointer()

	assert.Equal(t, 2, g.Pointer())
}

func TestGenome_RepeatSuppressesMovement(t *testing.T) {
	g := newTestGenome(t, "A", "B", "C")
	g.IncrementRepeat()
	g.IncrementRepeat()

	g.AdvancePointer()
	assert.Equal(t, 0, g.Pointer())
	assert.Equal(t, uint8(1), g.Repeat())

	g.AdvancePointer()
	assert.Equal(t, 0, g.Pointer())
	assert.Equal(t, uint8(0), g.Repeat())

	g.AdvancePointer()
	assert.Equal(t, 1, g.Pointer())
}

func TestGenome_ReverseRoundTrip(t *testing.T) {
	g := newTestGenome(t, "A", "B", "C", "D")
	g.ReverseProcessingOrder()
	g.ReverseProcessingOrder()
	assert.Equal(t, Forward, g.Direction())

	g.AdvancePointer()
	g.ReverseProcessingOrder()
	g.AdvancePointer()

	assert.Equal(t, 0, g.Pointer(), "forward then reverse cancels displacement")
}

func TestGenome_Jump(t *testing.T) {
	g := newTestGenome(t, "A", "B", "C", "D")

	g.Jump(5)
	assert.Equal(t, 1, g.Pointer())

	g.ReverseProcessingOrder()
	g.Jump(3)
	assert.Equal(t, 2, g.Pointer())
}

func TestGenome_AddGeneAllowsDuplicates(t *testing.T) {
	g := newTestGenome(t, "Sting")
	g.AddGene("Sting")

	assert.Equal(t, []string{"Sting", "Sting"}, g.Genes())
	assert.Equal(t, 2, g.Len())
}

func TestGenome_ActiveGene_InvalidPointer(t *testing.T) {
	g := newTestGenome(t, "A")
	g.pointer = 3

	_, err := g.ActiveGene()
	assert.True(t, errors.Is(err, ErrInvalidPointer))
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "FORWARD", Forward.String())
	assert.Equal(t, "REVERSE", Reverse.String())
}
