package model

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyGenome    = errors.New("genome has no genes")
	ErrInvalidPointer = errors.New("genome pointer out of range")
)

// Direction is the order in which a genome is processed.
type Direction uint8

const (
	Forward Direction = iota
	Reverse
)

// String returns human-readable direction name.
func (d Direction) String() string {
	if d == Reverse {
		return "REVERSE"
	}
	return "FORWARD"
}

// Genome is a combatant's ordered gene program plus its execution cursor.
// The gene list is never empty, and the pointer always indexes into it.
type Genome struct {
	genes     []string
	pointer   int
	direction Direction
	repeat    uint8
}

// NewGenome creates a genome positioned on the first gene, processing forward.
func NewGenome(genes []string) (*Genome, error) {
	if len(genes) == 0 {
		return nil, ErrEmptyGenome
	}
	g := &Genome{genes: make([]string, len(genes))}
	copy(g.genes, genes)
	return g, nil
}

// ActiveGene returns the gene under the pointer.
func (g *Genome) ActiveGene() (string, error) {
	if g.pointer < 0 || g.pointer >= len(g.genes) {
		return "", fmt.Errorf("%w: pointer %d, %d genes", ErrInvalidPointer, g.pointer, len(g.genes))
	}
	return g.genes[g.pointer], nil
}

// AdvancePointer moves the pointer one gene in the processing direction,
// wrapping around. A pending repeat is consumed instead of moving.
func (g *Genome) AdvancePointer() {
	if g.repeat > 0 {
		g.repeat--
		return
	}
	g.move(1)
}

// Jump moves the pointer n genes in the processing direction, wrapping around.
// Pending repeats are left untouched.
func (g *Genome) Jump(n int) {
	g.move(n)
}

func (g *Genome) move(n int) {
	if g.direction == Reverse {
		n = -n
	}
	size := len(g.genes)
	g.pointer = ((g.pointer+n)%size + size) % size
}

// ReverseProcessingOrder flips Forward and Reverse.
func (g *Genome) ReverseProcessingOrder() {
	if g.direction == Forward {
		g.direction = Reverse
	} else {
		g.direction = Forward
	}
}

// IncrementRepeat schedules one more repeat of the active gene.
func (g *Genome) IncrementRepeat() {
	if g.repeat < 255 {
		g.repeat++
	}
}

// AddGene appends a gene. Only used between battles.
func (g *Genome) AddGene(name string) {
	g.genes = append(g.genes, name)
}

// Genes returns a copy of the gene list.
func (g *Genome) Genes() []string {
	out := make([]string, len(g.genes))
	copy(out, g.genes)
	return out
}

func (g *Genome) Len() int             { return len(g.genes) }
func (g *Genome) Pointer() int         { return g.pointer }
func (g *Genome) Direction() Direction { return g.direction }
func (g *Genome) Repeat() uint8        { return g.repeat }
