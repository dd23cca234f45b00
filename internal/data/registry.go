package data

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrUnknownGene   = errors.New("unknown gene")
	ErrUnknownEnemy  = errors.New("unknown enemy")
	ErrDuplicateSpec = errors.New("duplicate spec")
	ErrInvalidSpec   = errors.New("invalid spec")
	ErrTooManyGenes  = errors.New("more genes than display symbols")
)

// greekAlphabet is the glyph pool for gene symbols: lower case first, then upper case.
var greekAlphabet = []rune("αβγδεζηθικλμνξοπρστυφχψω" + "ΑΒΓΔΕΖΗΘΙΚΛΜΝΞΟΠΡΣΤΥΦΧΨΩ")

// Registry is the immutable lookup of gene and enemy specs, populated once
// before the first battle. It is safe for concurrent reads.
type Registry struct {
	genes   map[string]*GeneSpec
	enemies map[string]*EnemySpec
	symbols map[string]rune

	geneNames  []string
	enemyNames []string

	fingerprint string
}

// NewRegistry validates specs and builds the registry. Every gene referenced by
// an enemy genome must exist. Symbols are assigned in gene-name order.
func NewRegistry(genes []GeneSpec, enemies []EnemySpec) (*Registry, error) {
	r := &Registry{
		genes:   make(map[string]*GeneSpec, len(genes)),
		enemies: make(map[string]*EnemySpec, len(enemies)),
		symbols: make(map[string]rune, len(genes)),
	}

	for i := range genes {
		g := genes[i]
		if g.Name == "" {
			return nil, fmt.Errorf("%w: gene #%d has no name", ErrInvalidSpec, i)
		}
		if _, ok := r.genes[g.Name]; ok {
			return nil, fmt.Errorf("%w: gene %q", ErrDuplicateSpec, g.Name)
		}
		for j, e := range g.Effects {
			if e == nil {
				return nil, fmt.Errorf("%w: gene %q effect #%d is empty", ErrInvalidSpec, g.Name, j)
			}
		}
		g.Effects = slices.Clone(g.Effects)
		r.genes[g.Name] = &g
		r.geneNames = append(r.geneNames, g.Name)
	}

	for i := range enemies {
		e := enemies[i]
		if e.Name == "" {
			return nil, fmt.Errorf("%w: enemy #%d has no name", ErrInvalidSpec, i)
		}
		if _, ok := r.enemies[e.Name]; ok {
			return nil, fmt.Errorf("%w: enemy %q", ErrDuplicateSpec, e.Name)
		}
		if len(e.Genome) == 0 {
			return nil, fmt.Errorf("%w: enemy %q has an empty genome", ErrInvalidSpec, e.Name)
		}
		if e.Health == 0 {
			return nil, fmt.Errorf("%w: enemy %q has zero health", ErrInvalidSpec, e.Name)
		}
		for _, gene := range e.Genome {
			if _, ok := r.genes[gene]; !ok {
				return nil, fmt.Errorf("enemy %q: %w %q", e.Name, ErrUnknownGene, gene)
			}
		}
		e.Genome = slices.Clone(e.Genome)
		r.enemies[e.Name] = &e
		r.enemyNames = append(r.enemyNames, e.Name)
	}

	slices.Sort(r.geneNames)
	slices.Sort(r.enemyNames)

	if len(r.geneNames) > len(greekAlphabet) {
		return nil, fmt.Errorf("%w: %d genes, %d symbols", ErrTooManyGenes, len(r.geneNames), len(greekAlphabet))
	}
	for i, name := range r.geneNames {
		r.symbols[name] = greekAlphabet[i]
	}

	r.fingerprint = fingerprint(r)
	return r, nil
}

// Gene returns the gene spec by name.
func (r *Registry) Gene(name string) (*GeneSpec, bool) {
	g, ok := r.genes[name]
	return g, ok
}

// Enemy returns the enemy spec by name.
func (r *Registry) Enemy(name string) (*EnemySpec, bool) {
	e, ok := r.enemies[name]
	return e, ok
}

// Symbol returns the display glyph of a gene.
func (r *Registry) Symbol(name string) (rune, bool) {
	s, ok := r.symbols[name]
	return s, ok
}

// GeneNames returns all gene names, sorted.
func (r *Registry) GeneNames() []string { return slices.Clone(r.geneNames) }

// EnemyNames returns all enemy names, sorted.
func (r *Registry) EnemyNames() []string { return slices.Clone(r.enemyNames) }

// Fingerprint returns a stable hash of the registry content.
func (r *Registry) Fingerprint() string { return r.fingerprint }

// ValidateGenome checks that every gene name exists.
func (r *Registry) ValidateGenome(genes []string) error {
	for _, g := range genes {
		if _, ok := r.genes[g]; !ok {
			return fmt.Errorf("%w %q", ErrUnknownGene, g)
		}
	}
	return nil
}
