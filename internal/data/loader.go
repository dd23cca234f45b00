package data

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/nucleotide/internal/game/status"
)

// geneFile is the on-disk shape of a gene spec.
type geneFile struct {
	Name    string       `yaml:"name"`
	Text    string       `yaml:"text"`
	Target  string       `yaml:"target"`
	Effects []effectYAML `yaml:"effects"`
}

// enemyFile is the on-disk shape of an enemy spec.
type enemyFile struct {
	Name   string   `yaml:"name"`
	Health uint8    `yaml:"health"`
	Energy uint8    `yaml:"energy"`
	Genome []string `yaml:"genome"`
}

// effectYAML is one effect entry. Exactly one of the effect keys must be set:
//
//	- damage: 6
//	- status: poison
//	  stacks: 2
//	- reverse_processing: true
type effectYAML struct {
	Damage            *uint8 `yaml:"damage"`
	Block             *uint8 `yaml:"block"`
	Heal              *uint8 `yaml:"heal"`
	Status            string `yaml:"status"`
	Stacks            *uint8 `yaml:"stacks"`
	ReverseProcessing bool   `yaml:"reverse_processing"`
	JumpForward       *uint8 `yaml:"jump_forward"`
	GainEnergy        *uint8 `yaml:"gain_energy"`

	effect Effect
}

// UnmarshalYAML accepts either a mapping or the bare scalar "reverse_processing".
func (e *effectYAML) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		if node.Value == "reverse_processing" {
			e.effect = ReverseProcessing{}
			return nil
		}
		return fmt.Errorf("line %d: unknown effect %q", node.Line, node.Value)
	}

	type raw effectYAML
	var r raw
	if err := node.Decode(&r); err != nil {
		return err
	}
	*e = effectYAML(r)

	var effects []Effect
	if e.Damage != nil {
		effects = append(effects, Damage{Amount: *e.Damage})
	}
	if e.Block != nil {
		effects = append(effects, Block{Amount: *e.Block})
	}
	if e.Heal != nil {
		effects = append(effects, Heal{Amount: *e.Heal})
	}
	if e.Status != "" {
		kind, err := status.Parse(e.Status)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		stacks := uint8(1)
		if e.Stacks != nil {
			stacks = *e.Stacks
		}
		if stacks == 0 {
			return fmt.Errorf("line %d: status %s with zero stacks", node.Line, kind)
		}
		effects = append(effects, ApplyStatus{Kind: kind, Stacks: stacks})
	} else if e.Stacks != nil {
		return fmt.Errorf("line %d: stacks without status", node.Line)
	}
	if e.ReverseProcessing {
		effects = append(effects, ReverseProcessing{})
	}
	if e.JumpForward != nil {
		effects = append(effects, JumpForward{N: *e.JumpForward})
	}
	if e.GainEnergy != nil {
		effects = append(effects, GainEnergy{Amount: *e.GainEnergy})
	}

	if len(effects) != 1 {
		return fmt.Errorf("line %d: effect entry must define exactly one effect, got %d", node.Line, len(effects))
	}
	e.effect = effects[0]
	return nil
}

func (f geneFile) spec() (GeneSpec, error) {
	target, err := ParseTargetRule(f.Target)
	if err != nil {
		return GeneSpec{}, fmt.Errorf("gene %q: %w", f.Name, err)
	}
	effects := make([]Effect, 0, len(f.Effects))
	for _, e := range f.Effects {
		effects = append(effects, e.effect)
	}
	return GeneSpec{Name: f.Name, Text: strings.TrimSpace(f.Text), Target: target, Effects: effects}, nil
}

// ParseGenes decodes one or more YAML documents of gene specs.
func ParseGenes(r io.Reader) ([]GeneSpec, error) {
	var specs []GeneSpec
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	for {
		var f geneFile
		if err := dec.Decode(&f); err != nil {
			if errors.Is(err, io.EOF) {
				return specs, nil
			}
			return nil, fmt.Errorf("decoding gene: %w", err)
		}
		spec, err := f.spec()
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
}

// ParseEnemies decodes one or more YAML documents of enemy specs.
func ParseEnemies(r io.Reader) ([]EnemySpec, error) {
	var specs []EnemySpec
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	for {
		var f enemyFile
		if err := dec.Decode(&f); err != nil {
			if errors.Is(err, io.EOF) {
				return specs, nil
			}
			return nil, fmt.Errorf("decoding enemy: %w", err)
		}
		specs = append(specs, EnemySpec(f))
	}
}

// LoadRegistry reads every *.yaml / *.yml file of geneDir and enemyDir and
// builds the registry. Files are read in name order.
func LoadRegistry(geneDir, enemyDir string) (*Registry, error) {
	genes, err := loadDir(geneDir, ParseGenes)
	if err != nil {
		return nil, fmt.Errorf("loading gene specs: %w", err)
	}
	enemies, err := loadDir(enemyDir, ParseEnemies)
	if err != nil {
		return nil, fmt.Errorf("loading enemy specs: %w", err)
	}

	reg, err := NewRegistry(genes, enemies)
	if err != nil {
		return nil, err
	}

	slog.Info("loaded specs", "genes", len(genes), "enemies", len(enemies), "fingerprint", reg.Fingerprint()[:12])
	return reg, nil
}

func loadDir[T any](dir string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	var out []T
	for _, name := range names {
		path := filepath.Join(dir, name)
		specs, err := parseFile(path, parse)
		if err != nil {
			return nil, err
		}
		out = append(out, specs...)
	}
	return out, nil
}

func parseFile[T any](path string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	specs, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return specs, nil
}
