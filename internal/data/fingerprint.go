package data

import (
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
)

// fingerprint hashes the registry content in name order. Runs persist it so a
// stored genome can be checked against the specs it was played with.
func fingerprint(r *Registry) string {
	h, err := blake2b.New256(nil)
	if err != nil {
		// Only fails for oversized keys.
		panic(fmt.Sprintf("blake2b: %v", err))
	}

	for _, name := range r.geneNames {
		g := r.genes[name]
		fmt.Fprintf(h, "gene\x00%s\x00%s\x00%s\x00", g.Name, g.Text, g.Target)
		for _, e := range g.Effects {
			io.WriteString(h, e.String())
			h.Write([]byte{0})
		}
		h.Write([]byte{'\n'})
	}
	for _, name := range r.enemyNames {
		e := r.enemies[name]
		fmt.Fprintf(h, "enemy\x00%s\x00%d\x00%d\x00", e.Name, e.Health, e.Energy)
		for _, gene := range e.Genome {
			io.WriteString(h, gene)
			h.Write([]byte{0})
		}
		h.Write([]byte{'\n'})
	}

	return hex.EncodeToString(h.Sum(nil))
}
