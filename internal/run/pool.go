package run

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"github.com/udisondev/nucleotide/internal/data"
	"github.com/udisondev/nucleotide/internal/model"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// BuildQueue creates the enemy queue of a run. Configured encounters are used
// in order; with none configured every registry enemy fights alone, shuffled
// by seed. Unknown enemy names are rejected up front.
func BuildQueue(reg *data.Registry, encounters [][]string, seed int64) (*model.EnemyQueue, error) {
	q := model.NewEnemyQueue()

	if len(encounters) > 0 {
		for i, enc := range encounters {
			for _, name := range enc {
				if _, ok := reg.Enemy(name); !ok {
					return nil, fmt.Errorf("encounter %d: %w %q", i+1, data.ErrUnknownEnemy, name)
				}
			}
			q.Push(model.Encounter{Enemies: enc})
		}
		return q, nil
	}

	names := reg.EnemyNames()
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
	rng.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })
	for _, name := range names {
		q.Push(model.Encounter{Enemies: []string{name}})
	}
	return q, nil
}
