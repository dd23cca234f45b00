package model

// Player is the persistent template the player combatant is instantiated from
// at the start of every battle. Rewards mutate the template, never the live combatant.
type Player struct {
	Name   string
	Health uint8
	Energy uint8
	Genome []string
}

// NewPlayer creates a player template. The genome slice is copied.
func NewPlayer(name string, health, energy uint8, genome []string) *Player {
	g := make([]string, len(genome))
	copy(g, genome)
	return &Player{Name: name, Health: health, Energy: energy, Genome: g}
}

// AddGene appends a rewarded gene to the template genome.
func (p *Player) AddGene(name string) {
	p.Genome = append(p.Genome, name)
}

// Encounter is one battle worth of enemies, in roster order.
type Encounter struct {
	Enemies []string
}

// EnemyQueue is the FIFO of encounters remaining in a run.
type EnemyQueue struct {
	encounters []Encounter
}

// NewEnemyQueue creates a queue from encounters in battle order.
func NewEnemyQueue(encounters ...Encounter) *EnemyQueue {
	q := &EnemyQueue{encounters: make([]Encounter, 0, len(encounters))}
	for _, e := range encounters {
		q.Push(e)
	}
	return q
}

// Push appends an encounter. Empty encounters are ignored.
func (q *EnemyQueue) Push(e Encounter) {
	if len(e.Enemies) == 0 {
		return
	}
	q.encounters = append(q.encounters, Encounter{Enemies: append([]string(nil), e.Enemies...)})
}

// Pop removes and returns the next encounter.
func (q *EnemyQueue) Pop() (Encounter, bool) {
	if len(q.encounters) == 0 {
		return Encounter{}, false
	}
	e := q.encounters[0]
	q.encounters = q.encounters[1:]
	return e, true
}

// Len returns number of encounters left.
func (q *EnemyQueue) Len() int { return len(q.encounters) }
