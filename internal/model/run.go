package model

import (
	"time"

	"github.com/google/uuid"
)

// Outcome is how a battle or a whole run ended.
type Outcome string

const (
	OutcomeInProgress  Outcome = "in_progress"
	OutcomeWon         Outcome = "won"
	OutcomeRanAway     Outcome = "ran_away"
	OutcomeEnemiesFled Outcome = "enemies_fled"
	OutcomeLost        Outcome = "lost"
	OutcomeVictory     Outcome = "victory"
	OutcomeAborted     Outcome = "aborted"
)

// RunRecord is the persisted summary of one run through the enemy queue.
type RunRecord struct {
	ID          uuid.UUID
	Seed        int64
	Fingerprint string // spec registry fingerprint the run was played against
	PlayerName  string
	Genome      []string
	Outcome     Outcome
	BattlesWon  int
	StartedAt   time.Time
	FinishedAt  *time.Time
}

// NewRunRecord creates an in-progress run with a fresh ID.
func NewRunRecord(seed int64, fingerprint string, player *Player) *RunRecord {
	return &RunRecord{
		ID:          uuid.New(),
		Seed:        seed,
		Fingerprint: fingerprint,
		PlayerName:  player.Name,
		Genome:      append([]string(nil), player.Genome...),
		Outcome:     OutcomeInProgress,
		StartedAt:   time.Now().UTC(),
	}
}

// BattleRecord is the persisted result of one battle within a run.
type BattleRecord struct {
	RunID        uuid.UUID
	Index        int
	Enemies      []string
	Outcome      Outcome
	Ticks        int
	PlayerHealth uint8
	RewardGene   string // empty when no gene was taken
}
