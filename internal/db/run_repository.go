package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/nucleotide/internal/model"
)

// ErrRunNotFound is returned when a run ID has no row.
var ErrRunNotFound = errors.New("run not found")

// RunRepository stores runs and their battle results in PostgreSQL.
type RunRepository struct {
	db *pgxpool.Pool
}

// NewRunRepository creates a new RunRepository.
func NewRunRepository(db *pgxpool.Pool) *RunRepository {
	return &RunRepository{db: db}
}

// StartRun inserts an in-progress run.
func (r *RunRepository) StartRun(ctx context.Context, run *model.RunRecord) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO runs (run_id, seed, fingerprint, player_name, genome, outcome, started_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, run.ID, run.Seed, run.Fingerprint, run.PlayerName, run.Genome, string(run.Outcome), run.StartedAt)
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", run.ID, err)
	}
	return nil
}

// RecordBattle stores the result of one battle. Recording the same battle
// index twice overwrites the first result.
func (r *RunRepository) RecordBattle(ctx context.Context, b model.BattleRecord) error {
	enemies := b.Enemies
	if enemies == nil {
		enemies = []string{}
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO battles (run_id, battle_index, enemies, outcome, ticks, player_health, reward_gene)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (run_id, battle_index) DO UPDATE SET
			enemies = EXCLUDED.enemies,
			outcome = EXCLUDED.outcome,
			ticks = EXCLUDED.ticks,
			player_health = EXCLUDED.player_health,
			reward_gene = EXCLUDED.reward_gene,
			recorded_at = NOW()
	`, b.RunID, b.Index, enemies, string(b.Outcome), b.Ticks, int16(b.PlayerHealth), b.RewardGene)
	if err != nil {
		return fmt.Errorf("recording battle %d of run %s: %w", b.Index, b.RunID, err)
	}
	return nil
}

// FinishRun sets the final outcome and the genome the player ended with.
func (r *RunRepository) FinishRun(ctx context.Context, id uuid.UUID, outcome model.Outcome, battlesWon int, genome []string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE runs
		SET outcome = $2, battles_won = $3, genome = $4, finished_at = $5
		WHERE run_id = $1
	`, id, string(outcome), battlesWon, genome, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("finishing run %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("finishing run %s: %w", id, ErrRunNotFound)
	}
	return nil
}

// GetRun loads a run by ID.
func (r *RunRepository) GetRun(ctx context.Context, id uuid.UUID) (*model.RunRecord, error) {
	var (
		run     model.RunRecord
		outcome string
	)
	err := r.db.QueryRow(ctx, `
		SELECT run_id, seed, fingerprint, player_name, genome, outcome, battles_won, started_at, finished_at
		FROM runs
		WHERE run_id = $1
	`, id).Scan(&run.ID, &run.Seed, &run.Fingerprint, &run.PlayerName, &run.Genome, &outcome,
		&run.BattlesWon, &run.StartedAt, &run.FinishedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("run %s: %w", id, ErrRunNotFound)
		}
		return nil, fmt.Errorf("querying run %s: %w", id, err)
	}
	run.Outcome = model.Outcome(outcome)
	return &run, nil
}

// ListBattles returns the battles of a run in play order.
func (r *RunRepository) ListBattles(ctx context.Context, runID uuid.UUID) ([]model.BattleRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT run_id, battle_index, enemies, outcome, ticks, player_health, reward_gene
		FROM battles
		WHERE run_id = $1
		ORDER BY battle_index
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying battles of run %s: %w", runID, err)
	}
	defer rows.Close()

	var battles []model.BattleRecord
	for rows.Next() {
		var (
			b       model.BattleRecord
			outcome string
			health  int16
		)
		if err := rows.Scan(&b.RunID, &b.Index, &b.Enemies, &outcome, &b.Ticks, &health, &b.RewardGene); err != nil {
			return nil, fmt.Errorf("scanning battle: %w", err)
		}
		b.Outcome = model.Outcome(outcome)
		b.PlayerHealth = uint8(health)
		battles = append(battles, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating battles: %w", err)
	}
	return battles, nil
}

// RecentRuns returns the latest runs, newest first.
func (r *RunRepository) RecentRuns(ctx context.Context, limit int) ([]model.RunRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT run_id, seed, fingerprint, player_name, genome, outcome, battles_won, started_at, finished_at
		FROM runs
		ORDER BY started_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent runs: %w", err)
	}
	defer rows.Close()

	var runs []model.RunRecord
	for rows.Next() {
		var (
			run     model.RunRecord
			outcome string
		)
		if err := rows.Scan(&run.ID, &run.Seed, &run.Fingerprint, &run.PlayerName, &run.Genome, &outcome,
			&run.BattlesWon, &run.StartedAt, &run.FinishedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.Outcome = model.Outcome(outcome)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}
