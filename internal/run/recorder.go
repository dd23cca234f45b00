package run

import (
	"context"

	"github.com/google/uuid"

	"github.com/udisondev/nucleotide/internal/model"
)

// Recorder persists run progress. Implemented by db.RunRepository.
type Recorder interface {
	StartRun(ctx context.Context, run *model.RunRecord) error
	RecordBattle(ctx context.Context, battle model.BattleRecord) error
	FinishRun(ctx context.Context, id uuid.UUID, outcome model.Outcome, battlesWon int, genome []string) error
}

// NopRecorder discards everything. Used when persistence is disabled.
type NopRecorder struct{}

func (NopRecorder) StartRun(context.Context, *model.RunRecord) error     { return nil }
func (NopRecorder) RecordBattle(context.Context, model.BattleRecord) error { return nil }
func (NopRecorder) FinishRun(context.Context, uuid.UUID, model.Outcome, int, []string) error {
	return nil
}
