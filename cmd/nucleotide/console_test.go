package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/nucleotide/internal/game/battle"
	"github.com/udisondev/nucleotide/internal/run"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line     string
		want     *run.Command
		wantQuit bool
		wantErr  bool
	}{
		{line: "", want: nil},
		{line: "p", want: &run.Command{Kind: run.CommandPause}},
		{line: "RESUME", want: &run.Command{Kind: run.CommandResume}},
		{line: "c", want: &run.Command{Kind: run.CommandChoose, Action: battle.ActionContinue}},
		{line: "run", want: &run.Command{Kind: run.CommandChoose, Action: battle.ActionRunAway}},
		{line: "take Reverse Codon", want: &run.Command{Kind: run.CommandTakeReward, Gene: "Reverse Codon"}},
		{line: "  skip ", want: &run.Command{Kind: run.CommandSkipReward}},
		{line: "quit", wantQuit: true},
		{line: "take", wantErr: true},
		{line: "dance", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd, quit, err := parseCommand(tt.line)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd)
			assert.Equal(t, tt.wantQuit, quit)
		})
	}
}

func TestConsole_Prompts(t *testing.T) {
	var buf bytes.Buffer
	c := newConsole(&buf)

	c.OnLog("Battle 1 begins.")
	c.OnSnapshot(battle.Snapshot{Phase: battle.PhaseAwaitingInput, Options: []battle.Action{battle.ActionContinue, battle.ActionRunAway}})
	c.OnSnapshot(battle.Snapshot{Phase: battle.PhaseAwaitingInput, Options: []battle.Action{battle.ActionContinue}})
	c.OnSnapshot(battle.Snapshot{Phase: battle.PhaseSelectReward, Reward: &battle.Reward{GeneOptions: []string{"Bite", "Block"}}})

	out := buf.String()
	assert.Contains(t, out, "Battle 1 begins.\n")
	assert.Equal(t, 1, strings.Count(out, "Continue / Run Away"), "prompt printed once per phase change")
	assert.Contains(t, out, "reward: Bite, Block")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("warn"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("loud"))
}
