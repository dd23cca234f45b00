package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/udisondev/nucleotide/internal/game/battle"
	"github.com/udisondev/nucleotide/internal/run"
)

// console prints the battle log and turns typed lines into session commands.
type console struct {
	mu        sync.Mutex
	out       io.Writer
	lastPhase battle.Phase
}

func newConsole(out io.Writer) *console {
	return &console{out: out, lastPhase: battle.PhaseInitializingBattle}
}

func (c *console) OnLog(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, line)
}

// OnSnapshot prints prompts when the machine starts waiting on the player.
func (c *console) OnSnapshot(s battle.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s.Phase == c.lastPhase {
		return
	}
	c.lastPhase = s.Phase

	switch s.Phase {
	case battle.PhaseAwaitingInput:
		names := make([]string, len(s.Options))
		for i, o := range s.Options {
			names[i] = o.String()
		}
		fmt.Fprintf(c.out, "> %s (c = continue, a = run away)\n", strings.Join(names, " / "))
	case battle.PhaseSelectReward:
		if s.Reward != nil && len(s.Reward.GeneOptions) > 0 {
			fmt.Fprintf(c.out, "> reward: %s (take <gene> / skip)\n", strings.Join(s.Reward.GeneOptions, ", "))
		}
	case battle.PhaseGameOver:
		fmt.Fprintln(c.out, "Game over.")
	case battle.PhaseVictory:
		fmt.Fprintln(c.out, "Victory!")
	}
}

// serve forwards parsed lines to the session until it stops.
func (c *console) serve(ctx context.Context, s *run.Session, lines <-chan string) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				// stdin closed: keep the session running on its own.
				lines = nil
				continue
			}
			cmd, quit, err := parseCommand(line)
			if err != nil {
				c.OnLog(err.Error())
				continue
			}
			if quit {
				s.Stop()
				return nil
			}
			if cmd == nil {
				continue
			}
			if err := s.Send(ctx, *cmd); err != nil {
				return nil
			}
		}
	}
}

// parseCommand maps one input line onto a session command. Blank lines yield nil.
func parseCommand(line string) (cmd *run.Command, quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, false, nil
	}

	switch strings.ToLower(fields[0]) {
	case "q", "quit":
		return nil, true, nil
	case "p", "pause":
		return &run.Command{Kind: run.CommandPause}, false, nil
	case "r", "resume":
		return &run.Command{Kind: run.CommandResume}, false, nil
	case "c", "continue":
		return &run.Command{Kind: run.CommandChoose, Action: battle.ActionContinue}, false, nil
	case "a", "run":
		return &run.Command{Kind: run.CommandChoose, Action: battle.ActionRunAway}, false, nil
	case "skip":
		return &run.Command{Kind: run.CommandSkipReward}, false, nil
	case "take":
		gene := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))
		if gene == "" {
			return nil, false, fmt.Errorf("take: gene name required")
		}
		return &run.Command{Kind: run.CommandTakeReward, Gene: gene}, false, nil
	default:
		return nil, false, fmt.Errorf("unknown command %q", fields[0])
	}
}

// readLines scans r on its own goroutine. The channel closes at EOF.
func readLines(r io.Reader) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			out <- sc.Text()
		}
	}()
	return out
}
