package run

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/udisondev/nucleotide/internal/data"
	"github.com/udisondev/nucleotide/internal/game/battle"
	"github.com/udisondev/nucleotide/internal/model"
)

var (
	// ErrStopped is returned by Send once the session loop has exited.
	ErrStopped       = errors.New("session stopped")
	ErrUnknownPolicy = errors.New("unknown reward policy")
)

// Config controls how a session drives its machine.
type Config struct {
	TickInterval time.Duration
	// AutoContinue answers every input prompt with Continue.
	AutoContinue bool
	// AutoReward takes the reward picked by RewardPolicy without waiting for a command.
	AutoReward bool
	RunAwayTurns uint8
	Seed         int64
}

// RewardPolicy picks a gene from a reward, or "" to skip it.
type RewardPolicy func(r battle.Reward) string

// FirstOption takes the first offered gene.
func FirstOption(r battle.Reward) string {
	if len(r.GeneOptions) == 0 {
		return ""
	}
	return r.GeneOptions[0]
}

// LastOption takes the last offered gene.
func LastOption(r battle.Reward) string {
	if len(r.GeneOptions) == 0 {
		return ""
	}
	return r.GeneOptions[len(r.GeneOptions)-1]
}

// SkipRewards never grows the genome.
func SkipRewards(battle.Reward) string { return "" }

// PolicyByName resolves a reward policy from its config name.
func PolicyByName(name string) (RewardPolicy, error) {
	switch name {
	case "", "first":
		return FirstOption, nil
	case "last":
		return LastOption, nil
	case "skip":
		return SkipRewards, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// CommandKind identifies a player command.
type CommandKind uint8

const (
	CommandPause CommandKind = iota
	CommandResume
	CommandChoose
	CommandTakeReward
	CommandSkipReward
)

// Command is applied by the session loop between ticks.
type Command struct {
	Kind   CommandKind
	Action battle.Action
	Gene   string
}

// Session owns a battle machine and advances it on a ticker until the run
// ends. All machine access happens on the goroutine running Start.
type Session struct {
	machine  *battle.Machine
	player   *model.Player
	recorder Recorder
	policy   RewardPolicy
	cfg      Config

	record      *model.RunRecord
	battlesWon  int
	battleStart int
	outcome     model.Outcome

	commands chan Command
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once

	latest   atomic.Pointer[battle.Snapshot]
	notifier battle.Notifier
}

// NewSession creates a session for one run. notifier may be nil.
func NewSession(reg *data.Registry, player *model.Player, queue *model.EnemyQueue, recorder Recorder, notifier battle.Notifier, cfg Config) *Session {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 100 * time.Millisecond
	}
	if recorder == nil {
		recorder = NopRecorder{}
	}

	s := &Session{
		machine:  battle.NewMachine(reg, player, queue, battle.Config{RunAwayTurns: cfg.RunAwayTurns}),
		player:   player,
		recorder: recorder,
		policy:   FirstOption,
		cfg:      cfg,
		record:   model.NewRunRecord(cfg.Seed, reg.Fingerprint(), player),
		outcome:  model.OutcomeInProgress,
		commands: make(chan Command, 16),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		notifier: notifier,
	}
	s.machine.SetNotifier(battle.NotifierFuncs{
		Log: func(line string) {
			if s.notifier != nil {
				s.notifier.OnLog(line)
			}
		},
		Snapshot: func(snap battle.Snapshot) {
			s.latest.Store(&snap)
			if s.notifier != nil {
				s.notifier.OnSnapshot(snap)
			}
		},
	})
	return s
}

// SetRewardPolicy replaces FirstOption. Must be called before Start.
func (s *Session) SetRewardPolicy(p RewardPolicy) {
	if p != nil {
		s.policy = p
	}
}

// Start runs the tick loop. It blocks until the run ends, Stop is called or
// ctx is canceled. A fatal machine error is returned.
func (s *Session) Start(ctx context.Context) error {
	defer close(s.doneCh)

	if err := s.recorder.StartRun(ctx, s.record); err != nil {
		return fmt.Errorf("starting run: %w", err)
	}

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	slog.Info("run session started",
		"run", s.record.ID,
		"seed", s.record.Seed,
		"interval", s.cfg.TickInterval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("run session stopping")
			s.finish(context.WithoutCancel(ctx), model.OutcomeAborted)
			return ctx.Err()

		case <-s.stopCh:
			slog.Info("run session stopped")
			s.finish(ctx, model.OutcomeAborted)
			return nil

		case cmd := <-s.commands:
			if err := s.apply(ctx, cmd); err != nil {
				slog.Warn("command rejected", "kind", cmd.Kind, "err", err)
			}

		case <-ticker.C:
			done, err := s.step(ctx)
			if err != nil {
				if battle.IsFatal(err) {
					slog.Error("battle machine halted", "run", s.record.ID, "phase", s.machine.Phase(), "err", err)
				}
				s.finish(ctx, model.OutcomeAborted)
				return err
			}
			if done {
				return nil
			}
		}
	}
}

// Stop ends the loop. Safe to call more than once.
func (s *Session) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// Done is closed when Start returns.
func (s *Session) Done() <-chan struct{} { return s.doneCh }

// Send queues a command for the loop.
func (s *Session) Send(ctx context.Context, cmd Command) error {
	select {
	case <-s.doneCh:
		return ErrStopped
	default:
	}

	select {
	case s.commands <- cmd:
		return nil
	case <-s.doneCh:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns the snapshot published by the last tick.
func (s *Session) Snapshot() (battle.Snapshot, bool) {
	p := s.latest.Load()
	if p == nil {
		return battle.Snapshot{}, false
	}
	return *p, true
}

// Outcome returns how the run ended, OutcomeInProgress while it runs.
// Only meaningful after Done is closed.
func (s *Session) Outcome() model.Outcome { return s.outcome }

// RunID returns the identifier the run is recorded under.
func (s *Session) RunID() string { return s.record.ID.String() }

// step advances the machine by one tick. done reports that the run is over.
func (s *Session) step(ctx context.Context) (done bool, err error) {
	m := s.machine

	switch m.Phase() {
	case battle.PhaseAwaitingInput:
		if s.cfg.AutoContinue && !m.Paused() {
			if err := m.Choose(battle.ActionContinue); err != nil && !errors.Is(err, battle.ErrOptionUnavailable) {
				return false, err
			}
		}
	case battle.PhaseSelectReward:
		if s.cfg.AutoReward && !m.Paused() {
			if r := m.Reward(); r != nil {
				if err := s.leaveReward(ctx, s.policy(*r)); err != nil {
					return false, err
				}
			}
		}
	}

	before := m.Phase()
	if err := m.Tick(); err != nil {
		return false, fmt.Errorf("tick: %w", err)
	}
	after := m.Phase()

	if before == battle.PhaseInitializingBattle && after == battle.PhaseCharacterActing {
		s.battleStart = m.Ticks() - 1
	}
	if before == after {
		return false, nil
	}

	switch after {
	case battle.PhaseGameOver:
		s.recordBattle(ctx, model.OutcomeLost, "")
		s.finish(ctx, model.OutcomeLost)
		return true, nil
	case battle.PhaseVictory:
		s.finish(ctx, model.OutcomeVictory)
		return true, nil
	case battle.PhaseSelectReward:
		if r := m.Reward(); r != nil && r.Kind != battle.RewardRanAway {
			s.battlesWon++
		}
	}
	return false, nil
}

func (s *Session) apply(ctx context.Context, cmd Command) error {
	m := s.machine
	switch cmd.Kind {
	case CommandPause:
		m.Pause()
		s.publish()
		return nil
	case CommandResume:
		m.Resume()
		s.publish()
		return nil
	case CommandChoose:
		return m.Choose(cmd.Action)
	case CommandTakeReward:
		return s.leaveReward(ctx, cmd.Gene)
	case CommandSkipReward:
		return s.leaveReward(ctx, "")
	default:
		return fmt.Errorf("unknown command %d", cmd.Kind)
	}
}

// leaveReward applies gene (if any), records the finished battle and moves on.
func (s *Session) leaveReward(ctx context.Context, gene string) error {
	m := s.machine
	r := m.Reward()
	if r == nil {
		return battle.ErrNotSelectingReward
	}
	if gene != "" {
		if err := m.TakeReward(gene); err != nil {
			return err
		}
	}

	s.recordBattle(ctx, outcomeOf(r.Kind), gene)
	return m.NextBattle()
}

// publish stores a snapshot outside of a tick, so pause state is visible at once.
func (s *Session) publish() {
	snap := s.machine.Snapshot()
	s.latest.Store(&snap)
}

func (s *Session) recordBattle(ctx context.Context, outcome model.Outcome, gene string) {
	m := s.machine
	rec := model.BattleRecord{
		RunID:        s.record.ID,
		Index:        m.Battle(),
		Enemies:      m.Encounter(),
		Outcome:      outcome,
		Ticks:        m.Ticks() - s.battleStart,
		PlayerHealth: m.PlayerHealth(),
		RewardGene:   gene,
	}
	if err := s.recorder.RecordBattle(ctx, rec); err != nil {
		slog.Error("recording battle", "run", s.record.ID, "battle", rec.Index, "err", err)
	}
}

func (s *Session) finish(ctx context.Context, outcome model.Outcome) {
	if s.outcome != model.OutcomeInProgress {
		return
	}
	s.outcome = outcome
	slog.Info("run finished",
		"run", s.record.ID,
		"outcome", outcome,
		"battles_won", s.battlesWon,
		"genome", s.player.Genome)
	if err := s.recorder.FinishRun(ctx, s.record.ID, outcome, s.battlesWon, s.player.Genome); err != nil {
		slog.Error("finishing run", "run", s.record.ID, "err", err)
	}
}

func outcomeOf(k battle.RewardKind) model.Outcome {
	switch k {
	case battle.RewardRanAway:
		return model.OutcomeRanAway
	case battle.RewardEnemiesFled:
		return model.OutcomeEnemiesFled
	default:
		return model.OutcomeWon
	}
}
