package battle

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/udisondev/nucleotide/internal/data"
	"github.com/udisondev/nucleotide/internal/game/status"
	"github.com/udisondev/nucleotide/internal/model"
)

// DefaultRunAwayTurns is the number of RunningAway stacks the player gets when choosing to run.
const DefaultRunAwayTurns = 5

// Config tunes the machine.
type Config struct {
	// RunAwayTurns is how many of the player's own turns pass before a run away succeeds.
	RunAwayTurns uint8
}

// Action is a choice the player makes while the machine awaits input.
type Action uint8

const (
	ActionContinue Action = iota
	ActionRunAway
)

func (a Action) String() string {
	switch a {
	case ActionContinue:
		return "Continue"
	case ActionRunAway:
		return "Run Away"
	default:
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
}

// RewardKind tells how a battle reached SelectReward.
type RewardKind uint8

const (
	RewardDefeated RewardKind = iota
	RewardRanAway
	RewardEnemiesFled
)

func (k RewardKind) String() string {
	switch k {
	case RewardDefeated:
		return "Defeated"
	case RewardRanAway:
		return "RanAway"
	case RewardEnemiesFled:
		return "EnemiesFled"
	default:
		return fmt.Sprintf("RewardKind(%d)", uint8(k))
	}
}

// Reward describes the outcome of a won (or escaped) battle.
type Reward struct {
	Kind RewardKind
	// Enemies are the names of the enemies killed in the battle.
	Enemies []string
	// GeneOptions are the distinct genes of the killed enemies, in genome order.
	GeneOptions []string
}

// battleContext is the state of the battle in progress. It is dropped on clean-up.
type battleContext struct {
	roster *Roster
	actor  uint32
	queue  []geneCommand
	events []Event
}

// Machine is the tick-driven battle turn engine. It is single-threaded:
// every method must be called from the goroutine that drives Tick.
type Machine struct {
	registry *data.Registry
	player   *model.Player
	enemies  *model.EnemyQueue
	cfg      Config
	notifier Notifier

	phase Phase
	graph *phaseGraph
	next  transition

	ctx       *battleContext
	reward    *Reward
	encounter []string
	choice    *Action
	cleanedUp bool

	// playerHealth is the player's health when the last battle was cleaned up.
	playerHealth uint8

	battle int
	ticks  int
	handle uint32
	paused bool
	err    error

	log battleLog
}

// NewMachine creates a machine in InitializingBattle. The player template is
// shared with the caller and only mutated by TakeReward.
func NewMachine(reg *data.Registry, player *model.Player, enemies *model.EnemyQueue, cfg Config) *Machine {
	if cfg.RunAwayTurns == 0 {
		cfg.RunAwayTurns = DefaultRunAwayTurns
	}
	return &Machine{
		registry: reg,
		player:   player,
		enemies:  enemies,
		cfg:      cfg,
		notifier: nopNotifier{},
		phase:    PhaseInitializingBattle,
		graph:    newPhaseGraph(),
	}
}

// SetNotifier installs the presentation observer. nil restores the no-op notifier.
func (m *Machine) SetNotifier(n Notifier) {
	if n == nil {
		n = nopNotifier{}
	}
	m.notifier = n
}

// Tick advances the machine by exactly one phase. A fatal error is latched:
// every later Tick returns it again without doing anything.
func (m *Machine) Tick() error {
	if m.err != nil {
		return m.err
	}
	if m.paused {
		return nil
	}

	m.next.reset()
	current := m.phase

	if err := m.runPhase(current); err != nil {
		return m.fail(fmt.Errorf("phase %s: %w", current, err))
	}
	m.resolveEvents()

	if next, forced, ok := m.next.resolve(); ok {
		if err := m.enter(next, forced); err != nil {
			return m.fail(err)
		}
	}

	m.ticks++
	m.notifier.OnSnapshot(m.Snapshot())
	return nil
}

func (m *Machine) fail(err error) error {
	m.err = err
	slog.Error("battle machine halted", "phase", m.phase, "battle", m.battle, "err", err)
	return err
}

func (m *Machine) runPhase(p Phase) error {
	switch p {
	case PhaseInitializingBattle:
		return m.initializeBattle()
	case PhaseCharacterActing:
		return m.characterActing()
	case PhaseAwaitingInput:
		return m.awaitingInput()
	case PhaseStartOfTurn:
		return m.startOfTurn()
	case PhaseGeneLoading:
		return m.geneLoading()
	case PhaseGeneCommandHandling:
		return m.geneCommandHandling()
	case PhaseEndOfTurn:
		return m.endOfTurn()
	case PhaseGeneAnimating:
		return m.geneAnimating()
	case PhaseSelectReward, PhaseGameOver, PhaseVictory:
		m.cleanup()
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownPhase, uint8(p))
	}
}

// enter switches to next. Requested phases must follow a legal edge.
func (m *Machine) enter(next Phase, forced bool) error {
	if forced {
		m.graph.force(next)
	} else if err := m.graph.advance(next); err != nil {
		return err
	}

	if IsDebugEnabled() {
		slog.Debug("phase changed", "from", m.phase, "to", next, "forced", forced, "tick", m.ticks)
	}
	m.phase = next
	return nil
}

// request queues the normal successor of the current phase.
func (m *Machine) request(next Phase) {
	m.next.request(m.phase, next)
}

// force queues a battle-ending phase.
func (m *Machine) force(next Phase) {
	m.next.force(m.phase, next)
}

func (m *Machine) emit(e Event) {
	m.ctx.events = append(m.ctx.events, e)
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.phase }

// Err returns the latched fatal error, if any.
func (m *Machine) Err() error { return m.err }

// Ticks returns how many ticks advanced the machine.
func (m *Machine) Ticks() int { return m.ticks }

// Battle returns the 1-based index of the current battle, 0 before the first one.
func (m *Machine) Battle() int { return m.battle }

// Encounter returns the enemy names of the current battle.
func (m *Machine) Encounter() []string { return slices.Clone(m.encounter) }

// Pause stops tick advancement until Resume.
func (m *Machine) Pause() { m.paused = true }

// Resume re-enables tick advancement.
func (m *Machine) Resume() { m.paused = false }

// Paused reports whether the machine is paused.
func (m *Machine) Paused() bool { return m.paused }

// Roster returns the roster of the battle in progress, nil after clean-up.
func (m *Machine) Roster() *Roster {
	if m.ctx == nil {
		return nil
	}
	return m.ctx.roster
}

// Actor returns the combatant whose turn it is, nil outside a battle.
func (m *Machine) Actor() *model.Combatant {
	if m.ctx == nil {
		return nil
	}
	return m.ctx.roster.Get(m.ctx.actor)
}

// Log returns the last n lines of the battle log; n <= 0 returns all of them.
func (m *Machine) Log(n int) []string { return m.log.lastN(n) }

// Reward returns the reward of the finished battle, nil if there is none.
func (m *Machine) Reward() *Reward {
	if m.reward == nil {
		return nil
	}
	r := *m.reward
	r.Enemies = slices.Clone(r.Enemies)
	r.GeneOptions = slices.Clone(r.GeneOptions)
	return &r
}

// Options returns the actions the player can choose from. Empty unless the
// machine is awaiting input.
func (m *Machine) Options() []Action {
	if m.phase != PhaseAwaitingInput {
		return nil
	}
	opts := []Action{ActionContinue}
	if actor := m.Actor(); actor != nil && !actor.Statuses().Contains(status.RunningAway) {
		opts = append(opts, ActionRunAway)
	}
	return opts
}

// Choose records the player's action. It is applied on the next tick.
func (m *Machine) Choose(a Action) error {
	if m.phase != PhaseAwaitingInput {
		return fmt.Errorf("%w: phase %s", ErrNotAwaitingInput, m.phase)
	}
	if !slices.Contains(m.Options(), a) {
		return fmt.Errorf("%w: %s", ErrOptionUnavailable, a)
	}
	m.choice = &a
	return nil
}

// TakeReward appends gene, which must be one of the offered options, to the
// player template. It does not leave SelectReward; call NextBattle for that.
func (m *Machine) TakeReward(gene string) error {
	if m.phase != PhaseSelectReward {
		return fmt.Errorf("%w: phase %s", ErrNotSelectingReward, m.phase)
	}
	if m.reward == nil || !slices.Contains(m.reward.GeneOptions, gene) {
		return fmt.Errorf("%w: %q", ErrRewardUnavailable, gene)
	}
	m.player.AddGene(gene)
	m.reward.GeneOptions = nil
	slog.Info("reward taken", "battle", m.battle, "gene", gene)
	return nil
}

// NextBattle leaves SelectReward for InitializingBattle.
func (m *Machine) NextBattle() error {
	if m.err != nil {
		return m.err
	}
	if m.phase != PhaseSelectReward {
		return fmt.Errorf("%w: phase %s", ErrNotSelectingReward, m.phase)
	}
	m.cleanup()
	if err := m.enter(PhaseInitializingBattle, false); err != nil {
		return m.fail(err)
	}
	return nil
}

// cleanup despawns every combatant of the finished battle. It runs once per battle.
func (m *Machine) cleanup() {
	if m.cleanedUp {
		return
	}
	m.cleanedUp = true
	if m.ctx == nil {
		return
	}
	slog.Info("battle finished",
		"battle", m.battle,
		"phase", m.phase,
		"ticks", m.ticks)
	if p := m.ctx.roster.Player(); p != nil {
		m.playerHealth = p.Health()
	}
	m.ctx = nil
	m.choice = nil
}

// PlayerHealth returns the live player health, or the health the player
// finished the last battle with.
func (m *Machine) PlayerHealth() uint8 {
	if m.ctx != nil {
		if p := m.ctx.roster.Player(); p != nil {
			return p.Health()
		}
	}
	return m.playerHealth
}

func (m *Machine) nextHandle() uint32 {
	m.handle++
	return m.handle
}

// IsFatal reports whether err is one of the configuration or invariant
// errors that halt the machine.
func IsFatal(err error) bool {
	for _, target := range []error{
		status.ErrUnknownKind,
		data.ErrUnknownGene,
		data.ErrUnknownEnemy,
		model.ErrInvalidPointer,
		model.ErrEmptyGenome,
		ErrEmptyRoster,
		ErrIllegalTransition,
		ErrUnknownPhase,
		ErrMissingActor,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
