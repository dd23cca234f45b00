package battle

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
)

// Phase is one state of the battle turn engine. Each phase occupies exactly one tick.
type Phase uint8

const (
	PhaseInitializingBattle Phase = iota
	PhaseCharacterActing
	PhaseAwaitingInput
	PhaseStartOfTurn
	PhaseGeneLoading
	PhaseGeneCommandHandling
	PhaseEndOfTurn
	PhaseGeneAnimating
	PhaseSelectReward
	PhaseGameOver
	PhaseVictory
)

var phaseNames = [...]string{
	PhaseInitializingBattle:  "InitializingBattle",
	PhaseCharacterActing:     "CharacterActing",
	PhaseAwaitingInput:       "AwaitingInput",
	PhaseStartOfTurn:         "StartOfTurn",
	PhaseGeneLoading:         "GeneLoading",
	PhaseGeneCommandHandling: "GeneCommandHandling",
	PhaseEndOfTurn:           "EndOfTurn",
	PhaseGeneAnimating:       "GeneAnimating",
	PhaseSelectReward:        "SelectReward",
	PhaseGameOver:            "GameOver",
	PhaseVictory:             "Victory",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// IsTerminal reports whether the phase ends the battle. Terminal phases are
// only reachable through a forced transition.
func (p Phase) IsTerminal() bool {
	return p == PhaseSelectReward || p == PhaseGameOver || p == PhaseVictory
}

// phaseGraph holds the legal non-forced edges between phases.
// Forced transitions (defeat, flee, victory) bypass it.
type phaseGraph struct {
	fsm *fsm.FSM
}

func newPhaseGraph() *phaseGraph {
	edge := func(dst Phase, src ...Phase) fsm.EventDesc {
		names := make([]string, len(src))
		for i, s := range src {
			names[i] = s.String()
		}
		return fsm.EventDesc{Name: dst.String(), Src: names, Dst: dst.String()}
	}

	events := fsm.Events{
		edge(PhaseCharacterActing, PhaseInitializingBattle, PhaseGeneAnimating),
		edge(PhaseAwaitingInput, PhaseCharacterActing),
		edge(PhaseStartOfTurn, PhaseCharacterActing, PhaseAwaitingInput),
		edge(PhaseGeneLoading, PhaseStartOfTurn),
		edge(PhaseGeneCommandHandling, PhaseGeneLoading),
		edge(PhaseEndOfTurn, PhaseGeneCommandHandling),
		edge(PhaseGeneAnimating, PhaseEndOfTurn),
		edge(PhaseInitializingBattle, PhaseSelectReward),
	}

	return &phaseGraph{
		fsm: fsm.NewFSM(PhaseInitializingBattle.String(), events, fsm.Callbacks{}),
	}
}

// advance follows a legal edge to dst.
func (g *phaseGraph) advance(dst Phase) error {
	from := g.fsm.Current()
	if err := g.fsm.Event(context.Background(), dst.String()); err != nil {
		return fmt.Errorf("%w: %s -> %s: %v", ErrIllegalTransition, from, dst, err)
	}
	return nil
}

// force jumps to dst regardless of edges.
func (g *phaseGraph) force(dst Phase) {
	g.fsm.SetState(dst.String())
}

func (g *phaseGraph) can(dst Phase) bool {
	return g.fsm.Can(dst.String())
}

func (g *phaseGraph) current() string {
	return g.fsm.Current()
}
