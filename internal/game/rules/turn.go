package rules

import (
	"fmt"
)

// Phase represents the broad phases of a goldfish turn.
type Phase int

const (
	PhaseBeginning Phase = iota
	PhaseMain
	PhaseEnding
)

var phaseNames = map[Phase]string{
	PhaseBeginning: "BEGINNING",
	PhaseMain:      "MAIN",
	PhaseEnding:    "ENDING",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// Step represents the individual steps that comprise a turn. Without an
// opponent there is no combat and no priority passing.
type Step int

const (
	StepUntap Step = iota
	StepUpkeep
	StepDraw
	StepMain
	StepEnd
)

var stepNames = map[Step]string{
	StepUntap:  "UNTAP",
	StepUpkeep: "UPKEEP",
	StepDraw:   "DRAW",
	StepMain:   "MAIN",
	StepEnd:    "END",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STEP_%d", int(s))
}

type turnEntry struct {
	phase Phase
	step  Step
}

var turnSequence = []turnEntry{
	{PhaseBeginning, StepUntap},
	{PhaseBeginning, StepUpkeep},
	{PhaseBeginning, StepDraw},
	{PhaseMain, StepMain},
	{PhaseEnding, StepEnd},
}

// TurnSequence returns the steps of a turn in order.
func TurnSequence() []Step {
	steps := make([]Step, len(turnSequence))
	for i, entry := range turnSequence {
		steps[i] = entry.step
	}
	return steps
}

// TurnManager tracks turn progression.
type TurnManager struct {
	orderIndex int
	turnNumber int
}

// NewTurnManager creates a new turn manager initialized at turn 1, untap step.
func NewTurnManager() *TurnManager {
	return &TurnManager{turnNumber: 1}
}

// CurrentPhase returns the phase currently in progress.
func (tm *TurnManager) CurrentPhase() Phase {
	return turnSequence[tm.orderIndex].phase
}

// CurrentStep returns the step currently in progress.
func (tm *TurnManager) CurrentStep() Step {
	return turnSequence[tm.orderIndex].step
}

// TurnNumber returns the current turn number (1-based).
func (tm *TurnManager) TurnNumber() int {
	return tm.turnNumber
}

// AdvanceStep advances to the next step in the turn structure. When the end
// of the structure is reached, the turn number is incremented.
func (tm *TurnManager) AdvanceStep() (Phase, Step) {
	tm.orderIndex++
	if tm.orderIndex >= len(turnSequence) {
		tm.orderIndex = 0
		tm.turnNumber++
	}
	return tm.CurrentPhase(), tm.CurrentStep()
}
