package state

import (
	"context"
	"log"

	"go-tetris/internal/scoring"

	"github.com/looplab/fsm"
)

// Cell is a single board square. Zero is empty, anything else is occupied.
type Cell int

// Board is the settled grid, indexed Board[y][x] with row 0 at the top.
type Board [][]Cell

// Shape is the bounding box of a piece in one orientation. Shapes are never
// mutated once built; rotation returns a new Shape.
type Shape [][]Cell

// Position is the board coordinate of a shape's top-left corner.
type Position struct {
	X int
	Y int
}

// Piece is the falling shape and where it is.
type Piece struct {
	Shape Shape
	Pos   Position
}

// Lifecycle phases. Only idle, falling and over are observable between
// calls; the others are passed through inside a single event chain.
const (
	PhaseIdle      = "idle"
	PhaseResetting = "resetting"
	PhaseSpawning  = "spawning"
	PhaseFalling   = "falling"
	PhaseLocking   = "locking"
	PhaseOver      = "over"
)

type State struct {
	Width     int
	Height    int
	Board     Board
	Piece     *Piece // nil while no piece is falling
	Score     scoring.Scoring
	FSM       *fsm.FSM
	NextShape func() Shape // picks the shape for the next spawn
}

// NewState builds an idle game of the given size. next is consulted every
// time a piece has to be spawned.
func NewState(width, height int, next func() Shape) *State {
	s := &State{
		Width:     width,
		Height:    height,
		Board:     NewBoard(width, height),
		Score:     scoring.InitScoring(),
		NextShape: next,
	}

	s.FSM = fsm.NewFSM(
		PhaseIdle,
		getStateTransitions(),
		getStateCallbacks(s),
	)

	return s
}

func (s *State) Phase() string {
	return s.FSM.Current()
}

// IsPlaying reports whether a piece is falling and commands are accepted.
func (s *State) IsPlaying() bool {
	return s.FSM.Is(PhaseFalling)
}

func (s *State) IsGameOver() bool {
	return s.FSM.Is(PhaseOver)
}

// Start throws away whatever game was in progress and begins a new one.
func (s *State) Start(ctx context.Context) {
	_ = s.FSM.Event(ctx, "start")
}

// Lock settles the falling piece. It is a no-op unless a piece is falling.
func (s *State) Lock(ctx context.Context) {
	if !s.IsPlaying() || s.Piece == nil {
		return
	}
	_ = s.FSM.Event(ctx, "lock")
}

func getStateTransitions() []fsm.EventDesc {
	return fsm.Events{
		{Name: "start", Src: []string{PhaseIdle, PhaseFalling, PhaseOver}, Dst: PhaseResetting},
		{Name: "spawn", Src: []string{PhaseResetting, PhaseLocking}, Dst: PhaseSpawning},
		{Name: "spawned", Src: []string{PhaseSpawning}, Dst: PhaseFalling},
		{Name: "topOut", Src: []string{PhaseSpawning}, Dst: PhaseOver},
		{Name: "lock", Src: []string{PhaseFalling}, Dst: PhaseLocking},
	}
}

func getStateCallbacks(s *State) map[string]fsm.Callback {
	return fsm.Callbacks{
		"enter_" + PhaseResetting: func(ctx context.Context, e *fsm.Event) {
			s.Board = NewBoard(s.Width, s.Height)
			s.Piece = nil
			s.Score = scoring.InitScoring()
			e.FSM.Event(ctx, "spawn")
		},
		"enter_" + PhaseSpawning: func(ctx context.Context, e *fsm.Event) {
			shape := s.NextShape()
			pos := SpawnPosition(s.Width, shape)
			if s.Collides(shape, pos) {
				s.Piece = nil
				e.FSM.Event(ctx, "topOut")
				return
			}
			s.Piece = &Piece{Shape: shape, Pos: pos}
			e.FSM.Event(ctx, "spawned")
		},
		"enter_" + PhaseLocking: func(ctx context.Context, e *fsm.Event) {
			s.MergePiece()
			s.Score.ScoreEvent("pieceLocked")
			// Rows must be gone before the next piece looks at the board.
			s.ClearLines()
			e.FSM.Event(ctx, "spawn")
		},
		"enter_" + PhaseOver: func(_ context.Context, e *fsm.Event) {
			log.Printf("game over: score=%d lines=%d pieces=%d",
				s.Score.CurrentScore, s.Score.LinesCleared, s.Score.PiecesLocked)
		},
	}
}
