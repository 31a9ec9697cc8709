package game

import (
	"context"

	"go-tetris/internal/state"
)

const (
	DefaultWidth  = 10
	DefaultHeight = 20
)

// Game encapsulates the core game logic, independent of the UI. It is not
// safe for concurrent use; see Session for that.
type Game struct {
	State  *state.State
	rng    Randomizer
	shapes []state.Shape
}

// NewGame creates an idle game. Call Start to begin playing.
func NewGame(width, height int, rng Randomizer) *Game {
	g := &Game{
		rng:    rng,
		shapes: Shapes(),
	}
	g.State = state.NewState(width, height, g.nextShape)
	return g
}

func (g *Game) nextShape() state.Shape {
	return g.shapes[g.rng.IntN(len(g.shapes))]
}

// Start discards any game in progress and spawns the first piece.
func (g *Game) Start() {
	g.State.Start(context.Background())
}

// Move shifts the falling piece by (dx, dy). A blocked downward move settles
// the piece instead; any other blocked move is simply refused.
func (g *Game) Move(dx, dy int) bool {
	s := g.State
	if !s.IsPlaying() || s.Piece == nil {
		return false
	}

	next := state.Position{X: s.Piece.Pos.X + dx, Y: s.Piece.Pos.Y + dy}
	if !s.Collides(s.Piece.Shape, next) {
		s.Piece.Pos = next
		return true
	}

	if dy > 0 {
		s.Lock(context.Background())
	}
	return false
}

// Drop moves the piece down one row.
func (g *Game) Drop() bool {
	return g.Move(0, 1)
}

// Rotate turns the piece clockwise in place. It reports false and leaves the
// piece alone if the turned shape would collide.
func (g *Game) Rotate() bool {
	s := g.State
	if !s.IsPlaying() || s.Piece == nil {
		return false
	}

	rotated := s.Piece.Shape.Rotate()
	if s.Collides(rotated, s.Piece.Pos) {
		return false
	}
	s.Piece.Shape = rotated
	return true
}

// HandleTick advances time by one gravity step.
func (g *Game) HandleTick() {
	g.Drop()
}

// HandleCommand applies a player command and reports whether it changed
// the piece.
func (g *Game) HandleCommand(cmd Command) bool {
	switch cmd {
	case CmdLeft:
		return g.Move(-1, 0)
	case CmdRight:
		return g.Move(1, 0)
	case CmdDown:
		return g.Drop()
	case CmdRotate:
		return g.Rotate()
	default:
		return false
	}
}

func (g *Game) IsPlaying() bool { return g.State.IsPlaying() }
func (g *Game) IsGameOver() bool { return g.State.IsGameOver() }
func (g *Game) Score() int { return g.State.Score.CurrentScore }
func (g *Game) Lines() int { return g.State.Score.LinesCleared }
func (g *Game) Width() int { return g.State.Width }
func (g *Game) Height() int { return g.State.Height }

// Board returns a copy of the settled cells.
func (g *Game) Board() state.Board {
	return g.State.Board.Clone()
}

// Piece returns a copy of the falling piece, if there is one.
func (g *Game) Piece() (state.Piece, bool) {
	p := g.State.Piece
	if p == nil {
		return state.Piece{}, false
	}
	shape := state.Shape(state.Board(p.Shape).Clone())
	return state.Piece{Shape: shape, Pos: p.Pos}, true
}
