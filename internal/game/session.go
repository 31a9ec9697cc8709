package game

import (
	"log"
	"sync"

	"go-tetris/internal/scoring"
	"go-tetris/internal/state"
)

// Session is the driver-side owner of a Game. It serialises every engine
// call behind one mutex and hands out a timer generation on each start, so
// a driver that restarts play can recognise ticks from the schedule it just
// abandoned.
type Session struct {
	mu         sync.Mutex
	game       *Game
	generation uint64

	// Aggregate state across restarts, in memory only.
	GamesPlayed  int
	History      scoring.ScoreHistory
	newHighScore bool
	recorded     bool
}

// View is a copy of everything a renderer needs.
type View struct {
	Width        int
	Height       int
	Board        state.Board
	Piece        *state.Piece
	Score        int
	Lines        int
	Playing      bool
	GameOver     bool
	Phase        string
	Generation   uint64
	GamesPlayed  int
	BestScore    int
	NewHighScore bool // the game just finished beat every earlier one
	TopScores    []scoring.ScoreHistoryEntry
}

// Cell returns the square as it should be drawn, piece over board.
func (v View) Cell(x, y int) state.Cell {
	if p := v.Piece; p != nil {
		lx, ly := x-p.Pos.X, y-p.Pos.Y
		if ly >= 0 && ly < p.Shape.Height() && lx >= 0 && lx < p.Shape.Width() {
			if c := p.Shape[ly][lx]; c != 0 {
				return c
			}
		}
	}
	return v.Board[y][x]
}

// topScores is how many finished games a View lists.
const topScores = 5

func NewSession(g *Game) *Session {
	return &Session{game: g}
}

// Start begins a fresh game and returns the generation the caller must tag
// its ticks with.
func (s *Session) Start() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.game.Start()
	s.GamesPlayed++
	s.recorded = false
	s.newHighScore = false
	log.Printf("game %d started (generation %d)", s.GamesPlayed, s.generation)
	s.update()
	return s.generation
}

func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Tick applies one gravity step for the schedule tagged gen. It returns
// whether that schedule should keep running: false once the game is over or
// when gen has been superseded by a later Start.
func (s *Session) Tick(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		log.Printf("dropping stale tick (generation %d, current %d)", gen, s.generation)
		return false
	}
	if !s.game.IsPlaying() {
		return false
	}
	s.game.HandleTick()
	s.update()
	return s.game.IsPlaying()
}

// Command applies a player command. It is a no-op while not playing.
func (s *Session) Command(cmd Command) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := s.game.HandleCommand(cmd)
	s.update()
	return changed
}

func (s *Session) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.IsPlaying()
}

func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Width:        s.game.Width(),
		Height:       s.game.Height(),
		Board:        s.game.Board(),
		Score:        s.game.Score(),
		Lines:        s.game.Lines(),
		Playing:      s.game.IsPlaying(),
		GameOver:     s.game.IsGameOver(),
		Phase:        s.game.State.Phase(),
		Generation:   s.generation,
		GamesPlayed:  s.GamesPlayed,
		NewHighScore: s.newHighScore,
		TopScores:    s.History.GetNScoreEntries(topScores),
	}
	if best := s.History.GetHighScoreEntry(); best != nil {
		v.BestScore = best.Score
	}
	if p, ok := s.game.Piece(); ok {
		v.Piece = &p
	}
	return v
}

// update folds a finished game into the session aggregates once.
// Callers hold s.mu.
func (s *Session) update() {
	if !s.game.IsGameOver() || s.recorded {
		return
	}
	s.recorded = true
	s.newHighScore = s.History.Record(s.game.State.Score)
}
