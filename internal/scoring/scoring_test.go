package scoring

import (
	"testing"
)

// TestInitScoring verifies that a new game starts from nothing.
func TestInitScoring(t *testing.T) {
	s := InitScoring()

	if s.CurrentScore != 0 {
		t.Errorf("expected initial score of 0, but got %d", s.CurrentScore)
	}
	if s.LinesCleared != 0 {
		t.Errorf("expected 0 lines cleared, but got %d", s.LinesCleared)
	}
	if s.LineValue() != 100 {
		t.Errorf("expected a line to be worth 100, but got %d", s.LineValue())
	}
}

func TestScoreEvent_LineClear(t *testing.T) {
	s := InitScoring()
	s.ScoreEvent("lineClear")

	if s.CurrentScore != 100 {
		t.Errorf("expected score 100 after one line, got %d", s.CurrentScore)
	}
	if s.LinesCleared != 1 {
		t.Errorf("expected 1 line cleared, got %d", s.LinesCleared)
	}
}

func TestScoreEvent_PieceLockedIsFree(t *testing.T) {
	s := InitScoring()
	s.ScoreEvent("pieceLocked")
	s.ScoreEvent("pieceLocked")

	if s.CurrentScore != 0 {
		t.Errorf("locking a piece should not score, got %d", s.CurrentScore)
	}
	if s.PiecesLocked != 2 {
		t.Errorf("expected 2 pieces locked, got %d", s.PiecesLocked)
	}
}

func TestScoreEvent_UnknownEvent(t *testing.T) {
	s := InitScoring()
	s.ScoreEvent("bogus")

	if s.CurrentScore != 0 {
		t.Errorf("unknown events should be worth nothing, got %d", s.CurrentScore)
	}
}

// TestAddClearedLines checks the flat per-line bonus for every possible
// number of rows a tetromino can complete at once.
func TestAddClearedLines(t *testing.T) {
	for n := 0; n <= 4; n++ {
		s := InitScoring()
		s.AddClearedLines(n)
		if s.CurrentScore != n*100 {
			t.Errorf("%d lines: expected score %d, got %d", n, n*100, s.CurrentScore)
		}
		if s.LinesCleared != n {
			t.Errorf("%d lines: expected LinesCleared %d, got %d", n, n, s.LinesCleared)
		}
	}
}

func TestScoring_ZeroValueUsable(t *testing.T) {
	var s Scoring
	s.AddClearedLines(2)

	if s.CurrentScore != 200 {
		t.Errorf("zero value Scoring should still score, got %d", s.CurrentScore)
	}
}

func TestScoring_Monotonic(t *testing.T) {
	s := InitScoring()
	prev := s.CurrentScore
	for _, ev := range []string{"pieceLocked", "lineClear", "bogus", "lineClear", "pieceLocked"} {
		s.ScoreEvent(ev)
		if s.CurrentScore < prev {
			t.Fatalf("score decreased after %q: %d -> %d", ev, prev, s.CurrentScore)
		}
		prev = s.CurrentScore
	}
}
