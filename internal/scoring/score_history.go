package scoring

import (
	"sort"
)

// ScoreHistory holds the finished games of one run of the program. It lives
// in memory only and is gone when the process exits.
type ScoreHistory struct {
	Entries        []ScoreHistoryEntry
	HighScoreEntry *ScoreHistoryEntry
}

// ScoreHistoryEntry represents a single finished game.
type ScoreHistoryEntry struct {
	Game  int
	Score int
	Lines int
}

// Record adds a finished game and reports whether it set a new high score.
// Ties keep the earlier game as the high score.
func (sh *ScoreHistory) Record(s Scoring) bool {
	entry := ScoreHistoryEntry{
		Game:  len(sh.Entries) + 1,
		Score: s.CurrentScore,
		Lines: s.LinesCleared,
	}
	sh.Entries = append(sh.Entries, entry)

	if sh.HighScoreEntry == nil || entry.Score > sh.HighScoreEntry.Score {
		best := entry
		sh.HighScoreEntry = &best
		return true
	}
	return false
}

// GetHighScoreEntry returns the best finished game, or nil before any.
func (sh ScoreHistory) GetHighScoreEntry() *ScoreHistoryEntry {
	if sh.HighScoreEntry == nil {
		return nil
	}
	e := *sh.HighScoreEntry
	return &e
}

// GetNScoreEntries returns the top N score entries from the history, sorted by score.
func (sh ScoreHistory) GetNScoreEntries(n int) []ScoreHistoryEntry {
	// Make a copy to avoid modifying the original slice.
	entriesCopy := make([]ScoreHistoryEntry, len(sh.Entries))
	copy(entriesCopy, sh.Entries)

	sort.SliceStable(entriesCopy, func(i, j int) bool {
		return entriesCopy[i].Score > entriesCopy[j].Score
	})

	if len(entriesCopy) < n {
		return entriesCopy
	}
	return entriesCopy[:n]
}
