package scoring

// Scoring tracks the score of a single game. Points only ever accumulate,
// so the score is non-decreasing for the lifetime of a Scoring value.
type Scoring struct {
	// public
	CurrentScore int
	LinesCleared int
	PiecesLocked int
	// private
	scoreTable map[string]int
}

// InitScoring returns a zeroed Scoring ready for a fresh game.
func InitScoring() Scoring {
	return Scoring{
		scoreTable: getScoreTable(),
	}
}

// ScoreEvent updates the score based on a given game event.
// Unknown events are counted as worth nothing.
func (s *Scoring) ScoreEvent(event string) {
	switch event {
	case "lineClear":
		s.LinesCleared++
	case "pieceLocked":
		s.PiecesLocked++
	}
	if s.scoreTable == nil {
		s.scoreTable = getScoreTable()
	}
	s.CurrentScore += s.scoreTable[event]
}

// AddClearedLines scores n rows removed by a single merge.
func (s *Scoring) AddClearedLines(n int) {
	for i := 0; i < n; i++ {
		s.ScoreEvent("lineClear")
	}
}

// LineValue is the flat bonus awarded per cleared row.
func (s *Scoring) LineValue() int {
	if s.scoreTable == nil {
		return getScoreTable()["lineClear"]
	}
	return s.scoreTable["lineClear"]
}

// getScoreTable returns the predefined values for different scoring events.
func getScoreTable() map[string]int {
	return map[string]int{
		"lineClear":   100,
		"pieceLocked": 0,
	}
}
