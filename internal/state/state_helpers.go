package state

// NewBoard returns an all-empty board.
func NewBoard(width, height int) Board {
	b := make(Board, height)
	for y := range b {
		b[y] = make([]Cell, width)
	}
	return b
}

// Clone returns a deep copy so callers can never alias the engine's grid.
func (b Board) Clone() Board {
	c := make(Board, len(b))
	for y, row := range b {
		c[y] = make([]Cell, len(row))
		copy(c[y], row)
	}
	return c
}

// Occupied counts the non-empty cells.
func (b Board) Occupied() int {
	n := 0
	for _, row := range b {
		for _, c := range row {
			if c != 0 {
				n++
			}
		}
	}
	return n
}

func isFull(row []Cell) bool {
	for _, c := range row {
		if c == 0 {
			return false
		}
	}
	return true
}

// ClearRows drops every full row, keeping the survivors in order and padding
// the top with empty rows. It returns the new board and how many rows went.
func ClearRows(b Board, width int) (Board, int) {
	kept := make(Board, 0, len(b))
	for _, row := range b {
		if !isFull(row) {
			kept = append(kept, row)
		}
	}
	cleared := len(b) - len(kept)

	out := make(Board, 0, len(b))
	for i := 0; i < cleared; i++ {
		out = append(out, make([]Cell, width))
	}
	return append(out, kept...), cleared
}

func (sh Shape) Width() int {
	if len(sh) == 0 {
		return 0
	}
	return len(sh[0])
}

func (sh Shape) Height() int {
	return len(sh)
}

// Rotate returns the shape turned 90 degrees clockwise: row i of the result
// is column i of the source read bottom to top.
func (sh Shape) Rotate() Shape {
	rows, cols := sh.Height(), sh.Width()
	out := make(Shape, cols)
	for i := range out {
		out[i] = make([]Cell, rows)
		for j := 0; j < rows; j++ {
			out[i][j] = sh[rows-1-j][i]
		}
	}
	return out
}

// Equal reports whether two shapes have the same footprint and tags.
func (sh Shape) Equal(other Shape) bool {
	if len(sh) != len(other) {
		return false
	}
	for y := range sh {
		if len(sh[y]) != len(other[y]) {
			return false
		}
		for x := range sh[y] {
			if sh[y][x] != other[y][x] {
				return false
			}
		}
	}
	return true
}

// SpawnPosition centers a shape horizontally on the top row.
func SpawnPosition(width int, sh Shape) Position {
	return Position{X: width/2 - sh.Width()/2, Y: 0}
}

// Collides reports whether shape placed at pos leaves the walls or floor, or
// lands on a settled cell. Cells above row 0 are only checked against the
// side walls so that a piece may spawn partly off the top.
func (s *State) Collides(sh Shape, pos Position) bool {
	for y, row := range sh {
		for x, c := range row {
			if c == 0 {
				continue
			}
			bx, by := pos.X+x, pos.Y+y
			if bx < 0 || bx >= s.Width || by >= s.Height {
				return true
			}
			if by >= 0 && s.Board[by][bx] != 0 {
				return true
			}
		}
	}
	return false
}

// MergePiece writes the falling piece into the board and clears it.
func (s *State) MergePiece() {
	if s.Piece == nil {
		return
	}
	board := s.Board.Clone()
	for y, row := range s.Piece.Shape {
		for x, c := range row {
			if c == 0 {
				continue
			}
			bx, by := s.Piece.Pos.X+x, s.Piece.Pos.Y+y
			if by < 0 || by >= s.Height || bx < 0 || bx >= s.Width {
				continue
			}
			board[by][bx] = c
		}
	}
	s.Board = board
	s.Piece = nil
}

// ClearLines removes full rows and scores them. It returns the row count.
func (s *State) ClearLines() int {
	board, cleared := ClearRows(s.Board, s.Width)
	s.Board = board
	s.Score.AddClearedLines(cleared)
	return cleared
}

// CellAt returns what a renderer should draw at (x, y): the falling piece
// where it covers the square, the board otherwise.
func (s *State) CellAt(x, y int) Cell {
	if p := s.Piece; p != nil {
		lx, ly := x-p.Pos.X, y-p.Pos.Y
		if ly >= 0 && ly < p.Shape.Height() && lx >= 0 && lx < p.Shape.Width() {
			if c := p.Shape[ly][lx]; c != 0 {
				return c
			}
		}
	}
	return s.Board[y][x]
}
