package game

import (
	"math/rand/v2"
	"time"

	"go-tetris/internal/state"
)

// Randomizer picks spawn shapes. *rand.Rand satisfies it; tests pass fixed
// sequences instead.
type Randomizer interface {
	IntN(n int) int
}

// NewRandomizer returns a PCG-backed source. A zero seed means "use the clock".
func NewRandomizer(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
}

// The seven tetrominoes in their spawn orientation.
var tetrominoes = [][][]bool{
	{ // I
		{true, true, true, true},
	},
	{ // O
		{true, true},
		{true, true},
	},
	{ // T
		{true, true, true},
		{false, true, false},
	},
	{ // L
		{true, true, true},
		{true, false, false},
	},
	{ // J
		{true, true, true},
		{false, false, true},
	},
	{ // S
		{true, true, false},
		{false, true, true},
	},
	{ // Z
		{false, true, true},
		{true, true, false},
	},
}

// Shapes returns the tetromino set. Each piece is tagged with its index plus
// one so a renderer can tell them apart; the engine only cares about zero.
func Shapes() []state.Shape {
	shapes := make([]state.Shape, len(tetrominoes))
	for i, grid := range tetrominoes {
		sh := make(state.Shape, len(grid))
		for y, row := range grid {
			sh[y] = make([]state.Cell, len(row))
			for x, on := range row {
				if on {
					sh[y][x] = state.Cell(i + 1)
				}
			}
		}
		shapes[i] = sh
	}
	return shapes
}
