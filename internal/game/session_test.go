package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_StartIssuesNewGeneration(t *testing.T) {
	sess := NewSession(newTestGame(shapeI))

	assert.Zero(t, sess.Generation())
	first := sess.Start()
	second := sess.Start()

	assert.Equal(t, uint64(1), first)
	assert.Equal(t, uint64(2), second)
	assert.Equal(t, second, sess.Generation())
	assert.Equal(t, 2, sess.GamesPlayed)
}

func TestSession_StaleTickIgnored(t *testing.T) {
	sess := NewSession(newTestGame(shapeI))
	old := sess.Start()
	current := sess.Start()

	assert.False(t, sess.Tick(old), "old schedule must stop")
	assert.Equal(t, 0, sess.Snapshot().Piece.Pos.Y)

	assert.True(t, sess.Tick(current))
	assert.Equal(t, 1, sess.Snapshot().Piece.Pos.Y)
}

func TestSession_TickBeforeStart(t *testing.T) {
	sess := NewSession(newTestGame(shapeI))

	assert.False(t, sess.Tick(0))
	v := sess.Snapshot()
	assert.False(t, v.Playing)
	assert.Nil(t, v.Piece)
}

func TestSession_TickStopsAtGameOver(t *testing.T) {
	g := newTestGame(shapeO)
	sess := NewSession(g)
	gen := sess.Start()
	g.State.Board[2][4] = 9

	assert.False(t, sess.Tick(gen))
	v := sess.Snapshot()
	assert.True(t, v.GameOver)
	assert.False(t, v.Playing)
	assert.Equal(t, "over", v.Phase)

	assert.False(t, sess.Tick(gen))
}

func TestSession_BestScore(t *testing.T) {
	g := newTestGame(shapeI)
	sess := NewSession(g)
	gen := sess.Start()

	for x := 0; x < DefaultWidth; x++ {
		if x < 3 || x > 6 {
			g.State.Board[19][x] = 9
		}
	}
	for sess.Tick(gen) && g.Score() == 0 {
	}
	require.Equal(t, 100, g.Score())

	// Block the fresh piece where it spawned so the next spawn collides.
	g.State.Board[1][3] = 9
	for sess.Tick(gen) {
	}

	v := sess.Snapshot()
	assert.True(t, v.GameOver)
	assert.True(t, v.NewHighScore)
	assert.Equal(t, 100, v.BestScore)
	require.Len(t, v.TopScores, 1)
	assert.Equal(t, 1, v.TopScores[0].Lines)

	sess.Start()
	v = sess.Snapshot()
	assert.Equal(t, 100, v.BestScore)
	assert.False(t, v.NewHighScore)
	assert.Zero(t, v.Score)

	// A scoreless second game is recorded but is not a high score.
	g.State.Board[1][3] = 9
	for sess.Tick(sess.Generation()) {
	}
	v = sess.Snapshot()
	assert.False(t, v.NewHighScore)
	assert.Len(t, v.TopScores, 2)
	assert.Equal(t, 100, v.TopScores[0].Score)
	assert.Len(t, sess.History.Entries, 2)
}

func TestSession_CommandNoopWhenIdle(t *testing.T) {
	sess := NewSession(newTestGame(shapeI))

	for _, cmd := range []Command{CmdLeft, CmdRight, CmdDown, CmdRotate} {
		assert.False(t, sess.Command(cmd))
	}
	assert.Equal(t, "idle", sess.Snapshot().Phase)
}

func TestView_Cell(t *testing.T) {
	sess := NewSession(newTestGame(shapeT))
	sess.Start()

	v := sess.Snapshot()
	assert.Equal(t, 3, int(v.Cell(4, 0)))
	assert.Equal(t, 3, int(v.Cell(5, 1)))
	assert.Zero(t, v.Cell(4, 1))
	assert.Zero(t, v.Cell(0, 19))
	assert.Equal(t, DefaultWidth, v.Width)
	assert.Equal(t, DefaultHeight, v.Height)
}

func TestSession_ConcurrentDrivers(t *testing.T) {
	sess := NewSession(NewGame(DefaultWidth, DefaultHeight, NewRandomizer(7)))
	gen := sess.Start()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			sess.Tick(gen)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			sess.Command(Command(i%4 + 1))
		}
	}()
	wg.Wait()

	v := sess.Snapshot()
	if v.GameOver {
		assert.False(t, v.Playing)
	}
}

type rotateBot struct{}

func (rotateBot) Next(View) Command { return CmdRotate }

func TestSession_AutoplayRunsToGameOver(t *testing.T) {
	// Squares stack two high in the middle of a 4x4 well, so the third one
	// cannot spawn.
	sess := NewSession(NewGame(4, 4, &seqRand{vals: []int{shapeO}}))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	v, err := sess.Autoplay(ctx, time.Millisecond, rotateBot{})

	require.NoError(t, err)
	assert.True(t, v.GameOver)
	assert.False(t, v.Playing)
	assert.Equal(t, 8, v.Board.Occupied())
	assert.Equal(t, 1, v.GamesPlayed)
}

func TestSession_AutoplayCancelled(t *testing.T) {
	sess := NewSession(newTestGame(shapeI))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v, err := sess.Autoplay(ctx, time.Hour, RandomBot{Rng: NewRandomizer(1)})

	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, v.Playing)
}

func TestRandomBot(t *testing.T) {
	bot := RandomBot{Rng: NewRandomizer(3)}
	for i := 0; i < 100; i++ {
		cmd := bot.Next(View{})
		assert.NotEqual(t, CmdNone, cmd)
		assert.LessOrEqual(t, cmd, CmdRotate)
	}
}

func TestCommand_String(t *testing.T) {
	assert.Equal(t, "left", CmdLeft.String())
	assert.Equal(t, "right", CmdRight.String())
	assert.Equal(t, "down", CmdDown.String())
	assert.Equal(t, "rotate", CmdRotate.String())
	assert.Equal(t, "none", Command(99).String())
}
