package game

import (
	"context"
	"log"
	"sync"
	"time"
)

// Bot chooses the next command for a headless game. Returning CmdNone skips
// the turn.
type Bot interface {
	Next(v View) Command
}

// RandomBot mashes the four commands uniformly.
type RandomBot struct {
	Rng Randomizer
}

func (b RandomBot) Next(View) Command {
	return Command(b.Rng.IntN(4) + 1)
}

// botMovesPerTick is how many inputs the bot gets between gravity steps.
const botMovesPerTick = 3

// Autoplay runs a fresh game without a terminal. One goroutine drives gravity
// from a ticker while another feeds bot input; both go through the session
// lock. It returns the final view once the game is over, or ctx's error if
// the context ends first. Both goroutines are stopped before it returns.
func (s *Session) Autoplay(ctx context.Context, interval time.Duration, bot Bot) (View, error) {
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer wg.Wait()
	defer cancel()

	gen := s.Start()

	if bot != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.runBot(ctx, interval/botMovesPerTick, bot)
		}()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("autoplay cancelled: %v", ctx.Err())
			return s.Snapshot(), ctx.Err()
		case <-ticker.C:
			if !s.Tick(gen) {
				return s.Snapshot(), nil
			}
		}
	}
}

func (s *Session) runBot(ctx context.Context, every time.Duration, bot Bot) {
	if every <= 0 {
		every = time.Millisecond
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.IsPlaying() {
				return
			}
			if cmd := bot.Next(s.Snapshot()); cmd != CmdNone {
				s.Command(cmd)
			}
		}
	}
}
