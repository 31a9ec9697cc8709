package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"go-tetris/internal/game"
	"go-tetris/internal/state"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	redStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // Game over banner
	greenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // Start prompt
	scoreStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // Color for the score
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boardStyle = lipgloss.NewStyle().Border(lipgloss.ThickBorder())

	// Indexed by cell tag; tag 0 is never drawn with a colour.
	pieceColors = []lipgloss.Color{"0", "14", "11", "13", "208", "12", "10", "9"}
)

const debugLogFile = "tetris-debug.log"

type LocalState struct {
	Session  *game.Session
	Keys     keyMap
	Help     help.Model
	Interval time.Duration
	Debug    bool
}

// TickMsg carries the generation of the schedule that produced it so ticks
// from a schedule abandoned by a restart can be told apart.
type TickMsg struct {
	Gen  uint64
	Time time.Time
}

func tickCmd(interval time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}

func initialModel(sess *game.Session, cfg config) *LocalState {
	s := &LocalState{
		Session:  sess,
		Keys:     newKeyMap(),
		Help:     help.New(),
		Interval: cfg.Tick,
		Debug:    cfg.Debug,
	}
	s.Keys.setPlaying(false)
	return s
}

func (s *LocalState) Init() tea.Cmd {
	return nil
}

func (s *LocalState) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case TickMsg:
		if s.Session.Tick(msg.Gen) {
			cmd = tickCmd(s.Interval, msg.Gen)
		}
	case tea.WindowSizeMsg:
		s.Help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.Keys.Quit):
			return s, tea.Quit
		case key.Matches(msg, s.Keys.Start):
			// A new generation retires whatever tick is still in flight.
			gen := s.Session.Start()
			cmd = tickCmd(s.Interval, gen)
		case key.Matches(msg, s.Keys.Help):
			s.Help.ShowAll = !s.Help.ShowAll
		case key.Matches(msg, s.Keys.Left):
			s.Session.Command(game.CmdLeft)
		case key.Matches(msg, s.Keys.Right):
			s.Session.Command(game.CmdRight)
		case key.Matches(msg, s.Keys.Down):
			s.Session.Command(game.CmdDown)
		case key.Matches(msg, s.Keys.Rotate):
			s.Session.Command(game.CmdRotate)
		}
	}

	s.Keys.setPlaying(s.Session.IsPlaying())
	return s, cmd
}

func renderBoard(v game.View) string {
	var b strings.Builder
	for y := 0; y < v.Height; y++ {
		for x := 0; x < v.Width; x++ {
			b.WriteString(renderCell(v.Cell(x, y)))
		}
		if y < v.Height-1 {
			b.WriteString("\n")
		}
	}
	return boardStyle.Render(b.String())
}

func renderCell(c state.Cell) string {
	if c == 0 {
		return dimStyle.Render(" .")
	}
	color := pieceColors[int(c)%len(pieceColors)]
	return lipgloss.NewStyle().Background(color).Render("  ")
}

func (s *LocalState) View() string {
	v := s.Session.Snapshot()

	statusLine := "SCORE: " + fmt.Sprint(v.Score) + " | " +
		"LINES: " + fmt.Sprint(v.Lines)
	if v.GamesPlayed > 1 {
		statusLine += " | BEST: " + fmt.Sprint(v.BestScore)
	}

	display := scoreStyle.Render(statusLine) + "\n" + renderBoard(v)

	if v.GameOver {
		display += "\n" + redStyle.Render(fmt.Sprintf("Game Over! Final score: %d", v.Score))
		if v.NewHighScore && v.GamesPlayed > 1 {
			display += "\n" + greenStyle.Render("New high score for this session!")
		}
		if len(v.TopScores) > 1 {
			display += "\nTop scores this session:"
			for _, entry := range v.TopScores {
				display += fmt.Sprintf("\n  * %d (%d lines) in game %d", entry.Score, entry.Lines, entry.Game)
			}
		}
	}

	if v.Playing {
		display += "\n" + dimStyle.Render("Press enter to Restart Game")
	} else {
		display += "\n" + greenStyle.Render("Press enter to Start Game")
	}

	if s.Debug {
		display += "\n" + dimStyle.Render(debugLine(v))
	}

	display += "\n" + s.Help.View(s.Keys)
	return display
}

func debugLine(v game.View) string {
	playing := "Not Playing"
	if v.Playing {
		playing = "Playing"
	}
	piece := "Not Present"
	pos := state.Position{}
	if v.Piece != nil {
		piece = "Present"
		pos = v.Piece.Pos
	}
	return fmt.Sprintf("Game State: %s | Piece: %s | Position: (%d, %d) | Phase: %s | Tick gen: %d",
		playing, piece, pos.X, pos.Y, v.Phase, v.Generation)
}

type config struct {
	Width    int
	Height   int
	Tick     time.Duration
	Seed     int64
	Headless bool
	Debug    bool
}

// tickFlag accepts a Go duration ("250ms", "1s") or a bare number of
// milliseconds.
type tickFlag time.Duration

func (t *tickFlag) String() string {
	return time.Duration(*t).String()
}

func (t *tickFlag) Set(s string) error {
	if ms, err := strconv.Atoi(s); err == nil {
		if ms <= 0 {
			return fmt.Errorf("tick must be positive: %s", s)
		}
		*t = tickFlag(time.Duration(ms) * time.Millisecond)
		return nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid tick format: %s (use e.g. 500ms or 1s)", s)
	}
	if d <= 0 {
		return fmt.Errorf("tick must be positive: %s", s)
	}
	*t = tickFlag(d)
	return nil
}

type strictIntFlag int

func (i *strictIntFlag) String() string {
	return fmt.Sprint(int(*i))
}

func (i *strictIntFlag) Set(s string) error {
	if s == "true" {
		return fmt.Errorf("value required (format: -flag=value)")
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*i = strictIntFlag(v)
	return nil
}

func (i *strictIntFlag) IsBoolFlag() bool { return true }

// minBoardSize fits the widest tetromino.
const minBoardSize = 4

func parseFlags(fs *flag.FlagSet, args []string) (config, error) {
	// defaults
	width := strictIntFlag(game.DefaultWidth)
	height := strictIntFlag(game.DefaultHeight)
	tick := tickFlag(time.Second)
	var seed strictIntFlag
	var cfg config

	fs.Var(&width, "width", "Board width in cells")
	fs.Var(&height, "height", "Board height in cells")
	fs.Var(&tick, "tick", "Gravity interval (e.g. 500ms, 1s or milliseconds)")
	fs.Var(&tick, "t", "Gravity interval (shorthand)")
	fs.Var(&seed, "seed", "Seed for piece selection (0 picks one from the clock)")
	fs.BoolVar(&cfg.Headless, "headless", false, "Let a random bot play without a terminal UI")
	fs.BoolVar(&cfg.Debug, "debug", false, "Show debug info and log to "+debugLogFile)

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [options]\n", fs.Name())
		fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fmt.Fprintf(fs.Output(), "       --width=N          Board width (default %d)\n", game.DefaultWidth)
		fmt.Fprintf(fs.Output(), "       --height=N         Board height (default %d)\n", game.DefaultHeight)
		fmt.Fprintf(fs.Output(), "   -t, --tick=DURATION    Gravity interval (default 1s)\n")
		fmt.Fprintf(fs.Output(), "       --seed=N           Seed for piece selection\n")
		fmt.Fprintf(fs.Output(), "       --headless         Let a random bot play without a terminal UI\n")
		fmt.Fprintf(fs.Output(), "       --debug            Show debug info and log to %s\n", debugLogFile)
		fmt.Fprintf(fs.Output(), "   -h, --help             Show this help message\n")
	}

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	cfg.Width = int(width)
	cfg.Height = int(height)
	cfg.Tick = time.Duration(tick)
	cfg.Seed = int64(seed)

	if cfg.Width < minBoardSize || cfg.Height < minBoardSize {
		return cfg, fmt.Errorf("board must be at least %dx%d, got %dx%d",
			minBoardSize, minBoardSize, cfg.Width, cfg.Height)
	}
	return cfg, nil
}

func setupLogging(debug bool) (func() error, error) {
	if !debug {
		// The terminal belongs to the UI.
		log.SetOutput(io.Discard)
		return func() error { return nil }, nil
	}
	f, err := tea.LogToFile(debugLogFile, "tetris")
	if err != nil {
		return nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	return f.Close, nil
}

func runHeadless(sess *game.Session, cfg config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	bot := game.RandomBot{Rng: game.NewRandomizer(cfg.Seed * 31)}
	v, err := sess.Autoplay(ctx, cfg.Tick, bot)
	fmt.Println(renderBoard(v))
	fmt.Println(scoreStyle.Render(fmt.Sprintf("Final score: %d (%d lines)", v.Score, v.Lines)))
	if err != nil {
		return fmt.Errorf("headless game interrupted: %w", err)
	}
	return nil
}

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	closeLog, err := setupLogging(cfg.Debug)
	if err != nil {
		fmt.Printf("Error initializing logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	sess := game.NewSession(game.NewGame(cfg.Width, cfg.Height, game.NewRandomizer(cfg.Seed)))

	if cfg.Headless {
		if err := runHeadless(sess, cfg); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
		return
	}

	p := tea.NewProgram(initialModel(sess, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error starting the program: %v\n", err)
	}
}
