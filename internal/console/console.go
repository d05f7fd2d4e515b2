// Package console drives a game from a line-oriented text stream.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/hailam/chessvariant/internal/board"
	"github.com/hailam/chessvariant/internal/engine"
	"github.com/hailam/chessvariant/internal/game"
	"github.com/hailam/chessvariant/internal/storage"
)

// Console reads commands and prints game events as lines:
//
//	reset
//	piece <x> <y> <code>
//	select <x> <y> on|off
//	gameover <status>
type Console struct {
	game *game.Game

	mu  sync.Mutex
	out io.Writer
}

// New creates a console and its game. store may be nil.
func New(eng *engine.Engine, store *storage.Storage, out io.Writer) *Console {
	c := &Console{out: out}
	c.game = game.New(eng, c, store)
	return c
}

// Game returns the game driven by the console.
func (c *Console) Game() *game.Game {
	return c.game
}

// Run processes commands from in until "quit", end of input or ctx ends.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		var err error
		switch cmd {
		case "new":
			c.game.Reset()
		case "setup":
			err = c.handleSetup(args)
		case "click":
			err = c.handleClick(ctx, args)
		case "move":
			err = c.handleMove(ctx, args)
		case "moves":
			err = c.handleMoves(args)
		case "depth":
			err = c.handleDepth(args)
		case "odds":
			err = c.handleOdds(args)
		case "d":
			c.printf("%s\n", c.game.Snapshot())
		case "value":
			c.printf("value %d\n", c.game.Value())
		case "status":
			c.printf("status %s\n", c.game.Status())
		case "stats":
			err = c.handleStats()
		case "help":
			c.printHelp()
		case "quit":
			return nil
		default:
			err = fmt.Errorf("unknown command %q", cmd)
		}

		if err != nil {
			c.printf("error: %v\n", err)
		}
	}

	return scanner.Err()
}

func (c *Console) handleSetup(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: setup <diagram>")
	}
	b, err := board.ParseDiagram(args[0])
	if err != nil {
		return err
	}
	c.game.Setup(b)
	return nil
}

func (c *Console) handleClick(ctx context.Context, args []string) error {
	pos, err := parsePositions(args, 1)
	if err != nil {
		return fmt.Errorf("usage: click <x> <y>: %w", err)
	}
	c.game.NotifySquareClicked(pos[0])
	return c.game.WaitForComputer(ctx)
}

func (c *Console) handleMove(ctx context.Context, args []string) error {
	pos, err := parsePositions(args, 2)
	if err != nil {
		return fmt.Errorf("usage: move <x1> <y1> <x2> <y2>: %w", err)
	}
	if !c.game.SubmitPlayerSelection(pos[0]) || !c.game.SubmitPlayerTarget(pos[1]) {
		c.printf("illegal %v->%v\n", pos[0], pos[1])
		return nil
	}
	return c.game.WaitForComputer(ctx)
}

func (c *Console) handleMoves(args []string) error {
	pos, err := parsePositions(args, 1)
	if err != nil {
		return fmt.Errorf("usage: moves <x> <y>: %w", err)
	}

	moves := c.game.MovesFrom(pos[0])
	var sb strings.Builder
	fmt.Fprintf(&sb, "moves %d", len(moves))
	for _, m := range moves {
		sb.WriteString(" ")
		sb.WriteString(m.String())
	}
	c.printf("%s\n", sb.String())
	return nil
}

func (c *Console) handleDepth(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: depth <n>")
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid depth: %w", err)
	}
	c.game.SetSearchDepth(depth)
	c.printf("depth %d\n", c.game.Limits().Depth)
	return nil
}

func (c *Console) handleOdds(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: odds <p>")
	}
	p, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid probability: %w", err)
	}
	c.game.SetSwitchProbability(p)
	c.printf("odds %.2f\n", c.game.Limits().SwitchProbability)
	return nil
}

func (c *Console) handleStats() error {
	stats, err := c.game.Stats()
	if err != nil {
		return err
	}
	c.printf("games %d wins %d losses %d draws %d winrate %.1f%% streak %d best %d\n",
		stats.GamesPlayed, stats.Wins, stats.Losses, stats.Draws,
		stats.GetWinRate(), stats.CurrentStreak, stats.LongestWinStrk)
	return nil
}

func (c *Console) printHelp() {
	c.printf("commands:\n")
	c.printf("  new                      start a new game\n")
	c.printf("  setup <diagram>          start from a diagram, rank 7 first\n")
	c.printf("  click <x> <y>            click a square\n")
	c.printf("  move <x1> <y1> <x2> <y2> select and move in one step\n")
	c.printf("  moves <x> <y>            list moves of a piece\n")
	c.printf("  depth <n>                set search depth (1-5)\n")
	c.printf("  odds <p>                 set tie-break switch probability\n")
	c.printf("  d | value | status | stats | quit\n")
}

// parsePositions reads n coordinate pairs from args.
func parsePositions(args []string, n int) ([]board.Position, error) {
	if len(args) != 2*n {
		return nil, fmt.Errorf("need %d coordinates, got %d", 2*n, len(args))
	}
	positions := make([]board.Position, n)
	for i := range positions {
		x, err := strconv.Atoi(args[2*i])
		if err != nil {
			return nil, err
		}
		y, err := strconv.Atoi(args[2*i+1])
		if err != nil {
			return nil, err
		}
		positions[i] = board.NewPosition(x, y)
	}
	return positions, nil
}

func (c *Console) printf(format string, a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, a...)
}

// OnBoardReset prints "reset".
func (c *Console) OnBoardReset() {
	c.printf("reset\n")
}

// OnPieceChanged prints "piece <x> <y> <code>".
func (c *Console) OnPieceChanged(pos board.Position, piece board.Piece) {
	c.printf("piece %d %d %d\n", pos.X, pos.Y, int(piece))
}

// OnSelectionChanged prints "select <x> <y> on|off".
func (c *Console) OnSelectionChanged(pos board.Position, selected bool) {
	state := "off"
	if selected {
		state = "on"
	}
	c.printf("select %d %d %s\n", pos.X, pos.Y, state)
}

// OnGameOver prints "gameover <status>".
func (c *Console) OnGameOver(status game.Status) {
	c.printf("gameover %s\n", status)
}
