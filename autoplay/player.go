package autoplay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/luca-patrignani/klondike/domain/deck"
	"github.com/luca-patrignani/klondike/domain/klondike"
)

// DefaultMaxPasses bounds the number of passes through the stock a single
// Play call may start.
const DefaultMaxPasses = 25

// ErrRunaway is returned by Play when the pass ceiling is reached while the
// heuristic is still finding moves.
var ErrRunaway = errors.New("autoplay did not converge")

// Game is the subset of the klondike.Game API the player drives. The
// player has no other access to the piles.
type Game interface {
	Move(from klondike.Location, count int, to klondike.Location) bool
	Draw() int
	Restock() bool
	FoundationMatch(c deck.Card) (klondike.Location, bool)
	HasWon() bool
	Tableau(i int) []deck.Card
	WasteTop() (deck.Card, bool)
	WasteLen() int
	StockLen() int
	Pass() int
}

// Outcome is the terminal observation of a Play call.
type Outcome string

const (
	Won     Outcome = "won"
	Forfeit Outcome = "forfeit"
	Aborted Outcome = "aborted"
)

// Result summarises a Play call.
type Result struct {
	Outcome   Outcome
	Moves     int
	Draws     int
	Restocks  int
	FinalPass int
}

// Turn reports what a single Step did.
type Turn struct {
	Moves     int
	Drawn     int
	Restocked bool
	Stuck     bool // nothing moved, nothing drawn and no restock allowed
}

// Player is a single-ply greedy heuristic: it never searches or backtracks
// and may therefore lose solvable deals.
type Player struct {
	game      Game
	maxPasses int
	logger    *slog.Logger

	moves    int
	draws    int
	restocks int
}

// Option configures a Player.
type Option func(Player) Player

// WithMaxPasses overrides DefaultMaxPasses.
func WithMaxPasses(n int) Option {
	return func(p Player) Player {
		p.maxPasses = n
		return p
	}
}

// WithLogger sets the logger used to trace decisions.
func WithLogger(logger *slog.Logger) Option {
	return func(p Player) Player {
		p.logger = logger
		return p
	}
}

// New returns a Player driving game.
func New(game Game, opts ...Option) *Player {
	p := Player{
		game:      game,
		maxPasses: DefaultMaxPasses,
	}
	for _, opt := range opts {
		p = opt(p)
	}
	if p.maxPasses < 1 {
		p.maxPasses = 1
	}
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &p
}

// Step plays one turn: foundation moves, consolidation and waste play; when
// none of them moves a card it draws, restocking first if the stock is empty.
func (p *Player) Step() Turn {
	return p.turn(func() bool { return true })
}

// Play runs turns until the game is won, a whole pass through the stock
// produces no move, the pass limit forbids a restock or ctx is done.
func (p *Player) Play(ctx context.Context) (Result, error) {
	movedInPass := false
	var runaway error
	mayRestock := func() bool {
		if !movedInPass {
			return false
		}
		if p.game.Pass() >= p.maxPasses {
			runaway = fmt.Errorf("%w: pass %d reached the ceiling of %d (moves %d, waste %d)",
				ErrRunaway, p.game.Pass(), p.maxPasses, p.moves, p.game.WasteLen())
			return false
		}
		return true
	}

	for {
		if p.game.HasWon() {
			return p.finish(Won), nil
		}
		if err := ctx.Err(); err != nil {
			return p.finish(Aborted), err
		}

		t := p.turn(mayRestock)
		if runaway != nil {
			p.logger.Error("autoplay aborted", "error", runaway)
			return p.finish(Aborted), runaway
		}
		switch {
		case t.Moves > 0:
			movedInPass = true
		case t.Restocked:
			movedInPass = false
		case t.Stuck:
			if p.game.HasWon() {
				return p.finish(Won), nil
			}
			return p.finish(Forfeit), nil
		}
	}
}

func (p *Player) turn(mayRestock func() bool) Turn {
	t := Turn{Moves: p.AutoFoundation()}
	if !p.game.HasWon() {
		t.Moves += p.Consolidate() + p.PlayWaste()
	}
	if t.Moves > 0 || p.game.HasWon() {
		return t
	}
	if t.Drawn = p.draw(); t.Drawn > 0 {
		return t
	}
	if p.game.WasteLen() == 0 || !mayRestock() || !p.game.Restock() {
		t.Stuck = true
		return t
	}
	p.restocks++
	t.Restocked = true
	t.Drawn = p.draw()
	return t
}

func (p *Player) finish(o Outcome) Result {
	r := Result{
		Outcome:   o,
		Moves:     p.moves,
		Draws:     p.draws,
		Restocks:  p.restocks,
		FinalPass: p.game.Pass(),
	}
	p.logger.Info("autoplay finished", "outcome", string(o), "moves", r.Moves, "draws", r.Draws, "pass", r.FinalPass)
	return r
}

func (p *Player) draw() int {
	n := p.game.Draw()
	p.draws += n
	return n
}

func (p *Player) move(from klondike.Location, count int, to klondike.Location) bool {
	if !p.game.Move(from, count, to) {
		p.logger.Warn("move refused", "from", from.String(), "count", count, "to", to.String())
		return false
	}
	p.moves++
	p.logger.Debug("move", "from", from.String(), "count", count, "to", to.String())
	return true
}
