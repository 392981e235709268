package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/klondike/autoplay"
	"github.com/luca-patrignani/klondike/clock"
	"github.com/luca-patrignani/klondike/config"
	"github.com/luca-patrignani/klondike/domain/deck"
	"github.com/luca-patrignani/klondike/domain/klondike"
	"github.com/luca-patrignani/klondike/ledger"
	"github.com/luca-patrignani/klondike/scoring"
)

// Session is one terminal player: the current game and everything
// observing it. A new game replaces all of them.
type Session struct {
	cfg    config.Config
	out    io.Writer
	logger *slog.Logger
	src    deck.Source

	game     *klondike.Game
	standard *scoring.Standard
	vegas    *scoring.Vegas
	ticker   *clock.Ticker
	journal  *ledger.Journal
	player   *autoplay.Player
	// narrate echoes the moves of the autoplayer
	narrate bool
}

// NewSession deals the first game.
func NewSession(cfg config.Config, out io.Writer, logger *slog.Logger) (*Session, error) {
	s := &Session{
		cfg:    cfg,
		out:    out,
		logger: logger,
		src:    cfg.Source(),
	}
	if err := s.newGame(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) newGame() error {
	if s.ticker != nil {
		s.ticker.Cancel()
	}
	opts := append(s.cfg.GameOptions(), klondike.WithLogger(s.logger))
	g, err := klondike.NewShuffledGame(s.src, opts...)
	if err != nil {
		return fmt.Errorf("cannot deal: %w", err)
	}
	s.game = g
	s.standard = scoring.NewStandard(
		scoring.WithDrawCount(s.cfg.DrawCount),
		scoring.WithTimed(s.cfg.Timed),
		scoring.WithLogger(s.logger),
	)
	s.vegas = scoring.NewVegas(scoring.WithLogger(s.logger))
	scoring.Attach(s.standard, g.Bus())
	scoring.Attach(s.vegas, g.Bus())
	s.journal = ledger.NewJournal(g.ID(), ledger.WithLogger(s.logger))
	s.journal.Attach(g.Bus())
	s.player = autoplay.New(g,
		autoplay.WithMaxPasses(s.cfg.AutoplayMaxPasses),
		autoplay.WithLogger(s.logger),
	)
	s.ticker = clock.New(g.Bus(), clock.WithLogger(s.logger))
	g.Subscribe(s.onEvent)
	if s.cfg.Timed {
		s.ticker.Start()
	}
	s.logger.Info("new game", "game", g.ID().String(), "draw_count", g.DrawCount(), "pass_limit", g.PassLimit())
	return nil
}

func (s *Session) onEvent(e klondike.Event) {
	switch ev := e.(type) {
	case klondike.WonEvent:
		s.ticker.Stop()
	case klondike.MoveEvent:
		if !s.narrate || !ev.Success {
			return
		}
		if ev.Count > 1 {
			s.println(pterm.Sprintf("npc> m %s,%d %s", ev.From, ev.Count, ev.To))
		} else {
			s.println(pterm.Sprintf("npc> m %s %s", ev.From, ev.To))
		}
	case klondike.RestockEvent:
		if s.narrate && ev.Success {
			s.println("npc> r")
		}
	}
}

// Close releases the clock of the current game.
func (s *Session) Close() {
	s.ticker.Cancel()
}

func (s *Session) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Session) table(additionalPanel ...pterm.Panel) {
	s.println(renderState(s, additionalPanel...))
}

func (s *Session) winCheck() {
	if s.game.HasWon() {
		s.println(pterm.LightGreen("You won!"))
	}
}

// Execute runs c against the current game. It reports whether the loop
// should stop.
func (s *Session) Execute(ctx context.Context, c Command) (quit bool, err error) {
	switch c.Op {
	case OpExit:
		return true, nil
	case OpTable:
		s.table()
	case OpDraw:
		if s.game.Draw() == 0 {
			s.println("Stock is empty.")
			break
		}
		s.println(deckLine(s.game))
	case OpRestock:
		s.restock()
	case OpMove:
		if !s.game.Move(c.From, c.Count, c.To) {
			s.println("Illegal move.")
			break
		}
		s.table()
		s.winCheck()
	case OpFoundation:
		if s.player.AutoFoundation() == 0 {
			s.println("No possible moves.")
			break
		}
		s.table()
		s.winCheck()
	case OpConsolidate:
		s.narrated(func() int { return s.player.Consolidate() }, "No consolidation available.")
	case OpWaste:
		s.narrated(func() int { return s.player.PlayWaste() }, "No advantageous move available.")
	case OpStep:
		s.narrate = true
		t := s.player.Step()
		s.narrate = false
		if t.Stuck {
			s.println("No move left.")
		}
		s.table()
		s.winCheck()
	case OpAuto:
		s.narrate = true
		res, err := s.player.Play(ctx)
		s.narrate = false
		if err != nil && !errors.Is(err, autoplay.ErrRunaway) {
			return false, err
		}
		s.table(getResultPanel(res, err))
		s.winCheck()
	case OpNewGame:
		if err := s.newGame(); err != nil {
			return false, err
		}
		s.table()
	case OpLedger:
		s.println(renderPanel(getLedgerPanel(s.journal)))
	case OpHelp:
		s.println(help)
	case OpHelpMove:
		s.println(helpMove)
	default:
		return false, fmt.Errorf("%w: unknown command %q", ErrInvalidSyntax, c.Op)
	}
	return false, nil
}

func (s *Session) narrated(step func() int, none string) {
	s.narrate = true
	n := step()
	s.narrate = false
	if n == 0 {
		s.println(none)
		return
	}
	s.table()
	s.winCheck()
}

func (s *Session) restock() {
	if s.game.Restock() {
		s.println(deckLine(s.game))
		return
	}
	switch {
	case s.game.WasteLen() == 0:
		s.println("Nothing to restock.")
	case s.game.StockLen() > 0:
		s.println("Stock is not empty.")
	default:
		s.println("Deck pass limit reached.")
	}
}

func renderPanel(p pterm.Panel) string {
	out, err := pterm.DefaultPanel.WithPanels([][]pterm.Panel{{p}}).Srender()
	if err != nil {
		return p.Data
	}
	return out
}

const help = `t: show table
d: draw the next card from stock
m [from: w|f1-f4|t1-t7,n to: f1-f4|t1-t7]: enter 'h m' for details
r: restock from waste pile
f: move cards from tableau and waste to foundations
c: auto consolidate tableaus
w: attempt to place the waste card
s: play one step of auto mode
a: play the rest of the game in auto mode
N: new game
l: verify the game ledger
x: exit`

const helpMove = `Moving cards:
> m [from] [to]
'm' moves a card, or cards, from waste, a foundation or tableau to a foundation or tableau.
[from]: w|f1-f4|t1-t7,n where w is the top waste card, f is one of the 4 foundations and t is one of the tableaus. ',n' optionally specifies how many cards to move from a tableau, default is 1
[to]: f1-f4|t1-t7
- ex. move the top waste card to the 2nd tableau: m w t2
- ex. move two cards from the 1st tableau to the 3rd tableau: m t1,2 t3
- ex. move one card from 4th tableau to the 2nd foundation: m t4 f2`
