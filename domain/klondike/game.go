package klondike

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/luca-patrignani/klondike/domain/deck"
)

// Game is the authoritative state of one Klondike deal. It owns every pile
// and exposes the only operations that mutate them. A Game is driven by a
// single caller at a time and is not safe for concurrent use; start a new
// Game rather than resetting one.
type Game struct {
	id          uuid.UUID
	stock       StockPile
	waste       WastePile
	foundations [NumFoundations]FoundationPile
	tableaus    [NumTableaus]TableauPile

	drawCount int
	passLimit int // 0 = unlimited
	pass      int
	won       bool

	bus    *Bus
	logger *slog.Logger
}

// Option configures a Game at construction time.
type Option func(Game) Game

// WithDrawCount sets how many cards Draw moves at once (1 or 3).
func WithDrawCount(n int) Option {
	return func(g Game) Game {
		g.drawCount = n
		return g
	}
}

// WithPassLimit caps the number of passes through the stock; 0 means unlimited.
func WithPassLimit(n int) Option {
	return func(g Game) Game {
		g.passLimit = n
		return g
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(g Game) Game {
		g.logger = logger
		return g
	}
}

// WithBus publishes the game's events on an existing bus instead of a new one.
func WithBus(bus *Bus) Option {
	return func(g Game) Game {
		g.bus = bus
		return g
	}
}

func newGame(opts []Option) (*Game, error) {
	g := Game{
		id:        uuid.New(),
		drawCount: 1,
		pass:      1,
	}
	for _, opt := range opts {
		g = opt(g)
	}
	if g.drawCount != 1 && g.drawCount != 3 {
		return nil, fmt.Errorf("draw count must be 1 or 3, got %d", g.drawCount)
	}
	if g.passLimit < 0 {
		return nil, fmt.Errorf("pass limit must not be negative, got %d", g.passLimit)
	}
	if g.bus == nil {
		g.bus = NewBus()
	}
	if g.logger == nil {
		g.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	g.logger = g.logger.With("game", g.id.String())
	return &g, nil
}

// NewGame deals d into a new Game: tableau i (0-based) receives i+1 cards
// from the top of the deck with only the last one turned up, and the
// remaining 24 cards form the face-down stock.
func NewGame(d deck.Deck, opts ...Option) (*Game, error) {
	if err := validateDeck(d.Cards); err != nil {
		return nil, err
	}
	g, err := newGame(opts)
	if err != nil {
		return nil, err
	}
	cards := make([]deck.Card, len(d.Cards))
	for i, c := range d.Cards {
		cards[i] = c.Down()
	}
	src := deck.Deck{Cards: cards}
	for i := 0; i < NumTableaus; i++ {
		for n := 0; n <= i; n++ {
			c, _ := src.Pop()
			g.tableaus[i].push(c)
		}
		g.tableaus[i].revealTop()
	}
	g.stock.cards = src.Cards
	g.logger.Debug("dealt new game", "draw_count", g.drawCount, "pass_limit", g.passLimit)
	return g, nil
}

// NewShuffledGame builds a fresh deck, shuffles it with src and deals it.
func NewShuffledGame(src deck.Source, opts ...Option) (*Game, error) {
	d := deck.New()
	d.Shuffle(src)
	return NewGame(d, opts...)
}

// ID returns the unique identifier of the game.
func (g *Game) ID() uuid.UUID { return g.id }

// DrawCount returns the number of cards moved by each Draw.
func (g *Game) DrawCount() int { return g.drawCount }

// PassLimit returns the maximum number of passes, 0 for unlimited.
func (g *Game) PassLimit() int { return g.passLimit }

// Pass returns the current pass through the stock, starting at 1.
func (g *Game) Pass() int { return g.pass }

// Bus returns the bus the game publishes on.
func (g *Game) Bus() *Bus { return g.bus }

// Subscribe registers a listener on the game's bus.
func (g *Game) Subscribe(fn Listener) (unsubscribe func()) {
	return g.bus.Subscribe(fn)
}

// StockLen returns the number of cards left in the stock.
func (g *Game) StockLen() int { return g.stock.Len() }

// WasteLen returns the number of cards in the waste.
func (g *Game) WasteLen() int { return g.waste.Len() }

// WasteTop returns the playable waste card.
func (g *Game) WasteTop() (deck.Card, bool) { return g.waste.Top() }

// Tableau returns a copy of the i-th tableau (1-based), bottom first.
func (g *Game) Tableau(i int) []deck.Card {
	if i < 1 || i > NumTableaus {
		return nil
	}
	return g.tableaus[i-1].Cards()
}

// Foundation returns a copy of the i-th foundation (1-based), bottom first.
func (g *Game) Foundation(i int) []deck.Card {
	if i < 1 || i > NumFoundations {
		return nil
	}
	return g.foundations[i-1].Cards()
}

// HasWon reports whether every foundation holds all 13 cards of its suit.
func (g *Game) HasWon() bool {
	for i := range g.foundations {
		if g.foundations[i].Len() != deck.King {
			return false
		}
	}
	return true
}

// FoundationMatch returns the foundation that would legally accept c.
func (g *Game) FoundationMatch(c deck.Card) (Location, bool) {
	for i := range g.foundations {
		if g.foundations[i].Accepts(c) {
			return Foundation(i + 1), true
		}
	}
	return Location{}, false
}

// Move relocates count cards from one pile to another. It returns false and
// leaves every pile untouched when CanMove rejects the move. A MoveEvent is
// always published; a successful move that uncovers a face-down tableau card
// turns it up and publishes a RevealEvent, and the move completing the
// foundations publishes a WonEvent.
func (g *Game) Move(from Location, count int, to Location) bool {
	if !g.CanMove(from, count, to) {
		g.logger.Debug("illegal move", "from", from.String(), "count", count, "to", to.String())
		g.bus.Publish(MoveEvent{From: from, Count: count, To: to, Success: false})
		return false
	}

	var cards []deck.Card
	switch from.kind {
	case PileWaste:
		c, _ := g.waste.pop()
		cards = []deck.Card{c}
	case PileFoundation:
		c, _ := g.foundations[from.index-1].pop()
		cards = []deck.Card{c}
	case PileTableau:
		cards = g.tableaus[from.index-1].removeTop(count)
	}

	switch to.kind {
	case PileTableau:
		g.tableaus[to.index-1].push(cards...)
	case PileFoundation:
		g.foundations[to.index-1].push(cards[0])
	}

	var revealed deck.Card
	var didReveal bool
	if from.kind == PileTableau {
		revealed, didReveal = g.tableaus[from.index-1].revealTop()
	}

	g.bus.Publish(MoveEvent{From: from, Count: count, To: to, Success: true})
	if didReveal {
		g.bus.Publish(RevealEvent{Tableau: from.index, Card: revealed})
	}
	if !g.won && g.HasWon() {
		g.won = true
		g.logger.Info("game won", "pass", g.pass)
		g.bus.Publish(WonEvent{})
	}
	return true
}

// Draw moves up to DrawCount cards from the stock to the waste, face up,
// publishing a DrawEvent for each. It returns the number of cards moved,
// 0 when the stock is empty.
func (g *Game) Draw() int {
	n := 0
	for n < g.drawCount {
		c, ok := g.stock.pop()
		if !ok {
			break
		}
		c = c.Up()
		g.waste.push(c)
		n++
		g.bus.Publish(DrawEvent{Card: c})
	}
	return n
}

// Restock turns the waste back into the stock for another pass. It is only
// legal with an empty stock, a non-empty waste and a pass limit not yet
// reached. The next pass draws the cards in the same order as the previous one.
func (g *Game) Restock() bool {
	if g.stock.Len() > 0 || g.waste.Len() == 0 || (g.passLimit != 0 && g.pass >= g.passLimit) {
		g.logger.Debug("restock denied", "stock", g.stock.Len(), "waste", g.waste.Len(), "pass", g.pass)
		g.bus.Publish(RestockEvent{Success: false, Pass: g.pass})
		return false
	}
	for {
		c, ok := g.waste.pop()
		if !ok {
			break
		}
		g.stock.push(c.Down())
	}
	g.pass++
	g.bus.Publish(RestockEvent{Success: true, Pass: g.pass})
	return true
}
