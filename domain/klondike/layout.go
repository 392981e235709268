package klondike

import (
	"errors"
	"fmt"

	"github.com/luca-patrignani/klondike/domain/deck"
)

// ErrInvalidLayout is returned when a deck or layout breaks a Klondike invariant.
var ErrInvalidLayout = errors.New("invalid layout")

// Layout is a detached copy of every pile, bottom card first. It is used to
// render a game, to build synthetic positions and to check conservation.
type Layout struct {
	Stock       []deck.Card
	Waste       []deck.Card
	Foundations [NumFoundations][]deck.Card
	Tableaus    [NumTableaus][]deck.Card
	Pass        int
}

// Layout returns a snapshot of the game's piles.
func (g *Game) Layout() Layout {
	l := Layout{
		Stock: g.stock.Cards(),
		Waste: g.waste.Cards(),
		Pass:  g.pass,
	}
	for i := range g.foundations {
		l.Foundations[i] = g.foundations[i].Cards()
	}
	for i := range g.tableaus {
		l.Tableaus[i] = g.tableaus[i].Cards()
	}
	return l
}

// Cards returns every card of the layout, in pile order.
func (l Layout) Cards() []deck.Card {
	cards := make([]deck.Card, 0, deck.Size)
	cards = append(cards, l.Stock...)
	cards = append(cards, l.Waste...)
	for _, f := range l.Foundations {
		cards = append(cards, f...)
	}
	for _, t := range l.Tableaus {
		cards = append(cards, t...)
	}
	return cards
}

// Validate checks the invariants every reachable position satisfies:
// each of the 52 cards exactly once, face-down stock, face-up waste,
// foundations holding a same-suit ace-up prefix, and tableaus made of a
// face-down prefix under a face-up suffix with a face-up top.
func (l Layout) Validate() error {
	if err := validateDeck(l.Cards()); err != nil {
		return err
	}
	for _, c := range l.Stock {
		if c.FaceUp() {
			return fmt.Errorf("%w: stock card %s is face up", ErrInvalidLayout, c)
		}
	}
	for _, c := range l.Waste {
		if !c.FaceUp() {
			return fmt.Errorf("%w: waste card %s is face down", ErrInvalidLayout, c)
		}
	}
	for i, f := range l.Foundations {
		for k, c := range f {
			if !c.FaceUp() || c.Rank() != uint8(k+1) || c.Suit() != f[0].Suit() {
				return fmt.Errorf("%w: foundation %d has %s at position %d", ErrInvalidLayout, i+1, c, k)
			}
		}
	}
	for i, t := range l.Tableaus {
		if len(t) == 0 {
			continue
		}
		if !t[len(t)-1].FaceUp() {
			return fmt.Errorf("%w: tableau %d top card is face down", ErrInvalidLayout, i+1)
		}
		up := false
		for _, c := range t {
			if up && !c.FaceUp() {
				return fmt.Errorf("%w: tableau %d has face-down %s above a face-up card", ErrInvalidLayout, i+1, c)
			}
			up = up || c.FaceUp()
		}
	}
	if l.Pass < 0 {
		return fmt.Errorf("%w: negative pass %d", ErrInvalidLayout, l.Pass)
	}
	return nil
}

// NewGameFromLayout builds a game positioned at l after validating it.
// A zero Pass starts at the first pass.
func NewGameFromLayout(l Layout, opts ...Option) (*Game, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	g, err := newGame(opts)
	if err != nil {
		return nil, err
	}
	g.stock.cards = append([]deck.Card(nil), l.Stock...)
	g.waste.cards = append([]deck.Card(nil), l.Waste...)
	for i := range l.Foundations {
		g.foundations[i].cards = append([]deck.Card(nil), l.Foundations[i]...)
	}
	for i := range l.Tableaus {
		g.tableaus[i].cards = append([]deck.Card(nil), l.Tableaus[i]...)
	}
	if l.Pass > 0 {
		g.pass = l.Pass
	}
	g.won = g.HasWon()
	return g, nil
}

// validateDeck checks that cards holds each of the 52 cards exactly once.
func validateDeck(cards []deck.Card) error {
	if len(cards) != deck.Size {
		return fmt.Errorf("%w: expected %d cards, got %d", ErrInvalidLayout, deck.Size, len(cards))
	}
	var seen [deck.Size]bool
	for _, c := range cards {
		if c.IsZero() {
			return fmt.Errorf("%w: zero card", ErrInvalidLayout)
		}
		if seen[c.Index()] {
			return fmt.Errorf("%w: duplicate card %s", ErrInvalidLayout, c)
		}
		seen[c.Index()] = true
	}
	return nil
}
