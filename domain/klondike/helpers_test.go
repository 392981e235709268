package klondike

import (
	"testing"

	"github.com/luca-patrignani/klondike/domain/deck"
)

func up(s deck.Suit, r uint8) deck.Card {
	return deck.MustCard(s, r).Up()
}

func down(s deck.Suit, r uint8) deck.Card {
	return deck.MustCard(s, r)
}

func fullFoundation(s deck.Suit) []deck.Card {
	cards := make([]deck.Card, 0, deck.King)
	for r := uint8(deck.Ace); r <= deck.King; r++ {
		cards = append(cards, up(s, r))
	}
	return cards
}

// complete moves every card not placed by the test into the stock, face
// down, in deck order.
func complete(l Layout) Layout {
	var used [deck.Size]bool
	for _, c := range l.Cards() {
		used[c.Index()] = true
	}
	for _, c := range deck.New().Cards {
		if !used[c.Index()] {
			l.Stock = append(l.Stock, c)
		}
	}
	return l
}

func newTestGame(t *testing.T, l Layout, opts ...Option) *Game {
	t.Helper()
	g, err := NewGameFromLayout(complete(l), opts...)
	if err != nil {
		t.Fatalf("invalid test layout: %v", err)
	}
	return g
}

func record(g *Game) *[]Event {
	events := &[]Event{}
	g.Subscribe(func(e Event) {
		*events = append(*events, e)
	})
	return events
}

func seededGame(t *testing.T, seed string, opts ...Option) *Game {
	t.Helper()
	g, err := NewShuffledGame(deck.NewSeededSource([]byte(seed)), opts...)
	if err != nil {
		t.Fatal(err)
	}
	return g
}
