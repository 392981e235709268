package autoplay

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/luca-patrignani/klondike/domain/deck"
	"github.com/luca-patrignani/klondike/domain/klondike"
)

func up(s deck.Suit, r uint8) deck.Card {
	return deck.MustCard(s, r).Up()
}

func down(s deck.Suit, r uint8) deck.Card {
	return deck.MustCard(s, r)
}

// newTestGame places the remaining cards face down in the stock, in
// deck order, and builds the game.
func newTestGame(t *testing.T, l klondike.Layout, opts ...klondike.Option) *klondike.Game {
	t.Helper()
	var used [deck.Size]bool
	for _, c := range l.Cards() {
		used[c.Index()] = true
	}
	for _, c := range deck.New().Cards {
		if !used[c.Index()] {
			l.Stock = append(l.Stock, c)
		}
	}
	g, err := klondike.NewGameFromLayout(l, opts...)
	if err != nil {
		t.Fatalf("invalid test layout: %v", err)
	}
	return g
}

func TestAutoFoundation(t *testing.T) {
	l := klondike.Layout{}
	l.Tableaus[0] = []deck.Card{down(deck.Club, 5), up(deck.Spade, deck.Ace)}
	l.Tableaus[1] = []deck.Card{up(deck.Spade, 2)}
	l.Waste = []deck.Card{up(deck.Heart, deck.Ace)}
	g := newTestGame(t, l)
	p := New(g)
	if n := p.AutoFoundation(); n != 3 {
		t.Fatalf("expected 3 foundation moves, got %d", n)
	}
	if len(g.Foundation(1)) != 2 || len(g.Foundation(2)) != 1 {
		t.Fatalf("unexpected foundations %v %v", g.Foundation(1), g.Foundation(2))
	}
	if got := g.Tableau(1); len(got) != 1 || !got[0].FaceUp() {
		t.Fatalf("expected revealed 5♣ on tableau 1, got %v", got)
	}
	if p.AutoFoundation() != 0 {
		t.Fatal("second call should find nothing")
	}
}

func TestAutoFoundationRescans(t *testing.T) {
	// 2♦ only becomes playable after A♦ from a later column
	l := klondike.Layout{}
	l.Tableaus[0] = []deck.Card{up(deck.Diamond, 2)}
	l.Tableaus[4] = []deck.Card{up(deck.Diamond, deck.Ace)}
	g := newTestGame(t, l)
	if n := New(g).AutoFoundation(); n != 2 {
		t.Fatalf("expected 2 moves over two scans, got %d", n)
	}
}

func TestConsolidateUncoversCards(t *testing.T) {
	l := klondike.Layout{}
	l.Tableaus[0] = []deck.Card{down(deck.Diamond, 3), up(deck.Heart, 7)}
	l.Tableaus[1] = []deck.Card{up(deck.Club, 8)}
	g := newTestGame(t, l)
	if n := New(g).Consolidate(); n != 1 {
		t.Fatalf("expected 1 consolidation, got %d", n)
	}
	if got := g.Tableau(2); len(got) != 2 || got[1] != up(deck.Heart, 7) {
		t.Fatalf("expected 7♥ on 8♣, got %v", got)
	}
	if got := g.Tableau(1); len(got) != 1 || got[0] != up(deck.Diamond, 3) {
		t.Fatalf("expected revealed 3♦, got %v", got)
	}
}

func TestConsolidateChainsAfterReveal(t *testing.T) {
	l := klondike.Layout{}
	// moving 5♠ reveals 9♥, which then fits on 10♣
	l.Tableaus[0] = []deck.Card{down(deck.Heart, 9), up(deck.Spade, 5)}
	l.Tableaus[1] = []deck.Card{up(deck.Diamond, 6)}
	l.Tableaus[2] = []deck.Card{down(deck.Spade, 2), up(deck.Club, 10)}
	g := newTestGame(t, l)
	if n := New(g).Consolidate(); n != 2 {
		t.Fatalf("expected 2 consolidations, got %d", n)
	}
	if len(g.Tableau(1)) != 0 {
		t.Fatalf("expected tableau 1 emptied, got %v", g.Tableau(1))
	}
}

func TestConsolidateKings(t *testing.T) {
	l := klondike.Layout{}
	l.Tableaus[0] = []deck.Card{up(deck.Heart, deck.King)}
	l.Tableaus[1] = []deck.Card{down(deck.Club, 2), up(deck.Spade, deck.King)}
	l.Tableaus[3] = []deck.Card{up(deck.Club, 4)}
	l.Tableaus[4] = []deck.Card{up(deck.Club, 5)}
	l.Tableaus[5] = []deck.Card{up(deck.Club, 6)}
	l.Tableaus[6] = []deck.Card{up(deck.Club, 7)}
	g := newTestGame(t, l)
	if n := New(g).Consolidate(); n != 1 {
		t.Fatalf("expected only K♠ to move, got %d moves", n)
	}
	if got := g.Tableau(3); len(got) != 1 || got[0] != up(deck.Spade, deck.King) {
		t.Fatalf("expected K♠ in the empty column, got %v", got)
	}
	if got := g.Tableau(1); len(got) != 1 || got[0] != up(deck.Heart, deck.King) {
		t.Fatalf("K♥ at the bottom must stay, got %v", got)
	}
}

func TestPlayWasteNeedsRider(t *testing.T) {
	build := func(rider []deck.Card, horse []deck.Card) *klondike.Game {
		l := klondike.Layout{}
		l.Tableaus[0] = []deck.Card{up(deck.Spade, 10)}
		l.Tableaus[1] = rider
		l.Tableaus[2] = horse
		l.Waste = []deck.Card{up(deck.Spade, 2), up(deck.Heart, 9)}
		return newTestGame(t, l)
	}

	t.Run("rider", func(t *testing.T) {
		g := build([]deck.Card{down(deck.Diamond, 4), up(deck.Club, 8)}, nil)
		if n := New(g).PlayWaste(); n != 1 {
			t.Fatalf("expected 9♥ played, got %d", n)
		}
		if got := g.Tableau(1); len(got) != 2 || got[1] != up(deck.Heart, 9) {
			t.Fatalf("expected 9♥ on 10♠, got %v", got)
		}
	})

	t.Run("incompatible colour", func(t *testing.T) {
		g := build([]deck.Card{down(deck.Diamond, 4), up(deck.Heart, 8)}, nil)
		if n := New(g).PlayWaste(); n != 0 {
			t.Fatalf("expected no play, got %d", n)
		}
		if top, _ := g.WasteTop(); top != up(deck.Heart, 9) {
			t.Fatalf("expected 9♥ to stay on the waste, got %s", top)
		}
	})

	t.Run("top card is not a horse", func(t *testing.T) {
		// 8♠ sits on 9♦, whose gap to 6♣ is no closer than 9♥'s
		g := build(
			[]deck.Card{down(deck.Diamond, 4), up(deck.Club, 6)},
			[]deck.Card{up(deck.Diamond, 9), up(deck.Spade, 8)},
		)
		if n := New(g).PlayWaste(); n != 1 {
			t.Fatalf("expected 9♥ played, got %d", n)
		}
		if got := g.Tableau(1); len(got) != 2 || got[1] != up(deck.Heart, 9) {
			t.Fatalf("expected 9♥ on 10♠, got %v", got)
		}
	})

	t.Run("foundation fallback", func(t *testing.T) {
		l := klondike.Layout{}
		l.Foundations[0] = []deck.Card{up(deck.Club, deck.Ace)}
		l.Waste = []deck.Card{up(deck.Diamond, deck.Ace), up(deck.Club, 2)}
		g := newTestGame(t, l)
		if n := New(g).PlayWaste(); n != 2 {
			t.Fatalf("expected 2♣ then A♦ on the foundations, got %d", n)
		}
		if g.WasteLen() != 0 {
			t.Fatalf("expected empty waste, got %d", g.WasteLen())
		}
	})
}

func TestFindRiderPrefersSmallestGap(t *testing.T) {
	l := klondike.Layout{}
	l.Tableaus[0] = []deck.Card{up(deck.Spade, 10)}
	l.Tableaus[1] = []deck.Card{up(deck.Diamond, 5)}
	l.Tableaus[2] = []deck.Card{up(deck.Spade, 8)}
	g := newTestGame(t, l)
	rider, ok := New(g).findRider(up(deck.Heart, 9), 1)
	if !ok || rider != 3 {
		t.Fatalf("expected 8♠ on tableau 3 as the rider, got %d %v", rider, ok)
	}
}

func TestHasCloserHorseUsesLowestFaceUpCard(t *testing.T) {
	build := func(horse []deck.Card) *klondike.Game {
		l := klondike.Layout{}
		l.Tableaus[0] = []deck.Card{up(deck.Spade, 10)}
		l.Tableaus[1] = []deck.Card{down(deck.Diamond, 4), up(deck.Club, 6)}
		l.Tableaus[2] = horse
		return newTestGame(t, l)
	}
	rider := up(deck.Club, 6)

	// 8♠ carries 6♣ two ranks down, closer than 9♥ at three
	g := build([]deck.Card{down(deck.Heart, 3), up(deck.Spade, 8), up(deck.Heart, 7)})
	if !New(g).hasCloserHorse(rider, 3, 2, 1) {
		t.Fatal("expected 8♠ to be a closer horse")
	}

	// only 9♦ counts, and its gap equals the rider's
	g = build([]deck.Card{up(deck.Diamond, 9), up(deck.Spade, 8)})
	if New(g).hasCloserHorse(rider, 3, 2, 1) {
		t.Fatal("8♠ above 9♦ must not count as a horse")
	}
}

func TestCompatible(t *testing.T) {
	cases := []struct {
		high, low deck.Card
		want      bool
	}{
		{up(deck.Heart, 9), up(deck.Club, 8), true},
		{up(deck.Heart, 9), up(deck.Diamond, 8), false},
		{up(deck.Heart, 9), up(deck.Diamond, 7), true},
		{up(deck.Heart, 9), up(deck.Spade, 7), false},
		{up(deck.Heart, 9), up(deck.Spade, 9), false},
		{up(deck.Heart, 7), up(deck.Spade, 9), false},
	}
	for _, tc := range cases {
		if got := compatible(tc.high, tc.low); got != tc.want {
			t.Errorf("compatible(%s, %s) = %v, want %v", tc.high, tc.low, got, tc.want)
		}
	}
}

func TestPlayWinsNearlyFinishedGame(t *testing.T) {
	l := klondike.Layout{}
	l.Foundations[0] = allOf(deck.Spade)
	l.Foundations[1] = allOf(deck.Heart)
	l.Foundations[2] = allOf(deck.Club)
	l.Foundations[3] = allOf(deck.Diamond)[:9]
	l.Tableaus[0] = []deck.Card{up(deck.Diamond, deck.King)}
	l.Tableaus[1] = []deck.Card{up(deck.Diamond, deck.Queen)}
	l.Tableaus[2] = []deck.Card{up(deck.Diamond, deck.Jack)}
	l.Tableaus[3] = []deck.Card{up(deck.Diamond, 10)}
	g := newTestGame(t, l)
	res, err := New(g).Play(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != Won || res.Moves != 4 || res.Draws != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	if !g.HasWon() {
		t.Fatal("game should be won")
	}
}

func TestPlayForfeitsWhenStuck(t *testing.T) {
	l := klondike.Layout{}
	// only red cards are exposed, so no tableau accepts another
	l.Tableaus[0] = []deck.Card{down(deck.Spade, deck.Ace), up(deck.Heart, 5)}
	l.Tableaus[1] = []deck.Card{down(deck.Heart, deck.Ace), up(deck.Diamond, 5)}
	l.Tableaus[2] = []deck.Card{down(deck.Club, deck.Ace), up(deck.Heart, 4)}
	l.Tableaus[3] = []deck.Card{down(deck.Diamond, deck.Ace), up(deck.Diamond, 4)}
	l.Tableaus[4] = []deck.Card{down(deck.Spade, 4), up(deck.Heart, 3)}
	l.Tableaus[5] = []deck.Card{down(deck.Club, 4), up(deck.Diamond, 3)}
	l.Tableaus[6] = []deck.Card{down(deck.Diamond, 2), up(deck.Heart, 2)}
	// every other card sits face up in the waste, where nothing can be played
	l = withWaste(l)
	g := newTestGame(t, l)
	res, err := New(g).Play(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != Forfeit || res.Moves != 0 || res.Restocks != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestPlayRespectsPassLimit(t *testing.T) {
	g, err := klondike.NewShuffledGame(deck.NewSeededSource([]byte("pass-limit")), klondike.WithPassLimit(1))
	if err != nil {
		t.Fatal(err)
	}
	res, err := New(g).Play(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Restocks != 0 || res.FinalPass != 1 {
		t.Fatalf("a pass limit of 1 forbids restocking, got %+v", res)
	}
	if res.Outcome != Won && res.Outcome != Forfeit {
		t.Fatalf("unexpected outcome %s", res.Outcome)
	}
}

func TestPlayCancelled(t *testing.T) {
	g, err := klondike.NewShuffledGame(deck.NewSeededSource([]byte("cancel")))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := New(g).Play(ctx)
	if !errors.Is(err, context.Canceled) || res.Outcome != Aborted {
		t.Fatalf("expected cancellation, got %+v %v", res, err)
	}
}

// loopingGame offers exactly one move per pass and never ends.
type loopingGame struct {
	stock, waste, pass int
	movedThisPass      bool
}

func (g *loopingGame) Move(klondike.Location, int, klondike.Location) bool {
	g.movedThisPass = true
	return true
}

func (g *loopingGame) Draw() int {
	if g.stock == 0 {
		return 0
	}
	g.stock--
	g.waste++
	return 1
}

func (g *loopingGame) Restock() bool {
	g.stock, g.waste = g.waste, 0
	g.pass++
	g.movedThisPass = false
	return true
}

func (g *loopingGame) FoundationMatch(deck.Card) (klondike.Location, bool) {
	return klondike.Foundation(1), !g.movedThisPass && g.waste > 0
}

func (g *loopingGame) HasWon() bool                { return false }
func (g *loopingGame) Tableau(int) []deck.Card     { return nil }
func (g *loopingGame) WasteLen() int               { return g.waste }
func (g *loopingGame) StockLen() int               { return g.stock }
func (g *loopingGame) Pass() int                   { return g.pass }
func (g *loopingGame) WasteTop() (deck.Card, bool) { return up(deck.Spade, 5), g.waste > 0 }

func TestPlayRunawayCeiling(t *testing.T) {
	g := &loopingGame{stock: 5, pass: 1}
	res, err := New(g, WithMaxPasses(3)).Play(context.Background())
	if !errors.Is(err, ErrRunaway) {
		t.Fatalf("expected ErrRunaway, got %v", err)
	}
	if res.Outcome != Aborted || g.pass != 3 {
		t.Fatalf("expected abort on pass 3, got %+v (pass %d)", res, g.pass)
	}
}

func TestPlayIsDeterministic(t *testing.T) {
	for _, drawCount := range []int{1, 3} {
		for seed := 0; seed < 5; seed++ {
			name := fmt.Sprintf("draw%d-seed%d", drawCount, seed)
			t.Run(name, func(t *testing.T) {
				movesA, resA, errA := autoplaySeed(t, name, drawCount)
				movesB, resB, errB := autoplaySeed(t, name, drawCount)
				if resA != resB || errors.Is(errA, ErrRunaway) != errors.Is(errB, ErrRunaway) {
					t.Fatalf("different outcomes: %+v/%v vs %+v/%v", resA, errA, resB, errB)
				}
				if len(movesA) != len(movesB) {
					t.Fatalf("different move counts: %d vs %d", len(movesA), len(movesB))
				}
				for i := range movesA {
					if movesA[i] != movesB[i] {
						t.Fatalf("move %d differs: %v vs %v", i, movesA[i], movesB[i])
					}
				}
			})
		}
	}
}

func autoplaySeed(t *testing.T, seed string, drawCount int) ([]klondike.MoveEvent, Result, error) {
	t.Helper()
	g, err := klondike.NewShuffledGame(deck.NewSeededSource([]byte(seed)), klondike.WithDrawCount(drawCount))
	if err != nil {
		t.Fatal(err)
	}
	var moves []klondike.MoveEvent
	g.Subscribe(func(e klondike.Event) {
		if m, ok := e.(klondike.MoveEvent); ok {
			if !m.Success {
				t.Errorf("autoplayer attempted an illegal move %+v", m)
			}
			moves = append(moves, m)
		}
	})
	res, err := New(g).Play(context.Background())
	if err != nil && !errors.Is(err, ErrRunaway) {
		t.Fatal(err)
	}
	if verr := g.Layout().Validate(); verr != nil {
		t.Fatal(verr)
	}
	if res.Moves != len(moves) {
		t.Fatalf("result counts %d moves, bus saw %d", res.Moves, len(moves))
	}
	return moves, res, err
}

func allOf(s deck.Suit) []deck.Card {
	cards := make([]deck.Card, 0, deck.King)
	for r := uint8(deck.Ace); r <= deck.King; r++ {
		cards = append(cards, up(s, r))
	}
	return cards
}

// withWaste puts every card not yet placed face up into the waste.
func withWaste(l klondike.Layout) klondike.Layout {
	var used [deck.Size]bool
	for _, c := range l.Cards() {
		used[c.Index()] = true
	}
	for _, c := range deck.New().Cards {
		if !used[c.Index()] {
			l.Waste = append(l.Waste, c.Up())
		}
	}
	return l
}
