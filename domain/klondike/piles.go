package klondike

import "github.com/luca-patrignani/klondike/domain/deck"

// stack is the top-only container shared by stock, waste and foundations.
// The last element is the top.
type stack struct {
	cards []deck.Card
}

func (s *stack) push(c deck.Card) {
	s.cards = append(s.cards, c)
}

func (s *stack) pop() (deck.Card, bool) {
	if len(s.cards) == 0 {
		return deck.Card{}, false
	}
	c := s.cards[len(s.cards)-1]
	s.cards = s.cards[:len(s.cards)-1]
	return c, true
}

func (s *stack) peek() (deck.Card, bool) {
	if len(s.cards) == 0 {
		return deck.Card{}, false
	}
	return s.cards[len(s.cards)-1], true
}

// Len returns the number of cards in the pile.
func (s *stack) Len() int {
	return len(s.cards)
}

// Cards returns a copy of the pile, bottom first.
func (s *stack) Cards() []deck.Card {
	return append([]deck.Card(nil), s.cards...)
}

// StockPile is the face-down draw pile.
type StockPile struct {
	stack
}

// WastePile receives the cards drawn from the stock, face up.
type WastePile struct {
	stack
}

// Top returns the playable waste card.
func (w *WastePile) Top() (deck.Card, bool) {
	return w.peek()
}

// FoundationPile holds an ascending same-suit sequence starting at the ace.
type FoundationPile struct {
	stack
}

// Top returns the highest card on the foundation.
func (f *FoundationPile) Top() (deck.Card, bool) {
	return f.peek()
}

// Accepts reports whether c may be placed on the foundation: an ace on an
// empty pile, otherwise the same suit and the next rank.
func (f *FoundationPile) Accepts(c deck.Card) bool {
	top, ok := f.peek()
	if !ok {
		return c.Rank() == deck.Ace
	}
	return c.Suit() == top.Suit() && c.Rank() == top.Rank()+1
}

// TableauPile is a playing column: a face-down prefix followed by a face-up suffix.
type TableauPile struct {
	cards []deck.Card
}

// Len returns the number of cards in the column.
func (t *TableauPile) Len() int {
	return len(t.cards)
}

// Cards returns a copy of the column, bottom first.
func (t *TableauPile) Cards() []deck.Card {
	return append([]deck.Card(nil), t.cards...)
}

// Top returns the top card of the column.
func (t *TableauPile) Top() (deck.Card, bool) {
	if len(t.cards) == 0 {
		return deck.Card{}, false
	}
	return t.cards[len(t.cards)-1], true
}

// At returns the card at depth n from the top (n=1 is the top card).
func (t *TableauPile) At(n int) (deck.Card, bool) {
	if n < 1 || n > len(t.cards) {
		return deck.Card{}, false
	}
	return t.cards[len(t.cards)-n], true
}

// FirstFaceUp returns the index (from the bottom) of the lowest face-up card,
// or -1 if no card is face up.
func (t *TableauPile) FirstFaceUp() int {
	for i, c := range t.cards {
		if c.FaceUp() {
			return i
		}
	}
	return -1
}

// Accepts reports whether c may be placed on the column: a king on an empty
// column, otherwise the opposite colour and one rank lower than the top card.
func (t *TableauPile) Accepts(c deck.Card) bool {
	top, ok := t.Top()
	if !ok {
		return c.Rank() == deck.King
	}
	return top.FaceUp() && Stacks(c, top)
}

// topRun reports whether the n topmost cards form a face-up, alternating
// colour, strictly descending run.
func (t *TableauPile) topRun(n int) bool {
	if n < 1 || n > len(t.cards) {
		return false
	}
	run := t.cards[len(t.cards)-n:]
	for i, c := range run {
		if !c.FaceUp() {
			return false
		}
		if i > 0 && !Stacks(c, run[i-1]) {
			return false
		}
	}
	return true
}

func (t *TableauPile) push(cards ...deck.Card) {
	t.cards = append(t.cards, cards...)
}

// removeTop detaches the n topmost cards as a unit.
func (t *TableauPile) removeTop(n int) []deck.Card {
	cut := len(t.cards) - n
	run := append([]deck.Card(nil), t.cards[cut:]...)
	t.cards = t.cards[:cut]
	return run
}

// revealTop turns the top card face up and reports whether it was face down.
func (t *TableauPile) revealTop() (deck.Card, bool) {
	if len(t.cards) == 0 {
		return deck.Card{}, false
	}
	top := t.cards[len(t.cards)-1]
	if top.FaceUp() {
		return top, false
	}
	top = top.Up()
	t.cards[len(t.cards)-1] = top
	return top, true
}

// Stacks reports whether card may sit directly on parent in a tableau:
// opposite colours and exactly one rank lower.
func Stacks(card, parent deck.Card) bool {
	return card.Color() != parent.Color() && card.Rank()+1 == parent.Rank()
}
