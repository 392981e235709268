package deck

// Size is the number of cards in a standard deck.
const Size = 52

// Deck is an ordered sequence of the 52 distinct cards.
// The last element is the top of the deck.
type Deck struct {
	Cards []Card
}

// New builds a face-down deck in a fixed order: suits outer loop
// (Spade, Heart, Club, Diamond), ranks inner loop (Ace..King).
// The fixed order is what makes a seeded shuffle reproducible.
func New() Deck {
	cards := make([]Card, 0, Size)
	for _, s := range Suits {
		for r := uint8(Ace); r <= King; r++ {
			cards = append(cards, Card{suit: s, rank: r})
		}
	}
	return Deck{Cards: cards}
}

// Shuffle permutes the deck in place with Fisher-Yates, walking i from the
// last index down to 1 and swapping with j drawn uniformly from [0,i].
func (d *Deck) Shuffle(src Source) {
	for i := len(d.Cards) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// Len returns the number of cards left in the deck.
func (d *Deck) Len() int {
	return len(d.Cards)
}

// Pop removes and returns the top card. ok is false when the deck is empty.
func (d *Deck) Pop() (c Card, ok bool) {
	if len(d.Cards) == 0 {
		return Card{}, false
	}
	c = d.Cards[len(d.Cards)-1]
	d.Cards = d.Cards[:len(d.Cards)-1]
	return c, true
}
