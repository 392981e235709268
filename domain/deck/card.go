package deck

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
)

// Suit of a playing card.
type Suit uint8

// Card suits, in deck construction order.
const (
	Spade   Suit = iota // ♠ (black)
	Heart               // ♥ (red)
	Club                // ♣ (black)
	Diamond             // ♦ (red)
)

// Suits lists the four suits in deck construction order.
var Suits = [4]Suit{Spade, Heart, Club, Diamond}

// Card rank constants for the ace and face cards
const (
	Ace   = 1  // A
	Jack  = 11 // J
	Queen = 12 // Q
	King  = 13 // K
)

// FaceDown is the display character for hidden cards
const FaceDown = "▓"

// Color is the colour of a suit. Klondike tableaus alternate colours.
type Color uint8

const (
	Black Color = iota
	Red
)

// Color returns Red for hearts and diamonds, Black otherwise.
func (s Suit) Color() Color {
	if s == Heart || s == Diamond {
		return Red
	}
	return Black
}

func (s Suit) String() string {
	switch s {
	case Spade:
		return "♠"
	case Heart:
		return "♥"
	case Club:
		return "♣"
	case Diamond:
		return "♦"
	default:
		return "?"
	}
}

// Card represents a playing card. Its identity is the (suit, rank) pair;
// only the face-up flag changes while the card travels between piles.
type Card struct {
	suit   Suit
	rank   uint8
	faceUp bool
}

// NewCard creates a new face-down Card with validation.
//
// Parameters:
//   - suit: Spade, Heart, Club or Diamond
//   - rank: 1-13 (Ace=1, 2-10=face value, Jack=11, Queen=12, King=13)
//
// Returns the Card or an error if suit or rank is invalid.
func NewCard(suit Suit, rank uint8) (Card, error) {
	if suit > Diamond || rank == 0 || rank > King {
		return Card{}, fmt.Errorf("invalid card %d, %d", suit, rank)
	}
	return Card{suit: suit, rank: rank}, nil
}

// MustCard is like NewCard but panics on invalid input. Intended for tables and tests.
func MustCard(suit Suit, rank uint8) Card {
	c, err := NewCard(suit, rank)
	if err != nil {
		panic(err)
	}
	return c
}

// Suit returns the suit of the Card.
func (c Card) Suit() Suit {
	return c.suit
}

// Rank returns the rank of the Card (1-13: ace through king).
func (c Card) Rank() uint8 {
	return c.rank
}

// Color returns the colour of the Card's suit.
func (c Card) Color() Color {
	return c.suit.Color()
}

// FaceUp reports whether the card is turned face up.
func (c Card) FaceUp() bool {
	return c.faceUp
}

// Up returns a face-up copy of the card.
func (c Card) Up() Card {
	c.faceUp = true
	return c
}

// Down returns a face-down copy of the card.
func (c Card) Down() Card {
	c.faceUp = false
	return c
}

// Same reports whether both cards have the same identity, regardless of orientation.
func (c Card) Same(o Card) bool {
	return c.suit == o.suit && c.rank == o.rank
}

// Index returns a dense identifier in [0,52) following deck construction order.
func (c Card) Index() int {
	return int(c.suit)*King + int(c.rank) - 1
}

// IsZero reports whether c is the zero Card, which is not a valid playing card.
func (c Card) IsZero() bool {
	return c.rank == 0
}

// String returns the rank abbreviation followed by the suit symbol, e.g. "A♠" or "10♥".
// The orientation is ignored.
func (c Card) String() string {
	if c.rank == 0 {
		return "?"
	}
	return rankString(c.rank) + c.suit.String()
}

// MarshalText encodes the card as its String form.
func (c Card) MarshalText() ([]byte, error) {
	if c.IsZero() {
		return nil, fmt.Errorf("cannot encode zero card")
	}
	return []byte(c.String()), nil
}

// Styled returns the terminal rendering of the card: FaceDown when hidden,
// otherwise the card coloured by suit.
func (c Card) Styled() string {
	if !c.faceUp {
		return FaceDown
	}
	if c.Color() == Red {
		return pterm.LightRed(c.String())
	}
	return pterm.White(c.String())
}

func rankString(rank uint8) string {
	switch rank {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return strconv.Itoa(int(rank))
	}
}
