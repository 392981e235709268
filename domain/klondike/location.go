package klondike

import (
	"errors"
	"fmt"
	"strconv"
)

// PileKind identifies the role of a pile.
type PileKind uint8

const (
	pileInvalid PileKind = iota
	PileStock
	PileWaste
	PileTableau
	PileFoundation
)

// Pile counts of a Klondike layout.
const (
	NumTableaus    = 7
	NumFoundations = 4
)

// ErrInvalidLocation is returned for unknown pile tags or out-of-range indices.
var ErrInvalidLocation = errors.New("invalid location")

func (k PileKind) String() string {
	switch k {
	case PileStock:
		return "stock"
	case PileWaste:
		return "waste"
	case PileTableau:
		return "tableau"
	case PileFoundation:
		return "foundation"
	default:
		return "invalid"
	}
}

// Location addresses one of the 13 piles. The zero Location is invalid and
// is rejected by every Game operation.
type Location struct {
	kind  PileKind
	index int // 1-based for tableaus and foundations, 0 otherwise
}

// NewLocation validates the pile kind and index and builds a Location.
// Tableau indices range over 1..7, foundation indices over 1..4; stock and
// waste take index 0.
func NewLocation(kind PileKind, index int) (Location, error) {
	switch kind {
	case PileStock, PileWaste:
		if index != 0 {
			return Location{}, fmt.Errorf("%w: %s takes no index, got %d", ErrInvalidLocation, kind, index)
		}
	case PileTableau:
		if index < 1 || index > NumTableaus {
			return Location{}, fmt.Errorf("%w: tableau %d out of range 1-%d", ErrInvalidLocation, index, NumTableaus)
		}
	case PileFoundation:
		if index < 1 || index > NumFoundations {
			return Location{}, fmt.Errorf("%w: foundation %d out of range 1-%d", ErrInvalidLocation, index, NumFoundations)
		}
	default:
		return Location{}, fmt.Errorf("%w: unknown pile kind %d", ErrInvalidLocation, kind)
	}
	return Location{kind: kind, index: index}, nil
}

// Stock returns the location of the stock.
func Stock() Location { return Location{kind: PileStock} }

// Waste returns the location of the waste.
func Waste() Location { return Location{kind: PileWaste} }

// Tableau returns the location of the i-th tableau (1-based). An out-of-range
// index yields the invalid zero Location.
func Tableau(i int) Location {
	l, _ := NewLocation(PileTableau, i)
	return l
}

// Foundation returns the location of the i-th foundation (1-based). An
// out-of-range index yields the invalid zero Location.
func Foundation(i int) Location {
	l, _ := NewLocation(PileFoundation, i)
	return l
}

// Kind returns the pile kind.
func (l Location) Kind() PileKind { return l.kind }

// Index returns the 1-based pile index, 0 for stock and waste.
func (l Location) Index() int { return l.index }

// Valid reports whether l was built from a valid kind and index.
func (l Location) Valid() bool { return l.kind != pileInvalid }

// String returns the short tag of the location: "s", "w", "t1".."t7", "f1".."f4".
func (l Location) String() string {
	switch l.kind {
	case PileStock:
		return "s"
	case PileWaste:
		return "w"
	case PileTableau:
		return "t" + strconv.Itoa(l.index)
	case PileFoundation:
		return "f" + strconv.Itoa(l.index)
	default:
		return "?"
	}
}

// MarshalText encodes the location as its short tag. Invalid locations
// encode as "?" so rejected moves can still be recorded.
func (l Location) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText decodes a short tag produced by MarshalText.
func (l *Location) UnmarshalText(text []byte) error {
	parsed, err := ParseLocation(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLocation parses a short tag such as "w", "s", "t3" or "f1".
func ParseLocation(tag string) (Location, error) {
	if tag == "" {
		return Location{}, fmt.Errorf("%w: empty tag", ErrInvalidLocation)
	}
	var kind PileKind
	switch tag[0] {
	case 's':
		kind = PileStock
	case 'w':
		kind = PileWaste
	case 't':
		kind = PileTableau
	case 'f':
		kind = PileFoundation
	default:
		return Location{}, fmt.Errorf("%w: unknown pile %q", ErrInvalidLocation, tag)
	}
	index := 0
	if len(tag) > 1 {
		n, err := strconv.Atoi(tag[1:])
		if err != nil {
			return Location{}, fmt.Errorf("%w: bad index in %q", ErrInvalidLocation, tag)
		}
		index = n
	}
	return NewLocation(kind, index)
}
