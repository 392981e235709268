package klondike

import "github.com/luca-patrignani/klondike/domain/deck"

// CanMove reports whether Move(from, count, to) would succeed. It never
// mutates the game. The checks run in this order:
//
//  1. to is a valid tableau (1-7) or foundation (1-4);
//  2. from is a valid waste, tableau or foundation; waste and foundation
//     sources move exactly one card, tableau sources at least one, and a
//     foundation receives exactly one card;
//  3. the card being moved (the waste or foundation top, or the tableau
//     card count deep) exists and is face up;
//  4. a tableau destination takes a king when empty, otherwise the opposite
//     colour one rank below its top;
//  5. a foundation destination takes an ace when empty, otherwise the same
//     suit one rank above its top;
//  6. a multi-card tableau move carries a contiguous alternating-colour,
//     strictly descending run.
func (g *Game) CanMove(from Location, count int, to Location) bool {
	if to.kind != PileTableau && to.kind != PileFoundation {
		return false
	}

	switch from.kind {
	case PileWaste, PileFoundation:
		if count != 1 {
			return false
		}
	case PileTableau:
		if count < 1 {
			return false
		}
	default:
		return false
	}
	if to.kind == PileFoundation && count != 1 {
		return false
	}
	if from == to {
		return false
	}

	card, ok := g.movingCard(from, count)
	if !ok || !card.FaceUp() {
		return false
	}

	switch to.kind {
	case PileTableau:
		if !g.tableaus[to.index-1].Accepts(card) {
			return false
		}
	case PileFoundation:
		if !g.foundations[to.index-1].Accepts(card) {
			return false
		}
	}

	if from.kind == PileTableau && count > 1 && !g.tableaus[from.index-1].topRun(count) {
		return false
	}
	return true
}

// movingCard returns the card that lands on the destination: the waste or
// foundation top, or the tableau card count deep.
func (g *Game) movingCard(from Location, count int) (deck.Card, bool) {
	switch from.kind {
	case PileWaste:
		return g.waste.Top()
	case PileFoundation:
		return g.foundations[from.index-1].Top()
	case PileTableau:
		return g.tableaus[from.index-1].At(count)
	}
	return deck.Card{}, false
}
