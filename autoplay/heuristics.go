package autoplay

import (
	"github.com/luca-patrignani/klondike/domain/deck"
	"github.com/luca-patrignani/klondike/domain/klondike"
)

// AutoFoundation moves every tableau top and the waste top that a
// foundation accepts, rescanning until a full scan moves nothing.
// It returns the number of cards moved.
func (p *Player) AutoFoundation() int {
	moved := 0
	for {
		scan := 0
		for i := 1; i <= klondike.NumTableaus; i++ {
			pile := p.game.Tableau(i)
			if len(pile) == 0 {
				continue
			}
			if p.toFoundation(klondike.Tableau(i), pile[len(pile)-1]) {
				scan++
				if p.game.HasWon() {
					return moved + scan
				}
			}
		}
		if top, ok := p.game.WasteTop(); ok && p.toFoundation(klondike.Waste(), top) {
			scan++
		}
		moved += scan
		if scan == 0 || p.game.HasWon() {
			return moved
		}
	}
}

// Consolidate moves the face-up run of a tableau onto another tableau
// whenever one accepts its lowest face-up card, repeating until a full
// sweep moves nothing. A king already at the bottom of its column is left
// alone since moving it uncovers nothing. It returns the number of runs moved.
func (p *Player) Consolidate() int {
	moved := 0
	for progressed := true; progressed; {
		progressed = false
		for i := 1; i <= klondike.NumTableaus; i++ {
			pile := p.game.Tableau(i)
			low := firstFaceUp(pile)
			if low < 0 {
				continue
			}
			c := pile[low]
			if c.Rank() == deck.King && low == 0 {
				continue
			}
			target, ok := p.findTarget(c, i)
			if !ok {
				continue
			}
			if p.move(klondike.Tableau(i), len(pile)-low, klondike.Tableau(target)) {
				moved++
				progressed = true
				break
			}
		}
	}
	return moved
}

// PlayWaste plays the waste top onto a tableau when that placement also
// prepares a future consolidation (a rider exists), otherwise onto a
// foundation when one accepts it. It repeats with each newly exposed waste
// card and returns the number of cards played.
func (p *Player) PlayWaste() int {
	played := 0
	for {
		c, ok := p.game.WasteTop()
		if !ok {
			return played
		}
		if target, ok := p.findTarget(c, 0); ok {
			if _, ok := p.findRider(c, target); ok && p.move(klondike.Waste(), 1, klondike.Tableau(target)) {
				played++
				continue
			}
		}
		if !p.toFoundation(klondike.Waste(), c) {
			return played
		}
		played++
		if p.game.HasWon() {
			return played
		}
	}
}

func (p *Player) toFoundation(from klondike.Location, c deck.Card) bool {
	if !c.FaceUp() {
		return false
	}
	to, ok := p.game.FoundationMatch(c)
	if !ok {
		return false
	}
	return p.move(from, 1, to)
}

// findTarget returns the first tableau (1-based), other than ignore, that
// accepts c: an empty column for a king, otherwise a face-up top of the
// opposite colour one rank above c.
func (p *Player) findTarget(c deck.Card, ignore int) (int, bool) {
	for i := 1; i <= klondike.NumTableaus; i++ {
		if i == ignore {
			continue
		}
		pile := p.game.Tableau(i)
		if len(pile) == 0 {
			if c.Rank() == deck.King {
				return i, true
			}
			continue
		}
		top := pile[len(pile)-1]
		if top.FaceUp() && klondike.Stacks(c, top) {
			return i, true
		}
	}
	return 0, false
}

// findRider looks for a tableau whose lowest face-up card could later be
// stacked under c once c sits on target. Among candidates the smallest rank
// gap wins; a candidate is skipped when another column already offers it a
// closer horse.
func (p *Player) findRider(c deck.Card, target int) (int, bool) {
	best, bestGap := 0, deck.King+1
	for i := 1; i <= klondike.NumTableaus; i++ {
		if i == target {
			continue
		}
		pile := p.game.Tableau(i)
		low := firstFaceUp(pile)
		if low < 0 {
			continue
		}
		rider := pile[low]
		if rider.Rank() >= c.Rank() || !compatible(c, rider) {
			continue
		}
		gap := int(c.Rank() - rider.Rank())
		if p.hasCloserHorse(rider, gap, i, target) {
			continue
		}
		if gap < bestGap {
			best, bestGap = i, gap
		}
	}
	return best, best != 0
}

// hasCloserHorse reports whether a column other than the rider's own and
// the target has a lowest face-up card that could carry rider with a
// smaller gap.
func (p *Player) hasCloserHorse(rider deck.Card, gap, riderPile, target int) bool {
	for i := 1; i <= klondike.NumTableaus; i++ {
		if i == riderPile || i == target {
			continue
		}
		pile := p.game.Tableau(i)
		low := firstFaceUp(pile)
		if low < 0 {
			continue
		}
		horse := pile[low]
		if horse.Rank() <= rider.Rank() || !compatible(horse, rider) {
			continue
		}
		if int(horse.Rank()-rider.Rank()) < gap {
			return true
		}
	}
	return false
}

// compatible reports whether low could end up in the alternating run
// descending from high: odd rank gaps need opposite colours, even gaps
// the same colour.
func compatible(high, low deck.Card) bool {
	gap := int(high.Rank()) - int(low.Rank())
	if gap <= 0 {
		return false
	}
	if gap%2 == 1 {
		return high.Color() != low.Color()
	}
	return high.Color() == low.Color()
}

func firstFaceUp(pile []deck.Card) int {
	for i, c := range pile {
		if c.FaceUp() {
			return i
		}
	}
	return -1
}
