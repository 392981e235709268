package scoring

import (
	"sync"

	"github.com/luca-patrignani/klondike/domain/klondike"
)

const (
	wasteToTableau      = 5
	wasteToFoundation   = 10
	tableauToFoundation = 10
	tableauReveal       = 5
	foundationToTableau = -15
	restockPenalty      = -100

	timePenalty     = -2
	penaltyEvery    = 10 // seconds
	bonusMinSeconds = 30
	bonusNumerator  = 20000
	bonusMultiplier = 35
)

// Standard is the point-table scorer. It is safe for concurrent use, since
// tick events arrive from the clock goroutine.
type Standard struct {
	mu      sync.Mutex
	cfg     settings
	points  int
	seconds int
	won     bool
}

// NewStandard returns a Standard scorer starting at zero.
func NewStandard(opts ...Option) *Standard {
	return &Standard{cfg: newSettings(opts)}
}

// Observe updates the score for e.
func (s *Standard) Observe(e klondike.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch ev := e.(type) {
	case klondike.MoveEvent:
		from, to, ok := successfulMove(ev)
		if !ok {
			return
		}
		switch {
		case from == klondike.PileWaste && to == klondike.PileTableau:
			s.add(wasteToTableau)
		case from == klondike.PileWaste && to == klondike.PileFoundation:
			s.add(wasteToFoundation)
		case from == klondike.PileTableau && to == klondike.PileFoundation:
			s.add(tableauToFoundation)
		case from == klondike.PileFoundation && to == klondike.PileTableau:
			s.add(foundationToTableau)
		}
	case klondike.RevealEvent:
		s.add(tableauReveal)
	case klondike.RestockEvent:
		if ev.Success && s.cfg.drawCount == 1 {
			s.add(restockPenalty)
		}
	case klondike.TickEvent:
		if !s.cfg.timed || s.won {
			return
		}
		s.seconds++
		if s.seconds%penaltyEvery == 0 {
			s.add(timePenalty)
		}
	case klondike.WonEvent:
		s.won = true
		s.cfg.logger.Info("final score", "points", s.points, "bonus", s.bonus(), "seconds", s.seconds)
	}
}

func (s *Standard) add(delta int) {
	s.points = max(s.points+delta, 0)
}

func (s *Standard) bonus() int {
	if !s.cfg.timed || !s.won || s.seconds < bonusMinSeconds {
		return 0
	}
	return bonusNumerator / s.seconds * bonusMultiplier
}

// Score returns the points earned so far, plus the time bonus once a timed
// game is won.
func (s *Standard) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.points + s.bonus()
}

// Seconds returns the playing time counted by a timed scorer.
func (s *Standard) Seconds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seconds
}
