package scoring

import (
	"sync"

	"github.com/luca-patrignani/klondike/domain/klondike"
)

const (
	vegasStake  = -52
	vegasPayout = 5
)

// Vegas is the wagering scorer: a stake of 52 and 5 per foundation card
// placed during the first pass. It is safe for concurrent use.
type Vegas struct {
	mu     sync.Mutex
	cfg    settings
	points int
	pass   int
}

// NewVegas returns a Vegas scorer holding the initial stake.
func NewVegas(opts ...Option) *Vegas {
	return &Vegas{cfg: newSettings(opts), points: vegasStake, pass: 1}
}

// Observe updates the score for e.
func (v *Vegas) Observe(e klondike.Event) {
	v.mu.Lock()
	defer v.mu.Unlock()
	switch ev := e.(type) {
	case klondike.MoveEvent:
		from, to, ok := successfulMove(ev)
		if ok && from != klondike.PileFoundation && to == klondike.PileFoundation && v.pass == 1 {
			v.points += vegasPayout
		}
	case klondike.RestockEvent:
		if ev.Success {
			v.pass++
		}
	case klondike.WonEvent:
		v.cfg.logger.Info("final score", "points", v.points, "pass", v.pass)
	}
}

// Score returns the balance, negative while the stake is not recovered.
func (v *Vegas) Score() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.points
}
