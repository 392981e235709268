package scoring

import (
	"io"
	"log/slog"

	"github.com/luca-patrignani/klondike/domain/klondike"
)

// Scorer is an event observer holding a running score.
type Scorer interface {
	Observe(e klondike.Event)
	Score() int
}

// Attach subscribes s to bus and returns the function detaching it.
func Attach(s Scorer, bus *klondike.Bus) (detach func()) {
	return bus.Subscribe(s.Observe)
}

type settings struct {
	drawCount int
	timed     bool
	logger    *slog.Logger
}

// Option configures a scorer.
type Option func(settings) settings

// WithDrawCount tells the scorer how many cards each draw turns; the
// Standard restock penalty only applies when drawing one.
func WithDrawCount(n int) Option {
	return func(s settings) settings {
		s.drawCount = n
		return s
	}
}

// WithTimed enables the time penalty and the win bonus of Standard.
func WithTimed(timed bool) Option {
	return func(s settings) settings {
		s.timed = timed
		return s
	}
}

// WithLogger sets the logger used to trace score changes.
func WithLogger(logger *slog.Logger) Option {
	return func(s settings) settings {
		s.logger = logger
		return s
	}
}

func newSettings(opts []Option) settings {
	s := settings{drawCount: 1}
	for _, opt := range opts {
		s = opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// successfulMove returns the kinds of the source and destination of a
// legal move.
func successfulMove(e klondike.Event) (from, to klondike.PileKind, ok bool) {
	m, ok := e.(klondike.MoveEvent)
	if !ok || !m.Success {
		return 0, 0, false
	}
	return m.From.Kind(), m.To.Kind(), true
}
