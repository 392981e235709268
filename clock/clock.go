// Package clock measures the playing time of a game and publishes a
// klondike.TickEvent for every second it is running.
package clock

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"atomicgo.dev/schedule"

	"github.com/luca-patrignani/klondike/domain/klondike"
)

// Ticker counts active intervals. It is created paused; Start and Stop
// toggle counting and Cancel ends it for good.
type Ticker struct {
	mu        sync.Mutex
	task      *schedule.Task
	bus       *klondike.Bus
	interval  time.Duration
	logger    *slog.Logger
	active    bool
	cancelled bool
	elapsed   int
}

type settings struct {
	interval time.Duration
	logger   *slog.Logger
}

// Option configures a Ticker.
type Option func(settings) settings

// WithInterval changes the tick period, one second by default.
func WithInterval(d time.Duration) Option {
	return func(s settings) settings {
		s.interval = d
		return s
	}
}

// WithLogger sets the logger of the ticker.
func WithLogger(logger *slog.Logger) Option {
	return func(s settings) settings {
		s.logger = logger
		return s
	}
}

// New schedules a paused ticker publishing on bus.
func New(bus *klondike.Bus, opts ...Option) *Ticker {
	s := settings{interval: time.Second}
	for _, opt := range opts {
		s = opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	t := &Ticker{bus: bus, interval: s.interval, logger: s.logger}
	t.task = schedule.Every(t.interval, t.tick)
	return t
}

func (t *Ticker) tick() bool {
	t.mu.Lock()
	if t.cancelled {
		t.mu.Unlock()
		return false
	}
	if !t.active {
		t.mu.Unlock()
		return true
	}
	t.elapsed++
	t.mu.Unlock()
	t.bus.Publish(klondike.TickEvent{})
	return true
}

// Start resumes counting. It has no effect after Cancel.
func (t *Ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancelled {
		t.logger.Warn("start on a cancelled clock")
		return
	}
	t.active = true
}

// Stop pauses counting.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active = false
}

// Cancel stops the underlying schedule; the ticker cannot be restarted.
func (t *Ticker) Cancel() {
	t.mu.Lock()
	if t.cancelled {
		t.mu.Unlock()
		return
	}
	t.cancelled = true
	t.active = false
	t.mu.Unlock()
	t.task.Stop()
	t.logger.Debug("clock cancelled", "elapsed", t.Elapsed())
}

// Elapsed returns the number of intervals counted while active.
func (t *Ticker) Elapsed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsed
}

// Running reports whether the ticker is currently counting.
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}
