package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/luca-patrignani/klondike/domain/klondike"
)

// ErrTampered is wrapped by every Verify failure.
var ErrTampered = errors.New("journal verification failed")

// Journal is an append-only, hash-chained record of the events of a game.
// It is safe for concurrent use.
type Journal struct {
	mu     sync.RWMutex
	blocks []Block
	gameID string
	ticks  bool
	logger *slog.Logger
}

type settings struct {
	ticks  bool
	logger *slog.Logger
}

// Option configures a Journal.
type Option func(settings) settings

// WithTicks also records clock ticks; they are skipped by default so that
// the same sequence of plays yields the same head whatever its duration.
func WithTicks(enabled bool) Option {
	return func(s settings) settings {
		s.ticks = enabled
		return s
	}
}

// WithLogger sets the logger of the journal.
func WithLogger(logger *slog.Logger) Option {
	return func(s settings) settings {
		s.logger = logger
		return s
	}
}

// NewJournal creates a journal for the given game holding only the genesis
// block, whose previous hash is "0".
func NewJournal(gameID uuid.UUID, opts ...Option) *Journal {
	var s settings
	for _, opt := range opts {
		s = opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	j := &Journal{gameID: gameID.String(), ticks: s.ticks, logger: s.logger}
	genesis := Block{
		Index:    0,
		PrevHash: "0",
		GameID:   j.gameID,
		Kind:     genesisKind,
		Event:    json.RawMessage("{}"),
	}
	genesis.Hash = calculateHash(genesis)
	j.blocks = append(j.blocks, genesis)
	return j
}

// Attach records every event published on bus until detach is called.
func (j *Journal) Attach(bus *klondike.Bus) (detach func()) {
	return bus.Subscribe(func(e klondike.Event) {
		if err := j.Record(e); err != nil {
			j.logger.Error("cannot record event", "kind", string(e.Kind()), "error", err)
		}
	})
}

// Record appends e to the journal.
func (j *Journal) Record(e klondike.Event) error {
	if e.Kind() == klondike.EventTick && !j.ticks {
		return nil
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("cannot encode %s event: %w", e.Kind(), err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	latest := j.blocks[len(j.blocks)-1]
	b := Block{
		Index:    latest.Index + 1,
		PrevHash: latest.Hash,
		GameID:   j.gameID,
		Kind:     e.Kind(),
		Event:    payload,
	}
	b.Hash = calculateHash(b)
	if err := validateBlock(b, latest); err != nil {
		return fmt.Errorf("invalid block: %w", err)
	}
	j.blocks = append(j.blocks, b)
	j.logger.Debug("recorded event", "index", b.Index, "kind", string(b.Kind))
	return nil
}

// Head returns the most recent block.
func (j *Journal) Head() Block {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.blocks[len(j.blocks)-1]
}

// Len returns the number of blocks, genesis included.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.blocks)
}

// GetByIndex returns the block at index.
func (j *Journal) GetByIndex(index int) (Block, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if index < 0 || index >= len(j.blocks) {
		return Block{}, fmt.Errorf("index %d out of range", index)
	}
	return j.blocks[index], nil
}

// Blocks returns a copy of the chain.
func (j *Journal) Blocks() []Block {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return append([]Block(nil), j.blocks...)
}

// Verify checks the genesis block, then the index continuity, hash linkage
// and hash of every following block.
func (j *Journal) Verify() error {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return verifyChain(j.blocks, j.gameID)
}

func verifyChain(blocks []Block, gameID string) error {
	if len(blocks) == 0 {
		return fmt.Errorf("%w: empty journal", ErrTampered)
	}
	genesis := blocks[0]
	if genesis.Index != 0 || genesis.PrevHash != "0" || genesis.Kind != genesisKind || genesis.Hash != calculateHash(genesis) {
		return fmt.Errorf("%w: invalid genesis block", ErrTampered)
	}
	for i := 1; i < len(blocks); i++ {
		if err := validateBlock(blocks[i], blocks[i-1]); err != nil {
			return fmt.Errorf("%w: block %d: %w", ErrTampered, i, err)
		}
	}
	for i, b := range blocks {
		if b.GameID != gameID {
			return fmt.Errorf("%w: block %d belongs to game %s", ErrTampered, i, b.GameID)
		}
	}
	return nil
}

func validateBlock(current, previous Block) error {
	if current.Index != previous.Index+1 {
		return fmt.Errorf("invalid index: expected %d, got %d", previous.Index+1, current.Index)
	}
	if current.PrevHash != previous.Hash {
		return fmt.Errorf("invalid prev hash: expected %s, got %s", previous.Hash, current.PrevHash)
	}
	if expected := calculateHash(current); current.Hash != expected {
		return fmt.Errorf("invalid hash: expected %s, got %s", expected, current.Hash)
	}
	return nil
}

// calculateHash computes the SHA-256 of the index, previous hash, kind and
// encoded event of a block. The game id is left out so that replaying a
// deal in a new game reproduces the same chain.
func calculateHash(b Block) string {
	data := fmt.Sprintf("%d%s%s%s", b.Index, b.PrevHash, b.Kind, string(b.Event))
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
