package ledger

import (
	"encoding/json"

	"github.com/luca-patrignani/klondike/domain/klondike"
)

// genesisKind marks the first block of every journal.
const genesisKind klondike.EventKind = "genesis"

// Block records one game event, chained to its predecessor by hash.
type Block struct {
	Index    int                `json:"index"`
	PrevHash string             `json:"prev_hash"`
	Hash     string             `json:"hash"`
	GameID   string             `json:"game_id"`
	Kind     klondike.EventKind `json:"kind"`
	Event    json.RawMessage    `json:"event"`
}
