// Package ledger keeps an append-only journal of the events of a Klondike
// game with hash chaining for tamper detection.
//
// # Core Components
//
// Journal: subscribes to a game's bus and appends one Block per event.
//
// Block: a single event, encoded as JSON, linked to the previous block by
// its SHA-256 hash.
//
// # Properties
//
// Blocks carry no timestamps and ticks are skipped unless WithTicks is set,
// so two games dealt from the same seed and played the same way end with
// the same head hash. Verify can be called at any time to check that the
// chain is intact.
package ledger
