// Package autoplay drives a Klondike game to completion without human input.
//
// The Player only uses the public operations of the game (through the Game
// interface); the game's own legality checks remain the final authority, so
// a wrong heuristic decision is refused rather than corrupting the piles.
//
// # Turn
//
// A turn runs three steps in order:
//  1. AutoFoundation: send every playable tableau top and the waste top to
//     the foundations, until a scan moves nothing.
//  2. Consolidate: move face-up runs between tableaus to uncover face-down
//     cards, until a sweep moves nothing.
//  3. PlayWaste: place the waste top on a tableau only when a rider exists,
//     otherwise on a foundation.
//
// When none of them moves a card the player draws, restocking first when
// the stock is exhausted.
//
// # Termination
//
// Play stops when the game is won, when a full pass through the stock
// produced no move (forfeit), when the pass limit forbids a restock, or
// with ErrRunaway when the pass ceiling is reached.
package autoplay
