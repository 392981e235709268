// Package klondike implements the pile state machine of Klondike solitaire:
// the deal, the legality of every card movement, reveals, passes through
// the stock and win detection.
//
// # Core Types
//
// Game: The authoritative state of one deal. Its methods are the only way
// to mutate the piles, and every call either fully applies or leaves the
// piles untouched.
//
// Location: A closed variant naming the stock, the waste, a tableau (1-7)
// or a foundation (1-4). Index validation lives in NewLocation.
//
// StockPile, WastePile, FoundationPile, TableauPile: Distinct pile types,
// each exposing only the operations its role allows.
//
// Layout: A detached copy of every pile, used for rendering, synthetic
// positions and invariant checks.
//
// # Events
//
// A Game publishes on a Bus synchronously, inside the call that caused the
// event: MoveEvent for every Move (with its outcome), DrawEvent per drawn
// card, RestockEvent, RevealEvent when a tableau card turns up, WonEvent
// once the foundations are complete. TickEvent is published by the clock
// package. Subscribe returns the function that removes the listener.
package klondike
