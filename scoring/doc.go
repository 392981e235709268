// Package scoring keeps the score of a Klondike game by observing the
// events published on its bus.
//
// # Standard
//
// The point table awards:
//   - waste to tableau: +5
//   - waste to foundation: +10
//   - tableau to foundation: +10
//   - a tableau card turned up: +5
//   - foundation to tableau: -15
//   - restock when drawing one card at a time: -100
//
// The score never drops below zero. A timed game also loses 2 points every
// 10 seconds and, when won after at least 30 seconds, earns a bonus of
// (20000 / seconds) * 35 with integer division.
//
// # Vegas
//
// The player stakes 52 and gets 5 back for each card placed on a foundation
// during the first pass through the stock.
package scoring
