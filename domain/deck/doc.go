// Package deck models playing cards and the 52-card deck used by Klondike.
//
// # Core Types
//
// Card: An immutable (suit, rank) identity plus a face-up flag.
//
// Deck: An ordered slice of cards whose last element is the top.
//
// Source: A uniform integer generator driving the shuffle.
//
// # Reproducible Deals
//
// New always builds the deck in the same order, so shuffling it with a
// Source created by NewSeededSource from a fixed seed yields the same deal
// on every run. NewRandomSource is used when no seed is configured.
package deck
