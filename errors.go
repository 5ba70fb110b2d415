package main

import "errors"

var (
	// ErrPyramidBounds reports a base or height outside the supported range.
	ErrPyramidBounds = errors.New("pyramid shape out of bounds")
	// ErrPyramidTooLarge reports a pyramid that needs more cards than the pool holds.
	ErrPyramidTooLarge = errors.New("pyramid too big; not enough cards")
	// ErrUnknownSkull reports a face letter outside the skull alphabet.
	ErrUnknownSkull = errors.New("unknown skull")
	// ErrScoreMismatch reports a cached score that disagrees with a fresh recomputation.
	ErrScoreMismatch = errors.New("cached score does not match recomputed score")
	// ErrEmptyPool reports card data with no cards in it.
	ErrEmptyPool = errors.New("card pool is empty")
)
