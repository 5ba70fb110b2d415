package main

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// Permutation is one candidate arrangement of the whole card pool. Only
// Cards[:Pyramid.Size] are placed; the rest ride along for mutation.
type Permutation struct {
	Score   int     `json:"score"`
	Cards   []Card  `json:"-"`
	Pyramid Pyramid `json:"pyramid"`
}

// NewPermutation copies cards and scores them for the given pyramid.
func NewPermutation(cards []Card, p Pyramid) Permutation {
	perm := Permutation{
		Cards:   slices.Clone(cards),
		Pyramid: p,
	}
	perm.rescore()
	return perm
}

// Clone returns a deep copy; the card slice is not shared.
func (p Permutation) Clone() Permutation {
	p.Cards = slices.Clone(p.Cards)
	return p
}

// copyFrom overwrites p with src, reusing p's card buffer.
func (p *Permutation) copyFrom(src *Permutation) {
	p.Cards = append(p.Cards[:0], src.Cards...)
	p.Score = src.Score
	p.Pyramid = src.Pyramid
}

// Grid projects the placed cards.
func (p Permutation) Grid() SkullGrid {
	return BuildGrid(p.Cards, p.Pyramid)
}

// IDs lists card identities in sequence order.
func (p Permutation) IDs() []int {
	ids := make([]int, len(p.Cards))
	for i, c := range p.Cards {
		ids[i] = int(c.ID)
	}
	return ids
}

func (p *Permutation) rescore() {
	p.Score = BuildGrid(p.Cards, p.Pyramid).Score()
}

// Verify recomputes the score and fails if the cached value drifted.
func (p Permutation) Verify() error {
	if got := p.Grid().Score(); got != p.Score {
		return fmt.Errorf("%w: cached %d, recomputed %d", ErrScoreMismatch, p.Score, got)
	}
	return nil
}

// ── Local moves ─────────────────────────────────────────────────────

// Shuffle applies a uniform random permutation to the whole sequence.
func (p *Permutation) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(p.Cards), func(i, j int) {
		p.Cards[i], p.Cards[j] = p.Cards[j], p.Cards[i]
	})
	p.rescore()
}

// RandomSwap performs k independent swaps over the whole sequence. Pairs are
// drawn with replacement and may be degenerate.
func (p *Permutation) RandomSwap(rng *rand.Rand, k int) {
	n := len(p.Cards)
	for i := 0; i < k; i++ {
		a, b := rng.IntN(n), rng.IntN(n)
		p.Cards[a], p.Cards[b] = p.Cards[b], p.Cards[a]
	}
	p.rescore()
}

// Evolve replaces p with the best arrangement of its placed cards if that
// strictly beats the current score, and reports whether it did. Up to limit
// placed cards every ordering is tried; above it only single swaps are.
func (p *Permutation) Evolve(limit int) bool {
	if p.Pyramid.Size <= limit {
		return p.evolveExhaustive()
	}
	return p.evolveSwaps()
}

func (p *Permutation) evolveExhaustive() bool {
	size := p.Pyramid.Size
	work := p.Clone()
	slices.SortFunc(work.Cards[:size], compareCards)

	var best []Card
	bestScore := p.Score
	for {
		if s := work.Grid().Score(); s > bestScore {
			bestScore = s
			best = append(best[:0], work.Cards[:size]...)
		}
		if !nextPermutation(work.Cards[:size]) {
			break
		}
	}

	if best == nil {
		return false
	}
	copy(p.Cards[:size], best)
	p.Score = bestScore
	return true
}

// evolveSwaps takes the single best swap that involves at least one placed card.
func (p *Permutation) evolveSwaps() bool {
	size := p.Pyramid.Size
	bestI, bestJ := -1, -1
	bestScore := p.Score
	for i := 0; i < size; i++ {
		for j := i + 1; j < len(p.Cards); j++ {
			p.Cards[i], p.Cards[j] = p.Cards[j], p.Cards[i]
			if s := p.Grid().Score(); s > bestScore {
				bestScore, bestI, bestJ = s, i, j
			}
			p.Cards[i], p.Cards[j] = p.Cards[j], p.Cards[i]
		}
	}
	if bestI < 0 {
		return false
	}
	p.Cards[bestI], p.Cards[bestJ] = p.Cards[bestJ], p.Cards[bestI]
	p.Score = bestScore
	return true
}

// nextPermutation rearranges cards into the next lexicographic order by ID.
// It returns false, leaving cards sorted ascending, after the last order.
func nextPermutation(cards []Card) bool {
	i := len(cards) - 2
	for i >= 0 && cards[i].ID >= cards[i+1].ID {
		i--
	}
	if i < 0 {
		slices.Reverse(cards)
		return false
	}
	j := len(cards) - 1
	for cards[j].ID <= cards[i].ID {
		j--
	}
	cards[i], cards[j] = cards[j], cards[i]
	slices.Reverse(cards[i+1:])
	return true
}

// ── Composite phases ────────────────────────────────────────────────

// ShuffleUntilStall reshuffles from scratch and keeps the best shuffle seen,
// giving up after stall consecutive shuffles without improvement.
func (p *Permutation) ShuffleUntilStall(rng *rand.Rand, stall int) {
	leader := p.Clone()
	leader.Shuffle(rng)

	work := p.Clone()
	for misses := 0; misses < stall; {
		work.Shuffle(rng)
		if work.Score > leader.Score {
			leader.copyFrom(&work)
			misses = 0
			continue
		}
		misses++
	}
	*p = leader
}

// MutationOutcome summarizes one EvolveWithMutation run.
type MutationOutcome struct {
	// Improved is set when the run ended strictly above its starting score.
	Improved bool
	// Exhausted is set when every level up to the maximum stalled.
	Exhausted bool
	Level     int
	Attempts  int
}

// EvolveWithMutation searches for an equal or better arrangement through
// random swaps, escalating the swap count each time a level stalls, and then
// evolves whatever it ended on. Ties are adopted to keep the walk moving.
func (p *Permutation) EvolveWithMutation(rng *rand.Rand, t Tuning) MutationOutcome {
	start := p.Score
	leader := p.Clone()
	work := p.Clone()

	out := MutationOutcome{Level: t.MinMutation}
	misses := 0
	for out.Level <= t.MaxMutation {
		work.copyFrom(&leader)
		work.RandomSwap(rng, out.Level)
		out.Attempts++

		if work.Score > leader.Score {
			leader, work = work, leader
			break
		}
		if work.Score == leader.Score {
			leader, work = work, leader
		}
		if misses++; misses >= t.MutationStall {
			out.Level++
			misses = 0
		}
	}
	out.Exhausted = out.Level > t.MaxMutation

	leader.Evolve(t.ExhaustiveLimit)
	out.Improved = leader.Score > start
	*p = leader
	return out
}
