package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// runSession loads the pool, validates the pyramid and runs one leaderboard.
// Shared by the CLI and the lambda handler.
func runSession(ctx context.Context, cfg Config, log zerolog.Logger) (Result, error) {
	pool, err := LoadCardPool(cfg.CardsFile)
	if err != nil {
		return Result{}, err
	}
	pyr, err := cfg.Pyramid()
	if err != nil {
		return Result{}, err
	}
	lb, err := NewLeaderboard(pool, pyr, cfg, log)
	if err != nil {
		return Result{}, err
	}
	return lb.Optimize(ctx)
}

// FindCard returns the card with the given ID, or false if the pool lacks it.
func FindCard(pool []Card, id CardID) (Card, bool) {
	for _, c := range pool {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

// orderCards parses a comma- or space-separated list of card IDs and returns
// those cards first, followed by the unlisted rest of the pool in ID order.
func orderCards(pool []Card, order string) ([]Card, error) {
	fields := strings.FieldsFunc(order, func(r rune) bool { return r == ',' || r == ' ' })
	used := make(map[CardID]bool, len(fields))
	out := make([]Card, 0, len(pool))
	for _, f := range fields {
		n, err := strconv.ParseUint(f, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid card id %q", f)
		}
		id := CardID(n)
		if used[id] {
			return nil, fmt.Errorf("card %d listed twice", id)
		}
		c, ok := FindCard(pool, id)
		if !ok {
			return nil, fmt.Errorf("card %d not in pool", id)
		}
		used[id] = true
		out = append(out, c)
	}
	for _, c := range pool {
		if !used[c.ID] {
			out = append(out, c)
		}
	}
	return out, nil
}
