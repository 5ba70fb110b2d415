package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ── Progress events ─────────────────────────────────────────────────

// EventKind classifies a slot progress event.
type EventKind string

const (
	EventImproved    EventKind = "improved"
	EventStalled     EventKind = "stalled"
	EventReshuffling EventKind = "reshuffling"
	EventTerminated  EventKind = "terminated"
)

// Event is an advisory progress signal for one slot.
type Event struct {
	Slot    int       `json:"slot"`
	Kind    EventKind `json:"kind"`
	Score   int       `json:"score"`
	Lineage int       `json:"lineage"`
	Reason  string    `json:"reason,omitempty"`
}

// ── Leaderboard ─────────────────────────────────────────────────────

type phaseKind int

const (
	phaseEvolve phaseKind = iota
	phaseMutate
	phaseReshuffle
)

func (k phaseKind) String() string {
	switch k {
	case phaseEvolve:
		return "evolve"
	case phaseMutate:
		return "mutate"
	case phaseReshuffle:
		return "reshuffle"
	}
	return "unknown"
}

// slot is one search lineage. Only the coordinator goroutine touches it,
// except rng, which is lent to the slot's single in-flight phase.
type slot struct {
	idx      int
	rng      *rand.Rand
	current  Permutation // working candidate of the current lineage
	best     Permutation // best seen across all lineages
	stalls   int
	lineage  int
	restarts int
	phases   int
	done     bool
}

type phaseResult struct {
	slot     int
	kind     phaseKind
	perm     Permutation
	mutation MutationOutcome
}

// Leaderboard runs one local-search lineage per slot over a shared card pool
// and pyramid. It is single-use: build a new one for a new pyramid shape.
type Leaderboard struct {
	Session uuid.UUID
	// OnEvent, if set, receives every progress event on the coordinator goroutine.
	OnEvent func(Event)

	pool    []Card
	pyramid Pyramid
	tuning  Tuning
	log     zerolog.Logger
	slots   []*slot

	// phaseHook, if set, runs on every phase result before it is sent back.
	phaseHook func(*Permutation)
}

// NewLeaderboard validates the session inputs. Nothing is searched until Optimize.
func NewLeaderboard(pool []Card, p Pyramid, cfg Config, log zerolog.Logger) (*Leaderboard, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	pyr, err := NewPyramid(p.Base, p.Height)
	if err != nil {
		return nil, err
	}
	if err := pyr.Fits(len(pool)); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	sorted := slices.Clone(pool)
	slices.SortFunc(sorted, compareCards)

	id := uuid.New()
	lb := &Leaderboard{
		Session: id,
		pool:    sorted,
		pyramid: pyr,
		tuning:  cfg.Tuning(),
		log:     log.With().Str("session", id.String()).Logger(),
		slots:   make([]*slot, cfg.Workers),
	}
	for i := range lb.slots {
		lb.slots[i] = &slot{idx: i, rng: newSlotRNG(cfg.Seed, i), lineage: 1}
	}
	return lb, nil
}

// newSlotRNG gives every slot an independent source. A zero seed draws from
// the runtime's entropy; otherwise runs are reproducible.
func newSlotRNG(seed uint64, i int) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, uint64(i)))
}

// SlotResult is the outcome of one slot. Score and Cards describe the best
// candidate across lineages; Final is the score the last lineage ended on.
type SlotResult struct {
	Slot     int         `json:"slot"`
	Score    int         `json:"score"`
	Cards    []int       `json:"cards"`
	Final    int         `json:"final"`
	Lineages int         `json:"lineages"`
	Phases   int         `json:"phases"`
	Best     Permutation `json:"-"`
	Current  Permutation `json:"-"`
}

// Result is the outcome of one session.
type Result struct {
	Session  string        `json:"session"`
	Pyramid  Pyramid       `json:"pyramid"`
	Slots    []SlotResult  `json:"slots"`
	BestSlot int           `json:"bestSlot"`
	Elapsed  time.Duration `json:"elapsedNs"`
}

// Best returns the highest-scoring slot.
func (r Result) Best() SlotResult {
	return r.Slots[r.BestSlot]
}

// Optimize bootstraps every slot and evolves them until all have terminated.
// Phases are never interrupted; ctx is checked between phases, and a
// cancelled run returns the leaderboard as it stands alongside ctx.Err().
func (lb *Leaderboard) Optimize(ctx context.Context) (Result, error) {
	start := time.Now()
	lb.log.Info().
		Stringer("pyramid", lb.pyramid).
		Int("cards", len(lb.pool)).
		Int("slots", len(lb.slots)).
		Msg("[init]")

	if err := lb.bootstrap(ctx); err != nil {
		return Result{}, err
	}
	lb.log.Info().Int("leader", lb.globalMax()).Msg("[bootstrap] done")

	err := lb.evolve(ctx)

	res := lb.result(time.Since(start))
	lb.log.Info().
		Int("best", res.Best().Score).
		Int("slot", res.BestSlot).
		Dur("elapsed", res.Elapsed).
		Msg("[done]")
	return res, err
}

// bootstrap seeds every slot from the same full-pool permutation and
// shuffles each one until it stalls.
func (lb *Leaderboard) bootstrap(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	seed := NewPermutation(lb.pool, lb.pyramid)

	var g errgroup.Group
	for _, s := range lb.slots {
		s.current = seed.Clone()
		g.Go(func() error {
			s.current.ShuffleUntilStall(s.rng, lb.tuning.ShuffleStall)
			if err := s.current.Verify(); err != nil {
				return fmt.Errorf("slot %d bootstrap: %w", s.idx, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, s := range lb.slots {
		s.best = s.current.Clone()
		lb.log.Debug().Int("slot", s.idx).Int("score", s.current.Score).Msg("[bootstrap] seeded")
	}
	return nil
}

// evolve is the coordinator loop. Every slot has at most one phase in
// flight; whichever finishes first is handled first.
func (lb *Leaderboard) evolve(ctx context.Context) error {
	results := make(chan phaseResult, len(lb.slots))
	inFlight := 0

	launch := func(s *slot, kind phaseKind) {
		perm := s.current.Clone()
		rng := s.rng
		idx := s.idx
		tuning := lb.tuning
		hook := lb.phaseHook
		s.phases++
		inFlight++
		go func() {
			r := phaseResult{slot: idx, kind: kind}
			switch kind {
			case phaseEvolve:
				perm.Evolve(tuning.ExhaustiveLimit)
			case phaseMutate:
				r.mutation = perm.EvolveWithMutation(rng, tuning)
			case phaseReshuffle:
				perm.ShuffleUntilStall(rng, tuning.ShuffleStall)
			}
			if hook != nil {
				hook(&perm)
			}
			r.perm = perm
			results <- r
		}()
	}

	for _, s := range lb.slots {
		launch(s, phaseEvolve)
	}

	var runErr error
	aborted := false
	for inFlight > 0 {
		r := <-results
		inFlight--
		s := lb.slots[r.slot]

		if aborted {
			continue
		}
		if err := r.perm.Verify(); err != nil {
			runErr = fmt.Errorf("slot %d %s: %w", s.idx, r.kind, err)
			aborted = true
			lb.log.Error().Err(err).Int("slot", s.idx).Msg("[evolve] aborting session")
			continue
		}

		next, ok := lb.handle(s, r)
		if !ok || runErr != nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			runErr = err
			lb.log.Warn().Err(err).Int("inFlight", inFlight).Msg("[evolve] cancelled, draining")
			continue
		}
		launch(s, next)
	}
	return runErr
}

// handle applies a finished phase to its slot and picks the next phase.
// It returns false once the slot has terminated.
func (lb *Leaderboard) handle(s *slot, r phaseResult) (phaseKind, bool) {
	if r.kind == phaseReshuffle {
		s.current = r.perm
		s.stalls = 0
		s.lineage++
		lb.recordBest(s)
		return phaseEvolve, true
	}

	prev := s.current.Score
	// phases never return below their starting score; equal results are
	// adopted so the next mutation starts from the diversified arrangement
	if r.perm.Score >= prev {
		s.current = r.perm
	}

	if s.current.Score > prev {
		s.stalls = 0
		lb.recordBest(s)
		lb.emit(Event{Slot: s.idx, Kind: EventImproved, Score: s.current.Score, Lineage: s.lineage})
		if lb.log.Debug().Enabled() {
			lb.log.Debug().
				Int("slot", s.idx).
				Ints("cards", s.current.IDs()).
				Str("phase", r.kind.String()).
				Int("level", r.mutation.Level).
				Msg("[evolve] successful evolution")
		}
		return phaseEvolve, true
	}

	s.stalls++
	lb.log.Debug().
		Int("slot", s.idx).
		Str("phase", r.kind.String()).
		Int("stalls", s.stalls).
		Int("level", r.mutation.Level).
		Bool("exhausted", r.mutation.Exhausted).
		Msg("[evolve] no improvement")
	if s.stalls < lb.tuning.LineageStall {
		return phaseMutate, true
	}

	reason := "lineage stall"
	if r.mutation.Exhausted {
		reason = "mutation escalation exhausted"
	}
	lb.emit(Event{Slot: s.idx, Kind: EventStalled, Score: s.current.Score, Lineage: s.lineage, Reason: reason})

	switch {
	case s.current.Score >= lb.globalMax():
		lb.terminate(s, "no proof of improvement")
		return 0, false
	case lb.activeSlots() == 1:
		lb.terminate(s, "potential for improvement, but all other slots finished")
		return 0, false
	case lb.tuning.MaxRestarts > 0 && s.restarts >= lb.tuning.MaxRestarts:
		lb.terminate(s, "restart limit reached")
		return 0, false
	}

	s.restarts++
	lb.emit(Event{
		Slot:    s.idx,
		Kind:    EventReshuffling,
		Score:   s.current.Score,
		Lineage: s.lineage,
		Reason:  "potential for improvement",
	})
	return phaseReshuffle, true
}

func (lb *Leaderboard) recordBest(s *slot) {
	if s.current.Score > s.best.Score {
		s.best = s.current.Clone()
	}
}

func (lb *Leaderboard) terminate(s *slot, reason string) {
	s.done = true
	lb.emit(Event{Slot: s.idx, Kind: EventTerminated, Score: s.best.Score, Lineage: s.lineage, Reason: reason})
}

// globalMax is the best score recorded by any slot.
func (lb *Leaderboard) globalMax() int {
	m := lb.slots[0].best.Score
	for _, s := range lb.slots[1:] {
		m = max(m, s.best.Score)
	}
	return m
}

func (lb *Leaderboard) activeSlots() int {
	n := 0
	for _, s := range lb.slots {
		if !s.done {
			n++
		}
	}
	return n
}

func (lb *Leaderboard) emit(e Event) {
	var ev *zerolog.Event
	switch e.Kind {
	case EventImproved:
		ev = lb.log.Info()
	case EventTerminated:
		ev = lb.log.Info().Str("reason", e.Reason)
	default:
		ev = lb.log.Debug().Str("reason", e.Reason)
	}
	ev.Int("slot", e.Slot).Int("score", e.Score).Int("lineage", e.Lineage).Msgf("[evolve] %s", e.Kind)

	if lb.OnEvent != nil {
		lb.OnEvent(e)
	}
}

func (lb *Leaderboard) result(elapsed time.Duration) Result {
	res := Result{
		Session: lb.Session.String(),
		Pyramid: lb.pyramid,
		Slots:   make([]SlotResult, len(lb.slots)),
		Elapsed: elapsed,
	}
	for i, s := range lb.slots {
		res.Slots[i] = SlotResult{
			Slot:     s.idx,
			Score:    s.best.Score,
			Cards:    s.best.IDs(),
			Final:    s.current.Score,
			Lineages: s.lineage,
			Phases:   s.phases,
			Best:     s.best,
			Current:  s.current,
		}
		if s.best.Score > res.Slots[res.BestSlot].Score {
			res.BestSlot = i
		}
	}
	return res
}
