// Package wfc is the top-level driver: it owns the pattern table,
// compatibility index, wave, worklist, and RNG, and exposes the
// init/step/reset/destroy surface spec.md describes as the core's
// external interface.
package wfc

import (
	"errors"
	"fmt"
	"math"

	"github.com/tilebound/wfc/compat"
	"github.com/tilebound/wfc/observer"
	"github.com/tilebound/wfc/pattern"
	"github.com/tilebound/wfc/propagator"
	"github.com/tilebound/wfc/rng"
	"github.com/tilebound/wfc/tile"
	"github.com/tilebound/wfc/wave"
)

// Result is the outcome of a Step or Run call.
type Result int

const (
	Okay Result = iota
	Finished
	Restart
	Continue
	Error
)

func (r Result) String() string {
	switch r {
	case Okay:
		return "Okay"
	case Finished:
		return "Finished"
	case Restart:
		return "Restart"
	case Continue:
		return "Continue"
	case Error:
		return "Error"
	default:
		return "Result(?)"
	}
}

// Precondition errors, all returned synchronously from New.
var (
	ErrEmptyExemplar     = errors.New("wfc: exemplar must be non-empty")
	ErrZeroDimension     = errors.New("wfc: output dimensions must be positive")
	ErrZeroSeed          = errors.New("wfc: seed must be non-zero")
	ErrDimensionOverflow = errors.New("wfc: output width * height overflows int")
)

// Budget-exhaustion errors, returned from Run.
var (
	ErrStepBudgetExceeded    = errors.New("wfc: step budget exceeded")
	ErrRestartBudgetExceeded = errors.New("wfc: restart budget exceeded")
)

const (
	defaultMaxSteps    = 1 << 20
	defaultMaxRestarts = 1 << 10
)

// Config is the input to New.
type Config struct {
	ExemplarWidth, ExemplarHeight int
	Exemplar                      []uint8

	OutputWidth, OutputHeight int
	Seed                      uint32

	// MaxSteps and MaxRestarts bound Run's loop. Zero selects an
	// implementation-defined default (spec.md requires the budgets be
	// configurable and nonzero, not any particular value).
	MaxSteps    int
	MaxRestarts int
}

// State is the mutable handle returned by New. The pattern table and
// compatibility index are built once and are immutable for the life of
// the State; Wave, Worklist and the RNG are mutated by Step.
type State struct {
	patterns *pattern.Table
	index    *compat.Index
	wave     *wave.Wave
	wl       *propagator.Worklist
	scratch  *propagator.Scratch
	obsScr   *observer.Scratch
	rng      *rng.Xorshift32

	outW, outH int

	stepNum     int
	restarts    int
	maxSteps    int
	maxRestarts int
}

// New validates cfg, extracts the pattern table and compatibility index
// from the exemplar, and allocates a fresh all-ones Wave over the output
// dimensions. Unlike the C original this has no partial-construction
// teardown path to unwind on allocation failure: Go slices and maps are
// garbage collected, so there's nothing to free by hand, and `make`
// failure is a fatal runtime condition rather than a recoverable error
// the way C's malloc is.
func New(cfg Config) (*State, error) {
	if len(cfg.Exemplar) == 0 {
		return nil, ErrEmptyExemplar
	}
	if cfg.OutputWidth <= 0 || cfg.OutputHeight <= 0 {
		return nil, ErrZeroDimension
	}
	if cfg.Seed == 0 {
		return nil, ErrZeroSeed
	}
	if cfg.OutputWidth > 0 && cfg.OutputHeight > math.MaxInt/cfg.OutputWidth {
		return nil, ErrDimensionOverflow
	}

	patterns, err := pattern.Extract(cfg.ExemplarWidth, cfg.ExemplarHeight, cfg.Exemplar)
	if err != nil {
		return nil, fmt.Errorf("wfc: building pattern table: %w", err)
	}

	index := compat.Build(patterns)
	wv := wave.New(cfg.OutputWidth, cfg.OutputHeight, patterns.Len())

	r, err := rng.New(cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("wfc: %w", err)
	}

	maxSteps := cfg.MaxSteps
	if maxSteps <= 0 {
		maxSteps = defaultMaxSteps
	}
	maxRestarts := cfg.MaxRestarts
	if maxRestarts <= 0 {
		maxRestarts = defaultMaxRestarts
	}

	return &State{
		patterns:    patterns,
		index:       index,
		wave:        wv,
		wl:          propagator.NewWorklist(cfg.OutputWidth * cfg.OutputHeight),
		scratch:     propagator.NewScratch(index),
		obsScr:      observer.NewScratch(patterns),
		rng:         r,
		outW:        cfg.OutputWidth,
		outH:        cfg.OutputHeight,
		maxSteps:    maxSteps,
		maxRestarts: maxRestarts,
	}, nil
}

// Reset re-initialises the Wave to all-ones without rebuilding the
// pattern table or compatibility index, and without touching the RNG or
// step/restart counters. This is the external reset() entry point from
// spec.md §6, distinct from the internal restart-on-contradiction
// behaviour Step drives (which also advances the RNG — see restart()).
func (s *State) Reset() {
	s.wave.ResetAll()
}

// Close is a no-op: the State holds nothing to free beyond what the
// garbage collector already owns. It exists for symmetry with the
// init/destroy pair of the external interface.
func (s *State) Close() {}

// Step executes one observe-then-propagate cycle.
func (s *State) Step() (Result, error) {
	if s.stepNum >= s.maxSteps {
		return Error, ErrStepBudgetExceeded
	}
	s.stepNum++

	obs := observer.Observe(s.wave, s.patterns, s.rng, s.obsScr)
	switch obs.Outcome {
	case observer.Finished:
		return Finished, nil
	case observer.Restart:
		return s.restart()
	}

	prop := propagator.Propagate(s.wave, s.index, obs.Pos, s.wl, s.scratch)
	if prop == propagator.Restart {
		return s.restart()
	}
	return Continue, nil
}

// restart resets the Wave to all-ones and advances (never re-seeds) the
// RNG, so successive restarts explore different trajectories, per
// spec.md §4.7. There is deliberately no backtracking.
func (s *State) restart() (Result, error) {
	s.restarts++
	if s.restarts > s.maxRestarts {
		return Error, ErrRestartBudgetExceeded
	}
	s.wave.ResetAll()
	s.rng.Next()
	return Restart, nil
}

// Run steps until Finished, a step budget is exceeded, or a restart
// budget is exceeded.
func (s *State) Run() (Result, error) {
	for {
		res, err := s.Step()
		if err != nil {
			return Error, err
		}
		if res == Finished {
			return Finished, nil
		}
		// Continue and Restart both mean "keep stepping".
	}
}

// ReadCell returns the dense pattern indices still allowed at (x, y).
func (s *State) ReadCell(x, y int) []int {
	var out []int
	for p := 0; p < s.patterns.Len(); p++ {
		if s.wave.Allowed(x, y, p) {
			out = append(out, p)
		}
	}
	return out
}

// PatternTile returns the packed tile for a pattern index.
func (s *State) PatternTile(patternIndex int) tile.Tile {
	return s.patterns.At(patternIndex).Tile
}

// NumPatterns returns the size of the pattern universe.
func (s *State) NumPatterns() int { return s.patterns.Len() }

// OutputDimensions returns the output grid size.
func (s *State) OutputDimensions() (int, int) { return s.outW, s.outH }

// Wave exposes the underlying Wave for renderers. Renderers must treat it
// as read-only; only Step/Reset may mutate it.
func (s *State) Wave() *wave.Wave { return s.wave }

// Patterns exposes the underlying pattern table for renderers.
func (s *State) Patterns() *pattern.Table { return s.patterns }
