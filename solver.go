// solver.go
//
// This file implements the Solver, the depth-first search driver that
// owns the stack of Board nodes, together with the up-front puzzle
// validation.

package lasermaze

import (
	"errors"
	"fmt"
	"time"
)

// Validation errors, returned (wrapped with detail) by Solve for
// puzzles that are malformed, as opposed to merely unsolvable
var (
	ErrTargetCount    = errors.New("invalid number of targets")
	ErrPieceCount     = errors.New("invalid piece count")
	ErrMustLightCount = errors.New("invalid number of pieces which must be lit")
	ErrBlockerInBag   = errors.New("cell blocker included in pieces to be added")
)

// tokenCardinality is the valid [min, max] count per piece type across
// the whole puzzle (board plus bag). The BeamSplitter range is the
// permissive 0..2; the stricter targets-1 formula is contradicted by
// real puzzle data.
var tokenCardinality = map[TokenType][2]int{
	Laser:        {1, 1},
	TargetMirror: {1, 5},
	BeamSplitter: {0, 2},
	DoubleMirror: {0, 1},
	Checkpoint:   {0, 1},
	CellBlocker:  {0, 1},
}

// SolveStats describes one finished solve run
type SolveStats struct {
	Nodes   int           // search nodes expanded
	Elapsed time.Duration // wall time spent searching
}

// Solver explores the placement and orientation space of one puzzle
// with depth-first backtracking over an explicit LIFO stack
type Solver struct {
	initial *Board
	stack   []*Board
	stats   SolveStats
}

// NewSolver creates a Solver seeded with the puzzle's root node
func NewSolver(cells Cells, toPlace []*Token, targets int) *Solver {
	root := NewBoard(cells, toPlace, targets)
	return &Solver{
		initial: root,
		stack:   []*Board{root.Clone()},
	}
}

// validatePuzzle rejects malformed puzzles up front, so the search
// only ever runs on well-formed input
func validatePuzzle(b *Board) error {
	if b.Targets < 1 || b.Targets > 3 {
		return fmt.Errorf("%w: %d", ErrTargetCount, b.Targets)
	}

	var counts [len(tokenTypeNames)]int
	for _, token := range b.Cells {
		if token != nil {
			counts[token.Kind]++
		}
	}
	for _, token := range b.ToPlace {
		counts[token.Kind]++
	}
	for _, kind := range TokenTypes {
		bounds := tokenCardinality[kind]
		if counts[kind] < bounds[0] || counts[kind] > bounds[1] {
			return fmt.Errorf("%w: %d of %v", ErrPieceCount, counts[kind], kind)
		}
	}

	mustLight := 0
	for _, token := range b.Cells {
		if token != nil && token.MustLight {
			mustLight++
		}
	}
	mustLight += b.countMustLightToPlace()
	if mustLight > b.Targets {
		return fmt.Errorf("%w: %d must-light, %d targets", ErrMustLightCount, mustLight, b.Targets)
	}

	// Blockers are only ever pre-placed
	for _, token := range b.ToPlace {
		if token.Kind == CellBlocker {
			return ErrBlockerInBag
		}
	}
	return nil
}

// Solve runs the search to completion. It returns the solved cell
// assignment and true, or a zero assignment and false when the puzzle
// is valid but provably unsolvable. A non-nil error means the puzzle
// definition itself was rejected.
func (s *Solver) Solve() (Cells, bool, error) {
	if err := validatePuzzle(s.initial); err != nil {
		pkgLog.Debug().Err(err).Msg("puzzle rejected")
		return Cells{}, false, err
	}

	start := time.Now()
	for len(s.stack) > 0 {
		node := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
		s.stats.Nodes++

		cells, done, children := node.generateBranches()
		if done {
			s.stats.Elapsed = time.Since(start)
			pkgLog.Debug().
				Int("nodes", s.stats.Nodes).
				Dur("elapsed", s.stats.Elapsed).
				Msg("solved")
			return cells, true, nil
		}
		s.stack = append(s.stack, children...)
	}
	s.stats.Elapsed = time.Since(start)
	pkgLog.Debug().
		Int("nodes", s.stats.Nodes).
		Dur("elapsed", s.stats.Elapsed).
		Msg("search exhausted, no solution")
	return Cells{}, false, nil
}

// Stats returns the statistics of the last Solve run
func (s *Solver) Stats() SolveStats {
	return s.stats
}
