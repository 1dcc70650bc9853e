// puzzle.go
//
// This file implements the Puzzle and Solution wire shapes exchanged
// with the presentation layer, and the high-level solve entry point.

package lasermaze

import (
	"fmt"
	"sort"

	"github.com/bytedance/sonic"
)

// Puzzle is the solver's input: a partially filled board, a bag of
// pieces to add, and the required number of lit targets
type Puzzle struct {
	Targets int      `json:"targets"`
	Grid    Cells    `json:"grid"`
	ToAdd   []*Token `json:"to_be_added"`
}

// puzzleWire mirrors Puzzle with a variable-length grid so that a
// malformed grid length can be reported instead of silently truncated
type puzzleWire struct {
	Targets int      `json:"targets"`
	Grid    []*Token `json:"grid"`
	ToAdd   []*Token `json:"to_be_added"`
}

// ParsePuzzle decodes a puzzle from its JSON wire format and
// normalizes the tokens to their construction-time invariants
func ParsePuzzle(data []byte) (*Puzzle, error) {
	var wire puzzleWire
	if err := sonic.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("invalid puzzle JSON: %w", err)
	}
	if len(wire.Grid) != NumCells {
		return nil, fmt.Errorf("invalid grid: must have %d cells, got %d", NumCells, len(wire.Grid))
	}
	p := &Puzzle{Targets: wire.Targets}
	for i, token := range wire.Grid {
		if token != nil {
			p.Grid[i] = NewToken(token.Kind, token.Facing, token.MustLight)
		}
	}
	for _, token := range wire.ToAdd {
		// Editors pad the to-be-added list with nulls
		if token != nil {
			p.ToAdd = append(p.ToAdd, NewToken(token.Kind, nil, token.MustLight))
		}
	}
	return p, nil
}

// Marshal encodes a puzzle to its JSON wire format
func (p *Puzzle) Marshal() ([]byte, error) {
	return sonic.Marshal(p)
}

// Key returns a canonical serialization of the puzzle, independent of
// bag ordering, suitable as a cache or store key
func (p *Puzzle) Key() string {
	canon := &Puzzle{Targets: p.Targets, Grid: p.Grid.Clone()}
	for i, token := range canon.Grid {
		if token != nil {
			canon.Grid[i] = NewToken(token.Kind, token.Facing, token.MustLight)
		}
	}
	canon.ToAdd = make([]*Token, len(p.ToAdd))
	for i, token := range p.ToAdd {
		canon.ToAdd[i] = NewToken(token.Kind, nil, token.MustLight)
	}
	sort.Slice(canon.ToAdd, func(i, j int) bool {
		a, b := canon.ToAdd[i], canon.ToAdd[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.MustLight && !b.MustLight
	})
	data, err := sonic.Marshal(canon)
	if err != nil {
		// Marshalling a well-formed in-memory puzzle cannot fail
		panic(err)
	}
	return string(data)
}

// Solution is the solver's output: the fully placed and oriented
// board, or Solved=false for a valid but unsolvable puzzle
type Solution struct {
	Solved    bool   `json:"solved"`
	Grid      *Cells `json:"grid,omitempty"`
	Nodes     int    `json:"nodes"`
	ElapsedMS int64  `json:"elapsed_ms"`
}

// Marshal encodes a solution to JSON
func (s *Solution) Marshal() ([]byte, error) {
	return sonic.Marshal(s)
}

// SolvePuzzle runs the search for a puzzle: sequentially for
// workers == 1, on a pool of the given size for workers > 1, and on
// one worker per CPU for workers <= 0. The returned error is non-nil
// only for invalid puzzle definitions.
func SolvePuzzle(p *Puzzle, workers int) (*Solution, error) {
	toPlace := make([]*Token, len(p.ToAdd))
	for i, token := range p.ToAdd {
		toPlace[i] = token.Clone()
	}

	var (
		cells Cells
		found bool
		err   error
		stats SolveStats
	)
	if workers != 1 {
		ps := NewParallelSolver(p.Grid.Clone(), toPlace, p.Targets, workers)
		cells, found, err = ps.Solve()
		stats = ps.Stats()
	} else {
		s := NewSolver(p.Grid.Clone(), toPlace, p.Targets)
		cells, found, err = s.Solve()
		stats = s.Stats()
	}
	if err != nil {
		return nil, err
	}

	sol := &Solution{
		Solved:    found,
		Nodes:     stats.Nodes,
		ElapsedMS: stats.Elapsed.Milliseconds(),
	}
	if found {
		sol.Grid = &cells
	}
	return sol, nil
}
