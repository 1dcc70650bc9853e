// solver_test.go
// This file contains end-to-end tests for the search drivers

package lasermaze

import (
	"errors"
	"runtime"
	"testing"
)

// verifySolution re-simulates a solved cell assignment with a fresh
// checker, independently of the search that produced it
func verifySolution(t *testing.T, cells Cells, targets int) {
	t.Helper()
	b := NewBoard(cells.Clone(), nil, targets)
	b.ResetTokens()
	c := newChecker(b)
	c.run()
	if !c.Solved() {
		t.Errorf("Returned solution does not verify:\n%v", b)
	}
}

func TestSolveStraightLine(t *testing.T) {
	// The smallest well-formed puzzle: a laser and one target, both
	// in the bag
	bag := []*Token{
		NewToken(Laser, nil, false),
		NewToken(TargetMirror, nil, false),
	}
	s := NewSolver(Cells{}, bag, 1)
	cells, found, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !found {
		t.Fatalf("The laser-and-target puzzle must be solvable")
	}
	verifySolution(t, cells, 1)
	if s.Stats().Nodes == 0 {
		t.Errorf("A completed solve must have expanded at least one node")
	}
	// The solution comes back with the simulation byproducts cleared
	for _, token := range cells {
		if token != nil && token.IsTargetLit() {
			t.Errorf("Solution tokens must be reset")
		}
	}
}

func TestSolveWithSplitter(t *testing.T) {
	// Two required targets force the solver to route the beam through
	// the splitter
	bag := []*Token{
		NewToken(Laser, nil, false),
		NewToken(BeamSplitter, nil, false),
		NewToken(TargetMirror, nil, false),
		NewToken(TargetMirror, nil, false),
	}
	s := NewSolver(Cells{}, bag, 2)
	cells, found, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !found {
		t.Fatalf("The splitter puzzle must be solvable")
	}
	verifySolution(t, cells, 2)
}

func TestSolvePreplaced(t *testing.T) {
	// Pre-placed unoriented pieces are oriented lazily, when the
	// beam reaches them
	var grid Cells
	grid[12] = NewToken(TargetMirror, nil, true)
	bag := []*Token{NewToken(Laser, nil, false)}
	s := NewSolver(grid, bag, 1)
	cells, found, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !found {
		t.Fatalf("The pre-placed target puzzle must be solvable")
	}
	if cells[12] == nil || cells[12].Kind != TargetMirror || cells[12].Facing == nil {
		t.Errorf("The solution must keep and orient the pre-placed target")
	}
	verifySolution(t, cells, 1)
}

func TestSolveUnsolvable(t *testing.T) {
	// Three required targets with only one target in the puzzle:
	// valid, but provably unsolvable
	bag := []*Token{
		NewToken(Laser, nil, false),
		NewToken(TargetMirror, nil, false),
	}
	s := NewSolver(Cells{}, bag, 3)
	_, found, err := s.Solve()
	if err != nil {
		t.Fatalf("An unsolvable puzzle is not an invalid one: %v", err)
	}
	if found {
		t.Errorf("One target cannot satisfy three required targets")
	}
}

func TestValidation(t *testing.T) {
	laser := func() *Token { return NewToken(Laser, nil, false) }
	target := func(mustLight bool) *Token { return NewToken(TargetMirror, nil, mustLight) }

	expect := func(bag []*Token, targets int, sentinel error) {
		t.Helper()
		s := NewSolver(Cells{}, bag, targets)
		_, _, err := s.Solve()
		if !errors.Is(err, sentinel) {
			t.Errorf("Expected %v, got %v", sentinel, err)
		}
	}

	// Target count out of range
	expect([]*Token{laser(), target(false)}, 4, ErrTargetCount)
	expect([]*Token{laser(), target(false)}, 0, ErrTargetCount)
	// No laser, or too many
	expect([]*Token{target(false)}, 1, ErrPieceCount)
	expect([]*Token{laser(), laser(), target(false)}, 1, ErrPieceCount)
	// No target at all
	expect([]*Token{laser()}, 1, ErrPieceCount)
	// Third splitter
	expect([]*Token{
		laser(), target(false),
		NewToken(BeamSplitter, nil, false),
		NewToken(BeamSplitter, nil, false),
		NewToken(BeamSplitter, nil, false),
	}, 1, ErrPieceCount)
	// More must-light targets than required targets
	expect([]*Token{laser(), target(true), target(true)}, 1, ErrMustLightCount)
	// A blocker can only be pre-placed
	expect([]*Token{laser(), target(false), NewToken(CellBlocker, nil, false)},
		1, ErrBlockerInBag)

	// Pre-placed pieces count towards cardinality too
	var grid Cells
	grid[0] = NewToken(Laser, Facing(East), false)
	s := NewSolver(grid, []*Token{laser(), target(false)}, 1)
	if _, _, err := s.Solve(); !errors.Is(err, ErrPieceCount) {
		t.Errorf("A second laser on the grid must be rejected, got %v", err)
	}
}

func TestParallelSolve(t *testing.T) {
	bag := func() []*Token {
		return []*Token{
			NewToken(Laser, nil, false),
			NewToken(BeamSplitter, nil, false),
			NewToken(TargetMirror, nil, false),
			NewToken(TargetMirror, nil, false),
		}
	}
	ps := NewParallelSolver(Cells{}, bag(), 2, 4)
	cells, found, err := ps.Solve()
	if err != nil {
		t.Fatalf("Parallel solve failed: %v", err)
	}
	if !found {
		t.Fatalf("The parallel solver must find the same puzzles solvable")
	}
	verifySolution(t, cells, 2)
	if ps.Stats().Nodes == 0 {
		t.Errorf("The parallel solver must report expanded nodes")
	}

	// Exhaustion must terminate every worker
	ps = NewParallelSolver(Cells{}, []*Token{
		NewToken(Laser, nil, false),
		NewToken(TargetMirror, nil, false),
	}, 3, 4)
	if _, found, err := ps.Solve(); err != nil || found {
		t.Errorf("Expected a clean unsolvable result, got found=%v err=%v", found, err)
	}

	// Validation runs before any workers start
	ps = NewParallelSolver(Cells{}, nil, 1, 4)
	if _, _, err := ps.Solve(); !errors.Is(err, ErrPieceCount) {
		t.Errorf("Expected a validation error, got %v", err)
	}

	// A non-positive worker count means one worker per CPU
	ps = NewParallelSolver(Cells{}, bag(), 2, 0)
	if ps.NumWorkers != runtime.NumCPU() {
		t.Errorf("Expected %v workers, got %v", runtime.NumCPU(), ps.NumWorkers)
	}
}

func TestSolvePuzzle(t *testing.T) {
	p := &Puzzle{Targets: 1}
	p.ToAdd = []*Token{
		NewToken(Laser, nil, false),
		NewToken(TargetMirror, nil, false),
	}
	sol, err := SolvePuzzle(p, 1)
	if err != nil {
		t.Fatalf("SolvePuzzle failed: %v", err)
	}
	if !sol.Solved || sol.Grid == nil {
		t.Fatalf("Expected a solved puzzle with a grid")
	}
	verifySolution(t, *sol.Grid, 1)

	// Zero workers selects the per-CPU pool and must agree on
	// solvability
	sol0, err := SolvePuzzle(p, 0)
	if err != nil {
		t.Fatalf("SolvePuzzle with the default pool failed: %v", err)
	}
	if !sol0.Solved || sol0.Grid == nil {
		t.Fatalf("The default pool must find the same puzzle solvable")
	}
	verifySolution(t, *sol0.Grid, 1)

	// The caller's puzzle must not be consumed by the solve
	if len(p.ToAdd) != 2 || p.ToAdd[0].Kind != Laser {
		t.Errorf("SolvePuzzle must leave the input puzzle intact")
	}

	if _, err := SolvePuzzle(&Puzzle{Targets: 9}, 1); err == nil {
		t.Errorf("An invalid puzzle must be reported")
	}
}

func TestSolveChallenge(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping challenge solve in short mode")
	}
	p := Challenge("bonus-1")
	if p == nil {
		t.Fatalf("Challenge catalog is missing bonus-1")
	}
	sol, err := SolvePuzzle(p, 0)
	if err != nil {
		t.Fatalf("Challenge solve failed: %v", err)
	}
	if sol.Nodes == 0 {
		t.Errorf("The challenge search must expand nodes")
	}
	if !sol.Solved {
		t.Fatalf("bonus-1 is a solvable challenge")
	}
	verifySolution(t, *sol.Grid, p.Targets)
}
