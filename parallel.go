// parallel.go
//
// This file implements the parallel search driver: a pool of workers
// sharing one mutex-guarded stack of Board nodes, with a best-effort
// early exit once any worker finds a solution.

package lasermaze

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// ParallelSolver runs the same depth-first search as Solver across a
// pool of workers. Branch generation (the expensive part) happens
// outside the lock; the lock only covers stack pushes and pops.
type ParallelSolver struct {
	initial    *Board
	NumWorkers int

	mu sync.Mutex
	// stack and pending are guarded by mu; pending counts nodes
	// popped but not yet expanded, so workers can tell an exhausted
	// search from a momentarily empty stack
	stack    []*Board
	pending  int
	solution Cells

	found atomic.Bool
	nodes atomic.Int64

	stats SolveStats
}

// NewParallelSolver creates a parallel solver; numWorkers <= 0 means
// one worker per CPU
func NewParallelSolver(cells Cells, toPlace []*Token, targets, numWorkers int) *ParallelSolver {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	root := NewBoard(cells, toPlace, targets)
	return &ParallelSolver{
		initial:    root,
		NumWorkers: numWorkers,
		stack:      []*Board{root.Clone()},
	}
}

// Solve validates the puzzle and runs the worker pool to completion.
// Result semantics match Solver.Solve. Which solution is returned when
// several exist may vary between runs; solvability does not.
func (ps *ParallelSolver) Solve() (Cells, bool, error) {
	if err := validatePuzzle(ps.initial); err != nil {
		pkgLog.Debug().Err(err).Msg("puzzle rejected")
		return Cells{}, false, err
	}

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(ps.NumWorkers)
	for i := 0; i < ps.NumWorkers; i++ {
		go func() {
			defer wg.Done()
			ps.worker()
		}()
	}
	wg.Wait()

	ps.stats = SolveStats{
		Nodes:   int(ps.nodes.Load()),
		Elapsed: time.Since(start),
	}
	pkgLog.Debug().
		Int("workers", ps.NumWorkers).
		Int("nodes", ps.stats.Nodes).
		Dur("elapsed", ps.stats.Elapsed).
		Bool("solved", ps.found.Load()).
		Msg("parallel search finished")
	return ps.solution, ps.found.Load(), nil
}

// worker repeats the pop/branch/push loop until the stack drains or a
// solution is flagged. A worker that observes an empty stack while
// siblings are still expanding nodes yields and retries, since those
// siblings may push new children.
func (ps *ParallelSolver) worker() {
	for {
		if ps.found.Load() {
			return
		}
		ps.mu.Lock()
		if len(ps.stack) == 0 {
			idle := ps.pending == 0
			ps.mu.Unlock()
			if idle {
				return
			}
			runtime.Gosched()
			continue
		}
		node := ps.stack[len(ps.stack)-1]
		ps.stack = ps.stack[:len(ps.stack)-1]
		ps.pending++
		ps.mu.Unlock()

		ps.nodes.Add(1)
		cells, done, children := node.generateBranches()

		ps.mu.Lock()
		ps.pending--
		if done && !ps.found.Load() {
			ps.solution = cells
			ps.found.Store(true)
			ps.mu.Unlock()
			return
		}
		ps.stack = append(ps.stack, children...)
		ps.mu.Unlock()
	}
}

// Stats returns the statistics of the last Solve run
func (ps *ParallelSolver) Stats() SolveStats {
	return ps.stats
}
