// server.go
//
// This file implements a compact HTTP server that receives
// JSON encoded puzzles and returns JSON encoded solutions.

package lasermaze

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
)

// A class describing incoming requests
type SolveRequest struct {
	Targets int      `json:"targets"`
	Grid    []*Token `json:"grid"`
	ToAdd   []*Token `json:"to_be_added"`
	// Workers overrides the server's worker count for this
	// request when positive
	Workers int `json:"workers"`
}

// The JSON response header
type SolveResponse struct {
	Version   string `json:"version"`
	Solved    bool   `json:"solved"`
	Grid      *Cells `json:"grid,omitempty"`
	Nodes     int    `json:"nodes"`
	ElapsedMS int64  `json:"elapsed_ms"`
}

// Server solves puzzles on behalf of HTTP clients, caching
// solutions and optionally persisting them
type Server struct {
	workers int
	cache   solutionCache
	// store is optional; nil disables persistence
	store *PuzzleStore
}

// NewServer creates a Server that solves with the given number of
// workers and persists through the given store, which may be nil
func NewServer(workers int, store *PuzzleStore) *Server {
	srv := &Server{workers: workers, store: store}
	srv.cache.Init(2048)
	return srv
}

// Handle an incoming request
func (srv *Server) HandleSolve(w http.ResponseWriter, req SolveRequest) {
	if len(req.Grid) != NumCells {
		msg := fmt.Sprintf("Invalid grid. Must be %v cells.\n", NumCells)
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	p := &Puzzle{Targets: req.Targets}
	for i, token := range req.Grid {
		if token != nil {
			p.Grid[i] = NewToken(token.Kind, token.Facing, token.MustLight)
		}
	}
	for _, token := range req.ToAdd {
		if token != nil {
			p.ToAdd = append(p.ToAdd, NewToken(token.Kind, nil, token.MustLight))
		}
	}

	workers := srv.workers
	if req.Workers > 0 {
		workers = req.Workers
	}

	key := p.Key()
	sol, err := srv.cache.Lookup(key, func() (*Solution, error) {
		return SolvePuzzle(p, workers)
	})
	if err != nil {
		// Validation errors: the puzzle definition is malformed
		http.Error(w, err.Error()+"\n", http.StatusBadRequest)
		return
	}

	if srv.store != nil {
		// Persistence is best-effort and must not fail the request
		ctx := context.Background()
		if err := srv.store.SavePuzzle(ctx, p); err != nil {
			pkgLog.Warn().Err(err).Msg("unable to save puzzle")
		} else if err := srv.store.SaveSolution(ctx, key, sol); err != nil {
			pkgLog.Warn().Err(err).Msg("unable to save solution")
		}
	}

	// Return the result as JSON
	result := SolveResponse{
		Version:   "1.0",
		Solved:    sol.Solved,
		Grid:      sol.Grid,
		Nodes:     sol.Nodes,
		ElapsedMS: sol.ElapsedMS,
	}
	data, err := sonic.Marshal(result)
	if err != nil {
		// Unable to generate valid JSON
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(data); err != nil {
		pkgLog.Warn().Err(err).Msg("unable to write response")
	}
}
