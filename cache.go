// cache.go
//
// This file implements an LRU cache of puzzle solutions, keyed by
// the canonical puzzle serialization.

package lasermaze

import (
	"sync"

	"github.com/hashicorp/golang-lru/simplelru"
)

// solutionCache encapsulates a simple LRU cached map of
// canonical puzzle keys to solutions
type solutionCache struct {
	mux sync.Mutex
	lru *simplelru.LRU
}

// Init initializes an empty solutionCache
func (sc *solutionCache) Init(size int) {
	sc.lru, _ = simplelru.NewLRU(size, nil)
}

// Lookup returns the solution associated with a puzzle key. If the
// key is found in the cache, its solution is returned immediately.
// Otherwise, the given fetchFunc() is called to solve the puzzle
// before storing the solution in the cache. Failed fetches are
// not cached.
func (sc *solutionCache) Lookup(key string, fetchFunc func() (*Solution, error)) (*Solution, error) {
	sc.mux.Lock()
	defer sc.mux.Unlock()
	if sol, ok := sc.lru.Get(key); ok {
		return sol.(*Solution), nil
	}
	sol, err := fetchFunc()
	if err != nil {
		return nil, err
	}
	sc.lru.Add(key, sol)
	return sol, nil
}
