// store.go
//
// This file implements persistence of puzzles and their solutions
// in Google Cloud Datastore. The server uses the store, when it is
// configured, to keep a record of every puzzle it has solved.

package lasermaze

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/datastore"
	"github.com/bytedance/sonic"
)

const (
	kindPuzzle   = "Puzzle"
	kindSolution = "Solution"
)

// puzzleEntity is the Datastore representation of a puzzle.
// The JSON blob is stored unindexed since it exceeds the 1500 byte
// index limit for string properties.
type puzzleEntity struct {
	JSON      string    `datastore:",noindex"`
	Targets   int       `datastore:"targets"`
	Timestamp time.Time `datastore:"timestamp"`
}

// solutionEntity is the Datastore representation of a solution,
// stored under the same key name as its puzzle
type solutionEntity struct {
	JSON      string    `datastore:",noindex"`
	Solved    bool      `datastore:"solved"`
	Nodes     int       `datastore:"nodes"`
	Timestamp time.Time `datastore:"timestamp"`
}

// PuzzleStore wraps a Datastore client that persists puzzles and
// solutions, keyed by the canonical puzzle serialization
type PuzzleStore struct {
	client *datastore.Client
}

// NewPuzzleStore connects to the Datastore instance of the given
// Google Cloud project
func NewPuzzleStore(ctx context.Context, projectID string) (*PuzzleStore, error) {
	client, err := datastore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("datastore.NewClient: %w", err)
	}
	return &PuzzleStore{client: client}, nil
}

// SavePuzzle stores a puzzle under its canonical key, overwriting
// any previous copy
func (st *PuzzleStore) SavePuzzle(ctx context.Context, p *Puzzle) error {
	data, err := p.Marshal()
	if err != nil {
		return err
	}
	key := datastore.NameKey(kindPuzzle, p.Key(), nil)
	entity := &puzzleEntity{
		JSON:      string(data),
		Targets:   p.Targets,
		Timestamp: time.Now().UTC(),
	}
	_, err = st.client.Put(ctx, key, entity)
	return err
}

// LoadPuzzle fetches a puzzle by its canonical key, returning
// (nil, nil) if no puzzle is stored under the key
func (st *PuzzleStore) LoadPuzzle(ctx context.Context, key string) (*Puzzle, error) {
	var entity puzzleEntity
	err := st.client.Get(ctx, datastore.NameKey(kindPuzzle, key, nil), &entity)
	if err == datastore.ErrNoSuchEntity {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ParsePuzzle([]byte(entity.JSON))
}

// SaveSolution stores a solution under the canonical key of the
// puzzle it solves
func (st *PuzzleStore) SaveSolution(ctx context.Context, puzzleKey string, sol *Solution) error {
	data, err := sol.Marshal()
	if err != nil {
		return err
	}
	key := datastore.NameKey(kindSolution, puzzleKey, nil)
	entity := &solutionEntity{
		JSON:      string(data),
		Solved:    sol.Solved,
		Nodes:     sol.Nodes,
		Timestamp: time.Now().UTC(),
	}
	_, err = st.client.Put(ctx, key, entity)
	return err
}

// LoadSolution fetches a previously stored solution by puzzle key,
// returning (nil, nil) if none is stored
func (st *PuzzleStore) LoadSolution(ctx context.Context, puzzleKey string) (*Solution, error) {
	var entity solutionEntity
	err := st.client.Get(ctx, datastore.NameKey(kindSolution, puzzleKey, nil), &entity)
	if err == datastore.ErrNoSuchEntity {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sol Solution
	if err := sonic.Unmarshal([]byte(entity.JSON), &sol); err != nil {
		return nil, err
	}
	return &sol, nil
}

// Close releases the underlying Datastore client
func (st *PuzzleStore) Close() error {
	return st.client.Close()
}
