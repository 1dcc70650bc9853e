// checker_test.go
// This file contains tests for the beam propagation engine

package lasermaze

import (
	"math/rand"
	"testing"
)

// runChecker simulates a fully assembled board once
func runChecker(cells Cells, targets int) *Checker {
	c := newChecker(NewBoard(cells, nil, targets))
	c.run()
	return c
}

func TestCheckerStraightShot(t *testing.T) {
	// A laser firing straight into a target's absorbing face
	var cells Cells
	cells[0] = NewToken(Laser, Facing(East), false)
	cells[4] = NewToken(TargetMirror, Facing(West), false)
	c := runChecker(cells, 1)
	if !c.Solved() {
		t.Errorf("A straight shot into the target face should solve the board")
	}
	if !c.board.Cells[4].IsTargetLit() {
		t.Errorf("The target face should be lit")
	}

	// The same board with two required targets cannot be solved
	cells[4].Reset()
	if c := runChecker(cells, 2); c.Solved() {
		t.Errorf("One lit target must not satisfy a two-target board")
	}
}

func TestCheckerFullBoard(t *testing.T) {
	// A board exercising every piece type at once: the splitters fan
	// the beam out to three targets, the checkpoint and blocker sit in
	// the beam path, and the double mirror bends the last branch
	var cells Cells
	cells[24] = NewToken(Laser, Facing(West), false)
	cells[22] = NewToken(BeamSplitter, Facing(East), false)
	cells[20] = NewToken(TargetMirror, Facing(East), false)
	cells[17] = NewToken(Checkpoint, Facing(South), false)
	cells[12] = NewToken(CellBlocker, nil, false)
	cells[7] = NewToken(BeamSplitter, Facing(East), false)
	cells[5] = NewToken(TargetMirror, Facing(East), false)
	cells[4] = NewToken(TargetMirror, Facing(West), false)
	cells[2] = NewToken(DoubleMirror, Facing(South), false)

	c := runChecker(cells, 3)
	if !c.Solved() {
		t.Errorf("The full board should be solved:\n%v", c.board)
	}
	for _, i := range []int{20, 5, 4} {
		if !c.board.Cells[i].IsTargetLit() {
			t.Errorf("Target at cell %v should be lit", i)
		}
	}
	for i, token := range c.board.Cells {
		if token != nil && !token.Lit {
			t.Errorf("Token at cell %v (%v) should be lit", i, token.Kind)
		}
	}

	// The identical configuration with a token still unplaced is not
	// a solution
	b := NewBoard(cells.Clone(), []*Token{NewToken(TargetMirror, nil, false)}, 3)
	b.ResetTokens()
	c2 := newChecker(b)
	c2.run()
	if c2.Solved() {
		t.Errorf("A board with unplaced tokens must not count as solved")
	}
}

func TestCheckerMustLight(t *testing.T) {
	// The beam lights one target, but the required one stays dark
	var cells Cells
	cells[0] = NewToken(Laser, Facing(East), false)
	cells[4] = NewToken(TargetMirror, Facing(West), false)
	cells[20] = NewToken(TargetMirror, Facing(North), true)
	if c := runChecker(cells, 1); c.Solved() {
		t.Errorf("An unlit must-light target must not count as solved")
	}
}

func TestCheckerOffBoard(t *testing.T) {
	// The beam leaves the board immediately
	var cells Cells
	cells[0] = NewToken(Laser, Facing(West), false)
	c := runChecker(cells, 1)
	if c.onBoard {
		t.Errorf("A beam leaving the board must clear the on-board flag")
	}
	if c.Solved() {
		t.Errorf("A lost beam must not count as solved")
	}

	// The beam dies against a solid piece side
	cells[0] = NewToken(Laser, Facing(East), false)
	cells[2] = NewToken(Checkpoint, Facing(North), false)
	if c := runChecker(cells, 1); c.onBoard {
		t.Errorf("A beam into a solid side must clear the on-board flag")
	}
}

func TestCheckerLoopTermination(t *testing.T) {
	// The splitter feeds a ring of three double mirrors that closes
	// back on the splitter. Without the visited table the beam would
	// cycle forever; the trace must terminate with every ring member
	// lit.
	var cells Cells
	cells[1] = NewToken(Laser, Facing(North), false)
	cells[6] = NewToken(BeamSplitter, Facing(North), false)
	cells[16] = NewToken(DoubleMirror, Facing(West), false)
	cells[18] = NewToken(DoubleMirror, Facing(South), false)
	cells[8] = NewToken(DoubleMirror, Facing(East), false)
	c := runChecker(cells, 1)
	for _, i := range []int{1, 6, 16, 18, 8} {
		if !c.board.Cells[i].Lit {
			t.Errorf("Ring member at cell %v should be lit", i)
		}
	}
	// The splitter's westward reflections leave the board, so the
	// trace is not a valid configuration, just a terminating one
	if c.onBoard {
		t.Errorf("The westward reflection runs off the board")
	}
}

func TestCheckerPausesOnUnoriented(t *testing.T) {
	// The beam reaches a piece whose orientation is still open: the
	// trace pauses there and the branch generator offers one child
	// per orientation
	var cells Cells
	cells[0] = NewToken(Laser, Facing(East), false)
	cells[4] = NewToken(TargetMirror, nil, false)
	c := runChecker(cells, 1)
	if len(c.unoriented) != 1 || c.unoriented[0] != 4 {
		t.Errorf("Expected the trace to pause at cell 4, got %v", c.unoriented)
	}
	if c.Solved() {
		t.Errorf("A paused trace must not count as solved")
	}
	branches := c.branchesAfterRun()
	if len(branches) != 4 {
		t.Errorf("A free target should branch into 4 orientations, got %v", len(branches))
	}
	for _, node := range branches {
		if node.Cells[4].Facing == nil {
			t.Errorf("Each branch must fix the paused piece's orientation")
		}
	}
}

func TestCheckerFootprintPlacement(t *testing.T) {
	// With nothing left to orient, the next queued piece is offered
	// to every empty cell the beam crossed
	var cells Cells
	cells[0] = NewToken(Laser, Facing(East), false)
	b := NewBoard(cells, nil, 1)
	b.Queue = []*Token{NewToken(TargetMirror, nil, false)}
	c := newChecker(b)
	c.run()
	// The beam crossed cells 1..4 before leaving the board
	footprint := c.emptyBeamCells()
	if len(footprint) != 4 {
		t.Errorf("Expected a footprint of 4 cells, got %v", footprint)
	}
	branches := c.branchesAfterRun()
	if len(branches) != 4 {
		t.Errorf("Expected one placement branch per footprint cell, got %v", len(branches))
	}
	for _, node := range branches {
		if len(node.Queue) != 0 {
			t.Errorf("A placement branch must consume the queued piece")
		}
	}

	// An empty footprint with pieces still queued is a dead leaf
	var walled Cells
	walled[0] = NewToken(Laser, Facing(East), false)
	walled[1] = NewToken(Checkpoint, Facing(North), false)
	wb := NewBoard(walled, nil, 1)
	wb.Queue = []*Token{NewToken(TargetMirror, nil, false)}
	wc := newChecker(wb)
	wc.run()
	if branches := wc.branchesAfterRun(); len(branches) != 0 {
		t.Errorf("A walled-in beam leaves no placement branches, got %v", len(branches))
	}
}

func TestCheckerResetResimulate(t *testing.T) {
	// Resetting the tokens and re-running the trace from the same
	// orientations must reproduce the first run's outcome exactly
	var cells Cells
	cells[24] = NewToken(Laser, Facing(West), false)
	cells[22] = NewToken(BeamSplitter, Facing(East), false)
	cells[20] = NewToken(TargetMirror, Facing(East), false)
	cells[17] = NewToken(Checkpoint, Facing(South), false)
	cells[12] = NewToken(CellBlocker, nil, false)
	cells[7] = NewToken(BeamSplitter, Facing(East), false)
	cells[5] = NewToken(TargetMirror, Facing(East), false)
	cells[4] = NewToken(TargetMirror, Facing(West), false)
	cells[2] = NewToken(DoubleMirror, Facing(South), false)

	b := NewBoard(cells, nil, 3)
	c1 := newChecker(b)
	c1.run()
	var lit1, targetLit1 [NumCells]bool
	for i, token := range b.Cells {
		if token != nil {
			lit1[i] = token.Lit
			targetLit1[i] = token.IsTargetLit()
		}
	}

	b.ResetTokens()
	c2 := newChecker(b)
	c2.run()
	for i, token := range b.Cells {
		if token == nil {
			continue
		}
		if token.Lit != lit1[i] || token.IsTargetLit() != targetLit1[i] {
			t.Errorf("Cell %v differs after reset and resimulation", i)
		}
	}
	if c1.Solved() != c2.Solved() {
		t.Errorf("The solved verdict must survive reset and resimulation")
	}
}

func TestCheckerRandomTermination(t *testing.T) {
	// Any fully oriented board must trace to completion; the visited
	// table bounds the walk regardless of the piece arrangement
	rng := rand.New(rand.NewSource(42))
	randomFacing := func() *Orientation {
		return Facing(OrientationFromIndex(rng.Intn(NumDirections)))
	}
	for round := 0; round < 200; round++ {
		var cells Cells
		// No splitters here: the beam-count invariant only holds for
		// cardinality-valid boards, and these are deliberately not
		pieces := []TokenType{
			Laser, TargetMirror, TargetMirror, TargetMirror, TargetMirror,
			DoubleMirror, DoubleMirror, Checkpoint, CellBlocker,
		}
		for _, kind := range pieces {
			// Skip some non-laser pieces so board densities vary
			if kind != Laser && rng.Intn(3) == 0 {
				continue
			}
			cell := rng.Intn(NumCells)
			for cells[cell] != nil {
				cell = (cell + 1) % NumCells
			}
			cells[cell] = NewToken(kind, randomFacing(), false)
		}
		c := runChecker(cells, 1)
		_ = c.Solved()
	}
}

func TestCheckerSplitterFanOut(t *testing.T) {
	// A single splitter produces two beam fronts; both must be traced
	var cells Cells
	cells[2] = NewToken(Laser, Facing(North), false)
	cells[12] = NewToken(BeamSplitter, Facing(North), false)
	cells[10] = NewToken(TargetMirror, Facing(East), false)
	cells[22] = NewToken(TargetMirror, Facing(South), false)
	c := runChecker(cells, 2)
	if !c.Solved() {
		t.Errorf("Both splitter branches should reach their targets:\n%v", c.board)
	}
}
