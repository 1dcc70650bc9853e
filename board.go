// board.go
//
// This file implements the Board, one node in the depth-first search
// tree: a partial or complete puzzle configuration together with the
// pieces still waiting to be placed. It also implements the branch
// generation precedence and the geometric orientation pruning.

package lasermaze

import (
	"fmt"
	"strings"
)

// Cells is a full board assignment: NumCells nil-able tokens,
// row-major with index 0 at the south-west corner
type Cells [NumCells]*Token

// Clone returns a deep copy of a cell array
func (c *Cells) Clone() Cells {
	var out Cells
	for i, token := range c {
		if token != nil {
			out[i] = token.Clone()
		}
	}
	return out
}

// Board is one node in the search tree. Every branch clones the whole
// node, so the search is an explicit tree with no shared state between
// siblings.
type Board struct {
	Cells Cells
	// ToPlace is the unordered bag of tokens not yet on the board
	ToPlace []*Token
	// Queue is the specific ordering of the bag currently being
	// tried; pieces are placed back-to-front
	Queue []*Token
	// Targets is the required number of lit targets, 1..3
	Targets int
}

// NewBoard creates a root search node from a puzzle definition
func NewBoard(cells Cells, toPlace []*Token, targets int) *Board {
	return &Board{Cells: cells, ToPlace: toPlace, Targets: targets}
}

// Clone returns a fully independent copy of a Board
func (b *Board) Clone() *Board {
	c := &Board{Cells: b.Cells.Clone(), Targets: b.Targets}
	if len(b.ToPlace) > 0 {
		c.ToPlace = make([]*Token, len(b.ToPlace))
		for i, token := range b.ToPlace {
			c.ToPlace[i] = token.Clone()
		}
	}
	if len(b.Queue) > 0 {
		c.Queue = make([]*Token, len(b.Queue))
		for i, token := range b.Queue {
			c.Queue[i] = token.Clone()
		}
	}
	return c
}

// ResetTokens clears the simulation byproducts (lit/target-lit) from
// every placed token, so the board can be re-simulated
func (b *Board) ResetTokens() {
	for _, token := range b.Cells {
		if token != nil {
			token.Reset()
		}
	}
}

// generateBranches advances this node by one branching dimension.
// It returns (solution, true, nil) when the node turns out to be a
// verified solution, and (zero, false, children) otherwise; an empty
// children list is a dead leaf.
//
// The precedence order matters for performance: placing and orienting
// the laser first anchors the simulation, and committing to a bag
// ordering before placement lets the checker restrict placements to
// the beam's actual footprint.
func (b *Board) generateBranches() (Cells, bool, []*Board) {
	if !b.laserPlacedAndOriented() {
		return Cells{}, false, b.generateLaserBranches()
	}
	if len(b.ToPlace) > 0 {
		return Cells{}, false, b.generateQueueBranches()
	}
	// March the beam. The checker either verifies a solution, or
	// tells us which unoriented pieces the beam reached / which empty
	// cells it crossed.
	checker := newChecker(b.Clone())
	checker.run()
	if checker.Solved() {
		checker.board.ResetTokens()
		return checker.board.Cells, true, nil
	}
	checker.board.ResetTokens()
	return Cells{}, false, checker.branchesAfterRun()
}

// generateLaserBranches handles the first branching dimension: getting
// the laser onto the board with an orientation
func (b *Board) generateLaserBranches() []*Board {
	if b.laserPlacedAndOriented() {
		return nil
	}
	if pos, ok := b.laserPosition(); ok {
		// Placed but not yet rotated
		return b.orientationBranchesAt(pos)
	}
	// Pull the laser out of the bag and try it in every empty cell,
	// in spiral order
	remaining := b.ToPlace[:0:0]
	for _, token := range b.ToPlace {
		if token.Kind != Laser {
			remaining = append(remaining, token)
		}
	}
	b.ToPlace = remaining
	laser := NewToken(Laser, nil, false)
	var result []*Board
	for _, i := range spiralOrder {
		if b.Cells[i] == nil {
			node := b.Clone()
			node.Cells[i] = laser.Clone()
			result = append(result, node.orientationBranchesAt(i)...)
		}
	}
	return result
}

// orientationBranchesAt generates one child per valid orientation of
// the token at the given cell
func (b *Board) orientationBranchesAt(cellIndex int) []*Board {
	token := b.Cells[cellIndex]
	if token == nil {
		return nil
	}
	indices := b.orientationIndices(token.Kind, cellIndex)
	result := make([]*Board, 0, len(indices))
	for _, idx := range indices {
		node := b.Clone()
		node.Cells[cellIndex].Facing = Facing(OrientationFromIndex(idx))
		result = append(result, node)
	}
	return result
}

// orientationIndices returns the orientation ordinals worth trying for
// a piece of the given type at the given cell, pruned by the type's
// rotational symmetry and by the board-exit restrictions
func (b *Board) orientationIndices(kind TokenType, cellIndex int) []int {
	result := kind.OrientationRange()

	// Mirrors and splitters never lose a beam off the board, and the
	// blocker has a single orientation, so their symmetry range is
	// already final
	if kind == BeamSplitter || kind == DoubleMirror || kind == CellBlocker {
		return result
	}

	forbidden := make([]int, 0, 2)
	for _, o := range b.forbiddenOrientations(cellIndex) {
		forbidden = append(forbidden, o.Index())
	}

	switch kind {
	case Laser:
		return pruneIndices(result, forbidden)
	case Checkpoint:
		// 180° symmetry: fold the forbidden ordinals into 0..1
		for i, idx := range forbidden {
			if idx > 1 {
				forbidden[i] = idx - 2
			}
		}
		return pruneIndices(result, forbidden)
	case TargetMirror:
		return b.targetMirrorOrientationIndices(forbidden, cellIndex)
	default:
		return result
	}
}

// targetMirrorOrientationIndices restricts a must-light target from
// facing off the board (an off-board face can never be lit). Free
// targets keep all four orientations.
func (b *Board) targetMirrorOrientationIndices(forbidden []int, cellIndex int) []int {
	token := b.Cells[cellIndex]
	if token == nil || token.Kind != TargetMirror {
		panic("lasermaze: target mirror rotation check on a cell not holding a target mirror")
	}
	result := []int{0, 1, 2, 3}
	if token.MustLight {
		return pruneIndices(result, forbidden)
	}
	return result
}

// blockerAdjacency maps a CellBlocker's cell index to the interior
// cell(s) that inherit the blocker's edge restriction: a beam fired
// through the blocker would leave the board. Corner blockers restrict
// both adjacent edge cells; non-corner edge blockers restrict their
// single interior neighbor.
var blockerAdjacency = map[int][]int{
	// corners
	0: {1, 5}, 4: {3, 9}, 20: {15, 21}, 24: {23, 19},
	// edges, but not corners
	1: {6}, 2: {7}, 3: {8}, 9: {8}, 14: {13}, 19: {18},
	23: {18}, 22: {17}, 21: {16}, 15: {16}, 10: {11}, 5: {6},
}

// cornerAdjacentForbidden gives the forbidden orientations for an edge
// cell whose neighboring corner holds a CellBlocker
var cornerAdjacentForbidden = map[int][2]Orientation{
	1: {South, West}, 3: {South, East}, 9: {South, East},
	19: {North, East}, 23: {North, East}, 21: {North, West},
	15: {North, West}, 5: {South, West},
}

// forbiddenOrientations returns the 0..2 directions a piece at the
// given cell may not face: the board-exit directions of its edge or
// corner, adjusted when a CellBlocker occupies a neighboring cell.
// The computation is purely geometric; the blocker position is the
// only dynamic input.
func (b *Board) forbiddenOrientations(cellIndex int) []Orientation {
	// The center is never an edge cell, regardless of the blocker
	if cellIndex == NumCells/2 {
		return nil
	}

	// The blocker is checked first: a corner blocker changes the
	// answer for its neighboring edge cells
	if blockerIndex, ok := b.blockerPosition(); ok {
		if containsInt(blockerAdjacency[blockerIndex], cellIndex) {
			// A blocker on a non-corner edge forbids exactly its
			// edge's outward direction
			switch {
			case onEdge(northEdgeCells, blockerIndex):
				return []Orientation{North}
			case onEdge(eastEdgeCells, blockerIndex):
				return []Orientation{East}
			case onEdge(southEdgeCells, blockerIndex):
				return []Orientation{South}
			case onEdge(westEdgeCells, blockerIndex):
				return []Orientation{West}
			}
			// The blocker is on a corner and this piece sits on an
			// edge next to it
			pair, ok := cornerAdjacentForbidden[cellIndex]
			if !ok {
				panic("lasermaze: inconsistent blocker adjacency table")
			}
			return []Orientation{pair[0], pair[1]}
		}
	}

	// Plain corner cases
	switch cellIndex {
	case 0:
		return []Orientation{South, West}
	case 4:
		return []Orientation{South, East}
	case 20:
		return []Orientation{North, West}
	case 24:
		return []Orientation{North, East}
	}
	// Plain edge cases
	switch {
	case onEdge(northEdgeCells, cellIndex):
		return []Orientation{North}
	case onEdge(eastEdgeCells, cellIndex):
		return []Orientation{East}
	case onEdge(southEdgeCells, cellIndex):
		return []Orientation{South}
	case onEdge(westEdgeCells, cellIndex):
		return []Orientation{West}
	}
	return nil
}

// laserPosition returns the cell index of the placed laser, if any
func (b *Board) laserPosition() (int, bool) {
	for i, token := range b.Cells {
		if token != nil && token.Kind == Laser {
			return i, true
		}
	}
	return 0, false
}

// blockerPosition returns the cell index of the placed blocker, if any
func (b *Board) blockerPosition() (int, bool) {
	for i, token := range b.Cells {
		if token != nil && token.Kind == CellBlocker {
			return i, true
		}
	}
	return 0, false
}

func (b *Board) laserPlacedAndOriented() bool {
	for _, token := range b.Cells {
		if token != nil && token.Kind == Laser {
			return token.Facing != nil
		}
	}
	return false
}

// AllPlacedOriented reports whether every token on the board has its
// orientation set
func (b *Board) AllPlacedOriented() bool {
	for _, token := range b.Cells {
		if token != nil && token.Facing == nil {
			return false
		}
	}
	return true
}

// String renders the board as a 5x5 grid of token glyphs
func (b *Board) String() string {
	return b.Cells.String()
}

// String renders a cell array as a 5x5 grid of token glyphs,
// north row first, the way the physical board is read
func (c *Cells) String() string {
	var sb strings.Builder
	for row := BoardSize - 1; row >= 0; row-- {
		sb.WriteString(fmt.Sprintf("%d  ", row+1))
		for col := 0; col < BoardSize; col++ {
			sb.WriteString(c[row*BoardSize+col].String())
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("   a  b  c  d  e\n")
	return sb.String()
}
