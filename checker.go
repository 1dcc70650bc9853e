// checker.go
//
// This file implements the Checker, the beam propagation engine.
// A Checker runs one simulation pass over a board and is discarded
// afterwards; it also derives the checker-driven search branches
// (orientation of beam-paused pieces, footprint placement).

package lasermaze

import "fmt"

// maxActiveLasers bounds the number of simultaneously active beams.
// Two perpendicular beams hitting the same splitter yield four; the
// geometry admits no more, so exceeding this is an internal error.
const maxActiveLasers = 4

// ActiveLaser is one beam front: the cell it last visited and the
// direction it is travelling in
type ActiveLaser struct {
	Cell    int
	Heading Orientation
}

// NextCell returns the cell the beam enters next, or false if the
// beam runs off the board
func (al ActiveLaser) NextCell() (int, bool) {
	switch al.Heading {
	case North:
		if al.Cell >= NumCells-BoardSize {
			return 0, false
		}
		return al.Cell + BoardSize, true
	case East:
		if al.Cell%BoardSize == BoardSize-1 {
			return 0, false
		}
		return al.Cell + 1, true
	case South:
		if al.Cell < BoardSize {
			return 0, false
		}
		return al.Cell - BoardSize, true
	default: // West
		if al.Cell%BoardSize == 0 {
			return 0, false
		}
		return al.Cell - 1, true
	}
}

// Checker is the transient state of one simulation pass. The visited
// table guarantees termination: each (cell, direction) pair is marked
// at most once, so a pass takes at most NumCells*NumDirections steps.
type Checker struct {
	board   *Board
	active  []ActiveLaser
	visited [NumCells][NumDirections]bool
	// unoriented collects cells whose token paused the beam because
	// its orientation is not yet set
	unoriented []int
	// onBoard goes false when any beam leaves the board or hits a
	// solid piece side; the configuration is then not a solution
	onBoard bool
}

// newChecker wraps a board for one simulation pass. The checker
// mutates the board's lit state while tracing, so callers hand it a
// clone or reset the tokens afterwards.
func newChecker(board *Board) *Checker {
	return &Checker{
		board:   board,
		active:  make([]ActiveLaser, 0, maxActiveLasers),
		onBoard: true,
	}
}

// run propagates the beam from the laser until no beam fronts remain
func (c *Checker) run() {
	c.seedLaser()

	for len(c.active) > 0 {
		next := make([]ActiveLaser, 0, maxActiveLasers)
		for _, laser := range c.active {
			pos, ok := laser.NextCell()
			if !ok {
				c.onBoard = false
				continue
			}
			token := c.board.Cells[pos]
			if token == nil {
				// Empty cell: the beam continues unchanged
				c.visited[pos][laser.Heading.Index()] = true
				next = c.appendLaser(next, ActiveLaser{Cell: pos, Heading: laser.Heading})
				continue
			}
			if token.Facing == nil {
				// The beam reached a piece that has not been rotated
				// yet: pause here and let the search branch on its
				// orientation
				c.unoriented = append(c.unoriented, pos)
				continue
			}
			for _, r := range token.OutboundBeams(laser.Heading) {
				if !r.Outbound {
					if !r.Valid {
						c.onBoard = false
					}
					continue
				}
				if c.visited[pos][r.Direction.Index()] {
					// Already traced this segment: the beam has
					// entered a loop, stop following it
					continue
				}
				c.visited[pos][r.Direction.Index()] = true
				next = c.appendLaser(next, ActiveLaser{Cell: pos, Heading: r.Direction})
			}
		}
		c.active = next
	}
}

// appendLaser adds a beam front, dropping duplicates. More than
// maxActiveLasers fronts cannot arise from valid piece interactions.
func (c *Checker) appendLaser(lasers []ActiveLaser, l ActiveLaser) []ActiveLaser {
	for _, existing := range lasers {
		if existing == l {
			return lasers
		}
	}
	if len(lasers) >= maxActiveLasers {
		panic(fmt.Sprintf("lasermaze: more than %d active lasers:\n%v", maxActiveLasers, c.board))
	}
	return append(lasers, l)
}

// seedLaser finds the laser piece and starts the first beam front
// there, in the laser's own direction
func (c *Checker) seedLaser() {
	for i, token := range c.board.Cells {
		if token != nil && token.Kind == Laser {
			if token.Facing == nil {
				panic("lasermaze: checker run with the laser orientation not set")
			}
			c.visited[i][token.Facing.Index()] = true
			c.active = append(c.active, ActiveLaser{Cell: i, Heading: *token.Facing})
			return
		}
	}
}

// Solved evaluates the win condition after run(): exactly the required
// number of targets lit, every must-light target lit, every placed
// token lit, no beam lost off the board or into a solid side, and no
// tokens left unplaced.
func (c *Checker) Solved() bool {
	return c.board.Targets == c.countLitTargets() &&
		c.allRequiredTargetsLit() &&
		c.allTokensLit() &&
		c.onBoard &&
		!c.remainingTokens()
}

func (c *Checker) countLitTargets() int {
	count := 0
	for _, token := range c.board.Cells {
		if token != nil && token.IsTargetLit() {
			count++
		}
	}
	return count
}

func (c *Checker) allRequiredTargetsLit() bool {
	for _, token := range c.board.Cells {
		if token == nil || !token.MustLight {
			continue
		}
		if token.TargetLit == nil {
			panic("lasermaze: must-light flag on a token that is not a target")
		}
		if !*token.TargetLit {
			return false
		}
	}
	return true
}

func (c *Checker) allTokensLit() bool {
	for _, token := range c.board.Cells {
		if token != nil && !token.Lit {
			return false
		}
	}
	return true
}

func (c *Checker) remainingTokens() bool {
	return len(c.board.ToPlace) > 0 || len(c.board.Queue) > 0
}

// emptyBeamCells returns the indices of cells the beam crossed that
// hold no token: the candidate cells for placing the next queued piece
func (c *Checker) emptyBeamCells() []int {
	var result []int
	for i, dirs := range c.visited {
		if c.board.Cells[i] != nil {
			continue
		}
		if dirs[0] || dirs[1] || dirs[2] || dirs[3] {
			result = append(result, i)
		}
	}
	return result
}

// branchesAfterRun derives the next search branches from a finished,
// unsolved pass. Orientation branches for beam-paused pieces come
// first; otherwise the next queued piece is offered to every empty
// cell in the beam's footprint, inside-out. An empty result is a dead
// leaf.
func (c *Checker) branchesAfterRun() []*Board {
	if len(c.unoriented) > 0 {
		var result []*Board
		for _, cellIndex := range c.unoriented {
			result = append(result, c.board.orientationBranchesAt(cellIndex)...)
		}
		return result
	}
	if n := len(c.board.Queue); n > 0 {
		token := c.board.Queue[n-1]
		footprint := c.emptyBeamCells()
		var result []*Board
		for _, i := range spiralOrderReverse {
			if !containsInt(footprint, i) {
				continue
			}
			node := c.board.Clone()
			node.Queue = node.Queue[:n-1]
			node.Cells[i] = token.Clone()
			result = append(result, node)
		}
		return result
	}
	return nil
}
