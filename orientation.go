// orientation.go
//
// This file implements the four-way Orientation type with the
// reference-frame rotation helpers used by the piece interaction
// tables, together with the fixed board geometry tables.

package lasermaze

import "fmt"

// BoardSize is the side length of the (square) board
const BoardSize = 5

// NumCells is the number of cells on the board. Cells are indexed
// row-major 0..24, with index 0 at the south-west corner, so moving
// north adds BoardSize to the index and moving east adds 1.
const NumCells = BoardSize * BoardSize

// NumDirections is the number of compass directions
const NumDirections = 4

// Orientation is a compass direction, with ordinal values running
// 0..3 clockwise from North
type Orientation int8

// The four orientations, in clockwise ordinal order
const (
	North Orientation = iota
	East
	South
	West
)

var orientationNames = [NumDirections]string{"North", "East", "South", "West"}

// String returns the name of an Orientation
func (o Orientation) String() string {
	if o < 0 || o >= NumDirections {
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
	return orientationNames[o]
}

// Index returns the clockwise ordinal of an Orientation, 0..3
func (o Orientation) Index() int {
	return int(o)
}

// OrientationFromIndex returns the Orientation with the given
// clockwise ordinal, taken modulo 4
func OrientationFromIndex(idx int) Orientation {
	return Orientation(((idx % NumDirections) + NumDirections) % NumDirections)
}

// ReorientInbound converts a world-frame beam direction into the local
// frame of a piece facing o. Subtracting the piece ordinal from the
// beam ordinal lets every piece define its interaction table as if it
// faced North.
func (o Orientation) ReorientInbound(world Orientation) Orientation {
	return OrientationFromIndex(world.Index() - o.Index())
}

// ReorientOutbound is the inverse of ReorientInbound: it converts a
// local-frame outbound beam direction back into the world frame.
func (o Orientation) ReorientOutbound(local Orientation) Orientation {
	return OrientationFromIndex(o.Index() + local.Index())
}

// MarshalJSON encodes an Orientation as its name
func (o Orientation) MarshalJSON() ([]byte, error) {
	return []byte(`"` + o.String() + `"`), nil
}

// UnmarshalJSON decodes an Orientation from its name
func (o *Orientation) UnmarshalJSON(b []byte) error {
	s := string(b)
	for i, name := range orientationNames {
		if s == `"`+name+`"` {
			*o = Orientation(i)
			return nil
		}
	}
	return fmt.Errorf("invalid orientation %s", s)
}

// spiralOrder visits the cells from the south-west corner clockwise
// around the outer ring and then inwards, ending at the center. The
// search places pieces in this order; starting with the structurally
// significant border cells tends to find solutions faster.
var spiralOrder = [NumCells]int{
	0, 1, 2, 3, 4, 9, 14, 19, 24, 23, 22, 21, 20, 15, 10, 5,
	6, 7, 8, 13, 18, 17, 16, 11, 12,
}

// spiralOrderReverse is spiralOrder walked inside-out
var spiralOrderReverse = reverseSpiral()

func reverseSpiral() [NumCells]int {
	var rev [NumCells]int
	for i, cell := range spiralOrder {
		rev[NumCells-1-i] = cell
	}
	return rev
}

// The non-corner cells of each board edge
var (
	northEdgeCells = [3]int{21, 22, 23}
	eastEdgeCells  = [3]int{9, 14, 19}
	southEdgeCells = [3]int{1, 2, 3}
	westEdgeCells  = [3]int{5, 10, 15}
)

func onEdge(edge [3]int, cellIndex int) bool {
	return edge[0] == cellIndex || edge[1] == cellIndex || edge[2] == cellIndex
}
