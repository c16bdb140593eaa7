package geometry

import (
	"fmt"
)

// Orientation is the reading direction of a slot in the grid.
type Orientation int

const (
	Right Orientation = iota
	Left
	Down
	Up
)

// ParseOrientation converts the single letter form used in grid files.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "R":
		return Right, nil
	case "L":
		return Left, nil
	case "D":
		return Down, nil
	case "U":
		return Up, nil
	}
	return 0, fmt.Errorf("invalid orientation %q", s)
}

func (o Orientation) String() string {
	switch o {
	case Right:
		return "R"
	case Left:
		return "L"
	case Down:
		return "D"
	case Up:
		return "U"
	}
	return "?"
}

func (o Orientation) IsHorizontal() bool {
	return o == Right || o == Left
}

func (o Orientation) IsVertical() bool {
	return o == Down || o == Up
}

// IsReversed returns true if offset 0 is the far end of the footprint
// rather than the cell with the smallest coordinate.
func (o Orientation) IsReversed() bool {
	return o == Left || o == Up
}

// Parallel returns true if both orientations run along the same axis.
func (o Orientation) Parallel(other Orientation) bool {
	return o.IsHorizontal() == other.IsHorizontal()
}

// Position is a grid cell.
type Position struct {
	X int
	Y int
}

// Geometry is the immutable footprint of a slot: an anchor cell, a direction
// and a length. Offset 0 is always the anchor cell.
type Geometry struct {
	Orientation Orientation
	X           int
	Y           int
	Length      int
}

func (g Geometry) XMin() int {
	if g.Orientation == Left {
		return g.X - g.Length + 1
	}
	return g.X
}

func (g Geometry) XMax() int {
	if g.Orientation == Right {
		return g.X + g.Length - 1
	}
	return g.X
}

func (g Geometry) YMin() int {
	if g.Orientation == Up {
		return g.Y - g.Length + 1
	}
	return g.Y
}

func (g Geometry) YMax() int {
	if g.Orientation == Down {
		return g.Y + g.Length - 1
	}
	return g.Y
}

// PositionAt maps a character offset to the cell it occupies.
func (g Geometry) PositionAt(i int) Position {
	switch g.Orientation {
	case Left:
		return Position{X: g.X - i, Y: g.Y}
	case Down:
		return Position{X: g.X, Y: g.Y + i}
	case Up:
		return Position{X: g.X, Y: g.Y - i}
	}
	return Position{X: g.X + i, Y: g.Y}
}

// Contains returns true if the cell lies inside the footprint.
func (g Geometry) Contains(p Position) bool {
	return p.X >= g.XMin() && p.X <= g.XMax() && p.Y >= g.YMin() && p.Y <= g.YMax()
}

// IsCrossing returns true if the two footprints are perpendicular and share
// exactly one cell.
func (g Geometry) IsCrossing(other Geometry) bool {
	if g.Orientation.Parallel(other.Orientation) {
		return false
	}

	h, v := g, other
	if g.Orientation.IsVertical() {
		h, v = other, g
	}

	return h.XMin() <= v.XMin() && h.XMax() >= v.XMax() &&
		h.YMin() >= v.YMin() && h.YMax() <= v.YMax()
}

// CrossingOffsets returns the character offsets into g and other of the
// shared cell. The result is only meaningful if IsCrossing holds.
func (g Geometry) CrossingOffsets(other Geometry) (int, int) {
	dx := abs(g.X - other.X)
	dy := abs(g.Y - other.Y)
	if g.Orientation.IsHorizontal() {
		return dx, dy
	}
	return dy, dx
}

// IsConflicting returns true if the two footprints do not cross but touch or
// overlap without a free cell between them. Corners may touch, and parallel
// slots on the same line may be adjacent.
func (g Geometry) IsConflicting(other Geometry) bool {
	if g.IsCrossing(other) {
		return false
	}

	above := other.YMax() < g.YMin()
	below := other.YMin() > g.YMax()
	left := other.XMax() < g.XMin()
	right := other.XMin() > g.XMax()

	// corners
	if (above || below) && (left || right) {
		return false
	}

	// sides
	if other.XMax()+1 < g.XMin() || other.XMin()-1 > g.XMax() ||
		other.YMax()+1 < g.YMin() || other.YMin()-1 > g.YMax() {
		return false
	}

	// a run on one line may be split into several slots, as long as they
	// do not share cells
	if g.Orientation.IsHorizontal() && other.Orientation.IsHorizontal() && g.Y == other.Y {
		return other.XMax() >= g.XMin() && other.XMin() <= g.XMax()
	}
	if g.Orientation.IsVertical() && other.Orientation.IsVertical() && g.X == other.X {
		return other.YMax() >= g.YMin() && other.YMin() <= g.YMax()
	}

	return true
}

func (g Geometry) String() string {
	return fmt.Sprintf("%s,%d,%d,%d", g.Orientation, g.X, g.Y, g.Length)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
