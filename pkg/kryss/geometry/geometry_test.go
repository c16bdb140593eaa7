package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func g(o Orientation, x, y, length int) Geometry {
	return Geometry{Orientation: o, X: x, Y: y, Length: length}
}

func TestBoundingBox(t *testing.T) {
	type tc struct {
		Name                   string
		Geometry               Geometry
		XMin, XMax, YMin, YMax int
	}

	for _, tt := range []tc{
		{Name: "right grows x", Geometry: g(Right, 2, 3, 4), XMin: 2, XMax: 5, YMin: 3, YMax: 3},
		{Name: "left shrinks x", Geometry: g(Left, 5, 3, 4), XMin: 2, XMax: 5, YMin: 3, YMax: 3},
		{Name: "down grows y", Geometry: g(Down, 2, 3, 4), XMin: 2, XMax: 2, YMin: 3, YMax: 6},
		{Name: "up shrinks y", Geometry: g(Up, 2, 6, 4), XMin: 2, XMax: 2, YMin: 3, YMax: 6},
		{Name: "single cell", Geometry: g(Right, 0, 0, 1), XMin: 0, XMax: 0, YMin: 0, YMax: 0},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(tt.XMin, tt.Geometry.XMin())
			assert.Equal(tt.XMax, tt.Geometry.XMax())
			assert.Equal(tt.YMin, tt.Geometry.YMin())
			assert.Equal(tt.YMax, tt.Geometry.YMax())
		})
	}
}

func TestPositionAt(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(Position{X: 4, Y: 1}, g(Right, 2, 1, 3).PositionAt(2))
	assert.Equal(Position{X: 0, Y: 1}, g(Left, 2, 1, 3).PositionAt(2))
	assert.Equal(Position{X: 2, Y: 3}, g(Down, 2, 1, 3).PositionAt(2))
	assert.Equal(Position{X: 2, Y: 3}, g(Up, 2, 5, 3).PositionAt(2))

	for _, o := range []Orientation{Right, Left, Down, Up} {
		geo := g(o, 5, 5, 4)
		for i := 0; i < geo.Length; i++ {
			assert.True(geo.Contains(geo.PositionAt(i)), "%s offset %d", geo, i)
		}
		assert.Equal(Position{X: 5, Y: 5}, geo.PositionAt(0))
	}
}

func TestContains(t *testing.T) {
	assert := assert.New(t)
	geo := g(Down, 1, 1, 3)

	assert.True(geo.Contains(Position{X: 1, Y: 1}))
	assert.True(geo.Contains(Position{X: 1, Y: 3}))
	assert.False(geo.Contains(Position{X: 1, Y: 4}))
	assert.False(geo.Contains(Position{X: 0, Y: 2}))
}

func TestParseOrientation(t *testing.T) {
	assert := assert.New(t)

	for _, o := range []Orientation{Right, Left, Down, Up} {
		parsed, err := ParseOrientation(o.String())
		assert.NoError(err)
		assert.Equal(o, parsed)
	}

	_, err := ParseOrientation("X")
	assert.Error(err)
	assert.True(Left.IsReversed())
	assert.True(Up.IsReversed())
	assert.False(Right.IsReversed())
	assert.True(Left.Parallel(Right))
	assert.False(Left.Parallel(Up))
}

func TestIsCrossing(t *testing.T) {
	type tc struct {
		Name     string
		A, B     Geometry
		Crossing bool
		AI, BI   int
	}

	for _, tt := range []tc{
		{
			Name:     "middle letters",
			A:        g(Right, 0, 1, 3),
			B:        g(Down, 1, 0, 3),
			Crossing: true, AI: 1, BI: 1,
		},
		{
			Name:     "first letter of vertical",
			A:        g(Right, 0, 0, 3),
			B:        g(Down, 1, 0, 3),
			Crossing: true, AI: 1, BI: 0,
		},
		{
			Name:     "reversed horizontal",
			A:        g(Left, 4, 2, 5),
			B:        g(Down, 1, 0, 3),
			Crossing: true, AI: 3, BI: 2,
		},
		{
			Name:     "reversed vertical",
			A:        g(Right, 0, 1, 4),
			B:        g(Up, 3, 3, 4),
			Crossing: true, AI: 3, BI: 2,
		},
		{
			Name: "parallel",
			A:    g(Right, 0, 0, 3),
			B:    g(Right, 0, 1, 3),
		},
		{
			Name: "vertical passes beside",
			A:    g(Right, 0, 1, 3),
			B:    g(Down, 3, 0, 3),
		},
		{
			Name: "vertical ends above",
			A:    g(Right, 0, 3, 3),
			B:    g(Down, 1, 0, 3),
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			assert := assert.New(t)

			assert.Equal(tt.Crossing, tt.A.IsCrossing(tt.B))
			assert.Equal(tt.Crossing, tt.B.IsCrossing(tt.A))
			if !tt.Crossing {
				return
			}

			ai, bi := tt.A.CrossingOffsets(tt.B)
			assert.Equal(tt.AI, ai)
			assert.Equal(tt.BI, bi)
			assert.Equal(tt.A.PositionAt(ai), tt.B.PositionAt(bi))

			bi2, ai2 := tt.B.CrossingOffsets(tt.A)
			assert.Equal(ai, ai2)
			assert.Equal(bi, bi2)
		})
	}
}

func TestCrossingSymmetry(t *testing.T) {
	var all []Geometry
	for _, o := range []Orientation{Right, Left, Down, Up} {
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				for length := 1; length <= 3; length++ {
					geo := g(o, x, y, length)
					if geo.XMin() < 0 || geo.YMin() < 0 {
						continue
					}
					all = append(all, geo)
				}
			}
		}
	}

	for _, a := range all {
		for _, b := range all {
			if a.IsCrossing(b) != b.IsCrossing(a) {
				t.Fatalf("crossing not symmetric for %s and %s", a, b)
			}
			if a.IsConflicting(b) != b.IsConflicting(a) {
				t.Fatalf("conflict not symmetric for %s and %s", a, b)
			}
			if !a.IsCrossing(b) {
				continue
			}
			ai, bi := a.CrossingOffsets(b)
			if a.PositionAt(ai) != b.PositionAt(bi) {
				t.Fatalf("offsets %d/%d of %s and %s point to different cells", ai, bi, a, b)
			}
		}
	}
}

func TestIsConflicting(t *testing.T) {
	type tc struct {
		Name        string
		A, B        Geometry
		Conflicting bool
	}

	for _, tt := range []tc{
		{Name: "crossing", A: g(Right, 0, 1, 3), B: g(Down, 1, 0, 3)},
		{Name: "far apart", A: g(Right, 0, 0, 3), B: g(Right, 0, 2, 3)},
		{Name: "diagonal corner", A: g(Right, 0, 0, 3), B: g(Down, 3, 1, 3)},
		{Name: "same row adjacent", A: g(Right, 0, 0, 3), B: g(Right, 3, 0, 2)},
		{Name: "same column adjacent", A: g(Down, 0, 0, 3), B: g(Up, 0, 4, 2)},
		{Name: "same row overlapping", A: g(Right, 0, 0, 3), B: g(Right, 2, 0, 3), Conflicting: true},
		{Name: "stacked rows", A: g(Right, 0, 0, 3), B: g(Right, 0, 1, 3), Conflicting: true},
		{Name: "perpendicular touching end", A: g(Right, 0, 0, 3), B: g(Down, 3, 0, 3), Conflicting: true},
		{Name: "perpendicular touching side", A: g(Right, 0, 1, 3), B: g(Down, 1, 2, 3), Conflicting: true},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(tt.Conflicting, tt.A.IsConflicting(tt.B))
			assert.Equal(tt.Conflicting, tt.B.IsConflicting(tt.A))
		})
	}
}
