package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func cellSet(cells [4]Point) map[Point]bool {
	set := make(map[Point]bool, 4)
	for _, c := range cells {
		set[c] = true
	}
	return set
}

func TestShapeHasFourDistinctCells(t *testing.T) {
	for _, k := range AllKinds() {
		for r := range 4 {
			assert.Len(t, cellSet(Shape(k, r)), 4, "kind %s rotation %d", k, r)
		}
	}
}

func TestShapeOIsRotationInvariant(t *testing.T) {
	for r := 1; r < 4; r++ {
		assert.Equal(t, Shape(KindO, 0), Shape(KindO, r))
	}
}

func TestShapeTwoStateKinds(t *testing.T) {
	for _, k := range []Kind{KindI, KindS, KindZ} {
		assert.Equal(t, Shape(k, 0), Shape(k, 2), "kind %s", k)
		assert.Equal(t, Shape(k, 1), Shape(k, 3), "kind %s", k)
		assert.NotEqual(t, cellSet(Shape(k, 0)), cellSet(Shape(k, 1)), "kind %s", k)
	}
}

func TestShapeFourStateKindsRotateAboutAnchor(t *testing.T) {
	// Clockwise in a y-down frame maps (x, y) to (-y, x).
	for _, k := range []Kind{KindT, KindJ, KindL} {
		for r := range 4 {
			var turned [4]Point
			for i, c := range Shape(k, r) {
				turned[i] = Point{X: -c.Y, Y: c.X}
			}
			assert.Equal(t, cellSet(Shape(k, r+1)), cellSet(turned), "kind %s %d->%d", k, r, r+1)
		}
	}
}

func TestShapeRotationIsNormalized(t *testing.T) {
	assert.Equal(t, Shape(KindT, 3), Shape(KindT, -1))
	assert.Equal(t, Shape(KindT, 1), Shape(KindT, 5))
	assert.Equal(t, [4]Point{}, Shape(Kind(42), 0))
}

func TestPieceCells(t *testing.T) {
	p := NewPiece(KindT, 4, 10)
	assert.Equal(t, [4]Point{{4, 9}, {3, 10}, {4, 10}, {5, 10}}, p.Cells())

	rotated := p.WithRotation(6)
	assert.Equal(t, 2, rotated.Rotation)
	assert.Equal(t, 0, p.Rotation, "WithRotation must not modify the receiver")
}

func TestKindBlockRoundTrip(t *testing.T) {
	for _, k := range AllKinds() {
		got, ok := k.Block().Kind()
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}
	_, ok := Empty.Kind()
	assert.False(t, ok)
}
