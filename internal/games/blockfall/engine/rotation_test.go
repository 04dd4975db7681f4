package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotateFourTimesReturnsToStart(t *testing.T) {
	srs := NewSRS(true)
	g := newTestGrid()

	for _, k := range AllKinds() {
		t.Run(k.String(), func(t *testing.T) {
			start := NewPiece(k, 4, 10)

			p := start
			for range 4 {
				r := srs.RotateClockwise(p, g)
				require.True(t, r.Ok())
				p = r.Piece
			}
			assert.Equal(t, start, p)

			p = start
			for range 4 {
				r := srs.RotateCounterClockwise(p, g)
				require.True(t, r.Ok())
				p = r.Piece
			}
			assert.Equal(t, start, p)
		})
	}
}

func TestRotateClockwiseThenCounterClockwiseIsIdentity(t *testing.T) {
	srs := NewSRS(true)
	g := newTestGrid()

	for _, k := range AllKinds() {
		for rot := range 4 {
			start := NewPiece(k, 4, 10).WithRotation(rot)
			cw := srs.RotateClockwise(start, g)
			require.True(t, cw.Ok())
			back := srs.RotateCounterClockwise(cw.Piece, g)
			require.True(t, back.Ok())
			assert.Equal(t, start, back.Piece, "kind %s rotation %d", k, rot)
		}
	}
}

// A kick on the way out is not undone on the way back: the inverse rotation
// tries its own table from index 0 and the basic position already fits.
func TestRotateInverseAfterKickKeepsOffset(t *testing.T) {
	srs := NewSRS(true)
	g := newTestGrid()
	start := NewPiece(KindI, 0, 10).WithRotation(1)
	require.True(t, start.Fits(g))

	cw := srs.RotateClockwise(start, g)
	require.Equal(t, RotationKicked, cw.Outcome)
	assert.Equal(t, 2, cw.KickIndex)
	assert.Equal(t, Point{X: 2, Y: 0}, cw.Kick)
	assert.Equal(t, 2, cw.Piece.X)
	assert.Equal(t, 2, cw.Piece.Rotation)

	back := srs.RotateCounterClockwise(cw.Piece, g)
	require.Equal(t, RotationBasic, back.Outcome)
	assert.Equal(t, start.Rotation, back.Piece.Rotation)
	assert.Equal(t, start.Y, back.Piece.Y)
	assert.Equal(t, 2, back.Piece.X, "position keeps the kick offset")
	assert.NotEqual(t, start, back.Piece)
}

func TestRotateOpenBoardIsBasic(t *testing.T) {
	r := NewSRS(true).RotateClockwise(NewPiece(KindT, 4, 10), newTestGrid())

	assert.Equal(t, RotationBasic, r.Outcome)
	assert.Equal(t, 1, r.Piece.Rotation)
	assert.Equal(t, Point{}, r.Kick)
	assert.Equal(t, 0, r.KickIndex)
}

func TestRotateOKeepsPiece(t *testing.T) {
	start := NewPiece(KindO, 4, 10)
	r := NewSRS(true).RotateClockwise(start, newTestGrid())

	assert.Equal(t, RotationBasic, r.Outcome)
	assert.Equal(t, start, r.Piece)
}

func TestRotateUsesWallKick(t *testing.T) {
	// Vertical I against the left wall cannot turn flat in place.
	start := NewPiece(KindI, 0, 10).WithRotation(1)
	r := NewSRS(true).RotateClockwise(start, newTestGrid())

	require.Equal(t, RotationKicked, r.Outcome)
	assert.Equal(t, 2, r.KickIndex)
	assert.Equal(t, Point{X: 2, Y: 0}, r.Kick)
	assert.Equal(t, Piece{Kind: KindI, X: 2, Y: 10, Rotation: 2}, r.Piece)
	for _, c := range r.Piece.Cells() {
		assert.True(t, c.X >= 0 && c.X < testWidth)
	}
}

func TestRotateFailsWhenBoxedIn(t *testing.T) {
	g := newTestGrid()
	start := NewPiece(KindT, 4, 10)
	own := cellSet(start.Cells())
	for y := range g.Height() {
		for x := range g.Width() {
			if !own[Point{X: x, Y: y}] {
				g.SetCell(x, y, KindZ.Block())
			}
		}
	}

	srs := NewSRS(true)
	for _, r := range []Rotation{srs.RotateClockwise(start, g), srs.RotateCounterClockwise(start, g)} {
		assert.Equal(t, RotationFailed, r.Outcome)
		assert.False(t, r.Ok())
		assert.Equal(t, start, r.Piece)
	}
}

func TestIsTSpin(t *testing.T) {
	// Corners of a T anchored at (4, 10) are (3,9) (5,9) (3,11) (5,11).
	tests := []struct {
		name      string
		piece     Piece
		filled    []Point
		rotated   bool
		detection bool
		want      bool
	}{
		{
			name:      "three corners",
			piece:     NewPiece(KindT, 4, 10),
			filled:    []Point{{3, 9}, {3, 11}, {5, 11}},
			rotated:   true,
			detection: true,
			want:      true,
		},
		{
			name:      "four corners",
			piece:     NewPiece(KindT, 4, 10),
			filled:    []Point{{3, 9}, {5, 9}, {3, 11}, {5, 11}},
			rotated:   true,
			detection: true,
			want:      true,
		},
		{
			name:      "two corners",
			piece:     NewPiece(KindT, 4, 10),
			filled:    []Point{{3, 11}, {5, 11}},
			rotated:   true,
			detection: true,
			want:      false,
		},
		{
			name:      "last action was a move",
			piece:     NewPiece(KindT, 4, 10),
			filled:    []Point{{3, 9}, {3, 11}, {5, 11}},
			rotated:   false,
			detection: true,
			want:      false,
		},
		{
			name:      "not a T",
			piece:     NewPiece(KindL, 4, 10),
			filled:    []Point{{3, 9}, {3, 11}, {5, 11}},
			rotated:   true,
			detection: true,
			want:      false,
		},
		{
			name:      "detection disabled",
			piece:     NewPiece(KindT, 4, 10),
			filled:    []Point{{3, 9}, {3, 11}, {5, 11}},
			rotated:   true,
			detection: false,
			want:      false,
		},
		{
			name:      "wall counts as occupied",
			piece:     NewPiece(KindT, 0, 10).WithRotation(1),
			filled:    []Point{{1, 11}},
			rotated:   true,
			detection: true,
			want:      true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGrid()
			for _, p := range tc.filled {
				g.SetCell(p.X, p.Y, KindJ.Block())
			}
			got := NewSRS(tc.detection).IsTSpin(tc.piece, g, tc.rotated)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRotationOutcomeString(t *testing.T) {
	assert.Equal(t, "failed", RotationFailed.String())
	assert.Equal(t, "basic", RotationBasic.String())
	assert.Equal(t, "kicked", RotationKicked.String())
}
