package engine

import (
	"math/rand"
	"testing"
)

const (
	testWidth  = 10
	testHeight = 22
	testBuffer = 2
)

func newTestGrid() *Grid {
	return NewGrid(testWidth, testHeight, testBuffer)
}

// fillRow fills row y except for the listed columns.
func fillRow(g *Grid, y int, holes ...int) {
	skip := make(map[int]bool, len(holes))
	for _, x := range holes {
		skip[x] = true
	}
	for x := range g.Width() {
		if !skip[x] {
			g.SetCell(x, y, KindJ.Block())
		}
	}
}

func newTestController(t *testing.T, opts Options) (*Controller, *Grid) {
	t.Helper()
	g := newTestGrid()
	c := NewController(g, NewSRS(true), rand.New(rand.NewSource(1)), opts)
	return c, g
}

// place swaps the active piece for p with fresh lifecycle state.
func place(c *Controller, p Piece) {
	c.piece = p
	c.hasPiece = true
	c.life = LifecycleState{}
}
