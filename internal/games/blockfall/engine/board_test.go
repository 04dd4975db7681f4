package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGridIsPositionValid(t *testing.T) {
	g := newTestGrid()
	g.SetCell(3, 5, KindT.Block())

	assert.True(t, g.IsPositionValid(0, 0))
	assert.True(t, g.IsPositionValid(4, -3), "rows above the grid are open")
	assert.False(t, g.IsPositionValid(-1, -3), "columns are bounded above the grid too")
	assert.False(t, g.IsPositionValid(testWidth, 5))
	assert.False(t, g.IsPositionValid(0, testHeight))
	assert.False(t, g.IsPositionValid(3, 5))
}

func TestGridSetCellOutside(t *testing.T) {
	g := newTestGrid()
	assert.False(t, g.SetCell(-1, 0, KindT.Block()))
	assert.False(t, g.SetCell(0, testHeight, KindT.Block()))
	assert.True(t, g.IsEmpty())
}

func TestGridClearLines(t *testing.T) {
	g := newTestGrid()
	fillRow(g, 21)
	fillRow(g, 20, 0)
	fillRow(g, 19)
	g.SetCell(7, 18, KindS.Block())

	assert.Equal(t, []int{19, 21}, g.FindCompleteLines())

	n := g.ClearLines([]int{21, 19})
	assert.Equal(t, 2, n)

	// The partial row 20 lands on the floor and the loose block follows it.
	assert.Equal(t, Empty, g.Cell(0, 21))
	assert.Equal(t, KindJ.Block(), g.Cell(1, 21))
	assert.Equal(t, KindS.Block(), g.Cell(7, 20))
	assert.Empty(t, g.FindCompleteLines())
	for x := range testWidth {
		assert.Equal(t, Empty, g.Cell(x, 0))
		assert.Equal(t, Empty, g.Cell(x, 19))
	}
}

func TestGridClearLinesIgnoresOutOfRange(t *testing.T) {
	g := newTestGrid()
	fillRow(g, 21)
	assert.Equal(t, 0, g.ClearLines([]int{-1, testHeight}))
	assert.Equal(t, []int{21}, g.FindCompleteLines())
}

func TestGridIsGameOver(t *testing.T) {
	g := newTestGrid()
	g.SetCell(4, testBuffer, KindT.Block())
	assert.False(t, g.IsGameOver(), "first visible row is not part of the buffer")

	g.SetCell(4, testBuffer-1, KindT.Block())
	assert.True(t, g.IsGameOver())
}

func TestGridRowsIsACopy(t *testing.T) {
	g := newTestGrid()
	g.SetCell(1, 1, KindL.Block())

	rows := g.Rows()
	rows[1][1] = Empty
	assert.Equal(t, KindL.Block(), g.Cell(1, 1))

	other := newTestGrid()
	other.LoadRows(g.Rows())
	assert.Equal(t, g.Rows(), other.Rows())
}
