package engine

import "sort"

// Block is the content of one board cell. Zero is empty; any other value is
// a settled block whose kind is Block-1.
type Block uint8

// Empty is the value of an unoccupied cell.
const Empty Block = 0

// Kind returns the kind that produced this block and whether the cell is
// occupied at all.
func (b Block) Kind() (Kind, bool) {
	if b == Empty {
		return 0, false
	}
	return Kind(b - 1), true
}

// Board is the playfield the engine places pieces on. Row 0 is the top;
// the first BufferRows rows are the spawn buffer above the visible area.
type Board interface {
	Width() int
	Height() int
	Cell(x, y int) Block
	// SetCell writes a cell and reports whether (x, y) was inside the grid.
	SetCell(x, y int, v Block) bool
	// IsPositionValid reports whether a piece cell may occupy (x, y):
	// inside the playable columns and not filled. Rows above the top of the
	// grid are always valid.
	IsPositionValid(x, y int) bool
	// FindCompleteLines returns the filled row indices in ascending order.
	FindCompleteLines() []int
	// ClearLines removes the given rows, shifts everything above them down
	// and returns how many rows were removed.
	ClearLines(rows []int) int
	// IsGameOver reports whether any spawn buffer cell is occupied.
	IsGameOver() bool
}

// Grid is the default Board: a fixed width x height cell array whose top
// bufferRows rows form the spawn buffer.
type Grid struct {
	width      int
	height     int
	bufferRows int
	cells      [][]Block
}

// NewGrid creates an empty grid. height includes the buffer rows.
func NewGrid(width, height, bufferRows int) *Grid {
	g := &Grid{
		width:      width,
		height:     height,
		bufferRows: bufferRows,
	}
	g.cells = make([][]Block, height)
	for y := range g.cells {
		g.cells[y] = make([]Block, width)
	}
	return g
}

func (g *Grid) Width() int      { return g.width }
func (g *Grid) Height() int     { return g.height }
func (g *Grid) BufferRows() int { return g.bufferRows }

func (g *Grid) inside(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) Cell(x, y int) Block {
	if !g.inside(x, y) {
		return Empty
	}
	return g.cells[y][x]
}

func (g *Grid) SetCell(x, y int, v Block) bool {
	if !g.inside(x, y) {
		return false
	}
	g.cells[y][x] = v
	return true
}

func (g *Grid) IsPositionValid(x, y int) bool {
	if x < 0 || x >= g.width || y >= g.height {
		return false
	}
	if y < 0 {
		return true
	}
	return g.cells[y][x] == Empty
}

func (g *Grid) FindCompleteLines() []int {
	var rows []int
	for y := range g.height {
		full := true
		for x := range g.width {
			if g.cells[y][x] == Empty {
				full = false
				break
			}
		}
		if full {
			rows = append(rows, y)
		}
	}
	return rows
}

func (g *Grid) ClearLines(rows []int) int {
	remove := make(map[int]bool, len(rows))
	for _, y := range rows {
		if y >= 0 && y < g.height {
			remove[y] = true
		}
	}
	if len(remove) == 0 {
		return 0
	}

	// Compact surviving rows toward the bottom.
	write := g.height - 1
	for read := g.height - 1; read >= 0; read-- {
		if remove[read] {
			continue
		}
		if write != read {
			copy(g.cells[write], g.cells[read])
		}
		write--
	}
	for ; write >= 0; write-- {
		clear(g.cells[write])
	}
	return len(remove)
}

func (g *Grid) IsGameOver() bool {
	for y := 0; y < g.bufferRows && y < g.height; y++ {
		for x := range g.width {
			if g.cells[y][x] != Empty {
				return true
			}
		}
	}
	return false
}

// IsEmpty reports whether no cell is occupied.
func (g *Grid) IsEmpty() bool {
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] != Empty {
				return false
			}
		}
	}
	return true
}

// Rows returns a deep copy of the cell array, top row first.
func (g *Grid) Rows() [][]Block {
	out := make([][]Block, g.height)
	for y := range g.cells {
		out[y] = append([]Block(nil), g.cells[y]...)
	}
	return out
}

// LoadRows replaces the grid contents. Rows beyond the grid are ignored and
// missing rows are left empty.
func (g *Grid) LoadRows(rows [][]Block) {
	for y := range g.cells {
		clear(g.cells[y])
		if y < len(rows) {
			copy(g.cells[y], rows[y])
		}
	}
}

// isBoardEmpty reports whether every cell of b is empty.
func isBoardEmpty(b Board) bool {
	if g, ok := b.(*Grid); ok {
		return g.IsEmpty()
	}
	for y := range b.Height() {
		for x := range b.Width() {
			if b.Cell(x, y) != Empty {
				return false
			}
		}
	}
	return true
}

// sortedRows returns rows in ascending order without modifying the input.
func sortedRows(rows []int) []int {
	out := append([]int(nil), rows...)
	sort.Ints(out)
	return out
}
