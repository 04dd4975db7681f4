package engine

// Piece is a tetromino placed on the board at an anchor position.
// Its occupied cells are always Shape(Kind, Rotation) shifted by the anchor.
type Piece struct {
	Kind     Kind `json:"kind"`
	X        int  `json:"x"`
	Y        int  `json:"y"`
	Rotation int  `json:"rotation"`
}

// NewPiece creates a piece of kind k at (x, y) in rotation state 0.
func NewPiece(k Kind, x, y int) Piece {
	return Piece{Kind: k, X: x, Y: y}
}

// Anchor returns the anchor position.
func (p Piece) Anchor() Point {
	return Point{X: p.X, Y: p.Y}
}

// Cells returns the absolute board cells occupied by the piece.
func (p Piece) Cells() [4]Point {
	shape := Shape(p.Kind, p.Rotation)
	anchor := p.Anchor()
	var cells [4]Point
	for i, off := range shape {
		cells[i] = anchor.Add(off)
	}
	return cells
}

// Moved returns a copy of the piece shifted by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// WithRotation returns a copy of the piece in the given rotation state.
func (p Piece) WithRotation(r int) Piece {
	p.Rotation = normalizeRotation(r)
	return p
}

// Fits reports whether every occupied cell is a valid position on b.
func (p Piece) Fits(b Board) bool {
	for _, c := range p.Cells() {
		if !b.IsPositionValid(c.X, c.Y) {
			return false
		}
	}
	return true
}
