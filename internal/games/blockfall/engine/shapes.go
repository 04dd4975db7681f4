// Package engine implements the blockfall rule engine: piece shapes, SRS
// rotation with wall kicks, the lock-delay piece lifecycle and the
// combo/back-to-back/perfect-clear scoring formula.
//
// The package is pure logic with no terminal, storage or logging imports.
// Coordinates use a y-down frame: row 0 is the top of the board and a piece
// falls by increasing Y.
package engine

// Kind identifies one of the seven tetromino kinds.
type Kind uint8

const (
	KindI Kind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

// KindCount is the number of tetromino kinds.
const KindCount = 7

// AllKinds returns every kind in declaration order.
func AllKinds() []Kind {
	return []Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}
}

// Valid reports whether k is one of the seven kinds.
func (k Kind) Valid() bool {
	return k < KindCount
}

// String returns the single-letter name of the kind.
func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindO:
		return "O"
	case KindT:
		return "T"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	default:
		return "?"
	}
}

// Block returns the board cell value written when a piece of this kind locks.
func (k Kind) Block() Block {
	return Block(k) + 1
}

// Point is an integer (x, y) pair used for cells and offsets.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p shifted by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// shapes holds the canonical cells for every (kind, rotation), relative to the
// piece anchor. I, S and Z repeat two shapes across opposite parities; O is
// the same in all four states.
var shapes = [KindCount][4][4]Point{
	KindI: {
		{{-1, 0}, {0, 0}, {1, 0}, {2, 0}},
		{{0, -1}, {0, 0}, {0, 1}, {0, 2}},
		{{-1, 0}, {0, 0}, {1, 0}, {2, 0}},
		{{0, -1}, {0, 0}, {0, 1}, {0, 2}},
	},
	KindO: {
		{{0, -1}, {1, -1}, {0, 0}, {1, 0}},
		{{0, -1}, {1, -1}, {0, 0}, {1, 0}},
		{{0, -1}, {1, -1}, {0, 0}, {1, 0}},
		{{0, -1}, {1, -1}, {0, 0}, {1, 0}},
	},
	KindT: {
		{{0, -1}, {-1, 0}, {0, 0}, {1, 0}},
		{{0, -1}, {0, 0}, {1, 0}, {0, 1}},
		{{-1, 0}, {0, 0}, {1, 0}, {0, 1}},
		{{0, -1}, {-1, 0}, {0, 0}, {0, 1}},
	},
	KindS: {
		{{0, -1}, {1, -1}, {-1, 0}, {0, 0}},
		{{0, -1}, {0, 0}, {1, 0}, {1, 1}},
		{{0, -1}, {1, -1}, {-1, 0}, {0, 0}},
		{{0, -1}, {0, 0}, {1, 0}, {1, 1}},
	},
	KindZ: {
		{{-1, -1}, {0, -1}, {0, 0}, {1, 0}},
		{{1, -1}, {0, 0}, {1, 0}, {0, 1}},
		{{-1, -1}, {0, -1}, {0, 0}, {1, 0}},
		{{1, -1}, {0, 0}, {1, 0}, {0, 1}},
	},
	KindJ: {
		{{-1, -1}, {-1, 0}, {0, 0}, {1, 0}},
		{{0, -1}, {1, -1}, {0, 0}, {0, 1}},
		{{-1, 0}, {0, 0}, {1, 0}, {1, 1}},
		{{0, -1}, {0, 0}, {-1, 1}, {0, 1}},
	},
	KindL: {
		{{1, -1}, {-1, 0}, {0, 0}, {1, 0}},
		{{0, -1}, {0, 0}, {0, 1}, {1, 1}},
		{{-1, 0}, {0, 0}, {1, 0}, {-1, 1}},
		{{-1, -1}, {0, -1}, {0, 0}, {0, 1}},
	},
}

// Shape returns the four anchor-relative cells of kind k in the given
// rotation state. Rotation is reduced mod 4; an invalid kind yields the zero
// shape.
func Shape(k Kind, rotation int) [4]Point {
	if !k.Valid() {
		return [4]Point{}
	}
	return shapes[k][normalizeRotation(rotation)]
}

// normalizeRotation maps any integer onto [0, 4).
func normalizeRotation(r int) int {
	r %= 4
	if r < 0 {
		r += 4
	}
	return r
}
