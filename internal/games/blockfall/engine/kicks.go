package engine

// Wall kick data for the Super Rotation System. The guideline tables are
// published with y pointing up; the values below are the same tables with dy
// negated to match the y-down board.
//
// Keyed by [from][to]. Only the eight single-step transitions are filled in.
var (
	jlstzKicks = map[[2]int][]Point{
		{0, 1}: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
		{1, 0}: {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
		{1, 2}: {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
		{2, 1}: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
		{2, 3}: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
		{3, 2}: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
		{3, 0}: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
		{0, 3}: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	}

	iKicks = map[[2]int][]Point{
		{0, 1}: {{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}},
		{1, 0}: {{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}},
		{1, 2}: {{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}},
		{2, 1}: {{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}},
		{2, 3}: {{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}},
		{3, 2}: {{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}},
		{3, 0}: {{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}},
		{0, 3}: {{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}},
	}

	basicOnly = []Point{{0, 0}}
)

// Kicks returns the ordered offsets to try when rotating kind k from one
// rotation state to another. O never kicks and gets an empty list. A pair
// that is not a single-step transition gets the lone (0, 0) entry.
//
// The returned slice is shared table data and must not be modified.
func Kicks(k Kind, from, to int) []Point {
	if k == KindO {
		return nil
	}

	table := jlstzKicks
	if k == KindI {
		table = iKicks
	}

	offsets, ok := table[[2]int{normalizeRotation(from), normalizeRotation(to)}]
	if !ok {
		return basicOnly
	}
	return offsets
}
