package engine

// RotationOutcome tells how a rotation attempt resolved.
type RotationOutcome int

const (
	// RotationFailed means no candidate fit; the piece stays as it was.
	RotationFailed RotationOutcome = iota
	// RotationBasic means the unkicked rotation fit.
	RotationBasic
	// RotationKicked means a wall kick offset was needed.
	RotationKicked
)

// String returns a short label for the outcome.
func (o RotationOutcome) String() string {
	switch o {
	case RotationBasic:
		return "basic"
	case RotationKicked:
		return "kicked"
	default:
		return "failed"
	}
}

// Rotation is the result of a rotation attempt. Piece and Kick are only
// meaningful when Outcome is not RotationFailed.
type Rotation struct {
	Outcome   RotationOutcome
	Piece     Piece
	Kick      Point // offset applied, (0, 0) for a basic rotation
	KickIndex int   // index into the kick list that succeeded
}

// Ok reports whether the rotation succeeded.
func (r Rotation) Ok() bool {
	return r.Outcome != RotationFailed
}

// RotationSystem decides how pieces rotate and what counts as a T-spin.
// Alternate rule sets can be swapped in behind this interface.
type RotationSystem interface {
	RotateClockwise(p Piece, b Board) Rotation
	RotateCounterClockwise(p Piece, b Board) Rotation
	// IsTSpin reports whether p, in its current position, qualifies as a
	// T-spin given whether the last successful action was a rotation.
	IsTSpin(p Piece, b Board, lastActionWasRotation bool) bool
}

// SRS is the Super Rotation System with the simplified 3-corner T-spin rule.
type SRS struct {
	TSpinDetection bool
}

var _ RotationSystem = SRS{}

// NewSRS returns the standard rotation system.
func NewSRS(tspinDetection bool) SRS {
	return SRS{TSpinDetection: tspinDetection}
}

func (s SRS) RotateClockwise(p Piece, b Board) Rotation {
	return s.rotate(p, b, p.Rotation+1)
}

func (s SRS) RotateCounterClockwise(p Piece, b Board) Rotation {
	return s.rotate(p, b, p.Rotation+3)
}

// rotate tries each kick candidate in table order and returns the first one
// that fits. The order must not change.
func (s SRS) rotate(p Piece, b Board, target int) Rotation {
	target = normalizeRotation(target)
	kicks := Kicks(p.Kind, p.Rotation, target)

	if len(kicks) == 0 {
		// O: the shape is identical in every state.
		if p.Fits(b) {
			return Rotation{Outcome: RotationBasic, Piece: p}
		}
		return Rotation{Outcome: RotationFailed, Piece: p}
	}

	rotated := p.WithRotation(target)
	for i, kick := range kicks {
		candidate := rotated.Moved(kick.X, kick.Y)
		if !candidate.Fits(b) {
			continue
		}
		if i == 0 {
			return Rotation{Outcome: RotationBasic, Piece: candidate}
		}
		return Rotation{Outcome: RotationKicked, Piece: candidate, Kick: kick, KickIndex: i}
	}
	return Rotation{Outcome: RotationFailed, Piece: p}
}

// tspinCorners are the diagonal neighbours of the anchor.
var tspinCorners = [4]Point{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}

// IsTSpin applies the 3-corner rule: at least three of the four cells
// diagonal to the anchor are off-board or filled. It does not distinguish
// mini from full T-spins.
func (s SRS) IsTSpin(p Piece, b Board, lastActionWasRotation bool) bool {
	if !s.TSpinDetection || p.Kind != KindT || !lastActionWasRotation {
		return false
	}

	occupied := 0
	for _, c := range tspinCorners {
		pos := p.Anchor().Add(c)
		if !b.IsPositionValid(pos.X, pos.Y) {
			occupied++
		}
	}
	return occupied >= 3
}
