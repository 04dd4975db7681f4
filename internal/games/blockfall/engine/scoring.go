package engine

// ClearType classifies a line-clearing placement.
type ClearType int

const (
	ClearSingle ClearType = iota
	ClearDouble
	ClearTriple
	ClearTetris
	ClearTSpinMiniSingle
	ClearTSpinSingle
	ClearTSpinMiniDouble
	ClearTSpinDouble
	ClearTSpinTriple
)

type clearInfo struct {
	name      string
	baseScore int
	lines     int
	difficult bool
}

var clearTable = [...]clearInfo{
	ClearSingle:          {"Single", 100, 1, false},
	ClearDouble:          {"Double", 300, 2, false},
	ClearTriple:          {"Triple", 500, 3, false},
	ClearTetris:          {"Tetris", 800, 4, true},
	ClearTSpinMiniSingle: {"T-Spin Mini Single", 200, 1, true},
	ClearTSpinSingle:     {"T-Spin Single", 800, 1, true},
	ClearTSpinMiniDouble: {"T-Spin Mini Double", 400, 2, true},
	ClearTSpinDouble:     {"T-Spin Double", 1200, 2, true},
	ClearTSpinTriple:     {"T-Spin Triple", 1600, 3, true},
}

func (c ClearType) info() clearInfo {
	if c < 0 || int(c) >= len(clearTable) {
		return clearInfo{name: "Unknown"}
	}
	return clearTable[c]
}

// BaseScore is the points for this clear before the level multiplier.
func (c ClearType) BaseScore() int { return c.info().baseScore }

// Lines is the number of rows this clear removes.
func (c ClearType) Lines() int { return c.info().lines }

// IsDifficult reports whether the clear feeds back-to-back (Tetris or any
// T-spin).
func (c ClearType) IsDifficult() bool { return c.info().difficult }

func (c ClearType) String() string { return c.info().name }

// Classify maps a placement to its clear type. Combinations outside the
// table, including zero lines, return false.
func Classify(lines int, tspin, mini bool) (ClearType, bool) {
	switch {
	case tspin && mini:
		switch lines {
		case 1:
			return ClearTSpinMiniSingle, true
		case 2:
			return ClearTSpinMiniDouble, true
		}
	case tspin:
		switch lines {
		case 1:
			return ClearTSpinSingle, true
		case 2:
			return ClearTSpinDouble, true
		case 3:
			return ClearTSpinTriple, true
		}
	default:
		switch lines {
		case 1:
			return ClearSingle, true
		case 2:
			return ClearDouble, true
		case 3:
			return ClearTriple, true
		case 4:
			return ClearTetris, true
		}
	}
	return 0, false
}

// PerfectClearType is the bonus category for a clear that empties the board.
type PerfectClearType int

const (
	PerfectClearSingle PerfectClearType = iota
	PerfectClearDouble
	PerfectClearTriple
	PerfectClearTetris
)

var perfectClearBonus = [...]int{
	PerfectClearSingle: 800,
	PerfectClearDouble: 1200,
	PerfectClearTriple: 1800,
	PerfectClearTetris: 2000,
}

// Bonus is the points for this perfect clear before the level multiplier.
func (p PerfectClearType) Bonus() int {
	if p < 0 || int(p) >= len(perfectClearBonus) {
		return 0
	}
	return perfectClearBonus[p]
}

func (p PerfectClearType) String() string {
	switch p {
	case PerfectClearSingle:
		return "Perfect Clear Single"
	case PerfectClearDouble:
		return "Perfect Clear Double"
	case PerfectClearTriple:
		return "Perfect Clear Triple"
	case PerfectClearTetris:
		return "Perfect Clear Tetris"
	default:
		return "Unknown"
	}
}

// PerfectClearFor returns the perfect clear category for a number of cleared
// lines, or false when lines is outside 1..4.
func PerfectClearFor(lines int) (PerfectClearType, bool) {
	if lines < 1 || lines > 4 {
		return 0, false
	}
	return PerfectClearType(lines - 1), true
}

// ClearAction is one classified line-clearing placement.
type ClearAction struct {
	Type         ClearType
	PerfectClear *PerfectClearType
}

// ScoreResult is the breakdown of the points awarded for one clear.
type ScoreResult struct {
	Type              ClearType
	BaseScore         int
	ComboBonus        int
	BackToBackBonus   int
	PerfectClearBonus int
	Total             int
	// ComboCount and BackToBackReady are the values after this clear.
	ComboCount      int
	BackToBackReady bool
}

// Score computes the points for a clear from the state before it. It does not
// mutate anything; Scorer.Apply records the result.
func Score(action ClearAction, level, priorCombo int, priorBackToBack bool) ScoreResult {
	r := ScoreResult{Type: action.Type}

	r.BaseScore = action.Type.BaseScore() * level
	if priorCombo > 0 {
		r.ComboBonus = 50 * priorCombo * level
	}
	if action.Type.IsDifficult() && priorBackToBack {
		r.BackToBackBonus = r.BaseScore / 2
	}
	if action.PerfectClear != nil {
		r.PerfectClearBonus = action.PerfectClear.Bonus() * level
	}
	r.Total = r.BaseScore + r.ComboBonus + r.BackToBackBonus + r.PerfectClearBonus

	r.ComboCount = priorCombo + 1
	r.BackToBackReady = action.Type.IsDifficult()
	return r
}

// ScoringState is the scoring memory carried between placements.
type ScoringState struct {
	ComboCount      int  `json:"combo_count"`
	BackToBackReady bool `json:"back_to_back_ready"`
	TotalScore      int  `json:"total_score"`
}

// Scorer owns the running score, combo and back-to-back state.
type Scorer struct {
	state ScoringState
}

// NewScorer returns a scorer with zero state.
func NewScorer() *Scorer {
	return &Scorer{}
}

// State returns a copy of the current scoring state.
func (s *Scorer) State() ScoringState {
	return s.state
}

// SetState replaces the scoring state, used when restoring a saved game.
func (s *Scorer) SetState(st ScoringState) {
	s.state = st
}

// Apply scores a line-clearing placement at the given level and advances
// combo and back-to-back state.
func (s *Scorer) Apply(action ClearAction, level int) ScoreResult {
	r := Score(action, level, s.state.ComboCount, s.state.BackToBackReady)
	s.state.ComboCount = r.ComboCount
	s.state.BackToBackReady = r.BackToBackReady
	s.state.TotalScore += r.Total
	return r
}

// ResetCombo is called for a placement that cleared no lines. Back-to-back
// readiness is left alone.
func (s *Scorer) ResetCombo() {
	s.state.ComboCount = 0
}

// BreakBackToBack clears back-to-back readiness.
func (s *Scorer) BreakBackToBack() {
	s.state.BackToBackReady = false
}

// AddDropPoints adds soft or hard drop points straight to the total.
func (s *Scorer) AddDropPoints(points int) {
	if points > 0 {
		s.state.TotalScore += points
	}
}
