package engine

import "math/rand"

// Timing holds the lock-delay constants.
type Timing struct {
	LockDelay        float64 // seconds a grounded piece waits before locking
	MaxLockResets    int     // lock resets allowed while grounded
	MaxPieceLifetime float64 // seconds before a piece is force-locked, <= 0 disables
}

// Options configures a Controller.
type Options struct {
	Timing
	StartLevel     int
	LinesPerLevel  int // 0 keeps the level fixed
	SoftDropPoints int // points per row of soft drop
	HardDropPoints int // points per row of hard drop
}

// DefaultOptions returns guideline-like settings.
func DefaultOptions() Options {
	return Options{
		Timing: Timing{
			LockDelay:        0.5,
			MaxLockResets:    15,
			MaxPieceLifetime: 30,
		},
		StartLevel:     1,
		LinesPerLevel:  10,
		SoftDropPoints: 1,
		HardDropPoints: 2,
	}
}

// LifecycleState is the per-piece timer state.
type LifecycleState struct {
	FallAccumulator       float64 `json:"fall_accumulator"`
	LockTimer             float64 `json:"lock_timer"`
	IsLocking             bool    `json:"is_locking"`
	LockResetCount        int     `json:"lock_reset_count"`
	LifetimeTimer         float64 `json:"lifetime_timer"`
	LastActionWasRotation bool    `json:"last_action_was_rotation"`
}

// Phase is the lifecycle phase of the active piece.
type Phase int

const (
	PhaseNoPiece Phase = iota
	PhaseFalling
	PhaseLocking
	PhaseLocked
)

func (p Phase) String() string {
	switch p {
	case PhaseFalling:
		return "falling"
	case PhaseLocking:
		return "locking"
	case PhaseLocked:
		return "locked"
	default:
		return "no-piece"
	}
}

// PendingClear is a placement that completed lines and is waiting for the
// host to finish its clear animation.
type PendingClear struct {
	Rows  []int `json:"rows"`
	TSpin bool  `json:"tspin"`
	Mini  bool  `json:"mini"`
}

// ClearEvent describes a finished line clear.
type ClearEvent struct {
	Rows         []int
	Lines        int
	TSpin        bool
	Classified   bool // false when the combination is not in the clear table
	Type         ClearType
	PerfectClear *PerfectClearType
	Score        ScoreResult
	LevelUp      bool
}

// Controller owns the falling piece and turns timer ticks and player input
// into placements. It is single-threaded; the host calls Update once per
// frame and simply stops calling it to pause.
type Controller struct {
	board    Board
	rotation RotationSystem
	scorer   *Scorer
	rng      *rand.Rand
	opts     Options

	spawn    Point
	piece    Piece
	hasPiece bool
	next     Kind
	life     LifecycleState

	level        int
	lines        int
	dropInterval float64

	pending   *PendingClear
	lastClear *ClearEvent
	gameOver  bool
}

// NewController creates a controller on an empty board and spawns the first
// piece. rng drives piece selection.
func NewController(b Board, rs RotationSystem, rng *rand.Rand, opts Options) *Controller {
	if opts.StartLevel < 1 {
		opts.StartLevel = 1
	}

	c := &Controller{
		board:    b,
		rotation: rs,
		scorer:   NewScorer(),
		rng:      rng,
		opts:     opts,
		spawn:    SpawnPoint(b),
		level:    opts.StartLevel,
	}
	c.next = c.drawKind()
	c.spawnPiece()
	return c
}

// SpawnPoint is the anchor where new pieces appear: the middle column of the
// bottom spawn buffer row.
func SpawnPoint(b Board) Point {
	y := 1
	if g, ok := b.(*Grid); ok && g.BufferRows() > 0 {
		y = g.BufferRows() - 1
	}
	return Point{X: (b.Width() - 1) / 2, Y: y}
}

func (c *Controller) Board() Board                 { return c.board }
func (c *Controller) Next() Kind                   { return c.next }
func (c *Controller) Lifecycle() LifecycleState    { return c.life }
func (c *Controller) Scoring() ScoringState        { return c.scorer.State() }
func (c *Controller) Score() int                   { return c.scorer.State().TotalScore }
func (c *Controller) Level() int                   { return c.level }
func (c *Controller) Lines() int                   { return c.lines }
func (c *Controller) GameOver() bool               { return c.gameOver }
func (c *Controller) DropIntervalSeconds() float64 { return c.dropInterval }

// Piece returns the active piece, if any.
func (c *Controller) Piece() (Piece, bool) {
	return c.piece, c.hasPiece
}

// Pending returns the line clear waiting for CompleteLineClear.
func (c *Controller) Pending() (PendingClear, bool) {
	if c.pending == nil {
		return PendingClear{}, false
	}
	return *c.pending, true
}

// LastClear returns the most recent completed line clear, if any.
func (c *Controller) LastClear() (ClearEvent, bool) {
	if c.lastClear == nil {
		return ClearEvent{}, false
	}
	return *c.lastClear, true
}

// Phase reports the lifecycle phase.
func (c *Controller) Phase() Phase {
	switch {
	case c.pending != nil:
		return PhaseLocked
	case c.gameOver || !c.hasPiece:
		return PhaseNoPiece
	case c.life.IsLocking:
		return PhaseLocking
	default:
		return PhaseFalling
	}
}

// active reports whether gameplay input and timers apply right now.
func (c *Controller) active() bool {
	return !c.gameOver && c.pending == nil && c.hasPiece
}

// Update advances the piece timers by dt seconds. dt must be finite and
// non-negative.
func (c *Controller) Update(dt float64) {
	if !c.active() {
		return
	}

	c.life.LifetimeTimer += dt
	c.life.FallAccumulator += dt

	if c.opts.MaxPieceLifetime > 0 && c.life.LifetimeTimer >= c.opts.MaxPieceLifetime {
		c.lockPiece()
		return
	}

	if c.life.IsLocking {
		c.life.LockTimer += dt
		if c.life.LockTimer >= c.opts.LockDelay {
			c.lockPiece()
		}
		return
	}

	if c.life.FallAccumulator >= c.dropInterval {
		c.attemptDescent()
		c.life.FallAccumulator = 0
	}
}

// canDescend reports whether the piece could move one row down from where it
// is now. Nothing is committed.
func (c *Controller) canDescend() bool {
	return c.piece.Moved(0, 1).Fits(c.board)
}

// attemptDescent moves the piece one row down if possible. On failure the
// piece starts locking; an already running lock timer is left alone.
func (c *Controller) attemptDescent() bool {
	candidate := c.piece.Moved(0, 1)
	if candidate.Fits(c.board) {
		c.piece = candidate
		c.life.IsLocking = false
		c.life.LockTimer = 0
		c.life.LastActionWasRotation = false
		return true
	}

	if !c.life.IsLocking {
		c.life.IsLocking = true
		c.life.LockTimer = 0
	}
	return false
}

// Move shifts the piece by (dx, dy). It reports false, leaving every timer
// untouched, when the target does not fit.
func (c *Controller) Move(dx, dy int) bool {
	if !c.active() {
		return false
	}

	candidate := c.piece.Moved(dx, dy)
	if !candidate.Fits(c.board) {
		return false
	}

	c.piece = candidate
	c.life.LastActionWasRotation = false
	c.afterSuccessfulAction()
	return true
}

// SoftDrop moves the piece one row down and awards soft drop points.
func (c *Controller) SoftDrop() bool {
	if !c.Move(0, 1) {
		return false
	}
	c.life.FallAccumulator = 0
	c.scorer.AddDropPoints(c.opts.SoftDropPoints)
	return true
}

// RotateClockwise rotates the active piece clockwise, with kicks.
func (c *Controller) RotateClockwise() Rotation {
	if !c.active() {
		return Rotation{Outcome: RotationFailed, Piece: c.piece}
	}
	return c.commitRotation(c.rotation.RotateClockwise(c.piece, c.board))
}

// RotateCounterClockwise rotates the active piece counterclockwise, with
// kicks.
func (c *Controller) RotateCounterClockwise() Rotation {
	if !c.active() {
		return Rotation{Outcome: RotationFailed, Piece: c.piece}
	}
	return c.commitRotation(c.rotation.RotateCounterClockwise(c.piece, c.board))
}

func (c *Controller) commitRotation(r Rotation) Rotation {
	if !r.Ok() {
		return r
	}
	c.piece = r.Piece
	c.life.LastActionWasRotation = true
	c.afterSuccessfulAction()
	return r
}

// afterSuccessfulAction re-evaluates groundedness from the piece's new
// position after a move or rotation.
func (c *Controller) afterSuccessfulAction() {
	if c.life.IsLocking {
		c.resetLockDelay()
		return
	}
	if !c.canDescend() {
		c.life.IsLocking = true
		c.life.LockTimer = 0
	}
}

// resetLockDelay re-arms the lock delay. A piece that can fall again gets
// its full reset budget back. A grounded piece spends one reset each time,
// up to MaxLockResets.
func (c *Controller) resetLockDelay() {
	if c.canDescend() {
		c.life.IsLocking = false
		c.life.LockTimer = 0
		c.life.LockResetCount = 0
		return
	}

	if c.life.LockResetCount < c.opts.MaxLockResets {
		c.life.IsLocking = true
		c.life.LockTimer = 0
		c.life.LockResetCount++
		return
	}

	// Denied: the timer still restarts but the count stays at the cap.
	// MaxPieceLifetime bounds how long a piece can be kept alive this way.
	c.life.IsLocking = true
	c.life.LockTimer = 0
}

// HardDrop drops the piece as far as it goes and locks it at once. It
// returns the number of rows dropped.
func (c *Controller) HardDrop() int {
	if !c.active() {
		return 0
	}

	rows := 0
	for c.attemptDescent() {
		rows++
	}
	c.scorer.AddDropPoints(rows * c.opts.HardDropPoints)
	c.lockPiece()
	return rows
}

// lockPiece writes the piece into the board and either parks the placement
// for a line clear or moves straight on to the next piece.
func (c *Controller) lockPiece() {
	tspin := c.rotation.IsTSpin(c.piece, c.board, c.life.LastActionWasRotation)

	block := c.piece.Kind.Block()
	for _, cell := range c.piece.Cells() {
		c.board.SetCell(cell.X, cell.Y, block)
	}

	c.hasPiece = false
	c.life = LifecycleState{}

	rows := c.board.FindCompleteLines()
	if len(rows) > 0 {
		c.pending = &PendingClear{Rows: rows, TSpin: tspin}
		return
	}

	c.scorer.ResetCombo()
	if c.board.IsGameOver() {
		c.gameOver = true
		return
	}
	c.spawnPiece()
}

// CompleteLineClear removes the pending rows, scores the clear and spawns
// the next piece. The host calls it once its clear animation is done.
func (c *Controller) CompleteLineClear() (ClearEvent, bool) {
	if c.pending == nil {
		return ClearEvent{}, false
	}
	p := c.pending
	c.pending = nil

	rows := sortedRows(p.Rows)
	n := c.board.ClearLines(rows)
	ev := ClearEvent{Rows: rows, Lines: n, TSpin: p.TSpin}

	if t, ok := Classify(n, p.TSpin, p.Mini); ok {
		action := ClearAction{Type: t}
		if isBoardEmpty(c.board) {
			if pc, ok := PerfectClearFor(n); ok {
				action.PerfectClear = &pc
			}
		}
		ev.Classified = true
		ev.Type = t
		ev.PerfectClear = action.PerfectClear
		ev.Score = c.scorer.Apply(action, c.level)
	} else {
		c.scorer.ResetCombo()
	}

	c.lines += n
	if c.opts.LinesPerLevel > 0 {
		if lvl := c.opts.StartLevel + c.lines/c.opts.LinesPerLevel; lvl > c.level {
			c.level = lvl
			ev.LevelUp = true
		}
	}
	c.lastClear = &ev

	if c.board.IsGameOver() {
		c.gameOver = true
		return ev, true
	}
	c.spawnPiece()
	return ev, true
}

// spawnPiece brings in the queued kind and queues a new random one. If the
// spawn position is already blocked the game ends.
func (c *Controller) spawnPiece() {
	kind := c.next
	c.next = c.drawKind()

	c.piece = NewPiece(kind, c.spawn.X, c.spawn.Y)
	c.life = LifecycleState{}
	c.dropInterval = DropInterval(c.level)

	if !c.piece.Fits(c.board) {
		c.hasPiece = false
		c.gameOver = true
		return
	}
	c.hasPiece = true
}

func (c *Controller) drawKind() Kind {
	return Kind(c.rng.Intn(KindCount))
}
