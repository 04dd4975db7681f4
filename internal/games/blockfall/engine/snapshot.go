package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidSnapshot is returned when a snapshot cannot be restored.
var ErrInvalidSnapshot = errors.New("engine: invalid snapshot")

// Snapshot is a plain, serializable copy of everything a Controller needs to
// resume a game. The RNG is not captured; a restored game draws its future
// pieces from whatever source the new controller was built with.
type Snapshot struct {
	Width      int            `json:"width"`
	Height     int            `json:"height"`
	Board      [][]Block      `json:"board"`
	Piece      *Piece         `json:"piece,omitempty"`
	Next       Kind           `json:"next"`
	Lifecycle  LifecycleState `json:"lifecycle"`
	Scoring    ScoringState   `json:"scoring"`
	Level      int            `json:"level"`
	StartLevel int            `json:"start_level"`
	Lines      int            `json:"lines"`
	Pending    *PendingClear  `json:"pending,omitempty"`
	GameOver   bool           `json:"game_over"`
}

// Snapshot captures the controller state.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Width:      c.board.Width(),
		Height:     c.board.Height(),
		Board:      boardRows(c.board),
		Next:       c.next,
		Lifecycle:  c.life,
		Scoring:    c.scorer.State(),
		Level:      c.level,
		StartLevel: c.opts.StartLevel,
		Lines:      c.lines,
		GameOver:   c.gameOver,
	}
	if c.hasPiece {
		p := c.piece
		s.Piece = &p
	}
	if c.pending != nil {
		p := PendingClear{
			Rows:  append([]int(nil), c.pending.Rows...),
			TSpin: c.pending.TSpin,
			Mini:  c.pending.Mini,
		}
		s.Pending = &p
	}
	return s
}

// Restore replaces the controller state with s. The board must have the same
// dimensions as the one the snapshot was taken from.
func (c *Controller) Restore(s Snapshot) error {
	if s.Width != c.board.Width() || s.Height != c.board.Height() {
		return fmt.Errorf("%w: board is %dx%d, snapshot is %dx%d",
			ErrInvalidSnapshot, c.board.Width(), c.board.Height(), s.Width, s.Height)
	}
	if !s.Next.Valid() {
		return fmt.Errorf("%w: next kind %d", ErrInvalidSnapshot, s.Next)
	}
	if s.Piece != nil {
		if !s.Piece.Kind.Valid() {
			return fmt.Errorf("%w: piece kind %d", ErrInvalidSnapshot, s.Piece.Kind)
		}
		if s.Piece.Rotation < 0 || s.Piece.Rotation > 3 {
			return fmt.Errorf("%w: rotation %d", ErrInvalidSnapshot, s.Piece.Rotation)
		}
	}
	if s.Piece == nil && s.Pending == nil && !s.GameOver {
		return fmt.Errorf("%w: no piece, pending clear or game over", ErrInvalidSnapshot)
	}
	if s.Level < 1 {
		return fmt.Errorf("%w: level %d", ErrInvalidSnapshot, s.Level)
	}
	if s.Lifecycle.LockResetCount < 0 || s.Lifecycle.LockResetCount > c.opts.MaxLockResets {
		return fmt.Errorf("%w: lock reset count %d", ErrInvalidSnapshot, s.Lifecycle.LockResetCount)
	}

	for y := range c.board.Height() {
		for x := range c.board.Width() {
			v := Empty
			if y < len(s.Board) && x < len(s.Board[y]) {
				v = s.Board[y][x]
			}
			c.board.SetCell(x, y, v)
		}
	}

	c.next = s.Next
	c.life = s.Lifecycle
	c.scorer.SetState(s.Scoring)
	c.level = s.Level
	if s.StartLevel >= 1 {
		c.opts.StartLevel = s.StartLevel
	}
	c.lines = s.Lines
	c.gameOver = s.GameOver
	c.dropInterval = DropInterval(c.level)
	c.lastClear = nil

	c.pending = nil
	if s.Pending != nil {
		p := *s.Pending
		p.Rows = append([]int(nil), s.Pending.Rows...)
		c.pending = &p
	}

	c.hasPiece = s.Piece != nil
	if c.hasPiece {
		c.piece = *s.Piece
	}
	return nil
}

func boardRows(b Board) [][]Block {
	if g, ok := b.(*Grid); ok {
		return g.Rows()
	}
	rows := make([][]Block, b.Height())
	for y := range rows {
		rows[y] = make([]Block, b.Width())
		for x := range rows[y] {
			rows[y][x] = b.Cell(x, y)
		}
	}
	return rows
}
