package engine

import (
	"encoding/json"
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	c, g := newTestController(t, DefaultOptions())
	fillRow(g, 21, 3, 4, 5, 6)
	g.SetCell(0, 20, KindS.Block())
	place(c, NewPiece(KindI, 4, 1))
	c.HardDrop()
	_, ok := c.CompleteLineClear()
	require.True(t, ok)
	require.True(t, c.Move(-1, 0))
	c.Update(0.3)

	want := c.Snapshot()
	data, err := json.Marshal(want)
	require.NoError(t, err)

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))

	other, _ := newTestController(t, DefaultOptions())
	require.NoError(t, other.Restore(decoded))

	if diff := cmp.Diff(want, other.Snapshot()); diff != "" {
		t.Errorf("restored snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotKeepsPendingClear(t *testing.T) {
	c, g := newTestController(t, DefaultOptions())
	fillRow(g, 21, 3, 4, 5, 6)
	place(c, NewPiece(KindI, 4, 1))
	c.HardDrop()

	snap := c.Snapshot()
	require.NotNil(t, snap.Pending)
	require.Nil(t, snap.Piece)

	other, _ := newTestController(t, DefaultOptions())
	require.NoError(t, other.Restore(snap))

	ev, ok := other.CompleteLineClear()
	require.True(t, ok)
	if ev.Type != ClearSingle || ev.PerfectClear == nil {
		t.Errorf("CompleteLineClear() = %v perfect=%v, want Single with perfect clear", ev.Type, ev.PerfectClear)
	}
}

func TestRestoreRejectsInvalid(t *testing.T) {
	c, _ := newTestController(t, DefaultOptions())
	base := c.Snapshot()

	tests := []struct {
		name   string
		mutate func(s *Snapshot)
	}{
		{"width", func(s *Snapshot) { s.Width = 12 }},
		{"height", func(s *Snapshot) { s.Height = 10 }},
		{"next kind", func(s *Snapshot) { s.Next = Kind(9) }},
		{"piece kind", func(s *Snapshot) { s.Piece = &Piece{Kind: Kind(KindCount + 2)} }},
		{"rotation", func(s *Snapshot) { s.Piece = &Piece{Kind: KindT, Rotation: 4} }},
		{"level", func(s *Snapshot) { s.Level = 0 }},
		{"stalled", func(s *Snapshot) { s.Piece, s.Pending, s.GameOver = nil, nil, false }},
		{"lock resets", func(s *Snapshot) { s.Lifecycle.LockResetCount = 16 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := base
			tc.mutate(&s)

			err := c.Restore(s)
			if !errors.Is(err, ErrInvalidSnapshot) {
				t.Fatalf("Restore() error = %v, want ErrInvalidSnapshot", err)
			}
			if diff := cmp.Diff(base, c.Snapshot()); diff != "" {
				t.Errorf("failed restore changed state (-want +got):\n%s", diff)
			}
		})
	}
}

// play drives a controller through a fixed input script.
func play(c *Controller) {
	for i := range 400 {
		switch i % 7 {
		case 0:
			c.Move(-1, 0)
		case 1:
			c.RotateClockwise()
		case 2:
			c.SoftDrop()
		case 3:
			c.Move(1, 0)
		case 4:
			c.RotateCounterClockwise()
		}
		if i%23 == 0 {
			c.HardDrop()
		}
		c.Update(1.0 / 60)
		c.CompleteLineClear()
	}
}

func TestControllerIsDeterministic(t *testing.T) {
	newController := func() *Controller {
		return NewController(newTestGrid(), NewSRS(true), rand.New(rand.NewSource(42)), DefaultOptions())
	}

	a, b := newController(), newController()
	play(a)
	play(b)

	if diff := cmp.Diff(a.Snapshot(), b.Snapshot()); diff != "" {
		t.Errorf("same seed and inputs diverged (-a +b):\n%s", diff)
	}
}
