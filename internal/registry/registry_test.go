package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-blockfall/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Description() string                  { return "test mode" }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub", func() Game { return &stubGame{id: "zz_stub"} })

	if !Exists("zz_stub") {
		t.Fatal("Exists() = false after Register")
	}

	g, err := Create("zz_stub")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.ID() != "zz_stub" {
		t.Errorf("ID() = %q, want %q", g.ID(), "zz_stub")
	}

	var found bool
	for _, info := range List() {
		if info.ID == "zz_stub" {
			found = true
			if info.Title != "Stub zz_stub" || info.Description != "test mode" {
				t.Errorf("List() info = %+v", info)
			}
		}
	}
	if !found {
		t.Error("List() does not contain registered game")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("second Register() should panic")
		}
	}()
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("does_not_exist")
	if !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Create() error = %v, want ErrUnknownGame", err)
	}
}
