package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/mandelzoom/internal/config"
	"github.com/san-kum/mandelzoom/internal/cplx"
	"github.com/san-kum/mandelzoom/internal/render"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m, err := NewModel(config.DefaultConfig(), render.NewRenderer(2), ThemeMinimal, 1)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestModel_BeforeResize(t *testing.T) {
	m := newTestModel(t)
	if got := m.View(); got != "initializing..." {
		t.Errorf("View() = %q", got)
	}
}

func TestModel_Resize(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 11})

	if m.frame.Width != 20 || m.frame.Height != 20 {
		t.Fatalf("frame %dx%d, want 20x20", m.frame.Width, m.frame.Height)
	}

	out := m.View()
	lines := strings.Split(out, "\n")
	if len(lines) != 11 {
		t.Fatalf("got %d lines, want 11", len(lines))
	}
	if n := strings.Count(lines[0], halfBlock); n != 20 {
		t.Errorf("first row has %d cells, want 20", n)
	}
	if !strings.Contains(out, "MandelZoom") {
		t.Error("status bar missing")
	}
}

func TestModel_Tick(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 8, Height: 5})
	m.view.NudgeZoom(1)

	start := time.Unix(100, 0)
	m, cmd := update(t, m, TickMsg(start))
	if cmd == nil {
		t.Fatal("tick did not schedule the next tick")
	}
	if m.view.Camera.Zoom != config.DefaultZoom {
		t.Errorf("first tick moved the camera: zoom %v", m.view.Camera.Zoom)
	}

	m, _ = update(t, m, TickMsg(start.Add(100*time.Millisecond)))
	if m.view.Camera.Zoom <= config.DefaultZoom {
		t.Errorf("second tick did not advance zoom: %v", m.view.Camera.Zoom)
	}
}

func TestModel_Keys(t *testing.T) {
	m := newTestModel(t)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("]")})
	if m.view.MaxIterations != config.DefaultMaxIterations+iterationStep {
		t.Errorf("iterations = %d", m.view.MaxIterations)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	if m.theme.Name == ThemeMinimal.Name {
		t.Error("t did not change theme")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.view.Camera.Velocity.Real <= 0 {
		t.Errorf("right did not pan: %v", m.view.Camera.Velocity)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if m.view.Camera.Velocity.Real != 0 {
		t.Error("r did not reset")
	}
}

func TestModel_Mouse(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 11})

	m, _ = update(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	if m.view.Camera.ZoomVelocity <= 0 {
		t.Errorf("wheel up should zoom in: %v", m.view.Camera.ZoomVelocity)
	}

	m, _ = update(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !m.view.Dragging() {
		t.Fatal("press did not start a drag")
	}
	before := m.view.Camera.Center
	m, _ = update(t, m, tea.MouseMsg{X: 14, Y: 5, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if m.view.Camera.Center.Real >= before.Real {
		t.Errorf("dragging right should move the center left: %v -> %v", before, m.view.Camera.Center)
	}
	m, _ = update(t, m, tea.MouseMsg{X: 14, Y: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if m.view.Dragging() {
		t.Error("release did not end the drag")
	}
}

func TestModel_Supersample(t *testing.T) {
	for _, factor := range []int{0, 1, 3} {
		m, err := NewModel(config.DefaultConfig(), render.NewRenderer(2), ThemeMinimal, factor)
		if err != nil {
			t.Fatal(err)
		}
		m.view.Camera.Center = cplx.New(-0.2, 0)
		m.view.Camera.Zoom = 0
		m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 11})

		if m.err != nil {
			t.Fatalf("factor %d: %v", factor, m.err)
		}
		// The filter footprint around the center stays inside the main
		// cardioid, so the center pixel is the interior color.
		r, g, b := m.frame.RGB(10, 10)
		if r > 8 || g > 8 || b > 8 {
			t.Errorf("factor %d: center pixel %d %d %d, want near black", factor, r, g, b)
		}
		// The corners are far outside the set.
		if r, g, b := m.frame.RGB(0, 0); r+g+b == 0 {
			t.Errorf("factor %d: corner pixel is black", factor)
		}
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("ocean").Name != "ocean" {
		t.Error("ocean theme not found")
	}
	if GetTheme("nope").Name != Themes[0].Name {
		t.Error("unknown theme should fall back to the first")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names out of sync")
	}
	last := Themes[len(Themes)-1]
	if last.next().Name != Themes[0].Name {
		t.Error("next should wrap around")
	}
}
