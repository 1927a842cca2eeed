package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/ropesim/internal/config"
	"github.com/san-kum/ropesim/internal/vec"
)

func liveModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Rope.Iterations = 40
	m, err := NewModel(cfg, "hanging")
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestLiveTickAdvances(t *testing.T) {
	m := liveModel(t)
	for i := 0; i < 10; i++ {
		m = send(m, TickMsg(time.Now()))
	}
	if m.t <= 0 {
		t.Errorf("expected time to advance, got %f", m.t)
	}
	if len(m.sag) != 10 || last(m.sag) <= 0 {
		t.Errorf("expected the rope to sag, history %v", m.sag)
	}
	if !strings.Contains(m.View(), "HANGING") {
		t.Error("expected header in view")
	}
}

func TestLivePause(t *testing.T) {
	m := liveModel(t)
	m = send(m, tea.KeyMsg{Type: tea.KeySpace})
	if m.running {
		t.Fatal("space should pause")
	}
	m = send(m, TickMsg(time.Now()))
	if m.t != 0 {
		t.Errorf("paused model stepped to %f", m.t)
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("expected paused status")
	}
}

func TestLiveDragAnchor(t *testing.T) {
	m := liveModel(t)
	start := m.anchor
	m = send(m, tea.KeyMsg{Type: tea.KeyRight})
	m = send(m, tea.KeyMsg{Type: tea.KeyUp})

	want := vec.Add(start, vec.New(m.nudge, -m.nudge))
	n, _ := m.rope.Node(0)
	if vec.Dist(n.Pos, want) > 1e-9 {
		t.Errorf("expected anchor at %v, got %v", want, n.Pos)
	}
	if m.err != nil {
		t.Errorf("drag reported %v", m.err)
	}
}

func TestLiveIterations(t *testing.T) {
	m := liveModel(t)
	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	if m.rope.Iterations() != 80 {
		t.Errorf("expected 80 iterations, got %d", m.rope.Iterations())
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	if m.rope.Iterations() != 20 {
		t.Errorf("expected 20 iterations, got %d", m.rope.Iterations())
	}
}

func TestLiveRebuild(t *testing.T) {
	m := liveModel(t)
	m = send(m, tea.KeyMsg{Type: tea.KeyRight})
	for i := 0; i < 5; i++ {
		m = send(m, TickMsg(time.Now()))
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	if m.t != 0 || len(m.stretch) != 0 {
		t.Errorf("rebuild should reset time and history, got t=%f", m.t)
	}
	n, _ := m.rope.Node(0)
	if n.Pos != m.cfg.Rope.Start {
		t.Errorf("rebuild should restore the anchor, got %v", n.Pos)
	}
}

func TestLiveQuit(t *testing.T) {
	m := liveModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestThemeCycle(t *testing.T) {
	defer SetTheme(ThemeHemp.Name)
	SetTheme("retro")
	NextTheme()
	if CurrentTheme.Name != "minimal" {
		t.Errorf("expected minimal, got %s", CurrentTheme.Name)
	}
	NextTheme()
	if CurrentTheme.Name != "hemp" {
		t.Errorf("expected wrap to hemp, got %s", CurrentTheme.Name)
	}
}
