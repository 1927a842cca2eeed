package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/ropesim/internal/config"
	"github.com/san-kum/ropesim/internal/experiment"
	"github.com/san-kum/ropesim/internal/rope"
	"github.com/san-kum/ropesim/internal/sim"
	"github.com/san-kum/ropesim/internal/vec"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 300
	frameRate       = 60
	maxIterations   = 5000
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the bubbletea live view of one rope.
type Model struct {
	name      string
	cfg       *config.Config
	rope      *rope.Rope
	driver    sim.Driver
	sched     *sim.Schedule
	substeps  int
	t         float64
	anchor    vec.Vec2
	nudge     float64
	canvas    *Canvas
	view      Viewport
	running   bool
	stretch   []float64
	sag       []float64
	recorder  *Recorder
	gifPath   string
	showHelp  bool
	err       error
	positions []vec.Vec2
}

// NewModel builds the rope described by cfg. name labels the header.
func NewModel(cfg *config.Config, name string) (Model, error) {
	m := Model{
		name:    name,
		cfg:     cfg.Clone(),
		canvas:  NewCanvas(width, height),
		running: true,
		gifPath: "rope.gif",
	}
	if err := m.rebuild(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// SetGIFPath changes where the g key saves recordings.
func (m *Model) SetGIFPath(path string) { m.gifPath = path }

func (m *Model) rebuild() error {
	r, err := rope.New(m.cfg.Rope)
	if err != nil {
		return err
	}
	driver, err := experiment.BuildDriver(r, m.cfg.Drive)
	if err != nil {
		return err
	}

	m.rope = r
	m.driver = driver
	m.sched = sim.NewSchedule(m.cfg.Run.Dt, m.cfg.Run.Jitter, m.cfg.Run.Seed)
	m.substeps = max(1, int(math.Round(1/(frameRate*m.cfg.Run.Dt))))
	m.t = 0
	m.anchor = m.cfg.Rope.Start
	m.nudge = vec.Dist(m.cfg.Rope.Start, m.cfg.Rope.End) / 40
	w, h := m.canvas.Dots()
	m.view = SceneViewport(m.cfg.Rope.Start, m.cfg.Rope.End, w, h)
	m.stretch = m.stretch[:0]
	m.sag = m.sag[:0]
	m.err = nil
	return nil
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			if err := m.rebuild(); err != nil {
				m.err = err
			}
		case "left", "h":
			m.drag(vec.New(-m.nudge, 0))
		case "right", "l":
			m.drag(vec.New(m.nudge, 0))
		case "up", "k":
			m.drag(vec.New(0, -m.nudge))
		case "down", "j":
			m.drag(vec.New(0, m.nudge))
		case "+", "=":
			m.rope.SetIterations(min(maxIterations, max(1, m.rope.Iterations()*2)))
		case "-", "_":
			m.rope.SetIterations(m.rope.Iterations() / 2)
		case "t":
			NextTheme()
		case "g":
			m.toggleRecording()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.step()
		}
		m.draw()
		if m.recorder != nil {
			m.recorder.Capture(m.canvas)
		}
		return m, tick()
	}
	return m, nil
}

// drag moves the anchor the way the pointer does in the browser demo. An
// oscillating driver has its centre moved instead.
func (m *Model) drag(d vec.Vec2) {
	if osc, ok := m.driver.(*sim.Oscillate); ok {
		osc.Origin = vec.Add(osc.Origin, d)
		return
	}
	m.anchor = vec.Add(m.anchor, d)
	if err := m.rope.MoveNode(0, m.anchor); err != nil {
		m.err = err
	}
}

func (m *Model) step() {
	for i := 0; i < m.substeps; i++ {
		if err := m.driver.Drive(m.rope, m.t); err != nil {
			m.err = err
			return
		}
		dt := m.sched.Next()
		m.rope.Update(m.cfg.Rope.Gravity, dt)
		m.t += dt
		if !m.rope.Finite() {
			m.err = sim.ErrDiverged
			return
		}
	}

	_, worst := m.rope.Stretch()
	m.stretch = pushHistory(m.stretch, worst)
	m.positions = m.rope.Positions(m.positions[:0])
	ends := math.Max(m.positions[0].Y, m.positions[len(m.positions)-1].Y)
	deepest := 0.0
	for _, p := range m.positions {
		deepest = math.Max(deepest, p.Y-ends)
	}
	m.sag = pushHistory(m.sag, deepest)
}

func pushHistory(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m *Model) toggleRecording() {
	if m.recorder == nil {
		m.recorder = NewRecorder()
		return
	}
	if err := m.recorder.Save(m.gifPath); err != nil {
		m.err = err
	}
	m.recorder = nil
}

func (m *Model) draw() {
	m.canvas.Clear()
	m.positions = m.rope.Positions(m.positions[:0])
	m.canvas.DrawChain(m.view, m.positions, func(i int) bool {
		n, _ := m.rope.Node(i)
		return n.Fixed
	})
}

func last(h []float64) float64 {
	if len(h) == 0 {
		return 0
	}
	return h[len(h)-1]
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := ropeStyle().Render(m.canvas.String())

	status := "RUNNING"
	switch {
	case m.err != nil:
		status = "STOPPED: " + m.err.Error()
	case m.recorder != nil:
		status = fmt.Sprintf("REC %d frames", m.recorder.Len())
	case !m.running:
		status = "PAUSED"
	}

	var s strings.Builder
	s.WriteString(headerStyle().Render(strings.ToUpper(m.name)) + "\n")
	s.WriteString(statusStyle(m.running, m.recorder != nil).Render(status) + "\n")

	if len(m.stretch) > 1 {
		chart := asciigraph.Plot(m.stretch, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("worst link error"))
		s.WriteString(graphStyle().Render(chart) + "\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle().Render(label) + valueStyle().Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.t))
	row("Nodes", fmt.Sprintf("%d", m.rope.Len()))
	row("Iterations", fmt.Sprintf("%d", m.rope.Iterations()))
	row("Sag", fmt.Sprintf("%.1f %s", last(m.sag), Sparkline(m.sag, 16)))

	taut := 1 - last(m.stretch)/m.cfg.Rope.Spacing
	row("Taut", ProgressBar(taut, 16))
	row("Theme", CurrentTheme.Name)

	s.WriteString(helpStyle().Render("SP:Pause R:Rebuild Q:Quit\n←↑↓→:Drag +/-:Iterations\nT:Theme G:Record ?:Help"))
	body := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle().Render(s.String()))

	if m.showHelp {
		return helpOverlay + "\n" + body
	}
	return body
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Rebuild the rope         ║
║  Arrows   - Drag the first anchor    ║
║  + / -    - Double/halve iterations  ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
`

// Run starts the live view full screen.
func Run(cfg *config.Config, name, gifPath string) error {
	m, err := NewModel(cfg, name)
	if err != nil {
		return err
	}
	if gifPath != "" {
		m.SetGIFPath(gifPath)
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
