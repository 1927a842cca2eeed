package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/ropesim/internal/config"
	"github.com/san-kum/ropesim/internal/experiment"
	"github.com/san-kum/ropesim/internal/log"
	"github.com/san-kum/ropesim/internal/rope"
	"github.com/san-kum/ropesim/internal/sim"
	"github.com/san-kum/ropesim/internal/vec"
	"github.com/san-kum/ropesim/internal/viz"
)

const (
	windowW   = 800
	windowH   = 600
	frameRate = 144
	maxTrace  = 240
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

type App struct {
	Name      string
	Cfg       *config.Config
	Rope      *rope.Rope
	Driver    sim.Driver
	Sched     *sim.Schedule
	View      viz.Viewport
	Time      float64
	Running   bool
	InMenu    bool
	Presets   []string
	Selected  int
	Telemetry []float64
	Err       error

	lg        *log.Logger
	lastMouse rl.Vector2
	points    []vec.Vec2
}

func initWindow() {
	rl.InitWindow(windowW, windowH, "ropesim")
	rl.SetTargetFPS(frameRate)
	rl.SetExitKey(0)
}

// NewApp starts on the preset menu when cfg is nil, otherwise runs cfg
// straight away.
func NewApp(cfg *config.Config, name string, lg *log.Logger) *App {
	app := &App{
		Presets: config.ListPresets(),
		InMenu:  cfg == nil,
		lg:      lg,
	}
	if cfg != nil {
		app.load(cfg, name)
	}
	return app
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, name string, lg *log.Logger) {
	initWindow()
	defer rl.CloseWindow()
	NewApp(cfg, name, lg).RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if a.Update() {
			return
		}
		a.Draw()
	}
}

func (a *App) load(cfg *config.Config, name string) {
	a.Name = name
	a.Cfg = cfg.Clone()
	a.Err = nil
	a.Telemetry = a.Telemetry[:0]
	a.Time = 0
	a.InMenu = false
	a.Running = true

	r, err := rope.New(a.Cfg.Rope)
	if err != nil {
		a.fail(err)
		return
	}
	driver, err := experiment.BuildDriver(r, a.Cfg.Drive)
	if err != nil {
		a.fail(err)
		return
	}
	a.Rope = r
	a.Driver = driver
	a.Sched = sim.NewSchedule(a.Cfg.Run.Dt, a.Cfg.Run.Jitter, a.Cfg.Run.Seed)
	a.View = viz.SceneViewport(a.Cfg.Rope.Start, a.Cfg.Rope.End, windowW, windowH)
	a.lg.Infof("gui: loaded %s with %d nodes", name, r.Len())
}

func (a *App) fail(err error) {
	a.Err = err
	a.Running = false
	a.lg.Errorf("gui: %v", err)
}

// Update handles input and steps the rope once. It reports whether the
// user asked to quit.
func (a *App) Update() bool {
	if a.InMenu {
		return a.updateMenu()
	}

	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		return true
	case rl.IsKeyPressed(rl.KeyEscape):
		a.InMenu = true
		return false
	case rl.IsKeyPressed(rl.KeySpace):
		a.Running = !a.Running
	case rl.IsKeyPressed(rl.KeyR):
		a.load(a.Cfg, a.Name)
	}

	if a.Rope == nil {
		return false
	}
	switch {
	case rl.IsKeyPressed(rl.KeyUp):
		a.Rope.SetIterations(max(1, a.Rope.Iterations()*2))
	case rl.IsKeyPressed(rl.KeyDown):
		a.Rope.SetIterations(a.Rope.Iterations() / 2)
	}
	if !a.Running {
		return false
	}

	// The pointer owns the first node while it moves.
	mouse := rl.GetMousePosition()
	if mouse != a.lastMouse {
		a.lastMouse = mouse
		if err := a.Rope.MoveNode(0, a.View.Unmap(int(mouse.X), int(mouse.Y))); err != nil {
			a.fail(err)
			return false
		}
	} else if err := a.Driver.Drive(a.Rope, a.Time); err != nil {
		a.fail(err)
		return false
	}

	dt := a.Sched.Next()
	a.Rope.Update(a.Cfg.Rope.Gravity, dt)
	a.Time += dt
	if !a.Rope.Finite() {
		a.fail(sim.ErrDiverged)
		return false
	}

	_, worst := a.Rope.Stretch()
	a.Telemetry = append(a.Telemetry, worst)
	if len(a.Telemetry) > maxTrace {
		a.Telemetry = a.Telemetry[1:]
	}
	return false
}

func (a *App) updateMenu() bool {
	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		return true
	case rl.IsKeyPressed(rl.KeyUp):
		a.Selected = (a.Selected + len(a.Presets) - 1) % len(a.Presets)
	case rl.IsKeyPressed(rl.KeyDown):
		a.Selected = (a.Selected + 1) % len(a.Presets)
	case rl.IsKeyPressed(rl.KeyEnter):
		name := a.Presets[a.Selected]
		cfg, err := config.GetPreset(name)
		if err != nil {
			a.fail(err)
			return false
		}
		a.load(cfg, name)
	}
	return false
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.InMenu {
		a.drawMenu()
	} else {
		a.drawRope()
		a.drawHUD()
	}

	rl.EndDrawing()
}

func (a *App) drawHUD() {
	rl.DrawText("ropesim", 20, 20, 20, ColSelect)
	rl.DrawText(fmt.Sprintf(":: %s", a.Name), 110, 24, 14, ColText)

	status, col := "RUNNING", ColSelect
	switch {
	case a.Err != nil:
		status, col = a.Err.Error(), rl.Red
	case !a.Running:
		status, col = "PAUSED", ColTextDim
	}
	rl.DrawText(status, windowW-20-rl.MeasureText(status, 14), 24, 14, col)

	if a.Rope != nil {
		rl.DrawText(fmt.Sprintf("t %.2fs  nodes %d  iterations %d", a.Time, a.Rope.Len(), a.Rope.Iterations()), 20, 50, 12, ColText)
	}
	a.drawTelemetry()

	rl.DrawText("[MOUSE] DRAG  [SPACE] PAUSE  [R] RESET  [UP/DOWN] ITERATIONS  [ESC] MENU  [Q] QUIT", 20, windowH-24, 10, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), windowW-70, windowH-24, 10, ColTextDim)
}

func (a *App) drawMenu() {
	rl.DrawText("ropesim", 50, 50, 40, ColSelect)
	rl.DrawText("Select Preset", 50, 100, 16, ColTextDim)

	y := int32(150)
	for i, name := range a.Presets {
		if i == a.Selected {
			rl.DrawText("> "+name, 50, y, 20, ColSelect)
		} else {
			rl.DrawText("  "+name, 50, y, 20, ColText)
		}
		y += 28
	}
	if a.Err != nil {
		rl.DrawText(a.Err.Error(), 50, y+20, 14, rl.Red)
	}

	rl.DrawText("ARROWS: NAVIGATE  ENTER: SELECT  Q: QUIT", 440, windowH-24, 12, ColTextDim)
}
