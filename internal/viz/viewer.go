package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/sebastiengilbert73/auto-pde/internal/dataset"
	"github.com/sebastiengilbert73/auto-pde/internal/playback"
)

const (
	canvasWidth  = 80
	canvasHeight = 24
)

// TickMsg carries the scheduler epoch it was armed under so stale ticks,
// which bubbletea cannot cancel once queued, are dropped on delivery.
type TickMsg struct {
	epoch int
}

// teaScheduler adapts the controller's arm/disarm contract onto bubbletea's
// one-shot tea.Tick. Disarm bumps the epoch, which invalidates any tick
// already in flight; Arm queues a fresh tick under the new epoch.
type teaScheduler struct {
	epoch  int
	armed  bool
	queued bool
	period time.Duration
}

func (s *teaScheduler) Arm(period time.Duration) {
	s.epoch++
	s.armed, s.queued, s.period = true, true, period
}

func (s *teaScheduler) Disarm() {
	s.epoch++
	s.armed, s.queued = false, false
}

// pending turns a fresh Arm into a command, once.
func (s *teaScheduler) pending() tea.Cmd {
	if !s.queued {
		return nil
	}
	s.queued = false
	return s.tick()
}

func (s *teaScheduler) tick() tea.Cmd {
	epoch := s.epoch
	return tea.Tick(s.period, func(time.Time) tea.Msg { return TickMsg{epoch: epoch} })
}

func (s *teaScheduler) live(msg TickMsg) bool {
	return s.armed && msg.epoch == s.epoch
}

// Viewer is the interactive animation TUI: a playback controller on the
// left canvas, playback state and field statistics on the right panel.
type Viewer struct {
	name     string
	ctrl     *playback.Controller
	sched    *teaScheduler
	canvas   *Canvas
	camera   *Camera
	means    []float64
	showHelp bool
}

// NewViewer loads the dataset into a fresh controller. Playback starts
// paused on frame 0.
func NewViewer(name string, ds *dataset.Dataset) Viewer {
	sched := &teaScheduler{}
	ctrl := playback.NewController(sched)
	ctrl.Load(ds)

	means := make([]float64, ds.NumFrames())
	for i := range means {
		_, _, means[i] = ds.FrameStats(i)
	}

	return Viewer{
		name:   name,
		ctrl:   ctrl,
		sched:  sched,
		canvas: NewCanvas(canvasWidth, canvasHeight),
		camera: NewCamera(),
		means:  means,
	}
}

func (v Viewer) Init() tea.Cmd { return nil }

func (v Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)
	case TickMsg:
		if !v.sched.live(msg) {
			return v, nil
		}
		v.ctrl.Tick()
		return v, v.sched.tick()
	}
	return v, nil
}

func (v Viewer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		v.ctrl.Close()
		return v, tea.Quit
	case " ":
		v.ctrl.Toggle()
	case "p":
		v.ctrl.Play()
	case "left":
		v.ctrl.Step(-1)
	case "right":
		v.ctrl.Step(1)
	case "shift+left":
		v.ctrl.Step(-10)
	case "shift+right":
		v.ctrl.Step(10)
	case "home":
		v.ctrl.Seek(0)
	case "end":
		v.ctrl.Seek(v.ctrl.NumFrames() - 1)
	case "x":
		v.camera.RotateX(0.1)
	case "X":
		v.camera.RotateX(-0.1)
	case "y":
		v.camera.RotateY(0.1)
	case "Y":
		v.camera.RotateY(-0.1)
	case "z":
		v.camera.RotateZ(0.1)
	case "Z":
		v.camera.RotateZ(-0.1)
	case "+", "=":
		v.camera.ZoomIn()
	case "-", "_":
		v.camera.ZoomOut()
	case "t":
		NextTheme()
	case "?":
		v.showHelp = !v.showHelp
	}
	return v, v.sched.pending()
}

func (v Viewer) View() string {
	v.canvas.Clear()
	s := v.ctrl.Surface()
	Render(v.canvas, BoundsBox(), v.camera)
	Render(v.canvas, SurfaceMesh(s), v.camera)
	canvasView := canvasStyle.Render(v.canvas.String())

	var b strings.Builder
	b.WriteString(headerStyle().Render(strings.ToUpper(v.name)) + "\n")

	if v.ctrl.Playing() {
		b.WriteString(statusPlayingStyle().Render("PLAYING") + "\n\n")
	} else {
		b.WriteString(statusPausedStyle().Render("PAUSED") + "\n\n")
	}

	frame, total := v.ctrl.Frame(), v.ctrl.NumFrames()
	fraction := 0.0
	if total > 1 {
		fraction = float64(frame) / float64(total-1)
	}
	b.WriteString(labelStyle().Render("Frame") + valueStyle().Render(fmt.Sprintf("%d / %d", frame+1, total)) + "\n")
	b.WriteString(accentStyle().Render(ProgressBar(fraction, 28)) + "\n\n")

	bounds := v.ctrl.Bounds()
	min, max, mean := v.ctrl.Dataset().FrameStats(frame)
	b.WriteString(labelStyle().Render("Time") + valueStyle().Render(s.Label) + "\n")
	b.WriteString(labelStyle().Render("Z range") + valueStyle().Render(fmt.Sprintf("[%.3f, %.3f]", bounds.Z.Min, bounds.Z.Max)) + "\n")
	b.WriteString(labelStyle().Render("Min") + valueStyle().Render(fmt.Sprintf("%.4f", min)) + "\n")
	b.WriteString(labelStyle().Render("Max") + valueStyle().Render(fmt.Sprintf("%.4f", max)) + "\n")
	b.WriteString(labelStyle().Render("Mean") + valueStyle().Render(fmt.Sprintf("%.4f", mean)) + "\n")

	if len(v.means) > 1 {
		chart := asciigraph.Plot(v.means,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("frame mean"),
		)
		b.WriteString("\n" + subtleStyle.Render(chart) + "\n")
		b.WriteString(accentStyle().Render(Sparkline(v.means[:frame+1], 28)) + "\n")
	}

	b.WriteString(helpStyle().Render("\n─────────────────────\nSP:Play/Pause ←→:Scrub Q:Quit\nx/y/z:Rotate +/-:Zoom T:Theme ?:Help"))

	panel := panelStyle.Render(b.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panel)

	if v.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space      - Play / pause           ║
║  P          - Play                   ║
║  ← / →      - Scrub one frame        ║
║  Shift+←/→  - Scrub ten frames       ║
║  Home / End - First / last frame     ║
║  x/X y/Y z/Z- Rotate camera          ║
║  + / -      - Zoom                   ║
║  T          - Cycle themes           ║
║  ?          - Toggle this help       ║
║  Q          - Quit                   ║
╚══════════════════════════════════════╝`

// RunViewer blocks until the user quits the animation.
func RunViewer(name string, ds *dataset.Dataset) error {
	_, err := tea.NewProgram(NewViewer(name, ds), tea.WithAltScreen()).Run()
	return err
}
