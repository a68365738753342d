package viz

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sebastiengilbert73/auto-pde/internal/config"
	"github.com/sebastiengilbert73/auto-pde/internal/dataset"
	"github.com/sebastiengilbert73/auto-pde/internal/solver"
)

const (
	stateForm = iota
	stateSolving
	stateView
)

const spinPeriod = 80 * time.Millisecond

type field struct {
	name   string
	text   bool // equation/ic are free text, domain fields numeric
	get    func(*config.Config) string
	set    func(*config.Config, string)
	adjust func(*config.Config, float64)
}

func formFields() []field {
	num := func(get func(*config.Config) *float64, step float64) (func(*config.Config) string, func(*config.Config, string), func(*config.Config, float64)) {
		return func(c *config.Config) string { return strconv.FormatFloat(*get(c), 'g', -1, 64) },
			func(c *config.Config, s string) {
				if v, err := strconv.ParseFloat(s, 64); err == nil {
					*get(c) = v
				}
			},
			func(c *config.Config, dir float64) { *get(c) += dir * step }
	}
	grid := func(get func(*config.Config) *int) (func(*config.Config) string, func(*config.Config, string), func(*config.Config, float64)) {
		return func(c *config.Config) string { return strconv.Itoa(*get(c)) },
			func(c *config.Config, s string) {
				if v, err := strconv.Atoi(s); err == nil && v > 1 {
					*get(c) = v
				}
			},
			func(c *config.Config, dir float64) {
				if v := *get(c) + int(dir); v > 1 {
					*get(c) = v
				}
			}
	}

	fields := []field{
		{name: "equation", text: true,
			get: func(c *config.Config) string { return c.Equation },
			set: func(c *config.Config, s string) { c.Equation = s }},
		{name: "ic", text: true,
			get: func(c *config.Config) string { return c.IC },
			set: func(c *config.Config, s string) { c.IC = s }},
	}

	type numField struct {
		name string
		get  func(*config.Config) *float64
		step float64
	}
	for _, nf := range []numField{
		{"x_min", func(c *config.Config) *float64 { return &c.Domain.XMin }, 0.1},
		{"x_max", func(c *config.Config) *float64 { return &c.Domain.XMax }, 0.1},
		{"y_min", func(c *config.Config) *float64 { return &c.Domain.YMin }, 0.1},
		{"y_max", func(c *config.Config) *float64 { return &c.Domain.YMax }, 0.1},
		{"t_max", func(c *config.Config) *float64 { return &c.Domain.TMax }, 0.1},
		{"dt", func(c *config.Config) *float64 { return &c.Domain.Dt }, 0.0005},
	} {
		g, s, a := num(nf.get, nf.step)
		fields = append(fields, field{name: nf.name, get: g, set: s, adjust: a})
	}
	for _, gf := range []struct {
		name string
		get  func(*config.Config) *int
	}{
		{"nx", func(c *config.Config) *int { return &c.Domain.NX }},
		{"ny", func(c *config.Config) *int { return &c.Domain.NY }},
	} {
		g, s, a := grid(gf.get)
		fields = append(fields, field{name: gf.name, get: g, set: s, adjust: a})
	}
	return fields
}

type solveDoneMsg struct {
	ds  *dataset.Dataset
	err error
}

type spinMsg struct{}

// Form walks the user through a solve request, submits it, and hands the
// result to the viewer.
type Form struct {
	state   int
	cfg     *config.Config
	fields  []field
	cursor  int
	editing bool
	editBuf string
	preset  int
	presets []string
	spin    int
	errText string
	viewer  Viewer
}

func NewForm(cfg *config.Config) Form {
	return Form{
		cfg:     cfg,
		fields:  formFields(),
		presets: config.ListPresets(),
		preset:  -1,
	}
}

func (f Form) Init() tea.Cmd { return nil }

func (f Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch f.state {
	case stateForm:
		if key, ok := msg.(tea.KeyMsg); ok {
			return f.formKey(key)
		}
	case stateSolving:
		switch msg := msg.(type) {
		case solveDoneMsg:
			if msg.err != nil {
				f.state = stateForm
				f.errText = msg.err.Error()
				return f, nil
			}
			f.viewer = NewViewer(f.cfg.Equation, msg.ds)
			f.state = stateView
			return f, f.viewer.Init()
		case spinMsg:
			f.spin++
			return f, spinCmd()
		case tea.KeyMsg:
			if msg.String() == "ctrl+c" {
				return f, tea.Quit
			}
		}
	case stateView:
		model, cmd := f.viewer.Update(msg)
		f.viewer = model.(Viewer)
		return f, cmd
	}
	return f, nil
}

func (f Form) formKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cur := f.fields[f.cursor]
	if f.editing {
		switch msg.String() {
		case "enter":
			cur.set(f.cfg, f.editBuf)
			f.editing, f.editBuf = false, ""
		case "esc":
			f.editing, f.editBuf = false, ""
		case "backspace":
			if len(f.editBuf) > 0 {
				f.editBuf = f.editBuf[:len(f.editBuf)-1]
			}
		default:
			if len(msg.Runes) == 1 {
				r := msg.Runes[0]
				if cur.text && r >= ' ' && r < 127 {
					f.editBuf += string(r)
				} else if !cur.text && (r >= '0' && r <= '9' || r == '.' || r == '-' || r == 'e') {
					f.editBuf += string(r)
				}
			}
		}
		return f, nil
	}

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return f, tea.Quit
	case "up", "k":
		if f.cursor > 0 {
			f.cursor--
		}
	case "down", "j":
		if f.cursor < len(f.fields)-1 {
			f.cursor++
		}
	case "enter", " ":
		f.editing, f.editBuf = true, cur.get(f.cfg)
	case "left", "h":
		if cur.adjust != nil {
			cur.adjust(f.cfg, -1)
		}
	case "right", "l":
		if cur.adjust != nil {
			cur.adjust(f.cfg, 1)
		}
	case "p":
		f.preset = (f.preset + 1) % len(f.presets)
		name := f.presets[f.preset]
		if preset := config.GetPreset(name); preset != nil {
			server := f.cfg.Server
			*f.cfg = *preset
			f.cfg.Server = server
		}
	case "s":
		f.state = stateSolving
		f.errText = ""
		return f, tea.Batch(solveCmd(f.cfg), spinCmd())
	}
	return f, nil
}

func solveCmd(cfg *config.Config) tea.Cmd {
	client := solver.NewClient(cfg.Server)
	req := cfg.Request()
	return func() tea.Msg {
		ctx := context.Background()
		if err := client.Health(ctx); err != nil {
			return solveDoneMsg{err: err}
		}
		ds, err := client.Solve(ctx, req)
		return solveDoneMsg{ds: ds, err: err}
	}
}

func spinCmd() tea.Cmd {
	return tea.Tick(spinPeriod, func(time.Time) tea.Msg { return spinMsg{} })
}

func (f Form) View() string {
	switch f.state {
	case stateSolving:
		return fmt.Sprintf("\n\n    %s solving %s ...\n\n    %s\n",
			Spinner(f.spin),
			accentStyle().Render(f.cfg.Equation),
			subtleStyle.Render("ctrl+c to abort"))
	case stateView:
		return f.viewer.View()
	}

	var b strings.Builder
	b.WriteString("\n\n    " + headerStyle().Render("AUTO-PDE") + "\n")
	b.WriteString("    " + subtleStyle.Render("pde solve request") + "\n")
	b.WriteString("    " + subtleStyle.Render("─────────────────────────") + "\n\n")

	for i, fld := range f.fields {
		val := fld.get(f.cfg)
		if f.editing && i == f.cursor {
			val = f.editBuf + "_"
		}
		line := fmt.Sprintf("%-10s %s", fld.name, val)
		if i == f.cursor {
			b.WriteString("    " + accentStyle().Render("▸ "+line) + "\n")
		} else {
			b.WriteString("    " + subtleStyle.Render("  "+line) + "\n")
		}
	}

	if f.preset >= 0 {
		b.WriteString("\n    " + labelStyle().Render("preset") + valueStyle().Render(f.presets[f.preset]) + "\n")
	}
	if f.errText != "" {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Render(f.errText) + "\n")
	}

	b.WriteString("\n    " + helpStyle().Render("j/k:select enter:edit h/l:adjust p:preset s:solve q:quit") + "\n")
	return b.String()
}

// RunForm launches the interactive solve form.
func RunForm(cfg *config.Config) error {
	_, err := tea.NewProgram(NewForm(cfg), tea.WithAltScreen()).Run()
	return err
}
