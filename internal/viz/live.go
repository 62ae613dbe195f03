package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/ropesim/internal/config"
	"github.com/san-kum/ropesim/internal/metrics"
	"github.com/san-kum/ropesim/internal/rope"
	"github.com/san-kum/ropesim/internal/runner"
)

const (
	canvasWidth  = 60
	canvasHeight = 24
	historyCap   = 240
)

type TickMsg time.Time

var paramNames = []string{
	"damping",
	"stretch_stiffness",
	"bend_stiffness",
	"bend_hertz",
	"bend_damping",
}

// Model is the bubbletea model for the live view: it owns the rope, steps
// it on every tick, and maps key presses to tuning changes.
type Model struct {
	cfg    *config.Config
	rope   *rope.Rope
	path   runner.AnchorPath
	tuning rope.Tuning

	t        float64
	fps      int
	paused   bool
	selected int
	errHist  []float64
}

func NewModel(cfg *config.Config, fps int) (Model, error) {
	def, err := cfg.BuildDef()
	if err != nil {
		return Model{}, err
	}
	r, err := rope.New(def)
	if err != nil {
		return Model{}, err
	}
	path, err := cfg.BuildPath()
	if err != nil {
		return Model{}, err
	}
	if fps <= 0 {
		fps = 30
	}
	return Model{
		cfg:     cfg,
		rope:    r,
		path:    path,
		tuning:  def.Tuning,
		fps:     fps,
		errHist: make([]float64, 0, historyCap),
	}, nil
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if !m.paused {
			m.advance()
		}
		return m, m.tickCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			fresh, err := NewModel(m.cfg, m.fps)
			if err == nil {
				fresh.selected = m.selected
				return fresh, nil
			}
		case "j", "down":
			m.selected = (m.selected + 1) % len(paramNames)
		case "k", "up":
			m.selected = (m.selected - 1 + len(paramNames)) % len(paramNames)
		case "l", "right":
			m.adjust(1.1)
		case "h", "left":
			m.adjust(1 / 1.1)
		case "m":
			m.cycleModel()
		}
	}
	return m, nil
}

// advance runs enough fixed-dt steps to cover one display frame.
func (m *Model) advance() {
	steps := int(1.0/(float64(m.fps)*m.cfg.Dt) + 0.5)
	if steps < 1 {
		steps = 1
	}
	for i := 0; i < steps; i++ {
		m.rope.Step(m.cfg.Dt, m.cfg.Iterations, m.path(m.t))
		m.t += m.cfg.Dt
	}

	m.errHist = append(m.errHist, metrics.Sample(m.rope))
	if len(m.errHist) > historyCap {
		m.errHist = m.errHist[len(m.errHist)-historyCap:]
	}
}

func (m *Model) param(name string) float64 {
	switch name {
	case "damping":
		return m.tuning.Damping
	case "stretch_stiffness":
		return m.tuning.StretchStiffness
	case "bend_stiffness":
		return m.tuning.BendStiffness
	case "bend_hertz":
		return m.tuning.BendHertz
	case "bend_damping":
		return m.tuning.BendDamping
	}
	return 0
}

func (m *Model) adjust(factor float64) {
	name := paramNames[m.selected]
	v := m.param(name)
	if v == 0 && factor > 1 {
		v = 0.05
	} else {
		v *= factor
	}

	switch name {
	case "damping":
		m.tuning.Damping = v
	case "stretch_stiffness":
		m.tuning.StretchStiffness = min(v, 1)
	case "bend_stiffness":
		m.tuning.BendStiffness = min(v, 1)
	case "bend_hertz":
		m.tuning.BendHertz = v
	case "bend_damping":
		m.tuning.BendDamping = v
	}
	m.rope.SetTuning(m.tuning)
}

func (m *Model) cycleModel() {
	switch m.tuning.BendingModel {
	case rope.BendNone:
		m.tuning.BendingModel = rope.BendSpring
	case rope.BendSpring:
		m.tuning.BendingModel = rope.BendPBD
	case rope.BendPBD:
		m.tuning.BendingModel = rope.BendXPBD
	case rope.BendXPBD:
		m.tuning.BendingModel = rope.BendNone
	}
	m.rope.SetTuning(m.tuning)
}

func (m Model) View() string {
	length := float64(m.cfg.Rope.Count-1) * m.cfg.Rope.Spacing
	center := mgl64.Vec2{
		m.cfg.Rope.Origin.X + 0.25*length,
		m.cfg.Rope.Origin.Y - 0.35*length,
	}
	view := NewRopeView(canvasWidth, canvasHeight, center, 1.3*length)
	m.rope.Draw(view)

	var stats strings.Builder
	stats.WriteString(headerStyle.Render("ropesim live"))
	stats.WriteString("\n")

	status := "running"
	if m.paused {
		status = pausedStyle.Render("paused")
	}
	stats.WriteString(fmt.Sprintf("%s%s\n", labelStyle.Render("status"), status))
	stats.WriteString(fmt.Sprintf("%s%s\n", labelStyle.Render("time"), valueStyle.Render(fmt.Sprintf("%.2fs", m.t))))
	stats.WriteString(fmt.Sprintf("%s%s\n", labelStyle.Render("bending model"), valueStyle.Render(m.tuning.BendingModel.String())))
	stats.WriteString("\n")

	for i, name := range paramNames {
		line := fmt.Sprintf("%s%.4f", labelStyle.Render(name), m.param(name))
		if i == m.selected {
			line = activeParamStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		stats.WriteString(line + "\n")
	}

	if len(m.errHist) > 1 {
		stats.WriteString(graphStyle.Render(asciigraph.Plot(m.errHist,
			asciigraph.Height(5),
			asciigraph.Width(34),
			asciigraph.Caption("stretch error"),
		)))
		stats.WriteString("\n")
	}

	stats.WriteString(helpStyle.Render("j/k select  h/l adjust  m model\nspace pause  r reset  q quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(view.Canvas.String()),
		statsStyle.Render(stats.String()),
	)
}
