// Package tui draws the fractal in a terminal. Each character cell shows two
// vertically stacked pixels with an upper half block whose foreground is the
// top pixel and whose background is the bottom one.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xdraw "golang.org/x/image/draw"

	"github.com/san-kum/mandelzoom/internal/config"
	"github.com/san-kum/mandelzoom/internal/render"
	"github.com/san-kum/mandelzoom/internal/view"
)

const (
	halfBlock     = "▀"
	keyPan        = 0.5
	keyZoom       = 0.5
	iterationStep = 25
)

type TickMsg time.Time

type Model struct {
	view     *view.View
	renderer *render.Renderer
	frame    *render.Frame
	fps      int

	// With supersample > 1 the scene is rendered into fine at that many
	// samples per pixel along each axis and filtered down into frame.
	supersample int
	fine        *render.Frame

	cols, rows int
	last       time.Time

	theme  Theme
	styles styles
	err    error
}

func NewModel(cfg *config.Config, r *render.Renderer, theme Theme, supersample int) (Model, error) {
	v, err := view.New(cfg)
	if err != nil {
		return Model{}, err
	}
	fps := cfg.FrameRate
	if fps <= 0 {
		fps = config.DefaultFrameRate
	}
	return Model{
		view:        v,
		renderer:    r,
		frame:       render.NewFrame(0, 0, render.RGBA),
		fps:         fps,
		supersample: max(supersample, 1),
		fine:        render.NewFrame(0, 0, render.RGBA),
		theme:       theme,
		styles:      theme.styles(),
	}, nil
}

// Err returns the render error that stopped the program, if any.
func (m Model) Err() error { return m.err }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.draw()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.view.Nudge(-keyPan, 0)
		case "right", "l":
			m.view.Nudge(keyPan, 0)
		case "up", "k":
			m.view.Nudge(0, -keyPan)
		case "down", "j":
			m.view.Nudge(0, keyPan)
		case "+", "=":
			m.view.NudgeZoom(keyZoom)
		case "-", "_":
			m.view.NudgeZoom(-keyZoom)
		case "]":
			m.view.AdjustIterations(iterationStep)
		case "[":
			m.view.AdjustIterations(-iterationStep)
		case "r":
			m.view.Reset()
		case "t":
			m.theme = m.theme.next()
			m.styles = m.theme.styles()
		}

	case tea.MouseMsg:
		m.mouse(msg)

	case TickMsg:
		now := time.Time(msg)
		if !m.last.IsZero() {
			m.view.Update(now.Sub(m.last).Seconds())
		}
		m.last = now
		m.draw()
		if m.err != nil {
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

// resize fits the frame to the terminal, leaving the last row for the
// status bar.
func (m *Model) resize(cols, rows int) {
	m.cols, m.rows = cols, rows
	m.frame.Resize(cols, max(rows-1, 0)*2)
}

func (m *Model) mouse(msg tea.MouseMsg) {
	w, h := m.frame.Width, m.frame.Height
	if w == 0 || h == 0 {
		return
	}
	x, y := msg.X, msg.Y*2

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.view.Wheel(x, y, w, h, 1)
		case tea.MouseButtonWheelDown:
			m.view.Wheel(x, y, w, h, -1)
		case tea.MouseButtonLeft:
			if y < h {
				m.view.Press(x, y, w, h)
			}
		}
	case tea.MouseActionMotion:
		m.view.Move(x, y, w, h)
	case tea.MouseActionRelease:
		m.view.Release()
	}
}

func (m *Model) draw() {
	if m.frame.Empty() {
		return
	}
	start := time.Now()
	ctx := context.Background()

	if m.supersample == 1 {
		if err := m.renderer.Render(ctx, m.view.Scene(), m.frame); err != nil {
			m.err = err
			return
		}
	} else {
		m.fine.Resize(m.frame.Width*m.supersample, m.frame.Height*m.supersample)
		if err := m.renderer.Render(ctx, m.view.Scene(), m.fine); err != nil {
			m.err = err
			return
		}
		dst, src := m.frame.RGBAImage(), m.fine.RGBAImage()
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	}
	render.Logger().Debug("tui frame", "cols", m.cols, "rows", m.rows, "supersample", m.supersample, "elapsed", time.Since(start))
}

func (m Model) View() string {
	if m.frame.Empty() {
		return "initializing..."
	}

	var b strings.Builder
	for cy := 0; cy < m.frame.Height/2; cy++ {
		for x := 0; x < m.frame.Width; x++ {
			tr, tg, tb := m.frame.RGB(x, 2*cy)
			br, bg, bb := m.frame.RGB(x, 2*cy+1)
			b.WriteString(lipgloss.NewStyle().
				Foreground(hexColor(tr, tg, tb)).
				Background(hexColor(br, bg, bb)).
				Render(halfBlock))
		}
		b.WriteByte('\n')
	}
	b.WriteString(m.statusBar())
	return b.String()
}

func (m Model) statusBar() string {
	s := m.styles
	cam := m.view.Camera

	parts := []string{
		s.title.Render(" MandelZoom "),
		s.value.Render(fmt.Sprintf(" %s ", cam.Center)),
		s.value.Render(fmt.Sprintf(" zoom %.2f ", cam.Zoom)),
		s.value.Render(fmt.Sprintf(" iter %d ", m.view.MaxIterations)),
		s.value.Render(fmt.Sprintf(" %.0f fps ", m.view.FPS())),
	}
	if m.err != nil {
		parts = append(parts, s.err.Render(" "+m.err.Error()+" "))
	} else {
		parts = append(parts, s.help.Render(" drag/wheel  hjkl  +/-  [ ]  r  t  q "))
	}
	return s.bar.Inline(true).MaxWidth(m.cols).Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
}

func hexColor(r, g, b uint8) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}

// Run starts the terminal viewer and blocks until the user quits.
func Run(cfg *config.Config, r *render.Renderer, theme string, supersample int) error {
	m, err := NewModel(cfg, r, GetTheme(theme), supersample)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
