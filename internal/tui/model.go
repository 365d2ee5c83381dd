// Package tui provides the Bubble Tea chart interface.
package tui

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/statsview/internal/chart"
	"github.com/verte-zerg/statsview/internal/datafile"
	"github.com/verte-zerg/statsview/internal/generator"
	"github.com/verte-zerg/statsview/internal/model"
	"github.com/verte-zerg/statsview/internal/render"
	"github.com/verte-zerg/statsview/internal/surface"
)

// frameInterval paces animation ticks at 60 fps.
const frameInterval = time.Second / 60

var (
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

type frameMsg time.Time

// Model implements the Bubble Tea chart UI.
type Model struct {
	chart   *chart.Chart
	redraw  *chart.Coalescer
	gen     *generator.Generator
	full    float64
	count   int
	color   bool
	now     func() time.Time
	ticking bool

	width  int
	height int
	body   string

	keys    keyMap
	help    help.Model
	editing bool
	input   textinput.Model
	errMsg  string
	notice  string
	clip    func(string) error
}

// Option configures a Model.
type Option func(*Model)

// WithClock overrides the time source for animation ticks.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

// WithColor toggles colored chart output.
func WithColor(enabled bool) Option {
	return func(m *Model) {
		m.color = enabled
	}
}

// WithClipboard overrides how values are copied.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		m.clip = write
	}
}

// WithRandomCount sets how many segments random data has.
func WithRandomCount(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.count = n
		}
	}
}

// NewModel constructs a chart TUI model showing values against full.
func NewModel(cfg model.ChartConfig, full float64, values []float64, gen *generator.Generator, opts ...Option) (*Model, error) {
	m := &Model{
		redraw: &chart.Coalescer{},
		gen:    gen,
		full:   full,
		count:  4,
		color:  true,
		now:    time.Now,
		clip:   clipboard.WriteAll,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
	if len(values) > 0 {
		m.count = len(values)
	}
	for _, opt := range opts {
		opt(m)
	}
	density := cfg.Density
	if density <= 0 {
		density = 1
	}
	cfg.Density = density * surface.BrailleDensity
	c, err := chart.New(cfg, chart.WithSink(m.redraw), chart.WithClock(func() time.Time { return m.now() }))
	if err != nil {
		return nil, err
	}
	m.chart = c
	m.chart.SetFull(full)
	if err := m.chart.SetData(values); err != nil {
		return nil, err
	}
	m.initInput()
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.startTicker()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		cols, rows := m.chartArea()
		m.chart.OnAreaResized(float64(cols*2), float64(rows*4))
		return m, nil
	case frameMsg:
		m.chart.Tick(m.now())
		if !m.chart.Animating() {
			m.ticking = false
			return m, nil
		}
		return m, m.tick()
	case tea.KeyMsg:
		if m.editing {
			return m.updateInput(msg)
		}
		m.notice = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Style):
			if err := m.chart.SetStyle(m.chart.Model().Style().Next()); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			return m, m.startTicker()
		case key.Matches(msg, m.keys.Rotate):
			m.chart.SetRotation(!m.chart.Model().Rotation())
			return m, nil
		case key.Matches(msg, m.keys.Random):
			return m, m.setData(m.randomValues())
		case key.Matches(msg, m.keys.Edit):
			return m.startInput()
		case key.Matches(msg, m.keys.Copy):
			m.copyValues()
			return m, nil
		}
	default:
		// Cursor blinks and other input messages.
		if m.editing {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.redraw.Take() || m.body == "" {
		m.body = m.renderChart()
	}
	return m.body + "\n" + m.renderFooter()
}

// Chart returns the hosted chart.
func (m *Model) Chart() *chart.Chart {
	return m.chart
}

func (m *Model) chartArea() (cols, rows int) {
	rows = m.height - 1
	if rows < 0 {
		rows = 0
	}
	return m.width, rows
}

func (m *Model) renderChart() string {
	cols, rows := m.chartArea()
	canvas := surface.NewBraille(cols, rows)
	if err := canvas.Draw(m.chart.Frame()); err != nil {
		logErrf("failed to draw chart: %v\n", err)
	}
	return canvas.String(m.color)
}

func (m *Model) renderFooter() string {
	if m.editing {
		line := m.input.View()
		if m.errMsg != "" {
			line += "  " + errorStyle.Render(m.errMsg)
		}
		return line + "  " + m.help.View(editKeyMap{m.keys})
	}
	var line string
	switch {
	case m.errMsg != "":
		line = errorStyle.Render(truncateLine(m.errMsg, m.width))
	case m.notice != "":
		line = footerStyle.Render(truncateLine(m.notice, m.width))
	default:
		line = footerStyle.Render(joinFitting(m.statusSegments(), "  ", m.width))
	}
	rest := m.width - lipgloss.Width(line) - 2
	if m.width > 0 && rest <= 0 {
		return line
	}
	m.help.Width = max(rest, 0)
	return line + "  " + m.help.View(m.keys)
}

func (m *Model) statusSegments() []string {
	cm := m.chart.Model()
	rotation := "off"
	if cm.Rotation() {
		rotation = "on"
	}
	return []string{
		render.Percent(cm.Data(), cm.Full()) + " of " + formatNumber(cm.Full()),
		"style " + cm.Style().String(),
		"rotation " + rotation,
	}
}

func (m *Model) copyValues() {
	m.notice = ""
	if err := m.clip(formatValues(m.chart.Model().Data())); err != nil {
		m.errMsg = fmt.Sprintf("failed to copy values: %v", err)
		return
	}
	m.errMsg = ""
	m.notice = "Copied values to clipboard"
}

func (m *Model) initInput() {
	input := textinput.New()
	input.Prompt = "Values: "
	input.Placeholder = "500, 150, 50"
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	m.input = input
}

func (m *Model) startInput() (tea.Model, tea.Cmd) {
	m.editing = true
	m.errMsg = ""
	m.input.SetValue(formatValues(m.chart.Model().Data()))
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.editing = false
		m.errMsg = ""
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Apply):
		values, err := datafile.ParseFields(m.input.Value())
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		cmd := m.setData(values)
		if m.errMsg != "" {
			return m, nil
		}
		m.editing = false
		m.input.Blur()
		return m, cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) setData(values []float64) tea.Cmd {
	if err := m.chart.SetData(values); err != nil {
		m.errMsg = err.Error()
		return nil
	}
	m.errMsg = ""
	return m.startTicker()
}

func (m *Model) randomValues() []float64 {
	if m.gen == nil {
		m.gen = generator.New()
	}
	return m.gen.Generate(m.count, m.full, m.gen.Fill(0.5, 1))
}

func (m *Model) startTicker() tea.Cmd {
	if m.ticking || !m.chart.Animating() {
		return nil
	}
	m.ticking = true
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func formatValues(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatNumber(v)
	}
	return strings.Join(parts, ", ")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
