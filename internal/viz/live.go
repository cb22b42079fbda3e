// Package viz renders a live terminal view of a flight in progress:
// a telemetry panel alongside a scrolling altitude graph.
package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/launchsim/internal/flight"
)

const (
	historyCapacity = 600
	graphWidth      = 60
	graphHeight     = 12
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	eventStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// TickMsg drives the simulation forward between renders.
type TickMsg time.Time

// Model holds the running session and its display buffers.
type Model struct {
	session       *flight.Session
	vehicleName   string
	frame         flight.Frame
	altHistory    []float64
	stepsPerFrame int
	fps           int
	running       bool
	finished      bool
}

// NewModel wraps an open session for live display. stepsPerFrame sets
// how much simulated time passes per rendered frame.
func NewModel(sess *flight.Session, vehicleName string, fps, stepsPerFrame int) Model {
	if fps <= 0 {
		fps = 30
	}
	if stepsPerFrame <= 0 {
		stepsPerFrame = 1
	}
	return Model{
		session:       sess,
		vehicleName:   vehicleName,
		altHistory:    make([]float64, 0, historyCapacity),
		stepsPerFrame: stepsPerFrame,
		fps:           fps,
		running:       true,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}
	case TickMsg:
		if m.running && !m.finished {
			for i := 0; i < m.stepsPerFrame && !m.session.Done(); i++ {
				m.frame = m.session.Step()
			}
			m.altHistory = append(m.altHistory, m.frame.Altitude())
			if len(m.altHistory) > historyCapacity {
				m.altHistory = m.altHistory[len(m.altHistory)-historyCapacity:]
			}
			if m.session.Done() {
				m.finished = true
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	title := fmt.Sprintf("launchsim — %s", m.vehicleName)
	if m.finished {
		title += " (finished)"
	} else if !m.running {
		title += " (paused)"
	}
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")

	f := m.frame
	rows := []struct {
		label string
		value string
	}{
		{"time", fmt.Sprintf("%8.1f s", f.Time)},
		{"altitude", fmt.Sprintf("%8.0f m", f.Altitude())},
		{"speed", fmt.Sprintf("%8.1f m/s", f.Speed())},
		{"mass", fmt.Sprintf("%8.0f kg", f.Mass)},
		{"fuel", fmt.Sprintf("%8.0f kg", f.FuelMass)},
		{"attitude", fmt.Sprintf("%8.2f deg", f.Attitude*180/math.Pi)},
		{"thrust", fmt.Sprintf("%8.0f kN", f.Thrust.Norm()/1000)},
		{"dyn pressure", fmt.Sprintf("%8.0f Pa", f.DynamicPressure)},
	}
	for _, row := range rows {
		b.WriteString(labelStyle.Render(row.label))
		b.WriteString(valueStyle.Render(row.value))
		b.WriteString("\n")
	}

	result := m.session.Result()
	if n := len(result.Events); n > 0 {
		last := result.Events[n-1]
		b.WriteString(eventStyle.Render(fmt.Sprintf("last event: %s @ t=%.1fs", last.Detail, last.Time)))
		b.WriteString("\n")
	}

	if len(m.altHistory) >= 2 {
		graph := asciigraph.Plot(m.altHistory,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("altitude (m)"),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("space pause · q quit"))
	return b.String()
}

// Run displays a session until it finishes or the user quits.
func Run(sess *flight.Session, vehicleName string, fps, stepsPerFrame int) error {
	p := tea.NewProgram(NewModel(sess, vehicleName, fps, stepsPerFrame))
	_, err := p.Run()
	return err
}
