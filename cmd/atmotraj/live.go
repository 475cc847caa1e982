package main

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/rainsdm/atmotraj/internal/predict"
)

const liveHistoryCap = 400

var (
	liveHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	liveLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	liveValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	liveGraphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	liveHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	liveDoneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

type liveTickMsg time.Time

// liveModel steps the prediction a few timesteps per frame and draws the
// descent as it unfolds.
type liveModel struct {
	sc    *scene
	state predict.State
	t     float64
	dt    float64

	impactRadius float64
	duration     float64
	fps          int

	stepsPerFrame int
	running       bool
	impacted      bool

	altHistory   []float64
	speedHistory []float64
}

func newLiveModel(sc *scene, fps int) liveModel {
	if fps <= 0 {
		fps = 30
	}
	dt := sc.cfg.Predictor.Dt
	stepsPerFrame := int(1.0 / (dt * float64(fps)))
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}

	return liveModel{
		sc:            sc,
		state:         sc.x0.Clone(),
		dt:            dt,
		impactRadius:  sc.snap.Body.Radius + math.Max(0, sc.snap.Body.MaxTerrainHeight),
		duration:      sc.cfg.Predictor.Duration,
		fps:           fps,
		stepsPerFrame: stepsPerFrame,
		running:       true,
		altHistory:    make([]float64, 0, liveHistoryCap),
		speedHistory:  make([]float64, 0, liveHistoryCap),
	}
}

func (m liveModel) Init() tea.Cmd {
	return m.tick()
}

func (m liveModel) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return liveTickMsg(t)
	})
}

func (m liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
			if m.running {
				return m, m.tick()
			}
			return m, nil
		}

	case liveTickMsg:
		if !m.running {
			return m, nil
		}
		for i := 0; i < m.stepsPerFrame; i++ {
			if m.t >= m.duration || !m.state.IsValid() {
				m.running = false
				break
			}
			m.state = m.sc.integ.Step(m.sc.dyn, m.state, m.t, m.dt)
			m.t += m.dt
			if predict.Position(m.state).Mag() <= m.impactRadius {
				m.impacted = true
				m.running = false
				break
			}
		}
		m.record()
		if m.running {
			return m, m.tick()
		}
		return m, nil
	}

	return m, nil
}

func (m *liveModel) record() {
	alt := predict.Position(m.state).Mag() - m.sc.snap.Body.Radius
	spd := predict.Velocity(m.state).Mag()
	if len(m.altHistory) >= liveHistoryCap {
		m.altHistory = m.altHistory[1:]
		m.speedHistory = m.speedHistory[1:]
	}
	m.altHistory = append(m.altHistory, alt)
	m.speedHistory = append(m.speedHistory, spd)
}

func (m liveModel) View() string {
	var b []byte

	b = append(b, liveHeaderStyle.Render(fmt.Sprintf("entry at %s (%s, %s)",
		m.sc.cfg.Body.Name, m.sc.cfg.Model, m.sc.cfg.Integrator))...)
	b = append(b, '\n')

	alt := predict.Position(m.state).Mag() - m.sc.snap.Body.Radius
	spd := predict.Velocity(m.state).Mag()

	rows := []struct {
		label string
		value string
	}{
		{"time", fmt.Sprintf("%.1f s", m.t)},
		{"altitude", fmt.Sprintf("%.0f m", alt)},
		{"speed", fmt.Sprintf("%.0f m/s", spd)},
		{"vehicle mass", fmt.Sprintf("%.0f kg", m.sc.model.Mass())},
	}
	for _, row := range rows {
		b = append(b, liveLabelStyle.Render(row.label)...)
		b = append(b, liveValueStyle.Render(row.value)...)
		b = append(b, '\n')
	}

	if len(m.altHistory) >= 2 {
		graph := asciigraph.Plot(m.altHistory,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption("altitude (m)"),
		)
		b = append(b, liveGraphStyle.Render(graph)...)
		b = append(b, '\n')
	}

	switch {
	case m.impacted:
		b = append(b, liveDoneStyle.Render(fmt.Sprintf("impact at t=%.1fs", m.t))...)
		b = append(b, '\n')
	case !m.running && m.t >= m.duration:
		b = append(b, "prediction window exhausted\n"...)
	case !m.running:
		b = append(b, "paused\n"...)
	}

	b = append(b, liveHelpStyle.Render("space pause • q quit")...)
	b = append(b, '\n')
	return string(b)
}
