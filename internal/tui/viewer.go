// ABOUTME: Full-screen story viewer driving the playback engine from bubbletea ticks.
// ABOUTME: Ticks carry the timer generation they were armed for; stale ticks are dropped.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/2389-research/snapgram/internal/models"
	"github.com/2389-research/snapgram/internal/playback"
)

// tickMsg is one progress-timer tick for a given engine generation.
type tickMsg struct {
	gen uint64
}

var (
	ownerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 2)
)

// ViewerModel is the bubbletea model for watching stories.
type ViewerModel struct {
	engine   *playback.Engine
	bar      progress.Model
	interval time.Duration
	width    int
}

// NewViewerModel opens stories at index on engine and returns a viewer for it.
func NewViewerModel(engine *playback.Engine, stories []models.Story, index int) (ViewerModel, error) {
	if err := engine.Open(stories, index); err != nil {
		return ViewerModel{}, err
	}
	return ViewerModel{
		engine:   engine,
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		interval: engine.TickInterval(),
	}, nil
}

// Init implements tea.Model.
func (m ViewerModel) Init() tea.Cmd {
	return m.armTick()
}

func (m ViewerModel) armTick() tea.Cmd {
	gen := m.engine.Generation()
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// Update implements tea.Model.
func (m ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = max(10, msg.Width-8)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.engine.Close()
			return m, tea.Quit
		case "right", "l", " ":
			return m.step(m.engine.Next)
		case "left", "h":
			return m.step(m.engine.Previous)
		}

	case tickMsg:
		st, ok := m.engine.TickFor(msg.gen)
		if !ok {
			return m, nil
		}
		if st.State != playback.Playing {
			return m, tea.Quit
		}
		return m, m.armTick()
	}

	return m, nil
}

// step applies a navigation action. A story switch retires the pending tick, so a new one
// is armed for the new generation.
func (m ViewerModel) step(action func() playback.Status) (tea.Model, tea.Cmd) {
	before := m.engine.Generation()
	st := action()
	if st.State != playback.Playing {
		return m, tea.Quit
	}
	if m.engine.Generation() != before {
		return m, m.armTick()
	}
	return m, nil
}

// View implements tea.Model.
func (m ViewerModel) View() string {
	story, item, ok := m.engine.Current()
	if !ok {
		return ""
	}
	st := m.engine.Status()

	var b strings.Builder
	b.WriteString(m.bar.ViewAs(st.Progress / 100))
	b.WriteString("\n")
	b.WriteString(ownerStyle.Render("@" + story.OwnerUsername))
	b.WriteString(stepStyle.Render(fmt.Sprintf("  %s  %d/%d", item.Timestamp, st.ItemIndex+1, len(story.Items))))
	b.WriteString("\n\n")
	b.WriteString(frameStyle.Render(item.Image))
	b.WriteString("\n\n")
	b.WriteString(promptStyle.Render("←/h previous · →/l next · esc close"))
	b.WriteString("\n")
	return b.String()
}

// Status reports the engine state behind the viewer.
func (m ViewerModel) Status() playback.Status {
	return m.engine.Status()
}
