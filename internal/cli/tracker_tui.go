package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kmadrilejo/atelier/internal/cli/formatter"
	"github.com/kmadrilejo/atelier/internal/contract"
)

// refreshInterval is how often the watch view reloads the tracker.
const refreshInterval = 30 * time.Second

type trackerLoadedMsg struct {
	view *contract.TrackerView
	err  error
}

type trackerTickMsg struct{}

// trackerModel is the bubbletea model for "tracker --watch": a scrollable
// viewport over the rendered tracker that refreshes periodically or on 'r'.
type trackerModel struct {
	app       *App
	projectID string

	vp       viewport.Model
	view     *contract.TrackerView
	err      error
	loading  bool
	quitting bool

	keys trackerKeyMap
}

type trackerKeyMap struct {
	Refresh key.Binding
	Quit    key.Binding
}

func newTrackerModel(app *App, projectID string) trackerModel {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return trackerModel{
		app:       app,
		projectID: projectID,
		vp:        vp,
		loading:   true,
		keys: trackerKeyMap{
			Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
			Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		},
	}
}

func (m trackerModel) loadTracker() tea.Cmd {
	return func() tea.Msg {
		view, err := m.app.Insights.Tracker(context.Background(), m.projectID)
		return trackerLoadedMsg{view: view, err: err}
	}
}

func trackerTick() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return trackerTickMsg{}
	})
}

func (m trackerModel) Init() tea.Cmd {
	return tea.Batch(m.loadTracker(), trackerTick())
}

func (m trackerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width
		m.vp.Height = msg.Height - 1
		m.renderContent()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, m.loadTracker()
		}

	case trackerTickMsg:
		return m, tea.Batch(m.loadTracker(), trackerTick())

	case trackerLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.view = msg.view
		}
		m.renderContent()
		return m, nil
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *trackerModel) renderContent() {
	switch {
	case m.err != nil:
		m.vp.SetContent(formatter.StyleRed.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.view != nil:
		m.vp.SetContent(formatter.FormatTracker(m.view))
	}
}

func (m trackerModel) View() string {
	if m.quitting {
		return ""
	}
	status := formatter.Dim("r refresh · q quit")
	if m.loading {
		status = formatter.Dim("loading…")
	}
	return m.vp.View() + "\n" + status
}

func runTrackerTUI(app *App, projectID string) error {
	p := tea.NewProgram(newTrackerModel(app, projectID), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
