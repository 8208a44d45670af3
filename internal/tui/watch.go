// Package tui implements the live watch dashboard.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/barysiuk/agentdeck/internal/core"
)

// watchKeyMap defines the dashboard key bindings.
type watchKeyMap struct {
	Sync key.Binding
	Quit key.Binding
}

func (k watchKeyMap) ShortHelp() []key.Binding  { return []key.Binding{k.Sync, k.Quit} }
func (k watchKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{{k.Sync, k.Quit}} }

var watchKeys = watchKeyMap{
	Sync: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sync now")),
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type tickMsg time.Time

type syncDoneMsg struct {
	report *core.SyncReport
	err    error
}

type statusMsg struct {
	statuses []core.AgentStatus
	err      error
}

// WatchModel is the root Bubbletea model for agentdeck watch.
type WatchModel struct {
	dir      string
	env      string
	interval time.Duration
	engine   *core.Engine
	tracker  *core.ChangeTracker

	statuses []core.AgentStatus
	syncing  bool
	lastSync time.Time
	lastErr  error

	spinner spinner.Model
	help    help.Model
	width   int
}

// NewWatch creates the dashboard model. The tracker is primed so only edits
// made after watching started trigger a sync.
func NewWatch(dir, env string, interval time.Duration, engine *core.Engine) WatchModel {
	tracker := core.NewChangeTracker(dir)
	tracker.Prime()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = s.Style.Foreground(colorPrimary)

	return WatchModel{
		dir:      dir,
		env:      env,
		interval: interval,
		engine:   engine,
		tracker:  tracker,
		spinner:  s,
		help:     help.New(),
	}
}

// Init implements tea.Model.
func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadStatus, m.tick())
}

func (m WatchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m WatchModel) loadStatus() tea.Msg {
	statuses, err := core.CollectStatus(m.dir, m.env)
	return statusMsg{statuses: statuses, err: err}
}

func (m WatchModel) runSync() tea.Cmd {
	return func() tea.Msg {
		report, err := m.engine.Sync(context.Background(), core.SyncOptions{Environment: m.env})
		return syncDoneMsg{report: report, err: err}
	}
}

// Update implements tea.Model.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, watchKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, watchKeys.Sync):
			if !m.syncing {
				m.syncing = true
				return m, m.runSync()
			}
		}
		return m, nil

	case tickMsg:
		if !m.syncing && len(m.tracker.Changed()) > 0 {
			m.syncing = true
			return m, tea.Batch(m.runSync(), m.tick())
		}
		return m, m.tick()

	case syncDoneMsg:
		m.syncing = false
		m.lastSync = time.Now()
		m.lastErr = msg.err
		return m, m.loadStatus

	case statusMsg:
		if msg.err == nil {
			m.statuses = msg.statuses
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m WatchModel) View() string {
	var b strings.Builder

	b.WriteString(logoStyle.Render("agentdeck watch"))
	b.WriteString(headerPathStyle.Render(m.dir))
	if m.env != "" && m.env != core.DefaultEnvironment {
		b.WriteString(mutedStyle.Render("env: " + m.env))
	}
	b.WriteString("\n\n")

	if len(m.statuses) == 0 {
		b.WriteString(mutedStyle.Render("  No agents configured"))
		b.WriteString("\n")
	}
	for _, st := range m.statuses {
		b.WriteString("  ")
		b.WriteString(stateIcon(st.State))
		b.WriteString(" ")
		b.WriteString(st.Name)
		if st.Hash != "" {
			b.WriteString(mutedStyle.Render("  " + core.ShortHash(st.Hash)))
		}
		b.WriteString(mutedStyle.Render("  " + string(st.State)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.syncing:
		b.WriteString(m.spinner.View())
		b.WriteString(" syncing...")
	case m.lastErr != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("sync failed: %v", m.lastErr)))
	case !m.lastSync.IsZero():
		b.WriteString(mutedStyle.Render("last sync " + m.lastSync.Format("15:04:05")))
	default:
		b.WriteString(mutedStyle.Render("watching for changes..."))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(watchKeys))

	return b.String()
}

func stateIcon(state core.AgentState) string {
	switch state {
	case core.StateSynced:
		return syncedStyle.Render("●")
	case core.StateChanged, core.StateNew:
		return pendingStyle.Render("●")
	default:
		return errorStyle.Render("●")
	}
}
