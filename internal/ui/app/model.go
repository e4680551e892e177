package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	goaldto "qurtas/internal/modules/goal/dto"
	librarydto "qurtas/internal/modules/library/dto"
	sessiondto "qurtas/internal/modules/session/dto"
	"qurtas/internal/ui/components"
	"qurtas/internal/ui/theme"
	goalsview "qurtas/internal/ui/views/goals"
	libraryview "qurtas/internal/ui/views/library"
	sessionview "qurtas/internal/ui/views/session"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type libraryPort interface {
	Browse(ctx context.Context, status string) ([]librarydto.BookOutput, error)
	Get(ctx context.Context, id string) (librarydto.BookDetailOutput, error)
	UpdateProgress(ctx context.Context, bookID string, page int) (librarydto.BookOutput, error)
	ChangeStatus(ctx context.Context, input librarydto.ChangeStatusInput) (librarydto.BookOutput, error)
}

type sessionPort interface {
	Start(ctx context.Context, bookID string) (sessiondto.SessionOutput, error)
	Complete(ctx context.Context, sessionID string, endPage int, notes sessiondto.NotesInput) (sessiondto.SessionOutput, error)
	Discard(ctx context.Context, sessionID string) error
	List(ctx context.Context, bookID string) ([]sessiondto.SessionOutput, error)
	GlobalStats(ctx context.Context) (sessiondto.GlobalStatsOutput, error)
}

type goalPort interface {
	SetGoal(ctx context.Context, input goaldto.SetGoalInput) (goaldto.GoalOutput, error)
	Progress(ctx context.Context) (goaldto.ProgressOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabLibrary tabID = iota
	tabSessions
	tabGoals
	tabCount
)

var tabLabels = [tabCount]string{"Library", "Sessions", "Goals"}

// ─── async messages ───────────────────────────────────────────────────────────

type activeLoadedMsg struct {
	active sessiondto.SessionOutput
	found  bool
	err    error
}

type sessionStartedMsg struct {
	session sessiondto.SessionOutput
	title   string
	err     error
}

type sessionEndedMsg struct {
	session sessiondto.SessionOutput
	err     error
}

type sessionDiscardedMsg struct{ err error }

type bookUpdatedMsg struct {
	book librarydto.BookOutput
	err  error
}

type goalSavedMsg struct {
	goal goaldto.GoalOutput
	err  error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Session key.Binding
	Refresh key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Session: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start session")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Session, k.Refresh},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the active
// session banner, the help overlay, and the command palette. All business
// logic is delegated to port interfaces; all rendering to sub-views.
type Model struct {
	library libraryPort
	session sessionPort
	goal    goalPort

	libView  libraryview.Model
	sessView sessionview.Model
	goalView goalsview.Model

	activeTab     tabID
	keys          keyMap
	help          help.Model
	showHelp      bool
	palette       components.Palette
	activeSession sessiondto.SessionOutput
	activeTitle   string
	hasActive     bool
	status        string
	width         int
	height        int
}

func NewModel(library libraryPort, session sessionPort, goal goalPort) Model {
	return Model{
		library:   library,
		session:   session,
		goal:      goal,
		libView:   libraryview.New(library),
		sessView:  sessionview.New(session),
		goalView:  goalsview.New(goal),
		activeTab: tabLibrary,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.libView.Init(),
		m.sessView.Init(),
		m.goalView.Init(),
		m.loadActiveCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case activeLoadedMsg:
		if msg.err != nil {
			m.status = "session check: " + msg.err.Error()
		} else if msg.found {
			m.hasActive = true
			m.activeSession = msg.active
			m.status = "active session recovered"
		}

	case sessionStartedMsg:
		if msg.err != nil {
			m.status = "session start failed: " + msg.err.Error()
		} else {
			m.hasActive = true
			m.activeSession = msg.session
			m.activeTitle = msg.title
			m.status = fmt.Sprintf("reading from page %d", msg.session.StartPage)
		}

	case sessionEndedMsg:
		if msg.err != nil {
			m.status = "session end failed: " + msg.err.Error()
		} else {
			m.hasActive = false
			m.activeSession = sessiondto.SessionOutput{}
			m.activeTitle = ""
			m.status = fmt.Sprintf("session ended: %d pages in %d min", msg.session.PagesRead, msg.session.DurationMin)
			cmds = append(cmds, m.reloadAll()...)
		}

	case sessionDiscardedMsg:
		if msg.err != nil {
			m.status = "discard failed: " + msg.err.Error()
		} else {
			m.hasActive = false
			m.activeSession = sessiondto.SessionOutput{}
			m.activeTitle = ""
			m.status = "session discarded"
			cmds = append(cmds, m.sessView.Reload())
		}

	case bookUpdatedMsg:
		if msg.err != nil {
			m.status = "book update failed: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("%s: page %d/%d, %s", msg.book.Title, msg.book.CurrentPage, msg.book.TotalPages, msg.book.Status)
			cmds = append(cmds, m.libView.Reload())
		}

	case goalSavedMsg:
		if msg.err != nil {
			m.status = "goal save failed: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("goal set: %d pages, %d sessions", msg.goal.PagesTarget, msg.goal.SessionsTarget)
			cmds = append(cmds, m.goalView.Reload())
		}

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the library view when its search filter is active.
		if m.activeTab == tabLibrary && m.libView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		case "s":
			if m.activeTab == tabLibrary && !m.hasActive {
				if id, ok := m.libView.SelectedBookID(); ok {
					cmds = append(cmds, m.startSessionCmd(id, m.libView.SelectedBookTitle()))
				}
			}
		case "r":
			cmds = append(cmds, m.reloadAll()...)
			m.status = "refreshed"
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabLibrary:
		m.libView, tabCmd = m.libView.Update(msg)
	case tabSessions:
		m.sessView, tabCmd = m.sessView.Update(msg)
	case tabGoals:
		m.goalView, tabCmd = m.goalView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabLibrary:
		return m.libView.View()
	case tabSessions:
		return m.sessView.View()
	case tabGoals:
		return m.goalView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "qurtas  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.hasActive {
		title := m.activeTitle
		if title == "" {
			title = m.activeSession.BookID
		}
		left = theme.Hot.Render("● reading "+title) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	selected, _ := m.libView.SelectedBookID()

	switch parts[0] {
	case "session:start":
		if m.hasActive {
			m.status = "a session is already active"
			return m, nil
		}
		if selected == "" {
			m.status = "no book selected"
			return m, nil
		}
		return m, m.startSessionCmd(selected, m.libView.SelectedBookTitle())

	case "session:end":
		if !m.hasActive {
			m.status = "no active session"
			return m, nil
		}
		if len(parts) < 2 {
			m.status = "usage: session:end <page> [notes]"
			return m, nil
		}
		page, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid page"
			return m, nil
		}
		notes := strings.TrimSpace(strings.TrimPrefix(input, parts[0]+" "+parts[1]))
		return m, m.endSessionCmd(page, notes)

	case "session:discard":
		if !m.hasActive {
			m.status = "no active session"
			return m, nil
		}
		return m, m.discardSessionCmd()

	case "book:progress":
		if selected == "" {
			m.status = "no book selected"
			return m, nil
		}
		if len(parts) < 2 {
			m.status = "usage: book:progress <page>"
			return m, nil
		}
		page, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid page"
			return m, nil
		}
		return m, m.updateProgressCmd(selected, page)

	case "book:status":
		if selected == "" {
			m.status = "no book selected"
			return m, nil
		}
		if len(parts) < 2 {
			m.status = "usage: book:status <reading|completed|dropped|shelved>"
			return m, nil
		}
		return m, m.changeStatusCmd(selected, parts[1])

	case "goal:set":
		if len(parts) < 3 {
			m.status = "usage: goal:set <pages> <sessions> [theme]"
			return m, nil
		}
		pages, err1 := strconv.Atoi(parts[1])
		sessions, err2 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil {
			m.status = "targets must be numbers"
			return m, nil
		}
		goalTheme := strings.TrimSpace(strings.TrimPrefix(input, parts[0]+" "+parts[1]+" "+parts[2]))
		return m, m.setGoalCmd(pages, sessions, goalTheme)

	case "refresh":
		m.status = "refreshed"
		return m, tea.Batch(m.reloadAll()...)

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.libView, _ = m.libView.Update(sz)
	m.sessView, _ = m.sessView.Update(sz)
	m.goalView, _ = m.goalView.Update(sz)
}

func (m Model) reloadAll() []tea.Cmd {
	return []tea.Cmd{m.libView.Reload(), m.sessView.Reload(), m.goalView.Reload()}
}

// ─── async commands ───────────────────────────────────────────────────────────

// loadActiveCmd recovers an interrupted session so the banner survives a
// restart.
func (m Model) loadActiveCmd() tea.Cmd {
	return func() tea.Msg {
		sessions, err := m.session.List(context.Background(), "")
		if err != nil {
			return activeLoadedMsg{err: err}
		}
		for _, session := range sessions {
			if session.Active {
				return activeLoadedMsg{active: session, found: true}
			}
		}
		return activeLoadedMsg{}
	}
}

func (m Model) startSessionCmd(bookID, title string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Start(context.Background(), bookID)
		return sessionStartedMsg{session: out, title: title, err: err}
	}
}

func (m Model) endSessionCmd(page int, notes string) tea.Cmd {
	sessionID := m.activeSession.ID
	return func() tea.Msg {
		input := sessiondto.NotesInput{}
		if notes != "" {
			input.WhatStoodOut = &notes
		}
		out, err := m.session.Complete(context.Background(), sessionID, page, input)
		return sessionEndedMsg{session: out, err: err}
	}
}

func (m Model) discardSessionCmd() tea.Cmd {
	sessionID := m.activeSession.ID
	return func() tea.Msg {
		return sessionDiscardedMsg{err: m.session.Discard(context.Background(), sessionID)}
	}
}

func (m Model) updateProgressCmd(bookID string, page int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.library.UpdateProgress(context.Background(), bookID, page)
		return bookUpdatedMsg{book: out, err: err}
	}
}

func (m Model) changeStatusCmd(bookID, status string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.library.ChangeStatus(context.Background(), librarydto.ChangeStatusInput{
			BookID: bookID,
			Status: status,
		})
		return bookUpdatedMsg{book: out, err: err}
	}
}

func (m Model) setGoalCmd(pages, sessions int, goalTheme string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.goal.SetGoal(context.Background(), goaldto.SetGoalInput{
			PagesTarget:    pages,
			SessionsTarget: sessions,
			WeeklyTheme:    goalTheme,
		})
		return goalSavedMsg{goal: out, err: err}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
