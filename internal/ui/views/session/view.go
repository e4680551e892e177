package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "qurtas/internal/modules/session/dto"
	"qurtas/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type SessionPort interface {
	List(ctx context.Context, bookID string) ([]sessiondto.SessionOutput, error)
	GlobalStats(ctx context.Context) (sessiondto.GlobalStatsOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type HistoryLoadedMsg struct {
	Sessions []sessiondto.SessionOutput
	Stats    sessiondto.GlobalStatsOutput
	Err      error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model renders the session history with global reading statistics on top.
type Model struct {
	port     SessionPort
	sessions []sessiondto.SessionOutput
	stats    sessiondto.GlobalStatsOutput
	view     viewport.Model
	spinner  spinner.Model
	loading  bool
	loadErr  error
	width    int
	height   int
}

func New(port SessionPort) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, view: vp, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.view.Width = m.width - 2
		m.view.Height = m.height - 2

	case HistoryLoadedMsg:
		m.loading = false
		m.loadErr = msg.Err
		if msg.Err == nil {
			m.sessions = msg.Sessions
			m.stats = msg.Stats
		}
		m.view.SetContent(m.renderContent())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	var vCmd tea.Cmd
	m.view, vCmd = m.view.Update(msg)
	cmds = append(cmds, vCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading sessions…")
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(m.width - 2).
		Height(m.height - 2).
		Render(m.view.View())
}

// Reload refetches the session history and global stats.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		sessions, err := m.port.List(ctx, "")
		if err != nil {
			return HistoryLoadedMsg{Err: err}
		}
		stats, err := m.port.GlobalStats(ctx)
		return HistoryLoadedMsg{Sessions: sessions, Stats: stats, Err: err}
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderContent() string {
	if m.loadErr != nil {
		return theme.Bad.Render("sessions: " + m.loadErr.Error())
	}
	var sb strings.Builder
	s := m.stats
	sb.WriteString(theme.Title.Render("Reading Stats") + "\n")
	sb.WriteString(fmt.Sprintf("%s%d (%d reading, %d completed)\n",
		theme.Muted.Render("books:    "), s.TotalBooks, s.BooksReading, s.BooksCompleted))
	sb.WriteString(fmt.Sprintf("%s%d total, %d this week\n",
		theme.Muted.Render("sessions: "), s.TotalSessions, s.WeekSessions))
	sb.WriteString(fmt.Sprintf("%s%d total, %d this week\n",
		theme.Muted.Render("pages:    "), s.TotalPagesRead, s.WeeklyPagesRead))
	sb.WriteString(fmt.Sprintf("%s%d min total, %d min avg\n",
		theme.Muted.Render("time:     "), s.TotalReadingMin, s.AverageSessionMin))

	sb.WriteString("\n" + theme.Title.Render("History") + "\n")
	if len(m.sessions) == 0 {
		sb.WriteString(theme.Muted.Render("no sessions yet"))
		return sb.String()
	}
	for _, session := range m.sessions {
		line := fmt.Sprintf("%s  %d pages  %d min",
			session.StartTime.Format("2006-01-02 15:04"), session.PagesRead, session.DurationMin)
		if session.Active {
			sb.WriteString(theme.Hot.Render("● "+line+"  active") + "\n")
			continue
		}
		if session.HasNotes {
			line += "  ✎"
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}
