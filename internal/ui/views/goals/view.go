package goals

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	goaldto "qurtas/internal/modules/goal/dto"
	"qurtas/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type GoalPort interface {
	Progress(ctx context.Context) (goaldto.ProgressOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type ProgressLoadedMsg struct {
	Progress goaldto.ProgressOutput
	Err      error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model renders the weekly goal with a bar per axis and the suggested
// daily pace.
type Model struct {
	port     GoalPort
	progress goaldto.ProgressOutput
	pagesBar progress.Model
	sessBar  progress.Model
	spinner  spinner.Model
	loading  bool
	loadErr  error
	width    int
	height   int
}

func New(port GoalPort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:     port,
		pagesBar: progress.New(progress.WithDefaultGradient()),
		sessBar:  progress.New(progress.WithDefaultGradient()),
		spinner:  sp,
		loading:  true,
	}
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
		barW := m.width - 10
		if barW > 60 {
			barW = 60
		}
		if barW < 10 {
			barW = 10
		}
		m.pagesBar.Width = barW
		m.sessBar.Width = barW

	case ProgressLoadedMsg:
		m.loading = false
		m.loadErr = msg.Err
		if msg.Err == nil {
			m.progress = msg.Progress
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading goal…")
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Padding(1).
		Width(m.width - 2).
		Height(m.height - 2).
		Render(m.renderContent())
}

// Reload refetches the weekly goal progress.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Progress(context.Background())
		return ProgressLoadedMsg{Progress: out, Err: err}
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderContent() string {
	if m.loadErr != nil {
		return theme.Bad.Render("goal: " + m.loadErr.Error())
	}
	p := m.progress
	var sb strings.Builder

	header := "Week of " + p.Goal.WeekStart.Format("2006-01-02")
	if p.Goal.WeeklyTheme != "" {
		header += " — " + p.Goal.WeeklyTheme
	}
	sb.WriteString(theme.Title.Render(header) + "\n\n")

	if p.Goal.PagesTarget == 0 && p.Goal.SessionsTarget == 0 {
		sb.WriteString(theme.Muted.Render("No goal set for this week. Use goal:set in the palette.") + "\n")
		return sb.String()
	}

	sb.WriteString(m.renderAxis("Pages", p.Pages, m.pagesBar))
	sb.WriteString(m.renderAxis("Sessions", p.Sessions, m.sessBar))

	overall := fmt.Sprintf("Overall: %d%%", p.OverallPercentage)
	if p.AllAchieved {
		sb.WriteString(theme.Good.Render(overall+"  goal achieved ✓") + "\n")
	} else {
		sb.WriteString(overall + "\n")
	}
	sb.WriteString(fmt.Sprintf("%s%d\n", theme.Muted.Render("days remaining: "), p.DaysRemaining))
	if p.SuggestedPace != nil && !p.AllAchieved {
		sb.WriteString(fmt.Sprintf("%s%d pages/day, %d sessions/day\n",
			theme.Muted.Render("pace to finish: "),
			p.SuggestedPace.PagesPerDay, p.SuggestedPace.SessionsPerDay))
	}
	return sb.String()
}

func (m Model) renderAxis(label string, axis goaldto.AxisOutput, bar progress.Model) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s %d/%d", theme.Muted.Render(label), axis.Current, axis.Target))
	if axis.Achieved {
		sb.WriteString(theme.Good.Render("  ✓"))
	}
	sb.WriteString("\n")
	sb.WriteString(bar.ViewAs(float64(axis.Percentage)/100) + "\n\n")
	return sb.String()
}
