package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"conviction-radar/internal/domain"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SignalLister is the slice of the signal service the dashboard needs.
type SignalLister interface {
	GetSignalReport(ctx context.Context) (*domain.SignalReport, error)
	GetPositionsByTicker(ctx context.Context, ticker string) ([]domain.Position, error)
}

type Narrator interface {
	Narrate(ctx context.Context, ticker string) (string, error)
}

// Services bundles everything a TUI session depends on.
type Services struct {
	Signals  SignalLister
	Narrator Narrator
	Username string
}

type view int

const (
	viewList view = iota
	viewDetail
)

type reportMsg struct {
	report *domain.SignalReport
}

type positionsMsg struct {
	ticker    string
	positions []domain.Position
}

type narrativeMsg struct {
	ticker    string
	narrative string
}

type errMsg struct {
	err error
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	badgeStrongStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("46"))

	badgeNotableStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("226"))

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

// AppModel is the SSH dashboard: a ranked signal table with a per-ticker
// position drill-down and optional LLM briefing.
type AppModel struct {
	svc    Services
	view   view
	table  table.Model
	report *domain.SignalReport

	detailTicker string
	positions    []domain.Position
	narrative    string

	status string
	width  int
	height int
}

func NewAppModel(svc Services) *AppModel {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Ticker", Width: 8},
		{Title: "Badge", Width: 9},
		{Title: "Score", Width: 12},
		{Title: "Puts", Width: 8},
		{Title: "Calls", Width: 8},
		{Title: "Days", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("212")).Bold(true)
	t.SetStyles(styles)

	return &AppModel{
		svc:    svc,
		view:   viewList,
		table:  t,
		status: "loading signals...",
	}
}

func (m *AppModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *AppModel) Init() tea.Cmd {
	return m.fetchReport()
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case reportMsg:
		m.report = msg.report
		m.table.SetRows(signalRows(msg.report))
		m.status = fmt.Sprintf("%d of %d candidates qualified · updated %s",
			msg.report.QualifiedCount, msg.report.CandidateCount,
			time.Now().Format("15:04:05"))
		return m, nil

	case positionsMsg:
		m.view = viewDetail
		m.detailTicker = msg.ticker
		m.positions = msg.positions
		m.narrative = ""
		return m, nil

	case narrativeMsg:
		if msg.ticker == m.detailTicker {
			m.narrative = msg.narrative
		}
		return m, nil

	case errMsg:
		m.status = "error: " + msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.view == viewDetail {
			m.view = viewList
			return m, nil
		}
		return m, tea.Quit

	case "esc":
		m.view = viewList
		return m, nil

	case "r":
		m.status = "refreshing..."
		return m, m.fetchReport()

	case "enter":
		if m.view == viewList {
			if ticker := m.selectedTicker(); ticker != "" {
				return m, m.fetchPositions(ticker)
			}
		}
		return m, nil

	case "n":
		if m.view == viewDetail && m.svc.Narrator != nil {
			m.narrative = "thinking..."
			return m, m.fetchNarrative(m.detailTicker)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *AppModel) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("CONVICTION RADAR"))
	if m.svc.Username != "" {
		sb.WriteString(statusStyle.Render("  " + m.svc.Username))
	}
	sb.WriteString("\n\n")

	switch m.view {
	case viewDetail:
		sb.WriteString(m.detailView())
	default:
		sb.WriteString(m.table.View())
		sb.WriteString("\n")
		sb.WriteString(statusStyle.Render("enter: positions · r: refresh · q: quit"))
	}

	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render(m.status))
	return sb.String()
}

func (m *AppModel) detailView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.detailTicker))
	sb.WriteString("\n")

	if len(m.positions) == 0 {
		sb.WriteString("no active positions\n")
	}
	for _, p := range m.positions {
		premium := "n/a"
		if p.PremiumObserved() {
			premium = fmt.Sprintf("$%.2f", p.OriginalPremium)
		}
		sb.WriteString(fmt.Sprintf("%-4s %6d @ $%.2f  traded %s  expires %s  premium %s\n",
			strings.ToUpper(string(p.Type)), p.Contracts, p.Strike,
			p.TradeDate.Format("2006-01-02"), p.Expiry.Format("2006-01-02"), premium))
	}

	if m.narrative != "" {
		sb.WriteString("\n")
		sb.WriteString(detailStyle.Render(m.narrative))
		sb.WriteString("\n")
	}

	keys := "esc: back · r: refresh · q: quit"
	if m.svc.Narrator != nil {
		keys = "n: briefing · " + keys
	}
	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render(keys))
	return sb.String()
}

func (m *AppModel) selectedTicker() string {
	row := m.table.SelectedRow()
	if len(row) < 2 {
		return ""
	}
	return row[1]
}

func (m *AppModel) fetchReport() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		report, err := m.svc.Signals.GetSignalReport(ctx)
		if err != nil {
			return errMsg{err: err}
		}
		return reportMsg{report: report}
	}
}

func (m *AppModel) fetchPositions(ticker string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		positions, err := m.svc.Signals.GetPositionsByTicker(ctx, ticker)
		if err != nil {
			return errMsg{err: err}
		}
		return positionsMsg{ticker: ticker, positions: positions}
	}
}

func (m *AppModel) fetchNarrative(ticker string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		narrative, err := m.svc.Narrator.Narrate(ctx, ticker)
		if err != nil {
			return errMsg{err: err}
		}
		return narrativeMsg{ticker: ticker, narrative: narrative}
	}
}

func signalRows(report *domain.SignalReport) []table.Row {
	rows := make([]table.Row, 0, len(report.Signals))
	for i, s := range report.Signals {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			s.Ticker,
			renderBadge(s.Badge),
			fmt.Sprintf("%.0f", s.Score),
			fmt.Sprintf("%d", s.TotalPutContracts),
			fmt.Sprintf("%d", s.TotalCallContracts),
			fmt.Sprintf("%d", s.DaysActive),
		})
	}
	return rows
}

func renderBadge(b domain.Badge) string {
	switch b {
	case domain.BadgeStrong:
		return badgeStrongStyle.Render(string(b))
	case domain.BadgeNotable:
		return badgeNotableStyle.Render(string(b))
	default:
		return string(b)
	}
}
