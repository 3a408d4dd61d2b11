package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-monsters/internal/storage"
)

// Records layout constants
const (
	maxRecords    = 100 // Max battles to load
	tableMinWidth = 60
)

// RecordsModel is the Bubble Tea model for the battle records screen.
type RecordsModel struct {
	store     *storage.Store
	records   []storage.Record
	tally     storage.Tally
	loadErr   error
	table     table.Model
	help      help.Model
	keys      RecordsKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewRecordsModel creates a new records model.
func NewRecordsModel(store *storage.Store, width, height int) RecordsModel {
	h := help.New()
	h.ShowAll = false

	m := RecordsModel{
		store:  store,
		keys:   DefaultRecordsKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with columns sized to the screen.
func (m *RecordsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Result", Width: 8},
		{Title: "Lead", Width: 14},
		{Title: "Opponent", Width: 14},
		{Title: "Turns", Width: 5},
	}

	// Give spare width to the name columns
	if spare := m.width - 4 - tableMinWidth; spare > 0 {
		extra := min(spare/2, 8)
		columns[2].Width += extra
		columns[3].Width += extra
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)), // Leave room for header, tally and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the recent battles and the tally.
func (m *RecordsModel) load() {
	m.records, m.tally, m.loadErr = nil, storage.Tally{}, nil
	if m.store != nil {
		records, err := m.store.RecentBattles(maxRecords)
		if err != nil {
			m.loadErr = err
		} else {
			m.records = records
		}
		if tally, err := m.store.Tally(); err == nil {
			m.tally = tally
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded records.
func (m *RecordsModel) updateTableRows() {
	rows := make([]table.Row, len(m.records))
	for i, r := range m.records {
		opponent := fmt.Sprintf("%s Lv%d", r.EnemyLead, r.EnemyLevel)
		if r.TrainerName != "" {
			opponent = r.TrainerName
		}
		rows[i] = table.Row{
			r.CreatedAt.Format("Jan 02 15:04"),
			r.Result.String(),
			fmt.Sprintf("%s Lv%d", r.PlayerLead, r.PlayerLevel),
			opponent,
			fmt.Sprintf("%d", r.Turns),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the records model.
func (m RecordsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the records screen.
func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Clear):
			if m.store != nil {
				if err := m.store.ClearBattles(); err != nil {
					m.loadErr = err
					return m, nil
				}
			}
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the records screen.
func (m RecordsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("BATTLE RECORDS", m.width)))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.renderTally(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTally renders the outcome counts.
func (m RecordsModel) renderTally() string {
	t := m.tally
	return fmt.Sprintf("%s %d   %s %d   %s %d   %s",
		resultStyles["victory"].Render("W"), t.Victories,
		resultStyles["defeat"].Render("L"), t.Defeats,
		resultStyles["escape"].Render("R"), t.Escapes,
		dimStyle.Render(fmt.Sprintf("win rate %.0f%%", t.WinRate()*100)),
	)
}

// renderTableContent renders the table or an empty message.
func (m RecordsModel) renderTableContent() string {
	if m.loadErr != nil {
		return hpLowStyle.Render("Could not load records: " + m.loadErr.Error())
	}
	if len(m.records) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No battles recorded yet.\nWalk into the tall grass!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user pressed back.
func (m RecordsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RecordsModel) IsQuitting() bool {
	return m.quitting
}

// RunRecords runs the records screen.
func RunRecords(store *storage.Store, width, height int) error {
	model := NewRecordsModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
