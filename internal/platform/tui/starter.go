package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-monsters/internal/core"
	"github.com/vovakirdan/tui-monsters/internal/dex"
)

// StarterMenuModel is the Bubble Tea model for picking a starter species.
type StarterMenuModel struct {
	species  []*dex.Species
	cursor   int
	width    int
	height   int
	config   core.RuntimeConfig
	keys     BattleKeyMap
	quitting bool
	selected *dex.Species // Set when user picks a species
}

// NewStarterMenuModel creates a starter menu listing every species in d.
func NewStarterMenuModel(d *dex.Dex, cfg core.RuntimeConfig) StarterMenuModel {
	return StarterMenuModel{
		species: d.SpeciesList(),
		width:   cfg.ScreenW,
		height:  cfg.ScreenH,
		config:  cfg,
		keys:    DefaultBattleKeyMap(),
	}
}

// Init initializes the menu model.
func (m StarterMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m StarterMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m StarterMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.species)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Confirm):
		if len(m.species) > 0 {
			m.selected = m.species[m.cursor]
			return m, tea.Quit // Exit menu to start walking
		}
	}

	return m, nil
}

// View renders the menu.
func (m StarterMenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(nameStyle.Render("  M O N S T E R S  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Choose your starter", m.width))
	b.WriteString("\n\n")

	options := make([]string, len(m.species))
	for i, sp := range m.species {
		var badges []string
		for _, t := range sp.TypeList() {
			badges = append(badges, TypeBadge(t))
		}
		options[i] = fmt.Sprintf("%-12s %s %s", sp.Name, strings.Join(badges, " "),
			dimStyle.Render(fmt.Sprintf("total %d", sp.BaseStats.Total())))
	}
	b.WriteString(centerText(renderOptions(options, m.cursor), m.width))
	b.WriteString("\n")

	if len(m.species) > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(m.renderStats(m.species[m.cursor]), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("Up/Down: Navigate  |  Enter: Choose  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// renderStats renders the base stats of the highlighted species.
func (m StarterMenuModel) renderStats(sp *dex.Species) string {
	s := sp.BaseStats
	return boxStyle.Render(fmt.Sprintf("HP %d  Atk %d  Def %d  SpA %d  SpD %d  Spe %d",
		s.HP, s.Attack, s.Defense, s.SpAttack, s.SpDefense, s.Speed))
}

// Selected returns the chosen species, or nil if none was chosen.
func (m StarterMenuModel) Selected() *dex.Species {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m StarterMenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m StarterMenuModel) Config() core.RuntimeConfig {
	return m.config
}

// RunStarterMenu shows the starter menu. It returns nil when the user quits.
func RunStarterMenu(d *dex.Dex, cfg core.RuntimeConfig) (*dex.Species, core.RuntimeConfig, error) {
	model := NewStarterMenuModel(d, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(StarterMenuModel)
	if !ok || m.IsQuitting() {
		return nil, cfg, nil
	}

	return m.Selected(), m.Config(), nil
}
