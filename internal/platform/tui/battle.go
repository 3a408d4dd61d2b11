package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-monsters/internal/battle"
	"github.com/vovakirdan/tui-monsters/internal/core"
	"github.com/vovakirdan/tui-monsters/internal/monster"
)

// Battle screen layout constants
const (
	hpBarWidth     = 20
	historyLines   = 3
	encounterSteps = 1000 // Max steps walked looking for the next encounter
	itemName       = "Potion"
)

// Encounters supplies battles to the battle screen and takes back the
// results. *session.Session satisfies it.
type Encounters interface {
	Finish(m *battle.Manager)
	NextEncounter(maxSteps int, opts ...battle.Option) (*battle.Manager, error)
}

type menu int

const (
	menuNone menu = iota
	menuAction
	menuMove
	menuSwitch
)

var actionLabels = [...]string{"Fight", "Switch", "Item", "Run"}

// BattleModel is the Bubble Tea model for one battle at a time. It shows
// each battle message until it is acknowledged, then opens the menu the
// battle state asks for.
type BattleModel struct {
	mgr        *battle.Manager
	encounters Encounters
	keys       BattleKeyMap
	help       help.Model
	config     core.RuntimeConfig

	menu     menu
	cursor   int
	message  string   // Message awaiting acknowledgement
	history  []string // Previously acknowledged messages
	hint     string
	shownHP  [2]int // Animated HP per side
	targetHP [2]int
	finished bool
	err      error
	quitting bool
}

// NewBattleModel creates the battle screen and starts mgr. encounters may
// be nil, in which case the screen closes when the battle ends.
func NewBattleModel(mgr *battle.Manager, encounters Encounters, cfg core.RuntimeConfig) BattleModel {
	h := help.New()
	h.ShowAll = false

	m := BattleModel{
		encounters: encounters,
		keys:       DefaultBattleKeyMap(),
		help:       h,
		config:     cfg,
	}
	m.begin(mgr)
	return m
}

// begin resets the screen for a new battle and plays its intro.
func (m *BattleModel) begin(mgr *battle.Manager) {
	m.mgr = mgr
	m.menu = menuNone
	m.cursor = 0
	m.history = nil
	m.hint = ""
	m.finished = false
	m.err = nil
	for _, side := range []battle.Side{battle.SidePlayer, battle.SideEnemy} {
		hp := m.active(side).HP()
		m.shownHP[side], m.targetHP[side] = hp, hp
	}

	mgr.Start()
	m.advance()
}

// Init starts the HP animation ticker.
func (m BattleModel) Init() tea.Cmd {
	return tickCmd(hpTickRate)
}

// Update handles messages and updates the model state.
func (m BattleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.animate()
		return m, tickCmd(hpTickRate)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m BattleModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.message != "" {
		if key.Matches(msg, m.keys.Confirm) {
			m.acknowledge()
		}
		return m, nil
	}

	if m.finished {
		return m.handleFinishedKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.optionCount()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Confirm):
		m.choose()
	case key.Matches(msg, m.keys.Back):
		m.back()
	}
	return m, nil
}

func (m BattleModel) handleFinishedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NewEncounter) && m.encounters != nil:
		next, err := m.encounters.NextEncounter(encounterSteps)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.begin(next)
	case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Back):
		if m.encounters == nil {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// acknowledge dismisses the current message and plays on.
func (m *BattleModel) acknowledge() {
	m.history = append(m.history, m.message)
	if len(m.history) > historyLines {
		m.history = m.history[len(m.history)-historyLines:]
	}
	m.mgr.Ack()
	m.advance()
}

// advance applies queued events up to the next message, which stays on
// screen until acknowledged. With the queue empty the menu follows the
// battle state.
func (m *BattleModel) advance() {
	m.message = ""
	for {
		e, ok := m.mgr.Next()
		if !ok {
			break
		}
		if text, isMsg := e.(battle.MessageEvent); isMsg {
			m.message = text.Text
			return
		}
		m.apply(e)
		m.mgr.Ack()
	}
	m.syncMenu()
}

func (m *BattleModel) apply(e battle.Event) {
	switch e := e.(type) {
	case battle.DamageEvent:
		m.targetHP[e.Side] = e.HP
	case battle.SwitchEvent:
		hp := m.active(e.Side).HP()
		m.shownHP[e.Side], m.targetHP[e.Side] = hp, hp
	case battle.BattleEndEvent:
		m.finished = true
		m.menu = menuNone
		if m.encounters != nil {
			m.encounters.Finish(m.mgr)
		}
	}
}

func (m *BattleModel) syncMenu() {
	switch m.mgr.State() {
	case battle.StateSelectAction:
		if m.menu != menuAction && m.menu != menuSwitch {
			m.menu, m.cursor = menuAction, 0
		}
	case battle.StateSelectMove:
		if m.menu != menuMove {
			m.menu, m.cursor = menuMove, 0
		}
	default:
		m.menu = menuNone
	}
}

func (m *BattleModel) choose() {
	m.hint = ""
	switch m.menu {
	case menuAction:
		switch m.cursor {
		case 0:
			m.mgr.EnterMoveSelect()
			m.advance()
		case 1:
			if len(m.mgr.SwitchTargets()) == 0 {
				m.hint = "There is no one else to send out!"
				return
			}
			m.menu, m.cursor = menuSwitch, 0
		case 2:
			m.submit(battle.UseItem(itemName))
		case 3:
			m.submit(battle.Run())
		}

	case menuMove:
		slots := m.mgr.ActivePlayer().Moves()
		if m.cursor >= len(slots) {
			return
		}
		if slots[m.cursor].PP <= 0 {
			m.hint = "There's no PP left for this move!"
			return
		}
		m.submit(battle.Fight(m.cursor))

	case menuSwitch:
		targets := m.mgr.SwitchTargets()
		if m.cursor >= len(targets) {
			return
		}
		m.menu = menuNone
		m.submit(battle.SwitchTo(targets[m.cursor]))
	}
}

func (m *BattleModel) submit(a battle.Action) {
	if m.mgr.SelectPlayerAction(a) {
		m.menu = menuNone
	}
	m.advance()
}

func (m *BattleModel) back() {
	m.hint = ""
	switch m.menu {
	case menuMove:
		m.mgr.EnterActionSelect()
		m.advance()
	case menuSwitch:
		m.menu, m.cursor = menuAction, 1
	}
}

func (m BattleModel) optionCount() int {
	switch m.menu {
	case menuAction:
		return len(actionLabels)
	case menuMove:
		return len(m.mgr.ActivePlayer().Moves())
	case menuSwitch:
		return len(m.mgr.SwitchTargets())
	}
	return 0
}

// animate moves each shown HP value one frame toward its target.
func (m *BattleModel) animate() {
	for _, side := range []battle.Side{battle.SidePlayer, battle.SideEnemy} {
		step := max(1, m.active(side).MaxHP()/hpBarWidth)
		diff := m.targetHP[side] - m.shownHP[side]
		switch {
		case diff > 0:
			m.shownHP[side] += min(diff, step)
		case diff < 0:
			m.shownHP[side] -= min(-diff, step)
		}
	}
}

func (m BattleModel) active(side battle.Side) *monster.Monster {
	if side == battle.SidePlayer {
		return m.mgr.ActivePlayer()
	}
	return m.mgr.ActiveEnemy()
}

// Manager returns the battle currently on screen.
func (m BattleModel) Manager() *battle.Manager { return m.mgr }

// Message returns the message waiting for acknowledgement, if any.
func (m BattleModel) Message() string { return m.message }

// IsQuitting returns true if user requested to quit.
func (m BattleModel) IsQuitting() bool { return m.quitting }

// View renders the battle screen.
func (m BattleModel) View() string {
	if m.quitting {
		return ""
	}
	width := max(m.config.ScreenW, 40)

	var b strings.Builder
	title := fmt.Sprintf("%s battle · turn %d", m.mgr.Kind(), m.mgr.Turn())
	b.WriteString(dimStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(MonsterCard(m.mgr.ActiveEnemy(), m.shownHP[battle.SideEnemy], hpBarWidth))
	b.WriteString("\n\n")
	player := MonsterCard(m.mgr.ActivePlayer(), m.shownHP[battle.SidePlayer], hpBarWidth)
	b.WriteString(lipgloss.PlaceHorizontal(width-2, lipgloss.Right, player))
	b.WriteString("\n\n")

	for _, line := range m.history {
		b.WriteString(dimStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString(boxStyle.Width(width - 4).Render(m.renderPanel()))
	b.WriteString("\n")

	if m.hint != "" {
		b.WriteString(hpLowStyle.Render(m.hint))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(hpLowStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderPanel renders the current message, menu or result.
func (m BattleModel) renderPanel() string {
	if m.message != "" {
		return m.message + dimStyle.Render("  ▼")
	}
	if m.finished {
		result := m.mgr.Result().String()
		style, ok := resultStyles[result]
		if !ok {
			style = nameStyle
		}
		text := style.Render(strings.ToUpper(result))
		if m.encounters != nil {
			return text + dimStyle.Render("  press r for a new encounter")
		}
		return text + dimStyle.Render("  press enter to leave")
	}

	var options []string
	switch m.menu {
	case menuAction:
		options = actionLabels[:]
	case menuMove:
		mon := m.mgr.ActivePlayer()
		for i, slot := range mon.Moves() {
			mv, ok := mon.Move(i)
			if !ok {
				continue
			}
			options = append(options, fmt.Sprintf("%-14s %s PP %d/%d", mv.Name, TypeBadge(mv.Type), slot.PP, mv.PP))
		}
	case menuSwitch:
		team := m.mgr.PlayerTeam()
		for _, i := range m.mgr.SwitchTargets() {
			mon := team[i]
			options = append(options, fmt.Sprintf("%-12s Lv%-3d HP %d/%d", mon.Name(), mon.Level(), mon.HP(), mon.MaxHP()))
		}
	}
	return renderOptions(options, m.cursor)
}

func renderOptions(options []string, cursor int) string {
	lines := make([]string, len(options))
	for i, opt := range options {
		if i == cursor {
			lines[i] = cursorStyle.Render("> ") + opt
		} else {
			lines[i] = "  " + opt
		}
	}
	return strings.Join(lines, "\n")
}

// RunBattle runs the battle screen until the player quits.
func RunBattle(mgr *battle.Manager, encounters Encounters, cfg core.RuntimeConfig) error {
	model := NewBattleModel(mgr, encounters, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
