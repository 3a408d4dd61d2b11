package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-monsters/internal/dex"
	"github.com/vovakirdan/tui-monsters/internal/monster"
)

// typeStyles maps element types to badge styles.
var typeStyles = map[dex.ElementType]lipgloss.Style{
	dex.TypeNormal:   badge("250"),
	dex.TypeFire:     badge("208"),
	dex.TypeWater:    badge("33"),
	dex.TypeGrass:    badge("34"),
	dex.TypeElectric: badge("220"),
	dex.TypeIce:      badge("87"),
	dex.TypeFighting: badge("160"),
	dex.TypePoison:   badge("129"),
	dex.TypeGround:   badge("136"),
	dex.TypeFlying:   badge("111"),
	dex.TypePsychic:  badge("205"),
	dex.TypeBug:      badge("106"),
	dex.TypeRock:     badge("137"),
	dex.TypeGhost:    badge("61"),
	dex.TypeDragon:   badge("63"),
	dex.TypeDark:     badge("240"),
	dex.TypeSteel:    badge("247"),
	dex.TypeFairy:    badge("218"),
}

func badge(bg string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color(bg)).
		Padding(0, 1)
}

var (
	nameStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	shinyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("167")).Padding(0, 1)
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	hpHighStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	hpMidStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	hpLowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// resultStyles color the end-of-battle banner by result name.
var resultStyles = map[string]lipgloss.Style{
	"victory": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
	"defeat":  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	"escape":  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
}

// statusTags are the short badges shown next to a monster's name.
var statusTags = map[dex.StatusEffect]string{
	dex.StatusBurn:      "BRN",
	dex.StatusFreeze:    "FRZ",
	dex.StatusParalysis: "PAR",
	dex.StatusPoison:    "PSN",
	dex.StatusSleep:     "SLP",
	dex.StatusConfusion: "CNF",
}

// TypeBadge renders an element type as a colored tag.
func TypeBadge(t dex.ElementType) string {
	style, ok := typeStyles[t]
	if !ok {
		style = badge("250")
	}
	return style.Render(strings.ToUpper(t.String()))
}

// StatusBadge renders a status condition, or "" for none.
func StatusBadge(s dex.StatusEffect) string {
	tag, ok := statusTags[s]
	if !ok {
		return ""
	}
	return statusStyle.Render(tag)
}

// HPBar renders a bar of the given width for hp out of maxHP. Filled cells
// round up so a monster with any HP left always shows at least one.
func HPBar(hp, maxHP, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if maxHP > 0 && hp > 0 {
		filled = min(width, (hp*width+maxHP-1)/maxHP)
	}

	style := hpHighStyle
	switch {
	case maxHP > 0 && hp*5 <= maxHP:
		style = hpLowStyle
	case maxHP > 0 && hp*2 <= maxHP:
		style = hpMidStyle
	}
	return style.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled))
}

// MonsterCard renders a name line and an HP line for one combatant. shownHP
// is the animated HP value.
func MonsterCard(m *monster.Monster, shownHP, barWidth int) string {
	var b strings.Builder

	name := nameStyle.Render(m.Name())
	if m.Shiny() {
		name += shinyStyle.Render(" ✦")
	}
	b.WriteString(fmt.Sprintf("%s %s", name, dimStyle.Render(fmt.Sprintf("Lv%d", m.Level()))))
	for _, t := range m.Types() {
		b.WriteString(" " + TypeBadge(t))
	}
	if s := StatusBadge(m.Status()); s != "" {
		b.WriteString(" " + s)
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("HP %s %3d/%d", HPBar(shownHP, m.MaxHP(), barWidth), shownHP, m.MaxHP()))
	return b.String()
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}
