package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var helpSectionTitles = []string{"Navigation", "Filters", "View", "General"}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder

	// Title
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 34)))
	b.WriteString("\n\n")

	sections := helpSections(m.keys)
	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")

		for _, item := range section.items {
			keyStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.theme.Warning)).
				Width(12)
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(styles.Text.Render(item.desc))
			b.WriteString("\n")
		}

		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Filter syntax: text, /regex/,"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("dyno:web.1, source:app, level:error"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(42)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

// helpSections builds the overlay from the key map so the two never drift.
func helpSections(k keyMap) []helpSection {
	groups := k.FullHelp()
	sections := make([]helpSection, 0, len(groups))
	for i, group := range groups {
		section := helpSection{title: helpSectionTitles[i%len(helpSectionTitles)]}
		for _, b := range group {
			section.items = append(section.items, helpItemFor(b))
		}
		sections = append(sections, section)
	}
	return sections
}

func helpItemFor(b key.Binding) helpItem {
	h := b.Help()
	return helpItem{key: h.Key, desc: h.Desc}
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}
