package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/herotail/internal/parser"
	"github.com/five82/herotail/internal/state"
)

const (
	defaultStatusHint = "Press '?' for help | 'q' to quit | '/' to search | 'p' to pause | j/k to scroll"
	noFiltersHint     = "No filters active. Press '/' to search, 'f' to toggle AND/OR, 'c' to clear"
)

// renderMain renders the full UI.
func (m Model) renderMain() string {
	contentHeight := max(m.height-chromeRows, boxBorderRows+1)
	snap := m.view.Snapshot(contentHeight - boxBorderRows)

	var b strings.Builder
	b.WriteString(m.renderHeader(snap))
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderFilterBar(snap))
	b.WriteString("\n")
	b.WriteString(m.renderContent(snap, contentHeight))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar(snap))
	return b.String()
}

// renderHeader renders the title, source and counters on one line.
func (m Model) renderHeader(snap state.Snapshot) string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var badge string
	switch {
	case snap.InputMode == state.InputSearch:
		badge = bg.Render(" SEARCH ", styles.AccentText.Bold(true))
	case snap.Paused:
		badge = bg.Render(" PAUSED ", styles.WarningText.Bold(true))
	default:
		badge = bg.Render(" LIVE ", styles.SuccessText)
	}

	parts := []string{bg.Render("herotail", styles.Logo)}
	if m.source != "" {
		parts = append(parts, bg.Render(m.source, styles.Text))
	}
	parts = append(parts,
		bg.Render(fmt.Sprintf("Logs: %d/%d", snap.Stats.Filtered, snap.Stats.Total), styles.MutedText),
		bg.Render(fmt.Sprintf("Filters: %d (%s)", snap.Stats.ActiveFilters, snap.FilterMode), styles.MutedText),
		bg.Render("View: "+snap.ViewMode.String(), styles.MutedText),
	)
	left := bg.Space() + bg.Join(parts, " • ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(badge)
	if gap < 1 {
		return bg.FillLine(left, m.width)
	}
	return left + bg.Spaces(gap) + badge
}

// renderCommandBar renders the short key help.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	h := m.help
	h.Styles.ShortKey = styles.AccentText
	h.Styles.ShortDesc = styles.MutedText
	h.Styles.ShortSeparator = styles.FaintText
	h.Styles.Ellipsis = styles.FaintText
	h.ShortSeparator = " • "
	h.Width = max(m.width-1, 0)

	return bg.FillLine(bg.Space()+h.ShortHelpView(m.keys.ShortHelp()), m.width)
}

// renderFilterBar shows the search prompt while typing, otherwise the
// active filters.
func (m Model) renderFilterBar(snap state.Snapshot) string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Background)

	if snap.InputMode == state.InputSearch {
		return bg.FillLine(bg.Render("Search: ", styles.WarningText.Bold(true))+m.search.View(), m.width)
	}
	if len(snap.Filters) == 0 {
		return bg.FillLine(bg.Render(truncate(noFiltersHint, m.width), styles.FaintText), m.width)
	}
	text := "Filters: " + strings.Join(snap.Filters, " | ")
	return bg.FillLine(bg.Render(truncate(text, m.width), styles.SuccessText), m.width)
}

// renderContent renders the main area for the current view mode.
func (m Model) renderContent(snap state.Snapshot, height int) string {
	switch snap.ViewMode {
	case state.ViewDetail:
		return m.renderBox("Detail", m.renderDetail(snap, m.width-2), m.width, height, true)
	case state.ViewSplit:
		listWidth := m.width * splitListPercent / 100
		detailWidth := m.width - listWidth
		list := m.renderBox(m.listTitle(snap), m.renderList(snap, listWidth-2), listWidth, height, false)
		detail := m.renderBox("Detail", m.renderDetail(snap, detailWidth-2), detailWidth, height, true)
		return lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
	default:
		return m.renderBox(m.listTitle(snap), m.renderList(snap, m.width-2), m.width, height, true)
	}
}

func (m Model) listTitle(snap state.Snapshot) string {
	if snap.ScrollOffset > 0 {
		return fmt.Sprintf("Logs (%d newer below)", snap.ScrollOffset)
	}
	return "Logs"
}

// renderList renders the visible window, newest at the bottom.
func (m Model) renderList(snap state.Snapshot, width int) string {
	styles := m.theme.Styles()

	if len(snap.Visible) == 0 {
		msg := "Waiting for logs..."
		if snap.Stats.Total > 0 {
			msg = "No logs match the active filters"
		}
		return styles.FaintText.Render(truncate(msg, width))
	}

	lines := make([]string, 0, len(snap.Visible))
	for i, rec := range snap.Visible {
		selected := snap.ViewMode != state.ViewList && snap.WindowStart+i == snap.SelectedIndex
		lines = append(lines, m.renderRecordRow(rec, width, selected, styles))
	}
	return strings.Join(lines, "\n")
}

// renderRecordRow renders one record as time, level badge, dyno and message.
func (m Model) renderRecordRow(rec parser.Record, width int, selected bool, styles Styles) string {
	compact := width < LayoutCompactWidth
	msgWidth := width - timeColumnWidth - levelColumnWidth - 2
	if !compact {
		msgWidth -= dynoColumnWidth + 1
	}
	msgWidth = max(msgWidth, 0)
	message := truncate(sanitize(rec.Message), msgWidth)

	if selected {
		cols := []string{rec.DisplayTime(), fit(rec.Level.String(), levelColumnWidth)}
		if !compact {
			cols = append(cols, fit(rec.Dyno, dynoColumnWidth))
		}
		cols = append(cols, message)
		return styles.Selected.Width(width).Render(fit(strings.Join(cols, " "), width))
	}

	cols := []string{
		styles.FaintText.Render(rec.DisplayTime()),
		styles.LevelBadge(rec.Level).Render(rec.Level.String()),
	}
	if !compact {
		cols = append(cols, styles.MutedText.Render(fit(rec.Dyno, dynoColumnWidth)))
	}
	cols = append(cols, styles.LevelStyle(rec.Level).Render(message))
	return strings.Join(cols, " ")
}

// renderDetail renders every field of the selected record.
func (m Model) renderDetail(snap state.Snapshot, width int) string {
	styles := m.theme.Styles()
	if snap.Selected == nil {
		return styles.FaintText.Render("No log selected")
	}
	rec := *snap.Selected

	label := func(name string) string {
		return styles.MutedText.Render(padRight(name+":", 11))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s\n", label("Timestamp"), styles.Text.Render(rec.Timestamp.Format(time.RFC3339Nano)))
	fmt.Fprintf(&b, "%s%s\n", label("Source"), styles.Text.Render(rec.Source))
	fmt.Fprintf(&b, "%s%s\n", label("Dyno"), styles.Text.Render(rec.Dyno))
	fmt.Fprintf(&b, "%s%s\n", label("Level"), styles.LevelStyle(rec.Level).Render(rec.Level.String()))
	fmt.Fprintf(&b, "%s%s\n", label("Entry"), styles.Text.Render(fmt.Sprintf("%d of %d", snap.SelectedIndex+1, snap.Stats.Filtered)))
	b.WriteString("\n")
	b.WriteString(styles.AccentText.Bold(true).Render("Message"))
	b.WriteString("\n")
	b.WriteString(styles.Text.Width(max(width, 1)).Render(sanitize(rec.Message)))
	return b.String()
}

// renderBox draws a rounded border with the title set into the top edge.
// Content is wrapped to the inner width and clipped to the inner height.
func (m Model) renderBox(title, content string, width, height int, focused bool) string {
	border := lipgloss.RoundedBorder()
	color := lipgloss.Color(m.theme.Border)
	if focused {
		color = lipgloss.Color(m.theme.BorderFocus)
	}
	edge := lipgloss.NewStyle().Foreground(color)
	styles := m.theme.Styles()

	innerWidth := max(width-2, 0)
	innerHeight := max(height-boxBorderRows, 0)

	label := truncate(" "+title+" ", max(innerWidth-1, 0))
	fill := max(innerWidth-1-lipgloss.Width(label), 0)
	top := edge.Render(border.TopLeft+border.Top) +
		styles.AccentText.Bold(focused).Render(label) +
		edge.Render(strings.Repeat(border.Top, fill)+border.TopRight)

	body := lipgloss.NewStyle().Width(innerWidth).Render(content)
	lines := strings.Split(body, "\n")
	if len(lines) > innerHeight {
		lines = lines[:innerHeight]
	}

	rest := lipgloss.NewStyle().
		Border(border, false, true, true, true).
		BorderForeground(color).
		Width(innerWidth).
		Height(innerHeight).
		Render(strings.Join(lines, "\n"))
	return top + "\n" + rest
}

// renderStatusBar renders the last status message or the key hint.
func (m Model) renderStatusBar(snap state.Snapshot) string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Background)

	if snap.Status == "" {
		return bg.FillLine(bg.Render(truncate(defaultStatusHint, m.width), styles.FaintText), m.width)
	}

	style := styles.MutedText
	lower := strings.ToLower(snap.Status)
	switch {
	case strings.Contains(lower, "failed"), strings.Contains(lower, "lost"):
		style = styles.DangerText
	case strings.HasPrefix(snap.Status, "Copied"), strings.HasPrefix(snap.Status, "Exported"), strings.HasPrefix(snap.Status, "Connected"):
		style = styles.SuccessText
	}
	return bg.FillLine(bg.Render(truncate(snap.Status, m.width), style), m.width)
}
