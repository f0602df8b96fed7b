package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// View renders the current page with the modal overlays.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	base := m.renderPage()
	if m.helpModal.IsVisible() {
		return m.helpModal.ViewWithOverlay(base, m.width, m.height, m.theme)
	}
	return base
}

func (m Model) renderPage() string {
	var body string
	if m.reader != nil {
		body = m.gutter().Render(m.renderReader())
	} else {
		body = m.viewport.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.renderTabs(),
		divider(m.theme, m.width),
		body,
		m.renderStatus(),
	)
}

// renderHeader draws the brand bar with a gradient background.
func (m Model) renderHeader() string {
	title := " " + strings.ToUpper(m.catalog.Brand)
	right := m.page.Title() + " "
	if m.reader != nil {
		right = "Reading ◆ " + right
	}
	if n := m.reveal.pending(m.page); n > 0 && m.reveal.observer != nil {
		right = fmt.Sprintf("%d more below ◆ %s", n, right)
	}

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	content := title + strings.Repeat(" ", gap) + right
	return RenderWithGradientBackground(content, m.width, string(m.theme.Primary), string(m.theme.Blush))
}

// renderTabs lists the pages with the current one highlighted.
func (m Model) renderTabs() string {
	active := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true).Underline(true)
	idle := m.theme.MutedStyle()

	tabs := make([]string, 0, len(pageOrder))
	for i, p := range pageOrder {
		label := fmt.Sprintf("%d %s", i+1, p.Title())
		if p == m.page {
			tabs = append(tabs, active.Render(label))
		} else {
			tabs = append(tabs, idle.Render(label))
		}
	}
	line := " " + strings.Join(tabs, idle.Render(" · "))
	return truncate(line, m.width)
}

// renderStatus shows command mode, a status message or key hints.
func (m Model) renderStatus() string {
	if m.commandMode.IsActive() {
		return m.commandMode.View()
	}

	statusStyle := lipgloss.NewStyle().
		Background(m.theme.Ink).
		Foreground(m.theme.Muted).
		Width(m.width).
		Padding(0, 1)

	if m.statusMessage != "" {
		style := m.theme.SuccessStyle().Bold(true)
		if m.statusIsError {
			style = m.theme.ErrorStyle()
		}
		return statusStyle.Render(truncate(style.Render(m.statusMessage), m.width-2))
	}

	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(m.theme.Blush)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(m.theme.Muted)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(m.theme.Muted)
	h.Width = m.width - 2

	bindings := m.keys.pageHelp(m.page)
	switch {
	case m.reader != nil:
		bindings = readerHelp(m.keys)
	case m.booking != nil:
		return statusStyle.Render("tab/enter: next field · shift+tab: back · esc: cancel")
	case m.contact.Active():
		return statusStyle.Render("tab: next field · ctrl+s: send · esc: done")
	case m.blog.searching:
		return statusStyle.Render("type to search · enter/esc: done")
	}
	return statusStyle.Render(h.ShortHelpView(bindings))
}

// gutter centers content of contentWidth in the terminal.
func (m Model) gutter() lipgloss.Style {
	return lipgloss.NewStyle().PaddingLeft(max((m.width-m.contentWidth())/2, 0))
}
