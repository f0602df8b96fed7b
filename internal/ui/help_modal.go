package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// commandHelp documents command mode. Kept in registry order.
var commandHelp = [][2]string{
	{":page <name|1-8>", "Go to a page"},
	{":blog [category]", "Blog, optionally filtered"},
	{":search <term>", "Search posts"},
	{":theme [name]", "Switch or cycle theme"},
	{":open", "Open selection in browser"},
	{":yank [link|email|phone]", "Copy to clipboard"},
	{":book [tier]", "Request a discovery call"},
	{":calendar", "Open the booking calendar"},
	{":help", "Show this help"},
	{":quit", "Exit"},
}

// HelpModal represents the help/keyboard shortcuts modal
type HelpModal struct {
	Modal
	help help.Model
	keys keyMap
}

// NewHelpModal creates a new HelpModal instance
func NewHelpModal(keys keyMap) HelpModal {
	h := help.New()
	h.ShowAll = true
	return HelpModal{
		Modal: NewModal("KEYBOARD SHORTCUTS", 80, 30),
		help:  h,
		keys:  keys,
	}
}

// SetSize updates the modal size based on terminal dimensions
func (m *HelpModal) SetSize(width, height int) {
	m.Modal.SetSize(width, height)
	m.help.Width = m.width - 4
}

// Update handles input for the help modal
func (m HelpModal) Update(msg tea.Msg) (HelpModal, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "?":
			m.Hide()
		}
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	}
	return m, nil
}

// View renders the help modal
func (m HelpModal) View(theme StyleTheme) string {
	base := m.Modal
	base.SetContent(m.body(theme))
	return base.View(theme)
}

// ViewWithOverlay renders the modal over a dimmed background
func (m HelpModal) ViewWithOverlay(backgroundView string, width, height int, theme StyleTheme) string {
	base := m.Modal
	base.SetContent(m.body(theme))
	return base.ViewWithOverlay(backgroundView, width, height, theme)
}

func (m HelpModal) body(theme StyleTheme) string {
	h := m.help
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(theme.Text)
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(theme.Muted)

	sectionStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	sectionHeader := func(title string) string {
		text := "── " + title + " "
		return sectionStyle.Render(text + strings.Repeat("─", max(m.width-8-lipgloss.Width(text), 0)))
	}

	keyStyle := lipgloss.NewStyle().Foreground(theme.Blush).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.Text)

	var content strings.Builder
	content.WriteString(sectionHeader("KEYS"))
	content.WriteString("\n")
	content.WriteString(h.View(m.keys))
	content.WriteString("\n")
	content.WriteString(theme.MutedStyle().Render("1-8 jump to a page"))
	content.WriteString("\n\n")

	content.WriteString(sectionHeader("COMMAND MODE (:)"))
	content.WriteString("\n")
	for _, c := range commandHelp {
		pad := strings.Repeat(" ", max(28-lipgloss.Width(c[0]), 1))
		content.WriteString("  " + keyStyle.Render(c[0]) + pad + descStyle.Render(c[1]) + "\n")
	}
	content.WriteString("\n")
	content.WriteString(theme.MutedStyle().Italic(true).Render("Press ESC or ? to close"))
	return content.String()
}
