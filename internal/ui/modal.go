package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Modal represents a generic modal overlay component
type Modal struct {
	title   string
	width   int
	height  int
	content string
	visible bool
}

// NewModal creates a new Modal instance
func NewModal(title string, width, height int) Modal {
	return Modal{
		title:  title,
		width:  width,
		height: height,
	}
}

// Show makes the modal visible
func (m *Modal) Show() {
	m.visible = true
}

// Hide makes the modal invisible
func (m *Modal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is currently visible
func (m Modal) IsVisible() bool {
	return m.visible
}

// SetContent updates the modal content
func (m *Modal) SetContent(content string) {
	m.content = content
}

// SetSize sizes the modal for a terminal of width x height.
func (m *Modal) SetSize(width, height int) {
	m.width = min(max(int(float64(width)*0.75), 50), max(width-4, 10))
	m.height = max(height-8, 10)
}

// View renders the modal if visible
func (m Modal) View(theme StyleTheme) string {
	if !m.visible {
		return ""
	}

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Width(m.width).
		MaxHeight(m.height+2).
		Padding(1, 2)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Accent).
		MarginBottom(1)

	var fullContent strings.Builder
	if m.title != "" {
		fullContent.WriteString(titleStyle.Render(m.title))
		fullContent.WriteString("\n")
	}
	fullContent.WriteString(m.content)

	return modalStyle.Render(fullContent.String())
}

// ViewWithOverlay renders the modal centered over the background. Only the
// background's header line stays visible.
func (m Modal) ViewWithOverlay(backgroundView string, termWidth, termHeight int, theme StyleTheme) string {
	if !m.visible {
		return backgroundView
	}

	bgLines := strings.Split(backgroundView, "\n")
	for i := range bgLines {
		if i == 0 {
			continue
		}
		bgLines[i] = strings.Repeat(" ", termWidth)
	}

	modalView := m.View(theme)
	modalLines := strings.Split(modalView, "\n")
	modalWidth := lipgloss.Width(modalView)

	startY := max(1, (termHeight-len(modalLines))/2)
	startX := max(0, (termWidth-modalWidth)/2)

	result := make([]string, max(len(bgLines), startY+len(modalLines)))
	copy(result, bgLines)

	padding := strings.Repeat(" ", startX)
	for i, line := range modalLines {
		result[startY+i] = padding + line
	}

	return strings.Join(result, "\n")
}
