package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// wrapText wraps text to width cells. Runs of whitespace collapse to one
// space and words longer than width are broken.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	text = strings.Join(strings.Fields(text), " ")
	lines := strings.Split(xansi.Wrap(text, width, ""), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}

// wrapTextWithPrefix wraps text with different prefixes for first and continuation lines
func wrapTextWithPrefix(text string, width int, firstPrefix, contPrefix string) string {
	inner := width - max(xansi.StringWidth(firstPrefix), xansi.StringWidth(contPrefix))
	if inner <= 0 {
		return firstPrefix + text
	}
	lines := strings.Split(wrapText(text, inner), "\n")
	for i := range lines {
		if i == 0 {
			lines[i] = firstPrefix + lines[i]
		} else {
			lines[i] = contPrefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

// truncate shortens s to width cells, ANSI aware.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return xansi.Truncate(s, width, "…")
}

// sectionHeading renders an eyebrow line above a bold headline.
func sectionHeading(theme StyleTheme, eyebrow, title string, width int) string {
	var b strings.Builder
	if eyebrow != "" {
		b.WriteString(theme.EyebrowStyle().Render(strings.ToUpper(eyebrow)))
		b.WriteString("\n")
	}
	b.WriteString(theme.HeadingStyle().Render(wrapText(title, width)))
	return b.String()
}

// card frames body in a rounded border that fills width.
func card(theme StyleTheme, body string, width int, selected bool) string {
	// Border (2) and padding (2) sit inside the width.
	return theme.CardStyle(selected).Width(max(width-2, 1)).Render(body)
}

// cardInner is the text width available inside card.
func cardInner(width int) int {
	return max(width-4, 1)
}

// centered pads each line of s to center it in width.
func centered(s string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

// divider is a thin horizontal rule.
func divider(theme StyleTheme, width int) string {
	return theme.MutedStyle().Render(strings.Repeat("─", max(width, 0)))
}
