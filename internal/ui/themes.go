package ui

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// StyleTheme defines the brand palette for the TUI
type StyleTheme struct {
	Name    string
	Primary lipgloss.Color // Headings, header gradient start (deep green)
	Accent  lipgloss.Color // Call-to-action, selection (soft pink)
	Ink     lipgloss.Color // Borders and bars (charcoal)
	Muted   lipgloss.Color // Secondary text
	Text    lipgloss.Color // Main text (cream)
	Blush   lipgloss.Color // Tags, quotes, header gradient end
	Success lipgloss.Color
	Error   lipgloss.Color
}

// AlignedTheme is the brand palette.
var AlignedTheme = StyleTheme{
	Name:    "aligned",
	Primary: lipgloss.Color("#1C3A35"),
	Accent:  lipgloss.Color("#E3A5A5"),
	Ink:     lipgloss.Color("#1A1A1A"),
	Muted:   lipgloss.Color("#5A5A5A"),
	Text:    lipgloss.Color("#FFFDFB"),
	Blush:   lipgloss.Color("#F5E6E6"),
	Success: lipgloss.Color("#7FB69E"),
	Error:   lipgloss.Color("#E06C75"),
}

// MidnightTheme keeps the brand accents but lifts the green for dark
// terminals where #1C3A35 barely shows.
var MidnightTheme = StyleTheme{
	Name:    "midnight",
	Primary: lipgloss.Color("#4FA38F"),
	Accent:  lipgloss.Color("#F2B8B8"),
	Ink:     lipgloss.Color("#2B2B33"),
	Muted:   lipgloss.Color("#8A8A99"),
	Text:    lipgloss.Color("#ECECF1"),
	Blush:   lipgloss.Color("#D9C3E8"),
	Success: lipgloss.Color("#8BD5A8"),
	Error:   lipgloss.Color("#FF7A90"),
}

// MonoTheme is grayscale.
var MonoTheme = StyleTheme{
	Name:    "mono",
	Primary: lipgloss.Color("#FFFFFF"),
	Accent:  lipgloss.Color("#C0C0C0"),
	Ink:     lipgloss.Color("#303030"),
	Muted:   lipgloss.Color("#808080"),
	Text:    lipgloss.Color("#E8E8E8"),
	Blush:   lipgloss.Color("#A8A8A8"),
	Success: lipgloss.Color("#D0D0D0"),
	Error:   lipgloss.Color("#FFFFFF"),
}

// AvailableThemes is a list of all available themes for cycling
var AvailableThemes = []StyleTheme{
	AlignedTheme,
	MidnightTheme,
	MonoTheme,
}

// ThemeByName returns the named theme.
func ThemeByName(name string) (StyleTheme, bool) {
	for _, t := range AvailableThemes {
		if t.Name == strings.ToLower(name) {
			return t, true
		}
	}
	return AlignedTheme, false
}

// NextTheme returns the theme after current in AvailableThemes.
func NextTheme(current StyleTheme) StyleTheme {
	for i, t := range AvailableThemes {
		if t.Name == current.Name {
			return AvailableThemes[(i+1)%len(AvailableThemes)]
		}
	}
	return AvailableThemes[0]
}

// ApplyColorProfile sets the Lip Gloss color profile. NO_COLOR wins over
// whatever the terminal reports.
func ApplyColorProfile() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())
}

func (t StyleTheme) BorderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Muted)
}

func (t StyleTheme) HeadingStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)
}

func (t StyleTheme) EyebrowStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Blush).
		Italic(true)
}

func (t StyleTheme) TagStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Ink).
		Background(t.Blush).
		Padding(0, 1)
}

func (t StyleTheme) ButtonStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Ink).
		Background(t.Accent).
		Bold(true).
		Padding(0, 2)
}

func (t StyleTheme) SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Success)
}

func (t StyleTheme) TextStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Text)
}

func (t StyleTheme) MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Muted)
}

func (t StyleTheme) ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)
}

// HiddenStyle draws a section that has not been revealed yet.
func (t StyleTheme) HiddenStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Ink).
		Faint(true)
}

func (t StyleTheme) SelectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)
}

func (t StyleTheme) CardStyle(selected bool) lipgloss.Style {
	border := t.Muted
	if selected {
		border = t.Accent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}

// ToGlamourStyle converts our theme to a glamour style config for markdown rendering
func (t StyleTheme) ToGlamourStyle() ansi.StyleConfig {
	style := styles.DarkStyleConfig

	// No document margin; the viewport already pads.
	style.Document.Margin = uintPtr(0)
	style.Document.StylePrimitive.Color = stringPtr(string(t.Text))

	style.Heading.StylePrimitive.Color = stringPtr(string(t.Accent))
	style.Heading.StylePrimitive.Bold = boolPtr(true)

	style.H1.StylePrimitive.Color = stringPtr(string(t.Accent))
	style.H1.StylePrimitive.BackgroundColor = nil
	style.H1.StylePrimitive.Bold = boolPtr(true)
	style.H1.Prefix = ""
	style.H1.Suffix = ""
	style.H1.Format = ""

	for _, h := range []*ansi.StyleBlock{&style.H2, &style.H3, &style.H4, &style.H5, &style.H6} {
		h.Prefix = "✦ "
		h.Suffix = ""
		h.Format = ""
	}
	style.H2.StylePrimitive.Color = stringPtr(string(t.Accent))

	style.Link.Color = stringPtr(string(t.Blush))
	style.LinkText.Color = stringPtr(string(t.Blush))
	style.Emph.Color = stringPtr(string(t.Blush))
	style.Strong.Color = stringPtr(string(t.Accent))

	style.Item.BlockPrefix = "• "
	style.Item.Color = stringPtr(string(t.Text))

	style.BlockQuote.StylePrimitive.Color = stringPtr(string(t.Blush))
	style.BlockQuote.StylePrimitive.Italic = boolPtr(true)
	style.BlockQuote.Indent = uintPtr(1)
	style.BlockQuote.IndentToken = stringPtr("│ ")

	return style
}

// HuhTheme styles the booking form.
func (t StyleTheme) HuhTheme() *huh.Theme {
	th := huh.ThemeBase()
	th.Focused.Base = th.Focused.Base.BorderForeground(t.Accent)
	th.Focused.Title = th.Focused.Title.Foreground(t.Accent).Bold(true)
	th.Focused.Description = th.Focused.Description.Foreground(t.Muted)
	th.Focused.SelectSelector = th.Focused.SelectSelector.Foreground(t.Accent)
	th.Focused.SelectedOption = th.Focused.SelectedOption.Foreground(t.Blush)
	th.Focused.ErrorIndicator = th.Focused.ErrorIndicator.Foreground(t.Error)
	th.Focused.ErrorMessage = th.Focused.ErrorMessage.Foreground(t.Error)
	th.Focused.FocusedButton = th.Focused.FocusedButton.Foreground(t.Ink).Background(t.Accent)
	th.Blurred.Title = th.Blurred.Title.Foreground(t.Muted)
	return th
}

// Helper functions for creating pointers
func stringPtr(s string) *string { return &s }
func uintPtr(u uint) *uint       { return &u }
func boolPtr(b bool) *bool       { return &b }

// RenderWithGradientBackground renders text with a gradient background
func RenderWithGradientBackground(text string, width int, startColor, endColor string) string {
	if width <= 0 {
		return ""
	}

	// Pad or cut to exactly width runes
	runes := []rune(text)
	if len(runes) < width {
		runes = append(runes, []rune(strings.Repeat(" ", width-len(runes)))...)
	} else {
		runes = runes[:width]
	}

	var result strings.Builder
	for i, r := range runes {
		position := float64(i) / float64(max(width-1, 1))
		bgColor := InterpolateColor(startColor, endColor, position)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(bgColor)).
			Foreground(lipgloss.Color("#FFFDFB")).
			Bold(true)

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}

// InterpolateColor interpolates between two hex colors at the given position
func InterpolateColor(startColor, endColor string, position float64) string {
	startR, startG, startB, err := parseHexColor(startColor)
	if err != nil {
		return startColor
	}

	endR, endG, endB, err := parseHexColor(endColor)
	if err != nil {
		return startColor
	}

	if position < 0 {
		position = 0
	}
	if position > 1 {
		position = 1
	}

	r := int(float64(startR) + (float64(endR-startR) * position))
	g := int(float64(startG) + (float64(endG-startG) * position))
	b := int(float64(startB) + (float64(endB-startB) * position))

	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// parseHexColor parses a hex color string into RGB values
func parseHexColor(hexColor string) (int, int, int, error) {
	hexColor = strings.TrimPrefix(hexColor, "#")

	if len(hexColor) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid hex color format")
	}

	r, err := strconv.ParseInt(hexColor[0:2], 16, 0)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid red component: %w", err)
	}

	g, err := strconv.ParseInt(hexColor[2:4], 16, 0)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid green component: %w", err)
	}

	b, err := strconv.ParseInt(hexColor[4:6], 16, 0)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid blue component: %w", err)
	}

	return int(r), int(g), int(b), nil
}

// RenderGradientText renders text with a gradient from startColor to endColor
func RenderGradientText(text string, startColor, endColor string) string {
	if text == "" {
		return ""
	}

	runes := []rune(text)
	if len(runes) == 1 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(startColor)).Render(text)
	}

	var result strings.Builder
	for i, r := range runes {
		position := float64(i) / float64(len(runes)-1)
		color := InterpolateColor(startColor, endColor, position)
		result.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(r)))
	}

	return result.String()
}
