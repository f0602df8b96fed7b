package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/alignedempire/aligned/internal/content"
)

// coachingSections builds the 1:1 coaching page: pillars, then the tier
// comparison table.
func (m Model) coachingSections() []section {
	c := m.catalog
	w := m.contentWidth()
	t := m.theme

	secs := []section{{key: "hero", hero: true, body: m.heroBlock(
		"1:1 Coaching",
		"Exclusive Coaching for Aligned Leaders",
		"A high-touch partnership for founders ready to align identity, purpose and strategy.",
		"Apply for Coaching", w)}}

	for i, p := range c.Coaching.Pillars {
		secs = append(secs, section{key: fmt.Sprintf("pillar-%d", i), index: i, body: pillarCard(t, p, w)})
	}

	if len(c.Coaching.Tiers) > 0 {
		body := sectionHeading(t, "Investment", "Choose Your Level of Partnership", w) + "\n\n" +
			tierTable(t, c.Coaching, w)
		secs = append(secs, section{key: "tiers", body: body})
	}

	secs = append(secs, section{key: "cta", threshold: ctaThreshold, body: m.ctaBlock("Not sure which tier fits?", "Press b to request a call, or :book <tier>", w)})
	return secs
}

// tierTable renders the feature comparison with one column per tier.
func tierTable(t StyleTheme, co content.Coaching, width int) string {
	headers := make([]string, 0, len(co.Tiers)+1)
	headers = append(headers, "Feature")
	for _, tier := range co.Tiers {
		headers = append(headers, tier.Name)
	}

	rows := make([][]string, 0, len(co.Features)+1)
	for _, f := range co.Features {
		row := make([]string, 0, len(f.Values)+1)
		row = append(row, f.Label)
		for _, v := range f.Values {
			row = append(row, content.FeatureMark(v))
		}
		rows = append(rows, row)
	}
	invest := []string{"Investment"}
	for _, tier := range co.Tiers {
		invest = append(invest, tier.Investment)
	}
	rows = append(rows, invest)
	last := len(rows) - 1

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Foreground(t.Text).Padding(0, 1)
	labelStyle := cellStyle.Foreground(t.Blush)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(t.Muted)).
		Headers(headers...).
		Rows(rows...).
		Width(width).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == last:
				return headerStyle
			case col == 0:
				return labelStyle
			}
			return cellStyle.Align(lipgloss.Center)
		}).
		String()
}

// courseSections builds the self-study course list. The selected course is
// highlighted and opened with o.
func (m Model) courseSections() []section {
	c := m.catalog
	w := m.contentWidth()
	t := m.theme

	secs := []section{{key: "hero", hero: true, body: m.heroBlock(
		"Self-paced programs",
		"Courses to Align Your Business",
		"Step-by-step programs built on the same frameworks used with 1:1 clients.",
		"", w)}}

	for i, co := range c.Courses {
		secs = append(secs, section{
			key:   fmt.Sprintf("course-%d", co.ID),
			index: i,
			body:  courseCard(t, co, w, i == m.courseCursor),
		})
	}
	return secs
}

func courseCard(t StyleTheme, co content.Course, width int, selected bool) string {
	inner := cardInner(width)
	title := t.HeadingStyle().Render(truncate(co.Title, inner-12))
	price := t.SelectedStyle().Render(co.Price)
	gap := max(inner-lipgloss.Width(title)-lipgloss.Width(price), 1)

	var b strings.Builder
	b.WriteString(title + strings.Repeat(" ", gap) + price + "\n")
	b.WriteString(t.TextStyle().Render(wrapText(co.Tagline, inner)) + "\n\n")
	b.WriteString(t.TagStyle().Render(fmt.Sprintf("%d modules", co.Modules)) + " " + t.TagStyle().Render(co.Duration))
	if selected {
		b.WriteString("  " + t.MutedStyle().Render("o: enroll"))
	}
	return card(t, b.String(), width, selected)
}

// testimonialSections lists every client story.
func (m Model) testimonialSections() []section {
	c := m.catalog
	w := m.contentWidth()

	secs := []section{{key: "hero", hero: true, body: m.heroBlock(
		"Client stories",
		"Real Results from Aligned Leaders",
		fmt.Sprintf("%d founders who turned alignment into growth.", len(c.Testimonials)),
		"", w)}}

	for i, tm := range c.Testimonials {
		secs = append(secs, section{
			key:   fmt.Sprintf("testimonial-%d", i),
			index: i % 3,
			body:  testimonialCard(m.theme, tm, w, false),
		})
	}
	return secs
}
