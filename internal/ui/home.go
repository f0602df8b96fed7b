package ui

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/alignedempire/aligned/internal/content"
)

// homeSections builds the landing page.
func (m Model) homeSections() []section {
	c := m.catalog
	w := m.contentWidth()
	t := m.theme

	secs := []section{{key: "hero", hero: true, body: m.heroBlock(c.Hero.Eyebrow, c.Hero.Headline, c.Hero.Body, c.Hero.CTA, w)}}

	intro := sectionHeading(t, "Meet "+c.Founder, c.About.Headline, w) + "\n\n" +
		t.TextStyle().Render(wrapText(c.About.Intro, w)) + "\n\n" +
		t.MutedStyle().Render("Read the full story on the About page (2).")
	secs = append(secs, section{key: "intro", body: intro})

	secs = append(secs, section{key: "pillars-heading", body: sectionHeading(t, "How we work", "The Pillars of Alignment", w)})
	for i, p := range c.Coaching.Pillars {
		secs = append(secs, section{
			key:   fmt.Sprintf("pillar-%d", i),
			index: i,
			body:  pillarCard(t, p, w),
		})
	}

	if len(c.Testimonials) > 0 {
		secs = append(secs, section{key: "testimonial", body: testimonialCard(t, c.Testimonials[0], w, false)})
	}

	secs = append(secs, section{key: "cta", threshold: ctaThreshold, body: m.ctaBlock("Ready to build an empire that feels like your own?", "Book a discovery call (b on the Book page)", w)})
	return secs
}

// aboutSections builds the founder story page.
func (m Model) aboutSections() []section {
	c := m.catalog
	w := m.contentWidth()
	t := m.theme

	secs := []section{{key: "hero", hero: true, body: m.heroBlock("About "+c.Founder, c.About.Headline, c.About.Intro, "", w)}}

	story, err := m.markdown.render(c.About.Story, w, t)
	if err != nil {
		m.logger.Warn("markdown render failed", zap.String("doc", "about"), zap.Error(err))
	}
	secs = append(secs, section{key: "story", body: story})

	secs = append(secs, section{key: "values-heading", body: sectionHeading(t, "What I stand for", "Core Values", w)})
	for i, v := range c.About.Values {
		secs = append(secs, section{
			key:   fmt.Sprintf("value-%d", i),
			index: i,
			body:  pillarCard(t, v, w),
		})
	}

	secs = append(secs, section{key: "cta", threshold: ctaThreshold, body: m.ctaBlock("Your aligned empire starts with one conversation.", "Explore 1:1 coaching (4)", w)})
	return secs
}

// heroBlock is the banner at the top of a page.
func (m Model) heroBlock(eyebrow, headline, body, cta string, width int) string {
	t := m.theme
	var b strings.Builder
	if eyebrow != "" {
		b.WriteString(centered(t.EyebrowStyle().Render(strings.ToUpper(eyebrow)), width))
		b.WriteString("\n\n")
	}
	for _, line := range strings.Split(wrapText(headline, max(width-8, 10)), "\n") {
		b.WriteString(centered(RenderGradientText(line, string(t.Accent), string(t.Blush)), width))
		b.WriteString("\n")
	}
	if body != "" {
		b.WriteString("\n")
		for _, line := range strings.Split(wrapText(body, max(width-12, 10)), "\n") {
			b.WriteString(centered(t.TextStyle().Render(line), width))
			b.WriteString("\n")
		}
	}
	if cta != "" {
		b.WriteString("\n")
		b.WriteString(centered(t.ButtonStyle().Render(cta), width))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// ctaBlock closes a page with a pitch and the key that acts on it.
func (m Model) ctaBlock(pitch, action string, width int) string {
	t := m.theme
	body := centered(t.HeadingStyle().Render(wrapText(pitch, cardInner(width))), cardInner(width)) + "\n" +
		centered(t.MutedStyle().Render(action), cardInner(width))
	return t.BorderStyle().BorderForeground(t.Accent).Width(max(width-2, 1)).Padding(0, 1).Render(body)
}

func pillarCard(t StyleTheme, p content.Pillar, width int) string {
	inner := cardInner(width)
	body := t.SelectedStyle().Render("✦ "+truncate(p.Title, inner-2)) + "\n" +
		t.TextStyle().Render(wrapText(p.Description, inner))
	return card(t, body, width, false)
}

func testimonialCard(t StyleTheme, tm content.Testimonial, width int, selected bool) string {
	inner := cardInner(width)
	quote := wrapTextWithPrefix("“"+tm.Quote+"”", inner, "", "")
	body := t.EyebrowStyle().Render(quote) + "\n\n" +
		t.HeadingStyle().Render(tm.Name) + t.MutedStyle().Render(" · "+tm.Title)
	if tm.Result != "" {
		body += "\n" + t.TagStyle().Render(tm.Result)
	}
	return card(t, body, width, selected)
}
