package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/alignedempire/aligned/internal/content"
	"github.com/alignedempire/aligned/internal/filter"
)

// blogState is the blog page's selection: category, search term and the
// highlighted card. Card 0 is the featured post.
type blogState struct {
	filter    *filter.State[content.Post]
	featured  *content.Post
	search    textinput.Model
	searching bool
	cursor    int
}

func newBlogState(c *content.Catalog) blogState {
	ti := textinput.New()
	ti.Placeholder = "Search articles..."
	ti.Prompt = "⌕ "
	ti.CharLimit = 64
	ti.Width = 30

	return blogState{
		filter:   filter.NewState(c.Posts),
		featured: c.FeaturedPost(),
		search:   ti,
	}
}

// grid is the filtered list without the featured post.
func (b blogState) grid() []content.Post {
	return content.GridPosts(b.filter.Result(), b.featured)
}

// cards lists the selectable posts in display order.
func (b blogState) cards() []content.Post {
	grid := b.grid()
	if b.featured == nil {
		return grid
	}
	out := make([]content.Post, 0, len(grid)+1)
	out = append(out, *b.featured)
	return append(out, grid...)
}

// selected returns the highlighted post.
func (b blogState) selected() (content.Post, bool) {
	cards := b.cards()
	if b.cursor < 0 || b.cursor >= len(cards) {
		return content.Post{}, false
	}
	return cards[b.cursor], true
}

// selectCategory switches the category. The search term is reset with it.
func (b *blogState) selectCategory(category string) {
	b.filter.SelectCategory(category)
	b.search.SetValue("")
	b.cursor = 0
}

// cycleCategory moves delta steps through content.Categories.
func (b *blogState) cycleCategory(delta int) {
	idx := 0
	for i, c := range content.Categories {
		if c == b.filter.Category() {
			idx = i
			break
		}
	}
	n := len(content.Categories)
	b.selectCategory(content.Categories[((idx+delta)%n+n)%n])
}

// setTerm replaces the search term and keeps the cursor in range.
func (b *blogState) setTerm(term string) {
	b.filter.SetTerm(term)
	if b.search.Value() != term {
		b.search.SetValue(term)
	}
	b.clampCursor()
}

func (b *blogState) move(delta int) {
	b.cursor += delta
	b.clampCursor()
}

func (b *blogState) clampCursor() {
	n := len(b.cards())
	if b.cursor >= n {
		b.cursor = n - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
}

// cardKey is the section key of the cursor's card.
func (b blogState) cardKey() string {
	if b.cursor == 0 && b.featured != nil {
		return "featured"
	}
	p, ok := b.selected()
	if !ok {
		return ""
	}
	return postKey(p)
}

func postKey(p content.Post) string {
	return fmt.Sprintf("post-%d", p.ID)
}

// blogSections builds the blog page: hero, featured post, filter bar,
// the grid or its empty state, and the newsletter pitch.
func (m Model) blogSections() []section {
	w := m.contentWidth()
	t := m.theme
	b := m.blog

	secs := []section{{key: "hero", hero: true, body: m.heroBlock(
		m.catalog.Brand,
		"Insights for the Soul-Led Strategist",
		"Practical wisdom on mindset, high-level strategy, and integrating your identity for effortless business growth.",
		"", w)}}

	if b.featured != nil {
		secs = append(secs, section{key: "featured", body: featuredCard(t, *b.featured, w, b.cursor == 0)})
	}

	secs = append(secs, section{key: "filters", body: m.filterBar(w)})

	grid := b.grid()
	if len(grid) == 0 {
		secs = append(secs, section{key: "empty", body: emptyState(t, b.filter.Category(), w)})
	}
	offset := 0
	if b.featured != nil {
		offset = 1
	}
	for i, p := range grid {
		secs = append(secs, section{
			key:   postKey(p),
			index: i % 3,
			body:  postCard(t, p, w, b.cursor == i+offset),
		})
	}

	secs = append(secs, section{key: "cta", threshold: ctaThreshold, body: m.ctaBlock(
		"Never Miss a Strategic Insight",
		"Soul-led business wisdom every week. Say hello on the Contact page (7).", w)})
	return secs
}

// filterBar renders the category tabs and the search box.
func (m Model) filterBar(width int) string {
	t := m.theme
	active := lipgloss.NewStyle().Foreground(t.Text).Background(t.Primary).Bold(true).Padding(0, 2)
	idle := lipgloss.NewStyle().Foreground(t.Muted).Padding(0, 2)

	tabs := make([]string, 0, len(content.Categories))
	for _, c := range content.Categories {
		if c == m.blog.filter.Category() {
			tabs = append(tabs, active.Render(c))
		} else {
			tabs = append(tabs, idle.Render(c))
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	searchStyle := t.BorderStyle()
	if m.blog.searching {
		searchStyle = searchStyle.BorderForeground(t.Accent)
	}
	search := searchStyle.Render(m.blog.search.View())

	if lipgloss.Width(row)+lipgloss.Width(search)+2 <= width {
		gap := width - lipgloss.Width(row) - lipgloss.Width(search)
		row = lipgloss.NewStyle().PaddingTop(1).Render(row)
		return lipgloss.JoinHorizontal(lipgloss.Top, row, strings.Repeat(" ", gap), search)
	}
	return row + "\n" + search
}

func featuredCard(t StyleTheme, p content.Post, width int, selected bool) string {
	inner := cardInner(width)
	var b strings.Builder
	b.WriteString(t.ButtonStyle().Render("FEATURED") + " " + t.TagStyle().Render(p.Category) + "\n\n")
	b.WriteString(t.HeadingStyle().Render(wrapText(p.Title, inner)) + "\n\n")
	b.WriteString(t.TextStyle().Render(wrapText(p.Summary, inner)) + "\n\n")
	b.WriteString(t.MutedStyle().Render(p.Date + " · " + p.ReadTime))
	if selected {
		b.WriteString("  " + t.SelectedStyle().Render("enter: read ▸"))
	}
	return card(t, b.String(), width, selected)
}

func postCard(t StyleTheme, p content.Post, width int, selected bool) string {
	inner := cardInner(width)
	selector := "  "
	if selected {
		selector = t.SelectedStyle().Render("▸ ")
	}
	var b strings.Builder
	b.WriteString(selector + t.TagStyle().Render(p.Category) + " " + t.MutedStyle().Render(p.Date+" · "+p.ReadTime) + "\n")
	b.WriteString(t.HeadingStyle().Render(truncate(p.Title, inner)) + "\n")
	b.WriteString(t.TextStyle().Render(wrapText(p.Summary, inner)))
	return card(t, b.String(), width, selected)
}

func emptyState(t StyleTheme, category string, width int) string {
	inner := cardInner(width)
	body := centered(t.HeadingStyle().Render(filter.EmptyMessage(category)), inner) + "\n" +
		centered(t.MutedStyle().Render("Try adjusting your filter or search terms."), inner)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Accent).
		Width(max(width-2, 1)).
		Padding(1, 1).
		Render(body)
}
