package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	xansi "github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"github.com/alignedempire/aligned/internal/content"
)

// markdownKey identifies one rendering of a document.
type markdownKey struct {
	theme string
	width int
	doc   string
}

// markdownCache keeps glamour output between frames. Building a renderer is
// far slower than a frame.
type markdownCache struct {
	entries map[markdownKey]string
}

func newMarkdownCache() *markdownCache {
	return &markdownCache{entries: make(map[markdownKey]string)}
}

// render returns doc rendered for theme at width. On a glamour failure the
// wrapped source is returned together with the error.
func (c *markdownCache) render(doc string, width int, theme StyleTheme) (string, error) {
	k := markdownKey{theme: theme.Name, width: width, doc: doc}
	if out, ok := c.entries[k]; ok {
		return out, nil
	}
	out, err := renderMarkdown(doc, width, theme)
	if err != nil {
		return wrapText(doc, width), err
	}
	c.entries[k] = out
	return out, nil
}

func renderMarkdown(doc string, width int, theme StyleTheme) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(theme.ToGlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(doc)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return strings.Trim(out, "\n"), nil
}

// postReader shows one post full screen.
type postReader struct {
	post     content.Post
	viewport viewport.Model
}

// openReader renders post into a fresh reader.
func (m *Model) openReader(post content.Post) {
	w, h := m.readerSize()
	vp := viewport.New(w, h)

	body, err := m.markdown.render(post.Markdown(), w, m.theme)
	if err != nil {
		m.logger.Warn("markdown render failed",
			zap.Int("post", post.ID), zap.Error(err))
	}
	vp.SetContent(body)
	m.reader = &postReader{post: post, viewport: vp}
}

// resizeReader re-renders the open post after a resize or theme change.
func (m *Model) resizeReader() {
	if m.reader == nil {
		return
	}
	offset := m.reader.viewport.YOffset
	m.openReader(m.reader.post)
	m.reader.viewport.SetYOffset(offset)
}

func (m Model) readerSize() (int, int) {
	w := m.contentWidth()
	h := max(m.height-chromeHeight-2, 3)
	return w, h
}

// renderReader draws the reader with a title bar and scroll position.
func (m Model) renderReader() string {
	r := m.reader
	w, _ := m.readerSize()
	title := m.theme.HeadingStyle().Render(truncate(r.post.Title, w-8))
	pos := m.theme.MutedStyle().Render(fmt.Sprintf("%3.0f%%", r.viewport.ScrollPercent()*100))
	gap := max(w-xansi.StringWidth(title)-xansi.StringWidth(pos), 1)
	bar := title + strings.Repeat(" ", gap) + pos
	return bar + "\n" + divider(m.theme, w) + "\n" + r.viewport.View()
}
