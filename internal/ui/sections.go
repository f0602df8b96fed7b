package ui

import (
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/alignedempire/aligned/internal/config"
	"github.com/alignedempire/aligned/internal/reveal"
)

// section is one block of a page. Sections are stacked with a blank line
// between them and each one enters the screen on its own.
type section struct {
	key   string // stable across re-renders; reveal state is kept per key
	body  string
	hero  bool // uses the load-in delay instead of the stagger
	index int  // position within its card group

	threshold float64 // overrides the configured threshold when set
}

// ctaThreshold asks for more of a call-to-action block before it enters.
const ctaThreshold = 0.2

// revealMsg finishes the entrance of one section.
type revealMsg struct {
	page PageID
	key  string
}

// measure returns the rows each section occupies in the joined page.
func measure(secs []section) []reveal.Span {
	spans := make([]reveal.Span, len(secs))
	top := 0
	for i, s := range secs {
		spans[i] = reveal.Span{Top: top, Height: lipgloss.Height(s.body)}
		top = spans[i].Bottom() + 1
	}
	return spans
}

type pageReveal struct {
	triggers map[string]*reveal.Trigger
	spans    map[string]reveal.Span
	delays   map[string]time.Duration
	seen     map[string]bool
	shown    map[string]bool
}

func newPageReveal() *pageReveal {
	return &pageReveal{
		triggers: make(map[string]*reveal.Trigger),
		spans:    make(map[string]reveal.Span),
		delays:   make(map[string]time.Duration),
		seen:     make(map[string]bool),
		shown:    make(map[string]bool),
	}
}

// revealer owns the visibility triggers of every page. Only the active
// page holds observer registrations; the others keep what they have seen.
type revealer struct {
	lines     *reveal.LineObserver
	observer  reveal.Observer // nil when reveal is disabled
	threshold float64
	step      time.Duration
	heroDelay time.Duration

	pages     map[PageID]*pageReveal
	active    PageID
	hasActive bool
}

func newRevealer(cfg *config.Config) *revealer {
	r := &revealer{
		threshold: cfg.UI.Threshold,
		step:      cfg.StaggerStep(),
		heroDelay: cfg.HeroDelay(),
		pages:     make(map[PageID]*pageReveal),
	}
	if cfg.UI.Reveal {
		r.lines = reveal.NewLineObserver()
		r.observer = r.lines
	}
	return r
}

func (r *revealer) page(p PageID) *pageReveal {
	pr, ok := r.pages[p]
	if !ok {
		pr = newPageReveal()
		r.pages[p] = pr
	}
	return pr
}

// layout (re)registers a trigger for every section of page p that has not
// been seen yet. Sections whose span moved get a fresh trigger. Leaving a
// page releases its pending registrations.
func (r *revealer) layout(p PageID, secs []section, spans []reveal.Span) {
	if r.hasActive && r.active != p {
		r.leave(r.active)
	}
	r.active, r.hasActive = p, true
	pr := r.page(p)

	present := make(map[string]bool, len(secs))
	for i, s := range secs {
		present[s.key] = true
		pr.delays[s.key] = r.delayFor(s)
		if pr.seen[s.key] {
			continue
		}

		span := spans[i]
		if t, ok := pr.triggers[s.key]; ok {
			if pr.spans[s.key] == span {
				t.Mount()
				continue
			}
			t.Unmount()
		}

		threshold := r.threshold
		if s.threshold > 0 {
			threshold = s.threshold
		}
		t := reveal.New(r.observer, span, reveal.WithThreshold(threshold))
		pr.triggers[s.key] = t
		pr.spans[s.key] = span
		t.Mount()
		if t.Seen() {
			// Failed open: show without an entrance.
			r.markSeen(pr, s.key)
			pr.shown[s.key] = true
		}
	}

	for k, t := range pr.triggers {
		if !present[k] {
			t.Unmount()
			delete(pr.triggers, k)
			delete(pr.spans, k)
		}
	}
}

func (r *revealer) leave(p PageID) {
	pr, ok := r.pages[p]
	if !ok {
		return
	}
	for _, t := range pr.triggers {
		t.Unmount()
	}
}

func (r *revealer) markSeen(pr *pageReveal, k string) {
	pr.seen[k] = true
	delete(pr.triggers, k)
	delete(pr.spans, k)
}

func (r *revealer) delayFor(s section) time.Duration {
	if s.hero {
		return r.heroDelay
	}
	return reveal.Stagger(s.index, r.step)
}

// scroll moves the observed window and schedules the entrance of every
// section seen for the first time.
func (r *revealer) scroll(offset, height int) tea.Cmd {
	if r.lines == nil || !r.hasActive {
		return nil
	}
	r.lines.Scroll(offset, height)

	p := r.active
	pr := r.page(p)
	var fired []string
	for k, t := range pr.triggers {
		if t.Seen() {
			fired = append(fired, k)
		}
	}
	if len(fired) == 0 {
		return nil
	}
	sort.Strings(fired)

	cmds := make([]tea.Cmd, 0, len(fired))
	for _, k := range fired {
		r.markSeen(pr, k)
		cmds = append(cmds, revealAfter(p, k, pr.delays[k]))
	}
	return tea.Batch(cmds...)
}

// finish marks a section as shown.
func (r *revealer) finish(msg revealMsg) {
	r.page(msg.page).shown[msg.key] = true
}

func (r *revealer) isShown(p PageID, key string) bool {
	return r.page(p).shown[key]
}

func (r *revealer) isSeen(p PageID, key string) bool {
	return r.page(p).seen[key]
}

// pending counts sections of p still waiting to be seen.
func (r *revealer) pending(p PageID) int {
	return len(r.page(p).triggers)
}

// render joins the sections of p, drawing the ones not shown yet as faint
// outlines of the same height.
func (r *revealer) render(p PageID, secs []section, theme StyleTheme) string {
	pr := r.page(p)
	parts := make([]string, len(secs))
	for i, s := range secs {
		if pr.shown[s.key] {
			parts[i] = s.body
			continue
		}
		parts[i] = hiddenBlock(s.body, theme)
	}
	return strings.Join(parts, "\n\n")
}

func hiddenBlock(body string, theme StyleTheme) string {
	style := theme.HiddenStyle()
	lines := strings.Split(xansi.Strip(body), "\n")
	for i, l := range lines {
		lines[i] = style.Render(l)
	}
	return strings.Join(lines, "\n")
}

func revealAfter(p PageID, key string, delay time.Duration) tea.Cmd {
	if delay <= 0 {
		return func() tea.Msg {
			return revealMsg{page: p, key: key}
		}
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return revealMsg{page: p, key: key}
	})
}
