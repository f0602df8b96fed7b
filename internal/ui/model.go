package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/alignedempire/aligned/internal/commands"
	"github.com/alignedempire/aligned/internal/config"
	"github.com/alignedempire/aligned/internal/content"
	"github.com/alignedempire/aligned/internal/launch"
	"github.com/alignedempire/aligned/internal/reveal"
)

// chromeHeight is the rows used by the header, page tabs, divider and
// status line.
const chromeHeight = 4

// statusDuration is how long a status message stays up.
const statusDuration = 3 * time.Second

// Model represents the application state for the TUI
type Model struct {
	catalog *content.Catalog
	cfg     *config.Config
	logger  *zap.Logger
	opener  launch.Opener
	copyFn  func(string) error

	page   PageID
	width  int // Terminal width
	height int // Terminal height
	ready  bool
	theme  StyleTheme
	keys   keyMap

	// Page body: sections laid out into the viewport
	viewport viewport.Model
	sections []section
	spans    []reveal.Span
	reveal   *revealer
	markdown *markdownCache

	// Page state
	blog         blogState
	courseCursor int
	reader       *postReader // open post, nil when closed
	contact      *contactForm
	booking      *bookingForm // open booking form, nil when closed

	// Status message for user feedback
	statusMessage string
	statusIsError bool

	// Modal state
	helpModal   HelpModal
	commandMode CommandMode
}

// clearStatusMsg is sent to clear the status message after a delay
type clearStatusMsg struct{}

// ModelOption customizes a Model.
type ModelOption func(*Model)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithOpener replaces the browser/mail launcher.
func WithOpener(o launch.Opener) ModelOption {
	return func(m *Model) {
		if o != nil {
			m.opener = o
		}
	}
}

// WithClipboard replaces the clipboard writer.
func WithClipboard(fn func(string) error) ModelOption {
	return func(m *Model) {
		if fn != nil {
			m.copyFn = fn
		}
	}
}

// WithPage sets the page shown first.
func WithPage(p PageID) ModelOption {
	return func(m *Model) {
		m.page = p
	}
}

// NewModel creates a new Model instance
func NewModel(cat *content.Catalog, cfg *config.Config, opts ...ModelOption) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	theme, _ := ThemeByName(cfg.UI.Theme)
	keys := defaultKeyMap()

	m := Model{
		catalog:     cat,
		cfg:         cfg,
		logger:      zap.NewNop(),
		opener:      launch.SystemOpener{},
		copyFn:      launch.CopyToClipboard,
		page:        PageHome,
		theme:       theme,
		keys:        keys,
		viewport:    viewport.New(80, 20),
		reveal:      newRevealer(cfg),
		markdown:    newMarkdownCache(),
		blog:        newBlogState(cat),
		contact:     newContactForm(),
		helpModal:   NewHelpModal(keys),
		commandMode: NewCommandMode(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.commandMode.SetTheme(theme)
	m.commandMode.SetArgs("page", strings.Split(pageNameList(), ", "))
	m.commandMode.SetArgs("blog", lowerAll(content.Categories))
	m.commandMode.SetArgs("theme", themeNames())
	m.commandMode.SetArgs("yank", []string{"link", "email", "phone"})
	tiers := make([]string, len(cat.Coaching.Tiers))
	for i, t := range cat.Coaching.Tiers {
		tiers[i] = t.Name
	}
	m.commandMode.SetArgs("book", tiers)

	return m
}

// Init sets the terminal title.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle(m.catalog.Brand)
}

// Update handles messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 1)
		m.helpModal.SetSize(msg.Width, msg.Height)
		m.commandMode.SetWidth(msg.Width)
		m.contact.SetWidth(m.contentWidth())
		m.resizeReader()
		return m, m.rebuild()

	case revealMsg:
		m.reveal.finish(msg)
		return m, m.rebuild()

	case clearStatusMsg:
		m.statusMessage = ""
		m.statusIsError = false
		return m, nil

	case commands.ErrorMsg:
		m.logger.Debug("command failed", zap.String("error", msg.Message))
		return m, m.commandMode.SetError(msg.Message)

	case commands.HelpMsg:
		m.helpModal.Show()
		return m, nil

	case commands.PageMsg:
		p, ok := ParsePage(msg.Name)
		if !ok {
			return m, m.commandMode.SetError(fmt.Sprintf("Unknown page '%s' (available: %s)", msg.Name, pageNameList()))
		}
		return m, m.switchPage(p)

	case commands.CategoryMsg:
		m.blog.selectCategory(msg.Category)
		return m, m.switchPage(PageBlog)

	case commands.SearchMsg:
		m.blog.setTerm(msg.Term)
		return m, m.switchPage(PageBlog)

	case commands.ThemeMsg:
		return m, m.applyTheme(msg.Name)

	case commands.OpenMsg:
		return m, m.openSelection()

	case commands.YankMsg:
		return m, m.yank(msg.Target)

	case commands.BookMsg:
		return m, m.startBooking(msg.Tier)

	case commands.CalendarMsg:
		return m, m.openCalendar()
	}

	// Command mode has the highest priority
	if m.commandMode.IsActive() {
		m.commandMode, cmd = m.commandMode.Update(msg)
		return m, cmd
	}

	if m.helpModal.IsVisible() {
		m.helpModal, cmd = m.helpModal.Update(msg)
		return m, cmd
	}

	if m.booking != nil {
		return m, m.updateBooking(msg)
	}

	if m.reader != nil {
		return m, m.updateReader(msg)
	}

	if m.contact.Active() {
		return m, m.updateContact(msg)
	}

	if m.blog.searching {
		return m, m.updateSearch(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
		return m, tea.Batch(cmd, m.observe())
	}

	return m, nil
}

// handleKey processes keys when no form, modal or reader is open.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.helpModal.Show()
		return nil
	case key.Matches(msg, m.keys.Command):
		m.commandMode.Show()
		return nil
	case key.Matches(msg, m.keys.NextPage):
		return m.switchPage(m.page.Next())
	case key.Matches(msg, m.keys.PrevPage):
		return m.switchPage(m.page.Prev())
	case key.Matches(msg, m.keys.Theme):
		return m.applyTheme("")
	case key.Matches(msg, m.keys.Yank):
		return m.yank("link")
	}

	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		if p, ok := ParsePage(s); ok {
			return m.switchPage(p)
		}
	}

	var handled bool
	var cmd tea.Cmd
	switch m.page {
	case PageBlog:
		handled, cmd = m.handleBlogKey(msg)
	case PageCourses:
		handled, cmd = m.handleCourseKey(msg)
	case PageContact:
		handled, cmd = m.handleContactKey(msg)
	case PageBook, PageCoaching:
		handled, cmd = m.handleBookKey(msg)
	}
	if handled {
		return cmd
	}

	return m.scrollKey(msg)
}

func (m *Model) handleBlogKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.blog.move(1)
		return true, m.followCursor()
	case key.Matches(msg, m.keys.Up):
		m.blog.move(-1)
		return true, m.followCursor()
	case key.Matches(msg, m.keys.Top):
		m.blog.cursor = 0
		m.viewport.GotoTop()
		return true, m.rebuild()
	case key.Matches(msg, m.keys.NextCategory):
		m.blog.cycleCategory(1)
		return true, m.followCursor()
	case key.Matches(msg, m.keys.PrevCategory):
		m.blog.cycleCategory(-1)
		return true, m.followCursor()
	case key.Matches(msg, m.keys.Search):
		m.blog.searching = true
		cmd := m.blog.search.Focus()
		return true, tea.Batch(cmd, m.rebuild())
	case key.Matches(msg, m.keys.Read):
		if p, ok := m.blog.selected(); ok {
			m.openReader(p)
			m.logger.Debug("reading post", zap.Int("post", p.ID))
		}
		return true, nil
	case key.Matches(msg, m.keys.Open):
		return true, m.openSelection()
	}
	return false, nil
}

func (m *Model) handleCourseKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.courseCursor = min(m.courseCursor+1, max(len(m.catalog.Courses)-1, 0))
		return true, m.followCursor()
	case key.Matches(msg, m.keys.Up):
		m.courseCursor = max(m.courseCursor-1, 0)
		return true, m.followCursor()
	case key.Matches(msg, m.keys.Open), key.Matches(msg, m.keys.Read):
		return true, m.openSelection()
	}
	return false, nil
}

func (m *Model) handleContactKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	c := m.catalog.Contact
	switch {
	case key.Matches(msg, m.keys.Form), key.Matches(msg, m.keys.Read):
		cmd := m.contact.Activate()
		if span, ok := m.spanOf("form"); ok {
			m.viewport.SetYOffset(span.Top)
		}
		return true, tea.Batch(cmd, m.rebuild())
	case key.Matches(msg, m.keys.Email):
		return true, m.openURL(launch.Mailto(c.Email, "", ""), "Opening your email client...")
	case key.Matches(msg, m.keys.WhatsApp):
		if c.WhatsApp == "" {
			return true, m.setStatus("No WhatsApp number listed", true)
		}
		return true, m.openURL(launch.WhatsAppURL(c.WhatsApp, "Hi "+firstName(m.catalog.Founder)+", I'd love to learn more about working with you."), "Opening WhatsApp...")
	case key.Matches(msg, m.keys.Call):
		if c.Phone == "" {
			return true, m.setStatus("No phone number listed", true)
		}
		return true, m.openURL(launch.TelURL(c.Phone), "Calling "+c.Phone+"...")
	}
	return false, nil
}

func (m *Model) handleBookKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Book):
		return true, m.startBooking("")
	case m.page == PageBook && key.Matches(msg, m.keys.Read):
		return true, m.startBooking("")
	case m.page == PageBook && key.Matches(msg, m.keys.Calendar):
		return true, m.openCalendar()
	}
	return false, nil
}

// scrollKey moves the viewport for the navigation keys.
func (m *Model) scrollKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.viewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.viewport.ScrollUp(1)
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.PageDown()
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.PageUp()
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
	default:
		return nil
	}
	return m.observe()
}

func (m *Model) updateReader(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, m.keys.Back), km.String() == "q":
			m.reader = nil
			return nil
		case key.Matches(km, m.keys.Open):
			return m.openURL(m.reader.post.Link, "Opening in browser...")
		case key.Matches(km, m.keys.Yank):
			return m.copyText(m.reader.post.Link, "link")
		case key.Matches(km, m.keys.Command):
			m.commandMode.Show()
			return nil
		}
	}
	var cmd tea.Cmd
	m.reader.viewport, cmd = m.reader.viewport.Update(msg)
	return cmd
}

func (m *Model) updateContact(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, m.keys.Back) {
		m.contact.Deactivate()
		return m.rebuild()
	}

	submit, cmd := m.contact.Update(msg)
	if !submit {
		return tea.Batch(cmd, m.rebuild())
	}

	if err := m.contact.Validate(); err != nil {
		return tea.Batch(m.setStatus(err.Error(), true), m.rebuild())
	}
	open := m.openURL(m.contact.Mailto(m.catalog.Contact.Email), "Opening your email client...")
	if !m.statusIsError {
		m.contact.Reset()
		m.contact.Deactivate()
	}
	return tea.Batch(open, m.rebuild())
}

func (m *Model) updateSearch(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc", "enter":
			m.blog.searching = false
			m.blog.search.Blur()
			return m.rebuild()
		}
	}

	var cmd tea.Cmd
	m.blog.search, cmd = m.blog.search.Update(msg)
	if v := m.blog.search.Value(); v != m.blog.filter.Term() {
		m.blog.setTerm(v)
		return tea.Batch(cmd, m.followCursor())
	}
	return tea.Batch(cmd, m.rebuild())
}

func (m *Model) updateBooking(msg tea.Msg) tea.Cmd {
	cmd := m.booking.Update(msg)

	switch {
	case m.booking.Done():
		req := *m.booking.req
		m.booking = nil
		if err := req.Validate(); err != nil {
			return tea.Batch(cmd, m.setStatus(err.Error(), true), m.rebuild())
		}
		m.logger.Info("booking request",
			zap.String("platform", req.Platform), zap.String("tier", req.Tier))
		open := m.openURL(req.Mailto(m.catalog.Contact.BookingEmail),
			"Opening your email client to send the request...")
		return tea.Batch(cmd, open, m.rebuild())

	case m.booking.Aborted():
		m.booking = nil
		return tea.Batch(m.setStatus("Booking cancelled", false), m.rebuild())
	}

	return tea.Batch(cmd, m.rebuild())
}

// startBooking opens the booking form, preselecting tier when given.
func (m *Model) startBooking(tier string) tea.Cmd {
	if tier != "" {
		t, ok := m.catalog.TierByName(tier)
		if !ok {
			return m.commandMode.SetError(fmt.Sprintf("Unknown tier '%s'", tier))
		}
		tier = t.Name
	}
	m.reader = nil
	m.contact.Deactivate()
	m.booking = newBookingForm(m.catalog.Coaching.Tiers, tier, m.theme, cardInner(m.contentWidth()))
	return tea.Batch(m.booking.Init(), m.switchPage(PageBook))
}

func (m *Model) openCalendar() tea.Cmd {
	return m.openURL(m.catalog.Contact.CalendarURL, "Opening the booking calendar...")
}

// switchPage shows page p from the top.
func (m *Model) switchPage(p PageID) tea.Cmd {
	if p != m.page {
		m.logger.Debug("page", zap.String("from", m.page.String()), zap.String("to", p.String()))
		m.contact.Deactivate()
		m.blog.searching = false
		m.blog.search.Blur()
		m.page = p
		m.viewport.GotoTop()
	}
	m.reader = nil
	return m.followCursor()
}

// applyTheme selects a theme by name; an empty name cycles.
func (m *Model) applyTheme(name string) tea.Cmd {
	next := NextTheme(m.theme)
	if name != "" {
		t, ok := ThemeByName(name)
		if !ok {
			return m.commandMode.SetError(fmt.Sprintf("Unknown theme '%s' (available: %s)", name, strings.Join(themeNames(), ", ")))
		}
		next = t
	}
	m.theme = next
	m.commandMode.SetTheme(next)
	m.resizeReader()
	return tea.Batch(m.setStatus("Theme: "+next.Name, false), m.rebuild())
}

// rebuild lays out the current page, renders it into the viewport and
// reports the visible window to the reveal triggers.
func (m *Model) rebuild() tea.Cmd {
	if !m.ready {
		return nil
	}
	secs := m.buildSections()
	spans := measure(secs)
	m.reveal.layout(m.page, secs, spans)
	m.sections, m.spans = secs, spans
	m.viewport.SetContent(m.gutter().Render(m.reveal.render(m.page, secs, m.theme)))
	return m.observe()
}

// observe reports the viewport window to the reveal triggers.
func (m *Model) observe() tea.Cmd {
	return m.reveal.scroll(m.viewport.YOffset, m.viewport.Height)
}

// followCursor rebuilds and scrolls the selected card into view.
func (m *Model) followCursor() tea.Cmd {
	cmd := m.rebuild()

	var k string
	switch m.page {
	case PageBlog:
		k = m.blog.cardKey()
	case PageCourses:
		if m.courseCursor < len(m.catalog.Courses) {
			k = fmt.Sprintf("course-%d", m.catalog.Courses[m.courseCursor].ID)
		}
	}
	span, ok := m.spanOf(k)
	if !ok {
		return cmd
	}

	offset := m.viewport.YOffset
	switch {
	case span.Top < offset:
		offset = span.Top
	case span.Bottom() > offset+m.viewport.Height:
		offset = span.Bottom() - m.viewport.Height
		if span.Height > m.viewport.Height {
			offset = span.Top
		}
	}
	if offset == m.viewport.YOffset {
		return cmd
	}
	m.viewport.SetYOffset(offset)
	return tea.Batch(cmd, m.observe())
}

func (m Model) spanOf(key string) (reveal.Span, bool) {
	for i, s := range m.sections {
		if s.key == key {
			return m.spans[i], true
		}
	}
	return reveal.Span{}, false
}

// buildSections renders the current page's sections.
func (m Model) buildSections() []section {
	switch m.page {
	case PageAbout:
		return m.aboutSections()
	case PageBlog:
		return m.blogSections()
	case PageCoaching:
		return m.coachingSections()
	case PageCourses:
		return m.courseSections()
	case PageTestimonials:
		return m.testimonialSections()
	case PageContact:
		return m.contactSections()
	case PageBook:
		return m.bookSections()
	}
	return m.homeSections()
}

// contentWidth is the width sections are rendered at.
func (m Model) contentWidth() int {
	return min(max(m.width-4, 24), 100)
}

// openSelection opens the link behind the current selection.
func (m *Model) openSelection() tea.Cmd {
	link, ok := m.selectionLink()
	if !ok {
		return m.setStatus("Nothing to open here", true)
	}
	return m.openURL(link, "Opening in browser...")
}

// selectionLink is the URL of whatever the current page has selected.
func (m Model) selectionLink() (string, bool) {
	switch {
	case m.reader != nil:
		return m.reader.post.Link, m.reader.post.Link != ""
	case m.page == PageBlog:
		if p, ok := m.blog.selected(); ok && p.Link != "" {
			return p.Link, true
		}
	case m.page == PageCourses:
		if m.courseCursor < len(m.catalog.Courses) {
			href := m.catalog.Courses[m.courseCursor].Href
			return href, href != ""
		}
	case m.page == PageBook:
		return m.catalog.Contact.CalendarURL, m.catalog.Contact.CalendarURL != ""
	}
	return "", false
}

func (m *Model) openURL(target, success string) tea.Cmd {
	if err := m.opener.Open(target); err != nil {
		m.logger.Warn("open failed", zap.String("target", target), zap.Error(err))
		return m.setStatus(fmt.Sprintf("Failed to open: %v", err), true)
	}
	m.logger.Info("opened", zap.String("target", target))
	return m.setStatus(success, false)
}

// setStatus shows a message in the status line for statusDuration.
func (m *Model) setStatus(msg string, isError bool) tea.Cmd {
	m.statusMessage = msg
	m.statusIsError = isError
	return clearStatusAfterDelay(statusDuration)
}

// clearStatusAfterDelay returns a command that clears the status message after a delay
func clearStatusAfterDelay(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func themeNames() []string {
	names := make([]string, len(AvailableThemes))
	for i, t := range AvailableThemes {
		names[i] = t.Name
	}
	return names
}

func firstName(full string) string {
	if f := strings.Fields(full); len(f) > 0 {
		return f[0]
	}
	return full
}
