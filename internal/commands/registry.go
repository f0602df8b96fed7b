package commands

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alignedempire/aligned/internal/content"
	"github.com/alignedempire/aligned/internal/filter"
)

// CommandFunc is a function that executes a command
type CommandFunc func(args []string) tea.Cmd

// Registry holds all available commands
type Registry struct {
	commands map[string]CommandFunc
}

// NewRegistry creates a new command registry with built-in commands
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]CommandFunc),
	}

	// Full names only; Execute resolves unique prefixes.
	r.Register("quit", cmdQuit)
	r.Register("help", cmdHelp)
	r.Register("page", cmdPage)
	r.Register("blog", cmdBlog)
	r.Register("search", cmdSearch)
	r.Register("theme", cmdTheme)

	// Actions on the selected post or the contact details
	r.Register("open", cmdOpen)
	r.Register("yank", cmdYank)

	// Booking
	r.Register("book", cmdBook)
	r.Register("calendar", cmdCalendar)

	return r
}

// Register adds a command to the registry
func (r *Registry) Register(name string, fn CommandFunc) {
	r.commands[name] = fn
}

// Execute runs a command by name with arguments
func (r *Registry) Execute(name string, args []string) tea.Cmd {
	// First try exact match
	if fn, ok := r.commands[name]; ok {
		return fn(args)
	}

	matches := r.Complete(name)

	// If exactly one match, execute it
	if len(matches) == 1 {
		return r.commands[matches[0]](args)
	}

	if len(matches) > 1 {
		return showError(fmt.Sprintf("Ambiguous command '%s': %s", name, strings.Join(matches, ", ")))
	}

	return showError(fmt.Sprintf("Unknown command '%s'", name))
}

// Complete returns the sorted command names starting with prefix, ignoring
// case.
func (r *Registry) Complete(prefix string) []string {
	lower := strings.ToLower(prefix)
	var matches []string
	for name := range r.commands {
		if strings.HasPrefix(strings.ToLower(name), lower) {
			matches = append(matches, name)
		}
	}
	sort.Strings(matches)
	return matches
}

// GetCommands returns all registered command names
func (r *Registry) GetCommands() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Built-in command implementations

// cmdQuit exits the application
func cmdQuit(args []string) tea.Cmd {
	return tea.Quit
}

// cmdHelp shows available commands
func cmdHelp(args []string) tea.Cmd {
	return func() tea.Msg {
		return HelpMsg{}
	}
}

// cmdPage switches to a page by name or number
func cmdPage(args []string) tea.Cmd {
	return func() tea.Msg {
		if len(args) == 0 {
			return ErrorMsg{Message: "page: name required (home, about, blog, coaching, courses, testimonials, contact, book)"}
		}
		return PageMsg{Name: strings.ToLower(args[0])}
	}
}

// cmdBlog jumps to the blog, optionally selecting a category
func cmdBlog(args []string) tea.Cmd {
	return func() tea.Msg {
		if len(args) == 0 {
			return PageMsg{Name: "blog"}
		}
		category, ok := normalizeCategory(args[0])
		if !ok {
			return ErrorMsg{Message: fmt.Sprintf("blog: unknown category '%s' (available: %s)",
				args[0], strings.Join(content.Categories, ", "))}
		}
		return CategoryMsg{Category: category}
	}
}

// cmdSearch sets the blog search term; no arguments clears it
func cmdSearch(args []string) tea.Cmd {
	return func() tea.Msg {
		return SearchMsg{Term: strings.Join(args, " ")}
	}
}

// cmdTheme cycles themes, or selects one by name
func cmdTheme(args []string) tea.Cmd {
	return func() tea.Msg {
		if len(args) == 0 {
			return ThemeMsg{}
		}
		return ThemeMsg{Name: strings.ToLower(args[0])}
	}
}

// cmdOpen opens the selected post (or the page's link) in the browser
func cmdOpen(args []string) tea.Cmd {
	return func() tea.Msg {
		return OpenMsg{}
	}
}

// cmdYank copies a link or address to the clipboard
func cmdYank(args []string) tea.Cmd {
	return func() tea.Msg {
		target := "link"
		if len(args) > 0 {
			target = strings.ToLower(args[0])
		}
		switch target {
		case "link", "email", "phone":
			return YankMsg{Target: target}
		default:
			return ErrorMsg{Message: fmt.Sprintf("yank: unknown target '%s' (available: link, email, phone)", args[0])}
		}
	}
}

// cmdBook opens the booking form, optionally for a coaching tier
func cmdBook(args []string) tea.Cmd {
	return func() tea.Msg {
		return BookMsg{Tier: strings.Join(args, " ")}
	}
}

// cmdCalendar opens the scheduling calendar
func cmdCalendar(args []string) tea.Cmd {
	return func() tea.Msg {
		return CalendarMsg{}
	}
}

func normalizeCategory(arg string) (string, bool) {
	for _, c := range content.Categories {
		if strings.EqualFold(c, arg) {
			return c, true
		}
	}
	return filter.All, false
}

// showError returns a command that shows an error message
func showError(msg string) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Message: msg}
	}
}

// Message types for commands

// ErrorMsg contains an error message to display
type ErrorMsg struct {
	Message string
}

// HelpMsg signals to show the help modal
type HelpMsg struct{}

// PageMsg switches the visible page
type PageMsg struct {
	Name string
}

// CategoryMsg selects a blog category (and clears the search term)
type CategoryMsg struct {
	Category string
}

// SearchMsg sets the blog search term
type SearchMsg struct {
	Term string
}

// ThemeMsg selects a theme; an empty name cycles to the next one
type ThemeMsg struct {
	Name string
}

// OpenMsg signals to open URL in browser
type OpenMsg struct{}

// YankMsg signals to copy to clipboard
type YankMsg struct {
	Target string // "link" (default), "email" or "phone"
}

// BookMsg opens the booking form
type BookMsg struct {
	Tier string
}

// CalendarMsg opens the scheduling calendar
type CalendarMsg struct{}
