package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alignedempire/aligned/internal/commands"
)

const (
	historyLimit      = 50
	commandErrorDelay = 2 * time.Second
)

// CommandMode is the ":" prompt at the bottom of the screen.
type CommandMode struct {
	active   bool
	input    textinput.Model
	registry *commands.Registry
	args     map[string][]string // argument completions per command
	theme    StyleTheme
	width    int
	error    string

	history []string
	histPos int // len(history) while editing a fresh line

	// Tab cycles through matches while the input still holds the last one
	matches  []string
	matchIdx int
}

// clearErrorMsg closes the prompt after an error has been on screen.
type clearErrorMsg struct{}

func NewCommandMode() CommandMode {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50
	ti.Prompt = ":"

	return CommandMode{
		input:    ti,
		registry: commands.NewRegistry(),
		args:     make(map[string][]string),
		theme:    AlignedTheme,
		width:    80,
	}
}

func (c *CommandMode) SetTheme(t StyleTheme) {
	c.theme = t
}

// SetArgs sets the completions offered after "name ".
func (c *CommandMode) SetArgs(name string, values []string) {
	c.args[name] = values
}

func (c *CommandMode) SetWidth(width int) {
	c.width = width
	c.input.Width = max(width-4, 1)
}

// Show opens an empty prompt.
func (c *CommandMode) Show() {
	c.reset()
	c.active = true
	c.input.Focus()
}

// Hide closes the prompt and forgets the line being edited.
func (c *CommandMode) Hide() {
	c.reset()
	c.active = false
	c.input.Blur()
}

func (c *CommandMode) reset() {
	c.input.SetValue("")
	c.error = ""
	c.histPos = len(c.history)
	c.matches = nil
	c.matchIdx = 0
}

func (c CommandMode) IsActive() bool {
	return c.active
}

// SetError shows err in place of the prompt until a key is pressed or the
// delay runs out.
func (c *CommandMode) SetError(err string) tea.Cmd {
	c.error = err
	c.active = true
	c.input.Blur()
	return tea.Tick(commandErrorDelay, func(time.Time) tea.Msg {
		return clearErrorMsg{}
	})
}

func (c *CommandMode) Update(msg tea.Msg) (CommandMode, tea.Cmd) {
	if !c.active {
		return *c, nil
	}

	switch msg := msg.(type) {
	case clearErrorMsg:
		c.Hide()
		return *c, nil

	case tea.KeyMsg:
		if c.error != "" {
			c.Hide()
			return *c, nil
		}

		switch msg.Type {
		case tea.KeyEscape, tea.KeyCtrlC:
			c.Hide()
			return *c, nil
		case tea.KeyEnter:
			return *c, c.submit()
		case tea.KeyUp:
			c.recall(-1)
			return *c, nil
		case tea.KeyDown:
			c.recall(1)
			return *c, nil
		case tea.KeyTab:
			c.complete()
			return *c, nil
		case tea.KeyBackspace:
			if c.input.Value() == "" {
				c.Hide()
				return *c, nil
			}
		}
	}

	before := c.input.Value()
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	if c.input.Value() != before {
		c.matches = nil
	}
	return *c, cmd
}

// submit runs the typed line through the registry.
func (c *CommandMode) submit() tea.Cmd {
	line := strings.TrimSpace(c.input.Value())
	parts := parseCommandWithQuotes(line)
	c.Hide()
	if len(parts) == 0 {
		return nil
	}

	if n := len(c.history); n == 0 || c.history[n-1] != line {
		c.history = append(c.history, line)
		if len(c.history) > historyLimit {
			c.history = c.history[1:]
		}
	}
	return c.registry.Execute(parts[0], parts[1:])
}

// recall walks the history; stepping past the newest entry clears the line.
func (c *CommandMode) recall(delta int) {
	pos := min(max(c.histPos+delta, 0), len(c.history))
	if pos == c.histPos {
		return
	}
	c.histPos = pos
	if pos == len(c.history) {
		c.input.SetValue("")
	} else {
		c.input.SetValue(c.history[pos])
	}
	c.input.CursorEnd()
}

// complete fills in the next match for the current line.
func (c *CommandMode) complete() {
	current := c.input.Value()
	cycling := len(c.matches) > 0 && current == c.matches[(c.matchIdx+len(c.matches)-1)%len(c.matches)]
	if !cycling {
		if current == "" {
			return
		}
		c.matches = c.Complete(current)
		c.matchIdx = 0
		if len(c.matches) == 0 {
			return
		}
	}

	c.input.SetValue(c.matches[c.matchIdx])
	c.input.CursorEnd()
	c.matchIdx = (c.matchIdx + 1) % len(c.matches)
}

func (c CommandMode) View() string {
	if !c.active {
		return ""
	}

	style := lipgloss.NewStyle().Width(c.width).Padding(0, 1)
	if c.error != "" {
		return style.Foreground(c.theme.Error).Render(c.error)
	}

	line := c.input.View()
	if n := len(c.matches); n > 1 {
		// matchIdx already points at the next match
		line += fmt.Sprintf(" [%d/%d]", (c.matchIdx+n-1)%n+1, n)
	}
	return style.Foreground(c.theme.Accent).Render(line)
}

// Complete returns command names starting with prefix, or argument
// completions once the command name is followed by a space.
func (c *CommandMode) Complete(prefix string) []string {
	name, argPrefix, hasArg := strings.Cut(prefix, " ")
	if !hasArg {
		return c.registry.Complete(prefix)
	}

	resolved := strings.ToLower(name)
	if names := c.registry.Complete(resolved); len(names) == 1 {
		resolved = names[0]
	}
	argPrefix = strings.ToLower(strings.TrimSpace(argPrefix))

	var matches []string
	for _, v := range c.args[resolved] {
		if strings.HasPrefix(strings.ToLower(v), argPrefix) {
			matches = append(matches, resolved+" "+v)
		}
	}
	return matches
}

// parseCommandWithQuotes splits a line on spaces. Double quotes group words
// and a backslash takes the next rune literally.
func parseCommandWithQuotes(line string) []string {
	var (
		parts   []string
		cur     strings.Builder
		quoted  bool
		escaped bool
		started bool
	)
	flush := func() {
		if started {
			parts = append(parts, cur.String())
			cur.Reset()
			started = false
		}
	}

	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped, started = false, true
		case r == '\\':
			escaped = true
		case r == '"':
			quoted = !quoted
			started = true
		case r == ' ' && !quoted:
			flush()
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	flush()
	return parts
}
