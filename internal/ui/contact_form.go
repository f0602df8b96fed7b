package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alignedempire/aligned/internal/launch"
)

var (
	errMissingIdentity = errors.New("Please provide your name and email.")
	errInvalidEmail    = errors.New("Please enter a valid email address.")
)

const (
	fieldName = iota
	fieldEmail
	fieldMessage
	fieldSend
	contactFields
)

// contactForm is the message form on the contact page.
type contactForm struct {
	name    textinput.Model
	email   textinput.Model
	message textarea.Model
	focus   int
	active  bool
}

func newContactForm() *contactForm {
	name := textinput.New()
	name.Placeholder = "Your name"
	name.Prompt = ""
	name.CharLimit = 80

	email := textinput.New()
	email.Placeholder = "you@company.com"
	email.Prompt = ""
	email.CharLimit = 120

	msg := textarea.New()
	msg.Placeholder = "How can I help you build your aligned empire?"
	msg.ShowLineNumbers = false
	msg.CharLimit = 2000
	msg.SetHeight(4)

	return &contactForm{name: name, email: email, message: msg}
}

// Activate focuses the first field.
func (f *contactForm) Activate() tea.Cmd {
	f.active = true
	f.focus = fieldName
	return f.applyFocus()
}

// Deactivate blurs every field; typed values are kept.
func (f *contactForm) Deactivate() {
	f.active = false
	f.name.Blur()
	f.email.Blur()
	f.message.Blur()
}

func (f *contactForm) Active() bool { return f.active }

func (f *contactForm) SetWidth(w int) {
	f.name.Width = max(w-4, 10)
	f.email.Width = max(w-4, 10)
	f.message.SetWidth(max(w-2, 10))
}

func (f *contactForm) cycle(delta int) tea.Cmd {
	f.focus = ((f.focus+delta)%contactFields + contactFields) % contactFields
	return f.applyFocus()
}

func (f *contactForm) applyFocus() tea.Cmd {
	f.name.Blur()
	f.email.Blur()
	f.message.Blur()
	switch f.focus {
	case fieldName:
		return f.name.Focus()
	case fieldEmail:
		return f.email.Focus()
	case fieldMessage:
		return f.message.Focus()
	}
	return nil
}

// Update routes msg to the focused field. submit is true when the user
// pressed Send.
func (f *contactForm) Update(msg tea.Msg) (submit bool, cmd tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		if submit, cmd, handled := f.navigate(km); handled {
			return submit, cmd
		}
	}

	switch f.focus {
	case fieldName:
		f.name, cmd = f.name.Update(msg)
	case fieldEmail:
		f.email, cmd = f.email.Update(msg)
	case fieldMessage:
		f.message, cmd = f.message.Update(msg)
	}
	return false, cmd
}

// navigate handles the keys that move between fields or submit.
func (f *contactForm) navigate(msg tea.KeyMsg) (submit bool, cmd tea.Cmd, handled bool) {
	switch msg.String() {
	case "tab":
		return false, f.cycle(1), true
	case "shift+tab":
		return false, f.cycle(-1), true
	case "down":
		if f.focus != fieldMessage {
			return false, f.cycle(1), true
		}
	case "up":
		if f.focus != fieldMessage {
			return false, f.cycle(-1), true
		}
	case "ctrl+s":
		return true, nil, true
	case "enter":
		switch f.focus {
		case fieldSend:
			return true, nil, true
		case fieldName, fieldEmail:
			return false, f.cycle(1), true
		}
	}
	return false, nil, false
}

// Validate checks the required fields.
func (f *contactForm) Validate() error {
	return validateIdentity(f.name.Value(), f.email.Value())
}

func validateIdentity(name, email string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return errMissingIdentity
	}
	if !strings.Contains(email, "@") {
		return errInvalidEmail
	}
	return nil
}

// Mailto builds the message for to.
func (f *contactForm) Mailto(to string) string {
	name := strings.TrimSpace(f.name.Value())
	body := fmt.Sprintf("Name: %s\nEmail: %s\nMessage: %s",
		name, strings.TrimSpace(f.email.Value()), strings.TrimSpace(f.message.Value()))
	return launch.Mailto(to, "Message from "+name, body)
}

// Reset clears every field.
func (f *contactForm) Reset() {
	f.name.Reset()
	f.email.Reset()
	f.message.Reset()
	f.focus = fieldName
}

func (f *contactForm) View(t StyleTheme, width int) string {
	label := func(text string, idx int) string {
		if f.active && f.focus == idx {
			return t.SelectedStyle().Render("▸ " + text)
		}
		return t.MutedStyle().Render("  " + text)
	}
	field := func(view string, idx int) string {
		style := t.BorderStyle()
		if f.active && f.focus == idx {
			style = style.BorderForeground(t.Accent)
		}
		return style.Width(max(width-2, 1)).Render(view)
	}

	button := t.MutedStyle().Padding(0, 2).Render("Send Message")
	if f.active && f.focus == fieldSend {
		button = t.ButtonStyle().Render("Send Message")
	}

	var b strings.Builder
	b.WriteString(label("Name", fieldName) + "\n" + field(f.name.View(), fieldName) + "\n")
	b.WriteString(label("Email", fieldEmail) + "\n" + field(f.email.View(), fieldEmail) + "\n")
	b.WriteString(label("Message", fieldMessage) + "\n" + field(f.message.View(), fieldMessage) + "\n\n")
	b.WriteString(button)
	if !f.active {
		b.WriteString("  " + t.MutedStyle().Render("press i to write"))
	} else {
		b.WriteString("  " + t.MutedStyle().Render("tab: next field · ctrl+s: send · esc: done"))
	}
	return b.String()
}

// contactSections builds the contact page.
func (m Model) contactSections() []section {
	c := m.catalog.Contact
	w := m.contentWidth()
	t := m.theme

	secs := []section{{key: "hero", hero: true, body: m.heroBlock(
		"Get in touch",
		"Let's Start a Conversation",
		"Questions about coaching, courses or speaking? Send a note and expect a reply within one business day.",
		"", w)}}

	details := []struct{ label, value, hint string }{
		{"Email", c.Email, "e"},
		{"Phone", c.Phone, "p"},
		{"WhatsApp", c.WhatsApp, "w"},
		{"Location", c.Location, ""},
	}
	for i, d := range details {
		if d.value == "" {
			continue
		}
		body := t.SelectedStyle().Render(d.label) + "\n" + t.TextStyle().Render(d.value)
		if d.hint != "" {
			body += "  " + t.MutedStyle().Render("("+d.hint+")")
		}
		secs = append(secs, section{key: "detail-" + strings.ToLower(d.label), index: i, body: card(t, body, w, false)})
	}

	form := sectionHeading(t, "Send a message", "Write to "+m.catalog.Founder, w) + "\n\n" +
		m.contact.View(t, w)
	secs = append(secs, section{key: "form", body: form})
	return secs
}
