package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// yankText resolves a yank target to the text to copy. "link" is the
// current selection's URL, or the email address on the contact page.
// "email" and "phone" come from the contact details.
func (m Model) yankText(target string) (string, error) {
	switch target {
	case "", "link":
		if m.page == PageContact && m.reader == nil {
			return m.catalog.Contact.Email, nil
		}
		link, ok := m.selectionLink()
		if !ok {
			return "", fmt.Errorf("nothing to copy on the %s page", m.page)
		}
		return link, nil
	case "email":
		return m.catalog.Contact.Email, nil
	case "phone":
		return m.catalog.Contact.Phone, nil
	}
	return "", fmt.Errorf("unknown yank target '%s' (available: link, email, phone)", target)
}

// yank copies target to the clipboard and reports the result.
func (m *Model) yank(target string) tea.Cmd {
	text, err := m.yankText(target)
	if err != nil {
		return m.setStatus(capitalize(err.Error()), true)
	}
	switch {
	case (target == "" || target == "link") && m.page == PageContact && m.reader == nil:
		target = "email"
	case target == "":
		target = "link"
	}
	return m.copyText(text, target)
}

func (m *Model) copyText(text, what string) tea.Cmd {
	if err := m.copyFn(text); err != nil {
		m.logger.Warn("clipboard write failed", zap.String("what", what), zap.Error(err))
		return m.setStatus(fmt.Sprintf("Failed to copy: %v", err), true)
	}
	return m.setStatus(fmt.Sprintf("Copied %s: %s", what, truncate(text, 48)), false)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
