package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the global and per-page bindings. The help modal and the
// status bar both render from it.
type keyMap struct {
	NextPage key.Binding
	PrevPage key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding

	Read         key.Binding
	Open         key.Binding
	Search       key.Binding
	NextCategory key.Binding
	PrevCategory key.Binding

	Form     key.Binding
	Book     key.Binding
	Calendar key.Binding
	Email    key.Binding
	WhatsApp key.Binding
	Call     key.Binding
	Yank     key.Binding

	Theme   key.Binding
	Command key.Binding
	Help    key.Binding
	Back    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextPage: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next page")),
		PrevPage: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous page")),
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d", " "), key.WithHelp("pgdn/space", "page down")),
		Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),

		Read:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "read post")),
		Open:         key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in browser")),
		Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search posts")),
		NextCategory: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next category")),
		PrevCategory: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "previous category")),

		Form:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "write a message")),
		Book:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "book a call")),
		Calendar: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "open calendar")),
		Email:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "email")),
		WhatsApp: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "whatsapp")),
		Call:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "call")),
		Yank:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy link")),

		Theme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "cycle theme")),
		Command: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPage, k.Down, k.Up, k.Command, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextPage, k.PrevPage, k.Down, k.Up, k.PageDown, k.PageUp, k.Top, k.Bottom},
		{k.Read, k.Open, k.Search, k.NextCategory, k.PrevCategory, k.Yank},
		{k.Form, k.Book, k.Calendar, k.Email, k.WhatsApp, k.Call},
		{k.Theme, k.Command, k.Help, k.Back, k.Quit},
	}
}

// pageHelp returns the bindings worth advertising on page p.
func (k keyMap) pageHelp(p PageID) []key.Binding {
	switch p {
	case PageBlog:
		return []key.Binding{k.Down, k.Up, k.Read, k.Search, k.PrevCategory, k.NextCategory, k.Open}
	case PageContact:
		return []key.Binding{k.Form, k.Email, k.WhatsApp, k.Call, k.Yank}
	case PageBook:
		return []key.Binding{k.Book, k.Calendar}
	case PageCoaching:
		return []key.Binding{k.Down, k.Up, k.Book}
	case PageCourses:
		return []key.Binding{k.Down, k.Up, k.Open}
	}
	return []key.Binding{k.NextPage, k.Down, k.Up, k.Command, k.Help}
}

// readerHelp is shown while a post is open.
func readerHelp(k keyMap) []key.Binding {
	return []key.Binding{k.Down, k.Up, k.PageDown, k.Open, k.Yank, k.Back}
}
