package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/alignedempire/aligned/internal/config"
	"github.com/alignedempire/aligned/internal/content"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// fakeOpener records opened URLs instead of launching anything.
type fakeOpener struct {
	opened []string
	err    error
}

func (f *fakeOpener) Open(target string) error {
	if f.err != nil {
		return f.err
	}
	f.opened = append(f.opened, target)
	return nil
}

func (f *fakeOpener) last() string {
	if len(f.opened) == 0 {
		return ""
	}
	return f.opened[len(f.opened)-1]
}

// fakeClipboard records the last copied text.
type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) write(s string) error {
	if f.err != nil {
		return f.err
	}
	f.text = s
	return nil
}

var errNoDisplay = errors.New("no display")

// testModel creates a sized Model over the embedded catalog. Tick commands
// are never run; reveals are finished by sending revealMsg directly.
func testModel(t *testing.T, opts ...ModelOption) (Model, *fakeOpener, *fakeClipboard) {
	t.Helper()
	return testModelWithConfig(t, config.Default(), opts...)
}

func testModelWithConfig(t *testing.T, cfg *config.Config, opts ...ModelOption) (Model, *fakeOpener, *fakeClipboard) {
	t.Helper()
	return testModelSize(t, cfg, 100, 40, opts...)
}

// smallModel leaves only ten rows for the page so most sections start
// below the fold.
func smallModel(t *testing.T, cfg *config.Config) Model {
	t.Helper()
	m, _, _ := testModelSize(t, cfg, 100, 14)
	return m
}

func testModelSize(t *testing.T, cfg *config.Config, width, height int, opts ...ModelOption) (Model, *fakeOpener, *fakeClipboard) {
	t.Helper()

	cat, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default() error = %v", err)
	}
	return testModelCatalog(t, cat, cfg, width, height, opts...)
}

// testModelCatalog sizes a Model over cat.
func testModelCatalog(t *testing.T, cat *content.Catalog, cfg *config.Config, width, height int, opts ...ModelOption) (Model, *fakeOpener, *fakeClipboard) {
	t.Helper()

	opener := &fakeOpener{}
	clip := &fakeClipboard{}
	opts = append([]ModelOption{WithOpener(opener), WithClipboard(clip.write)}, opts...)

	m := NewModel(cat, cfg, opts...)
	m = send(m, tea.WindowSizeMsg{Width: width, Height: height})
	return m, opener, clip
}

// send delivers msg and returns the updated Model, dropping the command.
func send(m Model, msg tea.Msg) Model {
	updated, _ := m.Update(msg)
	return updated.(Model)
}

// sendCmd delivers msg and returns the updated Model with its command.
func sendCmd(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// revealAll finishes the entrance of every section on the current page.
func revealAll(m Model) Model {
	for _, s := range m.sections {
		m = send(m, revealMsg{page: m.page, key: s.key})
	}
	return m
}
