package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/alignedempire/aligned/internal/content"
	"github.com/alignedempire/aligned/internal/launch"
)

// Platforms offered for the discovery call.
var platforms = []string{"Zoom", "Google Meet", "Phone", "WhatsApp"}

// bookingRequest holds the form values. huh writes through pointers, so it
// lives on the heap and survives Model copies.
type bookingRequest struct {
	Name     string
	Email    string
	When     string
	Platform string
	Tier     string
	Message  string
}

func (r bookingRequest) Validate() error {
	return validateIdentity(r.Name, r.Email)
}

func (r bookingRequest) Subject() string {
	return "Booking request from " + strings.TrimSpace(r.Name)
}

func (r bookingRequest) Body() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", strings.TrimSpace(r.Name))
	fmt.Fprintf(&b, "Email: %s\n", strings.TrimSpace(r.Email))
	fmt.Fprintf(&b, "Preferred date/time: %s\n", strings.TrimSpace(r.When))
	fmt.Fprintf(&b, "Preferred platform: %s\n", r.Platform)
	if r.Tier != "" {
		fmt.Fprintf(&b, "Coaching tier: %s\n", r.Tier)
	}
	fmt.Fprintf(&b, "Message: %s", strings.TrimSpace(r.Message))
	return b.String()
}

// Mailto builds the request email for to.
func (r bookingRequest) Mailto(to string) string {
	return launch.Mailto(to, r.Subject(), r.Body())
}

// bookingForm wraps the huh form for a discovery call request.
type bookingForm struct {
	req  *bookingRequest
	form *huh.Form
}

func newBookingForm(tiers []content.Tier, tier string, theme StyleTheme, width int) *bookingForm {
	req := &bookingRequest{Platform: platforms[0], Tier: tier}

	tierOpts := []huh.Option[string]{huh.NewOption("Not sure yet", "")}
	for _, t := range tiers {
		tierOpts = append(tierOpts, huh.NewOption(fmt.Sprintf("%s (%s)", t.Name, t.Investment), t.Name))
	}

	keymap := huh.NewDefaultKeyMap()
	keymap.Quit = key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel"))

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Your name").
				Value(&req.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errMissingIdentity
					}
					return nil
				}),
			huh.NewInput().
				Title("Email").
				Placeholder("you@company.com").
				Value(&req.Email).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errMissingIdentity
					}
					if !strings.Contains(s, "@") {
						return errInvalidEmail
					}
					return nil
				}),
			huh.NewInput().
				Title("Preferred date/time").
				Placeholder("optional").
				Value(&req.When),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Preferred platform").
				Options(huh.NewOptions(platforms...)...).
				Value(&req.Platform),
			huh.NewSelect[string]().
				Title("Coaching tier").
				Options(tierOpts...).
				Value(&req.Tier),
			huh.NewText().
				Title("Message").
				Placeholder("What would you like to focus on?").
				CharLimit(2000).
				Value(&req.Message),
		),
	).
		WithTheme(theme.HuhTheme()).
		WithKeyMap(keymap).
		WithWidth(width).
		WithShowHelp(true)

	return &bookingForm{req: req, form: form}
}

func (b *bookingForm) Init() tea.Cmd {
	return b.form.Init()
}

// Update forwards msg to the form.
func (b *bookingForm) Update(msg tea.Msg) tea.Cmd {
	model, cmd := b.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		b.form = f
	}
	return cmd
}

func (b *bookingForm) Done() bool {
	return b.form.State == huh.StateCompleted
}

func (b *bookingForm) Aborted() bool {
	return b.form.State == huh.StateAborted
}

func (b *bookingForm) View() string {
	return b.form.View()
}

// bookSections builds the booking page. While the form is open it replaces
// everything below the hero.
func (m Model) bookSections() []section {
	c := m.catalog
	w := m.contentWidth()
	t := m.theme

	secs := []section{{key: "hero", hero: true, body: m.heroBlock(
		"Discovery session",
		"Book Your Free Discovery Call",
		"A 30-minute conversation to uncover what is holding your business back and map the first aligned step.",
		"", w)}}

	if m.booking != nil {
		secs = append(secs, section{key: "booking-form", body: card(t, m.booking.View(), w, true)})
		return secs
	}

	steps := []content.Pillar{
		{Title: "1. Request", Description: "Tell me a little about you and when you are free."},
		{Title: "2. Confirm", Description: "You will receive a calendar invite within one business day."},
		{Title: "3. Align", Description: "We meet, explore your goals, and decide together if coaching is the right fit."},
	}
	for i, s := range steps {
		secs = append(secs, section{key: fmt.Sprintf("step-%d", i), index: i, body: pillarCard(t, s, w)})
	}

	actions := t.ButtonStyle().Render("b  Request a call") + "   " +
		t.MutedStyle().Padding(0, 2).Render("c  Pick a time on the calendar")
	note := t.MutedStyle().Render("or email " + c.Contact.BookingEmail)
	secs = append(secs, section{key: "actions", body: centered(actions, w) + "\n\n" + centered(note, w)})
	return secs
}
