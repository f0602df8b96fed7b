package launch

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailto(t *testing.T) {
	tests := []struct {
		name    string
		to      string
		subject string
		body    string
		want    string
	}{
		{"address only", "hello@example.com", "", "", "mailto:hello@example.com"},
		{"spaces as %20", "a@b.c", "Message from Ann Lee", "", "mailto:a@b.c?subject=Message%20from%20Ann%20Lee"},
		{
			"body with newlines and reserved characters",
			"a@b.c", "Hi", "Name: A&B\nPlan = 50%+",
			"mailto:a@b.c?subject=Hi&body=Name%3A%20A%26B%0APlan%20%3D%2050%25%2B",
		},
		{"body only", "a@b.c", "", "x y", "mailto:a@b.c?body=x%20y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Mailto(tt.to, tt.subject, tt.body))
		})
	}
}

func TestMailtoDecodesBack(t *testing.T) {
	body := "Name: Ann\nEmail: ann@example.com\nMessage: ready to scale + grow?"
	u, err := url.Parse(Mailto("monica@example.com", "Booking request from Ann", body))
	require.NoError(t, err)

	assert.Equal(t, "mailto", u.Scheme)
	assert.Equal(t, "monica@example.com", u.Opaque)
	q, err := url.ParseQuery(u.RawQuery)
	require.NoError(t, err)
	assert.Equal(t, "Booking request from Ann", q.Get("subject"))
	assert.Equal(t, body, q.Get("body"))
}

func TestWhatsAppURL(t *testing.T) {
	assert.Equal(t, "https://wa.me/254792528578", WhatsAppURL("+254 792 528 578", ""))
	assert.Equal(t, "https://wa.me/254792528578?text=Hi%20Monica", WhatsAppURL("+254792528578", "Hi Monica"))
}

func TestTelURL(t *testing.T) {
	assert.Equal(t, "tel:+254792528578", TelURL("+254 792 528 578"))
}

func TestSystemOpener(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
		wantArgs []string
		wantErr  bool
	}{
		{"darwin", "open", []string{"https://x.test"}, false},
		{"linux", "xdg-open", []string{"https://x.test"}, false},
		{"windows", "cmd", []string{"/c", "start", "", "https://x.test"}, false},
		{"plan9", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			var gotName string
			var gotArgs []string
			o := SystemOpener{GOOS: tt.goos, start: func(name string, args ...string) error {
				gotName = name
				gotArgs = args
				return nil
			}}

			err := o.Open("https://x.test")
			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, gotName, "launcher must not run")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, gotName)
			assert.Equal(t, tt.wantArgs, gotArgs)
		})
	}
}

func TestSystemOpenerErrors(t *testing.T) {
	o := SystemOpener{GOOS: "linux", start: func(string, ...string) error {
		return errors.New("xdg-open: not found")
	}}
	err := o.Open("https://x.test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xdg-open: not found")

	assert.ErrorIs(t, SystemOpener{}.Open(""), ErrEmpty)
}

func TestCopyToClipboard(t *testing.T) {
	assert.ErrorIs(t, CopyToClipboard(""), ErrEmpty)

	var got string
	orig := writeClipboard
	writeClipboard = func(s string) error { got = s; return nil }
	t.Cleanup(func() { writeClipboard = orig })

	err := CopyToClipboard("https://monicachetalaine.com/blog/scarcity-loop")
	if err != nil {
		// Headless CI without xclip reports the clipboard as unsupported.
		t.Skipf("clipboard unavailable: %v", err)
	}
	assert.Equal(t, "https://monicachetalaine.com/blog/scarcity-loop", got)
}
