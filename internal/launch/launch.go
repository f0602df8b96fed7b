// Package launch hands URLs and text to the desktop: the browser, the mail
// client and the clipboard.
package launch

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

// ErrEmpty is returned when there is nothing to open or copy.
var ErrEmpty = errors.New("nothing to launch")

// Opener opens a URL with whatever the desktop registers for it.
type Opener interface {
	Open(url string) error
}

// SystemOpener opens URLs with the platform's launcher.
type SystemOpener struct {
	// GOOS overrides runtime.GOOS; empty means the running platform.
	GOOS string
	// start runs the launcher. nil means exec.Command(...).Start().
	start func(name string, args ...string) error
}

// Open starts the launcher without waiting for it so the terminal stays
// responsive.
func (o SystemOpener) Open(target string) error {
	if target == "" {
		return fmt.Errorf("cannot open URL: %w", ErrEmpty)
	}

	name, args, err := launcherFor(o.goos(), target)
	if err != nil {
		return err
	}

	start := o.start
	if start == nil {
		start = func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		}
	}
	if err := start(name, args...); err != nil {
		return fmt.Errorf("failed to open %s: %w", target, err)
	}
	return nil
}

func (o SystemOpener) goos() string {
	if o.GOOS != "" {
		return o.GOOS
	}
	return runtime.GOOS
}

func launcherFor(goos, target string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{target}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{target}, nil
	case "windows":
		return "cmd", []string{"/c", "start", "", target}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

// Mailto builds a mailto: URL. Subject and body are percent-encoded with
// spaces as %20, which every mail client understands.
func Mailto(to, subject, body string) string {
	var params []string
	if subject != "" {
		params = append(params, "subject="+escape(subject))
	}
	if body != "" {
		params = append(params, "body="+escape(body))
	}

	u := "mailto:" + to
	if len(params) > 0 {
		u += "?" + strings.Join(params, "&")
	}
	return u
}

// WhatsAppURL builds a wa.me chat link. Everything but digits is dropped
// from phone.
func WhatsAppURL(phone, text string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	u := "https://wa.me/" + digits.String()
	if text != "" {
		u += "?text=" + escape(text)
	}
	return u
}

// TelURL builds a tel: link from a display phone number.
func TelURL(phone string) string {
	return "tel:" + strings.ReplaceAll(phone, " ", "")
}

func escape(s string) string {
	// QueryEscape already turned literal '+' into %2B.
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// CopyToClipboard puts text on the system clipboard.
func CopyToClipboard(text string) error {
	if text == "" {
		return fmt.Errorf("cannot copy to clipboard: %w", ErrEmpty)
	}
	if clipboard.Unsupported {
		return errors.New("no clipboard available (install xclip, xsel, or wl-clipboard)")
	}
	if err := writeClipboard(text); err != nil {
		return fmt.Errorf("failed to write to clipboard: %w", err)
	}
	return nil
}
