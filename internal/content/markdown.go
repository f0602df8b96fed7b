package content

import (
	"fmt"
	"strings"
)

// Markdown renders a post as a markdown document for the reader view. The
// body falls back to the summary when the catalog carries no full text.
func (p Post) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	fmt.Fprintf(&b, "*%s · %s · %s*\n\n", p.Category, p.Date, p.ReadTime)
	if p.Body != "" {
		b.WriteString(p.Body)
	} else {
		b.WriteString(p.Summary)
	}
	if p.Link != "" {
		fmt.Fprintf(&b, "\n\n[Read the full article](%s)\n", p.Link)
	}
	return b.String()
}

// FeatureMark turns "yes"/"no" feature values into marks.
func FeatureMark(v string) string {
	switch strings.ToLower(v) {
	case "yes":
		return "✓"
	case "no":
		return "—"
	}
	return v
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
