package ui

import (
	"strconv"
	"strings"
)

// PageID identifies one screen of the site.
type PageID int

const (
	PageHome PageID = iota
	PageAbout
	PageBlog
	PageCoaching
	PageCourses
	PageTestimonials
	PageContact
	PageBook
)

// pageOrder is the tab order. Number keys 1-8 follow it.
var pageOrder = []PageID{
	PageHome,
	PageAbout,
	PageBlog,
	PageCoaching,
	PageCourses,
	PageTestimonials,
	PageContact,
	PageBook,
}

var pageNames = map[PageID]string{
	PageHome:         "home",
	PageAbout:        "about",
	PageBlog:         "blog",
	PageCoaching:     "coaching",
	PageCourses:      "courses",
	PageTestimonials: "testimonials",
	PageContact:      "contact",
	PageBook:         "book",
}

// String returns the page's command name.
func (p PageID) String() string {
	if name, ok := pageNames[p]; ok {
		return name
	}
	return "page(" + strconv.Itoa(int(p)) + ")"
}

// Title is the tab label.
func (p PageID) Title() string {
	switch p {
	case PageTestimonials:
		return "Stories"
	case PageBook:
		return "Book a Call"
	}
	s := p.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// Next returns the following page, wrapping around.
func (p PageID) Next() PageID {
	return pageOrder[(int(p)+1)%len(pageOrder)]
}

// Prev returns the preceding page, wrapping around.
func (p PageID) Prev() PageID {
	return pageOrder[(int(p)-1+len(pageOrder))%len(pageOrder)]
}

// ParsePage accepts a page name, a unique name prefix or a 1-based number.
func ParsePage(arg string) (PageID, bool) {
	arg = strings.ToLower(strings.TrimSpace(arg))
	if arg == "" {
		return PageHome, false
	}
	if n, err := strconv.Atoi(arg); err == nil {
		if n >= 1 && n <= len(pageOrder) {
			return pageOrder[n-1], true
		}
		return PageHome, false
	}

	var match []PageID
	for _, p := range pageOrder {
		name := pageNames[p]
		if name == arg {
			return p, true
		}
		if strings.HasPrefix(name, arg) {
			match = append(match, p)
		}
	}
	// "stories" is the tab label for testimonials
	if strings.HasPrefix("stories", arg) && len(match) == 0 {
		return PageTestimonials, true
	}
	if len(match) == 1 {
		return match[0], true
	}
	return PageHome, false
}

// pageNameList is used in error messages.
func pageNameList() string {
	names := make([]string, len(pageOrder))
	for i, p := range pageOrder {
		names[i] = pageNames[p]
	}
	return strings.Join(names, ", ")
}
