// Package content holds the brand's static catalog: blog posts, courses,
// testimonials, coaching tiers and contact details.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alignedempire/aligned/internal/filter"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Blog categories. All is the "no filter" choice on top of these.
const (
	All              = filter.All
	CategoryIdentity = "Identity"
	CategoryStrategy = "Strategy"
	CategoryMindset  = "Mindset"
)

// Categories lists the blog categories in display order, All first.
var Categories = []string{All, CategoryIdentity, CategoryStrategy, CategoryMindset}

// ErrInvalidCatalog is wrapped by every Validate failure.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Post is a blog article.
type Post struct {
	ID       int    `yaml:"id" json:"id"`
	Category string `yaml:"category" json:"category"`
	Title    string `yaml:"title" json:"title"`
	Summary  string `yaml:"summary" json:"summary"`
	Body     string `yaml:"body,omitempty" json:"body,omitempty"`
	Link     string `yaml:"link" json:"link"`
	Featured bool   `yaml:"featured,omitempty" json:"featured,omitempty"`
	ReadTime string `yaml:"read_time" json:"read_time"`
	Date     string `yaml:"date" json:"date"`
}

// ItemCategory implements filter.Item.
func (p Post) ItemCategory() string { return p.Category }

// SearchFields implements filter.Item. Search looks at title and summary.
func (p Post) SearchFields() []string { return []string{p.Title, p.Summary} }

// Course is a self-study program.
type Course struct {
	ID       int    `yaml:"id" json:"id"`
	Title    string `yaml:"title" json:"title"`
	Tagline  string `yaml:"tagline" json:"tagline"`
	Modules  int    `yaml:"modules" json:"modules"`
	Duration string `yaml:"duration" json:"duration"`
	Price    string `yaml:"price" json:"price"`
	Href     string `yaml:"href" json:"href"`
}

// Testimonial is a client quote with the result it credits.
type Testimonial struct {
	Quote  string `yaml:"quote" json:"quote"`
	Name   string `yaml:"name" json:"name"`
	Title  string `yaml:"title" json:"title"`
	Result string `yaml:"result" json:"result"`
}

// Pillar is a titled blurb used for coaching pillars and core values.
type Pillar struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// Tier is a coaching package.
type Tier struct {
	Name       string `yaml:"name" json:"name"`
	Investment string `yaml:"investment" json:"investment"`
}

// Feature is one row of the tier comparison table. Values line up with
// Coaching.Tiers; "yes" and "no" render as check marks.
type Feature struct {
	Label  string   `yaml:"label" json:"label"`
	Values []string `yaml:"values" json:"values"`
}

// Coaching describes the 1:1 program.
type Coaching struct {
	Pillars  []Pillar  `yaml:"pillars" json:"pillars"`
	Tiers    []Tier    `yaml:"tiers" json:"tiers"`
	Features []Feature `yaml:"features" json:"features"`
}

// Hero is the landing banner.
type Hero struct {
	Eyebrow  string `yaml:"eyebrow" json:"eyebrow"`
	Headline string `yaml:"headline" json:"headline"`
	Body     string `yaml:"body" json:"body"`
	CTA      string `yaml:"cta" json:"cta"`
}

// About is the founder story. Story is markdown.
type About struct {
	Headline string   `yaml:"headline" json:"headline"`
	Intro    string   `yaml:"intro" json:"intro"`
	Story    string   `yaml:"story" json:"story"`
	Values   []Pillar `yaml:"values" json:"values"`
}

// Contact holds the reachable addresses.
type Contact struct {
	Email        string `yaml:"email" json:"email"`
	BookingEmail string `yaml:"booking_email" json:"booking_email"`
	Phone        string `yaml:"phone" json:"phone"`
	WhatsApp     string `yaml:"whatsapp" json:"whatsapp"`
	Location     string `yaml:"location" json:"location"`
	CalendarURL  string `yaml:"calendar_url" json:"calendar_url"`
}

// Catalog is everything the site renders. It is not modified after loading.
type Catalog struct {
	Brand        string        `yaml:"brand" json:"brand"`
	Founder      string        `yaml:"founder" json:"founder"`
	Hero         Hero          `yaml:"hero" json:"hero"`
	About        About         `yaml:"about" json:"about"`
	Posts        []Post        `yaml:"posts" json:"posts"`
	Courses      []Course      `yaml:"courses" json:"courses"`
	Testimonials []Testimonial `yaml:"testimonials" json:"testimonials"`
	Coaching     Coaching      `yaml:"coaching" json:"coaching"`
	Contact      Contact       `yaml:"contact" json:"contact"`
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadFile reads a YAML catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Marshal encodes the catalog as YAML.
func (c *Catalog) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks the structural rules the UI relies on.
func (c *Catalog) Validate() error {
	seen := make(map[int]bool, len(c.Posts))
	for _, p := range c.Posts {
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate post id %d", ErrInvalidCatalog, p.ID)
		}
		seen[p.ID] = true
		if !IsCategory(p.Category) {
			return fmt.Errorf("%w: post %d has unknown category %q", ErrInvalidCatalog, p.ID, p.Category)
		}
		if p.Title == "" {
			return fmt.Errorf("%w: post %d has no title", ErrInvalidCatalog, p.ID)
		}
	}

	for _, f := range c.Coaching.Features {
		if len(f.Values) != len(c.Coaching.Tiers) {
			return fmt.Errorf("%w: feature %q has %d values for %d tiers",
				ErrInvalidCatalog, f.Label, len(f.Values), len(c.Coaching.Tiers))
		}
	}

	if c.Contact.Email == "" {
		return fmt.Errorf("%w: contact email is required", ErrInvalidCatalog)
	}
	return nil
}

// IsCategory reports whether name is one of the fixed blog categories.
// filter.All is not a category.
func IsCategory(name string) bool {
	switch name {
	case CategoryIdentity, CategoryStrategy, CategoryMindset:
		return true
	}
	return false
}

// FeaturedPost returns the first post marked featured, falling back to the
// first post. It returns nil for an empty catalog.
func (c *Catalog) FeaturedPost() *Post {
	for i := range c.Posts {
		if c.Posts[i].Featured {
			return &c.Posts[i]
		}
	}
	if len(c.Posts) > 0 {
		return &c.Posts[0]
	}
	return nil
}

// PostByID looks up a post.
func (c *Catalog) PostByID(id int) (Post, bool) {
	for _, p := range c.Posts {
		if p.ID == id {
			return p, true
		}
	}
	return Post{}, false
}

// TierByName finds a coaching tier, ignoring case.
func (c *Catalog) TierByName(name string) (Tier, bool) {
	for _, t := range c.Coaching.Tiers {
		if equalFold(t.Name, name) {
			return t, true
		}
	}
	return Tier{}, false
}

// GridPosts drops the featured post from a filtered list. Order is kept.
func GridPosts(filtered []Post, featured *Post) []Post {
	out := make([]Post, 0, len(filtered))
	for _, p := range filtered {
		if featured != nil && p.ID == featured.ID {
			continue
		}
		out = append(out, p)
	}
	return out
}
