package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alignedempire/aligned/internal/filter"
)

func postIDs(ps []Post) []int {
	out := make([]int, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestDefaultCatalogIsValid(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "The Aligned Empire", c.Brand)
	assert.Len(t, c.Posts, 6)
	assert.Len(t, c.Courses, 3)
	assert.Len(t, c.Testimonials, 8)
	assert.Len(t, c.Coaching.Tiers, 3)
	assert.NotEmpty(t, c.Contact.CalendarURL)
	assert.Equal(t, "hello@monicachetalaine.com", c.Contact.Email)
}

func TestDefaultCatalogFiltering(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	tests := []struct {
		name     string
		category string
		term     string
		want     []int
	}{
		{"everything", filter.All, "", []int{1, 2, 3, 4, 5, 6}},
		{"strategy category", CategoryStrategy, "", []int{2, 4}},
		{"burnout in a title", filter.All, "burnout", []int{3}},
		{"search is case-insensitive", filter.All, "SCARCITY", []int{6}},
		{"category and term", CategoryIdentity, "yin", []int{5}},
		{"no match", CategoryStrategy, "burnout", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filter.Apply(c.Posts, tt.category, tt.term)
			assert.Equal(t, tt.want, postIDs(got))
		})
	}
}

func TestSelectingCategoryClearsSearch(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	s := filter.NewState(c.Posts)
	s.SetTerm("scarcity")
	require.Equal(t, []int{6}, postIDs(s.Result()))

	s.SelectCategory(CategoryStrategy)
	assert.Empty(t, s.Term())
	assert.Equal(t, []int{2, 4}, postIDs(s.Result()))
}

func TestFeaturedPost(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	f := c.FeaturedPost()
	require.NotNil(t, f)
	assert.Equal(t, 1, f.ID)

	c.Posts[0].Featured = false
	assert.Equal(t, 1, c.FeaturedPost().ID, "falls back to the first post")

	empty := &Catalog{}
	assert.Nil(t, empty.FeaturedPost())
}

func TestGridPostsExcludesFeatured(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	featured := c.FeaturedPost()
	grid := GridPosts(filter.Apply(c.Posts, filter.All, ""), featured)
	assert.Equal(t, []int{2, 3, 4, 5, 6}, postIDs(grid))

	grid = GridPosts(filter.Apply(c.Posts, CategoryIdentity, ""), featured)
	assert.Equal(t, []int{5}, postIDs(grid))

	assert.Equal(t, []int{1, 2}, postIDs(GridPosts(c.Posts[:2], nil)))
	assert.NotNil(t, GridPosts(nil, featured))
}

func TestValidate(t *testing.T) {
	base := func() *Catalog {
		return &Catalog{
			Posts: []Post{
				{ID: 1, Category: CategoryMindset, Title: "a"},
				{ID: 2, Category: CategoryStrategy, Title: "b"},
			},
			Coaching: Coaching{
				Tiers:    []Tier{{Name: "Starter"}, {Name: "Premium"}},
				Features: []Feature{{Label: "Sessions", Values: []string{"4/mo", "6/mo"}}},
			},
			Contact: Contact{Email: "hello@example.com"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Catalog)
		errMsg string
	}{
		{"valid", func(*Catalog) {}, ""},
		{"duplicate id", func(c *Catalog) { c.Posts[1].ID = 1 }, "duplicate post id 1"},
		{"unknown category", func(c *Catalog) { c.Posts[0].Category = "Podcasts" }, `unknown category "Podcasts"`},
		{"All is not a category", func(c *Catalog) { c.Posts[0].Category = filter.All }, "unknown category"},
		{"missing title", func(c *Catalog) { c.Posts[1].Title = "" }, "post 2 has no title"},
		{"ragged feature row", func(c *Catalog) { c.Coaching.Features[0].Values = []string{"x"} }, "has 1 values for 2 tiers"},
		{"missing email", func(c *Catalog) { c.Contact.Email = "" }, "contact email is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("posts: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse catalog")
}

func TestLoadFileRoundTripsThroughMarshal(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	data, err := c.Marshal()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, c, loaded)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLookups(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	p, ok := c.PostByID(4)
	require.True(t, ok)
	assert.Equal(t, CategoryStrategy, p.Category)
	_, ok = c.PostByID(99)
	assert.False(t, ok)

	tier, ok := c.TierByName(" premium ")
	require.True(t, ok)
	assert.Equal(t, "$10k+", tier.Investment)
	_, ok = c.TierByName("gold")
	assert.False(t, ok)
}

func TestPostMarkdown(t *testing.T) {
	p := Post{Title: "Hello", Category: CategoryMindset, Date: "Oct 01, 2025", ReadTime: "3 min read", Summary: "Short."}
	md := p.Markdown()
	assert.True(t, strings.HasPrefix(md, "# Hello\n"))
	assert.Contains(t, md, "Short.")
	assert.NotContains(t, md, "Read the full article")

	p.Body = "Long body."
	p.Link = "https://example.com/hello"
	md = p.Markdown()
	assert.Contains(t, md, "Long body.")
	assert.NotContains(t, md, "Short.")
	assert.Contains(t, md, "(https://example.com/hello)")
}

func TestFeatureMark(t *testing.T) {
	assert.Equal(t, "✓", FeatureMark("yes"))
	assert.Equal(t, "—", FeatureMark("No"))
	assert.Equal(t, "4/mo", FeatureMark("4/mo"))
}

func TestAllMatchesFilterSentinel(t *testing.T) {
	assert.Equal(t, filter.All, All)
	require.NotEmpty(t, Categories)
	assert.Equal(t, All, Categories[0])

	cat, err := Default()
	require.NoError(t, err)
	assert.Len(t, filter.Apply(cat.Posts, All, ""), len(cat.Posts))
}
