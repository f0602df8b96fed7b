package filter

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type post struct {
	ID       int
	Category string
	Title    string
	Summary  string
}

func (p post) ItemCategory() string   { return p.Category }
func (p post) SearchFields() []string { return []string{p.Title, p.Summary} }

func samplePosts() []post {
	return []post{
		{1, "Identity", "The Subtle Shift from Strategy to Soul-Led Success", "Three questions to align your business with your identity."},
		{2, "Strategy", "Why Your Strategy Isn't Working", "A simple, 4-step framework for profitable execution."},
		{3, "Mindset", "Beyond Burnout", "Build sustainable high performance without BURNOUT."},
		{4, "Strategy", "Automate Your Enrollment", "Evergreen systems that bring ideal leads to you."},
		{5, "Identity", "Balancing the Yin and Yang", "Feminine intuition with masculine structure."},
		{6, "Mindset", "Releasing the Scarcity Loop", "Shift your financial identity and attract abundance."},
	}
}

func ids(ps []post) []int {
	out := make([]int, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestApplyIdentity(t *testing.T) {
	items := samplePosts()
	got := Apply(items, All, "")
	if diff := cmp.Diff(items, got); diff != "" {
		t.Errorf("All with empty term must return items unchanged (-want +got):\n%s", diff)
	}
}

func TestApplyCategory(t *testing.T) {
	items := samplePosts()
	for _, cat := range []string{"Identity", "Strategy", "Mindset"} {
		t.Run(cat, func(t *testing.T) {
			got := Apply(items, cat, "")
			for _, p := range got {
				assert.Equal(t, cat, p.Category)
			}
			for _, p := range items {
				if p.Category == cat {
					assert.Contains(t, got, p, "no matching item may be excluded")
				}
			}
		})
	}

	assert.Equal(t, []int{2, 4}, ids(Apply(items, "Strategy", "")))
}

func TestApplySearchIsCaseInsensitiveOverAllFields(t *testing.T) {
	items := samplePosts()

	assert.Equal(t, []int{3}, ids(Apply(items, All, "burnout")))
	assert.Equal(t, []int{3}, ids(Apply(items, All, "BurnOut")))
	// "identity" appears in the summary of 1 and 6 only.
	assert.Equal(t, []int{1, 6}, ids(Apply(items, All, "identity")))
	// title match
	assert.Equal(t, []int{5}, ids(Apply(items, All, "yin")))

	for _, term := range []string{"strategy", "you", "loop"} {
		for _, p := range Apply(items, All, term) {
			hit := strings.Contains(strings.ToLower(p.Title), term) ||
				strings.Contains(strings.ToLower(p.Summary), term)
			assert.True(t, hit, "post %d does not contain %q", p.ID, term)
		}
	}
}

func TestApplyCategoryAndTermAreConjunctive(t *testing.T) {
	items := samplePosts()
	assert.Equal(t, []int{6}, ids(Apply(items, "Mindset", "identity")))
	assert.Empty(t, Apply(items, "Strategy", "burnout"))
}

func TestApplyCategoryOnlyNarrows(t *testing.T) {
	items := samplePosts()
	for _, term := range []string{"", "your", "s", "zzz"} {
		wide := Apply(items, All, term)
		for _, cat := range []string{"Identity", "Strategy", "Mindset", "Unknown"} {
			for _, p := range Apply(items, cat, term) {
				assert.Contains(t, wide, p)
			}
		}
	}
}

func TestApplyIsIdempotentAndPure(t *testing.T) {
	items := samplePosts()
	before := append([]post(nil), items...)

	once := Apply(items, All, "your")
	twice := Apply(once, All, "your")

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("filtering twice changed the result (-once +twice):\n%s", diff)
	}
	if diff := cmp.Diff(before, items); diff != "" {
		t.Errorf("Apply mutated its input:\n%s", diff)
	}
}

func TestApplyEdgeCases(t *testing.T) {
	got := Apply([]post{}, "Strategy", "anything")
	require.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, Apply[post](nil, All, ""))
	assert.Empty(t, Apply(samplePosts(), "strategy", ""), "category match is case-sensitive")
	assert.Empty(t, Apply(samplePosts(), "Podcasts", ""), "unknown category matches nothing")
}

func TestStateSelectCategoryResetsTerm(t *testing.T) {
	s := NewState(samplePosts())
	require.Equal(t, All, s.Category())

	s.SetTerm("scarcity")
	require.Equal(t, []int{6}, ids(s.Result()))

	s.SelectCategory("Strategy")
	assert.Equal(t, "", s.Term())
	assert.Equal(t, []int{2, 4}, ids(s.Result()))
}

func TestStateSetTermKeepsCategory(t *testing.T) {
	s := NewState(samplePosts())
	s.SelectCategory("Identity")
	s.SetTerm("yin")

	assert.Equal(t, "Identity", s.Category())
	assert.Equal(t, []int{5}, ids(s.Result()))
}

func TestStateResultMemoized(t *testing.T) {
	s := NewState(samplePosts())
	s.SetTerm("your")
	a := s.Result()
	b := s.Result()
	require.NotEmpty(t, a)
	assert.Same(t, &a[0], &b[0], "same inputs reuse the cached slice")

	s.SetTerm("you")
	c := s.Result()
	assert.Equal(t, ids(Apply(samplePosts(), All, "you")), ids(c))
}

func TestStateEmpty(t *testing.T) {
	s := NewState([]post{})
	assert.True(t, s.Empty())

	s = NewState(samplePosts())
	s.SetTerm("no such words")
	assert.True(t, s.Empty())
}

func TestEmptyMessage(t *testing.T) {
	assert.Equal(t, "No articles found in the 'Mindset' category.", EmptyMessage("Mindset"))
	assert.Equal(t, "No articles match your search criteria.", EmptyMessage(All))
	assert.Equal(t, "No articles match your search criteria.", EmptyMessage(""))
}
