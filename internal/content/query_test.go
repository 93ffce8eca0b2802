package content

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semio-community/semio-community.github.io-sub001/internal/document"
)

func entry(t *testing.T, slug, src string) *Entry {
	t.Helper()
	doc, err := document.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return &Entry{Collection: "test", Slug: slug, Ext: ".md", Doc: doc}
}

func slugsOf(entries []*Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Slug)
	}
	return out
}

func TestFilters(t *testing.T) {
	entries := []*Entry{
		entry(t, "a", "---\ntitle: A\nfeatured: true\nsites: [semio]\ntags: [Robot]\n---\n"),
		entry(t, "b", "---\ntitle: B\ndraft: true\nsites: [semio, quori]\n---\n"),
		entry(t, "c", "---\ntitle: C\nsites: [quori]\ntags: [robot, hri]\n---\n"),
		entry(t, "d", "---\ntitle: D\n---\n"),
	}

	assert.Equal(t, []string{"a", "b"}, slugsOf(FilterSite(entries, "semio")))
	assert.Equal(t, []string{"a", "c", "d"}, slugsOf(Published(entries)))
	assert.Equal(t, []string{"a"}, slugsOf(Featured(entries)))
	assert.Equal(t, []string{"a", "c"}, slugsOf(ByTag(entries, "robot")))
	assert.Equal(t, []string{"a", "b"}, slugsOf(Limit(entries, 2)))
	assert.Len(t, Limit(entries, 0), 4)
}

func TestSortByOrder(t *testing.T) {
	entries := []*Entry{
		entry(t, "no-order-b", "---\ntitle: beta\n---\n"),
		entry(t, "second", "---\ntitle: Second\norder: 2\n---\n"),
		entry(t, "no-order-a", "---\ntitle: Alpha\n---\n"),
		entry(t, "first", "---\ntitle: Zed\norder: 1\n---\n"),
		entry(t, "also-second", "---\ntitle: Also\norder: 2\n---\n"),
	}

	got := SortByOrder(entries, "title")
	assert.Equal(t, []string{"first", "also-second", "second", "no-order-a", "no-order-b"}, slugsOf(got))
	assert.Equal(t, "no-order-b", entries[0].Slug, "input is not reordered")
}

func TestSortByDate(t *testing.T) {
	entries := []*Entry{
		entry(t, "old", "---\ndate: 2019-03-01\n---\n"),
		entry(t, "undated", "---\ntitle: x\n---\n"),
		entry(t, "new", "---\ndate: 2024-01-15\n---\n"),
		entry(t, "mid", "---\ndate: 2021-07-04T10:00:00Z\n---\n"),
	}

	assert.Equal(t, []string{"new", "mid", "old", "undated"}, slugsOf(SortByDate(entries, "date", true)))
	assert.Equal(t, []string{"old", "mid", "new", "undated"}, slugsOf(SortByDate(entries, "date", false)))
}

func TestUpcomingAndPast(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	entries := []*Entry{
		entry(t, "last-year", "---\nstartDate: 2023-06-10\n---\n"),
		entry(t, "today", "---\nstartDate: 2024-06-10\n---\n"),
		entry(t, "running", "---\nstartDate: 2024-06-01\nendDate: 2024-06-12\n---\n"),
		entry(t, "next-month", "---\nstartDate: 2024-07-01\n---\n"),
		entry(t, "this-morning", "---\nstartDate: 2024-06-10T09:00:00Z\n---\n"),
		entry(t, "tbd", "---\ntitle: TBD\n---\n"),
	}

	assert.Equal(t, []string{"running", "today", "next-month"}, slugsOf(Upcoming(entries, now)))
	assert.Equal(t, []string{"this-morning", "last-year"}, slugsOf(Past(entries, now)))
}

func TestUpcoming_DateOnlyInLocalZone(t *testing.T) {
	pacific := time.FixedZone("PDT", -7*60*60)
	// 03:00 UTC on the 11th, still the evening of the 10th locally
	now := time.Date(2024, 6, 10, 20, 0, 0, 0, pacific)
	entries := []*Entry{
		entry(t, "today", "---\nstartDate: 2024-06-10\n---\n"),
		entry(t, "yesterday", "---\nstartDate: 2024-06-09\n---\n"),
	}

	assert.Equal(t, []string{"today"}, slugsOf(Upcoming(entries, now)))
	assert.Equal(t, []string{"yesterday"}, slugsOf(Past(entries, now)))
}

func TestGroupBy(t *testing.T) {
	entries := []*Entry{
		entry(t, "a", "---\nstatus: stable\n---\n"),
		entry(t, "b", "---\nstatus: beta\n---\n"),
		entry(t, "c", "---\ntitle: none\n---\n"),
		entry(t, "d", "---\nstatus: stable\n---\n"),
	}

	keys, groups := GroupBy(entries, "status")
	assert.Equal(t, []string{"stable", "beta", ""}, keys)
	assert.Equal(t, []string{"a", "d"}, slugsOf(groups["stable"]))
	assert.Equal(t, []string{"c"}, slugsOf(groups[""]))
}

func TestRelated(t *testing.T) {
	self := entry(t, "self", "---\ntitle: Self\ntags: [robot, hri, open-source]\n---\n")
	entries := []*Entry{
		self,
		entry(t, "one", "---\ntitle: One\ntags: [robot]\n---\n"),
		entry(t, "three", "---\ntitle: Three\ntags: [Robot, HRI, open-source]\n---\n"),
		entry(t, "none", "---\ntitle: None\ntags: [kitchen]\n---\n"),
		entry(t, "two-b", "---\ntitle: Bravo\ntags: [robot, hri]\n---\n"),
		entry(t, "two-a", "---\ntitle: Alpha\ntags: [hri, open-source]\n---\n"),
	}

	assert.Equal(t, []string{"three", "two-a", "two-b", "one"}, slugsOf(Related(self, entries, 0, "title")))
	assert.Equal(t, []string{"three", "two-a"}, slugsOf(Related(self, entries, 2, "title")))

	mixed := []*Entry{
		entry(t, "upper", "---\ntitle: Bravo\ntags: [robot]\n---\n"),
		entry(t, "lower", "---\ntitle: alpha\ntags: [robot]\n---\n"),
	}
	assert.Equal(t, []string{"lower", "upper"}, slugsOf(Related(self, mixed, 0, "title")), "ties ignore case")
}
