package content

import (
	"slices"
	"sort"
	"strings"
	"time"
)

// Filter returns the entries for which keep reports true.
func Filter(entries []*Entry, keep func(*Entry) bool) []*Entry {
	var out []*Entry
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// FilterSite keeps entries published to site.
func FilterSite(entries []*Entry, site string) []*Entry {
	return Filter(entries, func(e *Entry) bool { return VisibleTo(e, site) })
}

// Published drops drafts.
func Published(entries []*Entry) []*Entry {
	return Filter(entries, func(e *Entry) bool { return !e.Doc.Bool("draft") })
}

// Featured keeps entries marked `featured: true`.
func Featured(entries []*Entry) []*Entry {
	return Filter(entries, func(e *Entry) bool { return e.Doc.Bool("featured") })
}

// ByTag keeps entries tagged with tag, compared case-insensitively.
func ByTag(entries []*Entry, tag string) []*Entry {
	return Filter(entries, func(e *Entry) bool {
		return slices.ContainsFunc(e.Doc.Strings("tags"), func(t string) bool {
			return strings.EqualFold(t, tag)
		})
	})
}

// Limit returns at most n entries; n <= 0 means no limit.
func Limit(entries []*Entry, n int) []*Entry {
	if n <= 0 || len(entries) <= n {
		return entries
	}
	return entries[:n]
}

// SortByOrder sorts by the `order` field ascending, entries without one
// last, then by title.
func SortByOrder(entries []*Entry, titleField string) []*Entry {
	out := slices.Clone(entries)
	sort.SliceStable(out, func(i, j int) bool {
		oi, iok := out[i].Doc.Number("order")
		oj, jok := out[j].Doc.Number("order")
		if iok != jok {
			return iok
		}
		if iok && oi != oj {
			return oi < oj
		}
		return strings.ToLower(out[i].Title(titleField)) < strings.ToLower(out[j].Title(titleField))
	})
	return out
}

// SortByDate sorts by dateField. Entries without a parseable date go last
// either way; ties fall back to slug.
func SortByDate(entries []*Entry, dateField string, desc bool) []*Entry {
	out := slices.Clone(entries)
	sort.SliceStable(out, func(i, j int) bool {
		di, iok := entryDate(out[i], dateField)
		dj, jok := entryDate(out[j], dateField)
		if iok != jok {
			return iok
		}
		if !iok || di.Equal(dj) {
			return out[i].Slug < out[j].Slug
		}
		if desc {
			return di.After(dj)
		}
		return di.Before(dj)
	})
	return out
}

// Upcoming returns events that have not ended by now, soonest first. An
// event without an end date ends at the close of its start day. Date-only
// values are read in now's location.
func Upcoming(entries []*Entry, now time.Time) []*Entry {
	out := Filter(entries, func(e *Entry) bool {
		end, ok := eventEnd(e, now.Location())
		return ok && !end.Before(now)
	})
	return SortByDate(out, "startDate", false)
}

// Past returns events that ended before now, most recent first.
func Past(entries []*Entry, now time.Time) []*Entry {
	out := Filter(entries, func(e *Entry) bool {
		end, ok := eventEnd(e, now.Location())
		return ok && end.Before(now)
	})
	return SortByDate(out, "startDate", true)
}

// GroupBy buckets entries by the scalar value of field. Keys come back in
// first-seen order; entries without the field are grouped under "".
func GroupBy(entries []*Entry, field string) ([]string, map[string][]*Entry) {
	var keys []string
	groups := make(map[string][]*Entry)
	for _, e := range entries {
		k := e.Doc.String(field)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], e)
	}
	return keys, groups
}

// Related returns up to n other entries sharing the most tags with e.
// Entries with no shared tags are excluded.
func Related(e *Entry, entries []*Entry, n int, titleField string) []*Entry {
	tags := make(map[string]bool)
	for _, t := range e.Doc.Strings("tags") {
		tags[strings.ToLower(t)] = true
	}
	type scored struct {
		entry *Entry
		score int
	}
	var candidates []scored
	for _, other := range entries {
		if other.Slug == e.Slug && other.Collection == e.Collection {
			continue
		}
		score := 0
		for _, t := range other.Doc.Strings("tags") {
			if tags[strings.ToLower(t)] {
				score++
			}
		}
		if score > 0 {
			candidates = append(candidates, scored{other, score})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return strings.ToLower(candidates[i].entry.Title(titleField)) < strings.ToLower(candidates[j].entry.Title(titleField))
	})
	out := make([]*Entry, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.entry)
	}
	return Limit(out, n)
}

func entryDate(e *Entry, field string) (time.Time, bool) {
	t, ok, err := e.Doc.Date(field)
	if err != nil {
		return time.Time{}, false
	}
	return t, ok
}

func eventEnd(e *Entry, loc *time.Location) (time.Time, bool) {
	if end, ok := entryDate(e, "endDate"); ok {
		return endOfDayIfDate(e, "endDate", end, loc), true
	}
	start, ok := entryDate(e, "startDate")
	if !ok {
		return time.Time{}, false
	}
	return endOfDayIfDate(e, "startDate", start, loc), true
}

// endOfDayIfDate moves a date-only value to the last instant of that day
// in loc.
func endOfDayIfDate(e *Entry, field string, t time.Time, loc *time.Location) time.Time {
	if len(e.Doc.String(field)) == len("2006-01-02") {
		return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), loc)
	}
	return t
}
