// Package schema describes the content collections shared by the sibling
// sites, and validates documents against them.
package schema

import (
	"errors"
	"fmt"
	"slices"
)

// Site keys in canonical order.
const (
	SiteSemio = "semio"
	SiteQuori = "quori"
	SiteVizij = "vizij"
)

// ErrUnknownSite is returned when a site key is not one of Sites().
var ErrUnknownSite = errors.New("unknown site")

var siteKeys = []string{SiteSemio, SiteQuori, SiteVizij}

// Sites returns the known site keys in canonical order.
func Sites() []string {
	return slices.Clone(siteKeys)
}

// CheckSite returns ErrUnknownSite when site is not a known site key.
func CheckSite(site string) error {
	if !slices.Contains(siteKeys, site) {
		return fmt.Errorf("%w: %q (want one of %v)", ErrUnknownSite, site, siteKeys)
	}
	return nil
}

// SiteRank orders site keys canonically; unknown keys sort after known ones.
func SiteRank(site string) int {
	if i := slices.Index(siteKeys, site); i >= 0 {
		return i
	}
	return len(siteKeys)
}

// Widget names follow the Decap CMS widget vocabulary.
type Widget string

const (
	WidgetString   Widget = "string"
	WidgetText     Widget = "text"
	WidgetMarkdown Widget = "markdown"
	WidgetBoolean  Widget = "boolean"
	WidgetNumber   Widget = "number"
	WidgetDatetime Widget = "datetime"
	WidgetSelect   Widget = "select"
	WidgetList     Widget = "list"
	WidgetObject   Widget = "object"
	WidgetImage    Widget = "image"
	WidgetRelation Widget = "relation"
)

// SortKind is the default ordering applied to a collection's entries.
type SortKind string

const (
	SortOrder    SortKind = "order"     // order ascending, then title
	SortDateDesc SortKind = "date-desc" // newest first
	SortDateAsc  SortKind = "date-asc"  // soonest first
)

// Field is one frontmatter field of a collection.
type Field struct {
	Name     string
	Label    string
	Widget   Widget
	Required bool
	Multiple bool
	Options  []string
	Default  any
	Hint     string
	// Fields holds the sub-fields of object and list widgets.
	Fields []Field
	// Overridable fields may appear in a site's `overrides` entry.
	Overridable bool
	// Relation names the target collection of a relation widget.
	Relation string
}

// Collection is a named group of documents sharing one schema.
type Collection struct {
	Name          string
	Label         string
	LabelSingular string
	// TitleField is the field used as the display title.
	TitleField string
	// DateField drives date sorting when Sort is a date sort.
	DateField string
	Extension string
	Sort      SortKind
	Fields    []Field
}

// Field returns the named field.
func (c Collection) Field(name string) (Field, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Overridable returns the fields a site may override, in schema order.
func (c Collection) Overridable() []Field {
	var out []Field
	for _, f := range c.Fields {
		if f.Overridable {
			out = append(out, f)
		}
	}
	return out
}

// Registry is an ordered set of collections.
type Registry []Collection

// Lookup returns the named collection.
func (r Registry) Lookup(name string) (Collection, bool) {
	for _, c := range r {
		if c.Name == name {
			return c, true
		}
	}
	return Collection{}, false
}

// Names returns the collection names in registry order.
func (r Registry) Names() []string {
	names := make([]string, len(r))
	for i, c := range r {
		names[i] = c.Name
	}
	return names
}

// Select returns the named collections in the order given. Unknown names are
// an error.
func (r Registry) Select(names []string) (Registry, error) {
	if len(names) == 0 {
		return r, nil
	}
	out := make(Registry, 0, len(names))
	for _, n := range names {
		c, ok := r.Lookup(n)
		if !ok {
			return nil, fmt.Errorf("unknown collection %q", n)
		}
		out = append(out, c)
	}
	return out, nil
}
