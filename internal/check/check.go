// Package check validates loaded collections against the content schema,
// including references between collections.
package check

import (
	"fmt"

	"github.com/semio-community/semio-community.github.io-sub001/internal/content"
	"github.com/semio-community/semio-community.github.io-sub001/internal/schema"
)

// Finding is a schema issue located in a file.
type Finding struct {
	Path string
	schema.Issue
}

// Run validates every entry and every relation field. Relations pointing at
// a collection that was not loaded are not checked.
func Run(cols []*content.Collection, registry schema.Registry, sites []string) []Finding {
	slugs := make(map[string]map[string]bool)
	for _, c := range cols {
		if c.Missing {
			continue
		}
		set := make(map[string]bool, len(c.Entries))
		for _, e := range c.Entries {
			set[e.Slug] = true
		}
		slugs[c.Name] = set
	}

	var findings []Finding
	for _, c := range cols {
		sc, ok := registry.Lookup(c.Name)
		if !ok {
			continue
		}
		for _, e := range c.Entries {
			for _, issue := range schema.Validate(e.Doc, sc, sites) {
				findings = append(findings, Finding{Path: e.Path(), Issue: issue})
			}
			for _, f := range sc.Fields {
				if f.Widget != schema.WidgetRelation {
					continue
				}
				targets, loaded := slugs[f.Relation]
				if !loaded {
					continue
				}
				for _, ref := range e.Doc.Strings(f.Name) {
					if !targets[ref] {
						findings = append(findings, Finding{Path: e.Path(), Issue: schema.Issue{
							Field:    f.Name,
							Message:  fmt.Sprintf("no %s entry %q", f.Relation, ref),
							Severity: schema.SeverityWarning,
						}})
					}
				}
			}
		}
	}
	return findings
}

// CountErrors returns the number of error-severity findings.
func CountErrors(findings []Finding) int {
	n := 0
	for _, f := range findings {
		if f.Severity == schema.SeverityError {
			n++
		}
	}
	return n
}
