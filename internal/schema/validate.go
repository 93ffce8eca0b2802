package schema

import (
	"fmt"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/semio-community/semio-community.github.io-sub001/internal/document"
)

// Severity of a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single validation finding.
type Issue struct {
	Field    string
	Message  string
	Severity Severity
}

func (i Issue) String() string {
	if i.Field == "" {
		return fmt.Sprintf("%s: %s", i.Severity, i.Message)
	}
	return fmt.Sprintf("%s: %s: %s", i.Severity, i.Field, i.Message)
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate checks doc against the collection schema. Unknown top-level keys
// are allowed; sites and overrides are checked against sites.
func Validate(doc *document.Document, c Collection, sites []string) []Issue {
	var issues []Issue
	errf := func(field, format string, args ...any) {
		issues = append(issues, Issue{Field: field, Message: fmt.Sprintf(format, args...), Severity: SeverityError})
	}
	warnf := func(field, format string, args ...any) {
		issues = append(issues, Issue{Field: field, Message: fmt.Sprintf(format, args...), Severity: SeverityWarning})
	}

	for _, f := range c.Fields {
		if f.Name == document.KeySites || f.Name == document.KeyOverrides {
			continue
		}
		n := doc.Get(f.Name)
		if isEmpty(n) {
			if f.Required {
				errf(f.Name, "required field is missing")
			}
			continue
		}
		if msg := checkValue(f, n); msg != "" {
			errf(f.Name, "%s", msg)
		}
	}

	if n := doc.Get(document.KeySites); n != nil {
		if n.Kind != yaml.SequenceNode {
			errf(document.KeySites, "must be a list of site keys")
		} else {
			for _, s := range doc.Strings(document.KeySites) {
				if !slices.Contains(sites, s) {
					errf(document.KeySites, "unknown site %q", s)
				}
			}
		}
	}

	if n := doc.Get(document.KeyOverrides); n != nil && !document.IsNull(n) {
		if n.Kind != yaml.MappingNode {
			errf(document.KeyOverrides, "must be a mapping of site key to fields")
			return issues
		}
		for _, site := range document.MappingKeys(n) {
			if !slices.Contains(sites, site) {
				errf(document.KeyOverrides, "unknown site %q", site)
				continue
			}
			entry := document.MappingValue(n, site)
			if entry.Kind != yaml.MappingNode {
				if !document.IsNull(entry) {
					errf(document.KeyOverrides+"."+site, "must be a mapping of fields")
				}
				continue
			}
			for _, name := range document.MappingKeys(entry) {
				path := document.KeyOverrides + "." + site + "." + name
				f, ok := c.Field(name)
				if !ok || !f.Overridable {
					warnf(path, "field is not overridable")
					continue
				}
				v := document.MappingValue(entry, name)
				if document.IsNull(v) {
					if f.Required {
						errf(path, "required field cannot be removed by an override")
					}
					continue
				}
				if msg := checkValue(f, v); msg != "" {
					errf(path, "%s", msg)
				}
			}
		}
	}
	return issues
}

func isEmpty(n *yaml.Node) bool {
	if n == nil || document.IsNull(n) {
		return true
	}
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Value == ""
	case yaml.SequenceNode, yaml.MappingNode:
		return len(n.Content) == 0
	}
	return false
}

func checkValue(f Field, n *yaml.Node) string {
	switch f.Widget {
	case WidgetString, WidgetText, WidgetMarkdown, WidgetImage, WidgetRelation:
		if n.Kind != yaml.ScalarNode {
			return "must be a string"
		}
	case WidgetBoolean:
		if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!bool" {
			return "must be true or false"
		}
	case WidgetNumber:
		if n.Kind != yaml.ScalarNode {
			return "must be a number"
		}
		if _, err := strconv.ParseFloat(n.Value, 64); err != nil {
			return fmt.Sprintf("must be a number, got %q", n.Value)
		}
	case WidgetDatetime:
		if n.Kind != yaml.ScalarNode {
			return "must be a date"
		}
		if _, err := document.ParseDate(n.Value); err != nil {
			return err.Error()
		}
	case WidgetSelect:
		values := []*yaml.Node{n}
		if n.Kind == yaml.SequenceNode {
			if !f.Multiple {
				return "must be a single value"
			}
			values = n.Content
		}
		for _, v := range values {
			if v.Kind != yaml.ScalarNode || !slices.Contains(f.Options, v.Value) {
				return fmt.Sprintf("%q is not one of %v", v.Value, f.Options)
			}
		}
	case WidgetList:
		if n.Kind != yaml.SequenceNode {
			return "must be a list"
		}
		if len(f.Fields) > 0 {
			for i, item := range n.Content {
				if item.Kind != yaml.MappingNode {
					return fmt.Sprintf("item %d must be a mapping", i)
				}
				if msg := checkObject(f.Fields, item); msg != "" {
					return fmt.Sprintf("item %d: %s", i, msg)
				}
			}
		}
	case WidgetObject:
		if n.Kind != yaml.MappingNode {
			return "must be a mapping"
		}
		return checkObject(f.Fields, n)
	}
	return ""
}

func checkObject(fields []Field, m *yaml.Node) string {
	for _, sub := range fields {
		v := document.MappingValue(m, sub.Name)
		if isEmpty(v) {
			if sub.Required {
				return fmt.Sprintf("%s is required", sub.Name)
			}
			continue
		}
		if msg := checkValue(sub, v); msg != "" {
			return fmt.Sprintf("%s %s", sub.Name, msg)
		}
	}
	return ""
}
