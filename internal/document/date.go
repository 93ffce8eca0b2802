package document

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses the date formats CMS editors produce.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q, use YYYY-MM-DD or RFC3339", s)
}

// Date returns the date value for key. Missing keys report ok=false with a
// nil error.
func (d *Document) Date(key string) (t time.Time, ok bool, err error) {
	n := d.Get(key)
	if n == nil || n.Kind != yaml.ScalarNode || IsNull(n) || n.Value == "" {
		return time.Time{}, false, nil
	}
	t, err = ParseDate(n.Value)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}
