package document

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Override is one site's entry in the `overrides` mapping.
type Override struct {
	Site   string
	Fields *yaml.Node
}

// Len reports the number of top-level frontmatter keys.
func (d *Document) Len() int {
	if d.Fields == nil {
		return 0
	}
	return len(d.Fields.Content) / 2
}

// Keys returns the top-level keys in file order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, d.Len())
	for i := 0; i+1 < len(d.Fields.Content); i += 2 {
		keys = append(keys, d.Fields.Content[i].Value)
	}
	return keys
}

// BaseKeys returns the top-level keys other than sites and overrides.
func (d *Document) BaseKeys() []string {
	var keys []string
	for _, k := range d.Keys() {
		if k != KeySites && k != KeyOverrides {
			keys = append(keys, k)
		}
	}
	return keys
}

// Get returns the value node for key, or nil.
func (d *Document) Get(key string) *yaml.Node {
	return lookup(d.Fields, key)
}

// Has reports whether key is present.
func (d *Document) Has(key string) bool {
	return d.Get(key) != nil
}

// Set replaces the value for key in place, or appends the key.
func (d *Document) Set(key string, value *yaml.Node) {
	if d.Fields == nil {
		d.Fields = newMapping()
	}
	setKey(d.Fields, key, value)
}

// SetValue encodes v into a node and stores it under key.
func (d *Document) SetValue(key string, v any) error {
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	d.Set(key, &n)
	return nil
}

// Delete removes key and reports whether it was present.
func (d *Document) Delete(key string) bool {
	if d.Fields == nil {
		return false
	}
	return deleteKey(d.Fields, key)
}

// String returns the scalar value for key, or "".
func (d *Document) String(key string) string {
	n := d.Get(key)
	if n == nil || n.Kind != yaml.ScalarNode || IsNull(n) {
		return ""
	}
	return n.Value
}

// Bool returns the boolean value for key. Anything that is not a true
// boolean scalar reads as false.
func (d *Document) Bool(key string) bool {
	n := d.Get(key)
	if n == nil || n.Kind != yaml.ScalarNode {
		return false
	}
	var b bool
	if err := n.Decode(&b); err != nil {
		return false
	}
	return b
}

// Number returns the numeric value for key.
func (d *Document) Number(key string) (float64, bool) {
	n := d.Get(key)
	if n == nil || n.Kind != yaml.ScalarNode || IsNull(n) {
		return 0, false
	}
	f, err := strconv.ParseFloat(n.Value, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Strings returns the scalar items of a sequence value. A single scalar is
// treated as a one-element list.
func (d *Document) Strings(key string) []string {
	n := d.Get(key)
	if n == nil {
		return nil
	}
	switch n.Kind {
	case yaml.ScalarNode:
		if IsNull(n) || n.Value == "" {
			return nil
		}
		return []string{n.Value}
	case yaml.SequenceNode:
		out := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			if item.Kind == yaml.ScalarNode && !IsNull(item) {
				out = append(out, item.Value)
			}
		}
		return out
	}
	return nil
}

// Sites returns the `sites` list and whether the key exists at all. Only
// documents carrying the key take part in hub sync. A value that is not a
// list names no sites.
func (d *Document) Sites() ([]string, bool) {
	n := d.Get(KeySites)
	if n == nil {
		return nil, false
	}
	if n.Kind != yaml.SequenceNode {
		return nil, true
	}
	return d.Strings(KeySites), true
}

// SetSites stores sites as a block sequence. An empty list removes the key.
func (d *Document) SetSites(sites []string) {
	if len(sites) == 0 {
		d.Delete(KeySites)
		return
	}
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	if prev := d.Get(KeySites); prev != nil && prev.Kind == yaml.SequenceNode {
		seq.Style = prev.Style
	}
	for _, s := range sites {
		seq.Content = append(seq.Content, StringNode(s))
	}
	d.Set(KeySites, seq)
}

// Overrides returns the per-site override mappings in file order. Entries
// that are not mappings are ignored.
func (d *Document) Overrides() []Override {
	n := d.Get(KeyOverrides)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	var out []Override
	for i := 0; i+1 < len(n.Content); i += 2 {
		v := n.Content[i+1]
		if v.Kind != yaml.MappingNode {
			continue
		}
		out = append(out, Override{Site: n.Content[i].Value, Fields: v})
	}
	return out
}

// Override returns the override mapping for site, or nil.
func (d *Document) Override(site string) *yaml.Node {
	for _, o := range d.Overrides() {
		if o.Site == site {
			return o.Fields
		}
	}
	return nil
}

// SetOverrides replaces the `overrides` mapping. Empty entries are dropped
// and an empty result removes the key.
func (d *Document) SetOverrides(overrides []Override) {
	m := newMapping()
	for _, o := range overrides {
		if o.Fields == nil || len(o.Fields.Content) == 0 {
			continue
		}
		m.Content = append(m.Content, StringNode(o.Site), CloneNode(o.Fields))
	}
	if len(m.Content) == 0 {
		d.Delete(KeyOverrides)
		return
	}
	d.Set(KeyOverrides, m)
}

// StringNode returns a plain string scalar node.
func StringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// IsNull reports whether n is a YAML null scalar.
func IsNull(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

// CloneNode deep-copies a node tree.
func CloneNode(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	c := *n
	if n.Alias != nil {
		c.Alias = CloneNode(n.Alias)
	}
	if len(n.Content) > 0 {
		c.Content = make([]*yaml.Node, len(n.Content))
		for i, child := range n.Content {
			c.Content[i] = CloneNode(child)
		}
	}
	return &c
}

// MappingKeys returns the keys of a mapping node in order.
func MappingKeys(m *yaml.Node) []string {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		keys = append(keys, m.Content[i].Value)
	}
	return keys
}

// MappingValue returns the value stored under key in mapping m.
func MappingValue(m *yaml.Node, key string) *yaml.Node {
	return lookup(m, key)
}

func lookup(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func setKey(m *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = value
			return
		}
	}
	m.Content = append(m.Content, StringNode(key), value)
}

func deleteKey(m *yaml.Node, key string) bool {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content = append(m.Content[:i], m.Content[i+2:]...)
			return true
		}
	}
	return false
}
