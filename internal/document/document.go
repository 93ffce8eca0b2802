// Package document reads and writes Markdown/MDX files with YAML frontmatter.
//
// Frontmatter is kept as a yaml.v3 mapping node rather than a map so that key
// order, comments and scalar styles survive a read/modify/write cycle. That
// keeps synced files stable: running a sync twice produces byte-identical output.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// Reserved frontmatter keys that control cross-site sharing.
const (
	KeySites     = "sites"
	KeyOverrides = "overrides"
)

const delimiter = "---"

// ErrNoFrontmatter is returned alongside a usable Document when the input has
// no frontmatter block. The whole input becomes the body.
var ErrNoFrontmatter = errors.New("no frontmatter found")

var yamlFormat = frontmatter.NewFormat(delimiter, delimiter, yaml.Unmarshal)

// Document is a content file: an ordered frontmatter mapping plus a body.
type Document struct {
	Path   string
	Fields *yaml.Node
	Body   []byte
}

// New returns an empty document.
func New() *Document {
	return &Document{Fields: newMapping()}
}

// Parse reads a document from r.
func Parse(r io.Reader) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	var root yaml.Node
	body, err := frontmatter.MustParse(bytes.NewReader(raw), &root, yamlFormat)
	if err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			return &Document{Fields: newMapping(), Body: raw}, ErrNoFrontmatter
		}
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	fields := &root
	if fields.Kind == yaml.DocumentNode && len(fields.Content) > 0 {
		fields = fields.Content[0]
	}
	switch fields.Kind {
	case 0:
		// "---\n---" with nothing in between
		fields = newMapping()
	case yaml.MappingNode:
	default:
		return nil, fmt.Errorf("parse frontmatter: expected a mapping, got %s", kindName(fields.Kind))
	}

	return &Document{Fields: fields, Body: body}, nil
}

// ReadFile parses the document stored at path. A file without frontmatter is
// returned together with ErrNoFrontmatter.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := Parse(f)
	if doc != nil {
		doc.Path = path
	}
	if err != nil && !errors.Is(err, ErrNoFrontmatter) {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, err
}

// Encode writes the document as `---\n<yaml>---\n<body>`.
func (d *Document) Encode(w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")
	if d.Len() > 0 {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(d.Fields); err != nil {
			return fmt.Errorf("encode frontmatter: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode frontmatter: %w", err)
		}
	}
	buf.WriteString(delimiter + "\n")
	buf.Write(d.Body)

	_, err := w.Write(buf.Bytes())
	return err
}

// Bytes returns the encoded document.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode unmarshals the frontmatter into v.
func (d *Document) Decode(v any) error {
	return d.Fields.Decode(v)
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	body := make([]byte, len(d.Body))
	copy(body, d.Body)
	return &Document{Path: d.Path, Fields: CloneNode(d.Fields), Body: body}
}

func newMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "empty"
}
