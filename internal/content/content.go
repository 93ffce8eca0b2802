// Package content loads collections of frontmatter documents from a content
// root and derives the per-site view of each entry.
package content

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/semio-community/semio-community.github.io-sub001/internal/document"
)

// ErrCollectionNotFound is returned when a collection directory does not exist.
var ErrCollectionNotFound = errors.New("collection not found")

var extensions = []string{".md", ".mdx"}

// Entry is one document of a collection.
type Entry struct {
	Collection string
	Slug       string
	Ext        string
	Doc        *document.Document
}

// Path returns the file the entry was read from.
func (e *Entry) Path() string {
	return e.Doc.Path
}

// Title returns the value of field, falling back to the title-cased slug.
func (e *Entry) Title(field string) string {
	if t := e.Doc.String(field); t != "" {
		return t
	}
	return TitleFromSlug(e.Slug)
}

// Collection is the ordered set of entries found in one directory.
type Collection struct {
	Name    string
	Dir     string
	Entries []*Entry
	// Missing is set by LoadAll when the directory does not exist.
	Missing bool
	// Skipped holds the slugs of files that could not be read or parsed.
	Skipped map[string]bool
}

// Lookup returns the entry with slug.
func (c *Collection) Lookup(slug string) (*Entry, bool) {
	for _, e := range c.Entries {
		if e.Slug == slug {
			return e, true
		}
	}
	return nil, false
}

// IsContentFile reports whether name has a content file extension.
func IsContentFile(name string) bool {
	return slices.Contains(extensions, strings.ToLower(filepath.Ext(name)))
}

// SplitName returns the slug and extension of a content file name.
func SplitName(name string) (slug, ext string) {
	ext = filepath.Ext(name)
	return strings.TrimSuffix(name, ext), ext
}

// LoadCollection reads <root>/<name>/*.md|*.mdx in file name order.
// Files whose frontmatter cannot be parsed are logged, skipped and recorded
// in Skipped.
func LoadCollection(root, name string) (*Collection, error) {
	dir := filepath.Join(root, name)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, dir)
		}
		return nil, fmt.Errorf("stat collection %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("collection %s is not a directory", dir)
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w", dir, err)
	}

	c := &Collection{Name: name, Dir: dir}
	seen := make(map[string]string)
	for _, f := range files {
		if f.IsDir() || !IsContentFile(f.Name()) {
			continue
		}
		path := filepath.Join(dir, f.Name())
		doc, err := document.ReadFile(path)
		if err != nil {
			if !errors.Is(err, document.ErrNoFrontmatter) {
				log.Warn().Err(err).Str("path", path).Msg("skipping unreadable content file")
				if c.Skipped == nil {
					c.Skipped = make(map[string]bool)
				}
				slug, _ := SplitName(f.Name())
				c.Skipped[slug] = true
				continue
			}
			log.Warn().Str("path", path).Msg("no frontmatter, treating as site-local")
		}
		slug, ext := SplitName(f.Name())
		if prev, dup := seen[slug]; dup {
			log.Warn().Str("path", path).Str("kept", prev).Msg("duplicate slug, skipping")
			continue
		}
		seen[slug] = path
		c.Entries = append(c.Entries, &Entry{Collection: name, Slug: slug, Ext: ext, Doc: doc})
	}
	sort.SliceStable(c.Entries, func(i, j int) bool { return c.Entries[i].Slug < c.Entries[j].Slug })
	return c, nil
}

// LoadAll loads the named collections concurrently. Missing collections are
// logged and returned as empty; results keep the order of names.
func LoadAll(ctx context.Context, root string, names []string) ([]*Collection, error) {
	out := make([]*Collection, len(names))
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, err := LoadCollection(root, name)
			if errors.Is(err, ErrCollectionNotFound) {
				log.Warn().Str("collection", name).Str("root", root).Msg("collection directory missing, skipping")
				out[i] = &Collection{Name: name, Dir: filepath.Join(root, name), Missing: true}
				return nil
			}
			if err != nil {
				return err
			}
			out[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// VisibleTo reports whether the entry is published to site. Entries without
// a `sites` key are site-local and never visible through the hub.
func VisibleTo(e *Entry, site string) bool {
	sites, ok := e.Doc.Sites()
	return ok && slices.Contains(sites, site)
}

// Effective returns a copy of the entry with site's overrides applied and
// the sharing keys removed. A null override value deletes the field.
func Effective(e *Entry, site string) *Entry {
	doc := e.Doc.Clone()
	if o := e.Doc.Override(site); o != nil {
		for i := 0; i+1 < len(o.Content); i += 2 {
			key := o.Content[i].Value
			if key == document.KeySites || key == document.KeyOverrides {
				continue
			}
			val := o.Content[i+1]
			if document.IsNull(val) {
				doc.Delete(key)
				continue
			}
			doc.Set(key, document.CloneNode(val))
		}
	}
	doc.Delete(document.KeySites)
	doc.Delete(document.KeyOverrides)
	return &Entry{Collection: e.Collection, Slug: e.Slug, Ext: e.Ext, Doc: doc}
}

// TitleFromSlug turns "quori-robot_v2" into "Quori Robot V2".
func TitleFromSlug(slug string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	// Casers carry state and are not safe to share.
	return cases.Title(language.English).String(s)
}
