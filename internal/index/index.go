// Package index exports the per-site content data that page templates
// consume: one JSON file per collection plus a site summary.
package index

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/semio-community/semio-community.github.io-sub001/internal/content"
	"github.com/semio-community/semio-community.github.io-sub001/internal/model"
	"github.com/semio-community/semio-community.github.io-sub001/internal/schema"
)

const (
	relatedLimit  = 3
	featuredLimit = 6
	upcomingLimit = 5
)

// Builder turns loaded collections into a site's exported data.
type Builder struct {
	site     string
	registry schema.Registry
	md       goldmark.Markdown
}

// NewBuilder returns a Builder for site.
func NewBuilder(site string, registry schema.Registry) *Builder {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
		),
	)
	return &Builder{site: site, registry: registry, md: md}
}

// Build selects the published entries visible to the builder's site, applies
// its overrides and sorts each collection by its schema order.
func (b *Builder) Build(cols []*content.Collection, now time.Time) (*model.SiteData, error) {
	data := &model.SiteData{
		Site:          b.site,
		GeneratedAt:   now.UTC(),
		ContentByType: make(map[string][]*model.ContentItem),
		Counts:        make(map[string]int),
	}

	for _, col := range cols {
		sc, ok := b.registry.Lookup(col.Name)
		if !ok {
			return nil, fmt.Errorf("collection %q has no schema", col.Name)
		}

		var entries []*content.Entry
		for _, e := range content.FilterSite(col.Entries, b.site) {
			entries = append(entries, content.Effective(e, b.site))
		}
		entries = sortEntries(content.Published(entries), sc)

		items := make([]*model.ContentItem, 0, len(entries))
		for _, e := range entries {
			item, err := b.item(e, entries, sc)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
			if item.Featured && len(data.Featured) < featuredLimit {
				data.Featured = append(data.Featured, item)
			}
		}

		if sc.Name == "events" {
			for _, e := range content.Limit(content.Upcoming(entries, now), upcomingLimit) {
				for _, item := range items {
					if item.Slug == e.Slug {
						data.Upcoming = append(data.Upcoming, item)
					}
				}
			}
		}

		data.Collections = append(data.Collections, col.Name)
		data.ContentByType[col.Name] = items
		data.Counts[col.Name] = len(items)
		log.Debug().Str("collection", col.Name).Int("items", len(items)).Msg("indexed collection")
	}
	return data, nil
}

func (b *Builder) item(e *content.Entry, siblings []*content.Entry, sc schema.Collection) (*model.ContentItem, error) {
	var html bytes.Buffer
	if err := b.md.Convert(e.Doc.Body, &html); err != nil {
		return nil, fmt.Errorf("render %s/%s: %w", e.Collection, e.Slug, err)
	}

	fields := make(map[string]any)
	if e.Doc.Len() > 0 {
		if err := e.Doc.Decode(&fields); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", e.Collection, e.Slug, err)
		}
	}

	item := &model.ContentItem{
		Collection:  e.Collection,
		Slug:        e.Slug,
		Title:       e.Title(sc.TitleField),
		Summary:     e.Doc.String("description"),
		Permalink:   Permalink(e.Collection, e.Slug),
		Featured:    e.Doc.Bool("featured"),
		Tags:        e.Doc.Strings("tags"),
		SourcePath:  e.Path(),
		ContentHTML: template.HTML(html.String()),
		Frontmatter: fields,
	}
	if sc.DateField != "" {
		t, ok, err := e.Doc.Date(sc.DateField)
		if err != nil {
			log.Warn().Err(err).Str("path", e.Path()).Msg("ignoring unparsable date")
		} else if ok {
			item.Date = &t
		}
	}
	for _, r := range content.Related(e, siblings, relatedLimit, sc.TitleField) {
		item.Related = append(item.Related, r.Slug)
	}
	return item, nil
}

func sortEntries(entries []*content.Entry, sc schema.Collection) []*content.Entry {
	switch sc.Sort {
	case schema.SortDateDesc:
		return content.SortByDate(entries, sc.DateField, true)
	case schema.SortDateAsc:
		return content.SortByDate(entries, sc.DateField, false)
	default:
		return content.SortByOrder(entries, sc.TitleField)
	}
}

// Permalink returns the canonical URL path of an entry.
func Permalink(collection, slug string) string {
	return "/" + collection + "/" + slug + "/"
}

// Write stores <collection>.json for every collection and site.json in dir.
func Write(dir string, data *model.SiteData) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("create index directory %s: %w", dir, err)
	}
	for _, name := range data.Collections {
		items := data.ContentByType[name]
		if items == nil {
			items = []*model.ContentItem{}
		}
		if err := writeJSON(filepath.Join(dir, name+".json"), items); err != nil {
			return err
		}
	}
	return writeJSON(filepath.Join(dir, "site.json"), data)
}

func writeJSON(path string, v any) error {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	buf = append(buf, '\n')
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
