// Package cms generates the Decap CMS admin configuration from the content
// schema.
package cms

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/semio-community/semio-community.github.io-sub001/internal/schema"
)

const header = "# Generated by sitehub cms. Edit the content schema, not this file.\n"

// Options configures the generated backend and media settings.
type Options struct {
	Backend      string
	Repo         string
	Branch       string
	MediaFolder  string
	PublicFolder string
	SiteURL      string
	LocalBackend bool
	// ContentDir is the collections root relative to the repository.
	ContentDir string
}

// Config mirrors the subset of Decap's config.yml that sitehub writes.
type Config struct {
	Backend      Backend      `yaml:"backend"`
	LocalBackend bool         `yaml:"local_backend,omitempty"`
	SiteURL      string       `yaml:"site_url,omitempty"`
	MediaFolder  string       `yaml:"media_folder"`
	PublicFolder string       `yaml:"public_folder"`
	Collections  []Collection `yaml:"collections"`
}

// Backend selects where Decap commits content.
type Backend struct {
	Name   string `yaml:"name"`
	Repo   string `yaml:"repo,omitempty"`
	Branch string `yaml:"branch,omitempty"`
}

// Collection is one folder collection in the admin UI.
type Collection struct {
	Name           string   `yaml:"name"`
	Label          string   `yaml:"label"`
	LabelSingular  string   `yaml:"label_singular,omitempty"`
	Folder         string   `yaml:"folder"`
	Create         bool     `yaml:"create"`
	Extension      string   `yaml:"extension"`
	Format         string   `yaml:"format"`
	Slug           string   `yaml:"slug"`
	Summary        string   `yaml:"summary,omitempty"`
	SortableFields []string `yaml:"sortable_fields,omitempty"`
	Fields         []Field  `yaml:"fields"`
}

// Field is a Decap widget definition. Relation settings are only set for
// relation widgets.
type Field struct {
	Label         string   `yaml:"label"`
	Name          string   `yaml:"name"`
	Widget        string   `yaml:"widget"`
	Required      *bool    `yaml:"required,omitempty"`
	Multiple      bool     `yaml:"multiple,omitempty"`
	Options       []string `yaml:"options,omitempty"`
	Default       any      `yaml:"default,omitempty"`
	Hint          string   `yaml:"hint,omitempty"`
	Collapsed     bool     `yaml:"collapsed,omitempty"`
	Collection    string   `yaml:"collection,omitempty"`
	SearchFields  []string `yaml:"search_fields,omitempty"`
	ValueField    string   `yaml:"value_field,omitempty"`
	DisplayFields []string `yaml:"display_fields,omitempty"`
	Fields        []Field  `yaml:"fields,omitempty"`
}

// Build assembles the Decap config for the given collections.
func Build(collections schema.Registry, sites []string, opts Options) Config {
	backend := opts.Backend
	if backend == "" {
		backend = "github"
	}
	cfg := Config{
		Backend:      Backend{Name: backend, Repo: opts.Repo, Branch: opts.Branch},
		LocalBackend: opts.LocalBackend,
		SiteURL:      opts.SiteURL,
		MediaFolder:  opts.MediaFolder,
		PublicFolder: opts.PublicFolder,
	}
	for _, c := range collections {
		cfg.Collections = append(cfg.Collections, collection(c, collections, sites, opts.ContentDir))
	}
	return cfg
}

// Generate renders the Decap config as YAML.
func Generate(collections schema.Registry, sites []string, opts Options) ([]byte, error) {
	cfg := Build(collections, sites, opts)

	var buf bytes.Buffer
	buf.WriteString(header)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode decap config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode decap config: %w", err)
	}
	return buf.Bytes(), nil
}

// Write stores data at path, creating parent directories.
func Write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func collection(c schema.Collection, all schema.Registry, sites []string, contentDir string) Collection {
	out := Collection{
		Name:          c.Name,
		Label:         c.Label,
		LabelSingular: c.LabelSingular,
		Folder:        path.Join(contentDir, c.Name),
		Create:        true,
		Extension:     c.Extension,
		Format:        "frontmatter",
		Slug:          "{{slug}}",
		Summary:       "{{" + c.TitleField + "}}",
	}
	switch c.Sort {
	case schema.SortOrder:
		out.SortableFields = []string{"order", c.TitleField}
	case schema.SortDateAsc, schema.SortDateDesc:
		out.SortableFields = []string{c.DateField, c.TitleField}
	}

	for _, f := range c.Fields {
		switch f.Name {
		case "sites":
			out.Fields = append(out.Fields, sitesField(f, sites))
		case "overrides":
			out.Fields = append(out.Fields, overridesField(f, c, all, sites))
		default:
			out.Fields = append(out.Fields, field(f, all))
		}
	}
	out.Fields = append(out.Fields, Field{Label: "Body", Name: "body", Widget: string(schema.WidgetMarkdown), Required: boolPtr(false)})
	return out
}

func field(f schema.Field, all schema.Registry) Field {
	out := Field{
		Label:    f.Label,
		Name:     f.Name,
		Widget:   string(f.Widget),
		Multiple: f.Multiple,
		Options:  f.Options,
		Default:  f.Default,
		Hint:     f.Hint,
	}
	if !f.Required {
		out.Required = boolPtr(false)
	}
	if f.Widget == schema.WidgetRelation {
		out.Collection = f.Relation
		target, ok := all.Lookup(f.Relation)
		display := "title"
		if ok {
			display = target.TitleField
		}
		out.SearchFields = []string{display}
		out.DisplayFields = []string{display}
		out.ValueField = "{{slug}}"
	}
	for _, sub := range f.Fields {
		out.Fields = append(out.Fields, field(sub, all))
	}
	return out
}

func sitesField(f schema.Field, sites []string) Field {
	return Field{
		Label:    f.Label,
		Name:     f.Name,
		Widget:   string(schema.WidgetSelect),
		Multiple: true,
		Options:  sites,
		Default:  []string{},
		Hint:     f.Hint,
		Required: boolPtr(false),
	}
}

// overridesField nests one optional object per site holding that
// collection's overridable fields, all optional.
func overridesField(f schema.Field, c schema.Collection, all schema.Registry, sites []string) Field {
	out := Field{
		Label:     f.Label,
		Name:      f.Name,
		Widget:    string(schema.WidgetObject),
		Required:  boolPtr(false),
		Collapsed: true,
		Hint:      f.Hint,
	}
	caser := cases.Title(language.English)
	for _, site := range sites {
		siteField := Field{
			Label:     caser.String(site),
			Name:      site,
			Widget:    string(schema.WidgetObject),
			Required:  boolPtr(false),
			Collapsed: true,
		}
		for _, of := range c.Overridable() {
			sub := field(of, all)
			sub.Required = boolPtr(false)
			sub.Default = nil
			siteField.Fields = append(siteField.Fields, sub)
		}
		out.Fields = append(out.Fields, siteField)
	}
	return out
}

func boolPtr(b bool) *bool {
	return &b
}
