package hubsync

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/semio-community/semio-community.github.io-sub001/internal/content"
	"github.com/semio-community/semio-community.github.io-sub001/internal/document"
	"github.com/semio-community/semio-community.github.io-sub001/internal/schema"
)

// ErrMissingRoot is returned when a hub or site content root does not exist.
var ErrMissingRoot = errors.New("content root not found")

// ActionKind classifies a planned file operation.
type ActionKind string

const (
	ActionCreate    ActionKind = "create"
	ActionUpdate    ActionKind = "update"
	ActionUnchanged ActionKind = "unchanged"
	ActionPrune     ActionKind = "prune"
)

// Action is one planned file operation.
type Action struct {
	Kind       ActionKind
	Collection string
	Slug       string
	Path       string
	Data       []byte
}

// Report counts applied actions by kind.
type Report struct {
	Created   int
	Updated   int
	Unchanged int
	Pruned    int
}

// Changed reports whether anything was written or removed.
func (r Report) Changed() bool {
	return r.Created+r.Updated+r.Pruned > 0
}

func (r Report) String() string {
	return fmt.Sprintf("%d created, %d updated, %d unchanged, %d pruned", r.Created, r.Updated, r.Unchanged, r.Pruned)
}

// Options controls a sync run.
type Options struct {
	Collections []string
	NoPrune     bool
	DryRun      bool
}

func (o Options) collections() []string {
	if len(o.Collections) > 0 {
		return o.Collections
	}
	return schema.Default().Names()
}

// Source is one site's content taking part in a push.
type Source struct {
	Site        string
	Collections []*content.Collection
}

// CheckRoot returns ErrMissingRoot unless dir exists and is a directory.
func CheckRoot(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrMissingRoot, dir)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrMissingRoot, dir)
	}
	return nil
}

// Pull copies every hub entry visible to site into siteRoot and prunes
// hub-managed copies the hub no longer shows to site.
func Pull(ctx context.Context, hubRoot, siteRoot, site string, opts Options) (Report, error) {
	if err := schema.CheckSite(site); err != nil {
		return Report{}, err
	}
	for _, root := range []string{hubRoot, siteRoot} {
		if err := CheckRoot(root); err != nil {
			return Report{}, err
		}
	}
	hub, err := content.LoadAll(ctx, hubRoot, opts.collections())
	if err != nil {
		return Report{}, fmt.Errorf("load hub: %w", err)
	}
	local, err := content.LoadAll(ctx, siteRoot, opts.collections())
	if err != nil {
		return Report{}, fmt.Errorf("load site %s: %w", site, err)
	}
	actions, err := PlanPull(hub, local, site, opts.NoPrune)
	if err != nil {
		return Report{}, err
	}
	return Apply(actions, opts.DryRun)
}

// Push merges the hub-managed entries of each site root into the hub.
// roots maps site key to content root.
func Push(ctx context.Context, hubRoot string, roots map[string]string, opts Options) (Report, error) {
	if err := CheckRoot(hubRoot); err != nil {
		return Report{}, err
	}
	sites := make([]string, 0, len(roots))
	for site := range roots {
		if err := schema.CheckSite(site); err != nil {
			return Report{}, err
		}
		sites = append(sites, site)
	}
	sort.Slice(sites, func(i, j int) bool { return schema.SiteRank(sites[i]) < schema.SiteRank(sites[j]) })

	var sources []Source
	for _, site := range sites {
		root := roots[site]
		if err := CheckRoot(root); err != nil {
			return Report{}, fmt.Errorf("site %s: %w", site, err)
		}
		cols, err := content.LoadAll(ctx, root, opts.collections())
		if err != nil {
			return Report{}, fmt.Errorf("load site %s: %w", site, err)
		}
		sources = append(sources, Source{Site: site, Collections: cols})
	}
	hub, err := content.LoadAll(ctx, hubRoot, opts.collections())
	if err != nil {
		return Report{}, fmt.Errorf("load hub: %w", err)
	}
	actions, err := PlanPush(sources, hub)
	if err != nil {
		return Report{}, err
	}
	return Apply(actions, opts.DryRun)
}

// PlanPull plans the hub -> site copy. hub and local are matched by
// collection name. A collection missing from the hub is skipped entirely so
// that its local copies are not pruned. Site-local entries are never
// written, and slugs the hub could not parse are never pruned.
func PlanPull(hub, local []*content.Collection, site string, noPrune bool) ([]Action, error) {
	localByName := make(map[string]*content.Collection, len(local))
	for _, c := range local {
		localByName[c.Name] = c
	}

	var actions []Action
	for _, hc := range hub {
		if hc.Missing {
			log.Warn().Str("collection", hc.Name).Msg("collection missing from hub, skipping")
			continue
		}
		lc := localByName[hc.Name]
		if lc == nil {
			return nil, fmt.Errorf("no local collection %q", hc.Name)
		}

		for _, he := range hc.Entries {
			if !content.VisibleTo(he, site) {
				continue
			}
			var dst *document.Document
			path := filepath.Join(lc.Dir, he.Slug+he.Ext)
			if le, ok := lc.Lookup(he.Slug); ok {
				if _, managed := le.Doc.Sites(); !managed {
					log.Warn().
						Str("collection", hc.Name).
						Str("slug", he.Slug).
						Str("path", le.Path()).
						Msg("site-local entry shadows a hub entry, not pulling")
					continue
				}
				dst = le.Doc
				path = le.Path()
			}
			if lc.Skipped[he.Slug] {
				log.Warn().Str("collection", hc.Name).Str("slug", he.Slug).Msg("local entry unreadable, not overwriting")
				continue
			}
			a, err := planWrite(hc.Name, he.Slug, path, Mirror(he.Doc, dst))
			if err != nil {
				return nil, err
			}
			actions = append(actions, a)
		}

		if noPrune {
			continue
		}
		for _, le := range lc.Entries {
			if _, managed := le.Doc.Sites(); !managed {
				continue
			}
			if hc.Skipped[le.Slug] {
				log.Warn().Str("collection", hc.Name).Str("slug", le.Slug).Msg("hub entry unreadable, keeping local copy")
				continue
			}
			he, ok := hc.Lookup(le.Slug)
			if ok && content.VisibleTo(he, site) {
				continue
			}
			actions = append(actions, Action{Kind: ActionPrune, Collection: hc.Name, Slug: le.Slug, Path: le.Path()})
		}
	}
	return actions, nil
}

// PlanPush plans the site(s) -> hub merge. Sources are applied in order
// against an in-memory view of the hub so later sources merge onto earlier
// results. The hub is never pruned.
func PlanPush(sources []Source, hub []*content.Collection) ([]Action, error) {
	type state struct {
		doc    *document.Document
		path   string
		writer string
	}

	var actions []Action
	for _, hc := range hub {
		view := make(map[string]*state)
		var order []string
		for _, he := range hc.Entries {
			view[he.Slug] = &state{doc: he.Doc, path: he.Path()}
		}

		for _, src := range sources {
			lc := findCollection(src.Collections, hc.Name)
			if lc == nil || lc.Missing {
				continue
			}
			for _, le := range lc.Entries {
				if _, managed := le.Doc.Sites(); !managed {
					continue
				}
				if le.Doc.Get(document.KeySites).Kind != yaml.SequenceNode {
					log.Warn().Str("path", le.Path()).Msg("sites is not a list, not pushing")
					continue
				}
				if hc.Skipped[le.Slug] {
					log.Warn().Str("collection", hc.Name).Str("slug", le.Slug).Msg("hub entry unreadable, not overwriting")
					continue
				}
				cur, ok := view[le.Slug]
				if !ok {
					cur = &state{path: filepath.Join(hc.Dir, le.Slug+le.Ext)}
					view[le.Slug] = cur
				}
				if cur.writer != "" && cur.doc != nil && !BaseEqual(le.Doc, cur.doc) {
					log.Warn().
						Str("collection", hc.Name).
						Str("slug", le.Slug).
						Str("kept", src.Site).
						Str("replaced", cur.writer).
						Msg("sites disagree on shared fields")
				}
				if cur.writer == "" {
					order = append(order, le.Slug)
				}
				cur.doc = Merge(le.Doc, cur.doc)
				cur.writer = src.Site
			}
		}

		for _, slug := range order {
			st := view[slug]
			a, err := planWrite(hc.Name, slug, st.path, st.doc)
			if err != nil {
				return nil, err
			}
			actions = append(actions, a)
		}
	}
	return actions, nil
}

// Apply performs the planned actions. With dryRun nothing touches disk but
// the report is the same.
func Apply(actions []Action, dryRun bool) (Report, error) {
	var r Report
	for _, a := range actions {
		ev := log.Debug()
		if a.Kind != ActionUnchanged {
			ev = log.Info()
		}
		ev.Str("action", string(a.Kind)).Str("collection", a.Collection).Str("slug", a.Slug).
			Bool("dry_run", dryRun).Msg(a.Path)

		switch a.Kind {
		case ActionCreate, ActionUpdate:
			if !dryRun {
				if err := os.MkdirAll(filepath.Dir(a.Path), os.ModePerm); err != nil {
					return r, fmt.Errorf("create directory for %s: %w", a.Path, err)
				}
				if err := os.WriteFile(a.Path, a.Data, 0o644); err != nil {
					return r, fmt.Errorf("write %s: %w", a.Path, err)
				}
			}
			if a.Kind == ActionCreate {
				r.Created++
			} else {
				r.Updated++
			}
		case ActionPrune:
			if !dryRun {
				if err := os.Remove(a.Path); err != nil && !os.IsNotExist(err) {
					return r, fmt.Errorf("prune %s: %w", a.Path, err)
				}
			}
			r.Pruned++
		case ActionUnchanged:
			r.Unchanged++
		}
	}
	return r, nil
}

func planWrite(collection, slug, path string, doc *document.Document) (Action, error) {
	data, err := doc.Bytes()
	if err != nil {
		return Action{}, fmt.Errorf("%s/%s: %w", collection, slug, err)
	}
	a := Action{Kind: ActionCreate, Collection: collection, Slug: slug, Path: path, Data: data}
	existing, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(existing, data):
		a.Kind = ActionUnchanged
	case err == nil:
		a.Kind = ActionUpdate
	case !os.IsNotExist(err):
		return Action{}, fmt.Errorf("read %s: %w", path, err)
	}
	return a, nil
}

func findCollection(cols []*content.Collection, name string) *content.Collection {
	for _, c := range cols {
		if c.Name == name {
			return c
		}
	}
	return nil
}
