// Package hubsync moves shared content between a site repository and the
// content hub: parse frontmatter, merge `sites`/`overrides`, write or prune
// files.
package hubsync

import (
	"bytes"
	"reflect"
	"slices"
	"sort"

	"github.com/semio-community/semio-community.github.io-sub001/internal/document"
	"github.com/semio-community/semio-community.github.io-sub001/internal/schema"
)

// Merge combines src onto dst. Base fields and body come from src, in src
// order; `sites` is the union of both lists in canonical site order;
// `overrides` is the union keyed by site with src winning conflicts.
// dst may be nil. Merge(src, Merge(src, dst)) equals Merge(src, dst).
func Merge(src, dst *document.Document) *document.Document {
	out := src.Clone()
	if dst != nil {
		out.Path = dst.Path
	}

	var sites []string
	srcSites, srcHas := src.Sites()
	sites = append(sites, srcSites...)
	hasSites := srcHas
	if dst != nil {
		dstSites, dstHas := dst.Sites()
		sites = append(sites, dstSites...)
		hasSites = hasSites || dstHas
	}
	if hasSites {
		sites = canonicalSites(sites)
		if len(sites) == 0 {
			// keep an explicit empty list so the entry stays hub-managed
			_ = out.SetValue(document.KeySites, []string{})
		} else {
			out.SetSites(sites)
		}
	}

	overrides := src.Overrides()
	if dst != nil {
		for _, o := range dst.Overrides() {
			if !slices.ContainsFunc(overrides, func(s document.Override) bool { return s.Site == o.Site }) {
				overrides = append(overrides, o)
			}
		}
	}
	sort.SliceStable(overrides, func(i, j int) bool {
		ri, rj := schema.SiteRank(overrides[i].Site), schema.SiteRank(overrides[j].Site)
		if ri != rj {
			return ri < rj
		}
		return overrides[i].Site < overrides[j].Site
	})
	out.SetOverrides(overrides)

	// sharing keys go after the base fields
	moveToEnd(out, document.KeySites)
	moveToEnd(out, document.KeyOverrides)
	return out
}

// Mirror returns src normalized the way Merge lays documents out, carrying
// dst's path. The hub is authoritative on pull, so nothing from dst survives.
func Mirror(src, dst *document.Document) *document.Document {
	out := Merge(src, nil)
	if dst != nil {
		out.Path = dst.Path
	}
	return out
}

// BaseEqual reports whether a and b agree on every field other than sites
// and overrides, and on the body. Key order is ignored.
func BaseEqual(a, b *document.Document) bool {
	if !bytes.Equal(a.Body, b.Body) {
		return false
	}
	keys := a.BaseKeys()
	if len(keys) != len(b.BaseKeys()) {
		return false
	}
	for _, k := range keys {
		bv := b.Get(k)
		if bv == nil {
			return false
		}
		var x, y any
		if err := a.Get(k).Decode(&x); err != nil {
			return false
		}
		if err := bv.Decode(&y); err != nil {
			return false
		}
		if !reflect.DeepEqual(x, y) {
			return false
		}
	}
	return true
}

func canonicalSites(sites []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range sites {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := schema.SiteRank(out[i]), schema.SiteRank(out[j])
		if ri != rj {
			return ri < rj
		}
		return out[i] < out[j]
	})
	return out
}

func moveToEnd(d *document.Document, key string) {
	v := d.Get(key)
	if v == nil {
		return
	}
	d.Delete(key)
	d.Set(key, v)
}
