package index

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semio-community/semio-community.github.io-sub001/internal/content"
	"github.com/semio-community/semio-community.github.io-sub001/internal/model"
	"github.com/semio-community/semio-community.github.io-sub001/internal/schema"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

var now = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func load(t *testing.T) ([]*content.Collection, schema.Registry) {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "hardware", "quori.mdx"), `---
title: Quori
description: Social robot
featured: true
order: 2
tags: [robot, hri]
sites: [semio, quori]
overrides:
  quori:
    title: Quori Robot
    order: 1
---
# Intro

Quori is **open** hardware.
`)
	writeFile(t, filepath.Join(root, "hardware", "arm.md"), "---\ntitle: Arm\norder: 1\ntags: [robot]\nsites: [semio]\n---\n")
	writeFile(t, filepath.Join(root, "hardware", "secret.md"), "---\ntitle: Secret\ndraft: true\nsites: [semio]\n---\n")
	writeFile(t, filepath.Join(root, "hardware", "local.md"), "---\ntitle: Local only\n---\n")
	writeFile(t, filepath.Join(root, "events", "expo.md"), "---\ntitle: Expo\nstartDate: 2024-07-01\nsites: [semio]\n---\n")
	writeFile(t, filepath.Join(root, "events", "meetup.md"), "---\ntitle: Meetup\nstartDate: 2024-06-20\nsites: [semio]\n---\n")
	writeFile(t, filepath.Join(root, "events", "past.md"), "---\ntitle: Past\nstartDate: 2023-01-01\nsites: [semio]\n---\n")

	registry, err := schema.Default().Select([]string{"hardware", "events"})
	require.NoError(t, err)
	cols, err := content.LoadAll(context.Background(), root, registry.Names())
	require.NoError(t, err)
	return cols, registry
}

func slugs(items []*model.ContentItem) []string {
	var out []string
	for _, i := range items {
		out = append(out, i.Slug)
	}
	return out
}

func TestBuild_Semio(t *testing.T) {
	cols, registry := load(t)

	data, err := NewBuilder("semio", registry).Build(cols, now)
	require.NoError(t, err)

	assert.Equal(t, []string{"hardware", "events"}, data.Collections)
	assert.Equal(t, []string{"arm", "quori"}, slugs(data.ContentByType["hardware"]))
	assert.Equal(t, []string{"past", "meetup", "expo"}, slugs(data.ContentByType["events"]))
	assert.Equal(t, map[string]int{"hardware": 2, "events": 3}, data.Counts)
	assert.Equal(t, []string{"quori"}, slugs(data.Featured))
	assert.Equal(t, []string{"meetup", "expo"}, slugs(data.Upcoming))

	quori := data.ContentByType["hardware"][1]
	assert.Equal(t, "Quori", quori.Title)
	assert.Equal(t, "Social robot", quori.Summary)
	assert.Equal(t, "/hardware/quori/", quori.Permalink)
	assert.Equal(t, []string{"arm"}, quori.Related)
	assert.Contains(t, string(quori.ContentHTML), `<h1 id="intro">Intro</h1>`)
	assert.Contains(t, string(quori.ContentHTML), "<strong>open</strong>")
	assert.NotContains(t, quori.Frontmatter, "sites")
	assert.NotContains(t, quori.Frontmatter, "overrides")

	expo := data.ContentByType["events"][2]
	require.NotNil(t, expo.Date)
	assert.Equal(t, time.July, expo.Date.Month())
}

func TestBuild_QuoriOverrides(t *testing.T) {
	cols, registry := load(t)

	data, err := NewBuilder("quori", registry).Build(cols, now)
	require.NoError(t, err)

	hw := data.ContentByType["hardware"]
	require.Len(t, hw, 1)
	assert.Equal(t, "Quori Robot", hw[0].Title)
	assert.Equal(t, 1, data.Counts["hardware"])
	assert.Equal(t, 0, data.Counts["events"])
}

func TestBuild_UnknownCollection(t *testing.T) {
	_, err := NewBuilder("semio", schema.Default()).Build([]*content.Collection{{Name: "blog"}}, now)
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	cols, registry := load(t)
	data, err := NewBuilder("semio", registry).Build(cols, now)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "public", "data")
	require.NoError(t, Write(dir, data))

	raw, err := os.ReadFile(filepath.Join(dir, "hardware.json"))
	require.NoError(t, err)
	var items []map[string]any
	require.NoError(t, json.Unmarshal(raw, &items))
	require.Len(t, items, 2)
	assert.Equal(t, "arm", items[0]["slug"])

	raw, err = os.ReadFile(filepath.Join(dir, "site.json"))
	require.NoError(t, err)
	var site map[string]any
	require.NoError(t, json.Unmarshal(raw, &site))
	assert.Equal(t, "semio", site["site"])
	assert.Len(t, site["upcomingEvents"], 2)

	_, err = os.Stat(filepath.Join(dir, "events.json"))
	assert.NoError(t, err)
}
