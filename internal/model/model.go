package model

import (
	"html/template"
	"time"
)

// ContentItem is one published entry as the site templates see it: a
// site's overrides already applied, Markdown body rendered to HTML.
type ContentItem struct {
	Collection  string         `json:"collection"`
	Slug        string         `json:"slug"`
	Title       string         `json:"title"`
	Summary     string         `json:"summary,omitempty"`
	Date        *time.Time     `json:"date,omitempty"`
	Permalink   string         `json:"permalink"`
	Featured    bool           `json:"featured,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Related     []string       `json:"related,omitempty"`
	SourcePath  string         `json:"sourcePath"`
	ContentHTML template.HTML  `json:"html"`
	Frontmatter map[string]any `json:"data"`
}

// SiteData is the exported data for one site.
type SiteData struct {
	Site          string                    `json:"site"`
	GeneratedAt   time.Time                 `json:"generatedAt"`
	Collections   []string                  `json:"collections"`
	ContentByType map[string][]*ContentItem `json:"-"`
	Featured      []*ContentItem            `json:"featured"`
	Upcoming      []*ContentItem            `json:"upcomingEvents"`
	Counts        map[string]int            `json:"counts"`
}
