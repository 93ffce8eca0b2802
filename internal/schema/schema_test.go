package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semio-community/semio-community.github.io-sub001/internal/document"
)

func parse(t *testing.T, s string) *document.Document {
	t.Helper()
	doc, err := document.Parse(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

func fieldsOf(issues []Issue) []string {
	var out []string
	for _, i := range issues {
		out = append(out, i.Field)
	}
	return out
}

func TestCheckSite(t *testing.T) {
	for _, s := range Sites() {
		assert.NoError(t, CheckSite(s))
	}
	err := CheckSite("robots")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownSite))
}

func TestSiteRank(t *testing.T) {
	assert.Less(t, SiteRank(SiteSemio), SiteRank(SiteQuori))
	assert.Less(t, SiteRank(SiteQuori), SiteRank(SiteVizij))
	assert.Equal(t, len(Sites()), SiteRank("other"))
}

func TestDefault_Collections(t *testing.T) {
	reg := Default()
	assert.Equal(t, []string{"hardware", "software", "people", "organizations", "research", "events"}, reg.Names())

	for _, c := range reg {
		title, ok := c.Field(c.TitleField)
		require.True(t, ok, c.Name)
		assert.True(t, title.Required, c.Name)

		_, ok = c.Field("sites")
		assert.True(t, ok, c.Name)
		_, ok = c.Field("overrides")
		assert.True(t, ok, c.Name)
		assert.NotEmpty(t, c.Overridable(), c.Name)

		if c.Sort != SortOrder {
			_, ok := c.Field(c.DateField)
			assert.True(t, ok, "%s sorts by a date field it defines", c.Name)
		}
	}
}

func TestRegistry_Select(t *testing.T) {
	reg := Default()

	all, err := reg.Select(nil)
	require.NoError(t, err)
	assert.Len(t, all, 6)

	some, err := reg.Select([]string{"events", "people"})
	require.NoError(t, err)
	assert.Equal(t, []string{"events", "people"}, some.Names())

	_, err = reg.Select([]string{"blog"})
	assert.Error(t, err)
}

func TestValidate_Valid(t *testing.T) {
	c, _ := Default().Lookup("hardware")
	doc := parse(t, `---
title: Quori
description: Social robot platform
status: prototype
featured: true
order: 1
tags: [robot]
specs:
  - label: Height
    value: 1.2m
sites: [semio, quori]
overrides:
  quori:
    title: Quori Robot
---
`)
	assert.Empty(t, Validate(doc, c, Sites()))
}

func TestValidate_Errors(t *testing.T) {
	c, _ := Default().Lookup("hardware")
	doc := parse(t, `---
title: ""
status: flying
featured: "yes please"
order: first
tags: robot
specs:
  - label: Height
sites: [semio, mars]
---
`)
	issues := Validate(doc, c, Sites())
	assert.True(t, HasErrors(issues))
	assert.ElementsMatch(t, []string{"title", "description", "status", "featured", "order", "tags", "specs", "sites"}, fieldsOf(issues))
}

func TestValidate_ScalarSites(t *testing.T) {
	c, _ := Default().Lookup("people")
	doc := parse(t, "---\nname: Ada\ndescription: Engineer\nsites: semio\n---\n")

	issues := Validate(doc, c, Sites())
	require.Len(t, issues, 1)
	assert.Equal(t, "sites", issues[0].Field)
	assert.Equal(t, SeverityError, issues[0].Severity)

	// sync agrees: the document is published nowhere
	sites, managed := doc.Sites()
	assert.True(t, managed)
	assert.Empty(t, sites)
}

func TestValidate_Events(t *testing.T) {
	c, _ := Default().Lookup("events")
	doc := parse(t, `---
title: Robot Day
description: Open lab
startDate: next tuesday
type: workshop
---
`)
	issues := Validate(doc, c, Sites())
	require.Len(t, issues, 1)
	assert.Equal(t, "startDate", issues[0].Field)
	assert.Equal(t, SeverityError, issues[0].Severity)
}

func TestValidate_Overrides(t *testing.T) {
	c, _ := Default().Lookup("people")
	doc := parse(t, `---
name: Ada
description: Engineer
overrides:
  quori:
    role: Lead
    email: ada@example.org
    name: null
  pluto:
    role: Visitor
---
`)
	issues := Validate(doc, c, Sites())

	var warnings, errs []string
	for _, i := range issues {
		if i.Severity == SeverityWarning {
			warnings = append(warnings, i.Field)
		} else {
			errs = append(errs, i.Field)
		}
	}
	assert.Equal(t, []string{"overrides.quori.email"}, warnings)
	assert.ElementsMatch(t, []string{"overrides.quori.name", "overrides"}, errs)
}

func TestIssue_String(t *testing.T) {
	assert.Equal(t, "error: title: required field is missing",
		Issue{Field: "title", Message: "required field is missing", Severity: SeverityError}.String())
	assert.Equal(t, "warning: odd", Issue{Message: "odd", Severity: SeverityWarning}.String())
}
