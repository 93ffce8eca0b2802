package schema

// Default returns the content collections used by every site.
func Default() Registry {
	return Registry{
		hardware(),
		software(),
		people(),
		organizations(),
		research(),
		events(),
	}
}

func titleField(name, label string) Field {
	return Field{Name: name, Label: label, Widget: WidgetString, Required: true, Overridable: true}
}

// common fields shared by every collection, after the title field.
func commonFields() []Field {
	return []Field{
		{Name: "description", Label: "Description", Widget: WidgetText, Required: true, Overridable: true},
		{Name: "image", Label: "Image", Widget: WidgetImage, Overridable: true},
		{Name: "tags", Label: "Tags", Widget: WidgetList},
		{Name: "featured", Label: "Featured", Widget: WidgetBoolean, Default: false, Overridable: true},
		{Name: "order", Label: "Order", Widget: WidgetNumber, Overridable: true, Hint: "Lower numbers are listed first"},
		{Name: "draft", Label: "Draft", Widget: WidgetBoolean, Default: false, Overridable: true},
	}
}

func sharingFields() []Field {
	return []Field{
		{Name: "sites", Label: "Sites", Widget: WidgetSelect, Multiple: true, Options: Sites(),
			Hint: "Sites this entry is published to"},
		{Name: "overrides", Label: "Overrides", Widget: WidgetObject,
			Hint: "Per-site replacements for individual fields"},
	}
}

func linksField() Field {
	return Field{Name: "links", Label: "Links", Widget: WidgetObject, Fields: []Field{
		{Name: "website", Label: "Website", Widget: WidgetString},
		{Name: "github", Label: "GitHub", Widget: WidgetString},
		{Name: "docs", Label: "Documentation", Widget: WidgetString},
	}}
}

func build(c Collection, own ...Field) Collection {
	fields := []Field{titleField(c.TitleField, "Title")}
	if c.TitleField == "name" {
		fields[0].Label = "Name"
	}
	fields = append(fields, commonFields()...)
	fields = append(fields, own...)
	fields = append(fields, sharingFields()...)
	c.Fields = fields
	if c.Extension == "" {
		c.Extension = "mdx"
	}
	return c
}

func hardware() Collection {
	return build(Collection{
		Name: "hardware", Label: "Hardware", LabelSingular: "Hardware Project",
		TitleField: "title", Sort: SortOrder,
	},
		Field{Name: "status", Label: "Status", Widget: WidgetSelect, Required: true,
			Options: []string{"concept", "prototype", "development", "production", "retired"}, Overridable: true},
		Field{Name: "category", Label: "Category", Widget: WidgetSelect,
			Options: []string{"robot", "sensor", "actuator", "platform", "kit"}},
		Field{Name: "manufacturer", Label: "Manufacturer", Widget: WidgetRelation, Relation: "organizations"},
		Field{Name: "specs", Label: "Specifications", Widget: WidgetList, Fields: []Field{
			{Name: "label", Label: "Label", Widget: WidgetString, Required: true},
			{Name: "value", Label: "Value", Widget: WidgetString, Required: true},
		}},
		linksField(),
	)
}

func software() Collection {
	return build(Collection{
		Name: "software", Label: "Software", LabelSingular: "Software Project",
		TitleField: "title", Sort: SortOrder,
	},
		Field{Name: "status", Label: "Status", Widget: WidgetSelect, Required: true,
			Options: []string{"experimental", "alpha", "beta", "stable", "deprecated"}, Overridable: true},
		Field{Name: "license", Label: "License", Widget: WidgetString},
		Field{Name: "languages", Label: "Languages", Widget: WidgetList},
		Field{Name: "platforms", Label: "Platforms", Widget: WidgetList},
		linksField(),
	)
}

func people() Collection {
	return build(Collection{
		Name: "people", Label: "People", LabelSingular: "Person",
		TitleField: "name", Sort: SortOrder,
	},
		Field{Name: "role", Label: "Role", Widget: WidgetString, Overridable: true},
		Field{Name: "affiliation", Label: "Affiliation", Widget: WidgetRelation, Relation: "organizations"},
		Field{Name: "type", Label: "Type", Widget: WidgetSelect,
			Options: []string{"staff", "board", "advisor", "contributor", "alumni"}, Overridable: true},
		Field{Name: "email", Label: "Email", Widget: WidgetString},
		linksField(),
	)
}

func organizations() Collection {
	return build(Collection{
		Name: "organizations", Label: "Organizations", LabelSingular: "Organization",
		TitleField: "name", Sort: SortOrder,
	},
		Field{Name: "type", Label: "Type", Widget: WidgetSelect, Required: true,
			Options: []string{"university", "company", "nonprofit", "government", "lab"}},
		Field{Name: "relationship", Label: "Relationship", Widget: WidgetSelect,
			Options: []string{"partner", "sponsor", "collaborator", "member"}, Overridable: true},
		Field{Name: "website", Label: "Website", Widget: WidgetString},
		Field{Name: "logo", Label: "Logo", Widget: WidgetImage},
	)
}

func research() Collection {
	return build(Collection{
		Name: "research", Label: "Research", LabelSingular: "Publication",
		TitleField: "title", DateField: "date", Sort: SortDateDesc,
	},
		Field{Name: "date", Label: "Publication Date", Widget: WidgetDatetime, Required: true},
		Field{Name: "authors", Label: "Authors", Widget: WidgetList, Required: true},
		Field{Name: "type", Label: "Type", Widget: WidgetSelect,
			Options: []string{"paper", "preprint", "thesis", "talk", "poster"}},
		Field{Name: "venue", Label: "Venue", Widget: WidgetString},
		Field{Name: "doi", Label: "DOI", Widget: WidgetString},
		Field{Name: "pdf", Label: "PDF", Widget: WidgetString},
	)
}

func events() Collection {
	return build(Collection{
		Name: "events", Label: "Events", LabelSingular: "Event",
		TitleField: "title", DateField: "startDate", Sort: SortDateAsc,
	},
		Field{Name: "startDate", Label: "Start Date", Widget: WidgetDatetime, Required: true},
		Field{Name: "endDate", Label: "End Date", Widget: WidgetDatetime},
		Field{Name: "location", Label: "Location", Widget: WidgetString, Overridable: true},
		Field{Name: "type", Label: "Type", Widget: WidgetSelect,
			Options: []string{"workshop", "conference", "meetup", "webinar", "competition"}},
		Field{Name: "registration", Label: "Registration URL", Widget: WidgetString, Overridable: true},
	)
}
