package spec15

import (
	"encoding/xml"
	"strconv"

	"github.com/bomweave/bomweave/bomweave/format/xmlio"
	"github.com/bomweave/bomweave/bomweave/model"
)

// Component is the wire shape of a software unit. The JSON field order below
// matches the schema's declared property order.
type Component struct {
	Type               string                `json:"type"`
	MimeType           *string               `json:"mime-type,omitempty"`
	BomRef             *string               `json:"bom-ref,omitempty"`
	Supplier           *OrganizationalEntity `json:"supplier,omitempty"`
	Author             *string               `json:"author,omitempty"`
	Publisher          *string               `json:"publisher,omitempty"`
	Group              *string               `json:"group,omitempty"`
	Name               string                `json:"name"`
	Version            string                `json:"version"`
	Description        *string               `json:"description,omitempty"`
	Scope              *string               `json:"scope,omitempty"`
	Hashes             *[]Hash               `json:"hashes,omitempty"`
	Licenses           *Licenses             `json:"licenses,omitempty"`
	Copyright          *string               `json:"copyright,omitempty"`
	Cpe                *string               `json:"cpe,omitempty"`
	Purl               *string               `json:"purl,omitempty"`
	Swid               *Swid                 `json:"swid,omitempty"`
	Modified           *bool                 `json:"modified,omitempty"`
	Pedigree           *Pedigree             `json:"pedigree,omitempty"`
	ExternalReferences *[]ExternalReference  `json:"externalReferences,omitempty"`
	Properties         *[]Property           `json:"properties,omitempty"`
	Components         *[]Component          `json:"components,omitempty"`
	Evidence           *ComponentEvidence    `json:"evidence,omitempty"`
	Signature          *Signature            `json:"signature,omitempty"`
}

type Swid struct {
	TagID      string        `json:"tagId"`
	Name       string        `json:"name"`
	Version    *string       `json:"version,omitempty"`
	TagVersion *uint32       `json:"tagVersion,omitempty"`
	Patch      *bool         `json:"patch,omitempty"`
	Text       *AttachedText `json:"text,omitempty"`
	URL        *string       `json:"url,omitempty"`
}

type Pedigree struct {
	Ancestors   *[]Component `json:"ancestors,omitempty"`
	Descendants *[]Component `json:"descendants,omitempty"`
	Variants    *[]Component `json:"variants,omitempty"`
	Commits     *[]Commit    `json:"commits,omitempty"`
	Patches     *[]Patch     `json:"patches,omitempty"`
	Notes       *string      `json:"notes,omitempty"`
}

type Commit struct {
	UID       *string             `json:"uid,omitempty"`
	URL       *string             `json:"url,omitempty"`
	Author    *IdentifiableAction `json:"author,omitempty"`
	Committer *IdentifiableAction `json:"committer,omitempty"`
	Message   *string             `json:"message,omitempty"`
}

type IdentifiableAction struct {
	Timestamp *string `json:"timestamp,omitempty"`
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
}

type Patch struct {
	Type     string   `json:"type"`
	Diff     *Diff    `json:"diff,omitempty"`
	Resolves *[]Issue `json:"resolves,omitempty"`
}

type Diff struct {
	Text *AttachedText `json:"text,omitempty"`
	URL  *string       `json:"url,omitempty"`
}

type Issue struct {
	Type        string    `json:"type"`
	ID          *string   `json:"id,omitempty"`
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Source      *Source   `json:"source,omitempty"`
	References  *[]string `json:"references,omitempty"`
}

type ComponentEvidence struct {
	Licenses  *Licenses    `json:"licenses,omitempty"`
	Copyright *[]Copyright `json:"copyright,omitempty"`
}

type Copyright struct {
	Text string `json:"text"`
}

func componentsFromModel(components []model.Component) ([]Component, error) {
	out := make([]Component, 0, len(components))
	for _, c := range components {
		wire, err := componentFromModel(c)
		if err != nil {
			return nil, err
		}
		out = append(out, wire)
	}
	return out, nil
}

func componentsToModel(components []Component) ([]model.Component, error) {
	out := make([]model.Component, 0, len(components))
	for _, c := range components {
		m, err := componentToModel(c)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func componentFromModel(c model.Component) (Component, error) {
	wire := Component{
		Type:    string(c.Type),
		Name:    string(c.Name),
		Version: string(c.Version),
	}
	if c.MimeType != nil {
		mimeType := string(*c.MimeType)
		wire.MimeType = &mimeType
	}
	if c.BomRef != nil {
		bomRef := string(*c.BomRef)
		wire.BomRef = &bomRef
	}
	wire.Supplier = organizationFromModel(c.Supplier)
	if c.Author != nil {
		author := string(*c.Author)
		wire.Author = &author
	}
	if c.Publisher != nil {
		publisher := string(*c.Publisher)
		wire.Publisher = &publisher
	}
	if c.Group != nil {
		group := string(*c.Group)
		wire.Group = &group
	}
	if c.Description != nil {
		description := string(*c.Description)
		wire.Description = &description
	}
	if c.Scope != nil {
		scope := string(*c.Scope)
		wire.Scope = &scope
	}
	if c.Hashes != nil {
		hashes := hashesFromModel(*c.Hashes)
		wire.Hashes = &hashes
	}
	if c.Licenses != nil {
		licenses := licensesFromModel(*c.Licenses)
		wire.Licenses = &licenses
	}
	if c.Copyright != nil {
		copyright := string(*c.Copyright)
		wire.Copyright = &copyright
	}
	if c.Cpe != nil {
		cpe := string(*c.Cpe)
		wire.Cpe = &cpe
	}
	if c.Purl != nil {
		purl := string(*c.Purl)
		wire.Purl = &purl
	}
	wire.Swid = swidFromModel(c.Swid)
	wire.Modified = c.Modified
	pedigree, err := pedigreeFromModel(c.Pedigree)
	if err != nil {
		return wire, err
	}
	wire.Pedigree = pedigree
	if c.ExternalReferences != nil {
		refs := externalReferencesFromModel(*c.ExternalReferences)
		wire.ExternalReferences = &refs
	}
	if c.Properties != nil {
		properties := propertiesFromModel(*c.Properties)
		wire.Properties = &properties
	}
	if c.Components != nil {
		nested, err := componentsFromModel(*c.Components)
		if err != nil {
			return wire, err
		}
		wire.Components = &nested
	}
	if c.Evidence != nil {
		evidence := evidenceFromModel(*c.Evidence)
		wire.Evidence = &evidence
	}
	wire.Signature = signatureFromModel(c.Signature)
	return wire, nil
}

func componentToModel(c Component) (model.Component, error) {
	m := model.Component{
		Type:    model.NormalizedString(c.Type),
		Name:    model.NormalizedString(c.Name),
		Version: model.NormalizedString(c.Version),
	}
	if c.MimeType != nil {
		mimeType := model.NormalizedString(*c.MimeType)
		m.MimeType = &mimeType
	}
	if c.BomRef != nil {
		bomRef := model.BomReference(*c.BomRef)
		m.BomRef = &bomRef
	}
	m.Supplier = organizationToModel(c.Supplier)
	if c.Author != nil {
		author := model.NormalizedString(*c.Author)
		m.Author = &author
	}
	if c.Publisher != nil {
		publisher := model.NormalizedString(*c.Publisher)
		m.Publisher = &publisher
	}
	if c.Group != nil {
		group := model.NormalizedString(*c.Group)
		m.Group = &group
	}
	if c.Description != nil {
		description := model.NormalizedString(*c.Description)
		m.Description = &description
	}
	if c.Scope != nil {
		scope := model.NormalizedString(*c.Scope)
		m.Scope = &scope
	}
	if c.Hashes != nil {
		hashes := hashesToModel(*c.Hashes)
		m.Hashes = &hashes
	}
	if c.Licenses != nil {
		licenses := licensesToModel(*c.Licenses)
		m.Licenses = &licenses
	}
	if c.Copyright != nil {
		copyright := model.NormalizedString(*c.Copyright)
		m.Copyright = &copyright
	}
	if c.Cpe != nil {
		cpe := model.Cpe(*c.Cpe)
		m.Cpe = &cpe
	}
	if c.Purl != nil {
		purl := model.Purl(*c.Purl)
		m.Purl = &purl
	}
	m.Swid = swidToModel(c.Swid)
	m.Modified = c.Modified
	m.Pedigree = pedigreeToModelPtr(c.Pedigree)
	if c.ExternalReferences != nil {
		refs := externalReferencesToModel(*c.ExternalReferences)
		m.ExternalReferences = &refs
	}
	if c.Properties != nil {
		properties := propertiesToModel(*c.Properties)
		m.Properties = &properties
	}
	if c.Components != nil {
		nested, err := componentsToModel(*c.Components)
		if err != nil {
			return m, err
		}
		m.Components = &nested
	}
	if c.Evidence != nil {
		evidence := evidenceToModel(*c.Evidence)
		m.Evidence = &evidence
	}
	m.Signature = signatureToModel(c.Signature)
	return m, nil
}

func swidFromModel(s *model.Swid) *Swid {
	if s == nil {
		return nil
	}
	out := Swid{TagID: s.TagID, Name: s.Name, Version: s.Version, TagVersion: s.TagVersion, Patch: s.Patch}
	out.Text = attachedTextFromModel(s.Text)
	if s.URL != nil {
		url := string(*s.URL)
		out.URL = &url
	}
	return &out
}

func swidToModel(s *Swid) *model.Swid {
	if s == nil {
		return nil
	}
	out := model.Swid{TagID: s.TagID, Name: s.Name, Version: s.Version, TagVersion: s.TagVersion, Patch: s.Patch}
	out.Text = attachedTextToModel(s.Text)
	if s.URL != nil {
		url := model.URI(*s.URL)
		out.URL = &url
	}
	return &out
}

func pedigreeFromModel(p *model.Pedigree) (*Pedigree, error) {
	if p == nil {
		return nil, nil
	}
	var out Pedigree
	if p.Ancestors != nil {
		ancestors, err := componentsFromModel(*p.Ancestors)
		if err != nil {
			return nil, err
		}
		out.Ancestors = &ancestors
	}
	if p.Descendants != nil {
		descendants, err := componentsFromModel(*p.Descendants)
		if err != nil {
			return nil, err
		}
		out.Descendants = &descendants
	}
	if p.Variants != nil {
		variants, err := componentsFromModel(*p.Variants)
		if err != nil {
			return nil, err
		}
		out.Variants = &variants
	}
	if p.Commits != nil {
		commits := commitsFromModel(*p.Commits)
		out.Commits = &commits
	}
	if p.Patches != nil {
		patches := patchesFromModel(*p.Patches)
		out.Patches = &patches
	}
	if p.Notes != nil {
		notes := string(*p.Notes)
		out.Notes = &notes
	}
	return &out, nil
}

func pedigreeToModelPtr(p *Pedigree) *model.Pedigree {
	if p == nil {
		return nil
	}
	var out model.Pedigree
	if p.Ancestors != nil {
		ancestors, _ := componentsToModel(*p.Ancestors)
		out.Ancestors = &ancestors
	}
	if p.Descendants != nil {
		descendants, _ := componentsToModel(*p.Descendants)
		out.Descendants = &descendants
	}
	if p.Variants != nil {
		variants, _ := componentsToModel(*p.Variants)
		out.Variants = &variants
	}
	if p.Commits != nil {
		commits := commitsToModel(*p.Commits)
		out.Commits = &commits
	}
	if p.Patches != nil {
		patches := patchesToModel(*p.Patches)
		out.Patches = &patches
	}
	if p.Notes != nil {
		notes := model.NormalizedString(*p.Notes)
		out.Notes = &notes
	}
	return &out
}

func commitsFromModel(commits []model.Commit) []Commit {
	out := make([]Commit, 0, len(commits))
	for _, c := range commits {
		var wire Commit
		if c.UID != nil {
			uid := string(*c.UID)
			wire.UID = &uid
		}
		if c.URL != nil {
			url := string(*c.URL)
			wire.URL = &url
		}
		wire.Author = actionFromModel(c.Author)
		wire.Committer = actionFromModel(c.Committer)
		if c.Message != nil {
			message := string(*c.Message)
			wire.Message = &message
		}
		out = append(out, wire)
	}
	return out
}

func commitsToModel(commits []Commit) []model.Commit {
	out := make([]model.Commit, 0, len(commits))
	for _, c := range commits {
		var m model.Commit
		if c.UID != nil {
			uid := model.NormalizedString(*c.UID)
			m.UID = &uid
		}
		if c.URL != nil {
			url := model.URI(*c.URL)
			m.URL = &url
		}
		m.Author = actionToModel(c.Author)
		m.Committer = actionToModel(c.Committer)
		if c.Message != nil {
			message := model.NormalizedString(*c.Message)
			m.Message = &message
		}
		out = append(out, m)
	}
	return out
}

func actionFromModel(a *model.IdentifiableAction) *IdentifiableAction {
	if a == nil {
		return nil
	}
	var out IdentifiableAction
	if a.Timestamp != nil {
		timestamp := string(*a.Timestamp)
		out.Timestamp = &timestamp
	}
	if a.Name != nil {
		name := string(*a.Name)
		out.Name = &name
	}
	if a.Email != nil {
		email := string(*a.Email)
		out.Email = &email
	}
	return &out
}

func actionToModel(a *IdentifiableAction) *model.IdentifiableAction {
	if a == nil {
		return nil
	}
	var out model.IdentifiableAction
	if a.Timestamp != nil {
		timestamp := model.DateTime(*a.Timestamp)
		out.Timestamp = &timestamp
	}
	if a.Name != nil {
		name := model.NormalizedString(*a.Name)
		out.Name = &name
	}
	if a.Email != nil {
		email := model.NormalizedString(*a.Email)
		out.Email = &email
	}
	return &out
}

func patchesFromModel(patches []model.Patch) []Patch {
	out := make([]Patch, 0, len(patches))
	for _, p := range patches {
		wire := Patch{Type: string(p.Type)}
		if p.Diff != nil {
			diff := Diff{Text: attachedTextFromModel(p.Diff.Text)}
			if p.Diff.URL != nil {
				url := string(*p.Diff.URL)
				diff.URL = &url
			}
			wire.Diff = &diff
		}
		if p.Resolves != nil {
			issues := issuesFromModel(*p.Resolves)
			wire.Resolves = &issues
		}
		out = append(out, wire)
	}
	return out
}

func patchesToModel(patches []Patch) []model.Patch {
	out := make([]model.Patch, 0, len(patches))
	for _, p := range patches {
		m := model.Patch{Type: model.NormalizedString(p.Type)}
		if p.Diff != nil {
			diff := model.Diff{Text: attachedTextToModel(p.Diff.Text)}
			if p.Diff.URL != nil {
				url := model.URI(*p.Diff.URL)
				diff.URL = &url
			}
			m.Diff = &diff
		}
		if p.Resolves != nil {
			issues := issuesToModel(*p.Resolves)
			m.Resolves = &issues
		}
		out = append(out, m)
	}
	return out
}

func issuesFromModel(issues []model.Issue) []Issue {
	out := make([]Issue, 0, len(issues))
	for _, i := range issues {
		wire := Issue{Type: string(i.Type)}
		if i.ID != nil {
			id := string(*i.ID)
			wire.ID = &id
		}
		if i.Name != nil {
			name := string(*i.Name)
			wire.Name = &name
		}
		if i.Description != nil {
			description := string(*i.Description)
			wire.Description = &description
		}
		wire.Source = sourceFromModel(i.Source)
		if i.References != nil {
			references := make([]string, 0, len(*i.References))
			for _, r := range *i.References {
				references = append(references, string(r))
			}
			wire.References = &references
		}
		out = append(out, wire)
	}
	return out
}

func issuesToModel(issues []Issue) []model.Issue {
	out := make([]model.Issue, 0, len(issues))
	for _, i := range issues {
		m := model.Issue{Type: model.NormalizedString(i.Type)}
		if i.ID != nil {
			id := model.NormalizedString(*i.ID)
			m.ID = &id
		}
		if i.Name != nil {
			name := model.NormalizedString(*i.Name)
			m.Name = &name
		}
		if i.Description != nil {
			description := model.NormalizedString(*i.Description)
			m.Description = &description
		}
		m.Source = sourceToModel(i.Source)
		if i.References != nil {
			references := make([]model.URI, 0, len(*i.References))
			for _, r := range *i.References {
				references = append(references, model.URI(r))
			}
			m.References = &references
		}
		out = append(out, m)
	}
	return out
}

func evidenceFromModel(e model.ComponentEvidence) ComponentEvidence {
	var out ComponentEvidence
	if e.Licenses != nil {
		licenses := licensesFromModel(*e.Licenses)
		out.Licenses = &licenses
	}
	if e.Copyright != nil {
		copyrights := make([]Copyright, 0, len(*e.Copyright))
		for _, c := range *e.Copyright {
			copyrights = append(copyrights, Copyright{Text: c.Text})
		}
		out.Copyright = &copyrights
	}
	return out
}

func evidenceToModel(e ComponentEvidence) model.ComponentEvidence {
	var out model.ComponentEvidence
	if e.Licenses != nil {
		licenses := licensesToModel(*e.Licenses)
		out.Licenses = &licenses
	}
	if e.Copyright != nil {
		copyrights := make([]model.Copyright, 0, len(*e.Copyright))
		for _, c := range *e.Copyright {
			copyrights = append(copyrights, model.Copyright{Text: c.Text})
		}
		out.Copyright = &copyrights
	}
	return out
}

func writeComponentsXML(w *xmlio.Writer, tag string, components []Component) error {
	if err := w.Start(tag); err != nil {
		return err
	}
	for _, c := range components {
		if err := writeComponentXML(w, c); err != nil {
			return err
		}
	}
	return w.End()
}

func writeComponentXML(w *xmlio.Writer, c Component) error {
	attrs := []xmlio.Attr{{Name: "type", Value: c.Type}}
	if c.MimeType != nil {
		attrs = append(attrs, xmlio.Attr{Name: "mime-type", Value: *c.MimeType})
	}
	if c.BomRef != nil {
		attrs = append(attrs, xmlio.Attr{Name: "bom-ref", Value: *c.BomRef})
	}
	if err := w.Start("component", attrs...); err != nil {
		return err
	}
	if c.Supplier != nil {
		if err := writeOrganizationXML(w, "supplier", *c.Supplier); err != nil {
			return err
		}
	}
	if c.Author != nil {
		if err := w.SimpleTag("author", *c.Author); err != nil {
			return err
		}
	}
	if c.Publisher != nil {
		if err := w.SimpleTag("publisher", *c.Publisher); err != nil {
			return err
		}
	}
	if c.Group != nil {
		if err := w.SimpleTag("group", *c.Group); err != nil {
			return err
		}
	}
	if err := w.SimpleTag("name", c.Name); err != nil {
		return err
	}
	if err := w.SimpleTag("version", c.Version); err != nil {
		return err
	}
	if c.Description != nil {
		if err := w.SimpleTag("description", *c.Description); err != nil {
			return err
		}
	}
	if c.Scope != nil {
		if err := w.SimpleTag("scope", *c.Scope); err != nil {
			return err
		}
	}
	if c.Hashes != nil {
		if err := writeHashesXML(w, *c.Hashes); err != nil {
			return err
		}
	}
	if c.Licenses != nil {
		if err := writeLicensesXML(w, *c.Licenses); err != nil {
			return err
		}
	}
	if c.Copyright != nil {
		if err := w.SimpleTag("copyright", *c.Copyright); err != nil {
			return err
		}
	}
	if c.Cpe != nil {
		if err := w.SimpleTag("cpe", *c.Cpe); err != nil {
			return err
		}
	}
	if c.Purl != nil {
		if err := w.SimpleTag("purl", *c.Purl); err != nil {
			return err
		}
	}
	if c.Swid != nil {
		if err := writeSwidXML(w, *c.Swid); err != nil {
			return err
		}
	}
	if c.Modified != nil {
		if err := w.SimpleTag("modified", strconv.FormatBool(*c.Modified)); err != nil {
			return err
		}
	}
	if c.Pedigree != nil {
		if err := writePedigreeXML(w, *c.Pedigree); err != nil {
			return err
		}
	}
	if c.ExternalReferences != nil {
		if err := writeExternalReferencesXML(w, *c.ExternalReferences); err != nil {
			return err
		}
	}
	if c.Properties != nil {
		if err := writePropertiesXML(w, *c.Properties); err != nil {
			return err
		}
	}
	if c.Components != nil {
		if err := writeComponentsXML(w, "components", *c.Components); err != nil {
			return err
		}
	}
	if c.Evidence != nil {
		if err := writeEvidenceXML(w, *c.Evidence); err != nil {
			return err
		}
	}
	if c.Signature != nil {
		if err := writeSignatureXML(w, *c.Signature); err != nil {
			return err
		}
	}
	return w.End()
}

func readComponentsXML(d *xml.Decoder, start xml.StartElement) ([]Component, error) {
	components := []Component{}
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"component": func(se xml.StartElement) error {
			component, err := readComponentXML(d, se)
			if err != nil {
				return err
			}
			components = append(components, component)
			return nil
		},
	})
	return components, err
}

func readComponentXML(d *xml.Decoder, start xml.StartElement) (Component, error) {
	var c Component
	componentType, err := xmlio.RequireAttr(start, "type")
	if err != nil {
		return c, err
	}
	c.Type = componentType
	if mimeType, ok := xmlio.OptionalAttr(start, "mime-type"); ok {
		c.MimeType = &mimeType
	}
	if bomRef, ok := xmlio.OptionalAttr(start, "bom-ref"); ok {
		c.BomRef = &bomRef
	}
	var sawName, sawVersion bool
	err = xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"supplier": func(se xml.StartElement) error {
			org, err := readOrganizationXML(d, se)
			if err != nil {
				return err
			}
			c.Supplier = &org
			return nil
		},
		"author": func(se xml.StartElement) error {
			author, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			c.Author = &author
			return nil
		},
		"publisher": func(se xml.StartElement) error {
			publisher, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			c.Publisher = &publisher
			return nil
		},
		"group": func(se xml.StartElement) error {
			group, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			c.Group = &group
			return nil
		},
		"name": func(se xml.StartElement) error {
			name, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			c.Name = name
			sawName = true
			return nil
		},
		"version": func(se xml.StartElement) error {
			version, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			c.Version = version
			sawVersion = true
			return nil
		},
		"description": func(se xml.StartElement) error {
			description, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			c.Description = &description
			return nil
		},
		"scope": func(se xml.StartElement) error {
			scope, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			c.Scope = &scope
			return nil
		},
		"hashes": func(se xml.StartElement) error {
			hashes, err := readHashesXML(d, se)
			if err != nil {
				return err
			}
			c.Hashes = &hashes
			return nil
		},
		"licenses": func(se xml.StartElement) error {
			licenses, err := readLicensesXML(d, se)
			if err != nil {
				return err
			}
			c.Licenses = &licenses
			return nil
		},
		"copyright": func(se xml.StartElement) error {
			copyright, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			c.Copyright = &copyright
			return nil
		},
		"cpe": func(se xml.StartElement) error {
			cpe, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			c.Cpe = &cpe
			return nil
		},
		"purl": func(se xml.StartElement) error {
			purl, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			c.Purl = &purl
			return nil
		},
		"swid": func(se xml.StartElement) error {
			swid, err := readSwidXML(d, se)
			if err != nil {
				return err
			}
			c.Swid = &swid
			return nil
		},
		"modified": func(se xml.StartElement) error {
			text, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			modified, err := xmlio.ParseBool("modified", text)
			if err != nil {
				return err
			}
			c.Modified = &modified
			return nil
		},
		"pedigree": func(se xml.StartElement) error {
			pedigree, err := readPedigreeXML(d, se)
			if err != nil {
				return err
			}
			c.Pedigree = &pedigree
			return nil
		},
		"externalReferences": func(se xml.StartElement) error {
			refs, err := readExternalReferencesXML(d, se)
			if err != nil {
				return err
			}
			c.ExternalReferences = &refs
			return nil
		},
		"properties": func(se xml.StartElement) error {
			properties, err := readPropertiesXML(d, se)
			if err != nil {
				return err
			}
			c.Properties = &properties
			return nil
		},
		"components": func(se xml.StartElement) error {
			nested, err := readComponentsXML(d, se)
			if err != nil {
				return err
			}
			c.Components = &nested
			return nil
		},
		"evidence": func(se xml.StartElement) error {
			evidence, err := readEvidenceXML(d, se)
			if err != nil {
				return err
			}
			c.Evidence = &evidence
			return nil
		},
		"signature": func(se xml.StartElement) error {
			sig, err := readSignatureXML(d, se)
			if err != nil {
				return err
			}
			c.Signature = &sig
			return nil
		},
	})
	if err != nil {
		return c, err
	}
	if !sawName {
		return c, requiredField("component", "name")
	}
	if !sawVersion {
		return c, requiredField("component", "version")
	}
	return c, nil
}

func writeSwidXML(w *xmlio.Writer, s Swid) error {
	attrs := []xmlio.Attr{
		{Name: "tagId", Value: s.TagID},
		{Name: "name", Value: s.Name},
	}
	if s.Version != nil {
		attrs = append(attrs, xmlio.Attr{Name: "version", Value: *s.Version})
	}
	if s.TagVersion != nil {
		attrs = append(attrs, xmlio.Attr{Name: "tagVersion", Value: strconv.FormatUint(uint64(*s.TagVersion), 10)})
	}
	if s.Patch != nil {
		attrs = append(attrs, xmlio.Attr{Name: "patch", Value: strconv.FormatBool(*s.Patch)})
	}
	if err := w.Start("swid", attrs...); err != nil {
		return err
	}
	if s.Text != nil {
		if err := writeAttachedTextXML(w, "text", *s.Text); err != nil {
			return err
		}
	}
	if s.URL != nil {
		if err := w.SimpleTag("url", *s.URL); err != nil {
			return err
		}
	}
	return w.End()
}

func readSwidXML(d *xml.Decoder, start xml.StartElement) (Swid, error) {
	var s Swid
	tagID, err := xmlio.RequireAttr(start, "tagId")
	if err != nil {
		return s, err
	}
	s.TagID = tagID
	name, err := xmlio.RequireAttr(start, "name")
	if err != nil {
		return s, err
	}
	s.Name = name
	if version, ok := xmlio.OptionalAttr(start, "version"); ok {
		s.Version = &version
	}
	if tagVersion, ok := xmlio.OptionalAttr(start, "tagVersion"); ok {
		parsed, err := xmlio.ParseUint32("tagVersion", tagVersion)
		if err != nil {
			return s, err
		}
		s.TagVersion = &parsed
	}
	if patch, ok := xmlio.OptionalAttr(start, "patch"); ok {
		parsed, err := xmlio.ParseBool("patch", patch)
		if err != nil {
			return s, err
		}
		s.Patch = &parsed
	}
	err = xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"text": func(se xml.StartElement) error {
			text, err := readAttachedTextXML(d, se)
			if err != nil {
				return err
			}
			s.Text = &text
			return nil
		},
		"url": func(se xml.StartElement) error {
			url, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			s.URL = &url
			return nil
		},
	})
	return s, err
}

func writePedigreeXML(w *xmlio.Writer, p Pedigree) error {
	if err := w.Start("pedigree"); err != nil {
		return err
	}
	if p.Ancestors != nil {
		if err := writeComponentsXML(w, "ancestors", *p.Ancestors); err != nil {
			return err
		}
	}
	if p.Descendants != nil {
		if err := writeComponentsXML(w, "descendants", *p.Descendants); err != nil {
			return err
		}
	}
	if p.Variants != nil {
		if err := writeComponentsXML(w, "variants", *p.Variants); err != nil {
			return err
		}
	}
	if p.Commits != nil {
		if err := writeCommitsXML(w, *p.Commits); err != nil {
			return err
		}
	}
	if p.Patches != nil {
		if err := writePatchesXML(w, *p.Patches); err != nil {
			return err
		}
	}
	if p.Notes != nil {
		if err := w.SimpleTag("notes", *p.Notes); err != nil {
			return err
		}
	}
	return w.End()
}

func readPedigreeXML(d *xml.Decoder, start xml.StartElement) (Pedigree, error) {
	var p Pedigree
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"ancestors": func(se xml.StartElement) error {
			ancestors, err := readComponentsXML(d, se)
			if err != nil {
				return err
			}
			p.Ancestors = &ancestors
			return nil
		},
		"descendants": func(se xml.StartElement) error {
			descendants, err := readComponentsXML(d, se)
			if err != nil {
				return err
			}
			p.Descendants = &descendants
			return nil
		},
		"variants": func(se xml.StartElement) error {
			variants, err := readComponentsXML(d, se)
			if err != nil {
				return err
			}
			p.Variants = &variants
			return nil
		},
		"commits": func(se xml.StartElement) error {
			commits, err := readCommitsXML(d, se)
			if err != nil {
				return err
			}
			p.Commits = &commits
			return nil
		},
		"patches": func(se xml.StartElement) error {
			patches, err := readPatchesXML(d, se)
			if err != nil {
				return err
			}
			p.Patches = &patches
			return nil
		},
		"notes": func(se xml.StartElement) error {
			notes, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			p.Notes = &notes
			return nil
		},
	})
	return p, err
}

func writeCommitsXML(w *xmlio.Writer, commits []Commit) error {
	if err := w.Start("commits"); err != nil {
		return err
	}
	for _, c := range commits {
		if err := w.Start("commit"); err != nil {
			return err
		}
		if c.UID != nil {
			if err := w.SimpleTag("uid", *c.UID); err != nil {
				return err
			}
		}
		if c.URL != nil {
			if err := w.SimpleTag("url", *c.URL); err != nil {
				return err
			}
		}
		if c.Author != nil {
			if err := writeActionXML(w, "author", *c.Author); err != nil {
				return err
			}
		}
		if c.Committer != nil {
			if err := writeActionXML(w, "committer", *c.Committer); err != nil {
				return err
			}
		}
		if c.Message != nil {
			if err := w.SimpleTag("message", *c.Message); err != nil {
				return err
			}
		}
		if err := w.End(); err != nil {
			return err
		}
	}
	return w.End()
}

func readCommitsXML(d *xml.Decoder, start xml.StartElement) ([]Commit, error) {
	commits := []Commit{}
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"commit": func(se xml.StartElement) error {
			commit, err := readCommitXML(d, se)
			if err != nil {
				return err
			}
			commits = append(commits, commit)
			return nil
		},
	})
	return commits, err
}

func readCommitXML(d *xml.Decoder, start xml.StartElement) (Commit, error) {
	var c Commit
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"uid": func(se xml.StartElement) error {
			uid, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			c.UID = &uid
			return nil
		},
		"url": func(se xml.StartElement) error {
			url, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			c.URL = &url
			return nil
		},
		"author": func(se xml.StartElement) error {
			action, err := readActionXML(d, se)
			if err != nil {
				return err
			}
			c.Author = &action
			return nil
		},
		"committer": func(se xml.StartElement) error {
			action, err := readActionXML(d, se)
			if err != nil {
				return err
			}
			c.Committer = &action
			return nil
		},
		"message": func(se xml.StartElement) error {
			message, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			c.Message = &message
			return nil
		},
	})
	return c, err
}

func writeActionXML(w *xmlio.Writer, tag string, a IdentifiableAction) error {
	if err := w.Start(tag); err != nil {
		return err
	}
	if a.Timestamp != nil {
		if err := w.SimpleTag("timestamp", *a.Timestamp); err != nil {
			return err
		}
	}
	if a.Name != nil {
		if err := w.SimpleTag("name", *a.Name); err != nil {
			return err
		}
	}
	if a.Email != nil {
		if err := w.SimpleTag("email", *a.Email); err != nil {
			return err
		}
	}
	return w.End()
}

func readActionXML(d *xml.Decoder, start xml.StartElement) (IdentifiableAction, error) {
	var a IdentifiableAction
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"timestamp": func(se xml.StartElement) error {
			timestamp, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			a.Timestamp = &timestamp
			return nil
		},
		"name": func(se xml.StartElement) error {
			name, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			a.Name = &name
			return nil
		},
		"email": func(se xml.StartElement) error {
			email, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			a.Email = &email
			return nil
		},
	})
	return a, err
}

func writePatchesXML(w *xmlio.Writer, patches []Patch) error {
	if err := w.Start("patches"); err != nil {
		return err
	}
	for _, p := range patches {
		if err := w.Start("patch", xmlio.Attr{Name: "type", Value: p.Type}); err != nil {
			return err
		}
		if p.Diff != nil {
			if err := w.Start("diff"); err != nil {
				return err
			}
			if p.Diff.Text != nil {
				if err := writeAttachedTextXML(w, "text", *p.Diff.Text); err != nil {
					return err
				}
			}
			if p.Diff.URL != nil {
				if err := w.SimpleTag("url", *p.Diff.URL); err != nil {
					return err
				}
			}
			if err := w.End(); err != nil {
				return err
			}
		}
		if p.Resolves != nil {
			if err := writeIssuesXML(w, *p.Resolves); err != nil {
				return err
			}
		}
		if err := w.End(); err != nil {
			return err
		}
	}
	return w.End()
}

func readPatchesXML(d *xml.Decoder, start xml.StartElement) ([]Patch, error) {
	patches := []Patch{}
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"patch": func(se xml.StartElement) error {
			patch, err := readPatchXML(d, se)
			if err != nil {
				return err
			}
			patches = append(patches, patch)
			return nil
		},
	})
	return patches, err
}

func readPatchXML(d *xml.Decoder, start xml.StartElement) (Patch, error) {
	var p Patch
	patchType, err := xmlio.RequireAttr(start, "type")
	if err != nil {
		return p, err
	}
	p.Type = patchType
	err = xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"diff": func(se xml.StartElement) error {
			diff, err := readDiffXML(d, se)
			if err != nil {
				return err
			}
			p.Diff = &diff
			return nil
		},
		"resolves": func(se xml.StartElement) error {
			issues, err := readIssuesXML(d, se)
			if err != nil {
				return err
			}
			p.Resolves = &issues
			return nil
		},
	})
	return p, err
}

func readDiffXML(d *xml.Decoder, start xml.StartElement) (Diff, error) {
	var diff Diff
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"text": func(se xml.StartElement) error {
			text, err := readAttachedTextXML(d, se)
			if err != nil {
				return err
			}
			diff.Text = &text
			return nil
		},
		"url": func(se xml.StartElement) error {
			url, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			diff.URL = &url
			return nil
		},
	})
	return diff, err
}

func writeIssuesXML(w *xmlio.Writer, issues []Issue) error {
	if err := w.Start("resolves"); err != nil {
		return err
	}
	for _, i := range issues {
		if err := w.Start("issue", xmlio.Attr{Name: "type", Value: i.Type}); err != nil {
			return err
		}
		if i.ID != nil {
			if err := w.SimpleTag("id", *i.ID); err != nil {
				return err
			}
		}
		if i.Name != nil {
			if err := w.SimpleTag("name", *i.Name); err != nil {
				return err
			}
		}
		if i.Description != nil {
			if err := w.SimpleTag("description", *i.Description); err != nil {
				return err
			}
		}
		if i.Source != nil {
			if err := writeSourceXML(w, "source", *i.Source); err != nil {
				return err
			}
		}
		if i.References != nil {
			if err := w.Start("references"); err != nil {
				return err
			}
			for _, r := range *i.References {
				if err := w.SimpleTag("url", r); err != nil {
					return err
				}
			}
			if err := w.End(); err != nil {
				return err
			}
		}
		if err := w.End(); err != nil {
			return err
		}
	}
	return w.End()
}

func readIssuesXML(d *xml.Decoder, start xml.StartElement) ([]Issue, error) {
	issues := []Issue{}
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"issue": func(se xml.StartElement) error {
			issue, err := readIssueXML(d, se)
			if err != nil {
				return err
			}
			issues = append(issues, issue)
			return nil
		},
	})
	return issues, err
}

func readIssueXML(d *xml.Decoder, start xml.StartElement) (Issue, error) {
	var i Issue
	issueType, err := xmlio.RequireAttr(start, "type")
	if err != nil {
		return i, err
	}
	i.Type = issueType
	err = xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"id": func(se xml.StartElement) error {
			id, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			i.ID = &id
			return nil
		},
		"name": func(se xml.StartElement) error {
			name, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			i.Name = &name
			return nil
		},
		"description": func(se xml.StartElement) error {
			description, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			i.Description = &description
			return nil
		},
		"source": func(se xml.StartElement) error {
			source, err := readSourceXML(d, se)
			if err != nil {
				return err
			}
			i.Source = &source
			return nil
		},
		"references": func(se xml.StartElement) error {
			references := []string{}
			err := xmlio.ReadElements(d, se, xmlio.ElementHandlers{
				"url": func(urlStart xml.StartElement) error {
					url, err := xmlio.ReadSimpleTag(d, urlStart)
					if err != nil {
						return err
					}
					references = append(references, url)
					return nil
				},
			})
			if err != nil {
				return err
			}
			i.References = &references
			return nil
		},
	})
	return i, err
}

func writeEvidenceXML(w *xmlio.Writer, e ComponentEvidence) error {
	if err := w.Start("evidence"); err != nil {
		return err
	}
	if e.Licenses != nil {
		if err := writeLicensesXML(w, *e.Licenses); err != nil {
			return err
		}
	}
	if e.Copyright != nil {
		if err := w.Start("copyright"); err != nil {
			return err
		}
		for _, c := range *e.Copyright {
			if err := w.SimpleTag("text", c.Text); err != nil {
				return err
			}
		}
		if err := w.End(); err != nil {
			return err
		}
	}
	return w.End()
}

func readEvidenceXML(d *xml.Decoder, start xml.StartElement) (ComponentEvidence, error) {
	var e ComponentEvidence
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"licenses": func(se xml.StartElement) error {
			licenses, err := readLicensesXML(d, se)
			if err != nil {
				return err
			}
			e.Licenses = &licenses
			return nil
		},
		"copyright": func(se xml.StartElement) error {
			copyrights := []Copyright{}
			err := xmlio.ReadElements(d, se, xmlio.ElementHandlers{
				"text": func(textStart xml.StartElement) error {
					text, err := xmlio.ReadSimpleTag(d, textStart)
					if err != nil {
						return err
					}
					copyrights = append(copyrights, Copyright{Text: text})
					return nil
				},
			})
			if err != nil {
				return err
			}
			e.Copyright = &copyrights
			return nil
		},
	})
	return e, err
}
