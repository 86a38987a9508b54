package spec13

import (
	"encoding/xml"

	"github.com/bomweave/bomweave/bomweave/format/xmlio"
	"github.com/bomweave/bomweave/bomweave/model"
)

// Hash is the wire shape of a single digest.
type Hash struct {
	Alg     string `json:"alg"`
	Content string `json:"content"`
}

func hashesFromModel(hashes []model.Hash) []Hash {
	out := make([]Hash, 0, len(hashes))
	for _, h := range hashes {
		out = append(out, Hash{Alg: string(h.Alg), Content: string(h.Content)})
	}
	return out
}

func hashesToModel(hashes []Hash) []model.Hash {
	out := make([]model.Hash, 0, len(hashes))
	for _, h := range hashes {
		out = append(out, model.Hash{Alg: model.NormalizedString(h.Alg), Content: model.NormalizedString(h.Content)})
	}
	return out
}

func writeHashesXML(w *xmlio.Writer, hashes []Hash) error {
	if err := w.Start("hashes"); err != nil {
		return err
	}
	for _, h := range hashes {
		if err := w.Start("hash", xmlio.Attr{Name: "alg", Value: h.Alg}); err != nil {
			return err
		}
		if err := w.Text(h.Content); err != nil {
			return err
		}
		if err := w.End(); err != nil {
			return err
		}
	}
	return w.End()
}

func readHashesXML(d *xml.Decoder, start xml.StartElement) ([]Hash, error) {
	var hashes []Hash
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"hash": func(se xml.StartElement) error {
			alg, err := xmlio.RequireAttr(se, "alg")
			if err != nil {
				return err
			}
			content, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			hashes = append(hashes, Hash{Alg: alg, Content: content})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	if hashes == nil {
		hashes = []Hash{}
	}
	return hashes, nil
}

// Property is an arbitrary name/value pair.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func propertiesFromModel(props []model.Property) []Property {
	out := make([]Property, 0, len(props))
	for _, p := range props {
		out = append(out, Property{Name: string(p.Name), Value: string(p.Value)})
	}
	return out
}

func propertiesToModel(props []Property) []model.Property {
	out := make([]model.Property, 0, len(props))
	for _, p := range props {
		out = append(out, model.Property{Name: model.NormalizedString(p.Name), Value: model.NormalizedString(p.Value)})
	}
	return out
}

func writePropertiesXML(w *xmlio.Writer, props []Property) error {
	if err := w.Start("properties"); err != nil {
		return err
	}
	for _, p := range props {
		if err := w.Start("property", xmlio.Attr{Name: "name", Value: p.Name}); err != nil {
			return err
		}
		if err := w.Text(p.Value); err != nil {
			return err
		}
		if err := w.End(); err != nil {
			return err
		}
	}
	return w.End()
}

func readPropertiesXML(d *xml.Decoder, start xml.StartElement) ([]Property, error) {
	var props []Property
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"property": func(se xml.StartElement) error {
			name, err := xmlio.RequireAttr(se, "name")
			if err != nil {
				return err
			}
			value, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			props = append(props, Property{Name: name, Value: value})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	if props == nil {
		props = []Property{}
	}
	return props, nil
}

// ExternalReference points at a resource outside the BOM.
type ExternalReference struct {
	Type    string  `json:"type"`
	URL     string  `json:"url"`
	Comment *string `json:"comment,omitempty"`
	Hashes  *[]Hash `json:"hashes,omitempty"`
}

func externalReferencesFromModel(refs []model.ExternalReference) []ExternalReference {
	out := make([]ExternalReference, 0, len(refs))
	for _, r := range refs {
		wire := ExternalReference{Type: string(r.Type), URL: string(r.URL)}
		if r.Comment != nil {
			comment := string(*r.Comment)
			wire.Comment = &comment
		}
		if r.Hashes != nil {
			hashes := hashesFromModel(*r.Hashes)
			wire.Hashes = &hashes
		}
		out = append(out, wire)
	}
	return out
}

func externalReferencesToModel(refs []ExternalReference) []model.ExternalReference {
	out := make([]model.ExternalReference, 0, len(refs))
	for _, r := range refs {
		m := model.ExternalReference{Type: model.NormalizedString(r.Type), URL: model.URI(r.URL)}
		if r.Comment != nil {
			comment := model.NormalizedString(*r.Comment)
			m.Comment = &comment
		}
		if r.Hashes != nil {
			hashes := hashesToModel(*r.Hashes)
			m.Hashes = &hashes
		}
		out = append(out, m)
	}
	return out
}

func writeExternalReferencesXML(w *xmlio.Writer, refs []ExternalReference) error {
	if err := w.Start("externalReferences"); err != nil {
		return err
	}
	for _, r := range refs {
		if err := w.Start("reference", xmlio.Attr{Name: "type", Value: r.Type}); err != nil {
			return err
		}
		if err := w.SimpleTag("url", r.URL); err != nil {
			return err
		}
		if r.Comment != nil {
			if err := w.SimpleTag("comment", *r.Comment); err != nil {
				return err
			}
		}
		if r.Hashes != nil {
			if err := writeHashesXML(w, *r.Hashes); err != nil {
				return err
			}
		}
		if err := w.End(); err != nil {
			return err
		}
	}
	return w.End()
}

func readExternalReferencesXML(d *xml.Decoder, start xml.StartElement) ([]ExternalReference, error) {
	var refs []ExternalReference
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"reference": func(se xml.StartElement) error {
			ref, err := readExternalReferenceXML(d, se)
			if err != nil {
				return err
			}
			refs = append(refs, ref)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	if refs == nil {
		refs = []ExternalReference{}
	}
	return refs, nil
}

func readExternalReferenceXML(d *xml.Decoder, start xml.StartElement) (ExternalReference, error) {
	var ref ExternalReference
	refType, err := xmlio.RequireAttr(start, "type")
	if err != nil {
		return ref, err
	}
	ref.Type = refType
	var sawURL bool
	err = xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"url": func(se xml.StartElement) error {
			url, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			ref.URL = url
			sawURL = true
			return nil
		},
		"comment": func(se xml.StartElement) error {
			comment, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			ref.Comment = &comment
			return nil
		},
		"hashes": func(se xml.StartElement) error {
			hashes, err := readHashesXML(d, se)
			if err != nil {
				return err
			}
			ref.Hashes = &hashes
			return nil
		},
	})
	if err != nil {
		return ref, err
	}
	if !sawURL {
		return ref, requiredField(start.Name.Local, "url")
	}
	return ref, nil
}

// Dependency is one edge list of the dependency graph.
type Dependency struct {
	Ref       string    `json:"ref"`
	DependsOn *[]string `json:"dependsOn,omitempty"`
}

func dependenciesFromModel(deps []model.Dependency) []Dependency {
	out := make([]Dependency, 0, len(deps))
	for _, dep := range deps {
		wire := Dependency{Ref: string(dep.Ref)}
		if dep.DependsOn != nil {
			dependsOn := make([]string, 0, len(dep.DependsOn))
			for _, ref := range dep.DependsOn {
				dependsOn = append(dependsOn, string(ref))
			}
			wire.DependsOn = &dependsOn
		}
		out = append(out, wire)
	}
	return out
}

func dependenciesToModel(deps []Dependency) []model.Dependency {
	out := make([]model.Dependency, 0, len(deps))
	for _, dep := range deps {
		m := model.Dependency{Ref: model.BomReference(dep.Ref)}
		if dep.DependsOn != nil {
			for _, ref := range *dep.DependsOn {
				m.DependsOn = append(m.DependsOn, model.BomReference(ref))
			}
		}
		out = append(out, m)
	}
	return out
}

func writeDependenciesXML(w *xmlio.Writer, deps []Dependency) error {
	if err := w.Start("dependencies"); err != nil {
		return err
	}
	for _, dep := range deps {
		if err := w.Start("dependency", xmlio.Attr{Name: "ref", Value: dep.Ref}); err != nil {
			return err
		}
		if dep.DependsOn != nil {
			for _, ref := range *dep.DependsOn {
				if err := w.Start("dependency", xmlio.Attr{Name: "ref", Value: ref}); err != nil {
					return err
				}
				if err := w.End(); err != nil {
					return err
				}
			}
		}
		if err := w.End(); err != nil {
			return err
		}
	}
	return w.End()
}

func readDependenciesXML(d *xml.Decoder, start xml.StartElement) ([]Dependency, error) {
	var deps []Dependency
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"dependency": func(se xml.StartElement) error {
			dep, err := readDependencyXML(d, se)
			if err != nil {
				return err
			}
			deps = append(deps, dep)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	if deps == nil {
		deps = []Dependency{}
	}
	return deps, nil
}

func readDependencyXML(d *xml.Decoder, start xml.StartElement) (Dependency, error) {
	var dep Dependency
	ref, err := xmlio.RequireAttr(start, "ref")
	if err != nil {
		return dep, err
	}
	dep.Ref = ref
	err = xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"dependency": func(se xml.StartElement) error {
			nested, err := xmlio.RequireAttr(se, "ref")
			if err != nil {
				return err
			}
			if err := xmlio.ReadElements(d, se, xmlio.ElementHandlers{}); err != nil {
				return err
			}
			if dep.DependsOn == nil {
				dep.DependsOn = &[]string{}
			}
			*dep.DependsOn = append(*dep.DependsOn, nested)
			return nil
		},
	})
	return dep, err
}

// Composition is a completeness claim over refs in the BOM.
type Composition struct {
	Aggregate    string    `json:"aggregate"`
	Assemblies   *[]string `json:"assemblies,omitempty"`
	Dependencies *[]string `json:"dependencies,omitempty"`
}

func compositionsFromModel(comps []model.Composition) ([]Composition, error) {
	out := make([]Composition, 0, len(comps))
	for _, c := range comps {
		if c.Signature != nil {
			return nil, unsupported("composition signature")
		}
		wire := Composition{Aggregate: string(c.Aggregate)}
		if c.Assemblies != nil {
			assemblies := bomRefsFromModel(*c.Assemblies)
			wire.Assemblies = &assemblies
		}
		if c.Dependencies != nil {
			dependencies := bomRefsFromModel(*c.Dependencies)
			wire.Dependencies = &dependencies
		}
		out = append(out, wire)
	}
	return out, nil
}

func compositionsToModel(comps []Composition) ([]model.Composition, error) {
	out := make([]model.Composition, 0, len(comps))
	for _, c := range comps {
		aggregate, err := model.ParseAggregateType(c.Aggregate)
		if err != nil {
			return nil, valueError("composition.aggregate", c.Aggregate, "aggregate type")
		}
		m := model.Composition{Aggregate: aggregate}
		if c.Assemblies != nil {
			assemblies := bomRefsToModel(*c.Assemblies)
			m.Assemblies = &assemblies
		}
		if c.Dependencies != nil {
			dependencies := bomRefsToModel(*c.Dependencies)
			m.Dependencies = &dependencies
		}
		out = append(out, m)
	}
	return out, nil
}

func bomRefsFromModel(refs []model.BomReference) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		out = append(out, string(ref))
	}
	return out
}

func bomRefsToModel(refs []string) []model.BomReference {
	out := make([]model.BomReference, 0, len(refs))
	for _, ref := range refs {
		out = append(out, model.BomReference(ref))
	}
	return out
}

func writeCompositionsXML(w *xmlio.Writer, comps []Composition) error {
	if err := w.Start("compositions"); err != nil {
		return err
	}
	for _, c := range comps {
		if err := w.Start("composition"); err != nil {
			return err
		}
		if err := w.SimpleTag("aggregate", c.Aggregate); err != nil {
			return err
		}
		if c.Assemblies != nil {
			if err := writeRefListXML(w, "assemblies", "assembly", *c.Assemblies); err != nil {
				return err
			}
		}
		if c.Dependencies != nil {
			if err := writeRefListXML(w, "dependencies", "dependency", *c.Dependencies); err != nil {
				return err
			}
		}
		if err := w.End(); err != nil {
			return err
		}
	}
	return w.End()
}

func writeRefListXML(w *xmlio.Writer, containerTag, itemTag string, refs []string) error {
	if err := w.Start(containerTag); err != nil {
		return err
	}
	for _, ref := range refs {
		if err := w.Start(itemTag, xmlio.Attr{Name: "ref", Value: ref}); err != nil {
			return err
		}
		if err := w.End(); err != nil {
			return err
		}
	}
	return w.End()
}

func readCompositionsXML(d *xml.Decoder, start xml.StartElement) ([]Composition, error) {
	comps := []Composition{}
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"composition": func(se xml.StartElement) error {
			comp, err := readCompositionXML(d, se)
			if err != nil {
				return err
			}
			comps = append(comps, comp)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	if comps == nil {
		comps = []Composition{}
	}
	return comps, nil
}

func readCompositionXML(d *xml.Decoder, start xml.StartElement) (Composition, error) {
	var comp Composition
	var sawAggregate bool
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"aggregate": func(se xml.StartElement) error {
			aggregate, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			comp.Aggregate = aggregate
			sawAggregate = true
			return nil
		},
		"assemblies": func(se xml.StartElement) error {
			refs, err := readRefListXML(d, se, "assembly")
			if err != nil {
				return err
			}
			comp.Assemblies = &refs
			return nil
		},
		"dependencies": func(se xml.StartElement) error {
			refs, err := readRefListXML(d, se, "dependency")
			if err != nil {
				return err
			}
			comp.Dependencies = &refs
			return nil
		},
	})
	if err != nil {
		return comp, err
	}
	if !sawAggregate {
		return comp, requiredField(start.Name.Local, "aggregate")
	}
	return comp, nil
}

func writeTextListXML(w *xmlio.Writer, containerTag, itemTag string, values []string) error {
	if err := w.Start(containerTag); err != nil {
		return err
	}
	for _, value := range values {
		if err := w.SimpleTag(itemTag, value); err != nil {
			return err
		}
	}
	return w.End()
}

func readTextListXML(d *xml.Decoder, start xml.StartElement, itemTag string) ([]string, error) {
	values := []string{}
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		itemTag: func(se xml.StartElement) error {
			value, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			values = append(values, value)
			return nil
		},
	})
	return values, err
}

func readRefListXML(d *xml.Decoder, start xml.StartElement, itemTag string) ([]string, error) {
	refs := []string{}
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		itemTag: func(se xml.StartElement) error {
			ref, err := xmlio.RequireAttr(se, "ref")
			if err != nil {
				return err
			}
			if err := xmlio.ReadElements(d, se, xmlio.ElementHandlers{}); err != nil {
				return err
			}
			refs = append(refs, ref)
			return nil
		},
	})
	return refs, err
}

// Source names where an issue or vulnerability was published.
type Source struct {
	Name *string `json:"name,omitempty"`
	URL  *string `json:"url,omitempty"`
}

func sourceFromModel(src *model.Source) *Source {
	if src == nil {
		return nil
	}
	var out Source
	if src.Name != nil {
		name := string(*src.Name)
		out.Name = &name
	}
	if src.URL != nil {
		url := string(*src.URL)
		out.URL = &url
	}
	return &out
}

func sourceToModel(src *Source) *model.Source {
	if src == nil {
		return nil
	}
	var out model.Source
	if src.Name != nil {
		name := model.NormalizedString(*src.Name)
		out.Name = &name
	}
	if src.URL != nil {
		url := model.URI(*src.URL)
		out.URL = &url
	}
	return &out
}

func writeSourceXML(w *xmlio.Writer, tag string, src Source) error {
	if err := w.Start(tag); err != nil {
		return err
	}
	if src.Name != nil {
		if err := w.SimpleTag("name", *src.Name); err != nil {
			return err
		}
	}
	if src.URL != nil {
		if err := w.SimpleTag("url", *src.URL); err != nil {
			return err
		}
	}
	return w.End()
}

func readSourceXML(d *xml.Decoder, start xml.StartElement) (Source, error) {
	var src Source
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"name": func(se xml.StartElement) error {
			name, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			src.Name = &name
			return nil
		},
		"url": func(se xml.StartElement) error {
			url, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			src.URL = &url
			return nil
		},
	})
	return src, err
}
