// Package spec12 implements the CycloneDX 1.2 wire contract for XML and
// JSON. The 1.2 schema predates compositions, properties, component
// evidence, vulnerabilities, and enveloped signatures; a model populating
// any of those cannot target 1.2.
package spec12

import (
	"encoding/json"
	"encoding/xml"
	"io"
	"strconv"

	"github.com/bomweave/bomweave/bomweave/bomerr"
	"github.com/bomweave/bomweave/bomweave/format/xmlio"
	"github.com/bomweave/bomweave/bomweave/model"
)

const (
	// Version is the schema version this package speaks.
	Version = "1.2"

	// Namespace is the XML namespace for 1.2 documents.
	Namespace = "http://cyclonedx.org/schema/bom/" + Version

	bomFormat = "CycloneDX"
)

// Bom is the document envelope.
type Bom struct {
	BOMFormat          string               `json:"bomFormat"`
	SpecVersion        string               `json:"specVersion"`
	Version            *uint32              `json:"version,omitempty"`
	SerialNumber       *string              `json:"serialNumber,omitempty"`
	Metadata           *Metadata            `json:"metadata,omitempty"`
	Components         *[]Component         `json:"components,omitempty"`
	Services           *[]Service           `json:"services,omitempty"`
	ExternalReferences *[]ExternalReference `json:"externalReferences,omitempty"`
	Dependencies       *[]Dependency        `json:"dependencies,omitempty"`
}

func bomFromModel(m *model.Bom) (*Bom, error) {
	if m.Vulnerabilities != nil {
		return nil, unsupported("vulnerabilities")
	}
	if m.Signature != nil {
		return nil, unsupported("signature")
	}
	if m.Compositions != nil {
		return nil, unsupported("compositions")
	}
	if m.Properties != nil {
		return nil, unsupported("properties")
	}
	version := m.Version
	wire := Bom{
		BOMFormat:   bomFormat,
		SpecVersion: Version,
		Version:     &version,
	}
	if m.SerialNumber != nil {
		serialNumber := string(*m.SerialNumber)
		wire.SerialNumber = &serialNumber
	}
	metadata, err := metadataFromModel(m.Metadata)
	if err != nil {
		return nil, err
	}
	wire.Metadata = metadata
	if m.Components != nil {
		components, err := componentsFromModel(*m.Components)
		if err != nil {
			return nil, err
		}
		wire.Components = &components
	}
	if m.Services != nil {
		services, err := servicesFromModel(*m.Services)
		if err != nil {
			return nil, err
		}
		wire.Services = &services
	}
	if m.ExternalReferences != nil {
		refs := externalReferencesFromModel(*m.ExternalReferences)
		wire.ExternalReferences = &refs
	}
	if m.Dependencies != nil {
		deps := dependenciesFromModel(*m.Dependencies)
		wire.Dependencies = &deps
	}
	return &wire, nil
}

func bomToModel(wire *Bom) (*model.Bom, error) {
	m := model.Bom{Version: 1}
	if wire.Version != nil {
		m.Version = *wire.Version
	}
	if wire.SerialNumber != nil {
		serialNumber := model.SerialNumber(*wire.SerialNumber)
		m.SerialNumber = &serialNumber
	}
	metadata, err := metadataToModel(wire.Metadata)
	if err != nil {
		return nil, err
	}
	m.Metadata = metadata
	if wire.Components != nil {
		components, err := componentsToModel(*wire.Components)
		if err != nil {
			return nil, err
		}
		m.Components = &components
	}
	if wire.Services != nil {
		services := servicesToModel(*wire.Services)
		m.Services = &services
	}
	if wire.ExternalReferences != nil {
		refs := externalReferencesToModel(*wire.ExternalReferences)
		m.ExternalReferences = &refs
	}
	if wire.Dependencies != nil {
		deps := dependenciesToModel(*wire.Dependencies)
		m.Dependencies = &deps
	}
	return &m, nil
}

// EncodeXML writes the model as a 1.2 XML document.
func EncodeXML(m *model.Bom, out io.Writer) error {
	wire, err := bomFromModel(m)
	if err != nil {
		return err
	}
	w := xmlio.NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := writeBomXML(w, wire); err != nil {
		return err
	}
	return w.Flush()
}

// DecodeXML reads a 1.2 XML document into the model.
func DecodeXML(in io.Reader) (*model.Bom, error) {
	d := xml.NewDecoder(in)
	root, err := xmlio.DocumentStart(d)
	if err != nil {
		return nil, err
	}
	wire, err := readBomXML(d, root)
	if err != nil {
		return nil, err
	}
	if err := xmlio.DocumentEnd(d, "bom"); err != nil {
		return nil, err
	}
	return bomToModel(wire)
}

// EncodeJSON writes the model as a 1.2 JSON document.
func EncodeJSON(m *model.Bom, out io.Writer) error {
	wire, err := bomFromModel(m)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(wire)
}

// DecodeJSON reads a 1.2 JSON document into the model. Unknown keys are
// ignored; a wrong bomFormat or specVersion is rejected.
func DecodeJSON(in io.Reader) (*model.Bom, error) {
	var wire Bom
	if err := json.NewDecoder(in).Decode(&wire); err != nil {
		return nil, err
	}
	if wire.BOMFormat != bomFormat {
		return nil, &bomerr.FieldError{Path: "bomFormat", Reason: "expected " + strconv.Quote(bomFormat) + ", got " + strconv.Quote(wire.BOMFormat)}
	}
	if wire.SpecVersion != Version {
		return nil, &bomerr.FieldError{Path: "specVersion", Reason: "expected " + strconv.Quote(Version) + ", got " + strconv.Quote(wire.SpecVersion)}
	}
	return bomToModel(&wire)
}

func writeBomXML(w *xmlio.Writer, b *Bom) error {
	attrs := []xmlio.Attr{{Name: "xmlns", Value: Namespace}}
	if b.SerialNumber != nil {
		attrs = append(attrs, xmlio.Attr{Name: "serialNumber", Value: *b.SerialNumber})
	}
	if b.Version != nil {
		attrs = append(attrs, xmlio.Attr{Name: "version", Value: strconv.FormatUint(uint64(*b.Version), 10)})
	}
	if err := w.Start("bom", attrs...); err != nil {
		return err
	}
	if b.Metadata != nil {
		if err := writeMetadataXML(w, *b.Metadata); err != nil {
			return err
		}
	}
	if b.Components != nil {
		if err := writeComponentsXML(w, "components", *b.Components); err != nil {
			return err
		}
	}
	if b.Services != nil {
		if err := writeServicesXML(w, *b.Services); err != nil {
			return err
		}
	}
	if b.ExternalReferences != nil {
		if err := writeExternalReferencesXML(w, *b.ExternalReferences); err != nil {
			return err
		}
	}
	if b.Dependencies != nil {
		if err := writeDependenciesXML(w, *b.Dependencies); err != nil {
			return err
		}
	}
	return w.End()
}

func readBomXML(d *xml.Decoder, root xml.StartElement) (*Bom, error) {
	if root.Name.Local != "bom" {
		return nil, &bomerr.UnexpectedElementError{Element: "bom", Actual: root.Name.Local}
	}
	if root.Name.Space != Namespace {
		return nil, &bomerr.InvalidNamespaceError{Expected: Namespace, Actual: root.Name.Space}
	}
	b := Bom{BOMFormat: bomFormat, SpecVersion: Version}
	if serialNumber, ok := xmlio.OptionalAttr(root, "serialNumber"); ok {
		b.SerialNumber = &serialNumber
	}
	if versionAttr, ok := xmlio.OptionalAttr(root, "version"); ok {
		version, err := xmlio.ParseUint32("version", versionAttr)
		if err != nil {
			return nil, err
		}
		b.Version = &version
	}
	err := xmlio.ReadElements(d, root, xmlio.ElementHandlers{
		"metadata": func(se xml.StartElement) error {
			metadata, err := readMetadataXML(d, se)
			if err != nil {
				return err
			}
			b.Metadata = &metadata
			return nil
		},
		"components": func(se xml.StartElement) error {
			components, err := readComponentsXML(d, se)
			if err != nil {
				return err
			}
			b.Components = &components
			return nil
		},
		"services": func(se xml.StartElement) error {
			services, err := readServicesXML(d, se)
			if err != nil {
				return err
			}
			b.Services = &services
			return nil
		},
		"externalReferences": func(se xml.StartElement) error {
			refs, err := readExternalReferencesXML(d, se)
			if err != nil {
				return err
			}
			b.ExternalReferences = &refs
			return nil
		},
		"dependencies": func(se xml.StartElement) error {
			deps, err := readDependenciesXML(d, se)
			if err != nil {
				return err
			}
			b.Dependencies = &deps
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}
