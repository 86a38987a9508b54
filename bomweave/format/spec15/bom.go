// Package spec15 implements the CycloneDX 1.5 wire contract for XML and
// JSON. The 1.5 wire shape matches 1.4; the delta is the namespace and the
// acceptance of the CVSSv4 and SSVC rating methods.
package spec15

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
	Version = "1.5"

	// Namespace is the XML namespace for 1.5 documents.
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
	Compositions       *[]Composition       `json:"compositions,omitempty"`
	Properties         *[]Property          `json:"properties,omitempty"`
	Vulnerabilities    *[]Vulnerability     `json:"vulnerabilities,omitempty"`
	Signature          *Signature           `json:"signature,omitempty"`
}

func bomFromModel(m *model.Bom) (*Bom, error) {
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
		services := servicesFromModel(*m.Services)
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
	if m.Compositions != nil {
		compositions := compositionsFromModel(*m.Compositions)
		wire.Compositions = &compositions
	}
	if m.Properties != nil {
		properties := propertiesFromModel(*m.Properties)
		wire.Properties = &properties
	}
	if m.Vulnerabilities != nil {
		vulns, err := vulnerabilitiesFromModel(*m.Vulnerabilities)
		if err != nil {
			return nil, err
		}
		wire.Vulnerabilities = &vulns
	}
	wire.Signature = signatureFromModel(m.Signature)
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
	if wire.Compositions != nil {
		compositions, err := compositionsToModel(*wire.Compositions)
		if err != nil {
			return nil, err
		}
		m.Compositions = &compositions
	}
	if wire.Properties != nil {
		properties := propertiesToModel(*wire.Properties)
		m.Properties = &properties
	}
	if wire.Vulnerabilities != nil {
		vulns, err := vulnerabilitiesToModel(*wire.Vulnerabilities)
		if err != nil {
			return nil, err
		}
		m.Vulnerabilities = &vulns
	}
	m.Signature = signatureToModel(wire.Signature)
	return &m, nil
}

// EncodeXML writes the model as a 1.5 XML document.
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

// DecodeXML reads a 1.5 XML document into the model.
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

// EncodeJSON writes the model as a 1.5 JSON document.
func EncodeJSON(m *model.Bom, out io.Writer) error {
	wire, err := bomFromModel(m)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(wire)
}

// DecodeJSON reads a 1.5 JSON document into the model. Unknown keys are
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
	if b.Compositions != nil {
		if err := writeCompositionsXML(w, *b.Compositions); err != nil {
			return err
		}
	}
	if b.Properties != nil {
		if err := writePropertiesXML(w, *b.Properties); err != nil {
			return err
		}
	}
	if b.Vulnerabilities != nil {
		if err := writeVulnerabilitiesXML(w, *b.Vulnerabilities); err != nil {
			return err
		}
	}
	if b.Signature != nil {
		if err := writeSignatureXML(w, *b.Signature); err != nil {
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
		"compositions": func(se xml.StartElement) error {
			compositions, err := readCompositionsXML(d, se)
			if err != nil {
				return err
			}
			b.Compositions = &compositions
			return nil
		},
		"properties": func(se xml.StartElement) error {
			properties, err := readPropertiesXML(d, se)
			if err != nil {
				return err
			}
			b.Properties = &properties
			return nil
		},
		"vulnerabilities": func(se xml.StartElement) error {
			vulns, err := readVulnerabilitiesXML(d, se)
			if err != nil {
				return err
			}
			b.Vulnerabilities = &vulns
			return nil
		},
		"signature": func(se xml.StartElement) error {
			sig, err := readSignatureXML(d, se)
			if err != nil {
				return err
			}
			b.Signature = &sig
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}
