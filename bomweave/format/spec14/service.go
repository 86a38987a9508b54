package spec14

import (
	"encoding/xml"
	"strconv"

	"github.com/bomweave/bomweave/bomweave/format/xmlio"
	"github.com/bomweave/bomweave/bomweave/model"
)

type Service struct {
	BomRef             *string               `json:"bom-ref,omitempty"`
	Provider           *OrganizationalEntity `json:"provider,omitempty"`
	Group              *string               `json:"group,omitempty"`
	Name               string                `json:"name"`
	Version            *string               `json:"version,omitempty"`
	Description        *string               `json:"description,omitempty"`
	Endpoints          *[]string             `json:"endpoints,omitempty"`
	Authenticated      *bool                 `json:"authenticated,omitempty"`
	TrustBoundary      *bool                 `json:"x-trust-boundary,omitempty"`
	Data               *[]DataClassification `json:"data,omitempty"`
	Licenses           *Licenses             `json:"licenses,omitempty"`
	ExternalReferences *[]ExternalReference  `json:"externalReferences,omitempty"`
	Properties         *[]Property           `json:"properties,omitempty"`
	Services           *[]Service            `json:"services,omitempty"`
	Signature          *Signature            `json:"signature,omitempty"`
}

type DataClassification struct {
	Flow           string `json:"flow"`
	Classification string `json:"classification"`
}

func servicesFromModel(services []model.Service) []Service {
	out := make([]Service, 0, len(services))
	for _, s := range services {
		out = append(out, serviceFromModel(s))
	}
	return out
}

func servicesToModel(services []Service) []model.Service {
	out := make([]model.Service, 0, len(services))
	for _, s := range services {
		out = append(out, serviceToModel(s))
	}
	return out
}

func serviceFromModel(s model.Service) Service {
	wire := Service{Name: string(s.Name)}
	if s.BomRef != nil {
		bomRef := string(*s.BomRef)
		wire.BomRef = &bomRef
	}
	wire.Provider = organizationFromModel(s.Provider)
	if s.Group != nil {
		group := string(*s.Group)
		wire.Group = &group
	}
	if s.Version != nil {
		version := string(*s.Version)
		wire.Version = &version
	}
	if s.Description != nil {
		description := string(*s.Description)
		wire.Description = &description
	}
	if s.Endpoints != nil {
		endpoints := make([]string, 0, len(*s.Endpoints))
		for _, e := range *s.Endpoints {
			endpoints = append(endpoints, string(e))
		}
		wire.Endpoints = &endpoints
	}
	wire.Authenticated = s.Authenticated
	wire.TrustBoundary = s.TrustBoundary
	if s.Data != nil {
		data := make([]DataClassification, 0, len(*s.Data))
		for _, c := range *s.Data {
			data = append(data, DataClassification{Flow: string(c.Flow), Classification: string(c.Classification)})
		}
		wire.Data = &data
	}
	if s.Licenses != nil {
		licenses := licensesFromModel(*s.Licenses)
		wire.Licenses = &licenses
	}
	if s.ExternalReferences != nil {
		refs := externalReferencesFromModel(*s.ExternalReferences)
		wire.ExternalReferences = &refs
	}
	if s.Properties != nil {
		properties := propertiesFromModel(*s.Properties)
		wire.Properties = &properties
	}
	if s.Services != nil {
		nested := servicesFromModel(*s.Services)
		wire.Services = &nested
	}
	wire.Signature = signatureFromModel(s.Signature)
	return wire
}

func serviceToModel(s Service) model.Service {
	m := model.Service{Name: model.NormalizedString(s.Name)}
	if s.BomRef != nil {
		bomRef := model.BomReference(*s.BomRef)
		m.BomRef = &bomRef
	}
	m.Provider = organizationToModel(s.Provider)
	if s.Group != nil {
		group := model.NormalizedString(*s.Group)
		m.Group = &group
	}
	if s.Version != nil {
		version := model.NormalizedString(*s.Version)
		m.Version = &version
	}
	if s.Description != nil {
		description := model.NormalizedString(*s.Description)
		m.Description = &description
	}
	if s.Endpoints != nil {
		endpoints := make([]model.URI, 0, len(*s.Endpoints))
		for _, e := range *s.Endpoints {
			endpoints = append(endpoints, model.URI(e))
		}
		m.Endpoints = &endpoints
	}
	m.Authenticated = s.Authenticated
	m.TrustBoundary = s.TrustBoundary
	if s.Data != nil {
		data := make([]model.DataClassification, 0, len(*s.Data))
		for _, c := range *s.Data {
			data = append(data, model.DataClassification{
				Flow:           model.NormalizedString(c.Flow),
				Classification: model.NormalizedString(c.Classification),
			})
		}
		m.Data = &data
	}
	if s.Licenses != nil {
		licenses := licensesToModel(*s.Licenses)
		m.Licenses = &licenses
	}
	if s.ExternalReferences != nil {
		refs := externalReferencesToModel(*s.ExternalReferences)
		m.ExternalReferences = &refs
	}
	if s.Properties != nil {
		properties := propertiesToModel(*s.Properties)
		m.Properties = &properties
	}
	if s.Services != nil {
		nested := servicesToModel(*s.Services)
		m.Services = &nested
	}
	m.Signature = signatureToModel(s.Signature)
	return m
}

func writeServicesXML(w *xmlio.Writer, services []Service) error {
	if err := w.Start("services"); err != nil {
		return err
	}
	for _, s := range services {
		if err := writeServiceXML(w, s); err != nil {
			return err
		}
	}
	return w.End()
}

func writeServiceXML(w *xmlio.Writer, s Service) error {
	var attrs []xmlio.Attr
	if s.BomRef != nil {
		attrs = append(attrs, xmlio.Attr{Name: "bom-ref", Value: *s.BomRef})
	}
	if err := w.Start("service", attrs...); err != nil {
		return err
	}
	if s.Provider != nil {
		if err := writeOrganizationXML(w, "provider", *s.Provider); err != nil {
			return err
		}
	}
	if s.Group != nil {
		if err := w.SimpleTag("group", *s.Group); err != nil {
			return err
		}
	}
	if err := w.SimpleTag("name", s.Name); err != nil {
		return err
	}
	if s.Version != nil {
		if err := w.SimpleTag("version", *s.Version); err != nil {
			return err
		}
	}
	if s.Description != nil {
		if err := w.SimpleTag("description", *s.Description); err != nil {
			return err
		}
	}
	if s.Endpoints != nil {
		if err := writeTextListXML(w, "endpoints", "endpoint", *s.Endpoints); err != nil {
			return err
		}
	}
	if s.Authenticated != nil {
		if err := w.SimpleTag("authenticated", strconv.FormatBool(*s.Authenticated)); err != nil {
			return err
		}
	}
	if s.TrustBoundary != nil {
		if err := w.SimpleTag("x-trust-boundary", strconv.FormatBool(*s.TrustBoundary)); err != nil {
			return err
		}
	}
	if s.Data != nil {
		if err := w.Start("data"); err != nil {
			return err
		}
		for _, c := range *s.Data {
			if err := w.Start("classification", xmlio.Attr{Name: "flow", Value: c.Flow}); err != nil {
				return err
			}
			if err := w.Text(c.Classification); err != nil {
				return err
			}
			if err := w.End(); err != nil {
				return err
			}
		}
		if err := w.End(); err != nil {
			return err
		}
	}
	if s.Licenses != nil {
		if err := writeLicensesXML(w, *s.Licenses); err != nil {
			return err
		}
	}
	if s.ExternalReferences != nil {
		if err := writeExternalReferencesXML(w, *s.ExternalReferences); err != nil {
			return err
		}
	}
	if s.Properties != nil {
		if err := writePropertiesXML(w, *s.Properties); err != nil {
			return err
		}
	}
	if s.Services != nil {
		if err := writeServicesXML(w, *s.Services); err != nil {
			return err
		}
	}
	if s.Signature != nil {
		if err := writeSignatureXML(w, *s.Signature); err != nil {
			return err
		}
	}
	return w.End()
}

func readServicesXML(d *xml.Decoder, start xml.StartElement) ([]Service, error) {
	services := []Service{}
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"service": func(se xml.StartElement) error {
			service, err := readServiceXML(d, se)
			if err != nil {
				return err
			}
			services = append(services, service)
			return nil
		},
	})
	return services, err
}

func readServiceXML(d *xml.Decoder, start xml.StartElement) (Service, error) {
	var s Service
	if bomRef, ok := xmlio.OptionalAttr(start, "bom-ref"); ok {
		s.BomRef = &bomRef
	}
	var sawName bool
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"provider": func(se xml.StartElement) error {
			org, err := readOrganizationXML(d, se)
			if err != nil {
				return err
			}
			s.Provider = &org
			return nil
		},
		"group": func(se xml.StartElement) error {
			group, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			s.Group = &group
			return nil
		},
		"name": func(se xml.StartElement) error {
			name, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			s.Name = name
			sawName = true
			return nil
		},
		"version": func(se xml.StartElement) error {
			version, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			s.Version = &version
			return nil
		},
		"description": func(se xml.StartElement) error {
			description, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			s.Description = &description
			return nil
		},
		"endpoints": func(se xml.StartElement) error {
			endpoints, err := readTextListXML(d, se, "endpoint")
			if err != nil {
				return err
			}
			s.Endpoints = &endpoints
			return nil
		},
		"authenticated": func(se xml.StartElement) error {
			text, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			authenticated, err := xmlio.ParseBool("authenticated", text)
			if err != nil {
				return err
			}
			s.Authenticated = &authenticated
			return nil
		},
		"x-trust-boundary": func(se xml.StartElement) error {
			text, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			trustBoundary, err := xmlio.ParseBool("x-trust-boundary", text)
			if err != nil {
				return err
			}
			s.TrustBoundary = &trustBoundary
			return nil
		},
		"data": func(se xml.StartElement) error {
			data, err := readDataClassificationsXML(d, se)
			if err != nil {
				return err
			}
			s.Data = &data
			return nil
		},
		"licenses": func(se xml.StartElement) error {
			licenses, err := readLicensesXML(d, se)
			if err != nil {
				return err
			}
			s.Licenses = &licenses
			return nil
		},
		"externalReferences": func(se xml.StartElement) error {
			refs, err := readExternalReferencesXML(d, se)
			if err != nil {
				return err
			}
			s.ExternalReferences = &refs
			return nil
		},
		"properties": func(se xml.StartElement) error {
			properties, err := readPropertiesXML(d, se)
			if err != nil {
				return err
			}
			s.Properties = &properties
			return nil
		},
		"services": func(se xml.StartElement) error {
			nested, err := readServicesXML(d, se)
			if err != nil {
				return err
			}
			s.Services = &nested
			return nil
		},
		"signature": func(se xml.StartElement) error {
			sig, err := readSignatureXML(d, se)
			if err != nil {
				return err
			}
			s.Signature = &sig
			return nil
		},
	})
	if err != nil {
		return s, err
	}
	if !sawName {
		return s, requiredField("service", "name")
	}
	return s, nil
}

func readDataClassificationsXML(d *xml.Decoder, start xml.StartElement) ([]DataClassification, error) {
	data := []DataClassification{}
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"classification": func(se xml.StartElement) error {
			flow, err := xmlio.RequireAttr(se, "flow")
			if err != nil {
				return err
			}
			classification, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			data = append(data, DataClassification{Flow: flow, Classification: classification})
			return nil
		},
	})
	return data, err
}
