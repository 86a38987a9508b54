package spec13

import (
	"encoding/xml"

	"github.com/bomweave/bomweave/bomweave/format/xmlio"
	"github.com/bomweave/bomweave/bomweave/model"
)

// Metadata is the wire shape of document-level provenance.
type Metadata struct {
	Timestamp   *string                  `json:"timestamp,omitempty"`
	Tools       *[]Tool                  `json:"tools,omitempty"`
	Authors     *[]OrganizationalContact `json:"authors,omitempty"`
	Component   *Component               `json:"component,omitempty"`
	Manufacture *OrganizationalEntity    `json:"manufacture,omitempty"`
	Supplier    *OrganizationalEntity    `json:"supplier,omitempty"`
	Licenses    *Licenses                `json:"licenses,omitempty"`
	Properties  *[]Property              `json:"properties,omitempty"`
}

type Tool struct {
	Vendor  *string `json:"vendor,omitempty"`
	Name    *string `json:"name,omitempty"`
	Version *string `json:"version,omitempty"`
	Hashes  *[]Hash `json:"hashes,omitempty"`
}

type OrganizationalContact struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

type OrganizationalEntity struct {
	Name    *string                  `json:"name,omitempty"`
	URL     *[]string                `json:"url,omitempty"`
	Contact *[]OrganizationalContact `json:"contact,omitempty"`
}

func metadataFromModel(m *model.Metadata) (*Metadata, error) {
	if m == nil {
		return nil, nil
	}
	var out Metadata
	if m.Timestamp != nil {
		timestamp := string(*m.Timestamp)
		out.Timestamp = &timestamp
	}
	if m.Tools != nil {
		tools := toolsFromModel(*m.Tools)
		out.Tools = &tools
	}
	if m.Authors != nil {
		authors := contactsFromModel(*m.Authors)
		out.Authors = &authors
	}
	if m.Component != nil {
		component, err := componentFromModel(*m.Component)
		if err != nil {
			return nil, err
		}
		out.Component = &component
	}
	out.Manufacture = organizationFromModel(m.Manufacture)
	out.Supplier = organizationFromModel(m.Supplier)
	if m.Licenses != nil {
		licenses := licensesFromModel(*m.Licenses)
		out.Licenses = &licenses
	}
	if m.Properties != nil {
		properties := propertiesFromModel(*m.Properties)
		out.Properties = &properties
	}
	return &out, nil
}

func metadataToModel(m *Metadata) (*model.Metadata, error) {
	if m == nil {
		return nil, nil
	}
	var out model.Metadata
	if m.Timestamp != nil {
		timestamp := model.DateTime(*m.Timestamp)
		out.Timestamp = &timestamp
	}
	if m.Tools != nil {
		tools := toolsToModel(*m.Tools)
		out.Tools = &tools
	}
	if m.Authors != nil {
		authors := contactsToModel(*m.Authors)
		out.Authors = &authors
	}
	if m.Component != nil {
		component, err := componentToModel(*m.Component)
		if err != nil {
			return nil, err
		}
		out.Component = &component
	}
	out.Manufacture = organizationToModel(m.Manufacture)
	out.Supplier = organizationToModel(m.Supplier)
	if m.Licenses != nil {
		licenses := licensesToModel(*m.Licenses)
		out.Licenses = &licenses
	}
	if m.Properties != nil {
		properties := propertiesToModel(*m.Properties)
		out.Properties = &properties
	}
	return &out, nil
}

func toolsFromModel(tools []model.Tool) []Tool {
	out := make([]Tool, 0, len(tools))
	for _, t := range tools {
		var wire Tool
		if t.Vendor != nil {
			vendor := string(*t.Vendor)
			wire.Vendor = &vendor
		}
		if t.Name != nil {
			name := string(*t.Name)
			wire.Name = &name
		}
		if t.Version != nil {
			version := string(*t.Version)
			wire.Version = &version
		}
		if t.Hashes != nil {
			hashes := hashesFromModel(*t.Hashes)
			wire.Hashes = &hashes
		}
		out = append(out, wire)
	}
	return out
}

func toolsToModel(tools []Tool) []model.Tool {
	out := make([]model.Tool, 0, len(tools))
	for _, t := range tools {
		var m model.Tool
		if t.Vendor != nil {
			vendor := model.NormalizedString(*t.Vendor)
			m.Vendor = &vendor
		}
		if t.Name != nil {
			name := model.NormalizedString(*t.Name)
			m.Name = &name
		}
		if t.Version != nil {
			version := model.NormalizedString(*t.Version)
			m.Version = &version
		}
		if t.Hashes != nil {
			hashes := hashesToModel(*t.Hashes)
			m.Hashes = &hashes
		}
		out = append(out, m)
	}
	return out
}

func contactsFromModel(contacts []model.OrganizationalContact) []OrganizationalContact {
	out := make([]OrganizationalContact, 0, len(contacts))
	for _, c := range contacts {
		var wire OrganizationalContact
		if c.Name != nil {
			name := string(*c.Name)
			wire.Name = &name
		}
		if c.Email != nil {
			email := string(*c.Email)
			wire.Email = &email
		}
		if c.Phone != nil {
			phone := string(*c.Phone)
			wire.Phone = &phone
		}
		out = append(out, wire)
	}
	return out
}

func contactsToModel(contacts []OrganizationalContact) []model.OrganizationalContact {
	out := make([]model.OrganizationalContact, 0, len(contacts))
	for _, c := range contacts {
		var m model.OrganizationalContact
		if c.Name != nil {
			name := model.NormalizedString(*c.Name)
			m.Name = &name
		}
		if c.Email != nil {
			email := model.NormalizedString(*c.Email)
			m.Email = &email
		}
		if c.Phone != nil {
			phone := model.NormalizedString(*c.Phone)
			m.Phone = &phone
		}
		out = append(out, m)
	}
	return out
}

func organizationFromModel(org *model.OrganizationalEntity) *OrganizationalEntity {
	if org == nil {
		return nil
	}
	var out OrganizationalEntity
	if org.Name != nil {
		name := string(*org.Name)
		out.Name = &name
	}
	if org.URL != nil {
		urls := make([]string, 0, len(*org.URL))
		for _, u := range *org.URL {
			urls = append(urls, string(u))
		}
		out.URL = &urls
	}
	if org.Contact != nil {
		contacts := contactsFromModel(*org.Contact)
		out.Contact = &contacts
	}
	return &out
}

func organizationToModel(org *OrganizationalEntity) *model.OrganizationalEntity {
	if org == nil {
		return nil
	}
	var out model.OrganizationalEntity
	if org.Name != nil {
		name := model.NormalizedString(*org.Name)
		out.Name = &name
	}
	if org.URL != nil {
		urls := make([]model.URI, 0, len(*org.URL))
		for _, u := range *org.URL {
			urls = append(urls, model.URI(u))
		}
		out.URL = &urls
	}
	if org.Contact != nil {
		contacts := contactsToModel(*org.Contact)
		out.Contact = &contacts
	}
	return &out
}

func writeMetadataXML(w *xmlio.Writer, m Metadata) error {
	if err := w.Start("metadata"); err != nil {
		return err
	}
	if m.Timestamp != nil {
		if err := w.SimpleTag("timestamp", *m.Timestamp); err != nil {
			return err
		}
	}
	if m.Tools != nil {
		if err := writeToolsXML(w, *m.Tools); err != nil {
			return err
		}
	}
	if m.Authors != nil {
		if err := writeContactListXML(w, "authors", "author", *m.Authors); err != nil {
			return err
		}
	}
	if m.Component != nil {
		if err := writeComponentXML(w, *m.Component); err != nil {
			return err
		}
	}
	if m.Manufacture != nil {
		if err := writeOrganizationXML(w, "manufacture", *m.Manufacture); err != nil {
			return err
		}
	}
	if m.Supplier != nil {
		if err := writeOrganizationXML(w, "supplier", *m.Supplier); err != nil {
			return err
		}
	}
	if m.Licenses != nil {
		if err := writeLicensesXML(w, *m.Licenses); err != nil {
			return err
		}
	}
	if m.Properties != nil {
		if err := writePropertiesXML(w, *m.Properties); err != nil {
			return err
		}
	}
	return w.End()
}

func readMetadataXML(d *xml.Decoder, start xml.StartElement) (Metadata, error) {
	var m Metadata
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"timestamp": func(se xml.StartElement) error {
			timestamp, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			m.Timestamp = &timestamp
			return nil
		},
		"tools": func(se xml.StartElement) error {
			tools, err := readToolsXML(d, se)
			if err != nil {
				return err
			}
			m.Tools = &tools
			return nil
		},
		"authors": func(se xml.StartElement) error {
			authors, err := readContactListXML(d, se, "author")
			if err != nil {
				return err
			}
			m.Authors = &authors
			return nil
		},
		"component": func(se xml.StartElement) error {
			component, err := readComponentXML(d, se)
			if err != nil {
				return err
			}
			m.Component = &component
			return nil
		},
		"manufacture": func(se xml.StartElement) error {
			org, err := readOrganizationXML(d, se)
			if err != nil {
				return err
			}
			m.Manufacture = &org
			return nil
		},
		"supplier": func(se xml.StartElement) error {
			org, err := readOrganizationXML(d, se)
			if err != nil {
				return err
			}
			m.Supplier = &org
			return nil
		},
		"licenses": func(se xml.StartElement) error {
			licenses, err := readLicensesXML(d, se)
			if err != nil {
				return err
			}
			m.Licenses = &licenses
			return nil
		},
		"properties": func(se xml.StartElement) error {
			properties, err := readPropertiesXML(d, se)
			if err != nil {
				return err
			}
			m.Properties = &properties
			return nil
		},
	})
	return m, err
}

func writeToolsXML(w *xmlio.Writer, tools []Tool) error {
	if err := w.Start("tools"); err != nil {
		return err
	}
	for _, t := range tools {
		if err := w.Start("tool"); err != nil {
			return err
		}
		if t.Vendor != nil {
			if err := w.SimpleTag("vendor", *t.Vendor); err != nil {
				return err
			}
		}
		if t.Name != nil {
			if err := w.SimpleTag("name", *t.Name); err != nil {
				return err
			}
		}
		if t.Version != nil {
			if err := w.SimpleTag("version", *t.Version); err != nil {
				return err
			}
		}
		if t.Hashes != nil {
			if err := writeHashesXML(w, *t.Hashes); err != nil {
				return err
			}
		}
		if err := w.End(); err != nil {
			return err
		}
	}
	return w.End()
}

func readToolsXML(d *xml.Decoder, start xml.StartElement) ([]Tool, error) {
	tools := []Tool{}
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"tool": func(se xml.StartElement) error {
			tool, err := readToolXML(d, se)
			if err != nil {
				return err
			}
			tools = append(tools, tool)
			return nil
		},
	})
	return tools, err
}

func readToolXML(d *xml.Decoder, start xml.StartElement) (Tool, error) {
	var tool Tool
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"vendor": func(se xml.StartElement) error {
			vendor, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			tool.Vendor = &vendor
			return nil
		},
		"name": func(se xml.StartElement) error {
			name, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			tool.Name = &name
			return nil
		},
		"version": func(se xml.StartElement) error {
			version, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			tool.Version = &version
			return nil
		},
		"hashes": func(se xml.StartElement) error {
			hashes, err := readHashesXML(d, se)
			if err != nil {
				return err
			}
			tool.Hashes = &hashes
			return nil
		},
	})
	return tool, err
}

func writeContactListXML(w *xmlio.Writer, containerTag, itemTag string, contacts []OrganizationalContact) error {
	if err := w.Start(containerTag); err != nil {
		return err
	}
	for _, c := range contacts {
		if err := writeContactXML(w, itemTag, c); err != nil {
			return err
		}
	}
	return w.End()
}

func writeContactXML(w *xmlio.Writer, tag string, c OrganizationalContact) error {
	if err := w.Start(tag); err != nil {
		return err
	}
	if c.Name != nil {
		if err := w.SimpleTag("name", *c.Name); err != nil {
			return err
		}
	}
	if c.Email != nil {
		if err := w.SimpleTag("email", *c.Email); err != nil {
			return err
		}
	}
	if c.Phone != nil {
		if err := w.SimpleTag("phone", *c.Phone); err != nil {
			return err
		}
	}
	return w.End()
}

func readContactListXML(d *xml.Decoder, start xml.StartElement, itemTag string) ([]OrganizationalContact, error) {
	contacts := []OrganizationalContact{}
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		itemTag: func(se xml.StartElement) error {
			contact, err := readContactXML(d, se)
			if err != nil {
				return err
			}
			contacts = append(contacts, contact)
			return nil
		},
	})
	return contacts, err
}

func readContactXML(d *xml.Decoder, start xml.StartElement) (OrganizationalContact, error) {
	var c OrganizationalContact
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"name": func(se xml.StartElement) error {
			name, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			c.Name = &name
			return nil
		},
		"email": func(se xml.StartElement) error {
			email, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			c.Email = &email
			return nil
		},
		"phone": func(se xml.StartElement) error {
			phone, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			c.Phone = &phone
			return nil
		},
	})
	return c, err
}

func writeOrganizationXML(w *xmlio.Writer, tag string, org OrganizationalEntity) error {
	if err := w.Start(tag); err != nil {
		return err
	}
	if org.Name != nil {
		if err := w.SimpleTag("name", *org.Name); err != nil {
			return err
		}
	}
	if org.URL != nil {
		for _, u := range *org.URL {
			if err := w.SimpleTag("url", u); err != nil {
				return err
			}
		}
	}
	if org.Contact != nil {
		for _, c := range *org.Contact {
			if err := writeContactXML(w, "contact", c); err != nil {
				return err
			}
		}
	}
	return w.End()
}

func readOrganizationXML(d *xml.Decoder, start xml.StartElement) (OrganizationalEntity, error) {
	var org OrganizationalEntity
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"name": func(se xml.StartElement) error {
			name, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			org.Name = &name
			return nil
		},
		"url": func(se xml.StartElement) error {
			url, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			if org.URL == nil {
				org.URL = &[]string{}
			}
			*org.URL = append(*org.URL, url)
			return nil
		},
		"contact": func(se xml.StartElement) error {
			contact, err := readContactXML(d, se)
			if err != nil {
				return err
			}
			if org.Contact == nil {
				org.Contact = &[]OrganizationalContact{}
			}
			*org.Contact = append(*org.Contact, contact)
			return nil
		},
	})
	return org, err
}
