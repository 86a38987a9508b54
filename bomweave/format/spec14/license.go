package spec14

import (
	"encoding/json"
	"encoding/xml"

	"github.com/bomweave/bomweave/bomweave/bomerr"
	"github.com/bomweave/bomweave/bomweave/format/xmlio"
	"github.com/bomweave/bomweave/bomweave/model"
)

// Licenses is an ordered mix of license and expression entries.
type Licenses []LicenseChoice

// LicenseChoice carries exactly one of License or Expression. The invariant
// is validated when a document is read; the adapters only ever construct
// valid values.
type LicenseChoice struct {
	License    *License `json:"license,omitempty"`
	Expression *string  `json:"expression,omitempty"`
}

// License names a license by exactly one of SPDX id or free-text name.
type License struct {
	ID   *string       `json:"id,omitempty"`
	Name *string       `json:"name,omitempty"`
	Text *AttachedText `json:"text,omitempty"`
	URL  *string       `json:"url,omitempty"`
}

func (c *LicenseChoice) UnmarshalJSON(data []byte) error {
	type alias LicenseChoice
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	if (decoded.License == nil) == (decoded.Expression == nil) {
		return &bomerr.FieldError{Path: "licenses", Reason: "expected exactly one of license or expression"}
	}
	*c = LicenseChoice(decoded)
	return nil
}

func (l *License) UnmarshalJSON(data []byte) error {
	type alias License
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	if (decoded.ID == nil) == (decoded.Name == nil) {
		return &bomerr.FieldError{Path: "license", Reason: "expected exactly one of id or name"}
	}
	*l = License(decoded)
	return nil
}

func licensesFromModel(licenses model.Licenses) Licenses {
	out := make(Licenses, 0, len(licenses))
	for _, choice := range licenses {
		var wire LicenseChoice
		if choice.Expression != nil {
			expression := string(*choice.Expression)
			wire.Expression = &expression
		}
		if choice.License != nil {
			license := License{}
			if choice.License.Identifier.ID != nil {
				id := string(*choice.License.Identifier.ID)
				license.ID = &id
			}
			if choice.License.Identifier.Name != nil {
				name := string(*choice.License.Identifier.Name)
				license.Name = &name
			}
			license.Text = attachedTextFromModel(choice.License.Text)
			if choice.License.URL != nil {
				url := string(*choice.License.URL)
				license.URL = &url
			}
			wire.License = &license
		}
		out = append(out, wire)
	}
	return out
}

func licensesToModel(licenses Licenses) model.Licenses {
	out := make(model.Licenses, 0, len(licenses))
	for _, wire := range licenses {
		var choice model.LicenseChoice
		if wire.Expression != nil {
			expression := model.SpdxExpression(*wire.Expression)
			choice.Expression = &expression
		}
		if wire.License != nil {
			license := model.License{}
			if wire.License.ID != nil {
				license.Identifier = model.LicenseID(model.SpdxID(*wire.License.ID))
			}
			if wire.License.Name != nil {
				license.Identifier = model.LicenseName(model.NormalizedString(*wire.License.Name))
			}
			license.Text = attachedTextToModel(wire.License.Text)
			if wire.License.URL != nil {
				url := model.URI(*wire.License.URL)
				license.URL = &url
			}
			choice.License = &license
		}
		out = append(out, choice)
	}
	return out
}

func writeLicensesXML(w *xmlio.Writer, licenses Licenses) error {
	if err := w.Start("licenses"); err != nil {
		return err
	}
	for _, choice := range licenses {
		if choice.Expression != nil {
			if err := w.SimpleTag("expression", *choice.Expression); err != nil {
				return err
			}
			continue
		}
		if err := writeLicenseXML(w, *choice.License); err != nil {
			return err
		}
	}
	return w.End()
}

func writeLicenseXML(w *xmlio.Writer, license License) error {
	if err := w.Start("license"); err != nil {
		return err
	}
	if license.ID != nil {
		if err := w.SimpleTag("id", *license.ID); err != nil {
			return err
		}
	}
	if license.Name != nil {
		if err := w.SimpleTag("name", *license.Name); err != nil {
			return err
		}
	}
	if license.Text != nil {
		if err := writeAttachedTextXML(w, "text", *license.Text); err != nil {
			return err
		}
	}
	if license.URL != nil {
		if err := w.SimpleTag("url", *license.URL); err != nil {
			return err
		}
	}
	return w.End()
}

func readLicensesXML(d *xml.Decoder, start xml.StartElement) (Licenses, error) {
	licenses := Licenses{}
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"license": func(se xml.StartElement) error {
			license, err := readLicenseXML(d, se)
			if err != nil {
				return err
			}
			licenses = append(licenses, LicenseChoice{License: &license})
			return nil
		},
		"expression": func(se xml.StartElement) error {
			expression, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			licenses = append(licenses, LicenseChoice{Expression: &expression})
			return nil
		},
	})
	return licenses, err
}

// readLicenseXML enforces the exactly-one rule on id/name: a second
// occurrence of either is a duplicate, and ending the element with neither is
// missing required data.
func readLicenseXML(d *xml.Decoder, start xml.StartElement) (License, error) {
	var license License
	identifierSeen := false
	readIdentifier := func(se xml.StartElement, into **string) error {
		if identifierSeen {
			return &bomerr.DuplicateElementError{Element: "license", Child: se.Name.Local}
		}
		value, err := xmlio.ReadSimpleTag(d, se)
		if err != nil {
			return err
		}
		*into = &value
		identifierSeen = true
		return nil
	}
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"id": func(se xml.StartElement) error {
			return readIdentifier(se, &license.ID)
		},
		"name": func(se xml.StartElement) error {
			return readIdentifier(se, &license.Name)
		},
		"text": func(se xml.StartElement) error {
			text, err := readAttachedTextXML(d, se)
			if err != nil {
				return err
			}
			license.Text = &text
			return nil
		},
		"url": func(se xml.StartElement) error {
			url, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			license.URL = &url
			return nil
		},
	})
	if err != nil {
		return license, err
	}
	if !identifierSeen {
		return license, &bomerr.RequiredFieldError{Element: "license", Field: "id or name"}
	}
	return license, nil
}

// AttachedText is inline text with optional content type and encoding.
type AttachedText struct {
	ContentType *string `json:"contentType,omitempty"`
	Encoding    *string `json:"encoding,omitempty"`
	Content     string  `json:"content"`
}

func attachedTextFromModel(text *model.AttachedText) *AttachedText {
	if text == nil {
		return nil
	}
	out := AttachedText{Content: text.Content}
	if text.ContentType != nil {
		contentType := string(*text.ContentType)
		out.ContentType = &contentType
	}
	if text.Encoding != nil {
		encoding := string(*text.Encoding)
		out.Encoding = &encoding
	}
	return &out
}

func attachedTextToModel(text *AttachedText) *model.AttachedText {
	if text == nil {
		return nil
	}
	out := model.AttachedText{Content: text.Content}
	if text.ContentType != nil {
		contentType := model.NormalizedString(*text.ContentType)
		out.ContentType = &contentType
	}
	if text.Encoding != nil {
		encoding := model.NormalizedString(*text.Encoding)
		out.Encoding = &encoding
	}
	return &out
}

func writeAttachedTextXML(w *xmlio.Writer, tag string, text AttachedText) error {
	var attrs []xmlio.Attr
	if text.ContentType != nil {
		attrs = append(attrs, xmlio.Attr{Name: "content-type", Value: *text.ContentType})
	}
	if text.Encoding != nil {
		attrs = append(attrs, xmlio.Attr{Name: "encoding", Value: *text.Encoding})
	}
	if err := w.Start(tag, attrs...); err != nil {
		return err
	}
	if err := w.Text(text.Content); err != nil {
		return err
	}
	return w.End()
}

func readAttachedTextXML(d *xml.Decoder, start xml.StartElement) (AttachedText, error) {
	var text AttachedText
	if contentType, ok := xmlio.OptionalAttr(start, "content-type"); ok {
		text.ContentType = &contentType
	}
	if encoding, ok := xmlio.OptionalAttr(start, "encoding"); ok {
		text.Encoding = &encoding
	}
	content, err := xmlio.ReadSimpleTag(d, start)
	if err != nil {
		return text, err
	}
	text.Content = content
	return text, nil
}
