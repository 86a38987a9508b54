// Package xmlio is the streaming substrate shared by all of the per-version
// wire codecs: a thin pull-cursor layer over encoding/xml's token decoder on
// the read side, and a hand-written event writer on the write side. The
// writer exists because the stdlib encoder cannot self-close empty elements
// or guarantee attribute order, both of which the round-trip snapshots
// depend on.
package xmlio

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bomweave/bomweave/bomweave/bomerr"
	"github.com/bomweave/bomweave/internal/log"
)

// ElementHandlers maps recognized child element local names to the closure
// that consumes that child's subtree. Unrecognized children fall through to a
// lax skip so foreign-namespace extensions never fail a parse.
type ElementHandlers map[string]func(start xml.StartElement) error

// ReadElements drives the dispatch loop for one structured element: it pulls
// events until the end tag matching start is observed, routing each child
// start element through handlers.
func ReadElements(d *xml.Decoder, start xml.StartElement, handlers ElementHandlers) error {
	for {
		token, err := d.Token()
		if err != nil {
			return wrapReadError(start.Name.Local, err)
		}
		switch t := token.(type) {
		case xml.StartElement:
			handler, ok := handlers[t.Name.Local]
			if !ok {
				if err := SkipLax(d, t); err != nil {
					return err
				}
				continue
			}
			if err := handler(t); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name != start.Name {
				return &bomerr.UnexpectedElementError{
					Element: start.Name.Local,
					Actual:  fmt.Sprintf("end of element %q", t.Name.Local),
				}
			}
			return nil
		case xml.CharData:
			if len(strings.TrimSpace(string(t))) > 0 {
				return &bomerr.UnexpectedElementError{
					Element: start.Name.Local,
					Actual:  fmt.Sprintf("text content %q", strings.TrimSpace(string(t))),
				}
			}
		case xml.Comment, xml.ProcInst, xml.Directive:
			// not significant to the data model
		}
	}
}

// SkipLax consumes and discards everything down to the end tag matching
// start. This is the deliberate forward-compatibility tolerance for producer
// extensions, not an error path.
func SkipLax(d *xml.Decoder, start xml.StartElement) error {
	log.Debugf("skipping unrecognized element %q (namespace %q)", start.Name.Local, start.Name.Space)
	if err := d.Skip(); err != nil {
		return wrapReadError(start.Name.Local, err)
	}
	return nil
}

// ReadSimpleTag reads the text content of a leaf element and its end tag. A
// nested start element is a read error.
func ReadSimpleTag(d *xml.Decoder, start xml.StartElement) (string, error) {
	var content strings.Builder
	for {
		token, err := d.Token()
		if err != nil {
			return "", wrapReadError(start.Name.Local, err)
		}
		switch t := token.(type) {
		case xml.CharData:
			content.Write(t)
		case xml.EndElement:
			return content.String(), nil
		case xml.Comment:
			// ignore
		default:
			return "", &bomerr.UnexpectedElementError{
				Element: start.Name.Local,
				Actual:  fmt.Sprintf("%T while reading text content", token),
			}
		}
	}
}

// DocumentStart consumes the start-of-document tokens (prolog, comments,
// whitespace) and returns the root start element.
func DocumentStart(d *xml.Decoder) (xml.StartElement, error) {
	for {
		token, err := d.Token()
		if err != nil {
			return xml.StartElement{}, wrapReadError("document", err)
		}
		switch t := token.(type) {
		case xml.StartElement:
			return t, nil
		case xml.ProcInst, xml.Comment, xml.Directive:
			// prolog
		case xml.CharData:
			if len(strings.TrimSpace(string(t))) > 0 {
				return xml.StartElement{}, &bomerr.UnexpectedElementError{
					Element: "document",
					Actual:  "text content before the root element",
				}
			}
		}
	}
}

// DocumentEnd verifies that nothing but trailing whitespace and comments
// follows the root element.
func DocumentEnd(d *xml.Decoder, root string) error {
	for {
		token, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return wrapReadError(root, err)
		}
		switch t := token.(type) {
		case xml.Comment, xml.ProcInst:
			// trailing noise
		case xml.CharData:
			if len(strings.TrimSpace(string(t))) > 0 {
				return &bomerr.UnexpectedElementError{
					Element: root,
					Actual:  "text content after the document element",
				}
			}
		default:
			return &bomerr.UnexpectedElementError{
				Element: root,
				Actual:  fmt.Sprintf("%T after the document element", token),
			}
		}
	}
}

// OptionalAttr returns the value of the named attribute if present, matching
// on local name.
func OptionalAttr(start xml.StartElement, name string) (string, bool) {
	for _, attr := range start.Attr {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

// RequireAttr is OptionalAttr with absence promoted to a typed error.
func RequireAttr(start xml.StartElement, name string) (string, error) {
	if value, ok := OptionalAttr(start, name); ok {
		return value, nil
	}
	return "", &bomerr.RequiredFieldError{Element: start.Name.Local, Field: name}
}

// ParseBool accepts only the literal strings "true" and "false".
func ParseBool(name, value string) (bool, error) {
	switch value {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, &bomerr.ValueParseError{Name: name, Value: value, Kind: "boolean"}
}

// ParseUint32 parses a base-10 unsigned integer.
func ParseUint32(name, value string) (uint32, error) {
	parsed, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, &bomerr.ValueParseError{Name: name, Value: value, Kind: "integer"}
	}
	return uint32(parsed), nil
}

// ParseFloat64 parses a floating point number (CVSS scores and the like).
func ParseFloat64(name, value string) (float64, error) {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &bomerr.ValueParseError{Name: name, Value: value, Kind: "number"}
	}
	return parsed, nil
}

func wrapReadError(element string, err error) error {
	if err == io.EOF {
		return &bomerr.UnexpectedElementError{Element: element, Actual: "end of input"}
	}
	return fmt.Errorf("read of element %q failed: %w", element, err)
}
