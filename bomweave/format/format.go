// Package format is the front door of the serialization engine: it routes a
// requested schema version and encoding to the matching per-version codec.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/bomweave/bomweave/bomweave/format/spec12"
	"github.com/bomweave/bomweave/bomweave/format/spec13"
	"github.com/bomweave/bomweave/bomweave/format/spec14"
	"github.com/bomweave/bomweave/bomweave/format/spec15"
	"github.com/bomweave/bomweave/bomweave/model"
)

// SpecVersion selects one of the supported CycloneDX schema versions.
type SpecVersion string

const (
	V1_2 SpecVersion = "1.2"
	V1_3 SpecVersion = "1.3"
	V1_4 SpecVersion = "1.4"
	V1_5 SpecVersion = "1.5"
)

// SpecVersions lists the supported schema versions, oldest first.
func SpecVersions() []SpecVersion {
	return []SpecVersion{V1_2, V1_3, V1_4, V1_5}
}

func ParseSpecVersion(userInput string) (SpecVersion, error) {
	switch v := SpecVersion(strings.TrimSpace(userInput)); v {
	case V1_2, V1_3, V1_4, V1_5:
		return v, nil
	}
	return "", fmt.Errorf("unsupported schema version %q (supported: 1.2, 1.3, 1.4, 1.5)", userInput)
}

// Encoding selects the wire syntax.
type Encoding string

const (
	XML  Encoding = "xml"
	JSON Encoding = "json"
)

func ParseEncoding(userInput string) (Encoding, error) {
	switch e := Encoding(strings.ToLower(strings.TrimSpace(userInput))); e {
	case XML, JSON:
		return e, nil
	}
	return "", fmt.Errorf("unsupported encoding %q (supported: xml, json)", userInput)
}

// Serialize writes the model to out in the requested version and encoding.
// Sections or enumerants the version cannot express fail with a
// version-unsupported error rather than being dropped.
func Serialize(bom *model.Bom, out io.Writer, version SpecVersion, encoding Encoding) error {
	switch encoding {
	case XML:
		switch version {
		case V1_2:
			return spec12.EncodeXML(bom, out)
		case V1_3:
			return spec13.EncodeXML(bom, out)
		case V1_4:
			return spec14.EncodeXML(bom, out)
		case V1_5:
			return spec15.EncodeXML(bom, out)
		}
	case JSON:
		switch version {
		case V1_2:
			return spec12.EncodeJSON(bom, out)
		case V1_3:
			return spec13.EncodeJSON(bom, out)
		case V1_4:
			return spec14.EncodeJSON(bom, out)
		case V1_5:
			return spec15.EncodeJSON(bom, out)
		}
	}
	return fmt.Errorf("no codec for version %q encoding %q", version, encoding)
}

// Parse reads a document of the declared version and encoding from in.
func Parse(in io.Reader, version SpecVersion, encoding Encoding) (*model.Bom, error) {
	switch encoding {
	case XML:
		switch version {
		case V1_2:
			return spec12.DecodeXML(in)
		case V1_3:
			return spec13.DecodeXML(in)
		case V1_4:
			return spec14.DecodeXML(in)
		case V1_5:
			return spec15.DecodeXML(in)
		}
	case JSON:
		switch version {
		case V1_2:
			return spec12.DecodeJSON(in)
		case V1_3:
			return spec13.DecodeJSON(in)
		case V1_4:
			return spec14.DecodeJSON(in)
		case V1_5:
			return spec15.DecodeJSON(in)
		}
	}
	return nil, fmt.Errorf("no codec for version %q encoding %q", version, encoding)
}
