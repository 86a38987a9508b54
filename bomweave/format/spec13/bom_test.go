package spec13

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bomweave/bomweave/bomweave/bomerr"
	"github.com/bomweave/bomweave/bomweave/model"
)

func nsRef(value string) *model.NormalizedString {
	v := model.NormalizedString(value)
	return &v
}

func serialRef(value string) *model.SerialNumber {
	v := model.SerialNumber(value)
	return &v
}

func bomRef(value string) *model.BomReference {
	v := model.BomReference(value)
	return &v
}

func assertUnsupported(t *testing.T, err error, field string) {
	t.Helper()
	var unsupportedErr *bomerr.UnsupportedInVersionError
	require.True(t, errors.As(err, &unsupportedErr), "expected a version-unsupported error, got %v", err)
	assert.Equal(t, field, unsupportedErr.Field)
	assert.Equal(t, "1.3", unsupportedErr.Version)
}

func TestEncodeXMLMinimalDocument(t *testing.T) {
	bom := &model.Bom{Version: 1, SerialNumber: serialRef("fake-uuid")}

	var buf bytes.Buffer
	require.NoError(t, EncodeXML(bom, &buf))

	expected := "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<bom xmlns=\"http://cyclonedx.org/schema/bom/1.3\" serialNumber=\"fake-uuid\" version=\"1\"/>\n"
	assert.Equal(t, expected, buf.String())
}

// Everything 1.3 can express: compositions, document and component
// properties, metadata licenses, and component evidence all arrived in 1.3.
func TestRoundTripSupportedSections(t *testing.T) {
	metadataLicenses := model.Licenses{model.NewLicenseChoice(model.License{Identifier: model.LicenseID("CC-BY-4.0")})}
	evidenceLicenses := model.Licenses{model.NewLicenseExpression("MIT")}
	original := &model.Bom{
		Version:      2,
		SerialNumber: serialRef("urn:uuid:3e671687-395b-41f5-a30f-a58921a69b79"),
		Metadata: &model.Metadata{
			Licenses:   &metadataLicenses,
			Properties: &[]model.Property{{Name: "doc:classification", Value: "internal"}},
		},
		Components: &[]model.Component{{
			Type:       "library",
			BomRef:     bomRef("lib-a"),
			Name:       "lib-a",
			Version:    "1.0.0",
			Properties: &[]model.Property{{Name: "internal:team", Value: "runtime"}},
			Evidence: &model.ComponentEvidence{
				Licenses:  &evidenceLicenses,
				Copyright: &[]model.Copyright{{Text: "Copyright Acme"}},
			},
		}},
		Services: &[]model.Service{{
			Name:       "ticker",
			Properties: &[]model.Property{{Name: "tier", Value: "gold"}},
		}},
		Compositions: &[]model.Composition{{
			Aggregate:  model.AggregateIncomplete,
			Assemblies: &[]model.BomReference{"lib-a"},
		}},
		Properties: &[]model.Property{{Name: "bom:generator", Value: "pipeline"}},
	}

	for _, encoding := range []string{"xml", "json"} {
		t.Run(encoding, func(t *testing.T) {
			var buf bytes.Buffer
			var decoded *model.Bom
			var err error
			if encoding == "xml" {
				require.NoError(t, EncodeXML(original, &buf))
				decoded, err = DecodeXML(&buf)
			} else {
				require.NoError(t, EncodeJSON(original, &buf))
				decoded, err = DecodeJSON(&buf)
			}
			require.NoError(t, err)

			if diff := cmp.Diff(original, decoded); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeGatesSectionsFrom14(t *testing.T) {
	tests := []struct {
		name  string
		bom   *model.Bom
		field string
	}{
		{
			name:  "vulnerabilities",
			bom:   &model.Bom{Version: 1, Vulnerabilities: &[]model.Vulnerability{{ID: nsRef("CVE-2024-0001")}}},
			field: "vulnerabilities",
		},
		{
			name:  "document signature",
			bom:   &model.Bom{Version: 1, Signature: &model.Signature{Algorithm: "ES256", Value: "sig"}},
			field: "signature",
		},
		{
			name: "component signature",
			bom: &model.Bom{Version: 1, Components: &[]model.Component{{
				Type: "library", Name: "a", Version: "1",
				Signature: &model.Signature{Algorithm: "ES256", Value: "sig"},
			}}},
			field: "component signature",
		},
		{
			name: "service signature",
			bom: &model.Bom{Version: 1, Services: &[]model.Service{{
				Name:      "svc",
				Signature: &model.Signature{Algorithm: "ES256", Value: "sig"},
			}}},
			field: "service signature",
		},
		{
			name: "composition signature",
			bom: &model.Bom{Version: 1, Compositions: &[]model.Composition{{
				Aggregate: model.AggregateComplete,
				Signature: &model.Signature{Algorithm: "ES256", Value: "sig"},
			}}},
			field: "composition signature",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var buf bytes.Buffer
			assertUnsupported(t, EncodeXML(test.bom, &buf), test.field)
			assertUnsupported(t, EncodeJSON(test.bom, &buf), test.field)
		})
	}
}

func TestDecodeXMLRejectsWrongNamespace(t *testing.T) {
	document := `<bom xmlns="http://cyclonedx.org/schema/bom/1.4" version="1"/>`

	_, err := DecodeXML(strings.NewReader(document))

	var nsErr *bomerr.InvalidNamespaceError
	require.True(t, errors.As(err, &nsErr))
	assert.Equal(t, Namespace, nsErr.Expected)
}

func TestDecodeJSONRejectsWrongSpecVersion(t *testing.T) {
	document := `{"bomFormat": "CycloneDX", "specVersion": "1.4"}`

	_, err := DecodeJSON(strings.NewReader(document))

	var fieldErr *bomerr.FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "specVersion", fieldErr.Path)
}
