package spec12

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
	assert.Equal(t, "1.2", unsupportedErr.Version)
}

func TestEncodeXMLMinimalDocument(t *testing.T) {
	bom := &model.Bom{Version: 1, SerialNumber: serialRef("fake-uuid")}

	var buf bytes.Buffer
	require.NoError(t, EncodeXML(bom, &buf))

	expected := "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<bom xmlns=\"http://cyclonedx.org/schema/bom/1.2\" serialNumber=\"fake-uuid\" version=\"1\"/>\n"
	assert.Equal(t, expected, buf.String())
}

func TestRoundTripSupportedSections(t *testing.T) {
	licenses := model.Licenses{model.NewLicenseChoice(model.License{Identifier: model.LicenseID("MIT")})}
	original := &model.Bom{
		Version:      4,
		SerialNumber: serialRef("urn:uuid:3e671687-395b-41f5-a30f-a58921a69b79"),
		Metadata: &model.Metadata{
			Tools: &[]model.Tool{{
				Vendor:  nsRef("acme"),
				Name:    nsRef("weaver"),
				Version: nsRef("2.0.1"),
			}},
			Authors: &[]model.OrganizationalContact{{Name: nsRef("jo")}},
		},
		Components: &[]model.Component{{
			Type:     "library",
			BomRef:   bomRef("lib-a"),
			Name:     "lib-a",
			Version:  "1.0.0",
			Licenses: &licenses,
			Components: &[]model.Component{{
				Type:    "library",
				Name:    "lib-b",
				Version: "0.4.0",
			}},
		}},
		Services: &[]model.Service{{
			Name:      "gateway",
			Endpoints: &[]model.URI{"https://example.com/v1"},
		}},
		ExternalReferences: &[]model.ExternalReference{{
			Type: "website",
			URL:  "https://example.com",
		}},
		Dependencies: &[]model.Dependency{
			{Ref: "lib-a", DependsOn: []model.BomReference{"lib-b"}},
			{Ref: "lib-b"},
		},
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

// 1.2 predates compositions, properties, evidence, vulnerabilities, and
// every flavor of signature.
func TestEncodeGatesSectionsFromNewerSchemas(t *testing.T) {
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
			name:  "compositions",
			bom:   &model.Bom{Version: 1, Compositions: &[]model.Composition{{Aggregate: model.AggregateComplete}}},
			field: "compositions",
		},
		{
			name:  "document properties",
			bom:   &model.Bom{Version: 1, Properties: &[]model.Property{{Name: "k", Value: "v"}}},
			field: "properties",
		},
		{
			name: "metadata licenses",
			bom: &model.Bom{Version: 1, Metadata: &model.Metadata{
				Licenses: &model.Licenses{model.NewLicenseExpression("MIT")},
			}},
			field: "metadata licenses",
		},
		{
			name: "metadata properties",
			bom: &model.Bom{Version: 1, Metadata: &model.Metadata{
				Properties: &[]model.Property{{Name: "k", Value: "v"}},
			}},
			field: "metadata properties",
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
			name: "component properties",
			bom: &model.Bom{Version: 1, Components: &[]model.Component{{
				Type: "library", Name: "a", Version: "1",
				Properties: &[]model.Property{{Name: "k", Value: "v"}},
			}}},
			field: "component properties",
		},
		{
			name: "component evidence",
			bom: &model.Bom{Version: 1, Components: &[]model.Component{{
				Type: "library", Name: "a", Version: "1",
				Evidence: &model.ComponentEvidence{Copyright: &[]model.Copyright{{Text: "c"}}},
			}}},
			field: "component evidence",
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
			name: "service properties",
			bom: &model.Bom{Version: 1, Services: &[]model.Service{{
				Name:       "svc",
				Properties: &[]model.Property{{Name: "k", Value: "v"}},
			}}},
			field: "service properties",
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
	document := `<bom xmlns="http://cyclonedx.org/schema/bom/1.3" version="1"/>`

	_, err := DecodeXML(strings.NewReader(document))

	var nsErr *bomerr.InvalidNamespaceError
	require.True(t, errors.As(err, &nsErr))
	assert.Equal(t, Namespace, nsErr.Expected)
}

func TestDecodeJSONRejectsWrongSpecVersion(t *testing.T) {
	document := `{"bomFormat": "CycloneDX", "specVersion": "1.5"}`

	_, err := DecodeJSON(strings.NewReader(document))

	var fieldErr *bomerr.FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "specVersion", fieldErr.Path)
}
