package spec14

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bomweave/bomweave/bomweave/bomerr"
	"github.com/bomweave/bomweave/bomweave/model"
)

func wrapXML(body string) string {
	return `<bom xmlns="http://cyclonedx.org/schema/bom/1.4" version="1">` + body + `</bom>`
}

func TestDecodeXMLLicenseIdentifierExclusivity(t *testing.T) {
	tests := []struct {
		name    string
		license string
		wantErr interface{}
	}{
		{
			name:    "id only",
			license: `<license><id>MIT</id></license>`,
		},
		{
			name:    "name only",
			license: `<license><name>Acme License</name></license>`,
		},
		{
			name:    "id then name",
			license: `<license><id>MIT</id><name>MIT License</name></license>`,
			wantErr: &bomerr.DuplicateElementError{},
		},
		{
			name:    "two ids",
			license: `<license><id>MIT</id><id>Apache-2.0</id></license>`,
			wantErr: &bomerr.DuplicateElementError{},
		},
		{
			name:    "neither",
			license: `<license><url>https://example.com/license</url></license>`,
			wantErr: &bomerr.RequiredFieldError{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			document := wrapXML(`<components><component type="library"><name>a</name><version>1</version><licenses>` + test.license + `</licenses></component></components>`)

			_, err := DecodeXML(strings.NewReader(document))

			switch want := test.wantErr.(type) {
			case nil:
				assert.NoError(t, err)
			case *bomerr.DuplicateElementError:
				require.True(t, errors.As(err, &want))
				assert.Equal(t, "license", want.Element)
			case *bomerr.RequiredFieldError:
				require.True(t, errors.As(err, &want))
				assert.Equal(t, "license", want.Element)
			}
		})
	}
}

func TestDecodeJSONLicenseExclusivity(t *testing.T) {
	tests := []struct {
		name     string
		licenses string
		wantErr  bool
	}{
		{
			name:     "license entry",
			licenses: `[{"license": {"id": "MIT"}}]`,
		},
		{
			name:     "expression entry",
			licenses: `[{"expression": "MIT OR Apache-2.0"}]`,
		},
		{
			name:     "license and expression",
			licenses: `[{"license": {"id": "MIT"}, "expression": "MIT"}]`,
			wantErr:  true,
		},
		{
			name:     "empty choice",
			licenses: `[{}]`,
			wantErr:  true,
		},
		{
			name:     "id and name",
			licenses: `[{"license": {"id": "MIT", "name": "MIT License"}}]`,
			wantErr:  true,
		},
		{
			name:     "bare license object",
			licenses: `[{"license": {}}]`,
			wantErr:  true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			document := `{
			  "bomFormat": "CycloneDX",
			  "specVersion": "1.4",
			  "components": [
			    {"type": "library", "name": "a", "version": "1", "licenses": ` + test.licenses + `}
			  ]
			}`

			_, err := DecodeJSON(strings.NewReader(document))

			if test.wantErr {
				var fieldErr *bomerr.FieldError
				assert.True(t, errors.As(err, &fieldErr))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLicenseOrderingSurvivesRoundTrip(t *testing.T) {
	licenses := model.Licenses{
		model.NewLicenseExpression("EPL-2.0 OR GPL-2.0"),
		model.NewLicenseChoice(model.License{Identifier: model.LicenseID("Apache-2.0")}),
		model.NewLicenseChoice(model.License{Identifier: model.LicenseName("Acme License")}),
	}
	bom := &model.Bom{
		Version: 1,
		Components: &[]model.Component{{
			Type:     "library",
			Name:     "acme-lib",
			Version:  "1.0.0",
			Licenses: &licenses,
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeXML(bom, &buf))

	decoded, err := DecodeXML(&buf)
	require.NoError(t, err)

	require.NotNil(t, decoded.Components)
	got := *(*decoded.Components)[0].Licenses
	require.Len(t, got, 3)
	assert.NotNil(t, got[0].Expression)
	require.NotNil(t, got[1].License)
	assert.NotNil(t, got[1].License.Identifier.ID)
	require.NotNil(t, got[2].License)
	assert.NotNil(t, got[2].License.Identifier.Name)
}
