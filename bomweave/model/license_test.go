package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spdxID(id string) *SpdxID {
	v := SpdxID(id)
	return &v
}

func normalized(value string) *NormalizedString {
	v := NormalizedString(value)
	return &v
}

func TestLicenseIdentifierValidate(t *testing.T) {
	tests := []struct {
		name       string
		identifier LicenseIdentifier
		wantErr    bool
	}{
		{name: "id only", identifier: LicenseID("Apache-2.0")},
		{name: "name only", identifier: LicenseName("Acme Proprietary License")},
		{name: "neither", identifier: LicenseIdentifier{}, wantErr: true},
		{name: "both", identifier: LicenseIdentifier{ID: spdxID("MIT"), Name: normalized("MIT License")}, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.identifier.Validate()
			if test.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLicenseChoiceValidate(t *testing.T) {
	expression := SpdxExpression("MIT OR Apache-2.0")
	license := License{Identifier: LicenseID("MIT")}

	tests := []struct {
		name    string
		choice  LicenseChoice
		wantErr bool
	}{
		{name: "license", choice: NewLicenseChoice(license)},
		{name: "expression", choice: NewLicenseExpression(expression)},
		{name: "neither", choice: LicenseChoice{}, wantErr: true},
		{name: "both", choice: LicenseChoice{License: &license, Expression: &expression}, wantErr: true},
		{name: "license with bad identifier", choice: NewLicenseChoice(License{}), wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.choice.Validate()
			if test.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBomValidateWalksTheComponentTree(t *testing.T) {
	badLicenses := Licenses{{}}
	nested := Component{
		Type:     "library",
		Name:     "inner",
		Version:  "1.0.0",
		Licenses: &badLicenses,
	}
	outer := Component{
		Type:       "application",
		Name:       "outer",
		Version:    "2.0.0",
		Components: &[]Component{nested},
	}

	bom := NewBom()
	bom.Metadata = &Metadata{Licenses: &badLicenses}
	bom.Components = &[]Component{outer}

	err := bom.Validate()
	require.Error(t, err)
	// one violation from the metadata, one from the nested component
	assert.Contains(t, err.Error(), "2 errors occurred")
}

func TestBomValidateAcceptsValidDocument(t *testing.T) {
	licenses := Licenses{NewLicenseExpression("MIT")}
	component := Component{
		Type:     "library",
		Name:     "lib",
		Version:  "1.0.0",
		Licenses: &licenses,
	}

	bom := NewBom()
	bom.Components = &[]Component{component}

	assert.NoError(t, bom.Validate())
}
