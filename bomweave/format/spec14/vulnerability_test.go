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

func bomWithRatingMethod(method model.ScoreMethod) *model.Bom {
	return &model.Bom{
		Version: 1,
		Vulnerabilities: &[]model.Vulnerability{{
			ID:      nsRef("CVE-2024-0001"),
			Ratings: &[]model.Rating{{Method: &method}},
		}},
	}
}

func TestEncodeRejectsRatingMethodsFromNewerSchemas(t *testing.T) {
	for _, method := range []model.ScoreMethod{model.ScoreMethodCVSSv4, model.ScoreMethodSSVC} {
		t.Run(string(method), func(t *testing.T) {
			var buf bytes.Buffer
			err := EncodeXML(bomWithRatingMethod(method), &buf)

			var unsupportedErr *bomerr.UnsupportedInVersionError
			require.True(t, errors.As(err, &unsupportedErr))
			assert.Equal(t, "1.4", unsupportedErr.Version)

			err = EncodeJSON(bomWithRatingMethod(method), &buf)
			require.True(t, errors.As(err, &unsupportedErr))
		})
	}
}

func TestEncodeAcceptsContemporaryRatingMethods(t *testing.T) {
	for _, method := range []model.ScoreMethod{
		model.ScoreMethodCVSSv2,
		model.ScoreMethodCVSSv3,
		model.ScoreMethodCVSSv31,
		model.ScoreMethodOWASP,
		model.ScoreMethodOther,
	} {
		t.Run(string(method), func(t *testing.T) {
			var buf bytes.Buffer
			assert.NoError(t, EncodeXML(bomWithRatingMethod(method), &buf))
		})
	}
}

func TestDecodeRejectsRatingMethodsFromNewerSchemas(t *testing.T) {
	document := `{
	  "bomFormat": "CycloneDX",
	  "specVersion": "1.4",
	  "vulnerabilities": [
	    {"id": "CVE-2024-0001", "ratings": [{"method": "CVSSv4"}]}
	  ]
	}`

	_, err := DecodeJSON(strings.NewReader(document))

	var unsupportedErr *bomerr.UnsupportedInVersionError
	require.True(t, errors.As(err, &unsupportedErr))
	assert.Equal(t, "1.4", unsupportedErr.Version)
}

func TestDecodeRejectsUnknownEnumerants(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "severity",
			body: `<ratings><rating><severity>serious</severity></rating></ratings>`,
		},
		{
			name: "method",
			body: `<ratings><rating><method>CVSSv9</method></rating></ratings>`,
		},
		{
			name: "analysis state",
			body: `<analysis><state>snoozed</state></analysis>`,
		},
		{
			name: "analysis response",
			body: `<analysis><responses><response>shrug</response></responses></analysis>`,
		},
		{
			name: "affected status",
			body: `<affects><target><ref>a</ref><versions><version><version>1</version><status>fixed</status></version></versions></target></affects>`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			document := wrapXML(`<vulnerabilities><vulnerability><id>CVE-2024-0001</id>` + test.body + `</vulnerability></vulnerabilities>`)

			_, err := DecodeXML(strings.NewReader(document))

			var parseErr *bomerr.ValueParseError
			assert.True(t, errors.As(err, &parseErr))
		})
	}
}

func TestDecodeXMLAffectedVersionExclusivity(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr bool
	}{
		{name: "version only", version: `<version>1.0.0</version>`},
		{name: "range only", version: `<range>vers:semver/&gt;=1.0.0</range>`},
		{name: "both", version: `<version>1.0.0</version><range>vers:semver/&gt;=1.0.0</range>`, wantErr: true},
		{name: "neither", version: `<status>affected</status>`, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			document := wrapXML(`<vulnerabilities><vulnerability><affects><target><ref>a</ref><versions><version>` + test.version + `</version></versions></target></affects></vulnerability></vulnerabilities>`)

			_, err := DecodeXML(strings.NewReader(document))

			if test.wantErr {
				var fieldErr *bomerr.FieldError
				require.True(t, errors.As(err, &fieldErr))
				assert.Equal(t, "affects.versions", fieldErr.Path)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecodeJSONAffectedVersionExclusivity(t *testing.T) {
	document := `{
	  "bomFormat": "CycloneDX",
	  "specVersion": "1.4",
	  "vulnerabilities": [
	    {
	      "id": "CVE-2024-0001",
	      "affects": [
	        {"ref": "a", "versions": [{"version": "1.0.0", "range": "vers:semver/>=1.0.0"}]}
	      ]
	    }
	  ]
	}`

	_, err := DecodeJSON(strings.NewReader(document))

	var fieldErr *bomerr.FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "affects.versions", fieldErr.Path)
}

// The JSON schema names the analysis response list "response", singular,
// unlike the XML wrapper element.
func TestAnalysisResponsesJSONKey(t *testing.T) {
	responses := []model.AnalysisResponse{model.ResponseUpdate}
	bom := &model.Bom{
		Version: 1,
		Vulnerabilities: &[]model.Vulnerability{{
			ID:       nsRef("CVE-2024-0001"),
			Analysis: &model.Analysis{Responses: &responses},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(bom, &buf))

	assert.Contains(t, buf.String(), `"response": [`)
	assert.NotContains(t, buf.String(), `"responses"`)
}

func TestDecodeXMLRequiresAffectsRef(t *testing.T) {
	document := wrapXML(`<vulnerabilities><vulnerability><affects><target><versions><version><version>1</version></version></versions></target></affects></vulnerability></vulnerabilities>`)

	_, err := DecodeXML(strings.NewReader(document))

	var required *bomerr.RequiredFieldError
	require.True(t, errors.As(err, &required))
	assert.Equal(t, "target", required.Element)
	assert.Equal(t, "ref", required.Field)
}
