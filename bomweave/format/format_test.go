package format

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bomweave/bomweave/bomweave/model"
)

func TestParseSpecVersion(t *testing.T) {
	tests := []struct {
		input    string
		expected SpecVersion
		wantErr  bool
	}{
		{input: "1.2", expected: V1_2},
		{input: "1.3", expected: V1_3},
		{input: "1.4", expected: V1_4},
		{input: "1.5", expected: V1_5},
		{input: " 1.4 ", expected: V1_4},
		{input: "1.1", wantErr: true},
		{input: "1.6", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("%q", test.input), func(t *testing.T) {
			actual, err := ParseSpecVersion(test.input)
			if test.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unsupported schema version")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expected, actual)
		})
	}
}

func TestParseEncoding(t *testing.T) {
	tests := []struct {
		input    string
		expected Encoding
		wantErr  bool
	}{
		{input: "xml", expected: XML},
		{input: "json", expected: JSON},
		{input: "JSON", expected: JSON},
		{input: " Xml ", expected: XML},
		{input: "yaml", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("%q", test.input), func(t *testing.T) {
			actual, err := ParseEncoding(test.input)
			if test.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unsupported encoding")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expected, actual)
		})
	}
}

// A document every supported version can express without gating.
func portableBom() *model.Bom {
	serial := model.SerialNumber("urn:uuid:3e671687-395b-41f5-a30f-a58921a69b79")
	return &model.Bom{
		Version:      7,
		SerialNumber: &serial,
		Components: &[]model.Component{{
			Type:    "library",
			Name:    "lib-a",
			Version: "1.0.0",
		}},
		Dependencies: &[]model.Dependency{{Ref: "lib-a"}},
	}
}

func TestSerializeParseAcrossAllCodecs(t *testing.T) {
	original := portableBom()

	for _, version := range SpecVersions() {
		for _, encoding := range []Encoding{XML, JSON} {
			t.Run(fmt.Sprintf("%s %s", version, encoding), func(t *testing.T) {
				var buf bytes.Buffer
				require.NoError(t, Serialize(original, &buf, version, encoding))

				decoded, err := Parse(&buf, version, encoding)
				require.NoError(t, err)

				for _, difference := range deep.Equal(original, decoded) {
					t.Error(difference)
				}
			})
		}
	}
}

func TestSerializeRejectsUnknownSelectors(t *testing.T) {
	var buf bytes.Buffer

	err := Serialize(portableBom(), &buf, SpecVersion("1.1"), XML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no codec")

	err = Serialize(portableBom(), &buf, V1_4, Encoding("yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no codec")
}

func TestParseRejectsUnknownSelectors(t *testing.T) {
	_, err := Parse(bytes.NewReader(nil), SpecVersion("2.0"), JSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no codec")
}

func TestSerializeVersionStampsOutput(t *testing.T) {
	for _, version := range SpecVersions() {
		t.Run(string(version), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Serialize(portableBom(), &buf, version, XML))
			assert.Contains(t, buf.String(), fmt.Sprintf("http://cyclonedx.org/schema/bom/%s", version))

			buf.Reset()
			require.NoError(t, Serialize(portableBom(), &buf, version, JSON))
			assert.Contains(t, buf.String(), fmt.Sprintf("%q: %q", "specVersion", version))
		})
	}
}
