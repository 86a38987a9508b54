package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bomweave/bomweave/bomweave/format"
	"github.com/bomweave/bomweave/bomweave/model"
)

func TestParseOutputFlags(t *testing.T) {
	tests := []struct {
		name        string
		outputs     []string
		defaultFile string
		expected    []bomWriterDescription
		wantErr     string
	}{
		{
			name:     "no outputs fall back to json on stdout",
			expected: []bomWriterDescription{{Encoding: format.JSON, Version: format.V1_4}},
		},
		{
			name:    "encoding with explicit file",
			outputs: []string{"xml=bom.xml"},
			expected: []bomWriterDescription{
				{Encoding: format.XML, Version: format.V1_4, Path: "bom.xml"},
			},
		},
		{
			name:        "encoding without file uses the default file",
			outputs:     []string{"json"},
			defaultFile: "out.json",
			expected: []bomWriterDescription{
				{Encoding: format.JSON, Version: format.V1_4, Path: "out.json"},
			},
		},
		{
			name:    "multiple outputs",
			outputs: []string{"json", "xml=bom.xml"},
			expected: []bomWriterDescription{
				{Encoding: format.JSON, Version: format.V1_4},
				{Encoding: format.XML, Version: format.V1_4, Path: "bom.xml"},
			},
		},
		{
			name:    "surrounding whitespace is tolerated",
			outputs: []string{" xml "},
			expected: []bomWriterDescription{
				{Encoding: format.XML, Version: format.V1_4},
			},
		},
		{
			name:    "unknown encoding",
			outputs: []string{"yaml"},
			wantErr: "unsupported encoding",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual, err := parseOutputFlags(test.outputs, test.defaultFile, format.V1_4)
			if test.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), test.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expected, actual)
		})
	}
}

func TestMakeBomWriterRejectsBadEncoding(t *testing.T) {
	_, err := MakeBomWriter([]string{"yaml"}, "", format.V1_4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported encoding")
}

func TestMultiWriterWritesAllDestinations(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "bom.json")
	xmlPath := filepath.Join(dir, "nested", "bom.xml")

	writer, err := MakeBomWriter([]string{"json=" + jsonPath, "xml=" + xmlPath}, "", format.V1_4)
	require.NoError(t, err)

	serial := model.SerialNumber("urn:uuid:3e671687-395b-41f5-a30f-a58921a69b79")
	bom := &model.Bom{Version: 1, SerialNumber: &serial}
	require.NoError(t, writer.Write(bom))
	require.NoError(t, writer.(*bomMultiWriter).Close())

	jsonBytes, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), `"bomFormat": "CycloneDX"`)

	xmlBytes, err := os.ReadFile(xmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(xmlBytes), `xmlns="http://cyclonedx.org/schema/bom/1.4"`)
}

func TestMultiWriterRequiresAtLeastOneDescription(t *testing.T) {
	_, err := newMultiWriter()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no output options")
}
