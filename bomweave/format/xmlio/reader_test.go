package xmlio

import (
	"encoding/xml"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bomweave/bomweave/bomweave/bomerr"
)

func startOf(t *testing.T, d *xml.Decoder) xml.StartElement {
	t.Helper()
	start, err := DocumentStart(d)
	require.NoError(t, err)
	return start
}

func TestReadElementsDispatchesKnownChildren(t *testing.T) {
	d := xml.NewDecoder(strings.NewReader(`<parent><name>value</name><other>x</other></parent>`))
	start := startOf(t, d)

	var name string
	err := ReadElements(d, start, ElementHandlers{
		"name": func(se xml.StartElement) error {
			var err error
			name, err = ReadSimpleTag(d, se)
			return err
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "value", name)
}

func TestReadElementsSkipsUnrecognizedSubtrees(t *testing.T) {
	// foreign-namespace extensions must not fail the parse, however deep
	document := `<parent>
		<ext:extension xmlns:ext="http://example.com/ext">
			<ext:inner attr="1"><ext:deeper>text</ext:deeper></ext:inner>
		</ext:extension>
		<name>value</name>
	</parent>`
	d := xml.NewDecoder(strings.NewReader(document))
	start := startOf(t, d)

	var name string
	err := ReadElements(d, start, ElementHandlers{
		"name": func(se xml.StartElement) error {
			var err error
			name, err = ReadSimpleTag(d, se)
			return err
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "value", name)
}

func TestReadElementsRejectsTextContent(t *testing.T) {
	d := xml.NewDecoder(strings.NewReader(`<parent>stray text</parent>`))
	start := startOf(t, d)

	err := ReadElements(d, start, ElementHandlers{})

	var unexpected *bomerr.UnexpectedElementError
	require.True(t, errors.As(err, &unexpected))
	assert.Equal(t, "parent", unexpected.Element)
}

func TestReadElementsReportsTruncatedInput(t *testing.T) {
	d := xml.NewDecoder(strings.NewReader(`<parent>`))
	start := startOf(t, d)

	err := ReadElements(d, start, ElementHandlers{})
	assert.Error(t, err)
}

func TestReadSimpleTag(t *testing.T) {
	d := xml.NewDecoder(strings.NewReader(`<name>with &amp; entity<!-- note --></name>`))
	start := startOf(t, d)

	value, err := ReadSimpleTag(d, start)
	require.NoError(t, err)
	assert.Equal(t, "with & entity", value)
}

func TestReadSimpleTagRejectsNestedElements(t *testing.T) {
	d := xml.NewDecoder(strings.NewReader(`<name>text<nested/></name>`))
	start := startOf(t, d)

	_, err := ReadSimpleTag(d, start)

	var unexpected *bomerr.UnexpectedElementError
	assert.True(t, errors.As(err, &unexpected))
}

func TestDocumentStartSkipsProlog(t *testing.T) {
	document := "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<!-- generated -->\n<bom/>"
	d := xml.NewDecoder(strings.NewReader(document))

	start, err := DocumentStart(d)
	require.NoError(t, err)
	assert.Equal(t, "bom", start.Name.Local)
}

func TestDocumentEnd(t *testing.T) {
	tests := []struct {
		name     string
		trailing string
		wantErr  bool
	}{
		{name: "eof", trailing: ""},
		{name: "whitespace and comment", trailing: "\n<!-- done -->\n"},
		{name: "second element", trailing: "<bom/>", wantErr: true},
		{name: "text content", trailing: "leftovers", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d := xml.NewDecoder(strings.NewReader(`<bom/>` + test.trailing))
			startOf(t, d)
			require.NoError(t, d.Skip())

			err := DocumentEnd(d, "bom")
			if test.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequireAttr(t *testing.T) {
	d := xml.NewDecoder(strings.NewReader(`<hash alg="SHA-256"/>`))
	start := startOf(t, d)

	value, err := RequireAttr(start, "alg")
	require.NoError(t, err)
	assert.Equal(t, "SHA-256", value)

	_, err = RequireAttr(start, "content")
	var required *bomerr.RequiredFieldError
	require.True(t, errors.As(err, &required))
	assert.Equal(t, "hash", required.Element)
	assert.Equal(t, "content", required.Field)
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		value   string
		want    bool
		wantErr bool
	}{
		{value: "true", want: true},
		{value: "false", want: false},
		{value: "True", wantErr: true},
		{value: "1", wantErr: true},
		{value: "", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.value, func(t *testing.T) {
			got, err := ParseBool("modified", test.value)
			if test.wantErr {
				var parseErr *bomerr.ValueParseError
				require.True(t, errors.As(err, &parseErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestParseUint32(t *testing.T) {
	tests := []struct {
		value   string
		want    uint32
		wantErr bool
	}{
		{value: "1", want: 1},
		{value: "287", want: 287},
		{value: "-1", wantErr: true},
		{value: "4294967296", wantErr: true},
		{value: "abc", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.value, func(t *testing.T) {
			got, err := ParseUint32("version", test.value)
			if test.wantErr {
				var parseErr *bomerr.ValueParseError
				require.True(t, errors.As(err, &parseErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestParseFloat64(t *testing.T) {
	got, err := ParseFloat64("score", "7.4")
	require.NoError(t, err)
	assert.Equal(t, 7.4, got)

	_, err = ParseFloat64("score", "high")
	var parseErr *bomerr.ValueParseError
	assert.True(t, errors.As(err, &parseErr))
}
