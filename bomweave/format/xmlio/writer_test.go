package xmlio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterSelfClosesEmptyElements(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.Start("bom", Attr{Name: "version", Value: "1"}))
	require.NoError(t, w.End())
	require.NoError(t, w.Flush())

	assert.Equal(t, "<bom version=\"1\"/>\n", buf.String())
}

func TestWriterIndentsNestedElements(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.Start("a"))
	require.NoError(t, w.Start("b"))
	require.NoError(t, w.SimpleTag("c", "x"))
	require.NoError(t, w.End())
	require.NoError(t, w.Start("d"))
	require.NoError(t, w.End())
	require.NoError(t, w.End())
	require.NoError(t, w.Flush())

	expected := "<a>\n" +
		"  <b>\n" +
		"    <c>x</c>\n" +
		"  </b>\n" +
		"  <d/>\n" +
		"</a>\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriterPreservesAttributeOrder(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.Start("bom",
		Attr{Name: "xmlns", Value: "http://example.com/ns"},
		Attr{Name: "serialNumber", Value: "urn:uuid:1"},
		Attr{Name: "version", Value: "1"},
	))
	require.NoError(t, w.End())
	require.NoError(t, w.Flush())

	assert.Equal(t, "<bom xmlns=\"http://example.com/ns\" serialNumber=\"urn:uuid:1\" version=\"1\"/>\n", buf.String())
}

func TestWriterEscapesContent(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.Start("name", Attr{Name: "title", Value: `say "hi"`}))
	require.NoError(t, w.Text("a<b & c"))
	require.NoError(t, w.End())
	require.NoError(t, w.Flush())

	assert.Equal(t, "<name title=\"say &#34;hi&#34;\">a&lt;b &amp; c</name>\n", buf.String())
}

func TestWriterHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Start("bom"))
	require.NoError(t, w.End())
	require.NoError(t, w.Flush())

	assert.Equal(t, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<bom/>\n", buf.String())
}

func TestWriterRejectsFlushWithOpenElements(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.Start("bom"))

	err := w.Flush()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unclosed")
}

func TestWriterRejectsStrayEvents(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	assert.Error(t, w.Text("orphan"))
	assert.Error(t, w.End())
}
