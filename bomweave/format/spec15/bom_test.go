package spec15

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

func methodRef(value model.ScoreMethod) *model.ScoreMethod {
	return &value
}

func TestEncodeXMLMinimalDocument(t *testing.T) {
	bom := &model.Bom{Version: 1, SerialNumber: serialRef("fake-uuid")}

	var buf bytes.Buffer
	require.NoError(t, EncodeXML(bom, &buf))

	expected := "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<bom xmlns=\"http://cyclonedx.org/schema/bom/1.5\" serialNumber=\"fake-uuid\" version=\"1\"/>\n"
	assert.Equal(t, expected, buf.String())
}

// CVSSv4 and SSVC ratings are rejected by the 1.4 codec but pass through
// here untouched.
func TestRoundTripNewerRatingMethods(t *testing.T) {
	original := &model.Bom{
		Version: 1,
		Vulnerabilities: &[]model.Vulnerability{{
			ID: nsRef("CVE-2024-0001"),
			Ratings: &[]model.Rating{
				{Method: methodRef(model.ScoreMethodCVSSv4)},
				{Method: methodRef(model.ScoreMethodSSVC)},
			},
		}},
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

func TestRoundTripSignatures(t *testing.T) {
	sig := &model.Signature{Algorithm: "ES256", Value: "c2lnbmF0dXJl"}
	original := &model.Bom{
		Version: 1,
		Components: &[]model.Component{{
			Type: "library", Name: "lib-a", Version: "1.0.0",
			Signature: sig,
		}},
		Services: &[]model.Service{{
			Name:      "gateway",
			Signature: sig,
		}},
		Compositions: &[]model.Composition{{
			Aggregate: model.AggregateComplete,
			Signature: sig,
		}},
		Signature: sig,
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(original, &buf))
	decoded, err := DecodeJSON(&buf)
	require.NoError(t, err)

	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
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
	document := `{"bomFormat": "CycloneDX", "specVersion": "1.2"}`

	_, err := DecodeJSON(strings.NewReader(document))

	var fieldErr *bomerr.FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "specVersion", fieldErr.Path)
}
