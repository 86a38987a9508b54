package model

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNormalizedString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "nothing to do", want: "nothing to do"},
		{name: "newline", input: "line1\nline2", want: "line1 line2"},
		{name: "crlf collapses to one space", input: "line1\r\nline2", want: "line1 line2"},
		{name: "carriage return", input: "line1\rline2", want: "line1 line2"},
		{name: "tab", input: "col1\tcol2", want: "col1 col2"},
		{name: "mixed", input: "a\r\nb\tc\nd", want: "a b c d"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, NormalizedString(test.want), NewNormalizedString(test.input))
		})
	}
}

func TestNewSerialNumber(t *testing.T) {
	serialNumber := string(NewSerialNumber())

	require.True(t, strings.HasPrefix(serialNumber, "urn:uuid:"))
	_, err := uuid.Parse(strings.TrimPrefix(serialNumber, "urn:uuid:"))
	assert.NoError(t, err)
}

func TestNewPurl(t *testing.T) {
	purl, err := NewPurl("pkg:golang/github.com/spf13/cobra@1.3.0")
	require.NoError(t, err)
	assert.Equal(t, Purl("pkg:golang/github.com/spf13/cobra@1.3.0"), purl)

	_, err = NewPurl("not-a-purl")
	assert.Error(t, err)
}

func TestAffectedVersionValidate(t *testing.T) {
	version := NormalizedString("2.4.0")
	versionRange := NormalizedString("vers:semver/>=2.0.0|<2.4.2")

	tests := []struct {
		name    string
		value   AffectedVersion
		wantErr bool
	}{
		{name: "version only", value: AffectedVersion{Version: &version}},
		{name: "range only", value: AffectedVersion{Range: &versionRange}},
		{name: "neither", value: AffectedVersion{}, wantErr: true},
		{name: "both", value: AffectedVersion{Version: &version, Range: &versionRange}, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.value.Validate()
			if test.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnumParsers(t *testing.T) {
	severity, err := ParseSeverity("critical")
	require.NoError(t, err)
	assert.Equal(t, SeverityCritical, severity)
	_, err = ParseSeverity("serious")
	assert.Error(t, err)

	method, err := ParseScoreMethod("CVSSv31")
	require.NoError(t, err)
	assert.Equal(t, ScoreMethodCVSSv31, method)
	_, err = ParseScoreMethod("CVSSv9")
	assert.Error(t, err)

	state, err := ParseAnalysisState("in_triage")
	require.NoError(t, err)
	assert.Equal(t, AnalysisInTriage, state)
	_, err = ParseAnalysisState("triage")
	assert.Error(t, err)

	aggregate, err := ParseAggregateType("incomplete_first_party_only")
	require.NoError(t, err)
	assert.Equal(t, AggregateIncompleteFirstParty, aggregate)
	_, err = ParseAggregateType("partial")
	assert.Error(t, err)

	status, err := ParseAffectedStatus("unaffected")
	require.NoError(t, err)
	assert.Equal(t, StatusUnaffected, status)
	_, err = ParseAffectedStatus("fixed")
	assert.Error(t, err)
}
