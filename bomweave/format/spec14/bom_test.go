package spec14

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

func strRef(value string) *string {
	return &value
}

func nsRef(value string) *model.NormalizedString {
	v := model.NormalizedString(value)
	return &v
}

func uriRef(value string) *model.URI {
	v := model.URI(value)
	return &v
}

func dateRef(value string) *model.DateTime {
	v := model.DateTime(value)
	return &v
}

func bomRef(value string) *model.BomReference {
	v := model.BomReference(value)
	return &v
}

func boolRef(value bool) *bool {
	return &value
}

func uint32Ref(value uint32) *uint32 {
	return &value
}

func float64Ref(value float64) *float64 {
	return &value
}

func serialRef(value string) *model.SerialNumber {
	v := model.SerialNumber(value)
	return &v
}

// fullBom exercises every document section the 1.4 schema can carry.
func fullBom() *model.Bom {
	severity := model.SeverityHigh
	method := model.ScoreMethodCVSSv31
	state := model.AnalysisNotAffected
	justification := model.JustificationCodeNotReachable
	responses := []model.AnalysisResponse{model.ResponseWillNotFix}
	status := model.StatusAffected
	cpe := model.Cpe("cpe:2.3:a:acme:tomcat-catalina:9.0.14:*:*:*:*:*:*:*")
	purl := model.Purl("pkg:maven/com.acme/tomcat-catalina@9.0.14")

	componentLicenses := model.Licenses{
		model.NewLicenseChoice(model.License{
			Identifier: model.LicenseID("Apache-2.0"),
			Text: &model.AttachedText{
				ContentType: nsRef("text/plain"),
				Encoding:    nsRef("base64"),
				Content:     "QXBhY2hlLTIuMA==",
			},
			URL: uriRef("https://www.apache.org/licenses/LICENSE-2.0"),
		}),
		model.NewLicenseExpression("EPL-2.0 OR GPL-2.0-with-classpath-exception"),
	}
	evidenceLicenses := model.Licenses{
		model.NewLicenseChoice(model.License{Identifier: model.LicenseName("Acme License")}),
	}

	component := model.Component{
		Type:        "library",
		MimeType:    nsRef("application/java-archive"),
		BomRef:      bomRef("pkg:maven/com.acme/tomcat-catalina@9.0.14"),
		Supplier:    &model.OrganizationalEntity{Name: nsRef("Acme, Inc."), URL: &[]model.URI{"https://acme.example.com"}},
		Author:      nsRef("Acme Build Bot"),
		Publisher:   nsRef("Acme, Inc."),
		Group:       nsRef("com.acme"),
		Name:        "tomcat-catalina",
		Version:     "9.0.14",
		Description: nsRef("Servlet container"),
		Scope:       nsRef("required"),
		Hashes:      &[]model.Hash{{Alg: "SHA-256", Content: "d0a1b2c3"}},
		Licenses:    &componentLicenses,
		Copyright:   nsRef("Copyright Acme, Inc."),
		Cpe:         &cpe,
		Purl:        &purl,
		Swid: &model.Swid{
			TagID:      "swidgen-1",
			Name:       "Acme Application",
			Version:    strRef("9.0.14"),
			TagVersion: uint32Ref(1),
			Patch:      boolRef(false),
			Text:       &model.AttachedText{Content: "tag body"},
			URL:        uriRef("https://acme.example.com/swid"),
		},
		Modified: boolRef(false),
		Pedigree: &model.Pedigree{
			Ancestors: &[]model.Component{{Type: "library", Name: "catalina", Version: "9.0.0"}},
			Commits: &[]model.Commit{{
				UID: nsRef("7638417db6d59f3c431d3e1f261cc923cb78970e"),
				URL: uriRef("https://git.example.com/commit/7638417"),
				Author: &model.IdentifiableAction{
					Timestamp: dateRef("2020-04-12T20:20:39+00:00"),
					Name:      nsRef("Jane Doe"),
					Email:     nsRef("jane@example.com"),
				},
				Message: nsRef("fix escaping"),
			}},
			Patches: &[]model.Patch{{
				Type: "backport",
				Diff: &model.Diff{URL: uriRef("https://acme.example.com/patches/1.diff")},
				Resolves: &[]model.Issue{{
					Type:        "defect",
					ID:          nsRef("ISSUE-42"),
					Name:        nsRef("escaping bug"),
					Description: nsRef("output was not escaped"),
					Source:      &model.Source{Name: nsRef("issue tracker"), URL: uriRef("https://issues.example.com")},
					References:  &[]model.URI{"https://issues.example.com/42"},
				}},
			}},
			Notes: nsRef("backported upstream fix"),
		},
		ExternalReferences: &[]model.ExternalReference{{
			Type:    "website",
			URL:     "https://acme.example.com",
			Comment: nsRef("project home"),
			Hashes:  &[]model.Hash{{Alg: "SHA-1", Content: "deadbeef"}},
		}},
		Properties: &[]model.Property{{Name: "internal:team", Value: "runtime"}},
		Components: &[]model.Component{{Type: "library", Name: "juli", Version: "9.0.14"}},
		Evidence: &model.ComponentEvidence{
			Licenses:  &evidenceLicenses,
			Copyright: &[]model.Copyright{{Text: "Copyright Acme"}},
		},
	}

	service := model.Service{
		BomRef:        bomRef("b2a46a4b-8367-4bae-9820-95557cfe03a8"),
		Provider:      &model.OrganizationalEntity{Name: nsRef("Partner Org"), Contact: &[]model.OrganizationalContact{{Name: nsRef("Support"), Email: nsRef("support@partner.example.com")}}},
		Group:         nsRef("com.partner"),
		Name:          "stock-ticker-service",
		Version:       nsRef("2020-Q2"),
		Description:   nsRef("Provides real-time stock information"),
		Endpoints:     &[]model.URI{"https://partner.example.com/api/v1/ticker", "https://partner.example.com/api/v1/stock"},
		Authenticated: boolRef(true),
		TrustBoundary: boolRef(true),
		Data: &[]model.DataClassification{
			{Flow: "inbound", Classification: "PII"},
			{Flow: "outbound", Classification: "public"},
		},
		Licenses:   &model.Licenses{model.NewLicenseExpression("Partner-EULA")},
		Properties: &[]model.Property{{Name: "tier", Value: "gold"}},
		Services:   &[]model.Service{{Name: "quote-lookup"}},
	}

	vulnerability := model.Vulnerability{
		BomRef: bomRef("vuln-1"),
		ID:     nsRef("CVE-2021-44228"),
		Source: &model.Source{Name: nsRef("NVD"), URL: uriRef("https://nvd.nist.gov/vuln/detail/CVE-2021-44228")},
		References: &[]model.VulnerabilityReference{{
			ID:     "GHSA-jfh8-c2jp-5v3q",
			Source: model.Source{Name: nsRef("GitHub Advisories")},
		}},
		Ratings: &[]model.Rating{{
			Source:        &model.Source{Name: nsRef("NVD")},
			Score:         float64Ref(10),
			Severity:      &severity,
			Method:        &method,
			Vector:        nsRef("CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:C/C:H/I:H/A:H"),
			Justification: nsRef("remote code execution"),
		}},
		CWEs:           &[]uint32{502, 917},
		Description:    nsRef("JNDI features do not protect against attacker controlled endpoints"),
		Detail:         nsRef("Log4j JNDI lookup"),
		Recommendation: nsRef("Upgrade to 2.17.1"),
		Advisories:     &[]model.Advisory{{Title: nsRef("vendor advisory"), URL: "https://logging.apache.org/log4j/2.x/security.html"}},
		Created:        dateRef("2021-12-10T00:00:00+00:00"),
		Published:      dateRef("2021-12-10T10:15:00+00:00"),
		Updated:        dateRef("2021-12-14T00:00:00+00:00"),
		Credits: &model.Credits{
			Organizations: &[]model.OrganizationalEntity{{Name: nsRef("Alibaba Cloud Security Team")}},
			Individuals:   &[]model.OrganizationalContact{{Name: nsRef("Chen Zhaojun")}},
		},
		Tools: &[]model.Tool{{Vendor: nsRef("acme"), Name: nsRef("scanner"), Version: nsRef("1.0")}},
		Analysis: &model.Analysis{
			State:         &state,
			Justification: &justification,
			Responses:     &responses,
			Detail:        nsRef("the vulnerable class is not shipped"),
		},
		Affects: &[]model.Affects{{
			Ref: "pkg:maven/com.acme/tomcat-catalina@9.0.14",
			Versions: &[]model.AffectedVersion{
				{Version: nsRef("9.0.14"), Status: &status},
				{Range: nsRef("vers:maven/>=9.0.0|<9.0.15"), Status: &status},
			},
		}},
		Properties: &[]model.Property{{Name: "triage:owner", Value: "security"}},
	}

	metadataLicenses := model.Licenses{model.NewLicenseChoice(model.License{Identifier: model.LicenseID("CC-BY-4.0")})}

	return &model.Bom{
		Version:      7,
		SerialNumber: serialRef("urn:uuid:3e671687-395b-41f5-a30f-a58921a69b79"),
		Metadata: &model.Metadata{
			Timestamp: dateRef("2020-04-13T20:20:39+00:00"),
			Tools: &[]model.Tool{{
				Vendor:  nsRef("awesome vendor"),
				Name:    nsRef("awesome tool"),
				Version: nsRef("9.1.2"),
				Hashes:  &[]model.Hash{{Alg: "SHA-256", Content: "25ed8e31b995bb927966616df2a42b979a2717f0"}},
			}},
			Authors:     &[]model.OrganizationalContact{{Name: nsRef("Samantha Wright"), Email: nsRef("samantha.wright@example.com"), Phone: nsRef("800-555-1212")}},
			Component:   &model.Component{Type: "application", BomRef: bomRef("acme-app"), Name: "Acme Application", Version: "9.1.1"},
			Manufacture: &model.OrganizationalEntity{Name: nsRef("Acme, Inc.")},
			Supplier:    &model.OrganizationalEntity{Name: nsRef("Acme Distribution")},
			Licenses:    &metadataLicenses,
			Properties:  &[]model.Property{{Name: "doc:classification", Value: "internal"}},
		},
		Components:         &[]model.Component{component},
		Services:           &[]model.Service{service},
		ExternalReferences: &[]model.ExternalReference{{Type: "bom", URL: "https://acme.example.com/sbom.json"}},
		Dependencies: &[]model.Dependency{
			{Ref: "acme-app", DependsOn: []model.BomReference{"pkg:maven/com.acme/tomcat-catalina@9.0.14"}},
			{Ref: "pkg:maven/com.acme/tomcat-catalina@9.0.14"},
		},
		Compositions: &[]model.Composition{{
			Aggregate:    model.AggregateComplete,
			Assemblies:   &[]model.BomReference{"acme-app"},
			Dependencies: &[]model.BomReference{"pkg:maven/com.acme/tomcat-catalina@9.0.14"},
		}},
		Properties:      &[]model.Property{{Name: "bom:generator", Value: "pipeline"}},
		Vulnerabilities: &[]model.Vulnerability{vulnerability},
		Signature:       &model.Signature{Algorithm: "ES256", Value: "c2lnbmF0dXJl"},
	}
}

func TestEncodeXMLMinimalDocument(t *testing.T) {
	bom := &model.Bom{Version: 1, SerialNumber: serialRef("fake-uuid")}

	var buf bytes.Buffer
	require.NoError(t, EncodeXML(bom, &buf))

	expected := "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<bom xmlns=\"http://cyclonedx.org/schema/bom/1.4\" serialNumber=\"fake-uuid\" version=\"1\"/>\n"
	assert.Equal(t, expected, buf.String())
}

func TestEncodeJSONMinimalDocument(t *testing.T) {
	bom := &model.Bom{Version: 1, SerialNumber: serialRef("fake-uuid")}

	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(bom, &buf))

	expected := `{
  "bomFormat": "CycloneDX",
  "specVersion": "1.4",
  "version": 1,
  "serialNumber": "fake-uuid"
}
`
	assert.Equal(t, expected, buf.String())
}

func TestDecodeXMLMinimalDocument(t *testing.T) {
	document := `<?xml version="1.0" encoding="UTF-8"?>
<bom xmlns="http://cyclonedx.org/schema/bom/1.4" serialNumber="fake-uuid" version="1"/>`

	bom, err := DecodeXML(strings.NewReader(document))
	require.NoError(t, err)

	assert.Equal(t, uint32(1), bom.Version)
	require.NotNil(t, bom.SerialNumber)
	assert.Equal(t, model.SerialNumber("fake-uuid"), *bom.SerialNumber)
	assert.Nil(t, bom.Components)
	assert.Nil(t, bom.Vulnerabilities)
}

func TestDecodeXMLDefaultsVersionCounter(t *testing.T) {
	document := `<bom xmlns="http://cyclonedx.org/schema/bom/1.4"/>`

	bom, err := DecodeXML(strings.NewReader(document))
	require.NoError(t, err)

	// version attribute absent: counter defaults to 1, serial number stays unset
	assert.Equal(t, uint32(1), bom.Version)
	assert.Nil(t, bom.SerialNumber)
}

func TestDecodeJSONDefaultsVersionCounter(t *testing.T) {
	document := `{"bomFormat": "CycloneDX", "specVersion": "1.4"}`

	bom, err := DecodeJSON(strings.NewReader(document))
	require.NoError(t, err)

	assert.Equal(t, uint32(1), bom.Version)
	assert.Nil(t, bom.SerialNumber)
}

func TestDecodeXMLRejectsWrongNamespace(t *testing.T) {
	document := `<bom xmlns="http://cyclonedx.org/schema/bom/1.3" version="1"/>`

	_, err := DecodeXML(strings.NewReader(document))

	var nsErr *bomerr.InvalidNamespaceError
	require.True(t, errors.As(err, &nsErr))
	assert.Equal(t, Namespace, nsErr.Expected)
	assert.Equal(t, "http://cyclonedx.org/schema/bom/1.3", nsErr.Actual)
}

func TestDecodeXMLRejectsWrongRootElement(t *testing.T) {
	document := `<sbom xmlns="http://cyclonedx.org/schema/bom/1.4"/>`

	_, err := DecodeXML(strings.NewReader(document))

	var unexpected *bomerr.UnexpectedElementError
	assert.True(t, errors.As(err, &unexpected))
}

func TestDecodeJSONRejectsWrongEnvelope(t *testing.T) {
	tests := []struct {
		name     string
		document string
		path     string
	}{
		{
			name:     "wrong bomFormat",
			document: `{"bomFormat": "SPDX", "specVersion": "1.4"}`,
			path:     "bomFormat",
		},
		{
			name:     "wrong specVersion",
			document: `{"bomFormat": "CycloneDX", "specVersion": "1.3"}`,
			path:     "specVersion",
		},
		{
			name:     "missing envelope",
			document: `{}`,
			path:     "bomFormat",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := DecodeJSON(strings.NewReader(test.document))

			var fieldErr *bomerr.FieldError
			require.True(t, errors.As(err, &fieldErr))
			assert.Equal(t, test.path, fieldErr.Path)
		})
	}
}

func TestDecodeXMLToleratesUnknownElements(t *testing.T) {
	document := `<bom xmlns="http://cyclonedx.org/schema/bom/1.4" version="1">
	  <ext:annotations xmlns:ext="http://example.com/ext">
	    <ext:annotation subject="acme-app">reviewed</ext:annotation>
	  </ext:annotations>
	  <components>
	    <component type="library">
	      <futureField>ignored</futureField>
	      <name>acme-lib</name>
	      <version>1.0.0</version>
	    </component>
	  </components>
	</bom>`

	bom, err := DecodeXML(strings.NewReader(document))
	require.NoError(t, err)

	require.NotNil(t, bom.Components)
	require.Len(t, *bom.Components, 1)
	assert.Equal(t, model.NormalizedString("acme-lib"), (*bom.Components)[0].Name)
}

func TestDecodeJSONToleratesUnknownKeys(t *testing.T) {
	document := `{
	  "bomFormat": "CycloneDX",
	  "specVersion": "1.4",
	  "version": 2,
	  "futureSection": {"anything": true},
	  "components": [
	    {"type": "library", "name": "acme-lib", "version": "1.0.0", "futureField": 1}
	  ]
	}`

	bom, err := DecodeJSON(strings.NewReader(document))
	require.NoError(t, err)

	assert.Equal(t, uint32(2), bom.Version)
	require.NotNil(t, bom.Components)
	require.Len(t, *bom.Components, 1)
}

func TestAbsentAndEmptySectionsAreDistinct(t *testing.T) {
	absent := `<bom xmlns="http://cyclonedx.org/schema/bom/1.4" version="1"/>`
	empty := `<bom xmlns="http://cyclonedx.org/schema/bom/1.4" version="1"><components></components></bom>`

	bom, err := DecodeXML(strings.NewReader(absent))
	require.NoError(t, err)
	assert.Nil(t, bom.Components)

	bom, err = DecodeXML(strings.NewReader(empty))
	require.NoError(t, err)
	require.NotNil(t, bom.Components)
	assert.Len(t, *bom.Components, 0)
}

func TestEncodeXMLEmptySectionSelfCloses(t *testing.T) {
	bom := &model.Bom{Version: 1, Components: &[]model.Component{}}

	var buf bytes.Buffer
	require.NoError(t, EncodeXML(bom, &buf))

	expected := "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<bom xmlns=\"http://cyclonedx.org/schema/bom/1.4\" version=\"1\">\n" +
		"  <components/>\n" +
		"</bom>\n"
	assert.Equal(t, expected, buf.String())
}

func TestRoundTripXML(t *testing.T) {
	original := fullBom()

	var buf bytes.Buffer
	require.NoError(t, EncodeXML(original, &buf))

	decoded, err := DecodeXML(&buf)
	require.NoError(t, err)

	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripJSON(t *testing.T) {
	original := fullBom()

	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(original, &buf))

	decoded, err := DecodeJSON(&buf)
	require.NoError(t, err)

	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCrossFormatEquivalence(t *testing.T) {
	original := fullBom()

	var xmlBuf, jsonBuf bytes.Buffer
	require.NoError(t, EncodeXML(original, &xmlBuf))
	require.NoError(t, EncodeJSON(original, &jsonBuf))

	fromXML, err := DecodeXML(&xmlBuf)
	require.NoError(t, err)
	fromJSON, err := DecodeJSON(&jsonBuf)
	require.NoError(t, err)

	if diff := cmp.Diff(fromXML, fromJSON); diff != "" {
		t.Errorf("XML and JSON readings disagree (-xml +json):\n%s", diff)
	}
}

func TestDecodeXMLRequiresComponentNameAndVersion(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{
			name:  "missing name",
			body:  `<component type="library"><version>1.0.0</version></component>`,
			field: "name",
		},
		{
			name:  "missing version",
			body:  `<component type="library"><name>acme-lib</name></component>`,
			field: "version",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			document := `<bom xmlns="http://cyclonedx.org/schema/bom/1.4"><components>` + test.body + `</components></bom>`

			_, err := DecodeXML(strings.NewReader(document))

			var required *bomerr.RequiredFieldError
			require.True(t, errors.As(err, &required))
			assert.Equal(t, "component", required.Element)
			assert.Equal(t, test.field, required.Field)
		})
	}
}

func TestDecodeXMLRejectsBadVersionAttribute(t *testing.T) {
	document := `<bom xmlns="http://cyclonedx.org/schema/bom/1.4" version="one"/>`

	_, err := DecodeXML(strings.NewReader(document))

	var parseErr *bomerr.ValueParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "version", parseErr.Name)
}
