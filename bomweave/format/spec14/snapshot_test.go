package spec14

import (
	"bytes"
	"flag"
	"testing"

	"github.com/anchore/go-testutils"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/bomweave/bomweave/bomweave/model"
)

var update = flag.Bool("update", false, "update the *.golden files for serialization snapshots")

func snapshotBom() *model.Bom {
	return &model.Bom{
		Version:      3,
		SerialNumber: serialRef("urn:uuid:3e671687-395b-41f5-a30f-a58921a69b79"),
		Metadata: &model.Metadata{
			Timestamp: dateRef("2020-04-13T20:20:39+00:00"),
			Tools: &[]model.Tool{{
				Vendor:  nsRef("awesome vendor"),
				Name:    nsRef("awesome tool"),
				Version: nsRef("9.1.2"),
			}},
		},
		Components: &[]model.Component{{
			Type:     "library",
			BomRef:   bomRef("pkg:npm/acme/component@1.0.0"),
			Name:     "tomcat-catalina",
			Version:  "1.0.0",
			Licenses: &model.Licenses{model.NewLicenseChoice(model.License{Identifier: model.LicenseID("Apache-2.0")})},
			Purl:     purlRef("pkg:npm/acme/component@1.0.0"),
		}},
		Dependencies: &[]model.Dependency{{Ref: "pkg:npm/acme/component@1.0.0"}},
	}
}

func purlRef(value string) *model.Purl {
	v := model.Purl(value)
	return &v
}

func assertGolden(t *testing.T, actual []byte) {
	t.Helper()

	if *update {
		testutils.UpdateGoldenFileContents(t, actual)
	}

	expected := testutils.GetGoldenFileContents(t)

	if !bytes.Equal(expected, actual) {
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(string(expected), string(actual), true)
		t.Errorf("mismatched output:\n%s", dmp.DiffPrettyText(diffs))
	}
}

func TestXMLSnapshot(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeXML(snapshotBom(), &buf); err != nil {
		t.Fatal(err)
	}

	assertGolden(t, buf.Bytes())
}

func TestJSONSnapshot(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeJSON(snapshotBom(), &buf); err != nil {
		t.Fatal(err)
	}

	assertGolden(t, buf.Bytes())
}
