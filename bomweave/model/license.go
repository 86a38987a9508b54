package model

import "fmt"

// Licenses is an ordered sequence of license choices. Order is preserved
// through serialization.
type Licenses []LicenseChoice

// LicenseChoice is a sum type: exactly one of License or Expression is set.
// Use the constructors to build valid values; Validate enforces the invariant
// once at the model boundary so consumers never re-check it.
type LicenseChoice struct {
	License    *License
	Expression *SpdxExpression
}

func NewLicenseChoice(license License) LicenseChoice {
	return LicenseChoice{License: &license}
}

func NewLicenseExpression(expression SpdxExpression) LicenseChoice {
	return LicenseChoice{Expression: &expression}
}

func (c LicenseChoice) Validate() error {
	if (c.License == nil) == (c.Expression == nil) {
		return fmt.Errorf("license choice must carry exactly one of a license or an expression")
	}
	if c.License != nil {
		return c.License.Validate()
	}
	return nil
}

// License names a single license either by SPDX identifier or by free-text
// name (exactly one of the two), with optional attached text and URL.
type License struct {
	Identifier LicenseIdentifier
	Text       *AttachedText
	URL        *URI
}

func (l License) Validate() error {
	return l.Identifier.Validate()
}

// LicenseIdentifier is a sum type: exactly one of ID or Name is set.
type LicenseIdentifier struct {
	ID   *SpdxID
	Name *NormalizedString
}

func LicenseID(id SpdxID) LicenseIdentifier {
	return LicenseIdentifier{ID: &id}
}

func LicenseName(name NormalizedString) LicenseIdentifier {
	return LicenseIdentifier{Name: &name}
}

func (i LicenseIdentifier) Validate() error {
	if (i.ID == nil) == (i.Name == nil) {
		return fmt.Errorf("license identifier must carry exactly one of an SPDX id or a name")
	}
	return nil
}
