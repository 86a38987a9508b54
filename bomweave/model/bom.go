// Package model holds the version-agnostic in-memory representation of a
// CycloneDX BOM. It is pure data: nothing here knows about XML, JSON, or any
// particular schema version. The format packages convert values of this model
// to and from the per-version wire shapes.
package model

import (
	"github.com/hashicorp/go-multierror"
)

// Bom is the root of the entity graph.
//
// Optional sections are pointers so that an absent section is distinguishable
// from a present-but-empty one; both states round-trip faithfully where the
// wire schema allows the distinction.
type Bom struct {
	Version            uint32
	SerialNumber       *SerialNumber
	Metadata           *Metadata
	Components         *[]Component
	Services           *[]Service
	ExternalReferences *[]ExternalReference
	Dependencies       *[]Dependency
	Compositions       *[]Composition
	Properties         *[]Property
	Vulnerabilities    *[]Vulnerability
	Signature          *Signature
}

// NewBom returns a Bom with the document version counter at its schema
// default of 1.
func NewBom() *Bom {
	return &Bom{Version: 1}
}

// Validate checks the model-boundary invariants that the wire codecs rely on,
// most notably the exactly-one rule on license identifiers. All violations
// are reported, not just the first.
func (b *Bom) Validate() error {
	var errs error
	if b.Metadata != nil {
		if b.Metadata.Licenses != nil {
			errs = appendLicenseErrors(errs, *b.Metadata.Licenses)
		}
		if b.Metadata.Component != nil {
			errs = appendComponentErrors(errs, *b.Metadata.Component)
		}
	}
	if b.Components != nil {
		for _, c := range *b.Components {
			errs = appendComponentErrors(errs, c)
		}
	}
	if b.Services != nil {
		for _, s := range *b.Services {
			errs = appendServiceErrors(errs, s)
		}
	}
	return errs
}

func appendComponentErrors(errs error, c Component) error {
	if c.Licenses != nil {
		errs = appendLicenseErrors(errs, *c.Licenses)
	}
	if c.Evidence != nil && c.Evidence.Licenses != nil {
		errs = appendLicenseErrors(errs, *c.Evidence.Licenses)
	}
	if c.Components != nil {
		for _, nested := range *c.Components {
			errs = appendComponentErrors(errs, nested)
		}
	}
	return errs
}

func appendServiceErrors(errs error, s Service) error {
	if s.Licenses != nil {
		errs = appendLicenseErrors(errs, *s.Licenses)
	}
	if s.Services != nil {
		for _, nested := range *s.Services {
			errs = appendServiceErrors(errs, nested)
		}
	}
	return errs
}

func appendLicenseErrors(errs error, licenses Licenses) error {
	for _, choice := range licenses {
		if err := choice.Validate(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs
}
