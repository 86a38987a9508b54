// Package bomerr defines the typed errors surfaced by the serialization
// engine. All of them are fatal to the current document read or write; the
// engine never retries internally and never yields a partial result.
package bomerr

import "fmt"

// UnexpectedElementError reports a structural failure during an XML read: an
// event that cannot occur at the current position (wrong child, truncated
// document, stray content).
type UnexpectedElementError struct {
	Element string // the element being read when the failure occurred
	Actual  string // description of the event actually observed
}

func (e *UnexpectedElementError) Error() string {
	return fmt.Sprintf("unexpected content while reading element %q: %s", e.Element, e.Actual)
}

// RequiredFieldError reports a required child element or attribute that was
// absent from its containing element.
type RequiredFieldError struct {
	Element string
	Field   string
}

func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("element %q is missing required field %q", e.Element, e.Field)
}

// DuplicateElementError reports a second occurrence of a child that may
// appear at most once (e.g. both slots of a mutually-exclusive pair).
type DuplicateElementError struct {
	Element string
	Child   string
}

func (e *DuplicateElementError) Error() string {
	return fmt.Sprintf("element %q contains a second %q, which is not allowed", e.Element, e.Child)
}

// ValueParseError reports scalar text that failed conversion to its typed
// value (a malformed integer or boolean, or an unrecognized enumerant).
type ValueParseError struct {
	Name  string // the attribute or element carrying the value
	Value string // the offending wire text
	Kind  string // the expected value kind
}

func (e *ValueParseError) Error() string {
	return fmt.Sprintf("invalid %s value %q for %q", e.Kind, e.Value, e.Name)
}

// InvalidNamespaceError reports a root element whose namespace does not match
// the one expected for the requested schema version.
type InvalidNamespaceError struct {
	Expected string
	Actual   string
}

func (e *InvalidNamespaceError) Error() string {
	return fmt.Sprintf("invalid document namespace: expected %q, got %q", e.Expected, e.Actual)
}

// UnsupportedInVersionError reports a write-direction failure: the internal
// model uses a feature that the requested target schema version cannot
// represent. Data is never silently dropped.
type UnsupportedInVersionError struct {
	Field   string
	Version string
}

func (e *UnsupportedInVersionError) Error() string {
	return fmt.Sprintf("field %q is not representable in CycloneDX %s", e.Field, e.Version)
}

// FieldError reports a JSON parse failure tied to a specific field path.
type FieldError struct {
	Path   string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Path, e.Reason)
}
