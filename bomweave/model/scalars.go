package model

import (
	"strings"

	"github.com/google/uuid"
)

// NormalizedString is a string with no CR/LF/TAB characters, per the
// normalizedString XSD type used throughout the CycloneDX schemas.
type NormalizedString string

// NewNormalizedString replaces any CR/LF/TAB characters with spaces.
func NewNormalizedString(value string) NormalizedString {
	replacer := strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ", "\t", " ")
	return NormalizedString(replacer.Replace(value))
}

func (n NormalizedString) String() string {
	return string(n)
}

// DateTime is an opaque timestamp string. The engine round-trips timestamps
// without interpreting them.
type DateTime string

// URI is an opaque URI string.
type URI string

// SpdxID is an identifier from the SPDX license list. Validity of the
// identifier against the list is a concern of the producer, not this engine.
type SpdxID string

// SpdxExpression is a raw SPDX license expression. Expression validity is a
// capability of an external collaborator; the engine treats it as opaque.
type SpdxExpression string

// SerialNumber is a URN-style UUID identifying a BOM document. Treated as an
// opaque string on the wire.
type SerialNumber string

// NewSerialNumber returns a random RFC 4122 URN serial number.
func NewSerialNumber() SerialNumber {
	return SerialNumber(uuid.New().URN())
}

// BomReference is an opaque key pointing at a component or service elsewhere
// in the same BOM. Uniqueness and resolvability are producer responsibilities.
type BomReference string
