package model

import (
	"fmt"

	"github.com/anchore/packageurl-go"
)

// Purl is a package URL. The wire codecs pass it through opaquely; NewPurl is
// available to producers that want the value checked before it lands in a BOM.
type Purl string

func NewPurl(raw string) (Purl, error) {
	if _, err := packageurl.FromString(raw); err != nil {
		return "", fmt.Errorf("invalid package URL %q: %w", raw, err)
	}
	return Purl(raw), nil
}

// Cpe is an opaque CPE identifier string.
type Cpe string
