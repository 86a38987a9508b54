package spec12

import "github.com/bomweave/bomweave/bomweave/bomerr"

func requiredField(element, field string) error {
	return &bomerr.RequiredFieldError{Element: element, Field: field}
}

func unsupported(field string) error {
	return &bomerr.UnsupportedInVersionError{Field: field, Version: Version}
}
