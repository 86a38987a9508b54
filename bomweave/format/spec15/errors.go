package spec15

import "github.com/bomweave/bomweave/bomweave/bomerr"

func requiredField(element, field string) error {
	return &bomerr.RequiredFieldError{Element: element, Field: field}
}

func valueError(name, value, kind string) error {
	return &bomerr.ValueParseError{Name: name, Value: value, Kind: kind}
}
