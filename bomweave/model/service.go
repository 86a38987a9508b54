package model

// Service is the network-service analogue of Component. Services nest
// recursively via the Services field.
type Service struct {
	BomRef             *BomReference
	Provider           *OrganizationalEntity
	Group              *NormalizedString
	Name               NormalizedString
	Version            *NormalizedString
	Description        *NormalizedString
	Endpoints          *[]URI
	Authenticated      *bool
	TrustBoundary      *bool
	Data               *[]DataClassification
	Licenses           *Licenses
	ExternalReferences *[]ExternalReference
	Properties         *[]Property
	Services           *[]Service
	Signature          *Signature
}

// DataClassification pairs a data flow direction with the kind of data that
// flows through it.
type DataClassification struct {
	Flow           NormalizedString
	Classification NormalizedString
}
