package model

// Metadata carries document-level provenance: when the BOM was produced, by
// which tools and people, and optionally the primary component it describes.
type Metadata struct {
	Timestamp   *DateTime
	Tools       *[]Tool
	Authors     *[]OrganizationalContact
	Component   *Component
	Manufacture *OrganizationalEntity
	Supplier    *OrganizationalEntity
	Licenses    *Licenses
	Properties  *[]Property
}

// Tool identifies a piece of software that contributed to producing the BOM.
type Tool struct {
	Vendor  *NormalizedString
	Name    *NormalizedString
	Version *NormalizedString
	Hashes  *[]Hash
}

type OrganizationalContact struct {
	Name  *NormalizedString
	Email *NormalizedString
	Phone *NormalizedString
}

type OrganizationalEntity struct {
	Name    *NormalizedString
	URL     *[]URI
	Contact *[]OrganizationalContact
}
