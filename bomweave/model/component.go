package model

// Component describes a single software unit. Components nest recursively
// via the Components field (e.g. a bundle and its contained modules).
type Component struct {
	Type               NormalizedString
	MimeType           *NormalizedString
	BomRef             *BomReference
	Supplier           *OrganizationalEntity
	Author             *NormalizedString
	Publisher          *NormalizedString
	Group              *NormalizedString
	Name               NormalizedString
	Version            NormalizedString
	Description        *NormalizedString
	Scope              *NormalizedString
	Hashes             *[]Hash
	Licenses           *Licenses
	Copyright          *NormalizedString
	Cpe                *Cpe
	Purl               *Purl
	Swid               *Swid
	Modified           *bool
	Pedigree           *Pedigree
	ExternalReferences *[]ExternalReference
	Properties         *[]Property
	Components         *[]Component
	Evidence           *ComponentEvidence
	Signature          *Signature
}

// Swid is an ISO-IEC 19770-2 software identification tag.
type Swid struct {
	TagID      string
	Name       string
	Version    *string
	TagVersion *uint32
	Patch      *bool
	Text       *AttachedText
	URL        *URI
}

// AttachedText is inline text content with an optional MIME content type and
// transfer encoding (e.g. base64).
type AttachedText struct {
	ContentType *NormalizedString
	Encoding    *NormalizedString
	Content     string
}

// Pedigree records a component's ancestry: the components it derives from and
// the commits and patches that produced it.
type Pedigree struct {
	Ancestors   *[]Component
	Descendants *[]Component
	Variants    *[]Component
	Commits     *[]Commit
	Patches     *[]Patch
	Notes       *NormalizedString
}

type Commit struct {
	UID       *NormalizedString
	URL       *URI
	Author    *IdentifiableAction
	Committer *IdentifiableAction
	Message   *NormalizedString
}

type IdentifiableAction struct {
	Timestamp *DateTime
	Name      *NormalizedString
	Email     *NormalizedString
}

type Patch struct {
	Type     NormalizedString
	Diff     *Diff
	Resolves *[]Issue
}

type Diff struct {
	Text *AttachedText
	URL  *URI
}

type Issue struct {
	Type        NormalizedString
	ID          *NormalizedString
	Name        *NormalizedString
	Description *NormalizedString
	Source      *Source
	References  *[]URI
}

// Source names where an issue or vulnerability was published.
type Source struct {
	Name *NormalizedString
	URL  *URI
}

// ComponentEvidence holds license and copyright findings discovered in the
// component's contents, as opposed to declared metadata.
type ComponentEvidence struct {
	Licenses  *Licenses
	Copyright *[]Copyright
}

type Copyright struct {
	Text string
}
