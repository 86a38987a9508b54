package model

// Hash pairs a hashing algorithm name with the computed digest value.
type Hash struct {
	Alg     NormalizedString
	Content NormalizedString
}

// ExternalReference points to a resource outside the BOM (VCS, website,
// advisory, distribution location, and so on).
type ExternalReference struct {
	Type    NormalizedString
	URL     URI
	Comment *NormalizedString
	Hashes  *[]Hash
}

// Dependency is one edge list of the dependency graph: a subject ref and the
// refs it directly depends on. Cycles are representable; this layer does not
// inspect the graph.
type Dependency struct {
	Ref       BomReference
	DependsOn []BomReference
}

// Property is an arbitrary name/value pair carried through unmodified.
type Property struct {
	Name  NormalizedString
	Value NormalizedString
}

// Signature is an enveloped JSF signature: an algorithm identifier plus the
// signature value. The engine carries it opaquely and never verifies it.
type Signature struct {
	Algorithm NormalizedString
	Value     string
}
