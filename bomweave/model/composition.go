package model

import "fmt"

// Composition states how completely a set of components or services has been
// captured in the BOM.
type Composition struct {
	Aggregate    AggregateType
	Assemblies   *[]BomReference
	Dependencies *[]BomReference
	Signature    *Signature
}

// AggregateType is the completeness claim attached to a composition. Values
// use the wire spelling.
type AggregateType string

const (
	AggregateComplete                AggregateType = "complete"
	AggregateIncomplete              AggregateType = "incomplete"
	AggregateIncompleteFirstParty    AggregateType = "incomplete_first_party_only"
	AggregateIncompleteThirdParty    AggregateType = "incomplete_third_party_only"
	AggregateUnknown                 AggregateType = "unknown"
	AggregateNotSpecified            AggregateType = "not_specified"
)

func ParseAggregateType(value string) (AggregateType, error) {
	switch t := AggregateType(value); t {
	case AggregateComplete, AggregateIncomplete, AggregateIncompleteFirstParty,
		AggregateIncompleteThirdParty, AggregateUnknown, AggregateNotSpecified:
		return t, nil
	}
	return "", fmt.Errorf("unrecognized aggregate type %q", value)
}
