package spec14

import (
	"encoding/json"
	"encoding/xml"
	"strconv"

	"github.com/bomweave/bomweave/bomweave/bomerr"
	"github.com/bomweave/bomweave/bomweave/format/xmlio"
	"github.com/bomweave/bomweave/bomweave/model"
)

type Vulnerability struct {
	BomRef         *string                   `json:"bom-ref,omitempty"`
	ID             *string                   `json:"id,omitempty"`
	Source         *Source                   `json:"source,omitempty"`
	References     *[]VulnerabilityReference `json:"references,omitempty"`
	Ratings        *[]Rating                 `json:"ratings,omitempty"`
	CWEs           *[]uint32                 `json:"cwes,omitempty"`
	Description    *string                   `json:"description,omitempty"`
	Detail         *string                   `json:"detail,omitempty"`
	Recommendation *string                   `json:"recommendation,omitempty"`
	Advisories     *[]Advisory               `json:"advisories,omitempty"`
	Created        *string                   `json:"created,omitempty"`
	Published      *string                   `json:"published,omitempty"`
	Updated        *string                   `json:"updated,omitempty"`
	Credits        *Credits                  `json:"credits,omitempty"`
	Tools          *[]Tool                   `json:"tools,omitempty"`
	Analysis       *Analysis                 `json:"analysis,omitempty"`
	Affects        *[]Affects                `json:"affects,omitempty"`
	Properties     *[]Property               `json:"properties,omitempty"`
}

type VulnerabilityReference struct {
	ID     string `json:"id"`
	Source Source `json:"source"`
}

type Rating struct {
	Source        *Source  `json:"source,omitempty"`
	Score         *float64 `json:"score,omitempty"`
	Severity      *string  `json:"severity,omitempty"`
	Method        *string  `json:"method,omitempty"`
	Vector        *string  `json:"vector,omitempty"`
	Justification *string  `json:"justification,omitempty"`
}

type Advisory struct {
	Title *string `json:"title,omitempty"`
	URL   string  `json:"url"`
}

type Credits struct {
	Organizations *[]OrganizationalEntity  `json:"organizations,omitempty"`
	Individuals   *[]OrganizationalContact `json:"individuals,omitempty"`
}

type Analysis struct {
	State         *string   `json:"state,omitempty"`
	Justification *string   `json:"justification,omitempty"`
	Responses     *[]string `json:"response,omitempty"`
	Detail        *string   `json:"detail,omitempty"`
}

type Affects struct {
	Ref      string             `json:"ref"`
	Versions *[]AffectedVersion `json:"versions,omitempty"`
}

type AffectedVersion struct {
	Version *string `json:"version,omitempty"`
	Range   *string `json:"range,omitempty"`
	Status  *string `json:"status,omitempty"`
}

func (v *AffectedVersion) UnmarshalJSON(data []byte) error {
	type alias AffectedVersion
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	if (decoded.Version == nil) == (decoded.Range == nil) {
		return &bomerr.FieldError{Path: "affects.versions", Reason: "expected exactly one of version or range"}
	}
	*v = AffectedVersion(decoded)
	return nil
}

// methodSupported reports whether a rating method is expressible in 1.4.
// CVSSv4 and SSVC did not exist before 1.5.
func methodSupported(method model.ScoreMethod) bool {
	switch method {
	case model.ScoreMethodCVSSv4, model.ScoreMethodSSVC:
		return false
	}
	return true
}

func vulnerabilitiesFromModel(vulns []model.Vulnerability) ([]Vulnerability, error) {
	out := make([]Vulnerability, 0, len(vulns))
	for _, v := range vulns {
		wire, err := vulnerabilityFromModel(v)
		if err != nil {
			return nil, err
		}
		out = append(out, wire)
	}
	return out, nil
}

func vulnerabilitiesToModel(vulns []Vulnerability) ([]model.Vulnerability, error) {
	out := make([]model.Vulnerability, 0, len(vulns))
	for _, v := range vulns {
		m, err := vulnerabilityToModel(v)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func vulnerabilityFromModel(v model.Vulnerability) (Vulnerability, error) {
	var wire Vulnerability
	if v.BomRef != nil {
		bomRef := string(*v.BomRef)
		wire.BomRef = &bomRef
	}
	if v.ID != nil {
		id := string(*v.ID)
		wire.ID = &id
	}
	wire.Source = sourceFromModel(v.Source)
	if v.References != nil {
		references := make([]VulnerabilityReference, 0, len(*v.References))
		for _, r := range *v.References {
			wireRef := VulnerabilityReference{ID: string(r.ID)}
			if src := sourceFromModel(&r.Source); src != nil {
				wireRef.Source = *src
			}
			references = append(references, wireRef)
		}
		wire.References = &references
	}
	if v.Ratings != nil {
		ratings, err := ratingsFromModel(*v.Ratings)
		if err != nil {
			return wire, err
		}
		wire.Ratings = &ratings
	}
	wire.CWEs = v.CWEs
	if v.Description != nil {
		description := string(*v.Description)
		wire.Description = &description
	}
	if v.Detail != nil {
		detail := string(*v.Detail)
		wire.Detail = &detail
	}
	if v.Recommendation != nil {
		recommendation := string(*v.Recommendation)
		wire.Recommendation = &recommendation
	}
	if v.Advisories != nil {
		advisories := make([]Advisory, 0, len(*v.Advisories))
		for _, a := range *v.Advisories {
			wireAdvisory := Advisory{URL: string(a.URL)}
			if a.Title != nil {
				title := string(*a.Title)
				wireAdvisory.Title = &title
			}
			advisories = append(advisories, wireAdvisory)
		}
		wire.Advisories = &advisories
	}
	if v.Created != nil {
		created := string(*v.Created)
		wire.Created = &created
	}
	if v.Published != nil {
		published := string(*v.Published)
		wire.Published = &published
	}
	if v.Updated != nil {
		updated := string(*v.Updated)
		wire.Updated = &updated
	}
	if v.Credits != nil {
		var credits Credits
		if v.Credits.Organizations != nil {
			organizations := make([]OrganizationalEntity, 0, len(*v.Credits.Organizations))
			for i := range *v.Credits.Organizations {
				organizations = append(organizations, *organizationFromModel(&(*v.Credits.Organizations)[i]))
			}
			credits.Organizations = &organizations
		}
		if v.Credits.Individuals != nil {
			individuals := contactsFromModel(*v.Credits.Individuals)
			credits.Individuals = &individuals
		}
		wire.Credits = &credits
	}
	if v.Tools != nil {
		tools := toolsFromModel(*v.Tools)
		wire.Tools = &tools
	}
	if v.Analysis != nil {
		var analysis Analysis
		if v.Analysis.State != nil {
			state := string(*v.Analysis.State)
			analysis.State = &state
		}
		if v.Analysis.Justification != nil {
			justification := string(*v.Analysis.Justification)
			analysis.Justification = &justification
		}
		if v.Analysis.Responses != nil {
			responses := make([]string, 0, len(*v.Analysis.Responses))
			for _, r := range *v.Analysis.Responses {
				responses = append(responses, string(r))
			}
			analysis.Responses = &responses
		}
		if v.Analysis.Detail != nil {
			detail := string(*v.Analysis.Detail)
			analysis.Detail = &detail
		}
		wire.Analysis = &analysis
	}
	if v.Affects != nil {
		affects := make([]Affects, 0, len(*v.Affects))
		for _, a := range *v.Affects {
			wireAffects := Affects{Ref: string(a.Ref)}
			if a.Versions != nil {
				versions := make([]AffectedVersion, 0, len(*a.Versions))
				for _, av := range *a.Versions {
					var wireVersion AffectedVersion
					if av.Version != nil {
						version := string(*av.Version)
						wireVersion.Version = &version
					}
					if av.Range != nil {
						versionRange := string(*av.Range)
						wireVersion.Range = &versionRange
					}
					if av.Status != nil {
						status := string(*av.Status)
						wireVersion.Status = &status
					}
					versions = append(versions, wireVersion)
				}
				wireAffects.Versions = &versions
			}
			affects = append(affects, wireAffects)
		}
		wire.Affects = &affects
	}
	if v.Properties != nil {
		properties := propertiesFromModel(*v.Properties)
		wire.Properties = &properties
	}
	return wire, nil
}

func vulnerabilityToModel(v Vulnerability) (model.Vulnerability, error) {
	var m model.Vulnerability
	if v.BomRef != nil {
		bomRef := model.BomReference(*v.BomRef)
		m.BomRef = &bomRef
	}
	if v.ID != nil {
		id := model.NormalizedString(*v.ID)
		m.ID = &id
	}
	m.Source = sourceToModel(v.Source)
	if v.References != nil {
		references := make([]model.VulnerabilityReference, 0, len(*v.References))
		for _, r := range *v.References {
			ref := model.VulnerabilityReference{ID: model.NormalizedString(r.ID)}
			if src := sourceToModel(&r.Source); src != nil {
				ref.Source = *src
			}
			references = append(references, ref)
		}
		m.References = &references
	}
	if v.Ratings != nil {
		ratings, err := ratingsToModel(*v.Ratings)
		if err != nil {
			return m, err
		}
		m.Ratings = &ratings
	}
	m.CWEs = v.CWEs
	if v.Description != nil {
		description := model.NormalizedString(*v.Description)
		m.Description = &description
	}
	if v.Detail != nil {
		detail := model.NormalizedString(*v.Detail)
		m.Detail = &detail
	}
	if v.Recommendation != nil {
		recommendation := model.NormalizedString(*v.Recommendation)
		m.Recommendation = &recommendation
	}
	if v.Advisories != nil {
		advisories := make([]model.Advisory, 0, len(*v.Advisories))
		for _, a := range *v.Advisories {
			advisory := model.Advisory{URL: model.URI(a.URL)}
			if a.Title != nil {
				title := model.NormalizedString(*a.Title)
				advisory.Title = &title
			}
			advisories = append(advisories, advisory)
		}
		m.Advisories = &advisories
	}
	if v.Created != nil {
		created := model.DateTime(*v.Created)
		m.Created = &created
	}
	if v.Published != nil {
		published := model.DateTime(*v.Published)
		m.Published = &published
	}
	if v.Updated != nil {
		updated := model.DateTime(*v.Updated)
		m.Updated = &updated
	}
	if v.Credits != nil {
		var credits model.Credits
		if v.Credits.Organizations != nil {
			organizations := make([]model.OrganizationalEntity, 0, len(*v.Credits.Organizations))
			for i := range *v.Credits.Organizations {
				organizations = append(organizations, *organizationToModel(&(*v.Credits.Organizations)[i]))
			}
			credits.Organizations = &organizations
		}
		if v.Credits.Individuals != nil {
			individuals := contactsToModel(*v.Credits.Individuals)
			credits.Individuals = &individuals
		}
		m.Credits = &credits
	}
	if v.Tools != nil {
		tools := toolsToModel(*v.Tools)
		m.Tools = &tools
	}
	if v.Analysis != nil {
		analysis, err := analysisToModel(*v.Analysis)
		if err != nil {
			return m, err
		}
		m.Analysis = analysis
	}
	if v.Affects != nil {
		affects, err := affectsToModel(*v.Affects)
		if err != nil {
			return m, err
		}
		m.Affects = &affects
	}
	if v.Properties != nil {
		properties := propertiesToModel(*v.Properties)
		m.Properties = &properties
	}
	return m, nil
}

func ratingsFromModel(ratings []model.Rating) ([]Rating, error) {
	out := make([]Rating, 0, len(ratings))
	for _, r := range ratings {
		var wire Rating
		wire.Source = sourceFromModel(r.Source)
		wire.Score = r.Score
		if r.Severity != nil {
			severity := string(*r.Severity)
			wire.Severity = &severity
		}
		if r.Method != nil {
			if !methodSupported(*r.Method) {
				return nil, unsupported("vulnerability rating method " + string(*r.Method))
			}
			method := string(*r.Method)
			wire.Method = &method
		}
		if r.Vector != nil {
			vector := string(*r.Vector)
			wire.Vector = &vector
		}
		if r.Justification != nil {
			justification := string(*r.Justification)
			wire.Justification = &justification
		}
		out = append(out, wire)
	}
	return out, nil
}

func ratingsToModel(ratings []Rating) ([]model.Rating, error) {
	out := make([]model.Rating, 0, len(ratings))
	for _, r := range ratings {
		var m model.Rating
		m.Source = sourceToModel(r.Source)
		m.Score = r.Score
		if r.Severity != nil {
			severity, err := model.ParseSeverity(*r.Severity)
			if err != nil {
				return nil, valueError("severity", *r.Severity, "severity")
			}
			m.Severity = &severity
		}
		if r.Method != nil {
			method, err := model.ParseScoreMethod(*r.Method)
			if err != nil {
				return nil, valueError("method", *r.Method, "score method")
			}
			if !methodSupported(method) {
				return nil, unsupported("vulnerability rating method " + string(method))
			}
			m.Method = &method
		}
		if r.Vector != nil {
			vector := model.NormalizedString(*r.Vector)
			m.Vector = &vector
		}
		if r.Justification != nil {
			justification := model.NormalizedString(*r.Justification)
			m.Justification = &justification
		}
		out = append(out, m)
	}
	return out, nil
}

func analysisToModel(a Analysis) (*model.Analysis, error) {
	var m model.Analysis
	if a.State != nil {
		state, err := model.ParseAnalysisState(*a.State)
		if err != nil {
			return nil, valueError("state", *a.State, "analysis state")
		}
		m.State = &state
	}
	if a.Justification != nil {
		justification, err := model.ParseAnalysisJustification(*a.Justification)
		if err != nil {
			return nil, valueError("justification", *a.Justification, "analysis justification")
		}
		m.Justification = &justification
	}
	if a.Responses != nil {
		responses := make([]model.AnalysisResponse, 0, len(*a.Responses))
		for _, r := range *a.Responses {
			response, err := model.ParseAnalysisResponse(r)
			if err != nil {
				return nil, valueError("response", r, "analysis response")
			}
			responses = append(responses, response)
		}
		m.Responses = &responses
	}
	if a.Detail != nil {
		detail := model.NormalizedString(*a.Detail)
		m.Detail = &detail
	}
	return &m, nil
}

func affectsToModel(affects []Affects) ([]model.Affects, error) {
	out := make([]model.Affects, 0, len(affects))
	for _, a := range affects {
		m := model.Affects{Ref: model.BomReference(a.Ref)}
		if a.Versions != nil {
			versions := make([]model.AffectedVersion, 0, len(*a.Versions))
			for _, av := range *a.Versions {
				var version model.AffectedVersion
				if av.Version != nil {
					exact := model.NormalizedString(*av.Version)
					version.Version = &exact
				}
				if av.Range != nil {
					versionRange := model.NormalizedString(*av.Range)
					version.Range = &versionRange
				}
				if av.Status != nil {
					status, err := model.ParseAffectedStatus(*av.Status)
					if err != nil {
						return nil, valueError("status", *av.Status, "affected version status")
					}
					version.Status = &status
				}
				if err := version.Validate(); err != nil {
					return nil, &bomerr.FieldError{Path: "affects.versions", Reason: "expected exactly one of version or range"}
				}
				versions = append(versions, version)
			}
			m.Versions = &versions
		}
		out = append(out, m)
	}
	return out, nil
}

func writeVulnerabilitiesXML(w *xmlio.Writer, vulns []Vulnerability) error {
	if err := w.Start("vulnerabilities"); err != nil {
		return err
	}
	for _, v := range vulns {
		if err := writeVulnerabilityXML(w, v); err != nil {
			return err
		}
	}
	return w.End()
}

func writeVulnerabilityXML(w *xmlio.Writer, v Vulnerability) error {
	var attrs []xmlio.Attr
	if v.BomRef != nil {
		attrs = append(attrs, xmlio.Attr{Name: "bom-ref", Value: *v.BomRef})
	}
	if err := w.Start("vulnerability", attrs...); err != nil {
		return err
	}
	if v.ID != nil {
		if err := w.SimpleTag("id", *v.ID); err != nil {
			return err
		}
	}
	if v.Source != nil {
		if err := writeSourceXML(w, "source", *v.Source); err != nil {
			return err
		}
	}
	if v.References != nil {
		if err := w.Start("references"); err != nil {
			return err
		}
		for _, r := range *v.References {
			if err := w.Start("reference"); err != nil {
				return err
			}
			if err := w.SimpleTag("id", r.ID); err != nil {
				return err
			}
			if err := writeSourceXML(w, "source", r.Source); err != nil {
				return err
			}
			if err := w.End(); err != nil {
				return err
			}
		}
		if err := w.End(); err != nil {
			return err
		}
	}
	if v.Ratings != nil {
		if err := writeRatingsXML(w, *v.Ratings); err != nil {
			return err
		}
	}
	if v.CWEs != nil {
		if err := w.Start("cwes"); err != nil {
			return err
		}
		for _, cwe := range *v.CWEs {
			if err := w.SimpleTag("cwe", strconv.FormatUint(uint64(cwe), 10)); err != nil {
				return err
			}
		}
		if err := w.End(); err != nil {
			return err
		}
	}
	if v.Description != nil {
		if err := w.SimpleTag("description", *v.Description); err != nil {
			return err
		}
	}
	if v.Detail != nil {
		if err := w.SimpleTag("detail", *v.Detail); err != nil {
			return err
		}
	}
	if v.Recommendation != nil {
		if err := w.SimpleTag("recommendation", *v.Recommendation); err != nil {
			return err
		}
	}
	if v.Advisories != nil {
		if err := w.Start("advisories"); err != nil {
			return err
		}
		for _, a := range *v.Advisories {
			if err := w.Start("advisory"); err != nil {
				return err
			}
			if a.Title != nil {
				if err := w.SimpleTag("title", *a.Title); err != nil {
					return err
				}
			}
			if err := w.SimpleTag("url", a.URL); err != nil {
				return err
			}
			if err := w.End(); err != nil {
				return err
			}
		}
		if err := w.End(); err != nil {
			return err
		}
	}
	if v.Created != nil {
		if err := w.SimpleTag("created", *v.Created); err != nil {
			return err
		}
	}
	if v.Published != nil {
		if err := w.SimpleTag("published", *v.Published); err != nil {
			return err
		}
	}
	if v.Updated != nil {
		if err := w.SimpleTag("updated", *v.Updated); err != nil {
			return err
		}
	}
	if v.Credits != nil {
		if err := writeCreditsXML(w, *v.Credits); err != nil {
			return err
		}
	}
	if v.Tools != nil {
		if err := writeToolsXML(w, *v.Tools); err != nil {
			return err
		}
	}
	if v.Analysis != nil {
		if err := writeAnalysisXML(w, *v.Analysis); err != nil {
			return err
		}
	}
	if v.Affects != nil {
		if err := writeAffectsXML(w, *v.Affects); err != nil {
			return err
		}
	}
	if v.Properties != nil {
		if err := writePropertiesXML(w, *v.Properties); err != nil {
			return err
		}
	}
	return w.End()
}

func writeRatingsXML(w *xmlio.Writer, ratings []Rating) error {
	if err := w.Start("ratings"); err != nil {
		return err
	}
	for _, r := range ratings {
		if err := w.Start("rating"); err != nil {
			return err
		}
		if r.Source != nil {
			if err := writeSourceXML(w, "source", *r.Source); err != nil {
				return err
			}
		}
		if r.Score != nil {
			if err := w.SimpleTag("score", strconv.FormatFloat(*r.Score, 'f', -1, 64)); err != nil {
				return err
			}
		}
		if r.Severity != nil {
			if err := w.SimpleTag("severity", *r.Severity); err != nil {
				return err
			}
		}
		if r.Method != nil {
			if err := w.SimpleTag("method", *r.Method); err != nil {
				return err
			}
		}
		if r.Vector != nil {
			if err := w.SimpleTag("vector", *r.Vector); err != nil {
				return err
			}
		}
		if r.Justification != nil {
			if err := w.SimpleTag("justification", *r.Justification); err != nil {
				return err
			}
		}
		if err := w.End(); err != nil {
			return err
		}
	}
	return w.End()
}

func writeCreditsXML(w *xmlio.Writer, c Credits) error {
	if err := w.Start("credits"); err != nil {
		return err
	}
	if c.Organizations != nil {
		if err := w.Start("organizations"); err != nil {
			return err
		}
		for _, org := range *c.Organizations {
			if err := writeOrganizationXML(w, "organization", org); err != nil {
				return err
			}
		}
		if err := w.End(); err != nil {
			return err
		}
	}
	if c.Individuals != nil {
		if err := writeContactListXML(w, "individuals", "individual", *c.Individuals); err != nil {
			return err
		}
	}
	return w.End()
}

func writeAnalysisXML(w *xmlio.Writer, a Analysis) error {
	if err := w.Start("analysis"); err != nil {
		return err
	}
	if a.State != nil {
		if err := w.SimpleTag("state", *a.State); err != nil {
			return err
		}
	}
	if a.Justification != nil {
		if err := w.SimpleTag("justification", *a.Justification); err != nil {
			return err
		}
	}
	if a.Responses != nil {
		if err := writeTextListXML(w, "responses", "response", *a.Responses); err != nil {
			return err
		}
	}
	if a.Detail != nil {
		if err := w.SimpleTag("detail", *a.Detail); err != nil {
			return err
		}
	}
	return w.End()
}

func writeAffectsXML(w *xmlio.Writer, affects []Affects) error {
	if err := w.Start("affects"); err != nil {
		return err
	}
	for _, a := range affects {
		if err := w.Start("target"); err != nil {
			return err
		}
		if err := w.SimpleTag("ref", a.Ref); err != nil {
			return err
		}
		if a.Versions != nil {
			if err := w.Start("versions"); err != nil {
				return err
			}
			for _, v := range *a.Versions {
				if err := w.Start("version"); err != nil {
					return err
				}
				if v.Version != nil {
					if err := w.SimpleTag("version", *v.Version); err != nil {
						return err
					}
				}
				if v.Range != nil {
					if err := w.SimpleTag("range", *v.Range); err != nil {
						return err
					}
				}
				if v.Status != nil {
					if err := w.SimpleTag("status", *v.Status); err != nil {
						return err
					}
				}
				if err := w.End(); err != nil {
					return err
				}
			}
			if err := w.End(); err != nil {
				return err
			}
		}
		if err := w.End(); err != nil {
			return err
		}
	}
	return w.End()
}

func readVulnerabilitiesXML(d *xml.Decoder, start xml.StartElement) ([]Vulnerability, error) {
	vulns := []Vulnerability{}
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"vulnerability": func(se xml.StartElement) error {
			vuln, err := readVulnerabilityXML(d, se)
			if err != nil {
				return err
			}
			vulns = append(vulns, vuln)
			return nil
		},
	})
	return vulns, err
}

func readVulnerabilityXML(d *xml.Decoder, start xml.StartElement) (Vulnerability, error) {
	var v Vulnerability
	if bomRef, ok := xmlio.OptionalAttr(start, "bom-ref"); ok {
		v.BomRef = &bomRef
	}
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"id": func(se xml.StartElement) error {
			id, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			v.ID = &id
			return nil
		},
		"source": func(se xml.StartElement) error {
			source, err := readSourceXML(d, se)
			if err != nil {
				return err
			}
			v.Source = &source
			return nil
		},
		"references": func(se xml.StartElement) error {
			references, err := readVulnerabilityReferencesXML(d, se)
			if err != nil {
				return err
			}
			v.References = &references
			return nil
		},
		"ratings": func(se xml.StartElement) error {
			ratings, err := readRatingsXML(d, se)
			if err != nil {
				return err
			}
			v.Ratings = &ratings
			return nil
		},
		"cwes": func(se xml.StartElement) error {
			cwes, err := readCwesXML(d, se)
			if err != nil {
				return err
			}
			v.CWEs = &cwes
			return nil
		},
		"description": func(se xml.StartElement) error {
			description, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			v.Description = &description
			return nil
		},
		"detail": func(se xml.StartElement) error {
			detail, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			v.Detail = &detail
			return nil
		},
		"recommendation": func(se xml.StartElement) error {
			recommendation, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			v.Recommendation = &recommendation
			return nil
		},
		"advisories": func(se xml.StartElement) error {
			advisories, err := readAdvisoriesXML(d, se)
			if err != nil {
				return err
			}
			v.Advisories = &advisories
			return nil
		},
		"created": func(se xml.StartElement) error {
			created, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			v.Created = &created
			return nil
		},
		"published": func(se xml.StartElement) error {
			published, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			v.Published = &published
			return nil
		},
		"updated": func(se xml.StartElement) error {
			updated, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			v.Updated = &updated
			return nil
		},
		"credits": func(se xml.StartElement) error {
			credits, err := readCreditsXML(d, se)
			if err != nil {
				return err
			}
			v.Credits = &credits
			return nil
		},
		"tools": func(se xml.StartElement) error {
			tools, err := readToolsXML(d, se)
			if err != nil {
				return err
			}
			v.Tools = &tools
			return nil
		},
		"analysis": func(se xml.StartElement) error {
			analysis, err := readAnalysisXML(d, se)
			if err != nil {
				return err
			}
			v.Analysis = &analysis
			return nil
		},
		"affects": func(se xml.StartElement) error {
			affects, err := readAffectsXML(d, se)
			if err != nil {
				return err
			}
			v.Affects = &affects
			return nil
		},
		"properties": func(se xml.StartElement) error {
			properties, err := readPropertiesXML(d, se)
			if err != nil {
				return err
			}
			v.Properties = &properties
			return nil
		},
	})
	return v, err
}

func readVulnerabilityReferencesXML(d *xml.Decoder, start xml.StartElement) ([]VulnerabilityReference, error) {
	references := []VulnerabilityReference{}
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"reference": func(se xml.StartElement) error {
			var ref VulnerabilityReference
			var sawID bool
			err := xmlio.ReadElements(d, se, xmlio.ElementHandlers{
				"id": func(idStart xml.StartElement) error {
					id, err := xmlio.ReadSimpleTag(d, idStart)
					if err != nil {
						return err
					}
					ref.ID = id
					sawID = true
					return nil
				},
				"source": func(srcStart xml.StartElement) error {
					source, err := readSourceXML(d, srcStart)
					if err != nil {
						return err
					}
					ref.Source = source
					return nil
				},
			})
			if err != nil {
				return err
			}
			if !sawID {
				return requiredField("reference", "id")
			}
			references = append(references, ref)
			return nil
		},
	})
	return references, err
}

func readRatingsXML(d *xml.Decoder, start xml.StartElement) ([]Rating, error) {
	ratings := []Rating{}
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"rating": func(se xml.StartElement) error {
			rating, err := readRatingXML(d, se)
			if err != nil {
				return err
			}
			ratings = append(ratings, rating)
			return nil
		},
	})
	return ratings, err
}

func readRatingXML(d *xml.Decoder, start xml.StartElement) (Rating, error) {
	var r Rating
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"source": func(se xml.StartElement) error {
			source, err := readSourceXML(d, se)
			if err != nil {
				return err
			}
			r.Source = &source
			return nil
		},
		"score": func(se xml.StartElement) error {
			text, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			score, err := xmlio.ParseFloat64("score", text)
			if err != nil {
				return err
			}
			r.Score = &score
			return nil
		},
		"severity": func(se xml.StartElement) error {
			severity, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			r.Severity = &severity
			return nil
		},
		"method": func(se xml.StartElement) error {
			method, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			r.Method = &method
			return nil
		},
		"vector": func(se xml.StartElement) error {
			vector, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			r.Vector = &vector
			return nil
		},
		"justification": func(se xml.StartElement) error {
			justification, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			r.Justification = &justification
			return nil
		},
	})
	return r, err
}

func readCwesXML(d *xml.Decoder, start xml.StartElement) ([]uint32, error) {
	cwes := []uint32{}
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"cwe": func(se xml.StartElement) error {
			text, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			cwe, err := xmlio.ParseUint32("cwe", text)
			if err != nil {
				return err
			}
			cwes = append(cwes, cwe)
			return nil
		},
	})
	return cwes, err
}

func readAdvisoriesXML(d *xml.Decoder, start xml.StartElement) ([]Advisory, error) {
	advisories := []Advisory{}
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"advisory": func(se xml.StartElement) error {
			var a Advisory
			var sawURL bool
			err := xmlio.ReadElements(d, se, xmlio.ElementHandlers{
				"title": func(titleStart xml.StartElement) error {
					title, err := xmlio.ReadSimpleTag(d, titleStart)
					if err != nil {
						return err
					}
					a.Title = &title
					return nil
				},
				"url": func(urlStart xml.StartElement) error {
					url, err := xmlio.ReadSimpleTag(d, urlStart)
					if err != nil {
						return err
					}
					a.URL = url
					sawURL = true
					return nil
				},
			})
			if err != nil {
				return err
			}
			if !sawURL {
				return requiredField("advisory", "url")
			}
			advisories = append(advisories, a)
			return nil
		},
	})
	return advisories, err
}

func readCreditsXML(d *xml.Decoder, start xml.StartElement) (Credits, error) {
	var c Credits
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"organizations": func(se xml.StartElement) error {
			organizations := []OrganizationalEntity{}
			err := xmlio.ReadElements(d, se, xmlio.ElementHandlers{
				"organization": func(orgStart xml.StartElement) error {
					org, err := readOrganizationXML(d, orgStart)
					if err != nil {
						return err
					}
					organizations = append(organizations, org)
					return nil
				},
			})
			if err != nil {
				return err
			}
			c.Organizations = &organizations
			return nil
		},
		"individuals": func(se xml.StartElement) error {
			individuals, err := readContactListXML(d, se, "individual")
			if err != nil {
				return err
			}
			c.Individuals = &individuals
			return nil
		},
	})
	return c, err
}

func readAnalysisXML(d *xml.Decoder, start xml.StartElement) (Analysis, error) {
	var a Analysis
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"state": func(se xml.StartElement) error {
			state, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			a.State = &state
			return nil
		},
		"justification": func(se xml.StartElement) error {
			justification, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			a.Justification = &justification
			return nil
		},
		"responses": func(se xml.StartElement) error {
			responses, err := readTextListXML(d, se, "response")
			if err != nil {
				return err
			}
			a.Responses = &responses
			return nil
		},
		"detail": func(se xml.StartElement) error {
			detail, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			a.Detail = &detail
			return nil
		},
	})
	return a, err
}

func readAffectsXML(d *xml.Decoder, start xml.StartElement) ([]Affects, error) {
	affects := []Affects{}
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"target": func(se xml.StartElement) error {
			target, err := readAffectsTargetXML(d, se)
			if err != nil {
				return err
			}
			affects = append(affects, target)
			return nil
		},
	})
	return affects, err
}

func readAffectsTargetXML(d *xml.Decoder, start xml.StartElement) (Affects, error) {
	var a Affects
	var sawRef bool
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"ref": func(se xml.StartElement) error {
			ref, err := xmlio.ReadSimpleTag(d, se)
			if err != nil {
				return err
			}
			a.Ref = ref
			sawRef = true
			return nil
		},
		"versions": func(se xml.StartElement) error {
			versions, err := readAffectedVersionsXML(d, se)
			if err != nil {
				return err
			}
			a.Versions = &versions
			return nil
		},
	})
	if err != nil {
		return a, err
	}
	if !sawRef {
		return a, requiredField("target", "ref")
	}
	return a, nil
}

func readAffectedVersionsXML(d *xml.Decoder, start xml.StartElement) ([]AffectedVersion, error) {
	versions := []AffectedVersion{}
	err := xmlio.ReadElements(d, start, xmlio.ElementHandlers{
		"version": func(se xml.StartElement) error {
			var v AffectedVersion
			err := xmlio.ReadElements(d, se, xmlio.ElementHandlers{
				"version": func(versionStart xml.StartElement) error {
					version, err := xmlio.ReadSimpleTag(d, versionStart)
					if err != nil {
						return err
					}
					v.Version = &version
					return nil
				},
				"range": func(rangeStart xml.StartElement) error {
					versionRange, err := xmlio.ReadSimpleTag(d, rangeStart)
					if err != nil {
						return err
					}
					v.Range = &versionRange
					return nil
				},
				"status": func(statusStart xml.StartElement) error {
					status, err := xmlio.ReadSimpleTag(d, statusStart)
					if err != nil {
						return err
					}
					v.Status = &status
					return nil
				},
			})
			if err != nil {
				return err
			}
			if (v.Version == nil) == (v.Range == nil) {
				return &bomerr.FieldError{Path: "affects.versions", Reason: "expected exactly one of version or range"}
			}
			versions = append(versions, v)
			return nil
		},
	})
	return versions, err
}
