package model

import "fmt"

// Vulnerability records a single vulnerability affecting components or
// services referenced from the same BOM.
type Vulnerability struct {
	BomRef         *BomReference
	ID             *NormalizedString
	Source         *Source
	References     *[]VulnerabilityReference
	Ratings        *[]Rating
	CWEs           *[]uint32
	Description    *NormalizedString
	Detail         *NormalizedString
	Recommendation *NormalizedString
	Advisories     *[]Advisory
	Created        *DateTime
	Published      *DateTime
	Updated        *DateTime
	Credits        *Credits
	Tools          *[]Tool
	Analysis       *Analysis
	Affects        *[]Affects
	Properties     *[]Property
}

// VulnerabilityReference names the same vulnerability in another tracking
// system (e.g. the GHSA entry for a CVE).
type VulnerabilityReference struct {
	ID     NormalizedString
	Source Source
}

// Rating is a single severity assessment of a vulnerability.
type Rating struct {
	Source        *Source
	Score         *float64
	Severity      *Severity
	Method        *ScoreMethod
	Vector        *NormalizedString
	Justification *NormalizedString
}

type Advisory struct {
	Title *NormalizedString
	URL   URI
}

type Credits struct {
	Organizations *[]OrganizationalEntity
	Individuals   *[]OrganizationalContact
}

// Analysis captures the supplier's triage of a vulnerability: where it stands,
// why it does not apply (if it does not), and what consumers should do.
type Analysis struct {
	State         *AnalysisState
	Justification *AnalysisJustification
	Responses     *[]AnalysisResponse
	Detail        *NormalizedString
}

// Affects ties a vulnerability to a component or service ref, optionally
// narrowed to particular versions or version ranges.
type Affects struct {
	Ref      BomReference
	Versions *[]AffectedVersion
}

// AffectedVersion is a sum type: exactly one of Version or Range is set.
type AffectedVersion struct {
	Version *NormalizedString
	Range   *NormalizedString
	Status  *AffectedStatus
}

func (v AffectedVersion) Validate() error {
	if (v.Version == nil) == (v.Range == nil) {
		return fmt.Errorf("affected version must carry exactly one of a version or a range")
	}
	return nil
}

// Severity is the union of severity levels across all supported schema
// versions.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
	SeverityNone     Severity = "none"
	SeverityUnknown  Severity = "unknown"
)

func ParseSeverity(value string) (Severity, error) {
	switch s := Severity(value); s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow,
		SeverityInfo, SeverityNone, SeverityUnknown:
		return s, nil
	}
	return "", fmt.Errorf("unrecognized severity %q", value)
}

// ScoreMethod is the union of rating methods across all supported schema
// versions. CVSSv4 and SSVC exist only from 1.5 onward; targeting an earlier
// version with either fails at the version adapter.
type ScoreMethod string

const (
	ScoreMethodCVSSv2 ScoreMethod = "CVSSv2"
	ScoreMethodCVSSv3 ScoreMethod = "CVSSv3"
	ScoreMethodCVSSv31 ScoreMethod = "CVSSv31"
	ScoreMethodCVSSv4 ScoreMethod = "CVSSv4"
	ScoreMethodOWASP  ScoreMethod = "OWASP"
	ScoreMethodSSVC   ScoreMethod = "SSVC"
	ScoreMethodOther  ScoreMethod = "other"
)

func ParseScoreMethod(value string) (ScoreMethod, error) {
	switch m := ScoreMethod(value); m {
	case ScoreMethodCVSSv2, ScoreMethodCVSSv3, ScoreMethodCVSSv31,
		ScoreMethodCVSSv4, ScoreMethodOWASP, ScoreMethodSSVC, ScoreMethodOther:
		return m, nil
	}
	return "", fmt.Errorf("unrecognized score method %q", value)
}

type AnalysisState string

const (
	AnalysisResolved             AnalysisState = "resolved"
	AnalysisResolvedWithPedigree AnalysisState = "resolved_with_pedigree"
	AnalysisExploitable          AnalysisState = "exploitable"
	AnalysisInTriage             AnalysisState = "in_triage"
	AnalysisFalsePositive        AnalysisState = "false_positive"
	AnalysisNotAffected          AnalysisState = "not_affected"
)

func ParseAnalysisState(value string) (AnalysisState, error) {
	switch s := AnalysisState(value); s {
	case AnalysisResolved, AnalysisResolvedWithPedigree, AnalysisExploitable,
		AnalysisInTriage, AnalysisFalsePositive, AnalysisNotAffected:
		return s, nil
	}
	return "", fmt.Errorf("unrecognized analysis state %q", value)
}

type AnalysisJustification string

const (
	JustificationCodeNotPresent              AnalysisJustification = "code_not_present"
	JustificationCodeNotReachable            AnalysisJustification = "code_not_reachable"
	JustificationRequiresConfiguration       AnalysisJustification = "requires_configuration"
	JustificationRequiresDependency          AnalysisJustification = "requires_dependency"
	JustificationRequiresEnvironment         AnalysisJustification = "requires_environment"
	JustificationProtectedByCompiler         AnalysisJustification = "protected_by_compiler"
	JustificationProtectedAtRuntime          AnalysisJustification = "protected_at_runtime"
	JustificationProtectedAtPerimeter        AnalysisJustification = "protected_at_perimeter"
	JustificationProtectedByMitigatingControl AnalysisJustification = "protected_by_mitigating_control"
)

func ParseAnalysisJustification(value string) (AnalysisJustification, error) {
	switch j := AnalysisJustification(value); j {
	case JustificationCodeNotPresent, JustificationCodeNotReachable,
		JustificationRequiresConfiguration, JustificationRequiresDependency,
		JustificationRequiresEnvironment, JustificationProtectedByCompiler,
		JustificationProtectedAtRuntime, JustificationProtectedAtPerimeter,
		JustificationProtectedByMitigatingControl:
		return j, nil
	}
	return "", fmt.Errorf("unrecognized analysis justification %q", value)
}

type AnalysisResponse string

const (
	ResponseCanNotFix           AnalysisResponse = "can_not_fix"
	ResponseWillNotFix          AnalysisResponse = "will_not_fix"
	ResponseUpdate              AnalysisResponse = "update"
	ResponseRollback            AnalysisResponse = "rollback"
	ResponseWorkaroundAvailable AnalysisResponse = "workaround_available"
)

func ParseAnalysisResponse(value string) (AnalysisResponse, error) {
	switch r := AnalysisResponse(value); r {
	case ResponseCanNotFix, ResponseWillNotFix, ResponseUpdate,
		ResponseRollback, ResponseWorkaroundAvailable:
		return r, nil
	}
	return "", fmt.Errorf("unrecognized analysis response %q", value)
}

type AffectedStatus string

const (
	StatusAffected   AffectedStatus = "affected"
	StatusUnaffected AffectedStatus = "unaffected"
	StatusUnknown    AffectedStatus = "unknown"
)

func ParseAffectedStatus(value string) (AffectedStatus, error) {
	switch s := AffectedStatus(value); s {
	case StatusAffected, StatusUnaffected, StatusUnknown:
		return s, nil
	}
	return "", fmt.Errorf("unrecognized affected version status %q", value)
}
