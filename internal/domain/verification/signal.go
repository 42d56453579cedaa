package verification

// Source enum: which check produced a signal
type Source string

const (
	SourceForensicMetadata     Source = "forensic_metadata"
	SourceDiagnosticCode       Source = "diagnostic_code"
	SourceEntityName           Source = "entity_name"
	SourceProfessionalRegistry Source = "professional_registry"
	SourceInsuranceRegistry    Source = "insurance_registry"
	SourceOpenSourceEvidence   Source = "open_source_evidence"
)

// reportOrder fixes the position of each source in the final report.
var reportOrder = map[Source]int{
	SourceForensicMetadata:     0,
	SourceDiagnosticCode:       1,
	SourceEntityName:           2,
	SourceProfessionalRegistry: 3,
	SourceInsuranceRegistry:    4,
	SourceOpenSourceEvidence:   5,
}

// Status enum: what the check concluded about the claim
type Status string

const (
	StatusConfirmed     Status = "confirmed"
	StatusContradicted  Status = "contradicted"
	StatusNotFound      Status = "not_found"
	StatusIndeterminate Status = "indeterminate"
	StatusNotApplicable Status = "not_applicable"
)

// RiskLevel enum
type RiskLevel string

const (
	RiskLow           RiskLevel = "low"
	RiskMedium        RiskLevel = "medium"
	RiskHigh          RiskLevel = "high"
	RiskIndeterminate RiskLevel = "indeterminate"
	RiskNotApplicable RiskLevel = "not_applicable"
)

// Signal is the normalized outcome of checking one claim against one source.
type Signal struct {
	Source    Source            `json:"source"`
	Status    Status            `json:"status"`
	RiskLevel RiskLevel         `json:"riskLevel"`
	Details   map[string]string `json:"details,omitempty"`
	Note      string            `json:"note,omitempty"`
}

// The constructors below are the single place signals are built, so the
// invariant that an incomplete check never carries fraud weight cannot be
// bypassed by an individual validator.

// Confirmed builds a completed-check signal whose claim held up. Risk may
// still be High when the record exists but is not in good standing.
func Confirmed(src Source, risk RiskLevel, details map[string]string, note string) Signal {
	return Signal{Source: src, Status: StatusConfirmed, RiskLevel: risk, Details: details, Note: note}
}

// Contradicted builds a completed-check signal whose claim failed the check.
func Contradicted(src Source, risk RiskLevel, details map[string]string, note string) Signal {
	return Signal{Source: src, Status: StatusContradicted, RiskLevel: risk, Details: details, Note: note}
}

// NotFound builds a signal for a source that was reached and explicitly had
// no record of the claim. Only this variant of NotFound may be High risk.
func NotFound(src Source, risk RiskLevel, details map[string]string, note string) Signal {
	return Signal{Source: src, Status: StatusNotFound, RiskLevel: risk, Details: details, Note: note}
}

// Indeterminate builds the signal for a check that could not be completed:
// timeout, connection failure, anti-automation challenge, ambiguous response.
// The risk level is forced to indeterminate so an unreachable source can
// never masquerade as fraud evidence.
func Indeterminate(src Source, details map[string]string, note string) Signal {
	return Signal{Source: src, Status: StatusIndeterminate, RiskLevel: RiskIndeterminate, Details: details, Note: note}
}

// NotApplicable builds the signal for a check whose input field was never
// extracted. Distinct from Indeterminate: the check did not run at all.
func NotApplicable(src Source, note string) Signal {
	return Signal{Source: src, Status: StatusNotApplicable, RiskLevel: RiskNotApplicable, Note: note}
}

// Evidence builds the open-web corroboration signal. Web search is context,
// never proof, so the status is always indeterminate and the risk is clamped
// below High no matter what the gatherer asks for.
func Evidence(src Source, risk RiskLevel, details map[string]string, note string) Signal {
	if risk != RiskLow && risk != RiskMedium {
		risk = RiskLow
	}
	return Signal{Source: src, Status: StatusIndeterminate, RiskLevel: risk, Details: details, Note: note}
}
