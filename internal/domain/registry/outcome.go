package registry

import (
	"fmt"

	"github.com/dfmejia/fraude-incapacidades/internal/domain/verification"
)

// OutcomeKind classifies what a registry lookup established.
type OutcomeKind string

const (
	// OutcomeActive: record found, explicitly in good standing.
	OutcomeActive OutcomeKind = "active"
	// OutcomeInactive: record found but suspended/retired/not in good standing.
	OutcomeInactive OutcomeKind = "inactive"
	// OutcomeNotFound: the registry answered and has no such record.
	OutcomeNotFound OutcomeKind = "not_found"
	// OutcomeUnreachable: timeout, connection failure, anti-automation
	// challenge, or a response too ambiguous to classify. First-class
	// result, not an error.
	OutcomeUnreachable OutcomeKind = "unreachable"
)

// Outcome is the classified result of a single registry lookup.
type Outcome struct {
	Kind OutcomeKind
	// Fields holds whatever the registry disclosed about the record
	// (holder name, profession, affiliation status, regime...).
	Fields map[string]string
	// Reason explains an Unreachable outcome in operator terms.
	Reason string
	// ConsultURL points a human reviewer at the manual consultation page.
	ConsultURL string
}

func Unreachable(reason, consultURL string) Outcome {
	return Outcome{Kind: OutcomeUnreachable, Reason: reason, ConsultURL: consultURL}
}

// Signal normalizes a lookup outcome for the given registry source. This is
// the only path from registry outcomes into the report, so the unreachable
// case cannot be misclassified as fraud evidence by a transport.
func (o Outcome) Signal(src verification.Source, registryName string) verification.Signal {
	details := map[string]string{"registry": registryName}
	for k, v := range o.Fields {
		details[k] = v
	}
	if o.ConsultURL != "" {
		details["consult_url"] = o.ConsultURL
	}

	switch o.Kind {
	case OutcomeActive:
		return verification.Confirmed(src, verification.RiskLow, details,
			"record found and reported active by the registry")
	case OutcomeInactive:
		return verification.Confirmed(src, verification.RiskHigh, details,
			"record exists but the registry reports it is not in good standing")
	case OutcomeNotFound:
		return verification.NotFound(src, verification.RiskHigh, details,
			"registry was reached and has no record matching the document")
	default:
		note := fmt.Sprintf("check could not be completed (%s); verify manually", o.Reason)
		if o.ConsultURL != "" {
			note = fmt.Sprintf("%s at %s", note, o.ConsultURL)
		}
		return verification.Indeterminate(src, details, note)
	}
}
