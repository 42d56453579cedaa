package cie10

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dfmejia/fraude-incapacidades/internal/domain/verification"
)

// Validate checks a diagnosis code and the granted leave duration against the
// reference table. rawDays is the extracted string and may be empty or
// non-numeric; that degrades the duration check without failing the call.
func (t *Table) Validate(code, rawDays string) verification.Signal {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return verification.NotApplicable(verification.SourceDiagnosticCode,
			"no diagnosis code was extracted from the certificate; review manually")
	}

	entry, foundAs, ok := t.Lookup(code)
	if !ok {
		return verification.NotFound(verification.SourceDiagnosticCode, verification.RiskHigh,
			map[string]string{"code": code},
			"code not present in the reference table; unrecognized, obsolete or invented codes are a strong fraud indicator")
	}

	details := map[string]string{
		"code":                 code,
		"matched_code":         foundAs,
		"official_description": entry.Description,
		"expected_range_days":  fmt.Sprintf("%d-%d", entry.MinDays, entry.MaxDays),
	}

	days, err := strconv.Atoi(strings.TrimSpace(rawDays))
	if err != nil || days <= 0 {
		details["code_validity"] = "code is valid and present in the reference table"
		return verification.Indeterminate(verification.SourceDiagnosticCode, details,
			"leave duration missing or non-numeric; duration coherence could not be assessed")
	}
	details["granted_days"] = strconv.Itoa(days)

	switch {
	case days < entry.MinDays:
		return verification.Contradicted(verification.SourceDiagnosticCode, verification.RiskMedium, details,
			fmt.Sprintf("granted %d days, below the %d-day minimum typical for %s; shorter than usual, worth noting", days, entry.MinDays, entry.Description))
	case days > entry.MaxDays:
		return verification.Contradicted(verification.SourceDiagnosticCode, verification.RiskHigh, details,
			fmt.Sprintf("granted %d days, above the %d-day maximum typical for %s; excessive duration for this diagnosis", days, entry.MaxDays, entry.Description))
	default:
		return verification.Confirmed(verification.SourceDiagnosticCode, verification.RiskLow, details,
			"leave duration within the expected range for the diagnosis")
	}
}
