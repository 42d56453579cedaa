package forensic

import (
	"fmt"
	"strings"

	"github.com/dfmejia/fraude-incapacidades/internal/domain/certificate"
	"github.com/dfmejia/fraude-incapacidades/internal/domain/verification"
)

// maxExpectedFonts: hospital information systems emit uniform typography;
// more distinct fonts than this suggests manual editing.
const maxExpectedFonts = 4

// DeriveAlerts inspects document metadata for authoring anomalies. It is used
// by the upload path only when the extraction collaborator supplied no
// pre-computed alerts; pre-supplied alerts are carried through untouched.
func DeriveAlerts(attrs certificate.ForensicAttributes) []string {
	var alerts []string
	creator := strings.ToLower(attrs.Creator)
	producer := strings.ToLower(attrs.Producer)

	if strings.Contains(creator, "adobe") || strings.Contains(producer, "adobe") {
		alerts = append(alerts, "Adobe software in document metadata - check whether it edited or created the file")
	}
	if strings.Contains(creator, "canva") || strings.Contains(producer, "canva") {
		alerts = append(alerts, "Canva listed as creator - document may have been designed by hand")
	}
	for _, kw := range []string{"word", "libreoffice", "writer", "docs"} {
		if strings.Contains(creator, kw) || strings.Contains(producer, kw) {
			alerts = append(alerts, "word processor listed as creator - not a typical hospital information system")
			break
		}
	}
	if attrs.CreationDate != "" && attrs.ModificationDate != "" && attrs.CreationDate != attrs.ModificationDate {
		alerts = append(alerts, "creation and modification dates differ - document may have been edited after issue")
	}
	if attrs.FontCount > maxExpectedFonts {
		alerts = append(alerts, fmt.Sprintf("%d distinct fonts detected - possible typographic manipulation", attrs.FontCount))
	}
	return alerts
}

// Signal wraps the forensic attributes as the pre-supplied metadata signal of
// the report. It reflects but never re-derives the alert list it is given.
func Signal(attrs certificate.ForensicAttributes) verification.Signal {
	details := map[string]string{}
	if attrs.Creator != "" {
		details["creator"] = attrs.Creator
	}
	if attrs.Producer != "" {
		details["producer"] = attrs.Producer
	}
	if attrs.CreationDate != "" {
		details["creation_date"] = attrs.CreationDate
	}
	if attrs.ModificationDate != "" {
		details["modification_date"] = attrs.ModificationDate
	}
	if attrs.FontCount > 0 {
		details["font_count"] = fmt.Sprintf("%d", attrs.FontCount)
	}
	if attrs.ImageCount > 0 {
		details["image_count"] = fmt.Sprintf("%d", attrs.ImageCount)
	}
	for i, alert := range attrs.Alerts {
		details[fmt.Sprintf("alert_%d", i+1)] = alert
	}

	// The signal itself stays at low weight: each flagged alert contributes
	// to the score through the capped per-alert term, not through the
	// signal's risk level, so anomalies are not counted twice.
	if len(attrs.Alerts) == 0 {
		return verification.Confirmed(verification.SourceForensicMetadata, verification.RiskLow, details,
			"no forensic anomalies were flagged for this document")
	}
	return verification.Confirmed(verification.SourceForensicMetadata, verification.RiskLow, details,
		fmt.Sprintf("%d forensic anomaly flag(s) recorded; each contributes to the score through the capped forensic term", len(attrs.Alerts)))
}
