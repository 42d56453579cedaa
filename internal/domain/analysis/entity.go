package analysis

import (
	"time"

	"github.com/dfmejia/fraude-incapacidades/internal/domain/verification"
)

// ID identifier type
type AnalysisID string

// Analysis is one persisted certificate analysis: where the document lives,
// the deterministic report it produced, and the optional narrative dictamen.
type Analysis struct {
	ID          AnalysisID           `json:"id"`
	TenantID    string               `json:"tenant_id"`
	FileURL     string               `json:"file_url,omitempty"`
	Score       int                  `json:"score"`
	Verdict     verification.Verdict `json:"verdict"`
	ReportJSON  string               `json:"report_json"`
	Narrative   string               `json:"narrative,omitempty"`
	SubmittedAt time.Time            `json:"submitted_at"`
	DurationMS  int64                `json:"duration_ms"`
}

// VerdictSummary aggregates analyses by verdict over a window.
type VerdictSummary struct {
	Total         int `json:"total"`
	HighRisk      int `json:"high_risk"`
	Suspicious    int `json:"suspicious"`
	Clean         int `json:"clean"`
	Indeterminate int `json:"indeterminate"`
}
