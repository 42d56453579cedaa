package verification

import (
	"fmt"
	"sort"
)

// Verdict enum
type Verdict string

const (
	VerdictClean         Verdict = "clean"
	VerdictSuspicious    Verdict = "suspicious"
	VerdictHighRisk      Verdict = "high_risk"
	VerdictIndeterminate Verdict = "indeterminate"
)

// Weights parameterizes the scoring fold. The exact numbers are policy, not
// law, so they are loaded from config with these defaults.
type Weights struct {
	High          int `yaml:"high"`
	Medium        int `yaml:"medium"`
	ForensicAlert int `yaml:"forensicAlert"`
	ForensicCap   int `yaml:"forensicCap"`
	HighRiskMin   int `yaml:"highRiskMin"`
	SuspiciousMin int `yaml:"suspiciousMin"`
}

// DefaultWeights returns the standard scoring policy.
func DefaultWeights() Weights {
	return Weights{
		High:          30,
		Medium:        10,
		ForensicAlert: 5,
		ForensicCap:   20,
		HighRiskMin:   60,
		SuspiciousMin: 30,
	}
}

// Validate rejects weight configurations that would break the verdict
// ladder. Called once at startup; a bad config is fatal there.
func (w Weights) Validate() error {
	if w.High <= 0 || w.Medium <= 0 {
		return fmt.Errorf("risk weights must be positive (high=%d medium=%d)", w.High, w.Medium)
	}
	if w.Medium > w.High {
		return fmt.Errorf("medium weight (%d) cannot exceed high weight (%d)", w.Medium, w.High)
	}
	if w.ForensicAlert < 0 || w.ForensicCap < 0 {
		return fmt.Errorf("forensic weights cannot be negative")
	}
	if w.SuspiciousMin <= 0 || w.HighRiskMin <= w.SuspiciousMin {
		return fmt.Errorf("verdict thresholds out of order (suspicious=%d highRisk=%d)", w.SuspiciousMin, w.HighRiskMin)
	}
	return nil
}

// Report is the final, immutable result of one analysis: every signal in
// fixed source order plus the folded score and verdict.
type Report struct {
	Signals []Signal `json:"signals"`
	Score   int      `json:"score"`
	Verdict Verdict  `json:"verdict"`
}

// BuildReport folds the signal set into a report. It is a total function:
// any combination of signals, including all-indeterminate, yields a verdict.
// forensicAlerts is the count of pre-flagged forensic anomaly strings; its
// contribution is capped independently of the per-signal weights.
func BuildReport(signals []Signal, forensicAlerts int, w Weights) *Report {
	ordered := make([]Signal, len(signals))
	copy(ordered, signals)
	sort.SliceStable(ordered, func(i, j int) bool {
		return reportOrder[ordered[i].Source] < reportOrder[ordered[j].Source]
	})

	// Weight is keyed on risk level alone. The signal constructors guarantee
	// incomplete checks carry an indeterminate level, so they weigh zero here.
	score := 0
	for _, sig := range ordered {
		switch sig.RiskLevel {
		case RiskHigh:
			score += w.High
		case RiskMedium:
			score += w.Medium
		}
	}
	if forensicAlerts > 0 {
		contribution := forensicAlerts * w.ForensicAlert
		if contribution > w.ForensicCap {
			contribution = w.ForensicCap
		}
		score += contribution
	}
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return &Report{
		Signals: ordered,
		Score:   score,
		Verdict: verdictFor(score, ordered, w),
	}
}

func verdictFor(score int, signals []Signal, w Weights) Verdict {
	switch {
	case score >= w.HighRiskMin:
		return VerdictHighRisk
	case score >= w.SuspiciousMin:
		return VerdictSuspicious
	}
	// A low score only earns a clean verdict when both registries were
	// positively confirmed; otherwise too much is unknown to clear it.
	if registryConfirmedLow(signals, SourceProfessionalRegistry) &&
		registryConfirmedLow(signals, SourceInsuranceRegistry) {
		return VerdictClean
	}
	return VerdictIndeterminate
}

func registryConfirmedLow(signals []Signal, src Source) bool {
	for _, sig := range signals {
		if sig.Source == src && sig.Status == StatusConfirmed && sig.RiskLevel == RiskLow {
			return true
		}
	}
	return false
}
