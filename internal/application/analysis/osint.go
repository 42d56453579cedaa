package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dfmejia/fraude-incapacidades/internal/domain/osint"
	"github.com/dfmejia/fraude-incapacidades/internal/domain/verification"
)

const (
	categoryExistence = "existence"
	categoryFraud     = "fraud_specific"
	categoryGeneric   = "generic_mention"

	resultsPerQuery = 3
	searchBudget    = 15 * time.Second
)

type classifiedHit struct {
	category string
	result   osint.Result
}

// gatherEvidence runs the fixed pair of categorized searches for the subject
// and classifies the hits. Open web search corroborates, it never proves, so
// the resulting signal is always status-indeterminate; at most it raises a
// medium flag when a fraud-specific hit names the subject exactly.
func (s *Service) gatherEvidence(ctx context.Context, subject string) verification.Signal {
	if strings.TrimSpace(subject) == "" {
		return verification.NotApplicable(verification.SourceOpenSourceEvidence,
			"no entity or physician name was extracted; open-source search not performed")
	}

	sctx, cancel := context.WithTimeout(ctx, searchBudget)
	defer cancel()

	queries := []struct {
		query    string
		category string
	}{
		{subject + " Colombia clinica hospital IPS", categoryExistence},
		{fmt.Sprintf("%q Colombia fraude incapacidad falsa denunciado", subject), categoryFraud},
	}

	needle := strings.ToLower(strings.TrimSpace(subject))
	seen := map[string]bool{}
	var hits []classifiedHit
	searchFailed := true

	for _, q := range queries {
		results, err := s.Search.Search(sctx, q.query, resultsPerQuery)
		if err != nil {
			continue
		}
		searchFailed = false
		for _, r := range results {
			if r.URL == "" || seen[r.URL] {
				continue
			}
			seen[r.URL] = true

			category := q.category
			// A fraud hit only counts against the subject when the exact
			// name appears in what the search engine returned.
			if category == categoryFraud {
				combined := strings.ToLower(r.Title + " " + r.Snippet)
				if !strings.Contains(combined, needle) {
					category = categoryGeneric
				}
			}
			hits = append(hits, classifiedHit{category: category, result: r})
		}
	}

	details := map[string]string{"subject": subject}
	fraudHits := 0
	for i, h := range hits {
		prefix := fmt.Sprintf("hit_%d", i+1)
		details[prefix+"_category"] = h.category
		details[prefix+"_title"] = h.result.Title
		details[prefix+"_url"] = h.result.URL
		if h.category == categoryFraud {
			fraudHits++
		}
	}

	switch {
	case searchFailed:
		return verification.Indeterminate(verification.SourceOpenSourceEvidence, details,
			"web search could not be completed; this does not affect the document's validity")
	case fraudHits > 0:
		return verification.Evidence(verification.SourceOpenSourceEvidence, verification.RiskMedium, details,
			fmt.Sprintf("%d fraud-specific result(s) name this entity; corroborating context only, not proof", fraudHits))
	case len(hits) == 0:
		details["note"] = "absence of results is not evidence of fraud; small clinics often have no web presence"
		return verification.Evidence(verification.SourceOpenSourceEvidence, verification.RiskLow, details,
			"no public information found for the entity")
	default:
		return verification.Evidence(verification.SourceOpenSourceEvidence, verification.RiskLow, details,
			"public mentions found, none fraud-specific for this entity")
	}
}
