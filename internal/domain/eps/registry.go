package eps

import (
	"fmt"
	"strings"

	"github.com/dfmejia/fraude-incapacidades/internal/domain/verification"
)

// Entity is one legally authorized payer with its known name variants
// (acronyms, long forms, common misspellings).
type Entity struct {
	Official string   `yaml:"official"`
	Variants []string `yaml:"variants"`
}

// Registry is the ordered canonical list of authorized payers. Order is part
// of the contract: the first matching variant wins.
type Registry struct {
	entities []Entity
}

// NewRegistry validates and builds the registry; invalid entries abort
// startup.
func NewRegistry(entities []Entity) (*Registry, error) {
	if len(entities) == 0 {
		return nil, fmt.Errorf("eps: entity registry is empty")
	}
	for i, e := range entities {
		if strings.TrimSpace(e.Official) == "" {
			return nil, fmt.Errorf("eps: entity %d has no official name", i)
		}
		if len(e.Variants) == 0 {
			return nil, fmt.Errorf("eps: entity %q has no variants", e.Official)
		}
	}
	return &Registry{entities: entities}, nil
}

// normalize lowercases the name and strips corporate suffixes that printed
// documents routinely append.
func normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	for _, suffix := range []string{"s.a.s.", "s.a.s", "s.a.", "s.a", "ltda.", "ltda"} {
		s = strings.ReplaceAll(s, suffix, "")
	}
	return strings.Join(strings.Fields(s), " ")
}

// Match checks a free-text payer name against the registry with a tolerant
// rule: a variant matches when it equals, contains, or is contained by the
// normalized input.
func (r *Registry) Match(name string) verification.Signal {
	if strings.TrimSpace(name) == "" {
		return verification.NotApplicable(verification.SourceEntityName,
			"no payer name was extracted from the certificate; review manually")
	}

	needle := normalize(name)
	for _, entity := range r.entities {
		for _, variant := range entity.Variants {
			v := normalize(variant)
			if v == needle || strings.Contains(needle, v) || strings.Contains(v, needle) {
				return verification.Confirmed(verification.SourceEntityName, verification.RiskLow,
					map[string]string{
						"officialName":   entity.Official,
						"extracted_name": name,
					},
					"payer name corresponds to an authorized entity")
			}
		}
	}

	return verification.NotFound(verification.SourceEntityName, verification.RiskHigh,
		map[string]string{
			"extracted_name": name,
			"if_small_provider": "a small clinic or IPS without its own listing is not necessarily fraudulent",
			"if_claims_listed_entity": "a document claiming to be issued by a listed payer under an unlisted name is a strong fraud indicator",
		},
		"entity not found in the authorized payer registry; interpretation depends on whether the document claims to be from a listed payer")
}

// Len reports the number of registered entities.
func (r *Registry) Len() int { return len(r.entities) }
