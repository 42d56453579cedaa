package ai

import (
	"context"

	"github.com/dfmejia/fraude-incapacidades/internal/domain/certificate"
)

// Extractor port: the opaque vision/LLM capability that turns an uploaded
// certificate into a best-effort structured extraction. Any field of the
// result may be empty.
type Extractor interface {
	Extract(ctx context.Context, fileURL string) (certificate.Extraction, error)
}

// Narrator port: produces the human-readable dictamen from an already
// finalized report. Invoked strictly after the deterministic verdict exists;
// its output never feeds back into scoring.
type Narrator interface {
	Narrate(ctx context.Context, reportJSON string) (string, error)
}
