package registry

import (
	"context"

	"github.com/dfmejia/fraude-incapacidades/internal/domain/certificate"
)

// Client port: one external lookup per call against an authoritative
// registry. Transports (plain HTTP, headless browser) are interchangeable
// behind this interface. A lookup never returns a transport error for an
// unreachable source; that is an Outcome, not a failure.
type Client interface {
	// Name is the stable logical name of the registry, e.g.
	// "professional-license-registry".
	Name() string
	Lookup(ctx context.Context, docType certificate.DocumentType, docNumber string) Outcome
}
